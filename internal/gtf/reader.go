package gtf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
)

const maxLineSize = 1024 * 1024

// Reader reads records from a GTF stream, skipping comments and blank lines.
type Reader struct {
	scanner    *bufio.Scanner
	lineNumber int
	onComment  func(line string)
}

// NewReader creates a reader over r.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for long attribute columns
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, maxLineSize)
	return &Reader{scanner: scanner}
}

// SetCommentHandler registers fn to receive every comment line that is
// skipped.
func (r *Reader) SetCommentHandler(fn func(line string)) {
	r.onComment = fn
}

// LineNumber returns the number of the last line read.
func (r *Reader) LineNumber() int {
	return r.lineNumber
}

// Read returns the next record, or io.EOF when the stream is exhausted.
func (r *Reader) Read() (*Record, error) {
	for r.scanner.Scan() {
		r.lineNumber++
		line := strings.TrimRight(r.scanner.Text(), "\r")

		if strings.HasPrefix(line, "#") {
			if r.onComment != nil {
				r.onComment(line)
			}
			continue
		}
		if line == "" {
			continue
		}

		rec, err := ParseRecord(line)
		if err != nil {
			var fe *FormatError
			if errors.As(err, &fe) {
				fe.Line = r.lineNumber
			}
			return nil, err
		}
		return rec, nil
	}

	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan GTF: %w", err)
	}
	return nil, io.EOF
}

// Records iterates over the remaining records. Iteration stops after the
// first error. The underlying stream cannot be rewound.
func (r *Reader) Records() iter.Seq2[*Record, error] {
	return func(yield func(*Record, error) bool) {
		for {
			rec, err := r.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// Filter selects records by feature, strand and exact attribute values.
// Zero fields match everything.
type Filter struct {
	Feature    string
	Strand     Strand
	Attributes map[string]string
}

// Match reports whether rec passes every condition of the filter.
func (f Filter) Match(rec *Record) bool {
	if f.Feature != "" && rec.Feature != f.Feature {
		return false
	}
	if f.Strand != StrandAny && rec.Strand != f.Strand {
		return false
	}
	for k, want := range f.Attributes {
		got, err := rec.Get(k)
		if err != nil || got != want {
			return false
		}
	}
	return true
}

// ParseByLine lazily yields the records of r that match f.
func ParseByLine(r io.Reader, f Filter) iter.Seq2[*Record, error] {
	return func(yield func(*Record, error) bool) {
		for rec, err := range NewReader(r).Records() {
			if err != nil {
				yield(nil, err)
				return
			}
			if f.Match(rec) && !yield(rec, nil) {
				return
			}
		}
	}
}

// ReconstructReader rebuilds genes from the leaf records of r whose feature
// is leafFeature. An empty leafFeature keeps every record.
func ReconstructReader(r io.Reader, leafFeature string) iter.Seq2[*Gene, error] {
	return Reconstruct(ParseByLine(r, Filter{Feature: leafFeature}))
}

// Genes groups a stream that already carries explicit gene and transcript
// lines. A gene line starts a gene, a transcript line starts a transcript in
// the latest gene, and any other line is a leaf of the latest transcript.
// Spans come from the explicit lines and are not recomputed.
func Genes(r io.Reader) iter.Seq2[*Gene, error] {
	return func(yield func(*Gene, error) bool) {
		reader := NewReader(r)
		var (
			gene       *Gene
			transcript *Transcript
		)

		for rec, err := range reader.Records() {
			if err != nil {
				yield(nil, err)
				return
			}

			switch rec.Feature {
			case GeneKind.Feature:
				if gene != nil && !yield(gene, nil) {
					return
				}
				gene = NewGene(rec)
				transcript = nil
			case TranscriptKind.Feature:
				if gene == nil {
					yield(nil, &FormatError{Line: reader.LineNumber(), Message: "transcript line before any gene line"})
					return
				}
				transcript = gene.MergeTranscript(NewTranscript(rec))
			default:
				if transcript == nil {
					yield(nil, &FormatError{Line: reader.LineNumber(), Message: fmt.Sprintf("%s line before any transcript line", rec.Feature)})
					return
				}
				transcript.AddChildNoExtend(rec)
			}
		}

		if gene != nil {
			yield(gene, nil)
		}
	}
}

// GeneSet maps gene ids to genes, remembering first-seen order.
type GeneSet struct {
	ids   []string
	genes map[string]*Gene
}

// Len returns the number of genes.
func (s *GeneSet) Len() int {
	return len(s.ids)
}

// Get returns the gene with the given id.
func (s *GeneSet) Get(id string) (*Gene, bool) {
	g, ok := s.genes[id]
	return g, ok
}

// IDs returns the gene ids in first-seen order.
func (s *GeneSet) IDs() []string {
	return s.ids
}

// Genes returns the genes in first-seen order.
func (s *GeneSet) Genes() []*Gene {
	out := make([]*Gene, len(s.ids))
	for i, id := range s.ids {
		out[i] = s.genes[id]
	}
	return out
}

// Parse reads a fully grouped stream (see Genes) into a GeneSet. When a gene
// id repeats, its transcripts are merged into the first gene.
func Parse(r io.Reader) (*GeneSet, error) {
	set := &GeneSet{genes: make(map[string]*Gene)}
	for gene, err := range Genes(r) {
		if err != nil {
			return nil, err
		}
		id := gene.ID()
		existing, ok := set.genes[id]
		if !ok {
			set.ids = append(set.ids, id)
			set.genes[id] = gene
			continue
		}
		for _, t := range gene.Transcripts() {
			existing.MergeTranscript(t)
		}
	}
	return set, nil
}
