package gtf

import (
	"iter"

	"go.uber.org/zap"
)

// Reconstructor rebuilds genes and transcripts from a flat stream of leaf
// records.
//
// Leaves must be contiguous by gene, then by transcript within a gene.
// Boundaries are found by comparing each record's group ids with the
// previous ones; the order is not verified.
type Reconstructor struct {
	geneKey       string
	transcriptKey string
	logger        *zap.Logger

	gene         *Gene
	geneID       string
	transcript   *Transcript
	transcriptID string
	// gene id of the record that opened the current transcript
	transcriptGeneID string
	stepped          bool
}

// NewReconstructor creates a reconstructor grouping on gene_id and
// transcript_id.
func NewReconstructor() *Reconstructor {
	return &Reconstructor{
		geneKey:       GeneIDKey,
		transcriptKey: TranscriptIDKey,
		logger:        zap.NewNop(),
	}
}

// SetGroupKeys changes the attributes used to detect gene and transcript
// boundaries.
func (r *Reconstructor) SetGroupKeys(geneKey, transcriptKey string) {
	r.geneKey = geneKey
	r.transcriptKey = transcriptKey
}

// SetLogger sets the logger for debug messages.
func (r *Reconstructor) SetLogger(l *zap.Logger) {
	r.logger = l
}

// Step consumes one leaf record. When rec starts a new gene, the previous
// gene is complete and is returned; otherwise the returned gene is nil.
func (r *Reconstructor) Step(rec *Record) (*Gene, error) {
	geneID, err := rec.Get(r.geneKey)
	if err != nil {
		return nil, err
	}
	transcriptID, err := rec.Get(r.transcriptKey)
	if err != nil {
		return nil, err
	}
	rec.OrderSpan()

	var done *Gene
	if r.gene == nil || geneID != r.geneID {
		if r.gene != nil {
			if err := r.attachTranscript(); err != nil {
				return nil, err
			}
			done = r.gene
			r.logger.Debug("gene complete",
				zap.String("gene_id", r.geneID),
				zap.Int("transcripts", done.Len()))
		}
		r.gene = NewGene(r.parentSeed(rec, GeneKind))
		r.geneID = geneID
	}

	if r.transcript == nil || transcriptID != r.transcriptID {
		if err := r.attachTranscript(); err != nil {
			return nil, err
		}
		r.transcript = NewTranscript(r.parentSeed(rec, TranscriptKind))
		r.transcriptID = transcriptID
		r.transcriptGeneID = geneID
	}

	r.gene.ExpandSpan(rec.Start, rec.End)
	r.transcript.ExpandSpan(rec.Start, rec.End)
	r.transcript.AddChild(rec)
	r.stepped = true

	return done, nil
}

// Finish attaches the pending transcript and returns the last gene. It
// returns ErrEmptyInput when no record was stepped. The reconstructor is
// reset afterwards.
func (r *Reconstructor) Finish() (*Gene, error) {
	defer r.reset()

	if !r.stepped {
		return nil, ErrEmptyInput
	}
	if err := r.attachTranscript(); err != nil {
		return nil, err
	}
	r.logger.Debug("gene complete",
		zap.String("gene_id", r.geneID),
		zap.Int("transcripts", r.gene.Len()))
	return r.gene, nil
}

// attachTranscript moves the pending transcript into the current gene when
// it belongs to it, then drops the reference.
func (r *Reconstructor) attachTranscript() error {
	t := r.transcript
	r.transcript = nil
	if t == nil || r.gene == nil || r.transcriptGeneID != r.geneID {
		return nil
	}
	return r.gene.AddKeyedChild(r.transcriptID, t, true)
}

// parentSeed builds the base record of a new parent node from a leaf: keys of
// deeper levels are stripped and the feature label is overwritten.
func (r *Reconstructor) parentSeed(rec *Record, kind NodeKind) *Record {
	seed := rec.Clone()
	seed.Attributes.RemoveMatching(kind.Strip...)
	seed.Feature = kind.Feature
	return seed
}

func (r *Reconstructor) reset() {
	r.gene = nil
	r.geneID = ""
	r.transcript = nil
	r.transcriptID = ""
	r.transcriptGeneID = ""
	r.stepped = false
}

// Reconstruct lazily turns a stream of leaf records into genes. A gene is
// yielded once the next gene starts or the stream ends. Iteration stops at
// the first error; an empty stream yields ErrEmptyInput.
func (r *Reconstructor) Reconstruct(records iter.Seq2[*Record, error]) iter.Seq2[*Gene, error] {
	return func(yield func(*Gene, error) bool) {
		defer r.reset()

		for rec, err := range records {
			if err != nil {
				yield(nil, err)
				return
			}
			gene, err := r.Step(rec)
			if err != nil {
				yield(nil, err)
				return
			}
			if gene != nil && !yield(gene, nil) {
				return
			}
		}

		gene, err := r.Finish()
		if err != nil {
			yield(nil, err)
			return
		}
		yield(gene, nil)
	}
}

// Reconstruct runs a default Reconstructor over records.
func Reconstruct(records iter.Seq2[*Record, error]) iter.Seq2[*Gene, error] {
	return NewReconstructor().Reconstruct(records)
}
