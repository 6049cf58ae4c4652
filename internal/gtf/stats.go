package gtf

import (
	"fmt"
	"io"
)

// Stats counts the genes, transcripts and exons of a stream.
type Stats struct {
	Genes       int
	Transcripts int
	Exons       int
}

// CollectStats makes one pass over the exon records of r, counting distinct
// gene_id and transcript_id values and the number of exons.
func CollectStats(r io.Reader) (Stats, error) {
	var s Stats
	genes := make(map[string]struct{})
	transcripts := make(map[string]struct{})

	for exon, err := range ParseByLine(r, Filter{Feature: "exon"}) {
		if err != nil {
			return Stats{}, err
		}
		geneID, err := exon.Get(GeneIDKey)
		if err != nil {
			return Stats{}, err
		}
		transcriptID, err := exon.Get(TranscriptIDKey)
		if err != nil {
			return Stats{}, err
		}
		s.Exons++
		genes[geneID] = struct{}{}
		transcripts[transcriptID] = struct{}{}
	}

	s.Genes = len(genes)
	s.Transcripts = len(transcripts)
	return s, nil
}

func (s Stats) String() string {
	return fmt.Sprintf("# genes:\t%d\n# transcripts:\t%d\n# exons:\t%d", s.Genes, s.Transcripts, s.Exons)
}
