package main

import (
	"fmt"
	"io"
	"iter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/vibe-gtf/internal/gtf"
)

func newReconstructCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "reconstruct [file]",
		Short: "Rebuild gene and transcript lines from a flat exon GTF",
		Long: `Rebuild gene and transcript lines from leaf records (exons by default).

Leaf records must be grouped: all lines of a gene are contiguous, and within
a gene all lines of a transcript are contiguous. Sort the file first if needed.`,
		Example: `  vibe-gtf reconstruct stringtie.gtf > full.gtf
  vibe-gtf reconstruct --leaf CDS cds_only.gtf`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(args)
			if err != nil {
				return err
			}
			defer in.Close()

			w, done, err := openOutput(cmd.OutOrStdout(), output)
			if err != nil {
				return err
			}

			n, err := writeGenes(w, reconstructGenes(in))
			if err != nil {
				done()
				return err
			}
			logger.Info("reconstructed genes", zap.Int("genes", n))
			return done()
		},
	}

	cmd.Flags().String("leaf", "exon", "Feature treated as leaf records (empty keeps every line)")
	cmd.Flags().String("gene-key", gtf.GeneIDKey, "Attribute grouping records into genes")
	cmd.Flags().String("transcript-key", gtf.TranscriptIDKey, "Attribute grouping records into transcripts")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	viper.BindPFlag("reconstruct.leaf", cmd.Flags().Lookup("leaf"))
	viper.BindPFlag("reconstruct.gene_key", cmd.Flags().Lookup("gene-key"))
	viper.BindPFlag("reconstruct.transcript_key", cmd.Flags().Lookup("transcript-key"))

	return cmd
}

// reconstructGenes configures a Reconstructor from viper settings.
func reconstructGenes(in io.Reader) iter.Seq2[*gtf.Gene, error] {
	r := gtf.NewReconstructor()
	r.SetLogger(logger)
	r.SetGroupKeys(viper.GetString("reconstruct.gene_key"), viper.GetString("reconstruct.transcript_key"))

	leaf := gtf.Filter{Feature: viper.GetString("reconstruct.leaf")}
	return r.Reconstruct(gtf.ParseByLine(in, leaf))
}

// writeGenes writes each gene tree as it arrives and returns how many were
// written.
func writeGenes(w io.Writer, genes iter.Seq2[*gtf.Gene, error]) (int, error) {
	n := 0
	for g, err := range genes {
		if err != nil {
			return n, err
		}
		if _, err := fmt.Fprintln(w, g.FormatGTF()); err != nil {
			return n, fmt.Errorf("writing gene: %w", err)
		}
		n++
	}
	return n, nil
}
