package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/vibe-gtf/internal/gtf"
)

func newTreeCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Group a GTF with explicit gene and transcript lines and re-serialize it",
		Long: `Group a GTF that already has gene and transcript lines. Each gene line starts
a gene, each transcript line a transcript of the latest gene, and any other
line belongs to the latest transcript. Output is the canonical serialization.`,
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

			n, err := writeGenes(w, gtf.Genes(in))
			if err != nil {
				done()
				return err
			}
			logger.Info("grouped genes", zap.Int("genes", n))
			return done()
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}
