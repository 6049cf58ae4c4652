package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/vibe-gtf/internal/gtf"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [file]",
		Short: "Count genes, transcripts and exons",
		Long:  "Count distinct gene_id and transcript_id values and the number of exon lines.",
		Example: `  vibe-gtf stats annotation.gtf
  zcat annotation.gtf.gz | vibe-gtf stats`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(args)
			if err != nil {
				return err
			}
			defer in.Close()

			logger.Info("collecting stats", zap.String("input", inputPath(args)))
			s, err := gtf.CollectStats(in)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "FILE: %s\n%s\n", displayPath(inputPath(args)), s)
			return nil
		},
	}
}
