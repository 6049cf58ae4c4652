package main

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/vibe-gtf/internal/duckdb"
	"github.com/inodb/vibe-gtf/internal/gtf"
)

func newExportCmd() *cobra.Command {
	var (
		outputPath string
		flat       bool
		batchSize  int
	)

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Store gene trees in a DuckDB database",
		Long: `Store genes, transcripts and leaf features in the genes, transcripts and
features tables of a DuckDB database. With --flat, genes are rebuilt from leaf
records first (see reconstruct); otherwise the input must carry explicit gene
and transcript lines.`,
		Example: `  vibe-gtf export -o annotation.duckdb annotation.gtf
  vibe-gtf export --flat -o stringtie.duckdb stringtie.gtf`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Ensure output has .duckdb extension
			if filepath.Ext(outputPath) != ".duckdb" && filepath.Ext(outputPath) != ".db" {
				outputPath = outputPath + ".duckdb"
			}

			in, err := openInput(args)
			if err != nil {
				return err
			}
			defer in.Close()

			store, err := duckdb.Open(outputPath)
			if err != nil {
				return err
			}
			defer store.Close()
			store.SetLogger(logger)

			var genes iter.Seq2[*gtf.Gene, error]
			if flat {
				genes = reconstructGenes(in)
			} else {
				genes = gtf.Genes(in)
			}

			n, err := exportGenes(store, genes, batchSize)
			if err != nil {
				return err
			}

			if path := inputPath(args); path != "-" {
				fp, err := duckdb.StatFile(path)
				if err != nil {
					return err
				}
				if err := store.RecordSource(fp); err != nil {
					return err
				}
			}

			fmt.Fprintf(os.Stderr, "Exported %d genes to %s\n", n, outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output DuckDB file path")
	cmd.Flags().BoolVar(&flat, "flat", false, "Rebuild genes from leaf records instead of reading explicit gene lines")
	cmd.Flags().IntVar(&batchSize, "batch", 1000, "Genes written per batch")
	cmd.MarkFlagRequired("output")

	return cmd
}

// exportGenes writes genes in batches and returns the number written.
func exportGenes(store *duckdb.Store, genes iter.Seq2[*gtf.Gene, error], batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 1
	}

	total := 0
	batch := make([]*gtf.Gene, 0, batchSize)
	flush := func() error {
		if err := store.WriteGenes(batch); err != nil {
			return err
		}
		total += len(batch)
		logger.Debug("exported batch", zap.Int("genes", len(batch)), zap.Int("total", total))
		batch = batch[:0]
		return nil
	}

	for g, err := range genes {
		if err != nil {
			return total, err
		}
		batch = append(batch, g)
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	if err := flush(); err != nil {
		return total, err
	}
	return total, nil
}
