package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inodb/vibe-gtf/internal/gtf"
)

func newFilterCmd() *cobra.Command {
	var (
		feature string
		strand  string
		attrs   []string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "filter [file]",
		Short: "Print records matching a feature, strand or attributes",
		Example: `  vibe-gtf filter --feature exon annotation.gtf
  vibe-gtf filter --strand - --attr gene_name=KRAS annotation.gtf`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := buildFilter(feature, strand, attrs)
			if err != nil {
				return err
			}

			in, err := openInput(args)
			if err != nil {
				return err
			}
			defer in.Close()

			w, done, err := openOutput(cmd.OutOrStdout(), output)
			if err != nil {
				return err
			}

			for rec, err := range gtf.ParseByLine(in, f) {
				if err != nil {
					done()
					return err
				}
				if _, err := fmt.Fprintln(w, rec.String()); err != nil {
					done()
					return fmt.Errorf("writing record: %w", err)
				}
			}
			return done()
		},
	}

	cmd.Flags().StringVar(&feature, "feature", "", "Keep only this feature (e.g. exon)")
	cmd.Flags().StringVar(&strand, "strand", "", "Keep only this strand: +, - or .")
	cmd.Flags().StringArrayVar(&attrs, "attr", nil, "Keep only records with key=value (repeatable)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

// buildFilter converts command-line flags to a gtf.Filter.
func buildFilter(feature, strand string, attrs []string) (gtf.Filter, error) {
	f := gtf.Filter{Feature: feature}

	if strand != "" {
		s, err := gtf.ParseStrand(strand)
		if err != nil {
			return gtf.Filter{}, err
		}
		f.Strand = s
	}

	if len(attrs) > 0 {
		f.Attributes = make(map[string]string, len(attrs))
		for _, kv := range attrs {
			k, v, ok := strings.Cut(kv, "=")
			if !ok || k == "" {
				return gtf.Filter{}, fmt.Errorf("invalid --attr %q: want key=value", kv)
			}
			f.Attributes[k] = v
		}
	}

	return f, nil
}
