package main

import (
	"github.com/spf13/cobra"

	"github.com/inodb/vibe-gtf/internal/gtf"
)

func newStrandCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "strand [file]",
		Short: "Replace unknown strands (.) with +",
		Args:  cobra.MaximumNArgs(1),
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

			if err := gtf.Transform(in, w, forceStrand); err != nil {
				done()
				return err
			}
			return done()
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}

// forceStrand sets records without a strand to the forward strand.
func forceStrand(rec *gtf.Record) error {
	if rec.Strand == gtf.StrandNone {
		rec.Strand = gtf.StrandForward
	}
	return nil
}
