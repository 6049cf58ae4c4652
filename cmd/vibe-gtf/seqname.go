package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/vibe-gtf/internal/assembly"
	"github.com/inodb/vibe-gtf/internal/gtf"
)

func newSeqnameCmd() *cobra.Command {
	var (
		from, to   string
		reportPath string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "seqname [file]",
		Short: "Convert sequence names between ucsc, ncbi and ensembl styles",
		Long: `Convert the seqname column using an NCBI assembly report
(ftp.ncbi.nlm.nih.gov/genomes/.../<assembly>_assembly_report.txt).
Comment lines are copied unchanged.`,
		Example: `  vibe-gtf seqname --from ncbi --to ensembl --report GCF_000002285.3_assembly_report.txt my.gtf`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fromStyle, err := assembly.ParseStyle(from)
			if err != nil {
				return err
			}
			toStyle, err := assembly.ParseStyle(to)
			if err != nil {
				return err
			}

			report, err := assembly.LoadReport(reportPath, fromStyle)
			if err != nil {
				return err
			}
			logger.Info("loaded assembly report",
				zap.String("path", reportPath),
				zap.Int("sequences", report.Len()))

			in, err := openInput(args)
			if err != nil {
				return err
			}
			defer in.Close()

			w, done, err := openOutput(cmd.OutOrStdout(), output)
			if err != nil {
				return err
			}

			err = gtf.Transform(in, w, func(rec *gtf.Record) error {
				name, err := report.Convert(rec.Seqname, toStyle)
				if err != nil {
					return err
				}
				rec.Seqname = name
				return nil
			})
			if err != nil {
				done()
				return err
			}
			return done()
		},
	}

	cmd.Flags().StringVarP(&from, "from", "f", "", "Seqname style currently in the GTF: ucsc, ncbi or ensembl")
	cmd.Flags().StringVarP(&to, "to", "t", "", "Seqname style wanted: ucsc, ncbi or ensembl")
	cmd.Flags().StringVarP(&reportPath, "report", "c", "", "NCBI assembly report file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	cmd.MarkFlagRequired("report")

	return cmd
}
