package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"

	"github.com/inodb/vibe-gtf/internal/gtf"
)

// appenders holds one Appender per output table on a single connection.
type appenders struct {
	genes, transcripts, features *goduckdb.Appender
}

func (a *appenders) close() error {
	var first error
	for _, ap := range []*goduckdb.Appender{a.genes, a.transcripts, a.features} {
		if ap == nil {
			continue
		}
		if err := ap.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// WriteGenes batch-inserts genes, their transcripts and their leaf features
// using the Appender API.
func (s *Store) WriteGenes(genes []*gtf.Gene) error {
	if len(genes) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var aps appenders
	if err := conn.Raw(func(driverConn any) error {
		dc := driverConn.(driver.Conn)
		var err error
		if aps.genes, err = goduckdb.NewAppenderFromConn(dc, "", "genes"); err != nil {
			return err
		}
		if aps.transcripts, err = goduckdb.NewAppenderFromConn(dc, "", "transcripts"); err != nil {
			return err
		}
		aps.features, err = goduckdb.NewAppenderFromConn(dc, "", "features")
		return err
	}); err != nil {
		aps.close()
		return fmt.Errorf("create appender: %w", err)
	}

	for _, g := range genes {
		if err := appendGene(&aps, g); err != nil {
			aps.close()
			return err
		}
	}

	// Close flushes the buffered rows.
	if err := aps.close(); err != nil {
		return fmt.Errorf("flush appenders: %w", err)
	}

	s.logger.Debug("wrote genes", zap.Int("genes", len(genes)))
	return nil
}

func appendGene(aps *appenders, g *gtf.Gene) error {
	rec := g.ToRecord()
	if err := aps.genes.AppendRow(
		g.ID(), rec.Seqname, rec.Source, rec.Start, rec.End,
		rec.Strand.String(), int64(g.Len()), rec.Attributes.String(),
	); err != nil {
		return fmt.Errorf("append gene %s: %w", g.ID(), err)
	}

	for _, t := range g.Transcripts() {
		trec := t.ToRecord()
		if err := aps.transcripts.AppendRow(
			t.ID(), g.ID(), trec.Seqname, trec.Start, trec.End,
			trec.Strand.String(), int64(t.Len()), trec.Attributes.String(),
		); err != nil {
			return fmt.Errorf("append transcript %s: %w", t.ID(), err)
		}

		for _, f := range t.Exons() {
			if err := aps.features.AppendRow(
				g.ID(), t.ID(), f.Seqname, f.Source, f.Feature, f.Start, f.End,
				f.Score, f.Strand.String(), f.Frame, f.Attributes.String(),
			); err != nil {
				return fmt.Errorf("append feature of %s: %w", t.ID(), err)
			}
		}
	}
	return nil
}

// GeneSpan returns the stored span of a gene.
func (s *Store) GeneSpan(geneID string) (start, end int64, err error) {
	err = s.db.QueryRow(`SELECT start, "end" FROM genes WHERE gene_id = ?`, geneID).Scan(&start, &end)
	if err != nil {
		return 0, 0, fmt.Errorf("query gene %s: %w", geneID, err)
	}
	return start, end, nil
}

// ClearGenes removes every stored gene, transcript and feature.
func (s *Store) ClearGenes() error {
	for _, table := range []string{"features", "transcripts", "genes"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}
