// Package duckdb stores gene trees in a DuckDB database.
// Genes, transcripts and leaf features land in one table each, appended in
// stream order.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"
)

// Store manages a DuckDB connection for exported annotations.
type Store struct {
	db     *sql.DB
	path   string
	logger *zap.Logger
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path, logger: zap.NewNop()}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// SetLogger sets the logger for progress messages.
func (s *Store) SetLogger(l *zap.Logger) {
	s.logger = l
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS genes (
			gene_id VARCHAR,
			seqname VARCHAR,
			source VARCHAR,
			start BIGINT,
			"end" BIGINT,
			strand VARCHAR,
			transcript_count BIGINT,
			attributes VARCHAR
		)`,
		`CREATE TABLE IF NOT EXISTS transcripts (
			transcript_id VARCHAR,
			gene_id VARCHAR,
			seqname VARCHAR,
			start BIGINT,
			"end" BIGINT,
			strand VARCHAR,
			feature_count BIGINT,
			attributes VARCHAR
		)`,
		`CREATE TABLE IF NOT EXISTS features (
			gene_id VARCHAR,
			transcript_id VARCHAR,
			seqname VARCHAR,
			source VARCHAR,
			feature VARCHAR,
			start BIGINT,
			"end" BIGINT,
			score VARCHAR,
			strand VARCHAR,
			frame VARCHAR,
			attributes VARCHAR
		)`,
		`CREATE TABLE IF NOT EXISTS sources (
			path VARCHAR,
			size BIGINT,
			mod_time TIMESTAMP,
			loaded_at TIMESTAMP
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// count returns the number of rows of a table.
func (s *Store) count(table string) (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// GeneCount returns the number of stored genes.
func (s *Store) GeneCount() (int, error) {
	return s.count("genes")
}

// TranscriptCount returns the number of stored transcripts.
func (s *Store) TranscriptCount() (int, error) {
	return s.count("transcripts")
}

// FeatureCount returns the number of stored leaf features.
func (s *Store) FeatureCount() (int, error) {
	return s.count("features")
}
