package duckdb

import (
	"fmt"
	"os"
	"time"
)

// FileFingerprint holds stat-based identity for a file.
type FileFingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// StatFile creates a FileFingerprint from an on-disk file.
func StatFile(path string) (FileFingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileFingerprint{}, err
	}
	return FileFingerprint{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// RecordSource remembers which input file an export came from.
func (s *Store) RecordSource(fp FileFingerprint) error {
	_, err := s.db.Exec(`INSERT INTO sources VALUES (?, ?, ?, ?)`,
		fp.Path, fp.Size, fp.ModTime.UTC(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("record source: %w", err)
	}
	return nil
}

// Sources returns every recorded input file, oldest first.
func (s *Store) Sources() ([]FileFingerprint, error) {
	rows, err := s.db.Query(`SELECT path, size, mod_time FROM sources ORDER BY loaded_at`)
	if err != nil {
		return nil, fmt.Errorf("query sources: %w", err)
	}
	defer rows.Close()

	var out []FileFingerprint
	for rows.Next() {
		var fp FileFingerprint
		if err := rows.Scan(&fp.Path, &fp.Size, &fp.ModTime); err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		out = append(out, fp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sources: %w", err)
	}
	return out, nil
}
