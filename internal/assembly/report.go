// Package assembly converts sequence names between naming styles using an
// NCBI assembly report.
package assembly

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Style is a sequence naming convention.
type Style string

// Supported naming styles.
const (
	UCSC    Style = "ucsc"
	NCBI    Style = "ncbi"
	Ensembl Style = "ensembl"
)

// Styles lists every supported style.
var Styles = []Style{UCSC, NCBI, Ensembl}

// ErrUnknownSeqname is returned when a sequence name is not in the report.
var ErrUnknownSeqname = errors.New("assembly: unknown seqname")

// ParseStyle converts a string to a Style.
func ParseStyle(s string) (Style, error) {
	for _, st := range Styles {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("assembly: unknown style %q (want ucsc, ncbi or ensembl)", s)
}

// Names holds one sequence under every style.
type Names map[Style]string

// Report maps sequence names in one style to their names in every style.
type Report struct {
	from  Style
	names map[string]Names
}

// assembly report columns
const (
	colRole     = 1
	colMolecule = 2
	colGenBank  = 4
	colRefSeq   = 6
	colUCSC     = 9
	numCols     = 10
)

// LoadReport reads an assembly report file indexed by the from style.
func LoadReport(path string, from Style) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open assembly report: %w", err)
	}
	defer f.Close()

	return ParseReport(f, from)
}

// ParseReport parses an NCBI *_assembly_report.txt table. Comment lines are
// skipped. Rows are indexed by their name in the from style.
func ParseReport(r io.Reader, from Style) (*Report, error) {
	report := &Report{from: from, names: make(map[string]Names)}
	scanner := bufio.NewScanner(r)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.HasPrefix(line, "#") || line == "" {
			continue
		}

		names, err := parseRow(line)
		if err != nil {
			return nil, fmt.Errorf("assembly report line %d: %w", lineNum, err)
		}
		report.names[names[from]] = names
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan assembly report: %w", err)
	}

	return report, nil
}

func parseRow(line string) (Names, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < numCols {
		return nil, fmt.Errorf("expected %d columns, got %d", numCols, len(fields))
	}

	role := fields[colRole]
	molecule := fields[colMolecule]
	genbank := fields[colGenBank]

	return Names{
		UCSC:    ucscName(fields[colUCSC], role, molecule, genbank),
		NCBI:    fields[colRefSeq],
		Ensembl: ensemblName(role, molecule, genbank),
	}, nil
}

// ensemblName uses the chromosome number for assembled molecules and the
// GenBank accession for everything else.
func ensemblName(role, molecule, genbank string) string {
	if role == "assembled-molecule" {
		return molecule
	}
	return genbank
}

// ucscName falls back to a UCSC-like name when the report has none.
func ucscName(name, role, molecule, genbank string) string {
	if name != "na" {
		return name
	}
	if role == "assembled-molecule" {
		return "chr" + molecule
	}
	return "chrUn_" + strings.ReplaceAll(genbank, ".", "v")
}

// From returns the style the report is indexed by.
func (r *Report) From() Style {
	return r.from
}

// Len returns the number of sequences in the report.
func (r *Report) Len() int {
	return len(r.names)
}

// Convert returns the name of seqname in the to style.
func (r *Report) Convert(seqname string, to Style) (string, error) {
	names, ok := r.names[seqname]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSeqname, seqname)
	}
	return names[to], nil
}
