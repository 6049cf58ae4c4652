package assembly

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReport_Convert(t *testing.T) {
	report, err := LoadReport("../../testdata/assembly_report.txt", Ensembl)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Len())
	assert.Equal(t, Ensembl, report.From())

	tests := []struct {
		seqname string
		to      Style
		want    string
	}{
		{"1", UCSC, "chr1"},
		{"1", NCBI, "NC_006583.3"},
		{"1", Ensembl, "1"},
		{"2", UCSC, "chr2"},
		{"AAEX03024336.1", UCSC, "chrUn_AAEX03024336v1"},
		{"AAEX03024336.1", NCBI, "NW_003726049.1"},
	}

	for _, tt := range tests {
		got, err := report.Convert(tt.seqname, tt.to)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "Convert(%q, %s)", tt.seqname, tt.to)
	}
}

func TestReport_FromUCSC(t *testing.T) {
	report, err := LoadReport("../../testdata/assembly_report.txt", UCSC)
	require.NoError(t, err)

	got, err := report.Convert("chrUn_AAEX03024336v1", Ensembl)
	require.NoError(t, err)
	assert.Equal(t, "AAEX03024336.1", got)
}

func TestReport_UnknownSeqname(t *testing.T) {
	report, err := LoadReport("../../testdata/assembly_report.txt", NCBI)
	require.NoError(t, err)

	_, err = report.Convert("chr1", Ensembl)
	assert.ErrorIs(t, err, ErrUnknownSeqname)
}

func TestParseReport_ShortRow(t *testing.T) {
	_, err := ParseReport(strings.NewReader("1\tassembled-molecule\t1\n"), UCSC)
	assert.ErrorContains(t, err, "line 1")
}

func TestParseStyle(t *testing.T) {
	st, err := ParseStyle("Ensembl")
	require.NoError(t, err)
	assert.Equal(t, Ensembl, st)

	_, err = ParseStyle("refseq")
	assert.Error(t, err)
}
