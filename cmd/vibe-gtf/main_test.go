package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/inodb/vibe-gtf/internal/duckdb"
	"github.com/inodb/vibe-gtf/internal/gtf"
)

// execute runs the CLI with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	viper.Reset()
	cfgFile = ""

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestStatsCmd(t *testing.T) {
	out, err := execute(t, "stats", "../../testdata/short_jeq.gtf")
	require.NoError(t, err)

	abs, err := filepath.Abs("../../testdata/short_jeq.gtf")
	require.NoError(t, err)
	assert.Equal(t, "FILE: "+abs+"\n# genes:\t4\n# transcripts:\t6\n# exons:\t15\n", out)
}

func TestReconstructCmd(t *testing.T) {
	out, err := execute(t, "reconstruct", "../../testdata/short_jeq.gtf")
	require.NoError(t, err)

	set, err := gtf.Parse(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 4, set.Len())

	s, err := gtf.CollectStats(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, gtf.Stats{Genes: 4, Transcripts: 6, Exons: 15}, s)
}

func TestReconstructCmd_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "full.gtf")
	out, err := execute(t, "reconstruct", "--leaf", "exon", "-o", path, "../../testdata/short_jeq.gtf")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(string(data), "\tgene\t"))
	assert.Equal(t, 6, strings.Count(string(data), "\ttranscript\t"))
}

func TestTreeCmd(t *testing.T) {
	out, err := execute(t, "tree", "../../testdata/short.CanFam3.gtf")
	require.NoError(t, err)
	assert.Equal(t, 23, strings.Count(out, "\n"))
	assert.NotContains(t, out, "#!genome-build")
}

func TestFilterCmd(t *testing.T) {
	out, err := execute(t, "filter", "--feature", "exon", "--attr", "gene_name=ARHGAP35", "../../testdata/short.CanFam3.gtf")
	require.NoError(t, err)
	assert.Equal(t, 5, strings.Count(out, "\n"))
}

func TestFilterCmd_BadFlags(t *testing.T) {
	_, err := execute(t, "filter", "--strand", "x", "../../testdata/short.CanFam3.gtf")
	assert.Error(t, err)

	_, err = execute(t, "filter", "--attr", "gene_name", "../../testdata/short.CanFam3.gtf")
	assert.ErrorContains(t, err, "key=value")
}

func TestStrandCmd(t *testing.T) {
	out, err := execute(t, "strand", "../../testdata/short_jeq.gtf")
	require.NoError(t, err)
	assert.NotContains(t, out, "\t.\t.\tgene_id")
	assert.Equal(t, 15, strings.Count(out, "\n"))
}

func TestSeqnameCmd(t *testing.T) {
	out, err := execute(t, "seqname", "--from", "ensembl", "--to", "ucsc",
		"--report", "../../testdata/assembly_report.txt", "../../testdata/short.CanFam3.gtf")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 26)
	assert.Equal(t, "#!genome-build CanFam3.1", lines[0])
	for _, line := range lines[3:] {
		assert.True(t, strings.HasPrefix(line, "chr1\t"), line)
	}
}

func TestSeqnameCmd_UnknownSeqname(t *testing.T) {
	_, err := execute(t, "seqname", "--from", "ncbi", "--to", "ucsc",
		"--report", "../../testdata/assembly_report.txt", "../../testdata/short.CanFam3.gtf")
	assert.Error(t, err)
}

func TestExportCmd(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "genes.duckdb")
	_, err := execute(t, "export", "--flat", "--batch", "3", "-o", dbPath, "../../testdata/short_jeq.gtf")
	require.NoError(t, err)

	store, err := duckdb.Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	n, err := store.GeneCount()
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = store.FeatureCount()
	require.NoError(t, err)
	assert.Equal(t, 15, n)

	sources, err := store.Sources()
	require.NoError(t, err)
	assert.Len(t, sources, 1)
}

func TestExportCmd_Tree(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "canfam")
	_, err := execute(t, "export", "-o", dbPath, "../../testdata/short.CanFam3.gtf")
	require.NoError(t, err)

	store, err := duckdb.Open(dbPath + ".duckdb")
	require.NoError(t, err)
	defer store.Close()

	n, err := store.TranscriptCount()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestConfigCmd(t *testing.T) {
	out, err := execute(t, "config", "get", "reconstruct.leaf")
	require.NoError(t, err)
	assert.Equal(t, "exon\n", out)

	_, err = execute(t, "config", "get", "no.such.key")
	assert.Error(t, err)
}

func TestConfigSetKeepsStrings(t *testing.T) {
	out, err := execute(t, "config", "set", "reconstruct.leaf", "on")
	require.NoError(t, err)
	assert.Contains(t, out, "Set reconstruct.leaf = on")

	assert.Equal(t, "on", viper.Get("reconstruct.leaf"))
	assert.FileExists(t, filepath.Join(os.Getenv("HOME"), ".vibe-gtf.yaml"))
}

func TestBuildFilter(t *testing.T) {
	f, err := buildFilter("exon", "-", []string{"gene_id=G", "note=a=b"})
	require.NoError(t, err)
	assert.Equal(t, "exon", f.Feature)
	assert.Equal(t, gtf.StrandReverse, f.Strand)
	assert.Equal(t, map[string]string{"gene_id": "G", "note": "a=b"}, f.Attributes)
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger("debug")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = newLogger("warn")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	_, err = newLogger("loud")
	assert.Error(t, err)
}
