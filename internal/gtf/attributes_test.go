package gtf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAttributes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKeys []string
		want     map[string]string
	}{
		{
			name:     "basic attributes",
			input:    `gene_id "XLOC_000004"; transcript_id "TCONS_00000026"; exon_number "1"; gene_name "CTDP1";`,
			wantKeys: []string{"gene_id", "transcript_id", "exon_number", "gene_name"},
			want: map[string]string{
				"gene_id":       "XLOC_000004",
				"transcript_id": "TCONS_00000026",
				"exon_number":   "1",
				"gene_name":     "CTDP1",
			},
		},
		{
			name:     "no trailing separator",
			input:    `gene_id "A"; transcript_id "A1"`,
			wantKeys: []string{"gene_id", "transcript_id"},
			want:     map[string]string{"gene_id": "A", "transcript_id": "A1"},
		},
		{
			name:     "no space after separator",
			input:    `gene_id "A";transcript_id "A1";`,
			wantKeys: []string{"gene_id", "transcript_id"},
			want:     map[string]string{"gene_id": "A", "transcript_id": "A1"},
		},
		{
			name:     "tab after separator",
			input:    "gene_id \"A\";\ttranscript_id \"A1\";",
			wantKeys: []string{"gene_id", "transcript_id"},
			want:     map[string]string{"gene_id": "A", "transcript_id": "A1"},
		},
		{
			name:     "repeated trailing separators",
			input:    `gene_id "A"; transcript_id "A1";; `,
			wantKeys: []string{"gene_id", "transcript_id"},
			want:     map[string]string{"gene_id": "A", "transcript_id": "A1"},
		},
		{
			name:     "unquoted value",
			input:    `gene_id "ENSG00000223972.5"; level 2;`,
			wantKeys: []string{"gene_id", "level"},
			want:     map[string]string{"gene_id": "ENSG00000223972.5", "level": "2"},
		},
		{
			name:     "value with spaces",
			input:    `gene_id "A"; note "two words";`,
			wantKeys: []string{"gene_id", "note"},
			want:     map[string]string{"gene_id": "A", "note": "two words"},
		},
		{
			name:     "repeated key keeps first position",
			input:    `tag "basic"; gene_id "A"; tag "Ensembl_canonical";`,
			wantKeys: []string{"tag", "gene_id"},
			want:     map[string]string{"tag": "Ensembl_canonical", "gene_id": "A"},
		},
		{
			name:     "empty",
			input:    "",
			wantKeys: nil,
			want:     map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs, err := ParseAttributes(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKeys, attrs.Keys())
			for k, want := range tt.want {
				got, ok := attrs.Get(k)
				assert.True(t, ok, "missing %q", k)
				assert.Equal(t, want, got, "ParseAttributes()[%q]", k)
			}
		})
	}
}

func TestParseAttributes_Malformed(t *testing.T) {
	inputs := []string{
		`gene_id "A";; transcript_id "A1";`,
		`; gene_id "A";`,
		`gene_id;`,
		`gene_id "A; transcript_id "A1";`,
		`gene_id "A" "B";`,
		`gene_id A B;`,
	}

	for _, in := range inputs {
		_, err := ParseAttributes(in)
		var fe *FormatError
		assert.ErrorAs(t, err, &fe, "ParseAttributes(%q)", in)
	}
}

func TestParseAttributes_TabNormalized(t *testing.T) {
	attrs, err := ParseAttributes("gene_id \"A\";\ttranscript_id \"A1\";")
	require.NoError(t, err)
	assert.Equal(t, `gene_id "A"; transcript_id "A1";`, attrs.String())

	rec, err := ParseRecord("1\tsrc\texon\t10\t20\t.\t+\t.\tgene_id \"A\";\ttranscript_id \"A1\";")
	require.NoError(t, err)
	gene, err := NewReconstructor().Step(rec)
	require.NoError(t, err)
	assert.Nil(t, gene)
}

func TestAttributes_RoundTrip(t *testing.T) {
	texts := []string{
		`gene_id "XLOC_000004"; transcript_id "TCONS_00000026"; exon_number "1"; gene_name "CTDP1";`,
		`gene_id "A";`,
		``,
	}
	for _, text := range texts {
		attrs, err := ParseAttributes(text)
		require.NoError(t, err)
		assert.Equal(t, text, attrs.String())
	}

	a := NewAttributes()
	a.Set("gene_id", "G1")
	a.Set("level", "2")
	a.Set("note", "a b c")
	b, err := ParseAttributes(a.String())
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestAttributes_SetKeepsPosition(t *testing.T) {
	attrs, err := ParseAttributes(`a "1"; b "2"; c "3";`)
	require.NoError(t, err)

	attrs.Set("a", "10")
	attrs.Set("d", "4")
	assert.Equal(t, `a "10"; b "2"; c "3"; d "4";`, attrs.String())
}

func TestAttributes_RemoveMiddleKey(t *testing.T) {
	attrs, err := ParseAttributes(`gene_id "G"; transcript_id "T"; exon_number "1"; gene_name "N";`)
	require.NoError(t, err)

	attrs.Remove("transcript_id", "not_there")
	assert.Equal(t, `gene_id "G"; exon_number "1"; gene_name "N";`, attrs.String())
	assert.Equal(t, 3, attrs.Len())
}

func TestAttributes_Filter(t *testing.T) {
	attrs, err := ParseAttributes(`gene_id "G"; transcript_id "T"; exon_number "1"; gene_name "N";`)
	require.NoError(t, err)

	attrs.Filter("gene_name", "transcript_id", "missing")
	assert.Equal(t, []string{"transcript_id", "gene_name"}, attrs.Keys())

	once := attrs.Clone()
	attrs.Filter("gene_name", "transcript_id", "missing")
	assert.True(t, once.Equal(attrs), "Filter should be idempotent")
}

func TestAttributes_RemoveMatching(t *testing.T) {
	attrs, err := ParseAttributes(`gene_id "G"; transcript_id "T"; exon_number "1"; exon_id "E"; transcript_support_level "1"; gene_name "N";`)
	require.NoError(t, err)

	attrs.RemoveMatching("exon")
	assert.Equal(t, []string{"gene_id", "transcript_id", "transcript_support_level", "gene_name"}, attrs.Keys())

	attrs.RemoveMatching("transcript", "exon")
	assert.Equal(t, []string{"gene_id", "gene_name"}, attrs.Keys())
}

func TestAttributes_Delete(t *testing.T) {
	attrs := NewAttributes()
	attrs.Set("k", "v")

	assert.True(t, attrs.Delete("k"))
	assert.False(t, attrs.Delete("k"))
	assert.False(t, attrs.Has("k"))
	assert.Equal(t, "", attrs.String())
}

func TestAttributes_All(t *testing.T) {
	attrs, err := ParseAttributes(`b "2"; a "1";`)
	require.NoError(t, err)

	var pairs []string
	for k, v := range attrs.All() {
		pairs = append(pairs, k+"="+v)
	}
	assert.Equal(t, []string{"b=2", "a=1"}, pairs)
}
