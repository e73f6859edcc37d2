package heuristic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultPatterns(t *testing.T) *Patterns {
	t.Helper()
	p, err := NewPatterns(DefaultParams())
	require.NoError(t, err)
	return p
}

func TestPatterns_Detect(t *testing.T) {
	p := defaultPatterns(t)

	tests := []struct {
		name   string
		seq    string
		motif  string
		wantOK bool
	}{
		{"mononucleotide", "AAAAAAA", "A", true},
		{"mononucleotide too short", "AAAAAA", "", false},
		{"trinucleotide", strings.Repeat("CAG", 7), "CAG", true},
		{"trinucleotide six copies", strings.Repeat("CAG", 6), "", false},
		{"embedded run", "GT" + strings.Repeat("AC", 7) + "G", "AC", true},
		{"shorter motif wins", strings.Repeat("AT", 7) + strings.Repeat("C", 8), "C", true},
		{"leftmost match for a length", strings.Repeat("G", 7) + "T" + strings.Repeat("A", 9), "G", true},
		{"hexanucleotide", strings.Repeat("AACCGG", 7), "AACCGG", true},
		{"seven-base motif out of range", strings.Repeat("AACCGGT", 7), "", false},
		{"non-ACGT bases ignored", strings.Repeat("N", 20), "", false},
		{"lowercase not matched", strings.Repeat("a", 10), "", false},
		{"missing sentinel", ".", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			motif, ok := p.Detect(tt.seq)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.motif, motif)
		})
	}
}

func TestMask(t *testing.T) {
	tests := []struct {
		name      string
		seq       string
		motif     string
		minRepeat int
		want      string
	}{
		{"mono run", "AAAAAAA", "A", 7, "NNNNNNN"},
		{"mono run longer than minimum", "GAAAAAAAAT", "A", 7, "GNNNNNNNNT"},
		{"tri run", strings.Repeat("CAG", 7), "CAG", 7, "CNGCNGCNGCNGCNGCNGCNG"},
		{"di run with flanks", "TT" + strings.Repeat("AC", 7) + "GG", "AC", 7, "TT" + strings.Repeat("AN", 7) + "GG"},
		{"only first run masked", strings.Repeat("A", 7) + "C" + strings.Repeat("A", 7), "A", 7, strings.Repeat("N", 7) + "C" + strings.Repeat("A", 7)},
		{"short run skipped for later run", "AAAC" + strings.Repeat("A", 7), "A", 7, "AAAC" + strings.Repeat("N", 7)},
		{"no run", "ACGT", "A", 7, "ACGT"},
		{"empty motif", "AAAA", "", 7, "AAAA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Mask(tt.seq, tt.motif, tt.minRepeat)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, len(tt.seq))
		})
	}
}

func TestPatterns_MaskAllele(t *testing.T) {
	p := defaultPatterns(t)

	masked, ok := p.MaskAllele("AAAAAAA")
	assert.True(t, ok)
	assert.Equal(t, "NNNNNNN", masked)

	masked, ok = p.MaskAllele(strings.Repeat("CAG", 7))
	assert.True(t, ok)
	assert.Equal(t, "CNGCNGCNGCNGCNGCNGCNG", masked)

	// A second, different motif elsewhere in the allele is left alone.
	seq := strings.Repeat("T", 8) + "G" + strings.Repeat("CA", 8)
	masked, ok = p.MaskAllele(seq)
	assert.True(t, ok)
	assert.Equal(t, strings.Repeat("N", 8)+"G"+strings.Repeat("CA", 8), masked)

	masked, ok = p.MaskAllele("ACGTACGT")
	assert.False(t, ok)
	assert.Equal(t, "ACGTACGT", masked)
}

// Masking keeps length, masks only the run and keeps one leading base per
// chunk for motifs longer than one base.
func TestPatterns_MaskProperties(t *testing.T) {
	p := defaultPatterns(t)

	motifs := []string{"A", "GT", "CAG", "AATG", "ACGTC", "AACCGT"}
	for _, motif := range motifs {
		for _, repeats := range []int{7, 9} {
			prefix := otherBase(motif[len(motif)-1])
			suffix := otherBase(motif[0])
			run := strings.Repeat(motif, repeats)
			seq := prefix + run + suffix

			got, ok := p.Detect(seq)
			require.True(t, ok, "motif %s x%d", motif, repeats)
			if got != motif {
				// A shorter motif length may legitimately match first.
				continue
			}

			masked := Mask(seq, motif, p.MinRepeat())
			require.Len(t, masked, len(seq))
			assert.Equal(t, prefix, masked[:1])
			assert.Equal(t, suffix, masked[len(masked)-1:])

			span := masked[1 : len(masked)-1]
			for i := 0; i < len(span); i++ {
				if len(motif) > 1 && i%len(motif) == 0 {
					assert.Equal(t, motif[0], span[i])
				} else {
					assert.Equal(t, byte(MaskChar), span[i])
				}
			}
		}
	}
}

// otherBase returns a base different from b.
func otherBase(b byte) string {
	if b == 'G' {
		return "T"
	}
	return "G"
}

func TestPatterns_Deterministic(t *testing.T) {
	p := defaultPatterns(t)
	seq := "GG" + strings.Repeat("TTA", 10) + "C"

	first, _ := p.MaskAllele(seq)
	for i := 0; i < 5; i++ {
		again, _ := p.MaskAllele(seq)
		assert.Equal(t, first, again)
	}
}

func TestNewPatterns_CustomRange(t *testing.T) {
	p, err := NewPatterns(Params{MAFThreshold: 0.01, MinMotif: 2, MaxMotif: 3, MinRepeat: 3})
	require.NoError(t, err)

	_, ok := p.Detect("AAAAAAAAAA")
	assert.True(t, ok, "AA repeated qualifies at motif length 2")

	motif, ok := p.Detect("CAGCAGCAG")
	assert.True(t, ok)
	assert.Equal(t, "CAG", motif)

	_, ok = p.Detect("ACGTACGTACGT")
	assert.False(t, ok)
}

func TestParams_Validate(t *testing.T) {
	assert.NoError(t, DefaultParams().Validate())

	bad := []Params{
		{MAFThreshold: 0.01, MinMotif: 0, MaxMotif: 6, MinRepeat: 7},
		{MAFThreshold: 0.01, MinMotif: 4, MaxMotif: 3, MinRepeat: 7},
		{MAFThreshold: 0.01, MinMotif: 1, MaxMotif: 6, MinRepeat: 0},
		{MAFThreshold: 1.5, MinMotif: 1, MaxMotif: 6, MinRepeat: 7},
	}
	for _, p := range bad {
		err := p.Validate()
		assert.ErrorIs(t, err, ErrInvalidParams)
		_, err = NewPatterns(p)
		assert.ErrorIs(t, err, ErrInvalidParams)
	}
}
