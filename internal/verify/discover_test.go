package verify

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vcf-anon/internal/level"
)

func TestFindPairs(t *testing.T) {
	originDir := t.TempDir()
	anonDir := t.TempDir()

	writeFile(t, originDir, "a.vcf.gz", "")
	writeFile(t, originDir, "b.vcf.gz", "")
	writeFile(t, originDir, "c.vcf.gz", "")

	writeFile(t, anonDir, "high_0.01_anony_a.vcf.gz", "")
	writeFile(t, anonDir, "low_anony_a.vcf.gz", "")
	writeFile(t, anonDir, "weak_anony_a.vcf.gz", "")
	writeFile(t, anonDir, "strong_anony_b.vcf.gz", "")
	writeFile(t, anonDir, "copy_anony_b.vcf.gz", "")
	writeFile(t, anonDir, "low_anony_a.vcf.gz.tbi", "")

	p, err := FindPairs(originDir, anonDir)
	require.NoError(t, err)

	pair := func(orig, anon string) FilePair {
		return FilePair{Origin: filepath.Join(originDir, orig), Anonymized: filepath.Join(anonDir, anon)}
	}
	assert.Equal(t, []FilePair{
		pair("a.vcf.gz", "low_anony_a.vcf.gz"),
		pair("a.vcf.gz", "weak_anony_a.vcf.gz"),
		pair("a.vcf.gz", "high_0.01_anony_a.vcf.gz"),
		pair("b.vcf.gz", "strong_anony_b.vcf.gz"),
	}, p.Pairs)
	assert.Equal(t, []string{filepath.Join(originDir, "c.vcf.gz")}, p.Unmatched)
}

func TestFindPairs_MissingDir(t *testing.T) {
	_, err := FindPairs(filepath.Join(t.TempDir(), "nope"), t.TempDir())
	assert.Error(t, err)
}

func TestVerifier_Run(t *testing.T) {
	dir := t.TempDir()
	anonDir := filepath.Join(dir, "anon")
	origin := writeFile(t, dir, "s1.vcf", originVCF)
	anonymizeTo(t, level.Low, origin, anonDir)
	anonymizeTo(t, level.High, origin, anonDir)

	p, err := FindPairs(dir, anonDir)
	require.NoError(t, err)
	require.Len(t, p.Pairs, 2)
	p.Pairs = append(p.Pairs, FilePair{Origin: origin, Anonymized: filepath.Join(anonDir, "low_anony_gone.vcf")})

	var got []PairResult
	err = newVerifier(t).Run(context.Background(), p.Pairs, 2, func(r PairResult) error {
		got = append(got, r)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, level.Low, got[0].Result.Level)
	assert.Equal(t, StatusOK, got[0].Result.Status())
	assert.Equal(t, level.High, got[1].Result.Level)
	assert.Equal(t, StatusOK, got[1].Result.Status())
	assert.Error(t, got[2].Err)
}
