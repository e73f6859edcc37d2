package verify

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vcf-anon/internal/anonymize"
	"github.com/inodb/vcf-anon/internal/heuristic"
	"github.com/inodb/vcf-anon/internal/level"
)

const originVCF = `##fileformat=VCFv4.2
##cmdline=bcftools view -O z /home/alice/raw.vcf
##reference=file:///data/refs/GRCh38.fa
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO
1	100	rs1	A	G	50	PASS	AF=0.3
1	200	.	C	CAAAAAAA,T	.	PASS	AC=2,5;AN=100
1	300	.	G	T	.	PASS	MAF=0.005
2	400	.	G	.	.	.	.
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func newVerifier(t *testing.T) *Verifier {
	t.Helper()
	v, err := NewVerifier(heuristic.DefaultParams())
	require.NoError(t, err)
	return v
}

func anonymizeTo(t *testing.T, l level.Level, origin, outDir string) string {
	t.Helper()
	e, err := anonymize.NewEngine(l, heuristic.DefaultParams())
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(outDir, 0o755))
	out := e.OutputPath(outDir, origin)
	_, err = e.File(origin, out)
	require.NoError(t, err)
	return out
}

func TestResult_Rate(t *testing.T) {
	r := Result{MetadataTargets: 2, MetadataMasked: 2, VariantTargets: 3, VariantMasked: 2, Unmasked: []string{"1:5"}}
	assert.Equal(t, 5, r.TotalTargets())
	assert.Equal(t, 4, r.TotalMasked())
	assert.Equal(t, "80.00%(4/5)", r.RateString())
	assert.Equal(t, StatusFail, r.Status())
	assert.Equal(t, "1:5", r.UnmaskedPositions())

	var empty Result
	assert.Equal(t, "100.00%(0/0)", empty.RateString())
	assert.Equal(t, StatusOK, empty.Status())
	assert.Equal(t, NoPositions, empty.UnmaskedPositions())

	noSites := Result{VariantTargets: 1}
	assert.Equal(t, StatusFail, noSites.Status())
	assert.Equal(t, NoPositions, noSites.UnmaskedPositions())

	multi := Result{VariantTargets: 2, Unmasked: []string{"1:10", "2:3"}}
	assert.Equal(t, "1:10;2:3", multi.UnmaskedPositions())
}

func TestVerifier_PairHighOK(t *testing.T) {
	dir := t.TempDir()
	origin := writeFile(t, dir, "s1.vcf", originVCF)
	anon := anonymizeTo(t, level.High, origin, filepath.Join(dir, "anon"))

	v := newVerifier(t)
	res, err := v.Pair(context.Background(), origin, anon)
	require.NoError(t, err)

	assert.Equal(t, "high_0.01_anony_s1.vcf", res.Filename)
	assert.Equal(t, level.High, res.Level)
	assert.Equal(t, 2, res.MetadataTargets)
	assert.Equal(t, 2, res.MetadataMasked)
	assert.Equal(t, 2, res.VariantTargets)
	assert.Equal(t, 2, res.VariantMasked)
	assert.Equal(t, StatusOK, res.Status())
	assert.Equal(t, "100.00%(4/4)", res.RateString())
	assert.Equal(t, NoPositions, res.UnmaskedPositions())

	again, err := v.Pair(context.Background(), origin, anon)
	require.NoError(t, err)
	assert.Equal(t, res, again)
}

func TestVerifier_PairLowSkipsVariants(t *testing.T) {
	dir := t.TempDir()
	origin := writeFile(t, dir, "s1.vcf", originVCF)
	anon := anonymizeTo(t, level.Low, origin, dir)

	res, err := newVerifier(t).Pair(context.Background(), origin, anon)
	require.NoError(t, err)

	assert.Equal(t, level.Low, res.Level)
	assert.Zero(t, res.VariantTargets)
	assert.Zero(t, res.VariantMasked)
	assert.Equal(t, "100.00%(2/2)", res.RateString())
	assert.Equal(t, StatusOK, res.Status())
}

func TestVerifier_PairHighDetectsUnmasked(t *testing.T) {
	dir := t.TempDir()
	origin := writeFile(t, dir, "s1.vcf", originVCF)

	// only the header was rewritten
	tampered := strings.Replace(originVCF, "##cmdline=bcftools view -O z /home/alice/raw.vcf", "##cmdline=.", 1)
	tampered = strings.Replace(tampered, "file:///data/refs/GRCh38.fa", "GRCh38.fa", 1)
	anon := writeFile(t, dir, "strong_anony_s1.vcf", tampered)

	res, err := newVerifier(t).Pair(context.Background(), origin, anon)
	require.NoError(t, err)

	assert.Equal(t, level.High, res.Level)
	assert.Equal(t, 2, res.MetadataMasked)
	assert.Equal(t, 2, res.VariantTargets)
	assert.Zero(t, res.VariantMasked)
	assert.Equal(t, StatusFail, res.Status())
	assert.Equal(t, "50.00%(2/4)", res.RateString())
	assert.Equal(t, "1:200;1:300", res.UnmaskedPositions())
}

func TestVerifier_PairMissingFile(t *testing.T) {
	dir := t.TempDir()
	origin := writeFile(t, dir, "s1.vcf", originVCF)

	_, err := newVerifier(t).Pair(context.Background(), origin, filepath.Join(dir, "high_0.01_anony_s1.vcf"))
	assert.Error(t, err)
}

func TestVerifier_PairCancelled(t *testing.T) {
	dir := t.TempDir()
	origin := writeFile(t, dir, "s1.vcf", originVCF)
	anon := anonymizeTo(t, level.High, origin, dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newVerifier(t).Pair(ctx, origin, anon)
	assert.ErrorIs(t, err, context.Canceled)
}
