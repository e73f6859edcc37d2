package verify

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/inodb/vcf-anon/internal/heuristic"
	"github.com/inodb/vcf-anon/internal/level"
	"github.com/inodb/vcf-anon/internal/vcf"
)

// Verdicts written to reports.
const (
	StatusOK   = "ok"
	StatusFail = "fail"
)

// NoPositions is written in place of an empty unmasked position list.
const NoPositions = "-"

// Result is the verdict for one original/anonymized file pair.
type Result struct {
	Filename        string // anonymized file name
	Origin          string // original file path
	Anonymized      string // anonymized file path
	Level           level.Level
	MetadataTargets int
	MetadataMasked  int
	VariantTargets  int
	VariantMasked   int
	Unmasked        []string // failing sites, sorted "chrom:pos"
}

// TotalTargets returns metadata plus variant targets.
func (r Result) TotalTargets() int {
	return r.MetadataTargets + r.VariantTargets
}

// TotalMasked returns metadata plus variant masked counts.
func (r Result) TotalMasked() int {
	return r.MetadataMasked + r.VariantMasked
}

// OK reports whether every target was masked. A pair with no targets is ok.
func (r Result) OK() bool {
	return r.TotalMasked() == r.TotalTargets()
}

// Status returns StatusOK or StatusFail.
func (r Result) Status() string {
	if r.OK() {
		return StatusOK
	}
	return StatusFail
}

// Rate returns the masked percentage, 100 when there are no targets.
func (r Result) Rate() float64 {
	total := r.TotalTargets()
	if total == 0 {
		return 100
	}
	return float64(r.TotalMasked()) / float64(total) * 100
}

// RateString formats the rate as "P.PP%(masked/total)".
func (r Result) RateString() string {
	return fmt.Sprintf("%.2f%%(%d/%d)", r.Rate(), r.TotalMasked(), r.TotalTargets())
}

// UnmaskedPositions joins the failing sites with ";", or returns NoPositions
// when the pair is ok or no site failed.
func (r Result) UnmaskedPositions() string {
	if r.OK() || len(r.Unmasked) == 0 {
		return NoPositions
	}
	return strings.Join(r.Unmasked, ";")
}

// Verifier checks anonymized files against their originals.
type Verifier struct {
	params   heuristic.Params
	patterns *heuristic.Patterns
	logger   *zap.Logger
}

// NewVerifier creates a verifier using the same parameters the anonymizer
// was run with.
func NewVerifier(params heuristic.Params) (*Verifier, error) {
	patterns, err := heuristic.NewPatterns(params)
	if err != nil {
		return nil, err
	}
	return &Verifier{
		params:   params,
		patterns: patterns,
		logger:   zap.NewNop(),
	}, nil
}

// SetLogger sets the logger for per-pair messages.
func (v *Verifier) SetLogger(l *zap.Logger) {
	v.logger = l
}

// Pair verifies anonPath against originPath. The level is inferred from the
// anonymized file name: low-level files are judged on header metadata only,
// high-level files on metadata and variant sites.
func (v *Verifier) Pair(ctx context.Context, originPath, anonPath string) (Result, error) {
	name := filepath.Base(anonPath)
	res := Result{
		Filename:   name,
		Origin:     originPath,
		Anonymized: anonPath,
		Level:      level.FromFilename(name),
	}

	originHeader, err := vcf.ReadHeader(originPath)
	if err != nil {
		return res, err
	}
	anonHeader, err := vcf.ReadHeader(anonPath)
	if err != nil {
		return res, err
	}
	meta := CheckMetadata(originHeader, anonHeader)
	res.MetadataTargets = meta.Targets
	res.MetadataMasked = meta.Masked

	if res.Level == level.High {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := v.variants(originPath, anonPath, &res); err != nil {
			return res, err
		}
	}

	v.logger.Info("verified pair",
		zap.String("origin", originPath),
		zap.String("file", name),
		zap.String("level", string(res.Level)),
		zap.String("status", res.Status()),
		zap.Int("total_targets", res.TotalTargets()),
		zap.Int("masked", res.TotalMasked()))

	return res, nil
}

func (v *Verifier) variants(originPath, anonPath string, res *Result) error {
	origin, err := vcf.NewParser(originPath)
	if err != nil {
		return err
	}
	defer origin.Close()

	targets, err := CollectTargets(origin, v.params.MAFThreshold, v.patterns)
	if err != nil {
		return fmt.Errorf("%s: %w", originPath, err)
	}
	v.logger.Debug("collected targets",
		zap.String("origin", originPath),
		zap.Int("str", targets.Count(KindSTR)),
		zap.Int("maf", targets.Count(KindMAF)))

	anon, err := vcf.NewParser(anonPath)
	if err != nil {
		return err
	}
	defer anon.Close()

	rec, err := Reconcile(anon, targets, v.params.MAFThreshold)
	if err != nil {
		return fmt.Errorf("%s: %w", anonPath, err)
	}

	res.VariantTargets = targets.Len()
	res.VariantMasked = rec.Masked()
	res.Unmasked = rec.ErrorPositions()
	return nil
}
