// Package anonymize applies low or high level anonymization to VCF records
// and files.
package anonymize

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/inodb/vcf-anon/internal/heuristic"
	"github.com/inodb/vcf-anon/internal/level"
	"github.com/inodb/vcf-anon/internal/vcf"
)

// Outcome describes what Transform did to a record.
type Outcome int

const (
	// OutcomeUnchanged means the record's alleles were left as they were.
	OutcomeUnchanged Outcome = iota
	// OutcomeNonVariant means the record had no alternate allele.
	OutcomeNonVariant
	// OutcomeSTR means at least one alternate allele was STR-masked.
	OutcomeSTR
	// OutcomeMAF means the alternate alleles were suppressed as rare.
	OutcomeMAF
)

// Stats counts record outcomes for one stream.
type Stats struct {
	Records       int
	NonVariant    int
	STRMasked     int
	MAFSuppressed int
}

func (s *Stats) add(o Outcome) {
	s.Records++
	switch o {
	case OutcomeNonVariant:
		s.NonVariant++
	case OutcomeSTR:
		s.STRMasked++
	case OutcomeMAF:
		s.MAFSuppressed++
	}
}

// Engine anonymizes records one at a time. It keeps no state between records.
type Engine struct {
	level    level.Level
	params   heuristic.Params
	patterns *heuristic.Patterns
	logger   *zap.Logger
}

// NewEngine creates an engine for the given level and parameters.
func NewEngine(l level.Level, params heuristic.Params) (*Engine, error) {
	patterns, err := heuristic.NewPatterns(params)
	if err != nil {
		return nil, err
	}
	return &Engine{
		level:    l,
		params:   params,
		patterns: patterns,
		logger:   zap.NewNop(),
	}, nil
}

// SetLogger sets the logger for per-record debug and per-file info messages.
func (e *Engine) SetLogger(l *zap.Logger) {
	e.logger = l
}

// Level returns the engine's anonymization level.
func (e *Engine) Level() level.Level {
	return e.level
}

// Transform anonymizes rec in place.
//
// Non-variant records and every record at low level pass through. At high
// level each alternate allele is STR-masked independently; only when no
// allele was masked is the site MAF estimated, and a site rarer than the
// threshold has its alternates replaced by the single "." sentinel.
func (e *Engine) Transform(rec *vcf.Record) Outcome {
	if rec.IsNonVariant() {
		return OutcomeNonVariant
	}
	if e.level != level.High {
		return OutcomeUnchanged
	}

	strModified := false
	alts := make([]string, len(rec.Alt))
	for i, alt := range rec.Alt {
		masked, ok := e.patterns.MaskAllele(alt)
		if ok {
			strModified = true
		}
		alts[i] = masked
	}
	rec.Alt = alts

	if strModified {
		e.logger.Debug("masked STR allele",
			zap.String("chrom", rec.Chrom),
			zap.Int64("pos", rec.Pos))
		return OutcomeSTR
	}

	if maf, ok := heuristic.EstimateMAF(rec.Info); ok && maf < e.params.MAFThreshold {
		rec.Alt = []string{vcf.MissingAllele}
		e.logger.Debug("suppressed rare variant",
			zap.String("chrom", rec.Chrom),
			zap.Int64("pos", rec.Pos),
			zap.Float64("maf", maf))
		return OutcomeMAF
	}

	return OutcomeUnchanged
}

// Stream transforms every record from r and writes it to w, in order.
// Read and write failures are returned unchanged.
func (e *Engine) Stream(r vcf.RecordReader, w vcf.RecordWriter) (Stats, error) {
	var stats Stats
	for {
		rec, err := r.Next()
		if err != nil {
			return stats, fmt.Errorf("read record: %w", err)
		}
		if rec == nil {
			return stats, nil
		}

		stats.add(e.Transform(rec))

		if err := w.Write(rec); err != nil {
			return stats, fmt.Errorf("write record %s: %w", rec.Location(), err)
		}
	}
}

// File anonymizes the VCF at inPath into outPath, rewriting header metadata
// at every level. On failure the partial output is removed.
func (e *Engine) File(inPath, outPath string) (stats Stats, err error) {
	parser, err := vcf.NewParser(inPath)
	if err != nil {
		return stats, err
	}
	defer parser.Close()

	w, err := vcf.Create(outPath)
	if err != nil {
		return stats, err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(outPath)
		}
	}()

	if err := w.WriteHeader(RewriteHeader(parser.Header())); err != nil {
		return stats, fmt.Errorf("write header: %w", err)
	}

	stats, err = e.Stream(parser, w)
	if err != nil {
		return stats, err
	}

	e.logger.Info("anonymized file",
		zap.String("input", inPath),
		zap.String("output", outPath),
		zap.String("level", string(e.level)),
		zap.Int("records", stats.Records),
		zap.Int("str_masked", stats.STRMasked),
		zap.Int("maf_suppressed", stats.MAFSuppressed))

	return stats, nil
}
