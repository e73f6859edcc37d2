// Package heuristic implements the re-identification heuristics shared by
// anonymization and verification: short tandem repeat (STR) detection and
// masking, and site minor allele frequency (MAF) estimation.
//
// Everything here is pure: the same inputs always produce the same outputs,
// so masking and checking classify records identically.
package heuristic

import (
	"errors"
	"fmt"
)

// Defaults used when no configuration overrides them.
const (
	DefaultMAFThreshold = 0.01
	DefaultMinMotif     = 1
	DefaultMaxMotif     = 6
	DefaultMinRepeat    = 7
)

// MaskChar replaces masked bases.
const MaskChar = 'N'

// ErrInvalidParams is returned for parameters no pattern set can be built from.
var ErrInvalidParams = errors.New("invalid heuristic parameters")

// Params configures both heuristics.
type Params struct {
	MAFThreshold float64 `mapstructure:"maf_threshold" yaml:"maf_threshold"`
	MinMotif     int     `mapstructure:"min_motif" yaml:"min_motif"`
	MaxMotif     int     `mapstructure:"max_motif" yaml:"max_motif"`
	MinRepeat    int     `mapstructure:"min_repeat" yaml:"min_repeat"`
}

// DefaultParams returns the default heuristic parameters.
func DefaultParams() Params {
	return Params{
		MAFThreshold: DefaultMAFThreshold,
		MinMotif:     DefaultMinMotif,
		MaxMotif:     DefaultMaxMotif,
		MinRepeat:    DefaultMinRepeat,
	}
}

// Validate checks that p describes a usable pattern set and threshold.
func (p Params) Validate() error {
	switch {
	case p.MinMotif < 1:
		return fmt.Errorf("%w: min motif %d must be at least 1", ErrInvalidParams, p.MinMotif)
	case p.MaxMotif < p.MinMotif:
		return fmt.Errorf("%w: max motif %d is below min motif %d", ErrInvalidParams, p.MaxMotif, p.MinMotif)
	case p.MinRepeat < 1:
		return fmt.Errorf("%w: min repeat %d must be at least 1", ErrInvalidParams, p.MinRepeat)
	case p.MAFThreshold < 0 || p.MAFThreshold > 1:
		return fmt.Errorf("%w: maf threshold %g outside [0,1]", ErrInvalidParams, p.MAFThreshold)
	}
	return nil
}
