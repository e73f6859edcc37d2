package heuristic

import (
	"math"
	"strconv"
)

// INFO keys consulted by EstimateMAF, in priority order.
const (
	KeyMAF = "MAF"
	KeyAF  = "AF"
	KeyAC  = "AC"
	KeyAN  = "AN"
)

// Annotations gives access to per-record annotation values by key.
// A key may be present with no values (a flag).
type Annotations interface {
	Values(key string) ([]string, bool)
}

// EstimateMAF estimates the site minor allele frequency from annotations.
//
// The first applicable source wins: a direct MAF value; otherwise AF values;
// otherwise AC counts divided by AN. For AF and AC/AN the estimate is the
// smallest of the alternate allele frequencies and the implied reference
// frequency max(0, 1-sum). Unparsable values are dropped; a missing or
// non-positive AN disables the AC/AN source. ok is false when nothing could
// be estimated.
func EstimateMAF(a Annotations) (maf float64, ok bool) {
	if vals, present := a.Values(KeyMAF); present {
		if len(vals) == 0 {
			return 0, false
		}
		return parseFloat(vals[0])
	}

	if vals, present := a.Values(KeyAF); present {
		if afs := parseFloats(vals); len(afs) > 0 {
			return minorFrequency(afs), true
		}
	}

	acVals, hasAC := a.Values(KeyAC)
	anVals, hasAN := a.Values(KeyAN)
	if hasAC && hasAN {
		if len(anVals) == 0 {
			return 0, false
		}
		an, ok := parseFloat(anVals[0])
		if !ok || an <= 0 {
			return 0, false
		}
		acs := parseFloats(acVals)
		if len(acs) == 0 {
			return 0, false
		}
		afs := make([]float64, len(acs))
		for i, ac := range acs {
			afs[i] = ac / an
		}
		return minorFrequency(afs), true
	}

	return 0, false
}

// minorFrequency returns min(max(0, 1-sum(afs)), afs...).
func minorFrequency(afs []float64) float64 {
	var sum float64
	for _, af := range afs {
		sum += af
	}
	m := math.Max(0, 1-sum)
	for _, af := range afs {
		m = math.Min(m, af)
	}
	return m
}

// parseFloats parses vals, dropping anything that is not a number.
func parseFloats(vals []string) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if f, ok := parseFloat(v); ok {
			out = append(out, f)
		}
	}
	return out
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
