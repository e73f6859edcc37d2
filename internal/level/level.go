// Package level defines anonymization levels and the file naming convention
// that records the level an output was produced at.
package level

import (
	"fmt"
	"strconv"
	"strings"
)

// Level is the anonymization strength.
type Level string

const (
	// Low rewrites descriptive header metadata only.
	Low Level = "low"
	// High additionally masks STR alleles and suppresses rare variants.
	High Level = "high"
)

// anonMarker separates the level prefix from the original file name.
const anonMarker = "anony_"

var (
	highPrefixes = []string{"high_", "strong_"}
	lowPrefixes  = []string{"low_", "weak_"}
)

// Parse converts a user-supplied level name.
func Parse(s string) (Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case Low:
		return Low, nil
	case High:
		return High, nil
	}
	return "", fmt.Errorf("unknown anonymization level %q (want low or high)", s)
}

// FromFilename infers the level an anonymized file was produced at from its
// leading token. Names without a recognized token are treated as low.
func FromFilename(name string) Level {
	if hasAnyPrefix(name, highPrefixes) {
		return High
	}
	return Low
}

// IsLow reports whether name carries a low-class prefix.
func IsLow(name string) bool {
	return hasAnyPrefix(name, lowPrefixes)
}

// IsHigh reports whether name carries a high-class prefix.
func IsHigh(name string) bool {
	return hasAnyPrefix(name, highPrefixes)
}

// OutputName returns the anonymized file name for input at level l.
// High-level names carry the MAF threshold, e.g. high_0.01_anony_x.vcf.gz.
func OutputName(l Level, mafThreshold float64, input string) string {
	if l == High {
		return "high_" + strconv.FormatFloat(mafThreshold, 'g', -1, 64) + "_" + anonMarker + input
	}
	return "low_" + anonMarker + input
}

// SourceName returns the original file name an anonymized name refers to:
// everything after the first "anony_", or the name itself when absent.
func SourceName(anonymized string) string {
	if _, after, ok := strings.Cut(anonymized, anonMarker); ok {
		return after
	}
	return anonymized
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
