// Package vcf provides VCF file parsing functionality.
package vcf

import (
	"strconv"
	"strings"
)

// MissingAllele is the ALT sentinel meaning "no alternate allele".
const MissingAllele = "."

// Record represents a single data line from a VCF file.
// Columns the anonymizer never changes are kept as raw text so they are
// written back exactly as read.
type Record struct {
	Chrom         string   // Chromosome name (e.g., "12", "chr12")
	Pos           int64    // 1-based genomic position
	ID            string   // Variant identifier (e.g., rs ID)
	Ref           string   // Reference allele
	Alt           []string // Alternate alleles in file order
	Qual          string   // Raw QUAL column
	Filter        string   // Filter status (PASS or filter name)
	RawInfo       string   // Raw INFO column
	Info          Info     // Parsed INFO field
	SampleColumns string   // FORMAT + sample columns, tab-joined
}

// IsNonVariant returns true if the record has no alternate allele other
// than the missing sentinel.
func (r *Record) IsNonVariant() bool {
	for _, a := range r.Alt {
		if a != MissingAllele {
			return false
		}
	}
	return true
}

// AltString returns the ALT column as written in a VCF line.
func (r *Record) AltString() string {
	if len(r.Alt) == 0 {
		return MissingAllele
	}
	return strings.Join(r.Alt, ",")
}

// Location formats the record's site as "chrom:pos".
func (r *Record) Location() string {
	return FormatLocation(r.Chrom, r.Pos)
}

// FormatLocation formats a site as "chrom:pos".
func FormatLocation(chrom string, pos int64) string {
	return chrom + ":" + strconv.FormatInt(pos, 10)
}

// Info holds INFO key-value pairs. Values are split on commas; flag-type
// keys map to an empty slice.
type Info map[string][]string

// Values returns the values for key and whether key is present.
func (i Info) Values(key string) ([]string, bool) {
	v, ok := i[key]
	return v, ok
}

// parseInfo parses the INFO field into a map.
func parseInfo(info string) Info {
	result := make(Info)
	if info == "" || info == "." {
		return result
	}

	for _, kv := range strings.Split(info, ";") {
		if kv == "" {
			continue
		}
		key, val, ok := strings.Cut(kv, "=")
		if ok {
			result[key] = strings.Split(val, ",")
		} else {
			// Flag-type INFO field
			result[key] = []string{}
		}
	}

	return result
}

// parseAlt splits the ALT column into alleles.
func parseAlt(alt string) []string {
	if alt == "" {
		return []string{MissingAllele}
	}
	return strings.Split(alt, ",")
}
