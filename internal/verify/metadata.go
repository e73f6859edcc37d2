package verify

import (
	"strings"

	"github.com/inodb/vcf-anon/internal/vcf"
)

// MetadataCheck counts header metadata targets and how many were masked.
type MetadataCheck struct {
	Targets int
	Masked  int
}

// CheckMetadata compares the original and anonymized header lines.
//
// A command line in the original is masked when the anonymized header holds
// exactly "##cmdline=.". A reference in the original is masked when some
// anonymized reference line carries no path separator.
func CheckMetadata(origin, anon []string) MetadataCheck {
	var m MetadataCheck

	if hasPrefixLine(origin, vcf.CmdlinePrefix) {
		m.Targets++
		for _, l := range anon {
			if strings.TrimSpace(l) == vcf.CmdlinePrefix+"." {
				m.Masked++
				break
			}
		}
	}

	if hasPrefixLine(origin, vcf.ReferencePrefix) {
		m.Targets++
		for _, l := range anon {
			if strings.HasPrefix(l, vcf.ReferencePrefix) && !strings.Contains(l, "/") {
				m.Masked++
				break
			}
		}
	}

	return m
}

func hasPrefixLine(lines []string, prefix string) bool {
	for _, l := range lines {
		if strings.HasPrefix(l, prefix) {
			return true
		}
	}
	return false
}
