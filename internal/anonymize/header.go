package anonymize

import (
	"path"
	"strings"

	"github.com/inodb/vcf-anon/internal/vcf"
)

// RewriteHeader returns a copy of lines with descriptive metadata removed:
// the command line is replaced by "." and the reference keeps only its
// file name.
func RewriteHeader(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, vcf.CmdlinePrefix):
			out[i] = vcf.CmdlinePrefix + "."
		case strings.HasPrefix(line, vcf.ReferencePrefix):
			ref := strings.TrimSpace(strings.TrimPrefix(line, vcf.ReferencePrefix))
			ref = strings.ReplaceAll(ref, "file://", "")
			out[i] = vcf.ReferencePrefix + path.Base(ref)
		default:
			out[i] = line
		}
	}
	return out
}
