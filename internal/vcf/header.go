package vcf

// Header meta-information prefixes that carry run-specific details.
const (
	CmdlinePrefix   = "##cmdline="
	ReferencePrefix = "##reference="
)
