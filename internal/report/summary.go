package report

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/inodb/vcf-anon/internal/anonymize"
	"github.com/inodb/vcf-anon/internal/verify"
)

// Failed counts results that need re-anonymization.
func Failed(results []verify.Result) int {
	n := 0
	for _, r := range results {
		if !r.OK() {
			n++
		}
	}
	return n
}

// WriteSummary writes the verification summary followed by one line per
// verified pair.
func WriteSummary(w io.Writer, results []verify.Result, reportPath string, elapsed time.Duration) {
	fmt.Fprintf(w, "\nVerification Summary:\n")
	fmt.Fprintf(w, "  Pairs checked:            %d\n", len(results))
	fmt.Fprintf(w, "  Need re-anonymization:    %d\n", Failed(results))
	fmt.Fprintf(w, "  Elapsed:                  %.3fs\n", elapsed.Seconds())
	fmt.Fprintf(w, "  Report:                   %s\n", reportPath)
	if len(results) == 0 {
		return
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t(meta %d/%d, variant %d/%d)\n",
			r.Filename, r.Status(), r.RateString(),
			r.MetadataMasked, r.MetadataTargets,
			r.VariantMasked, r.VariantTargets)
	}
	tw.Flush()
}

// WriteAnonymizeSummary writes the per-file counts of an anonymization run.
func WriteAnonymizeSummary(w io.Writer, files []anonymize.FileResult, elapsed time.Duration) {
	processed, failed := 0, 0
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Output\tRecords\tSTR_masked\tMAF_suppressed\tStatus")
	for _, f := range files {
		status := "ok"
		if f.Err != nil {
			status = "error"
			failed++
		} else {
			processed++
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n",
			f.Output, f.Stats.Records, f.Stats.STRMasked, f.Stats.MAFSuppressed, status)
	}
	tw.Flush()

	fmt.Fprintf(w, "\nAnonymization Summary:\n")
	fmt.Fprintf(w, "  Processed files:  %d\n", processed)
	if failed > 0 {
		fmt.Fprintf(w, "  Failed files:     %d\n", failed)
	}
	fmt.Fprintf(w, "  Elapsed:          %.2fs\n", elapsed.Seconds())
}
