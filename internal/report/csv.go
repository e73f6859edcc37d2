// Package report writes verification results as a CSV report and a console
// summary.
package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/inodb/vcf-anon/internal/verify"
)

// Columns is the CSV report header.
var Columns = []string{
	"filename",
	"anonymization_level",
	"anonymization_rate",
	"verification_result",
	"total_targets",
	"metadata_targets",
	"variant_targets",
	"metadata_masked",
	"variant_masked",
	"unmasked_positions",
}

// CSVWriter writes one report row per verified file pair.
type CSVWriter struct {
	w *csv.Writer
}

// NewCSVWriter creates a new report writer.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

// WriteHeader writes the header line.
func (cw *CSVWriter) WriteHeader() error {
	return cw.w.Write(Columns)
}

// Write writes a single result.
func (cw *CSVWriter) Write(r verify.Result) error {
	return cw.w.Write([]string{
		r.Filename,
		string(r.Level),
		r.RateString(),
		r.Status(),
		strconv.Itoa(r.TotalTargets()),
		strconv.Itoa(r.MetadataTargets),
		strconv.Itoa(r.VariantTargets),
		strconv.Itoa(r.MetadataMasked),
		strconv.Itoa(r.VariantMasked),
		r.UnmaskedPositions(),
	})
}

// Flush flushes buffered rows and returns any write error.
func (cw *CSVWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}
