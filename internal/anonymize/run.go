package anonymize

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/inodb/vcf-anon/internal/batch"
	"github.com/inodb/vcf-anon/internal/level"
	"github.com/inodb/vcf-anon/internal/vcf"
)

// FileResult reports the outcome of anonymizing one file.
type FileResult struct {
	Input  string
	Output string
	Stats  Stats
	Err    error
}

// OutputPath returns where the anonymized copy of input is written in outDir.
func (e *Engine) OutputPath(outDir, input string) string {
	return filepath.Join(outDir, level.OutputName(e.level, e.params.MAFThreshold, filepath.Base(input)))
}

// Dir anonymizes every VCF file in inDir into outDir. See Files.
func (e *Engine) Dir(ctx context.Context, inDir, outDir string, workers int, fn func(FileResult) error) error {
	inputs, err := vcf.ListPaths(inDir)
	if err != nil {
		return err
	}
	return e.Files(ctx, inputs, outDir, workers, fn)
}

// Files anonymizes inputs into outDir using workers goroutines. fn is called
// once per file in input order; a file failure is reported through
// FileResult.Err and does not stop the run. A non-nil error from fn stops the
// run and is returned.
func (e *Engine) Files(ctx context.Context, inputs []string, outDir string, workers int, fn func(FileResult) error) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	job := func(_ context.Context, in string) (FileResult, error) {
		out := e.OutputPath(outDir, in)
		stats, err := e.File(in, out)
		return FileResult{Input: in, Output: out, Stats: stats}, err
	}

	results := batch.Parallel(ctx, batch.Items(inputs), workers, job)
	return batch.OrderedCollect(results, func(r batch.WorkResult[string, FileResult]) error {
		res := r.Output
		res.Input = r.Input
		if res.Output == "" {
			res.Output = e.OutputPath(outDir, r.Input)
		}
		res.Err = r.Err
		return fn(res)
	})
}
