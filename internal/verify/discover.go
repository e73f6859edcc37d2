package verify

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/inodb/vcf-anon/internal/batch"
	"github.com/inodb/vcf-anon/internal/level"
	"github.com/inodb/vcf-anon/internal/vcf"
)

// FilePair names an original file and one of its anonymized copies.
type FilePair struct {
	Origin     string
	Anonymized string
}

// Pairing is the result of matching two directories.
type Pairing struct {
	Pairs     []FilePair
	Unmatched []string // original files with no anonymized copy
}

// FindPairs matches every VCF in originDir with the files in anonDir whose
// name after the first "anony_" equals the original name. Low-level copies
// come before high-level ones; each group is sorted by name. Copies without
// a recognized level prefix are ignored.
func FindPairs(originDir, anonDir string) (Pairing, error) {
	var p Pairing

	origins, err := vcf.ListFiles(originDir)
	if err != nil {
		return p, err
	}
	anons, err := vcf.ListFiles(anonDir)
	if err != nil {
		return p, err
	}

	for _, orig := range origins {
		var low, high []string
		for _, a := range anons {
			if level.SourceName(a) != orig {
				continue
			}
			switch {
			case level.IsLow(a):
				low = append(low, a)
			case level.IsHigh(a):
				high = append(high, a)
			}
		}
		if len(low)+len(high) == 0 {
			p.Unmatched = append(p.Unmatched, filepath.Join(originDir, orig))
			continue
		}

		sort.Strings(low)
		sort.Strings(high)
		for _, a := range append(low, high...) {
			p.Pairs = append(p.Pairs, FilePair{
				Origin:     filepath.Join(originDir, orig),
				Anonymized: filepath.Join(anonDir, a),
			})
		}
	}
	return p, nil
}

// PairResult is the outcome of verifying one pair.
type PairResult struct {
	Pair   FilePair
	Result Result
	Err    error
}

// Run verifies pairs using workers goroutines and calls fn once per pair in
// input order. A pair that cannot be read is reported through
// PairResult.Err. A non-nil error from fn stops the run and is returned.
func (v *Verifier) Run(ctx context.Context, pairs []FilePair, workers int, fn func(PairResult) error) error {
	job := func(ctx context.Context, fp FilePair) (Result, error) {
		return v.Pair(ctx, fp.Origin, fp.Anonymized)
	}

	results := batch.Parallel(ctx, batch.Items(pairs), workers, job)
	return batch.OrderedCollect(results, func(r batch.WorkResult[FilePair, Result]) error {
		return fn(PairResult{Pair: r.Input, Result: r.Output, Err: r.Err})
	})
}
