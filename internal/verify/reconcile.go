package verify

import (
	"fmt"
	"slices"
	"strings"

	"github.com/inodb/vcf-anon/internal/heuristic"
	"github.com/inodb/vcf-anon/internal/vcf"
)

// Reconciliation tracks per-site verdicts for one file pair.
//
// A site moves from unseen to either success or error. Success is absorbing:
// it removes the site from the error set and later failures at the same site
// are ignored.
type Reconciliation struct {
	success map[Site]struct{}
	errors  map[Site]struct{}
}

// NewReconciliation returns an empty reconciliation.
func NewReconciliation() *Reconciliation {
	return &Reconciliation{
		success: make(map[Site]struct{}),
		errors:  make(map[Site]struct{}),
	}
}

// Succeed records a successful check at site.
func (r *Reconciliation) Succeed(site Site) {
	r.success[site] = struct{}{}
	delete(r.errors, site)
}

// Fail records a failed check at site unless it already succeeded.
func (r *Reconciliation) Fail(site Site) {
	if _, ok := r.success[site]; ok {
		return
	}
	r.errors[site] = struct{}{}
}

// Succeeded reports whether site has been judged successful.
func (r *Reconciliation) Succeeded(site Site) bool {
	_, ok := r.success[site]
	return ok
}

// Masked returns the number of successful sites.
func (r *Reconciliation) Masked() int {
	return len(r.success)
}

// ErrorPositions returns the failing sites as "chrom:pos", sorted
// lexicographically.
func (r *Reconciliation) ErrorPositions() []string {
	out := make([]string, 0, len(r.errors))
	for s := range r.errors {
		out = append(out, s.String())
	}
	slices.Sort(out)
	return out
}

// Reconcile scans the anonymized stream once and judges every record that
// falls on a target site.
func Reconcile(r vcf.RecordReader, targets *Targets, threshold float64) (*Reconciliation, error) {
	rec := NewReconciliation()
	for {
		record, err := r.Next()
		if err != nil {
			return nil, fmt.Errorf("reconcile: %w", err)
		}
		if record == nil {
			return rec, nil
		}

		site := SiteOf(record)
		target, ok := targets.Get(site)
		if !ok || rec.Succeeded(site) {
			continue
		}

		if Masked(target, record, threshold) {
			rec.Succeed(site)
		} else {
			rec.Fail(site)
		}
	}
}

// Masked reports whether the anonymized record accounts for target.
//
// An STR target needs changed alternates carrying the mask character. A MAF
// target passes when the frequency can no longer be estimated, is no longer
// rare, or is still rare with every alternate removed.
func Masked(target Target, rec *vcf.Record, threshold float64) bool {
	switch target.Kind {
	case KindSTR:
		if slices.Equal(rec.Alt, target.Alt) {
			return false
		}
		for _, a := range rec.Alt {
			if strings.ContainsRune(a, heuristic.MaskChar) {
				return true
			}
		}
		return false
	case KindMAF:
		maf, ok := heuristic.EstimateMAF(rec.Info)
		if !ok || maf >= threshold {
			return true
		}
		return rec.IsNonVariant()
	}
	return false
}
