// Package verify checks that anonymized VCF files actually mask what the
// anonymizer is expected to mask.
//
// An original file is scanned once to collect target sites (STR alleles and
// rare variants); the anonymized file is then scanned once and each target
// site is judged against what the transformed record looks like.
package verify

import (
	"fmt"

	"github.com/inodb/vcf-anon/internal/heuristic"
	"github.com/inodb/vcf-anon/internal/vcf"
)

// Site identifies a genomic position. Multiple records may share a site.
type Site struct {
	Chrom string
	Pos   int64
}

// String formats the site as "chrom:pos".
func (s Site) String() string {
	return vcf.FormatLocation(s.Chrom, s.Pos)
}

// SiteOf returns the site of rec.
func SiteOf(rec *vcf.Record) Site {
	return Site{Chrom: rec.Chrom, Pos: rec.Pos}
}

// Kind classifies why a site must be masked.
type Kind int

const (
	// KindSTR marks a site with a short tandem repeat allele.
	KindSTR Kind = iota
	// KindMAF marks a site whose minor allele frequency is below threshold.
	KindMAF
)

func (k Kind) String() string {
	switch k {
	case KindSTR:
		return "STR"
	case KindMAF:
		return "MAF"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Target records the classification and original alternates of a site.
type Target struct {
	Kind Kind
	Alt  []string
}

// Targets is a site-keyed target index that remembers first-insertion order.
// Setting an existing site replaces its entry and keeps its position.
type Targets struct {
	index   map[Site]int
	sites   []Site
	entries []Target
}

// NewTargets returns an empty index.
func NewTargets() *Targets {
	return &Targets{index: make(map[Site]int)}
}

// Set stores t for site, replacing any earlier entry.
func (t *Targets) Set(site Site, target Target) {
	if i, ok := t.index[site]; ok {
		t.entries[i] = target
		return
	}
	t.index[site] = len(t.sites)
	t.sites = append(t.sites, site)
	t.entries = append(t.entries, target)
}

// Get returns the target for site.
func (t *Targets) Get(site Site) (Target, bool) {
	i, ok := t.index[site]
	if !ok {
		return Target{}, false
	}
	return t.entries[i], true
}

// Len returns the number of target sites.
func (t *Targets) Len() int {
	return len(t.sites)
}

// Sites returns the target sites in first-insertion order.
func (t *Targets) Sites() []Site {
	out := make([]Site, len(t.sites))
	copy(out, t.sites)
	return out
}

// Count returns the number of targets of kind k.
func (t *Targets) Count(k Kind) int {
	n := 0
	for _, e := range t.entries {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// Classify decides whether rec is a masking target. STR takes priority
// over MAF when both apply.
func Classify(rec *vcf.Record, threshold float64, pat *heuristic.Patterns) (Kind, bool) {
	if rec.IsNonVariant() {
		return 0, false
	}

	for _, alt := range rec.Alt {
		if alt == vcf.MissingAllele {
			continue
		}
		if _, ok := pat.Detect(alt); ok {
			return KindSTR, true
		}
	}

	if maf, ok := heuristic.EstimateMAF(rec.Info); ok && maf < threshold {
		return KindMAF, true
	}
	return 0, false
}

// CollectTargets scans r once and returns every site that anonymization at
// high level is expected to mask. When several records share a site the
// last qualifying record's classification wins.
func CollectTargets(r vcf.RecordReader, threshold float64, pat *heuristic.Patterns) (*Targets, error) {
	targets := NewTargets()
	for {
		rec, err := r.Next()
		if err != nil {
			return nil, fmt.Errorf("collect targets: %w", err)
		}
		if rec == nil {
			return targets, nil
		}

		kind, ok := Classify(rec, threshold, pat)
		if !ok {
			continue
		}
		alt := make([]string, len(rec.Alt))
		copy(alt, rec.Alt)
		targets.Set(SiteOf(rec), Target{Kind: kind, Alt: alt})
	}
}
