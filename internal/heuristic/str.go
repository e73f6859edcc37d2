package heuristic

import "strings"

// motifMatcher finds a k-base [ACGT] motif followed by at least
// minRepeat-1 further exact copies of itself.
type motifMatcher struct {
	k         int
	minRepeat int
}

// find returns the leftmost qualifying run in seq as [start, end).
// The run is extended over every contiguous copy of the motif.
func (m motifMatcher) find(seq string) (start, end int, ok bool) {
	need := m.k * m.minRepeat
	for i := 0; i+need <= len(seq); i++ {
		if !isACGT(seq[i : i+m.k]) {
			continue
		}
		runEnd := extendRun(seq, i, seq[i:i+m.k])
		if (runEnd-i)/m.k >= m.minRepeat {
			return i, runEnd, true
		}
	}
	return 0, 0, false
}

// Patterns is a precompiled STR pattern set, one matcher per motif length,
// held in ascending length order.
type Patterns struct {
	matchers  []motifMatcher
	minRepeat int
}

// NewPatterns builds the matchers for every motif length in
// [p.MinMotif, p.MaxMotif].
func NewPatterns(p Params) (*Patterns, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	pat := &Patterns{minRepeat: p.MinRepeat}
	for k := p.MinMotif; k <= p.MaxMotif; k++ {
		pat.matchers = append(pat.matchers, motifMatcher{k: k, minRepeat: p.MinRepeat})
	}
	return pat, nil
}

// MinRepeat returns the minimum repeat count the set was built with.
func (p *Patterns) MinRepeat() int {
	return p.minRepeat
}

// Detect returns the motif of the shortest motif length whose pattern matches
// anywhere in seq. The motif is taken from the leftmost match for that length.
func (p *Patterns) Detect(seq string) (string, bool) {
	for _, m := range p.matchers {
		if start, _, ok := m.find(seq); ok {
			return seq[start : start+m.k], true
		}
	}
	return "", false
}

// MaskAllele detects and masks the first STR run in seq. It returns seq
// unchanged and false when no motif length matches.
func (p *Patterns) MaskAllele(seq string) (string, bool) {
	motif, ok := p.Detect(seq)
	if !ok {
		return seq, false
	}
	masked := Mask(seq, motif, p.minRepeat)
	return masked, masked != seq
}

// Mask rewrites the first run of motif repeated at least minRepeat times in
// seq. A single-base motif masks the whole run; longer motifs keep the first
// base of each motif-length chunk and mask the rest. Bases outside the run
// are left untouched.
func Mask(seq, motif string, minRepeat int) string {
	k := len(motif)
	if k == 0 {
		return seq
	}

	start, end, ok := findLiteralRun(seq, motif, minRepeat)
	if !ok {
		return seq
	}

	var b strings.Builder
	b.Grow(len(seq))
	b.WriteString(seq[:start])

	run := seq[start:end]
	if k == 1 {
		b.WriteString(strings.Repeat(string(MaskChar), len(run)))
	} else {
		for i := 0; i < len(run); i += k {
			chunk := run[i:min(i+k, len(run))]
			if chunk != motif {
				b.WriteString(chunk)
				continue
			}
			b.WriteByte(chunk[0])
			b.WriteString(strings.Repeat(string(MaskChar), k-1))
		}
	}

	b.WriteString(seq[end:])
	return b.String()
}

// findLiteralRun returns the leftmost run of motif repeated at least
// minRepeat times.
func findLiteralRun(seq, motif string, minRepeat int) (start, end int, ok bool) {
	k := len(motif)
	for offset := 0; offset+k*minRepeat <= len(seq); {
		idx := strings.Index(seq[offset:], motif)
		if idx < 0 {
			return 0, 0, false
		}
		runStart := offset + idx
		runEnd := extendRun(seq, runStart, motif)
		if (runEnd-runStart)/k >= minRepeat {
			return runStart, runEnd, true
		}
		offset = runStart + 1
	}
	return 0, 0, false
}

// extendRun returns the end of the contiguous run of motif copies that
// begins at start.
func extendRun(seq string, start int, motif string) int {
	k := len(motif)
	end := start
	for end+k <= len(seq) && seq[end:end+k] == motif {
		end += k
	}
	return end
}

func isACGT(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'A', 'C', 'G', 'T':
		default:
			return false
		}
	}
	return true
}
