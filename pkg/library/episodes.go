package library

import (
	"slices"
	"strconv"
	"strings"
)

// CollapseThreshold is the episode count above which the episode grid starts
// collapsed behind the bulk controls.
const CollapseThreshold = 24

// Progress is the watched-episode state of one anime. Every operation
// returns a full replacement set, sorted and free of duplicates; callers
// persist it.
type Progress struct {
	Total   int
	Watched []int
}

func normalize(eps []int) []int {
	out := make([]int, 0, len(eps))
	out = append(out, eps...)
	slices.Sort(out)
	return slices.Compact(out)
}

func (p Progress) Has(ep int) bool {
	return slices.Contains(p.Watched, ep)
}

// Toggle flips membership of ep. ep is not checked against Total.
func (p Progress) Toggle(ep int) []int {
	out := make([]int, 0, len(p.Watched)+1)
	found := false
	for _, w := range p.Watched {
		if w == ep {
			found = true
			continue
		}
		out = append(out, w)
	}
	if !found {
		out = append(out, ep)
	}
	return normalize(out)
}

// MarkUpTo marks episodes 1..min(n, Total). n < 1 leaves the set unchanged
// and reports false.
func (p Progress) MarkUpTo(n int) ([]int, bool) {
	if n < 1 {
		return normalize(p.Watched), false
	}
	return episodeRange(min(n, p.Total)), true
}

// MarkUpToInput is MarkUpTo for raw user input. Anything that is not a
// positive integer is ignored.
func (p Progress) MarkUpToInput(s string) ([]int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return normalize(p.Watched), false
	}
	return p.MarkUpTo(n)
}

func (p Progress) MarkAll() []int {
	return episodeRange(p.Total)
}

func (p Progress) ClearAll() []int {
	return []int{}
}

// Prune drops episodes outside 1..Total.
func (p Progress) Prune() []int {
	out := make([]int, 0, len(p.Watched))
	for _, w := range p.Watched {
		if w >= 1 && w <= p.Total {
			out = append(out, w)
		}
	}
	return normalize(out)
}

// Collapsed reports whether the UI should default to bulk-entry mode.
func (p Progress) Collapsed() bool {
	return p.Total > CollapseThreshold
}

func episodeRange(n int) []int {
	out := make([]int, 0, max(n, 0))
	for i := 1; i <= n; i++ {
		out = append(out, i)
	}
	return out
}
