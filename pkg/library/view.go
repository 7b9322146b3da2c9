package library

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/kerbaras/anitrack/pkg/data"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Filter string

const (
	FilterActive      Filter = "Active"
	FilterAll         Filter = "All"
	FilterWatching    Filter = "Watching"
	FilterCompleted   Filter = "Completed"
	FilterPlanToWatch Filter = "Plan to Watch"
)

var filters = []Filter{FilterActive, FilterAll, FilterWatching, FilterCompleted, FilterPlanToWatch}

// Filters returns every filter in display order.
func Filters() []Filter {
	return slices.Clone(filters)
}

// Next cycles to the following filter.
func (f Filter) Next() Filter {
	i := slices.Index(filters, f)
	return filters[(i+1)%len(filters)]
}

// Match reports whether a passes the status predicate.
func (f Filter) Match(a *data.Anime) bool {
	watched, total := len(a.WatchedEpisodes), a.TotalEpisodes
	switch f {
	case FilterActive:
		return watched < total
	case FilterWatching:
		return watched > 0 && watched < total
	case FilterCompleted:
		return watched == total
	case FilterPlanToWatch:
		return watched == 0
	default:
		return true
	}
}

func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "active":
		return FilterActive, nil
	case "all":
		return FilterAll, nil
	case "watching":
		return FilterWatching, nil
	case "completed", "done":
		return FilterCompleted, nil
	case "plan", "plan to watch", "plan-to-watch", "planned":
		return FilterPlanToWatch, nil
	}
	return "", fmt.Errorf("unknown filter %q", s)
}

type Sort string

const (
	SortTitleAZ  Sort = "Title (A-Z)"
	SortTitleZA  Sort = "Title (Z-A)"
	SortProgress Sort = "Progress"
)

var sorts = []Sort{SortTitleAZ, SortTitleZA, SortProgress}

func Sorts() []Sort {
	return slices.Clone(sorts)
}

func (s Sort) Next() Sort {
	i := slices.Index(sorts, s)
	return sorts[(i+1)%len(sorts)]
}

func ParseSort(s string) (Sort, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "az", "a-z", "title", "title (a-z)":
		return SortTitleAZ, nil
	case "za", "z-a", "title (z-a)":
		return SortTitleZA, nil
	case "progress":
		return SortProgress, nil
	}
	return "", fmt.Errorf("unknown sort %q", s)
}

// Apply returns the records of items whose title contains search
// (case-insensitive) and which pass filter, ordered by sort. The sort is
// stable and items itself is never reordered.
func Apply(items []*data.Anime, filter Filter, sort Sort, search string) []*data.Anime {
	needle := strings.ToLower(search)

	out := make([]*data.Anime, 0, len(items))
	for _, a := range items {
		if !strings.Contains(strings.ToLower(a.Title), needle) {
			continue
		}
		if !filter.Match(a) {
			continue
		}
		out = append(out, a)
	}

	switch sort {
	case SortProgress:
		slices.SortStableFunc(out, func(a, b *data.Anime) int {
			return cmp.Compare(b.Progress(), a.Progress())
		})
	case SortTitleZA:
		col := collate.New(language.Und)
		slices.SortStableFunc(out, func(a, b *data.Anime) int {
			return col.CompareString(b.Title, a.Title)
		})
	default:
		col := collate.New(language.Und)
		slices.SortStableFunc(out, func(a, b *data.Anime) int {
			return col.CompareString(a.Title, b.Title)
		})
	}

	return out
}

// View caches the derived list and recomputes it whenever one of its
// inputs changes.
type View struct {
	items  []*data.Anime
	filter Filter
	sort   Sort
	search string

	derived []*data.Anime
}

func NewView() *View {
	v := &View{filter: FilterActive, sort: SortTitleAZ}
	v.recompute()
	return v
}

func (v *View) recompute() {
	v.derived = Apply(v.items, v.filter, v.sort, v.search)
}

func (v *View) SetItems(items []*data.Anime) {
	v.items = items
	v.recompute()
}

func (v *View) SetFilter(f Filter) {
	v.filter = f
	v.recompute()
}

func (v *View) SetSort(s Sort) {
	v.sort = s
	v.recompute()
}

func (v *View) SetSearch(search string) {
	if search == v.search {
		return
	}
	v.search = search
	v.recompute()
}

func (v *View) Items() []*data.Anime { return v.derived }
func (v *View) Filter() Filter       { return v.filter }
func (v *View) Sort() Sort           { return v.sort }
func (v *View) Search() string       { return v.search }

// Total is the size of the underlying collection.
func (v *View) Total() int { return len(v.items) }
