package components

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/kerbaras/anitrack/pkg/data"
)

func animes(n int) []*data.Anime {
	out := make([]*data.Anime, n)
	for i := range out {
		out[i] = &data.Anime{ID: fmt.Sprint(i + 1), Title: fmt.Sprintf("Anime %d", i+1), TotalEpisodes: 12, WatchedEpisodes: []int{}}
	}
	return out
}

func TestNewAnimeList(t *testing.T) {
	list := NewAnimeList()

	if list == nil {
		t.Fatal("Expected anime list to be created")
	}
	if list.SelectedIndex != 0 {
		t.Errorf("Expected SelectedIndex 0, got %d", list.SelectedIndex)
	}
	if len(list.Items) != 0 {
		t.Errorf("Expected 0 items, got %d", len(list.Items))
	}
	if list.Selected() != nil {
		t.Error("Expected no selection on an empty list")
	}
}

func TestSetItemsClampsSelection(t *testing.T) {
	list := NewAnimeList()
	list.SetItems(animes(3))
	list.SelectedIndex = 2

	list.SetItems([]*data.Anime{{ID: "x", Title: "Other", TotalEpisodes: 1}})
	if list.SelectedIndex != 0 {
		t.Errorf("Expected SelectedIndex 0, got %d", list.SelectedIndex)
	}

	list.SetItems(nil)
	if list.SelectedIndex != 0 {
		t.Errorf("Expected SelectedIndex 0 for empty list, got %d", list.SelectedIndex)
	}
}

func TestSetItemsFollowsSelectedRecord(t *testing.T) {
	list := NewAnimeList()
	items := animes(3)
	list.SetItems(items)
	list.SelectedIndex = 1

	reordered := []*data.Anime{items[2], items[0], items[1]}
	list.SetItems(reordered)

	if got := list.Selected(); got == nil || got.ID != "2" {
		t.Errorf("Expected selection to stay on record 2, got %+v", got)
	}
}

func TestNextPrevWrap(t *testing.T) {
	list := NewAnimeList()
	list.SetItems(animes(3))

	list.Prev()
	if list.SelectedIndex != 2 {
		t.Errorf("Prev from first should wrap to last, got %d", list.SelectedIndex)
	}
	list.Next()
	if list.SelectedIndex != 0 {
		t.Errorf("Next from last should wrap to first, got %d", list.SelectedIndex)
	}

	empty := NewAnimeList()
	empty.Next()
	empty.Prev()
	if empty.SelectedIndex != 0 {
		t.Errorf("Navigation on empty list should be a no-op, got %d", empty.SelectedIndex)
	}
}

func TestVisibleRange(t *testing.T) {
	list := NewAnimeList()
	list.Height = cardHeight * 3
	list.SetItems(animes(10))

	start, end := list.visibleRange()
	if start != 0 || end != 3 {
		t.Errorf("visibleRange() = %d,%d, want 0,3", start, end)
	}

	list.SelectedIndex = 9
	start, end = list.visibleRange()
	if start != 7 || end != 10 {
		t.Errorf("visibleRange() = %d,%d, want 7,10", start, end)
	}

	list.SelectedIndex = 5
	start, end = list.visibleRange()
	if start > 5 || end <= 5 {
		t.Errorf("selection %d outside window %d,%d", 5, start, end)
	}
}

func TestAnimeListView(t *testing.T) {
	list := NewAnimeList()
	list.Width = 80
	list.SetItems([]*data.Anime{
		{ID: "1", Title: "Frieren", TotalEpisodes: 28, WatchedEpisodes: []int{1, 2}},
		{ID: "2", Title: "Naruto", TotalEpisodes: 3, WatchedEpisodes: []int{1, 2, 3}},
	})

	view := ansi.Strip(list.View())
	for _, want := range []string{"Frieren", "2 / 28 episodes", "Watching", "Naruto", "Completed"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestAnimeListEmptyView(t *testing.T) {
	list := NewAnimeList()
	list.EmptyTitle = "Nothing here"

	view := ansi.Strip(list.View())
	if !strings.Contains(view, "Nothing here") {
		t.Errorf("empty view should show the empty title, got %q", view)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Fullmetal Alchemist", 10); got != "Fullmet..." {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("Frieren", 10); got != "Frieren" {
		t.Errorf("short titles must not change, got %q", got)
	}
}
