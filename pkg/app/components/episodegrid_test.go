package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestEpisodeGridMove(t *testing.T) {
	g := NewEpisodeGrid(20, nil)
	g.Columns = 8

	g.Move(1, 0)
	if g.Cursor != 2 {
		t.Errorf("right: cursor = %d, want 2", g.Cursor)
	}
	g.Move(0, 1)
	if g.Cursor != 10 {
		t.Errorf("down: cursor = %d, want 10", g.Cursor)
	}
	g.Move(0, 1)
	if g.Cursor != 18 {
		t.Errorf("down: cursor = %d, want 18", g.Cursor)
	}
	g.Move(0, 1)
	if g.Cursor != 18 {
		t.Errorf("down past the last row should stay, got %d", g.Cursor)
	}
	g.Move(5, 0)
	if g.Cursor != 20 {
		t.Errorf("right past the end should clamp, got %d", g.Cursor)
	}
	g.Home()
	g.Move(-1, 0)
	if g.Cursor != 1 {
		t.Errorf("left from the first episode should clamp, got %d", g.Cursor)
	}
	g.End()
	if g.Current() != 20 {
		t.Errorf("End() cursor = %d, want 20", g.Current())
	}
}

func TestEpisodeGridSetTotalClampsCursor(t *testing.T) {
	g := NewEpisodeGrid(24, nil)
	g.Cursor = 20

	g.SetTotal(12)
	if g.Cursor != 12 {
		t.Errorf("cursor = %d, want 12", g.Cursor)
	}
}

func TestEpisodeGridEmpty(t *testing.T) {
	g := NewEpisodeGrid(0, nil)
	g.Move(1, 0)
	if g.Current() != 0 {
		t.Errorf("Current() = %d, want 0", g.Current())
	}
	if !strings.Contains(ansi.Strip(g.View()), "No episodes") {
		t.Error("empty grid should say so")
	}
}

func TestEpisodeGridView(t *testing.T) {
	g := NewEpisodeGrid(10, []int{2, 3})
	g.Columns = 5
	g.Cursor = 2

	view := ansi.Strip(g.View())
	lines := strings.Split(view, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d rows, want 2", len(lines))
	}
	if !strings.Contains(lines[1], "10") {
		t.Errorf("second row should end with episode 10, got %q", lines[1])
	}
	if !strings.Contains(lines[0], "✓2") {
		t.Errorf("watched cursor cell should carry a check mark, got %q", lines[0])
	}
}

func TestEpisodeGridScrollsRows(t *testing.T) {
	g := NewEpisodeGrid(100, nil)
	g.Columns = 10
	g.Rows = 3
	g.Cursor = 95

	start, end := g.rowWindow()
	if start != 7 || end != 10 {
		t.Errorf("rowWindow() = %d,%d, want 7,10", start, end)
	}
	if !strings.Contains(ansi.Strip(g.View()), "rows 8-10 of 10") {
		t.Error("scrolled grid should show its position")
	}
}

func TestEpisodeGridSetWidth(t *testing.T) {
	g := NewEpisodeGrid(10, nil)

	g.SetWidth(30)
	if g.Columns != 5 {
		t.Errorf("Columns = %d, want 5", g.Columns)
	}
	g.SetWidth(6)
	if g.Columns != 4 {
		t.Errorf("Columns = %d, want minimum 4", g.Columns)
	}
	g.SetWidth(500)
	if g.Columns != 12 {
		t.Errorf("Columns = %d, want maximum 12", g.Columns)
	}
}
