package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/anitrack/pkg/app/styles"
)

// EpisodeGrid is the checklist of episodes 1..Total with a keyboard cursor.
type EpisodeGrid struct {
	Total   int
	Watched map[int]bool
	Cursor  int
	Columns int
	Rows    int
}

func NewEpisodeGrid(total int, watched []int) *EpisodeGrid {
	g := &EpisodeGrid{Total: total, Cursor: 1, Columns: 8, Rows: 6}
	g.SetWatched(watched)
	return g
}

func (g *EpisodeGrid) SetWatched(watched []int) {
	g.Watched = make(map[int]bool, len(watched))
	for _, ep := range watched {
		g.Watched[ep] = true
	}
}

// SetTotal resizes the grid and keeps the cursor in range.
func (g *EpisodeGrid) SetTotal(total int) {
	g.Total = total
	g.Cursor = max(1, min(g.Cursor, total))
}

// SetWidth fits the column count to width; an episode takes six columns.
func (g *EpisodeGrid) SetWidth(width int) {
	g.Columns = max(4, min(12, width/6))
}

func (g *EpisodeGrid) Move(dx, dy int) {
	if g.Total <= 0 {
		return
	}
	next := g.Cursor + dx + dy*g.Columns
	if next < 1 || next > g.Total {
		if dy != 0 {
			return
		}
		next = max(1, min(next, g.Total))
	}
	g.Cursor = next
}

func (g *EpisodeGrid) Home() { g.Cursor = 1 }
func (g *EpisodeGrid) End()  { g.Cursor = max(1, g.Total) }

// Current is the episode under the cursor, or 0 when the grid is empty.
func (g *EpisodeGrid) Current() int {
	if g.Total <= 0 {
		return 0
	}
	return g.Cursor
}

func (g *EpisodeGrid) rowWindow() (int, int) {
	rows := (g.Total + g.Columns - 1) / g.Columns
	if rows <= g.Rows {
		return 0, rows
	}
	cursorRow := (g.Cursor - 1) / g.Columns
	start := max(0, cursorRow-g.Rows/2)
	end := start + g.Rows
	if end > rows {
		end = rows
		start = end - g.Rows
	}
	return start, end
}

func (g *EpisodeGrid) View() string {
	if g.Total <= 0 {
		return styles.MutedStyle.Render("No episodes")
	}

	start, end := g.rowWindow()
	lines := make([]string, 0, end-start+1)
	for row := start; row < end; row++ {
		cells := make([]string, 0, g.Columns)
		for col := 0; col < g.Columns; col++ {
			ep := row*g.Columns + col + 1
			if ep > g.Total {
				break
			}
			cells = append(cells, g.renderCell(ep), " ")
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	totalRows := (g.Total + g.Columns - 1) / g.Columns
	if end-start < totalRows {
		lines = append(lines, styles.MutedStyle.Render(
			fmt.Sprintf("rows %d-%d of %d", start+1, end, totalRows),
		))
	}
	return strings.Join(lines, "\n")
}

func (g *EpisodeGrid) renderCell(ep int) string {
	label := fmt.Sprint(ep)
	switch {
	case ep == g.Cursor:
		if g.Watched[ep] {
			label = "✓" + label
		}
		return styles.EpisodeCursorStyle.Render(label)
	case g.Watched[ep]:
		return styles.EpisodeWatchedStyle.Render(label)
	default:
		return styles.EpisodeUnwatchedStyle.Render(label)
	}
}
