package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/anitrack/pkg/app/styles"
	"github.com/kerbaras/anitrack/pkg/data"
)

const cardHeight = 5

type AnimeList struct {
	Items         []*data.Anime
	SelectedIndex int
	Width         int
	Height        int

	EmptyTitle   string
	EmptyMessage string
}

func NewAnimeList() *AnimeList {
	return &AnimeList{
		Items:         []*data.Anime{},
		SelectedIndex: 0,
		Width:         80,
		Height:        20,
		EmptyTitle:    "Your Watchlist is Empty",
		EmptyMessage:  "Looks like you haven't added any anime yet. Press a to get started!",
	}
}

// SetItems replaces the list. The selection follows the previously selected
// record when it is still present.
func (m *AnimeList) SetItems(items []*data.Anime) {
	var selectedID string
	if s := m.Selected(); s != nil {
		selectedID = s.ID
	}

	m.Items = items
	if selectedID != "" {
		for i, a := range items {
			if a.ID == selectedID {
				m.SelectedIndex = i
				return
			}
		}
	}
	if m.SelectedIndex >= len(items) && len(items) > 0 {
		m.SelectedIndex = len(items) - 1
	}
	if len(items) == 0 {
		m.SelectedIndex = 0
	}
}

func (m *AnimeList) Next() {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex++
	if m.SelectedIndex >= len(m.Items) {
		m.SelectedIndex = 0
	}
}

func (m *AnimeList) Prev() {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex--
	if m.SelectedIndex < 0 {
		m.SelectedIndex = len(m.Items) - 1
	}
}

func (m *AnimeList) Selected() *data.Anime {
	if len(m.Items) == 0 || m.SelectedIndex >= len(m.Items) {
		return nil
	}
	return m.Items[m.SelectedIndex]
}

// visibleRange returns the window of cards that fits Height and contains
// the selection.
func (m *AnimeList) visibleRange() (int, int) {
	n := max(1, m.Height/cardHeight)
	if len(m.Items) <= n {
		return 0, len(m.Items)
	}
	start := max(0, m.SelectedIndex-n/2)
	end := start + n
	if end > len(m.Items) {
		end = len(m.Items)
		start = end - n
	}
	return start, end
}

func (m *AnimeList) View() string {
	if len(m.Items) == 0 {
		empty := lipgloss.JoinVertical(lipgloss.Center,
			styles.TitleStyle.Render(m.EmptyTitle),
			styles.MutedStyle.Width(min(60, max(20, m.Width))).Align(lipgloss.Center).Render(m.EmptyMessage),
		)
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, empty)
	}

	var b strings.Builder
	start, end := m.visibleRange()
	for i := start; i < end; i++ {
		b.WriteString(m.renderCard(m.Items[i], i == m.SelectedIndex))
		b.WriteString("\n")
	}
	if end-start < len(m.Items) {
		b.WriteString(styles.MutedStyle.Render(
			fmt.Sprintf("Showing %d-%d of %d", start+1, end, len(m.Items)),
		))
	}
	return b.String()
}

func (m *AnimeList) renderCard(a *data.Anime, selected bool) string {
	cardStyle := styles.CardStyle
	titleStyle := styles.TextStyle.Bold(true)
	if selected {
		cardStyle = styles.ActiveCardStyle
		titleStyle = styles.SelectedStyle
	}
	inner := max(10, m.Width-8)

	status := styles.StatusLabel(a.WatchedCount(), a.TotalEpisodes)
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render(truncate(a.Title, inner-len(status)-2)),
		"  ",
		styles.StatusStyle(status).Render(status),
	)

	counts := styles.MutedStyle.Render(fmt.Sprintf("%d / %d episodes", a.WatchedCount(), a.TotalEpisodes))
	bar := SimpleProgress(a.WatchedCount(), a.TotalEpisodes, max(10, inner/2))

	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, bar, "  ", counts),
	)
	return cardStyle.Width(m.Width - 4).Render(content)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 3 || len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
