package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/anitrack/pkg/app/styles"
)

// ProgressBar shows watched episodes against the total.
type ProgressBar struct {
	Watched int
	Total   int
	Width   int
}

func NewProgressBar(width int) *ProgressBar {
	return &ProgressBar{Width: width}
}

func (p *ProgressBar) Set(watched, total int) {
	p.Watched = watched
	p.Total = total
}

func (p *ProgressBar) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Watched) / float64(p.Total) * 100
}

func (p *ProgressBar) View() string {
	label := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.MutedStyle.Render("Progress "),
		styles.TextStyle.Render(fmt.Sprintf("%d / %d", p.Watched, p.Total)),
		styles.MutedStyle.Render(fmt.Sprintf(" (%.0f%%)", p.Percent())),
	)
	return lipgloss.JoinVertical(lipgloss.Left, label, renderProgressBar(p.Watched, p.Total, p.Width))
}

func renderProgressBar(current, total, width int) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if total > 0 {
		filled = int(float64(current) / float64(total) * float64(width))
	}
	filled = max(0, min(filled, width))

	return styles.ProgressBarStyle.Render(strings.Repeat("█", filled)) +
		styles.ProgressEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// SimpleProgress renders a bare bar without the label.
func SimpleProgress(current, total, width int) string {
	return renderProgressBar(current, total, width)
}
