package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/anitrack/pkg/app/styles"
)

type Button struct {
	Key   string
	Label string
	Style lipgloss.Style
}

// Modal is a centred dialog drawn over the whole screen.
type Modal struct {
	Title   string
	Heading string
	Body    string
	Buttons []Button
	Danger  bool
}

func (m Modal) View() string {
	box := styles.ModalStyle
	if m.Danger {
		box = styles.DangerModalStyle
	}
	inner := box.GetWidth() - box.GetHorizontalPadding()

	parts := []string{styles.TitleStyle.Render(m.Title)}
	if m.Heading != "" {
		parts = append(parts, styles.AccentStyle.Render(m.Heading))
	}
	if m.Body != "" {
		parts = append(parts, styles.TextStyle.Width(inner).Render(m.Body))
	}

	if len(m.Buttons) > 0 {
		buttons := make([]string, 0, len(m.Buttons)*2)
		for i, b := range m.Buttons {
			if i > 0 {
				buttons = append(buttons, "  ")
			}
			buttons = append(buttons, b.Style.Render(b.Label)+styles.MutedStyle.Render(" "+b.Key))
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
		parts = append(parts, "", lipgloss.PlaceHorizontal(inner, lipgloss.Right, row))
	}

	return box.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// Place centres the modal in a width x height area.
func (m Modal) Place(width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, m.View())
}

func RecommendationModal(title, reason string) Modal {
	return Modal{
		Title:   "✨ Here's a Suggestion!",
		Heading: title,
		Body:    reason,
		Buttons: []Button{{Key: "enter", Label: "Got it!", Style: styles.ButtonStyle}},
	}
}

func ConfirmDeleteModal(title string) Modal {
	return Modal{
		Title: "Delete Anime",
		Body:  `Are you sure you want to delete "` + title + `" from your list?`,
		Buttons: []Button{
			{Key: "esc", Label: "Cancel", Style: styles.GhostButtonStyle},
			{Key: "y", Label: "Confirm", Style: styles.DangerButtonStyle},
		},
		Danger: true,
	}
}
