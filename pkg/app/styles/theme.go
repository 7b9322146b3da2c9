package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	Primary    = lipgloss.Color("#2DD4BF")
	Secondary  = lipgloss.Color("#A78BFA")
	Success    = lipgloss.Color("#5EEAD4")
	Warning    = lipgloss.Color("#FFCB6B")
	Error      = lipgloss.Color("#F87171")
	Info       = lipgloss.Color("#82AAFF")
	Muted      = lipgloss.Color("#6B7280")
	Background = lipgloss.Color("#111827")
	Surface    = lipgloss.Color("#1F2937")
	Foreground = lipgloss.Color("#F3F4F6")

	RoundedBorder = lipgloss.RoundedBorder()
	ThickBorder   = lipgloss.ThickBorder()
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(Foreground).
			Bold(true).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Italic(true)

	TextStyle = lipgloss.NewStyle().
			Foreground(Foreground)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	CardStyle = lipgloss.NewStyle().
			Border(RoundedBorder).
			BorderForeground(Surface).
			Padding(0, 2)

	// Active/focused card
	ActiveCardStyle = lipgloss.NewStyle().
			Border(ThickBorder).
			BorderForeground(Primary).
			Padding(0, 2)

	StatusWatching = lipgloss.NewStyle().
			Foreground(Info).
			Bold(true)

	StatusCompleted = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	StatusPlanned = lipgloss.NewStyle().
			Foreground(Muted).
			Bold(true)

	StatusError = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	ProgressBarStyle = lipgloss.NewStyle().
				Foreground(Primary)

	ProgressEmptyStyle = lipgloss.NewStyle().
				Foreground(Surface)

	// Controls bar chips
	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(Background).
			Background(Primary).
			Padding(0, 1).
			Bold(true)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(Foreground).
				Background(Surface).
				Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true).
			MarginTop(1)

	InputStyle = lipgloss.NewStyle().
			Border(RoundedBorder).
			BorderForeground(Muted).
			Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
				Border(RoundedBorder).
				BorderForeground(Primary).
				Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Bold(true)

	BannerStyle = lipgloss.NewStyle().
			Border(RoundedBorder).
			BorderForeground(Error).
			Foreground(Error).
			Padding(0, 2)

	ModalStyle = lipgloss.NewStyle().
			Border(RoundedBorder).
			BorderForeground(Secondary).
			Padding(1, 3).
			Width(56)

	DangerModalStyle = ModalStyle.
				BorderForeground(Error)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(Background).
			Background(Primary).
			Padding(0, 2).
			Bold(true)

	GhostButtonStyle = lipgloss.NewStyle().
				Foreground(Foreground).
				Background(Surface).
				Padding(0, 2)

	DangerButtonStyle = lipgloss.NewStyle().
				Foreground(Foreground).
				Background(Error).
				Padding(0, 2).
				Bold(true)

	RecommendButtonStyle = lipgloss.NewStyle().
				Foreground(Foreground).
				Background(Secondary).
				Padding(0, 2).
				Bold(true)

	EpisodeWatchedStyle = lipgloss.NewStyle().
				Foreground(Background).
				Background(Primary).
				Bold(true).
				Width(5).
				Align(lipgloss.Center)

	EpisodeUnwatchedStyle = lipgloss.NewStyle().
				Foreground(Muted).
				Background(Surface).
				Width(5).
				Align(lipgloss.Center)

	EpisodeCursorStyle = lipgloss.NewStyle().
				Foreground(Background).
				Background(Warning).
				Bold(true).
				Width(5).
				Align(lipgloss.Center)
)

// StatusLabel names the watch state of a record with watched of total episodes seen.
func StatusLabel(watched, total int) string {
	switch {
	case total > 0 && watched >= total:
		return "Completed"
	case watched > 0:
		return "Watching"
	default:
		return "Plan to Watch"
	}
}

func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "Watching":
		return StatusWatching
	case "Completed":
		return StatusCompleted
	case "error":
		return StatusError
	default:
		return StatusPlanned
	}
}
