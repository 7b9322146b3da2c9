package screens

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/anitrack/pkg/app/styles"
	"github.com/kerbaras/anitrack/pkg/config"
)

// ConfigErrorScreen blocks the whole app when the store cannot be reached
// because it was never configured.
type ConfigErrorScreen struct {
	err    error
	width  int
	height int
}

func NewConfigErrorScreen(err error) *ConfigErrorScreen {
	return &ConfigErrorScreen{err: err}
}

func (s *ConfigErrorScreen) Init() tea.Cmd { return nil }

func (s *ConfigErrorScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		s.width = msg.Width
		s.height = msg.Height
	}
	return s, nil
}

func (s *ConfigErrorScreen) View() string {
	code := styles.AccentStyle.Background(styles.Surface).Padding(0, 1)

	lines := []string{
		styles.StatusError.Render("Configuration Error"),
		"",
	}
	if errors.Is(s.err, config.ErrStoreNotConfigured) {
		lines = append(lines,
			styles.TextStyle.Render("This application requires a connection to a Supabase database."),
			"",
			styles.MutedStyle.Render("To fix this, please set the ")+code.Render("SUPABASE_URL")+
				styles.MutedStyle.Render(" and ")+code.Render("SUPABASE_ANON_KEY"),
			styles.MutedStyle.Render("environment variables, or switch to the local store with ")+code.Render("ANITRACK_STORE=duckdb"),
		)
	}
	lines = append(lines,
		"",
		styles.MutedStyle.Render(s.err.Error()),
		"",
		styles.HelpStyle.Render("Once configured, restart anitrack. Press q to quit."),
	)

	box := styles.ModalStyle.Width(72).BorderForeground(styles.Error).
		Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
	if s.width == 0 {
		return box
	}
	return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, box)
}
