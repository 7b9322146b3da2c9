package screens

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/anitrack/pkg/app/styles"
	"github.com/kerbaras/anitrack/pkg/auth"
)

const (
	submitDelay   = 300 * time.Millisecond
	shakeInterval = 50 * time.Millisecond
)

// Horizontal offsets of the card, one per shake frame.
var shakeOffsets = []int{-1, 2, -4, 4, -4, 4, -4, 2, -1, 0}

type LoginScreen struct {
	gate       *auth.Gate
	input      textinput.Model
	submitting bool
	err        error
	shakeFrame int
	width      int
	height     int
}

func NewLoginScreen(gate *auth.Gate) *LoginScreen {
	ti := textinput.New()
	ti.Placeholder = "Enter password"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.Prompt = "🔒 "
	ti.Width = 30
	ti.Focus()

	return &LoginScreen{
		gate:       gate,
		input:      ti,
		shakeFrame: len(shakeOffsets),
	}
}

func (s *LoginScreen) Init() tea.Cmd {
	return textinput.Blink
}

func (s *LoginScreen) CapturesInput() bool { return true }

func (s *LoginScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "enter" {
			attempt := s.input.Value()
			if attempt == "" || s.submitting {
				return s, nil
			}
			s.submitting = true
			return s, tea.Tick(submitDelay, func(time.Time) tea.Msg {
				return loginAttemptMsg{attempt: attempt}
			})
		}
		if s.submitting {
			return s, nil
		}

	case loginAttemptMsg:
		s.submitting = false
		if err := s.gate.Unlock(msg.attempt); err != nil {
			s.err = err
			s.input.Reset()
			s.shakeFrame = 0
			return s, s.shake()
		}
		s.err = nil
		return s, func() tea.Msg {
			return SwitchScreenMsg{Screen: "library"}
		}

	case shakeMsg:
		s.shakeFrame++
		if s.shakeFrame < len(shakeOffsets) {
			return s, s.shake()
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *LoginScreen) shake() tea.Cmd {
	return tea.Tick(shakeInterval, func(time.Time) tea.Msg { return shakeMsg{} })
}

// Shaking reports whether the wrong-password animation is running.
func (s *LoginScreen) Shaking() bool {
	return s.shakeFrame < len(shakeOffsets)
}

func (s *LoginScreen) offset() int {
	if !s.Shaking() {
		return 0
	}
	return shakeOffsets[s.shakeFrame]
}

func (s *LoginScreen) View() string {
	button := styles.ButtonStyle.Render("Unlock")
	if s.submitting {
		button = styles.ButtonStyle.Faint(true).Render("Unlocking...")
	}

	parts := []string{
		styles.LabelStyle.Render("Password"),
		styles.FocusedInputStyle.Width(36).Render(s.input.View()),
	}
	if s.err != nil {
		parts = append(parts, styles.StatusError.Render(sentence(s.err, ".")))
	}
	parts = append(parts, "", button)

	card := styles.CardStyle.Padding(1, 3).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
	page := lipgloss.JoinVertical(lipgloss.Center,
		styles.TitleStyle.Render("My Anime Tracker"),
		card,
		styles.HelpStyle.Render("This tracker is password protected."),
	)

	const base = 4
	page = lipgloss.NewStyle().PaddingLeft(base + s.offset()).Render(page)
	if s.width == 0 {
		return page
	}
	return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, page)
}
