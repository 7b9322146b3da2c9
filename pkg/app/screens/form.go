package screens

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/anitrack/pkg/app/styles"
	"github.com/kerbaras/anitrack/pkg/data"
)

const defaultTotalEpisodes = 12

const (
	titleField = iota
	imageField
	totalField
	fieldCount
)

// FormScreen adds a new anime or edits the form fields of an existing one.
type FormScreen struct {
	deps     Deps
	editing  *data.Anime
	returnTo string

	inputs     []textinput.Model
	focus      int
	submitting bool

	width  int
	height int
	err    error
}

func NewFormScreen(deps Deps, editing *data.Anime, returnTo string) *FormScreen {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Width = 44
		inputs[i] = ti
	}
	inputs[titleField].CharLimit = 200
	inputs[imageField].Placeholder = "https://..."
	inputs[totalField].CharLimit = 5
	inputs[totalField].Validate = digitsOnly
	inputs[totalField].SetValue(strconv.Itoa(defaultTotalEpisodes))

	if editing != nil {
		inputs[titleField].SetValue(editing.Title)
		inputs[imageField].SetValue(editing.ImageURL)
		inputs[totalField].SetValue(strconv.Itoa(editing.TotalEpisodes))
	}
	inputs[titleField].Focus()

	return &FormScreen{
		deps:     deps,
		editing:  editing,
		returnTo: returnTo,
		inputs:   inputs,
	}
}

func digitsOnly(s string) error {
	for _, r := range s {
		if r < '0' || r > '9' {
			return strconv.ErrSyntax
		}
	}
	return nil
}

func (s *FormScreen) Init() tea.Cmd {
	return textinput.Blink
}

func (s *FormScreen) CapturesInput() bool { return true }

// Input reads the form into an AnimeInput. An unparsable total becomes 0 and
// fails validation.
func (s *FormScreen) Input() data.AnimeInput {
	total, err := strconv.Atoi(strings.TrimSpace(s.inputs[totalField].Value()))
	if err != nil {
		total = 0
	}
	return data.AnimeInput{
		Title:         strings.TrimSpace(s.inputs[titleField].Value()),
		ImageURL:      strings.TrimSpace(s.inputs[imageField].Value()),
		TotalEpisodes: total,
	}
}

func (s *FormScreen) setFocus(i int) tea.Cmd {
	s.inputs[s.focus].Blur()
	s.focus = (i + fieldCount) % fieldCount
	return s.inputs[s.focus].Focus()
}

func (s *FormScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, s.back(nil)
		case "tab", "down":
			return s, s.setFocus(s.focus + 1)
		case "shift+tab", "up":
			return s, s.setFocus(s.focus - 1)
		case "enter":
			if s.focus < totalField {
				return s, s.setFocus(s.focus + 1)
			}
			return s, s.submit()
		case "ctrl+s":
			return s, s.submit()
		}

	case animeSavedMsg:
		s.submitting = false
		if msg.err != nil {
			s.err = msg.err
			return s, nil
		}
		return s, s.back(msg.anime)
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

func (s *FormScreen) back(saved *data.Anime) tea.Cmd {
	if s.returnTo == "details" {
		id := ""
		switch {
		case saved != nil:
			id = saved.ID
		case s.editing != nil:
			id = s.editing.ID
		}
		if id != "" {
			return switchTo("details", id)
		}
	}
	return switchTo("library", nil)
}

func (s *FormScreen) submit() tea.Cmd {
	if s.submitting {
		return nil
	}
	in := s.Input()
	if err := in.Validate(); err != nil {
		s.err = err
		return nil
	}
	s.err = nil
	s.submitting = true

	controller, editing := s.deps.Controller, s.editing
	returnTo := s.returnTo
	return func() tea.Msg {
		ctx := context.Background()
		if editing != nil {
			anime, err := controller.Edit(ctx, editing.ID, in)
			return animeSavedMsg{anime: anime, editing: true, returnTo: returnTo, err: err}
		}
		anime, err := controller.Add(ctx, in)
		return animeSavedMsg{anime: anime, returnTo: returnTo, err: err}
	}
}

func (s *FormScreen) View() string {
	heading := "Add New Anime"
	submit := "Add Anime"
	if s.editing != nil {
		heading = "Edit Anime"
		submit = "Save Changes"
	}
	if s.submitting {
		submit = "Saving..."
	}

	labels := []string{"Title", "Image URL (Optional)", "Total Episodes"}
	parts := []string{styles.TitleStyle.Render(heading)}
	for i, label := range labels {
		box := styles.InputStyle
		if i == s.focus {
			box = styles.FocusedInputStyle
		}
		parts = append(parts, styles.LabelStyle.Render(label), box.Width(48).Render(s.inputs[i].View()))
	}

	if s.err != nil {
		parts = append(parts, "", styles.StatusError.Render(sentence(s.err, ".")))
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.GhostButtonStyle.Render("Cancel"), styles.MutedStyle.Render(" esc   "),
		styles.ButtonStyle.Render(submit), styles.MutedStyle.Render(" ctrl+s"),
	)
	parts = append(parts, "", lipgloss.PlaceHorizontal(50, lipgloss.Right, buttons),
		styles.HelpStyle.Render("tab/shift+tab: next/previous field • enter: next or submit"))

	box := styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
	if s.width == 0 {
		return box
	}
	return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, box)
}
