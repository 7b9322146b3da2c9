package screens

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/anitrack/pkg/app/components"
	"github.com/kerbaras/anitrack/pkg/app/styles"
	"github.com/kerbaras/anitrack/pkg/data"
	"github.com/kerbaras/anitrack/pkg/library"
)

type DetailsScreen struct {
	deps    Deps
	animeID string
	anime   *data.Anime

	cover    string
	grid     *components.EpisodeGrid
	progress *components.ProgressBar

	// collapsed records start in bulk-entry mode; expanded shows the grid
	// anyway.
	collapsed bool
	expanded  bool

	markUpTo    textinput.Model
	markFocused bool

	width  int
	height int
	err    error
}

func NewDetailsScreen(deps Deps, animeID string) *DetailsScreen {
	ti := textinput.New()
	ti.Placeholder = "episode #"
	ti.CharLimit = 6
	ti.Width = 10
	ti.Prompt = ""

	s := &DetailsScreen{
		deps:     deps,
		animeID:  animeID,
		grid:     components.NewEpisodeGrid(0, nil),
		progress: components.NewProgressBar(30),
		markUpTo: ti,
	}

	anime, err := deps.Controller.Get(animeID)
	if err != nil {
		s.err = fmt.Errorf("anime not found: %w", err)
		return s
	}
	s.setAnime(anime)
	s.collapsed = library.Progress{Total: anime.TotalEpisodes}.Collapsed()
	return s
}

func (s *DetailsScreen) setAnime(a *data.Anime) {
	s.anime = a
	s.grid.SetTotal(a.TotalEpisodes)
	s.grid.SetWatched(a.WatchedEpisodes)
	s.progress.Set(a.WatchedCount(), a.TotalEpisodes)
}

func (s *DetailsScreen) Init() tea.Cmd {
	if s.anime == nil || s.deps.Covers == nil {
		return nil
	}
	return s.loadCover(s.anime)
}

func (s *DetailsScreen) CapturesInput() bool { return s.markFocused }

func (s *DetailsScreen) gridVisible() bool {
	return !s.collapsed || s.expanded
}

func (s *DetailsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.progress.Width = max(10, min(40, msg.Width/3))
		s.grid.SetWidth(s.contentWidth())
		s.grid.Rows = max(3, msg.Height-18)
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)

	case progressUpdatedMsg:
		if msg.err != nil {
			s.err = msg.err
			return s, nil
		}
		if msg.applied && msg.anime != nil {
			s.err = nil
			s.setAnime(msg.anime)
		}

	case coverLoadedMsg:
		if msg.id == s.animeID {
			s.cover = msg.cover
		}
	}
	return s, nil
}

func (s *DetailsScreen) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if s.markFocused {
		switch msg.String() {
		case "enter":
			input := s.markUpTo.Value()
			s.markUpTo.Reset()
			s.markFocused = false
			s.markUpTo.Blur()
			return s, s.runMarkUpTo(input)
		case "esc":
			s.markFocused = false
			s.markUpTo.Blur()
			return s, nil
		}
		var cmd tea.Cmd
		s.markUpTo, cmd = s.markUpTo.Update(msg)
		return s, cmd
	}

	if s.anime == nil {
		if key := msg.String(); key == "esc" || key == "backspace" || key == "q" {
			return s, switchTo("library", nil)
		}
		return s, nil
	}

	switch msg.String() {
	case "esc", "backspace", "q":
		return s, switchTo("library", nil)
	case "x":
		s.err = nil
	case "e":
		return s, switchTo("form", formRequest{Anime: s.anime, ReturnTo: "details"})
	case "u":
		s.markFocused = true
		return s, s.markUpTo.Focus()
	case "A":
		return s, s.progressCmd(func(ctx context.Context) (*data.Anime, error) {
			return s.deps.Controller.MarkAll(ctx, s.animeID)
		})
	case "C":
		return s, s.progressCmd(func(ctx context.Context) (*data.Anime, error) {
			return s.deps.Controller.ClearAll(ctx, s.animeID)
		})
	case "g":
		if s.collapsed {
			s.expanded = !s.expanded
		}
	}

	if !s.gridVisible() {
		return s, nil
	}
	switch msg.String() {
	case "left", "h":
		s.grid.Move(-1, 0)
	case "right", "l":
		s.grid.Move(1, 0)
	case "up", "k":
		s.grid.Move(0, -1)
	case "down", "j":
		s.grid.Move(0, 1)
	case "home":
		s.grid.Home()
	case "end":
		s.grid.End()
	case " ", "enter":
		if ep := s.grid.Current(); ep > 0 {
			return s, s.progressCmd(func(ctx context.Context) (*data.Anime, error) {
				return s.deps.Controller.ToggleEpisode(ctx, s.animeID, ep)
			})
		}
	}
	return s, nil
}

func (s *DetailsScreen) contentWidth() int {
	w := s.width - 4
	if s.deps.Covers != nil {
		w -= s.deps.Covers.Settings().Width + 4
	}
	return max(24, w)
}

func (s *DetailsScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}
	if s.anime == nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err)),
			styles.HelpStyle.Render("esc: back"),
		)
	}

	status := styles.StatusLabel(s.anime.WatchedCount(), s.anime.TotalEpisodes)
	info := []string{
		styles.TitleStyle.MarginBottom(0).Render(s.anime.Title),
		styles.StatusStyle(status).Render(status),
		"",
		s.progress.View(),
		"",
	}

	if s.err != nil {
		info = append(info, styles.BannerStyle.Width(min(s.contentWidth(), 70)).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				styles.StatusError.Render("An Error Occurred"),
				bannerMessage(s.err),
				styles.MutedStyle.Render("x: dismiss"),
			)), "")
	}

	info = append(info, styles.SubtitleStyle.Render("Episodes"))
	if s.collapsed {
		info = append(info, s.renderBulkControls(), "")
	}
	if s.gridVisible() {
		info = append(info, s.grid.View())
	}

	right := lipgloss.JoinVertical(lipgloss.Left, info...)
	body := right
	if s.deps.Covers != nil {
		cover := s.cover
		if cover == "" {
			cover = s.deps.Covers.Placeholder()
		}
		body = lipgloss.JoinHorizontal(lipgloss.Top, cover, "    ", right)
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, styles.HelpStyle.Render(s.helpText()))
}

func (s *DetailsScreen) renderBulkControls() string {
	box := styles.InputStyle
	if s.markFocused {
		box = styles.FocusedInputStyle
	}
	expand := "g: show all episodes"
	if s.expanded {
		expand = "g: hide episodes"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Center,
			styles.LabelStyle.Render("Watched up to "), box.Render(s.markUpTo.View()),
			styles.MutedStyle.Render("  u: edit • enter: apply"),
		),
		lipgloss.JoinHorizontal(lipgloss.Top,
			styles.ButtonStyle.Render("Mark all"), styles.MutedStyle.Render(" A   "),
			styles.GhostButtonStyle.Render("Clear all"), styles.MutedStyle.Render(" C   "),
			styles.MutedStyle.Render(expand),
		),
	)
}

func (s *DetailsScreen) helpText() string {
	if s.gridVisible() {
		return "←↑↓→/hjkl: move • space: toggle • u: watched up to • A: all • C: clear • e: edit • esc: back"
	}
	return "u: watched up to • A: all • C: clear • g: show grid • e: edit • esc: back"
}

// Commands
func (s *DetailsScreen) progressCmd(op func(ctx context.Context) (*data.Anime, error)) tea.Cmd {
	return func() tea.Msg {
		anime, err := op(context.Background())
		return progressUpdatedMsg{anime: anime, applied: err == nil, err: err}
	}
}

func (s *DetailsScreen) runMarkUpTo(input string) tea.Cmd {
	id := s.animeID
	return func() tea.Msg {
		anime, applied, err := s.deps.Controller.MarkUpTo(context.Background(), id, input)
		return progressUpdatedMsg{anime: anime, applied: applied, err: err}
	}
}

func (s *DetailsScreen) loadCover(a *data.Anime) tea.Cmd {
	covers, id, url := s.deps.Covers, a.ID, a.ImageURL
	return func() tea.Msg {
		return coverLoadedMsg{id: id, cover: covers.RenderOrPlaceholder(context.Background(), url)}
	}
}
