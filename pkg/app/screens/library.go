package screens

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/anitrack/pkg/app/components"
	"github.com/kerbaras/anitrack/pkg/app/styles"
	"github.com/kerbaras/anitrack/pkg/data"
	"github.com/kerbaras/anitrack/pkg/library"
	"go.uber.org/zap"
)

type LibraryScreen struct {
	deps Deps

	view      *library.View
	animeList *components.AnimeList
	search    textinput.Model
	spinner   spinner.Model

	searching      bool
	loading        bool
	thinking       bool
	recommendation *data.Recommendation
	confirmDelete  *data.Anime

	width  int
	height int
	err    error
}

func NewLibraryScreen(deps Deps) *LibraryScreen {
	ti := textinput.New()
	ti.Placeholder = "Search by title..."
	ti.Prompt = "🔍 "
	ti.CharLimit = 100
	ti.Width = 40

	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &LibraryScreen{
		deps:      deps,
		view:      library.NewView(),
		animeList: components.NewAnimeList(),
		search:    ti,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		loading:   true,
	}
}

func (s *LibraryScreen) Init() tea.Cmd {
	return tea.Batch(s.loadLibrary, s.spinner.Tick)
}

func (s *LibraryScreen) CapturesInput() bool { return s.searching }

// Refresh re-derives the list from the controller's current collection.
func (s *LibraryScreen) Refresh() {
	s.view.SetItems(s.deps.Controller.Animes())
	s.applyView()
}

func (s *LibraryScreen) applyView() {
	s.animeList.SetItems(s.view.Items())
	if s.view.Total() == 0 {
		s.animeList.EmptyTitle = "Your Watchlist is Empty"
		s.animeList.EmptyMessage = "Looks like you haven't added any anime yet. Press a to get started!"
	} else {
		s.animeList.EmptyTitle = "Nothing to Show"
		s.animeList.EmptyMessage = fmt.Sprintf("No anime match the %q filter and current search.", s.view.Filter())
	}
}

func (s *LibraryScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.animeList.Width = msg.Width - 4
		s.animeList.Height = msg.Height - 14
		return s, nil

	case spinner.TickMsg:
		if !s.loading && !s.thinking {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)

	case animesLoadedMsg:
		s.loading = false
		s.err = msg.err
		s.Refresh()
		return s, s.prefetchCovers()

	case animeDeletedMsg:
		if msg.err != nil {
			s.err = msg.err
		}
		s.Refresh()

	case recommendationMsg:
		s.thinking = false
		if msg.err != nil {
			s.err = msg.err
			return s, nil
		}
		s.recommendation = msg.rec
	}

	return s, nil
}

func (s *LibraryScreen) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if s.confirmDelete != nil {
		switch msg.String() {
		case "y", "enter":
			target := s.confirmDelete
			s.confirmDelete = nil
			return s, s.deleteAnime(target.ID)
		case "n", "esc":
			s.confirmDelete = nil
		}
		return s, nil
	}

	if s.recommendation != nil {
		switch msg.String() {
		case "enter", "esc", " ":
			s.recommendation = nil
		}
		return s, nil
	}

	if s.searching {
		switch msg.String() {
		case "esc", "enter", "down", "up":
			s.searching = false
			s.search.Blur()
			return s, nil
		}
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		s.view.SetSearch(s.search.Value())
		s.applyView()
		return s, cmd
	}

	switch msg.String() {
	case "up", "k":
		s.animeList.Prev()
	case "down", "j":
		s.animeList.Next()
	case "/":
		s.searching = true
		return s, s.search.Focus()
	case "esc":
		if s.search.Value() != "" {
			s.search.Reset()
			s.view.SetSearch("")
			s.applyView()
		}
	case "f":
		s.view.SetFilter(s.view.Filter().Next())
		s.applyView()
	case "s":
		s.view.SetSort(s.view.Sort().Next())
		s.applyView()
	case "r":
		s.loading = true
		s.err = nil
		return s, tea.Batch(s.loadLibrary, s.spinner.Tick)
	case "x":
		s.err = nil
	case "a":
		return s, switchTo("form", formRequest{ReturnTo: "library"})
	case "e":
		if selected := s.animeList.Selected(); selected != nil {
			return s, switchTo("form", formRequest{Anime: selected, ReturnTo: "library"})
		}
	case "d":
		if selected := s.animeList.Selected(); selected != nil {
			s.confirmDelete = selected
		}
	case "enter":
		if selected := s.animeList.Selected(); selected != nil {
			return s, switchTo("details", selected.ID)
		}
	case "R":
		if s.thinking {
			return s, nil
		}
		s.thinking = true
		s.err = nil
		s.recommendation = nil
		return s, tea.Batch(s.recommend, s.spinner.Tick)
	case "L":
		if s.deps.Gate != nil && s.deps.Gate.Enabled() {
			return s, switchTo("login", nil)
		}
	}
	return s, nil
}

func (s *LibraryScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}
	if s.confirmDelete != nil {
		return components.ConfirmDeleteModal(s.confirmDelete.Title).Place(s.width, s.height)
	}
	if s.recommendation != nil {
		return components.RecommendationModal(s.recommendation.Title, s.recommendation.Reason).Place(s.width, s.height)
	}

	parts := []string{s.renderHeader(), s.renderControls()}

	if s.err != nil {
		banner := lipgloss.JoinVertical(lipgloss.Left,
			styles.StatusError.Render("An Error Occurred"),
			bannerMessage(s.err),
			styles.MutedStyle.Render("x: dismiss"),
		)
		parts = append(parts, styles.BannerStyle.Width(min(s.width-4, 80)).Render(banner))
	}

	if s.loading {
		parts = append(parts, lipgloss.Place(s.width-4, max(3, s.animeList.Height), lipgloss.Center, lipgloss.Center,
			s.spinner.View()+" Loading your watchlist..."))
	} else {
		parts = append(parts, s.animeList.View())
	}

	parts = append(parts, styles.HelpStyle.Render(
		"↑/k ↓/j: move • enter: episodes • /: search • f: filter • s: sort • a: add • e: edit • d: delete • R: suggest • r: refresh • q: quit",
	))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *LibraryScreen) renderHeader() string {
	suggest := styles.RecommendButtonStyle.Render("✨ Suggest Anime")
	if s.thinking {
		suggest = styles.RecommendButtonStyle.Faint(true).Render(s.spinner.View() + "Thinking...")
	}
	add := styles.ButtonStyle.Render("+ Add Anime")

	title := styles.TitleStyle.MarginBottom(0).Render("My Anime Tracker")
	buttons := lipgloss.JoinHorizontal(lipgloss.Top, suggest, " ", add)
	gap := max(1, s.width-lipgloss.Width(title)-lipgloss.Width(buttons)-2)
	return lipgloss.JoinHorizontal(lipgloss.Top, title, lipgloss.NewStyle().Width(gap).Render(""), buttons) + "\n"
}

func (s *LibraryScreen) renderControls() string {
	searchBox := styles.InputStyle
	if s.searching {
		searchBox = styles.FocusedInputStyle
	}

	filters := make([]string, 0, len(library.Filters())*2)
	for _, f := range library.Filters() {
		style := styles.InactiveTabStyle
		if f == s.view.Filter() {
			style = styles.ActiveTabStyle
		}
		filters = append(filters, style.Render(string(f)), " ")
	}

	counts := styles.MutedStyle.Render(fmt.Sprintf("%d of %d", len(s.view.Items()), s.view.Total()))
	return lipgloss.JoinVertical(lipgloss.Left,
		searchBox.Render(s.search.View()),
		lipgloss.JoinHorizontal(lipgloss.Top,
			styles.LabelStyle.Render("Filter "), lipgloss.JoinHorizontal(lipgloss.Top, filters...),
			styles.LabelStyle.Render("  Sort "), styles.ActiveTabStyle.Render(string(s.view.Sort())),
			"  ", counts,
		),
	) + "\n"
}

// Commands
func (s *LibraryScreen) loadLibrary() tea.Msg {
	err := s.deps.Controller.Load(context.Background())
	return animesLoadedMsg{err: err}
}

func (s *LibraryScreen) deleteAnime(id string) tea.Cmd {
	return func() tea.Msg {
		err := s.deps.Controller.Delete(context.Background(), id)
		return animeDeletedMsg{id: id, err: err}
	}
}

func (s *LibraryScreen) recommend() tea.Msg {
	rec, err := s.deps.Controller.Recommend(context.Background())
	return recommendationMsg{rec: rec, err: err}
}

// prefetchCovers warms the cover cache in the background so the details view
// opens with art already rendered.
func (s *LibraryScreen) prefetchCovers() tea.Cmd {
	if s.deps.Covers == nil {
		return nil
	}
	var urls []string
	for _, a := range s.deps.Controller.Animes() {
		if a.HasImage() {
			urls = append(urls, a.ImageURL)
		}
	}
	if len(urls) == 0 {
		return nil
	}
	covers, logger := s.deps.Covers, s.deps.Logger
	return func() tea.Msg {
		failed := 0
		for res := range covers.Prefetch(context.Background(), urls) {
			if res.Err != nil {
				failed++
			}
		}
		logger.Debug("covers prefetched", zap.Int("total", len(urls)), zap.Int("failed", failed))
		return nil
	}
}

func switchTo(screen string, data interface{}) tea.Cmd {
	return func() tea.Msg {
		return SwitchScreenMsg{Screen: screen, Data: data}
	}
}
