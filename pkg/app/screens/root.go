package screens

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type screenType int

const (
	configErrorView screenType = iota
	loginView
	libraryView
	detailsView
	formView
)

type RootScreen struct {
	deps Deps

	currentView screenType
	configError *ConfigErrorScreen
	login       *LoginScreen
	library     *LibraryScreen
	details     *DetailsScreen
	form        *FormScreen

	width  int
	height int
}

func NewRootScreen(deps Deps) *RootScreen {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	r := &RootScreen{deps: deps}

	switch {
	case deps.ConfigErr != nil:
		r.configError = NewConfigErrorScreen(deps.ConfigErr)
		r.currentView = configErrorView
	case deps.Gate != nil && !deps.Gate.Authenticated():
		r.login = NewLoginScreen(deps.Gate)
		r.currentView = loginView
	default:
		r.library = NewLibraryScreen(deps)
		r.currentView = libraryView
	}
	return r
}

func (r *RootScreen) Init() tea.Cmd {
	switch r.currentView {
	case loginView:
		return r.login.Init()
	case libraryView:
		return r.library.Init()
	}
	return nil
}

func (r *RootScreen) active() tea.Model {
	switch r.currentView {
	case configErrorView:
		return r.configError
	case loginView:
		return r.login
	case libraryView:
		return r.library
	case detailsView:
		return r.details
	case formView:
		return r.form
	}
	return nil
}

func (r *RootScreen) capturing() bool {
	if c, ok := r.active().(inputCapturer); ok {
		return c.CapturesInput()
	}
	return false
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		r.resizeAll(msg)
		return r, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return r, tea.Quit
		case "q":
			if !r.capturing() && (r.currentView == libraryView || r.currentView == configErrorView) {
				return r, tea.Quit
			}
		}

	case SwitchScreenMsg:
		return r, r.switchScreen(msg)
	}

	switch r.currentView {
	case configErrorView:
		newModel, newCmd := r.configError.Update(msg)
		r.configError = newModel.(*ConfigErrorScreen)
		cmd = newCmd
	case loginView:
		newModel, newCmd := r.login.Update(msg)
		r.login = newModel.(*LoginScreen)
		cmd = newCmd
	case libraryView:
		newModel, newCmd := r.library.Update(msg)
		r.library = newModel.(*LibraryScreen)
		cmd = newCmd
	case detailsView:
		if r.details != nil {
			newModel, newCmd := r.details.Update(msg)
			r.details = newModel.(*DetailsScreen)
			cmd = newCmd
		}
	case formView:
		if r.form != nil {
			newModel, newCmd := r.form.Update(msg)
			r.form = newModel.(*FormScreen)
			cmd = newCmd
		}
	}

	return r, cmd
}

func (r *RootScreen) switchScreen(msg SwitchScreenMsg) tea.Cmd {
	size := tea.WindowSizeMsg{Width: r.width, Height: r.height}

	switch msg.Screen {
	case "login":
		if r.deps.Gate == nil || !r.deps.Gate.Enabled() {
			return nil
		}
		r.deps.Gate.Lock()
		r.login = NewLoginScreen(r.deps.Gate)
		r.login.Update(size)
		r.currentView = loginView
		return r.login.Init()

	case "library":
		if r.library == nil {
			r.library = NewLibraryScreen(r.deps)
			r.library.Update(size)
			r.currentView = libraryView
			return r.library.Init()
		}
		r.library.Refresh()
		if err, ok := msg.Data.(error); ok {
			r.library.err = err
		}
		r.currentView = libraryView
		return nil

	case "details":
		if id, ok := msg.Data.(string); ok {
			r.details = NewDetailsScreen(r.deps, id)
			r.details.Update(size)
			r.currentView = detailsView
			return r.details.Init()
		}

	case "form":
		req, _ := msg.Data.(formRequest)
		if req.ReturnTo == "" {
			req.ReturnTo = "library"
		}
		r.form = NewFormScreen(r.deps, req.Anime, req.ReturnTo)
		r.form.Update(size)
		r.currentView = formView
		return r.form.Init()
	}
	return nil
}

func (r *RootScreen) resizeAll(msg tea.WindowSizeMsg) {
	if r.configError != nil {
		r.configError.Update(msg)
	}
	if r.login != nil {
		r.login.Update(msg)
	}
	if r.library != nil {
		r.library.Update(msg)
	}
	if r.details != nil {
		r.details.Update(msg)
	}
	if r.form != nil {
		r.form.Update(msg)
	}
}

func (r *RootScreen) View() string {
	if m := r.active(); m != nil {
		return m.View()
	}
	return ""
}
