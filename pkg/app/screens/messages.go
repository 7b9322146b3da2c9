package screens

import (
	"errors"
	"unicode"
	"unicode/utf8"

	"github.com/kerbaras/anitrack/pkg/auth"
	"github.com/kerbaras/anitrack/pkg/data"
	"github.com/kerbaras/anitrack/pkg/integrations"
	"github.com/kerbaras/anitrack/pkg/services"
	"go.uber.org/zap"
)

// Deps is everything the screens need from the outside world.
type Deps struct {
	Controller *services.WatchlistController
	Gate       *auth.Gate
	Covers     *integrations.CoverRenderer
	// ConfigErr, when set, replaces the whole app with the configuration
	// error screen.
	ConfigErr error
	Logger    *zap.Logger
}

// SwitchScreenMsg asks the root screen to change the active view.
type SwitchScreenMsg struct {
	Screen string
	Data   interface{}
}

// formRequest opens the add/edit form. Anime is nil when adding.
type formRequest struct {
	Anime    *data.Anime
	ReturnTo string
}

type animesLoadedMsg struct {
	err error
}

type animeSavedMsg struct {
	anime    *data.Anime
	editing  bool
	returnTo string
	err      error
}

type animeDeletedMsg struct {
	id  string
	err error
}

type progressUpdatedMsg struct {
	anime   *data.Anime
	applied bool
	err     error
}

type recommendationMsg struct {
	rec *data.Recommendation
	err error
}

type coverLoadedMsg struct {
	id    string
	cover string
}

type loginAttemptMsg struct {
	attempt string
}

type shakeMsg struct{}

// inputCapturer is implemented by screens that are currently reading text,
// so plain letter keys must not trigger global shortcuts.
type inputCapturer interface {
	CapturesInput() bool
}

// sentence renders err for the user: first letter upper-cased, end appended.
func sentence(err error, end string) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	r, size := utf8.DecodeRuneInString(msg)
	return string(unicode.ToUpper(r)) + msg[size:] + end
}

// bannerMessage is the text of the dismissible error banner.
func bannerMessage(err error) string {
	if errors.Is(err, services.ErrEmptyWatchlist) {
		return sentence(err, "!")
	}
	return sentence(err, "")
}
