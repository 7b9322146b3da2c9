package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kerbaras/anitrack/pkg/auth"
	"github.com/kerbaras/anitrack/pkg/config"
	"github.com/kerbaras/anitrack/pkg/data"
	"github.com/kerbaras/anitrack/pkg/recommend"
	"github.com/kerbaras/anitrack/pkg/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

func openStore(c *config.Config) (data.Store, error) {
	switch c.Store.Backend {
	case config.BackendDuckDB:
		repo, err := data.NewDuckDBRepository(c.Store.DuckDBPath)
		if err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return data.NewSupabaseStore(c.Store.SupabaseURL, c.Store.SupabaseKey, c.Store.Table), nil
	}
}

// newRecommender builds the suggestion backend. Tests replace it.
var newRecommender = func(ctx context.Context, c *config.Config) (recommend.Recommender, error) {
	gemini, err := recommend.NewGemini(ctx, c.Recommend.APIKey, c.Recommend.Model)
	if err != nil {
		return nil, err
	}
	return gemini, nil
}

// newController validates the configuration and wires the store and the
// recommender. A recommender that cannot start only disables suggestions.
func newController(ctx context.Context) (*services.WatchlistController, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	store, err := openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	recommender, err := newRecommender(ctx, cfg)
	if err != nil {
		logger.Warn("recommendations disabled", zap.Error(err))
		recommender = nil
	}

	logger.Debug("controller ready", zap.String("backend", cfg.Store.Backend))
	return services.NewWatchlistController(store, recommender, logger), nil
}

// openWatchlist unlocks the gate and loads the collection for a subcommand.
func openWatchlist(cmd *cobra.Command) (*services.WatchlistController, error) {
	if err := unlock(cmd); err != nil {
		return nil, err
	}
	controller, err := newController(cmd.Context())
	if err != nil {
		return nil, err
	}
	if err := controller.Load(cmd.Context()); err != nil {
		controller.Close()
		return nil, err
	}
	return controller, nil
}

func unlock(cmd *cobra.Command) error {
	gate := auth.NewGate(cfg.Password)
	if !gate.Enabled() {
		return nil
	}
	attempt, err := readSecret(cmd, "🔒 Password: ")
	if err != nil {
		return err
	}
	return gate.Unlock(attempt)
}

// readSecret prompts without echo on a terminal and reads one line
// otherwise.
func readSecret(cmd *cobra.Command, prompt string) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), prompt)
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}
	return readLine(cmd.InOrStdin())
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// resolveAnime finds a record by id, then by exact title.
func resolveAnime(controller *services.WatchlistController, ref string) (*data.Anime, error) {
	if anime, err := controller.Get(ref); err == nil {
		return anime, nil
	}
	return controller.FindByTitle(ref)
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
