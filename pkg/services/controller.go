package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/kerbaras/anitrack/pkg/data"
	"github.com/kerbaras/anitrack/pkg/library"
	"github.com/kerbaras/anitrack/pkg/recommend"
	"go.uber.org/zap"
)

var ErrEmptyWatchlist = recommend.ErrNoTitles

// WatchlistController owns the session's in-memory copy of the collection.
// Every mutation goes to the store first; the local copy only changes once
// the store call succeeded.
type WatchlistController struct {
	store       data.Store
	recommender recommend.Recommender
	logger      *zap.Logger

	mu     sync.RWMutex
	animes []*data.Anime
}

func NewWatchlistController(store data.Store, recommender recommend.Recommender, logger *zap.Logger) *WatchlistController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WatchlistController{
		store:       store,
		recommender: recommender,
		logger:      logger,
		animes:      []*data.Anime{},
	}
}

func (c *WatchlistController) Close() error {
	return c.store.Close()
}

// Load refetches the collection. On failure the cached copy is kept.
func (c *WatchlistController) Load(ctx context.Context) error {
	animes, err := c.store.List(ctx)
	if err != nil {
		c.logger.Warn("fetch animes failed", zap.Error(err))
		return fmt.Errorf("failed to fetch animes: %w", err)
	}

	c.mu.Lock()
	c.animes = animes
	c.mu.Unlock()

	c.logger.Debug("animes loaded", zap.Int("count", len(animes)))
	return nil
}

// Animes returns a snapshot of the collection in store order.
func (c *WatchlistController) Animes() []*data.Anime {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*data.Anime, len(c.animes))
	for i, a := range c.animes {
		out[i] = a.Clone()
	}
	return out
}

func (c *WatchlistController) Titles() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	titles := make([]string, len(c.animes))
	for i, a := range c.animes {
		titles[i] = a.Title
	}
	return titles
}

func (c *WatchlistController) Get(id string) (*data.Anime, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, a := range c.animes {
		if a.ID == id {
			return a.Clone(), nil
		}
	}
	return nil, data.ErrNotFound
}

// FindByTitle looks up a record by exact title, ignoring case.
func (c *WatchlistController) FindByTitle(title string) (*data.Anime, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, a := range c.animes {
		if strings.EqualFold(strings.TrimSpace(a.Title), strings.TrimSpace(title)) {
			return a.Clone(), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", data.ErrNotFound, title)
}

func (c *WatchlistController) Add(ctx context.Context, in data.AnimeInput) (*data.Anime, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	anime, err := c.store.Insert(ctx, in)
	if err != nil {
		c.logger.Warn("add anime failed", zap.String("title", in.Title), zap.Error(err))
		return nil, fmt.Errorf("failed to add anime: %w", err)
	}

	c.mu.Lock()
	c.animes = append([]*data.Anime{anime}, c.animes...)
	c.mu.Unlock()

	c.logger.Info("anime added", zap.String("id", anime.ID), zap.String("title", anime.Title))
	return anime.Clone(), nil
}

// Edit overwrites the form fields of a record. Watched episodes beyond a
// lowered total are dropped in the same update.
func (c *WatchlistController) Edit(ctx context.Context, id string, in data.AnimeInput) (*data.Anime, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	current, err := c.Get(id)
	if err != nil {
		return nil, err
	}

	patch := data.PatchFromInput(in)
	pruned := library.Progress{Total: in.TotalEpisodes, Watched: current.WatchedEpisodes}.Prune()
	if len(pruned) != len(current.WatchedEpisodes) {
		patch.WatchedEpisodes = pruned
	}

	updated, err := c.store.Update(ctx, id, patch)
	if err != nil {
		c.logger.Warn("update anime failed", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update anime: %w", err)
	}

	c.replace(id, updated)
	c.logger.Info("anime updated", zap.String("id", id), zap.Int("pruned", len(current.WatchedEpisodes)-len(pruned)))
	return updated.Clone(), nil
}

func (c *WatchlistController) Delete(ctx context.Context, id string) error {
	if err := c.store.Delete(ctx, id); err != nil {
		c.logger.Warn("delete anime failed", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete anime: %w", err)
	}

	c.mu.Lock()
	c.animes = slices.DeleteFunc(c.animes, func(a *data.Anime) bool { return a.ID == id })
	c.mu.Unlock()

	c.logger.Info("anime deleted", zap.String("id", id))
	return nil
}

// SetWatched persists a full replacement watched set.
func (c *WatchlistController) SetWatched(ctx context.Context, id string, watched []int) (*data.Anime, error) {
	if watched == nil {
		watched = []int{}
	}
	updated, err := c.store.Update(ctx, id, data.AnimePatch{WatchedEpisodes: watched})
	if err != nil {
		c.logger.Warn("update progress failed", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update progress: %w", err)
	}

	c.replace(id, updated)
	c.logger.Debug("progress updated", zap.String("id", id), zap.Int("watched", len(watched)))
	return updated.Clone(), nil
}

func (c *WatchlistController) progress(id string) (library.Progress, error) {
	a, err := c.Get(id)
	if err != nil {
		return library.Progress{}, err
	}
	return library.Progress{Total: a.TotalEpisodes, Watched: a.WatchedEpisodes}, nil
}

func (c *WatchlistController) ToggleEpisode(ctx context.Context, id string, episode int) (*data.Anime, error) {
	p, err := c.progress(id)
	if err != nil {
		return nil, err
	}
	return c.SetWatched(ctx, id, p.Toggle(episode))
}

// MarkUpTo marks episodes 1..n from raw input. Input that is not a positive
// integer is ignored: no store call is made and applied is false.
func (c *WatchlistController) MarkUpTo(ctx context.Context, id, input string) (anime *data.Anime, applied bool, err error) {
	p, err := c.progress(id)
	if err != nil {
		return nil, false, err
	}
	watched, ok := p.MarkUpToInput(input)
	if !ok {
		c.logger.Debug("mark up to ignored", zap.String("id", id), zap.String("input", input))
		current, _ := c.Get(id)
		return current, false, nil
	}
	anime, err = c.SetWatched(ctx, id, watched)
	return anime, err == nil, err
}

func (c *WatchlistController) MarkAll(ctx context.Context, id string) (*data.Anime, error) {
	p, err := c.progress(id)
	if err != nil {
		return nil, err
	}
	return c.SetWatched(ctx, id, p.MarkAll())
}

func (c *WatchlistController) ClearAll(ctx context.Context, id string) (*data.Anime, error) {
	p, err := c.progress(id)
	if err != nil {
		return nil, err
	}
	return c.SetWatched(ctx, id, p.ClearAll())
}

// Recommend asks for one new title based on the whole collection. An empty
// collection is rejected before any network call.
func (c *WatchlistController) Recommend(ctx context.Context) (*data.Recommendation, error) {
	titles := c.Titles()
	if len(titles) == 0 {
		return nil, ErrEmptyWatchlist
	}
	if c.recommender == nil {
		return nil, recommend.ErrNotConfigured
	}

	rec, err := c.recommender.Recommend(ctx, titles)
	if err != nil {
		c.logger.Warn("recommendation failed", zap.Error(err))
		return nil, err
	}
	c.logger.Info("recommendation received", zap.String("title", rec.Title))
	return rec, nil
}

// replace merges a store-materialized record into the local copy.
func (c *WatchlistController) replace(id string, updated *data.Anime) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, a := range c.animes {
		if a.ID == id {
			c.animes[i] = updated
			return
		}
	}
}
