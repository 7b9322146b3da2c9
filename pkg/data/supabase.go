package data

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kerbaras/anitrack/pkg/utils"
)

// SupabaseStore talks to a Supabase project through its PostgREST API.
type SupabaseStore struct {
	api   *utils.API
	table string
}

// animeRow is the wire shape of a row. image_url is nullable.
type animeRow struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	Title           string    `json:"title"`
	ImageURL        *string   `json:"image_url"`
	TotalEpisodes   int       `json:"total_episodes"`
	WatchedEpisodes []int     `json:"watched_episodes"`
}

func (r animeRow) toAnime() *Anime {
	a := &Anime{
		ID:              r.ID,
		CreatedAt:       r.CreatedAt,
		Title:           r.Title,
		TotalEpisodes:   r.TotalEpisodes,
		WatchedEpisodes: r.WatchedEpisodes,
	}
	if r.ImageURL != nil {
		a.ImageURL = *r.ImageURL
	}
	if a.WatchedEpisodes == nil {
		a.WatchedEpisodes = []int{}
	}
	return a
}

func NewSupabaseStore(baseURL, key, table string) *SupabaseStore {
	if table == "" {
		table = "animes"
	}
	api := utils.NewAPI(strings.TrimRight(baseURL, "/") + "/rest/v1")
	api.SetHeader("apikey", key)
	api.SetHeader("Authorization", "Bearer "+key)
	return &SupabaseStore{api: api, table: table}
}

// WithHTTPClient is used by tests to point the store at a fake server.
func (s *SupabaseStore) WithHTTPClient(c *http.Client) *SupabaseStore {
	s.api.WithClient(c)
	return s
}

func (s *SupabaseStore) path() string {
	return "/" + s.table
}

func returnRepresentation() http.Header {
	h := http.Header{}
	h.Set("Prefer", "return=representation")
	return h
}

func byID(id string) url.Values {
	params := url.Values{}
	params.Set("id", "eq."+id)
	params.Set("select", "*")
	return params
}

func imageValue(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func (s *SupabaseStore) List(ctx context.Context) ([]*Anime, error) {
	params := url.Values{}
	params.Set("select", "*")
	params.Set("order", "created_at.desc")

	var rows []animeRow
	if err := s.api.Get(ctx, s.path(), params, &rows); err != nil {
		return nil, err
	}
	out := make([]*Anime, len(rows))
	for i, row := range rows {
		out[i] = row.toAnime()
	}
	return out, nil
}

func (s *SupabaseStore) Insert(ctx context.Context, in AnimeInput) (*Anime, error) {
	body := []map[string]any{{
		"title":            strings.TrimSpace(in.Title),
		"image_url":        imageValue(in.ImageURL),
		"total_episodes":   in.TotalEpisodes,
		"watched_episodes": []int{},
	}}
	params := url.Values{}
	params.Set("select", "*")

	var rows []animeRow
	if err := s.api.Post(ctx, s.path(), params, returnRepresentation(), body, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("insert returned no rows")
	}
	return rows[0].toAnime(), nil
}

func (s *SupabaseStore) Update(ctx context.Context, id string, patch AnimePatch) (*Anime, error) {
	body := map[string]any{}
	if patch.Title != nil {
		body["title"] = *patch.Title
	}
	if patch.ImageURL != nil {
		body["image_url"] = imageValue(*patch.ImageURL)
	}
	if patch.TotalEpisodes != nil {
		body["total_episodes"] = *patch.TotalEpisodes
	}
	if patch.WatchedEpisodes != nil {
		body["watched_episodes"] = patch.WatchedEpisodes
	}

	var rows []animeRow
	if err := s.api.Patch(ctx, s.path(), byID(id), returnRepresentation(), body, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0].toAnime(), nil
}

func (s *SupabaseStore) Delete(ctx context.Context, id string) error {
	params := url.Values{}
	params.Set("id", "eq."+id)
	return s.api.Delete(ctx, s.path(), params)
}

func (s *SupabaseStore) Close() error {
	return nil
}
