package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb/v2"
)

const animesSchema = `
CREATE TABLE IF NOT EXISTS animes (
	id               VARCHAR PRIMARY KEY,
	created_at       TIMESTAMP NOT NULL,
	title            VARCHAR NOT NULL,
	image_url        VARCHAR,
	total_episodes   INTEGER NOT NULL,
	watched_episodes VARCHAR NOT NULL DEFAULT '[]'
)`

func InitDuckDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(animesSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}

// Repository is the local DuckDB-backed Store.
type Repository struct {
	db     *sql.DB
	path   string
	closed bool
}

type sharedDB struct {
	db   *sql.DB
	refs int
}

var (
	duckMu      sync.Mutex
	duckHandles = map[string]*sharedDB{}
)

// NewDuckDBRepository opens the database at path, sharing one handle per
// process for the same path. The handle is closed when the last repository
// using it is closed.
func NewDuckDBRepository(path string) (*Repository, error) {
	duckMu.Lock()
	defer duckMu.Unlock()

	h, ok := duckHandles[path]
	if !ok {
		db, err := InitDuckDB(path)
		if err != nil {
			return nil, err
		}
		h = &sharedDB{db: db}
		duckHandles[path] = h
	}
	h.refs++

	return &Repository{db: h.db, path: path}, nil
}

const selectAnime = `SELECT id, created_at, title, image_url, total_episodes, watched_episodes FROM animes`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnime(row rowScanner) (*Anime, error) {
	var (
		a       Anime
		image   sql.NullString
		watched string
	)
	if err := row.Scan(&a.ID, &a.CreatedAt, &a.Title, &image, &a.TotalEpisodes, &watched); err != nil {
		return nil, err
	}
	a.ImageURL = image.String
	a.WatchedEpisodes = []int{}
	if watched != "" {
		if err := json.Unmarshal([]byte(watched), &a.WatchedEpisodes); err != nil {
			return nil, fmt.Errorf("decode watched episodes of %s: %w", a.ID, err)
		}
	}
	return &a, nil
}

func encodeWatched(watched []int) (string, error) {
	if watched == nil {
		watched = []int{}
	}
	b, err := json.Marshal(watched)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func nullable(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *Repository) List(ctx context.Context) ([]*Anime, error) {
	rows, err := r.db.QueryContext(ctx, selectAnime+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	animes := []*Anime{}
	for rows.Next() {
		a, err := scanAnime(rows)
		if err != nil {
			return nil, err
		}
		animes = append(animes, a)
	}
	return animes, rows.Err()
}

func (r *Repository) Get(ctx context.Context, id string) (*Anime, error) {
	a, err := scanAnime(r.db.QueryRowContext(ctx, selectAnime+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

func (r *Repository) Insert(ctx context.Context, in AnimeInput) (*Anime, error) {
	id := uuid.NewString()
	createdAt := time.Now().UTC().Truncate(time.Microsecond)

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO animes (id, created_at, title, image_url, total_episodes, watched_episodes) VALUES (?, ?, ?, ?, ?, '[]')`,
		id, createdAt, strings.TrimSpace(in.Title), nullable(in.ImageURL), in.TotalEpisodes,
	)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *Repository) Update(ctx context.Context, id string, patch AnimePatch) (*Anime, error) {
	if _, err := r.Get(ctx, id); err != nil {
		return nil, err
	}

	var (
		sets []string
		args []any
	)
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.ImageURL != nil {
		sets = append(sets, "image_url = ?")
		args = append(args, nullable(*patch.ImageURL))
	}
	if patch.TotalEpisodes != nil {
		sets = append(sets, "total_episodes = ?")
		args = append(args, *patch.TotalEpisodes)
	}
	if patch.WatchedEpisodes != nil {
		watched, err := encodeWatched(patch.WatchedEpisodes)
		if err != nil {
			return nil, err
		}
		sets = append(sets, "watched_episodes = ?")
		args = append(args, watched)
	}

	if len(sets) > 0 {
		args = append(args, id)
		query := fmt.Sprintf(`UPDATE animes SET %s WHERE id = ?`, strings.Join(sets, ", "))
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return nil, err
		}
	}
	return r.Get(ctx, id)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM animes WHERE id = ?`, id)
	return err
}

func (r *Repository) Close() error {
	duckMu.Lock()
	defer duckMu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	h, ok := duckHandles[r.path]
	if !ok || h.db != r.db {
		return r.db.Close()
	}
	h.refs--
	if h.refs > 0 {
		return nil
	}
	delete(duckHandles, r.path)
	return h.db.Close()
}
