package data

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("anime not found")

// Store is the persistent collection of anime records.
type Store interface {
	// List returns every record, newest first.
	List(ctx context.Context) ([]*Anime, error)
	// Insert creates a record with an empty watched set and returns it
	// with its assigned id and creation time.
	Insert(ctx context.Context, in AnimeInput) (*Anime, error)
	Update(ctx context.Context, id string, patch AnimePatch) (*Anime, error)
	Delete(ctx context.Context, id string) error
	Close() error
}
