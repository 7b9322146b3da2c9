package data

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidAnime = errors.New("please provide a valid title and number of episodes")

type Anime struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	Title           string    `json:"title"`
	ImageURL        string    `json:"image_url"`
	TotalEpisodes   int       `json:"total_episodes"`
	WatchedEpisodes []int     `json:"watched_episodes"`
}

func (a *Anime) WatchedCount() int {
	return len(a.WatchedEpisodes)
}

// Progress returns the watched percentage in the range 0-100.
func (a *Anime) Progress() float64 {
	if a.TotalEpisodes <= 0 {
		return 0
	}
	return float64(len(a.WatchedEpisodes)) / float64(a.TotalEpisodes) * 100
}

func (a *Anime) Completed() bool {
	return len(a.WatchedEpisodes) == a.TotalEpisodes
}

func (a *Anime) HasImage() bool {
	return strings.TrimSpace(a.ImageURL) != ""
}

// Clone returns a copy that shares no slices with a.
func (a *Anime) Clone() *Anime {
	c := *a
	c.WatchedEpisodes = append([]int{}, a.WatchedEpisodes...)
	return &c
}

// AnimeInput is what the add/edit form collects.
type AnimeInput struct {
	Title         string
	ImageURL      string
	TotalEpisodes int
}

func (in AnimeInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" || in.TotalEpisodes <= 0 {
		return ErrInvalidAnime
	}
	return nil
}

// AnimePatch is a partial update. Nil fields are left untouched.
type AnimePatch struct {
	Title           *string
	ImageURL        *string
	TotalEpisodes   *int
	WatchedEpisodes []int
}

// PatchFromInput builds a patch that overwrites every form field.
func PatchFromInput(in AnimeInput) AnimePatch {
	title := strings.TrimSpace(in.Title)
	image := strings.TrimSpace(in.ImageURL)
	total := in.TotalEpisodes
	return AnimePatch{Title: &title, ImageURL: &image, TotalEpisodes: &total}
}

func (p AnimePatch) Empty() bool {
	return p.Title == nil && p.ImageURL == nil && p.TotalEpisodes == nil && p.WatchedEpisodes == nil
}

// Apply writes the patch onto a copy of a.
func (p AnimePatch) Apply(a *Anime) *Anime {
	out := a.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.ImageURL != nil {
		out.ImageURL = *p.ImageURL
	}
	if p.TotalEpisodes != nil {
		out.TotalEpisodes = *p.TotalEpisodes
	}
	if p.WatchedEpisodes != nil {
		out.WatchedEpisodes = append([]int{}, p.WatchedEpisodes...)
	}
	return out
}

type Recommendation struct {
	Title  string `json:"title"`
	Reason string `json:"reason"`
}
