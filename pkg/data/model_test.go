package data

import (
	"errors"
	"testing"
)

func TestAnimeProgress(t *testing.T) {
	anime := Anime{
		ID:              "test-id",
		Title:           "Cowboy Bebop",
		TotalEpisodes:   26,
		WatchedEpisodes: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13},
	}

	if anime.WatchedCount() != 13 {
		t.Errorf("Expected 13 watched, got %d", anime.WatchedCount())
	}

	if anime.Progress() != 50 {
		t.Errorf("Expected progress 50, got %f", anime.Progress())
	}

	if anime.Completed() {
		t.Error("Expected anime not to be completed")
	}
}

func TestAnimeProgressZeroTotal(t *testing.T) {
	anime := Anime{Title: "Broken", TotalEpisodes: 0}

	if anime.Progress() != 0 {
		t.Errorf("Expected progress 0 for zero total, got %f", anime.Progress())
	}
}

func TestAnimeHasImage(t *testing.T) {
	if (&Anime{}).HasImage() {
		t.Error("Expected empty image URL to report no image")
	}
	if (&Anime{ImageURL: "   "}).HasImage() {
		t.Error("Expected blank image URL to report no image")
	}
	if !(&Anime{ImageURL: "https://example.com/a.png"}).HasImage() {
		t.Error("Expected image URL to be reported")
	}
}

func TestAnimeClone(t *testing.T) {
	anime := &Anime{ID: "1", WatchedEpisodes: []int{1, 2}}
	clone := anime.Clone()
	clone.WatchedEpisodes[0] = 99

	if anime.WatchedEpisodes[0] != 1 {
		t.Error("Clone shares watched slice with original")
	}
}

func TestAnimeInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   AnimeInput
		wantErr bool
	}{
		{"valid", AnimeInput{Title: "Naruto", TotalEpisodes: 220}, false},
		{"blank title", AnimeInput{Title: "  ", TotalEpisodes: 12}, true},
		{"zero episodes", AnimeInput{Title: "Naruto", TotalEpisodes: 0}, true},
		{"negative episodes", AnimeInput{Title: "Naruto", TotalEpisodes: -3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidAnime) {
				t.Errorf("Expected ErrInvalidAnime, got %v", err)
			}
		})
	}
}

func TestAnimePatchApply(t *testing.T) {
	anime := &Anime{ID: "1", Title: "Old", TotalEpisodes: 12, WatchedEpisodes: []int{1}}
	patch := PatchFromInput(AnimeInput{Title: " New ", ImageURL: "", TotalEpisodes: 24})

	out := patch.Apply(anime)

	if out.Title != "New" {
		t.Errorf("Expected trimmed title 'New', got '%s'", out.Title)
	}
	if out.TotalEpisodes != 24 {
		t.Errorf("Expected 24 episodes, got %d", out.TotalEpisodes)
	}
	if len(out.WatchedEpisodes) != 1 {
		t.Errorf("Expected watched set untouched, got %v", out.WatchedEpisodes)
	}
	if anime.Title != "Old" {
		t.Error("Apply mutated the original record")
	}
}

func TestAnimePatchEmpty(t *testing.T) {
	if !(AnimePatch{}).Empty() {
		t.Error("Expected zero patch to be empty")
	}
	if (AnimePatch{WatchedEpisodes: []int{}}).Empty() {
		t.Error("Expected patch clearing watched set not to be empty")
	}
}
