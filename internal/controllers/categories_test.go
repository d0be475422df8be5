package controllers

import (
	"testing"

	"github.com/rsrkatangur0811/watchman/internal/models"
)

func TestSortByConfigOrder(t *testing.T) {
	configs := []CategoryConfig{
		{Title: "A"},
		{Title: "B"},
		{Title: "C"},
	}
	// Completion order differs from configuration order
	sections := []models.CategorySection{
		{Title: "B"},
		{Title: "C"},
		{Title: "A"},
	}

	sortByConfigOrder(sections, configs)

	got := []string{sections[0].Title, sections[1].Title, sections[2].Title}
	if got[0] != "A" || got[1] != "B" || got[2] != "C" {
		t.Errorf("order = %v, want [A B C]", got)
	}
}

func TestFirstGenreID(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"35,10749", 35},
		{"53", 53},
		{"", 0},
		{"not-a-number", 0},
	}

	for _, tt := range tests {
		if got := firstGenreID(tt.in); got != tt.want {
			t.Errorf("firstGenreID(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestConfigPartitioning(t *testing.T) {
	for _, cfg := range MovieConfigs() {
		if cfg.TVOnly {
			t.Errorf("TV-only config %q leaked into the movie set", cfg.Title)
		}
	}
	for _, cfg := range TVConfigs() {
		if cfg.MovieOnly {
			t.Errorf("movie-only config %q leaked into the TV set", cfg.Title)
		}
	}

	// Shared configs appear in both sets
	movieTitles := make(map[string]bool)
	for _, cfg := range MovieConfigs() {
		movieTitles[cfg.Title] = true
	}
	for _, shared := range sharedConfigs {
		if !movieTitles[shared.Title] {
			t.Errorf("shared config %q missing from the movie set", shared.Title)
		}
	}
}
