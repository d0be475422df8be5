package controllers

import (
	"fmt"
	"testing"

	"github.com/rsrkatangur0811/watchman/internal/models"
)

func TestFilterTitlesDropsSentinelRating(t *testing.T) {
	titles := []*models.Title{
		{ID: 1, VoteAverage: 8.4},
		{ID: 2, VoteAverage: models.SentinelRating},
		{ID: 3, VoteAverage: 0},
	}

	filtered := filterTitles(titles)
	if len(filtered) != 2 {
		t.Fatalf("got %d titles, want 2", len(filtered))
	}
	for _, title := range filtered {
		if title.VoteAverage >= models.SentinelRating {
			t.Errorf("sentinel-rated title %d survived the filter", title.ID)
		}
	}
}

func TestInterleaveFeaturedAlternatesAndCaps(t *testing.T) {
	var movies, shows []*models.Title
	for i := 0; i < 15; i++ {
		movies = append(movies, &models.Title{ID: 100 + i, Title: fmt.Sprintf("m%d", i)})
		shows = append(shows, &models.Title{ID: 200 + i, Name: fmt.Sprintf("s%d", i)})
	}

	featured := interleaveFeatured(movies, shows)
	if len(featured) != featuredLimit {
		t.Fatalf("got %d featured titles, want %d", len(featured), featuredLimit)
	}
	if featured[0].ID != 100 || featured[1].ID != 200 || featured[2].ID != 101 {
		t.Errorf("interleave broken: first ids = [%d %d %d]", featured[0].ID, featured[1].ID, featured[2].ID)
	}
}

func TestInterleaveFeaturedHandlesUnevenInputs(t *testing.T) {
	movies := []*models.Title{{ID: 1}}
	shows := []*models.Title{{ID: 2}, {ID: 3}, {ID: 4}}

	featured := interleaveFeatured(movies, shows)
	got := make([]int, len(featured))
	for i, title := range featured {
		got[i] = title.ID
	}
	if len(got) != 4 || got[0] != 1 || got[1] != 2 || got[2] != 3 || got[3] != 4 {
		t.Errorf("featured = %v, want [1 2 3 4]", got)
	}
}

func TestFutureTitlesKeepsOnlyUnreleased(t *testing.T) {
	titles := []*models.Title{
		{ID: 1, ReleaseDate: "2001-01-01"},
		{ID: 2, ReleaseDate: "2999-01-01"},
		{ID: 3},
	}

	future := futureTitles(titles)
	if len(future) != 1 || future[0].ID != 2 {
		t.Errorf("futureTitles = %+v, want only id 2", future)
	}
}
