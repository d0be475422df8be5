package controllers

import (
	"testing"

	"github.com/rsrkatangur0811/watchman/internal/models"
)

func TestRankByRelevancePrefersCloserNames(t *testing.T) {
	titles := []*models.Title{
		{ID: 1, Title: "The Matrix Resurrections"},
		{ID: 2, Title: "The Matrix"},
		{ID: 3, Title: "Matrimony"},
	}

	rankByRelevance(titles, "the matrix")

	if titles[0].ID != 2 {
		t.Errorf("first result = %d (%q), want exact match id 2", titles[0].ID, titles[0].Title)
	}
}

func TestRankByRelevanceBreaksTiesByVotes(t *testing.T) {
	titles := []*models.Title{
		{ID: 1, Title: "Dune", VoteCount: 100},
		{ID: 2, Title: "Dune", VoteCount: 9000},
	}

	rankByRelevance(titles, "dune")

	if titles[0].ID != 2 {
		t.Errorf("first result = %d, want the higher-voted id 2", titles[0].ID)
	}
}

func TestKeyCreatorPerKind(t *testing.T) {
	crew := []models.Crew{
		{ID: 1, Name: "Producer Person", Job: "Producer"},
		{ID: 2, Name: "Show Runner", Job: "Executive Producer"},
		{ID: 3, Name: "Film Director", Job: "Director"},
	}

	movie, ok := keyCreator(models.MediaTypeMovie, crew)
	if !ok || movie.ID != 3 {
		t.Errorf("movie key creator = %+v, want the Director (id 3)", movie)
	}

	show, ok := keyCreator(models.MediaTypeTV, crew)
	if !ok || show.ID != 2 {
		t.Errorf("show key creator = %+v, want the Executive Producer (id 2)", show)
	}

	if _, ok := keyCreator(models.MediaTypeMovie, crew[:2]); ok {
		t.Error("movie without a Director credit should have no key creator")
	}
}
