package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rsrkatangur0811/watchman/internal/config"
	"github.com/rsrkatangur0811/watchman/internal/models"
	"github.com/rsrkatangur0811/watchman/internal/services/tmdb"
)

func testDetailController(t *testing.T, handler http.Handler) *DetailController {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := tmdb.NewClient(&config.Config{TMDBBaseURL: server.URL, TMDBAPIKey: "test-key"}, testLogger())
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	service := tmdb.NewService(context.Background(), client, testLogger())
	return NewDetailController(service, tmdb.NewSeededScoreSynthesizer(1), "IN", testLogger())
}

func TestGetSeasonMergesCastPreservingBillingOrder(t *testing.T) {
	ctrl := testDetailController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/season/") {
			t.Errorf("unexpected request path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"episodes": [{"id": 1, "name": "Pilot", "episode_number": 1, "season_number": 1}],
			"credits": {"cast": [
				{"id": 20, "name": "Guest Star"},
				{"id": 10, "name": "Lead"}
			], "crew": []}
		}`)
	}))

	showCast := []models.Cast{
		{ID: 10, Name: "Lead"},
		{ID: 11, Name: "Second Lead"},
	}
	content, err := ctrl.GetSeason(context.Background(), 1399, 1, showCast)
	if err != nil {
		t.Fatalf("GetSeason failed: %v", err)
	}

	if len(content.Episodes) != 1 || content.Episodes[0].Name != "Pilot" {
		t.Errorf("episodes = %+v", content.Episodes)
	}

	// Series billing order first, then season-only actors; duplicates
	// keep their series-level position
	if len(content.Cast) != 3 {
		t.Fatalf("cast size = %d, want 3", len(content.Cast))
	}
	if content.Cast[0].ID != 10 || content.Cast[1].ID != 11 || content.Cast[2].ID != 20 {
		t.Errorf("cast order = [%d %d %d], want [10 11 20]", content.Cast[0].ID, content.Cast[1].ID, content.Cast[2].ID)
	}
}

func TestGetDetailExtractsEnvelope(t *testing.T) {
	ctrl := testDetailController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": 550,
			"title": "Fight Club",
			"vote_average": 8.4,
			"credits": {"cast": [{"id": 819, "name": "Edward Norton"}], "crew": [{"id": 7467, "name": "David Fincher", "job": "Director", "department": "Directing"}]},
			"recommendations": {"results": [
				{"id": 1, "title": "Good Rec", "vote_average": 7.5},
				{"id": 2, "title": "Sentinel Rec", "vote_average": 10.0}
			]},
			"release_dates": {"results": [{"iso_3166_1": "US", "release_dates": [{"certification": "R", "type": 3}]}]},
			"watch/providers": {"results": {"IN": {"flatrate": [{"provider_id": 8, "provider_name": "Netflix", "display_priority": 1}]}}}
		}`)
	}))

	content, err := ctrl.GetDetail(context.Background(), models.MediaTypeMovie, 550)
	if err != nil {
		t.Fatalf("GetDetail failed: %v", err)
	}

	if content.Certification != "R" {
		t.Errorf("Certification = %q, want R", content.Certification)
	}
	if content.DirectorID != 7467 || content.DirectorName != "David Fincher" {
		t.Errorf("director = (%d, %q), want (7467, David Fincher)", content.DirectorID, content.DirectorName)
	}
	if len(content.Providers) != 1 || content.Providers[0].ProviderName != "Netflix" {
		t.Errorf("providers = %+v", content.Providers)
	}
	if len(content.Recommendations) != 1 || content.Recommendations[0].ID != 1 {
		t.Errorf("sentinel-rated recommendation survived: %+v", content.Recommendations)
	}
	if content.Title.CriticsScore != 84 {
		t.Errorf("CriticsScore = %d, want 84", content.Title.CriticsScore)
	}
}
