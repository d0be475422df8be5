package tmdb

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/rsrkatangur0811/watchman/internal/config"
	"github.com/rsrkatangur0811/watchman/internal/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(&config.Config{TMDBBaseURL: baseURL, TMDBAPIKey: "test-key"}, testLogger())
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

func TestNewClientRequiresConfig(t *testing.T) {
	_, err := NewClient(&config.Config{TMDBBaseURL: "https://api.example.com"}, testLogger())
	if !errors.Is(err, ErrMissingConfig) {
		t.Errorf("NewClient without API key: err = %v, want ErrMissingConfig", err)
	}
}

func TestBuildListURL(t *testing.T) {
	client := testClient(t, "https://api.example.com")

	tests := []struct {
		name       string
		family     models.Family
		kind       models.MediaType
		opts       FetchOptions
		wantPath   string
		wantParams map[string]string
	}{
		{
			name:     "trending multi maps to all",
			family:   models.FamilyTrending,
			kind:     models.MediaTypeMulti,
			wantPath: "/3/trending/all/day",
		},
		{
			name:     "trending movie",
			family:   models.FamilyTrending,
			kind:     models.MediaTypeMovie,
			wantPath: "/3/trending/movie/day",
		},
		{
			name:     "kind family endpoints",
			family:   models.FamilyTopRated,
			kind:     models.MediaTypeTV,
			wantPath: "/3/tv/top_rated",
		},
		{
			name:       "search carries query",
			family:     models.FamilySearch,
			kind:       models.MediaTypeMulti,
			opts:       FetchOptions{Query: "fight club"},
			wantPath:   "/3/search/multi",
			wantParams: map[string]string{"query": "fight club"},
		},
		{
			name:   "discover filters",
			family: models.FamilyDiscover,
			kind:   models.MediaTypeMovie,
			opts: FetchOptions{
				GenreID:        35,
				Keywords:       "9799",
				ExcludeGenres:  "10751",
				Language:       "ja",
				VoteAverageMin: 6.5,
				VoteCountMin:   100,
				VoteCountMax:   1000,
				ReleaseDateGte: "1990-01-01",
				RuntimeLte:     100,
			},
			wantPath: "/3/discover/movie",
			wantParams: map[string]string{
				"sort_by":                  "popularity.desc",
				"with_genres":              "35",
				"with_keywords":            "9799",
				"without_genres":           "10751",
				"with_original_language":   "ja",
				"vote_average.gte":         "6.5",
				"vote_count.gte":           "100",
				"vote_count.lte":           "1000",
				"primary_release_date.gte": "1990-01-01",
				"with_runtime.lte":         "100",
			},
		},
		{
			name:       "discover tv uses air date field and year",
			family:     models.FamilyDiscover,
			kind:       models.MediaTypeTV,
			opts:       FetchOptions{ReleaseDateLte: "2020-12-31", Year: 2019},
			wantPath:   "/3/discover/tv",
			wantParams: map[string]string{"first_air_date.lte": "2020-12-31", "first_air_date_year": "2019"},
		},
		{
			name:       "page defaults to 1",
			family:     models.FamilyPopular,
			kind:       models.MediaTypeMovie,
			wantPath:   "/3/movie/popular",
			wantParams: map[string]string{"page": "1", "api_key": "test-key"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := client.buildListURL(tt.family, tt.kind, tt.opts)
			if err != nil {
				t.Fatalf("buildListURL failed: %v", err)
			}
			parsed, err := url.Parse(raw)
			if err != nil {
				t.Fatalf("buildListURL returned unparseable URL %q: %v", raw, err)
			}
			if parsed.Path != tt.wantPath {
				t.Errorf("path = %q, want %q", parsed.Path, tt.wantPath)
			}
			query := parsed.Query()
			for key, want := range tt.wantParams {
				if got := query.Get(key); got != want {
					t.Errorf("param %s = %q, want %q", key, got, want)
				}
			}
		})
	}
}

func TestBuildListURLErrors(t *testing.T) {
	client := testClient(t, "https://api.example.com")

	cases := []struct {
		name   string
		family models.Family
		kind   models.MediaType
		opts   FetchOptions
	}{
		{name: "unknown family", family: models.Family("bogus"), kind: models.MediaTypeMovie},
		{name: "search without query", family: models.FamilySearch, kind: models.MediaTypeMovie},
		{name: "multi top rated", family: models.FamilyTopRated, kind: models.MediaTypeMulti},
		{name: "multi discover", family: models.FamilyDiscover, kind: models.MediaTypeMulti},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.buildListURL(tt.family, tt.kind, tt.opts)
			if !errors.Is(err, ErrURLBuild) {
				t.Errorf("err = %v, want ErrURLBuild", err)
			}
		})
	}
}

func TestResolvePosterPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/abc.jpg", "https://image.tmdb.org/t/p/w500/abc.jpg"},
		{"abc.jpg", "https://image.tmdb.org/t/p/w500/abc.jpg"},
		{"https://image.tmdb.org/t/p/w500/abc.jpg", "https://image.tmdb.org/t/p/w500/abc.jpg"},
		{"", ""},
	}

	for _, tt := range tests {
		title := models.Title{PosterPath: tt.in}
		resolvePosterPath(&title)
		if title.PosterPath != tt.want {
			t.Errorf("resolvePosterPath(%q) = %q, want %q", tt.in, title.PosterPath, tt.want)
		}
	}
}

func TestFetchTitlesDecodesAndResolvesPosters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("api_key"); got != "test-key" {
			t.Errorf("api_key = %q, want test-key", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"page": 1, "results": [{"id": 550, "title": "Fight Club", "poster_path": "/fc.jpg", "vote_average": 8.4}]}`)
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	titles, err := client.FetchTitles(context.Background(), models.FamilyPopular, models.MediaTypeMovie, FetchOptions{})
	if err != nil {
		t.Fatalf("FetchTitles failed: %v", err)
	}
	if len(titles) != 1 {
		t.Fatalf("got %d titles, want 1", len(titles))
	}
	if !strings.HasPrefix(titles[0].PosterPath, "https://image.tmdb.org") {
		t.Errorf("poster not resolved: %q", titles[0].PosterPath)
	}
}

func TestGetJSONStatusMapping(t *testing.T) {
	var status int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	status = http.StatusNotFound
	_, err := client.FetchTitleDetails(context.Background(), models.MediaTypeMovie, 550)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("404: err = %v, want ErrNotFound", err)
	}

	status = http.StatusInternalServerError
	_, err = client.FetchTitleDetails(context.Background(), models.MediaTypeMovie, 550)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("500: err = %v, want StatusError", err)
	}
	if statusErr.Code != http.StatusInternalServerError {
		t.Errorf("StatusError.Code = %d, want 500", statusErr.Code)
	}
}
