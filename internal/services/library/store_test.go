package library

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/rsrkatangur0811/watchman/internal/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	db, err := models.NewDatabase(filepath.Join(t.TempDir(), "library.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewStore(db, logger)
}

func movieTitle(id int) *models.Title {
	return &models.Title{ID: id, Title: "Some Movie", PosterPath: "/p.jpg"}
}

func showTitle(id int) *models.Title {
	return &models.Title{ID: id, Name: "Some Show", PosterPath: "/p.jpg"}
}

func TestToggleWatchlistCreatesAndDeletesRecord(t *testing.T) {
	store := testStore(t)
	title := movieTitle(550)

	if err := store.ToggleWatchlist(title); err != nil {
		t.Fatalf("ToggleWatchlist failed: %v", err)
	}
	item, err := store.GetItem(550, models.MediaTypeMovie)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if !item.Watchlist {
		t.Error("Watchlist = false after toggle on")
	}
	if item.TitleName != "Some Movie" || item.PosterPath != "/p.jpg" {
		t.Errorf("display metadata not copied: %+v", item)
	}

	// Toggling off leaves the record logically empty, so it gets deleted
	if err := store.ToggleWatchlist(title); err != nil {
		t.Fatalf("second ToggleWatchlist failed: %v", err)
	}
	if _, err := store.GetItem(550, models.MediaTypeMovie); !models.IsNotFound(err) {
		t.Errorf("empty record should be deleted, got err = %v", err)
	}
}

func TestExistingRecordPicksUpFresherMetadata(t *testing.T) {
	store := testStore(t)

	if err := store.ToggleWatchlist(&models.Title{ID: 550, Title: "Fight club"}); err != nil {
		t.Fatalf("ToggleWatchlist failed: %v", err)
	}
	if err := store.ToggleWatched(&models.Title{ID: 550, Title: "Fight Club", PosterPath: "/fc.jpg"}); err != nil {
		t.Fatalf("ToggleWatched failed: %v", err)
	}

	item, err := store.GetItem(550, models.MediaTypeMovie)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if item.TitleName != "Fight Club" || item.PosterPath != "/fc.jpg" {
		t.Errorf("metadata not refreshed: name=%q poster=%q", item.TitleName, item.PosterPath)
	}
}

func TestGetStatsCountsEachList(t *testing.T) {
	store := testStore(t)

	if err := store.ToggleWatchlist(movieTitle(1)); err != nil {
		t.Fatalf("ToggleWatchlist failed: %v", err)
	}
	if err := store.ToggleWatched(movieTitle(2)); err != nil {
		t.Fatalf("ToggleWatched failed: %v", err)
	}
	rating := 8.0
	if err := store.SetRating(showTitle(3), &rating); err != nil {
		t.Fatalf("SetRating failed: %v", err)
	}

	stats, err := store.GetStats()
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	// The rated show counts as watched and as a show, never as watchlisted
	want := Stats{Watchlist: 1, Watched: 2, Rated: 1, Shows: 1}
	if *stats != want {
		t.Errorf("stats = %+v, want %+v", *stats, want)
	}
}

func TestMarkingWatchedClearsWatchlist(t *testing.T) {
	store := testStore(t)
	title := movieTitle(550)

	if err := store.ToggleWatchlist(title); err != nil {
		t.Fatalf("ToggleWatchlist failed: %v", err)
	}
	if err := store.ToggleWatched(title); err != nil {
		t.Fatalf("ToggleWatched failed: %v", err)
	}

	item, err := store.GetItem(550, models.MediaTypeMovie)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if !item.Watched || item.Watchlist {
		t.Errorf("state = (watched=%v, watchlist=%v), want (true, false)", item.Watched, item.Watchlist)
	}
}

func TestSetRatingImpliesWatched(t *testing.T) {
	store := testStore(t)
	title := movieTitle(550)

	if err := store.ToggleWatchlist(title); err != nil {
		t.Fatalf("ToggleWatchlist failed: %v", err)
	}

	rating := 4.5
	if err := store.SetRating(title, &rating); err != nil {
		t.Fatalf("SetRating failed: %v", err)
	}

	item, err := store.GetItem(550, models.MediaTypeMovie)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if item.Rating == nil || *item.Rating != 4.5 {
		t.Errorf("Rating = %v, want 4.5", item.Rating)
	}
	if !item.Watched || item.Watchlist {
		t.Errorf("state = (watched=%v, watchlist=%v), want (true, false)", item.Watched, item.Watchlist)
	}
}

func TestClearingLastStateDeletesRecord(t *testing.T) {
	store := testStore(t)
	title := movieTitle(550)

	rating := 3.0
	if err := store.SetRating(title, &rating); err != nil {
		t.Fatalf("SetRating failed: %v", err)
	}
	if err := store.ToggleWatched(title); err != nil {
		t.Fatalf("ToggleWatched failed: %v", err)
	}
	// Rating still set, record must survive
	if _, err := store.GetItem(550, models.MediaTypeMovie); err != nil {
		t.Fatalf("record with rating should survive: %v", err)
	}

	if err := store.SetRating(title, nil); err != nil {
		t.Fatalf("clearing rating failed: %v", err)
	}
	if _, err := store.GetItem(550, models.MediaTypeMovie); !models.IsNotFound(err) {
		t.Errorf("record should be deleted once empty, got err = %v", err)
	}
}

func TestSameIDDifferentKindsAreSeparateRecords(t *testing.T) {
	store := testStore(t)

	if err := store.ToggleWatchlist(movieTitle(42)); err != nil {
		t.Fatalf("movie toggle failed: %v", err)
	}
	if err := store.ToggleWatched(showTitle(42)); err != nil {
		t.Fatalf("show toggle failed: %v", err)
	}

	movie, err := store.GetItem(42, models.MediaTypeMovie)
	if err != nil {
		t.Fatalf("movie record missing: %v", err)
	}
	show, err := store.GetItem(42, models.MediaTypeTV)
	if err != nil {
		t.Fatalf("show record missing: %v", err)
	}
	if !movie.Watchlist || movie.Watched {
		t.Errorf("movie state = %+v", movie)
	}
	if show.Watchlist || !show.Watched {
		t.Errorf("show state = %+v", show)
	}
}

func TestMarkEpisodeWatchedIsIdempotent(t *testing.T) {
	store := testStore(t)

	if err := store.MarkEpisodeWatched(1399, 1, 1, "Winter Is Coming", "/s.jpg"); err != nil {
		t.Fatalf("MarkEpisodeWatched failed: %v", err)
	}
	if err := store.MarkEpisodeWatched(1399, 1, 1, "", ""); err != nil {
		t.Fatalf("repeat MarkEpisodeWatched failed: %v", err)
	}

	count, err := store.GetSeasonProgress(1399, 1)
	if err != nil {
		t.Fatalf("GetSeasonProgress failed: %v", err)
	}
	if count != 1 {
		t.Errorf("season progress = %d, want 1", count)
	}

	// The original marker's metadata survives the repeat call
	eps, err := store.GetSeasonEpisodes(1399, 1)
	if err != nil {
		t.Fatalf("GetSeasonEpisodes failed: %v", err)
	}
	if len(eps) != 1 || eps[0].EpisodeName != "Winter Is Coming" {
		t.Errorf("episodes = %+v", eps)
	}
}

func TestToggleEpisodeWatched(t *testing.T) {
	store := testStore(t)

	if err := store.ToggleEpisodeWatched(1399, 1, 1, "", ""); err != nil {
		t.Fatalf("toggle on failed: %v", err)
	}
	watched, err := store.IsEpisodeWatched(1399, 1, 1)
	if err != nil || !watched {
		t.Fatalf("IsEpisodeWatched = (%v, %v), want (true, nil)", watched, err)
	}

	if err := store.ToggleEpisodeWatched(1399, 1, 1, "", ""); err != nil {
		t.Fatalf("toggle off failed: %v", err)
	}
	watched, err = store.IsEpisodeWatched(1399, 1, 1)
	if err != nil || watched {
		t.Fatalf("IsEpisodeWatched = (%v, %v), want (false, nil)", watched, err)
	}
}

func TestSeasonBulkOperations(t *testing.T) {
	store := testStore(t)

	if err := store.MarkSeasonWatched(1399, 1, []int{1, 2, 3}); err != nil {
		t.Fatalf("MarkSeasonWatched failed: %v", err)
	}
	count, err := store.GetShowProgress(1399)
	if err != nil || count != 3 {
		t.Fatalf("show progress = (%d, %v), want (3, nil)", count, err)
	}

	if err := store.UnmarkSeasonWatched(1399, 1); err != nil {
		t.Fatalf("UnmarkSeasonWatched failed: %v", err)
	}
	count, err = store.GetShowProgress(1399)
	if err != nil || count != 0 {
		t.Fatalf("show progress after unmark = (%d, %v), want (0, nil)", count, err)
	}
}

func TestMarkAllSeasonsWatched(t *testing.T) {
	store := testStore(t)

	seasons := []models.Season{
		{SeasonNumber: 1, EpisodeCount: 3},
		{SeasonNumber: 2, EpisodeCount: 0}, // unknown count still marks episode 1
	}
	if err := store.MarkAllSeasonsWatched(1399, seasons); err != nil {
		t.Fatalf("MarkAllSeasonsWatched failed: %v", err)
	}

	count, err := store.GetShowProgress(1399)
	if err != nil || count != 4 {
		t.Fatalf("show progress = (%d, %v), want (4, nil)", count, err)
	}
	seasonCount, err := store.GetSeasonProgress(1399, 2)
	if err != nil || seasonCount != 1 {
		t.Fatalf("season 2 progress = (%d, %v), want (1, nil)", seasonCount, err)
	}
}

func TestNextEpisodeToWatch(t *testing.T) {
	store := testStore(t)

	if _, _, err := store.NextEpisodeToWatch(1399); !models.IsNotFound(err) {
		t.Errorf("no watched episodes: err = %v, want not found", err)
	}

	if err := store.MarkSeasonWatched(1399, 1, []int{1, 2, 3, 4, 5}); err != nil {
		t.Fatalf("MarkSeasonWatched failed: %v", err)
	}

	season, episode, err := store.NextEpisodeToWatch(1399)
	if err != nil {
		t.Fatalf("NextEpisodeToWatch failed: %v", err)
	}
	if season != 1 || episode != 6 {
		t.Errorf("next = s%de%d, want s1e6", season, episode)
	}

	// A later season's marker takes precedence
	if err := store.MarkEpisodeWatched(1399, 2, 1, "", ""); err != nil {
		t.Fatalf("MarkEpisodeWatched failed: %v", err)
	}
	season, episode, err = store.NextEpisodeToWatch(1399)
	if err != nil {
		t.Fatalf("NextEpisodeToWatch failed: %v", err)
	}
	if season != 2 || episode != 2 {
		t.Errorf("next = s%de%d, want s2e2", season, episode)
	}
}
