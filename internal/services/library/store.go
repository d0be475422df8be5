package library

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/rsrkatangur0811/watchman/internal/models"
)

// Store owns all per-title and per-episode watch state. State rules:
// rating a title implies watched and removes it from the watchlist, marking
// watched removes it from the watchlist, and a record left with no flags and
// no rating is deleted outright.
type Store struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewStore creates the library store
func NewStore(db *models.Database, logger *logrus.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// find returns the existing record or a fresh unsaved one seeded from title.
// Existing records pick up fresher display metadata from the caller.
func (s *Store) find(title *models.Title) (*models.LibraryItem, bool, error) {
	item, err := s.db.GetLibraryItem(title.ID, title.Kind())
	if err == nil {
		if name := title.DisplayName(); name != "" {
			item.TitleName = name
		}
		if title.PosterPath != "" {
			item.PosterPath = title.PosterPath
		}
		return item, true, nil
	}
	if !models.IsNotFound(err) {
		return nil, false, fmt.Errorf("failed to look up library item: %w", err)
	}
	return &models.LibraryItem{
		TitleID:    title.ID,
		MediaType:  title.Kind(),
		TitleName:  title.DisplayName(),
		PosterPath: title.PosterPath,
	}, false, nil
}

// save persists the mutated record, deleting it instead when it is empty
func (s *Store) save(item *models.LibraryItem, exists bool) error {
	if item.Empty() {
		if !exists {
			return nil
		}
		return s.db.DeleteLibraryItem(item.ID)
	}
	if exists {
		return s.db.UpdateLibraryItem(item)
	}
	return s.db.CreateLibraryItem(item)
}

// ToggleWatchlist flips the watchlist flag for a title
func (s *Store) ToggleWatchlist(title *models.Title) error {
	item, exists, err := s.find(title)
	if err != nil {
		return err
	}

	item.Watchlist = !item.Watchlist

	s.logger.WithFields(logrus.Fields{
		"title_id":   title.ID,
		"media_type": title.Kind(),
		"watchlist":  item.Watchlist,
	}).Info("Toggled watchlist")
	return s.save(item, exists)
}

// ToggleWatched flips the watched flag for a title; marking watched removes
// it from the watchlist
func (s *Store) ToggleWatched(title *models.Title) error {
	item, exists, err := s.find(title)
	if err != nil {
		return err
	}

	item.Watched = !item.Watched
	if item.Watched {
		item.Watchlist = false
	}

	s.logger.WithFields(logrus.Fields{
		"title_id":   title.ID,
		"media_type": title.Kind(),
		"watched":    item.Watched,
	}).Info("Toggled watched")
	return s.save(item, exists)
}

// SetRating stores or clears a rating. A rating implies watched and removes
// the title from the watchlist regardless of prior state.
func (s *Store) SetRating(title *models.Title, rating *float64) error {
	item, exists, err := s.find(title)
	if err != nil {
		return err
	}

	item.Rating = rating
	if rating != nil {
		item.Watched = true
		item.Watchlist = false
	}

	entry := s.logger.WithFields(logrus.Fields{
		"title_id":   title.ID,
		"media_type": title.Kind(),
	})
	if rating != nil {
		entry.WithField("rating", *rating).Info("Set rating")
	} else {
		entry.Info("Cleared rating")
	}
	return s.save(item, exists)
}

// GetItem returns the state record for a title, ErrNotFound when absent
func (s *Store) GetItem(titleID int, mediaType models.MediaType) (*models.LibraryItem, error) {
	return s.db.GetLibraryItem(titleID, mediaType)
}

// Watchlist returns all watchlisted titles, most recently modified first
func (s *Store) Watchlist() ([]*models.LibraryItem, error) {
	return s.db.GetWatchlist()
}

// Watched returns all watched titles, most recently modified first
func (s *Store) Watched() ([]*models.LibraryItem, error) {
	return s.db.GetWatched()
}

// Rated returns all rated titles, most recently modified first
func (s *Store) Rated() ([]*models.LibraryItem, error) {
	return s.db.GetRated()
}

// Shows returns library records for TV shows
func (s *Store) Shows() ([]*models.LibraryItem, error) {
	return s.db.GetLibraryShows()
}

// Stats summarizes the library by list size
type Stats struct {
	Watchlist int `json:"watchlist"`
	Watched   int `json:"watched"`
	Rated     int `json:"rated"`
	Shows     int `json:"shows"`
}

// GetStats counts the entries of each library list
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}
	for _, count := range []struct {
		fetch func() ([]*models.LibraryItem, error)
		dst   *int
	}{
		{s.Watchlist, &stats.Watchlist},
		{s.Watched, &stats.Watched},
		{s.Rated, &stats.Rated},
		{s.Shows, &stats.Shows},
	} {
		items, err := count.fetch()
		if err != nil {
			return nil, err
		}
		*count.dst = len(items)
	}
	return stats, nil
}

// Episode tracking

// MarkEpisodeWatched records one episode as watched. Existing markers keep
// their original timestamp.
func (s *Store) MarkEpisodeWatched(showID, season, episode int, name, stillPath string) error {
	_, err := s.db.GetWatchedEpisode(showID, season, episode)
	if err == nil {
		return nil
	}
	if !models.IsNotFound(err) {
		return fmt.Errorf("failed to look up watched episode: %w", err)
	}

	return s.db.InsertWatchedEpisode(&models.WatchedEpisode{
		ShowID:        showID,
		SeasonNumber:  season,
		EpisodeNumber: episode,
		EpisodeName:   name,
		StillPath:     stillPath,
	})
}

// ToggleEpisodeWatched inserts a marker when absent and deletes it when
// present
func (s *Store) ToggleEpisodeWatched(showID, season, episode int, name, stillPath string) error {
	ep, err := s.db.GetWatchedEpisode(showID, season, episode)
	if err == nil {
		return s.db.DeleteWatchedEpisode(ep.ID)
	}
	if !models.IsNotFound(err) {
		return fmt.Errorf("failed to look up watched episode: %w", err)
	}
	return s.MarkEpisodeWatched(showID, season, episode, name, stillPath)
}

// IsEpisodeWatched reports whether a marker exists for the episode
func (s *Store) IsEpisodeWatched(showID, season, episode int) (bool, error) {
	_, err := s.db.GetWatchedEpisode(showID, season, episode)
	if err == nil {
		return true, nil
	}
	if models.IsNotFound(err) {
		return false, nil
	}
	return false, err
}

// MarkSeasonWatched marks an explicit set of episodes watched
func (s *Store) MarkSeasonWatched(showID, season int, episodes []int) error {
	for _, episode := range episodes {
		if err := s.MarkEpisodeWatched(showID, season, episode, "", ""); err != nil {
			return err
		}
	}
	return nil
}

// UnmarkSeasonWatched removes every watched marker for one season
func (s *Store) UnmarkSeasonWatched(showID, season int) error {
	return s.db.DeleteSeasonEpisodes(showID, season)
}

// MarkAllSeasonsWatched marks every episode of every listed season. A season
// reporting zero episodes still gets its first episode marked.
func (s *Store) MarkAllSeasonsWatched(showID int, seasons []models.Season) error {
	for _, season := range seasons {
		count := season.EpisodeCount
		if count < 1 {
			count = 1
		}
		for episode := 1; episode <= count; episode++ {
			if err := s.MarkEpisodeWatched(showID, season.SeasonNumber, episode, "", ""); err != nil {
				return err
			}
		}
	}
	return nil
}

// GetShowProgress counts watched episodes across a show
func (s *Store) GetShowProgress(showID int) (int, error) {
	return s.db.CountShowEpisodes(showID)
}

// GetSeasonProgress counts watched episodes within one season
func (s *Store) GetSeasonProgress(showID, season int) (int, error) {
	return s.db.CountSeasonEpisodes(showID, season)
}

// GetSeasonEpisodes returns one season's watched markers in episode order
func (s *Store) GetSeasonEpisodes(showID, season int) ([]*models.WatchedEpisode, error) {
	return s.db.GetSeasonEpisodes(showID, season)
}

// NextEpisodeToWatch returns the episode after the latest watched one in the
// same season. It does not check that the target exists; ResolveNextEpisode
// handles season rollover. Returns ErrNotFound when nothing is watched yet.
func (s *Store) NextEpisodeToWatch(showID int) (season, episode int, err error) {
	latest, err := s.db.GetLatestWatchedEpisode(showID)
	if err != nil {
		return 0, 0, err
	}
	return latest.SeasonNumber, latest.EpisodeNumber + 1, nil
}
