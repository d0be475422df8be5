package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = bolthold.ErrNotFound

// Database wraps the bolthold store
type Database struct {
	store *bolthold.Store
}

// NewDatabase creates a new database connection
func NewDatabase(path string) (*Database, error) {
	store, err := bolthold.Open(path, 0600, &bolthold.Options{
		Options: &bbolt.Options{
			Timeout: 1 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Database{store: store}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	return db.store.Close()
}

// Library item operations

// GetLibraryItem retrieves the state record for a (titleId, mediaType) pair
func (db *Database) GetLibraryItem(titleID int, mediaType MediaType) (*LibraryItem, error) {
	var item LibraryItem
	err := db.store.FindOne(&item,
		bolthold.Where("TitleID").Eq(titleID).And("MediaType").Eq(mediaType))
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateLibraryItem inserts a new library record
func (db *Database) CreateLibraryItem(item *LibraryItem) error {
	item.AddedAt = time.Now()
	item.ModifiedAt = time.Now()
	return db.store.Insert(bolthold.NextSequence(), item)
}

// UpdateLibraryItem updates an existing library record
func (db *Database) UpdateLibraryItem(item *LibraryItem) error {
	item.ModifiedAt = time.Now()
	return db.store.Update(item.ID, item)
}

// DeleteLibraryItem deletes a library record by key
func (db *Database) DeleteLibraryItem(id uint64) error {
	return db.store.Delete(id, &LibraryItem{})
}

// GetWatchlist retrieves all watchlisted items, most recently modified first
func (db *Database) GetWatchlist() ([]*LibraryItem, error) {
	var items []*LibraryItem
	err := db.store.Find(&items,
		bolthold.Where("Watchlist").Eq(true).SortBy("ModifiedAt").Reverse())
	return items, err
}

// GetWatched retrieves all watched items, most recently modified first
func (db *Database) GetWatched() ([]*LibraryItem, error) {
	var items []*LibraryItem
	err := db.store.Find(&items,
		bolthold.Where("Watched").Eq(true).SortBy("ModifiedAt").Reverse())
	return items, err
}

// GetRated retrieves all rated items, most recently modified first
func (db *Database) GetRated() ([]*LibraryItem, error) {
	var items []*LibraryItem
	// bolthold cannot compare a nil pointer field with Ne/IsNil, so the
	// "Rating != nil" test has to go through MatchFunc
	err := db.store.Find(&items,
		bolthold.Where("Rating").MatchFunc(func(ra *bolthold.RecordAccess) (bool, error) {
			item, ok := ra.Record().(*LibraryItem)
			if !ok {
				return false, fmt.Errorf("unexpected record type %T", ra.Record())
			}
			return item.Rating != nil, nil
		}).SortBy("ModifiedAt").Reverse())
	return items, err
}

// GetLibraryShows retrieves library records for TV shows
func (db *Database) GetLibraryShows() ([]*LibraryItem, error) {
	var items []*LibraryItem
	err := db.store.Find(&items,
		bolthold.Where("MediaType").Eq(MediaTypeTV).SortBy("ModifiedAt").Reverse())
	return items, err
}

// Watched episode operations

// GetWatchedEpisode retrieves a watched marker, ErrNotFound when absent
func (db *Database) GetWatchedEpisode(showID, season, episode int) (*WatchedEpisode, error) {
	var ep WatchedEpisode
	err := db.store.FindOne(&ep, bolthold.Where("ShowID").Eq(showID).
		And("SeasonNumber").Eq(season).
		And("EpisodeNumber").Eq(episode))
	if err != nil {
		return nil, err
	}
	return &ep, nil
}

// InsertWatchedEpisode stores a new watched marker
func (db *Database) InsertWatchedEpisode(ep *WatchedEpisode) error {
	ep.WatchedAt = time.Now()
	return db.store.Insert(bolthold.NextSequence(), ep)
}

// UpdateWatchedEpisode updates an existing watched marker
func (db *Database) UpdateWatchedEpisode(ep *WatchedEpisode) error {
	return db.store.Update(ep.ID, ep)
}

// DeleteWatchedEpisode removes a watched marker by key
func (db *Database) DeleteWatchedEpisode(id uint64) error {
	return db.store.Delete(id, &WatchedEpisode{})
}

// GetSeasonEpisodes retrieves the watched markers for one season in
// episode order
func (db *Database) GetSeasonEpisodes(showID, season int) ([]*WatchedEpisode, error) {
	var eps []*WatchedEpisode
	err := db.store.Find(&eps, bolthold.Where("ShowID").Eq(showID).
		And("SeasonNumber").Eq(season).
		SortBy("EpisodeNumber"))
	return eps, err
}

// DeleteSeasonEpisodes removes every watched marker for one season
func (db *Database) DeleteSeasonEpisodes(showID, season int) error {
	return db.store.DeleteMatching(&WatchedEpisode{},
		bolthold.Where("ShowID").Eq(showID).And("SeasonNumber").Eq(season))
}

// CountShowEpisodes counts the watched markers for a show
func (db *Database) CountShowEpisodes(showID int) (int, error) {
	count, err := db.store.Count(&WatchedEpisode{}, bolthold.Where("ShowID").Eq(showID))
	return count, err
}

// CountSeasonEpisodes counts the watched markers for one season
func (db *Database) CountSeasonEpisodes(showID, season int) (int, error) {
	count, err := db.store.Count(&WatchedEpisode{},
		bolthold.Where("ShowID").Eq(showID).And("SeasonNumber").Eq(season))
	return count, err
}

// GetLatestWatchedEpisode returns the watched marker with the greatest
// (season, episode) pair for a show
func (db *Database) GetLatestWatchedEpisode(showID int) (*WatchedEpisode, error) {
	var eps []*WatchedEpisode
	err := db.store.Find(&eps, bolthold.Where("ShowID").Eq(showID).
		SortBy("SeasonNumber", "EpisodeNumber").Reverse().Limit(1))
	if err != nil {
		return nil, err
	}
	if len(eps) == 0 {
		return nil, ErrNotFound
	}
	return eps[0], nil
}

// IsNotFound reports whether err means a missing record
func IsNotFound(err error) bool {
	return errors.Is(err, bolthold.ErrNotFound)
}
