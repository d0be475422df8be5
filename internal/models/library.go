package models

import "time"

// LibraryItem tracks per-title watch state, keyed by (TitleID, MediaType).
// A record whose watchlist flag, watched flag and rating are all unset is
// logically empty and gets deleted rather than kept as a tombstone.
type LibraryItem struct {
	ID        uint64    `boltholdKey:"ID"`
	TitleID   int       `boltholdIndex:"TitleID"`
	MediaType MediaType `boltholdIndex:"MediaType"`

	// Display metadata cached for list rendering
	TitleName  string
	PosterPath string

	Watchlist bool
	Watched   bool
	Rating    *float64

	AddedAt    time.Time
	ModifiedAt time.Time
}

// Empty reports whether the record carries no state worth keeping
func (i *LibraryItem) Empty() bool {
	return !i.Watchlist && !i.Watched && i.Rating == nil
}

// WatchedEpisode marks one episode as watched, keyed by
// (ShowID, SeasonNumber, EpisodeNumber). Presence means watched; there is
// no explicit unwatched state.
type WatchedEpisode struct {
	ID            uint64 `boltholdKey:"ID"`
	ShowID        int    `boltholdIndex:"ShowID"`
	SeasonNumber  int
	EpisodeNumber int

	EpisodeName string
	StillPath   string

	WatchedAt time.Time
}
