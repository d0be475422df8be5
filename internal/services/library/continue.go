package library

import (
	"context"
	"errors"

	"github.com/rsrkatangur0811/watchman/internal/models"
	"github.com/rsrkatangur0811/watchman/internal/services/tmdb"
)

// EpisodeProber checks whether a candidate episode exists upstream
type EpisodeProber interface {
	Episode(ctx context.Context, showID, season, episode int) (*models.Episode, error)
}

// ResolveNextEpisode turns the store's naive next-episode candidate into a
// real episode. It probes (season, episode+1) first; when that episode does
// not exist and at least one episode of the season was watched, it rolls
// over to the first episode of the next season.
func (s *Store) ResolveNextEpisode(ctx context.Context, prober EpisodeProber, showID int) (*models.Episode, error) {
	season, episode, err := s.NextEpisodeToWatch(showID)
	if err != nil {
		return nil, err
	}

	ep, err := prober.Episode(ctx, showID, season, episode)
	if err == nil {
		return ep, nil
	}
	if !errors.Is(err, tmdb.ErrNotFound) || episode <= 1 {
		return nil, err
	}

	return prober.Episode(ctx, showID, season+1, 1)
}
