package tmdb

import (
	"context"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/rsrkatangur0811/watchman/internal/models"
)

// Service layers the process-lifetime cache over the raw client. All detail
// reads go through it so repeated lookups of the same resource cost one
// network round trip for the life of the process.
type Service struct {
	client *Client
	cache  *responseCache
	logger *logrus.Logger

	// lifetime bounds background prefetches so they die with the service
	// owner instead of an individual request
	lifetime context.Context

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewService creates the caching detail service. Background prefetches are
// scoped to ctx.
func NewService(ctx context.Context, client *Client, logger *logrus.Logger) *Service {
	return &Service{
		client:   client,
		cache:    newResponseCache(),
		logger:   logger,
		lifetime: ctx,
		inflight: make(map[string]struct{}),
	}
}

// Client exposes the underlying raw client for uncached list fetches
func (s *Service) Client() *Client {
	return s.client
}

// Lifetime returns the context bounding the service's background work
func (s *Service) Lifetime() context.Context {
	return s.lifetime
}

// ClearCache drops every cached response
func (s *Service) ClearCache() {
	s.cache.clear()
}

// FetchFullTitle returns the combined detail envelope for one title,
// served from cache after the first fetch
func (s *Service) FetchFullTitle(ctx context.Context, kind models.MediaType, id int) (*models.TitleDetailResponse, error) {
	key := detailKey(kind, id)
	if detail, ok := s.cache.getDetail(key); ok {
		return detail, nil
	}

	detail, err := s.client.FetchFullTitle(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	s.cache.setDetail(key, detail)
	return detail, nil
}

// Prefetch warms the detail cache for one title without blocking the caller.
// Already-cached and already-in-flight titles are skipped; failures are
// logged and absorbed.
func (s *Service) Prefetch(kind models.MediaType, id int) {
	key := detailKey(kind, id)
	if _, ok := s.cache.getDetail(key); ok {
		return
	}

	s.mu.Lock()
	if _, busy := s.inflight[key]; busy {
		s.mu.Unlock()
		return
	}
	s.inflight[key] = struct{}{}
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.inflight, key)
			s.mu.Unlock()
		}()

		if _, err := s.FetchFullTitle(s.lifetime, kind, id); err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"media_type": kind,
				"title_id":   id,
			}).Debug("Prefetch failed")
		}
	}()
}

// DirectorCredits returns a person's notable filmography: every acting
// credit, plus directing/creating credits not already present, ordered by
// vote count. Entries without a poster are dropped.
func (s *Service) DirectorCredits(ctx context.Context, personID int) ([]*models.Title, error) {
	key := creditsKey(personID)
	if titles, ok := s.cache.getCredits(key); ok {
		return titles, nil
	}

	credits, err := s.client.FetchCombinedCredits(ctx, personID)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]struct{})
	var titles []*models.Title
	for _, t := range credits.Cast {
		if t.PosterPath == "" {
			continue
		}
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		titles = append(titles, t)
	}
	for _, t := range credits.Crew {
		if t.Job != "Director" && t.Job != "Creator" {
			continue
		}
		if t.PosterPath == "" {
			continue
		}
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		titles = append(titles, t)
	}
	sort.SliceStable(titles, func(i, j int) bool {
		return titles[i].VoteCount > titles[j].VoteCount
	})

	s.cache.setCredits(key, titles)
	return titles, nil
}

// CollectionParts returns a franchise's member titles in release order.
// Entries without a poster are dropped; the caller excludes the title it
// came from.
func (s *Service) CollectionParts(ctx context.Context, collectionID int) ([]*models.Title, error) {
	key := collectionKey(collectionID)
	if titles, ok := s.cache.getCollection(key); ok {
		return titles, nil
	}

	list, err := s.client.FetchCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	var titles []*models.Title
	for _, t := range list.Results {
		if t.PosterPath == "" {
			continue
		}
		titles = append(titles, t)
	}
	sort.SliceStable(titles, func(i, j int) bool {
		return titles[i].ReleaseDate < titles[j].ReleaseDate
	})

	s.cache.setCollection(key, titles)
	return titles, nil
}

// SeasonDetails returns one season's episodes and credits, cached per
// (show, season) pair
func (s *Service) SeasonDetails(ctx context.Context, showID, season int) (*models.SeasonDetail, error) {
	key := seasonKey(showID, season)
	if detail, ok := s.cache.getSeason(key); ok {
		return detail, nil
	}

	detail, err := s.client.FetchSeasonDetail(ctx, showID, season)
	if err != nil {
		return nil, err
	}
	s.cache.setSeason(key, detail)
	return detail, nil
}

// Episode returns a single episode record, cached per
// (show, season, episode) triple
func (s *Service) Episode(ctx context.Context, showID, season, episode int) (*models.Episode, error) {
	key := episodeKey(showID, season, episode)
	if ep, ok := s.cache.getEpisode(key); ok {
		return ep, nil
	}

	ep, err := s.client.FetchEpisode(ctx, showID, season, episode)
	if err != nil {
		return nil, err
	}
	s.cache.setEpisode(key, ep)
	return ep, nil
}

// Countries returns the configuration country list sorted by English name
func (s *Service) Countries(ctx context.Context) ([]models.Country, error) {
	if countries, ok := s.cache.getCountries(); ok {
		return countries, nil
	}

	countries, err := s.client.FetchCountries(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(countries, func(i, j int) bool {
		return countries[i].EnglishName < countries[j].EnglishName
	})

	s.cache.setCountries(countries)
	return countries, nil
}

// Languages returns the configuration language list sorted by English name
func (s *Service) Languages(ctx context.Context) ([]models.Language, error) {
	if languages, ok := s.cache.getLanguages(); ok {
		return languages, nil
	}

	languages, err := s.client.FetchLanguages(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(languages, func(i, j int) bool {
		return languages[i].EnglishName < languages[j].EnglishName
	})

	s.cache.setLanguages(languages)
	return languages, nil
}
