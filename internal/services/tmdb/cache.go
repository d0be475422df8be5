package tmdb

import (
	"fmt"

	gocache "github.com/patrickmn/go-cache"

	"github.com/rsrkatangur0811/watchman/internal/models"
)

// responseCache holds the process-lifetime caches, one per resource family.
// Entries never expire; a full clear is the only eviction path.
type responseCache struct {
	details     *gocache.Cache
	credits     *gocache.Cache
	collections *gocache.Cache
	seasons     *gocache.Cache
	episodes    *gocache.Cache
	lists       *gocache.Cache
}

func newResponseCache() *responseCache {
	fresh := func() *gocache.Cache {
		return gocache.New(gocache.NoExpiration, 0)
	}
	return &responseCache{
		details:     fresh(),
		credits:     fresh(),
		collections: fresh(),
		seasons:     fresh(),
		episodes:    fresh(),
		lists:       fresh(),
	}
}

func (rc *responseCache) clear() {
	rc.details.Flush()
	rc.credits.Flush()
	rc.collections.Flush()
	rc.seasons.Flush()
	rc.episodes.Flush()
	rc.lists.Flush()
}

func detailKey(kind models.MediaType, id int) string {
	return fmt.Sprintf("fullTitle_%s_%d", kind, id)
}

func creditsKey(personID int) string {
	return fmt.Sprintf("directorCredits_%d", personID)
}

func collectionKey(collectionID int) string {
	return fmt.Sprintf("collection_%d", collectionID)
}

func seasonKey(showID, season int) string {
	return fmt.Sprintf("season_%d_%d", showID, season)
}

func episodeKey(showID, season, episode int) string {
	return fmt.Sprintf("episode_%d_%d_%d", showID, season, episode)
}

func (rc *responseCache) getDetail(key string) (*models.TitleDetailResponse, bool) {
	v, ok := rc.details.Get(key)
	if !ok {
		return nil, false
	}
	detail, ok := v.(*models.TitleDetailResponse)
	return detail, ok
}

func (rc *responseCache) setDetail(key string, detail *models.TitleDetailResponse) {
	rc.details.Set(key, detail, gocache.NoExpiration)
}

func (rc *responseCache) getCredits(key string) ([]*models.Title, bool) {
	v, ok := rc.credits.Get(key)
	if !ok {
		return nil, false
	}
	titles, ok := v.([]*models.Title)
	return titles, ok
}

func (rc *responseCache) setCredits(key string, titles []*models.Title) {
	rc.credits.Set(key, titles, gocache.NoExpiration)
}

func (rc *responseCache) getCollection(key string) ([]*models.Title, bool) {
	v, ok := rc.collections.Get(key)
	if !ok {
		return nil, false
	}
	titles, ok := v.([]*models.Title)
	return titles, ok
}

func (rc *responseCache) setCollection(key string, titles []*models.Title) {
	rc.collections.Set(key, titles, gocache.NoExpiration)
}

func (rc *responseCache) getSeason(key string) (*models.SeasonDetail, bool) {
	v, ok := rc.seasons.Get(key)
	if !ok {
		return nil, false
	}
	season, ok := v.(*models.SeasonDetail)
	return season, ok
}

func (rc *responseCache) setSeason(key string, season *models.SeasonDetail) {
	rc.seasons.Set(key, season, gocache.NoExpiration)
}

func (rc *responseCache) getEpisode(key string) (*models.Episode, bool) {
	v, ok := rc.episodes.Get(key)
	if !ok {
		return nil, false
	}
	ep, ok := v.(*models.Episode)
	return ep, ok
}

func (rc *responseCache) setEpisode(key string, ep *models.Episode) {
	rc.episodes.Set(key, ep, gocache.NoExpiration)
}

func (rc *responseCache) getCountries() ([]models.Country, bool) {
	v, ok := rc.lists.Get("config_countries")
	if !ok {
		return nil, false
	}
	countries, ok := v.([]models.Country)
	return countries, ok
}

func (rc *responseCache) setCountries(countries []models.Country) {
	rc.lists.Set("config_countries", countries, gocache.NoExpiration)
}

func (rc *responseCache) getLanguages() ([]models.Language, bool) {
	v, ok := rc.lists.Get("config_languages")
	if !ok {
		return nil, false
	}
	languages, ok := v.([]models.Language)
	return languages, ok
}

func (rc *responseCache) setLanguages(languages []models.Language) {
	rc.lists.Set("config_languages", languages, gocache.NoExpiration)
}
