package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/rsrkatangur0811/watchman/internal/models"
	"github.com/rsrkatangur0811/watchman/internal/services/library"
	"github.com/rsrkatangur0811/watchman/internal/services/tmdb"
)

// LibraryHandler serves the local watch-state store
type LibraryHandler struct {
	store  *library.Store
	tmdb   *tmdb.Service
	logger *logrus.Logger
}

// NewLibraryHandler creates a new library handler
func NewLibraryHandler(store *library.Store, service *tmdb.Service, logger *logrus.Logger) *LibraryHandler {
	return &LibraryHandler{store: store, tmdb: service, logger: logger}
}

// titleRequest carries the minimum title identity needed to key a record
type titleRequest struct {
	ID         int      `json:"id"`
	MediaType  string   `json:"media_type"`
	Name       string   `json:"name,omitempty"`
	PosterPath string   `json:"poster_path,omitempty"`
	Rating     *float64 `json:"rating,omitempty"`
}

func (req *titleRequest) toTitle() *models.Title {
	t := &models.Title{
		ID:         req.ID,
		MediaType:  req.MediaType,
		PosterPath: req.PosterPath,
	}
	if req.MediaType == string(models.MediaTypeTV) {
		t.Name = req.Name
	} else {
		t.Title = req.Name
	}
	return t
}

func decodeTitleRequest(w http.ResponseWriter, r *http.Request) (*titleRequest, bool) {
	var req titleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID <= 0 {
		http.Error(w, "invalid title payload", http.StatusBadRequest)
		return nil, false
	}
	return &req, true
}

// ToggleWatchlist flips the watchlist flag for the posted title
func (h *LibraryHandler) ToggleWatchlist(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeTitleRequest(w, r)
	if !ok {
		return
	}
	if err := h.store.ToggleWatchlist(req.toTitle()); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleWatched flips the watched flag for the posted title
func (h *LibraryHandler) ToggleWatched(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeTitleRequest(w, r)
	if !ok {
		return
	}
	if err := h.store.ToggleWatched(req.toTitle()); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetRating stores or clears the rating for the posted title
func (h *LibraryHandler) SetRating(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeTitleRequest(w, r)
	if !ok {
		return
	}
	if err := h.store.SetRating(req.toTitle(), req.Rating); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetWatchlist returns the watchlisted titles
func (h *LibraryHandler) GetWatchlist(w http.ResponseWriter, r *http.Request) {
	h.respondItems(w, h.store.Watchlist)
}

// GetWatched returns the watched titles
func (h *LibraryHandler) GetWatched(w http.ResponseWriter, r *http.Request) {
	h.respondItems(w, h.store.Watched)
}

// GetRated returns the rated titles
func (h *LibraryHandler) GetRated(w http.ResponseWriter, r *http.Request) {
	h.respondItems(w, h.store.Rated)
}

// GetShows returns the tracked TV shows
func (h *LibraryHandler) GetShows(w http.ResponseWriter, r *http.Request) {
	h.respondItems(w, h.store.Shows)
}

// GetStats returns the size of each library list
func (h *LibraryHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.GetStats()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *LibraryHandler) respondItems(w http.ResponseWriter, fetch func() ([]*models.LibraryItem, error)) {
	items, err := fetch()
	if err != nil {
		respondError(w, err)
		return
	}
	if items == nil {
		items = []*models.LibraryItem{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

// episodeRequest carries optional display metadata for a watched marker
type episodeRequest struct {
	Name      string `json:"name,omitempty"`
	StillPath string `json:"still_path,omitempty"`
}

// ToggleEpisode flips the watched marker for one episode
func (h *LibraryHandler) ToggleEpisode(w http.ResponseWriter, r *http.Request) {
	showID, season, episode, ok := episodePath(w, r)
	if !ok {
		return
	}
	var req episodeRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	if err := h.store.ToggleEpisodeWatched(showID, season, episode, req.Name, req.StillPath); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkEpisode records one episode as watched, keeping any existing marker
func (h *LibraryHandler) MarkEpisode(w http.ResponseWriter, r *http.Request) {
	showID, season, episode, ok := episodePath(w, r)
	if !ok {
		return
	}
	var req episodeRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	if err := h.store.MarkEpisodeWatched(showID, season, episode, req.Name, req.StillPath); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkSeason marks the posted episode numbers of one season as watched
func (h *LibraryHandler) MarkSeason(w http.ResponseWriter, r *http.Request) {
	showID, season, ok := seasonPath(w, r)
	if !ok {
		return
	}
	var req struct {
		Episodes []int `json:"episodes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid episode list", http.StatusBadRequest)
		return
	}

	if err := h.store.MarkSeasonWatched(showID, season, req.Episodes); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UnmarkSeason removes every watched marker for one season
func (h *LibraryHandler) UnmarkSeason(w http.ResponseWriter, r *http.Request) {
	showID, season, ok := seasonPath(w, r)
	if !ok {
		return
	}
	if err := h.store.UnmarkSeasonWatched(showID, season); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkAllSeasons marks every episode of every posted season as watched
func (h *LibraryHandler) MarkAllSeasons(w http.ResponseWriter, r *http.Request) {
	showID, ok := pathInt(r, "id")
	if !ok {
		http.Error(w, "invalid show id", http.StatusBadRequest)
		return
	}
	var req struct {
		Seasons []models.Season `json:"seasons"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid season list", http.StatusBadRequest)
		return
	}

	if err := h.store.MarkAllSeasonsWatched(showID, req.Seasons); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetProgress returns the watched-episode count for a show, or for one
// season when the season query parameter is present
func (h *LibraryHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	showID, ok := pathInt(r, "id")
	if !ok {
		http.Error(w, "invalid show id", http.StatusBadRequest)
		return
	}

	var (
		count int
		err   error
	)
	if season, withSeason := queryInt(r.URL.Query().Get("season")); withSeason {
		count, err = h.store.GetSeasonProgress(showID, season)
	} else {
		count, err = h.store.GetShowProgress(showID)
	}
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"watched": count})
}

// GetNextEpisode resolves the next episode to watch, rolling over to the
// next season when the current one is finished
func (h *LibraryHandler) GetNextEpisode(w http.ResponseWriter, r *http.Request) {
	showID, ok := pathInt(r, "id")
	if !ok {
		http.Error(w, "invalid show id", http.StatusBadRequest)
		return
	}

	episode, err := h.store.ResolveNextEpisode(r.Context(), h.tmdb, showID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, episode)
}

func seasonPath(w http.ResponseWriter, r *http.Request) (showID, season int, ok bool) {
	showID, ok = pathInt(r, "id")
	if !ok {
		http.Error(w, "invalid show id", http.StatusBadRequest)
		return 0, 0, false
	}
	season, ok = pathInt(r, "season")
	if !ok {
		http.Error(w, "invalid season number", http.StatusBadRequest)
		return 0, 0, false
	}
	return showID, season, true
}

func episodePath(w http.ResponseWriter, r *http.Request) (showID, season, episode int, ok bool) {
	showID, season, ok = seasonPath(w, r)
	if !ok {
		return 0, 0, 0, false
	}
	episode, ok = pathInt(r, "episode")
	if !ok {
		http.Error(w, "invalid episode number", http.StatusBadRequest)
		return 0, 0, 0, false
	}
	return showID, season, episode, true
}
