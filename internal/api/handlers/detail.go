package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/rsrkatangur0811/watchman/internal/controllers"
	"github.com/rsrkatangur0811/watchman/internal/models"
	"github.com/rsrkatangur0811/watchman/internal/services/tmdb"
)

// DetailHandler serves title detail views and their enrichment
type DetailHandler struct {
	detail *controllers.DetailController
	tmdb   *tmdb.Service
	logger *logrus.Logger
}

// NewDetailHandler creates a new detail handler
func NewDetailHandler(detail *controllers.DetailController, service *tmdb.Service, logger *logrus.Logger) *DetailHandler {
	return &DetailHandler{detail: detail, tmdb: service, logger: logger}
}

// GetDetail returns the enriched detail view for one title
func (h *DetailHandler) GetDetail(w http.ResponseWriter, r *http.Request) {
	kind, ok := pathKind(r)
	if !ok {
		http.Error(w, "unknown media kind", http.StatusBadRequest)
		return
	}
	id, ok := pathInt(r, "id")
	if !ok {
		http.Error(w, "invalid title id", http.StatusBadRequest)
		return
	}

	content, err := h.detail.GetDetail(r.Context(), kind, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, content)
}

// GetRelated returns the director filmography and franchise siblings for a
// title. The detail envelope is a cache hit when the client visited the
// title first; otherwise it is fetched on the spot.
func (h *DetailHandler) GetRelated(w http.ResponseWriter, r *http.Request) {
	kind, ok := pathKind(r)
	if !ok {
		http.Error(w, "unknown media kind", http.StatusBadRequest)
		return
	}
	id, ok := pathInt(r, "id")
	if !ok {
		http.Error(w, "invalid title id", http.StatusBadRequest)
		return
	}

	content, err := h.detail.GetDetail(r.Context(), kind, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.detail.Related(r.Context(), content.DirectorID, content.CollectionID, id))
}

// Prefetch warms the detail cache for one title and returns immediately
func (h *DetailHandler) Prefetch(w http.ResponseWriter, r *http.Request) {
	kind, ok := pathKind(r)
	if !ok {
		http.Error(w, "unknown media kind", http.StatusBadRequest)
		return
	}
	id, ok := pathInt(r, "id")
	if !ok {
		http.Error(w, "invalid title id", http.StatusBadRequest)
		return
	}

	h.tmdb.Prefetch(kind, id)
	w.WriteHeader(http.StatusAccepted)
}

// GetSeason returns one season's episodes with the merged cast
func (h *DetailHandler) GetSeason(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		http.Error(w, "invalid show id", http.StatusBadRequest)
		return
	}
	season, ok := pathInt(r, "season")
	if !ok {
		http.Error(w, "invalid season number", http.StatusBadRequest)
		return
	}

	// Reuse the show-level cast from the cached envelope for the merge
	var showCast []models.Cast
	if envelope, err := h.tmdb.FetchFullTitle(r.Context(), models.MediaTypeTV, id); err == nil && envelope.Credits != nil {
		showCast = envelope.Credits.Cast
	}

	content, err := h.detail.GetSeason(r.Context(), id, season, showCast)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, content)
}
