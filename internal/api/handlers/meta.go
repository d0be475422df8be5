package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/rsrkatangur0811/watchman/internal/services/tmdb"
)

// MetaHandler serves the cached configuration lists
type MetaHandler struct {
	tmdb   *tmdb.Service
	logger *logrus.Logger
}

// NewMetaHandler creates a new meta handler
func NewMetaHandler(service *tmdb.Service, logger *logrus.Logger) *MetaHandler {
	return &MetaHandler{tmdb: service, logger: logger}
}

// GetCountries returns the country list sorted by English name
func (h *MetaHandler) GetCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.tmdb.Countries(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"countries": countries})
}

// GetLanguages returns the language list sorted by English name
func (h *MetaHandler) GetLanguages(w http.ResponseWriter, r *http.Request) {
	languages, err := h.tmdb.Languages(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"languages": languages})
}
