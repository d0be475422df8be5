package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/rsrkatangur0811/watchman/internal/services/tmdb"
)

// PeopleHandler serves person detail and filmography lookups
type PeopleHandler struct {
	tmdb   *tmdb.Service
	logger *logrus.Logger
}

// NewPeopleHandler creates a new people handler
func NewPeopleHandler(service *tmdb.Service, logger *logrus.Logger) *PeopleHandler {
	return &PeopleHandler{tmdb: service, logger: logger}
}

// GetPerson returns one person's biography record
func (h *PeopleHandler) GetPerson(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		http.Error(w, "invalid person id", http.StatusBadRequest)
		return
	}

	person, err := h.tmdb.Client().FetchPersonDetail(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, person)
}

// GetCredits returns one person's notable filmography
func (h *PeopleHandler) GetCredits(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		http.Error(w, "invalid person id", http.StatusBadRequest)
		return
	}

	credits, err := h.tmdb.DirectorCredits(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"credits": credits})
}
