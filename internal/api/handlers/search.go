package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/rsrkatangur0811/watchman/internal/controllers"
)

// SearchHandler serves combined title and people search
type SearchHandler struct {
	search *controllers.SearchController
	logger *logrus.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(search *controllers.SearchController, logger *logrus.Logger) *SearchHandler {
	return &SearchHandler{search: search, logger: logger}
}

// ServeHTTP runs the search for the q query parameter
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	results, err := h.search.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, results)
}
