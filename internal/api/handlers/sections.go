package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/rsrkatangur0811/watchman/internal/controllers"
	"github.com/rsrkatangur0811/watchman/internal/models"
)

// SectionsHandler serves the curated discovery shelves
type SectionsHandler struct {
	categories *controllers.CategoriesController
	logger     *logrus.Logger
}

// NewSectionsHandler creates a new sections handler
func NewSectionsHandler(categories *controllers.CategoriesController, logger *logrus.Logger) *SectionsHandler {
	return &SectionsHandler{categories: categories, logger: logger}
}

// ServeHTTP returns the shelves for the requested kind
func (h *SectionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	kind, ok := pathKind(r)
	if !ok {
		http.Error(w, "unknown media kind", http.StatusBadRequest)
		return
	}

	var sections []models.CategorySection
	if kind == models.MediaTypeMovie {
		sections = h.categories.BuildMovieSections(r.Context())
	} else {
		sections = h.categories.BuildTVSections(r.Context())
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"sections": sections})
}
