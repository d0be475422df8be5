package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/rsrkatangur0811/watchman/internal/controllers"
)

// HomeHandler serves the home screen shelves
type HomeHandler struct {
	home   *controllers.HomeController
	logger *logrus.Logger
}

// NewHomeHandler creates a new home handler
func NewHomeHandler(home *controllers.HomeController, logger *logrus.Logger) *HomeHandler {
	return &HomeHandler{home: home, logger: logger}
}

// ServeHTTP builds and returns every home shelf. Failed shelves come back
// empty rather than failing the response.
func (h *HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.home.BuildHome(r.Context()))
}
