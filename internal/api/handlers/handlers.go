package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/rsrkatangur0811/watchman/internal/models"
	"github.com/rsrkatangur0811/watchman/internal/services/tmdb"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// respondError maps service errors onto HTTP statuses
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tmdb.ErrNotFound), models.IsNotFound(err):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, tmdb.ErrRateLimited):
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	default:
		http.Error(w, err.Error(), http.StatusBadGateway)
	}
}

// pathKind reads the {kind} route variable; only movie and tv are valid
func pathKind(r *http.Request) (models.MediaType, bool) {
	switch mux.Vars(r)["kind"] {
	case "movie":
		return models.MediaTypeMovie, true
	case "tv":
		return models.MediaTypeTV, true
	}
	return "", false
}

func pathInt(r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func pathVar(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}

func queryInt(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
