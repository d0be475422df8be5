package handlers

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/rsrkatangur0811/watchman/internal/controllers"
	"github.com/rsrkatangur0811/watchman/internal/models"
	"github.com/rsrkatangur0811/watchman/internal/services/tmdb"
)

// ListsHandler serves infinite-scroll lists. Each (kind, family, sort)
// combination gets its own paginator that accumulates across requests;
// changing the sort resets the paginator for that (kind, family).
type ListsHandler struct {
	tmdb   *tmdb.Service
	logger *logrus.Logger

	mu         sync.Mutex
	paginators map[string]*paginatorEntry
}

type paginatorEntry struct {
	paginator *controllers.Paginator
	sort      string
}

// NewListsHandler creates a new lists handler
func NewListsHandler(service *tmdb.Service, logger *logrus.Logger) *ListsHandler {
	return &ListsHandler{
		tmdb:       service,
		logger:     logger,
		paginators: make(map[string]*paginatorEntry),
	}
}

var listFamilies = map[string]models.Family{
	"trending":     models.FamilyTrending,
	"top_rated":    models.FamilyTopRated,
	"upcoming":     models.FamilyUpcoming,
	"now_playing":  models.FamilyNowPlaying,
	"popular":      models.FamilyPopular,
	"airing_today": models.FamilyAiringToday,
	"on_the_air":   models.FamilyOnTheAir,
	"discover":     models.FamilyDiscover,
}

// ServeHTTP loads the next page for the requested list and returns the
// accumulated items
func (h *ListsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	kind, ok := pathKind(r)
	if !ok {
		http.Error(w, "unknown media kind", http.StatusBadRequest)
		return
	}
	family, ok := listFamilies[pathVar(r, "family")]
	if !ok {
		http.Error(w, "unknown list family", http.StatusBadRequest)
		return
	}

	query := r.URL.Query()
	sortBy := query.Get("sort")
	genreID, _ := queryInt(query.Get("genre"))
	year, _ := queryInt(query.Get("year"))

	paginator := h.paginatorFor(kind, family, sortBy, genreID, year)
	if err := paginator.LoadMore(r.Context()); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items":    paginator.Items(),
		"has_more": paginator.HasMore(),
	})
}

// paginatorFor returns the paginator for one list, resetting it when the
// sort option changed since the last request
func (h *ListsHandler) paginatorFor(kind models.MediaType, family models.Family, sortBy string, genreID, year int) *controllers.Paginator {
	key := fmt.Sprintf("%s_%s_%d_%d", kind, family, genreID, year)
	fetch := h.pageFetcher(kind, family, sortBy, genreID, year)

	h.mu.Lock()
	defer h.mu.Unlock()

	entry, ok := h.paginators[key]
	if !ok {
		entry = &paginatorEntry{
			paginator: controllers.NewPaginator(fetch, h.logger),
			sort:      sortBy,
		}
		h.paginators[key] = entry
		return entry.paginator
	}
	if entry.sort != sortBy {
		entry.paginator.Reset(fetch)
		entry.sort = sortBy
	}
	return entry.paginator
}

func (h *ListsHandler) pageFetcher(kind models.MediaType, family models.Family, sortBy string, genreID, year int) controllers.PageFetcher {
	client := h.tmdb.Client()
	return func(ctx context.Context, page int) ([]*models.Title, error) {
		return client.FetchTitles(ctx, family, kind, tmdb.FetchOptions{
			Page:    page,
			SortBy:  sortBy,
			GenreID: genreID,
			Year:    year,
		})
	}
}
