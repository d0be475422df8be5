package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/rsrkatangur0811/watchman/internal/api/handlers"
	"github.com/rsrkatangur0811/watchman/internal/api/middleware"
	"github.com/rsrkatangur0811/watchman/internal/config"
	"github.com/rsrkatangur0811/watchman/internal/controllers"
	"github.com/rsrkatangur0811/watchman/internal/services/library"
	"github.com/rsrkatangur0811/watchman/internal/services/tmdb"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	logger *logrus.Logger
}

// Controllers bundles the orchestrators the server exposes
type Controllers struct {
	Home       *controllers.HomeController
	Categories *controllers.CategoriesController
	Search     *controllers.SearchController
	Detail     *controllers.DetailController
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, service *tmdb.Service, store *library.Store, ctrl Controllers, logger *logrus.Logger) *Server {
	s := &Server{logger: logger}

	router := mux.NewRouter()
	s.setupRoutes(router, service, store, ctrl)

	s.server = &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      middleware.Logging(router, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(router *mux.Router, service *tmdb.Service, store *library.Store, ctrl Controllers) {
	healthHandler := handlers.NewHealthHandler(s.logger)
	router.HandleFunc("/health", healthHandler.ServeHTTP).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	homeHandler := handlers.NewHomeHandler(ctrl.Home, s.logger)
	api.HandleFunc("/home", homeHandler.ServeHTTP).Methods(http.MethodGet)

	sectionsHandler := handlers.NewSectionsHandler(ctrl.Categories, s.logger)
	api.HandleFunc("/sections/{kind}", sectionsHandler.ServeHTTP).Methods(http.MethodGet)

	searchHandler := handlers.NewSearchHandler(ctrl.Search, s.logger)
	api.HandleFunc("/search", searchHandler.ServeHTTP).Methods(http.MethodGet)

	listsHandler := handlers.NewListsHandler(service, s.logger)
	api.HandleFunc("/lists/{kind}/{family}", listsHandler.ServeHTTP).Methods(http.MethodGet)

	detailHandler := handlers.NewDetailHandler(ctrl.Detail, service, s.logger)
	api.HandleFunc("/{kind:movie|tv}/{id:[0-9]+}", detailHandler.GetDetail).Methods(http.MethodGet)
	api.HandleFunc("/{kind:movie|tv}/{id:[0-9]+}/related", detailHandler.GetRelated).Methods(http.MethodGet)
	api.HandleFunc("/{kind:movie|tv}/{id:[0-9]+}/prefetch", detailHandler.Prefetch).Methods(http.MethodPost)
	api.HandleFunc("/tv/{id:[0-9]+}/season/{season:[0-9]+}", detailHandler.GetSeason).Methods(http.MethodGet)

	peopleHandler := handlers.NewPeopleHandler(service, s.logger)
	api.HandleFunc("/person/{id:[0-9]+}", peopleHandler.GetPerson).Methods(http.MethodGet)
	api.HandleFunc("/person/{id:[0-9]+}/credits", peopleHandler.GetCredits).Methods(http.MethodGet)

	metaHandler := handlers.NewMetaHandler(service, s.logger)
	api.HandleFunc("/meta/countries", metaHandler.GetCountries).Methods(http.MethodGet)
	api.HandleFunc("/meta/languages", metaHandler.GetLanguages).Methods(http.MethodGet)

	libraryHandler := handlers.NewLibraryHandler(store, service, s.logger)
	lib := api.PathPrefix("/library").Subrouter()
	lib.HandleFunc("/watchlist", libraryHandler.GetWatchlist).Methods(http.MethodGet)
	lib.HandleFunc("/watchlist/toggle", libraryHandler.ToggleWatchlist).Methods(http.MethodPost)
	lib.HandleFunc("/watched", libraryHandler.GetWatched).Methods(http.MethodGet)
	lib.HandleFunc("/watched/toggle", libraryHandler.ToggleWatched).Methods(http.MethodPost)
	lib.HandleFunc("/rated", libraryHandler.GetRated).Methods(http.MethodGet)
	lib.HandleFunc("/rating", libraryHandler.SetRating).Methods(http.MethodPost)
	lib.HandleFunc("/shows", libraryHandler.GetShows).Methods(http.MethodGet)
	lib.HandleFunc("/stats", libraryHandler.GetStats).Methods(http.MethodGet)
	lib.HandleFunc("/shows/{id:[0-9]+}/progress", libraryHandler.GetProgress).Methods(http.MethodGet)
	lib.HandleFunc("/shows/{id:[0-9]+}/next-episode", libraryHandler.GetNextEpisode).Methods(http.MethodGet)
	lib.HandleFunc("/shows/{id:[0-9]+}/watched-all", libraryHandler.MarkAllSeasons).Methods(http.MethodPost)
	lib.HandleFunc("/shows/{id:[0-9]+}/seasons/{season:[0-9]+}/watched", libraryHandler.MarkSeason).Methods(http.MethodPost)
	lib.HandleFunc("/shows/{id:[0-9]+}/seasons/{season:[0-9]+}/watched", libraryHandler.UnmarkSeason).Methods(http.MethodDelete)
	lib.HandleFunc("/shows/{id:[0-9]+}/seasons/{season:[0-9]+}/episodes/{episode:[0-9]+}", libraryHandler.MarkEpisode).Methods(http.MethodPost)
	lib.HandleFunc("/shows/{id:[0-9]+}/seasons/{season:[0-9]+}/episodes/{episode:[0-9]+}/toggle", libraryHandler.ToggleEpisode).Methods(http.MethodPost)
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.logger.WithField("port", s.server.Addr).Info("Starting HTTP server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
