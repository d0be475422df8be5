package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rsrkatangur0811/watchman/internal/api"
	"github.com/rsrkatangur0811/watchman/internal/config"
	"github.com/rsrkatangur0811/watchman/internal/controllers"
	"github.com/rsrkatangur0811/watchman/internal/models"
	"github.com/rsrkatangur0811/watchman/internal/scheduler"
	"github.com/rsrkatangur0811/watchman/internal/services/library"
	"github.com/rsrkatangur0811/watchman/internal/services/tmdb"
	"github.com/rsrkatangur0811/watchman/internal/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Setup logger
	logger := utils.NewLogger(cfg.LogLevel)
	logger.Info("Starting Watchman")
	logger.WithField("config_dir", filepath.Dir(cfg.DatabaseFile)).Info("Configuration loaded")

	// 3. Initialize database
	db, err := models.NewDatabase(cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()
	logger.Info("Database initialized")

	// Lifetime context bounds background prefetches and warm-ups
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 4. Initialize services
	client, err := tmdb.NewClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize TMDB client: %w", err)
	}
	service := tmdb.NewService(ctx, client, logger)
	store := library.NewStore(db, logger)
	logger.Info("Services initialized")

	// 5. Initialize controllers
	scores := tmdb.NewRandomScoreSynthesizer()
	ctrl := api.Controllers{
		Home:       controllers.NewHomeController(service, logger),
		Categories: controllers.NewCategoriesController(service, logger),
		Search:     controllers.NewSearchController(service, logger),
		Detail:     controllers.NewDetailController(service, scores, cfg.ProviderRegion, logger),
	}
	logger.Info("Controllers initialized")

	// 6. Initialize scheduler
	sched := scheduler.NewScheduler(service, ctrl.Home, cfg.RefreshSchedule, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	// 7. Initialize HTTP server
	server := api.NewServer(cfg, service, store, ctrl, logger)

	serverErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil {
			serverErrChan <- err
		}
	}()

	// 8. Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("Watchman is running")

	select {
	case sig := <-sigChan:
		logger.WithField("signal", sig.String()).Info("Received shutdown signal")
	case err := <-serverErrChan:
		return fmt.Errorf("server failed: %w", err)
	}

	cancel()
	if err := server.Shutdown(context.Background()); err != nil {
		logger.WithError(err).Warn("Server shutdown error")
	}

	logger.Info("Watchman stopped")
	return nil
}
