package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"

	"github.com/rsrkatangur0811/watchman/internal/controllers"
	"github.com/rsrkatangur0811/watchman/internal/services/tmdb"
)

// Scheduler manages the background warm-up jobs
type Scheduler struct {
	cron            *cron.Cron
	tmdb            *tmdb.Service
	homeCtrl        *controllers.HomeController
	refreshSchedule string
	logger          *logrus.Logger
}

// NewScheduler creates a new scheduler. refreshSchedule is the cron
// expression driving the home warm-up.
func NewScheduler(service *tmdb.Service, homeCtrl *controllers.HomeController, refreshSchedule string, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:            cron.New(),
		tmdb:            service,
		homeCtrl:        homeCtrl,
		refreshSchedule: refreshSchedule,
		logger:          logger,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.logger.Info("Starting scheduler")

	_, err := s.cron.AddFunc(s.refreshSchedule, func() {
		s.runHomeWarmup()
	})
	if err != nil {
		return fmt.Errorf("failed to add home warm-up job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Scheduler started")

	// Warm the configuration lists and the home shelves immediately
	go func() {
		s.runConfigWarmup()
		s.runHomeWarmup()
	}()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	s.cron.Stop()
}

// runConfigWarmup caches the country and language lists so the first
// filter interaction is instant
func (s *Scheduler) runConfigWarmup() {
	s.logger.Info("Warming configuration lists")

	p := pool.New().WithContext(s.tmdb.Lifetime())
	p.Go(func(ctx context.Context) error {
		if _, err := s.tmdb.Countries(ctx); err != nil {
			s.logger.WithError(err).Warn("Country list warm-up failed")
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		if _, err := s.tmdb.Languages(ctx); err != nil {
			s.logger.WithError(err).Warn("Language list warm-up failed")
		}
		return nil
	})
	_ = p.Wait()
}

// runHomeWarmup rebuilds the home shelves and prefetches details for the
// featured titles, the most likely next navigations
func (s *Scheduler) runHomeWarmup() {
	s.logger.Info("Running home warm-up")

	content := s.homeCtrl.BuildHome(s.tmdb.Lifetime())
	for _, title := range content.Featured {
		s.tmdb.Prefetch(title.Kind(), title.ID)
	}

	s.logger.WithField("featured", len(content.Featured)).Info("Home warm-up completed")
}
