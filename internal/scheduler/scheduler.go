// Package scheduler triggers periodic batch refreshes in service mode.
package scheduler

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Scheduler runs a refresh function on a fixed interval.
type Scheduler struct {
	scheduler *gocron.Scheduler
	interval  time.Duration
	refresh   func()
	logger    *slog.Logger
}

// New creates a Scheduler that calls refresh every interval.
func New(interval time.Duration, refresh func(), logger *slog.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		interval:  interval,
		refresh:   refresh,
		logger:    logger,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// Jobs do not overlap; a refresh that outlives the interval delays the next.
func (s *Scheduler) Start() error {
	s.scheduler.SingletonModeAll()

	_, err := s.scheduler.Every(s.interval).Do(func() {
		s.logger.Info("scheduled batch refresh starting")
		s.refresh()
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("scheduler started", "interval", s.interval)
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
