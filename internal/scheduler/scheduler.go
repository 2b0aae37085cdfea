// Package scheduler refreshes the earthquake store on a fixed interval.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
)

// Fetcher performs one refresh.
type Fetcher interface {
	Fetch(ctx context.Context) error
}

// Scheduler runs an immediate fetch and then one per interval.
type Scheduler struct {
	fetcher  Fetcher
	interval time.Duration
	clock    clockwork.Clock
	logger   *slog.Logger
}

// New creates a Scheduler. An interval of zero or less means fetch once and
// return. A nil clock uses real time.
func New(f Fetcher, interval time.Duration, clock clockwork.Clock, logger *slog.Logger) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Scheduler{
		fetcher:  f,
		interval: interval,
		clock:    clock,
		logger:   logger,
	}
}

// Run blocks until ctx is cancelled. Fetch failures are logged and the next
// tick proceeds as normal.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.interval <= 0 {
		s.logger.Info("periodic refresh disabled")
		s.fetch(ctx)
		return nil
	}

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("scheduler started", "interval", s.interval)
	s.fetch(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			s.fetch(ctx)
		}
	}
}

func (s *Scheduler) fetch(ctx context.Context) {
	if err := s.fetcher.Fetch(ctx); err != nil && ctx.Err() == nil {
		s.logger.Warn("scheduled refresh failed", "error", err)
	}
}
