package scheduler

import (
	"context"
	"time"

	"github.com/fadedpez/eldorado/internal/logging"
	"github.com/fadedpez/eldorado/pkg/services/economy"
)

// SweepScheduler runs the periodic powerup sweep. Expiry is still
// evaluated lazily on every query; the sweep only bounds how stale the
// persisted state can get.
type SweepScheduler struct {
	scheduler *Scheduler
	economy   *economy.Service
	interval  time.Duration
}

// NewSweepScheduler creates a scheduler that sweeps expired powerups for
// all users at the given interval.
func NewSweepScheduler(svc *economy.Service, interval time.Duration, logger *logging.Logger) *SweepScheduler {
	return &SweepScheduler{
		scheduler: NewScheduler(logger),
		economy:   svc,
		interval:  interval,
	}
}

// Start initializes and starts the sweep scheduler
func (s *SweepScheduler) Start(ctx context.Context) {
	s.scheduler.AddTask("powerup_sweep", s.interval, s.sweep)
	s.scheduler.Start(ctx)
}

// Stop stops the sweep scheduler
func (s *SweepScheduler) Stop() {
	s.scheduler.Stop()
}

func (s *SweepScheduler) sweep(ctx context.Context) error {
	return s.economy.SweepAll(ctx)
}
