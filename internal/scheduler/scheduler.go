package scheduler

import (
	"context"
	"log/slog"
	"time"

	"atomizer/internal/service"
)

// Sweeper fails work that has been in flight for too long.
type Sweeper interface {
	Sweep(ctx context.Context) (*service.SweepStats, error)
}

type Scheduler struct {
	sweeper  Sweeper
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger
}

func NewScheduler(sweeper Sweeper, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		sweeper:  sweeper,
		interval: interval,
		timeout:  time.Minute,
		logger:   logger.With("component", "scheduler"),
	}
}

// Start sweeps once immediately and then on every tick until ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval)

	s.runSweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runSweep(ctx)
		}
	}
}

func (s *Scheduler) runSweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	stats, err := s.sweeper.Sweep(sweepCtx)
	if err != nil {
		s.logger.Error("sweep failed", "error", err)
	}
	if stats != nil && stats.Content+stats.Clips+stats.Reformats > 0 {
		s.logger.Info("sweep failed stale work",
			"content", stats.Content,
			"clips", stats.Clips,
			"completed", stats.Completed,
			"reformats", stats.Reformats,
			"duration", stats.Duration,
		)
	}
}
