package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"atomizer/internal/config"
	"atomizer/internal/domain"
)

const staleContentMessage = "processing timed out"

// Sweeper fails work that has been in flight longer than its threshold, so a
// lost message cannot leave an aggregate or reformat job pending forever.
type Sweeper struct {
	store    SweepStore
	notifier Notifier
	cfg      config.SweeperConfig
	pipeline config.PipelineConfig
	now      func() time.Time
	logger   *slog.Logger
}

func NewSweeper(store SweepStore, notifier Notifier, cfg config.SweeperConfig, pipeline config.PipelineConfig, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		store:    store,
		notifier: notifier,
		cfg:      cfg,
		pipeline: pipeline,
		now:      time.Now,
		logger:   logger.With("component", "sweeper"),
	}
}

// SweepStats counts what one sweep failed.
type SweepStats struct {
	Content   int
	Clips     int
	Completed int
	Reformats int
	Duration  time.Duration
}

func (s *Sweeper) Sweep(ctx context.Context) (*SweepStats, error) {
	start := s.now()
	stats := &SweepStats{}
	var errs []error

	// A PENDING aggregate may only be waiting behind a queue backlog, so it
	// gets the longer threshold.
	thresholds := []struct {
		status domain.ContentStatus
		after  time.Duration
	}{
		{domain.StatusGeneratingText, s.cfg.TextStaleAfter},
		{domain.StatusPending, s.cfg.PendingStaleAfter},
	}
	for _, t := range thresholds {
		ids, err := s.store.FailStaleContent(ctx, t.status, start.Add(-t.after), staleContentMessage)
		if err != nil {
			errs = append(errs, fmt.Errorf("fail stale %s content: %w", t.status, err))
		}
		stats.Content += len(ids)
	}

	affected, err := s.store.FailStaleClips(ctx, start.Add(-s.cfg.ClipStaleAfter))
	if err != nil {
		errs = append(errs, fmt.Errorf("fail stale clips: %w", err))
	}
	stats.Clips = len(affected)

	seen := make(map[string]struct{}, len(affected))
	for _, id := range affected {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		done, err := s.store.CompleteIfDone(ctx, id, s.pipeline.AllowFailedClips())
		if err != nil {
			errs = append(errs, fmt.Errorf("complete %s: %w", id, err))
			continue
		}
		if done {
			stats.Completed++
		}
	}

	stale, err := s.store.FailStaleReformatJobs(ctx, start.Add(-s.cfg.ReformatStaleAfter))
	if err != nil {
		errs = append(errs, fmt.Errorf("fail stale reformat jobs: %w", err))
	}
	stats.Reformats = len(stale)
	for _, r := range stale {
		payload := domain.ReformatFailureEvent{UserID: r.UserID, ReformatJobID: r.ReformatJobID, Error: reformatFailureMessage}
		if err := s.notifier.Notify(ctx, r.UserID, domain.EventReformatResult, payload); err != nil {
			s.logger.Warn("notify stale reformat", "reformat_job_id", r.ReformatJobID, "error", err)
		}
	}

	stats.Duration = s.now().Sub(start)
	if stats.Content+stats.Clips+stats.Reformats > 0 {
		s.logger.Info("swept stale work",
			"content", stats.Content,
			"clips", stats.Clips,
			"completed", stats.Completed,
			"reformats", stats.Reformats,
		)
	}

	return stats, errors.Join(errs...)
}
