package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"atomizer/internal/domain"
)

// Submitter creates aggregates and reformat jobs and hands them to the
// pipeline queues.
type Submitter struct {
	store         ContentStore
	queue         Queue
	plans         PlanLookup
	textQueue     string
	reformatQueue string
	logger        *slog.Logger
}

func NewSubmitter(store ContentStore, queue Queue, plans PlanLookup, textQueue, reformatQueue string, logger *slog.Logger) *Submitter {
	return &Submitter{
		store:         store,
		queue:         queue,
		plans:         plans,
		textQueue:     textQueue,
		reformatQueue: reformatQueue,
		logger:        logger.With("component", "submitter"),
	}
}

type Submission struct {
	UserID    string
	URL       string
	LocalPath string
	Options   domain.Options
}

// Submit records a PENDING aggregate and enqueues it for the text stage. The
// clip limit defaults to the user's plan allowance.
func (s *Submitter) Submit(ctx context.Context, sub Submission) (string, error) {
	if sub.URL == "" && sub.LocalPath == "" {
		return "", fmt.Errorf("submit: %w", domain.ErrSourceUnavailable)
	}

	opts := sub.Options
	if opts.ClipLimit <= 0 {
		plan, err := s.plans.Plan(ctx, sub.UserID)
		if err != nil {
			plan = domain.PlanFree
		}
		opts.ClipLimit = plan.ClipLimit()
	}

	source := sub.URL
	if source == "" {
		source = sub.LocalPath
	}

	content := &domain.Content{
		ID:              uuid.NewString(),
		UserID:          sub.UserID,
		SourceURL:       source,
		LocalSourcePath: sub.LocalPath,
		Status:          domain.StatusPending,
	}
	if err := s.store.Create(ctx, content); err != nil {
		return "", fmt.Errorf("create content: %w", err)
	}

	job := domain.SubmissionJob{
		ContentID:       content.ID,
		UserID:          sub.UserID,
		URL:             sub.URL,
		LocalSourcePath: sub.LocalPath,
		Options:         opts,
	}
	if err := s.queue.Enqueue(ctx, s.textQueue, job); err != nil {
		return "", fmt.Errorf("enqueue submission: %w", err)
	}

	s.logger.Info("submission queued", "content_id", content.ID, "clip_limit", opts.ClipLimit)
	return content.ID, nil
}

// ReformatResult is either a newly queued job or an existing rendering.
type ReformatResult struct {
	Job         *domain.ReformatJob
	ExistingURL string
}

// RequestReformat queues a re-render of a ready clip. Unless force is set, an
// existing completed rendering at the same aspect ratio is returned instead.
func (s *Submitter) RequestReformat(ctx context.Context, contentID, clipID string, aspect domain.AspectRatio, force bool) (*ReformatResult, error) {
	if !aspect.Valid() {
		return nil, fmt.Errorf("unsupported aspect ratio %q", aspect)
	}

	content, err := s.store.Get(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("get content: %w", err)
	}
	clip := content.Clip(clipID)
	if clip == nil {
		return nil, fmt.Errorf("clip %s: %w", clipID, domain.ErrNotFound)
	}
	if clip.Status != domain.ClipReady {
		return nil, fmt.Errorf("clip %s is %s, not READY", clipID, clip.Status)
	}

	if !force {
		existing, err := s.store.LatestCompletedReformat(ctx, clipID, aspect)
		switch {
		case err == nil:
			return &ReformatResult{Job: existing, ExistingURL: existing.URL}, nil
		case !errors.Is(err, domain.ErrNotFound):
			return nil, fmt.Errorf("lookup existing reformat: %w", err)
		}
	}

	job := &domain.ReformatJob{
		ID:          uuid.NewString(),
		ContentID:   contentID,
		ClipID:      clipID,
		AspectRatio: aspect,
		Status:      domain.ReformatPending,
	}
	if err := s.store.CreateReformatJob(ctx, job); err != nil {
		return nil, fmt.Errorf("create reformat job: %w", err)
	}

	req := domain.ReformatRequest{
		ContentID:     contentID,
		ClipID:        clipID,
		ReformatJobID: job.ID,
		AspectRatio:   aspect,
		UserID:        content.UserID,
	}
	if err := s.queue.Enqueue(ctx, s.reformatQueue, req); err != nil {
		return nil, fmt.Errorf("enqueue reformat: %w", err)
	}

	s.logger.Info("reformat queued", "content_id", contentID, "clip_id", clipID, "reformat_job_id", job.ID, "aspect", aspect)
	return &ReformatResult{Job: job}, nil
}
