package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"atomizer/internal/config"
	"atomizer/internal/domain"
	"atomizer/internal/render"
)

const reformatFailureMessage = "Failed to generate video."

// ReformatStage re-renders an existing clip at another aspect ratio on demand.
type ReformatStage struct {
	store    ContentStore
	renderer Renderer
	plans    PlanLookup
	notifier Notifier
	cfg      config.PipelineConfig
	logger   *slog.Logger
}

func NewReformatStage(store ContentStore, renderer Renderer, plans PlanLookup, notifier Notifier, cfg config.PipelineConfig, logger *slog.Logger) *ReformatStage {
	return &ReformatStage{
		store:    store,
		renderer: renderer,
		plans:    plans,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger.With("stage", "reformat"),
	}
}

func (s *ReformatStage) Handle(ctx context.Context, req domain.ReformatRequest) error {
	logger := s.logger.With(
		"content_id", req.ContentID,
		"clip_id", req.ClipID,
		"reformat_job_id", req.ReformatJobID,
		"aspect", req.AspectRatio,
	)

	job, err := s.store.GetReformatJob(ctx, req.ContentID, req.ReformatJobID)
	if errors.Is(err, domain.ErrNotFound) {
		logger.Warn("reformat job not found, dropping request")
		return nil
	}
	if err != nil {
		return fmt.Errorf("get reformat job: %w", err)
	}
	if job.Status.Terminal() {
		logger.Info("reformat job already settled, skipping", "status", job.Status)
		return nil
	}

	if _, err := s.store.UpdateReformatJob(ctx, req.ContentID, job.ID, domain.ReformatProcessing, ""); err != nil {
		return fmt.Errorf("mark processing: %w", err)
	}

	url, renderErr := s.render(ctx, req, job)
	if renderErr != nil && interrupted(ctx) {
		return fmt.Errorf("reformat interrupted: %w", renderErr)
	}

	rctx, cancel := recordContext(ctx, s.cfg.RecordTimeout)
	defer cancel()

	if renderErr != nil {
		logger.Error("reformat failed", "error", renderErr)
		ok, err := s.store.UpdateReformatJob(rctx, req.ContentID, job.ID, domain.ReformatFailed, "")
		if err != nil {
			return fmt.Errorf("record reformat failure: %w", err)
		}
		if !ok {
			logger.Info("reformat job settled elsewhere, not notifying")
			return nil
		}
		s.notify(rctx, req.UserID, domain.ReformatFailureEvent{
			UserID:        req.UserID,
			ReformatJobID: job.ID,
			Error:         reformatFailureMessage,
		}, logger)
		return nil
	}

	ok, err := s.store.UpdateReformatJob(rctx, req.ContentID, job.ID, domain.ReformatComplete, url)
	if err != nil {
		return fmt.Errorf("record reformat: %w", err)
	}
	if !ok {
		logger.Info("reformat job settled elsewhere, not notifying", "url", url)
		return nil
	}
	logger.Info("reformat complete", "url", url)

	s.notify(rctx, req.UserID, domain.ReformatSuccessEvent{
		UserID:        req.UserID,
		DownloadURL:   url,
		ReformatJobID: job.ID,
	}, logger)
	return nil
}

func (s *ReformatStage) render(ctx context.Context, req domain.ReformatRequest, job *domain.ReformatJob) (string, error) {
	content, err := s.store.Get(ctx, req.ContentID)
	if err != nil {
		return "", fmt.Errorf("get content: %w", err)
	}
	clip := content.Clip(req.ClipID)
	if clip == nil {
		return "", fmt.Errorf("clip %s: %w", req.ClipID, domain.ErrNotFound)
	}
	if content.LocalSourcePath == "" {
		return "", domain.ErrSourceUnavailable
	}

	start, end := clip.Span()

	return s.renderer.Render(ctx, render.Request{
		SourcePath:   content.LocalSourcePath,
		Start:        start,
		End:          end,
		AspectRatio:  job.AspectRatio,
		WordEvents:   clip.WordEvents,
		Plan:         resolvePlan(ctx, s.plans, content.UserID, s.cfg.DefaultPlan, s.logger),
		Captions:     true,
		CaptionStyle: domain.CaptionDefault,
		OutputName:   job.OutputName(),
	})
}

func (s *ReformatStage) notify(ctx context.Context, userID string, payload any, logger *slog.Logger) {
	if err := s.notifier.Notify(ctx, userID, domain.EventReformatResult, payload); err != nil {
		logger.Warn("notify reformat result", "error", err)
	}
}
