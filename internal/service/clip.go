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

// ClipStage renders one clip of an aggregate and completes the aggregate once
// every clip has settled.
type ClipStage struct {
	store    ContentStore
	renderer Renderer
	plans    PlanLookup
	cfg      config.PipelineConfig
	logger   *slog.Logger
}

func NewClipStage(store ContentStore, renderer Renderer, plans PlanLookup, cfg config.PipelineConfig, logger *slog.Logger) *ClipStage {
	return &ClipStage{
		store:    store,
		renderer: renderer,
		plans:    plans,
		cfg:      cfg,
		logger:   logger.With("stage", "clip"),
	}
}

func (s *ClipStage) Handle(ctx context.Context, job domain.ClipRenderJob) error {
	logger := s.logger.With("content_id", job.ContentID, "clip_id", job.ClipID)

	content, err := s.store.Get(ctx, job.ContentID)
	if errors.Is(err, domain.ErrNotFound) {
		logger.Warn("content not found, dropping clip job")
		return nil
	}
	if err != nil {
		return fmt.Errorf("get content: %w", err)
	}

	clip := content.Clip(job.ClipID)
	if clip == nil {
		logger.Warn("clip not found, dropping clip job")
		return nil
	}

	if clip.Status.Terminal() {
		logger.Info("clip already settled, rechecking completion", "status", clip.Status)
		return s.checkCompletion(ctx, content.ID, logger)
	}

	url, renderErr := s.render(ctx, content, clip, job.Options)
	if renderErr != nil && interrupted(ctx) {
		return fmt.Errorf("clip render interrupted: %w", renderErr)
	}

	rctx, cancel := recordContext(ctx, s.cfg.RecordTimeout)
	defer cancel()

	if renderErr != nil {
		logger.Error("clip render failed", "error", renderErr)
		if _, err := s.store.UpdateClip(rctx, content.ID, clip.ID, domain.ClipFailed, ""); err != nil {
			return fmt.Errorf("record clip failure: %w", err)
		}
	} else {
		if _, err := s.store.UpdateClip(rctx, content.ID, clip.ID, domain.ClipReady, url); err != nil {
			return fmt.Errorf("record clip: %w", err)
		}
		logger.Info("clip ready", "url", url)
	}

	return s.checkCompletion(rctx, content.ID, logger)
}

func (s *ClipStage) render(ctx context.Context, content *domain.Content, clip *domain.Clip, opts domain.Options) (string, error) {
	if content.LocalSourcePath == "" {
		return "", domain.ErrSourceUnavailable
	}

	return s.renderer.Render(ctx, render.Request{
		SourcePath:   content.LocalSourcePath,
		Start:        clip.StartTime,
		End:          clip.EndTime,
		AspectRatio:  domain.AspectVertical,
		WordEvents:   clip.WordEvents,
		Plan:         resolvePlan(ctx, s.plans, content.UserID, s.cfg.DefaultPlan, s.logger),
		Captions:     opts.EnableCaptions,
		CaptionStyle: opts.CaptionStyle,
		OutputName:   clip.OutputName(),
	})
}

func (s *ClipStage) checkCompletion(ctx context.Context, contentID string, logger *slog.Logger) error {
	done, err := s.store.CompleteIfDone(ctx, contentID, s.cfg.AllowFailedClips())
	if err != nil {
		return fmt.Errorf("check completion: %w", err)
	}
	if done {
		logger.Info("all clips settled, content complete")
	}
	return nil
}

func resolvePlan(ctx context.Context, plans PlanLookup, userID, fallback string, logger *slog.Logger) domain.Plan {
	plan, err := plans.Plan(ctx, userID)
	if err != nil {
		logger.Warn("plan lookup failed, using default", "user_id", userID, "error", err)
		return domain.ParsePlan(fallback)
	}
	return plan
}
