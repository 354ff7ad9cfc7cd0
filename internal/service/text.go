package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"atomizer/internal/ai"
	"atomizer/internal/config"
	"atomizer/internal/domain"
	"atomizer/internal/timecode"
)

var errSuperseded = errors.New("content status changed concurrently")

// TextStage turns a submission into generated text and pending clips.
type TextStage struct {
	store      ContentStore
	txManager  TransactionManager
	queue      Queue
	downloader Downloader
	synth      Synthesizer
	plans      PlanLookup
	clipQueue  string
	cfg        config.PipelineConfig
	logger     *slog.Logger
}

func NewTextStage(
	store ContentStore,
	txManager TransactionManager,
	queue Queue,
	downloader Downloader,
	synth Synthesizer,
	plans PlanLookup,
	clipQueue string,
	cfg config.PipelineConfig,
	logger *slog.Logger,
) *TextStage {
	return &TextStage{
		store:      store,
		txManager:  txManager,
		queue:      queue,
		downloader: downloader,
		synth:      synth,
		plans:      plans,
		clipQueue:  clipQueue,
		cfg:        cfg,
		logger:     logger.With("stage", "text"),
	}
}

// Handle processes one submission. A nil error means the outcome has been
// recorded and the message may be acknowledged.
func (s *TextStage) Handle(ctx context.Context, job domain.SubmissionJob) error {
	logger := s.logger.With("content_id", job.ContentID)

	content, err := s.store.Get(ctx, job.ContentID)
	if errors.Is(err, domain.ErrNotFound) {
		logger.Warn("content not found, dropping submission")
		return nil
	}
	if err != nil {
		return fmt.Errorf("get content: %w", err)
	}

	switch content.Status {
	case domain.StatusComplete, domain.StatusFailed:
		logger.Info("content already finished, skipping", "status", content.Status)
		return nil
	case domain.StatusGeneratingVideos:
		return s.requeuePending(ctx, content, job.Options, logger)
	}

	if _, err := s.store.TransitionStatus(ctx, content.ID, domain.StatusGeneratingText); err != nil {
		return fmt.Errorf("mark generating text: %w", err)
	}

	sourcePath, err := s.resolveSource(ctx, content, job)
	if err != nil {
		return s.fail(ctx, content.ID, err, logger)
	}

	opts := job.Options
	if opts.ClipLimit <= 0 {
		opts.ClipLimit = resolvePlan(ctx, s.plans, content.UserID, s.cfg.DefaultPlan, logger).ClipLimit()
	}

	res, err := s.synth.Synthesize(ctx, ai.Source{URL: job.URL, Path: sourcePath}, opts)
	if err != nil {
		return s.fail(ctx, content.ID, fmt.Errorf("synthesize: %w", err), logger)
	}

	clips := buildClips(content.ID, res.ViralMoments, logger)
	if len(clips) == 0 {
		return s.fail(ctx, content.ID, domain.ErrNoMoments, logger)
	}

	text := domain.GeneratedText{
		Title:         GeneratedTitle(res.BlogPostMarkdown),
		Summary:       res.Summary,
		Article:       res.BlogPostMarkdown,
		LinkedInPost:  res.LinkedInPost,
		TwitterThread: res.TwitterThread,
		Transcript:    res.Transcript,
	}

	err = s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.store.SaveGeneratedText(ctx, content.ID, text); err != nil {
			return fmt.Errorf("save generated text: %w", err)
		}
		if err := s.store.InsertClips(ctx, content.ID, clips); err != nil {
			return fmt.Errorf("insert clips: %w", err)
		}
		ok, err := s.store.TransitionStatus(ctx, content.ID, domain.StatusGeneratingVideos)
		if err != nil {
			return fmt.Errorf("mark generating videos: %w", err)
		}
		if !ok {
			return errSuperseded
		}
		return nil
	})
	if errors.Is(err, errSuperseded) {
		logger.Warn("content left GENERATING_TEXT while synthesizing, discarding result")
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.enqueueClips(ctx, content.ID, clips, job.Options); err != nil {
		return err
	}

	logger.Info("text generation complete", "clips", len(clips))
	return nil
}

func (s *TextStage) resolveSource(ctx context.Context, content *domain.Content, job domain.SubmissionJob) (string, error) {
	path := content.LocalSourcePath
	if path == "" {
		path = job.LocalSourcePath
	}

	if path == "" {
		if job.URL == "" {
			return "", domain.ErrSourceUnavailable
		}
		fetched, err := s.downloader.Fetch(ctx, content.ID, job.URL)
		if err != nil {
			return "", fmt.Errorf("cache source: %w", err)
		}
		path = fetched
	}

	if path != content.LocalSourcePath {
		if err := s.store.SetLocalSource(ctx, content.ID, path); err != nil {
			return "", fmt.Errorf("record source path: %w", err)
		}
	}
	return path, nil
}

// requeuePending re-enqueues render jobs for clips still pending. It covers a
// redelivered submission whose clip jobs may not all have been published.
func (s *TextStage) requeuePending(ctx context.Context, content *domain.Content, opts domain.Options, logger *slog.Logger) error {
	var pending []domain.Clip
	for _, c := range content.Clips {
		if c.Status == domain.ClipPending {
			pending = append(pending, c)
		}
	}
	logger.Info("submission redelivered after text stage, requeueing pending clips", "pending", len(pending))
	return s.enqueueClips(ctx, content.ID, pending, opts)
}

func (s *TextStage) enqueueClips(ctx context.Context, contentID string, clips []domain.Clip, opts domain.Options) error {
	for _, c := range clips {
		job := domain.ClipRenderJob{ContentID: contentID, ClipID: c.ID, Options: opts}
		if err := s.queue.Enqueue(ctx, s.clipQueue, job); err != nil {
			return fmt.Errorf("enqueue clip %s: %w", c.ID, err)
		}
	}
	return nil
}

func (s *TextStage) fail(ctx context.Context, contentID string, cause error, logger *slog.Logger) error {
	if interrupted(ctx) {
		return fmt.Errorf("text stage interrupted: %w", cause)
	}
	logger.Error("text stage failed", "error", cause)

	rctx, cancel := recordContext(ctx, s.cfg.RecordTimeout)
	defer cancel()

	if _, err := s.store.Fail(rctx, contentID, cause.Error()); err != nil {
		return fmt.Errorf("record failure: %w", err)
	}
	return nil
}

func buildClips(contentID string, moments []ai.Moment, logger *slog.Logger) []domain.Clip {
	clips := make([]domain.Clip, 0, len(moments))
	for i, m := range moments {
		start, err := timecode.Parse(string(m.StartTime))
		if err != nil {
			logger.Warn("dropping moment with bad start time", "index", i, "error", err)
			continue
		}
		end, err := timecode.Parse(string(m.EndTime))
		if err != nil {
			logger.Warn("dropping moment with bad end time", "index", i, "error", err)
			continue
		}

		words := make([]domain.WordEvent, 0, len(m.WordEvents))
		for _, w := range m.WordEvents {
			ws, err := timecode.Parse(string(w.Start))
			if err != nil {
				continue
			}
			we, err := timecode.Parse(string(w.End))
			if err != nil {
				continue
			}
			words = append(words, domain.WordEvent{Word: w.Word, Start: ws, End: we})
		}
		if dropped := len(m.WordEvents) - len(words); dropped > 0 {
			logger.Warn("dropped word events with bad times", "index", i, "dropped", dropped)
		}

		clips = append(clips, domain.Clip{
			ID:         uuid.NewString(),
			ContentID:  contentID,
			Position:   len(clips),
			Title:      m.Title,
			Summary:    m.Summary,
			WordEvents: words,
			StartTime:  start,
			EndTime:    end,
			Status:     domain.ClipPending,
		})
	}
	return clips
}

// GeneratedTitle is the first line of the article without heading markers.
func GeneratedTitle(article string) string {
	line, _, _ := strings.Cut(article, "\n")
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "#")
	return strings.TrimSpace(line)
}

// recordContext detaches from ctx so an outcome can still be written after the
// handler's own deadline has passed.
func recordContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return context.WithTimeout(context.WithoutCancel(ctx), timeout)
}

// interrupted reports a shutdown cancellation, as opposed to a stage timeout.
// Interrupted work is left unrecorded so the message is redelivered.
func interrupted(ctx context.Context) bool {
	return errors.Is(ctx.Err(), context.Canceled)
}
