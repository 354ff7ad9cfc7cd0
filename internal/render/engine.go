// Package render turns a source video and a time range into a framed,
// optionally captioned and watermarked short clip.
package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"atomizer/internal/domain"
)

type Transcoder interface {
	Transcode(ctx context.Context, job TranscodeJob) error
}

type Publisher interface {
	// Publish makes the rendered file at localPath available and returns
	// its public URL.
	Publish(ctx context.Context, localPath, name string) (string, error)
}

type Config struct {
	ClipsDir      string
	TempDir       string
	TargetWidth   int
	WatermarkText string
	Preset        string
}

// Request describes one render.
type Request struct {
	SourcePath   string
	Start        float64
	End          float64
	AspectRatio  domain.AspectRatio
	WordEvents   []domain.WordEvent
	Plan         domain.Plan
	Captions     bool
	CaptionStyle domain.CaptionStyle
	OutputName   string
}

type Engine struct {
	transcoder Transcoder
	publisher  Publisher
	cfg        Config
	logger     *slog.Logger
}

func NewEngine(transcoder Transcoder, publisher Publisher, cfg Config, logger *slog.Logger) *Engine {
	if cfg.TargetWidth <= 0 {
		cfg.TargetWidth = 1080
	}
	if cfg.Preset == "" {
		cfg.Preset = "ultrafast"
	}
	if cfg.WatermarkText == "" {
		cfg.WatermarkText = "Made with OmniContent AI"
	}
	return &Engine{
		transcoder: transcoder,
		publisher:  publisher,
		cfg:        cfg,
		logger:     logger.With("component", "render"),
	}
}

// Render produces the clip described by req and returns its public URL.
func (e *Engine) Render(ctx context.Context, req Request) (string, error) {
	duration := req.End - req.Start
	if duration <= 0 || math.IsNaN(duration) {
		return "", fmt.Errorf("%w: start=%.3f end=%.3f", domain.ErrInvalidClipRange, req.Start, req.End)
	}

	if _, err := os.Stat(req.SourcePath); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}

	w, h, err := Dimensions(req.AspectRatio, e.cfg.TargetWidth)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(e.cfg.ClipsDir, 0o755); err != nil {
		return "", fmt.Errorf("create clips dir: %w", err)
	}

	graph := BlurFill(w, h)
	if req.Plan != domain.PlanPro {
		graph.Then(Watermark(e.cfg.WatermarkText))
	}

	if req.Captions && len(req.WordEvents) > 0 {
		assPath, err := e.writeCaptions(req, w, h)
		if err != nil {
			return "", err
		}
		defer func() {
			if err := os.Remove(assPath); err != nil && !errors.Is(err, os.ErrNotExist) {
				e.logger.Warn("remove caption file", "path", assPath, "error", err)
			}
		}()
		graph.Then(Subtitles(assPath))
	}

	out := filepath.Join(e.cfg.ClipsDir, req.OutputName+".mp4")
	job := TranscodeJob{
		Input:    req.SourcePath,
		Start:    req.Start,
		Duration: duration,
		Filter:   graph.String(),
		Preset:   e.cfg.Preset,
		Output:   out,
	}

	logger := e.logger.With("output", req.OutputName, "aspect", req.AspectRatio)
	logger.Info("rendering clip", "start", req.Start, "duration", duration)
	logger.Debug("filter graph", "graph", job.Filter)

	if err := e.transcoder.Transcode(ctx, job); err != nil {
		var rf *domain.RenderFailedError
		if errors.As(err, &rf) {
			return "", err
		}
		return "", &domain.RenderFailedError{Err: err}
	}

	url, err := e.publisher.Publish(ctx, out, req.OutputName)
	if err != nil {
		return "", fmt.Errorf("publish clip: %w", err)
	}

	logger.Info("clip rendered", "url", url)
	return url, nil
}

func (e *Engine) writeCaptions(req Request, w, h int) (string, error) {
	if err := os.MkdirAll(e.cfg.TempDir, 0o755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	path, err := filepath.Abs(filepath.Join(e.cfg.TempDir, req.OutputName+".ass"))
	if err != nil {
		return "", fmt.Errorf("resolve caption path: %w", err)
	}

	ass := BuildASS(req.WordEvents, req.Start, req.End, req.CaptionStyle, w, h)
	if err := os.WriteFile(path, []byte(ass), 0o644); err != nil {
		return "", fmt.Errorf("write captions: %w", err)
	}
	return path, nil
}

// Dimensions returns the output frame size for aspect at the given width.
func Dimensions(aspect domain.AspectRatio, width int) (int, int, error) {
	if !aspect.Valid() {
		return 0, 0, fmt.Errorf("unsupported aspect ratio %q", aspect)
	}
	num, den, _ := strings.Cut(string(aspect), ":")
	n, _ := strconv.ParseFloat(num, 64)
	d, _ := strconv.ParseFloat(den, 64)
	return width, int(math.Round(float64(width) / (n / d))), nil
}
