package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"atomizer/internal/domain"
)

const (
	defaultClipLength = 60
	maxPollErrors     = 3
	videoMIMEType     = "video/mp4"
)

type FileState string

const (
	FileProcessing FileState = "PROCESSING"
	FileActive     FileState = "ACTIVE"
	FileFailed     FileState = "FAILED"
)

// File is a media asset uploaded to the model provider.
type File struct {
	Name     string
	URI      string
	MIMEType string
	State    FileState
}

// Provider is the generative model backend.
type Provider interface {
	// Generate sends parts, preceded by file when non-nil, to model and
	// returns the response text.
	Generate(ctx context.Context, model string, file *File, parts ...string) (string, error)
	UploadFile(ctx context.Context, path, mimeType string) (*File, error)
	GetFile(ctx context.Context, name string) (*File, error)
}

type Config struct {
	Model         string
	PollInterval  time.Duration
	MaxUploadWait time.Duration
}

// Source is either a remote link or a local media file.
type Source struct {
	URL  string
	Path string
}

type Option func(*Synthesizer)

// WithSleeper overrides how poll sleeps are performed.
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(s *Synthesizer) {
		s.sleep = sleep
	}
}

type Synthesizer struct {
	provider Provider
	repairer *Repairer
	validate *validator.Validate
	cfg      Config
	logger   *slog.Logger
	sleep    func(ctx context.Context, d time.Duration) error
}

func NewSynthesizer(provider Provider, repairer *Repairer, cfg Config, logger *slog.Logger, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		provider: provider,
		repairer: repairer,
		validate: validator.New(),
		cfg:      cfg,
		logger:   logger.With("component", "synthesizer"),
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize produces the text assets and clip candidates for src. On failure
// it returns an empty result together with the error.
func (s *Synthesizer) Synthesize(ctx context.Context, src Source, opts domain.Options) (*Result, error) {
	res, err := s.synthesize(ctx, src, opts)
	if err != nil {
		return &Result{}, err
	}
	return res, nil
}

func (s *Synthesizer) synthesize(ctx context.Context, src Source, opts domain.Options) (*Result, error) {
	prompt := BuildPrompt(opts)

	var (
		file  *File
		parts []string
	)
	switch {
	case IsRemoteLink(src.URL):
		parts = []string{prompt, "Here is the YouTube link: " + src.URL}
	case src.Path != "":
		f, err := s.uploadAndWait(ctx, src.Path)
		if err != nil {
			return nil, err
		}
		file = f
		parts = []string{prompt}
	default:
		return nil, fmt.Errorf("synthesize: %w", domain.ErrSourceUnavailable)
	}

	s.logger.Info("generating content",
		"model", s.cfg.Model,
		"clip_limit", opts.ClipLimit,
		"uploaded", file != nil,
	)

	text, err := s.provider.Generate(ctx, s.cfg.Model, file, parts...)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	res, err := s.repairer.ParseWithRepair(ctx, text)
	if err != nil {
		return nil, err
	}

	res.ViralMoments = s.filterMoments(res.ViralMoments, opts.ClipLimit)
	s.logger.Info("content generated", "moments", len(res.ViralMoments))

	return res, nil
}

func (s *Synthesizer) filterMoments(moments []Moment, limit int) []Moment {
	valid := make([]Moment, 0, len(moments))
	for i, m := range moments {
		if err := s.validate.Struct(m); err != nil {
			s.logger.Warn("dropping invalid moment", "index", i, "error", err)
			continue
		}
		valid = append(valid, m)
	}
	if limit > 0 && len(valid) > limit {
		s.logger.Warn("truncating moments", "got", len(valid), "limit", limit)
		valid = valid[:limit]
	}
	return valid
}

func (s *Synthesizer) uploadAndWait(ctx context.Context, path string) (*File, error) {
	if s.cfg.MaxUploadWait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.MaxUploadWait)
		defer cancel()
	}

	file, err := s.provider.UploadFile(ctx, path, videoMIMEType)
	if err != nil {
		return nil, fmt.Errorf("upload source: %w", err)
	}
	s.logger.Info("uploaded source", "file", file.Name, "state", file.State)

	pollErrors := 0
	for file.State != FileActive {
		if file.State == FileFailed {
			return nil, fmt.Errorf("upload source: provider rejected file %s", file.Name)
		}

		if err := s.sleep(ctx, s.cfg.PollInterval); err != nil {
			return nil, fmt.Errorf("wait for file %s: %w", file.Name, err)
		}

		next, err := s.provider.GetFile(ctx, file.Name)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return nil, fmt.Errorf("poll file %s: %w", file.Name, err)
			}
			pollErrors++
			s.logger.Warn("poll file failed", "file", file.Name, "error", err, "attempt", pollErrors)
			if pollErrors >= maxPollErrors {
				return nil, fmt.Errorf("poll file %s: %w", file.Name, err)
			}
			continue
		}
		pollErrors = 0
		file = next
		s.logger.Debug("file state", "file", file.Name, "state", file.State)
	}

	return file, nil
}

// IsRemoteLink reports whether url can be handed to the model by reference.
func IsRemoteLink(url string) bool {
	return strings.Contains(url, "youtube.com") || strings.Contains(url, "youtu.be")
}

// BuildPrompt renders the generation prompt for opts.
func BuildPrompt(opts domain.Options) string {
	clipLength := opts.ClipLength
	if clipLength <= 0 {
		clipLength = defaultClipLength
	}
	clipLimit := opts.ClipLimit
	if clipLimit <= 0 {
		clipLimit = domain.PlanFree.ClipLimit()
	}

	var b strings.Builder
	b.WriteString("You are an A-list content strategist for top creators and brands. Your work is viral, professional, and has immense value. Analyze the provided video and deconstruct it into the following assets, formatted as a single, valid JSON object.\n\n")

	if tf := opts.Timeframe; tf != nil && tf.Start != "" && tf.End != "" {
		fmt.Fprintf(&b, "CRITICAL: You must only analyze the video content between the timestamps %s and %s. All generated clips and content must come from this specific segment.\n\n", tf.Start, tf.End)
	}

	b.WriteString(`Based on the video, generate the following:
1. "summary": A concise, one-paragraph summary of the entire video.
2. "blogPostMarkdown": A high-quality blog post with a compelling title (H1), an engaging introduction, and well-structured sections using Markdown headings (##) and subheadings (###). Include placeholders for visuals formatted exactly like "[Image: A close-up of a person typing on a laptop]".
3. "transcript": A structured transcript as an array of objects. Each object must have a "timestamp" (string, e.g., "01:23.540") and the corresponding "text" (string).
4. "linkedinPost": A professional LinkedIn post that opens with a strong hook, lists 3-4 key insights as bullet points, ends with a question, and finishes with 4-5 relevant hashtags.
5. "twitterThread": A Twitter thread as an array of strings. Each tweet is under 280 characters and numbered (1/, 2/, 3/). The first tweet is a curiosity-driving hook and the last is a call-to-action with 3-4 hashtags.
`)
	fmt.Fprintf(&b, `6. "viralMoments": An array of up to %d engaging video clips. Each clip must be under %d seconds long. For each clip, provide a "title", "summary", "startTime", "endTime", and "wordEvents" (an array of {"word", "start", "end"}) with word-level timestamps for captions. Each object in this array must have unique keys.
`, clipLimit, clipLength)

	b.WriteString("\nYour entire output must be a single, valid JSON object with the keys listed above.\n")
	b.WriteString("CRITICAL: Your entire response must be ONLY the valid JSON object, starting with { and ending with }. Do not include any other text, explanations, or markdown formatting before or after the object.\n")

	return b.String()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
