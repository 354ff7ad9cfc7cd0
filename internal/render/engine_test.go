package render

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atomizer/internal/domain"
)

type fakeTranscoder struct {
	jobs     []TranscodeJob
	captions []string
	err      error
}

func (f *fakeTranscoder) Transcode(_ context.Context, job TranscodeJob) error {
	f.jobs = append(f.jobs, job)
	if path := subtitlePath(job.Filter); path != "" {
		b, err := os.ReadFile(path)
		if err == nil {
			f.captions = append(f.captions, string(b))
		}
	}
	return f.err
}

func subtitlePath(filter string) string {
	const marker = "subtitles='"
	i := strings.LastIndex(filter, marker)
	if i < 0 {
		return ""
	}
	return strings.TrimSuffix(filter[i+len(marker):], "'")
}

type engineFixture struct {
	engine     *Engine
	transcoder *fakeTranscoder
	dir        string
	source     string
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()
	dir := t.TempDir()
	source := filepath.Join(dir, "source.mp4")
	require.NoError(t, os.WriteFile(source, []byte("video"), 0o644))

	tr := &fakeTranscoder{}
	engine := NewEngine(tr, NewLocalPublisher("http://localhost:8080"), Config{
		ClipsDir: filepath.Join(dir, "clips"),
		TempDir:  filepath.Join(dir, "temp"),
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	return &engineFixture{engine: engine, transcoder: tr, dir: dir, source: source}
}

func (f *engineFixture) request() Request {
	return Request{
		SourcePath:   f.source,
		Start:        10,
		End:          40,
		AspectRatio:  domain.AspectVertical,
		WordEvents:   []domain.WordEvent{{Word: "hello", Start: 10, End: 10.5}},
		Plan:         domain.PlanFree,
		Captions:     true,
		CaptionStyle: domain.CaptionDefault,
		OutputName:   "clip1_9x16",
	}
}

func TestRenderInvalidRangeNeverInvokesTranscoder(t *testing.T) {
	f := newEngineFixture(t)

	for _, r := range [][2]float64{{10, 10}, {20, 10}} {
		req := f.request()
		req.Start, req.End = r[0], r[1]
		_, err := f.engine.Render(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrInvalidClipRange)
	}
	assert.Empty(t, f.transcoder.jobs)
}

func TestRenderMissingSource(t *testing.T) {
	f := newEngineFixture(t)
	req := f.request()
	req.SourcePath = filepath.Join(f.dir, "missing.mp4")

	_, err := f.engine.Render(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
	assert.Empty(t, f.transcoder.jobs)
}

func TestRenderFreePlanWithCaptions(t *testing.T) {
	f := newEngineFixture(t)

	url, err := f.engine.Render(context.Background(), f.request())
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/clips/clip1_9x16.mp4", url)

	require.Len(t, f.transcoder.jobs, 1)
	job := f.transcoder.jobs[0]
	assert.Equal(t, f.source, job.Input)
	assert.Equal(t, 10.0, job.Start)
	assert.Equal(t, 30.0, job.Duration)
	assert.Equal(t, "ultrafast", job.Preset)
	assert.Equal(t, filepath.Join(f.dir, "clips", "clip1_9x16.mp4"), job.Output)
	assert.Contains(t, job.Filter, "scale=1080:1920:force_original_aspect_ratio=increase")
	assert.Contains(t, job.Filter, "drawtext=text='Made with OmniContent AI'")
	assert.Contains(t, job.Filter, "subtitles='")

	require.Len(t, f.transcoder.captions, 1)
	assert.Contains(t, f.transcoder.captions[0], "Dialogue: 0,0:00:00.00,0:00:00.50,Default,,0,0,0,,hello")

	_, statErr := os.Stat(subtitlePath(job.Filter))
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "caption file must be removed")
}

func TestRenderProPlanWithoutCaptions(t *testing.T) {
	f := newEngineFixture(t)
	req := f.request()
	req.Plan = domain.PlanPro
	req.Captions = false
	req.AspectRatio = domain.AspectSquare

	_, err := f.engine.Render(context.Background(), req)
	require.NoError(t, err)

	job := f.transcoder.jobs[0]
	assert.NotContains(t, job.Filter, "drawtext")
	assert.NotContains(t, job.Filter, "subtitles")
	assert.Contains(t, job.Filter, "crop=1080:1080")
}

func TestRenderCaptionsWithoutWordsSkipsSubtitles(t *testing.T) {
	f := newEngineFixture(t)
	req := f.request()
	req.WordEvents = nil

	_, err := f.engine.Render(context.Background(), req)
	require.NoError(t, err)
	assert.NotContains(t, f.transcoder.jobs[0].Filter, "subtitles")
}

func TestRenderFailureRemovesCaptions(t *testing.T) {
	f := newEngineFixture(t)
	f.transcoder.err = &domain.RenderFailedError{Output: "moov atom not found", Err: errors.New("exit status 1")}

	_, err := f.engine.Render(context.Background(), f.request())

	var rf *domain.RenderFailedError
	require.ErrorAs(t, err, &rf)
	assert.Equal(t, "moov atom not found", rf.Output)

	entries, readErr := os.ReadDir(filepath.Join(f.dir, "temp"))
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestRenderWrapsPlainTranscoderError(t *testing.T) {
	f := newEngineFixture(t)
	f.transcoder.err = errors.New("killed")

	_, err := f.engine.Render(context.Background(), f.request())
	var rf *domain.RenderFailedError
	assert.ErrorAs(t, err, &rf)
}

func TestDimensions(t *testing.T) {
	tests := []struct {
		aspect domain.AspectRatio
		w, h   int
	}{
		{domain.AspectVertical, 1080, 1920},
		{domain.AspectSquare, 1080, 1080},
		{domain.AspectPortrait, 1080, 1350},
	}
	for _, tt := range tests {
		w, h, err := Dimensions(tt.aspect, 1080)
		require.NoError(t, err)
		assert.Equal(t, tt.w, w)
		assert.Equal(t, tt.h, h)
	}

	_, _, err := Dimensions("16:9", 1080)
	assert.Error(t, err)
}

func TestTranscodeJobArgs(t *testing.T) {
	job := TranscodeJob{Input: "in.mp4", Start: 12.5, Duration: 30, Filter: "null", Preset: "ultrafast", Output: "out.mp4"}
	assert.Equal(t, []string{
		"-ss", "12.500", "-i", "in.mp4", "-t", "30.000", "-vf", "null",
		"-preset", "ultrafast", "-c:a", "copy", "out.mp4", "-y",
	}, job.Args())
}
