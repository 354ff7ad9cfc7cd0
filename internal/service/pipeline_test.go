package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atomizer/internal/ai"
	"atomizer/internal/config"
	"atomizer/internal/domain"
	"atomizer/internal/render"
)

// memStore mirrors the conditional updates of the postgres store.
type memStore struct {
	mu        sync.Mutex
	contents  map[string]*domain.Content
	reformats map[string]*domain.ReformatJob
}

func newMemStore() *memStore {
	return &memStore{contents: map[string]*domain.Content{}, reformats: map[string]*domain.ReformatJob{}}
}

func (m *memStore) Create(_ context.Context, c *domain.Content) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.contents[c.ID] = &cp
	return nil
}

func (m *memStore) Get(_ context.Context, id string) (*domain.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.contents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	cp.Clips = append([]domain.Clip(nil), c.Clips...)
	for _, r := range m.reformats {
		if r.ContentID == id {
			cp.ReformattedClips = append(cp.ReformattedClips, *r)
		}
	}
	return &cp, nil
}

func (m *memStore) GetReformatJob(_ context.Context, contentID, jobID string) (*domain.ReformatJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reformats[jobID]
	if !ok || r.ContentID != contentID {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memStore) TransitionStatus(_ context.Context, id string, to domain.ContentStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.contents[id]
	if c == nil || !domain.CanTransition(c.Status, to) {
		return false, nil
	}
	c.Status = to
	return true, nil
}

func (m *memStore) Fail(_ context.Context, id, message string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.contents[id]
	if c == nil || c.Status.Terminal() {
		return false, nil
	}
	c.Status = domain.StatusFailed
	c.ErrorMessage = message
	return true, nil
}

func (m *memStore) SetLocalSource(_ context.Context, id, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contents[id].LocalSourcePath = path
	return nil
}

func (m *memStore) SaveGeneratedText(_ context.Context, id string, text domain.GeneratedText) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.contents[id]
	c.GeneratedTitle = text.Title
	c.Summary = text.Summary
	c.GeneratedContent = text.Article
	c.LinkedInPost = text.LinkedInPost
	c.TwitterThread = text.TwitterThread
	c.Transcript = text.Transcript
	return nil
}

func (m *memStore) InsertClips(_ context.Context, contentID string, clips []domain.Clip) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contents[contentID].Clips = append(m.contents[contentID].Clips, clips...)
	return nil
}

func (m *memStore) UpdateClip(_ context.Context, contentID, clipID string, status domain.ClipStatus, url string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.contents[contentID]
	for i := range c.Clips {
		if c.Clips[i].ID == clipID && c.Clips[i].Status == domain.ClipPending {
			c.Clips[i].Status = status
			c.Clips[i].S3URL = url
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CompleteIfDone(_ context.Context, contentID string, allowFailed bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.contents[contentID]
	if c.Status != domain.StatusGeneratingVideos || len(c.Clips) == 0 {
		return false, nil
	}
	for _, clip := range c.Clips {
		if clip.Status == domain.ClipPending || (!allowFailed && clip.Status == domain.ClipFailed) {
			return false, nil
		}
	}
	c.Status = domain.StatusComplete
	return true, nil
}

func (m *memStore) CreateReformatJob(_ context.Context, job *domain.ReformatJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *job
	m.reformats[job.ID] = &cp
	return nil
}

func (m *memStore) UpdateReformatJob(_ context.Context, contentID, jobID string, status domain.ReformatStatus, url string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reformats[jobID]
	if !ok || r.ContentID != contentID || r.Status.Terminal() {
		return false, nil
	}
	r.Status = status
	if url != "" {
		r.URL = url
	}
	return true, nil
}

func (m *memStore) LatestCompletedReformat(_ context.Context, clipID string, aspect domain.AspectRatio) (*domain.ReformatJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reformats {
		if r.ClipID == clipID && r.AspectRatio == aspect && r.Status == domain.ReformatComplete {
			cp := *r
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

type memQueue struct {
	messages map[string][]any
}

func (q *memQueue) Enqueue(_ context.Context, queue string, payload any) error {
	q.messages[queue] = append(q.messages[queue], payload)
	return nil
}

func (q *memQueue) drain(queue string) []any {
	out := q.messages[queue]
	q.messages[queue] = nil
	return out
}

type noTx struct{}

func (noTx) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type staticPlans struct{ plan domain.Plan }

func (p staticPlans) Plan(context.Context, string) (domain.Plan, error) { return p.plan, nil }

type cachedSource struct{}

func (cachedSource) Fetch(_ context.Context, contentID, _ string) (string, error) {
	return "/sources/" + contentID + "_source.mp4", nil
}

type scriptedSynth struct{}

func (scriptedSynth) Synthesize(_ context.Context, _ ai.Source, opts domain.Options) (*ai.Result, error) {
	res := &ai.Result{
		Summary:          "summary",
		BlogPostMarkdown: "# Pipeline Title\n\narticle",
		LinkedInPost:     "linkedin",
		TwitterThread:    []string{"1/ thread"},
	}
	for i := 0; i < opts.ClipLimit; i++ {
		start := 30 * i
		res.ViralMoments = append(res.ViralMoments, ai.Moment{
			Title:     fmt.Sprintf("Moment %d", i+1),
			StartTime: ai.RawTime(fmt.Sprint(start)),
			EndTime:   ai.RawTime(fmt.Sprint(start + 20)),
		})
	}
	return res, nil
}

type urlRenderer struct {
	mu       sync.Mutex
	requests []render.Request
}

func (r *urlRenderer) Render(_ context.Context, req render.Request) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
	return render.PublicURL("http://localhost:8000", req.OutputName), nil
}

type recordingNotifier struct {
	events []any
}

func (n *recordingNotifier) Notify(_ context.Context, _ string, _ string, payload any) error {
	n.events = append(n.events, payload)
	return nil
}

func TestPipeline_SubmissionToReformat(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.PipelineConfig{DefaultPlan: "free"}

	store := newMemStore()
	queue := &memQueue{messages: map[string][]any{}}
	renderer := &urlRenderer{}
	notifier := &recordingNotifier{}
	plans := staticPlans{plan: domain.PlanFree}

	submitter := NewSubmitter(store, queue, plans, "content_jobs", "reformatting_jobs", logger)
	text := NewTextStage(store, noTx{}, queue, cachedSource{}, scriptedSynth{}, plans, "video_processing_jobs", cfg, logger)
	clips := NewClipStage(store, renderer, plans, cfg, logger)
	reformat := NewReformatStage(store, renderer, plans, notifier, cfg, logger)

	id, err := submitter.Submit(ctx, Submission{UserID: "u1", URL: "https://www.youtube.com/watch?v=abc"})
	require.NoError(t, err)

	for _, msg := range queue.drain("content_jobs") {
		require.NoError(t, text.Handle(ctx, msg.(domain.SubmissionJob)))
	}

	content, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusGeneratingVideos, content.Status)
	assert.Equal(t, "Pipeline Title", content.GeneratedTitle)
	assert.Equal(t, "/sources/"+id+"_source.mp4", content.LocalSourcePath)
	require.Len(t, content.Clips, 3)

	for _, msg := range queue.drain("video_processing_jobs") {
		require.NoError(t, clips.Handle(ctx, msg.(domain.ClipRenderJob)))
	}

	content, err = store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusComplete, content.Status)

	urls := make([]string, 0, len(content.Clips))
	for _, c := range content.Clips {
		assert.Equal(t, domain.ClipReady, c.Status)
		assert.Equal(t, "http://localhost:8000/clips/"+c.ID+"_9x16.mp4", c.S3URL)
		urls = append(urls, c.S3URL)
	}
	assert.Len(t, urls, 3)
	assert.NotEqual(t, urls[0], urls[1])

	target := content.Clips[0]
	res, err := submitter.RequestReformat(ctx, id, target.ID, domain.AspectSquare, false)
	require.NoError(t, err)
	require.Empty(t, res.ExistingURL)

	for _, msg := range queue.drain("reformatting_jobs") {
		require.NoError(t, reformat.Handle(ctx, msg.(domain.ReformatRequest)))
	}

	require.Len(t, notifier.events, 1)
	event, ok := notifier.events[0].(domain.ReformatSuccessEvent)
	require.True(t, ok)
	assert.Equal(t, "u1", event.UserID)
	assert.Equal(t, res.Job.ID, event.ReformatJobID)
	assert.NotEqual(t, target.S3URL, event.DownloadURL)

	content, err = store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusComplete, content.Status)
	assert.Equal(t, target.S3URL, content.Clip(target.ID).S3URL)
	require.Len(t, content.ReformattedClips, 1)
	assert.Equal(t, domain.ReformatComplete, content.ReformattedClips[0].Status)

	again, err := submitter.RequestReformat(ctx, id, target.ID, domain.AspectSquare, false)
	require.NoError(t, err)
	assert.Equal(t, event.DownloadURL, again.ExistingURL)
	assert.Empty(t, queue.drain("reformatting_jobs"))
}

func TestPipeline_ClipRedeliveryIsIdempotent(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.PipelineConfig{DefaultPlan: "free"}

	store := newMemStore()
	queue := &memQueue{messages: map[string][]any{}}
	renderer := &urlRenderer{}
	plans := staticPlans{plan: domain.PlanFree}

	submitter := NewSubmitter(store, queue, plans, "content_jobs", "reformatting_jobs", logger)
	text := NewTextStage(store, noTx{}, queue, cachedSource{}, scriptedSynth{}, plans, "video_processing_jobs", cfg, logger)
	clips := NewClipStage(store, renderer, plans, cfg, logger)

	id, err := submitter.Submit(ctx, Submission{UserID: "u1", LocalPath: "/uploads/talk.mp4", Options: domain.Options{ClipLimit: 2}})
	require.NoError(t, err)

	submissions := queue.drain("content_jobs")
	require.NoError(t, text.Handle(ctx, submissions[0].(domain.SubmissionJob)))

	jobs := queue.drain("video_processing_jobs")
	require.Len(t, jobs, 2)
	for _, msg := range append(jobs, jobs...) {
		require.NoError(t, clips.Handle(ctx, msg.(domain.ClipRenderJob)))
	}

	assert.Len(t, renderer.requests, 2)

	content, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusComplete, content.Status)

	// A redelivered submission after completion is a no-op.
	require.NoError(t, text.Handle(ctx, submissions[0].(domain.SubmissionJob)))
	assert.Empty(t, queue.drain("video_processing_jobs"))
}
