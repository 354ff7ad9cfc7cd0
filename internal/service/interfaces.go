package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"atomizer/internal/ai"
	"atomizer/internal/domain"
	"atomizer/internal/render"
)

// ContentStore exposes targeted updates on the content aggregate. Status
// changes are conditional and report whether a row changed.
type ContentStore interface {
	Create(ctx context.Context, content *domain.Content) error
	Get(ctx context.Context, id string) (*domain.Content, error)
	GetReformatJob(ctx context.Context, contentID, jobID string) (*domain.ReformatJob, error)
	TransitionStatus(ctx context.Context, id string, to domain.ContentStatus) (bool, error)
	Fail(ctx context.Context, id, message string) (bool, error)
	SetLocalSource(ctx context.Context, id, path string) error
	SaveGeneratedText(ctx context.Context, id string, text domain.GeneratedText) error
	InsertClips(ctx context.Context, contentID string, clips []domain.Clip) error
	UpdateClip(ctx context.Context, contentID, clipID string, status domain.ClipStatus, url string) (bool, error)
	CompleteIfDone(ctx context.Context, contentID string, allowFailed bool) (bool, error)
	CreateReformatJob(ctx context.Context, job *domain.ReformatJob) error
	UpdateReformatJob(ctx context.Context, contentID, jobID string, status domain.ReformatStatus, url string) (bool, error)
	LatestCompletedReformat(ctx context.Context, clipID string, aspect domain.AspectRatio) (*domain.ReformatJob, error)
}

type SweepStore interface {
	FailStaleContent(ctx context.Context, status domain.ContentStatus, olderThan time.Time, message string) ([]string, error)
	FailStaleClips(ctx context.Context, olderThan time.Time) ([]string, error)
	FailStaleReformatJobs(ctx context.Context, olderThan time.Time) ([]domain.StaleReformat, error)
	CompleteIfDone(ctx context.Context, contentID string, allowFailed bool) (bool, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Queue interface {
	Enqueue(ctx context.Context, queue string, payload any) error
}

type Synthesizer interface {
	Synthesize(ctx context.Context, src ai.Source, opts domain.Options) (*ai.Result, error)
}

type Renderer interface {
	Render(ctx context.Context, req render.Request) (string, error)
}

type Downloader interface {
	Fetch(ctx context.Context, contentID, url string) (string, error)
}

type PlanLookup interface {
	Plan(ctx context.Context, userID string) (domain.Plan, error)
}

type Notifier interface {
	Notify(ctx context.Context, userID, event string, payload any) error
}
