package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"atomizer/internal/domain"
)

type ContentStore struct {
	db *sqlx.DB
}

func NewContentStore(db *sqlx.DB) *ContentStore {
	return &ContentStore{db: db}
}

type contentRow struct {
	ID               string         `db:"id"`
	UserID           string         `db:"user_id"`
	SourceURL        string         `db:"source_url"`
	LocalSourcePath  string         `db:"local_source_path"`
	Status           string         `db:"status"`
	GeneratedTitle   string         `db:"generated_title"`
	Summary          string         `db:"summary"`
	GeneratedContent string         `db:"generated_content"`
	LinkedInPost     string         `db:"linkedin_post"`
	TwitterThread    pq.StringArray `db:"twitter_thread"`
	Transcript       string         `db:"transcript"`
	ErrorMessage     string         `db:"error_message"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

type clipRow struct {
	ID         string    `db:"id"`
	ContentID  string    `db:"content_id"`
	Position   int       `db:"position"`
	Title      string    `db:"title"`
	Summary    string    `db:"summary"`
	WordEvents string    `db:"word_events"`
	StartTime  float64   `db:"start_time"`
	EndTime    float64   `db:"end_time"`
	Status     string    `db:"status"`
	S3URL      string    `db:"s3_url"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type reformatRow struct {
	ID          string    `db:"id"`
	ContentID   string    `db:"content_id"`
	ClipID      string    `db:"clip_id"`
	AspectRatio string    `db:"aspect_ratio"`
	Status      string    `db:"status"`
	URL         string    `db:"url"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

const (
	contentColumns = `id, user_id, source_url, local_source_path, status, generated_title, summary,
		generated_content, linkedin_post, twitter_thread, transcript, error_message, created_at, updated_at`
	clipColumns = `id, content_id, position, title, summary, word_events, start_time, end_time,
		status, s3_url, created_at, updated_at`
	reformatColumns = `id, content_id, clip_id, aspect_ratio, status, url, created_at, updated_at`
)

func (s *ContentStore) Create(ctx context.Context, content *domain.Content) error {
	query := `
		INSERT INTO contents (id, user_id, source_url, local_source_path, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	row := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		content.ID,
		content.UserID,
		content.SourceURL,
		content.LocalSourcePath,
		content.Status,
	)
	return row.Scan(&content.CreatedAt, &content.UpdatedAt)
}

// Get loads the aggregate with its clips and reformat jobs.
func (s *ContentStore) Get(ctx context.Context, id string) (*domain.Content, error) {
	exec := GetExecutor(ctx, s.db)

	var row contentRow
	err := sqlx.GetContext(ctx, exec, &row, `SELECT `+contentColumns+` FROM contents WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	content, err := row.toDomain()
	if err != nil {
		return nil, err
	}

	var clips []clipRow
	err = sqlx.SelectContext(ctx, exec, &clips,
		`SELECT `+clipColumns+` FROM clips WHERE content_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("select clips: %w", err)
	}
	for _, c := range clips {
		clip, err := c.toDomain()
		if err != nil {
			return nil, err
		}
		content.Clips = append(content.Clips, clip)
	}

	var reformats []reformatRow
	err = sqlx.SelectContext(ctx, exec, &reformats,
		`SELECT `+reformatColumns+` FROM reformat_jobs WHERE content_id = $1 ORDER BY created_at`, id)
	if err != nil {
		return nil, fmt.Errorf("select reformat jobs: %w", err)
	}
	for _, r := range reformats {
		content.ReformattedClips = append(content.ReformattedClips, r.toDomain())
	}

	return content, nil
}

// TransitionStatus moves the aggregate to `to` only from one of its allowed
// predecessors and reports whether the row changed.
func (s *ContentStore) TransitionStatus(ctx context.Context, id string, to domain.ContentStatus) (bool, error) {
	query := `
		UPDATE contents SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = ANY($3)`

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, id, to, pq.Array(statusStrings(domain.Predecessors(to))))
	if err != nil {
		return false, err
	}
	return affected(res)
}

func (s *ContentStore) Fail(ctx context.Context, id, message string) (bool, error) {
	query := `
		UPDATE contents SET status = $2, error_message = $3, updated_at = NOW()
		WHERE id = $1 AND status = ANY($4)`

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		id,
		domain.StatusFailed,
		message,
		pq.Array(statusStrings(domain.Predecessors(domain.StatusFailed))),
	)
	if err != nil {
		return false, err
	}
	return affected(res)
}

// SetLocalSource records the cached source path. The path is written once.
func (s *ContentStore) SetLocalSource(ctx context.Context, id, path string) error {
	query := `
		UPDATE contents SET local_source_path = $2, updated_at = NOW()
		WHERE id = $1 AND local_source_path = ''`

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, id, path)
	return err
}

func (s *ContentStore) SaveGeneratedText(ctx context.Context, id string, text domain.GeneratedText) error {
	transcript, err := marshalJSON(text.Transcript)
	if err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}

	query := `
		UPDATE contents SET
			generated_title = $2,
			summary = $3,
			generated_content = $4,
			linkedin_post = $5,
			twitter_thread = $6,
			transcript = $7,
			updated_at = NOW()
		WHERE id = $1`

	_, err = GetExecutor(ctx, s.db).ExecContext(ctx, query,
		id,
		text.Title,
		text.Summary,
		text.Article,
		text.LinkedInPost,
		pq.StringArray(nonNil(text.TwitterThread)),
		transcript,
	)
	return err
}

func (s *ContentStore) InsertClips(ctx context.Context, contentID string, clips []domain.Clip) error {
	if len(clips) == 0 {
		return nil
	}

	rows := make([]clipRow, 0, len(clips))
	for _, c := range clips {
		words, err := marshalJSON(c.WordEvents)
		if err != nil {
			return fmt.Errorf("encode word events: %w", err)
		}
		rows = append(rows, clipRow{
			ID:         c.ID,
			ContentID:  contentID,
			Position:   c.Position,
			Title:      c.Title,
			Summary:    c.Summary,
			WordEvents: words,
			StartTime:  c.StartTime,
			EndTime:    c.EndTime,
			Status:     string(c.Status),
		})
	}

	query := `
		INSERT INTO clips (id, content_id, position, title, summary, word_events, start_time, end_time, status)
		VALUES (:id, :content_id, :position, :title, :summary, :word_events, :start_time, :end_time, :status)
		ON CONFLICT (id) DO NOTHING`

	_, err := sqlx.NamedExecContext(ctx, GetExecutor(ctx, s.db), query, rows)
	return err
}

// UpdateClip settles a PENDING clip. A clip that is already terminal is left
// untouched and false is returned.
func (s *ContentStore) UpdateClip(ctx context.Context, contentID, clipID string, status domain.ClipStatus, url string) (bool, error) {
	query := `
		UPDATE clips SET status = $3, s3_url = $4, updated_at = NOW()
		WHERE content_id = $1 AND id = $2 AND status = $5`

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, contentID, clipID, status, url, domain.ClipPending)
	if err != nil {
		return false, err
	}
	return affected(res)
}

// CompleteIfDone marks the aggregate COMPLETE when it has at least one clip and
// every clip is settled. With allowFailed false every clip must be READY.
func (s *ContentStore) CompleteIfDone(ctx context.Context, contentID string, allowFailed bool) (bool, error) {
	settled := []string{string(domain.ClipReady)}
	if allowFailed {
		settled = append(settled, string(domain.ClipFailed))
	}

	query := `
		UPDATE contents c SET status = $2, updated_at = NOW()
		WHERE c.id = $1
		  AND c.status = $3
		  AND EXISTS (SELECT 1 FROM clips WHERE content_id = c.id)
		  AND NOT EXISTS (
			SELECT 1 FROM clips WHERE content_id = c.id AND NOT (status = ANY($4))
		  )`

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		contentID,
		domain.StatusComplete,
		domain.StatusGeneratingVideos,
		pq.Array(settled),
	)
	if err != nil {
		return false, err
	}
	return affected(res)
}

func (s *ContentStore) CreateReformatJob(ctx context.Context, job *domain.ReformatJob) error {
	query := `
		INSERT INTO reformat_jobs (id, content_id, clip_id, aspect_ratio, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	row := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		job.ID,
		job.ContentID,
		job.ClipID,
		job.AspectRatio,
		job.Status,
	)
	return row.Scan(&job.CreatedAt, &job.UpdatedAt)
}

func (s *ContentStore) GetReformatJob(ctx context.Context, contentID, jobID string) (*domain.ReformatJob, error) {
	var row reformatRow
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row,
		`SELECT `+reformatColumns+` FROM reformat_jobs WHERE id = $1 AND content_id = $2`, jobID, contentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	job := row.toDomain()
	return &job, nil
}

// UpdateReformatJob changes a job that has not settled yet. An empty url
// leaves the stored url as is.
func (s *ContentStore) UpdateReformatJob(ctx context.Context, contentID, jobID string, status domain.ReformatStatus, url string) (bool, error) {
	query := `
		UPDATE reformat_jobs SET
			status = $3,
			url = COALESCE(NULLIF($4, ''), url),
			updated_at = NOW()
		WHERE content_id = $1 AND id = $2 AND status = ANY($5)`

	open := []string{string(domain.ReformatPending), string(domain.ReformatProcessing)}
	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, contentID, jobID, status, url, pq.Array(open))
	if err != nil {
		return false, err
	}
	return affected(res)
}

func (s *ContentStore) LatestCompletedReformat(ctx context.Context, clipID string, aspect domain.AspectRatio) (*domain.ReformatJob, error) {
	query := `SELECT ` + reformatColumns + `
		FROM reformat_jobs
		WHERE clip_id = $1 AND aspect_ratio = $2 AND status = $3
		ORDER BY updated_at DESC
		LIMIT 1`

	var row reformatRow
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query, clipID, aspect, domain.ReformatComplete)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	job := row.toDomain()
	return &job, nil
}

// FailStaleContent fails aggregates left in status since before olderThan and
// returns their ids.
func (s *ContentStore) FailStaleContent(ctx context.Context, status domain.ContentStatus, olderThan time.Time, message string) ([]string, error) {
	query := `
		UPDATE contents SET status = $1, error_message = $2, updated_at = NOW()
		WHERE status = $3 AND updated_at < $4
		RETURNING id`

	var ids []string
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &ids, query,
		domain.StatusFailed, message, status, olderThan)
	return ids, err
}

// FailStaleClips fails PENDING clips of aggregates still generating videos and
// returns the owning content id of each failed clip.
func (s *ContentStore) FailStaleClips(ctx context.Context, olderThan time.Time) ([]string, error) {
	query := `
		UPDATE clips SET status = $1, updated_at = NOW()
		WHERE status = $2 AND created_at < $3
		  AND content_id IN (SELECT id FROM contents WHERE status = $4)
		RETURNING content_id`

	var contentIDs []string
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &contentIDs, query,
		domain.ClipFailed, domain.ClipPending, olderThan, domain.StatusGeneratingVideos)
	return contentIDs, err
}

func (s *ContentStore) FailStaleReformatJobs(ctx context.Context, olderThan time.Time) ([]domain.StaleReformat, error) {
	query := `
		UPDATE reformat_jobs r SET status = $1, updated_at = NOW()
		FROM contents c
		WHERE c.id = r.content_id AND r.status = ANY($2) AND r.updated_at < $3
		RETURNING r.id, r.content_id, c.user_id`

	open := []string{string(domain.ReformatPending), string(domain.ReformatProcessing)}

	var stale []domain.StaleReformat
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &stale, query, domain.ReformatFailed, pq.Array(open), olderThan)
	return stale, err
}

func (r contentRow) toDomain() (*domain.Content, error) {
	c := &domain.Content{
		ID:               r.ID,
		UserID:           r.UserID,
		SourceURL:        r.SourceURL,
		LocalSourcePath:  r.LocalSourcePath,
		Status:           domain.ContentStatus(r.Status),
		GeneratedTitle:   r.GeneratedTitle,
		Summary:          r.Summary,
		GeneratedContent: r.GeneratedContent,
		LinkedInPost:     r.LinkedInPost,
		TwitterThread:    []string(r.TwitterThread),
		ErrorMessage:     r.ErrorMessage,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
	if len(r.Transcript) > 0 {
		if err := json.Unmarshal([]byte(r.Transcript), &c.Transcript); err != nil {
			return nil, fmt.Errorf("decode transcript of %s: %w", r.ID, err)
		}
	}
	return c, nil
}

func (r clipRow) toDomain() (domain.Clip, error) {
	c := domain.Clip{
		ID:        r.ID,
		ContentID: r.ContentID,
		Position:  r.Position,
		Title:     r.Title,
		Summary:   r.Summary,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Status:    domain.ClipStatus(r.Status),
		S3URL:     r.S3URL,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if len(r.WordEvents) > 0 {
		if err := json.Unmarshal([]byte(r.WordEvents), &c.WordEvents); err != nil {
			return domain.Clip{}, fmt.Errorf("decode word events of clip %s: %w", r.ID, err)
		}
	}
	return c, nil
}

func (r reformatRow) toDomain() domain.ReformatJob {
	return domain.ReformatJob{
		ID:          r.ID,
		ContentID:   r.ContentID,
		ClipID:      r.ClipID,
		AspectRatio: domain.AspectRatio(r.AspectRatio),
		Status:      domain.ReformatStatus(r.Status),
		URL:         r.URL,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func statusStrings(statuses []domain.ContentStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// marshalJSON encodes a slice for a NOT NULL jsonb column. The result is a
// string because lib/pq sends []byte parameters as bytea.
func marshalJSON[T any](v []T) (string, error) {
	if v == nil {
		v = []T{}
	}
	b, err := json.Marshal(v)
	return string(b), err
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
