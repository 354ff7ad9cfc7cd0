package domain

import "time"

type ContentStatus string

const (
	StatusPending          ContentStatus = "PENDING"
	StatusGeneratingText   ContentStatus = "GENERATING_TEXT"
	StatusGeneratingVideos ContentStatus = "GENERATING_VIDEOS"
	StatusComplete         ContentStatus = "COMPLETE"
	StatusFailed           ContentStatus = "FAILED"
)

// transitions lists, for each target status, the statuses it may be entered from.
var transitions = map[ContentStatus][]ContentStatus{
	StatusGeneratingText:   {StatusPending},
	StatusGeneratingVideos: {StatusGeneratingText},
	StatusComplete:         {StatusGeneratingVideos},
	StatusFailed:           {StatusPending, StatusGeneratingText, StatusGeneratingVideos},
}

// Predecessors returns the statuses an aggregate may move to `to` from.
func Predecessors(to ContentStatus) []ContentStatus {
	return transitions[to]
}

func CanTransition(from, to ContentStatus) bool {
	for _, s := range transitions[to] {
		if s == from {
			return true
		}
	}
	return false
}

func (s ContentStatus) Terminal() bool {
	return s == StatusComplete || s == StatusFailed
}

// Rank orders statuses along the happy path. FAILED ranks highest.
func (s ContentStatus) Rank() int {
	switch s {
	case StatusPending:
		return 0
	case StatusGeneratingText:
		return 1
	case StatusGeneratingVideos:
		return 2
	case StatusComplete:
		return 3
	case StatusFailed:
		return 4
	}
	return -1
}

type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// ClipLimit is the maximum number of clips generated per submission for the plan.
func (p Plan) ClipLimit() int {
	if p == PlanPro {
		return 6
	}
	return 3
}

func ParsePlan(s string) Plan {
	if Plan(s) == PlanPro {
		return PlanPro
	}
	return PlanFree
}

type TranscriptSegment struct {
	Timestamp string `json:"timestamp"`
	Text      string `json:"text"`
}

// Content is the aggregate root for one submission.
type Content struct {
	ID               string
	UserID           string
	SourceURL        string
	LocalSourcePath  string
	Status           ContentStatus
	GeneratedTitle   string
	Summary          string
	GeneratedContent string
	LinkedInPost     string
	TwitterThread    []string
	Transcript       []TranscriptSegment
	Clips            []Clip
	ReformattedClips []ReformatJob
	ErrorMessage     string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Clip returns the clip with the given id, or nil.
func (c *Content) Clip(id string) *Clip {
	for i := range c.Clips {
		if c.Clips[i].ID == id {
			return &c.Clips[i]
		}
	}
	return nil
}

// GeneratedText holds the fields written once by the text stage.
type GeneratedText struct {
	Title         string
	Summary       string
	Article       string
	LinkedInPost  string
	TwitterThread []string
	Transcript    []TranscriptSegment
}
