package domain

import (
	"strings"
	"time"
)

type ClipStatus string

const (
	ClipPending ClipStatus = "PENDING"
	ClipReady   ClipStatus = "READY"
	ClipFailed  ClipStatus = "FAILED"
)

func (s ClipStatus) Terminal() bool {
	return s == ClipReady || s == ClipFailed
}

type WordEvent struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type Clip struct {
	ID         string
	ContentID  string
	Position   int
	Title      string
	Summary    string
	WordEvents []WordEvent
	StartTime  float64
	EndTime    float64
	Status     ClipStatus
	S3URL      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Span returns the render range covered by the clip's words, falling back to
// the clip bounds when there are no word events.
func (c *Clip) Span() (float64, float64) {
	if len(c.WordEvents) == 0 {
		return c.StartTime, c.EndTime
	}
	return c.WordEvents[0].Start, c.WordEvents[len(c.WordEvents)-1].End
}

// OutputName is the file name stem of the default vertical render.
func (c *Clip) OutputName() string {
	return c.ID + "_9x16"
}

type ReformatStatus string

const (
	ReformatPending    ReformatStatus = "PENDING"
	ReformatProcessing ReformatStatus = "PROCESSING"
	ReformatComplete   ReformatStatus = "COMPLETE"
	ReformatFailed     ReformatStatus = "FAILED"
)

func (s ReformatStatus) Terminal() bool {
	return s == ReformatComplete || s == ReformatFailed
}

type ReformatJob struct {
	ID          string
	ContentID   string
	ClipID      string
	AspectRatio AspectRatio
	Status      ReformatStatus
	URL         string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OutputName is the file name stem of the reformatted render.
func (j *ReformatJob) OutputName() string {
	return j.ID + "_" + strings.ReplaceAll(string(j.AspectRatio), ":", "x")
}

type AspectRatio string

const (
	AspectVertical AspectRatio = "9:16"
	AspectSquare   AspectRatio = "1:1"
	AspectPortrait AspectRatio = "4:5"
)

func (a AspectRatio) Valid() bool {
	switch a {
	case AspectVertical, AspectSquare, AspectPortrait:
		return true
	}
	return false
}

type CaptionStyle string

const (
	CaptionDefault   CaptionStyle = "default"
	CaptionHighlight CaptionStyle = "highlight"
	CaptionKaraoke   CaptionStyle = "karaoke"
)

// StaleReformat identifies a reformat job failed by the sweeper.
type StaleReformat struct {
	ReformatJobID string `db:"id"`
	ContentID     string `db:"content_id"`
	UserID        string `db:"user_id"`
}
