package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"atomizer/internal/domain"
)

// Result is the structured output of one synthesis call.
type Result struct {
	Summary          string     `json:"summary"`
	BlogPostMarkdown string     `json:"blogPostMarkdown"`
	Transcript       Transcript `json:"transcript"`
	LinkedInPost     string     `json:"linkedinPost"`
	TwitterThread    []string   `json:"twitterThread"`
	ViralMoments     []Moment   `json:"viralMoments"`
}

// Moment is a model-proposed clip before its timestamps are normalized.
type Moment struct {
	Title      string      `json:"title" validate:"required"`
	Summary    string      `json:"summary"`
	StartTime  RawTime     `json:"startTime" validate:"required"`
	EndTime    RawTime     `json:"endTime" validate:"required"`
	WordEvents []WordEvent `json:"wordEvents"`
}

type WordEvent struct {
	Word  string  `json:"word"`
	Start RawTime `json:"start"`
	End   RawTime `json:"end"`
}

// RawTime holds a timestamp as the model wrote it: either a JSON number of
// seconds or a string such as "01:23.540".
type RawTime string

func (t *RawTime) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = RawTime(s)
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("time value %s: %w", b, err)
	}
	*t = RawTime(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// Transcript accepts the documented array of segments, or a bare string which
// becomes a single untimed segment.
type Transcript []domain.TranscriptSegment

func (t *Transcript) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*t = nil
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*t = nil
			return nil
		}
		*t = Transcript{{Text: s}}
		return nil
	}
	var segs []domain.TranscriptSegment
	if err := json.Unmarshal(b, &segs); err != nil {
		return err
	}
	*t = segs
	return nil
}
