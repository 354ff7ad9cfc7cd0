package domain

// Queue payloads. Field names follow the wire format shared with the API.

type Timeframe struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Options struct {
	ClipLength     int          `json:"clipLength" validate:"gte=0"`
	ClipLimit      int          `json:"clipLimit" validate:"gte=0"`
	EnableCaptions bool         `json:"enableCaptions"`
	CaptionStyle   CaptionStyle `json:"captionStyle" validate:"omitempty,oneof=default highlight karaoke"`
	Timeframe      *Timeframe   `json:"timeframe,omitempty"`
}

type SubmissionJob struct {
	ContentID       string  `json:"contentId" validate:"required"`
	UserID          string  `json:"userId" validate:"required"`
	URL             string  `json:"url,omitempty" validate:"required_without=LocalSourcePath"`
	LocalSourcePath string  `json:"localSourcePath,omitempty"`
	Options         Options `json:"options"`
}

type ClipRenderJob struct {
	ContentID string  `json:"contentId" validate:"required"`
	ClipID    string  `json:"clipId" validate:"required"`
	Options   Options `json:"options"`
}

type ReformatRequest struct {
	ContentID     string      `json:"contentId" validate:"required"`
	ClipID        string      `json:"clipId" validate:"required"`
	ReformatJobID string      `json:"reformatJobId" validate:"required"`
	AspectRatio   AspectRatio `json:"aspectRatio" validate:"required,oneof=9:16 1:1 4:5"`
	UserID        string      `json:"userId" validate:"required"`
}

// Notifier events and payloads for reformat results.
const EventReformatResult = "reformat_result"

type ReformatSuccessEvent struct {
	UserID        string `json:"userId"`
	DownloadURL   string `json:"downloadUrl"`
	ReformatJobID string `json:"reformatJobId"`
}

type ReformatFailureEvent struct {
	UserID        string `json:"userId"`
	ReformatJobID string `json:"reformatJobId"`
	Error         string `json:"error"`
}
