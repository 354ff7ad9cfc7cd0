package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrNoJSONFound        = errors.New("no json object found in model output")
	ErrUnrepairableOutput = errors.New("model output could not be repaired into valid json")
	ErrInvalidClipRange   = errors.New("clip end time must be after start time")
	ErrSourceUnavailable  = errors.New("source video unavailable")
	ErrNoMoments          = errors.New("synthesis produced no usable clips")
)

// RenderFailedError reports a non-zero exit of the transcoder.
type RenderFailedError struct {
	Output string
	Err    error
}

func (e *RenderFailedError) Error() string {
	return fmt.Sprintf("render failed: %v\n%s", e.Err, e.Output)
}

func (e *RenderFailedError) Unwrap() error {
	return e.Err
}
