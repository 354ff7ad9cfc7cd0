package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"atomizer/internal/domain"
)

const repairPrompt = `The following text is supposed to be a single, valid JSON object, but it contains a syntax error. Please analyze the text, fix the error (e.g., missing commas, unescaped quotes, trailing commas), and return ONLY the corrected, valid JSON object. Do not add any new data or explanations.

BROKEN JSON:
%s

CORRECTED JSON:`

// Extract returns the span from the first '{' to the last '}' in raw.
func Extract(raw string) (string, error) {
	first := strings.Index(raw, "{")
	last := strings.LastIndex(raw, "}")
	if first == -1 || last == -1 || last < first {
		return "", domain.ErrNoJSONFound
	}
	return raw[first : last+1], nil
}

// Repairer parses model output and asks a fast model to fix syntax once when
// the first parse fails.
type Repairer struct {
	provider Provider
	model    string
	logger   *slog.Logger
}

func NewRepairer(provider Provider, model string, logger *slog.Logger) *Repairer {
	return &Repairer{
		provider: provider,
		model:    model,
		logger:   logger.With("component", "repairer"),
	}
}

// ParseWithRepair extracts and decodes a Result from raw, making at most one
// repair call.
func (r *Repairer) ParseWithRepair(ctx context.Context, raw string) (*Result, error) {
	span, err := Extract(raw)
	if err != nil {
		return nil, err
	}

	var res Result
	firstErr := json.Unmarshal([]byte(span), &res)
	if firstErr == nil {
		return &res, nil
	}

	r.logger.Warn("malformed json from model, attempting repair",
		"error", firstErr,
		"length", len(span),
	)

	repaired, err := r.provider.Generate(ctx, r.model, nil, fmt.Sprintf(repairPrompt, span))
	if err != nil {
		return nil, fmt.Errorf("%w: repair call: %v", domain.ErrUnrepairableOutput, err)
	}

	fixed, err := Extract(repaired)
	if err != nil {
		return nil, fmt.Errorf("%w: repair response: %v", domain.ErrUnrepairableOutput, err)
	}

	res = Result{}
	if err := json.Unmarshal([]byte(fixed), &res); err != nil {
		r.logger.Error("json repair failed",
			"error", err,
			"original", truncate(span, 500),
		)
		return nil, fmt.Errorf("%w: %v", domain.ErrUnrepairableOutput, err)
	}

	r.logger.Info("json repair succeeded")
	return &res, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
