package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient implements Provider on top of the Gemini API.
type GeminiClient struct {
	client      *genai.Client
	temperature float32
	logger      *slog.Logger
}

func NewGeminiClient(ctx context.Context, apiKey string, temperature float32, logger *slog.Logger) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiClient{
		client:      client,
		temperature: temperature,
		logger:      logger.With("component", "gemini"),
	}, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func (c *GeminiClient) Generate(ctx context.Context, model string, file *File, parts ...string) (string, error) {
	m := c.client.GenerativeModel(model)
	if c.temperature > 0 {
		m.Temperature = toPtr(c.temperature)
	}

	req := make([]genai.Part, 0, len(parts)+1)
	if file != nil {
		req = append(req, genai.FileData{URI: file.URI, MIMEType: file.MIMEType})
	}
	for _, p := range parts {
		req = append(req, genai.Text(p))
	}

	resp, err := m.GenerateContent(ctx, req...)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini generate: empty response")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	c.logger.Debug("generated", "model", model, "length", b.Len())
	return b.String(), nil
}

func (c *GeminiClient) UploadFile(ctx context.Context, path, mimeType string) (*File, error) {
	f, err := c.client.UploadFileFromPath(ctx, path, &genai.UploadFileOptions{MIMEType: mimeType})
	if err != nil {
		return nil, fmt.Errorf("gemini upload %s: %w", path, err)
	}
	return toFile(f), nil
}

func (c *GeminiClient) GetFile(ctx context.Context, name string) (*File, error) {
	f, err := c.client.GetFile(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("gemini get file %s: %w", name, err)
	}
	return toFile(f), nil
}

func toFile(f *genai.File) *File {
	state := FileProcessing
	switch f.State {
	case genai.FileStateActive:
		state = FileActive
	case genai.FileStateFailed:
		state = FileFailed
	}
	return &File{
		Name:     f.Name,
		URI:      f.URI,
		MIMEType: f.MIMEType,
		State:    state,
	}
}

func toPtr[T any](v T) *T {
	return &v
}
