// Package fetch caches remote source videos on local disk.
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"atomizer/internal/domain"
)

type YTDLP struct {
	bin    string
	dir    string
	logger *slog.Logger
}

func NewYTDLP(bin, dir string, logger *slog.Logger) *YTDLP {
	if bin == "" {
		bin = "yt-dlp"
	}
	return &YTDLP{
		bin:    bin,
		dir:    dir,
		logger: logger.With("component", "yt-dlp"),
	}
}

// SourcePath is where the source for contentID is cached.
func (d *YTDLP) SourcePath(contentID string) string {
	return filepath.Join(d.dir, contentID+"_source.mp4")
}

// Fetch downloads url once and returns the cached path. An existing
// non-empty file is reused.
func (d *YTDLP) Fetch(ctx context.Context, contentID, url string) (string, error) {
	path := d.SourcePath(contentID)

	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		d.logger.Info("reusing cached source", "content_id", contentID, "path", path)
		return path, nil
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", fmt.Errorf("create sources dir: %w", err)
	}

	d.logger.Info("caching source", "content_id", contentID, "url", url)

	cmd := exec.CommandContext(ctx, d.bin, "-o", path, url)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%w: yt-dlp %s: %v\n%s", domain.ErrSourceUnavailable, url, err, out)
	}

	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: yt-dlp wrote no file at %s", domain.ErrSourceUnavailable, path)
	}

	return path, nil
}
