package fetch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atomizer/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFetchReusesCachedSource(t *testing.T) {
	dir := t.TempDir()
	d := NewYTDLP(filepath.Join(dir, "no-such-binary"), dir, discardLogger())

	cached := d.SourcePath("c1")
	require.NoError(t, os.WriteFile(cached, []byte("video"), 0o644))

	path, err := d.Fetch(context.Background(), "c1", "https://youtu.be/abc")
	require.NoError(t, err)
	assert.Equal(t, cached, path)
}

func TestFetchReportsSourceUnavailable(t *testing.T) {
	dir := t.TempDir()
	d := NewYTDLP(filepath.Join(dir, "no-such-binary"), filepath.Join(dir, "sources"), discardLogger())

	_, err := d.Fetch(context.Background(), "c2", "https://youtu.be/abc")
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestSourcePath(t *testing.T) {
	d := NewYTDLP("", "/srv/public/sources", discardLogger())
	assert.Equal(t, "/srv/public/sources/c3_source.mp4", d.SourcePath("c3"))
}
