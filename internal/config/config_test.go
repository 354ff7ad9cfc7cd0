package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "database:\n  dbname: atomizer\n"))
	require.NoError(t, err)

	assert.Equal(t, "content_jobs", cfg.RabbitMQ.TextQueue)
	assert.Equal(t, "video_processing_jobs", cfg.RabbitMQ.ClipQueue)
	assert.Equal(t, "reformatting_jobs", cfg.RabbitMQ.ReformatQueue)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.Gemini.RepairModel)
	assert.Equal(t, 5*time.Second, cfg.Gemini.PollInterval)
	assert.Equal(t, 1080, cfg.Render.TargetWidth)
	assert.Equal(t, "ultrafast", cfg.Render.Preset)
	assert.Equal(t, cfg.Render.PublicBaseURL, cfg.Storage.PublicURL)
	assert.True(t, cfg.Pipeline.AllowFailedClips())
	assert.Equal(t, 2*cfg.Pipeline.TextTimeout, cfg.Sweeper.TextStaleAfter)
	assert.Equal(t, 24*time.Hour, cfg.Sweeper.PendingStaleAfter)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "host=localhost port=5432 user= password= dbname=atomizer sslmode=disable", cfg.Database.DSN())
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("ATOMIZER_TEST_GEMINI_KEY", "secret")
	t.Setenv("ATOMIZER_TEST_DB_PASSWORD", "pw")

	cfg, err := Load(writeConfig(t, `
gemini:
  api_key: ${ATOMIZER_TEST_GEMINI_KEY}
database:
  password: ${ATOMIZER_TEST_DB_PASSWORD}
pipeline:
  complete_with_failed_clips: false
  clip_timeout: 90s
`))
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Gemini.APIKey)
	assert.Equal(t, "pw", cfg.Database.Password)
	assert.False(t, cfg.Pipeline.AllowFailedClips())
	assert.Equal(t, 90*time.Second, cfg.Pipeline.ClipTimeout)
}

func TestLoadRejectsStorageWithoutBucket(t *testing.T) {
	_, err := Load(writeConfig(t, "storage:\n  enabled: true\n"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
