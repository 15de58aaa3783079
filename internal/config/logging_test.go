package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	for i := 1; i <= 5; i++ {
		name := filepath.Join(dir, fmt.Sprintf("atelier-2026-01-0%dT00-00-00.log", i))
		require.NoError(t, os.WriteFile(name, []byte("x"), 0644))
	}
	// Unrelated files are never touched
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.log"), []byte("x"), 0644))

	require.NoError(t, cleanupOldLogs(dir, 2))

	remaining, err := filepath.Glob(filepath.Join(dir, "atelier-*.log"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "atelier-2026-01-04T00-00-00.log"),
		filepath.Join(dir, "atelier-2026-01-05T00-00-00.log"),
	}, remaining)
	assert.FileExists(t, filepath.Join(dir, "other.log"))
}

func TestNewLoggerWritesFile(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{Environment: "test", LogDir: dir, LogMaxFiles: 3}

	logger, closeLog, err := NewLogger(cfg)
	require.NoError(t, err)
	logger.Info("hello", "k", "v")
	require.NoError(t, closeLog())

	files, err := filepath.Glob(filepath.Join(dir, "atelier-*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("TABLE_PREFIX", "")
	t.Setenv("ADVICE_PROVIDER", "anthropic")
	t.Setenv("ADVICE_MODEL", "")
	t.Setenv("FIRESTORE_PROJECT_ID", "studio-123")
	t.Setenv("AUTH_ISSUER", "")
	t.Setenv("AUTH_AUDIENCE", "")
	t.Setenv("REMOTE_TIMEOUT_SECONDS", "not-a-number")

	cfg := Load()

	assert.Equal(t, "prod_", cfg.TablePrefix)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.AdviceModel)
	assert.Equal(t, "https://securetoken.google.com/studio-123", cfg.AuthIssuer)
	assert.Equal(t, "studio-123", cfg.AuthAudience)
	assert.Equal(t, 10, int(cfg.RemoteTimeout.Seconds()))
}
