package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ELITEZERO_HTTP_ADDR", "ELITEZERO_STORAGE", "ELITEZERO_LOG_LEVEL",
		"ELITEZERO_SESSION_STALE_AFTER", "ELITEZERO_SESSION_SWEEP_INTERVAL", "OPENAI_MAX_TOKENS", "OPENAI_API_KEY"} {
		t.Setenv(key, "")
	}
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, StorageFile, cfg.StorageType)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 30*time.Minute, cfg.SessionStaleAfter)
	assert.Equal(t, 10*time.Minute, cfg.SessionSweepInterval)
	assert.Equal(t, 300, cfg.OpenAIMaxTokens)
	assert.False(t, cfg.AIEnabled())
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ELITEZERO_TEST_FILE_ONLY=from-file\nKAFKA_BROKERS=a:9092, b:9092,\n"), 0o600))
	t.Setenv("ELITEZERO_TEST_FILE_ONLY", "")
	os.Unsetenv("ELITEZERO_TEST_FILE_ONLY")
	t.Setenv("KAFKA_BROKERS", "")
	os.Unsetenv("KAFKA_BROKERS")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ELITEZERO_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", os.Getenv("ELITEZERO_TEST_FILE_ONLY"))
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.True(t, cfg.AIEnabled())
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"ELITEZERO_STORAGE", "sqlite"},
		{"ELITEZERO_SESSION_STALE_AFTER", "soon"},
		{"ELITEZERO_SESSION_SWEEP_INTERVAL", "0s"},
		{"ELITEZERO_SESSION_SWEEP_INTERVAL", "often"},
		{"ELITEZERO_LOG_LEVEL", "loud"},
		{"OPENAI_MAX_TOKENS", "many"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}
