package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "SESSION_TTL", "QDRANT_URL", "GEMINI_MODEL",
		"RETRY_MAX_ATTEMPTS", "RETRY_INITIAL_DELAY", "MAX_RESPONSE_BYTES",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, 12*time.Hour, cfg.Server.SessionTTL)
	assert.Empty(t, cfg.Qdrant.URL)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, 2, cfg.Pipeline.RetryMaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.Pipeline.RetryInitialDelay)
	assert.Equal(t, 1<<20, cfg.Pipeline.MaxResponseBytes)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("RETRY_MAX_ATTEMPTS", "4")
	t.Setenv("RETRY_INITIAL_DELAY", "500ms")
	t.Setenv("GEMINI_TEMPERATURE", "0.4")
	t.Setenv("MAX_FILES_PER_UPLOAD", "not-a-number")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 4, cfg.Pipeline.RetryMaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.Pipeline.RetryInitialDelay)
	assert.InDelta(t, 0.4, cfg.Gemini.Temperature, 1e-6)
	assert.Equal(t, 20, cfg.Storage.MaxFiles)
}

func TestValidate(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("MAX_FILE_SIZE", "")
	t.Setenv("MAX_FILES_PER_UPLOAD", "")
	t.Setenv("MAX_RESPONSE_BYTES", "")

	cfg := Load()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")

	cfg.Gemini.APIKey = "key"
	assert.NoError(t, cfg.Validate())

	cfg.Storage.MaxFiles = 0
	cfg.Pipeline.RetryMaxAttempts = 0
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_FILES_PER_UPLOAD")
	assert.Contains(t, err.Error(), "RETRY_MAX_ATTEMPTS")
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: "5432", User: "ats", Password: "pw", DBName: "ats", SSLMode: "disable",
	}}

	assert.Equal(t, "host=db port=5432 user=ats password=pw dbname=ats sslmode=disable", cfg.GetDatabaseDSN())
}
