package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "MAX_UPLOAD_SIZE_MB", "EXTRACTOR", "POSTGRES_DB_URL", "CORS_ALLOWED_ORIGINS", "DB_HEALTH_TTL", "S3_ENDPOINT"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.Port)
	assert.Equal(t, int64(25*1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, ExtractorMock, cfg.Extractor)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, time.Duration(0), cfg.DBHealthTTL)
	assert.Contains(t, cfg.Warnings(), "POSTGRES_DB_URL not set: invoices are kept in memory only")
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("EXTRACTOR", "OpenRouter")
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("DB_HEALTH_TTL", "250")
	t.Setenv("MAX_WORKERS", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, ExtractorOpenRouter, cfg.Extractor)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 250*time.Millisecond, cfg.DBHealthTTL)
	assert.Equal(t, 5, cfg.MaxWorkers)
	assert.Contains(t, cfg.Warnings(), "No OpenRouter API key provided: extraction requests will fail")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("debug").String())
	assert.Equal(t, "WARN", parseLevel("warning").String())
	assert.Equal(t, "INFO", parseLevel("nonsense").String())
}
