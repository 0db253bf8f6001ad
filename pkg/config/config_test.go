package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, int64(10<<20), cfg.Server.MaxUploadBytes)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "en", cfg.Transcription.LanguageCode)
	assert.Equal(t, 2*time.Minute, cfg.Transcription.MaxElapsed)
	assert.Equal(t, uint64(3), cfg.Transcription.MaxRetries)
	assert.Equal(t, "voicenote.analyzed", cfg.Events.Subject)
	assert.Empty(t, cfg.Events.URL)
	assert.Equal(t, "@daily", cfg.Maintenance.SessionCleanupSchedule)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "/tmp/notes.db")
	t.Setenv("CACHE_DRIVER", "memory")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("ASSEMBLYAI_API_KEY", "key-123")
	t.Setenv("ASSEMBLYAI_MAX_RETRIES", "5")
	t.Setenv("ANALYSIS_LEXICON_PATH", "/etc/voicenote/lexicon.yaml")
	t.Setenv("NATS_URL", "nats://localhost:4222")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/notes.db", cfg.GetDatabaseDSN())
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "key-123", cfg.Transcription.APIKey)
	assert.Equal(t, uint64(5), cfg.Transcription.MaxRetries)
	assert.Equal(t, "/etc/voicenote/lexicon.yaml", cfg.Analysis.LexiconPath)
	assert.Equal(t, "nats://localhost:4222", cfg.Events.URL)
}

func TestValidate(t *testing.T) {
	t.Run("unknown database driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "mysql")
		_, err := Load()
		assert.ErrorContains(t, err, "DB_DRIVER")
	})

	t.Run("production requires jwt secrets", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "production")
		_, err := Load()
		assert.ErrorContains(t, err, "JWT_ACCESS_SECRET")

		t.Setenv("JWT_ACCESS_SECRET", "a")
		t.Setenv("JWT_REFRESH_SECRET", "b")
		_, err = Load()
		assert.NoError(t, err)
	})
}
