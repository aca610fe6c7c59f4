package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8190), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, DefaultAudioDir, cfg.Audio.Dir)
	assert.Equal(t, DefaultAudioURLPrefix, cfg.Audio.URLPrefix)

	assert.Equal(t, 720*time.Hour, cfg.Auth.SessionLifetime)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.False(t, cfg.Auth.SecureCookies)
	assert.Empty(t, cfg.Auth.CSRFSecret)
	assert.Equal(t, 5, cfg.Auth.MaxLoginAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Auth.RateLimitWindow)

	assert.Empty(t, cfg.Mail.Host)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.True(t, cfg.Mail.UseTLS)

	assert.False(t, cfg.CatalogSync.Enabled)
	assert.Equal(t, "0 * * * *", cfg.CatalogSync.Schedule)

	assert.True(t, cfg.Tasks.Enabled)
	assert.Equal(t, 1, cfg.Tasks.Workers)
	assert.Equal(t, 15*time.Minute, cfg.Tasks.ReleaseAfter)
}

func TestNewConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_PATH", "/tmp/custom.db")
	t.Setenv("AUDIO_DIR", "/srv/audio")
	t.Setenv("AUTH_BCRYPT_COST", "4")
	t.Setenv("MAIL_SERVER", "smtp.example.com")
	t.Setenv("CATALOG_SYNC_ENABLED", "true")
	t.Setenv("CATALOG_SYNC_SCHEDULE", "*/5 * * * *")

	cfg := NewConfig()

	assert.Equal(t, int32(9000), cfg.HTTP.Port)
	assert.Equal(t, "/tmp/custom.db", cfg.Database.Path)
	assert.Equal(t, "/srv/audio", cfg.Audio.Dir)
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
	assert.Equal(t, "smtp.example.com", cfg.Mail.Host)
	assert.True(t, cfg.CatalogSync.Enabled)
	assert.Equal(t, "*/5 * * * *", cfg.CatalogSync.Schedule)
}
