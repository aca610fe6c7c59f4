package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Database
		Audio
		Auth
		Mail
		CatalogSync
		Tasks
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path string
	}
	Audio struct {
		Dir       string // Directory scanned by catalog sync, served as static files
		URLPrefix string // Prefix for playable sound URLs
	}
	Auth struct {
		SessionLifetime time.Duration
		BcryptCost      int
		SecureCookies   bool   // Set to false for local dev without HTTPS
		CSRFSecret      string // Empty disables CSRF protection

		// Rate limiting configuration for login attempts
		MaxLoginAttempts int           // Max failed attempts before lockout (default: 5)
		RateLimitWindow  time.Duration // Time window for counting attempts (default: 15m)
		LockoutDuration  time.Duration // How long to lock out (default: 30m)
	}
	Mail struct {
		Host     string // Empty means not configured: verification codes are returned in responses
		Port     int
		Username string
		Password string
		From     string
		UseTLS   bool
	}
	CatalogSync struct {
		Enabled  bool
		Schedule string // Cron format: "0 * * * *" = hourly
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("audio_dir", DefaultAudioDir)
	v.SetDefault("audio_url_prefix", DefaultAudioURLPrefix)

	// Auth defaults
	v.SetDefault("auth_session_lifetime", "720h") // 30 days
	v.SetDefault("auth_bcrypt_cost", 12)
	v.SetDefault("auth_secure_cookies", false) // Local-first app; enable behind HTTPS
	v.SetDefault("auth_csrf_secret", "")
	v.SetDefault("auth_max_login_attempts", 5)
	v.SetDefault("auth_rate_limit_window", "15m")
	v.SetDefault("auth_lockout_duration", "30m")

	// Mail defaults: no server configured means verification codes are
	// returned in API responses (local/dev fallback)
	v.SetDefault("mail_server", "")
	v.SetDefault("mail_port", 587)
	v.SetDefault("mail_username", "")
	v.SetDefault("mail_password", "")
	v.SetDefault("mail_default_sender", "noreply@localhost")
	v.SetDefault("mail_use_tls", true)

	// Catalog sync scheduling
	v.SetDefault("catalog_sync_enabled", false)
	v.SetDefault("catalog_sync_schedule", "0 * * * *") // Hourly at :00

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Audio: Audio{
			Dir:       v.GetString("AUDIO_DIR"),
			URLPrefix: v.GetString("AUDIO_URL_PREFIX"),
		},
		Auth: Auth{
			SessionLifetime:  v.GetDuration("AUTH_SESSION_LIFETIME"),
			BcryptCost:       v.GetInt("AUTH_BCRYPT_COST"),
			SecureCookies:    v.GetBool("AUTH_SECURE_COOKIES"),
			CSRFSecret:       v.GetString("AUTH_CSRF_SECRET"),
			MaxLoginAttempts: v.GetInt("AUTH_MAX_LOGIN_ATTEMPTS"),
			RateLimitWindow:  v.GetDuration("AUTH_RATE_LIMIT_WINDOW"),
			LockoutDuration:  v.GetDuration("AUTH_LOCKOUT_DURATION"),
		},
		Mail: Mail{
			Host:     v.GetString("MAIL_SERVER"),
			Port:     v.GetInt("MAIL_PORT"),
			Username: v.GetString("MAIL_USERNAME"),
			Password: v.GetString("MAIL_PASSWORD"),
			From:     v.GetString("MAIL_DEFAULT_SENDER"),
			UseTLS:   v.GetBool("MAIL_USE_TLS"),
		},
		CatalogSync: CatalogSync{
			Enabled:  v.GetBool("CATALOG_SYNC_ENABLED"),
			Schedule: v.GetString("CATALOG_SYNC_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
