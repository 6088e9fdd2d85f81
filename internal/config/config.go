package config

import (
	"time"

	"github.com/spf13/viper"
)

type AuthMode string

const (
	AuthModeNone     AuthMode = "none"     // No authentication (browsing, cart and wishlist only)
	AuthModeLocal    AuthMode = "local"    // Local user database with bcrypt passwords
	AuthModeUpstream AuthMode = "upstream" // Delegate credentials to the remote auth API
)

type (
	Config struct {
		HTTP
		Global
		Database
		Catalog
		Auth
		Tasks
	}

	HTTP struct {
		Port int32
		Host string
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}

	Database struct {
		Path string
	}

	Catalog struct {
		RemoteURL       string        // Remote catalog endpoint; empty means bundled catalog only
		FetchTimeout    time.Duration // Bound on the one-shot catalog fetch
		RefreshEnabled  bool          // Periodic background refresh
		RefreshSchedule string        // Cron format: "0 * * * *" = hourly
		DefaultPageSize int           // Page size for "load more" listing
	}

	Auth struct {
		Mode            AuthMode
		UpstreamURL     string        // Base URL of the remote auth API (upstream mode)
		UpstreamTimeout time.Duration // Bound on login/register calls
		SessionSecret   string
		SessionLifetime time.Duration
		BcryptCost      int
		SecureCookies   bool // Set to false for local dev without HTTPS

		// Rate limiting for local-mode logins
		MaxLoginAttempts int
		RateLimitWindow  time.Duration
		LockoutDuration  time.Duration
	}

	Tasks struct {
		Enabled           bool
		Workers           int
		MaxRetries        int
		RetryDelay        time.Duration
		TaskTimeout       time.Duration
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8288)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Catalog defaults
	v.SetDefault("catalog_remote_url", "")
	v.SetDefault("catalog_fetch_timeout", "10s")
	v.SetDefault("catalog_refresh_enabled", false)
	v.SetDefault("catalog_refresh_schedule", "0 * * * *") // Hourly at :00
	v.SetDefault("catalog_default_page_size", 24)

	// Auth defaults
	v.SetDefault("auth_mode", "none")
	v.SetDefault("auth_upstream_url", "")
	v.SetDefault("auth_upstream_timeout", "10s")
	v.SetDefault("auth_session_secret", "") // Auto-generated if empty
	v.SetDefault("auth_session_lifetime", "24h")
	v.SetDefault("auth_bcrypt_cost", 12)
	v.SetDefault("auth_secure_cookies", true)
	v.SetDefault("auth_max_login_attempts", 5)
	v.SetDefault("auth_rate_limit_window", "15m")
	v.SetDefault("auth_lockout_duration", "30m")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_max_retries", 3)
	v.SetDefault("task_retry_delay", "1m")
	v.SetDefault("task_timeout", "5m")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Catalog: Catalog{
			RemoteURL:       v.GetString("CATALOG_REMOTE_URL"),
			FetchTimeout:    v.GetDuration("CATALOG_FETCH_TIMEOUT"),
			RefreshEnabled:  v.GetBool("CATALOG_REFRESH_ENABLED"),
			RefreshSchedule: v.GetString("CATALOG_REFRESH_SCHEDULE"),
			DefaultPageSize: v.GetInt("CATALOG_DEFAULT_PAGE_SIZE"),
		},
		Auth: Auth{
			Mode:             AuthMode(v.GetString("AUTH_MODE")),
			UpstreamURL:      v.GetString("AUTH_UPSTREAM_URL"),
			UpstreamTimeout:  v.GetDuration("AUTH_UPSTREAM_TIMEOUT"),
			SessionSecret:    v.GetString("AUTH_SESSION_SECRET"),
			SessionLifetime:  v.GetDuration("AUTH_SESSION_LIFETIME"),
			BcryptCost:       v.GetInt("AUTH_BCRYPT_COST"),
			SecureCookies:    v.GetBool("AUTH_SECURE_COOKIES"),
			MaxLoginAttempts: v.GetInt("AUTH_MAX_LOGIN_ATTEMPTS"),
			RateLimitWindow:  v.GetDuration("AUTH_RATE_LIMIT_WINDOW"),
			LockoutDuration:  v.GetDuration("AUTH_LOCKOUT_DURATION"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			Workers:           v.GetInt("TASK_WORKERS"),
			MaxRetries:        v.GetInt("TASK_MAX_RETRIES"),
			RetryDelay:        v.GetDuration("TASK_RETRY_DELAY"),
			TaskTimeout:       v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
	}
}
