package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	AppURL  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret             string // Shared with the identity provider for session JWTs
	IdentityWebhookSecret string // standard-webhooks secret for identity sync events

	// File lifecycle
	Retention      time.Duration // How long soft-deleted files are kept before purge
	PurgeHourUTC   int
	PurgeMinuteUTC int
	RunPurgeInProc bool // Run the daily purge timer inside the server process

	// Email (purge reports)
	EmailFrom    string
	AdminEmail   string
	ResendAPIKey string

	// Observability (optional)
	SentryDSN string

	// Storage (S3-compatible: MinIO, AWS S3, Cloudflare R2, DigitalOcean Spaces, etc.)
	S3Region              string
	S3Bucket              string
	S3AccessKey           string
	S3SecretKey           string
	S3Endpoint            string        // Optional: for S3-compatible services
	S3PresignExpiryGet    time.Duration // Expiry for download URLs - default: 1 hour
	S3PresignExpiryUpload time.Duration // Expiry for upload-slot URLs - default: 15 minutes
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "FileDrive"),
		AppEnv:  envRequired("APP_ENV"), // Required: 'development' or 'production'
		AppURL:  envString("APP_URL", "http://localhost:8090"),
		Port:    envString("PORT", "8090"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/filedrive.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security
		JWTSecret:             envRequired("JWT_SECRET"),
		IdentityWebhookSecret: envString("IDENTITY_WEBHOOK_SECRET", ""),

		// File lifecycle
		Retention:      envDuration("RETENTION", 720*time.Hour), // 30 days
		PurgeHourUTC:   envInt("PURGE_HOUR_UTC", 23),
		PurgeMinuteUTC: envInt("PURGE_MINUTE_UTC", 0),
		RunPurgeInProc: envBool("RUN_PURGE_IN_PROC", true),

		// Email (optional in development, logged instead of sent)
		EmailFrom:    envString("EMAIL_FROM", "noreply@example.com"),
		AdminEmail:   envString("ADMIN_EMAIL", ""),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Storage (S3-compatible - required for uploads)
		S3Region:              envRequired("S3_REGION"),
		S3Bucket:              envRequired("S3_BUCKET"),
		S3AccessKey:           envRequired("S3_ACCESS_KEY"),
		S3SecretKey:           envRequired("S3_SECRET_KEY"),
		S3Endpoint:            envString("S3_ENDPOINT", ""), // Optional: for non-AWS providers
		S3PresignExpiryGet:    envDuration("S3_PRESIGN_EXPIRY_GET", 1*time.Hour),
		S3PresignExpiryUpload: envDuration("S3_PRESIGN_EXPIRY_UPLOAD", 15*time.Minute),
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures all required services are configured for production deployments.
// Development allows some services (like webhooks and email) to run in fallback modes.
func validateProduction(cfg *Config) {
	if cfg.IdentityWebhookSecret == "" {
		slog.Error("production deployment requires IDENTITY_WEBHOOK_SECRET",
			"hint", "set APP_ENV=development to accept unsigned identity events locally")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
