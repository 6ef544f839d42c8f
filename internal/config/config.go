package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, read from the environment.
// A .env file in the working directory is loaded first if present.
type Config struct {
	Port         string
	BaseURL      string // Absolute origin used to build public media URLs
	DatabasePath string
	JWTSecret    string
	CookieSecure bool
	BcryptCost   int

	// Object storage. Backend is "local" or "s3".
	StorageBackend string
	MediaDir       string // Local backend root directory
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string
	S3UseSSL       bool

	// Transcoding policy defaults.
	ImageQuality int // AVIF quality, 1-100
	ImageSpeed   int // Encoder speed, 0 (smallest) to 10 (fastest)

	// Outbound mail (optional; contact notifications are skipped when unset).
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	MailFrom string
	MailTo   string

	// Presence badge (optional).
	PresenceURL string
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:           envOrDefault("PORT", "8080"),
		BaseURL:        envOrDefault("BASE_URL", "http://localhost:8080"),
		DatabasePath:   envOrDefault("DATABASE_PATH", "portfolio.db"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		CookieSecure:   os.Getenv("COOKIE_SECURE") != "false",
		BcryptCost:     12,
		StorageBackend: envOrDefault("STORAGE_BACKEND", "local"),
		MediaDir:       envOrDefault("MEDIA_DIR", "media"),
		S3Endpoint:     os.Getenv("S3_ENDPOINT"),
		S3AccessKey:    os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:    os.Getenv("S3_SECRET_KEY"),
		S3UseSSL:       os.Getenv("S3_USE_SSL") != "false",
		ImageQuality:   80,
		ImageSpeed:     4,
		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPPort:       envOrDefault("SMTP_PORT", "587"),
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPass:       os.Getenv("SMTP_PASS"),
		MailFrom:       os.Getenv("MAIL_FROM"),
		MailTo:         os.Getenv("MAIL_TO"),
		PresenceURL:    os.Getenv("PRESENCE_URL"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
		}
		if parsed < 4 || parsed > 14 {
			return nil, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", parsed)
		}
		cfg.BcryptCost = parsed
	}

	if v := os.Getenv("IMAGE_QUALITY"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 100 {
			return nil, fmt.Errorf("IMAGE_QUALITY must be an integer between 1 and 100")
		}
		cfg.ImageQuality = parsed
	}

	if v := os.Getenv("IMAGE_SPEED"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 || parsed > 10 {
			return nil, fmt.Errorf("IMAGE_SPEED must be an integer between 0 and 10")
		}
		cfg.ImageSpeed = parsed
	}

	if cfg.StorageBackend == "s3" && (cfg.S3Endpoint == "" || cfg.S3AccessKey == "" || cfg.S3SecretKey == "") {
		return nil, fmt.Errorf("S3_ENDPOINT, S3_ACCESS_KEY and S3_SECRET_KEY are required for the s3 storage backend")
	}

	return cfg, nil
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
