package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DatabaseType    string
	DatabasePath    string
	DatabaseURL     string
	SessionDuration time.Duration
	RememberSecret  string
	RememberTTL     time.Duration
	UploadMaxSize   int64
	UploadsPath     string
	StaticFilesPath string
	TemplatesPath   string
	MigrationsPath  string
	AudioCachePath  string

	// Google sign-in; empty client ID disables the OAuth routes
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// SES email; empty sender disables outbound mail
	EmailFrom       string
	EmailFromName   string
	EscalationEmail string
	AWSRegion       string
	BaseURL         string
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		DatabaseType:    getEnv("DB_TYPE", "sqlite"),
		DatabasePath:    getEnv("DB_PATH", "./ecoquest.db"),
		DatabaseURL:     getEnv("DB_URL", ""),
		SessionDuration: getDuration("SESSION_DURATION", 24*time.Hour),
		RememberSecret:  getEnv("REMEMBER_SECRET", ""),
		RememberTTL:     getDuration("REMEMBER_TTL", 30*24*time.Hour),
		UploadMaxSize:   getInt64("UPLOAD_MAX_SIZE", 5*1024*1024),
		UploadsPath:     getEnv("UPLOADS_PATH", "./static/uploads"),
		StaticFilesPath: getEnv("STATIC_PATH", "./static"),
		TemplatesPath:   getEnv("TEMPLATES_PATH", "./internal/templates"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		AudioCachePath:  getEnv("AUDIO_CACHE_PATH", "./static/audio"),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8080/auth/google/callback"),

		EmailFrom:       getEnv("EMAIL_FROM", ""),
		EmailFromName:   getEnv("EMAIL_FROM_NAME", "EcoQuest"),
		EscalationEmail: getEnv("ESCALATION_EMAIL", ""),
		AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
		BaseURL:         getEnv("BASE_URL", "http://localhost:8080"),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration reads a duration environment variable (e.g. "12h")
func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getInt64 reads an integer environment variable
func getInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}
