package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseFile string // Optional: path to SQLite database file (default: ./chatd.db)
	Env          string // Environment (dev, staging, prod) (default: dev)
	LogLevel     string // Log level (debug, info, warn, error) (default: info)
	LogFormat    string // Log format (json, text) (default: json)
	Port         int    // HTTP server port (default: 8080)

	TokenSecret string        // Required in prod: HMAC secret for session tokens
	TokenIssuer string        // Optional: issuer claim for session tokens (default: chatd)
	TokenTTL    time.Duration // Optional: session token lifetime (default: 24h)

	BlobDriver string // Blob storage driver (fs, s3) (default: fs)
	UploadsDir string // Avatar directory for the fs driver (default: ./uploads)

	S3Endpoint  string // S3-compatible endpoint host:port
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string // Bucket for avatars (default: chatd-avatars)
	S3UseSSL    bool

	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		DatabaseFile: getEnvOrDefault("CHATD_DATABASE_FILE", "chatd.db"),
		Env:          getEnvOrDefault("CHATD_ENV", "dev"),
		LogLevel:     getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:    getEnvOrDefault("LOG_FORMAT", "json"),
		Port:         getEnvIntOrDefault("CHATD_PORT", 8080),

		TokenSecret: getEnvOrDefault("CHATD_TOKEN_SECRET", "dev-only-secret"),
		TokenIssuer: getEnvOrDefault("CHATD_TOKEN_ISSUER", "chatd"),
		TokenTTL:    getEnvDurationOrDefault("CHATD_TOKEN_TTL", 24*time.Hour),

		BlobDriver: getEnvOrDefault("CHATD_BLOB_DRIVER", "fs"),
		UploadsDir: getEnvOrDefault("CHATD_UPLOADS_DIR", "uploads"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    getEnvOrDefault("S3_BUCKET", "chatd-avatars"),
		S3UseSSL:    getEnvBoolOrDefault("S3_USE_SSL", false),

		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
