package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// DefaultSessionMaxAge matches the 30-day session lifetime expected by the
// front-end clients.
const DefaultSessionMaxAge = 30 * 24 * time.Hour

// devSessionSecret is only acceptable outside production.
const devSessionSecret = "-- DEV SESSION SECRET; CHANGE ME --"

// Config holds the application configuration
type Config struct {
	// Database connection string (DSN)
	DatabaseURL string

	// Server bind address (host:port)
	ServerAddr string

	// Maximum database connection pool size
	MaxDBConnections int

	// SessionSecret signs session bearer tokens
	SessionSecret string

	// SessionMaxAge bounds token validity
	SessionMaxAge time.Duration

	// Production toggles transport hardening (secure cookie hints, strict CORS)
	Production bool

	// ImageStoragePath is the local directory for uploaded product images
	ImageStoragePath string

	// CORSOrigins lists the front-end origins allowed to send credentials
	CORSOrigins []string

	// Enable debug logging
	Debug bool
}

// Load reads configuration from environment variables with fallback defaults
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:      getEnv("DATABASE_URL", "file:./bizdir.db"),
		ServerAddr:       getEnv("SERVER_ADDR", "0.0.0.0:7000"),
		MaxDBConnections: getEnvInt("MAX_DB_CONNECTIONS", 25),
		SessionSecret:    getEnv("SESSION_SECRET", devSessionSecret),
		SessionMaxAge:    time.Duration(getEnvInt("SESSION_MAX_AGE", int(DefaultSessionMaxAge/time.Second))) * time.Second,
		Production:       getEnvBool("PRODUCTION", false),
		ImageStoragePath: getEnv("IMAGE_STORAGE_PATH", "public/images"),
		CORSOrigins:      splitList(getEnv("CORS_ORIGINS", "")),
		Debug:            getEnvBool("DEBUG", false),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.SessionMaxAge <= 0 {
		return nil, fmt.Errorf("SESSION_MAX_AGE must be positive")
	}

	// The fallback secret is a development convenience only.
	if cfg.Production && cfg.SessionSecret == devSessionSecret {
		return nil, fmt.Errorf("SESSION_SECRET is required in production")
	}

	return cfg, nil
}

// splitList parses a comma-separated env value into a trimmed slice.
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}
