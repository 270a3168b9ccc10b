package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName    string
	HTTPPort       string
	PostgresDSN    string
	IdempotencyTTL time.Duration
}

func Load() (Config, error) {
	// Local development reads a .env file when present; real environments set
	// variables directly and the missing file is not an error.
	_ = godotenv.Load()

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "billcore"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	return Config{
		ServiceName:    service,
		HTTPPort:       port,
		PostgresDSN:    os.Getenv("POSTGRES_DSN"),
		IdempotencyTTL: envDuration("IDEMPOTENCY_TTL", 7*24*time.Hour),
	}, nil
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
