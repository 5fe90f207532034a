// Package config collects the environment-driven settings into one value that
// main constructs and passes down, instead of each component reading the
// environment on its own.
package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds process-wide settings.
type Config struct {
	Addr            string
	MongoURI        string
	MongoDatabase   string
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	LogLevel        string
}

// Load reads configuration from the environment, loading a .env file first if
// one is present. JWT_SECRET has no default; signing tokens with a known key
// would defeat authentication, so Load fails instead.
func Load() (Config, error) {
	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return Config{}, errors.New("JWT_SECRET must be set")
	}

	return Config{
		Addr:            ":" + getEnv("PORT", "8080"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnv("MONGO_DATABASE", "maritime"),
		JWTSecret:       secret,
		AccessTokenTTL:  getDuration("JWT_EXPIRY", 24*time.Hour),
		RefreshTokenTTL: getDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return fallback
}
