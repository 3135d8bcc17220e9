package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort    int
	DatabasePath  string
	JWTSecret     string
	BcryptCost    int    // Hash work factor; keep low in tests, high in production
	SnapshotCron  string // Standard cron expression for dashboard snapshots
	AllowedOrigin string // Frontend origin for CORS
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, err
	}

	cost, err := strconv.Atoi(getEnv("BCRYPT_COST", "12"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:    port,
		DatabasePath:  getEnv("DATABASE_PATH", "./coursefeed.db"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change-me"),
		BcryptCost:    cost,
		SnapshotCron:  getEnv("SNAPSHOT_CRON", "@hourly"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
