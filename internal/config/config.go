// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"time"
)

// Backend names accepted by STORAGE_BACKEND.
const (
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

type Config struct {
	// HTTP Server
	Port string

	// Backend selection
	StorageBackend string

	// SQLite
	SQLitePath string

	// MongoDB
	MongoURI      string
	MongoDatabase string

	// Auth
	JWTSecret     string
	TokenDuration time.Duration

	// External PDF renderer
	PDFServiceURL string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8000"),
		StorageBackend: getEnv("STORAGE_BACKEND", BackendSQLite),
		SQLitePath:     getEnv("SQLITE_DB_PATH", "./data/splitledger.db"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017/"),
		MongoDatabase:  getEnv("MONGO_DATABASE", "splitwise_db"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		TokenDuration:  getEnvDuration("TOKEN_DURATION", 24*time.Hour),
		PDFServiceURL:  getEnv("PDF_SERVICE_URL", "http://localhost:8080/generate-pdf"),
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendSQLite, BackendMongo, BackendMemory:
	default:
		return fmt.Errorf("invalid storage backend %q: must be one of sqlite, mongo, memory", c.StorageBackend)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
