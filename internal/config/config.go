package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Storage
	DataDir string
	DBPath  string

	// Game definitions
	GamesDir string

	// Elasticsearch history indexing (optional)
	ESEnabled     bool
	ESURL         string
	ESUsername    string
	ESPassword    string
	ESIndexPrefix string

	// Environment
	Environment string // "development" or "production"
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Only return error if file exists but couldn't be loaded
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	// Get working directory for resource paths
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg := &Config{
		Environment:   getEnvWithDefault("ENVIRONMENT", "development"),
		DataDir:       getEnvWithDefault("DATA_DIR", filepath.Join(wd, "data")),
		GamesDir:      getEnvWithDefault("GAMES_DIR", filepath.Join(wd, "games")),
		ESEnabled:     os.Getenv("ES_ENABLED") == "true",
		ESURL:         getEnvWithDefault("ES_URL", "http://localhost:9200"),
		ESUsername:    os.Getenv("ES_USERNAME"),
		ESPassword:    os.Getenv("ES_PASSWORD"),
		ESIndexPrefix: getEnvWithDefault("ES_INDEX_PREFIX", "scratchcraft"),
	}
	cfg.DBPath = getEnvWithDefault("DB_PATH", filepath.Join(cfg.DataDir, "rgs.db"))

	// Validate required fields
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// validate checks if all required configuration is present
func (c *Config) validate() error {
	if c.GamesDir == "" {
		return fmt.Errorf("GAMES_DIR is required")
	}
	if c.ESEnabled && c.ESURL == "" {
		return fmt.Errorf("ES_URL is required when ES_ENABLED is true")
	}
	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// getEnvWithDefault returns environment variable value or default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
