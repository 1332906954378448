package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Discord configuration
	Token   string
	AppID   string
	GuildID string

	// Storage
	StorageType string // "sqlite", "file" or "memory"
	DataDir     string

	// Catalog
	CatalogPath string

	// Elasticsearch transaction audit (optional)
	AuditURL      string
	AuditUsername string
	AuditPassword string

	// Sweep interval for expired powerups, in minutes
	SweepIntervalMinutes int

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
		Token:                os.Getenv("DISCORD_TOKEN"),
		AppID:                os.Getenv("APP_ID"),
		GuildID:              os.Getenv("GUILD_ID"),
		StorageType:          getEnvWithDefault("STORAGE_TYPE", "sqlite"),
		DataDir:              getEnvWithDefault("DATA_DIR", filepath.Join(wd, "data")),
		CatalogPath:          getEnvWithDefault("CATALOG_PATH", filepath.Join(wd, "catalog.json")),
		AuditURL:             os.Getenv("AUDIT_ES_URL"),
		AuditUsername:        os.Getenv("AUDIT_ES_USERNAME"),
		AuditPassword:        os.Getenv("AUDIT_ES_PASSWORD"),
		SweepIntervalMinutes: getEnvIntWithDefault("SWEEP_INTERVAL_MINUTES", 15),
		Environment:          getEnvWithDefault("ENVIRONMENT", "development"),
	}

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
	if c.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.AppID == "" {
		return fmt.Errorf("APP_ID is required")
	}
	switch c.StorageType {
	case "sqlite", "file", "memory":
	default:
		return fmt.Errorf("STORAGE_TYPE must be sqlite, file or memory, got %q", c.StorageType)
	}
	if c.SweepIntervalMinutes <= 0 {
		return fmt.Errorf("SWEEP_INTERVAL_MINUTES must be positive")
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

// getEnvIntWithDefault returns an integer environment variable or default
func getEnvIntWithDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
