// Package config provides configuration management for the application.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/cinevault/cinevault/internal/constants"
)

const (
	// Default configuration file name
	defaultConfigFile = "config.json"
)

// Config holds the application configuration.
// It supports loading from environment variables and a JSON file;
// environment variables take precedence.
type Config struct {
	// Storage
	Driver       string `json:"DB_DRIVER"`    // "sqlite" or "mysql"
	DatabasePath string `json:"DATABASE_PATH"` // sqlite file path
	MySQLDSN     string `json:"MYSQL_DSN"`     // user:pass@tcp(host:port)/dbname
	JournalPath  string `json:"JOURNAL_PATH"`  // bolthold journal file

	// HTTP
	Port       string `json:"PORT"`
	AdminToken string `json:"ADMIN_TOKEN"` // guards mutating endpoints when set

	// External metadata
	OMDbAPIKey string `json:"OMDB_API_KEY"`

	// Cache settings
	CacheSize int           `json:"CACHE_SIZE"`
	CacheTTL  time.Duration `json:"CACHE_TTL"`

	// Retention for journal entries and persistent metadata cache
	RetentionHours int `json:"RETENTION_HOURS"`
}

// Load reads configuration from environment variables and an optional
// JSON file. Returns an error if the configuration is invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Driver:         constants.DefaultDriver,
		DatabasePath:   constants.DefaultDatabaseFile,
		JournalPath:    constants.DefaultJournalFile,
		Port:           constants.DefaultPort,
		CacheSize:      constants.DefaultCacheSize,
		CacheTTL:       time.Duration(constants.DefaultCacheTTL) * time.Hour,
		RetentionHours: constants.DefaultRetentionHours,
	}

	// File first so that environment variables win.
	configFile := getEnvOrDefault("CONFIG_FILE", defaultConfigFile)
	if err := cfg.loadFromFile(configFile); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromEnv loads configuration from environment variables.
func (c *Config) loadFromEnv() {
	if v := os.Getenv("DB_DRIVER"); v != "" {
		c.Driver = v
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("MYSQL_DSN"); v != "" {
		c.MySQLDSN = v
	}
	if v := os.Getenv("JOURNAL_PATH"); v != "" {
		c.JournalPath = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("ADMIN_TOKEN"); v != "" {
		c.AdminToken = v
	}
	if v := os.Getenv("OMDB_API_KEY"); v != "" {
		c.OMDbAPIKey = v
	}
	if v := os.Getenv("CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.CacheSize = n
		}
	}
	if v := os.Getenv("RETENTION_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.RetentionHours = n
		}
	}
}

// loadFromFile loads configuration from a JSON file.
func (c *Config) loadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, c)
}

// Validate checks if the configuration is valid and fills in defaults
// for missing optional fields.
func (c *Config) Validate() error {
	switch c.Driver {
	case "sqlite":
		if c.DatabasePath == "" {
			c.DatabasePath = constants.DefaultDatabaseFile
		}
	case "mysql":
		if c.MySQLDSN == "" {
			return fmt.Errorf("mysql driver selected but MYSQL_DSN is empty")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Driver)
	}

	if c.CacheSize <= 0 {
		c.CacheSize = constants.DefaultCacheSize
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = time.Duration(constants.DefaultCacheTTL) * time.Hour
	}
	if c.RetentionHours <= 0 {
		c.RetentionHours = constants.DefaultRetentionHours
	}

	return nil
}

// Retention returns the configured retention period as a duration.
func (c *Config) Retention() time.Duration {
	return time.Duration(c.RetentionHours) * time.Hour
}

// getEnvOrDefault returns environment variable value or default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
