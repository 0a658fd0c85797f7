package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all aligncheck configuration.
type Config struct {
	// Data source the battery runs against
	Database DatabaseConfig `yaml:"database"`

	// Score weighting and next-step thresholds
	Scoring ScoringConfig `yaml:"scoring"`

	// Ordered keyword -> recommendation table.
	// Empty means the built-in table is used.
	Recommendations []RecommendationRule `yaml:"recommendations,omitempty"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// DefaultConfigPath is the config file read when --config is not given.
const DefaultConfigPath = "aligncheck.yaml"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:       DriverSQLite,
			Path:         "aime_knowledge.db",
			QueryTimeout: "30s",
		},

		Scoring: ScoringConfig{
			ErrorPenalty:        0.8,
			ReviewThreshold:     0.8,
			MaxRecommendedSteps: 3,
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Dir:    filepath.Join(".aligncheck", "logs"),
		},
	}
}

// Load loads configuration from a YAML file.
// A .env file next to the working directory is applied before env overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := loadDotEnv(); err != nil {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Defaults if config file doesn't exist
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func loadDotEnv() error {
	if _, err := os.Stat(".env"); err == nil {
		return godotenv.Load(".env")
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if driver := os.Getenv("ALIGNCHECK_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}

	// ALIGNCHECK_DB is a file path for SQLite drivers and a DSN otherwise
	if target := os.Getenv("ALIGNCHECK_DB"); target != "" {
		c.Database.SetTarget(target)
	}

	if level := os.Getenv("ALIGNCHECK_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// GetQueryTimeout returns the per-check query timeout as a duration.
func (c *Config) GetQueryTimeout() time.Duration {
	d, err := time.ParseDuration(c.Database.QueryTimeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Scoring.Validate(); err != nil {
		return err
	}
	for i, rule := range c.Recommendations {
		if rule.Keyword == "" {
			return fmt.Errorf("recommendation %d: keyword is empty", i)
		}
		if rule.Text == "" {
			return fmt.Errorf("recommendation %q: text is empty", rule.Keyword)
		}
	}
	return nil
}
