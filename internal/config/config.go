// Package config provides configuration loading and management for the sync server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/robfig/cron/v3"
)

const (
	// DefaultQueueInterval is the period of the upload/status/release timers
	DefaultQueueInterval = 10 * time.Second

	// DefaultDiscoveryCron runs the full catalog scan nightly
	DefaultDiscoveryCron = "0 2 * * *"

	// dbPasswordEnvVar is consulted when no password file is configured
	dbPasswordEnvVar = "CENTRAL_SYNC_DB_PASSWORD"
)

// Option defines the interface for configuration options
type Option func(*loaderConfig) error

// loaderConfig defines the configuration for loading a configuration
type loaderConfig struct {
	path string
}

// WithConfigPath loads configuration from a YAML file
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		// Resolve symlinks to prevent symlink attacks.
		// Note that this calls filepath.Clean internally.
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}

		// Validate the path to prevent path traversal attacks
		if !filepath.IsAbs(realPath) {
			if !filepath.IsLocal(realPath) {
				return fmt.Errorf("path is not local or contains invalid traversal: %s", path)
			}
		}

		cfg.path = realPath
		return nil
	}
}

// Config represents the root configuration structure
type Config struct {
	Server    ServerConfig    `yaml:"server,omitempty"`
	Database  *DatabaseConfig `yaml:"database,omitempty"`
	Npm       NpmConfig       `yaml:"npm,omitempty"`
	Central   CentralConfig   `yaml:"central,omitempty"`
	Storage   StorageConfig   `yaml:"storage"`
	Scheduler SchedulerConfig `yaml:"scheduler,omitempty"`
}

// ServerConfig defines the operational HTTP server settings
type ServerConfig struct {
	// Address is the listen address, e.g. ":8080"
	Address string `yaml:"address,omitempty"`
}

// DatabaseConfig defines the Postgres connection settings for the sync ledger.
// When absent, the server falls back to the in-memory item store.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Database string `yaml:"database"`

	// Password can be set directly, via PasswordFile, or via the
	// CENTRAL_SYNC_DB_PASSWORD environment variable (file wins, env second)
	Password     string `yaml:"password,omitempty"`
	PasswordFile string `yaml:"passwordFile,omitempty"`

	SSLMode  string `yaml:"sslMode,omitempty"`
	MaxConns int32  `yaml:"maxConns,omitempty"`
}

// NpmConfig defines the source registry settings
type NpmConfig struct {
	// BaseURL is the npm registry endpoint; empty means the public registry
	BaseURL string `yaml:"baseUrl,omitempty"`

	// MaxRetries bounds latest-version lookups
	MaxRetries uint `yaml:"maxRetries,omitempty"`
}

// CentralConfig defines the target repository settings
type CentralConfig struct {
	// RepoBaseURL is the public repository used for the published check
	RepoBaseURL string `yaml:"repoBaseUrl,omitempty"`

	// APIBaseURL is the staging API endpoint
	APIBaseURL string `yaml:"apiBaseUrl,omitempty"`
}

// StorageConfig defines where local artifacts live
type StorageConfig struct {
	// Root is the local repository directory holding bundles and metadata
	Root string `yaml:"root"`
}

// SchedulerConfig defines the pipeline timer settings
type SchedulerConfig struct {
	// QueueInterval is the period of the upload/status/release timers
	QueueInterval string `yaml:"queueInterval,omitempty"`

	// DiscoveryCron is the cron expression for the full catalog scan
	DiscoveryCron string `yaml:"discoveryCron,omitempty"`
}

// Load reads and validates a configuration
func Load(opts ...Option) (*Config, error) {
	loader := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loader); err != nil {
			return nil, err
		}
	}
	if loader.path == "" {
		return nil, fmt.Errorf("no configuration source provided")
	}

	data, err := os.ReadFile(loader.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Scheduler.QueueInterval == "" {
		c.Scheduler.QueueInterval = DefaultQueueInterval.String()
	}
	if c.Scheduler.DiscoveryCron == "" {
		c.Scheduler.DiscoveryCron = DefaultDiscoveryCron
	}
}

// Validate checks the configuration for inconsistencies
func (c *Config) Validate() error {
	if c.Storage.Root == "" {
		return fmt.Errorf("storage.root is required")
	}

	if _, err := time.ParseDuration(c.Scheduler.QueueInterval); err != nil {
		return fmt.Errorf("invalid scheduler.queueInterval %q: %w", c.Scheduler.QueueInterval, err)
	}
	if _, err := cron.ParseStandard(c.Scheduler.DiscoveryCron); err != nil {
		return fmt.Errorf("invalid scheduler.discoveryCron %q: %w", c.Scheduler.DiscoveryCron, err)
	}

	if c.Database != nil {
		if c.Database.Host == "" {
			return fmt.Errorf("database.host is required")
		}
		if c.Database.Port == 0 {
			return fmt.Errorf("database.port is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database.user is required")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database.database is required")
		}
	}

	return nil
}

// QueueInterval returns the parsed queue timer period
func (c *Config) QueueInterval() time.Duration {
	d, err := time.ParseDuration(c.Scheduler.QueueInterval)
	if err != nil {
		return DefaultQueueInterval
	}
	return d
}

// GetPassword resolves the database password using the configured priority
// order: password file, environment variable, inline config value.
func (d *DatabaseConfig) GetPassword() (string, error) {
	if d.PasswordFile != "" {
		data, err := os.ReadFile(d.PasswordFile)
		if err != nil {
			return "", fmt.Errorf("failed to read password file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	if pw := os.Getenv(dbPasswordEnvVar); pw != "" {
		return pw, nil
	}
	return d.Password, nil
}

// ConnectionString builds a key=value connection string for the pool
func (d *DatabaseConfig) ConnectionString() (string, error) {
	password, err := d.GetPassword()
	if err != nil {
		return "", err
	}

	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "require"
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, password, d.Database, sslMode,
	), nil
}

// MigrationConnectionString builds a URL for the migration tooling
func (d *DatabaseConfig) MigrationConnectionString() (string, error) {
	password, err := d.GetPassword()
	if err != nil {
		return "", err
	}

	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "require"
	}

	return fmt.Sprintf(
		"pgx5://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, password, d.Host, d.Port, d.Database, sslMode,
	), nil
}
