package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"github.com/ilinovom/posts-browser/internal/repository"
)

// DefaultEnvFile is loaded by FromEnv when present.
const DefaultEnvFile = ".env"

// Config holds runtime configuration loaded from the environment.
type Config struct {
	APIBaseURL   string `env:"POSTS_API_URL" envDefault:"https://jsonplaceholder.typicode.com"`
	Storage      string `env:"POSTS_STORAGE" envDefault:"file"`
	StoragePath  string `env:"POSTS_STORAGE_PATH" envDefault:"posts-browser.json"`
	DBConnString string `env:"DATABASE_URL"`
	// StorageQuota caps a single stored value in bytes, 0 disables it.
	StorageQuota int    `env:"POSTS_STORAGE_QUOTA" envDefault:"0"`
	ListenAddr   string `env:"POSTS_LISTEN_ADDR" envDefault:":8080"`
	LogLevel     string `env:"POSTS_LOG_LEVEL" envDefault:"info"`
}

// FromEnv loads configuration from environment variables. Values from a
// .env file in the working directory are applied first but never override
// variables that are already set.
func FromEnv() (*Config, error) {
	return Load(DefaultEnvFile)
}

// Load is FromEnv with an explicit dotenv path. An empty path or a missing
// file is ignored.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	c := &Config{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks values that env parsing cannot.
func (c *Config) Validate() error {
	c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
	switch c.Storage {
	case repository.DriverFile, repository.DriverBolt, repository.DriverSQLite, repository.DriverMemory:
		if c.Storage != repository.DriverMemory && strings.TrimSpace(c.StoragePath) == "" {
			return fmt.Errorf("POSTS_STORAGE_PATH is required for %s storage", c.Storage)
		}
	case repository.DriverPostgres:
		if c.DBConnString == "" {
			return errors.New("DATABASE_URL is not set")
		}
	default:
		return fmt.Errorf("unknown POSTS_STORAGE %q", c.Storage)
	}
	if c.StorageQuota < 0 {
		return errors.New("POSTS_STORAGE_QUOTA must not be negative")
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("POSTS_LOG_LEVEL: %w", err)
	}
	return nil
}

// StoreOptions maps the storage settings to repository options.
func (c *Config) StoreOptions() repository.Options {
	return repository.Options{
		Driver: c.Storage,
		Path:   c.StoragePath,
		DSN:    c.DBConnString,
		Quota:  c.StorageQuota,
	}
}
