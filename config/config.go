// Package config loads engine configuration from a YAML file with
// environment-variable overrides for credentials.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration document.
type Config struct {
	Provider ProviderConfig `yaml:"provider"`
	Store    StoreConfig    `yaml:"store"`
	Executor ExecutorConfig `yaml:"executor"`
	Log      LogConfig      `yaml:"log"`
}

// ProviderConfig selects and credentials the LLM provider.
type ProviderConfig struct {
	// Name is "openai" or "anthropic".
	Name   string `yaml:"name"`
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// StoreConfig selects the chat store backend.
type StoreConfig struct {
	// Driver is "memory", "sqlite" or "redis".
	Driver string `yaml:"driver"`
	// Path is the database file for the sqlite driver.
	Path string `yaml:"path"`
	// Redis connection settings for the redis driver.
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
}

// ExecutorConfig sizes the tool worker pool.
type ExecutorConfig struct {
	Workers        int `yaml:"workers"`
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// LogConfig controls log verbosity and encoding.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or text
}

// Default returns a configuration with sensible local-development values.
func Default() *Config {
	return &Config{
		Provider: ProviderConfig{Name: "openai"},
		Store:    StoreConfig{Driver: "memory"},
		Executor: ExecutorConfig{Workers: 4, TimeoutSeconds: 30},
		Log:      LogConfig{Level: "info", Format: "json"},
	}
}

// Load reads the YAML file at path, overlays environment variables and
// validates the result. An empty path skips the file and uses defaults
// plus environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays credentials from the environment. Environment always
// wins over the file so keys never need to live on disk.
func (c *Config) applyEnv() {
	switch c.Provider.Name {
	case "anthropic":
		if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
			c.Provider.APIKey = key
		}
	default:
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			c.Provider.APIKey = key
		}
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		c.Store.RedisAddr = addr
	}
}

// Validate checks the configuration for unserviceable combinations.
func (c *Config) Validate() error {
	switch c.Provider.Name {
	case "openai", "anthropic":
	default:
		return fmt.Errorf("unknown provider %q", c.Provider.Name)
	}
	if c.Provider.APIKey == "" {
		return fmt.Errorf("missing API key for provider %q", c.Provider.Name)
	}

	switch c.Store.Driver {
	case "memory":
	case "sqlite":
		if c.Store.Path == "" {
			return fmt.Errorf("sqlite store requires a path")
		}
	case "redis":
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("redis store requires an address")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	if c.Executor.Workers < 0 {
		return fmt.Errorf("executor workers must be non-negative")
	}
	if c.Executor.TimeoutSeconds < 0 {
		return fmt.Errorf("executor timeout must be non-negative")
	}
	return nil
}

// ToolTimeout returns the executor timeout as a duration.
func (c *Config) ToolTimeout() time.Duration {
	return time.Duration(c.Executor.TimeoutSeconds) * time.Second
}
