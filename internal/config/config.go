// Package config loads announcer settings.
//
// Precedence, lowest to highest: built-in defaults, config.yaml in the
// library directory, environment variables. A .env file in the working
// directory is folded into the environment first, so API credentials
// never need to live in the config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvAPIKey        = "ANNOUNCER_API_KEY"
	EnvChannelID     = "ANNOUNCER_CHANNEL_ID"
	EnvLibraryDir    = "ANNOUNCER_DIR"
	EnvHistoryWindow = "ANNOUNCER_HISTORY_WINDOW"
	EnvMaxResults    = "ANNOUNCER_MAX_RESULTS"
	EnvPort          = "ANNOUNCER_PORT"
)

// Defaults.
const (
	DefaultHistoryWindow = 1
	DefaultMaxResults    = 5
	DefaultPort          = 8080
)

const configFilename = "config.yaml"

// Config holds the operator console settings.
type Config struct {
	APIKey        string `yaml:"api_key"`
	ChannelID     string `yaml:"channel_id"`
	LibraryDir    string `yaml:"-"`
	HistoryWindow int    `yaml:"history_window"`
	MaxResults    int    `yaml:"max_results"`
	Port          int    `yaml:"port"`
}

// Load reads configuration from .env, the library config file and the
// environment. A missing config file is not an error.
func Load() (*Config, error) {
	// Fold a local .env into the environment; absence is fine
	_ = godotenv.Load()

	cfg := &Config{
		HistoryWindow: DefaultHistoryWindow,
		MaxResults:    DefaultMaxResults,
		Port:          DefaultPort,
	}

	libraryDir := os.Getenv(EnvLibraryDir)
	if libraryDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		libraryDir = filepath.Join(homeDir, ".announcer")
	}
	cfg.LibraryDir = libraryDir

	if err := cfg.loadFile(filepath.Join(libraryDir, configFilename)); err != nil {
		return nil, err
	}

	cfg.applyEnv()

	if cfg.HistoryWindow < 0 {
		return nil, fmt.Errorf("history window must be >= 0, got %d", cfg.HistoryWindow)
	}

	return cfg, nil
}

// loadFile merges values from a yaml config file if one exists.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal over defaults so omitted keys keep their values
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// applyEnv overrides file values with environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvChannelID); v != "" {
		c.ChannelID = v
	}
	if v := os.Getenv(EnvHistoryWindow); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.HistoryWindow = n
		} else {
			fmt.Fprintf(os.Stderr, "Warning: ignoring non-numeric %s=%q\n", EnvHistoryWindow, v)
		}
	}
	if v := os.Getenv(EnvMaxResults); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.MaxResults = n
		}
	}
	if v := os.Getenv(EnvPort); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Port = n
		}
	}
}

// Save writes the config file into the library directory.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.LibraryDir, 0755); err != nil {
		return fmt.Errorf("failed to create library directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	path := filepath.Join(c.LibraryDir, configFilename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
