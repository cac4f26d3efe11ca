// Package config provides configuration loading for the interview bot
// server: an optional JSON config file plus environment variables, with the
// file acting as defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the server configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or come from
// environment variables.
type Config struct {
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	Model       string `json:"model,omitempty"`        // Override for the generation model
	TimeoutSecs int    `json:"timeout_secs,omitempty"` // Per-call generation timeout
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}
	if c.TimeoutSecs < 0 {
		return fmt.Errorf("config error: 'timeout_secs' must be non-negative")
	}
	return nil
}

// MergeWithEnv returns a copy of the config with empty fields filled from
// environment variables (DATABASE_URL, GEMINI_API_KEY, GEMINI_MODEL).
func (c *Config) MergeWithEnv() Config {
	result := *c
	if result.DatabaseURL == "" {
		result.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if result.APIKey == "" {
		result.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if result.Model == "" {
		result.Model = os.Getenv("GEMINI_MODEL")
	}
	return result
}
