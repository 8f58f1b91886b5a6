// ABOUTME: Marketplace API credential and endpoint configuration
// ABOUTME: Handles config storage at XDG paths, env overrides, and session IDs
package api

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/oklog/ulid/v2"
)

// Config stores marketplace API endpoint and credentials.
type Config struct {
	BaseURL        string `json:"base_url"`
	Token          string `json:"token"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
}

// ConfigDir returns the XDG-compliant directory for haggle configuration.
func ConfigDir() string {
	return filepath.Join(xdg.DataHome, "haggle")
}

// ConfigPath returns the XDG-compliant path for the API config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "api-config.json")
}

// LoadConfig loads API configuration from the XDG data directory.
// Returns defaults if the file is absent. Environment variables override
// file values:
// - HAGGLE_API_URL
// - HAGGLE_API_TOKEN
// - HAGGLE_API_TIMEOUT (seconds).
func LoadConfig() (*Config, error) {
	path := ConfigPath()

	cfg := &Config{
		TimeoutSeconds: 15,
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to open api config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := json.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode api config: %w", err)
	}

	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 15
	}
	applyEnvOverrides(cfg)

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if url := os.Getenv("HAGGLE_API_URL"); url != "" {
		cfg.BaseURL = url
	}
	if token := os.Getenv("HAGGLE_API_TOKEN"); token != "" {
		cfg.Token = token
	}
	if timeout := os.Getenv("HAGGLE_API_TIMEOUT"); timeout != "" {
		var secs int
		if _, err := fmt.Sscanf(timeout, "%d", &secs); err == nil && secs > 0 {
			cfg.TimeoutSeconds = secs
		}
	}
}

// SaveConfig saves API configuration with restricted permissions.
func SaveConfig(cfg *Config) error {
	path := ConfigPath()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// IsConfigured checks whether the client can reach the marketplace API.
func (c *Config) IsConfigured() bool {
	return c.BaseURL != "" && c.Token != ""
}

// NewSessionID generates a ULID identifying one client session. Sent as a
// correlation header on every request.
func NewSessionID() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
