// ABOUTME: Tests for API configuration loading
// ABOUTME: Verifies env overrides, defaults, and session ID generation
package api

import (
	"testing"
)

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HAGGLE_API_URL", "https://api.example.com")
	t.Setenv("HAGGLE_API_TOKEN", "tok-123")
	t.Setenv("HAGGLE_API_TIMEOUT", "30")

	cfg := &Config{TimeoutSeconds: 15}
	applyEnvOverrides(cfg)

	if cfg.BaseURL != "https://api.example.com" {
		t.Errorf("base url override not applied: %s", cfg.BaseURL)
	}
	if cfg.Token != "tok-123" {
		t.Errorf("token override not applied: %s", cfg.Token)
	}
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("timeout override not applied: %d", cfg.TimeoutSeconds)
	}
}

func TestIsConfigured(t *testing.T) {
	cfg := &Config{}
	if cfg.IsConfigured() {
		t.Error("empty config should not be configured")
	}

	cfg.BaseURL = "https://api.example.com"
	if cfg.IsConfigured() {
		t.Error("config without token should not be configured")
	}

	cfg.Token = "tok"
	if !cfg.IsConfigured() {
		t.Error("config with url and token should be configured")
	}
}

func TestNewSessionID(t *testing.T) {
	a := NewSessionID()
	b := NewSessionID()

	if len(a) != 26 {
		t.Errorf("expected 26-char ULID, got %d chars", len(a))
	}
	if a == b {
		t.Error("session IDs should be unique")
	}
}
