package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.DefaultLocale != "vi" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.PersonalizeURL != cfg.APIBaseURL+"/api" {
		t.Fatalf("PersonalizeURL = %q, want derived from %q", cfg.PersonalizeURL, cfg.APIBaseURL)
	}
	if cfg.Addr() != ":8080" {
		t.Fatalf("Addr = %q", cfg.Addr())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com/")
	t.Setenv("PERSONALIZATION_BASE_URL", "https://edge.example.com/api/")
	t.Setenv("SECURE_COOKIES", "true")
	t.Setenv("SMTP_USER", "me@example.com")
	t.Setenv("SMTP_PASS", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBaseURL != "https://api.example.com" {
		t.Fatalf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.PersonalizeURL != "https://edge.example.com/api" {
		t.Fatalf("PersonalizeURL = %q", cfg.PersonalizeURL)
	}
	if !cfg.SecureCookies || !cfg.SMTP.Enabled() {
		t.Fatalf("flags not parsed: %+v", cfg)
	}
}

func TestLoadRejectsBadURL(t *testing.T) {
	t.Setenv("API_BASE_URL", "ftp://nowhere")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "API_BASE_URL") {
		t.Fatalf("expected API_BASE_URL in error, got %v", err)
	}
}

func TestLoadParseError(t *testing.T) {
	t.Setenv("SECURE_COOKIES", "maybe")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env error, got %v", err)
	}
}
