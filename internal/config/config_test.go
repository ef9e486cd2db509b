package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel: got %q, want info", cfg.LogLevel)
	}
	if cfg.LogFormat != "console" || !cfg.ConsoleLogs() {
		t.Errorf("LogFormat: got %q, want console", cfg.LogFormat)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr: got %q, want :8080", cfg.HTTP.Addr)
	}
	if cfg.HTTP.MaxUploadBytes != 10<<20 {
		t.Errorf("HTTP.MaxUploadBytes: got %d, want %d", cfg.HTTP.MaxUploadBytes, 10<<20)
	}
	if cfg.Limits.MaxPixels != 40_000_000 {
		t.Errorf("Limits.MaxPixels: got %d, want 40000000", cfg.Limits.MaxPixels)
	}
	if !cfg.Scan.Parallel {
		t.Error("Scan.Parallel should default to true")
	}
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("Load(\"\") = %+v, want defaults %+v", *cfg, *Default())
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeConfig(t, "stripe-orient.yaml", `
logLevel: debug
logFormat: json
http:
  addr: "127.0.0.1:9000"
  maxUploadBytes: 2048
limits:
  maxPixels: 1000
scan:
  parallel: false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want debug", cfg.LogLevel)
	}
	if cfg.ConsoleLogs() {
		t.Error("ConsoleLogs should be false for json format")
	}
	if cfg.HTTP.Addr != "127.0.0.1:9000" {
		t.Errorf("HTTP.Addr: got %q", cfg.HTTP.Addr)
	}
	if cfg.HTTP.MaxUploadBytes != 2048 {
		t.Errorf("HTTP.MaxUploadBytes: got %d, want 2048", cfg.HTTP.MaxUploadBytes)
	}
	if cfg.Limits.MaxPixels != 1000 {
		t.Errorf("Limits.MaxPixels: got %d, want 1000", cfg.Limits.MaxPixels)
	}
	if cfg.Scan.Parallel {
		t.Error("Scan.Parallel should be false")
	}
}

func TestLoad_JSONFilePartial(t *testing.T) {
	path := writeConfig(t, "stripe-orient.json", `{"limits": {"maxPixels": 5}}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Limits.MaxPixels != 5 {
		t.Errorf("Limits.MaxPixels: got %d, want 5", cfg.Limits.MaxPixels)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("unset keys should keep defaults, HTTP.Addr = %q", cfg.HTTP.Addr)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "stripe-orient.yaml", "logLevel: debug\n")
	t.Setenv("STRIPE_ORIENT_LOG_LEVEL", "error")
	t.Setenv("STRIPE_ORIENT_HTTP_ADDR", ":9999")
	t.Setenv("STRIPE_ORIENT_MAX_PIXELS", "77")
	t.Setenv("STRIPE_ORIENT_SCAN_PARALLEL", "false")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel: got %q, want error", cfg.LogLevel)
	}
	if cfg.HTTP.Addr != ":9999" {
		t.Errorf("HTTP.Addr: got %q, want :9999", cfg.HTTP.Addr)
	}
	if cfg.Limits.MaxPixels != 77 {
		t.Errorf("Limits.MaxPixels: got %d, want 77", cfg.Limits.MaxPixels)
	}
	if cfg.Scan.Parallel {
		t.Error("Scan.Parallel should be overridden to false")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/stripe-orient.yaml")
	if err == nil {
		t.Fatal("Load should fail for a missing config file")
	}
	if !strings.Contains(err.Error(), "error reading config file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad log level", "logLevel: degub\n"},
		{"empty log level", "logLevel: \"\"\n"},
		{"bad log format", "logFormat: xml\n"},
		{"empty addr", "http:\n  addr: \"\"\n"},
		{"zero upload", "http:\n  maxUploadBytes: 0\n"},
		{"negative pixels", "limits:\n  maxPixels: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "stripe-orient.yaml", tt.body)
			if _, err := Load(path); err == nil {
				t.Error("Load should reject invalid settings")
			}
		})
	}
}
