package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerURL != "http://localhost:3000" {
		t.Fatalf("unexpected server url %q", cfg.ServerURL)
	}
	if cfg.SessionTTL != 8*time.Hour {
		t.Fatalf("unexpected session ttl %v", cfg.SessionTTL)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.ServerURL = "https://hr.example.com"
	cfg.RequestTimeout = 3 * time.Second
	cfg.Log.File = "/tmp/hrdesk.log"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != cfg {
		t.Fatalf("expected %+v, got %+v", cfg, loaded)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server_url: https://hr.internal\nlog:\n  level: debug\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerURL != "https://hr.internal" || cfg.Log.Level != "debug" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Log.Format != "text" || cfg.RequestTimeout != 15*time.Second {
		t.Fatalf("expected defaults to survive, got %+v", cfg)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"HRDESK_SERVER_URL":      "https://env.example.com",
		"HRDESK_SESSION_TTL":     "30m",
		"HRDESK_LOG_FORMAT":      "json",
		"HRDESK_REQUEST_TIMEOUT": "",
	}
	cfg, err := ApplyEnv(Default(), func(key string) string { return env[key] })
	if err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if cfg.ServerURL != "https://env.example.com" || cfg.SessionTTL != 30*time.Minute || cfg.Log.Format != "json" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Fatalf("expected default timeout, got %v", cfg.RequestTimeout)
	}

	env["HRDESK_SESSION_TTL"] = "soon"
	if _, err := ApplyEnv(Default(), func(key string) string { return env[key] }); err == nil {
		t.Fatalf("expected error for bad duration")
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("HRDESK_TEST_DOTENV=from-file\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("HRDESK_TEST_DOTENV", "")
	os.Unsetenv("HRDESK_TEST_DOTENV")

	if err := LoadDotEnv(path, filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	if got := os.Getenv("HRDESK_TEST_DOTENV"); got != "from-file" {
		t.Fatalf("expected value from file, got %q", got)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	cfg.ServerURL = "localhost:3000"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for missing scheme")
	}
}
