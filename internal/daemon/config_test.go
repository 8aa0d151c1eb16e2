package daemon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("API.Host = %q, want %q", cfg.API.Host, "127.0.0.1")
	}
	if cfg.API.Port != 7979 {
		t.Errorf("API.Port = %d, want %d", cfg.API.Port, 7979)
	}
	if cfg.Data.Dir == "" {
		t.Error("Data.Dir should default to the ritual home")
	}
	if !cfg.Telemetry.Prometheus {
		t.Error("Telemetry.Prometheus should default to enabled")
	}
}

func TestRitualHomeOverride(t *testing.T) {
	t.Setenv("RITUAL_HOME", "/tmp/ritual-test-home")

	if got := RitualHome(); got != "/tmp/ritual-test-home" {
		t.Errorf("RitualHome() = %q, want the RITUAL_HOME override", got)
	}
}

func TestConfigRoundtrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RITUAL_HOME", dir)

	cfg := DefaultConfig()
	cfg.API.Port = 8081
	cfg.Telemetry.Prometheus = false
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("save config: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.toml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if loaded.API.Port != 8081 {
		t.Errorf("loaded port = %d, want 8081", loaded.API.Port)
	}
	if loaded.Telemetry.Prometheus {
		t.Error("loaded config should have telemetry disabled")
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("RITUAL_HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.API.Port != DefaultConfig().API.Port {
		t.Errorf("missing file should load defaults, got port %d", cfg.API.Port)
	}
}
