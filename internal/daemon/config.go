// Package daemon manages the ritual daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all daemon configuration.
type Config struct {
	API       APIConfig       `toml:"api"`
	Data      DataConfig      `toml:"data"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Logging   LoggingConfig   `toml:"logging"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// DataConfig controls where the state database lives.
type DataConfig struct {
	Dir string `toml:"dir"`
}

// TelemetryConfig controls observability endpoints.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	homeDir := ritualHome()
	return Config{
		API: APIConfig{
			Host:        "127.0.0.1",
			Port:        7979,
			CORSOrigins: []string{"*"},
		},
		Data: DataConfig{
			Dir: homeDir,
		},
		Telemetry: TelemetryConfig{
			Prometheus: true,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(homeDir, "ritual.log"),
		},
	}
}

// LoadConfig reads config from ~/.ritual/config.toml, falling back to
// defaults when no file exists yet.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(ritualHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Data.Dir == "" {
		cfg.Data.Dir = ritualHome()
	}

	return cfg, nil
}

// SaveConfig writes the config to ~/.ritual/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(ritualHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// ritualHome returns the ritual data directory.
func ritualHome() string {
	if env := os.Getenv("RITUAL_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".ritual")
}

// RitualHome is exported for use by other packages.
func RitualHome() string {
	return ritualHome()
}
