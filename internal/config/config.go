// Package config loads the YAML configuration file for the wallet server.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DatabaseConfig selects the record store backend.
type DatabaseConfig struct {
	// DSN is a SQLite file path or file: URL, or a PostgreSQL DSN.
	DSN string `yaml:"dsn"`
}

// LogConfig controls log output.
type LogConfig struct {
	Level string `yaml:"level"` // logrus level name; default info.
	File  string `yaml:"file"`  // Optional rotating log file; empty logs to stderr.

	MaxSizeMB  int `yaml:"max_size_mb"` // Rotation threshold per file.
	MaxBackups int `yaml:"max_backups"` // Rotated files to keep.
	MaxAgeDays int `yaml:"max_age_days"`
}

// Config is the root configuration document.
type Config struct {
	Listen   string         `yaml:"listen"` // HTTP listen address.
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

// Default returns the configuration used when no file is present: a local
// SQLite store next to the binary and a loopback listener.
func Default() Config {
	return Config{
		Listen: "127.0.0.1:8990",
		Database: DatabaseConfig{
			DSN: "file:data/cardkeep.db",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  20,
			MaxBackups: 3,
			MaxAgeDays: 30,
		},
	}
}

// Load reads the config file at path, applying defaults for absent fields.
// A missing file is not an error; the defaults apply. CARDKEEP_DSN
// overrides the database DSN when set.
func Load(path string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		data, errRead := os.ReadFile(path)
		switch {
		case errRead == nil:
			if errDecode := yaml.Unmarshal(data, &cfg); errDecode != nil {
				return Config{}, fmt.Errorf("config: parse %s: %w", path, errDecode)
			}
		case os.IsNotExist(errRead):
			// Defaults apply.
		default:
			return Config{}, fmt.Errorf("config: read %s: %w", path, errRead)
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("CARDKEEP_DSN")); dsn != "" {
		cfg.Database.DSN = dsn
	}
	if strings.TrimSpace(cfg.Listen) == "" {
		cfg.Listen = Default().Listen
	}
	if strings.TrimSpace(cfg.Database.DSN) == "" {
		cfg.Database.DSN = Default().Database.DSN
	}
	return cfg, nil
}
