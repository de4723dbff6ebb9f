package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, errLoad := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if errLoad != nil {
		t.Fatalf("load: %v", errLoad)
	}
	if cfg.Listen != Default().Listen {
		t.Fatalf("listen = %q, want default", cfg.Listen)
	}
	if cfg.Database.DSN != Default().Database.DSN {
		t.Fatalf("dsn = %q, want default", cfg.Database.DSN)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "listen: \"0.0.0.0:9000\"\ndatabase:\n  dsn: \"file:wallet.db\"\nlog:\n  level: debug\n"
	if errWrite := os.WriteFile(path, []byte(body), 0644); errWrite != nil {
		t.Fatalf("write config: %v", errWrite)
	}

	cfg, errLoad := Load(path)
	if errLoad != nil {
		t.Fatalf("load: %v", errLoad)
	}
	if cfg.Listen != "0.0.0.0:9000" {
		t.Fatalf("listen = %q", cfg.Listen)
	}
	if cfg.Database.DSN != "file:wallet.db" {
		t.Fatalf("dsn = %q", cfg.Database.DSN)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("log level = %q", cfg.Log.Level)
	}
	if cfg.Log.MaxSizeMB != Default().Log.MaxSizeMB {
		t.Fatalf("max_size_mb = %d, want default", cfg.Log.MaxSizeMB)
	}
}

func TestLoadEnvOverridesDSN(t *testing.T) {
	t.Setenv("CARDKEEP_DSN", "postgres://cards@localhost/cards")
	cfg, errLoad := Load("")
	if errLoad != nil {
		t.Fatalf("load: %v", errLoad)
	}
	if cfg.Database.DSN != "postgres://cards@localhost/cards" {
		t.Fatalf("dsn = %q", cfg.Database.DSN)
	}
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if errWrite := os.WriteFile(path, []byte("listen: [broken"), 0644); errWrite != nil {
		t.Fatalf("write config: %v", errWrite)
	}
	if _, errLoad := Load(path); errLoad == nil {
		t.Fatalf("expected parse error")
	}
}
