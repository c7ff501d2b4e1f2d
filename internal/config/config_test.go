package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerPort == "" {
		t.Fatalf("expected default server port")
	}
	if cfg.StoreDriver != DriverSQLite {
		t.Fatalf("expected sqlite default driver, got %q", cfg.StoreDriver)
	}
	if cfg.StoreKey != "workouts" {
		t.Fatalf("expected workouts store key")
	}
	if cfg.SessionIdle != 30*time.Minute {
		t.Fatalf("expected 30m session idle, got %v", cfg.SessionIdle)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", ":9000")
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("POSTGRES_URL", "postgres://example")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SESSION_IDLE", "5m")

	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerPort != ":9000" {
		t.Fatalf("expected override port")
	}
	if cfg.StoreDriver != DriverRedis {
		t.Fatalf("expected override driver")
	}
	if cfg.PostgresURL != "postgres://example" {
		t.Fatalf("expected override postgres")
	}
	if cfg.RedisAddr != "redis:6379" {
		t.Fatalf("expected override redis")
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected override log level")
	}
	if cfg.SessionIdle != 5*time.Minute {
		t.Fatalf("expected override session idle")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapty.yaml")
	if err := os.WriteFile(path, []byte("STORE_DRIVER: memory\nSQLITE_PATH: /tmp/x.db\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if cfg.StoreDriver != DriverMemory {
		t.Fatalf("expected memory driver from file, got %q", cfg.StoreDriver)
	}
	if cfg.SQLitePath != "/tmp/x.db" {
		t.Fatalf("expected sqlite path from file")
	}
	if cfg.ServerPort != ":8080" {
		t.Fatalf("expected default port to survive")
	}
}

func TestLoadFileMissing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if cfg.ServerPort == "" {
		t.Fatalf("expected defaults even on error")
	}
}
