package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "DB_DSN", "STORAGE_DRIVER", "LOG_LEVEL", "LOG_FORMAT", "APP_NAME", "DECAY_INTERVAL"} {
		t.Setenv(k, "")
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("expected :8080, got %q", cfg.HTTP.Addr)
	}
	if cfg.Storage.Driver != DriverMemory {
		t.Fatalf("expected memory driver, got %q", cfg.Storage.Driver)
	}
	if cfg.Decay.Interval != 0 {
		t.Fatalf("expected scheduler off, got %s", cfg.Decay.Interval)
	}
	if cfg.Decay.Rules.FoodPerTick != 0.54 {
		t.Fatalf("expected default rules, got %+v", cfg.Decay.Rules)
	}
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
http:
  addr: ":9000"
storage:
  driver: gorm
  dsn: postgres://yaml
log:
  level: debug
decay:
  interval: 1m
  rules:
    food_per_tick: 1
    water_per_tick: 0.5
    fun_per_tick: 0.25
    xp_per_tick: 0.2
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	t.Setenv("DB_DSN", "postgres://env")
	t.Setenv("PORT", "7000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":7000" {
		t.Fatalf("env PORT should win, got %q", cfg.HTTP.Addr)
	}
	if cfg.Storage.Driver != DriverGorm || cfg.Storage.DSN != "postgres://env" {
		t.Fatalf("unexpected storage: %+v", cfg.Storage)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected debug, got %q", cfg.Log.Level)
	}
	if cfg.Decay.Interval != time.Minute {
		t.Fatalf("expected 1m, got %s", cfg.Decay.Interval)
	}
	if cfg.Decay.Rules.XPPerTick != 0.2 {
		t.Fatalf("expected xp_per_tick=0.2, got %v", cfg.Decay.Rules.XPPerTick)
	}
}

func TestLoad_DSNImpliesPostgres(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DSN", "postgres://x")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Driver != DriverPostgres {
		t.Fatalf("expected postgres, got %q", cfg.Storage.Driver)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown driver":    {"STORAGE_DRIVER": "mongo"},
		"gorm without dsn":  {"STORAGE_DRIVER": "gorm"},
		"bad interval":      {"DECAY_INTERVAL": "soon"},
		"negative interval": {"DECAY_INTERVAL": "-1m"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := Load(""); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
