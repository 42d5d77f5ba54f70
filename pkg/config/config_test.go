package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
environment: test
redis:
  addr: localhost:6379
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("expected default port, got %d", cfg.Server.Port)
	}
	if cfg.Board.SignalsCap != 100 || cfg.Board.ScansCap != 50 {
		t.Fatalf("unexpected caps %d/%d", cfg.Board.SignalsCap, cfg.Board.ScansCap)
	}
	if cfg.Board.DefaultLimit != 20 {
		t.Fatalf("unexpected default limit %d", cfg.Board.DefaultLimit)
	}
	if cfg.Board.LimitCap != cfg.Board.SignalsCap {
		t.Fatalf("limit cap should default to signals cap, got %d", cfg.Board.LimitCap)
	}
	if cfg.Board.StatusTTL != 2*time.Minute {
		t.Fatalf("unexpected status ttl %v", cfg.Board.StatusTTL)
	}
}

func TestLoadRejectsMissingRedis(t *testing.T) {
	path := writeConfig(t, "environment: test\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadRejectsKafkaTopicWithoutBrokers(t *testing.T) {
	path := writeConfig(t, `
environment: test
redis:
  addr: localhost:6379
kafka:
  topic: records
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
environment: test
redis:
  addr: localhost:6379
`)
	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	t.Setenv("PORT", "9090")

	cfg, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Redis.Addr != "redis.internal:6380" {
		t.Fatalf("env override missed, got %s", cfg.Redis.Addr)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("port override missed, got %d", cfg.Server.Port)
	}
}
