package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8000" {
		t.Fatalf("expected default port 8000, got %q", cfg.Port)
	}
	if cfg.PingInterval != 30*time.Second {
		t.Fatalf("unexpected ping interval: %v", cfg.PingInterval)
	}
	if cfg.PongTimeout != 60*time.Second {
		t.Fatalf("unexpected pong timeout: %v", cfg.PongTimeout)
	}
	if cfg.HeartbeatInterval != 5*time.Second {
		t.Fatalf("unexpected heartbeat interval: %v", cfg.HeartbeatInterval)
	}
	if cfg.LogFile != "app.log" {
		t.Fatalf("unexpected log file: %q", cfg.LogFile)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9100")
	t.Setenv("HEARTBEAT_INTERVAL", "250ms")
	t.Setenv("PONG_TIMEOUT", "90s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9100" {
		t.Fatalf("expected port 9100, got %q", cfg.Port)
	}
	if cfg.HeartbeatInterval != 250*time.Millisecond {
		t.Fatalf("unexpected heartbeat interval: %v", cfg.HeartbeatInterval)
	}
	if cfg.PongTimeout != 90*time.Second {
		t.Fatalf("unexpected pong timeout: %v", cfg.PongTimeout)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("PING_INTERVAL", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for bad duration")
	}
}
