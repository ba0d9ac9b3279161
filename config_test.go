package main

import (
	"testing"
	"time"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig(nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if cfg.TickMillis() != 25 {
		t.Errorf("expected 25ms ticks, got %f", cfg.TickMillis())
	}
	if cfg.BroadcastEvery() != 2 {
		t.Errorf("expected broadcast every 2 ticks, got %d", cfg.BroadcastEvery())
	}
}

func TestParseConfigFlags(t *testing.T) {
	cfg, err := ParseConfig([]string{
		"-addr", ":9000", "-db", "", "-tick-rate", "60", "-broadcast-rate", "60",
		"-width", "300", "-respawn", "5s", "-jwt-secret", "s3cret",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Addr != ":9000" || cfg.DBPath != "" || cfg.TickRate != 60 || cfg.WorldWidth != 300 {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if cfg.RespawnDelay != 5*time.Second || cfg.JWTSecret != "s3cret" {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if cfg.BroadcastEvery() != 1 {
		t.Errorf("expected broadcast every tick, got %d", cfg.BroadcastEvery())
	}
}

func TestParseConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-bogus"}},
		{"zero tick rate", []string{"-tick-rate", "0"}},
		{"huge tick rate", []string{"-tick-rate", "5000"}},
		{"broadcast above tick rate", []string{"-tick-rate", "10", "-broadcast-rate", "20"}},
		{"negative width", []string{"-width", "-1"}},
		{"no players", []string{"-max-players", "0"}},
		{"no projectiles", []string{"-max-projectiles", "0"}},
		{"zero token ttl", []string{"-token-ttl", "0s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseConfig(tt.args); err == nil {
				t.Error("expected error")
			}
		})
	}
}
