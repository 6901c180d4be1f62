package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "VIEW_TTL", "DEV_MODE", "TUNING_PATH"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Port != "8010" {
		t.Errorf("expected port 8010, got %s", cfg.Port)
	}
	if cfg.ViewTTL != 24*time.Hour {
		t.Errorf("expected 24h view ttl, got %s", cfg.ViewTTL)
	}
	if cfg.DevMode {
		t.Error("expected dev mode off by default")
	}
	if cfg.TuningPath != "" {
		t.Errorf("expected empty tuning path, got %q", cfg.TuningPath)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DEV_MODE", "true")
	t.Setenv("TUNING_PATH", "/etc/zeitgeist/tuning.yaml")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %s", cfg.Port)
	}
	if !cfg.DevMode {
		t.Error("expected dev mode on")
	}
	if cfg.TuningPath != "/etc/zeitgeist/tuning.yaml" {
		t.Errorf("unexpected tuning path %q", cfg.TuningPath)
	}
}

func TestDurationOrDefault(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", time.Minute},
		{"90m", 90 * time.Minute},
		{"3600", time.Hour},
		{"soon", time.Minute},
	}
	for _, tt := range tests {
		t.Setenv("VIEW_TTL", tt.value)
		if got := durationOrDefault("VIEW_TTL", time.Minute); got != tt.want {
			t.Errorf("VIEW_TTL=%q: expected %s, got %s", tt.value, tt.want, got)
		}
	}
}
