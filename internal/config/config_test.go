package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default() should validate: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero target fps", func(c *Config) { c.Engine.TargetFPS = 0 }},
		{"negative target fps", func(c *Config) { c.Engine.TargetFPS = -60 }},
		{"zero max updates", func(c *Config) { c.Engine.MaxUpdatesPerFrame = 0 }},
		{"negative max delta", func(c *Config) { c.Engine.MaxDeltaTime = -1 }},
		{"inverted thresholds", func(c *Config) { c.Adaptive.LowFPSThreshold = 60; c.Adaptive.HighFPSThreshold = 30 }},
		{"negative cooldown", func(c *Config) { c.Adaptive.SwitchCooldown = -1 }},
		{"zero balls", func(c *Config) { c.Demo.Balls = 0 }},
		{"restitution above one", func(c *Config) { c.Demo.Restitution = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should reject the config")
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := []byte("engine:\n  target_fps: 120\n  max_updates_per_frame: 8\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Engine.TargetFPS != 120 {
		t.Errorf("TargetFPS = %v, want 120", cfg.Engine.TargetFPS)
	}
	if cfg.Engine.MaxUpdatesPerFrame != 8 {
		t.Errorf("MaxUpdatesPerFrame = %d, want 8", cfg.Engine.MaxUpdatesPerFrame)
	}
	// Unset sections keep defaults
	if cfg.Adaptive.SwitchCooldown != 1.0 {
		t.Errorf("SwitchCooldown = %v, want default 1.0", cfg.Adaptive.SwitchCooldown)
	}
}

func TestLoadMissingCustomPathFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load() with a missing explicit path should fail")
	}
}

func TestLoadInvalidCustomConfigFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("engine:\n  target_fps: -10\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() should reject an invalid explicit config")
	}
}

func TestLoadFallsBackToEmbeddedDefault(t *testing.T) {
	// Run from a directory with no configs/ and no user override
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("embedded default should validate: %v", err)
	}
	if cfg.Engine.TargetFPS != 60 {
		t.Errorf("TargetFPS = %v, want 60", cfg.Engine.TargetFPS)
	}
}
