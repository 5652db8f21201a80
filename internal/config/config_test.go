package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Material != "rational" {
		t.Errorf("expected material rational, got %s", cfg.Material)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Nx < 1 {
		t.Error("nx should be at least 1")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty domain", func(c *Config) { c.B = c.A }},
		{"zero nx", func(c *Config) { c.Nx = 0 }},
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"negative nt", func(c *Config) { c.Nt = -1 }},
		{"zero max_iter", func(c *Config) { c.Newton.MaxIter = 0 }},
		{"zero tol", func(c *Config) { c.Newton.Tol = 0 }},
		{"damping above 1", func(c *Config) { c.Newton.Damping = 1.5 }},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected a validation error", tc.name)
		}
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Material = "exponential"
	cfg.MaterialParams.Alpha = 1.25
	cfg.Nx = 31
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Material != "exponential" {
		t.Errorf("expected material exponential, got %s", loaded.Material)
	}
	if loaded.MaterialParams.Alpha != 1.25 {
		t.Errorf("expected alpha 1.25, got %f", loaded.MaterialParams.Alpha)
	}
	if loaded.Nx != 31 {
		t.Errorf("expected nx 31, got %d", loaded.Nx)
	}
	// Fields absent from the file keep their defaults.
	if loaded.Newton.MaxIter != DefaultMaxNewton {
		t.Errorf("expected default max_iter, got %d", loaded.Newton.MaxIter)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("rational", "spike")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Profile != "triangle" {
		t.Errorf("expected triangle profile, got %s", cfg.Profile)
	}

	if GetPreset("rational", "nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
	if GetPreset("nonexistent", "spike") != nil {
		t.Error("expected nil for unknown material")
	}
}

func TestListPresets(t *testing.T) {
	if len(ListPresets("rational")) == 0 {
		t.Error("expected presets for rational")
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for unknown material")
	}
}
