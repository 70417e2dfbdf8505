package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	_, vr := NormalizeAndValidate(Default())
	if !vr.OK() {
		t.Fatalf("default config has errors: %v", vr.Errors)
	}
}

func TestDefaultCategoryOrder(t *testing.T) {
	cfg := Default()
	if len(cfg.Categories) != 8 {
		t.Fatalf("expected 8 categories, got %d", len(cfg.Categories))
	}
	if cfg.Categories[0].Name != "H.R." {
		t.Errorf("expected H.R. first, got %s", cfg.Categories[0].Name)
	}
	if cfg.Categories[1].Name != "Sales" {
		t.Errorf("expected Sales second, got %s", cfg.Categories[1].Name)
	}
	if got := cfg.FallbackCategory(); got != "Operations" {
		t.Errorf("expected Operations fallback, got %s", got)
	}
}

func TestNormalizeTrimsAndDedupes(t *testing.T) {
	cfg := Default()
	cfg.Categories[0].Keywords = []string{" hr ", "HR", "", "talent"}

	out, vr := NormalizeAndValidate(cfg)
	if !vr.OK() {
		t.Fatalf("unexpected errors: %v", vr.Errors)
	}
	got := out.Categories[0].Keywords
	if len(got) != 2 || got[0] != "hr" || got[1] != "talent" {
		t.Errorf("expected [hr talent], got %v", got)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.App.Port = 0 }},
		{"no categories", func(c *Config) { c.Categories = nil }},
		{"duplicate category", func(c *Config) {
			c.Categories = append(c.Categories, c.Categories[0])
		}},
		{"base out of range", func(c *Config) { c.Scoring.Base = 1.5 }},
		{"negative bonus", func(c *Config) { c.Scoring.SeniorityBonus = -0.1 }},
		{"title bounds inverted", func(c *Config) { c.Detect.MaxTitleLen = 3 }},
		{"bad trigger", func(c *Config) { c.Notify.Trigger = "sometimes" }},
		{"negative delay", func(c *Config) { c.Importing.InsertDelayMS = -1 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := Default()
			c.mutate(&cfg)
			_, vr := NormalizeAndValidate(cfg)
			if vr.OK() {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSaveAtomicRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	cfg := Default()
	cfg.App.Port = 40001
	if err := SaveAtomic(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.App.Port != 40001 {
		t.Errorf("expected port 40001, got %d", got.App.Port)
	}
	if len(got.Categories) != len(cfg.Categories) {
		t.Errorf("expected %d categories, got %d", len(cfg.Categories), len(got.Categories))
	}

	// Second save keeps a .bak of the previous file.
	cfg.App.Port = 40002
	if err := SaveAtomic(path, cfg); err != nil {
		t.Fatalf("save again: %v", err)
	}
	if _, err := os.Stat(path + ".bak"); err != nil {
		t.Errorf("expected backup file: %v", err)
	}
}

func TestSaveAtomicRejectsInvalid(t *testing.T) {
	cfg := Default()
	cfg.App.Port = -1
	if err := SaveAtomic(filepath.Join(t.TempDir(), "config.yml"), cfg); err == nil {
		t.Fatal("expected error for invalid config")
	}
}

func TestEnsureUserConfig(t *testing.T) {
	dir := t.TempDir()
	defaultPath := filepath.Join(dir, "default.yml")
	if err := SaveAtomic(defaultPath, Default()); err != nil {
		t.Fatal(err)
	}

	dataDir := filepath.Join(dir, "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatal(err)
	}

	userPath, err := EnsureUserConfig(dataDir, defaultPath)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if _, err := os.Stat(userPath); err != nil {
		t.Fatalf("user config missing: %v", err)
	}

	// Second call leaves the existing file alone.
	again, err := EnsureUserConfig(dataDir, "does-not-exist.yml")
	if err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}
	if again != userPath {
		t.Errorf("expected same path, got %s", again)
	}
}
