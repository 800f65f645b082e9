package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Training.VocabSize != 320 {
		t.Errorf("default vocab size = %d, want 320", cfg.Training.VocabSize)
	}
	if !cfg.Training.Progress {
		t.Error("progress should default to on")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default log level = %q, want info", cfg.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		shouldErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"zero vocab size", func(c *Config) { c.Training.VocabSize = 0 }, true},
		{"negative vocab size", func(c *Config) { c.Training.VocabSize = -5 }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"warn level ok", func(c *Config) { c.Logging.Level = "warn" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.shouldErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.shouldErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	content := "training:\n  vocab_size: 1000\n  progress: false\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Training.VocabSize != 1000 {
		t.Errorf("vocab size = %d, want 1000", cfg.Training.VocabSize)
	}
	if cfg.Training.Progress {
		t.Error("progress should be off")
	}
	// untouched sections keep defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("log level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("training:\n  vocab_size: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(cfgPath); err == nil {
		t.Fatal("expected error for invalid config")
	}
}
