package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strokenet.yaml")
	body := "# demo\nsamples_dir: \"data/samples\"\npoints: 20\nthreshold: 0.9\nepochs: 0\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SamplesDir != "data/samples" || cfg.Points != 20 || cfg.Threshold != 0.9 || cfg.Epochs != 0 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Hidden != 5 || cfg.Rate != 1 || cfg.Seed != 42 {
		t.Fatalf("defaults not kept: %+v", cfg)
	}
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("momentum: 0.9\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "unknown key") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := Default()
	cfg.ApplyOverrides(Overrides{Points: 30, Epochs: -1, Rate: 3})
	if cfg.Points != 30 || cfg.Rate != 3 || cfg.Epochs != 5000 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	cfg.ApplyOverrides(Overrides{Epochs: 0})
	if cfg.Epochs != 0 {
		t.Fatalf("expected zero epochs override, got %d", cfg.Epochs)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	cfg.Points = 1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for points=1")
	}
	cfg = Default()
	cfg.Threshold = 1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for threshold=1")
	}
}
