package config

import (
	"testing"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.SavePath == "" {
		t.Error("SavePath should default to a home-relative path")
	}
	if cfg.Plain {
		t.Error("Plain should default to false")
	}
}

func TestParse_Environment(t *testing.T) {
	t.Setenv("EMBERWOOD_DATA", "/tmp/content")
	t.Setenv("EMBERWOOD_SAVE", "/tmp/save.json")
	t.Setenv("EMBERWOOD_SEED", "99")
	t.Setenv("EMBERWOOD_PLAIN", "true")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.ContentDir != "/tmp/content" {
		t.Errorf("ContentDir = %q", cfg.ContentDir)
	}
	if cfg.SavePath != "/tmp/save.json" {
		t.Errorf("SavePath = %q", cfg.SavePath)
	}
	if cfg.Seed != 99 {
		t.Errorf("Seed = %d", cfg.Seed)
	}
	if !cfg.Plain {
		t.Error("Plain = false, want true")
	}
}

func TestParse_BadSeedRejected(t *testing.T) {
	t.Setenv("EMBERWOOD_SEED", "not-a-number")
	if _, err := Parse(); err == nil {
		t.Error("expected error for non-numeric seed")
	}
}
