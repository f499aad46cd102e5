package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.SearchLimit != 30 {
		t.Errorf("SearchLimit = %d, want 30", cfg.SearchLimit)
	}
	if cfg.EmptyPrefixPolicy != "all" {
		t.Errorf("EmptyPrefixPolicy = %q, want %q", cfg.EmptyPrefixPolicy, "all")
	}
	if cfg.HistoryMaxSize != 0 {
		t.Errorf("HistoryMaxSize = %d, want 0 (unbounded)", cfg.HistoryMaxSize)
	}
	if cfg.TopK != 10 {
		t.Errorf("TopK = %d, want 10", cfg.TopK)
	}
	if cfg.Shuffle {
		t.Error("Shuffle = true, want false by default")
	}
	if cfg.AutoAdvance != 0 {
		t.Errorf("AutoAdvance = %v, want 0", cfg.AutoAdvance)
	}
	if len(cfg.Extensions) == 0 {
		t.Error("Extensions is empty, want defaults")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("VINYL_SEARCH_LIMIT", "5")
	t.Setenv("VINYL_SHUFFLE", "true")
	t.Setenv("VINYL_AUTO_ADVANCE", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.SearchLimit != 5 {
		t.Errorf("SearchLimit = %d, want env override 5", cfg.SearchLimit)
	}
	if !cfg.Shuffle {
		t.Error("Shuffle = false, want env override true")
	}
	if cfg.AutoAdvance != 3*time.Second {
		t.Errorf("AutoAdvance = %v, want 3s", cfg.AutoAdvance)
	}
}
