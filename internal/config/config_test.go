package config

import (
	"os"
	"path/filepath"
	"testing"

	"lifegame/internal/domain"
)

func TestLoadBalanceDefaults(t *testing.T) {
	balance, err := LoadBalance("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if balance.YouthToMiddleTurn != domain.DefaultBalance().YouthToMiddleTurn {
		t.Fatalf("defaults not applied")
	}
}

func TestLoadBalanceOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "balance.json")
	if err := os.WriteFile(path, []byte(`{"hand_size": 7}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	balance, err := LoadBalance(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if balance.HandSize != 7 {
		t.Fatalf("hand size = %d, want 7", balance.HandSize)
	}
	// Unlisted constants keep their defaults.
	if balance.VictoryTurn != domain.DefaultBalance().VictoryTurn {
		t.Fatalf("victory turn lost its default")
	}
}

func TestLoadBalanceRejectsBrokenThresholds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "balance.json")
	if err := os.WriteFile(path, []byte(`{"youth_to_middle_turn": 50}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadBalance(path); err == nil {
		t.Fatalf("non-increasing thresholds should be rejected")
	}
}

func TestParseEnv(t *testing.T) {
	t.Setenv("LIFEGAME_DB", "/tmp/custom.db")
	t.Setenv("LIFEGAME_DEBUG", "true")

	e, err := ParseEnv()
	if err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if e.DatabasePath != "/tmp/custom.db" || !e.Debug {
		t.Fatalf("env = %+v", e)
	}
}
