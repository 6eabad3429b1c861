// Package config loads the balance ruleset from an optional JSON file and
// runtime settings from environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"

	"lifegame/internal/domain"
)

// Env holds runtime settings read from the environment.
type Env struct {
	DatabasePath string `env:"LIFEGAME_DB" envDefault:"lifegame.db"`
	BalancePath  string `env:"LIFEGAME_BALANCE"`
	CardsPath    string `env:"LIFEGAME_CARDS"`
	Debug        bool   `env:"LIFEGAME_DEBUG"`
}

// ParseEnv loads runtime settings from environment variables.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// LoadBalance reads a balance file and overlays it on the defaults, so a
// file only needs to list the constants it changes. An empty path returns
// the defaults unchanged.
func LoadBalance(path string) (*domain.Balance, error) {
	balance := domain.DefaultBalance()
	if path == "" {
		return balance, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read balance config: %w", err)
	}
	if err := json.Unmarshal(data, balance); err != nil {
		return nil, fmt.Errorf("failed to unmarshal balance config: %w", err)
	}
	if err := validateBalance(balance); err != nil {
		return nil, err
	}
	return balance, nil
}

func validateBalance(b *domain.Balance) error {
	if b.StartingVitality <= 0 || b.MaxVitalityYouth <= 0 {
		return fmt.Errorf("vitality constants must be positive")
	}
	if b.YouthToMiddleTurn >= b.MiddleToFulfillmentTurn || b.MiddleToFulfillmentTurn >= b.VictoryTurn {
		return fmt.Errorf("stage thresholds must be strictly increasing")
	}
	if b.HandSize <= 0 {
		return fmt.Errorf("hand size must be positive")
	}
	if b.MinimumDamage < 0 {
		return fmt.Errorf("minimum damage cannot be negative")
	}
	return nil
}
