// Package ports defines the interfaces the game core expects from the
// outside world. Adapters live under internal/ports/nakama and
// internal/adapters.
package ports

import (
	"context"
	"time"

	"lifegame/internal/domain"
)

// GameResult is the persisted record of one finished game.
type GameResult struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id,omitempty"`
	Seed          int64         `json:"seed,omitempty"`
	Strategy      string        `json:"strategy,omitempty"`
	Status        domain.Status `json:"status"`
	Stage         domain.Stage  `json:"stage"`
	Turns         int           `json:"turns"`
	FinalVitality int           `json:"final_vitality"`
	Stats         domain.Stats  `json:"stats"`
	CompletedAt   time.Time     `json:"completed_at"`
}

// Summary aggregates stored results.
type Summary struct {
	Games         int     `json:"games"`
	Victories     int     `json:"victories"`
	GameOvers     int     `json:"game_overs"`
	AvgTurns      float64 `json:"avg_turns"`
	AvgVitality   float64 `json:"avg_vitality"`
	ChallengesWon int     `json:"challenges_won"`
}

// WinRate is the fraction of stored games ending in victory.
func (s Summary) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Victories) / float64(s.Games)
}

// ResultStore persists finished-game results and serves aggregates.
type ResultStore interface {
	// SaveResult records one finished game.
	SaveResult(ctx context.Context, result GameResult) error

	// Summary returns aggregate statistics over all stored results.
	Summary(ctx context.Context) (Summary, error)
}
