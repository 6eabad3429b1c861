// Package sqlite persists game results in a local SQLite database for the
// CLI and the balance simulator.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"lifegame/internal/ports"
)

// Store implements ports.ResultStore over SQLite.
type Store struct {
	db *sql.DB
}

// Open creates or opens the results database and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS game_results (
		id TEXT PRIMARY KEY,
		user_id TEXT,
		seed INTEGER,
		strategy TEXT,
		status TEXT NOT NULL,
		stage TEXT NOT NULL,
		turns INTEGER NOT NULL,
		final_vitality INTEGER NOT NULL,
		challenges_total INTEGER NOT NULL,
		challenges_won INTEGER NOT NULL,
		challenges_lost INTEGER NOT NULL,
		cards_acquired INTEGER NOT NULL,
		highest_vitality INTEGER NOT NULL,
		completed_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_game_results_status ON game_results(status);
	CREATE INDEX IF NOT EXISTS idx_game_results_strategy ON game_results(strategy);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveResult records one finished game.
func (s *Store) SaveResult(ctx context.Context, result ports.GameResult) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO game_results (
			id, user_id, seed, strategy, status, stage, turns, final_vitality,
			challenges_total, challenges_won, challenges_lost, cards_acquired,
			highest_vitality, completed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.ID, result.UserID, result.Seed, result.Strategy,
		string(result.Status), string(result.Stage), result.Turns, result.FinalVitality,
		result.Stats.TotalChallenges, result.Stats.SuccessfulChallenges,
		result.Stats.FailedChallenges, result.Stats.CardsAcquired,
		result.Stats.HighestVitality, result.CompletedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save game result: %w", err)
	}
	return nil
}

// Summary aggregates all stored results.
func (s *Store) Summary(ctx context.Context) (ports.Summary, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'victory' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'game_over' THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(turns), 0),
			COALESCE(AVG(final_vitality), 0),
			COALESCE(SUM(challenges_won), 0)
		FROM game_results`)

	var summary ports.Summary
	if err := row.Scan(
		&summary.Games, &summary.Victories, &summary.GameOvers,
		&summary.AvgTurns, &summary.AvgVitality, &summary.ChallengesWon,
	); err != nil {
		return ports.Summary{}, fmt.Errorf("failed to read summary: %w", err)
	}
	return summary, nil
}

var _ ports.ResultStore = (*Store)(nil)
