package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifegame/internal/domain"
	"lifegame/internal/ports"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndSummarize(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	results := []ports.GameResult{
		{
			ID: "r1", Seed: 1, Strategy: "cautious",
			Status: domain.StatusVictory, Stage: domain.StageFulfillment,
			Turns: 45, FinalVitality: 22,
			Stats:       domain.Stats{TotalChallenges: 45, SuccessfulChallenges: 40, FailedChallenges: 5},
			CompletedAt: time.Now(),
		},
		{
			ID: "r2", Seed: 2, Strategy: "aggressive",
			Status: domain.StatusGameOver, Stage: domain.StageMiddle,
			Turns: 19, FinalVitality: 0,
			Stats:       domain.Stats{TotalChallenges: 19, SuccessfulChallenges: 10, FailedChallenges: 9},
			CompletedAt: time.Now(),
		},
	}
	for _, r := range results {
		require.NoError(t, store.SaveResult(ctx, r))
	}

	summary, err := store.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Games)
	assert.Equal(t, 1, summary.Victories)
	assert.Equal(t, 1, summary.GameOvers)
	assert.InDelta(t, 32.0, summary.AvgTurns, 0.001)
	assert.InDelta(t, 11.0, summary.AvgVitality, 0.001)
	assert.Equal(t, 50, summary.ChallengesWon)
	assert.InDelta(t, 0.5, summary.WinRate(), 0.001)
}

func TestSummaryOnEmptyStore(t *testing.T) {
	store := openTestStore(t)

	summary, err := store.Summary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.Games)
	assert.Zero(t, summary.WinRate())
}

func TestDuplicateIDRejected(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	result := ports.GameResult{ID: "dup", Status: domain.StatusVictory, Stage: domain.StageYouth, CompletedAt: time.Now()}
	require.NoError(t, store.SaveResult(ctx, result))
	assert.Error(t, store.SaveResult(ctx, result))
}
