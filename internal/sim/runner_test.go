package sim

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"lifegame/internal/cards"
	"lifegame/internal/domain"
	"lifegame/internal/ports"
)

type memStore struct {
	results []ports.GameResult
}

func (m *memStore) SaveResult(_ context.Context, r ports.GameResult) error {
	m.results = append(m.results, r)
	return nil
}

func (m *memStore) Summary(context.Context) (ports.Summary, error) {
	return ports.Summary{Games: len(m.results)}, nil
}

func newTestRunner(store ports.ResultStore) *Runner {
	balance := domain.DefaultBalance()
	factory := cards.NewFactory(cards.DefaultCatalog(), balance)
	return NewRunner(zap.NewNop(), factory, balance, store)
}

func TestRunPlaysFullBatch(t *testing.T) {
	store := &memStore{}
	runner := newTestRunner(store)

	summary, err := runner.Run(context.Background(), Options{Games: 5, Seed: 42, Strategy: "cautious"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if summary.Games != 5 {
		t.Fatalf("games = %d, want 5", summary.Games)
	}
	if summary.Victories+summary.GameOvers != 5 {
		t.Fatalf("every game must end terminal, got %d victories %d game overs",
			summary.Victories, summary.GameOvers)
	}
	if len(store.results) != 5 {
		t.Fatalf("stored %d results, want 5", len(store.results))
	}
	for _, r := range store.results {
		if r.Status != domain.StatusVictory && r.Status != domain.StatusGameOver {
			t.Fatalf("result %s has non-terminal status %s", r.ID, r.Status)
		}
		if r.Turns < 1 {
			t.Fatalf("result %s played %d turns", r.ID, r.Turns)
		}
		if r.Strategy != "cautious" {
			t.Fatalf("result %s strategy = %s", r.ID, r.Strategy)
		}
	}
}

func TestRunIsDeterministicPerSeed(t *testing.T) {
	first := &memStore{}
	second := &memStore{}

	if _, err := newTestRunner(first).Run(context.Background(), Options{Games: 3, Seed: 7, Strategy: "aggressive"}); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := newTestRunner(second).Run(context.Background(), Options{Games: 3, Seed: 7, Strategy: "aggressive"}); err != nil {
		t.Fatalf("second run: %v", err)
	}

	for i := range first.results {
		a, b := first.results[i], second.results[i]
		if a.Status != b.Status || a.Turns != b.Turns || a.FinalVitality != b.FinalVitality {
			t.Fatalf("seed %d diverged: %+v vs %+v", a.Seed, a, b)
		}
	}
}

func TestRunWithoutStore(t *testing.T) {
	runner := newTestRunner(nil)
	summary, err := runner.Run(context.Background(), Options{Games: 2, Seed: 1})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Games != 2 {
		t.Fatalf("games = %d, want 2", summary.Games)
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newTestRunner(nil).Run(ctx, Options{Games: 10, Seed: 1}); err == nil {
		t.Fatalf("cancelled run should fail")
	}
}
