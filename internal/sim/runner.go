// Package sim runs headless games for balance tuning. A Runner drives the
// full game loop with a bot strategy and persists each result.
package sim

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lifegame/internal/app"
	"lifegame/internal/bot"
	"lifegame/internal/cards"
	"lifegame/internal/domain"
	"lifegame/internal/ports"
)

// maxSteps bounds a single game loop so a wedged phase machine fails loudly
// instead of spinning.
const maxSteps = 10000

// Options configures one simulation batch.
type Options struct {
	Games    int
	Seed     int64
	Strategy string
}

// Runner plays batches of automated games.
type Runner struct {
	log     *zap.Logger
	balance *domain.Balance
	factory *cards.Factory
	store   ports.ResultStore
}

// NewRunner builds a Runner. A nil store disables persistence.
func NewRunner(log *zap.Logger, factory *cards.Factory, balance *domain.Balance, store ports.ResultStore) *Runner {
	return &Runner{
		log:     log,
		balance: balance,
		factory: factory,
		store:   store,
	}
}

// Run plays opts.Games seeded games and returns the per-batch summary.
func (r *Runner) Run(ctx context.Context, opts Options) (ports.Summary, error) {
	if opts.Games <= 0 {
		opts.Games = 1
	}
	strategy := bot.ByName(opts.Strategy)

	var summary ports.Summary
	for i := 0; i < opts.Games; i++ {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		seed := opts.Seed + int64(i)
		result, err := r.playGame(ctx, seed, strategy)
		if err != nil {
			return summary, fmt.Errorf("game %d (seed %d): %w", i+1, seed, err)
		}

		summary.Games++
		switch result.Status {
		case domain.StatusVictory:
			summary.Victories++
		case domain.StatusGameOver:
			summary.GameOvers++
		}
		summary.AvgTurns += float64(result.Turns)
		summary.AvgVitality += float64(result.FinalVitality)
		summary.ChallengesWon += result.Stats.SuccessfulChallenges

		r.log.Debug("game finished",
			zap.Int64("seed", seed),
			zap.String("status", string(result.Status)),
			zap.String("stage", string(result.Stage)),
			zap.Int("turns", result.Turns),
			zap.Int("vitality", result.FinalVitality),
		)

		if r.store != nil {
			if err := r.store.SaveResult(ctx, result); err != nil {
				return summary, fmt.Errorf("save result: %w", err)
			}
		}
	}

	summary.AvgTurns /= float64(summary.Games)
	summary.AvgVitality /= float64(summary.Games)

	r.log.Info("simulation finished",
		zap.Int("games", summary.Games),
		zap.Int("victories", summary.Victories),
		zap.Float64("win_rate", summary.WinRate()),
		zap.Float64("avg_turns", summary.AvgTurns),
	)
	return summary, nil
}

// playGame drives one game from setup to a terminal status.
func (r *Runner) playGame(ctx context.Context, seed int64, strategy bot.Strategy) (ports.GameResult, error) {
	svc := app.NewService(r.factory, r.balance, rand.New(rand.NewSource(seed)))
	g := svc.NewGame()

	if _, err := svc.Start(g); err != nil {
		return ports.GameResult{}, err
	}

	for steps := 0; g.InProgress(); steps++ {
		if steps >= maxSteps {
			return ports.GameResult{}, fmt.Errorf("game stalled in phase %s at turn %d", g.Phase, g.Turn)
		}
		if err := ctx.Err(); err != nil {
			return ports.GameResult{}, err
		}

		var err error
		switch g.Phase {
		case domain.PhaseDraw:
			_, err = svc.StartChallenge(g)
		case domain.PhaseChallenge:
			_, err = svc.ResolveChallenge(g, strategy.ChooseCards(g))
		case domain.PhaseCardSelection:
			_, err = svc.SelectCard(g, strategy.ChooseCard(g))
		case domain.PhaseInsuranceTypeSelection:
			_, err = svc.SelectInsuranceType(g, strategy.ChooseInsurance(g))
		case domain.PhaseResolution, domain.PhaseUpgrade:
			_, err = svc.NextTurn(g)
		default:
			return ports.GameResult{}, fmt.Errorf("unexpected phase %s", g.Phase)
		}
		if err != nil {
			return ports.GameResult{}, err
		}
	}

	return ports.GameResult{
		ID:            uuid.NewString(),
		Seed:          seed,
		Strategy:      strategy.Name(),
		Status:        g.Status,
		Stage:         g.Stage,
		Turns:         g.Turn,
		FinalVitality: g.Vitality.Value(),
		Stats:         g.Stats,
		CompletedAt:   time.Now().UTC(),
	}, nil
}
