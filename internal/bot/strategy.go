// Package bot provides automated decision strategies used by the headless
// simulator and tests.
package bot

import (
	"sort"

	"lifegame/internal/domain"
)

// Strategy decides how an automated player handles each choice the game
// presents.
type Strategy interface {
	// Name identifies the strategy in persisted results.
	Name() string

	// ChooseCards picks hand card ids to commit against the current
	// challenge.
	ChooseCards(g *domain.Game) []string

	// ChooseInsurance picks the policy duration when an insurance product
	// is offered.
	ChooseInsurance(g *domain.Game) domain.DurationType

	// ChooseCard picks among offered reward cards.
	ChooseCard(g *domain.Game) int
}

// Tuning holds the knobs shared by the built-in strategies.
type Tuning struct {
	// SafetyMargin is the extra power committed beyond the challenge target.
	SafetyMargin int
	// MaxCommit caps how many cards a strategy will spend on one challenge.
	MaxCommit int
}

// targetPower estimates the power needed: the dream-adjusted challenge
// power minus passive insurance power, experience bonus and plus burden.
func targetPower(g *domain.Game) int {
	if g.CurrentChallenge == nil {
		return 0
	}
	resolver := domain.NewChallengeResolver(g.Balance)
	passive := resolver.CalculateTotalPower(nil, g.InsuranceCards, g.Burden, g.Stage)
	need := g.CurrentChallenge.EffectivePower(g.Stage) - passive.Total
	if need < 0 {
		return 0
	}
	return need
}

// pickByPower sorts the hand by descending effective power and commits
// cards until need is covered, up to maxCommit.
func pickByPower(g *domain.Game, need, maxCommit int) []string {
	hand := append([]domain.Card{}, g.Hand...)
	sort.SliceStable(hand, func(i, j int) bool {
		return hand[i].EffectivePower(g.Stage) > hand[j].EffectivePower(g.Stage)
	})

	var ids []string
	total := 0
	for _, card := range hand {
		if total >= need || len(ids) >= maxCommit {
			break
		}
		ids = append(ids, card.ID)
		total += card.EffectivePower(g.Stage)
	}
	return ids
}

// Cautious commits just enough power with a safety margin, prefers cheap
// term policies and picks the strongest reward card.
type Cautious struct {
	Tuning Tuning
}

// NewCautious returns a Cautious strategy with default tuning.
func NewCautious() *Cautious {
	return &Cautious{Tuning: Tuning{SafetyMargin: 2, MaxCommit: 3}}
}

func (c *Cautious) Name() string { return "cautious" }

func (c *Cautious) ChooseCards(g *domain.Game) []string {
	need := targetPower(g)
	if need > 0 {
		need += c.Tuning.SafetyMargin
	}
	return pickByPower(g, need, c.Tuning.MaxCommit)
}

func (c *Cautious) ChooseInsurance(g *domain.Game) domain.DurationType {
	return domain.DurationTerm
}

func (c *Cautious) ChooseCard(g *domain.Game) int {
	best := 0
	for i, card := range g.PendingChoices {
		if card.EffectivePower(g.Stage) > g.PendingChoices[best].EffectivePower(g.Stage) {
			best = i
		}
	}
	return best
}

// Aggressive throws its strongest cards at every challenge regardless of
// the target and locks in whole-life policies.
type Aggressive struct {
	Tuning Tuning
}

// NewAggressive returns an Aggressive strategy with default tuning.
func NewAggressive() *Aggressive {
	return &Aggressive{Tuning: Tuning{MaxCommit: 3}}
}

func (a *Aggressive) Name() string { return "aggressive" }

func (a *Aggressive) ChooseCards(g *domain.Game) []string {
	hand := append([]domain.Card{}, g.Hand...)
	sort.SliceStable(hand, func(i, j int) bool {
		return hand[i].EffectivePower(g.Stage) > hand[j].EffectivePower(g.Stage)
	})

	limit := a.Tuning.MaxCommit
	if limit > len(hand) {
		limit = len(hand)
	}
	ids := make([]string, 0, limit)
	for _, card := range hand[:limit] {
		ids = append(ids, card.ID)
	}
	return ids
}

func (a *Aggressive) ChooseInsurance(g *domain.Game) domain.DurationType {
	return domain.DurationWholeLife
}

func (a *Aggressive) ChooseCard(g *domain.Game) int {
	best := 0
	for i, card := range g.PendingChoices {
		if card.EffectivePower(g.Stage) > g.PendingChoices[best].EffectivePower(g.Stage) {
			best = i
		}
	}
	return best
}

// ByName returns a built-in strategy, defaulting to cautious.
func ByName(name string) Strategy {
	if name == "aggressive" {
		return NewAggressive()
	}
	return NewCautious()
}
