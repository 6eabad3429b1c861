package domain

import (
	"errors"
	"fmt"
	"math/rand"
)

// Status is the lifecycle state of a game.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusGameOver   Status = "game_over"
	StatusVictory    Status = "victory"
)

// Phase is a node in the turn state machine.
type Phase string

const (
	PhaseSetup                  Phase = "setup"
	PhaseDraw                   Phase = "draw"
	PhaseChallenge              Phase = "challenge"
	PhaseResolution             Phase = "resolution"
	PhaseCardSelection          Phase = "card_selection"
	PhaseInsuranceTypeSelection Phase = "insurance_type_selection"
	PhaseUpgrade                Phase = "upgrade"
	PhaseEnd                    Phase = "end"
)

// ErrInvalidPhaseTransition is returned when a mutation is attempted outside
// the documented state machine.
var ErrInvalidPhaseTransition = errors.New("invalid phase transition")

var validTransitions = map[Phase][]Phase{
	PhaseSetup:                  {PhaseDraw},
	PhaseDraw:                   {PhaseChallenge, PhaseEnd},
	PhaseChallenge:              {PhaseResolution, PhaseCardSelection, PhaseInsuranceTypeSelection, PhaseEnd},
	PhaseCardSelection:          {PhaseResolution, PhaseEnd},
	PhaseInsuranceTypeSelection: {PhaseResolution, PhaseEnd},
	PhaseResolution:             {PhaseDraw, PhaseUpgrade, PhaseEnd},
	PhaseUpgrade:                {PhaseDraw, PhaseEnd},
}

// Stats accumulates play counters for a single game.
type Stats struct {
	TotalChallenges      int `json:"total_challenges"`
	SuccessfulChallenges int `json:"successful_challenges"`
	FailedChallenges     int `json:"failed_challenges"`
	CardsAcquired        int `json:"cards_acquired"`
	TurnsPlayed          int `json:"turns_played"`
	HighestVitality      int `json:"highest_vitality"`
}

// Game is the aggregate root. It exclusively owns its card collections and
// delegates rule computation to the stateless domain services. Not safe for
// concurrent use; callers serialize access (the match handler loop does).
type Game struct {
	ID      string
	Balance *Balance

	Status   Status
	Phase    Phase
	Stage    Stage
	Turn     int
	Vitality Vitality

	Deck        *Deck
	Hand        []Card
	DiscardPile []Card

	InsuranceCards    []Card
	ExpiredInsurances []Card
	Burden            Premium

	CurrentChallenge *Card
	PendingChoices   []Card
	PendingInsurance InsuranceType

	Stats Stats
}

// NewGame builds a game in the setup phase with full youth vitality.
func NewGame(id string, balance *Balance) *Game {
	return &Game{
		ID:       id,
		Balance:  balance,
		Status:   StatusNotStarted,
		Phase:    PhaseSetup,
		Stage:    StageYouth,
		Vitality: NewVitality(balance.StartingVitality, balance.MaxVitalityYouth),
		Deck:     NewDeck(nil),
		Stats:    Stats{HighestVitality: balance.StartingVitality},
	}
}

// InProgress reports whether the game accepts further mutations.
func (g *Game) InProgress() bool { return g.Status == StatusInProgress }

// TransitionTo moves the phase machine along a documented edge.
func (g *Game) TransitionTo(next Phase) error {
	for _, allowed := range validTransitions[g.Phase] {
		if allowed == next {
			g.Phase = next
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidPhaseTransition, g.Phase, next)
}

// ApplyVitality adds delta to the vitality pool, tracks the high-water mark
// and ends the game when the pool is depleted.
func (g *Game) ApplyVitality(delta int) {
	g.Vitality = g.Vitality.Apply(delta)
	if v := g.Vitality.Value(); v > g.Stats.HighestVitality {
		g.Stats.HighestVitality = v
	}
	if g.Vitality.IsDepleted() && g.Status == StatusInProgress {
		g.Finish(StatusGameOver)
	}
}

// ApplyStage moves the game to a later stage and shrinks the vitality
// ceiling, clamping the current value downward when needed.
func (g *Game) ApplyStage(stage Stage) {
	g.Stage = stage
	g.Vitality = g.Vitality.WithMax(g.Balance.MaxVitality(stage))
}

// Finish ends the game in a terminal status.
func (g *Game) Finish(status Status) {
	g.Status = status
	g.Phase = PhaseEnd
	g.CurrentChallenge = nil
	g.PendingChoices = nil
	g.PendingInsurance = ""
}

// DiscardHand moves every hand card onto the discard pile.
func (g *Game) DiscardHand() {
	g.DiscardPile = append(g.DiscardPile, g.Hand...)
	g.Hand = g.Hand[:0]
}

// DrawToHand draws up to n cards into the hand, reshuffling the discard
// pile back into the deck when it runs dry.
func (g *Game) DrawToHand(rng *rand.Rand, n int) []Card {
	drawn := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		if g.Deck.Size() == 0 && len(g.DiscardPile) > 0 {
			g.Deck.Add(g.DiscardPile...)
			g.DiscardPile = g.DiscardPile[:0]
			g.Deck.Shuffle(rng)
		}
		card, ok := g.Deck.Draw()
		if !ok {
			break
		}
		drawn = append(drawn, card)
	}
	g.Hand = append(g.Hand, drawn...)
	return drawn
}

// TakeFromHand removes and returns the hand cards with the given ids. The
// hand is left untouched when any id is missing.
func (g *Game) TakeFromHand(ids []string) ([]Card, bool) {
	taken := make([]Card, 0, len(ids))
	remaining := append([]Card{}, g.Hand...)
	for _, id := range ids {
		found := -1
		for i, card := range remaining {
			if card.ID == id {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, false
		}
		taken = append(taken, remaining[found])
		remaining = append(remaining[:found], remaining[found+1:]...)
	}
	g.Hand = remaining
	return taken, true
}

// AddInsurance registers a new active policy and counts the acquisition.
func (g *Game) AddInsurance(card Card) {
	g.InsuranceCards = append(g.InsuranceCards, card)
	g.Stats.CardsAcquired++
}

// LapseAllInsurance moves every active policy to the expired list, used
// when the premium due cannot be paid. Returns the lapsed policies.
func (g *Game) LapseAllInsurance() []Card {
	lapsed := g.InsuranceCards
	g.ExpiredInsurances = append(g.ExpiredInsurances, lapsed...)
	g.InsuranceCards = nil
	return lapsed
}

// RecoveryHealing returns the vitality recovered from recovery policies
// each turn.
func (g *Game) RecoveryHealing() int {
	healing := 0
	for _, card := range g.InsuranceCards {
		if card.IsRecovery() {
			healing += g.Balance.RecoveryHealPerCard
		}
	}
	return healing
}
