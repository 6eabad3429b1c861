// Package app implements the game's use-cases on top of the domain rules
// engine. Each operation validates the phase machine, mutates the aggregate
// and returns the events adapters broadcast to clients.
package app

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"lifegame/internal/cards"
	"lifegame/internal/domain"
)

var (
	ErrAlreadyStarted      = errors.New("game already started")
	ErrNotInProgress       = errors.New("game not in progress")
	ErrWrongPhase          = errors.New("operation not allowed in current phase")
	ErrNoChallenge         = errors.New("no challenge in progress")
	ErrCardNotInHand       = errors.New("selected card not in hand")
	ErrInvalidChoice       = errors.New("invalid card choice")
	ErrUnknownDuration     = errors.New("unknown insurance duration")
	ErrPolicyNotFound      = errors.New("insurance policy not found")
	ErrNotTermPolicy       = errors.New("only term policies can be upgraded")
	ErrCannotAffordUpgrade = errors.New("not enough vitality to upgrade")
)

// Service contains the game use-cases operating on domain state.
type Service struct {
	rng      *rand.Rand
	balance  *domain.Balance
	factory  *cards.Factory
	premiums *domain.PremiumCalculator
	resolver *domain.ChallengeResolver
}

// NewService constructs a Service with the provided rng or a time-seeded
// default.
func NewService(factory *cards.Factory, balance *domain.Balance, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		rng:      rng,
		balance:  balance,
		factory:  factory,
		premiums: domain.NewPremiumCalculator(balance),
		resolver: domain.NewChallengeResolver(balance),
	}
}

// NewGame builds a fresh game aggregate in the setup phase.
func (s *Service) NewGame() *domain.Game {
	return domain.NewGame(uuid.NewString(), s.balance)
}

// Start deals the starter deck and opening hand and begins turn 1.
func (s *Service) Start(g *domain.Game) ([]Event, error) {
	if g.Status != domain.StatusNotStarted {
		return nil, ErrAlreadyStarted
	}

	g.Status = domain.StatusInProgress
	g.Turn = 1
	g.Deck = domain.NewDeck(s.factory.StarterDeck())
	g.Deck.Shuffle(s.rng)

	if err := g.TransitionTo(domain.PhaseDraw); err != nil {
		return nil, err
	}
	drawn := g.DrawToHand(s.rng, s.balance.HandSize)

	return []Event{
		{Kind: EventGameStarted, Payload: GameStartedPayload{
			GameID:   g.ID,
			Stage:    g.Stage,
			Vitality: g.Vitality.Value(),
		}},
		{Kind: EventCardsDrawn, Payload: CardsDrawnPayload{Cards: drawn, DeckSize: g.Deck.Size()}},
	}, nil
}

// StartChallenge draws the turn's challenge from the current stage pool.
func (s *Service) StartChallenge(g *domain.Game) ([]Event, error) {
	if !g.InProgress() {
		return nil, ErrNotInProgress
	}
	if g.Phase != domain.PhaseDraw {
		return nil, fmt.Errorf("%w: start challenge requires draw phase, in %s", ErrWrongPhase, g.Phase)
	}

	challenge, err := s.factory.RandomChallenge(s.rng, g.Stage)
	if err != nil {
		return nil, err
	}

	if err := g.TransitionTo(domain.PhaseChallenge); err != nil {
		return nil, err
	}
	g.CurrentChallenge = &challenge

	return []Event{
		{Kind: EventChallengeStarted, Payload: ChallengeStartedPayload{Challenge: challenge}},
	}, nil
}

// ResolveChallenge pits the selected hand cards against the current
// challenge. Requires the challenge phase and a pending challenge.
func (s *Service) ResolveChallenge(g *domain.Game, cardIDs []string) ([]Event, error) {
	if !g.InProgress() {
		return nil, ErrNotInProgress
	}
	if g.Phase != domain.PhaseChallenge {
		return nil, fmt.Errorf("%w: resolve requires challenge phase, in %s", ErrWrongPhase, g.Phase)
	}
	if g.CurrentChallenge == nil {
		return nil, ErrNoChallenge
	}

	selected, ok := g.TakeFromHand(cardIDs)
	if !ok {
		return nil, ErrCardNotInHand
	}

	challenge := *g.CurrentChallenge
	g.CurrentChallenge = nil
	g.Burden = s.premiums.TotalBurden(g.InsuranceCards, g.Stage)

	result := s.resolver.Resolve(challenge, selected, g.InsuranceCards, g.Burden, g.Stage)

	g.Stats.TotalChallenges++
	if result.Success {
		g.Stats.SuccessfulChallenges++
	} else {
		g.Stats.FailedChallenges++
	}

	// Committed cards are spent either way.
	g.DiscardPile = append(g.DiscardPile, selected...)
	g.ApplyVitality(result.VitalityDelta)

	events := []Event{
		{Kind: EventChallengeResolved, Payload: ChallengeResolvedPayload{
			Challenge: challenge,
			Result:    result,
			Vitality:  g.Vitality.Value(),
		}},
	}

	if !g.InProgress() {
		return append(events, s.endedEvent(g)), nil
	}

	switch {
	case result.Success && challenge.InsuranceType != "":
		if err := g.TransitionTo(domain.PhaseInsuranceTypeSelection); err != nil {
			return nil, err
		}
		g.PendingInsurance = challenge.InsuranceType
		events = append(events, Event{Kind: EventInsuranceTypeRequired, Payload: InsuranceTypeRequiredPayload{
			InsuranceType: challenge.InsuranceType,
			Durations:     []domain.DurationType{domain.DurationTerm, domain.DurationWholeLife},
		}})
	case result.Success:
		if err := g.TransitionTo(domain.PhaseCardSelection); err != nil {
			return nil, err
		}
		g.PendingChoices = s.factory.ChoiceCards(s.rng, s.balance.ChoiceCardCount)
		events = append(events, Event{Kind: EventCardChoicesOffered, Payload: CardChoicesOfferedPayload{
			Choices: append([]domain.Card{}, g.PendingChoices...),
		}})
	default:
		if err := g.TransitionTo(domain.PhaseResolution); err != nil {
			return nil, err
		}
	}

	return events, nil
}

// SelectCard acquires one of the offered reward cards into the discard
// pile, joining the deck on the next reshuffle.
func (s *Service) SelectCard(g *domain.Game, index int) ([]Event, error) {
	if !g.InProgress() {
		return nil, ErrNotInProgress
	}
	if g.Phase != domain.PhaseCardSelection {
		return nil, fmt.Errorf("%w: select card requires card_selection phase, in %s", ErrWrongPhase, g.Phase)
	}
	if index < 0 || index >= len(g.PendingChoices) {
		return nil, ErrInvalidChoice
	}

	chosen := g.PendingChoices[index]
	g.PendingChoices = nil
	g.DiscardPile = append(g.DiscardPile, chosen)
	g.Stats.CardsAcquired++

	if err := g.TransitionTo(domain.PhaseResolution); err != nil {
		return nil, err
	}

	return []Event{
		{Kind: EventCardAcquired, Payload: CardAcquiredPayload{Card: chosen}},
	}, nil
}

// SelectInsuranceType takes the offered insurance product as a term or
// whole-life policy and recomputes the burden.
func (s *Service) SelectInsuranceType(g *domain.Game, duration domain.DurationType) ([]Event, error) {
	if !g.InProgress() {
		return nil, ErrNotInProgress
	}
	if g.Phase != domain.PhaseInsuranceTypeSelection {
		return nil, fmt.Errorf("%w: select insurance requires insurance_type_selection phase, in %s", ErrWrongPhase, g.Phase)
	}
	if duration != domain.DurationTerm && duration != domain.DurationWholeLife {
		return nil, ErrUnknownDuration
	}

	card, err := s.factory.InsuranceCard(g.PendingInsurance, duration)
	if err != nil {
		return nil, err
	}

	g.AddInsurance(card)
	g.PendingInsurance = ""
	g.Burden = s.premiums.TotalBurden(g.InsuranceCards, g.Stage)

	if err := g.TransitionTo(domain.PhaseResolution); err != nil {
		return nil, err
	}

	return []Event{
		{Kind: EventInsuranceAcquired, Payload: InsuranceAcquiredPayload{
			Card:   card,
			Burden: g.Burden.Amount(),
		}},
	}, nil
}

// UpgradeInsurance converts an active term policy to whole-life for a
// vitality cost, during the resolution phase.
func (s *Service) UpgradeInsurance(g *domain.Game, cardID string) ([]Event, error) {
	if !g.InProgress() {
		return nil, ErrNotInProgress
	}
	if g.Phase != domain.PhaseResolution {
		return nil, fmt.Errorf("%w: upgrade requires resolution phase, in %s", ErrWrongPhase, g.Phase)
	}

	idx := -1
	for i, card := range g.InsuranceCards {
		if card.ID == cardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrPolicyNotFound
	}
	if !g.InsuranceCards[idx].IsTermInsurance() {
		return nil, ErrNotTermPolicy
	}
	if g.Vitality.Value() <= s.balance.UpgradeVitalityCost {
		return nil, ErrCannotAffordUpgrade
	}

	if err := g.TransitionTo(domain.PhaseUpgrade); err != nil {
		return nil, err
	}

	g.InsuranceCards[idx].DurationType = domain.DurationWholeLife
	g.InsuranceCards[idx].RemainingTurns = 0
	g.ApplyVitality(-s.balance.UpgradeVitalityCost)
	g.Burden = s.premiums.TotalBurden(g.InsuranceCards, g.Stage)

	return []Event{
		{Kind: EventInsuranceUpgraded, Payload: InsuranceUpgradedPayload{
			Card:   g.InsuranceCards[idx],
			Burden: g.Burden.Amount(),
		}},
	}, nil
}

// NextTurn closes the current turn and opens the next: discard hand,
// advance the counters, check stage and victory, expire term policies,
// charge premiums, draw a fresh hand and apply recovery healing.
func (s *Service) NextTurn(g *domain.Game) ([]Event, error) {
	if !g.InProgress() {
		return nil, ErrNotInProgress
	}
	if g.Phase != domain.PhaseResolution && g.Phase != domain.PhaseUpgrade {
		return nil, fmt.Errorf("%w: next turn requires resolution or upgrade phase, in %s", ErrWrongPhase, g.Phase)
	}

	g.DiscardHand()
	g.Turn++
	g.Stats.TurnsPlayed++

	events := []Event{
		{Kind: EventTurnStarted, Payload: TurnStartedPayload{Turn: g.Turn, Stage: g.Stage}},
	}

	if tr := domain.CheckStageProgression(s.balance, g.Stage, g.Turn); tr.Changed {
		g.ApplyStage(tr.To)
		events = append(events, Event{Kind: EventStageAdvanced, Payload: StageAdvancedPayload{
			Transition:  tr,
			MaxVitality: g.Vitality.Max(),
		}})
	}

	if g.Turn > s.balance.VictoryTurn {
		g.Finish(domain.StatusVictory)
		return append(events, s.endedEvent(g)), nil
	}

	if notice := domain.UpdateInsuranceExpirations(&g.InsuranceCards, &g.ExpiredInsurances, g.Turn); notice != nil {
		events = append(events, Event{Kind: EventInsuranceExpired, Payload: InsuranceExpiredPayload{Notice: *notice}})
	}

	events = append(events, s.chargePremium(g)...)

	drawn := g.DrawToHand(s.rng, s.balance.HandSize)
	events = append(events, Event{Kind: EventCardsDrawn, Payload: CardsDrawnPayload{Cards: drawn, DeckSize: g.Deck.Size()}})

	if healing := g.RecoveryHealing(); healing > 0 {
		g.ApplyVitality(healing)
		events = append(events, Event{Kind: EventVitalityRecovered, Payload: VitalityRecoveredPayload{
			Amount:   healing,
			Vitality: g.Vitality.Value(),
		}})
	}

	if err := g.TransitionTo(domain.PhaseDraw); err != nil {
		return nil, err
	}

	return events, nil
}

// chargePremium deducts the aggregate premium from vitality. When the due
// amount meets or exceeds the remaining vitality every active policy lapses
// instead; the premium never drives vitality to zero.
func (s *Service) chargePremium(g *domain.Game) []Event {
	g.Burden = s.premiums.TotalBurden(g.InsuranceCards, g.Stage)
	due := g.Burden.Rounded()
	if due == 0 {
		return nil
	}

	if due >= g.Vitality.Value() {
		lapsed := g.LapseAllInsurance()
		g.Burden = s.premiums.TotalBurden(g.InsuranceCards, g.Stage)
		return []Event{
			{Kind: EventInsuranceLapsed, Payload: InsuranceLapsedPayload{
				Lapsed:     lapsed,
				PremiumDue: due,
			}},
		}
	}

	g.ApplyVitality(-due)
	return []Event{
		{Kind: EventPremiumCharged, Payload: PremiumChargedPayload{
			Amount:   due,
			Vitality: g.Vitality.Value(),
		}},
	}
}

func (s *Service) endedEvent(g *domain.Game) Event {
	return Event{Kind: EventGameEnded, Payload: GameEndedPayload{
		Status: g.Status,
		Turn:   g.Turn,
		Stats:  g.Stats,
	}}
}
