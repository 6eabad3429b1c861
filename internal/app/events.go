package app

import "lifegame/internal/domain"

// EventKind identifies emitted game events for adapter dispatch.
type EventKind string

const (
	EventGameStarted           EventKind = "game_started"
	EventCardsDrawn            EventKind = "cards_drawn"
	EventTurnStarted           EventKind = "turn_started"
	EventChallengeStarted      EventKind = "challenge_started"
	EventChallengeResolved     EventKind = "challenge_resolved"
	EventCardChoicesOffered    EventKind = "card_choices_offered"
	EventCardAcquired          EventKind = "card_acquired"
	EventInsuranceTypeRequired EventKind = "insurance_type_required"
	EventInsuranceAcquired     EventKind = "insurance_acquired"
	EventInsuranceUpgraded     EventKind = "insurance_upgraded"
	EventInsuranceExpired      EventKind = "insurance_expired"
	EventInsuranceLapsed       EventKind = "insurance_lapsed"
	EventPremiumCharged        EventKind = "premium_charged"
	EventVitalityRecovered     EventKind = "vitality_recovered"
	EventStageAdvanced         EventKind = "stage_advanced"
	EventGameEnded             EventKind = "game_ended"
)

// Event is a game event produced by a use-case. Payloads carry JSON tags
// because adapters forward them to clients verbatim.
type Event struct {
	Kind    EventKind
	Payload any
}

type GameStartedPayload struct {
	GameID   string       `json:"game_id"`
	Stage    domain.Stage `json:"stage"`
	Vitality int          `json:"vitality"`
}

type CardsDrawnPayload struct {
	Cards    []domain.Card `json:"cards"`
	DeckSize int           `json:"deck_size"`
}

type TurnStartedPayload struct {
	Turn  int          `json:"turn"`
	Stage domain.Stage `json:"stage"`
}

type ChallengeStartedPayload struct {
	Challenge domain.Card `json:"challenge"`
}

type ChallengeResolvedPayload struct {
	Challenge domain.Card            `json:"challenge"`
	Result    domain.ChallengeResult `json:"result"`
	Vitality  int                    `json:"vitality"`
}

type CardChoicesOfferedPayload struct {
	Choices []domain.Card `json:"choices"`
}

type CardAcquiredPayload struct {
	Card domain.Card `json:"card"`
}

type InsuranceTypeRequiredPayload struct {
	InsuranceType domain.InsuranceType  `json:"insurance_type"`
	Durations     []domain.DurationType `json:"durations"`
}

type InsuranceAcquiredPayload struct {
	Card   domain.Card `json:"card"`
	Burden float64     `json:"burden"`
}

type InsuranceUpgradedPayload struct {
	Card   domain.Card `json:"card"`
	Burden float64     `json:"burden"`
}

type InsuranceExpiredPayload struct {
	Notice domain.ExpirationNotice `json:"notice"`
}

type InsuranceLapsedPayload struct {
	Lapsed     []domain.Card `json:"lapsed"`
	PremiumDue int           `json:"premium_due"`
}

type PremiumChargedPayload struct {
	Amount   int `json:"amount"`
	Vitality int `json:"vitality"`
}

type VitalityRecoveredPayload struct {
	Amount   int `json:"amount"`
	Vitality int `json:"vitality"`
}

type StageAdvancedPayload struct {
	Transition  domain.StageTransition `json:"transition"`
	MaxVitality int                    `json:"max_vitality"`
}

type GameEndedPayload struct {
	Status domain.Status `json:"status"`
	Turn   int           `json:"turn"`
	Stats  domain.Stats  `json:"stats"`
}
