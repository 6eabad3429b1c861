package domain

// Balance groups every tunable rule constant. Instances are injected into
// services rather than read from package globals so tests and the balance
// simulator can run divergent rulesets side by side.
type Balance struct {
	StartingVitality       int `json:"starting_vitality"`
	MaxVitalityYouth       int `json:"max_vitality_youth"`
	MaxVitalityMiddle      int `json:"max_vitality_middle"`
	MaxVitalityFulfillment int `json:"max_vitality_fulfillment"`

	// Stage thresholds compared against the monotonic turn counter.
	YouthToMiddleTurn       int `json:"youth_to_middle_turn"`
	MiddleToFulfillmentTurn int `json:"middle_to_fulfillment_turn"`
	VictoryTurn             int `json:"victory_turn"`

	HandSize int `json:"hand_size"`

	// Premium multipliers.
	AgeMultiplierYouth       float64 `json:"age_multiplier_youth"`
	AgeMultiplierMiddle      float64 `json:"age_multiplier_middle"`
	AgeMultiplierFulfillment float64 `json:"age_multiplier_fulfillment"`
	RateMedical              float64 `json:"rate_medical"`
	RateLife                 float64 `json:"rate_life"`
	RateIncome               float64 `json:"rate_income"`
	RateRecovery             float64 `json:"rate_recovery"`
	WholeLifeRate            float64 `json:"whole_life_rate"`
	BaseCoverage             int     `json:"base_coverage"`
	ZeroCoverageDiscount     float64 `json:"zero_coverage_discount"`

	// Aggregate burden penalty: every BurdenPenaltyStep active policies add
	// BurdenPenaltyRate to the total, up to BurdenPenaltyCap.
	BurdenPenaltyStep int     `json:"burden_penalty_step"`
	BurdenPenaltyRate float64 `json:"burden_penalty_rate"`
	BurdenPenaltyCap  float64 `json:"burden_penalty_cap"`

	// Challenge resolution.
	RewardBase                 int `json:"reward_base"`
	RewardCap                  int `json:"reward_cap"`
	OverworkThreshold          int `json:"overwork_threshold"`
	OverworkPenalty            int `json:"overwork_penalty"`
	MinimumDamage              int `json:"minimum_damage"`
	ExperienceBonusMiddle      int `json:"experience_bonus_middle"`
	ExperienceBonusFulfillment int `json:"experience_bonus_fulfillment"`

	TermInsuranceTurns  int `json:"term_insurance_turns"`
	RecoveryHealPerCard int `json:"recovery_heal_per_card"`
	UpgradeVitalityCost int `json:"upgrade_vitality_cost"`
	ChoiceCardCount     int `json:"choice_card_count"`
}

// DefaultBalance returns the canonical ruleset. The source history carried
// competing values for the stage thresholds (8 vs 15) and the burden penalty
// step (3 vs 5); the later revisions won: 15-turn stages and a 3-policy step.
func DefaultBalance() *Balance {
	return &Balance{
		StartingVitality:       100,
		MaxVitalityYouth:       100,
		MaxVitalityMiddle:      80,
		MaxVitalityFulfillment: 60,

		YouthToMiddleTurn:       15,
		MiddleToFulfillmentTurn: 30,
		VictoryTurn:             45,

		HandSize: 5,

		AgeMultiplierYouth:       1.0,
		AgeMultiplierMiddle:      1.2,
		AgeMultiplierFulfillment: 1.5,
		RateMedical:              1.0,
		RateLife:                 1.1,
		RateIncome:               1.2,
		RateRecovery:             0.9,
		WholeLifeRate:            1.3,
		BaseCoverage:             100,
		ZeroCoverageDiscount:     0.5,

		BurdenPenaltyStep: 3,
		BurdenPenaltyRate: 0.10,
		BurdenPenaltyCap:  0.50,

		RewardBase:                 2,
		RewardCap:                  15,
		OverworkThreshold:          3,
		OverworkPenalty:            2,
		MinimumDamage:              1,
		ExperienceBonusMiddle:      1,
		ExperienceBonusFulfillment: 2,

		TermInsuranceTurns:  10,
		RecoveryHealPerCard: 2,
		UpgradeVitalityCost: 5,
		ChoiceCardCount:     3,
	}
}

// MaxVitality returns the vitality ceiling for a life stage.
func (b *Balance) MaxVitality(stage Stage) int {
	switch stage {
	case StageMiddle:
		return b.MaxVitalityMiddle
	case StageFulfillment:
		return b.MaxVitalityFulfillment
	default:
		return b.MaxVitalityYouth
	}
}

// AgeMultiplier returns the premium age multiplier for a life stage.
func (b *Balance) AgeMultiplier(stage Stage) float64 {
	switch stage {
	case StageMiddle:
		return b.AgeMultiplierMiddle
	case StageFulfillment:
		return b.AgeMultiplierFulfillment
	default:
		return b.AgeMultiplierYouth
	}
}

// TypeRate returns the premium rate for an insurance product type.
func (b *Balance) TypeRate(it InsuranceType) float64 {
	switch it {
	case InsuranceLife:
		return b.RateLife
	case InsuranceIncome:
		return b.RateIncome
	case InsuranceRecovery:
		return b.RateRecovery
	default:
		return b.RateMedical
	}
}

// ExperienceBonus is the flat power bonus accumulated life experience grants
// on every challenge in later stages.
func (b *Balance) ExperienceBonus(stage Stage) int {
	switch stage {
	case StageMiddle:
		return b.ExperienceBonusMiddle
	case StageFulfillment:
		return b.ExperienceBonusFulfillment
	default:
		return 0
	}
}
