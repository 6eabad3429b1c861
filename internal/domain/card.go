package domain

// CardType distinguishes the four card families in the game.
type CardType string

const (
	CardTypeLife      CardType = "life"
	CardTypeInsurance CardType = "insurance"
	CardTypeChallenge CardType = "challenge"
	CardTypeSkill     CardType = "skill"
)

// InsuranceType is the product line an insurance card belongs to.
type InsuranceType string

const (
	InsuranceMedical  InsuranceType = "medical"
	InsuranceLife     InsuranceType = "life"
	InsuranceIncome   InsuranceType = "income"
	InsuranceRecovery InsuranceType = "recovery"
)

// DurationType distinguishes term policies from whole-life policies.
type DurationType string

const (
	DurationTerm      DurationType = "term"
	DurationWholeLife DurationType = "whole_life"
)

// DreamCategory tags challenge cards whose difficulty shifts with age.
type DreamCategory string

const (
	DreamNone         DreamCategory = ""
	DreamPhysical     DreamCategory = "physical"
	DreamIntellectual DreamCategory = "intellectual"
	DreamMixed        DreamCategory = "mixed"
)

// Card is a single game card. Life and skill cards contribute power to
// challenges, insurance cards add passive power and charge premiums,
// challenge cards are obstacles with a required power.
type Card struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Type  CardType `json:"type"`
	Power int      `json:"power"`
	Cost  int      `json:"cost"`

	// Insurance metadata. Zero values for non-insurance cards.
	InsuranceType  InsuranceType `json:"insurance_type,omitempty"`
	Coverage       int           `json:"coverage,omitempty"`
	DurationType   DurationType  `json:"duration_type,omitempty"`
	RemainingTurns int           `json:"remaining_turns,omitempty"`

	// Challenge metadata.
	DreamCategory DreamCategory `json:"dream_category,omitempty"`
}

// Dream difficulty shift by stage: positive values make the challenge
// harder, negative easier. Physical dreams favor the young, intellectual
// dreams favor accumulated experience.
var dreamAdjustments = map[DreamCategory]map[Stage]int{
	DreamPhysical:     {StageYouth: -2, StageMiddle: 0, StageFulfillment: 3},
	DreamIntellectual: {StageYouth: 1, StageMiddle: 0, StageFulfillment: -2},
	DreamMixed:        {StageYouth: 0, StageMiddle: 0, StageFulfillment: 0},
}

// IsInsurance reports whether the card is an insurance policy.
func (c Card) IsInsurance() bool { return c.Type == CardTypeInsurance }

// IsTermInsurance reports whether the card is a policy that expires.
func (c Card) IsTermInsurance() bool {
	return c.IsInsurance() && c.DurationType == DurationTerm
}

// IsDefensive reports whether the policy mitigates challenge damage.
func (c Card) IsDefensive() bool {
	return c.IsInsurance() && (c.InsuranceType == InsuranceMedical || c.InsuranceType == InsuranceLife)
}

// IsRecovery reports whether the policy heals vitality each turn.
func (c Card) IsRecovery() bool {
	return c.IsInsurance() && c.InsuranceType == InsuranceRecovery
}

// EffectivePower is the card's power at a given life stage. Challenge cards
// apply the dream-category age adjustment; all cards clamp at zero.
func (c Card) EffectivePower(stage Stage) int {
	power := c.Power
	if c.Type == CardTypeChallenge {
		if byStage, ok := dreamAdjustments[c.DreamCategory]; ok {
			power += byStage[stage]
		}
	}
	if power < 0 {
		return 0
	}
	return power
}

// DamageReduction is the failure damage a defensive policy absorbs.
func (c Card) DamageReduction() int {
	if !c.IsDefensive() {
		return 0
	}
	return c.Coverage / 25
}

// TickExpiration decrements a term policy's remaining turns and reports
// whether the policy just expired. Non-term cards never tick.
func (c *Card) TickExpiration() bool {
	if !c.IsTermInsurance() || c.RemainingTurns <= 0 {
		return false
	}
	c.RemainingTurns--
	return c.RemainingTurns == 0
}
