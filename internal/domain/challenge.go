package domain

// PowerBreakdown itemizes the player's total power for a challenge.
type PowerBreakdown struct {
	Base      int `json:"base"`
	Insurance int `json:"insurance"`
	Burden    int `json:"burden"`
	Bonus     int `json:"bonus"`
	Total     int `json:"total"`
}

// ChallengeResult is the outcome of resolving one challenge.
type ChallengeResult struct {
	Success       bool           `json:"success"`
	Breakdown     PowerBreakdown `json:"breakdown"`
	TargetPower   int            `json:"target_power"`
	VitalityDelta int            `json:"vitality_delta"`
	DamageReduced int            `json:"damage_reduced"`
}

// ChallengeResolver computes challenge outcomes. Stateless.
type ChallengeResolver struct {
	balance *Balance
}

// NewChallengeResolver builds a resolver for the given ruleset.
func NewChallengeResolver(balance *Balance) *ChallengeResolver {
	return &ChallengeResolver{balance: balance}
}

// CalculateTotalPower itemizes the power the selected and insurance cards
// provide against the current burden. Total never goes negative.
func (cr *ChallengeResolver) CalculateTotalPower(selected, insurance []Card, burden Premium, stage Stage) PowerBreakdown {
	breakdown := PowerBreakdown{
		Burden: burden.Rounded(),
		Bonus:  cr.balance.ExperienceBonus(stage),
	}
	for _, card := range selected {
		breakdown.Base += card.EffectivePower(stage)
	}
	for _, card := range insurance {
		breakdown.Insurance += card.EffectivePower(stage)
	}

	total := breakdown.Base + breakdown.Insurance - breakdown.Burden + breakdown.Bonus
	if total < 0 {
		total = 0
	}
	breakdown.Total = total
	return breakdown
}

// Resolve pits the player's committed cards against a challenge. Success
// rewards vitality proportional to the power surplus, reduced by an
// overwork penalty when too many cards were committed. Failure deals
// damage proportional to the deficit, mitigated by defensive policies and
// floored at the minimum damage constant.
func (cr *ChallengeResolver) Resolve(challenge Card, selected, insurance []Card, burden Premium, stage Stage) ChallengeResult {
	breakdown := cr.CalculateTotalPower(selected, insurance, burden, stage)
	target := challenge.EffectivePower(stage)

	result := ChallengeResult{
		Breakdown:   breakdown,
		TargetPower: target,
		Success:     breakdown.Total >= target,
	}

	if result.Success {
		reward := cr.balance.RewardBase + (breakdown.Total-target)/2
		if reward > cr.balance.RewardCap {
			reward = cr.balance.RewardCap
		}
		if overwork := len(selected) - cr.balance.OverworkThreshold; overwork > 0 {
			reward -= overwork * cr.balance.OverworkPenalty
		}
		if reward < 0 {
			reward = 0
		}
		result.VitalityDelta = reward
		return result
	}

	damage := target - breakdown.Total
	mitigation := 0
	for _, card := range insurance {
		mitigation += card.DamageReduction()
	}
	if mitigation > damage-cr.balance.MinimumDamage {
		mitigation = damage - cr.balance.MinimumDamage
	}
	if mitigation < 0 {
		mitigation = 0
	}
	damage -= mitigation
	if damage < cr.balance.MinimumDamage {
		damage = cr.balance.MinimumDamage
	}

	result.DamageReduced = mitigation
	result.VitalityDelta = -damage
	return result
}
