package domain

// PremiumCalculator computes per-policy premiums and the aggregate burden.
// Stateless: it holds only the injected ruleset.
type PremiumCalculator struct {
	balance *Balance
}

// NewPremiumCalculator builds a calculator for the given ruleset.
func NewPremiumCalculator(balance *Balance) *PremiumCalculator {
	return &PremiumCalculator{balance: balance}
}

// CalculatePremium computes the comprehensive premium for a single policy:
// base cost scaled by age, product line, coverage ratio, duration and an
// optional risk profile. Zero coverage halves the premium instead of
// zeroing it.
func (pc *PremiumCalculator) CalculatePremium(card Card, stage Stage, profile *RiskProfile) Premium {
	if !card.IsInsurance() {
		return NewPremium(0)
	}

	premium := NewPremium(float64(card.Cost)).
		Multiply(pc.balance.AgeMultiplier(stage)).
		Multiply(pc.balance.TypeRate(card.InsuranceType))

	if card.Coverage == 0 {
		premium = premium.Discount(pc.balance.ZeroCoverageDiscount)
	} else {
		premium = premium.Multiply(float64(card.Coverage) / float64(pc.balance.BaseCoverage))
	}

	if card.DurationType == DurationWholeLife {
		premium = premium.Multiply(pc.balance.WholeLifeRate)
	}

	return premium.Multiply(profile.Multiplier())
}

// TotalBurden sums the premiums of all active policies and applies the
// multi-policy penalty: every BurdenPenaltyStep policies add a flat
// percentage, capped at BurdenPenaltyCap.
func (pc *PremiumCalculator) TotalBurden(cards []Card, stage Stage) Premium {
	total := NewPremium(0)
	policies := 0
	for _, card := range cards {
		if !card.IsInsurance() {
			continue
		}
		policies++
		total = total.Add(pc.CalculatePremium(card, stage, nil))
	}

	if pc.balance.BurdenPenaltyStep > 0 {
		penalty := float64(policies/pc.balance.BurdenPenaltyStep) * pc.balance.BurdenPenaltyRate
		if penalty > pc.balance.BurdenPenaltyCap {
			penalty = pc.balance.BurdenPenaltyCap
		}
		total = total.Multiply(1 + penalty)
	}

	return total
}
