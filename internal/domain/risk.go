package domain

// RiskLevel is the coarse underwriting class of a player profile.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskFactor is a named habit or condition that loads the premium.
type RiskFactor string

const (
	RiskFactorSmoking       RiskFactor = "smoking"
	RiskFactorExtremeSports RiskFactor = "extreme_sports"
	RiskFactorOverwork      RiskFactor = "overwork"
)

// RiskProfile folds an underwriting class and individual factors into a
// single premium multiplier.
type RiskProfile struct {
	Level   RiskLevel
	Factors []RiskFactor
}

const (
	riskFactorLoad    = 0.05
	riskMultiplierCap = 2.0
)

// Multiplier returns the premium multiplier for the profile. A nil profile
// is standard risk (1.0).
func (rp *RiskProfile) Multiplier() float64 {
	if rp == nil {
		return 1.0
	}
	m := 1.0
	switch rp.Level {
	case RiskMedium:
		m = 1.2
	case RiskHigh:
		m = 1.5
	}
	m += riskFactorLoad * float64(len(rp.Factors))
	if m > riskMultiplierCap {
		m = riskMultiplierCap
	}
	return m
}
