package domain

import "math"

// Premium is a non-negative recurring cost. Composition (multipliers,
// discounts, sums) always clamps at zero.
type Premium struct {
	amount float64
}

// NewPremium builds a premium, clamping negative amounts to zero.
func NewPremium(amount float64) Premium {
	if amount < 0 {
		amount = 0
	}
	return Premium{amount: amount}
}

// Amount returns the raw premium value.
func (p Premium) Amount() float64 { return p.amount }

// Multiply scales the premium by a factor.
func (p Premium) Multiply(factor float64) Premium {
	return NewPremium(p.amount * factor)
}

// Discount reduces the premium by a fraction in [0, 1].
func (p Premium) Discount(fraction float64) Premium {
	return NewPremium(p.amount * (1 - fraction))
}

// Add sums two premiums.
func (p Premium) Add(other Premium) Premium {
	return NewPremium(p.amount + other.amount)
}

// Rounded returns the premium as a whole vitality amount due.
func (p Premium) Rounded() int {
	return int(math.Round(p.amount))
}

// IsZero reports whether nothing is owed.
func (p Premium) IsZero() bool { return p.amount == 0 }
