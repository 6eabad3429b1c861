package domain

// Vitality is the player's clamped health pool. The zero value is an empty
// pool; all operations return a new value and preserve 0 <= value <= max.
type Vitality struct {
	value int
	max   int
}

// NewVitality builds a vitality pool, clamping value into [0, max].
func NewVitality(value, max int) Vitality {
	if max < 0 {
		max = 0
	}
	return Vitality{value: clampInt(value, 0, max), max: max}
}

// Value returns the current vitality.
func (v Vitality) Value() int { return v.value }

// Max returns the current ceiling.
func (v Vitality) Max() int { return v.max }

// Apply adds delta (negative for damage) and clamps the result.
func (v Vitality) Apply(delta int) Vitality {
	return NewVitality(v.value+delta, v.max)
}

// WithMax changes the ceiling, clamping the current value downward when the
// new ceiling is lower. Stage transitions shrink the ceiling this way.
func (v Vitality) WithMax(max int) Vitality {
	return NewVitality(v.value, max)
}

// IsDepleted reports whether the pool reached zero.
func (v Vitality) IsDepleted() bool { return v.value <= 0 }

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
