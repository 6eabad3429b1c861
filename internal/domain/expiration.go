package domain

import (
	"fmt"
	"strings"
)

// ExpirationNotice describes term policies that lapsed this turn.
type ExpirationNotice struct {
	Expired []Card `json:"expired"`
	Turn    int    `json:"turn"`
	Message string `json:"message"`
}

// UpdateInsuranceExpirations decrements the remaining turns of every term
// policy in active and splices expired policies into expired. Both slices
// are mutated in place through the pointers; this is deliberately a
// side-effecting operation, not a pure function. Returns nil when nothing
// expired.
func UpdateInsuranceExpirations(active *[]Card, expired *[]Card, turn int) *ExpirationNotice {
	var lapsed []Card
	kept := (*active)[:0]

	for i := range *active {
		card := (*active)[i]
		if card.TickExpiration() {
			lapsed = append(lapsed, card)
			continue
		}
		kept = append(kept, card)
	}
	*active = kept

	if len(lapsed) == 0 {
		return nil
	}

	*expired = append(*expired, lapsed...)

	names := make([]string, len(lapsed))
	for i, card := range lapsed {
		names[i] = card.Name
	}
	return &ExpirationNotice{
		Expired: lapsed,
		Turn:    turn,
		Message: fmt.Sprintf("Term insurance expired on turn %d: %s", turn, strings.Join(names, ", ")),
	}
}
