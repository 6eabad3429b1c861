package domain

import "testing"

func TestUpdateInsuranceExpirations(t *testing.T) {
	active := []Card{
		{ID: "a", Name: "Health Term", Type: CardTypeInsurance, DurationType: DurationTerm, RemainingTurns: 1},
		{ID: "b", Name: "Whole Life", Type: CardTypeInsurance, DurationType: DurationWholeLife},
		{ID: "c", Name: "Income Term", Type: CardTypeInsurance, DurationType: DurationTerm, RemainingTurns: 3},
	}
	var expired []Card

	notice := UpdateInsuranceExpirations(&active, &expired, 7)
	if notice == nil {
		t.Fatalf("expected a notice for the expired policy")
	}
	if len(notice.Expired) != 1 || notice.Expired[0].ID != "a" {
		t.Fatalf("expired = %+v, want card a", notice.Expired)
	}
	if notice.Message == "" {
		t.Fatalf("notice must be human readable")
	}

	if len(active) != 2 {
		t.Fatalf("active = %d cards, want 2", len(active))
	}
	if len(expired) != 1 {
		t.Fatalf("expired list = %d cards, want 1", len(expired))
	}

	// The surviving term policy counted down.
	for _, card := range active {
		if card.ID == "c" && card.RemainingTurns != 2 {
			t.Fatalf("card c remaining = %d, want 2", card.RemainingTurns)
		}
	}

	// Running again only decrements survivors; card a must not move twice.
	notice = UpdateInsuranceExpirations(&active, &expired, 8)
	if notice != nil {
		t.Fatalf("no policy should expire on turn 8, got %+v", notice.Expired)
	}
	if len(expired) != 1 {
		t.Fatalf("expired list grew to %d, want still 1", len(expired))
	}
}

func TestUpdateInsuranceExpirationsStrictCountdown(t *testing.T) {
	active := []Card{{ID: "t", Name: "Term", Type: CardTypeInsurance, DurationType: DurationTerm, RemainingTurns: 3}}
	var expired []Card

	for turn := 1; turn <= 3; turn++ {
		before := active[0].RemainingTurns
		notice := UpdateInsuranceExpirations(&active, &expired, turn)
		if turn < 3 {
			if notice != nil {
				t.Fatalf("turn %d: unexpected expiration", turn)
			}
			if active[0].RemainingTurns != before-1 {
				t.Fatalf("turn %d: remaining = %d, want %d", turn, active[0].RemainingTurns, before-1)
			}
		} else {
			if notice == nil || len(expired) != 1 {
				t.Fatalf("turn 3: policy should expire exactly once")
			}
			if len(active) != 0 {
				t.Fatalf("turn 3: active should be empty")
			}
		}
	}
}
