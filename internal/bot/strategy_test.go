package bot

import (
	"testing"

	"lifegame/internal/domain"
)

func challengeGame(handPowers []int, targetPower int) *domain.Game {
	g := domain.NewGame("test", domain.DefaultBalance())
	g.Status = domain.StatusInProgress
	g.Phase = domain.PhaseChallenge
	for i, p := range handPowers {
		g.Hand = append(g.Hand, domain.Card{
			ID:    string(rune('a' + i)),
			Type:  domain.CardTypeLife,
			Power: p,
		})
	}
	g.CurrentChallenge = &domain.Card{
		ID:    "ch",
		Type:  domain.CardTypeChallenge,
		Power: targetPower,
	}
	return g
}

func powerOf(g *domain.Game, ids []string) int {
	total := 0
	for _, id := range ids {
		for _, card := range g.Hand {
			if card.ID == id {
				total += card.EffectivePower(g.Stage)
			}
		}
	}
	return total
}

func TestCautiousCoversTargetWithMargin(t *testing.T) {
	g := challengeGame([]int{5, 4, 3, 1}, 6)
	ids := cardsFor(t, NewCautious(), g)

	// Needs 6+2 margin; the two strongest cards give 9.
	if got := powerOf(g, ids); got < 8 {
		t.Fatalf("committed power = %d, want >= 8", got)
	}
	if len(ids) != 2 {
		t.Fatalf("committed %d cards, want 2", len(ids))
	}
}

func TestCautiousRespectsMaxCommit(t *testing.T) {
	g := challengeGame([]int{1, 1, 1, 1, 1}, 20)
	ids := cardsFor(t, NewCautious(), g)
	if len(ids) != 3 {
		t.Fatalf("committed %d cards, want max commit 3", len(ids))
	}
}

func TestCautiousSkipsUnneededCards(t *testing.T) {
	g := challengeGame([]int{5, 4, 3}, 2)
	g.InsuranceCards = []domain.Card{
		{ID: "ins", Type: domain.CardTypeInsurance, InsuranceType: domain.InsuranceMedical, Power: 4},
	}
	// Passive power already beats the target.
	if ids := cardsFor(t, NewCautious(), g); len(ids) != 0 {
		t.Fatalf("committed %d cards against a covered target, want 0", len(ids))
	}
}

func TestAggressiveCommitsStrongest(t *testing.T) {
	g := challengeGame([]int{2, 7, 3, 5}, 1)
	ids := cardsFor(t, NewAggressive(), g)
	if len(ids) != 3 {
		t.Fatalf("committed %d cards, want 3", len(ids))
	}
	if got := powerOf(g, ids); got != 15 {
		t.Fatalf("committed power = %d, want 15 (the three strongest)", got)
	}
}

func TestInsuranceDurationPreferences(t *testing.T) {
	g := challengeGame(nil, 1)
	if d := NewCautious().ChooseInsurance(g); d != domain.DurationTerm {
		t.Fatalf("cautious duration = %s, want term", d)
	}
	if d := NewAggressive().ChooseInsurance(g); d != domain.DurationWholeLife {
		t.Fatalf("aggressive duration = %s, want whole_life", d)
	}
}

func TestChooseCardPicksStrongest(t *testing.T) {
	g := challengeGame(nil, 1)
	g.PendingChoices = []domain.Card{
		{ID: "c0", Type: domain.CardTypeLife, Power: 3},
		{ID: "c1", Type: domain.CardTypeLife, Power: 8},
		{ID: "c2", Type: domain.CardTypeLife, Power: 5},
	}
	for _, s := range []Strategy{NewCautious(), NewAggressive()} {
		if idx := s.ChooseCard(g); idx != 1 {
			t.Fatalf("%s picked index %d, want 1", s.Name(), idx)
		}
	}
}

func TestByName(t *testing.T) {
	if ByName("aggressive").Name() != "aggressive" {
		t.Fatalf("aggressive lookup failed")
	}
	if ByName("unknown").Name() != "cautious" {
		t.Fatalf("unknown name should fall back to cautious")
	}
}

func cardsFor(t *testing.T, s Strategy, g *domain.Game) []string {
	t.Helper()
	ids := s.ChooseCards(g)
	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate card id %q", id)
		}
		seen[id] = true
	}
	return ids
}
