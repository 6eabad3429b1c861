package cards

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"lifegame/internal/domain"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	if err := DefaultCatalog().Validate(); err != nil {
		t.Fatalf("default catalog invalid: %v", err)
	}
}

func TestStarterDeck(t *testing.T) {
	f := NewFactory(DefaultCatalog(), domain.DefaultBalance())
	deck := f.StarterDeck()
	if len(deck) == 0 {
		t.Fatalf("starter deck is empty")
	}

	ids := map[string]bool{}
	for _, card := range deck {
		if card.Power < 0 {
			t.Fatalf("card %s has negative power", card.Name)
		}
		if card.Type != domain.CardTypeLife && card.Type != domain.CardTypeSkill {
			t.Fatalf("starter deck contains %s card", card.Type)
		}
		if ids[card.ID] {
			t.Fatalf("duplicate card id %s", card.ID)
		}
		ids[card.ID] = true
	}
}

func TestRandomChallengePerStage(t *testing.T) {
	f := NewFactory(DefaultCatalog(), domain.DefaultBalance())
	rng := rand.New(rand.NewSource(1))

	for _, stage := range []domain.Stage{domain.StageYouth, domain.StageMiddle, domain.StageFulfillment} {
		challenge, err := f.RandomChallenge(rng, stage)
		if err != nil {
			t.Fatalf("stage %s: %v", stage, err)
		}
		if challenge.Type != domain.CardTypeChallenge {
			t.Fatalf("stage %s: got card type %s", stage, challenge.Type)
		}
	}
}

func TestInsuranceCard(t *testing.T) {
	b := domain.DefaultBalance()
	f := NewFactory(DefaultCatalog(), b)

	term, err := f.InsuranceCard(domain.InsuranceMedical, domain.DurationTerm)
	if err != nil {
		t.Fatalf("term policy: %v", err)
	}
	if term.RemainingTurns != b.TermInsuranceTurns {
		t.Fatalf("term remaining = %d, want %d", term.RemainingTurns, b.TermInsuranceTurns)
	}

	whole, err := f.InsuranceCard(domain.InsuranceLife, domain.DurationWholeLife)
	if err != nil {
		t.Fatalf("whole-life policy: %v", err)
	}
	if whole.RemainingTurns != 0 {
		t.Fatalf("whole-life policy must not carry a countdown")
	}

	if _, err := f.InsuranceCard(domain.InsuranceType("unknown"), domain.DurationTerm); err == nil {
		t.Fatalf("unknown product type should error")
	}
}

func TestLoadCatalogFromFile(t *testing.T) {
	data := `
life_cards:
  - name: Test Card
    power: 3
    cost: 1
    count: 2
challenges:
  - name: Youth Test
    stage: youth
    power: 5
  - name: Middle Test
    stage: middle
    power: 8
  - name: Fulfillment Test
    stage: fulfillment
    power: 12
insurance_products:
  - type: medical
    name: Test Medical
    base_cost: 4
    coverage: 80
    power: 2
`
	path := filepath.Join(t.TempDir(), "cards.yaml")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(catalog.LifeCards) != 1 || catalog.LifeCards[0].Count != 2 {
		t.Fatalf("life cards = %+v", catalog.LifeCards)
	}

	// Missing stage pools must be rejected.
	bad := `
life_cards:
  - name: Solo
    power: 1
challenges:
  - name: Only Youth
    stage: youth
    power: 5
`
	badPath := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(badPath, []byte(bad), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadCatalog(badPath); err == nil {
		t.Fatalf("catalog without all stage pools should fail validation")
	}
}
