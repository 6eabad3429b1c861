package cards

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"lifegame/internal/domain"
)

// Factory mints domain cards from a catalog. Each minted card gets a fresh
// id so copies of the same spec stay distinguishable in hands and piles.
type Factory struct {
	catalog *Catalog
	balance *domain.Balance
}

// NewFactory builds a factory over a catalog and ruleset.
func NewFactory(catalog *Catalog, balance *domain.Balance) *Factory {
	return &Factory{catalog: catalog, balance: balance}
}

// StarterDeck mints the player's initial deck from the life card pool.
func (f *Factory) StarterDeck() []domain.Card {
	var deck []domain.Card
	for _, spec := range f.catalog.LifeCards {
		count := spec.Count
		if count <= 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			deck = append(deck, f.mintLifeCard(spec))
		}
	}
	return deck
}

func (f *Factory) mintLifeCard(spec CardSpec) domain.Card {
	cardType := domain.CardTypeLife
	if spec.Type == string(domain.CardTypeSkill) {
		cardType = domain.CardTypeSkill
	}
	return domain.Card{
		ID:    uuid.NewString(),
		Name:  spec.Name,
		Type:  cardType,
		Power: spec.Power,
		Cost:  spec.Cost,
	}
}

// RandomChallenge draws a random challenge from the stage's pool.
func (f *Factory) RandomChallenge(rng *rand.Rand, stage domain.Stage) (domain.Card, error) {
	var pool []ChallengeSpec
	for _, spec := range f.catalog.Challenges {
		if spec.Stage == string(stage) {
			pool = append(pool, spec)
		}
	}
	if len(pool) == 0 {
		return domain.Card{}, fmt.Errorf("no challenges available for stage %s", stage)
	}

	spec := pool[rng.Intn(len(pool))]
	return domain.Card{
		ID:            uuid.NewString(),
		Name:          spec.Name,
		Type:          domain.CardTypeChallenge,
		Power:         spec.Power,
		DreamCategory: domain.DreamCategory(spec.Dream),
		InsuranceType: domain.InsuranceType(spec.Insurance),
	}, nil
}

// ChoiceCards mints n reward candidates from the life card pool.
func (f *Factory) ChoiceCards(rng *rand.Rand, n int) []domain.Card {
	choices := make([]domain.Card, 0, n)
	for i := 0; i < n; i++ {
		spec := f.catalog.LifeCards[rng.Intn(len(f.catalog.LifeCards))]
		choices = append(choices, f.mintLifeCard(spec))
	}
	return choices
}

// InsuranceCard mints a policy of the given product line and duration. Term
// policies start with the configured remaining-turns counter.
func (f *Factory) InsuranceCard(it domain.InsuranceType, duration domain.DurationType) (domain.Card, error) {
	for _, p := range f.catalog.Products {
		if domain.InsuranceType(p.Type) != it {
			continue
		}
		card := domain.Card{
			ID:            uuid.NewString(),
			Name:          p.Name,
			Type:          domain.CardTypeInsurance,
			Power:         p.Power,
			Cost:          p.BaseCost,
			InsuranceType: it,
			Coverage:      p.Coverage,
			DurationType:  duration,
		}
		if duration == domain.DurationTerm {
			card.RemainingTurns = f.balance.TermInsuranceTurns
		}
		return card, nil
	}
	return domain.Card{}, fmt.Errorf("no insurance product of type %s", it)
}
