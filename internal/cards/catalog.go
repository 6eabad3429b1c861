// Package cards defines the card catalog (life, challenge and insurance
// card pools) and the factory that mints domain cards from it. Pools are
// loadable from a YAML data file with compiled-in defaults.
package cards

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"lifegame/internal/domain"
)

// CardSpec defines a life or skill card in the catalog.
type CardSpec struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type"` // "life" (default) or "skill"
	Power int    `yaml:"power"`
	Cost  int    `yaml:"cost"`
	Count int    `yaml:"count"` // copies in the starter deck, default 1
}

// ChallengeSpec defines a challenge card in a stage pool.
type ChallengeSpec struct {
	Name      string `yaml:"name"`
	Stage     string `yaml:"stage"`
	Power     int    `yaml:"power"`
	Dream     string `yaml:"dream,omitempty"`
	Insurance string `yaml:"insurance,omitempty"` // product offered on success
}

// ProductSpec defines an insurance product line.
type ProductSpec struct {
	Type     string `yaml:"type"`
	Name     string `yaml:"name"`
	BaseCost int    `yaml:"base_cost"`
	Coverage int    `yaml:"coverage"`
	Power    int    `yaml:"power"`
}

// Catalog is the full card pool for a game.
type Catalog struct {
	LifeCards  []CardSpec      `yaml:"life_cards"`
	Challenges []ChallengeSpec `yaml:"challenges"`
	Products   []ProductSpec   `yaml:"insurance_products"`
}

// LoadCatalog reads a catalog from a YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read card catalog: %w", err)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal card catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the invariants the rules engine relies on.
func (c *Catalog) Validate() error {
	if len(c.LifeCards) == 0 {
		return fmt.Errorf("catalog has no life cards")
	}
	for _, spec := range c.LifeCards {
		if spec.Power < 0 {
			return fmt.Errorf("life card %q has negative power", spec.Name)
		}
	}

	stages := map[string]int{}
	for _, spec := range c.Challenges {
		if spec.Power < 0 {
			return fmt.Errorf("challenge %q has negative power", spec.Name)
		}
		stages[spec.Stage]++
	}
	for _, stage := range []domain.Stage{domain.StageYouth, domain.StageMiddle, domain.StageFulfillment} {
		if stages[string(stage)] == 0 {
			return fmt.Errorf("no challenges defined for stage %s", stage)
		}
	}

	for _, p := range c.Products {
		switch domain.InsuranceType(p.Type) {
		case domain.InsuranceMedical, domain.InsuranceLife, domain.InsuranceIncome, domain.InsuranceRecovery:
		default:
			return fmt.Errorf("unknown insurance product type %q", p.Type)
		}
	}
	return nil
}

// DefaultCatalog returns the built-in card pool used when no data file is
// provided.
func DefaultCatalog() *Catalog {
	return &Catalog{
		LifeCards: []CardSpec{
			{Name: "Morning Jog", Power: 2, Cost: 0, Count: 3},
			{Name: "Side Job", Power: 3, Cost: 1, Count: 3},
			{Name: "Night School", Power: 4, Cost: 2, Count: 2},
			{Name: "Family Support", Power: 3, Cost: 0, Count: 2},
			{Name: "Savings Plan", Power: 5, Cost: 3, Count: 2},
			{Name: "Professional License", Type: "skill", Power: 6, Cost: 4, Count: 1},
			{Name: "Mentor Network", Type: "skill", Power: 5, Cost: 3, Count: 1},
			{Name: "Steady Routine", Power: 2, Cost: 0, Count: 3},
			{Name: "Community Ties", Power: 4, Cost: 1, Count: 2},
			{Name: "Second Career", Type: "skill", Power: 7, Cost: 5, Count: 1},
		},
		Challenges: []ChallengeSpec{
			{Name: "Job Interview", Stage: "youth", Power: 6, Dream: "intellectual"},
			{Name: "Marathon", Stage: "youth", Power: 7, Dream: "physical"},
			{Name: "First Apartment", Stage: "youth", Power: 5},
			{Name: "Sudden Illness", Stage: "youth", Power: 8, Insurance: "medical"},
			{Name: "Starting a Family", Stage: "youth", Power: 9, Insurance: "life"},
			{Name: "Career Change", Stage: "middle", Power: 10, Dream: "intellectual"},
			{Name: "Mortgage Payments", Stage: "middle", Power: 11},
			{Name: "Chronic Back Pain", Stage: "middle", Power: 12, Dream: "physical", Insurance: "medical"},
			{Name: "Income Instability", Stage: "middle", Power: 11, Insurance: "income"},
			{Name: "Parents' Care", Stage: "middle", Power: 13, Dream: "mixed"},
			{Name: "Retirement Planning", Stage: "fulfillment", Power: 13, Dream: "intellectual"},
			{Name: "Health Decline", Stage: "fulfillment", Power: 15, Dream: "physical", Insurance: "recovery"},
			{Name: "Legacy Project", Stage: "fulfillment", Power: 14, Dream: "mixed"},
			{Name: "Grand Journey", Stage: "fulfillment", Power: 16, Dream: "physical"},
		},
		Products: []ProductSpec{
			{Type: "medical", Name: "Medical Insurance", BaseCost: 4, Coverage: 80, Power: 2},
			{Type: "life", Name: "Life Insurance", BaseCost: 5, Coverage: 100, Power: 3},
			{Type: "income", Name: "Income Protection", BaseCost: 4, Coverage: 60, Power: 2},
			{Type: "recovery", Name: "Recovery Support", BaseCost: 3, Coverage: 40, Power: 1},
		},
	}
}
