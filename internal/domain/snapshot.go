package domain

// Snapshot is a serializable, deep-copied view of a game for rendering and
// persistence. Taking a snapshot never mutates the game; two snapshots
// taken without an intervening mutation are structurally equal.
type Snapshot struct {
	ID     string `json:"id"`
	Status Status `json:"status"`
	Phase  Phase  `json:"phase"`
	Stage  Stage  `json:"stage"`
	Turn   int    `json:"turn"`

	Vitality    int `json:"vitality"`
	MaxVitality int `json:"max_vitality"`

	DeckSize     int    `json:"deck_size"`
	Hand         []Card `json:"hand"`
	DiscardCount int    `json:"discard_count"`

	InsuranceCards    []Card  `json:"insurance_cards"`
	ExpiredInsurances []Card  `json:"expired_insurances"`
	InsuranceBurden   float64 `json:"insurance_burden"`

	CurrentChallenge *Card         `json:"current_challenge,omitempty"`
	PendingChoices   []Card        `json:"pending_choices,omitempty"`
	PendingInsurance InsuranceType `json:"pending_insurance,omitempty"`

	Stats Stats `json:"stats"`
}

// Snapshot returns the current game state as a plain serializable value.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		ID:                g.ID,
		Status:            g.Status,
		Phase:             g.Phase,
		Stage:             g.Stage,
		Turn:              g.Turn,
		Vitality:          g.Vitality.Value(),
		MaxVitality:       g.Vitality.Max(),
		DeckSize:          g.Deck.Size(),
		Hand:              append([]Card{}, g.Hand...),
		DiscardCount:      len(g.DiscardPile),
		InsuranceCards:    append([]Card{}, g.InsuranceCards...),
		ExpiredInsurances: append([]Card{}, g.ExpiredInsurances...),
		InsuranceBurden:   g.Burden.Amount(),
		Stats:             g.Stats,
	}
	if g.CurrentChallenge != nil {
		challenge := *g.CurrentChallenge
		snap.CurrentChallenge = &challenge
	}
	if len(g.PendingChoices) > 0 {
		snap.PendingChoices = append([]Card{}, g.PendingChoices...)
	}
	snap.PendingInsurance = g.PendingInsurance
	return snap
}
