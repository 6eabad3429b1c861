package domain

import "math/rand"

// Deck is an ordered pile of cards drawn from the top.
type Deck struct {
	cards []Card
}

// NewDeck builds a deck from the given cards, copying the slice.
func NewDeck(cards []Card) *Deck {
	return &Deck{cards: append([]Card{}, cards...)}
}

// Shuffle randomizes card order using the provided source.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card. ok is false on an empty deck.
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	top := d.cards[0]
	d.cards = d.cards[1:]
	return top, true
}

// DrawN draws up to n cards, fewer when the deck runs out.
func (d *Deck) DrawN(n int) []Card {
	drawn := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		card, ok := d.Draw()
		if !ok {
			break
		}
		drawn = append(drawn, card)
	}
	return drawn
}

// Add places cards on the bottom of the deck.
func (d *Deck) Add(cards ...Card) {
	d.cards = append(d.cards, cards...)
}

// Size returns the number of cards remaining.
func (d *Deck) Size() int { return len(d.cards) }
