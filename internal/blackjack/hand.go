package blackjack

import "fmt"

// MaxHandSize is the most cards a single hand may hold
const MaxHandSize = 11

// Hand is an ordered set of cards with a running score.
//
// The score is accumulated as cards arrive and is never recomputed, so an
// ace is valued against the score at the moment it was added: 5, 10, A
// scores 16 but A, 5, 10 scores 26 because the ace already counted as 11.
type Hand struct {
	cards []Card
	score int
}

// NewHand creates an empty hand
func NewHand() *Hand {
	return &Hand{cards: make([]Card, 0, MaxHandSize)}
}

// AddCard appends a card and adds its value to the score
func (h *Hand) AddCard(c Card) error {
	if len(h.cards) >= MaxHandSize {
		return ErrHandFull
	}
	h.cards = append(h.cards, c)
	h.score += c.Value(h.score)
	return nil
}

// Score returns the running score
func (h *Hand) Score() int {
	return h.score
}

// Card returns the card at index i
func (h *Hand) Card(i int) (Card, error) {
	if i < 0 || i >= len(h.cards) {
		return Card{}, fmt.Errorf("%w: %d (hand holds %d)", ErrIndexOutOfRange, i, len(h.cards))
	}
	return h.cards[i], nil
}

// Cards returns a copy of the cards in the order they were added
func (h *Hand) Cards() []Card {
	out := make([]Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// Len returns the number of cards held
func (h *Hand) Len() int {
	return len(h.cards)
}

// IsFull reports whether another card would be rejected
func (h *Hand) IsFull() bool {
	return len(h.cards) >= MaxHandSize
}

// IsBust reports whether the score is over 21
func (h *Hand) IsBust() bool {
	return h.score > 21
}
