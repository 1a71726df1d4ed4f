package blackjack

import (
	rand "math/rand/v2"
	"slices"
)

// DeckSize is the number of cards in a full shoe
const DeckSize = 52

// Shoe is the pool of undealt cards. It holds a single deck and is refilled
// with a fresh shuffled deck when it runs out; dealt cards are never returned
// to it.
type Shoe struct {
	cards   []Card
	stacked []Card
	rng     *rand.Rand
	refills int
}

// NewShoe creates an empty shoe. The first Draw fills it. A nil rng falls
// back to the global source.
func NewShoe(rng *rand.Rand) *Shoe {
	return &Shoe{
		cards: make([]Card, 0, DeckSize),
		rng:   rng,
	}
}

// Refill discards whatever is left and loads a fresh shuffled deck
func (s *Shoe) Refill() {
	s.cards = s.cards[:0]
	for _, rank := range Ranks {
		for _, suit := range Suits {
			s.cards = append(s.cards, NewCard(rank, suit))
		}
	}
	s.shuffle()
	s.refills++
}

// Reset refills the shoe and drops any stacked cards
func (s *Shoe) Reset() {
	s.stacked = nil
	s.Refill()
}

// Stack arranges for the given cards to be dealt next, in order. Each stacked
// card is removed from the pool when it is dealt. A stacked card that is no
// longer in the pool when its turn comes is skipped, so a shoe never deals
// the same card twice.
func (s *Shoe) Stack(cards ...Card) {
	s.stacked = append(s.stacked, cards...)
}

// Draw removes and returns one card, picked uniformly from the pool unless
// cards have been stacked
func (s *Shoe) Draw() Card {
	if len(s.cards) == 0 {
		s.Refill()
	}

	for len(s.stacked) > 0 {
		c := s.stacked[0]
		s.stacked = s.stacked[1:]
		if i := slices.Index(s.cards, c); i >= 0 {
			s.cards = slices.Delete(s.cards, i, i+1)
			return c
		}
	}

	i := s.intn(len(s.cards))
	c := s.cards[i]
	s.cards = slices.Delete(s.cards, i, i+1)
	return c
}

// Remaining returns the number of cards left in the pool
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// Contains reports whether the card is still in the pool
func (s *Shoe) Contains(c Card) bool {
	return slices.Contains(s.cards, c)
}

// Cards returns a copy of the pool
func (s *Shoe) Cards() []Card {
	return slices.Clone(s.cards)
}

// Refills returns how many times the shoe has been loaded
func (s *Shoe) Refills() int {
	return s.refills
}

func (s *Shoe) shuffle() {
	swap := func(i, j int) { s.cards[i], s.cards[j] = s.cards[j], s.cards[i] }
	if s.rng != nil {
		s.rng.Shuffle(len(s.cards), swap)
		return
	}
	rand.Shuffle(len(s.cards), swap)
}

func (s *Shoe) intn(n int) int {
	if s.rng != nil {
		return s.rng.IntN(n)
	}
	return rand.IntN(n)
}
