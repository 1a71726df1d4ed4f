package blackjack

import "errors"

var (
	// ErrHandFull is returned when a card is added to a hand already holding MaxHandSize cards
	ErrHandFull = errors.New("hand is full")

	// ErrInvalidBet is returned when a bet is not positive or exceeds the balance
	ErrInvalidBet = errors.New("invalid bet")

	// ErrIndexOutOfRange is returned for card lookups past either end of a hand
	ErrIndexOutOfRange = errors.New("card index out of range")
)
