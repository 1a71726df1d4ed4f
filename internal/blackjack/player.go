package blackjack

import "fmt"

const (
	// DefaultBalance is the bankroll a new player starts with
	DefaultBalance = 1000

	// DefaultBet is the wager a new player starts with
	DefaultBet = 10
)

// Player is a hand plus wagering state
type Player struct {
	hand    *Hand
	bet     int
	balance int
}

// NewPlayer creates a player with the default balance and bet
func NewPlayer() *Player {
	return NewPlayerWith(DefaultBalance, DefaultBet)
}

// NewPlayerWith creates a player with an explicit balance and bet. The values
// are taken as given, which is how a reset carries them into the next round.
func NewPlayerWith(balance, bet int) *Player {
	return &Player{
		hand:    NewHand(),
		bet:     bet,
		balance: balance,
	}
}

// Hand returns the player's cards
func (p *Player) Hand() *Hand { return p.hand }

// AddCard adds a card to the player's hand
func (p *Player) AddCard(c Card) error { return p.hand.AddCard(c) }

// Score returns the player's running score
func (p *Player) Score() int { return p.hand.Score() }

// Cards returns a copy of the player's cards
func (p *Player) Cards() []Card { return p.hand.Cards() }

// Card returns the player's card at index i
func (p *Player) Card(i int) (Card, error) { return p.hand.Card(i) }

// Len returns the number of cards the player holds
func (p *Player) Len() int { return p.hand.Len() }

// Bet returns the current wager
func (p *Player) Bet() int { return p.bet }

// Balance returns the current bankroll
func (p *Player) Balance() int { return p.balance }

// SetBet changes the wager. The bet must be positive and no more than the balance.
func (p *Player) SetBet(bet int) error {
	if bet <= 0 || bet > p.balance {
		return fmt.Errorf("%w: %d with balance %d", ErrInvalidBet, bet, p.balance)
	}
	p.bet = bet
	return nil
}

// SetBalance replaces the bankroll without validation
func (p *Player) SetBalance(balance int) {
	p.balance = balance
}

// CanCover reports whether the balance can pay a lost bet
func (p *Player) CanCover() bool {
	return p.balance >= p.bet
}
