package blackjack

import (
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
)

// DealerStandsOn is the lowest score the dealer stops drawing at
const DealerStandsOn = 17

// Game owns the shoe, the dealer's hand and the player, and settles rounds.
// It is not safe for concurrent use.
type Game struct {
	shoe   *Shoe
	dealer *Hand
	player *Player
	state  State
	logger *log.Logger
}

// Option configures a Game
type Option func(*Game)

// WithRNG sets the random source used to shuffle and draw
func WithRNG(rng *rand.Rand) Option {
	return func(g *Game) {
		g.shoe = NewShoe(rng)
	}
}

// WithShoe replaces the shoe, typically with one prepared by a test
func WithShoe(shoe *Shoe) Option {
	return func(g *Game) {
		g.shoe = shoe
	}
}

// WithPlayer seeds the game with a player whose balance and bet carry into Start
func WithPlayer(p *Player) Option {
	return func(g *Game) {
		g.player = p
	}
}

// WithLogger sets the logger for round transitions
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) {
		g.logger = logger.WithPrefix("engine")
	}
}

// NewGame creates a game in the Waiting state. Call Start before dealing.
func NewGame(opts ...Option) *Game {
	g := &Game{
		dealer: NewHand(),
		player: NewPlayer(),
		state:  Waiting,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.shoe == nil {
		g.shoe = NewShoe(nil)
	}
	return g
}

// Start begins a new round: the shoe is refilled, the dealer gets an empty
// hand and the player gets an empty hand keeping their balance and bet.
func (g *Game) Start() {
	g.shoe.Reset()
	g.dealer = NewHand()
	g.player = NewPlayerWith(g.player.Balance(), g.player.Bet())
	g.state = Waiting

	g.logger.Debug("Round started", "balance", g.player.Balance(), "bet", g.player.Bet())
}

// PickCard draws one card from the shoe, refilling it first if it is empty
func (g *Game) PickCard() Card {
	return g.shoe.Draw()
}

// Deal gives the dealer one card. With checkBust set, a dealer bust settles
// the round as a win and Deal returns true so the caller stops dealing.
// Otherwise the player is given the turn.
func (g *Game) Deal(checkBust bool) bool {
	card := g.PickCard()
	if err := g.dealer.AddCard(card); err != nil {
		g.logger.Warn("Dealer could not take card", "card", card, "error", err)
	}

	if checkBust && g.dealer.IsBust() {
		g.logger.Debug("Dealer busted", "score", g.dealer.Score())
		g.win()
		return true
	}

	g.state = Active
	return false
}

// DealPlayer gives the player one card without settling anything. It is used
// for the opening card.
func (g *Game) DealPlayer() error {
	return g.player.AddCard(g.PickCard())
}

// Hit gives the player one more card and settles the round. A bust loses,
// exactly 21 wins, and anything lower plays out the dealer's hand. If the
// player's hand is full ErrHandFull is returned and the round stays Waiting.
func (g *Game) Hit() error {
	g.state = Waiting

	if err := g.DealPlayer(); err != nil {
		return err
	}

	score := g.player.Score()
	g.logger.Debug("Player hit", "score", score)

	switch {
	case score > 21:
		g.lose()
	case score == 21:
		g.win()
	default:
		g.playDealer()
	}
	return nil
}

// Stand ends the player's turn and plays out the dealer's hand
func (g *Game) Stand() {
	g.state = Waiting
	g.logger.Debug("Player stood", "score", g.player.Score())
	g.playDealer()
}

// playDealer draws for the dealer until 17 or more and compares scores
func (g *Game) playDealer() {
	if g.dealer.IsBust() {
		g.win()
		return
	}

	for g.dealer.Score() < DealerStandsOn && !g.dealer.IsFull() {
		if g.Deal(true) {
			return
		}
	}

	player, dealer := g.player.Score(), g.dealer.Score()
	switch {
	case player > dealer:
		g.win()
	case player < dealer:
		g.lose()
	default:
		g.state = Push
		g.logger.Debug("Round pushed", "score", player)
	}
}

func (g *Game) win() {
	g.state = Win
	g.player.SetBalance(g.player.Balance() + Winnings(g.player.Bet()))
	g.logger.Debug("Player won", "balance", g.player.Balance())
}

func (g *Game) lose() {
	if !g.player.CanCover() {
		g.state = GameOver
		g.logger.Debug("Player cannot cover bet", "balance", g.player.Balance(), "bet", g.player.Bet())
		return
	}
	g.state = Lose
	g.player.SetBalance(g.player.Balance() - g.player.Bet())
	g.logger.Debug("Player lost", "balance", g.player.Balance())
}

// Winnings returns the amount credited for a winning bet: one and a half
// times the stake, rounded down. The stake itself is never debited on a win.
func Winnings(bet int) int {
	return bet * 3 / 2
}

// Dealer returns the dealer's hand
func (g *Game) Dealer() *Hand { return g.dealer }

// Player returns the player
func (g *Game) Player() *Player { return g.player }

// State returns the current round state
func (g *Game) State() State { return g.state }

// Shoe returns the undealt cards
func (g *Game) Shoe() *Shoe { return g.shoe }
