// Package table drives a blackjack game the way a player at the table sees
// it: an opening deal, action buttons that only work on the player's turn,
// bet buttons, a reset button and a dealer hole card that stays face down
// until the player acts.
package table

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/blackjack"
)

// DefaultBetStep is how much the bet buttons move the wager
const DefaultBetStep = 10

// openingSteps is two dealer cards followed by one player card
const openingSteps = 3

var (
	// ErrNotYourTurn is returned for actions attempted before the player's turn
	ErrNotYourTurn = errors.New("not your turn")
	// ErrRoundFinished is returned for actions attempted after the round settled
	ErrRoundFinished = errors.New("round finished")
)

// RoundResult records how a finished round went
type RoundResult struct {
	Round       int
	State       blackjack.State
	PlayerScore int
	DealerScore int
	Net         int
	Balance     int
}

// Table wraps a Game with turn gating and round bookkeeping
type Table struct {
	game    *blackjack.Game
	logger  *log.Logger
	betStep int

	dealt        int
	revealed     bool
	round        int
	startBalance int
	recorded     bool
	history      []RoundResult
}

// Option configures a Table
type Option func(*Table)

// WithBetStep sets how far RaiseBet and LowerBet move the wager
func WithBetStep(step int) Option {
	return func(t *Table) {
		t.betStep = step
	}
}

// WithLogger sets the table logger
func WithLogger(logger *log.Logger) Option {
	return func(t *Table) {
		t.logger = logger.WithPrefix("table")
	}
}

// New creates a table around game and starts the first round
func New(game *blackjack.Game, opts ...Option) *Table {
	t := &Table{
		game:    game,
		logger:  log.New(io.Discard),
		betStep: DefaultBetStep,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.Reset()
	return t
}

// Reset starts a new round. It is allowed at any time, including game over.
func (t *Table) Reset() {
	t.game.Start()
	t.dealt = 0
	t.revealed = false
	t.recorded = false
	t.round++
	t.startBalance = t.game.Player().Balance()

	t.logger.Info("New round", "round", t.round, "balance", t.startBalance, "bet", t.game.Player().Bet())
}

// Dealing reports whether the opening deal is still in progress
func (t *Table) Dealing() bool {
	return t.dealt < openingSteps
}

// Step deals the next opening card and reports whether more remain
func (t *Table) Step() bool {
	if !t.Dealing() {
		return false
	}

	if t.dealt < openingSteps-1 {
		t.game.Deal(false)
	} else if err := t.game.DealPlayer(); err != nil {
		t.logger.Error("Failed to deal opening card", "error", err)
	}
	t.dealt++

	return t.Dealing()
}

// Open deals the whole opening at once
func (t *Table) Open() {
	for t.Step() {
	}
}

// CanAct reports whether Hit, Stand and the bet buttons are live
func (t *Table) CanAct() bool {
	return !t.Dealing() && t.game.State() == blackjack.Active
}

// checkTurn explains why the player may not act, or returns nil
func (t *Table) checkTurn() error {
	switch {
	case t.game.State().Finished():
		return ErrRoundFinished
	case !t.CanAct():
		return ErrNotYourTurn
	}
	return nil
}

// Hit takes another card and settles the round
func (t *Table) Hit() error {
	if err := t.checkTurn(); err != nil {
		return fmt.Errorf("hit: %w", err)
	}
	t.revealed = true
	if err := t.game.Hit(); err != nil {
		return fmt.Errorf("hit: %w", err)
	}
	t.record()
	return nil
}

// Stand ends the turn and settles the round
func (t *Table) Stand() error {
	if err := t.checkTurn(); err != nil {
		return fmt.Errorf("stand: %w", err)
	}
	t.revealed = true
	t.game.Stand()
	t.record()
	return nil
}

// RaiseBet increases the wager by one step
func (t *Table) RaiseBet() error {
	return t.changeBet(t.betStep)
}

// LowerBet decreases the wager by one step
func (t *Table) LowerBet() error {
	return t.changeBet(-t.betStep)
}

func (t *Table) changeBet(delta int) error {
	if err := t.checkTurn(); err != nil {
		return fmt.Errorf("bet: %w", err)
	}
	player := t.game.Player()
	if err := player.SetBet(player.Bet() + delta); err != nil {
		return fmt.Errorf("bet: %w", err)
	}
	t.logger.Debug("Bet changed", "bet", player.Bet())
	return nil
}

func (t *Table) record() {
	state := t.game.State()
	if !state.Finished() || t.recorded {
		return
	}
	t.recorded = true

	result := RoundResult{
		Round:       t.round,
		State:       state,
		PlayerScore: t.game.Player().Score(),
		DealerScore: t.game.Dealer().Score(),
		Balance:     t.game.Player().Balance(),
		Net:         t.game.Player().Balance() - t.startBalance,
	}
	t.history = append(t.history, result)

	t.logger.Info("Round settled",
		"round", result.Round,
		"result", state.Name(),
		"player", result.PlayerScore,
		"dealer", result.DealerScore,
		"net", result.Net,
		"balance", result.Balance)
}

// History returns the settled rounds, oldest first
func (t *Table) History() []RoundResult {
	out := make([]RoundResult, len(t.history))
	copy(out, t.history)
	return out
}

// Revealed reports whether the dealer's hole card is face up
func (t *Table) Revealed() bool {
	return t.revealed
}

// Round returns the number of the current round, starting at 1
func (t *Table) Round() int {
	return t.round
}

// Game returns the underlying game
func (t *Table) Game() *blackjack.Game {
	return t.game
}
