package server

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/table"
)

// ErrUnknownAction is returned for message types a session cannot apply
var ErrUnknownAction = errors.New("unknown action")

// Session is one player's private table. It is driven from a single
// connection goroutine and is not safe for concurrent use.
type Session struct {
	ID    string
	Seed  int64
	table *table.Table
}

// TableSettings are the bankroll and bet settings each new session starts with
type TableSettings struct {
	StartingBalance int
	DefaultBet      int
	BetStep         int
}

func newSession(id string, seed int64, settings TableSettings, logger *log.Logger) *Session {
	game := blackjack.NewGame(
		blackjack.WithRNG(randutil.New(seed)),
		blackjack.WithPlayer(blackjack.NewPlayerWith(settings.StartingBalance, settings.DefaultBet)),
		blackjack.WithLogger(logger),
	)

	tbl := table.New(game,
		table.WithBetStep(settings.BetStep),
		table.WithLogger(logger.With("session", id)),
	)
	tbl.Open()

	return &Session{ID: id, Seed: seed, table: tbl}
}

// Apply performs a client action against the table
func (s *Session) Apply(action MessageType) error {
	switch action {
	case MessageTypeState:
		return nil
	case MessageTypeHit:
		return s.table.Hit()
	case MessageTypeStand:
		return s.table.Stand()
	case MessageTypeBetUp:
		return s.table.RaiseBet()
	case MessageTypeBetDown:
		return s.table.LowerBet()
	case MessageTypeReset:
		s.table.Reset()
		s.table.Open()
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownAction, action)
}

// State returns the session's view of the table
func (s *Session) State() StateData {
	return StateData{SessionID: s.ID, Snapshot: s.table.Snapshot()}
}

// errorCode maps an action error onto a wire error code
func errorCode(err error) string {
	switch {
	case errors.Is(err, table.ErrNotYourTurn):
		return ErrorCodeNotYourTurn
	case errors.Is(err, table.ErrRoundFinished):
		return ErrorCodeRoundFinished
	case errors.Is(err, blackjack.ErrInvalidBet):
		return ErrorCodeInvalidBet
	case errors.Is(err, blackjack.ErrHandFull):
		return ErrorCodeHandFull
	case errors.Is(err, ErrUnknownAction):
		return ErrorCodeUnknownType
	}
	return ErrorCodeInternal
}
