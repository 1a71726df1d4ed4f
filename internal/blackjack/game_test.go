package blackjack

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestGame returns a started game whose next cards are the given ones
func newTestGame(t *testing.T, cards string) *Game {
	t.Helper()
	g := NewGame(
		WithRNG(randutil.New(42)),
		WithLogger(log.New(io.Discard)),
	)
	g.Start()
	if cards != "" {
		g.Shoe().Stack(MustParseCards(cards)...)
	}
	return g
}

// open deals the two dealer cards and the player's first card the way the
// table does
func open(t *testing.T, g *Game) {
	t.Helper()
	assert.False(t, g.Deal(false))
	assert.False(t, g.Deal(false))
	require.NoError(t, g.DealPlayer())
}

func TestNewGame(t *testing.T) {
	g := NewGame()
	assert.Equal(t, Waiting, g.State())
	assert.Equal(t, DefaultBalance, g.Player().Balance())
	assert.Equal(t, DefaultBet, g.Player().Bet())
	assert.Zero(t, g.Dealer().Len())
}

func TestGameStart(t *testing.T) {
	g := newTestGame(t, "Tc 7c 5h 9h")
	open(t, g)
	require.NoError(t, g.Player().SetBet(50))
	require.NoError(t, g.Hit())
	require.True(t, g.State().Finished())
	balance := g.Player().Balance()

	g.Start()

	assert.Equal(t, Waiting, g.State())
	assert.Zero(t, g.Dealer().Len())
	assert.Zero(t, g.Player().Len())
	assert.Zero(t, g.Player().Score())
	assert.Equal(t, balance, g.Player().Balance())
	assert.Equal(t, 50, g.Player().Bet())
	assert.Equal(t, DeckSize, g.Shoe().Remaining())
}

func TestGameWithPlayer(t *testing.T) {
	g := NewGame(WithPlayer(NewPlayerWith(250, 25)))
	g.Start()
	assert.Equal(t, 250, g.Player().Balance())
	assert.Equal(t, 25, g.Player().Bet())
}

func TestGameDeal(t *testing.T) {
	t.Run("without bust check gives the player the turn", func(t *testing.T) {
		g := newTestGame(t, "Kc Qc 5c")
		for range 3 {
			assert.False(t, g.Deal(false))
			assert.Equal(t, Active, g.State())
		}
		assert.Equal(t, 25, g.Dealer().Score())
		assert.Equal(t, DefaultBalance, g.Player().Balance())
	})

	t.Run("bust check settles a dealer bust as a win", func(t *testing.T) {
		g := newTestGame(t, "Kc Qc 5c")
		assert.False(t, g.Deal(true))
		assert.False(t, g.Deal(true))
		assert.True(t, g.Deal(true))
		assert.Equal(t, Win, g.State())
		assert.Equal(t, 1015, g.Player().Balance())
	})
}

func TestGameHitToTwentyOneWins(t *testing.T) {
	g := newTestGame(t, "2c 3c Ah Kd")
	open(t, g)
	require.Equal(t, Active, g.State())
	require.Equal(t, 11, g.Player().Score())

	require.NoError(t, g.Hit())

	assert.Equal(t, 21, g.Player().Score())
	assert.Equal(t, Win, g.State())
	assert.Equal(t, 1015, g.Player().Balance())
	// The dealer does not draw when the player makes 21
	assert.Equal(t, 2, g.Dealer().Len())
}

func TestGameHitBust(t *testing.T) {
	t.Run("loss is debited", func(t *testing.T) {
		g := newTestGame(t, "Tc 7c Kh 3d Qs")
		open(t, g)
		require.NoError(t, g.DealPlayer())
		require.Equal(t, 13, g.Player().Score())

		require.NoError(t, g.Hit())

		assert.Equal(t, 23, g.Player().Score())
		assert.Equal(t, Lose, g.State())
		assert.Equal(t, 990, g.Player().Balance())
	})

	t.Run("uncovered loss is game over", func(t *testing.T) {
		g := newTestGame(t, "Tc 7c Kh 3d Qs")
		g.Player().SetBalance(5)
		open(t, g)
		require.NoError(t, g.DealPlayer())

		require.NoError(t, g.Hit())

		assert.Equal(t, 23, g.Player().Score())
		assert.Equal(t, GameOver, g.State())
		assert.Equal(t, 5, g.Player().Balance())
	})
}

func TestGameHitUnderTwentyOnePlaysDealer(t *testing.T) {
	t.Run("dealer already busted", func(t *testing.T) {
		g := newTestGame(t, "Tc 9c 5c 5h 2h")
		assert.False(t, g.Deal(false))
		assert.False(t, g.Deal(false))
		assert.False(t, g.Deal(false))
		require.NoError(t, g.DealPlayer())
		require.Equal(t, 24, g.Dealer().Score())

		require.NoError(t, g.Hit())

		assert.Equal(t, 7, g.Player().Score())
		assert.Equal(t, Win, g.State())
		assert.Equal(t, 1015, g.Player().Balance())
		assert.Equal(t, 3, g.Dealer().Len())
	})

	t.Run("dealer stands and wins", func(t *testing.T) {
		g := newTestGame(t, "Tc 7c Th 5h")
		open(t, g)

		require.NoError(t, g.Hit())

		assert.Equal(t, 15, g.Player().Score())
		assert.Equal(t, 17, g.Dealer().Score())
		assert.Equal(t, Lose, g.State())
		assert.Equal(t, 990, g.Player().Balance())
	})

	t.Run("dealer draws and busts", func(t *testing.T) {
		g := newTestGame(t, "Tc 4c Th 8h 9d")
		open(t, g)

		require.NoError(t, g.Hit())

		assert.Equal(t, 18, g.Player().Score())
		assert.Equal(t, 23, g.Dealer().Score())
		assert.Equal(t, Win, g.State())
		assert.Equal(t, 1015, g.Player().Balance())
	})
}

func TestGameStand(t *testing.T) {
	tests := []struct {
		name        string
		draw        string
		wantState   State
		wantDealer  int
		wantBalance int
	}{
		{name: "dealer draws to a push", draw: "6s", wantState: Push, wantDealer: 18, wantBalance: 1000},
		{name: "dealer draws to seventeen", draw: "5s", wantState: Win, wantDealer: 17, wantBalance: 1015},
		{name: "dealer draws past the player", draw: "8s", wantState: Lose, wantDealer: 20, wantBalance: 990},
		{name: "dealer busts", draw: "Ts", wantState: Win, wantDealer: 22, wantBalance: 1015},
		{name: "dealer draws twice", draw: "2s 4s", wantState: Push, wantDealer: 18, wantBalance: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Dealer on 12, player on 18
			g := newTestGame(t, "Tc 2c 9h 9d "+tt.draw)
			open(t, g)
			require.NoError(t, g.DealPlayer())
			require.Equal(t, 12, g.Dealer().Score())
			require.Equal(t, 18, g.Player().Score())

			g.Stand()

			assert.Equal(t, tt.wantState, g.State())
			assert.Equal(t, tt.wantDealer, g.Dealer().Score())
			assert.Equal(t, tt.wantBalance, g.Player().Balance())
		})
	}
}

func TestGameStandDealerAlreadyBusted(t *testing.T) {
	g := newTestGame(t, "Tc 9c 5c 5h")
	for range 3 {
		g.Deal(false)
	}
	require.NoError(t, g.DealPlayer())

	g.Stand()

	assert.Equal(t, Win, g.State())
	assert.Equal(t, 3, g.Dealer().Len())
	assert.Equal(t, 1015, g.Player().Balance())
}

func TestGameStandDealerOnSeventeenDoesNotDraw(t *testing.T) {
	g := newTestGame(t, "Tc 7c 9h 9d")
	open(t, g)
	require.NoError(t, g.DealPlayer())

	g.Stand()

	assert.Equal(t, 2, g.Dealer().Len())
	assert.Equal(t, Win, g.State())
}

func TestGameStandLossWithoutCoverIsGameOver(t *testing.T) {
	g := newTestGame(t, "Tc 9c 5h 5d")
	open(t, g)
	require.NoError(t, g.DealPlayer())
	g.Player().SetBalance(3)

	g.Stand()

	assert.Equal(t, GameOver, g.State())
	assert.Equal(t, 3, g.Player().Balance())

	// Only Start leaves GameOver
	g.Start()
	assert.Equal(t, Waiting, g.State())
	assert.Equal(t, 3, g.Player().Balance())
}

func TestGameHitWithFullHand(t *testing.T) {
	g := newTestGame(t, "")
	for _, c := range MustParseCards("Ac Ad Ah As 2c 2d 2h 2s 3c 3d 3h") {
		require.NoError(t, g.Player().AddCard(c))
	}
	score := g.Player().Score()

	err := g.Hit()

	assert.ErrorIs(t, err, ErrHandFull)
	assert.Equal(t, Waiting, g.State())
	assert.Equal(t, score, g.Player().Score())
	assert.Equal(t, DefaultBalance, g.Player().Balance())
}

func TestGameSetBetOverBalance(t *testing.T) {
	g := newTestGame(t, "")
	err := g.Player().SetBet(2000)
	assert.ErrorIs(t, err, ErrInvalidBet)
	assert.Equal(t, DefaultBet, g.Player().Bet())
}

func TestGamePickCardRefillsEmptyShoe(t *testing.T) {
	g := newTestGame(t, "")
	seen := make(map[Card]bool)
	for range DeckSize {
		c := g.PickCard()
		assert.False(t, seen[c])
		seen[c] = true
	}
	assert.Zero(t, g.Shoe().Remaining())

	g.PickCard()
	assert.Equal(t, DeckSize-1, g.Shoe().Remaining())
}

func TestWinnings(t *testing.T) {
	assert.Equal(t, 15, Winnings(10))
	assert.Equal(t, 22, Winnings(15))
	assert.Equal(t, 1, Winnings(1))
	assert.Equal(t, 1500, Winnings(1000))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Waiting...", Waiting.String())
	assert.Equal(t, "Your Turn", Active.String())
	assert.Equal(t, "You Win!", Win.String())
	assert.Equal(t, "You Lose!", Lose.String())
	assert.Equal(t, "Push - Draw!", Push.String())
	assert.Equal(t, "Game Over!", GameOver.String())

	assert.False(t, Waiting.Finished())
	assert.False(t, Active.Finished())
	for _, s := range []State{Win, Lose, Push, GameOver} {
		assert.True(t, s.Finished(), s.Name())
	}
}
