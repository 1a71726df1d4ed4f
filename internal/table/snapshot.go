package table

import "github.com/lox/blackjack/internal/blackjack"

// CardView is a card as it should be drawn
type CardView struct {
	Label  string `json:"label"`
	Red    bool   `json:"red,omitempty"`
	Hidden bool   `json:"hidden,omitempty"`
}

// Snapshot is everything a front-end needs to draw the table
type Snapshot struct {
	Round          int        `json:"round"`
	State          string     `json:"state"`
	Status         string     `json:"status"`
	Dealer         []CardView `json:"dealer"`
	DealerScore    int        `json:"dealerScore"`
	DealerRevealed bool       `json:"dealerRevealed"`
	Player         []CardView `json:"player"`
	PlayerScore    int        `json:"playerScore"`
	Bet            int        `json:"bet"`
	Balance        int        `json:"balance"`
	Dealing        bool       `json:"dealing"`
	CanAct         bool       `json:"canAct"`
}

// Snapshot captures the table for rendering. Until the player acts only the
// dealer's first card is shown and the dealer score counts that card alone.
func (t *Table) Snapshot() Snapshot {
	g := t.game
	state := g.State()

	s := Snapshot{
		Round:          t.round,
		State:          state.Name(),
		Status:         state.String(),
		DealerRevealed: t.revealed,
		Player:         viewCards(g.Player().Cards(), false),
		PlayerScore:    g.Player().Score(),
		Bet:            g.Player().Bet(),
		Balance:        g.Player().Balance(),
		Dealing:        t.Dealing(),
		CanAct:         t.CanAct(),
	}

	dealer := g.Dealer().Cards()
	if t.revealed {
		s.Dealer = viewCards(dealer, false)
		s.DealerScore = g.Dealer().Score()
	} else {
		s.Dealer = viewCards(dealer, true)
		if len(dealer) > 0 {
			s.DealerScore = dealer[0].Value(0)
		}
	}

	return s
}

func viewCards(cards []blackjack.Card, hideHole bool) []CardView {
	views := make([]CardView, len(cards))
	for i, c := range cards {
		if hideHole && i > 0 {
			views[i] = CardView{Label: "??", Hidden: true}
			continue
		}
		views[i] = CardView{Label: c.String(), Red: c.IsRed()}
	}
	return views
}
