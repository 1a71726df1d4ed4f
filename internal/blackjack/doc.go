// Package blackjack implements the rules engine for single-player blackjack.
//
// The main type is Game, which owns a single-deck Shoe, the dealer's Hand and
// the Player, and moves the round through its States.
//
// # Basic Usage
//
//	g := blackjack.NewGame()
//	g.Start()
//	g.Deal(false) // dealer up card
//	g.Deal(false) // dealer hole card, player may now act
//	_ = g.DealPlayer()
//	if err := g.Hit(); err != nil {
//	    // hand full
//	}
//	if g.State().Finished() {
//	    fmt.Println(g.State(), g.Player().Balance())
//	}
//
// Hit and Stand both settle the round: a hit that leaves the player under 21
// plays out the dealer's hand immediately.
//
// # Deterministic Testing
//
// Inject a seeded source or stack the cards to be dealt next:
//
//	g := blackjack.NewGame(blackjack.WithRNG(randutil.New(42)))
//	g.Start()
//	g.Shoe().Stack(blackjack.MustParseCards("Ks 2h Ah")...)
//
// # Scoring
//
// Scores are accumulated as cards are added and never recomputed, so an ace
// is worth 11 or 1 depending on the score at the moment it arrived.
package blackjack
