package blackjack

// State is the phase of the current round
type State int

const (
	// Waiting means a decision is pending and the player cannot act
	Waiting State = iota
	// Active means the player may hit or stand
	Active
	// Win means the player won the round
	Win
	// Lose means the dealer won the round
	Lose
	// Push means the round tied
	Push
	// GameOver means the player lost a round they could not cover
	GameOver
)

// String returns the status line shown to the player
func (s State) String() string {
	switch s {
	case Waiting:
		return "Waiting..."
	case Active:
		return "Your Turn"
	case Win:
		return "You Win!"
	case Lose:
		return "You Lose!"
	case Push:
		return "Push - Draw!"
	case GameOver:
		return "Game Over!"
	default:
		return "Unknown"
	}
}

// Name returns a stable lowercase identifier for wire formats and logs
func (s State) Name() string {
	switch s {
	case Waiting:
		return "waiting"
	case Active:
		return "active"
	case Win:
		return "win"
	case Lose:
		return "lose"
	case Push:
		return "push"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Finished reports whether the round has been settled
func (s State) Finished() bool {
	return s == Win || s == Lose || s == Push || s == GameOver
}
