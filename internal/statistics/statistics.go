// Package statistics accumulates per-round blackjack results.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/blackjack/internal/blackjack"
)

// RoundResult represents the outcome of a single round
type RoundResult struct {
	Net   float64         // Net result measured in bets
	State blackjack.State // Final state of the round
	Seed  int64           // RNG seed of the worker that played it
}

// Statistics tracks simulation results
type Statistics struct {
	Rounds  int
	SumNet  float64
	SumNet2 float64   // Sum of squares for variance calculation
	Values  []float64 // All values for median/percentile calculation

	Wins      int
	Losses    int
	Pushes    int
	GameOvers int
	Unsettled int // Rounds that stopped without an outcome (full hand)
}

// Mean returns the mean net result in bets per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a round result
func (s *Statistics) Add(result RoundResult) {
	s.Rounds++
	s.SumNet += result.Net
	s.SumNet2 += result.Net * result.Net
	s.Values = append(s.Values, result.Net)

	switch result.State {
	case blackjack.Win:
		s.Wins++
	case blackjack.Lose:
		s.Losses++
	case blackjack.Push:
		s.Pushes++
	case blackjack.GameOver:
		s.GameOvers++
	default:
		s.Unsettled++
	}
}

// Merge folds another set of statistics into s
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	s.Values = append(s.Values, other.Values...)
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Pushes += other.Pushes
	s.GameOvers += other.GameOvers
	s.Unsettled += other.Unsettled
}

// Rate returns count as a fraction of all rounds
func (s *Statistics) Rate(count int) float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(count) / float64(s.Rounds)
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks the counters agree with each other
func (s *Statistics) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}

	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)",
			len(s.Values), s.Rounds)
	}

	outcomes := s.Wins + s.Losses + s.Pushes + s.GameOvers + s.Unsettled
	if outcomes != s.Rounds {
		return fmt.Errorf("outcome total (%d) does not match rounds count (%d)", outcomes, s.Rounds)
	}

	return nil
}
