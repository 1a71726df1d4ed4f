// Package simulator plays many blackjack rounds with a fixed policy and
// collects the results.
package simulator

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
	"github.com/lox/blackjack/internal/table"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds          int
	Workers         int
	StandOn         int // stand when the player's score is at least this, otherwise hit
	Seed            int64
	StartingBalance int
	Bet             int
	Logger          *log.Logger
}

// Simulator runs blackjack round simulations
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.StartingBalance <= 0 {
		config.StartingBalance = blackjack.DefaultBalance
	}
	if config.Bet <= 0 {
		config.Bet = blackjack.DefaultBet
	}
	if config.StandOn == 0 {
		config.StandOn = blackjack.DealerStandsOn
	}

	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Simulator{
		config: config,
		logger: logger.WithPrefix("simulator"),
	}
}

// Run plays the configured number of rounds spread across the workers
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", s.config.Rounds)
	}

	workers := min(s.config.Workers, s.config.Rounds)
	perWorker := s.config.Rounds / workers
	remainder := s.config.Rounds % workers

	s.logger.Info("Starting simulation",
		"rounds", s.config.Rounds,
		"workers", workers,
		"stand_on", s.config.StandOn,
		"seed", s.config.Seed)

	g, ctx := errgroup.WithContext(ctx)
	results := make(chan *statistics.Statistics, workers)

	for w := range workers {
		rounds := perWorker
		if w < remainder {
			rounds++
		}
		seed := randutil.Derive(s.config.Seed, w)

		g.Go(func() error {
			stats, err := s.runWorker(ctx, seed, rounds)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			results <- stats
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(results)
	}()

	total := &statistics.Statistics{}
	for stats := range results {
		total.Merge(stats)
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := total.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.logger.Info("Simulation complete", "rounds", total.Rounds, "mean", total.Mean())
	return total, nil
}

func (s *Simulator) runWorker(ctx context.Context, seed int64, rounds int) (*statistics.Statistics, error) {
	game := blackjack.NewGame(
		blackjack.WithRNG(randutil.New(seed)),
		blackjack.WithPlayer(blackjack.NewPlayerWith(s.config.StartingBalance, s.config.Bet)),
	)
	tbl := table.New(game)
	stats := &statistics.Statistics{}

	for i := range rounds {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if i > 0 {
			tbl.Reset()
		}
		stats.Add(s.playRound(tbl, seed))
	}

	s.logger.Debug("Worker finished", "seed", seed, "rounds", rounds, "mean", stats.Mean())
	return stats, nil
}

// playRound deals the opening and applies the policy once
func (s *Simulator) playRound(tbl *table.Table, seed int64) statistics.RoundResult {
	player := tbl.Game().Player()
	before := player.Balance()

	tbl.Open()

	var err error
	if player.Score() >= s.config.StandOn {
		err = tbl.Stand()
	} else {
		err = tbl.Hit()
	}
	if err != nil {
		s.logger.Warn("Round ended early", "error", err, "seed", seed)
	}

	state := tbl.Game().State()
	result := statistics.RoundResult{
		Net:   float64(player.Balance()-before) / float64(player.Bet()),
		State: state,
		Seed:  seed,
	}

	// Top the bankroll back up so every round is played for the same stake
	if state == blackjack.GameOver || !player.CanCover() {
		player.SetBalance(s.config.StartingBalance)
	}

	return result
}

// PrintSummary writes a summary of simulation results
func PrintSummary(w io.Writer, stats *statistics.Statistics, standOn int) {
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== RESULTS: stand on %d ===\n", standOn)
	fmt.Fprintf(w, "Rounds played: %d\n", stats.Rounds)

	fmt.Fprintf(w, "\n=== OUTCOMES ===\n")
	fmt.Fprintf(w, "Wins:      %d (%.2f%%)\n", stats.Wins, stats.Rate(stats.Wins)*100)
	fmt.Fprintf(w, "Losses:    %d (%.2f%%)\n", stats.Losses, stats.Rate(stats.Losses)*100)
	fmt.Fprintf(w, "Pushes:    %d (%.2f%%)\n", stats.Pushes, stats.Rate(stats.Pushes)*100)
	fmt.Fprintf(w, "Game over: %d (%.2f%%)\n", stats.GameOvers, stats.Rate(stats.GameOvers)*100)

	fmt.Fprintf(w, "\n=== STATISTICAL RESULTS ===\n")
	fmt.Fprintf(w, "Mean: %.4f bets/round\n", stats.Mean())
	fmt.Fprintf(w, "Std Dev: %.4f bets\n", stats.StdDev())
	fmt.Fprintf(w, "Std Error: %.4f bets\n", stats.StdError())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f] bets/round\n", low, high)
	fmt.Fprintf(w, "Median: %.4f bets\n", stats.Median())
	fmt.Fprintf(w, "5th/95th percentile: %.4f / %.4f bets\n", stats.Percentile(0.05), stats.Percentile(0.95))
}

// Report is the machine-readable form of a simulation result
type Report struct {
	Rounds    int        `json:"rounds"`
	Workers   int        `json:"workers"`
	StandOn   int        `json:"standOn"`
	Seed      int64      `json:"seed"`
	Wins      int        `json:"wins"`
	Losses    int        `json:"losses"`
	Pushes    int        `json:"pushes"`
	GameOvers int        `json:"gameOvers"`
	Mean      float64    `json:"mean"`
	StdDev    float64    `json:"stdDev"`
	StdError  float64    `json:"stdError"`
	CI95      [2]float64 `json:"ci95"`
	Median    float64    `json:"median"`
	P05       float64    `json:"p05"`
	P95       float64    `json:"p95"`
}

// NewReport summarises stats for the simulator's configuration
func (s *Simulator) NewReport(stats *statistics.Statistics) Report {
	low, high := stats.ConfidenceInterval95()
	return Report{
		Rounds:    stats.Rounds,
		Workers:   s.config.Workers,
		StandOn:   s.config.StandOn,
		Seed:      s.config.Seed,
		Wins:      stats.Wins,
		Losses:    stats.Losses,
		Pushes:    stats.Pushes,
		GameOvers: stats.GameOvers,
		Mean:      stats.Mean(),
		StdDev:    stats.StdDev(),
		StdError:  stats.StdError(),
		CI95:      [2]float64{low, high},
		Median:    stats.Median(),
		P05:       stats.Percentile(0.05),
		P95:       stats.Percentile(0.95),
	}
}
