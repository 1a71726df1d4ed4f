package main

import (
	"os"

	"github.com/lox/blackjack/internal/fileutil"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/simulator"
)

// SimulateCmd runs the Monte Carlo simulator
type SimulateCmd struct {
	Rounds  *int   `help:"Rounds to play (overrides simulation.rounds)"`
	Workers *int   `help:"Parallel workers (overrides simulation.workers)"`
	StandOn *int   `name:"stand-on" help:"Stand at or above this score, otherwise hit (overrides simulation.stand_on)"`
	Output  string `short:"o" help:"Also write a JSON report to this file" type:"path"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if c.Rounds != nil {
		cfg.Simulation.Rounds = *c.Rounds
	}
	if c.Workers != nil {
		cfg.Simulation.Workers = *c.Workers
	}
	if c.StandOn != nil {
		cfg.Simulation.StandOn = *c.StandOn
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(os.Stderr, cfg)
	ctx, cancel := signalContext(logger)
	defer cancel()

	seed, _ := randutil.Seed(cfg.Seed)

	sim := simulator.New(simulator.Config{
		Rounds:          cfg.Simulation.Rounds,
		Workers:         cfg.Simulation.Workers,
		StandOn:         cfg.Simulation.StandOn,
		Seed:            seed,
		StartingBalance: cfg.Table.StartingBalance,
		Bet:             cfg.Table.DefaultBet,
		Logger:          logger,
	})

	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	simulator.PrintSummary(os.Stdout, stats, cfg.Simulation.StandOn)

	if c.Output != "" {
		if err := fileutil.WriteJSONAtomic(c.Output, sim.NewReport(stats), 0o644); err != nil {
			return err
		}
		logger.Info("Wrote report", "path", c.Output)
	}
	return nil
}
