package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/table"
	"github.com/lox/blackjack/internal/tui"
)

// PlayCmd runs the terminal table
type PlayCmd struct {
	DealInterval *time.Duration `name:"deal-interval" help:"Pause between opening cards (overrides ui.deal_interval_ms)"`
	LogFile      string         `name:"log-file" help:"Write logs here instead of ui.log_file"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}

	logFile := cfg.UI.LogFile
	if c.LogFile != "" {
		logFile = c.LogFile
	}
	interval := cfg.DealInterval()
	if c.DealInterval != nil {
		interval = *c.DealInterval
	}

	// The terminal belongs to the TUI, so logs go to a file
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer func() { _ = f.Close() }()

	logger := newLogger(f, cfg)

	seed, fixed := randutil.Seed(cfg.Seed)
	logger.Info("Starting table", "seed", seed, "deterministic", fixed, "balance", cfg.Table.StartingBalance)

	game := blackjack.NewGame(
		blackjack.WithRNG(randutil.New(seed)),
		blackjack.WithPlayer(blackjack.NewPlayerWith(cfg.Table.StartingBalance, cfg.Table.DefaultBet)),
		blackjack.WithLogger(logger),
	)
	tbl := table.New(game,
		table.WithBetStep(cfg.Table.BetStep),
		table.WithLogger(logger),
	)

	model := tui.New(tbl, logger, tui.WithDealInterval(interval))
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	logger.Info("Table closed", "rounds", len(tbl.History()), "balance", game.Player().Balance())
	return nil
}
