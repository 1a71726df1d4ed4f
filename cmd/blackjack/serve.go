package main

import (
	"os"

	"github.com/lox/blackjack/internal/server"
)

// ServeCmd runs the websocket table service
type ServeCmd struct {
	Addr string `help:"Listen address (overrides server.address)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.Server.Address = c.Addr
	}

	logger := newLogger(os.Stderr, cfg)
	ctx, cancel := signalContext(logger)
	defer cancel()

	s := server.NewServer(logger, server.WithConfig(cfg))

	logger.Info("Starting blackjack server",
		"address", s.Addr(),
		"starting_balance", cfg.Table.StartingBalance,
		"default_bet", cfg.Table.DefaultBet,
		"bet_step", cfg.Table.BetStep)

	return s.ListenAndServe(ctx)
}
