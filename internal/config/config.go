// Package config loads blackjack settings from an optional HCL file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// DefaultFile is the config file looked for in the working directory
const DefaultFile = "blackjack.hcl"

// Config represents the complete configuration
type Config struct {
	LogLevel   string              `hcl:"log_level,optional"`
	Seed       *int64              `hcl:"seed,optional"`
	Table      *TableSettings      `hcl:"table,block"`
	UI         *UISettings         `hcl:"ui,block"`
	Server     *ServerSettings     `hcl:"server,block"`
	Simulation *SimulationSettings `hcl:"simulation,block"`
}

// TableSettings controls the bankroll and the bet buttons
type TableSettings struct {
	StartingBalance int `hcl:"starting_balance,optional"`
	DefaultBet      int `hcl:"default_bet,optional"`
	BetStep         int `hcl:"bet_step,optional"`
}

// UISettings controls the terminal front-end
type UISettings struct {
	DealIntervalMs *int   `hcl:"deal_interval_ms,optional"`
	LogFile        string `hcl:"log_file,optional"`
}

// ServerSettings controls the websocket table service
type ServerSettings struct {
	Address string `hcl:"address,optional"`
}

// SimulationSettings controls the Monte Carlo runner
type SimulationSettings struct {
	Rounds  int `hcl:"rounds,optional"`
	Workers int `hcl:"workers,optional"`
	StandOn int `hcl:"stand_on,optional"`
}

// Default returns the built-in configuration
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from an HCL file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source, fills in defaults and validates the result
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if c.Table == nil {
		c.Table = &TableSettings{}
	}
	if c.Table.StartingBalance == 0 {
		c.Table.StartingBalance = 1000
	}
	if c.Table.DefaultBet == 0 {
		c.Table.DefaultBet = 10
	}
	if c.Table.BetStep == 0 {
		c.Table.BetStep = 10
	}

	if c.UI == nil {
		c.UI = &UISettings{}
	}
	if c.UI.DealIntervalMs == nil {
		interval := 250
		c.UI.DealIntervalMs = &interval
	}
	if c.UI.LogFile == "" {
		c.UI.LogFile = "blackjack.log"
	}

	if c.Server == nil {
		c.Server = &ServerSettings{}
	}
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}

	if c.Simulation == nil {
		c.Simulation = &SimulationSettings{}
	}
	if c.Simulation.Rounds == 0 {
		c.Simulation.Rounds = 100000
	}
	if c.Simulation.Workers == 0 {
		c.Simulation.Workers = 4
	}
	if c.Simulation.StandOn == 0 {
		c.Simulation.StandOn = 17
	}
}

// Validate checks the configuration for values the game cannot use
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}

	if c.Table.StartingBalance <= 0 {
		return fmt.Errorf("table: starting_balance must be positive")
	}
	if c.Table.DefaultBet <= 0 || c.Table.DefaultBet > c.Table.StartingBalance {
		return fmt.Errorf("table: default_bet must be between 1 and starting_balance (%d)", c.Table.StartingBalance)
	}
	if c.Table.BetStep <= 0 {
		return fmt.Errorf("table: bet_step must be positive")
	}

	if *c.UI.DealIntervalMs < 0 {
		return fmt.Errorf("ui: deal_interval_ms cannot be negative")
	}

	if c.Simulation.Rounds <= 0 {
		return fmt.Errorf("simulation: rounds must be positive")
	}
	if c.Simulation.Workers <= 0 {
		return fmt.Errorf("simulation: workers must be positive")
	}
	if c.Simulation.StandOn < 2 || c.Simulation.StandOn > 21 {
		return fmt.Errorf("simulation: stand_on must be between 2 and 21")
	}

	return nil
}

// DealInterval returns the pause between opening cards
func (c *Config) DealInterval() time.Duration {
	return time.Duration(*c.UI.DealIntervalMs) * time.Millisecond
}

// Level returns the configured log level
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
