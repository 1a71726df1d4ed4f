package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Nil(t, cfg.Seed)
	assert.Equal(t, 1000, cfg.Table.StartingBalance)
	assert.Equal(t, 10, cfg.Table.DefaultBet)
	assert.Equal(t, 10, cfg.Table.BetStep)
	assert.Equal(t, 250*time.Millisecond, cfg.DealInterval())
	assert.Equal(t, "blackjack.log", cfg.UI.LogFile)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 100000, cfg.Simulation.Rounds)
	assert.Equal(t, 4, cfg.Simulation.Workers)
	assert.Equal(t, 17, cfg.Simulation.StandOn)
	assert.Equal(t, log.InfoLevel, cfg.Level())
}

func TestParse(t *testing.T) {
	src := `
log_level = "debug"
seed      = 1234

table {
  starting_balance = 500
  default_bet      = 25
}

ui {
  deal_interval_ms = 0
}

simulation {
  workers  = 8
  stand_on = 15
}
`
	cfg, err := Parse([]byte(src), "test.hcl")
	require.NoError(t, err)

	assert.Equal(t, log.DebugLevel, cfg.Level())
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int64(1234), *cfg.Seed)
	assert.Equal(t, 500, cfg.Table.StartingBalance)
	assert.Equal(t, 25, cfg.Table.DefaultBet)
	assert.Equal(t, 10, cfg.Table.BetStep, "unset fields take defaults")
	assert.Equal(t, time.Duration(0), cfg.DealInterval())
	assert.Equal(t, "blackjack.log", cfg.UI.LogFile)
	assert.Equal(t, ":8080", cfg.Server.Address, "missing blocks take defaults")
	assert.Equal(t, 100000, cfg.Simulation.Rounds)
	assert.Equal(t, 8, cfg.Simulation.Workers)
	assert.Equal(t, 15, cfg.Simulation.StandOn)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{name: "syntax", src: `table {`, msg: "parse"},
		{name: "unknown attribute", src: `colour = "red"`, msg: "decode"},
		{name: "bad log level", src: `log_level = "loud"`, msg: "log_level"},
		{name: "bet over balance", src: "table {\n starting_balance = 50\n default_bet = 100\n}", msg: "default_bet"},
		{name: "negative step", src: "table {\n bet_step = -5\n}", msg: "bet_step"},
		{name: "negative interval", src: "ui {\n deal_interval_ms = -1\n}", msg: "deal_interval_ms"},
		{name: "stand on too high", src: "simulation {\n stand_on = 22\n}", msg: "stand_on"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "test.hcl")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing file uses defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), DefaultFile)
		require.NoError(t, os.WriteFile(path, []byte("server {\n address = \"127.0.0.1:9000\"\n}\n"), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:9000", cfg.Server.Address)
	})
}
