package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/statistics"
)

func TestConfigInitWritesLoadableDefaults(t *testing.T) {
	g := &Globals{ConfigFile: filepath.Join(t.TempDir(), "blackjack.hcl")}

	require.NoError(t, (&ConfigInitCmd{}).Run(g))

	cfg, err := config.Load(g.ConfigFile)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestConfigInitRefusesToOverwrite(t *testing.T) {
	g := &Globals{ConfigFile: filepath.Join(t.TempDir(), "blackjack.hcl")}
	require.NoError(t, os.WriteFile(g.ConfigFile, []byte("table {}\n"), 0o644))

	err := (&ConfigInitCmd{}).Run(g)
	assert.ErrorContains(t, err, "already exists")

	require.NoError(t, (&ConfigInitCmd{Force: true}).Run(g))
	cfg, err := config.Load(g.ConfigFile)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestGlobalsOverrideConfig(t *testing.T) {
	g := &Globals{
		ConfigFile: filepath.Join(t.TempDir(), "missing.hcl"),
		Debug:      true,
		NoColor:    true,
	}

	cfg, err := g.loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.UI.NoColor)
}

func TestConfigShow(t *testing.T) {
	g := &Globals{ConfigFile: filepath.Join(t.TempDir(), "missing.hcl")}
	assert.NoError(t, (&ConfigShowCmd{}).Run(g))
}

func TestPrintReport(t *testing.T) {
	stats := &statistics.Statistics{}
	stats.Add(blackjack.Result{Outcome: blackjack.PlayerWin, Winner: blackjack.Player, PlayerValue: 20, DealerValue: 18})
	stats.Add(blackjack.Result{Push: true, PlayerValue: 19, DealerValue: 19})

	assert.NoError(t, printReport(stats, "basic", 6))
	assert.NoError(t, printReport(&statistics.Statistics{}, "dealer", 1))
}

func TestSimulateCommand(t *testing.T) {
	g := &Globals{ConfigFile: filepath.Join(t.TempDir(), "missing.hcl")}
	cmd := &SimulateCmd{Rounds: 50, Tables: 2, Policy: "dealer", Seed: 9}

	assert.NoError(t, cmd.Run(g))
}
