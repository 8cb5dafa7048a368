package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/deck"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blackjack.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
	require.NoError(t, cfg.Validate())

	engine, err := cfg.Engine()
	require.NoError(t, err)
	assert.Equal(t, blackjack.DefaultConfig(), engine)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
table {
  decks     = 2
  auto_deal = true
}

timing {
  pace        = "fast"
  peek_delay  = "2s"
}

log {
  level = "debug"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 2, cfg.Table.Decks)
	assert.True(t, cfg.Table.AutoDeal)
	assert.Equal(t, "blackjack.log", cfg.Log.File, "unset fields take defaults")
	assert.Equal(t, log.DebugLevel, cfg.LogLevel())
	assert.NotNil(t, cfg.UI, "missing blocks take defaults")

	engine, err := cfg.Engine()
	require.NoError(t, err)
	assert.Equal(t, 2, engine.Decks)
	assert.True(t, engine.AutoDeal)
	assert.Equal(t, 500*time.Millisecond, engine.Timings.DealDelay)
	assert.Equal(t, 2*time.Second, engine.Timings.PeekDelay, "explicit delay beats the pace")
	assert.Equal(t, 600*time.Millisecond, engine.Timings.ResetDelay)
}

func TestLoadRejectsMalformedFiles(t *testing.T) {
	_, err := Load(writeConfig(t, `table { decks = `))
	assert.ErrorContains(t, err, "failed to parse")

	_, err = Load(writeConfig(t, `table { seats = 3 }`))
	assert.ErrorContains(t, err, "failed to decode")
}

func TestPaces(t *testing.T) {
	base := blackjack.DefaultTimings()
	tests := []struct {
		pace   string
		factor float64
	}{
		{PaceSlow, 2},
		{PaceMedium, 1},
		{PaceFast, 0.5},
		{PaceInstant, 0},
	}

	for _, tt := range tests {
		t.Run(tt.pace, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Timing.Pace = tt.pace

			timings, err := cfg.Timings()
			require.NoError(t, err)
			assert.Equal(t, base.Scale(tt.factor), timings)
		})
	}

	assert.Len(t, Paces, len(tests))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"zero decks", func(c *Config) { c.Table.Decks = 0 }, "at least 1"},
		{"unknown pace", func(c *Config) { c.Timing.Pace = "ludicrous" }, "unknown pace"},
		{"bad duration", func(c *Config) { c.Timing.DealDelay = "soon" }, "deal_delay"},
		{"negative duration", func(c *Config) { c.Timing.ResetDelay = "-1s" }, "must not be negative"},
		{"bad log level", func(c *Config) { c.Log.Level = "chatty" }, "log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}

func TestValidateWrapsInvalidDecks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Table.Decks = -1
	assert.ErrorIs(t, cfg.Validate(), deck.ErrInvalidDecks)
}

func TestWriteToRoundTrips(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Table.Decks = 4
	cfg.Timing.Pace = PaceSlow
	cfg.Timing.SettleDelay = "250ms"
	cfg.UI.NoColor = true

	var buf bytes.Buffer
	_, err := cfg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Regexp(t, `pace\s+= "slow"`, buf.String())
	assert.NotContains(t, buf.String(), "deal_delay", "unset delays are left to the pace")

	loaded, err := Load(writeConfig(t, buf.String()))
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLogLevelFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Log.Level = "nonsense"
	assert.Equal(t, log.InfoLevel, cfg.LogLevel())
}
