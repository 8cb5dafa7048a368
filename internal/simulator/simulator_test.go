package simulator

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/deck"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
}

func TestNew(t *testing.T) {
	sim, err := New(Config{Rounds: 100, Policy: "basic", Seed: 12345, Logger: quietLogger()})
	require.NoError(t, err)

	assert.Equal(t, 100, sim.config.Rounds)
	assert.Equal(t, 1, sim.config.Tables, "tables default to one")
	assert.Equal(t, 6, sim.config.Decks)
	assert.Equal(t, int64(12345), sim.config.Seed)
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(Config{Rounds: 10, Policy: "martingale"})
	assert.ErrorContains(t, err, "unknown policy")

	_, err = New(Config{Rounds: -1})
	assert.Error(t, err)
}

func TestRunTotalsMatchRequestedRounds(t *testing.T) {
	for _, policy := range PolicyNames() {
		t.Run(policy, func(t *testing.T) {
			sim, err := New(Config{Rounds: 203, Tables: 4, Decks: 2, Policy: policy, Seed: 7, Logger: quietLogger()})
			require.NoError(t, err)

			stats, err := sim.Run(context.Background())
			require.NoError(t, err)

			assert.Equal(t, 203, stats.Rounds)
			assert.Zero(t, stats.Aborted)
			assert.NoError(t, stats.Validate())
			assert.Greater(t, stats.PlayerWins, 0)
			assert.Greater(t, stats.DealerWins, 0)
		})
	}
}

func TestRunIsReproducibleWithSeed(t *testing.T) {
	run := func() float64 {
		stats, err := RunSimulation(context.Background(), 300, "dealer", 42, quietLogger())
		require.NoError(t, err)
		return stats.SumScore
	}

	assert.Equal(t, run(), run())
}

func TestRunHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sim, err := New(Config{Rounds: 1000, Tables: 2, Seed: 1, Logger: quietLogger()})
	require.NoError(t, err)

	_, err = sim.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNeverBustPolicyNeverBusts(t *testing.T) {
	stats, err := RunSimulation(context.Background(), 500, "never-bust", 3, quietLogger())
	require.NoError(t, err)

	assert.Zero(t, stats.PlayerBusts)
	assert.Zero(t, stats.Count(blackjack.Bust))
}

func TestPolicies(t *testing.T) {
	hand := func(value int, soft bool) blackjack.HandView {
		return blackjack.HandView{Value: value, Soft: soft}
	}
	six := deck.MustParseCards("6d")[0]
	ace := deck.MustParseCards("Ac")[0]
	ten := deck.MustParseCards("Kh")[0]

	tests := []struct {
		name   string
		policy Policy
		hand   blackjack.HandView
		upcard deck.Card
		hit    bool
	}{
		{"dealer hits 16", DealerPolicy, hand(16, false), ten, true},
		{"dealer stands 17", DealerPolicy, hand(17, false), ten, false},
		{"dealer stands soft 17", DealerPolicy, hand(17, true), ten, false},
		{"never bust hits 11", NeverBustPolicy, hand(11, false), six, true},
		{"never bust stands 12", NeverBustPolicy, hand(12, false), ace, false},
		{"basic hits 11", BasicPolicy, hand(11, false), six, true},
		{"basic stands 13 against six", BasicPolicy, hand(13, false), six, false},
		{"basic hits 13 against ten", BasicPolicy, hand(13, false), ten, true},
		{"basic hits 16 against ace", BasicPolicy, hand(16, false), ace, true},
		{"basic stands hard 17", BasicPolicy, hand(17, false), ace, false},
		{"basic hits soft 17", BasicPolicy, hand(17, true), six, true},
		{"basic stands soft 18", BasicPolicy, hand(18, true), ten, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.hit, tt.policy(tt.hand, tt.upcard))
		})
	}
}

func TestLookupPolicy(t *testing.T) {
	assert.Equal(t, []string{"basic", "dealer", "never-bust"}, PolicyNames())

	p, err := LookupPolicy("dealer")
	require.NoError(t, err)
	assert.NotNil(t, p)
}
