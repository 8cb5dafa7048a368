package statistics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/blackjack"
)

var (
	playerWin  = blackjack.Result{Outcome: blackjack.PlayerWin, Winner: blackjack.Player, PlayerValue: 20, DealerValue: 18}
	dealerBust = blackjack.Result{Outcome: blackjack.PlayerWin, Winner: blackjack.Player, PlayerValue: 15, DealerValue: 24}
	dealerWin  = blackjack.Result{Outcome: blackjack.DealerWin, Winner: blackjack.Dealer, PlayerValue: 17, DealerValue: 19}
	playerBJ   = blackjack.Result{Outcome: blackjack.BlackjackWin, Winner: blackjack.Player, PlayerValue: 21, DealerValue: 12}
	dealerBJ   = blackjack.Result{Outcome: blackjack.BlackjackWin, Winner: blackjack.Dealer, PlayerValue: 15, DealerValue: 21}
	bust       = blackjack.Result{Outcome: blackjack.Bust, Winner: blackjack.Dealer, PlayerValue: 24, DealerValue: 10}
	push       = blackjack.Result{Push: true, PlayerValue: 19, DealerValue: 19}
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	assert.Zero(t, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Zero(t, stats.StdDev())
	assert.Zero(t, stats.StdError())
	assert.Zero(t, stats.WinRate())
	assert.NoError(t, stats.Validate())
}

func TestStatistics_SingleRound(t *testing.T) {
	stats := &Statistics{}
	stats.Add(playerWin)

	assert.Equal(t, 1, stats.Rounds)
	assert.Equal(t, 1.0, stats.Mean())
	assert.Zero(t, stats.Variance(), "variance of a single value")
	assert.Equal(t, 1.0, stats.WinRate())
	assert.Equal(t, 1, stats.Count(blackjack.PlayerWin))
}

func TestStatistics_Tallies(t *testing.T) {
	stats := &Statistics{}
	for _, r := range []blackjack.Result{playerWin, dealerBust, dealerWin, playerBJ, dealerBJ, bust, push} {
		stats.Add(r)
	}

	require.NoError(t, stats.Validate())
	assert.Equal(t, 7, stats.Rounds)
	assert.Equal(t, 6, stats.Decided())
	assert.Equal(t, 3, stats.PlayerWins)
	assert.Equal(t, 3, stats.DealerWins)
	assert.Equal(t, 1, stats.Pushes)

	assert.Equal(t, 2, stats.Count(blackjack.BlackjackWin))
	assert.Equal(t, 1, stats.Count(blackjack.Bust))
	assert.Equal(t, 2, stats.Count(blackjack.PlayerWin))
	assert.Equal(t, 1, stats.Count(blackjack.DealerWin))

	assert.Equal(t, 1, stats.PlayerBlackjacks)
	assert.Equal(t, 1, stats.DealerBlackjacks)
	assert.Equal(t, 1, stats.PlayerBusts)
	assert.Equal(t, 1, stats.DealerBusts)

	assert.Equal(t, 0.5, stats.WinRate())
	assert.Zero(t, stats.Mean())
}

func TestStatistics_Spread(t *testing.T) {
	stats := &Statistics{}
	// Scores +1, -1, +1, -1: mean 0, sample variance 4/3.
	for _, r := range []blackjack.Result{playerWin, dealerWin, playerWin, dealerWin} {
		stats.Add(r)
	}

	assert.InDelta(t, 4.0/3.0, stats.Variance(), 1e-9)
	assert.InDelta(t, math.Sqrt(4.0/3.0), stats.StdDev(), 1e-9)
	assert.InDelta(t, math.Sqrt(4.0/3.0)/2, stats.StdError(), 1e-9)

	low, high := stats.ConfidenceInterval95()
	assert.InDelta(t, -1.96*stats.StdError(), low, 1e-9)
	assert.InDelta(t, 1.96*stats.StdError(), high, 1e-9)
}

func TestStatistics_Merge(t *testing.T) {
	a := &Statistics{}
	a.Add(playerWin)
	a.Add(push)
	a.Aborted = 1

	b := &Statistics{}
	b.Add(dealerBJ)
	b.Add(bust)

	a.Merge(b)

	require.NoError(t, a.Validate())
	assert.Equal(t, 4, a.Rounds)
	assert.Equal(t, 1, a.PlayerWins)
	assert.Equal(t, 2, a.DealerWins)
	assert.Equal(t, 1, a.DealerBlackjacks)
	assert.Equal(t, 1, a.Aborted)
	assert.InDelta(t, -0.25, a.Mean(), 1e-9)
}

func TestStatistics_ValidateDetectsMismatch(t *testing.T) {
	stats := &Statistics{}
	stats.Add(playerWin)
	stats.PlayerWins++

	assert.Error(t, stats.Validate())
}
