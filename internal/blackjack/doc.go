// Package blackjack implements a single-table blackjack round engine.
//
// The main type is Engine, which owns the shoe, the player and dealer hands,
// the round phase and the history of decided outcomes.
//
// # Basic Usage
//
// Start a round, act during the player's turn and wait for settlement:
//
//	e, err := blackjack.New(blackjack.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	_ = e.StartGame()
//	// ... once e.Phase() == blackjack.PlayerTurn
//	_ = e.Hit()
//	done, _ := e.Stand()
//	result, ok := <-done
//
// # Timing
//
// Timed transitions (the opening deal, the dealer peek, dealer play and the
// end of the round) are continuations scheduled on a quartz.Clock and bound
// to the round that scheduled them. A zero delay runs the continuation
// before the triggering call returns, so an engine built with empty Timings
// is fully synchronous:
//
//	cfg := blackjack.DefaultConfig()
//	cfg.Timings = blackjack.Timings{}
//	e, _ := blackjack.New(cfg, blackjack.WithRand(randutil.New(42)))
//
// Tests drive timed engines with quartz.NewMock and AdvanceNext.
//
// # Observing
//
// Presentation layers call Snapshot for a consistent copy of the table and
// Subscribe for an EventSubscriber that receives every phase change, deal
// and settlement as it happens. Developer tooling uses Exec with
// ForceEndRound, DealOne and DealOpening.
package blackjack
