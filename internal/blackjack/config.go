package blackjack

import (
	"fmt"
	"time"

	"github.com/lox/blackjack/internal/deck"
)

// Timings are the pauses between automatic transitions, giving a reader
// time to follow status messages. All zero runs every transition at the
// end of the call that triggered it.
type Timings struct {
	DealDelay   time.Duration // round start to opening deal
	PeekDelay   time.Duration // dealer checking the hole card
	DealerDelay time.Duration // stand to dealer play
	SettleDelay time.Duration // outcome shown to round over
	ResetDelay  time.Duration // round over to next deal, auto-deal only
}

// DefaultTimings returns the standard table pacing
func DefaultTimings() Timings {
	return Timings{
		DealDelay:   1000 * time.Millisecond,
		PeekDelay:   1000 * time.Millisecond,
		DealerDelay: 800 * time.Millisecond,
		SettleDelay: 800 * time.Millisecond,
		ResetDelay:  1200 * time.Millisecond,
	}
}

// Scale multiplies every delay by factor
func (t Timings) Scale(factor float64) Timings {
	scale := func(d time.Duration) time.Duration {
		return time.Duration(float64(d) * factor)
	}
	return Timings{
		DealDelay:   scale(t.DealDelay),
		PeekDelay:   scale(t.PeekDelay),
		DealerDelay: scale(t.DealerDelay),
		SettleDelay: scale(t.SettleDelay),
		ResetDelay:  scale(t.ResetDelay),
	}
}

// Validate rejects negative delays
func (t Timings) Validate() error {
	named := []struct {
		name string
		d    time.Duration
	}{
		{"deal delay", t.DealDelay},
		{"peek delay", t.PeekDelay},
		{"dealer delay", t.DealerDelay},
		{"settle delay", t.SettleDelay},
		{"reset delay", t.ResetDelay},
	}
	for _, n := range named {
		if n.d < 0 {
			return fmt.Errorf("%s must not be negative: %s", n.name, n.d)
		}
	}
	return nil
}

// Config holds the table rules the engine is built with
type Config struct {
	Decks int
	// AutoDeal starts the next round ResetDelay after a round ends.
	// Without it the engine waits in RoundOver for an explicit Deal.
	AutoDeal bool
	Timings  Timings
}

// DefaultConfig returns a six-deck table with explicit dealing
func DefaultConfig() Config {
	return Config{
		Decks:   deck.DefaultDecks,
		Timings: DefaultTimings(),
	}
}

// Validate checks the configuration
func (c Config) Validate() error {
	if c.Decks < 1 {
		return fmt.Errorf("%w: got %d", deck.ErrInvalidDecks, c.Decks)
	}
	return c.Timings.Validate()
}
