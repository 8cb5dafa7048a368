package simulator

import (
	"fmt"
	"strings"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/deck"
)

// Policy decides whether the player hits, given their hand and the
// dealer's face-up card
type Policy func(player blackjack.HandView, upcard deck.Card) bool

var policies = map[string]Policy{
	"dealer":     DealerPolicy,
	"basic":      BasicPolicy,
	"never-bust": NeverBustPolicy,
}

// LookupPolicy returns the named policy
func LookupPolicy(name string) (Policy, error) {
	p, ok := policies[name]
	if !ok {
		return nil, fmt.Errorf("unknown policy %q (want one of %s)", name, strings.Join(PolicyNames(), ", "))
	}
	return p, nil
}

// DealerPolicy mirrors the house: hit below 17
func DealerPolicy(player blackjack.HandView, _ deck.Card) bool {
	return player.Value < 17
}

// NeverBustPolicy only hits when no single card can bust the hand
func NeverBustPolicy(player blackjack.HandView, _ deck.Card) bool {
	return player.Value < 12
}

// BasicPolicy is a simplified hit/stand chart. Doubles and splits are not
// available at this table.
func BasicPolicy(player blackjack.HandView, upcard deck.Card) bool {
	switch {
	case player.Soft:
		return player.Value < 18
	case player.Value < 12:
		return true
	case player.Value < 17:
		up := upcard.Value()
		return up < 2 || up > 6
	default:
		return false
	}
}
