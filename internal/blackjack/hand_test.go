package blackjack

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/blackjack/internal/deck"
)

func handOf(role Role, codes string) *Hand {
	h := NewHand(role)
	h.AddCards(deck.MustParseCards(codes)...)
	return h
}

func TestHandValue(t *testing.T) {
	tests := []struct {
		name  string
		cards string
		value int
		soft  bool
	}{
		{"empty", "", 0, false},
		{"two number cards", "9s7d", 16, false},
		{"face cards", "KsQd", 20, false},
		{"soft seventeen", "Ac6d", 17, true},
		{"ace ace nine", "AsAd9c", 21, true},
		{"three aces and eight", "AsAdAc8h", 21, true},
		{"ace demoted", "AsKd5c", 16, false},
		{"two aces", "AsAh", 12, true},
		{"four aces", "AsAhAdAc", 14, true},
		{"bust", "KsQd5c", 25, false},
		{"all aces demoted", "AsAhKdQc", 22, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, soft := HandValue(deck.MustParseCards(tt.cards))
			assert.Equal(t, tt.value, value)
			assert.Equal(t, tt.soft, soft)
		})
	}
}

func TestHandAddCardsRecomputes(t *testing.T) {
	h := NewHand(Player)

	assert.Equal(t, 11, h.AddCards(deck.MustParseCards("As")...))
	assert.Equal(t, 21, h.AddCards(deck.MustParseCards("Kd")...))
	assert.True(t, h.IsBlackjack())

	assert.Equal(t, 21, h.AddCards(deck.MustParseCards("Th")...))
	assert.False(t, h.IsBlackjack(), "three-card 21 is not a blackjack")
	assert.False(t, h.IsSoft())

	assert.Equal(t, 23, h.AddCards(deck.MustParseCards("2c")...))
	assert.True(t, h.IsBusted())
}

func TestBlackjack(t *testing.T) {
	tests := []struct {
		cards     string
		blackjack bool
	}{
		{"AsKd", true},
		{"TcAh", true},
		{"AsJd", true},
		{"AsQd", true},
		{"As9d", false},
		{"7s7d7c", false},
		{"AsAd9c", false},
		{"Ts5d6c", false},
	}

	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			assert.Equal(t, tt.blackjack, handOf(Player, tt.cards).IsBlackjack())
		})
	}
}

func TestHandReset(t *testing.T) {
	h := handOf(Dealer, "AsKd")
	h.Reset()

	assert.Equal(t, 0, h.Len())
	assert.Equal(t, 0, h.Value())
	assert.False(t, h.IsBlackjack())
	assert.Equal(t, Dealer, h.Role())
}

func TestHandCardsIsCopy(t *testing.T) {
	h := handOf(Player, "9s7d")
	cards := h.Cards()
	cards[0] = deck.NewCard(deck.Spades, deck.Ace)

	assert.Equal(t, 16, h.Value())
	assert.Equal(t, deck.Nine, h.Cards()[0].Rank)
}

func TestHandString(t *testing.T) {
	assert.Equal(t, "A♠ K♦ (21)", handOf(Player, "AsKd").String())
}
