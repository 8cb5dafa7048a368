package blackjack

import (
	"strconv"
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

// Role identifies which side of the table a hand belongs to
type Role int

const (
	Player Role = iota
	Dealer
)

// String returns the string representation of the role
func (r Role) String() string {
	switch r {
	case Player:
		return "player"
	case Dealer:
		return "dealer"
	default:
		return "unknown"
	}
}

// Hand is an append-only sequence of cards. Its value is recomputed from
// scratch whenever cards are added.
type Hand struct {
	role  Role
	cards []deck.Card
	value int
	soft  bool
}

// NewHand creates an empty hand for the given role
func NewHand(role Role) *Hand {
	return &Hand{role: role}
}

// AddCards appends cards to the hand and returns the recomputed value
func (h *Hand) AddCards(cards ...deck.Card) int {
	h.cards = append(h.cards, cards...)
	h.value, h.soft = HandValue(h.cards)
	return h.value
}

// Reset clears every card from the hand
func (h *Hand) Reset() {
	h.cards = nil
	h.value = 0
	h.soft = false
}

// Role returns the owner of the hand
func (h *Hand) Role() Role {
	return h.role
}

// Cards returns a copy of the cards in the order they were dealt
func (h *Hand) Cards() []deck.Card {
	cards := make([]deck.Card, len(h.cards))
	copy(cards, h.cards)
	return cards
}

// Len returns the number of cards in the hand
func (h *Hand) Len() int {
	return len(h.cards)
}

// Value returns the hand total with Aces resolved
func (h *Hand) Value() int {
	return h.value
}

// IsSoft returns true while an Ace is still counted as 11
func (h *Hand) IsSoft() bool {
	return h.soft
}

// IsBlackjack returns true for a two-card 21
func (h *Hand) IsBlackjack() bool {
	return len(h.cards) == 2 && h.value == 21
}

// IsBusted returns true when the value exceeds 21
func (h *Hand) IsBusted() bool {
	return h.value > 21
}

// String returns the cards and value, e.g. "A♠ K♥ (21)"
func (h *Hand) String() string {
	parts := make([]string, 0, len(h.cards)+1)
	for _, c := range h.cards {
		parts = append(parts, c.String())
	}
	parts = append(parts, "("+strconv.Itoa(h.value)+")")
	return strings.Join(parts, " ")
}

// HandValue totals cards with Aces at 11, then demotes one Ace at a time
// to 1 while the total exceeds 21. soft reports whether an Ace is still
// counted as 11 in the result.
func HandValue(cards []deck.Card) (total int, soft bool) {
	aces := 0
	for _, c := range cards {
		total += c.Value()
		if c.IsAce() {
			aces++
		}
	}

	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}

	return total, aces > 0
}
