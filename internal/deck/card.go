package deck

import "fmt"

// Suit represents a card suit
type Suit int

// Suits are enumerated in shoe build order.
const (
	Spades Suit = iota
	Clubs
	Hearts
	Diamonds
)

// Suits lists every suit in build order.
var Suits = []Suit{Spades, Clubs, Hearts, Diamonds}

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Clubs:
		return "♣"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	default:
		return "?"
	}
}

// Name returns the suit's English name.
func (s Suit) Name() string {
	switch s {
	case Spades:
		return "Spades"
	case Clubs:
		return "Clubs"
	case Hearts:
		return "Hearts"
	case Diamonds:
		return "Diamonds"
	default:
		return "Unknown"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank
type Rank int

// Ranks are enumerated Ace first, matching shoe build order.
const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Ranks lists every rank in build order.
var Ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Two:
		return "2"
	case Three:
		return "3"
	case Four:
		return "4"
	case Five:
		return "5"
	case Six:
		return "6"
	case Seven:
		return "7"
	case Eight:
		return "8"
	case Nine:
		return "9"
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return "?"
	}
}

// Value returns the blackjack base value of the rank. Aces count 11 here;
// demoting an Ace to 1 is the hand's job.
func (r Rank) Value() int {
	switch {
	case r == Ace:
		return 11
	case r >= Ten && r <= King:
		return 10
	case r >= Two && r < Ten:
		return int(r)
	default:
		return 0
	}
}

// Card represents a playing card. Copy identifies which physical deck of
// a multi-deck shoe the card belongs to; it has no effect on rules.
type Card struct {
	Suit Suit
	Rank Rank
	Copy int
}

// NewCard creates a new card from the first deck copy
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Code returns the compact two-character notation (e.g., "As").
func (c Card) Code() string {
	return c.Rank.String() + string(suitCodes[c.Suit])
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// Value returns the blackjack base value: Ace 11, faces 10, others pips.
func (c Card) Value() int {
	return c.Rank.Value()
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// IsTenValue returns true for Ten, Jack, Queen and King
func (c Card) IsTenValue() bool {
	return c.Value() == 10
}

// IsFaceCard returns true if the card is a face card (J, Q, K)
func (c Card) IsFaceCard() bool {
	return c.Rank >= Jack && c.Rank <= King
}

// SameFace reports whether two cards share suit and rank, ignoring which
// deck copy they came from.
func (c Card) SameFace(other Card) bool {
	return c.Suit == other.Suit && c.Rank == other.Rank
}

var suitCodes = map[Suit]byte{
	Spades:   's',
	Clubs:    'c',
	Hearts:   'h',
	Diamonds: 'd',
}
