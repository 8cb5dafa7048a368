package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/blackjack/internal/randutil"
)

// DefaultDecks is the number of 52-card decks in a standard shoe.
const DefaultDecks = 6

// CardsPerDeck is the size of one standard deck.
const CardsPerDeck = 52

// ErrInvalidDecks is returned when a shoe is configured with fewer than one deck.
var ErrInvalidDecks = errors.New("decks in play must be at least 1")

// Shoe holds the cards remaining to be dealt from one or more decks.
// Cards are dealt from the front; once the shoe falls below its threshold
// the next deal rebuilds and reshuffles it first.
type Shoe struct {
	cards      []Card
	decks      int
	rng        *rand.Rand
	reshuffles int
}

// Option configures a Shoe
type Option func(*Shoe)

// WithRand makes the shoe shuffle with rng instead of the cryptographic
// source. Intended for tests and reproducible simulations.
func WithRand(rng *rand.Rand) Option {
	return func(s *Shoe) {
		s.rng = rng
	}
}

// NewShoe creates a reset and shuffled shoe of the given number of decks
func NewShoe(decks int, opts ...Option) (*Shoe, error) {
	if decks < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDecks, decks)
	}

	s := &Shoe{
		cards: make([]Card, 0, decks*CardsPerDeck),
		decks: decks,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = randutil.NewCrypto()
	}

	s.Reset()
	s.Shuffle()
	return s, nil
}

// Reset rebuilds the full shoe in deck, suit, rank order without shuffling
func (s *Shoe) Reset() {
	s.cards = s.cards[:0] // Clear the slice but keep capacity

	for n := 0; n < s.decks; n++ {
		for _, suit := range Suits {
			for _, rank := range Ranks {
				s.cards = append(s.cards, Card{Suit: suit, Rank: rank, Copy: n})
			}
		}
	}
}

// Shuffle randomizes the order of the remaining cards (Fisher-Yates)
func (s *Shoe) Shuffle() {
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Deal removes and returns the first n cards. If the shoe is below its
// reshuffle threshold it is rebuilt and shuffled before dealing. A request
// for more cards than remain returns nil; deals never partially succeed.
func (s *Shoe) Deal(n int) []Card {
	if n < 0 {
		return nil
	}

	if len(s.cards) < s.Threshold() {
		s.Reset()
		s.Shuffle()
		s.reshuffles++
	}

	if n > len(s.cards) {
		return nil
	}

	dealt := make([]Card, n)
	copy(dealt, s.cards[:n])
	s.cards = s.cards[n:]
	return dealt
}

// DrawRandomCard removes and returns a uniformly random card from anywhere
// in the shoe. It returns false when the shoe is empty.
func (s *Shoe) DrawRandomCard() (Card, bool) {
	if len(s.cards) == 0 {
		return Card{}, false
	}

	i := s.rng.IntN(len(s.cards))
	card := s.cards[i]
	s.cards = append(s.cards[:i], s.cards[i+1:]...)
	return card, true
}

// Threshold is the remaining-card count below which the next deal
// reshuffles: a third of the full shoe.
func (s *Shoe) Threshold() int {
	return s.Size() / 3
}

// Size returns the number of cards in a full shoe
func (s *Shoe) Size() int {
	return s.decks * CardsPerDeck
}

// Decks returns the number of decks in play
func (s *Shoe) Decks() int {
	return s.decks
}

// Remaining returns the number of cards left to deal
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// Reshuffles returns how many threshold reshuffles Deal has performed
func (s *Shoe) Reshuffles() int {
	return s.reshuffles
}
