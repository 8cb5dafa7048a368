package blackjack

import "github.com/lox/blackjack/internal/deck"

// HandView is a read-only copy of a hand
type HandView struct {
	Cards     []deck.Card
	Value     int
	Blackjack bool
	Busted    bool
	Soft      bool
}

func viewOf(h *Hand) HandView {
	return HandView{
		Cards:     h.Cards(),
		Value:     h.Value(),
		Blackjack: h.IsBlackjack(),
		Busted:    h.IsBusted(),
		Soft:      h.IsSoft(),
	}
}

// Snapshot is everything a presentation layer may observe about the engine
// at one instant
type Snapshot struct {
	Round   uint64
	RoundID string
	Phase   Phase
	// GameOver is set once the round's outcome is decided or it was aborted.
	GameOver bool
	Player   HandView
	Dealer   HandView
	// HoleCardHidden is set while the dealer's first card is face down.
	HoleCardHidden bool
	Message        string
	History        []Outcome
	LastResult     *Result
	// ActionsHidden is set whenever Hit and Stand are not legal.
	ActionsHidden bool
	ShoeRemaining int
	Err           error
}

// Snapshot returns a consistent copy of the engine state
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Snapshot{
		Round:          e.round,
		RoundID:        e.roundID,
		Phase:          e.phase,
		GameOver:       e.phase == Settling || e.phase == RoundOver || e.phase == Failed,
		Player:         viewOf(e.player),
		Dealer:         viewOf(e.dealer),
		HoleCardHidden: e.dealer.Len() > 0 && (e.phase == Dealing || e.phase == DealerPeek || e.phase == PlayerTurn),
		Message:        e.message,
		History:        make([]Outcome, len(e.history)),
		ActionsHidden:  e.phase != PlayerTurn,
		ShoeRemaining:  e.shoe.Remaining(),
		Err:            e.err,
	}
	copy(s.History, e.history)
	if e.result != nil {
		r := *e.result
		s.LastResult = &r
	}
	return s
}
