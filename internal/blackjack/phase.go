package blackjack

// Phase is a state of the round state machine
type Phase int

const (
	Idle Phase = iota
	Dealing
	DealerPeek
	PlayerTurn
	DealerTurn
	Settling
	RoundOver
	Failed
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dealing:
		return "dealing"
	case DealerPeek:
		return "dealer_peek"
	case PlayerTurn:
		return "player_turn"
	case DealerTurn:
		return "dealer_turn"
	case Settling:
		return "settling"
	case RoundOver:
		return "round_over"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// InProgress reports whether a round is underway and a new one cannot start
func (p Phase) InProgress() bool {
	switch p {
	case Idle, RoundOver, Failed:
		return false
	default:
		return true
	}
}

// Status messages shown to the player.
const (
	MsgWelcome         = "♤ BLACKJACK"
	MsgDealing         = "Dealing..."
	MsgDealerChecking  = "👀 Dealer is checking their face-down card..."
	MsgDealerBlackjack = "💀 DEALER HAS BLACKJACK!"
	MsgBothBlackjack   = "🎭 IT'S A TIE! (BOTH HAVE BLACKJACK)"
	MsgPlayerBlackjack = "🎉 BLACKJACK! YOU WIN! 🃏🔥"
	MsgPlayerBusted    = "💥 PLAYER BUSTED! 💀"
	MsgDealerPlaying   = "Dealer plays..."
	MsgDealerBusted    = "🚨 DEALER BUSTED! YOU WIN! 🎉"
	MsgPlayerWins      = "🎊 YOU WIN! 🏆"
	MsgDealerWins      = "😞 DEALER WINS."
	MsgTie             = "🤝 IT'S A TIE!"
	MsgForceEnded      = "Round ended by developer command"
	MsgShoeExhausted   = "Shoe exhausted, round aborted"
)
