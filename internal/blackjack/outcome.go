package blackjack

import "fmt"

// Outcome is the tag recorded in the history for a decided round.
// Pushes are not recorded.
type Outcome int

const (
	BlackjackWin Outcome = iota
	Bust
	PlayerWin
	DealerWin
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	switch o {
	case BlackjackWin:
		return "blackjack_win"
	case Bust:
		return "bust"
	case PlayerWin:
		return "player_win"
	case DealerWin:
		return "dealer_win"
	default:
		return "unknown"
	}
}

// Code returns the scoreboard abbreviation: BJ, B, P or D
func (o Outcome) Code() string {
	switch o {
	case BlackjackWin:
		return "BJ"
	case Bust:
		return "B"
	case PlayerWin:
		return "P"
	case DealerWin:
		return "D"
	default:
		return "?"
	}
}

// Result is the settlement record of one round
type Result struct {
	Outcome     Outcome // meaningless when Push is set
	Push        bool
	Winner      Role // meaningless when Push is set
	Message     string
	PlayerValue int
	DealerValue int
}

// String returns a short description such as "player_win 20-17"
func (r Result) String() string {
	if r.Push {
		return fmt.Sprintf("push %d-%d", r.PlayerValue, r.DealerValue)
	}
	return fmt.Sprintf("%s %d-%d", r.Outcome, r.PlayerValue, r.DealerValue)
}

// Score is +1 when the player wins, -1 when the dealer wins and 0 for a push
func (r Result) Score() int {
	switch {
	case r.Push:
		return 0
	case r.Winner == Player:
		return 1
	default:
		return -1
	}
}

// Settle compares two completed hands after the dealer has played
func Settle(player, dealer *Hand) Result {
	r := Result{
		PlayerValue: player.Value(),
		DealerValue: dealer.Value(),
	}

	switch {
	case dealer.IsBusted():
		r.Outcome, r.Winner, r.Message = PlayerWin, Player, MsgDealerBusted
	case dealer.Value() > player.Value():
		r.Outcome, r.Winner, r.Message = DealerWin, Dealer, MsgDealerWins
	case dealer.Value() == player.Value():
		r.Push, r.Message = true, MsgTie
	default:
		r.Outcome, r.Winner, r.Message = PlayerWin, Player, MsgPlayerWins
	}

	return r
}

// settlePeek resolves a dealer blackjack found during the peek
func settlePeek(player, dealer *Hand) Result {
	r := Result{
		PlayerValue: player.Value(),
		DealerValue: dealer.Value(),
	}
	if player.IsBlackjack() {
		r.Push, r.Message = true, MsgBothBlackjack
		return r
	}
	r.Outcome, r.Winner, r.Message = BlackjackWin, Dealer, MsgDealerBlackjack
	return r
}

// settlePlayer resolves a player blackjack or bust during the player's turn.
// ok is false when the hand is still live.
func settlePlayer(player, dealer *Hand) (Result, bool) {
	r := Result{
		PlayerValue: player.Value(),
		DealerValue: dealer.Value(),
	}
	switch {
	case player.IsBlackjack():
		r.Outcome, r.Winner, r.Message = BlackjackWin, Player, MsgPlayerBlackjack
	case player.IsBusted():
		r.Outcome, r.Winner, r.Message = Bust, Dealer, MsgPlayerBusted
	default:
		return r, false
	}
	return r, true
}
