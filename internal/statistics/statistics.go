package statistics

import (
	"fmt"
	"math"

	"github.com/lox/blackjack/internal/blackjack"
)

// Statistics tracks blackjack results from the player's point of view.
// Every settled round contributes a score of +1 (player win), -1 (dealer
// win) or 0 (push).
type Statistics struct {
	Rounds    int
	SumScore  float64
	SumScore2 float64 // Sum of squares for variance calculation

	PlayerWins int
	DealerWins int
	Pushes     int

	// Outcome tags, indexed by blackjack.Outcome
	Outcomes [4]int

	PlayerBlackjacks int
	DealerBlackjacks int
	PlayerBusts      int
	DealerBusts      int

	// Aborted counts rounds that ended without a result (force end or
	// shoe failure). They do not count towards Rounds.
	Aborted int
}

// Add incorporates a settled round
func (s *Statistics) Add(r blackjack.Result) {
	score := float64(r.Score())
	s.Rounds++
	s.SumScore += score
	s.SumScore2 += score * score

	if r.Push {
		s.Pushes++
		return
	}

	if r.Outcome >= 0 && int(r.Outcome) < len(s.Outcomes) {
		s.Outcomes[r.Outcome]++
	}
	if r.Winner == blackjack.Player {
		s.PlayerWins++
	} else {
		s.DealerWins++
	}

	switch {
	case r.Outcome == blackjack.BlackjackWin && r.Winner == blackjack.Player:
		s.PlayerBlackjacks++
	case r.Outcome == blackjack.BlackjackWin:
		s.DealerBlackjacks++
	case r.Outcome == blackjack.Bust:
		s.PlayerBusts++
	case r.Outcome == blackjack.PlayerWin && r.DealerValue > 21:
		s.DealerBusts++
	}
}

// Merge folds other into s, used to combine per-table results
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.SumScore += other.SumScore
	s.SumScore2 += other.SumScore2
	s.PlayerWins += other.PlayerWins
	s.DealerWins += other.DealerWins
	s.Pushes += other.Pushes
	for i := range s.Outcomes {
		s.Outcomes[i] += other.Outcomes[i]
	}
	s.PlayerBlackjacks += other.PlayerBlackjacks
	s.DealerBlackjacks += other.DealerBlackjacks
	s.PlayerBusts += other.PlayerBusts
	s.DealerBusts += other.DealerBusts
	s.Aborted += other.Aborted
}

// Count returns how many rounds were tagged with o
func (s *Statistics) Count(o blackjack.Outcome) int {
	if o < 0 || int(o) >= len(s.Outcomes) {
		return 0
	}
	return s.Outcomes[o]
}

// Decided returns the number of rounds that were not pushes
func (s *Statistics) Decided() int {
	return s.Rounds - s.Pushes
}

// WinRate returns the share of decided rounds the player won
func (s *Statistics) WinRate() float64 {
	if s.Decided() == 0 {
		return 0
	}
	return float64(s.PlayerWins) / float64(s.Decided())
}

// Mean returns the average score per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumScore / float64(s.Rounds)
}

// Variance returns the sample variance of the score
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumScore2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of the score
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Validate checks that the tallies agree with each other
func (s *Statistics) Validate() error {
	if s.PlayerWins+s.DealerWins+s.Pushes != s.Rounds {
		return fmt.Errorf("wins (%d player, %d dealer) and pushes (%d) do not add up to %d rounds",
			s.PlayerWins, s.DealerWins, s.Pushes, s.Rounds)
	}

	tagged := 0
	for _, n := range s.Outcomes {
		tagged += n
	}
	if tagged != s.Decided() {
		return fmt.Errorf("outcome tags (%d) do not match decided rounds (%d)", tagged, s.Decided())
	}

	if net := float64(s.PlayerWins - s.DealerWins); math.Abs(net-s.SumScore) > 1e-6 {
		return fmt.Errorf("score mismatch: sum=%.1f, wins-losses=%.1f", s.SumScore, net)
	}
	return nil
}
