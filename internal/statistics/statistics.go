package statistics

import (
	"fmt"
	"math"
	"sort"
)

// RoundResult represents the outcome of a single blackjack round
type RoundResult struct {
	Net             float64 // Winnings relative to the stake: +15 for a natural on a 10 bet
	Bet             float64 // Amount staked on the round
	PlayerScore     int     // Final player total
	DealerScore     int     // Final dealer total (the two-card total when the player busts first)
	PlayerBlackjack bool    // Player held a natural
	DealerBlackjack bool    // Dealer held a natural
	Seed            int64   // RNG seed of the worker that played it (for replay)
}

// Statistics tracks aggregate results across simulated blackjack rounds.
// Outcomes are classified by Net: positive is a win, zero a push, negative
// a loss. Settlement guarantees that mapping holds for every round.
type Statistics struct {
	Rounds  int
	SumNet  float64
	SumNet2 float64   // Sum of squares for variance calculation
	Values  []float64 // Store all values for median/percentile calculation

	Wins   int
	Losses int
	Pushes int

	// Detailed analytics
	PlayerBlackjacks int // Rounds where the player held a natural
	DealerBlackjacks int // Rounds where the dealer held a natural
	PlayerBusts      int // Rounds lost by going over 21
	DealerBusts      int // Rounds where the dealer went over 21

	TotalBet float64 // Total amount wagered, the house edge denominator
}

// Add incorporates a round result into the statistics
func (s *Statistics) Add(result RoundResult) {
	net := result.Net
	s.Rounds++
	s.SumNet += net
	s.SumNet2 += net * net
	s.Values = append(s.Values, net)
	s.TotalBet += result.Bet

	switch {
	case net > 0:
		s.Wins++
	case net < 0:
		s.Losses++
	default:
		s.Pushes++
	}

	if result.PlayerBlackjack {
		s.PlayerBlackjacks++
	}
	if result.DealerBlackjack {
		s.DealerBlackjacks++
	}
	if result.PlayerScore > 21 {
		s.PlayerBusts++
	}
	if result.DealerScore > 21 {
		s.DealerBusts++
	}
}

// Merge folds another statistics block into this one. Workers tally
// locally and merge once at the end of a concurrent run.
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	s.Values = append(s.Values, other.Values...)
	s.TotalBet += other.TotalBet

	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Pushes += other.Pushes

	s.PlayerBlackjacks += other.PlayerBlackjacks
	s.DealerBlackjacks += other.DealerBlackjacks
	s.PlayerBusts += other.PlayerBusts
	s.DealerBusts += other.DealerBusts
}

// Mean returns the arithmetic mean of net winnings per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of net winnings
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of net winnings
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
	se := s.StdError()
	margin := 1.96 * se // 95% confidence
	return mean - margin, mean + margin
}

// Median returns the median net result of all rounds
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// WinRate returns the fraction of rounds won
func (s *Statistics) WinRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Rounds)
}

// PushRate returns the fraction of rounds pushed
func (s *Statistics) PushRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Pushes) / float64(s.Rounds)
}

// BlackjackRate returns the fraction of rounds where the player held a natural
func (s *Statistics) BlackjackRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.PlayerBlackjacks) / float64(s.Rounds)
}

// HouseEdge returns the table's take per unit wagered. Positive means the
// house is winning.
func (s *Statistics) HouseEdge() float64 {
	if s.TotalBet == 0 {
		return 0
	}
	return -s.SumNet / s.TotalBet
}

// Validate performs consistency checks on the statistics data
func (s *Statistics) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}

	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)",
			len(s.Values), s.Rounds)
	}

	if s.Wins+s.Losses+s.Pushes != s.Rounds {
		return fmt.Errorf("outcome counts (%d+%d+%d) do not match rounds count (%d)",
			s.Wins, s.Losses, s.Pushes, s.Rounds)
	}

	// A player natural wins or pushes; it can never lose.
	if s.PlayerBlackjacks > s.Wins+s.Pushes {
		return fmt.Errorf("player blackjacks (%d) exceed wins plus pushes (%d)",
			s.PlayerBlackjacks, s.Wins+s.Pushes)
	}

	// A busted player always loses.
	if s.PlayerBusts > s.Losses {
		return fmt.Errorf("player busts (%d) exceed losses (%d)", s.PlayerBusts, s.Losses)
	}

	if s.TotalBet <= 0 {
		return fmt.Errorf("invalid total bet: %v", s.TotalBet)
	}

	return nil
}
