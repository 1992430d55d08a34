// Package simulator plays large batches of blackjack rounds concurrently
// and aggregates the results. Each worker owns a private shoe, player and
// RNG derived from the run seed, so a run is reproducible regardless of
// scheduling.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/game"
	"github.com/lox/blackjack-cli/internal/randutil"
	"github.com/lox/blackjack-cli/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds    int     // Total rounds to play across all workers
	Workers   int     // Concurrent workers; 0 means one per CPU, capped at 8
	Decks     int     // Decks in each worker's shoe; 0 means 6
	Bet       float64 // Flat stake per round
	StandAt   int     // Policy: hit below this total; 0 means 17
	FreshShoe bool    // Reshuffle the shoe before every round
	Seed      int64   // Master seed; worker seeds derive from it
	Logger    *log.Logger
}

// Simulator runs blackjack round simulations
type Simulator struct {
	config Config
	clock  quartz.Clock
}

// New creates a new simulator with the given configuration. Zero values
// get the table defaults: six decks, stand on 17, one worker per CPU.
func New(config Config) *Simulator {
	if config.Decks <= 0 {
		config.Decks = 6
	}
	if config.StandAt <= 0 {
		config.StandAt = 17
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config, clock: quartz.NewReal()}
}

// Run executes the simulation and returns the merged statistics
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Rounds <= 0 {
		return nil, errors.New("simulator: rounds must be positive")
	}
	if s.config.Bet <= 0 {
		return nil, errors.New("simulator: bet must be positive")
	}

	workers := s.config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers > 8 {
			workers = 8 // Diminishing returns beyond this
		}
	}
	if workers > s.config.Rounds {
		workers = s.config.Rounds
	}

	// Divide rounds among workers
	roundsPerWorker := s.config.Rounds / workers
	remainder := s.config.Rounds % workers

	// Independent seed per worker so a single master seed reproduces the
	// whole concurrent run
	seeds := randutil.Seeds(s.config.Seed, workers)

	s.config.Logger.Info("starting simulation",
		"rounds", s.config.Rounds,
		"workers", workers,
		"decks", s.config.Decks,
		"standAt", s.config.StandAt,
		"seed", s.config.Seed)

	start := s.clock.Now()

	g, ctx := errgroup.WithContext(ctx)
	results := make(chan *statistics.Statistics, workers)

	for w := 0; w < workers; w++ {
		workerRounds := roundsPerWorker
		if w < remainder {
			workerRounds++ // Distribute remainder rounds
		}
		workerSeed := seeds[w]

		g.Go(func() error {
			stats, err := s.runWorker(ctx, workerSeed, workerRounds)
			if err != nil {
				return err
			}

			select {
			case results <- stats:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	go func() {
		defer close(results)
		g.Wait()
	}()

	total := &statistics.Statistics{}
	for workerStats := range results {
		total.Merge(workerStats)
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := total.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	elapsed := s.clock.Since(start)
	s.config.Logger.Info("simulation complete",
		"rounds", total.Rounds,
		"elapsed", elapsed,
		"mean", total.Mean(),
		"houseEdge", total.HouseEdge())

	return total, nil
}

// runWorker plays its share of rounds on a private shoe and RNG, tallying
// locally so workers never contend.
func (s *Simulator) runWorker(ctx context.Context, seed int64, rounds int) (*statistics.Statistics, error) {
	rng := randutil.New(seed)
	shoe := deck.NewShoe(rng, s.config.Decks)

	// Bankroll big enough to survive losing every single round
	bankroll := s.config.Bet * float64(rounds) * 2
	player := game.NewPlayer(fmt.Sprintf("sim-%d", seed), bankroll)
	agent := game.PolicyAgent{StandAt: s.config.StandAt}

	stats := &statistics.Statistics{}
	for r := 0; r < rounds; r++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if s.config.FreshShoe {
			shoe.Reset()
		}

		round := game.NewRound(shoe, player, game.WithLogger(s.config.Logger))
		result, err := round.Play(s.config.Bet, agent)
		if err != nil {
			return nil, fmt.Errorf("round %d (seed %d): %w", r, seed, err)
		}

		stats.Add(statistics.RoundResult{
			Net:             result.Net,
			Bet:             result.Bet,
			PlayerScore:     result.PlayerScore,
			DealerScore:     result.DealerScore,
			PlayerBlackjack: result.PlayerBlackjack,
			DealerBlackjack: result.DealerBlackjack,
			Seed:            seed,
		})
	}

	return stats, nil
}

// PrintSummary writes a formatted report of simulation results
func PrintSummary(w io.Writer, stats *statistics.Statistics) {
	mean := stats.Mean()
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== RESULTS ===\n")
	fmt.Fprintf(w, "Rounds played: %d\n", stats.Rounds)
	fmt.Fprintf(w, "Total wagered: %.2f\n", stats.TotalBet)
	fmt.Fprintf(w, "Net result: %+.2f\n", stats.SumNet)
	fmt.Fprintf(w, "House edge: %.2f%%\n", stats.HouseEdge()*100)

	fmt.Fprintf(w, "\n=== PER ROUND ===\n")
	fmt.Fprintf(w, "Mean: %+.4f\n", mean)
	fmt.Fprintf(w, "Median: %+.4f\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.4f\n", stats.StdDev())
	fmt.Fprintf(w, "Std Error: %.4f\n", stats.StdError())
	fmt.Fprintf(w, "95%% CI: [%+.4f, %+.4f]\n", low, high)

	fmt.Fprintf(w, "\n=== OUTCOMES ===\n")
	fmt.Fprintf(w, "Wins: %d (%.1f%%)\n", stats.Wins, stats.WinRate()*100)
	fmt.Fprintf(w, "Losses: %d (%.1f%%)\n", stats.Losses, float64(stats.Losses)/float64(stats.Rounds)*100)
	fmt.Fprintf(w, "Pushes: %d (%.1f%%)\n", stats.Pushes, stats.PushRate()*100)
	fmt.Fprintf(w, "Player blackjacks: %d (%.2f%%)\n", stats.PlayerBlackjacks, stats.BlackjackRate()*100)
	fmt.Fprintf(w, "Dealer blackjacks: %d\n", stats.DealerBlackjacks)
	fmt.Fprintf(w, "Player busts: %d\n", stats.PlayerBusts)
	fmt.Fprintf(w, "Dealer busts: %d\n", stats.DealerBusts)
}
