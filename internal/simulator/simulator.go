package simulator

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds int
	Tables int
	Decks  int
	Policy string
	// Seed makes shuffles reproducible. Zero uses the cryptographic source.
	Seed   int64
	Logger *log.Logger
}

// Simulator plays many rounds headlessly, standing in for the player with
// a fixed hit/stand policy
type Simulator struct {
	config Config
	policy Policy
}

// New creates a new simulator with the given configuration
func New(config Config) (*Simulator, error) {
	if config.Rounds < 0 {
		return nil, fmt.Errorf("rounds must not be negative: %d", config.Rounds)
	}
	if config.Tables < 1 {
		config.Tables = 1
	}
	if config.Decks == 0 {
		config.Decks = blackjack.DefaultConfig().Decks
	}
	if config.Policy == "" {
		config.Policy = "dealer"
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}

	policy, err := LookupPolicy(config.Policy)
	if err != nil {
		return nil, err
	}
	return &Simulator{config: config, policy: policy}, nil
}

// Run plays the configured rounds across independent tables in parallel
// and returns the merged statistics
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]*statistics.Statistics, s.config.Tables)

	for table := 0; table < s.config.Tables; table++ {
		rounds := s.config.Rounds / s.config.Tables
		if table < s.config.Rounds%s.config.Tables {
			rounds++
		}
		g.Go(func() error {
			stats, err := s.playTable(ctx, table, rounds)
			if err != nil {
				return fmt.Errorf("table %d: %w", table, err)
			}
			results[table] = stats
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &statistics.Statistics{}
	for _, stats := range results {
		merged.Merge(stats)
	}
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return merged, nil
}

func (s *Simulator) playTable(ctx context.Context, table, rounds int) (*statistics.Statistics, error) {
	logger := s.config.Logger.With("table", table)

	seed := s.config.Seed
	if seed != 0 {
		seed += int64(table)
	}

	// Per-round engine logs are only worth their volume when debugging.
	engineLogger := log.New(io.Discard)
	if logger.GetLevel() <= log.DebugLevel {
		engineLogger = logger
	}

	cfg := blackjack.DefaultConfig()
	cfg.Decks = s.config.Decks
	cfg.Timings = blackjack.Timings{}
	engine, err := blackjack.New(cfg,
		blackjack.WithLogger(engineLogger),
		blackjack.WithRand(randutil.NewOrCrypto(seed)))
	if err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for i := 0; i < rounds; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := s.playRound(engine)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", i+1, err)
		}
		if result == nil {
			stats.Aborted++
			continue
		}
		stats.Add(*result)
	}

	logger.Debug("Table finished", "rounds", stats.Rounds, "mean", stats.Mean())
	return stats, nil
}

// playRound drives one round to completion. A nil result means the round
// ended without settling.
func (s *Simulator) playRound(engine *blackjack.Engine) (*blackjack.Result, error) {
	if err := engine.StartGame(); err != nil {
		return nil, err
	}

	for engine.Phase() == blackjack.PlayerTurn {
		snap := engine.Snapshot()
		if s.policy(snap.Player, snap.Dealer.Cards[1]) {
			if err := engine.Hit(); err != nil {
				return nil, err
			}
			continue
		}
		done, err := engine.Stand()
		if err != nil {
			return nil, err
		}
		<-done
	}

	snap := engine.Snapshot()
	switch snap.Phase {
	case blackjack.RoundOver:
		return snap.LastResult, nil
	case blackjack.Failed:
		return nil, snap.Err
	default:
		return nil, fmt.Errorf("round stopped in phase %s", snap.Phase)
	}
}

// RunSimulation is a convenience function for running a simulation with basic parameters
func RunSimulation(ctx context.Context, rounds int, policy string, seed int64, logger *log.Logger) (*statistics.Statistics, error) {
	sim, err := New(Config{
		Rounds: rounds,
		Tables: 1,
		Policy: policy,
		Seed:   seed,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}
	return sim.Run(ctx)
}

// PolicyNames lists the registered policies in sorted order
func PolicyNames() []string {
	names := make([]string, 0, len(policies))
	for name := range policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
