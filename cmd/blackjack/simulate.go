package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/simulator"
)

type SimulateCmd struct {
	Rounds  int     `default:"100000" env:"BLACKJACK_ROUNDS" help:"Number of rounds to simulate"`
	Workers int     `env:"BLACKJACK_WORKERS" help:"Concurrent workers (0 for one per CPU)"`
	Decks   int     `default:"6" env:"BLACKJACK_DECKS" help:"Decks in the shoe"`
	Bet     float64 `default:"10" env:"BLACKJACK_BET" help:"Flat bet per round"`
	StandAt int     `default:"17" name:"stand-at" env:"BLACKJACK_STAND_AT" help:"Hit below this total"`
	Fresh   bool    `env:"BLACKJACK_FRESH" help:"Reshuffle the shoe before every round"`
	Seed    int64   `env:"BLACKJACK_SEED" help:"RNG seed (0 for random)"`
	Verbose bool    `short:"v" help:"Verbose logging"`
}

func (c *SimulateCmd) Run() error {
	level := log.WarnLevel
	if c.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	fmt.Printf("Simulating %d rounds: %d decks, bet %.2f, stand at %d, seed %d\n",
		c.Rounds, c.Decks, c.Bet, c.StandAt, seed)

	// Ctrl+C stops the workers instead of killing the process mid-run
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sim := simulator.New(simulator.Config{
		Rounds:    c.Rounds,
		Workers:   c.Workers,
		Decks:     c.Decks,
		Bet:       c.Bet,
		StandAt:   c.StandAt,
		FreshShoe: c.Fresh,
		Seed:      seed,
		Logger:    logger,
	})

	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	simulator.PrintSummary(os.Stdout, stats)
	return nil
}
