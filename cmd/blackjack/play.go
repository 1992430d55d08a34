package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/config"
	"github.com/lox/blackjack-cli/internal/console"
	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/game"
	"github.com/lox/blackjack-cli/internal/randutil"
	"github.com/lox/blackjack-cli/internal/tui"
)

type PlayCmd struct {
	Config   string  `help:"Path to config file" default:"blackjack.hcl" env:"BLACKJACK_CONFIG"`
	Name     string  `help:"Player name (prompted for when empty)" env:"BLACKJACK_NAME"`
	Decks    int     `help:"Decks in the shoe (overrides config)" env:"BLACKJACK_DECKS"`
	Balance  float64 `help:"Starting balance (overrides config)" env:"BLACKJACK_BALANCE"`
	Seed     int64   `help:"RNG seed (0 for random)" env:"BLACKJACK_SEED"`
	TUI      bool    `help:"Play in the full-screen TUI" env:"BLACKJACK_TUI"`
	LogFile  string  `help:"Debug log file (overrides config)"`
	LogLevel string  `help:"Log level: debug, info, warn, error (overrides config)"`
}

func (c *PlayCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	// CLI flags override file settings
	if c.Decks > 0 {
		cfg.Table.Decks = c.Decks
	}
	if c.Balance > 0 {
		cfg.Table.StartingBalance = c.Balance
	}
	if c.LogFile != "" {
		cfg.UI.LogFile = c.LogFile
	}
	if c.LogLevel != "" {
		cfg.UI.LogLevel = c.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Logs go to a file so they never tear up the play surface
	logFile, err := os.OpenFile(cfg.UI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return fmt.Errorf("failed to create debug log: %w", err)
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()

	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "blackjack",
	})
	switch cfg.GetLogLevel() {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.WarnLevel)
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("starting session",
		"seed", seed,
		"decks", cfg.Table.Decks,
		"balance", cfg.Table.StartingBalance,
		"fresh_shoe", cfg.FreshShoePerRound())

	shoe := deck.NewShoe(randutil.New(seed), cfg.Table.Decks)

	if c.TUI {
		return c.runTUI(cfg, shoe, logger)
	}
	return c.runConsole(cfg, shoe, logger)
}

// runConsole plays the line-oriented session on stdin/stdout.
func (c *PlayCmd) runConsole(cfg *config.Config, shoe *deck.Shoe, logger *log.Logger) error {
	con := console.New(os.Stdin, os.Stdout, console.WithDealerDelay(cfg.GetDealerDelay()))

	con.ShowWelcome(cfg.Table.Decks, cfg.Table.StartingBalance)

	name := strings.TrimSpace(c.Name)
	if name == "" {
		var err error
		name, err = con.PromptName()
		if err != nil {
			if errors.Is(err, console.ErrQuit) {
				return nil
			}
			return err
		}
	}

	player := game.NewPlayer(name, cfg.Table.StartingBalance)

	bus := game.NewEventBus()
	bus.Subscribe(con)

	for {
		if player.Balance() <= 0 {
			con.ShowError("You're out of money.")
			break
		}

		bet, err := con.PromptBet()
		if err != nil {
			if errors.Is(err, console.ErrQuit) {
				break
			}
			return err
		}

		if cfg.FreshShoePerRound() {
			shoe.Reset()
		}

		round := game.NewRound(shoe, player,
			game.WithEventBus(bus),
			game.WithLogger(logger))

		if _, err := round.Play(bet, con); err != nil {
			if errors.Is(err, game.ErrInsufficientFunds) || errors.Is(err, game.ErrInvalidBet) {
				con.ShowError(err.Error())
				continue
			}
			return err
		}

		con.ShowBalance(player.Balance())
	}

	con.ShowGoodbye(player.Name, player.Balance())
	return nil
}

// runTUI plays the session in the full-screen Bubble Tea interface. The
// engine loop runs on its own goroutine while the UI owns the terminal.
func (c *PlayCmd) runTUI(cfg *config.Config, shoe *deck.Shoe, logger *log.Logger) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = "Player"
	}

	player := game.NewPlayer(name, cfg.Table.StartingBalance)

	model := tui.NewModel(logger, name, cfg.Table.StartingBalance)
	agent := tui.NewAgent(model, logger)

	bus := game.NewEventBus()
	bus.Subscribe(agent)

	go func() {
		defer agent.Quit()

		agent.ShowMessage(fmt.Sprintf("Welcome, %s. %d-deck shoe, dealer stands on 17, blackjack pays 3:2.",
			name, cfg.Table.Decks))

		for {
			if player.Balance() <= 0 {
				agent.ShowMessage("You're out of money. Thanks for playing.")
				return
			}

			bet := agent.WaitForBet()
			if bet == 0 {
				return
			}

			if cfg.FreshShoePerRound() {
				shoe.Reset()
			}

			round := game.NewRound(shoe, player,
				game.WithEventBus(bus),
				game.WithLogger(logger))

			if _, err := round.Play(bet, agent); err != nil {
				if errors.Is(err, game.ErrInsufficientFunds) || errors.Is(err, game.ErrInvalidBet) {
					agent.ShowError(err.Error())
					continue
				}
				logger.Error("round failed", "error", err)
				agent.ShowError(err.Error())
				return
			}
		}
	}()

	return agent.Run()
}
