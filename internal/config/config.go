// Package config loads table configuration from HCL files. A missing file
// yields the defaults, so the game runs with no configuration at all.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Shoe handling between rounds. A persistent shoe deals through the same
// cards round after round and reshuffles only when it runs out; a fresh
// shoe is reshuffled before every round.
const (
	ShoeModePersistent = "persistent"
	ShoeModeFresh      = "fresh"
)

// Config represents the complete table configuration
type Config struct {
	Table TableSettings `hcl:"table,block"`
	UI    UISettings    `hcl:"ui,block"`
}

// TableSettings contains the rules of the table
type TableSettings struct {
	Decks           int     `hcl:"decks,optional"`
	ShoeMode        string  `hcl:"shoe_mode,optional"`
	StartingBalance float64 `hcl:"starting_balance,optional"`
}

// UISettings contains interface settings
type UISettings struct {
	LogLevel      string `hcl:"log_level,optional"`
	LogFile       string `hcl:"log_file,optional"`
	DealerDelayMs int    `hcl:"dealer_delay_ms,optional"`
}

// Default returns the default table configuration
func Default() *Config {
	return &Config{
		Table: TableSettings{
			Decks:           6,
			ShoeMode:        ShoeModePersistent,
			StartingBalance: 100,
		},
		UI: UISettings{
			LogLevel:      "info",
			LogFile:       "blackjack.log",
			DealerDelayMs: 600,
		},
	}
}

// Load reads table configuration from an HCL file
func Load(filename string) (*Config, error) {
	// Check if file exists
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	defaults := Default()

	if config.Table.Decks == 0 {
		config.Table.Decks = defaults.Table.Decks
	}
	if config.Table.ShoeMode == "" {
		config.Table.ShoeMode = defaults.Table.ShoeMode
	}
	if config.Table.StartingBalance == 0 {
		config.Table.StartingBalance = defaults.Table.StartingBalance
	}
	if config.UI.LogLevel == "" {
		config.UI.LogLevel = defaults.UI.LogLevel
	}
	if config.UI.LogFile == "" {
		config.UI.LogFile = defaults.UI.LogFile
	}
	if config.UI.DealerDelayMs == 0 {
		config.UI.DealerDelayMs = defaults.UI.DealerDelayMs
	}

	return &config, nil
}

// Validate validates the table configuration
func (c *Config) Validate() error {
	if c.Table.Decks < 1 || c.Table.Decks > 8 {
		return fmt.Errorf("decks must be between 1 and 8, got %d", c.Table.Decks)
	}

	if c.Table.ShoeMode != ShoeModePersistent && c.Table.ShoeMode != ShoeModeFresh {
		return fmt.Errorf("invalid shoe mode: %s", c.Table.ShoeMode)
	}

	if c.Table.StartingBalance <= 0 {
		return fmt.Errorf("starting balance must be positive")
	}

	if c.UI.DealerDelayMs < -1 {
		return fmt.Errorf("dealer delay cannot be less than -1")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.UI.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.UI.LogLevel)
	}

	return nil
}

// GetLogLevel returns the log level
func (c *Config) GetLogLevel() string {
	return c.UI.LogLevel
}

// GetDealerDelay returns the pause between dealer cards. Configure
// dealer_delay_ms = -1 to disable pacing; zero falls back to the default.
func (c *Config) GetDealerDelay() time.Duration {
	if c.UI.DealerDelayMs < 0 {
		return 0
	}
	return time.Duration(c.UI.DealerDelayMs) * time.Millisecond
}

// FreshShoePerRound reports whether the shoe is reshuffled before every round.
func (c *Config) FreshShoePerRound() bool {
	return c.Table.ShoeMode == ShoeModeFresh
}
