package game

import (
	"errors"
	"fmt"

	"github.com/lox/blackjack-cli/internal/deck"
)

var (
	// ErrInsufficientFunds indicates a wager larger than the player's balance.
	ErrInsufficientFunds = errors.New("game: insufficient funds")

	// ErrInvalidBet indicates a zero or negative wager.
	ErrInvalidBet = errors.New("game: bet must be positive")
)

// Player holds a seat at the table and tracks their bankroll across rounds.
type Player struct {
	Name string
	Hand Hand

	balance float64
}

// NewPlayer creates a player with a starting balance.
func NewPlayer(name string, balance float64) *Player {
	return &Player{Name: name, balance: balance}
}

// Balance returns the player's current funds.
func (p *Player) Balance() float64 {
	return p.balance
}

// PlaceBet debits the wager from the player's balance. The round returns
// winnings through Credit at settlement.
func (p *Player) PlaceBet(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidBet, amount)
	}
	if amount > p.balance {
		return fmt.Errorf("%w: bet %v exceeds balance %v", ErrInsufficientFunds, amount, p.balance)
	}
	p.balance -= amount
	return nil
}

// Credit returns winnings (stake included) to the player's balance.
func (p *Player) Credit(amount float64) {
	p.balance += amount
}

// Dealer plays the house hand.
type Dealer struct {
	Hand Hand
}

// Upcard returns the dealer's face-up first card. The second card stays
// concealed until the dealer's turn.
func (d *Dealer) Upcard() (deck.Card, bool) {
	if len(d.Hand.cards) == 0 {
		return deck.Card{}, false
	}
	return d.Hand.cards[0], true
}

// HoleCard returns the dealer's face-down second card.
func (d *Dealer) HoleCard() (deck.Card, bool) {
	if len(d.Hand.cards) < 2 {
		return deck.Card{}, false
	}
	return d.Hand.cards[1], true
}

// MustDraw reports whether house rules require the dealer to take another
// card. The dealer stands on 17 and above.
func (d *Dealer) MustDraw() bool {
	return d.Hand.Score() < dealerStandTotal
}
