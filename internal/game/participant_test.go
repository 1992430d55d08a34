package game

import (
	"errors"
	"testing"

	"github.com/lox/blackjack-cli/internal/deck"
)

func TestPlaceBet(t *testing.T) {
	t.Parallel()

	p := NewPlayer("Alice", 100)
	if err := p.PlaceBet(40); err != nil {
		t.Fatalf("PlaceBet(40) unexpected error: %v", err)
	}
	if p.Balance() != 60 {
		t.Errorf("Balance() = %v, want 60", p.Balance())
	}
}

func TestPlaceBetInsufficientFunds(t *testing.T) {
	t.Parallel()

	p := NewPlayer("Bob", 25)
	err := p.PlaceBet(30)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("PlaceBet(30) error = %v, want ErrInsufficientFunds", err)
	}
	if p.Balance() != 25 {
		t.Errorf("Balance() = %v after rejected bet, want 25", p.Balance())
	}
}

func TestPlaceBetRejectsNonPositive(t *testing.T) {
	t.Parallel()

	p := NewPlayer("Carol", 100)
	for _, bet := range []float64{0, -10} {
		if err := p.PlaceBet(bet); !errors.Is(err, ErrInvalidBet) {
			t.Errorf("PlaceBet(%v) error = %v, want ErrInvalidBet", bet, err)
		}
	}
	if p.Balance() != 100 {
		t.Errorf("Balance() = %v after rejected bets, want 100", p.Balance())
	}
}

func TestPlaceBetEntireBalance(t *testing.T) {
	t.Parallel()

	p := NewPlayer("Dana", 50)
	if err := p.PlaceBet(50); err != nil {
		t.Fatalf("betting the whole balance should be allowed: %v", err)
	}
	if p.Balance() != 0 {
		t.Errorf("Balance() = %v, want 0", p.Balance())
	}
}

func TestCredit(t *testing.T) {
	t.Parallel()

	p := NewPlayer("Eve", 90)
	p.Credit(25)
	if p.Balance() != 115 {
		t.Errorf("Balance() = %v, want 115", p.Balance())
	}
}

func TestDealerUpcardAndHoleCard(t *testing.T) {
	t.Parallel()

	d := &Dealer{}
	if _, ok := d.Upcard(); ok {
		t.Error("empty dealer hand should have no upcard")
	}
	if _, ok := d.HoleCard(); ok {
		t.Error("empty dealer hand should have no hole card")
	}

	for _, c := range deck.MustParseCards("Kh 7s") {
		d.Hand.Add(c)
	}

	up, ok := d.Upcard()
	if !ok || up != (deck.Card{Rank: deck.King, Suit: deck.Hearts}) {
		t.Errorf("Upcard() = %v, %v, want K♥", up, ok)
	}
	hole, ok := d.HoleCard()
	if !ok || hole != (deck.Card{Rank: deck.Seven, Suit: deck.Spades}) {
		t.Errorf("HoleCard() = %v, %v, want 7♠", hole, ok)
	}
}

func TestDealerMustDraw(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cards string
		want  bool
	}{
		{"sixteen draws", "Th 6s", true},
		{"hard seventeen stands", "Th 7s", false},
		{"soft seventeen stands", "Ah 6s", false},
		{"twenty stands", "Th Qs", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Dealer{}
			for _, c := range deck.MustParseCards(tt.cards) {
				d.Hand.Add(c)
			}
			if got := d.MustDraw(); got != tt.want {
				t.Errorf("MustDraw() = %v, want %v", got, tt.want)
			}
		})
	}
}
