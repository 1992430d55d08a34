package deck

import (
	"errors"
	"testing"
)

func TestCardValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rank Rank
		want int
	}{
		{"ace counts eleven", Ace, 11},
		{"two", Two, 2},
		{"five", Five, 5},
		{"nine", Nine, 9},
		{"ten", Ten, 10},
		{"jack counts ten", Jack, 10},
		{"queen counts ten", Queen, 10},
		{"king counts ten", King, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Card{Rank: tt.rank, Suit: Spades}
			if got := c.Value(); got != tt.want {
				t.Errorf("Value() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewCardValidatesRank(t *testing.T) {
	t.Parallel()

	for _, rank := range []Rank{Ace, Seven, King} {
		if _, err := NewCard(rank, Hearts); err != nil {
			t.Errorf("NewCard(%d) unexpected error: %v", rank, err)
		}
	}

	for _, rank := range []Rank{0, -1, 14, 99} {
		_, err := NewCard(rank, Hearts)
		if !errors.Is(err, ErrInvalidRank) {
			t.Errorf("NewCard(%d) error = %v, want ErrInvalidRank", rank, err)
		}
	}
}

func TestCardString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		card Card
		want string
	}{
		{Card{Rank: Ace, Suit: Spades}, "A♠"},
		{Card{Rank: Ten, Suit: Hearts}, "10♥"},
		{Card{Rank: Queen, Suit: Diamonds}, "Q♦"},
		{Card{Rank: Two, Suit: Clubs}, "2♣"},
	}

	for _, tt := range tests {
		if got := tt.card.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestSuitIsRed(t *testing.T) {
	t.Parallel()

	if Spades.IsRed() || Clubs.IsRed() {
		t.Error("spades and clubs should be black")
	}
	if !Hearts.IsRed() || !Diamonds.IsRed() {
		t.Error("hearts and diamonds should be red")
	}
}

func TestCardIsAce(t *testing.T) {
	t.Parallel()

	if !(Card{Rank: Ace, Suit: Clubs}).IsAce() {
		t.Error("ace of clubs should be an ace")
	}
	if (Card{Rank: King, Suit: Clubs}).IsAce() {
		t.Error("king of clubs should not be an ace")
	}
}
