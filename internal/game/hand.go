package game

import (
	"strings"

	"github.com/lox/blackjack-cli/internal/deck"
)

// Hand holds the cards dealt to one participant.
type Hand struct {
	cards []deck.Card
}

// Add appends a card to the hand.
func (h *Hand) Add(c deck.Card) {
	h.cards = append(h.cards, c)
}

// Cards returns a copy of the cards in the hand.
func (h *Hand) Cards() []deck.Card {
	out := make([]deck.Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// Score returns the best total for the hand. Every ace starts at 11, then
// aces drop to 1 one at a time while the total exceeds 21.
func (h *Hand) Score() int {
	total, aces := 0, 0
	for _, c := range h.cards {
		total += c.Value()
		if c.IsAce() {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// IsBlackjack reports a natural: exactly two cards totalling 21.
func (h *Hand) IsBlackjack() bool {
	return len(h.cards) == 2 && h.Score() == 21
}

// IsBust reports whether the hand exceeds 21.
func (h *Hand) IsBust() bool {
	return h.Score() > 21
}

// Count returns the number of cards held.
func (h *Hand) Count() int {
	return len(h.cards)
}

// Clear removes all cards so the hand can play another round.
func (h *Hand) Clear() {
	h.cards = h.cards[:0]
}

// String renders the hand like "A♠ K♦".
func (h *Hand) String() string {
	parts := make([]string, len(h.cards))
	for i, c := range h.cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
