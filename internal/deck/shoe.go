package deck

import rand "math/rand/v2"

// DeckSize is the number of cards in a single deck.
const DeckSize = 52

// Shoe holds one or more standard 52-card decks and deals from the front.
type Shoe struct {
	cards []Card
	next  int
	rng   *rand.Rand // Random source for deterministic shuffling
}

// NewShoe creates a shuffled shoe of numDecks standard decks. The rng must
// not be nil; use randutil.New for a seeded source.
func NewShoe(rng *rand.Rand, numDecks int) *Shoe {
	if rng == nil {
		panic("deck: NewShoe requires a non-nil rng")
	}
	if numDecks < 1 {
		panic("deck: NewShoe requires at least one deck")
	}

	s := &Shoe{
		cards: make([]Card, 0, numDecks*DeckSize),
		rng:   rng,
	}
	for i := 0; i < numDecks; i++ {
		for suit := Spades; suit <= Clubs; suit++ {
			for rank := Ace; rank <= King; rank++ {
				s.cards = append(s.cards, Card{Rank: rank, Suit: suit})
			}
		}
	}
	s.Shuffle()
	return s
}

// Shuffle returns every card to the shoe and shuffles using Fisher-Yates.
func (s *Shoe) Shuffle() {
	s.next = 0
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Draw deals the next card. An exhausted shoe reshuffles itself first, so
// Draw never fails.
func (s *Shoe) Draw() Card {
	if s.next >= len(s.cards) {
		s.Shuffle()
	}
	card := s.cards[s.next]
	s.next++
	return card
}

// Reset restores the shoe to its full contents and reshuffles.
func (s *Shoe) Reset() {
	s.Shuffle()
}

// Remaining returns the number of undealt cards.
func (s *Shoe) Remaining() int {
	return len(s.cards) - s.next
}

// Size returns the total number of cards the shoe holds when full.
func (s *Shoe) Size() int {
	return len(s.cards)
}

// NumDecks returns how many decks the shoe was built from.
func (s *Shoe) NumDecks() int {
	return len(s.cards) / DeckSize
}
