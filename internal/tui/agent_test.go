package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/game"
)

// scriptedShoe deals a fixed card sequence for end-to-end round tests.
type scriptedShoe struct {
	cards []deck.Card
	next  int
}

func (s *scriptedShoe) Draw() deck.Card {
	if s.next >= len(s.cards) {
		panic("scripted shoe exhausted")
	}
	card := s.cards[s.next]
	s.next++
	return card
}

func newTestAgent() (*Agent, *Model) {
	m := NewModelWithOptions(quietLogger(), "Alice", 100, true)
	return NewTestAgent(m, quietLogger()), m
}

func capturedText(m *Model) string {
	return strings.Join(m.GetCapturedLog(), "\n")
}

func TestAgentOnEvent(t *testing.T) {
	t.Run("conceals the dealer hole card", func(t *testing.T) {
		agent, m := newTestAgent()
		card := deck.MustParseCards("Kd")[0]

		agent.OnEvent(game.NewCardDealtEvent("r1", game.SeatDealer, card, true, 0))

		text := capturedText(m)
		assert.Contains(t, text, "face down")
		assert.NotContains(t, text, "K♦")
	})

	t.Run("narrates the dealer upcard", func(t *testing.T) {
		agent, m := newTestAgent()
		card := deck.MustParseCards("9d")[0]

		agent.OnEvent(game.NewCardDealtEvent("r1", game.SeatDealer, card, false, 9))

		assert.Contains(t, capturedText(m), "Dealer shows 9♦")
	})

	t.Run("narrates player cards with the running total", func(t *testing.T) {
		agent, m := newTestAgent()
		card := deck.MustParseCards("As")[0]

		agent.OnEvent(game.NewCardDealtEvent("r1", game.SeatPlayer, card, false, 11))

		assert.Contains(t, capturedText(m), "You are dealt A♠ (11)")
	})

	t.Run("narrates the stand with the final total", func(t *testing.T) {
		agent, m := newTestAgent()

		agent.OnEvent(game.NewPlayerActionEvent("r1", game.Stand, 18))

		assert.Contains(t, capturedText(m), "You stand on 18.")
	})

	t.Run("narrates the dealer draw", func(t *testing.T) {
		agent, m := newTestAgent()
		card := deck.MustParseCards("5h")[0]

		agent.OnEvent(game.NewDealerDrawEvent("r1", card, 19))

		assert.Contains(t, capturedText(m), "Dealer draws 5♥ (19)")
	})

	t.Run("tracks balance and record through a round", func(t *testing.T) {
		agent, m := newTestAgent()

		agent.OnEvent(game.NewRoundStartEvent("r1", "Alice", 10, 90))
		result := game.Result{
			RoundID:     "r1",
			Outcome:     game.Win,
			Bet:         10,
			Payout:      20,
			Net:         10,
			PlayerScore: 18,
			DealerScore: 17,
		}
		agent.OnEvent(game.NewRoundEndEvent("r1", result,
			deck.MustParseCards("Ts 8h"), deck.MustParseCards("9h 5d 3c")))

		assert.Equal(t, 1, m.wins)
		assert.Equal(t, 110.0, m.balance)

		text := capturedText(m)
		assert.Contains(t, text, "Alice bets $10")
		assert.Contains(t, text, "You win $20.")
		assert.Contains(t, text, "Your hand:")
		assert.Contains(t, text, "Dealer hand:")
	})
}

func TestAgentWaitForBet(t *testing.T) {
	agent, m := newTestAgent()

	require.NoError(t, m.InjectBet(25))
	assert.Equal(t, 25.0, agent.WaitForBet())
	assert.Equal(t, "Bet amount (0 to quit)", m.input.Placeholder)
}

func TestAgentPlaysRound(t *testing.T) {
	// The reply is buffered up front, so the whole round runs on this
	// goroutine: the engine deals, consumes the stand, plays the dealer
	// out and settles.
	agent, m := newTestAgent()

	shoe := &scriptedShoe{cards: deck.MustParseCards("Ts 9h 8h 5d 3c")}
	player := game.NewPlayer("Alice", 100)

	bus := game.NewEventBus()
	bus.Subscribe(agent)

	require.NoError(t, m.InjectAction(game.Stand))

	round := game.NewRound(shoe, player, game.WithEventBus(bus))
	result, err := round.Play(10, agent)
	require.NoError(t, err)

	assert.Equal(t, game.Win, result.Outcome)
	assert.Equal(t, 110.0, player.Balance())

	text := capturedText(m)
	assert.Contains(t, text, "Alice bets $10")
	assert.Contains(t, text, "face down")
	assert.Contains(t, text, "You stand on 18.")
	assert.Contains(t, text, "Dealer reveals")
	assert.Contains(t, text, "Dealer draws 3♣ (17)")
	assert.Contains(t, text, "You win $20.")

	assert.Equal(t, 1, m.wins)
	assert.Equal(t, 110.0, m.balance)
}
