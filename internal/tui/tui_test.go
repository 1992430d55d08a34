package tui

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack-cli/internal/game"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func TestModelTestMode(t *testing.T) {
	t.Run("test mode captures log entries", func(t *testing.T) {
		m := NewModelWithOptions(quietLogger(), "Alice", 100, true)

		assert.True(t, m.IsTestMode())
		assert.Empty(t, m.GetCapturedLog())

		m.applyEngineMsg(logMsg{line: "Alice bets $10"})
		m.applyEngineMsg(logMsg{line: "You are dealt A♠ (11)"})

		captured := m.GetCapturedLog()
		require.Len(t, captured, 2)
		assert.Equal(t, "Alice bets $10", captured[0])
		assert.Equal(t, "You are dealt A♠ (11)", captured[1])
	})

	t.Run("production mode does not capture logs", func(t *testing.T) {
		m := NewModel(quietLogger(), "Alice", 100)

		assert.False(t, m.IsTestMode())
		m.addLog("Some log entry")
		assert.Nil(t, m.GetCapturedLog())
	})

	t.Run("injection works in test mode", func(t *testing.T) {
		m := NewModelWithOptions(quietLogger(), "Alice", 100, true)

		require.NoError(t, m.InjectBet(25))
		assert.Equal(t, 25.0, <-m.bets)

		require.NoError(t, m.InjectAction(game.Hit))
		assert.Equal(t, game.Hit, <-m.actions)
	})

	t.Run("injection fails in production mode", func(t *testing.T) {
		m := NewModel(quietLogger(), "Alice", 100)

		err := m.InjectBet(25)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "test mode")

		err = m.InjectAction(game.Hit)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "test mode")
	})
}

func TestModelBetInput(t *testing.T) {
	newBetModel := func() *Model {
		m := NewModelWithOptions(quietLogger(), "Alice", 100, true)
		m.applyEngineMsg(promptBetMsg{})
		return m
	}

	t.Run("valid amount is delivered", func(t *testing.T) {
		m := newBetModel()
		m.processInput("25")
		assert.Equal(t, 25.0, <-m.bets)
	})

	t.Run("decimal amounts are accepted", func(t *testing.T) {
		m := newBetModel()
		m.processInput("12.5")
		assert.Equal(t, 12.5, <-m.bets)
	})

	t.Run("zero means quit", func(t *testing.T) {
		m := newBetModel()
		m.processInput("0")
		assert.Equal(t, 0.0, <-m.bets)
	})

	t.Run("quit keyword maps to zero", func(t *testing.T) {
		m := newBetModel()
		m.processInput("q")
		assert.Equal(t, 0.0, <-m.bets)
	})

	t.Run("invalid input logs an error and keeps waiting", func(t *testing.T) {
		m := newBetModel()
		for _, input := range []string{"abc", "-5", "NaN"} {
			m.processInput(input)
		}
		select {
		case amount := <-m.bets:
			t.Fatalf("unexpected bet delivered: %v", amount)
		default:
		}

		captured := m.GetCapturedLog()
		require.Len(t, captured, 3)
		assert.Contains(t, captured[0], "positive amount")

		m.processInput("10")
		assert.Equal(t, 10.0, <-m.bets)
	})

	t.Run("prompt updates the input placeholder", func(t *testing.T) {
		m := newBetModel()
		assert.Equal(t, "Bet amount (0 to quit)", m.input.Placeholder)
	})
}

func TestModelActionInput(t *testing.T) {
	newActionModel := func() *Model {
		m := NewModelWithOptions(quietLogger(), "Alice", 100, true)
		m.applyEngineMsg(promptActionMsg{hand: "[T♠ 8♥]", score: 18, upcard: "9♦"})
		return m
	}

	cases := []struct {
		input string
		want  game.Action
	}{
		{"h", game.Hit},
		{"H", game.Hit},
		{"hit", game.Hit},
		{"HIT", game.Hit},
		{"s", game.Stand},
		{"stand", game.Stand},
		{"Stand", game.Stand},
	}

	for _, tc := range cases {
		t.Run("input "+tc.input, func(t *testing.T) {
			m := newActionModel()
			m.processInput(tc.input)
			assert.Equal(t, tc.want, <-m.actions)
		})
	}

	t.Run("invalid input logs an error and keeps waiting", func(t *testing.T) {
		m := newActionModel()
		m.processInput("fold")

		select {
		case action := <-m.actions:
			t.Fatalf("unexpected action delivered: %v", action)
		default:
		}
		captured := m.GetCapturedLog()
		require.Len(t, captured, 1)
		assert.Contains(t, captured[0], `"h" or "s"`)

		m.processInput("h")
		assert.Equal(t, game.Hit, <-m.actions)
	})

	t.Run("prompt shows the hand in the action pane", func(t *testing.T) {
		m := newActionModel()
		assert.Contains(t, m.handLine, "(18)")
		assert.Contains(t, m.handLine, "9♦")
	})

	t.Run("input is ignored when no prompt is live", func(t *testing.T) {
		m := NewModelWithOptions(quietLogger(), "Alice", 100, true)
		m.processInput("h")
		m.processInput("25")

		select {
		case action := <-m.actions:
			t.Fatalf("unexpected action delivered: %v", action)
		case amount := <-m.bets:
			t.Fatalf("unexpected bet delivered: %v", amount)
		default:
		}
	})
}

func TestModelSidebar(t *testing.T) {
	m := NewModelWithOptions(quietLogger(), "Alice", 100, true)
	m.applyEngineMsg(statusMsg{balance: 120, wins: 2, losses: 1, pushes: 1})

	assert.Equal(t, 120.0, m.balance)

	sidebar := m.renderSidebarPane()
	assert.Contains(t, sidebar, "Alice")
	assert.Contains(t, sidebar, "Balance: $120")
	assert.Contains(t, sidebar, "Rounds: 4")
	assert.Contains(t, sidebar, "W 2 / L 1 / P 1")
}

func TestModelReleaseEngine(t *testing.T) {
	m := NewModelWithOptions(quietLogger(), "Alice", 100, true)
	m.releaseEngine()

	assert.Equal(t, game.Stand, <-m.actions)
	assert.Equal(t, 0.0, <-m.bets)
}
