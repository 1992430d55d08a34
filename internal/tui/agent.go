package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/game"
)

// Agent bridges the round engine to the TUI. The engine goroutine blocks
// in WaitForBet and MakeDecision while the player types; replies arrive
// on the model's channels. Engine events become log pane entries.
type Agent struct {
	model   *Model
	program *tea.Program
	logger  *log.Logger

	// Session tallies for the sidebar
	startBalance float64
	wins         int
	losses       int
	pushes       int
}

// NewAgent creates an agent and the Bubble Tea program that hosts the model
func NewAgent(model *Model, logger *log.Logger) *Agent {
	if model == nil {
		panic("tui: NewAgent requires a model")
	}
	program := tea.NewProgram(model, tea.WithAltScreen())
	return &Agent{
		model:   model,
		program: program,
		logger:  logger.WithPrefix("agent"),
	}
}

// NewTestAgent creates an agent without a terminal program. Messages are
// applied to the model directly, which only works in test mode.
func NewTestAgent(model *Model, logger *log.Logger) *Agent {
	if model == nil {
		panic("tui: NewTestAgent requires a model")
	}
	return &Agent{
		model:  model,
		logger: logger.WithPrefix("agent"),
	}
}

// Run runs the TUI program on the calling goroutine until it exits
func (a *Agent) Run() error {
	if a.program == nil {
		return nil
	}
	_, err := a.program.Run()
	return err
}

// Quit signals the TUI to shut down gracefully
func (a *Agent) Quit() {
	a.model.SendQuitSignal()
}

// WaitForBet asks for the next stake and blocks until the player answers.
// Zero means the player wants to leave the table.
func (a *Agent) WaitForBet() float64 {
	a.logger.Debug("waiting for bet")
	a.send(promptBetMsg{})
	return <-a.model.bets
}

// MakeDecision implements game.Agent by prompting through the action pane
func (a *Agent) MakeDecision(view game.RoundView) game.Action {
	a.logger.Debug("waiting for action", "score", view.PlayerScore)
	a.send(promptActionMsg{
		hand:   formatCards(view.PlayerCards),
		score:  view.PlayerScore,
		upcard: formatCard(view.DealerUpcard),
	})
	return <-a.model.actions
}

// ShowError adds an error line to the game log
func (a *Agent) ShowError(msg string) {
	a.send(logMsg{ErrorStyle.Render(msg)})
}

// ShowMessage adds a plain line to the game log
func (a *Agent) ShowMessage(msg string) {
	a.send(logMsg{msg})
}

// OnEvent implements game.EventSubscriber, narrating the round into the
// log pane and keeping the sidebar tallies current.
func (a *Agent) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.RoundStartEvent:
		a.startBalance = e.Balance
		a.send(logMsg{InfoStyle.Render(strings.Repeat("─", 44))})
		a.send(logMsg{WarningStyle.Render(fmt.Sprintf("%s bets %s", e.Player, formatMoney(e.Bet))) +
			InfoStyle.Render(fmt.Sprintf(" • %s remaining", formatMoney(e.Balance)))})
		a.send(statusMsg{balance: e.Balance, wins: a.wins, losses: a.losses, pushes: a.pushes})

	case game.CardDealtEvent:
		switch {
		case e.FaceDown:
			a.send(logMsg{InfoStyle.Render("Dealer's second card is face down.")})
		case e.To == game.SeatDealer:
			a.send(logMsg{fmt.Sprintf("Dealer shows %s", formatCard(e.Card))})
		default:
			a.send(logMsg{fmt.Sprintf("You are dealt %s (%d)", formatCard(e.Card), e.Score)})
		}

	case game.PlayerActionEvent:
		if e.Action == game.Stand {
			a.send(logMsg{SuccessStyle.Render(fmt.Sprintf("You stand on %d.", e.Score))})
		} else {
			a.send(logMsg{SuccessStyle.Render("You hit.")})
		}

	case game.DealerRevealEvent:
		a.send(logMsg{fmt.Sprintf("Dealer reveals %s and has %s (%d)",
			formatCard(e.HoleCard), formatCards(e.Cards), e.Score)})

	case game.DealerDrawEvent:
		a.send(logMsg{fmt.Sprintf("Dealer draws %s (%d)", formatCard(e.Card), e.Score)})

	case game.RoundEndEvent:
		a.recordOutcome(e.Result)
		a.send(logMsg{fmt.Sprintf("Your hand:   %s (%d)", formatCards(e.PlayerCards), e.Result.PlayerScore)})
		a.send(logMsg{fmt.Sprintf("Dealer hand: %s (%d)", formatCards(e.DealerCards), e.Result.DealerScore)})
		a.send(logMsg{outcomeLine(e.Result)})
		a.send(statusMsg{
			balance: a.startBalance + e.Result.Payout,
			wins:    a.wins,
			losses:  a.losses,
			pushes:  a.pushes,
		})
	}
}

func (a *Agent) recordOutcome(result game.Result) {
	switch result.Outcome {
	case game.Win:
		a.wins++
	case game.Lose:
		a.losses++
	case game.Push:
		a.pushes++
	}
}

// send delivers a message into the Bubble Tea loop, or straight to the
// model when running without a program in tests.
func (a *Agent) send(msg tea.Msg) {
	if a.program != nil {
		a.program.Send(msg)
		return
	}
	a.model.applyEngineMsg(msg)
}

func outcomeLine(res game.Result) string {
	switch res.Outcome {
	case game.Win:
		if res.PlayerBlackjack {
			return SuccessStyle.Render(fmt.Sprintf("Blackjack! You win %s.", formatMoney(res.Payout)))
		}
		return SuccessStyle.Render(fmt.Sprintf("You win %s.", formatMoney(res.Payout)))
	case game.Push:
		return WarningStyle.Render("Push. Your bet is returned.")
	default:
		if res.PlayerScore > 21 {
			return ErrorStyle.Render(fmt.Sprintf("Bust! You lose %s.", formatMoney(res.Bet)))
		}
		if res.DealerBlackjack {
			return ErrorStyle.Render(fmt.Sprintf("Dealer has blackjack. You lose %s.", formatMoney(res.Bet)))
		}
		return ErrorStyle.Render(fmt.Sprintf("You lose %s.", formatMoney(res.Bet)))
	}
}
