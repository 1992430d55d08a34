package game

import "github.com/lox/blackjack-cli/internal/deck"

// Action represents a player decision during their turn.
type Action int

const (
	Hit Action = iota
	Stand
)

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	default:
		return "unknown"
	}
}

// RoundView is the read-only state handed to agents when they act. The
// dealer's hole card is deliberately absent: agents see exactly what a
// player at the table would.
type RoundView struct {
	RoundID      string
	Phase        Phase
	PlayerCards  []deck.Card
	PlayerScore  int
	DealerUpcard deck.Card
	Bet          float64
	Balance      float64
}

// Agent represents any entity (human or policy) that decides how to play a
// hand. Agents receive immutable views and return decisions - no state
// mutation allowed.
type Agent interface {
	MakeDecision(view RoundView) Action
}

// PolicyAgent hits until the hand reaches a target total. PolicyAgent{StandAt: 17}
// plays the dealer's own strategy.
type PolicyAgent struct {
	StandAt int
}

// MakeDecision hits below the configured total and stands otherwise.
func (a PolicyAgent) MakeDecision(view RoundView) Action {
	if view.PlayerScore < a.StandAt {
		return Hit
	}
	return Stand
}

// ScriptedAgent replays a fixed sequence of actions, standing once the
// script runs out. Used to drive exact scenarios in tests.
type ScriptedAgent struct {
	Actions []Action

	next int
}

// MakeDecision returns the next scripted action.
func (a *ScriptedAgent) MakeDecision(view RoundView) Action {
	if a.next >= len(a.Actions) {
		return Stand
	}
	action := a.Actions[a.next]
	a.next++
	return action
}
