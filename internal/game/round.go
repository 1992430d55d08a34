package game

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/roundid"
)

// dealerStandTotal is the house rule: the dealer draws to 17 and stands on
// all 17s.
const dealerStandTotal = 17

// Payout multipliers applied to the bet at settlement. The stake is part
// of the multiplier, so a plain win returns the bet plus equal winnings
// and a natural pays 3:2.
const (
	payoutBlackjack = 2.5
	payoutWin       = 2.0
	payoutPush      = 1.0
)

// Phase tracks the lifecycle of a round.
type Phase int

const (
	Dealing Phase = iota
	PlayerTurn
	DealerTurn
	Resolution
	Done
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case Dealing:
		return "dealing"
	case PlayerTurn:
		return "player_turn"
	case DealerTurn:
		return "dealer_turn"
	case Resolution:
		return "resolution"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Outcome is the player's result for a round.
type Outcome int

const (
	Lose Outcome = iota
	Push
	Win
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Push:
		return "push"
	case Lose:
		return "lose"
	default:
		return "unknown"
	}
}

// CardSource deals cards to a round. *deck.Shoe is the production source;
// tests substitute scripted sequences.
type CardSource interface {
	Draw() deck.Card
}

// Result summarises a settled round.
type Result struct {
	RoundID         string
	Outcome         Outcome
	Bet             float64
	Payout          float64 // Credited at settlement, stake included
	Net             float64 // Payout minus bet
	PlayerScore     int
	DealerScore     int
	PlayerBlackjack bool
	DealerBlackjack bool
	Duration        time.Duration
}

// Round runs a single round of blackjack from deal to settlement.
type Round struct {
	id     string
	phase  Phase
	player *Player
	dealer *Dealer
	shoe   CardSource
	bet    float64
	bus    EventBus
	clock  quartz.Clock
	logger *log.Logger
}

// RoundOption configures a Round during creation.
type RoundOption func(*roundConfig)

// roundConfig holds all optional configuration for creating a round.
type roundConfig struct {
	id     string
	bus    EventBus
	clock  quartz.Clock
	logger *log.Logger
}

// NewRound creates a round for player, drawing from shoe. Randomness lives
// entirely in the shoe, so identical shoes replay identical rounds.
//
// Example usage:
//
//	shoe := deck.NewShoe(randutil.New(seed), 6)
//	round := game.NewRound(shoe, player, game.WithEventBus(bus))
//	result, err := round.Play(10, agent)
func NewRound(shoe CardSource, player *Player, opts ...RoundOption) *Round {
	if shoe == nil {
		panic("shoe is required for round creation")
	}
	if player == nil {
		panic("player is required for round creation")
	}

	cfg := &roundConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.id == "" {
		cfg.id = roundid.New()
	}
	if cfg.bus == nil {
		cfg.bus = NewEventBus()
	}
	if cfg.clock == nil {
		cfg.clock = quartz.NewReal()
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}

	return &Round{
		id:     cfg.id,
		phase:  Dealing,
		player: player,
		dealer: &Dealer{},
		shoe:   shoe,
		bus:    cfg.bus,
		clock:  cfg.clock,
		logger: cfg.logger,
	}
}

// WithRoundID overrides the generated round identifier.
func WithRoundID(id string) RoundOption {
	return func(c *roundConfig) {
		c.id = id
	}
}

// WithEventBus publishes round events to an existing bus so front ends
// can observe play.
func WithEventBus(bus EventBus) RoundOption {
	return func(c *roundConfig) {
		c.bus = bus
	}
}

// WithClock substitutes the clock used for result timing.
func WithClock(clock quartz.Clock) RoundOption {
	return func(c *roundConfig) {
		c.clock = clock
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *log.Logger) RoundOption {
	return func(c *roundConfig) {
		c.logger = logger
	}
}

// ID returns the round identifier.
func (r *Round) ID() string {
	return r.id
}

// Phase returns the round's current lifecycle phase.
func (r *Round) Phase() Phase {
	return r.phase
}

// Play runs the round to completion: debit the bet, deal, consult the
// agent through the player's turn, play out the dealer's hand and settle.
// A round plays exactly once.
func (r *Round) Play(bet float64, agent Agent) (*Result, error) {
	if r.phase != Dealing {
		return nil, errors.New("game: round already played")
	}
	if agent == nil {
		return nil, errors.New("game: agent is required")
	}

	if err := r.player.PlaceBet(bet); err != nil {
		return nil, err
	}
	r.bet = bet
	start := r.clock.Now()

	r.logger.Debug("starting round",
		"round", r.id,
		"player", r.player.Name,
		"bet", bet,
		"balance", r.player.Balance())
	r.bus.Publish(NewRoundStartEvent(r.id, r.player.Name, bet, r.player.Balance()))

	r.deal()

	// A natural resolves immediately: push against a dealer natural,
	// 3:2 otherwise.
	if r.player.Hand.IsBlackjack() {
		if r.dealer.Hand.IsBlackjack() {
			return r.settle(Push, start), nil
		}
		return r.settle(Win, start), nil
	}

	r.phase = PlayerTurn
	for !r.player.Hand.IsBust() {
		// A hand worth 21 stands automatically; hitting could only bust.
		if r.player.Hand.Score() == 21 {
			break
		}

		action := agent.MakeDecision(r.view())
		r.logger.Debug("player action",
			"round", r.id,
			"action", action,
			"score", r.player.Hand.Score())
		r.bus.Publish(NewPlayerActionEvent(r.id, action, r.player.Hand.Score()))

		if action == Stand {
			break
		}

		card := r.shoe.Draw()
		r.player.Hand.Add(card)
		r.bus.Publish(NewCardDealtEvent(r.id, SeatPlayer, card, false, r.player.Hand.Score()))
	}

	// Busting loses the stake outright; the dealer does not play.
	if r.player.Hand.IsBust() {
		return r.settle(Lose, start), nil
	}

	r.playDealer()

	playerScore, dealerScore := r.player.Hand.Score(), r.dealer.Hand.Score()
	switch {
	case r.dealer.Hand.IsBust():
		return r.settle(Win, start), nil
	case playerScore > dealerScore:
		return r.settle(Win, start), nil
	case playerScore < dealerScore:
		return r.settle(Lose, start), nil
	default:
		return r.settle(Push, start), nil
	}
}

// view snapshots the round for an agent decision.
func (r *Round) view() RoundView {
	upcard, _ := r.dealer.Upcard()
	return RoundView{
		RoundID:      r.id,
		Phase:        r.phase,
		PlayerCards:  r.player.Hand.Cards(),
		PlayerScore:  r.player.Hand.Score(),
		DealerUpcard: upcard,
		Bet:          r.bet,
		Balance:      r.player.Balance(),
	}
}

// deal gives player and dealer two cards each, alternating, with the
// dealer's second card face down.
func (r *Round) deal() {
	r.player.Hand.Clear()
	r.dealer.Hand.Clear()

	for i := 0; i < 2; i++ {
		card := r.shoe.Draw()
		r.player.Hand.Add(card)
		r.bus.Publish(NewCardDealtEvent(r.id, SeatPlayer, card, false, r.player.Hand.Score()))

		card = r.shoe.Draw()
		r.dealer.Hand.Add(card)
		faceDown := i == 1
		r.bus.Publish(NewCardDealtEvent(r.id, SeatDealer, card, faceDown, r.dealer.Hand.Score()))
	}

	r.logger.Debug("dealt hands",
		"round", r.id,
		"player_hand", r.player.Hand.String(),
		"player_score", r.player.Hand.Score())
}

// playDealer reveals the hole card and draws until the house total
// reaches 17.
func (r *Round) playDealer() {
	r.phase = DealerTurn

	hole, _ := r.dealer.HoleCard()
	r.logger.Debug("dealer reveals",
		"round", r.id,
		"hand", r.dealer.Hand.String(),
		"score", r.dealer.Hand.Score())
	r.bus.Publish(NewDealerRevealEvent(r.id, hole, r.dealer.Hand.Cards(), r.dealer.Hand.Score()))

	for r.dealer.MustDraw() {
		card := r.shoe.Draw()
		r.dealer.Hand.Add(card)
		r.logger.Debug("dealer draws",
			"round", r.id,
			"card", card.String(),
			"score", r.dealer.Hand.Score())
		r.bus.Publish(NewDealerDrawEvent(r.id, card, r.dealer.Hand.Score()))
	}
}

// settle credits the payout, builds the result and closes the round.
func (r *Round) settle(outcome Outcome, start time.Time) *Result {
	r.phase = Resolution

	var payout float64
	switch {
	case outcome == Win && r.player.Hand.IsBlackjack():
		payout = r.bet * payoutBlackjack
	case outcome == Win:
		payout = r.bet * payoutWin
	case outcome == Push:
		payout = r.bet * payoutPush
	}
	r.player.Credit(payout)

	result := &Result{
		RoundID:         r.id,
		Outcome:         outcome,
		Bet:             r.bet,
		Payout:          payout,
		Net:             payout - r.bet,
		PlayerScore:     r.player.Hand.Score(),
		DealerScore:     r.dealer.Hand.Score(),
		PlayerBlackjack: r.player.Hand.IsBlackjack(),
		DealerBlackjack: r.dealer.Hand.IsBlackjack(),
		Duration:        r.clock.Since(start),
	}

	r.phase = Done
	r.logger.Debug("round settled",
		"round", r.id,
		"outcome", outcome,
		"payout", payout,
		"net", result.Net,
		"player_score", result.PlayerScore,
		"dealer_score", result.DealerScore,
		"balance", r.player.Balance())
	r.bus.Publish(NewRoundEndEvent(r.id, *result, r.player.Hand.Cards(), r.dealer.Hand.Cards()))

	return result
}
