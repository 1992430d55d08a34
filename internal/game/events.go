package game

import (
	"time"

	"github.com/lox/blackjack-cli/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypeRoundStart   EventType = "round_start"
	EventTypeCardDealt    EventType = "card_dealt"
	EventTypePlayerAction EventType = "player_action"
	EventTypeDealerReveal EventType = "dealer_reveal"
	EventTypeDealerDraw   EventType = "dealer_draw"
	EventTypeRoundEnd     EventType = "round_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a round
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// Seat identifies whose hand received a card.
type Seat int

const (
	SeatPlayer Seat = iota
	SeatDealer
)

// String returns the string representation of a seat
func (s Seat) String() string {
	if s == SeatDealer {
		return "dealer"
	}
	return "player"
}

// RoundStartEvent is published once the bet is debited and play begins.
type RoundStartEvent struct {
	RoundID   string
	Player    string
	Bet       float64
	Balance   float64 // Balance after the bet was taken
	timestamp time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundStartEvent creates a new round start event
func NewRoundStartEvent(roundID, player string, bet, balance float64) RoundStartEvent {
	return RoundStartEvent{
		RoundID:   roundID,
		Player:    player,
		Bet:       bet,
		Balance:   balance,
		timestamp: time.Now(),
	}
}

// CardDealtEvent is published for every card dealt to a hand. FaceDown
// marks the dealer's hole card: subscribers must keep it concealed, and
// Score is zero so the total cannot leak either.
type CardDealtEvent struct {
	RoundID   string
	To        Seat
	Card      deck.Card
	FaceDown  bool
	Score     int // Receiving hand's total after this card, 0 when face down
	timestamp time.Time
}

func (e CardDealtEvent) EventType() EventType { return EventTypeCardDealt }
func (e CardDealtEvent) Timestamp() time.Time { return e.timestamp }

// NewCardDealtEvent creates a new card dealt event
func NewCardDealtEvent(roundID string, to Seat, card deck.Card, faceDown bool, score int) CardDealtEvent {
	if faceDown {
		score = 0
	}
	return CardDealtEvent{
		RoundID:   roundID,
		To:        to,
		Card:      card,
		FaceDown:  faceDown,
		Score:     score,
		timestamp: time.Now(),
	}
}

// PlayerActionEvent is published when the player commits to hit or stand.
type PlayerActionEvent struct {
	RoundID   string
	Action    Action
	Score     int // Hand total when the decision was made
	timestamp time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.timestamp }

// NewPlayerActionEvent creates a new player action event
func NewPlayerActionEvent(roundID string, action Action, score int) PlayerActionEvent {
	return PlayerActionEvent{
		RoundID:   roundID,
		Action:    action,
		Score:     score,
		timestamp: time.Now(),
	}
}

// DealerRevealEvent is published when the dealer turns over the hole card.
type DealerRevealEvent struct {
	RoundID   string
	HoleCard  deck.Card
	Cards     []deck.Card
	Score     int
	timestamp time.Time
}

func (e DealerRevealEvent) EventType() EventType { return EventTypeDealerReveal }
func (e DealerRevealEvent) Timestamp() time.Time { return e.timestamp }

// NewDealerRevealEvent creates a new dealer reveal event
func NewDealerRevealEvent(roundID string, holeCard deck.Card, cards []deck.Card, score int) DealerRevealEvent {
	copied := make([]deck.Card, len(cards))
	copy(copied, cards)
	return DealerRevealEvent{
		RoundID:   roundID,
		HoleCard:  holeCard,
		Cards:     copied,
		Score:     score,
		timestamp: time.Now(),
	}
}

// DealerDrawEvent is published for each card the dealer draws to 17.
type DealerDrawEvent struct {
	RoundID   string
	Card      deck.Card
	Score     int
	timestamp time.Time
}

func (e DealerDrawEvent) EventType() EventType { return EventTypeDealerDraw }
func (e DealerDrawEvent) Timestamp() time.Time { return e.timestamp }

// NewDealerDrawEvent creates a new dealer draw event
func NewDealerDrawEvent(roundID string, card deck.Card, score int) DealerDrawEvent {
	return DealerDrawEvent{
		RoundID:   roundID,
		Card:      card,
		Score:     score,
		timestamp: time.Now(),
	}
}

// RoundEndEvent is published after settlement. Both hands are included in
// full; by this point nothing is concealed.
type RoundEndEvent struct {
	RoundID     string
	Result      Result
	PlayerCards []deck.Card
	DealerCards []deck.Card
	timestamp   time.Time
}

func (e RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }
func (e RoundEndEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundEndEvent creates a new round end event
func NewRoundEndEvent(roundID string, result Result, playerCards, dealerCards []deck.Card) RoundEndEvent {
	return RoundEndEvent{
		RoundID:     roundID,
		Result:      result,
		PlayerCards: playerCards,
		DealerCards: dealerCards,
		timestamp:   time.Now(),
	}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
