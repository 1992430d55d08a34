package game

import (
	"testing"

	"github.com/lox/blackjack-cli/internal/deck"
)

func TestEventBusDeliversToSubscribers(t *testing.T) {
	bus := NewEventBus()
	sub := &recordingSubscriber{}
	bus.Subscribe(sub)

	bus.Publish(NewRoundStartEvent("r1", "Alice", 10, 90))
	card := deck.MustParseCards("As")[0]
	bus.Publish(NewCardDealtEvent("r1", SeatPlayer, card, false, 11))

	if len(sub.events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(sub.events))
	}

	start, ok := sub.events[0].(RoundStartEvent)
	if !ok {
		t.Fatalf("Expected RoundStartEvent, got %T", sub.events[0])
	}
	if start.Player != "Alice" || start.Bet != 10 || start.Balance != 90 {
		t.Errorf("Unexpected payload: %+v", start)
	}
	if start.Timestamp().IsZero() {
		t.Error("Expected event to carry a timestamp")
	}

	dealt, ok := sub.events[1].(CardDealtEvent)
	if !ok {
		t.Fatalf("Expected CardDealtEvent, got %T", sub.events[1])
	}
	if dealt.To != SeatPlayer || dealt.Score != 11 {
		t.Errorf("Unexpected payload: %+v", dealt)
	}
}

func TestEventBusUnsubscribe(t *testing.T) {
	bus := NewEventBus()
	sub := &recordingSubscriber{}
	bus.Subscribe(sub)
	bus.Unsubscribe(sub)

	bus.Publish(NewRoundStartEvent("r1", "Alice", 10, 90))

	if len(sub.events) != 0 {
		t.Errorf("Expected no events after unsubscribe, got %d", len(sub.events))
	}
}

func TestFaceDownDealConcealsScore(t *testing.T) {
	card := deck.MustParseCards("Kd")[0]

	event := NewCardDealtEvent("r1", SeatDealer, card, true, 19)

	if event.Score != 0 {
		t.Errorf("Expected a face-down deal to zero the score, got %d", event.Score)
	}
	if !event.FaceDown {
		t.Error("Expected FaceDown to be set")
	}
}

func TestSeatString(t *testing.T) {
	if got := SeatPlayer.String(); got != "player" {
		t.Errorf("SeatPlayer.String() = %q, want %q", got, "player")
	}
	if got := SeatDealer.String(); got != "dealer" {
		t.Errorf("SeatDealer.String() = %q, want %q", got, "dealer")
	}
}
