package blackjack

import (
	"time"

	"github.com/lox/blackjack/internal/deck"
)

// EventType represents a round event type with type safety
type EventType string

// EventType constants for round events
const (
	EventTypeRoundStart     EventType = "round_start"
	EventTypeCardsDealt     EventType = "cards_dealt"
	EventTypePhaseChange    EventType = "phase_change"
	EventTypeRoundSettled   EventType = "round_settled"
	EventTypeShoeReshuffled EventType = "shoe_reshuffled"
	EventTypeRoundFailed    EventType = "round_failed"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents anything that happens to the engine's state
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartEvent is published when a new round begins
type RoundStartEvent struct {
	Round     uint64
	RoundID   string
	timestamp time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// CardsDealtEvent is published whenever cards land in a hand
type CardsDealtEvent struct {
	Round     uint64
	Role      Role
	Cards     []deck.Card
	Value     int
	timestamp time.Time
}

func (e CardsDealtEvent) EventType() EventType { return EventTypeCardsDealt }
func (e CardsDealtEvent) Timestamp() time.Time { return e.timestamp }

// PhaseChangeEvent is published on every state machine transition
type PhaseChangeEvent struct {
	Round     uint64
	From      Phase
	To        Phase
	Message   string
	timestamp time.Time
}

func (e PhaseChangeEvent) EventType() EventType { return EventTypePhaseChange }
func (e PhaseChangeEvent) Timestamp() time.Time { return e.timestamp }

// RoundSettledEvent is published once the outcome of a round is decided
type RoundSettledEvent struct {
	Round     uint64
	RoundID   string
	Result    Result
	timestamp time.Time
}

func (e RoundSettledEvent) EventType() EventType { return EventTypeRoundSettled }
func (e RoundSettledEvent) Timestamp() time.Time { return e.timestamp }

// ShoeReshuffledEvent is published when a deal crossed the reshuffle threshold
type ShoeReshuffledEvent struct {
	Round     uint64
	Remaining int
	timestamp time.Time
}

func (e ShoeReshuffledEvent) EventType() EventType { return EventTypeShoeReshuffled }
func (e ShoeReshuffledEvent) Timestamp() time.Time { return e.timestamp }

// RoundFailedEvent is published when a round aborts with an error
type RoundFailedEvent struct {
	Round     uint64
	Err       error
	timestamp time.Time
}

func (e RoundFailedEvent) EventType() EventType { return EventTypeRoundFailed }
func (e RoundFailedEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to engine events. OnEvent is called with
// the engine locked, so it must not call back into the engine.
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to EventSubscriber
type EventSubscriberFunc func(event GameEvent)

// OnEvent calls f(event)
func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

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

// Unsubscribe removes a subscriber from receiving events. Function
// subscribers cannot be compared and are never removed.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	if _, ok := subscriber.(EventSubscriberFunc); ok {
		return
	}
	for i, sub := range bus.subscribers {
		if _, ok := sub.(EventSubscriberFunc); ok {
			continue
		}
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers in subscription order
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
