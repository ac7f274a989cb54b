package domain

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is a fact recorded by an aggregate.
type DomainEvent interface {
	EventID() string
	EventName() string
	AggregateID() Identifier
	OccurredOn() time.Time
}

// EventHandler reacts to an event applied on an aggregate.
type EventHandler func(event DomainEvent)

// BaseEvent carries the metadata shared by all events. Concrete events embed
// it and implement EventName.
type BaseEvent struct {
	id          string
	aggregateID Identifier
	occurredOn  time.Time
}

// NewBaseEvent stamps a new event for aggregateID.
func NewBaseEvent(aggregateID Identifier) BaseEvent {
	return BaseEvent{
		id:          uuid.NewString(),
		aggregateID: aggregateID,
		occurredOn:  time.Now().UTC(),
	}
}

// EventID returns the unique event identifier.
func (e BaseEvent) EventID() string { return e.id }

// AggregateID returns the identifier of the aggregate that recorded the event.
func (e BaseEvent) AggregateID() Identifier { return e.aggregateID }

// OccurredOn returns when the event was recorded.
func (e BaseEvent) OccurredOn() time.Time { return e.occurredOn }
