package events

import "time"

// DomainEvent is raised by aggregates after a state change commits.
type DomainEvent interface {
	AggregateSID() string
	EventType() string
	OccurredAt() time.Time
}

// BaseEvent carries the fields common to every domain event.
type BaseEvent struct {
	SID  string    `json:"aggregate_sid"`
	Type string    `json:"event_type"`
	At   time.Time `json:"occurred_at"`
}

func (e BaseEvent) AggregateSID() string   { return e.SID }
func (e BaseEvent) EventType() string      { return e.Type }
func (e BaseEvent) OccurredAt() time.Time  { return e.At }

// Handler processes a domain event. Handlers must be safe to call
// concurrently.
type Handler func(event DomainEvent)

// Publisher publishes domain events to subscribed handlers.
type Publisher interface {
	Publish(event DomainEvent)
}
