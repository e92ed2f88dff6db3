// Package events provides the in-process event bus the domain modules publish
// on. Events carry audit-relevant facts (note creation, quota rejections, plan
// upgrades); handlers run out of band and never alter request outcomes.
package events

import (
	"context"
	"time"
)

// Event is implemented by every domain event put on the bus.
type Event interface {
	// EventName identifies the event type. Subscriptions match on it.
	EventName() string
	// OccurredAt is the time the event was produced.
	OccurredAt() time.Time
}

// BaseEvent carries the fields shared by all events. Domain events embed it.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

// OccurredAt is the time the event was produced.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// NewBaseEvent stamps a base event with the current time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now()}
}

// Handler consumes events it is subscribed to.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, event Event) error

// Handle calls the underlying function.
func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus publishes domain events to subscribed handlers.
type Bus interface {
	// Publish hands the event to every handler subscribed to its name.
	// Handlers run asynchronously; the caller does not wait.
	Publish(ctx context.Context, event Event)

	// PublishSync runs all handlers before returning and reports the first
	// handler error.
	PublishSync(ctx context.Context, event Event) error

	// Subscribe registers a handler for events whose EventName matches
	// eventName.
	Subscribe(eventName string, handler Handler)
}
