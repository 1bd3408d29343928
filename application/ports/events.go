package ports

import (
	"context"

	"whiteboard/domain/events"
)

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// EventBus defines the interface for publishing domain events to in-process
// observers
type EventBus interface {
	EventPublisher

	// Subscribe registers a handler for an event type, or "*" for all types
	Subscribe(eventType string, handler EventHandler) error

	// Unsubscribe removes a handler
	Unsubscribe(eventType string, handler EventHandler) error
}

// EventHandler defines the interface for handling domain events
type EventHandler interface {
	// Handle processes an event
	Handle(ctx context.Context, event events.DomainEvent) error

	// CanHandle checks if this handler can process the event
	CanHandle(eventType string) bool
}

// EventHandlerFunc adapts a function to EventHandler. It accepts every
// event type it is subscribed to.
type EventHandlerFunc func(ctx context.Context, event events.DomainEvent) error

// Handle implements EventHandler
func (f EventHandlerFunc) Handle(ctx context.Context, event events.DomainEvent) error {
	return f(ctx, event)
}

// CanHandle implements EventHandler
func (f EventHandlerFunc) CanHandle(string) bool {
	return true
}
