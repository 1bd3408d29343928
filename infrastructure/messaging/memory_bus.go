package messaging

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"whiteboard/application/ports"
	"whiteboard/domain/events"

	"go.uber.org/zap"
)

// AllEvents subscribes a handler to every event type
const AllEvents = "*"

// InMemoryEventBus delivers events synchronously to in-process observers
// in subscription order.
type InMemoryEventBus struct {
	mu       sync.RWMutex
	handlers map[string][]ports.EventHandler
	logger   *zap.Logger
}

// NewInMemoryEventBus creates an empty bus
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryEventBus{
		handlers: make(map[string][]ports.EventHandler),
		logger:   logger,
	}
}

// Subscribe registers a handler for an event type, or AllEvents
func (b *InMemoryEventBus) Subscribe(eventType string, handler ports.EventHandler) error {
	if eventType == "" {
		return fmt.Errorf("event type is required")
	}
	if handler == nil {
		return fmt.Errorf("handler is required")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	return nil
}

// Unsubscribe removes the first registration of handler for eventType
func (b *InMemoryEventBus) Unsubscribe(eventType string, handler ports.EventHandler) error {
	if handler == nil {
		return fmt.Errorf("handler is required")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	registered := b.handlers[eventType]
	for i, h := range registered {
		if sameHandler(h, handler) {
			b.handlers[eventType] = append(registered[:i:i], registered[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("handler not subscribed to %s", eventType)
}

// Publish delivers one event
func (b *InMemoryEventBus) Publish(ctx context.Context, event events.DomainEvent) error {
	return b.PublishBatch(ctx, []events.DomainEvent{event})
}

// PublishBatch delivers events in order. A failing handler does not stop
// delivery to the others; the failures are reported together.
func (b *InMemoryEventBus) PublishBatch(ctx context.Context, domainEvents []events.DomainEvent) error {
	failures := 0
	for _, event := range domainEvents {
		for _, handler := range b.handlersFor(event.GetEventType()) {
			if !handler.CanHandle(event.GetEventType()) {
				continue
			}
			if err := handler.Handle(ctx, event); err != nil {
				failures++
				b.logger.Warn("Event handler failed",
					zap.String("eventType", event.GetEventType()),
					zap.String("aggregateID", event.GetAggregateID()),
					zap.Error(err),
				)
			}
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d event handlers failed", failures)
	}
	return nil
}

func (b *InMemoryEventBus) handlersFor(eventType string) []ports.EventHandler {
	b.mu.RLock()
	defer b.mu.RUnlock()

	specific := b.handlers[eventType]
	wildcard := b.handlers[AllEvents]
	out := make([]ports.EventHandler, 0, len(specific)+len(wildcard))
	out = append(out, specific...)
	return append(out, wildcard...)
}

// sameHandler compares handlers, including func adapters which == cannot.
func sameHandler(a, b ports.EventHandler) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	if va.Kind() == reflect.Func {
		return va.Pointer() == vb.Pointer()
	}
	if !va.Type().Comparable() {
		return false
	}
	return a == b
}
