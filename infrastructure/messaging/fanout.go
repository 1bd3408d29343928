package messaging

import (
	"context"
	"errors"

	"whiteboard/application/ports"
	"whiteboard/domain/events"
)

// FanoutPublisher hands every batch to each publisher in turn. All
// publishers are tried; their errors are joined.
type FanoutPublisher struct {
	publishers []ports.EventPublisher
}

// NewFanoutPublisher skips nil publishers
func NewFanoutPublisher(publishers ...ports.EventPublisher) *FanoutPublisher {
	f := &FanoutPublisher{}
	for _, p := range publishers {
		if p != nil {
			f.publishers = append(f.publishers, p)
		}
	}
	return f
}

func (f *FanoutPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	return f.PublishBatch(ctx, []events.DomainEvent{event})
}

func (f *FanoutPublisher) PublishBatch(ctx context.Context, domainEvents []events.DomainEvent) error {
	if len(domainEvents) == 0 {
		return nil
	}
	var errs []error
	for _, p := range f.publishers {
		if err := p.PublishBatch(ctx, domainEvents); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
