package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"whiteboard/application/ports"
	vo "whiteboard/domain/core/valueobjects"
	"whiteboard/domain/events"
)

func created() events.DomainEvent {
	return events.NewNodeCreated(vo.NewNodeID(), vo.KindText, "Text", time.Now())
}

func TestInMemoryBusDeliversToSubscribers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	var got []string

	require.NoError(t, bus.Subscribe(events.TypeNodeCreated, ports.EventHandlerFunc(func(_ context.Context, e events.DomainEvent) error {
		got = append(got, "specific:"+e.GetEventType())
		return nil
	})))
	require.NoError(t, bus.Subscribe(AllEvents, ports.EventHandlerFunc(func(_ context.Context, e events.DomainEvent) error {
		got = append(got, "all:"+e.GetEventType())
		return nil
	})))

	require.NoError(t, bus.Publish(context.Background(), created()))
	assert.Equal(t, []string{"specific:node.created", "all:node.created"}, got)
}

func TestInMemoryBusContinuesAfterFailure(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	calls := 0
	failing := ports.EventHandlerFunc(func(context.Context, events.DomainEvent) error {
		calls++
		return errors.New("boom")
	})
	counting := ports.EventHandlerFunc(func(context.Context, events.DomainEvent) error {
		calls++
		return nil
	})
	require.NoError(t, bus.Subscribe(AllEvents, failing))
	require.NoError(t, bus.Subscribe(AllEvents, counting))

	err := bus.PublishBatch(context.Background(), []events.DomainEvent{created(), created()})
	assert.EqualError(t, err, "2 event handlers failed")
	assert.Equal(t, 4, calls)
}

func TestInMemoryBusUnsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	calls := 0
	handler := ports.EventHandlerFunc(func(context.Context, events.DomainEvent) error {
		calls++
		return nil
	})

	require.NoError(t, bus.Subscribe(events.TypeNodeCreated, handler))
	require.NoError(t, bus.Unsubscribe(events.TypeNodeCreated, handler))
	assert.Error(t, bus.Unsubscribe(events.TypeNodeCreated, handler))

	require.NoError(t, bus.Publish(context.Background(), created()))
	assert.Zero(t, calls)
}

func TestInMemoryBusRejectsBadSubscriptions(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	assert.Error(t, bus.Subscribe("", ports.EventHandlerFunc(nil)))
	assert.Error(t, bus.Subscribe(events.TypeNodeCreated, nil))
}

func TestInMemoryBusUnsubscribeNilHandler(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	require.NoError(t, bus.Subscribe(events.TypeNodeCreated, ports.EventHandlerFunc(func(context.Context, events.DomainEvent) error {
		return nil
	})))

	assert.NotPanics(t, func() {
		assert.Error(t, bus.Unsubscribe(events.TypeNodeCreated, nil))
	})
}

type recordingPublisher struct {
	batches int
	err     error
}

func (p *recordingPublisher) Publish(ctx context.Context, e events.DomainEvent) error {
	return p.PublishBatch(ctx, []events.DomainEvent{e})
}

func (p *recordingPublisher) PublishBatch(context.Context, []events.DomainEvent) error {
	p.batches++
	return p.err
}

func TestFanoutPublisher(t *testing.T) {
	ok := &recordingPublisher{}
	bad := &recordingPublisher{err: errors.New("down")}
	fanout := NewFanoutPublisher(bad, nil, ok)

	err := fanout.Publish(context.Background(), created())
	assert.EqualError(t, err, "down")
	assert.Equal(t, 1, ok.batches)
	assert.Equal(t, 1, bad.batches)

	require.NoError(t, fanout.PublishBatch(context.Background(), nil))
	assert.Equal(t, 1, ok.batches)
}
