package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"whiteboard/domain/events"
)

type fakeEventBridge struct {
	inputs []*eventbridge.PutEventsInput
	err    error
	failed int32
}

func (f *fakeEventBridge) PutEvents(_ context.Context, in *eventbridge.PutEventsInput, _ ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	out := &eventbridge.PutEventsOutput{FailedEntryCount: f.failed}
	for i := range in.Entries {
		entry := types.PutEventsResultEntry{EventId: aws.String("id")}
		if int32(i) < f.failed {
			entry.ErrorCode = aws.String("InternalFailure")
			entry.ErrorMessage = aws.String("boom")
		}
		out.Entries = append(out.Entries, entry)
	}
	return out, nil
}

func newPublisher(client EventBridgeAPI) *EventBridgePublisher {
	settings := DefaultBreakerSettings()
	settings.MinRequests = 2
	settings.FailureThreshold = 1
	settings.Timeout = time.Hour
	return NewEventBridgePublisher(client, "board-events", "whiteboard.board", settings, zap.NewNop())
}

func TestEventBridgePublisherBatchesByTen(t *testing.T) {
	client := &fakeEventBridge{}
	p := newPublisher(client)

	batch := make([]events.DomainEvent, 23)
	for i := range batch {
		batch[i] = created()
	}
	require.NoError(t, p.PublishBatch(context.Background(), batch))

	require.Len(t, client.inputs, 3)
	assert.Len(t, client.inputs[0].Entries, 10)
	assert.Len(t, client.inputs[2].Entries, 3)

	entry := client.inputs[0].Entries[0]
	assert.Equal(t, "board-events", aws.ToString(entry.EventBusName))
	assert.Equal(t, "whiteboard.board", aws.ToString(entry.Source))
	assert.Equal(t, events.TypeNodeCreated, aws.ToString(entry.DetailType))
	assert.Contains(t, aws.ToString(entry.Detail), `"event_type":"node.created"`)
}

func TestEventBridgePublisherReportsFailedEntries(t *testing.T) {
	p := newPublisher(&fakeEventBridge{failed: 1})
	err := p.PublishBatch(context.Background(), []events.DomainEvent{created(), created()})
	assert.EqualError(t, err, "1 events failed to publish")
}

func TestEventBridgePublisherOpensBreaker(t *testing.T) {
	client := &fakeEventBridge{err: errors.New("throttled")}
	p := newPublisher(client)
	ctx := context.Background()

	assert.Error(t, p.Publish(ctx, created()))
	assert.Error(t, p.Publish(ctx, created()))
	assert.Equal(t, gobreaker.StateOpen, p.BreakerState())

	err := p.Publish(ctx, created())
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Len(t, client.inputs, 2)
}
