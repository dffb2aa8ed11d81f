package eventbridge

import (
	"context"
	"testing"
	"time"

	"ideaforge-backend/domain/core/valueobjects"
	"ideaforge-backend/domain/events"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakePutEvents struct {
	inputs []*eventbridge.PutEventsInput
	output *eventbridge.PutEventsOutput
	err    error
}

func (f *fakePutEvents) PutEvents(ctx context.Context, params *eventbridge.PutEventsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error) {
	f.inputs = append(f.inputs, params)
	return f.output, f.err
}

// brokenEvent cannot be marshaled to JSON.
type brokenEvent struct {
	events.BaseEvent
	Ch chan int `json:"ch"`
}

func newBrokenEvent() brokenEvent {
	return brokenEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: "agg-1",
			EventType:   "idea.broken",
			Timestamp:   time.Now(),
			Version:     1,
		},
		Ch: make(chan int),
	}
}

func okOutput(entryCount int) *eventbridge.PutEventsOutput {
	entries := make([]types.PutEventsResultEntry, entryCount)
	for i := range entries {
		entries[i] = types.PutEventsResultEntry{EventId: aws.String("evt")}
	}
	return &eventbridge.PutEventsOutput{Entries: entries}
}

func TestPublishBatchSendsEntries(t *testing.T) {
	fake := &fakePutEvents{output: okOutput(2)}
	publisher := NewPublisher(fake, "test-bus", zap.NewNop())

	created := events.NewIdeaCreated(valueobjects.NewIdeaID(), "user-1", "Pizza drone", nil, time.Now())
	archived := events.NewIdeaArchived(valueobjects.NewIdeaID(), time.Now())

	err := publisher.PublishBatch(context.Background(), []events.DomainEvent{created, archived})
	require.NoError(t, err)

	require.Len(t, fake.inputs, 1)
	entries := fake.inputs[0].Entries
	require.Len(t, entries, 2)
	assert.Equal(t, "test-bus", aws.ToString(entries[0].EventBusName))
	assert.Equal(t, eventSource, aws.ToString(entries[0].Source))
	assert.Equal(t, "idea.created", aws.ToString(entries[0].DetailType))
	assert.Equal(t, "idea.archived", aws.ToString(entries[1].DetailType))
}

func TestPublishBatchChunksLargeBatches(t *testing.T) {
	fake := &fakePutEvents{output: okOutput(10)}
	publisher := NewPublisher(fake, "test-bus", zap.NewNop())

	batch := make([]events.DomainEvent, 12)
	for i := range batch {
		batch[i] = events.NewIdeaArchived(valueobjects.NewIdeaID(), time.Now())
	}

	err := publisher.PublishBatch(context.Background(), batch)
	require.NoError(t, err)

	require.Len(t, fake.inputs, 2)
	assert.Len(t, fake.inputs[0].Entries, 10)
	assert.Len(t, fake.inputs[1].Entries, 2)
}

func TestPublishBatchNamesRejectedEvent(t *testing.T) {
	// One rejected entry; the first event never reaches EventBridge because
	// it cannot be marshaled, so the rejection corresponds to the second.
	fake := &fakePutEvents{output: &eventbridge.PutEventsOutput{
		FailedEntryCount: 1,
		Entries: []types.PutEventsResultEntry{
			{ErrorCode: aws.String("ThrottlingException"), ErrorMessage: aws.String("slow down")},
		},
	}}

	core, logs := observer.New(zap.ErrorLevel)
	publisher := NewPublisher(fake, "test-bus", zap.New(core))

	created := events.NewIdeaCreated(valueobjects.NewIdeaID(), "user-1", "Pizza drone", nil, time.Now())
	err := publisher.PublishBatch(context.Background(), []events.DomainEvent{newBrokenEvent(), created})
	require.ErrorContains(t, err, "1 events failed")

	require.Len(t, fake.inputs, 1)
	assert.Len(t, fake.inputs[0].Entries, 1, "unmarshalable event should be dropped")

	rejected := logs.FilterMessage("event rejected by EventBridge").All()
	require.Len(t, rejected, 1)
	assert.Equal(t, "idea.created", rejected[0].ContextMap()["eventType"],
		"rejection log should name the event that was actually sent")
}

func TestPublishBatchEmptyIsNoop(t *testing.T) {
	fake := &fakePutEvents{}
	publisher := NewPublisher(fake, "test-bus", zap.NewNop())

	require.NoError(t, publisher.PublishBatch(context.Background(), nil))
	assert.Empty(t, fake.inputs)
}
