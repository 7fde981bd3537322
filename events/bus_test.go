package events_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfassina/grimdark/errs"
	"github.com/pfassina/grimdark/events"
)

func TestSubscribePriorityOrder(t *testing.T) {
	bus := events.NewBus()
	var order []string

	bus.Subscribe(events.KindLogMessage, 1, func(_ context.Context, _ events.Event) error {
		order = append(order, "low")
		return nil
	})
	bus.Subscribe(events.KindLogMessage, 10, func(_ context.Context, _ events.Event) error {
		order = append(order, "high")
		return nil
	})
	bus.Subscribe(events.KindLogMessage, 10, func(_ context.Context, _ events.Event) error {
		order = append(order, "high-second")
		return nil
	})

	require.NoError(t, bus.Publish(events.LogMessageEvent{Text: "hi"}))
	assert.Equal(t, []string{"high", "high-second", "low"}, order)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := events.NewBus()
	calls := 0

	id := bus.Subscribe(events.KindLogMessage, 0, func(_ context.Context, _ events.Event) error {
		calls++
		return nil
	})
	require.NoError(t, bus.Publish(events.LogMessageEvent{}))
	bus.Unsubscribe(id)
	require.NoError(t, bus.Publish(events.LogMessageEvent{}))

	assert.Equal(t, 1, calls)
}

func TestRecursionLimitIsFatal(t *testing.T) {
	bus := events.NewBusWithMaxDepth(3)

	var publishAgain func(ctx context.Context, evt events.Event) error
	publishAgain = func(ctx context.Context, evt events.Event) error {
		return bus.PublishCtx(ctx, events.LogMessageEvent{Text: "again"})
	}
	bus.Subscribe(events.KindLogMessage, 0, publishAgain)

	err := bus.Publish(events.LogMessageEvent{Text: "start"})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.CodeEventRecursionLimit))
}

func TestTypedTopicRoundTrip(t *testing.T) {
	bus := events.NewBus()
	topic := events.UnitDefeatedTopic.On(bus)

	var got events.UnitDefeatedEvent
	topic.Subscribe(0, func(_ context.Context, evt events.UnitDefeatedEvent) error {
		got = evt
		return nil
	})

	require.NoError(t, topic.Publish(context.Background(), events.UnitDefeatedEvent{UnitID: "u1", KillerID: "u2", AtTick: 42}))
	assert.Equal(t, "u1", got.UnitID)
	assert.Equal(t, "u2", got.KillerID)
}

func TestQueueAndDrain(t *testing.T) {
	bus := events.NewBus()
	var received []string

	bus.Subscribe(events.KindObjectiveCompleted, 0, func(_ context.Context, evt events.Event) error {
		received = append(received, evt.(events.ObjectiveCompletedEvent).Name)
		return nil
	})

	bus.Enqueue(events.ObjectiveCompletedEvent{Name: "a"})
	bus.Enqueue(events.ObjectiveCompletedEvent{Name: "b"})
	assert.Empty(t, received)

	require.NoError(t, bus.Drain(context.Background()))
	assert.Equal(t, []string{"a", "b"}, received)
}

func TestHandlerErrorStopsDispatch(t *testing.T) {
	bus := events.NewBus()
	secondCalled := false

	bus.Subscribe(events.KindLogMessage, 10, func(_ context.Context, _ events.Event) error {
		return errs.New(errs.CodeInvariantViolation, "boom")
	})
	bus.Subscribe(events.KindLogMessage, 0, func(_ context.Context, _ events.Event) error {
		secondCalled = true
		return nil
	})

	err := bus.Publish(events.LogMessageEvent{})
	assert.Error(t, err)
	assert.False(t, secondCalled)
}
