package manager_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfassina/grimdark/events"
	"github.com/pfassina/grimdark/geom"
	"github.com/pfassina/grimdark/manager"
)

func TestHazardScheduleDoesNotGetTombstoned(t *testing.T) {
	gs := newTestState(t)
	hm := manager.NewHazardManager(gs)
	hm.Schedule(manager.Hazard{ID: "firetrap", At: geom.Vector2{X: 2, Y: 2}}, geom.Tick(5))

	assert.False(t, gs.Timeline.Empty())
	entry, err := gs.Timeline.Peek()
	require.NoError(t, err)
	assert.Equal(t, geom.Tick(5), entry.ReadyTick)
}

func TestHazardTriggerPublishesEvent(t *testing.T) {
	gs := newTestState(t)
	hm := manager.NewHazardManager(gs)
	hm.Schedule(manager.Hazard{ID: "firetrap", At: geom.Vector2{X: 2, Y: 2}}, geom.Tick(5))

	var got events.HazardTriggeredEvent
	events.HazardTriggeredTopic.On(gs.Bus).Subscribe(0, func(_ context.Context, evt events.HazardTriggeredEvent) error {
		got = evt
		return nil
	})

	require.NoError(t, hm.Trigger(context.Background(), "firetrap"))
	assert.Equal(t, "firetrap", got.HazardID)
}
