package manager_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfassina/grimdark/events"
	"github.com/pfassina/grimdark/geom"
	"github.com/pfassina/grimdark/manager"
	"github.com/pfassina/grimdark/unit"
)

func TestInterruptWatcherFiresOnRangeEntry(t *testing.T) {
	gs := newTestState(t)
	guard := addUnit(t, gs, geom.Vector2{X: 5, Y: 5}, unit.TeamEnemy)
	guard.SetInterrupt(unit.Interrupt{Prepared: &unit.PreparedAction{
		TriggerKey:    "enemy_enters_range",
		InterruptName: "QuickStrike",
		Priority:      1,
		UsesLeft:      1,
	}})
	mover := addUnit(t, gs, geom.Vector2{X: 0, Y: 0}, unit.TeamPlayer)

	manager.NewInterruptWatcher(gs)

	var triggered bool
	events.InterruptTriggeredTopic.On(gs.Bus).Subscribe(0, func(_ context.Context, evt events.InterruptTriggeredEvent) error {
		if evt.UnitID == string(guard.ID()) {
			triggered = true
		}
		return nil
	})

	require.NoError(t, gs.Roster.Move(mover.ID(), geom.Vector2{X: 5, Y: 4}))
	mv := mover.Movement()
	mv.Position = geom.Vector2{X: 5, Y: 4}
	mover.SetMovement(mv)

	require.NoError(t, events.UnitMovedTopic.On(gs.Bus).Publish(context.Background(), events.UnitMovedEvent{
		UnitID: string(mover.ID()),
		To:     geom.Vector2{X: 5, Y: 4},
	}))

	assert.True(t, triggered)
	ic, _ := guard.Interrupt()
	assert.Nil(t, ic.Prepared)
}
