package manager_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfassina/grimdark/events"
	"github.com/pfassina/grimdark/geom"
	"github.com/pfassina/grimdark/manager"
	"github.com/pfassina/grimdark/objective"
	"github.com/pfassina/grimdark/phase"
	"github.com/pfassina/grimdark/unit"
)

func TestObjectiveManagerDrivesPhaseToGameOver(t *testing.T) {
	gs := newTestState(t)
	runner := addUnit(t, gs, geom.Vector2{X: 0, Y: 0}, unit.TeamPlayer)
	mach := phase.New(gs)
	require.NoError(t, mach.Transition(context.Background(), phase.TriggerTurnStartedPlayer))

	obj := &objective.Objective{
		Name:   "reach_position",
		Kind:   objective.KindReachPosition,
		Bucket: objective.BucketVictory,
		UnitID: runner.ID(),
		Tile:   geom.Vector2{X: 3, Y: 0},
	}
	manager.NewObjectiveManager(gs, mach, []*objective.Objective{obj})

	require.NoError(t, gs.Roster.Move(runner.ID(), geom.Vector2{X: 3, Y: 0}))
	mv := runner.Movement()
	mv.Position = geom.Vector2{X: 3, Y: 0}
	runner.SetMovement(mv)

	require.NoError(t, events.UnitMovedTopic.On(gs.Bus).Publish(context.Background(), events.UnitMovedEvent{
		UnitID: string(runner.ID()),
		To:     geom.Vector2{X: 3, Y: 0},
	}))

	assert.Equal(t, phase.GameOver, mach.Current())
}
