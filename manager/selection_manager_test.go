package manager_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfassina/grimdark/action"
	"github.com/pfassina/grimdark/events"
	"github.com/pfassina/grimdark/geom"
	"github.com/pfassina/grimdark/manager"
	"github.com/pfassina/grimdark/phase"
	"github.com/pfassina/grimdark/unit"
)

func TestSelectionManagerBeginActivationSnapshotsPreMoveState(t *testing.T) {
	gs := newTestState(t)
	u := addUnit(t, gs, geom.Vector2{X: 0, Y: 0}, unit.TeamPlayer)

	sm := manager.NewSelectionManager(gs)
	sm.BeginActivation(u.ID())

	pos, points := sm.PreMoveSnapshot()
	assert.Equal(t, geom.Vector2{X: 0, Y: 0}, pos)
	assert.Equal(t, 4, points)
	assert.False(t, sm.Committed())
	assert.Equal(t, geom.Vector2{X: 0, Y: 0}, sm.Cursor())
}

func TestSelectionManagerConfirmMoveCommitsAndMoves(t *testing.T) {
	gs := newTestState(t)
	u := addUnit(t, gs, geom.Vector2{X: 0, Y: 0}, unit.TeamPlayer)

	sm := manager.NewSelectionManager(gs)
	sm.BeginActivation(u.ID())
	sm.MoveCursor(1, 0)

	env := action.Env{Map: gs.Map, Roster: gs.Roster, Bus: gs.Bus}
	_, err := sm.ConfirmMove(context.Background(), env)
	require.NoError(t, err)

	assert.True(t, sm.Committed())
	assert.Equal(t, geom.Vector2{X: 1, Y: 0}, u.Movement().Position)
	assert.Equal(t, 3, u.Movement().MovementPoints)
}

func TestSelectionManagerCancelRestoresSnapshotAndEmitsReversingMove(t *testing.T) {
	gs := newTestState(t)
	u := addUnit(t, gs, geom.Vector2{X: 0, Y: 0}, unit.TeamPlayer)

	sm := manager.NewSelectionManager(gs)
	sm.BeginActivation(u.ID())
	sm.MoveCursor(1, 0)

	env := action.Env{Map: gs.Map, Roster: gs.Roster, Bus: gs.Bus}
	_, err := sm.ConfirmMove(context.Background(), env)
	require.NoError(t, err)

	var moved []events.UnitMovedEvent
	events.UnitMovedTopic.On(gs.Bus).Subscribe(0, func(_ context.Context, evt events.UnitMovedEvent) error {
		moved = append(moved, evt)
		return nil
	})

	require.NoError(t, sm.Cancel(context.Background()))

	assert.Equal(t, geom.Vector2{X: 0, Y: 0}, u.Movement().Position)
	assert.Equal(t, 4, u.Movement().MovementPoints)
	assert.False(t, sm.Committed())
	require.Len(t, moved, 1)
	assert.Equal(t, geom.Vector2{X: 1, Y: 0}, moved[0].From)
	assert.Equal(t, geom.Vector2{X: 0, Y: 0}, moved[0].To)
}

func TestSelectionManagerCancelIsNoOpWhenNothingCommitted(t *testing.T) {
	gs := newTestState(t)
	u := addUnit(t, gs, geom.Vector2{X: 0, Y: 0}, unit.TeamPlayer)

	sm := manager.NewSelectionManager(gs)
	sm.BeginActivation(u.ID())

	var moved bool
	events.UnitMovedTopic.On(gs.Bus).Subscribe(0, func(_ context.Context, _ events.UnitMovedEvent) error {
		moved = true
		return nil
	})

	require.NoError(t, sm.Cancel(context.Background()))
	assert.False(t, moved)
	assert.Equal(t, geom.Vector2{X: 0, Y: 0}, u.Movement().Position)
}

func TestSelectionManagerCancelsOnPhaseTransitionOutOfActionSelection(t *testing.T) {
	gs := newTestState(t)
	u := addUnit(t, gs, geom.Vector2{X: 0, Y: 0}, unit.TeamPlayer)

	sm := manager.NewSelectionManager(gs)
	sm.BeginActivation(u.ID())
	sm.MoveCursor(1, 0)

	env := action.Env{Map: gs.Map, Roster: gs.Roster, Bus: gs.Bus}
	_, err := sm.ConfirmMove(context.Background(), env)
	require.NoError(t, err)

	require.NoError(t, events.BattlePhaseChangedTopic.On(gs.Bus).Publish(context.Background(), events.BattlePhaseChangedEvent{
		From: string(phase.ActionSelection),
		To:   string(phase.UnitMoving),
	}))

	assert.Equal(t, geom.Vector2{X: 0, Y: 0}, u.Movement().Position)
	assert.False(t, sm.Committed())
}
