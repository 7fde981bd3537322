package objective_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfassina/grimdark/events"
	"github.com/pfassina/grimdark/geom"
	"github.com/pfassina/grimdark/grid"
	"github.com/pfassina/grimdark/objective"
	"github.com/pfassina/grimdark/state"
	"github.com/pfassina/grimdark/unit"
)

func TestReachPositionCompletesOnUnitMoved(t *testing.T) {
	m := grid.NewMap(16, 4, grid.Tile{MovementCost: 1})
	bus := events.NewBus()
	gs := state.New(m, bus)

	runner := unit.New(
		unit.Actor{Name: "Runner", Team: unit.TeamPlayer},
		unit.Health{HPMax: 10, HPCurrent: 10},
		unit.Movement{Position: geom.Vector2{X: 0, Y: 0}, MaxMovement: 20, MovementPoints: 20},
		unit.Combat{},
	)
	require.NoError(t, gs.Roster.Add(runner))

	resolved := false
	obj := &objective.Objective{
		Name:   "reach_position",
		Kind:   objective.KindReachPosition,
		Bucket: objective.BucketVictory,
		UnitID: runner.ID(),
		Tile:   geom.Vector2{X: 14, Y: 0},
	}
	objective.NewEvaluator(gs, []*objective.Objective{obj}, func(ctx context.Context) error {
		resolved = true
		return nil
	})

	completed := false
	events.ObjectiveCompletedTopic.On(bus).Subscribe(0, func(_ context.Context, evt events.ObjectiveCompletedEvent) error {
		completed = true
		assert.Equal(t, "reach_position", evt.Name)
		return nil
	})

	require.NoError(t, gs.Roster.Move(runner.ID(), geom.Vector2{X: 14, Y: 0}))
	mv := runner.Movement()
	mv.Position = geom.Vector2{X: 14, Y: 0}
	runner.SetMovement(mv)

	require.NoError(t, events.UnitMovedTopic.On(bus).Publish(context.Background(), events.UnitMovedEvent{
		UnitID: string(runner.ID()),
		To:     geom.Vector2{X: 14, Y: 0},
	}))

	assert.True(t, completed)
	assert.True(t, resolved)
	assert.Equal(t, "completed", gs.ObjectiveStatus("reach_position"))
}

func TestDefeatAllEnemiesPassesWhenEnemyTeamEmpty(t *testing.T) {
	m := grid.NewMap(4, 4, grid.Tile{MovementCost: 1})
	bus := events.NewBus()
	gs := state.New(m, bus)

	enemy := unit.New(
		unit.Actor{Name: "Foe", Team: unit.TeamEnemy},
		unit.Health{HPMax: 5, HPCurrent: 0},
		unit.Movement{Position: geom.Vector2{X: 1, Y: 1}},
		unit.Combat{},
	)
	require.NoError(t, gs.Roster.Add(enemy))

	obj := &objective.Objective{Name: "defeat_all_enemies", Kind: objective.KindDefeatAllEnemies, Bucket: objective.BucketVictory}
	objective.NewEvaluator(gs, []*objective.Objective{obj}, nil)

	completed := false
	events.ObjectiveCompletedTopic.On(bus).Subscribe(0, func(_ context.Context, _ events.ObjectiveCompletedEvent) error {
		completed = true
		return nil
	})

	require.NoError(t, events.UnitDefeatedTopic.On(bus).Publish(context.Background(), events.UnitDefeatedEvent{UnitID: string(enemy.ID())}))
	assert.True(t, completed)
}
