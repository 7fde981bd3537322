package pathing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfassina/grimdark/geom"
	"github.com/pfassina/grimdark/grid"
	"github.com/pfassina/grimdark/pathing"
	"github.com/pfassina/grimdark/unit"
)

func TestReachableRespectsBudget(t *testing.T) {
	m := grid.NewMap(5, 5, grid.Tile{MovementCost: 1})
	roster := unit.NewRoster()

	costs := pathing.Reachable(m, roster, geom.Vector2{X: 2, Y: 2}, 2, "")
	assert.Equal(t, 0, costs[geom.Vector2{X: 2, Y: 2}])
	assert.Equal(t, 2, costs[geom.Vector2{X: 2, Y: 0}])
	_, farOutOfBudget := costs[geom.Vector2{X: 4, Y: 4}]
	assert.False(t, farOutOfBudget)
}

func TestReachableTreatsImpassableTileAsBlocked(t *testing.T) {
	m := grid.NewMap(3, 3, grid.Tile{MovementCost: 1})
	require.NoError(t, m.SetTile(geom.Vector2{X: 1, Y: 0}, grid.Tile{BlocksMovement: true}))

	roster := unit.NewRoster()
	costs := pathing.Reachable(m, roster, geom.Vector2{X: 0, Y: 0}, 5, "")
	_, blocked := costs[geom.Vector2{X: 1, Y: 0}]
	assert.False(t, blocked)
}

func TestReachableSkipsOccupiedTilesExceptMover(t *testing.T) {
	m := grid.NewMap(3, 1, grid.Tile{MovementCost: 1})
	roster := unit.NewRoster()
	blocker := unit.New(
		unit.Actor{Team: unit.TeamEnemy},
		unit.Health{HPMax: 10, HPCurrent: 10},
		unit.Movement{Position: geom.Vector2{X: 1, Y: 0}},
		unit.Combat{},
	)
	require.NoError(t, roster.Add(blocker))

	costs := pathing.Reachable(m, roster, geom.Vector2{X: 0, Y: 0}, 5, "mover")
	_, reachedPastBlocker := costs[geom.Vector2{X: 2, Y: 0}]
	assert.False(t, reachedPastBlocker)
}

func TestInRangeManhattan(t *testing.T) {
	origin := geom.Vector2{X: 0, Y: 0}
	assert.True(t, pathing.InRange(origin, geom.Vector2{X: 1, Y: 0}, 1, 1))
	assert.False(t, pathing.InRange(origin, geom.Vector2{X: 2, Y: 0}, 1, 1))
	assert.True(t, pathing.InRange(origin, geom.Vector2{X: 1, Y: 1}, 1, 3))
}

func TestTargetsInRangeSortedByDistanceThenPosition(t *testing.T) {
	origin := geom.Vector2{X: 0, Y: 0}
	far := unit.New(unit.Actor{Team: unit.TeamEnemy}, unit.Health{HPMax: 1, HPCurrent: 1}, unit.Movement{Position: geom.Vector2{X: 2, Y: 0}}, unit.Combat{})
	near := unit.New(unit.Actor{Team: unit.TeamEnemy}, unit.Health{HPMax: 1, HPCurrent: 1}, unit.Movement{Position: geom.Vector2{X: 1, Y: 0}}, unit.Combat{})
	dead := unit.New(unit.Actor{Team: unit.TeamEnemy}, unit.Health{HPMax: 1, HPCurrent: 0}, unit.Movement{Position: geom.Vector2{X: 1, Y: 1}}, unit.Combat{})

	result := pathing.TargetsInRange(origin, []*unit.Unit{far, near, dead}, 0, 5)
	require.Len(t, result, 2)
	assert.Equal(t, near.ID(), result[0].ID())
	assert.Equal(t, far.ID(), result[1].ID())
}
