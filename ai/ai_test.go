package ai_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfassina/grimdark/action"
	"github.com/pfassina/grimdark/ai"
	"github.com/pfassina/grimdark/combat"
	"github.com/pfassina/grimdark/dice"
	"github.com/pfassina/grimdark/events"
	"github.com/pfassina/grimdark/geom"
	"github.com/pfassina/grimdark/grid"
	"github.com/pfassina/grimdark/unit"
)

func testEnv(t *testing.T) action.Env {
	t.Helper()
	m := grid.NewMap(6, 6, grid.Tile{MovementCost: 1})
	roster := unit.NewRoster()
	bus := events.NewBus()
	resolver := combat.NewResolver(bus, dice.NewDeterministicRoller(4))
	return action.Env{Map: m, Roster: roster, Bus: bus, Resolver: resolver}
}

func TestDecideAttacksWhenTargetInRange(t *testing.T) {
	env := testEnv(t)
	attacker := unit.New(
		unit.Actor{Team: unit.TeamEnemy},
		unit.Health{HPMax: 10, HPCurrent: 10},
		unit.Movement{Position: geom.Vector2{X: 0, Y: 0}, MovementPoints: 3},
		unit.Combat{Strength: 5, RangeMin: 1, RangeMax: 1},
	)
	target := unit.New(
		unit.Actor{Team: unit.TeamPlayer},
		unit.Health{HPMax: 10, HPCurrent: 10},
		unit.Movement{Position: geom.Vector2{X: 1, Y: 0}},
		unit.Combat{Strength: 2, Defense: 0},
	)
	require.NoError(t, env.Roster.Add(attacker))
	require.NoError(t, env.Roster.Add(target))

	ctrl := ai.NewPersonalityController(unit.PersonalityAggressive)
	decision := ctrl.Decide(attacker, env)

	assert.Equal(t, "StandardAttack", decision.Spec.Name())
	assert.Equal(t, target.ID(), decision.Target.UnitID)

	v := decision.Spec.Validate(attacker, decision.Target, env)
	assert.True(t, v.OK())
}

func TestDecideMovesTowardNearestEnemyWhenOutOfRange(t *testing.T) {
	env := testEnv(t)
	attacker := unit.New(
		unit.Actor{Team: unit.TeamEnemy},
		unit.Health{HPMax: 10, HPCurrent: 10},
		unit.Movement{Position: geom.Vector2{X: 0, Y: 0}, MovementPoints: 2},
		unit.Combat{Strength: 5, RangeMin: 1, RangeMax: 1},
	)
	target := unit.New(
		unit.Actor{Team: unit.TeamPlayer},
		unit.Health{HPMax: 10, HPCurrent: 10},
		unit.Movement{Position: geom.Vector2{X: 5, Y: 0}},
		unit.Combat{},
	)
	require.NoError(t, env.Roster.Add(attacker))
	require.NoError(t, env.Roster.Add(target))

	ctrl := ai.NewPersonalityController(unit.PersonalityBalanced)
	decision := ctrl.Decide(attacker, env)

	assert.Equal(t, "Move", decision.Spec.Name())
	v := decision.Spec.Validate(attacker, decision.Target, env)
	assert.True(t, v.OK())
}

func TestDecideWaitsWhenNoEnemiesExist(t *testing.T) {
	env := testEnv(t)
	attacker := unit.New(
		unit.Actor{Team: unit.TeamEnemy},
		unit.Health{HPMax: 10, HPCurrent: 10},
		unit.Movement{Position: geom.Vector2{X: 0, Y: 0}},
		unit.Combat{RangeMin: 1, RangeMax: 1},
	)
	require.NoError(t, env.Roster.Add(attacker))

	ctrl := ai.NewPersonalityController(unit.PersonalityDefensive)
	decision := ctrl.Decide(attacker, env)
	assert.Equal(t, "Wait", decision.Spec.Name())
}
