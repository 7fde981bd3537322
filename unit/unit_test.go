package unit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfassina/grimdark/geom"
	"github.com/pfassina/grimdark/unit"
)

func newTestUnit(pos geom.Vector2) *unit.Unit {
	return unit.New(
		unit.Actor{Name: "Grim", Team: unit.TeamPlayer},
		unit.Health{HPMax: 20, HPCurrent: 20},
		unit.Movement{Position: pos, MaxMovement: 4, MovementPoints: 4},
		unit.Combat{Strength: 5, Defense: 2, RangeMin: 1, RangeMax: 1},
	)
}

func TestNewUnitHasRequiredComponents(t *testing.T) {
	u := newTestUnit(geom.Vector2{X: 1, Y: 1})
	assert.True(t, u.Has(unit.KindActor))
	assert.True(t, u.Has(unit.KindHealth))
	assert.True(t, u.Has(unit.KindMovement))
	assert.True(t, u.Has(unit.KindCombat))
	assert.True(t, u.Has(unit.KindStatus))
	assert.False(t, u.Has(unit.KindMorale))
	assert.True(t, u.IsAlive())
}

func TestEffectiveWeightClampsToBounds(t *testing.T) {
	u := newTestUnit(geom.Vector2{})
	u.SetStatus(unit.Status{WeightModifier: -10000})
	assert.Equal(t, geom.MinWeight, u.EffectiveWeight(10))

	u.SetStatus(unit.Status{WeightModifier: 10000})
	assert.Equal(t, geom.MaxWeight, u.EffectiveWeight(10))
}

func TestAddWoundCreatesComponentLazily(t *testing.T) {
	u := newTestUnit(geom.Vector2{})
	_, ok := u.Wounds()
	assert.False(t, ok)

	u.AddWound(unit.Wound{Severity: unit.SeverityMinor, BodyPart: "arm"})
	list, ok := u.Wounds()
	require.True(t, ok)
	assert.Len(t, list.Wounds, 1)
}

func TestRosterAddRejectsDuplicateTile(t *testing.T) {
	r := unit.NewRoster()
	a := newTestUnit(geom.Vector2{X: 2, Y: 2})
	b := newTestUnit(geom.Vector2{X: 2, Y: 2})

	require.NoError(t, r.Add(a))
	err := r.Add(b)
	assert.Error(t, err)
}

func TestRosterMoveUpdatesIndex(t *testing.T) {
	r := unit.NewRoster()
	a := newTestUnit(geom.Vector2{X: 0, Y: 0})
	require.NoError(t, r.Add(a))

	require.NoError(t, r.Move(a.ID(), geom.Vector2{X: 1, Y: 0}))
	_, atOld := r.At(geom.Vector2{X: 0, Y: 0})
	assert.False(t, atOld)

	occupant, atNew := r.At(geom.Vector2{X: 1, Y: 0})
	require.True(t, atNew)
	assert.Equal(t, a.ID(), occupant.ID())
}

func TestRosterTeamFiltersDeadAndOtherTeam(t *testing.T) {
	r := unit.NewRoster()
	ally := newTestUnit(geom.Vector2{X: 0, Y: 0})

	enemy := unit.New(
		unit.Actor{Name: "Foe", Team: unit.TeamEnemy},
		unit.Health{HPMax: 10, HPCurrent: 0},
		unit.Movement{Position: geom.Vector2{X: 1, Y: 1}},
		unit.Combat{},
	)

	require.NoError(t, r.Add(ally))
	require.NoError(t, r.Add(enemy))

	assert.Len(t, r.Team(unit.TeamPlayer), 1)
	assert.Len(t, r.Team(unit.TeamEnemy), 0)
	assert.Len(t, r.Living(), 1)
}
