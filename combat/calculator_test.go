package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pfassina/grimdark/combat"
	"github.com/pfassina/grimdark/geom"
	"github.com/pfassina/grimdark/unit"
)

func knight() *unit.Unit {
	return unit.New(
		unit.Actor{Name: "Knight", Team: unit.TeamPlayer},
		unit.Health{HPMax: 20, HPCurrent: 20},
		unit.Movement{Position: geom.Vector2{X: 1, Y: 1}},
		unit.Combat{Strength: 8, Defense: 0, RangeMin: 1, RangeMax: 1},
	)
}

func warrior() *unit.Unit {
	return unit.New(
		unit.Actor{Name: "Warrior", Team: unit.TeamEnemy},
		unit.Health{HPMax: 10, HPCurrent: 10},
		unit.Movement{Position: geom.Vector2{X: 2, Y: 1}},
		unit.Combat{Strength: 4, Defense: 0, RangeMin: 1, RangeMax: 1},
	)
}

func TestForecastSoloStrikeBand(t *testing.T) {
	calc := combat.NewCalculator()
	f := calc.Forecast(knight(), warrior(), combat.MultiplierStandard, 0, false)

	assert.Equal(t, 6, f.DamageMin)
	assert.Equal(t, 10, f.DamageMax)
	assert.False(t, f.CounterPossible)
}

func TestForecastCounterPossible(t *testing.T) {
	calc := combat.NewCalculator()
	f := calc.Forecast(knight(), warrior(), combat.MultiplierStandard, 0, true)

	assert.True(t, f.CounterPossible)
	assert.NotNil(t, f.CounterForecast)
}

func TestForecastWillKillWhenMinExceedsHP(t *testing.T) {
	calc := combat.NewCalculator()
	weak := warrior()
	hp := weak.Health()
	hp.HPCurrent = 2
	weak.SetHealth(hp)

	f := calc.Forecast(knight(), weak, combat.MultiplierStandard, 0, false)
	assert.True(t, f.WillKill)
}
