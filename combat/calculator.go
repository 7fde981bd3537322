// Package combat implements the damage formula, the pure forecast
// calculator, and the mutating resolver (spec.md §4.3).
package combat

import (
	"github.com/pfassina/grimdark/dice"
	"github.com/pfassina/grimdark/events"
	"github.com/pfassina/grimdark/unit"
)

// DamageMultiplier scales an attack's base damage; StandardAttack uses
// 1.0, QuickStrike ~0.75, PowerAttack ~1.4 (spec.md §4.2).
type DamageMultiplier float64

const (
	// MultiplierStandard is StandardAttack's damage scaling.
	MultiplierStandard DamageMultiplier = 1.0
	// MultiplierQuick is QuickStrike's damage scaling.
	MultiplierQuick DamageMultiplier = 0.75
	// MultiplierPower is PowerAttack's damage scaling.
	MultiplierPower DamageMultiplier = 1.4
)

// WoundThreshold is the fraction of hp_max that damage must meet or
// exceed to trigger a wound (spec.md §4.3 default).
const WoundThreshold = 0.3

// Forecast is the pure preview of a prospective attack, safe to compute
// repeatedly for UI and AI scoring without mutating anything.
type Forecast struct {
	DamageMin       int
	DamageMax       int
	WillKill        bool
	CounterPossible bool
	CounterForecast *Forecast
}

// baseDamage computes the guaranteed-hit base per spec.md §4.3 step 1:
// max(1, strength - defense/2 + terrainDefensePenalty).
func baseDamage(strength, defense, terrainDefensePenalty int) int {
	base := strength - defense/2 + terrainDefensePenalty
	if base < 1 {
		base = 1
	}
	return base
}

// variance computes ±25% of base, rounded (spec.md §4.3 step 2).
func variance(base int) int {
	v := (base + 2) / 4 // round(base/4)
	return v
}

// Calculator is the pure BattleCalculator: Forecast never mutates
// attacker, defender, or any shared state.
type Calculator struct{}

// NewCalculator builds a Calculator. It carries no state; the zero value
// is usable directly, but New mirrors the rest of this module's
// constructor convention.
func NewCalculator() *Calculator { return &Calculator{} }

// Forecast computes the damage band and kill/counter possibility for an
// attacker hitting defender with the given multiplier. Terrain enters
// only through terrainDefensePenalty, which callers compute from the
// map; Forecast does not read the map itself.
func (c *Calculator) Forecast(attacker, defender *unit.Unit, mult DamageMultiplier, terrainDefensePenalty int, counterEligible bool) Forecast {
	ac := attacker.Combat()
	dc := defender.Combat()

	base := baseDamage(ac.Strength, dc.Defense, terrainDefensePenalty)
	scaled := int(float64(base) * float64(mult))
	if scaled < 1 {
		scaled = 1
	}
	v := variance(scaled)

	min := scaled - v
	if min < 1 {
		min = 1
	}
	max := scaled + v

	hp := defender.Health()
	f := Forecast{
		DamageMin: min,
		DamageMax: max,
		WillKill:  min >= hp.HPCurrent,
	}

	if counterEligible && defender.IsAlive() {
		counterBase := baseDamage(dc.Strength, ac.Defense, 0)
		cv := variance(counterBase)
		cmin := counterBase - cv
		if cmin < 1 {
			cmin = 1
		}
		cmax := counterBase + cv
		f.CounterPossible = true
		f.CounterForecast = &Forecast{
			DamageMin: cmin,
			DamageMax: cmax,
			WillKill:  cmin >= attacker.Health().HPCurrent,
		}
	}

	return f
}

// rollDamage draws one damage value in [min, max] from roller, used by
// Resolver for the actual, seeded, reproducible roll (spec.md §4.3 step
// 3 — "a single deterministic RNG stream").
func rollDamage(roller dice.Roller, min, max int) (int, error) {
	if max <= min {
		return min, nil
	}
	span := max - min + 1
	roll, err := roller.Roll(span)
	if err != nil {
		return 0, err
	}
	return min + (roll - 1), nil
}

// rollCrit reports whether a critical hit occurs, using the same seeded
// stream (spec.md §4.3 step 4).
func rollCrit(roller dice.Roller, critChance int) (bool, error) {
	if critChance <= 0 {
		return false, nil
	}
	roll, err := roller.Roll(100)
	if err != nil {
		return false, err
	}
	return roll <= critChance, nil
}

// varianceBucket classifies a resolved roll relative to its [min,max]
// band into thirds, for UI flavor text on UnitTookDamage.
func varianceBucket(amount, min, max int) events.VarianceBucket {
	if max <= min {
		return events.VarianceMid
	}
	span := max - min
	pos := amount - min
	switch {
	case pos*3 <= span:
		return events.VarianceLow
	case pos*3 >= span*2:
		return events.VarianceHigh
	default:
		return events.VarianceMid
	}
}
