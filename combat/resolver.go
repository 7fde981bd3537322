package combat

import (
	"context"

	"github.com/pfassina/grimdark/dice"
	"github.com/pfassina/grimdark/events"
	"github.com/pfassina/grimdark/geom"
	"github.com/pfassina/grimdark/unit"
)

// Outcome is the result of resolving one attack (and, if triggered, its
// counter), returned to the action that invoked the resolver.
type Outcome struct {
	Damage       int
	WasCritical  bool
	DefeatedID   unit.ID
	Defeated     bool
	CounterDealt bool
	CounterDamage int
}

// Resolver is the mutating CombatResolver: it applies damage, invokes the
// wound factory, and publishes events. Unlike Calculator, every call has
// side effects.
type Resolver struct {
	Roller   dice.Roller
	Wounds   *unit.WoundFactory
	Bus      *events.Bus
	Calc     *Calculator
}

// NewResolver builds a Resolver backed by roller for damage/crit rolls
// and a WoundFactory sharing the same roller, so a single seed drives the
// entire resolution deterministically.
func NewResolver(bus *events.Bus, roller dice.Roller) *Resolver {
	return &Resolver{
		Roller: roller,
		Wounds: unit.NewWoundFactory(roller),
		Bus:    bus,
		Calc:   NewCalculator(),
	}
}

// Resolve applies one attack from attacker to defender using the given
// multiplier, drawing its rolls from r.Roller's current stream without
// reseeding it. now stamps any UnitDefeated event; seq is accepted but
// not used.
// allowCounter gates whether a successful hit on a living defender within
// counter range triggers a single retaliation pass.
func (r *Resolver) Resolve(ctx context.Context, attacker, defender *unit.Unit, mult DamageMultiplier, terrainDefensePenalty int, now geom.Tick, seq uint64, allowCounter bool) (Outcome, error) {
	var out Outcome

	dealt, crit, bandMin, bandMax, err := r.strike(ctx, attacker, defender, mult, terrainDefensePenalty)
	if err != nil {
		return out, err
	}
	out.Damage = dealt
	out.WasCritical = crit

	if err := r.publishAttacked(ctx, attacker.ID(), defender.ID(), false); err != nil {
		return out, err
	}

	defeated, err := r.applyDamage(ctx, attacker, defender, dealt, bandMin, bandMax, crit, now)
	if err != nil {
		return out, err
	}
	if defeated {
		out.Defeated = true
		out.DefeatedID = defender.ID()
	}

	if allowCounter && !defeated && defender.IsAlive() {
		dc := defender.Combat()
		dist := attacker.Position().ManhattanDistance(defender.Position())
		if dist >= dc.RangeMin && dist <= dc.RangeMax {
			counterDealt, counterCrit, counterMin, counterMax, err := r.strike(ctx, defender, attacker, MultiplierStandard, 0)
			if err != nil {
				return out, err
			}
			if err := r.publishAttacked(ctx, defender.ID(), attacker.ID(), true); err != nil {
				return out, err
			}
			attackerDefeated, err := r.applyDamage(ctx, defender, attacker, counterDealt, counterMin, counterMax, counterCrit, now)
			if err != nil {
				return out, err
			}
			out.CounterDealt = true
			out.CounterDamage = counterDealt
			if attackerDefeated {
				out.Defeated = true
				out.DefeatedID = attacker.ID()
			}
		}
	}

	return out, nil
}

// strike computes and rolls one hit's damage (no side effects on units),
// returning the dealt amount, whether it crit, and the [min,max] band it
// was drawn from (for variance-bucket classification).
func (r *Resolver) strike(_ context.Context, attacker, defender *unit.Unit, mult DamageMultiplier, terrainDefensePenalty int) (int, bool, int, int, error) {
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

	dealt, err := rollDamage(r.Roller, min, max)
	if err != nil {
		return 0, false, min, max, err
	}

	crit, err := rollCrit(r.Roller, ac.CritChance)
	if err != nil {
		return 0, false, min, max, err
	}
	if crit {
		dealt *= 2
	}
	return dealt, crit, min, max, nil
}

// applyDamage reduces defender's hp_current, invokes the wound factory
// when the threshold is met, emits UnitTookDamage and, if lethal,
// UnitDefeated. It returns whether the defender was defeated.
func (r *Resolver) applyDamage(ctx context.Context, attacker, defender *unit.Unit, amount, bandMin, bandMax int, crit bool, now geom.Tick) (bool, error) {
	hp := defender.Health()
	resulting := hp.HPCurrent - amount
	if resulting < 0 {
		resulting = 0
	}
	hp.HPCurrent = resulting
	defender.SetHealth(hp)

	if float64(amount) >= WoundThreshold*float64(hp.HPMax) {
		w, err := r.Wounds.Create(amount, hp.HPMax)
		if err != nil {
			return false, err
		}
		defender.AddWound(w)
	}

	bucket := varianceBucket(amount, bandMin, bandMax)
	if err := events.UnitTookDamageTopic.On(r.Bus).Publish(ctx, events.UnitTookDamageEvent{
		UnitID:      string(defender.ID()),
		SourceID:    string(attacker.ID()),
		Amount:      amount,
		Variance:    bucket,
		ResultingHP: resulting,
		WasCritical: crit,
	}); err != nil {
		return false, err
	}

	if resulting <= 0 {
		if err := events.UnitDefeatedTopic.On(r.Bus).Publish(ctx, events.UnitDefeatedEvent{
			UnitID:   string(defender.ID()),
			KillerID: string(attacker.ID()),
			AtTick:   now,
		}); err != nil {
			return true, err
		}
		return true, nil
	}
	return false, nil
}

func (r *Resolver) publishAttacked(ctx context.Context, attackerID, defenderID unit.ID, isCounter bool) error {
	return events.UnitAttackedTopic.On(r.Bus).Publish(ctx, events.UnitAttackedEvent{
		AttackerID: string(attackerID),
		DefenderID: string(defenderID),
		IsCounter:  isCounter,
	})
}
