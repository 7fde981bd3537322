package action

import (
	"context"

	"github.com/pfassina/grimdark/combat"
	"github.com/pfassina/grimdark/events"
	"github.com/pfassina/grimdark/geom"
	"github.com/pfassina/grimdark/unit"
)

// attackSpec is shared by StandardAttack, QuickStrike, and PowerAttack —
// they differ only in category, weight, damage multiplier, and whether
// they offer the defender a counter (spec.md §4.2).
type attackSpec struct {
	name         string
	category     Category
	baseWeight   geom.Weight
	multiplier   combat.DamageMultiplier
	allowCounter bool
}

func (a attackSpec) Name() string          { return a.name }
func (a attackSpec) Category() Category    { return a.category }
func (a attackSpec) BaseWeight() geom.Weight { return a.baseWeight }

func (a attackSpec) Validate(actor *unit.Unit, target Target, env Env) Validation {
	if !target.HasUnit {
		return reject("attack target must be a unit")
	}
	defender, ok := env.Roster.Get(target.UnitID)
	if !ok || !defender.IsAlive() {
		return reject("target is not a living unit")
	}
	ac := actor.Combat()
	dist := actor.Position().ManhattanDistance(defender.Position())
	if dist < ac.RangeMin || dist > ac.RangeMax {
		return reject("target out of range")
	}
	return accept()
}

func (a attackSpec) Execute(ctx context.Context, actor *unit.Unit, target Target, env Env, v Validation) (Result, error) {
	if err := requireToken(&v); err != nil {
		return Result{}, err
	}
	defender, _ := env.Roster.Get(target.UnitID)

	outcome, err := env.Resolver.Resolve(ctx, actor, defender, a.multiplier, 0, env.Now, 0, a.allowCounter)
	if err != nil {
		return Result{}, err
	}

	status := actor.Status()
	status.HasActed = true
	actor.SetStatus(status)

	wounds := 0
	if _, ok := defender.Wounds(); ok {
		wounds = len(mustWounds(defender))
	}

	return Result{
		WeightSpent:     a.baseWeight,
		DamageDone:      outcome.Damage,
		WoundsInflicted: wounds,
	}, nil
}

func mustWounds(u *unit.Unit) []unit.Wound {
	list, _ := u.Wounds()
	return list.Wounds
}

// StandardAttack is the baseline attack: full damage, range-gated, and
// offers the defender a counter if they remain alive in range
// (spec.md §4.2).
func StandardAttack() Spec {
	return attackSpec{
		name:         "StandardAttack",
		category:     CategoryNormal,
		baseWeight:   100,
		multiplier:   combat.MultiplierStandard,
		allowCounter: true,
	}
}

// QuickStrike trades damage for tempo: ~75% base damage, no counter
// opportunity for the defender.
func QuickStrike() Spec {
	return attackSpec{
		name:         "QuickStrike",
		category:     CategoryQuick,
		baseWeight:   60,
		multiplier:   combat.MultiplierQuick,
		allowCounter: false,
	}
}

// PowerAttack trades tempo for damage: ~140% base damage, no counter
// opportunity against this attacker until it next acts.
func PowerAttack() Spec {
	return attackSpec{
		name:         "PowerAttack",
		category:     CategoryHeavy,
		baseWeight:   180,
		multiplier:   combat.MultiplierPower,
		allowCounter: false,
	}
}

var (
	_ Spec = attackSpec{}
)

// PublishSelection is a small shared helper managers call before
// executing an action, so ActionSelected always precedes ActionExecuted
// in the event log (spec.md §3 control-flow note).
func PublishSelection(ctx context.Context, bus *events.Bus, actorID unit.ID, name string) error {
	return events.ActionSelectedTopic.On(bus).Publish(ctx, events.ActionSelectedEvent{
		UnitID:     string(actorID),
		ActionName: name,
	})
}
