package manager

import (
	"context"

	"github.com/pfassina/grimdark/action"
	"github.com/pfassina/grimdark/combat"
	"github.com/pfassina/grimdark/events"
	"github.com/pfassina/grimdark/state"
	"github.com/pfassina/grimdark/unit"
)

// CombatManager holds targeting state for the unit currently in
// ActionTargeting, and is the single place Action.Execute is invoked
// from once a target is confirmed (spec.md §4.7).
type CombatManager struct {
	gs   *state.GameState
	calc *combat.Calculator

	actor      *unit.Unit
	candidates []*unit.Unit
	index      int

	friendlyFire          bool
	friendlyFireConfirmed bool
}

// NewCombatManager builds a CombatManager bound to gs.
func NewCombatManager(gs *state.GameState) *CombatManager {
	return &CombatManager{gs: gs, calc: combat.NewCalculator()}
}

// BeginTargeting sets the candidate list for the actor as given; it does
// not filter or sort it. Callers that want nearest-first order with a
// deterministic tie-break build the list with pathing.TargetsInRange.
func (cm *CombatManager) BeginTargeting(actor *unit.Unit, candidates []*unit.Unit) {
	cm.actor = actor
	cm.candidates = candidates
	cm.index = 0
	cm.friendlyFireConfirmed = false
	cm.refreshFriendlyFire()
}

// Current returns the currently-targeted unit, or nil if there are no
// candidates.
func (cm *CombatManager) Current() *unit.Unit {
	if len(cm.candidates) == 0 {
		return nil
	}
	return cm.candidates[cm.index]
}

// Cycle advances the target index by delta, wrapping within the
// candidate list.
func (cm *CombatManager) Cycle(delta int) *unit.Unit {
	if len(cm.candidates) == 0 {
		return nil
	}
	cm.index = ((cm.index+delta)%len(cm.candidates) + len(cm.candidates)) % len(cm.candidates)
	cm.friendlyFireConfirmed = false
	cm.refreshFriendlyFire()
	return cm.Current()
}

// refreshFriendlyFire recomputes the friendly-fire flag for the current
// actor/target pair, consulted by Confirm to gate a second affirmative
// input (spec.md §4.7).
func (cm *CombatManager) refreshFriendlyFire() {
	target := cm.Current()
	cm.friendlyFire = cm.actor != nil && target != nil && target.Actor().Team == cm.actor.Actor().Team
}

// FriendlyFire reports whether the current target shares the actor's
// team, meaning Confirm requires a second affirmative call before
// Action.execute runs.
func (cm *CombatManager) FriendlyFire() bool { return cm.friendlyFire }

// Forecast computes a pure preview of actor attacking the current target
// with the given multiplier, for UI display.
func (cm *CombatManager) Forecast(actor *unit.Unit, mult combat.DamageMultiplier, counterEligible bool) (combat.Forecast, bool) {
	target := cm.Current()
	if target == nil {
		return combat.Forecast{}, false
	}
	return cm.calc.Forecast(actor, target, mult, 0, counterEligible), true
}

// Confirm runs spec.Validate then spec.Execute against the current
// target, publishing ActionSelected first so the event log always shows
// selection before execution (spec.md §3's control-flow summary). When
// the current target shares the actor's team, the first Confirm call
// only arms the friendly-fire prompt and returns without executing; a
// second call is required before spec.Execute runs (spec.md §4.7).
func (cm *CombatManager) Confirm(ctx context.Context, actor *unit.Unit, spec action.Spec, env action.Env) (action.Result, error) {
	target := cm.Current()
	if target == nil {
		return action.Result{}, nil
	}
	if cm.friendlyFire && !cm.friendlyFireConfirmed {
		cm.friendlyFireConfirmed = true
		return action.Result{}, nil
	}
	tgt := action.Target{UnitID: target.ID(), HasUnit: true}
	env.Now = cm.gs.Now()

	if err := action.PublishSelection(ctx, cm.gs.Bus, actor.ID(), spec.Name()); err != nil {
		return action.Result{}, err
	}

	v := spec.Validate(actor, tgt, env)
	if !v.OK() {
		return action.Result{}, nil
	}
	result, err := spec.Execute(ctx, actor, tgt, env, v)
	if err != nil {
		return action.Result{}, err
	}

	if err := events.ActionExecutedTopic.On(cm.gs.Bus).Publish(ctx, events.ActionExecutedEvent{
		UnitID:      string(actor.ID()),
		ActionName:  spec.Name(),
		WeightSpent: result.WeightSpent,
	}); err != nil {
		return result, err
	}
	return result, nil
}
