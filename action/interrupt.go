package action

import (
	"context"

	"github.com/pfassina/grimdark/events"
	"github.com/pfassina/grimdark/geom"
	"github.com/pfassina/grimdark/unit"
)

// PrepareInterruptParams carries the reaction an actor wants staged; it
// travels alongside Target since a prepared reaction isn't itself a tile
// or unit target.
type PrepareInterruptParams struct {
	TriggerKey    string
	InterruptName string
	Priority      int
}

// PrepareInterrupt stores a single-use reaction on the actor's Interrupt
// component (spec.md §4.2). The params are bound at construction since
// Spec's Validate/Execute signatures don't carry extra payload.
type PrepareInterrupt struct {
	Params PrepareInterruptParams
}

// Name implements Spec.
func (PrepareInterrupt) Name() string { return "PrepareInterrupt" }

// Category implements Spec.
func (PrepareInterrupt) Category() Category { return CategoryPrepared }

// BaseWeight implements Spec.
func (PrepareInterrupt) BaseWeight() geom.Weight { return 130 }

// Validate rejects only if the trigger/interrupt name is empty; anything
// else about feasibility is the interrupt's own business when it fires.
func (p PrepareInterrupt) Validate(actor *unit.Unit, target Target, env Env) Validation {
	if p.Params.TriggerKey == "" || p.Params.InterruptName == "" {
		return reject("prepared interrupt requires a trigger and an interrupt action")
	}
	return accept()
}

// Execute installs the PreparedAction and emits InterruptPrepared.
func (p PrepareInterrupt) Execute(ctx context.Context, actor *unit.Unit, target Target, env Env, v Validation) (Result, error) {
	if err := requireToken(&v); err != nil {
		return Result{}, err
	}

	actor.SetInterrupt(unit.Interrupt{
		Prepared: &unit.PreparedAction{
			TriggerKey:    p.Params.TriggerKey,
			InterruptName: p.Params.InterruptName,
			Priority:      p.Params.Priority,
			UsesLeft:      1,
		},
	})

	if err := events.InterruptPreparedTopic.On(env.Bus).Publish(ctx, events.InterruptPreparedEvent{
		UnitID:   string(actor.ID()),
		Priority: p.Params.Priority,
	}); err != nil {
		return Result{}, err
	}

	return Result{WeightSpent: p.BaseWeight()}, nil
}

// TriggerInterrupt consumes one use of actor's prepared reaction matching
// triggerKey, if any, emitting InterruptTriggered; the reaction is
// cleared once no uses remain. It returns the consumed reaction but does
// not run the named interrupt action, and neither does the interrupt
// watcher.
func TriggerInterrupt(ctx context.Context, actor *unit.Unit, bus *events.Bus, triggerKey string) (*unit.PreparedAction, error) {
	ic, ok := actor.Interrupt()
	if !ok || ic.Prepared == nil || ic.Prepared.TriggerKey != triggerKey || ic.Prepared.UsesLeft <= 0 {
		return nil, nil
	}
	prepared := *ic.Prepared
	prepared.UsesLeft--
	if prepared.UsesLeft > 0 {
		remaining := prepared
		ic.Prepared = &remaining
	} else {
		ic.Prepared = nil
	}
	actor.SetInterrupt(ic)

	if err := events.InterruptTriggeredTopic.On(bus).Publish(ctx, events.InterruptTriggeredEvent{
		UnitID:     string(actor.ID()),
		TriggerKey: triggerKey,
	}); err != nil {
		return nil, err
	}
	return &prepared, nil
}
