package action

import (
	"context"

	"github.com/pfassina/grimdark/geom"
	"github.com/pfassina/grimdark/unit"
)

// Wait ends the actor's activation immediately with no target.
type Wait struct{}

// Name implements Spec.
func (Wait) Name() string { return "Wait" }

// Category implements Spec.
func (Wait) Category() Category { return CategoryQuick }

// BaseWeight implements Spec.
func (Wait) BaseWeight() geom.Weight { return 50 }

// Validate always succeeds; Wait has no preconditions.
func (Wait) Validate(actor *unit.Unit, target Target, env Env) Validation {
	return accept()
}

// Execute marks the actor as having acted and returns the base weight.
func (w Wait) Execute(ctx context.Context, actor *unit.Unit, target Target, env Env, v Validation) (Result, error) {
	if err := requireToken(&v); err != nil {
		return Result{}, err
	}
	status := actor.Status()
	status.HasActed = true
	actor.SetStatus(status)
	return Result{WeightSpent: w.BaseWeight()}, nil
}
