package manager

import (
	"context"

	"github.com/pfassina/grimdark/objective"
	"github.com/pfassina/grimdark/phase"
	"github.com/pfassina/grimdark/state"
)

// ObjectiveManager wires an objective.Evaluator to a phase.Machine so the
// first resolved predicate drives the Phase SM to GameOver
// (spec.md §4.9's closing line).
type ObjectiveManager struct {
	evaluator *objective.Evaluator
}

// NewObjectiveManager builds the evaluator over objectives and connects
// its resolution callback to mach.Transition(TriggerObjectiveResolved).
func NewObjectiveManager(gs *state.GameState, mach *phase.Machine, objectives []*objective.Objective) *ObjectiveManager {
	om := &ObjectiveManager{}
	om.evaluator = objective.NewEvaluator(gs, objectives, func(ctx context.Context) error {
		return mach.Transition(ctx, phase.TriggerObjectiveResolved)
	})
	return om
}
