// Package objective implements the closed predicate set for victory and
// defeat conditions, evaluated event-driven rather than polled
// (spec.md §4.9).
package objective

import (
	"context"

	"github.com/pfassina/grimdark/events"
	"github.com/pfassina/grimdark/geom"
	"github.com/pfassina/grimdark/state"
	"github.com/pfassina/grimdark/unit"
)

// Kind is the closed set of supported objective predicates.
type Kind string

const (
	// KindDefeatAllEnemies passes when no living unit remains on the
	// enemy team.
	KindDefeatAllEnemies Kind = "defeat_all_enemies"
	// KindSurviveTurns passes when now >= TargetTick.
	KindSurviveTurns Kind = "survive_turns"
	// KindReachPosition passes when a named unit occupies a named tile.
	KindReachPosition Kind = "reach_position"
	// KindDefeatUnit passes when a named unit is defeated.
	KindDefeatUnit Kind = "defeat_unit"
	// KindPositionCaptured passes when a player unit occupies a tile for
	// one full turn.
	KindPositionCaptured Kind = "position_captured"
	// KindAllUnitsDefeated passes when no living unit remains on the
	// player team.
	KindAllUnitsDefeated Kind = "all_units_defeated"
	// KindProtectUnit passes (as a defeat predicate) when a named unit is
	// defeated; it is negated on defeat (i.e. failing to protect fails
	// the objective).
	KindProtectUnit Kind = "protect_unit"
	// KindTurnLimit passes when now >= TargetTick.
	KindTurnLimit Kind = "turn_limit"
)

// Bucket says whether a predicate is a victory or a defeat condition.
type Bucket string

const (
	// BucketVictory predicates emit ObjectiveCompleted when they pass.
	BucketVictory Bucket = "victory"
	// BucketDefeat predicates emit ObjectiveFailed when they pass.
	BucketDefeat Bucket = "defeat"
)

// Objective is one configured predicate instance.
type Objective struct {
	Name       string
	Kind       Kind
	Bucket     Bucket
	UnitID     unit.ID
	Tile       geom.Vector2
	TargetTick geom.Tick

	capturedSince geom.Tick
	captureArmed  bool
}

// Evaluator wires a set of Objectives to the relevant event topics and
// flips the phase machine to GameOver the first time any predicate
// passes.
type Evaluator struct {
	gs         *state.GameState
	objectives []*Objective
	onResolved func(ctx context.Context) error
	resolved   bool
}

// NewEvaluator builds an Evaluator over gs's roster/state for the given
// objectives. onResolved is called once, the first time any objective
// resolves, so the caller (normally phase.Machine) can drive the
// TriggerObjectiveResolved transition.
func NewEvaluator(gs *state.GameState, objectives []*Objective, onResolved func(ctx context.Context) error) *Evaluator {
	e := &Evaluator{gs: gs, objectives: objectives, onResolved: onResolved}
	e.subscribe()
	return e
}

func (e *Evaluator) subscribe() {
	bus := e.gs.Bus
	events.UnitDefeatedTopic.On(bus).Subscribe(0, func(ctx context.Context, evt events.UnitDefeatedEvent) error {
		return e.evaluateAll(ctx)
	})
	events.UnitMovedTopic.On(bus).Subscribe(0, func(ctx context.Context, evt events.UnitMovedEvent) error {
		return e.evaluateAll(ctx)
	})
	events.TurnEndedTopic.On(bus).Subscribe(0, func(ctx context.Context, evt events.TurnEndedEvent) error {
		return e.evaluateAll(ctx)
	})
}

// evaluateAll checks every unresolved objective, emits the matching
// event for the first one that passes, marks its status, and invokes
// onResolved.
func (e *Evaluator) evaluateAll(ctx context.Context) error {
	for _, o := range e.objectives {
		if e.gs.ObjectiveStatus(o.Name) != "pending" {
			continue
		}
		passed, err := e.check(o)
		if err != nil {
			return err
		}
		if !passed {
			continue
		}

		if o.Bucket == BucketVictory {
			e.gs.SetObjectiveStatus(o.Name, "completed")
			if err := events.ObjectiveCompletedTopic.On(e.gs.Bus).Publish(ctx, events.ObjectiveCompletedEvent{Name: o.Name}); err != nil {
				return err
			}
		} else {
			e.gs.SetObjectiveStatus(o.Name, "failed")
			if err := events.ObjectiveFailedTopic.On(e.gs.Bus).Publish(ctx, events.ObjectiveFailedEvent{Name: o.Name}); err != nil {
				return err
			}
		}
		if e.onResolved != nil && !e.resolved {
			e.resolved = true
			return e.onResolved(ctx)
		}
	}
	return nil
}

func (e *Evaluator) check(o *Objective) (bool, error) {
	switch o.Kind {
	case KindDefeatAllEnemies:
		return len(e.gs.Roster.Team(unit.TeamEnemy)) == 0, nil
	case KindAllUnitsDefeated:
		return len(e.gs.Roster.Team(unit.TeamPlayer)) == 0, nil
	case KindSurviveTurns:
		return e.gs.Now() >= o.TargetTick, nil
	case KindTurnLimit:
		return e.gs.Now() >= o.TargetTick, nil
	case KindReachPosition:
		u, ok := e.gs.Roster.Get(o.UnitID)
		return ok && u.IsAlive() && u.Position() == o.Tile, nil
	case KindDefeatUnit:
		u, ok := e.gs.Roster.Get(o.UnitID)
		return ok && !u.IsAlive(), nil
	case KindProtectUnit:
		u, ok := e.gs.Roster.Get(o.UnitID)
		return ok && !u.IsAlive(), nil
	case KindPositionCaptured:
		occupant, ok := e.gs.Roster.At(o.Tile)
		held := ok && occupant.IsAlive() && occupant.Actor().Team == unit.TeamPlayer
		if !held {
			o.captureArmed = false
			return false, nil
		}
		if !o.captureArmed {
			o.captureArmed = true
			o.capturedSince = e.gs.Now()
			return false, nil
		}
		return e.gs.Now() > o.capturedSince, nil
	default:
		return false, nil
	}
}
