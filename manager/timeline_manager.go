// Package manager holds the orchestration layer: managers that react to
// events and mutate GameState, never holding references to each other
// directly (spec.md §4.6–§4.9 — all cross-manager communication flows
// through the event bus).
package manager

import (
	"context"

	"github.com/pfassina/grimdark/errs"
	"github.com/pfassina/grimdark/events"
	"github.com/pfassina/grimdark/geom"
	"github.com/pfassina/grimdark/state"
	"github.com/pfassina/grimdark/unit"
)

// TimelineManager pops the next activation, advances GameState.now, and
// emits TurnStarted. It also reinserts a unit at now+weight once the
// activation's terminating action has executed (spec.md §3's control
// flow summary).
type TimelineManager struct {
	gs *state.GameState
}

// NewTimelineManager builds a TimelineManager bound to gs and subscribes
// it to UnitDefeated so a dead unit's pending timeline entry is
// tombstoned immediately (spec.md §4.3).
func NewTimelineManager(gs *state.GameState) *TimelineManager {
	tm := &TimelineManager{gs: gs}
	events.UnitDefeatedTopic.On(gs.Bus).Subscribe(0, func(_ context.Context, evt events.UnitDefeatedEvent) error {
		gs.Timeline.Cancel(unit.ID(evt.UnitID))
		return nil
	})
	return tm
}

// PopNext advances the timeline to the next live entry, sets now, and
// emits TurnStarted for the surfaced unit. It returns the id of the unit
// now activating.
func (tm *TimelineManager) PopNext(ctx context.Context) (unit.ID, error) {
	entry, err := tm.gs.Timeline.Pop()
	if err != nil {
		return "", err
	}
	if entry.ReadyTick > tm.gs.Now() {
		tm.gs.Advance(entry.ReadyTick)
	}

	if err := events.TurnStartedTopic.On(tm.gs.Bus).Publish(ctx, events.TurnStartedEvent{
		UnitID: string(entry.UnitID),
		Now:    tm.gs.Now(),
	}); err != nil {
		return "", err
	}
	return entry.UnitID, nil
}

// EndActivation emits TurnEnded and reschedules the unit at
// now + weightSpent (plus its Movement.Speed baseline), per the
// reschedule law (spec.md §8 property).
func (tm *TimelineManager) EndActivation(ctx context.Context, id unit.ID, weightSpent geom.Weight) error {
	u, ok := tm.gs.Roster.Get(id)
	if !ok {
		return errs.Newf(errs.CodeInvariantViolation, "unknown unit %s ending activation", id)
	}

	if err := events.TurnEndedTopic.On(tm.gs.Bus).Publish(ctx, events.TurnEndedEvent{
		UnitID: string(id),
		Now:    tm.gs.Now(),
	}); err != nil {
		return err
	}

	if !u.IsAlive() {
		return nil
	}

	delay := geom.Tick(int64(weightSpent) + int64(u.Movement().Speed))
	tm.gs.Timeline.Schedule(id, tm.gs.Now()+delay)
	return nil
}
