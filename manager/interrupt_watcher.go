package manager

import (
	"context"

	"github.com/pfassina/grimdark/action"
	"github.com/pfassina/grimdark/events"
	"github.com/pfassina/grimdark/state"
	"github.com/pfassina/grimdark/unit"
)

// InterruptWatcher listens for events that can satisfy a unit's prepared
// interrupt trigger and fires TriggerInterrupt when one matches. The
// current catalog only watches UnitMoved for an "enemy_enters_range"-
// style trigger, since no other trigger source exists in the closed
// event set yet.
type InterruptWatcher struct {
	gs *state.GameState
}

// NewInterruptWatcher builds an InterruptWatcher bound to gs.
func NewInterruptWatcher(gs *state.GameState) *InterruptWatcher {
	iw := &InterruptWatcher{gs: gs}
	events.UnitMovedTopic.On(gs.Bus).Subscribe(0, func(ctx context.Context, evt events.UnitMovedEvent) error {
		return iw.checkRangeTriggers(ctx, unit.ID(evt.UnitID))
	})
	return iw
}

// checkRangeTriggers fires any living unit's prepared interrupt whose
// trigger key is "enemy_enters_range" if moverID is on another team and
// stands within that unit's attack range after the move (whether it was
// already in range before the move is not checked).
func (iw *InterruptWatcher) checkRangeTriggers(ctx context.Context, moverID unit.ID) error {
	mover, ok := iw.gs.Roster.Get(moverID)
	if !ok {
		return nil
	}
	for _, u := range iw.gs.Roster.Living() {
		if u.ID() == moverID || u.Actor().Team == mover.Actor().Team {
			continue
		}
		ic, ok := u.Interrupt()
		if !ok || ic.Prepared == nil || ic.Prepared.TriggerKey != "enemy_enters_range" {
			continue
		}
		c := u.Combat()
		dist := u.Position().ManhattanDistance(mover.Position())
		if dist < c.RangeMin || dist > c.RangeMax {
			continue
		}
		if _, err := action.TriggerInterrupt(ctx, u, iw.gs.Bus, "enemy_enters_range"); err != nil {
			return err
		}
	}
	return nil
}
