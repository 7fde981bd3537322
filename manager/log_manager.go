package manager

import (
	"context"
	"fmt"

	"github.com/pfassina/grimdark/events"
	"github.com/pfassina/grimdark/state"
)

// LogManager subscribes to LogMessage and every other narratively
// interesting event, appending a line to GameState's rolling log. This
// is the core's only "logging" surface (SPEC_FULL.md's ambient-stack
// note); it never writes to a file or stdout itself.
type LogManager struct {
	gs *state.GameState
}

// NewLogManager builds a LogManager bound to gs and subscribes it to the
// event kinds worth recording.
func NewLogManager(gs *state.GameState) *LogManager {
	lm := &LogManager{gs: gs}
	bus := gs.Bus

	events.LogMessageTopic.On(bus).Subscribe(0, func(_ context.Context, evt events.LogMessageEvent) error {
		gs.AppendLog(evt.Text)
		return nil
	})
	events.UnitAttackedTopic.On(bus).Subscribe(0, func(_ context.Context, evt events.UnitAttackedEvent) error {
		gs.AppendLog(fmt.Sprintf("%s attacks %s", evt.AttackerID, evt.DefenderID))
		return nil
	})
	events.UnitTookDamageTopic.On(bus).Subscribe(0, func(_ context.Context, evt events.UnitTookDamageEvent) error {
		gs.AppendLog(fmt.Sprintf("%s takes %d damage (%d hp left)", evt.UnitID, evt.Amount, evt.ResultingHP))
		return nil
	})
	events.UnitDefeatedTopic.On(bus).Subscribe(0, func(_ context.Context, evt events.UnitDefeatedEvent) error {
		gs.AppendLog(fmt.Sprintf("%s is defeated by %s", evt.UnitID, evt.KillerID))
		return nil
	})
	events.ObjectiveCompletedTopic.On(bus).Subscribe(0, func(_ context.Context, evt events.ObjectiveCompletedEvent) error {
		gs.AppendLog(fmt.Sprintf("objective completed: %s", evt.Name))
		return nil
	})
	events.ObjectiveFailedTopic.On(bus).Subscribe(0, func(_ context.Context, evt events.ObjectiveFailedEvent) error {
		gs.AppendLog(fmt.Sprintf("objective failed: %s", evt.Name))
		return nil
	})

	return lm
}
