package manager

import (
	"context"

	"github.com/pfassina/grimdark/events"
	"github.com/pfassina/grimdark/state"
	"github.com/pfassina/grimdark/unit"
)

// moraleDamagePenalty is how much morale a unit loses per ten points of
// damage taken (rounded down), so a single hit alone never comes close
// to routing a full-morale unit.
const moraleDamagePenalty = 2

// moraleAllyLossPenalty is the morale hit a unit's allies take when it
// is defeated.
const moraleAllyLossPenalty = 15

// MoraleManager tracks each unit's Morale component in response to
// combat events, using the linear curve: Shaken below 50, Panicked below
// 25, Routed at 0 (DESIGN.md's Open Question decision — spec.md leaves
// the numeric curve unspecified).
type MoraleManager struct {
	gs *state.GameState
}

// NewMoraleManager builds a MoraleManager bound to gs and subscribes it
// to the events that move morale.
func NewMoraleManager(gs *state.GameState) *MoraleManager {
	mm := &MoraleManager{gs: gs}
	bus := gs.Bus

	events.UnitTookDamageTopic.On(bus).Subscribe(0, func(ctx context.Context, evt events.UnitTookDamageEvent) error {
		return mm.adjust(ctx, unit.ID(evt.UnitID), -evt.Amount*moraleDamagePenalty/10)
	})
	events.UnitDefeatedTopic.On(bus).Subscribe(0, func(ctx context.Context, evt events.UnitDefeatedEvent) error {
		return mm.onAllyDefeated(ctx, unit.ID(evt.UnitID))
	})

	return mm
}

// onAllyDefeated penalizes morale for every living teammate of the
// defeated unit.
func (mm *MoraleManager) onAllyDefeated(ctx context.Context, defeatedID unit.ID) error {
	defeated, ok := mm.gs.Roster.Get(defeatedID)
	if !ok {
		return nil
	}
	for _, ally := range mm.gs.Roster.Team(defeated.Actor().Team) {
		if ally.ID() == defeatedID {
			continue
		}
		if err := mm.adjust(ctx, ally.ID(), -moraleAllyLossPenalty); err != nil {
			return err
		}
	}
	return nil
}

// adjust changes u's morale value by delta, clamps to [0, 150], derives
// the resulting MoraleState, and emits MoraleChanged/UnitRallied/
// UnitRouted on state transitions.
func (mm *MoraleManager) adjust(ctx context.Context, id unit.ID, delta int) error {
	u, ok := mm.gs.Roster.Get(id)
	if !ok || !u.IsAlive() {
		return nil
	}
	m, _ := u.Morale()
	if m.Value == 0 && m.State == "" {
		m.Value = 100
		m.State = unit.MoraleNormal
	}

	prevState := m.State
	m.Value += delta
	if m.Value < 0 {
		m.Value = 0
	}
	if m.Value > 150 {
		m.Value = 150
	}

	switch {
	case m.Value <= 0:
		m.State = unit.MoraleRouted
	case m.Value < 25:
		m.State = unit.MoralePanicked
	case m.Value < 50:
		m.State = unit.MoraleShaken
	default:
		if m.State == unit.MoraleShaken || m.State == unit.MoralePanicked || m.State == unit.MoraleRouted {
			m.State = unit.MoraleNormal
		}
	}
	u.SetMorale(m)

	if m.State == prevState {
		return nil
	}

	if err := events.MoraleChangedTopic.On(mm.gs.Bus).Publish(ctx, events.MoraleChangedEvent{
		UnitID:   string(id),
		NewValue: m.Value,
		NewState: string(m.State),
	}); err != nil {
		return err
	}

	wasBad := prevState == unit.MoraleShaken || prevState == unit.MoralePanicked || prevState == unit.MoraleRouted
	if m.State == unit.MoraleNormal && wasBad {
		return events.UnitRalliedTopic.On(mm.gs.Bus).Publish(ctx, events.UnitRalliedEvent{UnitID: string(id)})
	}
	if m.State == unit.MoraleRouted && prevState != unit.MoraleRouted {
		return events.UnitRoutedTopic.On(mm.gs.Bus).Publish(ctx, events.UnitRoutedEvent{UnitID: string(id)})
	}
	return nil
}
