package manager

import (
	"context"

	"github.com/pfassina/grimdark/events"
	"github.com/pfassina/grimdark/geom"
	"github.com/pfassina/grimdark/state"
	"github.com/pfassina/grimdark/unit"
)

// Hazard is an environmental tile effect scheduled on the timeline
// alongside unit activations — spec.md's opening summary names hazards
// as first-class timeline citizens sharing the same priority queue.
type Hazard struct {
	ID string
	At geom.Vector2
}

// HazardManager owns the set of scheduled hazards and fires
// HazardTriggered when the timeline hands one activation.
type HazardManager struct {
	gs      *state.GameState
	hazards map[string]Hazard
}

// NewHazardManager builds a HazardManager bound to gs.
func NewHazardManager(gs *state.GameState) *HazardManager {
	return &HazardManager{gs: gs, hazards: make(map[string]Hazard)}
}

// Schedule registers a hazard and places it on the timeline at
// readyTick, using the same scheduler and tie-break rules as units
// (spec.md §4.1 — "no special priority is given to actor kind").
func (hm *HazardManager) Schedule(h Hazard, readyTick geom.Tick) {
	hm.hazards[h.ID] = h
	id := hazardUnitID(h.ID)
	hm.gs.RegisterTimelineID(id)
	hm.gs.Timeline.Schedule(id, readyTick)
}

// Trigger fires HazardTriggered for the named hazard, if still
// registered.
func (hm *HazardManager) Trigger(ctx context.Context, id string) error {
	h, ok := hm.hazards[id]
	if !ok {
		return nil
	}
	return events.HazardTriggeredTopic.On(hm.gs.Bus).Publish(ctx, events.HazardTriggeredEvent{
		HazardID: h.ID,
		At:       h.At,
	})
}

// IsHazard reports whether a timeline entry's unit id actually names a
// hazard rather than a unit, and returns the hazard id.
func IsHazard(timelineID string) (string, bool) {
	const prefix = "hazard:"
	if len(timelineID) > len(prefix) && timelineID[:len(prefix)] == prefix {
		return timelineID[len(prefix):], true
	}
	return "", false
}

func hazardUnitID(id string) unit.ID {
	return unit.ID("hazard:" + id)
}
