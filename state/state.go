// Package state holds GameState, the single root aggregate the rest of
// the tactical core reads and mutates through (spec.md §3.5). Nothing
// outside this package's phase.Machine collaborator may write
// battle_phase directly — see SetPhase's doc comment.
package state

import (
	"github.com/pfassina/grimdark/events"
	"github.com/pfassina/grimdark/geom"
	"github.com/pfassina/grimdark/grid"
	"github.com/pfassina/grimdark/timeline"
	"github.com/pfassina/grimdark/unit"
)

// LogEntry is one line in the rolling diagnostic log.
type LogEntry struct {
	At   geom.Tick
	Text string
}

// maxLogEntries bounds the rolling log ring so a long battle can't grow
// it unboundedly.
const maxLogEntries = 200

// GameState is the root aggregate: the map, the roster, the timeline, the
// current tick, the battle phase, objective status, and a rolling log.
// It owns no behavior of its own beyond simple accessors — all mutation
// flows through the packages that take a *GameState (action, combat,
// phase, manager).
type GameState struct {
	Map      *grid.Map
	Roster   *unit.Roster
	Timeline *timeline.Scheduler
	Bus      *events.Bus

	now   geom.Tick
	phase string // mutated only via SetPhase, called only by phase.Machine

	objectiveStatus map[string]string // name -> "pending"|"completed"|"failed"

	log []LogEntry

	nonUnitTimelineIDs map[unit.ID]bool // hazards and other non-unit timeline citizens
}

// New builds a fresh GameState over the given map and bus. The timeline's
// aliveness check is wired to the roster so dead units are silently
// dropped from scheduling; non-unit timeline entries (hazards) registered
// via RegisterTimelineID bypass that check.
func New(m *grid.Map, bus *events.Bus) *GameState {
	roster := unit.NewRoster()
	gs := &GameState{
		Map:                m,
		Roster:             roster,
		Bus:                bus,
		phase:              "setup",
		objectiveStatus:    make(map[string]string),
		nonUnitTimelineIDs: make(map[unit.ID]bool),
	}
	gs.Timeline = timeline.NewScheduler(func(id unit.ID) bool {
		if gs.nonUnitTimelineIDs[id] {
			return true
		}
		u, ok := roster.Get(id)
		return ok && u.IsAlive()
	})
	return gs
}

// RegisterTimelineID marks id as a permanent, non-unit timeline citizen
// (e.g. a hazard) so the scheduler's aliveness check never tombstones it
// for not being in the roster.
func (gs *GameState) RegisterTimelineID(id unit.ID) {
	gs.nonUnitTimelineIDs[id] = true
}

// Now returns the current simulation tick.
func (gs *GameState) Now() geom.Tick { return gs.now }

// Advance sets the current tick. It does not check that tick is at or
// after the current one; callers pass the tick of the entry just popped
// from the timeline.
func (gs *GameState) Advance(tick geom.Tick) { gs.now = tick }

// Phase returns the current battle phase name.
func (gs *GameState) Phase() string { return gs.phase }

// SetPhase is the sole write path for battle_phase. It is exported only
// so that package phase's Machine (the sole intended caller) can reach
// it; every other package must go through phase.Machine.Transition
// instead of calling this directly (spec.md §4.5).
func (gs *GameState) SetPhase(p string) { gs.phase = p }

// ObjectiveStatus returns the status of a named objective, defaulting to
// "pending" if never recorded.
func (gs *GameState) ObjectiveStatus(name string) string {
	if s, ok := gs.objectiveStatus[name]; ok {
		return s
	}
	return "pending"
}

// SetObjectiveStatus records an objective's resolved status.
func (gs *GameState) SetObjectiveStatus(name, status string) {
	gs.objectiveStatus[name] = status
}

// AppendLog records a line in the rolling log, trimming the oldest entry
// once the ring is full.
func (gs *GameState) AppendLog(text string) {
	gs.log = append(gs.log, LogEntry{At: gs.now, Text: text})
	if len(gs.log) > maxLogEntries {
		gs.log = gs.log[len(gs.log)-maxLogEntries:]
	}
}

// RecentLog returns up to n of the most recent log entries, oldest first.
func (gs *GameState) RecentLog(n int) []LogEntry {
	if n > len(gs.log) {
		n = len(gs.log)
	}
	return append([]LogEntry(nil), gs.log[len(gs.log)-n:]...)
}
