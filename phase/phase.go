// Package phase implements the battle phase state machine: the sole
// mutator of GameState's battle_phase, driven by a closed transition
// table (spec.md §4.5).
package phase

import (
	"context"

	"github.com/pfassina/grimdark/errs"
	"github.com/pfassina/grimdark/events"
	"github.com/pfassina/grimdark/state"
)

// Phase is the closed set of battle phases.
type Phase string

const (
	// TimelineProcessing is active while the scheduler is popping the
	// next activation.
	TimelineProcessing Phase = "timeline_processing"
	// UnitSelection is active while a player picks which unit to act.
	UnitSelection Phase = "unit_selection"
	// UnitMoving is active while the selected unit's cursor moves.
	UnitMoving Phase = "unit_moving"
	// ActionSelection is active while the player picks an action type.
	ActionSelection Phase = "action_selection"
	// ActionTargeting is active while the player picks a target.
	ActionTargeting Phase = "action_targeting"
	// ActionExecuting is active while an action's Execute runs.
	ActionExecuting Phase = "action_executing"
	// GameOver is terminal: an objective has resolved the battle.
	GameOver Phase = "game_over"
	// Inspect is a transient overlay phase; the phase it interrupted is
	// restored on the next InspectToggled.
	Inspect Phase = "inspect"
)

// Trigger is the closed set of transition triggers.
type Trigger string

const (
	// TriggerTurnStartedPlayer fires when TurnStarted names a player unit.
	TriggerTurnStartedPlayer Trigger = "turn_started_player"
	// TriggerTurnStartedAI fires when TurnStarted names an AI unit.
	TriggerTurnStartedAI Trigger = "turn_started_ai"
	// TriggerUnitSelected fires when the player commits to a unit.
	TriggerUnitSelected Trigger = "unit_selected"
	// TriggerMovementCompleted fires when a Move action finishes.
	TriggerMovementCompleted Trigger = "movement_completed"
	// TriggerActionSelectedWait fires when Wait is chosen.
	TriggerActionSelectedWait Trigger = "action_selected_wait"
	// TriggerActionSelectedQuickAttack fires on the QuickAttack shortcut.
	TriggerActionSelectedQuickAttack Trigger = "action_selected_quick_attack"
	// TriggerActionSelectedAttack fires when Attack/Skill is chosen.
	TriggerActionSelectedAttack Trigger = "action_selected_attack"
	// TriggerCancel fires on a Cancel input.
	TriggerCancel Trigger = "cancel"
	// TriggerTargetConfirmed fires when a target is confirmed.
	TriggerTargetConfirmed Trigger = "target_confirmed"
	// TriggerActionExecuted fires when an action's Execute returns.
	TriggerActionExecuted Trigger = "action_executed"
	// TriggerObjectiveResolved fires when a victory/defeat predicate
	// passes, from any battle phase.
	TriggerObjectiveResolved Trigger = "objective_resolved"
	// TriggerInspectToggled fires on an inspect toggle input, from any
	// battle phase or from Inspect itself.
	TriggerInspectToggled Trigger = "inspect_toggled"
)

type edge struct {
	from    Phase
	trigger Trigger
}

// table is the closed transition map. "any Battle" rows are expanded at
// lookup time in Transition rather than enumerated here, since Go maps
// can't express wildcard keys.
var table = map[edge]Phase{
	{TimelineProcessing, TriggerTurnStartedPlayer}: UnitSelection,
	{TimelineProcessing, TriggerTurnStartedAI}:      ActionExecuting,
	{UnitSelection, TriggerUnitSelected}:             UnitMoving,
	{UnitMoving, TriggerMovementCompleted}:           ActionSelection,
	{UnitMoving, TriggerActionSelectedWait}:          ActionExecuting,
	{UnitMoving, TriggerActionSelectedQuickAttack}:   ActionTargeting,
	{ActionSelection, TriggerActionSelectedAttack}:   ActionTargeting,
	{ActionSelection, TriggerCancel}:                 UnitMoving,
	{ActionTargeting, TriggerTargetConfirmed}:         ActionExecuting,
	{ActionTargeting, TriggerCancel}:                 ActionSelection,
	{ActionExecuting, TriggerActionExecuted}:          TimelineProcessing,
}

// battlePhases lists every phase TriggerObjectiveResolved/
// TriggerInspectToggled may fire from ("any Battle" in spec.md §4.5),
// excluding GameOver and Inspect themselves.
var battlePhases = map[Phase]bool{
	TimelineProcessing: true,
	UnitSelection:       true,
	UnitMoving:          true,
	ActionSelection:     true,
	ActionTargeting:     true,
	ActionExecuting:     true,
}

// Machine is the sole mutator of a GameState's battle_phase. Every
// transition goes through Transition; direct assignment elsewhere is
// forbidden (spec.md §4.5).
type Machine struct {
	gs    *state.GameState
	stack []Phase // Inspect push/pop, depth 1 per spec.md
}

// New builds a Machine bound to gs and sets its initial phase to
// TimelineProcessing.
func New(gs *state.GameState) *Machine {
	gs.SetPhase(string(TimelineProcessing))
	return &Machine{gs: gs}
}

// Current returns the machine's current phase.
func (m *Machine) Current() Phase {
	return Phase(m.gs.Phase())
}

// Transition applies trigger from the machine's current phase, mutating
// GameState.battle_phase and emitting BattlePhaseChanged. It returns an
// error if no edge exists for (current, trigger).
func (m *Machine) Transition(ctx context.Context, trigger Trigger) error {
	from := m.Current()

	// "any Battle" rows: ObjectiveResolved always goes to GameOver;
	// InspectToggled pushes the current battle phase and enters Inspect,
	// or (from Inspect) pops back to whatever was stored.
	switch trigger {
	case TriggerObjectiveResolved:
		if battlePhases[from] {
			return m.move(ctx, from, GameOver)
		}
	case TriggerInspectToggled:
		if from == Inspect {
			if len(m.stack) == 0 {
				return errs.New(errs.CodeInvariantViolation, "inspect stack empty on pop")
			}
			prev := m.stack[len(m.stack)-1]
			m.stack = m.stack[:len(m.stack)-1]
			return m.move(ctx, from, prev)
		}
		if battlePhases[from] {
			m.stack = append(m.stack, from)
			return m.move(ctx, from, Inspect)
		}
	}

	to, ok := table[edge{from, trigger}]
	if !ok {
		return errs.Newf(errs.CodeInvariantViolation, "no transition from %s on trigger %s", from, trigger)
	}
	return m.move(ctx, from, to)
}

// move performs the actual mutation and event publication shared by every
// transition path.
func (m *Machine) move(ctx context.Context, from, to Phase) error {
	m.gs.SetPhase(string(to))
	return events.BattlePhaseChangedTopic.On(m.gs.Bus).Publish(ctx, events.BattlePhaseChangedEvent{
		From: string(from),
		To:   string(to),
	})
}
