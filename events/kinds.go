package events

import "github.com/pfassina/grimdark/geom"

// The closed set of event kinds the tactical core emits (spec.md §4.4).
const (
	KindTurnStarted        Kind = "turn_started"
	KindTurnEnded          Kind = "turn_ended"
	KindUnitMoved          Kind = "unit_moved"
	KindUnitAttacked       Kind = "unit_attacked"
	KindUnitTookDamage     Kind = "unit_took_damage"
	KindUnitDefeated       Kind = "unit_defeated"
	KindBattlePhaseChanged Kind = "battle_phase_changed"
	KindActionSelected     Kind = "action_selected"
	KindActionExecuted     Kind = "action_executed"
	KindMovementCompleted  Kind = "movement_completed"
	KindInterruptPrepared  Kind = "interrupt_prepared"
	KindInterruptTriggered Kind = "interrupt_triggered"
	KindObjectiveCompleted Kind = "objective_completed"
	KindObjectiveFailed    Kind = "objective_failed"
	KindScenarioLoaded     Kind = "scenario_loaded"
	KindLogMessage         Kind = "log_message"
	KindHazardTriggered    Kind = "hazard_triggered"
	KindMoraleChanged      Kind = "morale_changed"
	KindUnitRallied        Kind = "unit_rallied"
	KindUnitRouted         Kind = "unit_routed"
)

// TurnStartedEvent fires when the scheduler hands activation to a unit.
type TurnStartedEvent struct {
	UnitID string
	Now    geom.Tick
}

// Kind implements Event.
func (TurnStartedEvent) Kind() Kind { return KindTurnStarted }

// TurnEndedEvent fires when a unit's activation concludes.
type TurnEndedEvent struct {
	UnitID string
	Now    geom.Tick
}

// Kind implements Event.
func (TurnEndedEvent) Kind() Kind { return KindTurnEnded }

// UnitMovedEvent fires when a unit's position changes.
type UnitMovedEvent struct {
	UnitID string
	From   geom.Vector2
	To     geom.Vector2
	Path   []geom.Vector2
	Cost   int
}

// Kind implements Event.
func (UnitMovedEvent) Kind() Kind { return KindUnitMoved }

// UnitAttackedEvent fires once per attack resolution (including counters).
type UnitAttackedEvent struct {
	AttackerID string
	DefenderID string
	IsCounter  bool
}

// Kind implements Event.
func (UnitAttackedEvent) Kind() Kind { return KindUnitAttacked }

// VarianceBucket classifies a resolved damage roll relative to its
// forecast band, for UI flavor text.
type VarianceBucket string

const (
	// VarianceLow means the roll landed in the bottom third of the band.
	VarianceLow VarianceBucket = "low"
	// VarianceMid means the roll landed in the middle third of the band.
	VarianceMid VarianceBucket = "mid"
	// VarianceHigh means the roll landed in the top third of the band.
	VarianceHigh VarianceBucket = "high"
)

// UnitTookDamageEvent fires after damage is applied to a defender.
type UnitTookDamageEvent struct {
	UnitID       string
	SourceID     string
	Amount       int
	Variance     VarianceBucket
	ResultingHP  int
	WasCritical  bool
}

// Kind implements Event.
func (UnitTookDamageEvent) Kind() Kind { return KindUnitTookDamage }

// UnitDefeatedEvent fires when a unit's hp_current drops to zero or below.
type UnitDefeatedEvent struct {
	UnitID   string
	KillerID string
	AtTick   geom.Tick
}

// Kind implements Event.
func (UnitDefeatedEvent) Kind() Kind { return KindUnitDefeated }

// BattlePhaseChangedEvent fires on every battle_phase transition.
type BattlePhaseChangedEvent struct {
	From string
	To   string
}

// Kind implements Event.
func (BattlePhaseChangedEvent) Kind() Kind { return KindBattlePhaseChanged }

// ActionSelectedEvent fires when a player or AI commits to an action type.
type ActionSelectedEvent struct {
	UnitID     string
	ActionName string
}

// Kind implements Event.
func (ActionSelectedEvent) Kind() Kind { return KindActionSelected }

// ActionExecutedEvent fires once an action's Execute call returns.
type ActionExecutedEvent struct {
	UnitID       string
	ActionName   string
	WeightSpent  geom.Weight
}

// Kind implements Event.
func (ActionExecutedEvent) Kind() Kind { return KindActionExecuted }

// MovementCompletedEvent fires when a Move action finishes resolving.
type MovementCompletedEvent struct {
	UnitID string
}

// Kind implements Event.
func (MovementCompletedEvent) Kind() Kind { return KindMovementCompleted }

// InterruptPreparedEvent fires when PrepareInterrupt stores a reaction.
type InterruptPreparedEvent struct {
	UnitID   string
	Priority int
}

// Kind implements Event.
func (InterruptPreparedEvent) Kind() Kind { return KindInterruptPrepared }

// InterruptTriggeredEvent fires when a prepared interrupt's trigger fires.
type InterruptTriggeredEvent struct {
	UnitID     string
	TriggerKey string
}

// Kind implements Event.
func (InterruptTriggeredEvent) Kind() Kind { return KindInterruptTriggered }

// ObjectiveCompletedEvent fires when a victory predicate passes.
type ObjectiveCompletedEvent struct {
	Name string
}

// Kind implements Event.
func (ObjectiveCompletedEvent) Kind() Kind { return KindObjectiveCompleted }

// ObjectiveFailedEvent fires when a defeat predicate passes.
type ObjectiveFailedEvent struct {
	Name string
}

// Kind implements Event.
func (ObjectiveFailedEvent) Kind() Kind { return KindObjectiveFailed }

// ScenarioLoadedEvent fires once battle-init placement resolution
// completes.
type ScenarioLoadedEvent struct {
	UnitCount int
}

// Kind implements Event.
func (ScenarioLoadedEvent) Kind() Kind { return KindScenarioLoaded }

// LogMessageEvent carries free-form diagnostic text for the log manager's
// ring buffer. This is the core's only "logging" surface — it never owns
// a log sink of its own (see SPEC_FULL.md's ambient-stack note).
type LogMessageEvent struct {
	Text string
}

// Kind implements Event.
func (LogMessageEvent) Kind() Kind { return KindLogMessage }

// HazardTriggeredEvent fires when a scheduled hazard tick resolves.
type HazardTriggeredEvent struct {
	HazardID string
	At       geom.Vector2
}

// Kind implements Event.
func (HazardTriggeredEvent) Kind() Kind { return KindHazardTriggered }

// MoraleChangedEvent fires whenever a unit's morale value or state shifts.
type MoraleChangedEvent struct {
	UnitID   string
	NewValue int
	NewState string
}

// Kind implements Event.
func (MoraleChangedEvent) Kind() Kind { return KindMoraleChanged }

// UnitRalliedEvent fires when a unit recovers from Shaken/Panicked/Routed.
type UnitRalliedEvent struct {
	UnitID string
}

// Kind implements Event.
func (UnitRalliedEvent) Kind() Kind { return KindUnitRallied }

// UnitRoutedEvent fires when a unit's morale state becomes Routed.
type UnitRoutedEvent struct {
	UnitID string
}

// Kind implements Event.
func (UnitRoutedEvent) Kind() Kind { return KindUnitRouted }
