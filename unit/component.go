// Package unit implements the entity-component model: units as composite
// entities whose components are queried and mutated by the rest of the
// tactical core (spec.md §3.3, §4 re-architecture note in §9 — a closed
// ComponentKind tag replaces the source's duck-typed component lookup).
package unit

import "github.com/pfassina/grimdark/geom"

// Kind is the closed set of component tags a Unit may carry.
type Kind int

const (
	// KindActor identifies a unit's identity and team.
	KindActor Kind = iota
	// KindHealth identifies a unit's hit points.
	KindHealth
	// KindMovement identifies a unit's position and movement budget.
	KindMovement
	// KindCombat identifies a unit's offense/defense stats.
	KindCombat
	// KindStatus identifies a unit's turn-scoped flags.
	KindStatus
	// KindMorale identifies a unit's optional morale tracking.
	KindMorale
	// KindWound identifies a unit's optional wound list.
	KindWound
	// KindInterrupt identifies a unit's optional prepared reaction.
	KindInterrupt
	// KindAI identifies a unit's optional AI personality.
	KindAI
)

// Team identifies which side a unit fights for.
type Team int

const (
	// TeamPlayer is the player-controlled side.
	TeamPlayer Team = iota
	// TeamEnemy is the AI-controlled hostile side.
	TeamEnemy
	// TeamNeutral is neither player nor enemy.
	TeamNeutral
)

// component is the marker interface every concrete component type
// satisfies, so a Unit can hold a sparse map[Kind]component rather than a
// wide struct of optional pointers.
type component interface {
	kind() Kind
}

// Actor holds a unit's identity and team (required).
type Actor struct {
	Name  string
	Team  Team
	Class string
}

func (Actor) kind() Kind { return KindActor }

// Health holds a unit's hit points (required). IsAlive is derived, never
// stored, so it can never drift out of sync with HPCurrent.
type Health struct {
	HPMax     int
	HPCurrent int
}

func (Health) kind() Kind { return KindHealth }

// IsAlive reports whether the unit still has hit points (spec.md §3.3).
func (h Health) IsAlive() bool { return h.HPCurrent > 0 }

// Facing is a coarse cardinal direction a unit faces.
type Facing int

const (
	// FacingNorth points toward -Y.
	FacingNorth Facing = iota
	// FacingEast points toward +X.
	FacingEast
	// FacingSouth points toward +Y.
	FacingSouth
	// FacingWest points toward -X.
	FacingWest
)

// Movement holds a unit's position, facing, and remaining movement budget
// for the current activation (required).
type Movement struct {
	Position        geom.Vector2
	Facing          Facing
	MovementPoints  int // remaining this activation
	MaxMovement     int
	Speed           int // tick-cost baseline added to action weight
}

func (Movement) kind() Kind { return KindMovement }

// Combat holds a unit's offense/defense profile (required). Accuracy is a
// display metric only — spec.md explicitly forbids using it for hit
// rolls, since this core has no miss chance.
type Combat struct {
	Strength   int
	Defense    int
	RangeMin   int
	RangeMax   int
	CritChance int // 0..100
	Accuracy   int // display only, never consulted for hit/miss
}

func (Combat) kind() Kind { return KindCombat }

// Status holds turn-scoped flags and temporary modifiers (required).
type Status struct {
	HasMoved        bool
	HasActed        bool
	WeightModifier  geom.Weight // additive modifier from wounds/morale/gear
}

func (Status) kind() Kind { return KindStatus }

// MoraleState is the closed set of morale states a unit can be in.
type MoraleState string

const (
	// MoraleNormal is the default, unaffected state.
	MoraleNormal MoraleState = "normal"
	// MoraleShaken applies a mild penalty.
	MoraleShaken MoraleState = "shaken"
	// MoralePanicked applies a severe penalty.
	MoralePanicked MoraleState = "panicked"
	// MoraleRouted means the unit is fleeing combat.
	MoraleRouted MoraleState = "routed"
	// MoraleHeroic grants a bonus, scenario/host-assigned only.
	MoraleHeroic MoraleState = "heroic"
	// MoraleConfident grants a mild bonus, scenario/host-assigned only.
	MoraleConfident MoraleState = "confident"
)

// Morale is an optional component tracking a unit's resolve.
type Morale struct {
	Value int // 0..150
	State MoraleState
}

func (Morale) kind() Kind { return KindMorale }

// WoundSeverity is the closed set of wound severities.
type WoundSeverity string

const (
	// SeverityMinor is a light wound with a small stat penalty.
	SeverityMinor WoundSeverity = "minor"
	// SeverityModerate is a moderate wound.
	SeverityModerate WoundSeverity = "moderate"
	// SeverityMajor is a severe wound.
	SeverityMajor WoundSeverity = "major"
	// SeverityMortal is a wound that will kill without aid.
	SeverityMortal WoundSeverity = "mortal"
)

// Wound is one injury inflicted on a unit.
type Wound struct {
	Severity      WoundSeverity
	BodyPart      string
	StatPenalties map[string]int
	Bleeding      bool
	Permanent     bool
}

// WoundList is an optional component holding a unit's accumulated wounds.
type WoundList struct {
	Wounds []Wound
}

func (WoundList) kind() Kind { return KindWound }

// PreparedAction is the single reaction a unit's Interrupt component may
// hold (spec.md §4.2 PrepareInterrupt contract).
type PreparedAction struct {
	TriggerKey     string
	InterruptName  string
	Priority       int
	UsesLeft       int
}

// Interrupt is an optional component holding at most one PreparedAction.
type Interrupt struct {
	Prepared *PreparedAction
}

func (Interrupt) kind() Kind { return KindInterrupt }

// Personality is the closed set of AI decision-weighting styles.
type Personality string

const (
	// PersonalityAggressive prioritizes damage dealt.
	PersonalityAggressive Personality = "aggressive"
	// PersonalityDefensive prioritizes survival.
	PersonalityDefensive Personality = "defensive"
	// PersonalityOpportunistic prioritizes kill shots.
	PersonalityOpportunistic Personality = "opportunistic"
	// PersonalityBalanced blends all three.
	PersonalityBalanced Personality = "balanced"
)

// AI is an optional component marking a unit as AI-controlled.
type AI struct {
	Personality  Personality
	TargetMemory map[string]int // unit id -> times targeted
}

func (AI) kind() Kind { return KindAI }
