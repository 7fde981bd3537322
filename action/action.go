// Package action implements the action catalog: validated, weight-bearing
// operations a unit may perform during its activation (spec.md §4.2).
package action

import (
	"context"

	"github.com/pfassina/grimdark/combat"
	"github.com/pfassina/grimdark/errs"
	"github.com/pfassina/grimdark/events"
	"github.com/pfassina/grimdark/geom"
	"github.com/pfassina/grimdark/grid"
	"github.com/pfassina/grimdark/unit"
)

// Category is the closed set of action weight classes.
type Category string

const (
	// CategoryQuick actions are light and cheap in tempo.
	CategoryQuick Category = "quick"
	// CategoryNormal actions are the baseline tempo cost.
	CategoryNormal Category = "normal"
	// CategoryHeavy actions are slow and expensive in tempo.
	CategoryHeavy Category = "heavy"
	// CategoryPrepared actions stage a reaction for later.
	CategoryPrepared Category = "prepared"
)

// Target is the destination of an action: either a tile (Move) or another
// unit (attacks), never both.
type Target struct {
	Tile   geom.Vector2
	UnitID unit.ID
	HasUnit bool
}

// Result is what Execute returns on success.
type Result struct {
	WeightSpent     geom.Weight
	DamageDone      int
	WoundsInflicted int
}

// Validation is the outcome of Validate: either Ok (carrying the one-time
// Token that Execute redeems) or a rejection reason.
type Validation struct {
	ok     bool
	reason string
	token  Token
}

// OK reports whether validation succeeded.
func (v Validation) OK() bool { return v.ok }

// Reason returns the rejection reason, empty if validation succeeded.
func (v Validation) Reason() string { return v.reason }

// accept builds a passing Validation carrying a fresh one-time Token.
func accept() Validation {
	return Validation{ok: true, token: newToken()}
}

// reject builds a failing Validation with the given reason.
func reject(reason string) Validation {
	return Validation{ok: false, reason: reason}
}

// Token is a one-time-use proof that Validate succeeded for a specific
// Execute call, enforcing "no execute without a prior successful
// validate" (spec.md §4.2). Package action is the only package that can
// mint or redeem one.
type Token struct {
	minted bool
}

func newToken() Token { return Token{minted: true} }

// redeem consumes the token, returning an error if it was never minted by
// a successful Validate (e.g. the zero value) or has already been spent.
func (t *Token) redeem() error {
	if !t.minted {
		return errs.New(errs.CodeValidation, "execute called without a successful validate")
	}
	t.minted = false
	return nil
}

// Env bundles the collaborators an action needs to validate and execute:
// the map, roster, event bus, and the current simulation tick. Actions
// never reach outside this envelope — no direct manager references
// (spec.md §4.4's "no back-references"). Now must be refreshed by the
// caller (normally CombatManager.Confirm) from GameState.Now() before
// every Execute call, so event timestamps (e.g. UnitDefeatedEvent.AtTick)
// reflect the tick the action actually ran on.
type Env struct {
	Map      *grid.Map
	Roster   *unit.Roster
	Bus      *events.Bus
	Resolver *combat.Resolver
	Now      geom.Tick
}

// Spec is the interface every action variant implements.
type Spec interface {
	// Name identifies the action for events and logs.
	Name() string
	// Category reports the action's weight class.
	Category() Category
	// BaseWeight reports the action's undamped tick cost.
	BaseWeight() geom.Weight
	// Validate is pure: it never mutates actor, target, or env.
	Validate(actor *unit.Unit, target Target, env Env) Validation
	// Execute mutates state and emits events. It must only be called
	// with the Validation returned by a prior successful Validate call
	// for this exact (actor, target) pair.
	Execute(ctx context.Context, actor *unit.Unit, target Target, env Env, v Validation) (Result, error)
}

// requireToken redeems v's token or returns the commitment-without-
// validation error. Every concrete action's Execute calls this first.
func requireToken(v *Validation) error {
	return v.token.redeem()
}
