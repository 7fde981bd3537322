package action

import (
	"context"

	"github.com/pfassina/grimdark/events"
	"github.com/pfassina/grimdark/geom"
	"github.com/pfassina/grimdark/pathing"
	"github.com/pfassina/grimdark/unit"
)

// Move relocates the actor to a reachable, unoccupied tile. It does not
// consume a timeline entry on its own; the activation continues until a
// terminating action is chosen (spec.md §4.2).
type Move struct{}

// Name implements Spec.
func (Move) Name() string { return "Move" }

// Category implements Spec.
func (Move) Category() Category { return CategoryNormal }

// BaseWeight implements Spec. Move itself is weightless; the terminating
// action of the activation carries the weight.
func (Move) BaseWeight() geom.Weight { return 0 }

// Validate succeeds iff target.Tile is reachable within the actor's
// movement_points and unoccupied.
func (Move) Validate(actor *unit.Unit, target Target, env Env) Validation {
	if target.HasUnit {
		return reject("move target must be a tile, not a unit")
	}
	if !env.Map.InBounds(target.Tile) {
		return reject("destination out of bounds")
	}
	if env.Roster.Occupied(target.Tile) {
		return reject("destination occupied")
	}

	mv := actor.Movement()
	reachable := pathing.Reachable(env.Map, env.Roster, mv.Position, mv.MovementPoints, actor.ID())
	if _, ok := reachable[target.Tile]; !ok {
		return reject("destination unreachable within movement points")
	}
	return accept()
}

// Execute updates the actor's position and movement_points, and emits
// UnitMoved.
func (m Move) Execute(ctx context.Context, actor *unit.Unit, target Target, env Env, v Validation) (Result, error) {
	if err := requireToken(&v); err != nil {
		return Result{}, err
	}

	mv := actor.Movement()
	from := mv.Position
	reachable := pathing.Reachable(env.Map, env.Roster, from, mv.MovementPoints, actor.ID())
	cost := reachable[target.Tile]

	if err := env.Roster.Move(actor.ID(), target.Tile); err != nil {
		return Result{}, err
	}
	mv.Position = target.Tile
	mv.MovementPoints -= cost
	actor.SetMovement(mv)

	status := actor.Status()
	status.HasMoved = true
	actor.SetStatus(status)

	if err := events.UnitMovedTopic.On(env.Bus).Publish(ctx, events.UnitMovedEvent{
		UnitID: string(actor.ID()),
		From:   from,
		To:     target.Tile,
		Path:   []geom.Vector2{from, target.Tile},
		Cost:   cost,
	}); err != nil {
		return Result{}, err
	}
	if err := events.MovementCompletedTopic.On(env.Bus).Publish(ctx, events.MovementCompletedEvent{
		UnitID: string(actor.ID()),
	}); err != nil {
		return Result{}, err
	}

	return Result{WeightSpent: 0}, nil
}
