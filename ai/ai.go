// Package ai implements the AI controller interface: a synchronous
// decision function that reuses the same validation path and
// BattleCalculator as the player, so it cannot cheat on hidden
// information (spec.md §4.10).
package ai

import (
	"github.com/pfassina/grimdark/action"
	"github.com/pfassina/grimdark/combat"
	"github.com/pfassina/grimdark/geom"
	"github.com/pfassina/grimdark/pathing"
	"github.com/pfassina/grimdark/unit"
)

// Decision is the (action, target) pair a Controller returns. Target is
// the zero value for actions that need none (Wait).
type Decision struct {
	Spec   action.Spec
	Target action.Target
}

// Controller is the interface the battle loop calls on a unit's
// TurnStarted. It is synchronous and must return a decision whose
// Validate call succeeds.
type Controller interface {
	Decide(actor *unit.Unit, env action.Env) Decision
}

// PersonalityController decides in a fixed order: if any living enemy is
// in range it StandardAttacks the one its Personality scores highest;
// otherwise it moves toward the nearest enemy; otherwise it Waits
// (spec.md §4.10). Move and Wait are not scored against attacks.
type PersonalityController struct {
	Personality unit.Personality
	Calc        *combat.Calculator
}

// NewPersonalityController builds a controller with the given
// personality.
func NewPersonalityController(p unit.Personality) *PersonalityController {
	return &PersonalityController{Personality: p, Calc: combat.NewCalculator()}
}

// Decide implements Controller.
func (c *PersonalityController) Decide(actor *unit.Unit, env action.Env) Decision {
	combatStats := actor.Combat()
	enemies := env.Roster.Team(oppositeTeam(actor.Actor().Team))
	candidates := pathing.TargetsInRange(actor.Position(), enemies, combatStats.RangeMin, combatStats.RangeMax)

	if len(candidates) > 0 {
		best := c.bestTarget(actor, candidates)
		return Decision{
			Spec:   action.StandardAttack(),
			Target: action.Target{UnitID: best.ID(), HasUnit: true},
		}
	}

	if dest, ok := c.approach(actor, env, enemies); ok {
		return Decision{Spec: action.Move{}, Target: action.Target{Tile: dest}}
	}

	return Decision{Spec: action.Wait{}}
}

// bestTarget scores each candidate by this controller's personality and
// returns the highest scorer, ties broken by the candidate's natural
// (already distance-sorted) order.
func (c *PersonalityController) bestTarget(actor *unit.Unit, candidates []*unit.Unit) *unit.Unit {
	var best *unit.Unit
	bestScore := -1.0
	for _, cand := range candidates {
		score := c.score(actor, cand)
		if best == nil || score > bestScore {
			bestScore = score
			best = cand
		}
	}
	return best
}

// score weights a prospective target by personality:
//   - aggressive: maximum expected damage dealt
//   - defensive: minimum expected counter/retaliation risk (prefers
//     targets that can't counter or are weak)
//   - opportunistic: prioritizes a forecasted kill
//   - balanced: the average of the three
func (c *PersonalityController) score(actor, target *unit.Unit) float64 {
	f := c.Calc.Forecast(actor, target, combat.MultiplierStandard, 0, true)
	avgDamage := float64(f.DamageMin+f.DamageMax) / 2

	aggressive := avgDamage
	defensive := -counterRisk(f)
	opportunistic := 0.0
	if f.WillKill {
		opportunistic = 1000
	}

	switch c.Personality {
	case unit.PersonalityAggressive:
		return aggressive
	case unit.PersonalityDefensive:
		return defensive
	case unit.PersonalityOpportunistic:
		return opportunistic
	default:
		return (aggressive + defensive + opportunistic) / 3
	}
}

func counterRisk(f combat.Forecast) float64 {
	if !f.CounterPossible || f.CounterForecast == nil {
		return 0
	}
	return float64(f.CounterForecast.DamageMin+f.CounterForecast.DamageMax) / 2
}

// approach moves the actor toward its nearest enemy when no target is
// currently in range, picking the reachable tile (within the actor's
// remaining movement points) that minimizes distance to that enemy.
// Reachable returns a map whose iteration order is not stable, so ties
// are broken explicitly here: lowest y, then lowest x.
func (c *PersonalityController) approach(actor *unit.Unit, env action.Env, enemies []*unit.Unit) (geom.Vector2, bool) {
	if len(enemies) == 0 {
		return geom.Vector2{}, false
	}
	nearest := enemies[0]
	nearestDist := actor.Position().ManhattanDistance(nearest.Position())
	for _, e := range enemies[1:] {
		d := actor.Position().ManhattanDistance(e.Position())
		if d < nearestDist {
			nearest = e
			nearestDist = d
		}
	}

	mv := actor.Movement()
	reachable := pathing.Reachable(env.Map, env.Roster, mv.Position, mv.MovementPoints, actor.ID())

	var bestTile geom.Vector2
	found := false
	bestDist := nearestDist
	for tile := range reachable {
		d := tile.ManhattanDistance(nearest.Position())
		if !found || d < bestDist || (d == bestDist && (tile.Y < bestTile.Y || (tile.Y == bestTile.Y && tile.X < bestTile.X))) {
			bestTile = tile
			bestDist = d
			found = true
		}
	}
	if !found || bestTile == mv.Position {
		return geom.Vector2{}, false
	}
	return bestTile, true
}

func oppositeTeam(t unit.Team) unit.Team {
	if t == unit.TeamPlayer {
		return unit.TeamEnemy
	}
	return unit.TeamPlayer
}
