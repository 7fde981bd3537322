// Package main demonstrates a minimal skirmish: two units activating in
// timeline order until an objective ends the battle or 12 activations
// have run, narrated to stdout. It
// wires every package in the tactical core together the way a real host
// program would (spec.md §3's control-flow summary). Both units are
// AI-controlled here; a real host swaps the player unit's decision
// source for SelectionManager/CombatManager driven by input events.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/pfassina/grimdark/action"
	"github.com/pfassina/grimdark/ai"
	"github.com/pfassina/grimdark/combat"
	"github.com/pfassina/grimdark/dice"
	"github.com/pfassina/grimdark/geom"
	"github.com/pfassina/grimdark/manager"
	"github.com/pfassina/grimdark/objective"
	"github.com/pfassina/grimdark/phase"
	"github.com/pfassina/grimdark/render"
	"github.com/pfassina/grimdark/scenario"
	"github.com/pfassina/grimdark/unit"
)

func demoPlan() scenario.Plan {
	return scenario.Plan{
		MapLayers: [][][]uint16{
			{
				{1, 1, 1, 1, 1},
				{1, 1, 1, 1, 1},
				{1, 1, 1, 1, 1},
				{1, 1, 1, 1, 1},
				{1, 1, 1, 1, 1},
			},
		},
		Tileset: map[uint16]scenario.TileDef{
			1: {MovementCost: 1},
		},
		UnitDefs: []scenario.UnitDef{
			{Name: "Knight", Class: "Knight", Team: "player", HPMax: 20, Strength: 8, Defense: 2, RangeMin: 1, RangeMax: 1, MaxMovement: 3, MovementSpeed: 60},
			{Name: "Warrior", Class: "Warrior", Team: "enemy", HPMax: 18, Strength: 6, Defense: 0, RangeMin: 1, RangeMax: 1, MaxMovement: 3, MovementSpeed: 80},
		},
		Markers: map[string]geom.Vector2{
			"knight_spawn":  {X: 0, Y: 0},
			"warrior_spawn": {X: 3, Y: 0},
		},
		Placements: []scenario.Placement{
			{TargetName: "Knight", Kind: scenario.PlacementAtMarker, Marker: "knight_spawn"},
			{TargetName: "Warrior", Kind: scenario.PlacementAtMarker, Marker: "warrior_spawn"},
		},
		Objectives: scenario.ObjectivesDef{
			Victory: []scenario.PredicateDef{{Name: "rout_enemy", Kind: string(objective.KindDefeatAllEnemies)}},
			Defeat:  []scenario.PredicateDef{{Name: "knight_falls", Kind: string(objective.KindAllUnitsDefeated)}},
		},
		Settings: scenario.SettingsDef{StartingTeam: "player"},
	}
}

func main() {
	result, err := scenario.Resolve(demoPlan())
	if err != nil {
		log.Fatalf("scenario resolve: %v", err)
	}
	gs := result.State
	ctx := context.Background()

	mach := phase.New(gs)
	manager.NewObjectiveManager(gs, mach, result.Objectives)
	manager.NewLogManager(gs)
	manager.NewMoraleManager(gs)
	tm := manager.NewTimelineManager(gs)

	roller := dice.NewDeterministicRoller(dice.Seed("knight", "warrior", 0, 0))
	resolver := combat.NewResolver(gs.Bus, roller)

	playerAI := ai.NewPersonalityController(unit.PersonalityAggressive)
	enemyAI := ai.NewPersonalityController(unit.PersonalityOpportunistic)

	for _, u := range gs.Roster.All() {
		gs.Timeline.Schedule(u.ID(), geom.Tick(0))
	}

	fmt.Println("=== Skirmish ===")
	for round := 0; round < 12 && gs.Phase() != string(phase.GameOver); round++ {
		id, err := tm.PopNext(ctx)
		if err != nil {
			log.Fatalf("pop next: %v", err)
		}
		actor, ok := gs.Roster.Get(id)
		if !ok || !actor.IsAlive() {
			continue
		}

		if err := mach.Transition(ctx, phase.TriggerTurnStartedAI); err != nil {
			log.Fatalf("phase transition: %v", err)
		}

		env := action.Env{Map: gs.Map, Roster: gs.Roster, Bus: gs.Bus, Resolver: resolver, Now: gs.Now()}
		controller := enemyAI
		if actor.Actor().Team == unit.TeamPlayer {
			controller = playerAI
		}

		weightSpent, err := runActivation(ctx, actor, controller, env)
		if err != nil {
			log.Fatalf("activation: %v", err)
		}

		if gs.Phase() != string(phase.GameOver) {
			if err := mach.Transition(ctx, phase.TriggerActionExecuted); err != nil {
				log.Fatalf("phase transition: %v", err)
			}
		}
		if err := tm.EndActivation(ctx, id, weightSpent); err != nil {
			log.Fatalf("end activation: %v", err)
		}

		for _, line := range gs.RecentLog(3) {
			fmt.Printf("[tick %d] %s\n", line.At, line.Text)
		}
	}

	if gs.Phase() == string(phase.GameOver) {
		fmt.Println("=== Battle Over ===")
	} else {
		fmt.Println("=== Round limit reached ===")
	}

	snapshot := render.BuildContext(render.Input{State: gs, Camera: render.Camera{W: 5, H: 5}})
	for _, u := range snapshot.Units {
		fmt.Printf("%s: %d/%d HP at (%d,%d)\n", u.ID, u.HPCurrent, u.HPMax, u.X, u.Y)
	}
}

// runActivation asks controller for a decision and runs it through the
// same Validate/Execute path a player-driven CombatManager would use,
// publishing ActionSelected before Execute so the log's ordering
// invariant holds regardless of who is deciding.
func runActivation(ctx context.Context, actor *unit.Unit, controller ai.Controller, env action.Env) (geom.Weight, error) {
	decision := controller.Decide(actor, env)

	v := decision.Spec.Validate(actor, decision.Target, env)
	if !v.OK() {
		return 0, nil
	}
	if err := action.PublishSelection(ctx, env.Bus, actor.ID(), decision.Spec.Name()); err != nil {
		return 0, err
	}
	result, err := decision.Spec.Execute(ctx, actor, decision.Target, env, v)
	if err != nil {
		return 0, err
	}
	return result.WeightSpent, nil
}
