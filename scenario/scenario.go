// Package scenario implements the battle-authoring boundary: a
// yaml-tagged Plan struct mirroring spec.md §6.3's ScenarioPlan, and a
// Resolve step that turns markers/regions/placements into concrete unit
// positions exactly once, at battle-init (spec.md: "after that, markers/
// regions are not referenced by the simulation").
package scenario

import (
	"context"
	"sort"

	"github.com/pfassina/grimdark/errs"
	"github.com/pfassina/grimdark/events"
	"github.com/pfassina/grimdark/geom"
	"github.com/pfassina/grimdark/grid"
	"github.com/pfassina/grimdark/objective"
	"github.com/pfassina/grimdark/state"
	"github.com/pfassina/grimdark/unit"
)

// TileDef describes one tileset entry referenced by tile id from a map
// layer.
type TileDef struct {
	MovementCost   int  `yaml:"movement_cost"`
	DefenseBonus   int  `yaml:"defense_bonus"`
	AvoidBonus     int  `yaml:"avoid_bonus"`
	BlocksVision   bool `yaml:"blocks_vision"`
	BlocksMovement bool `yaml:"blocks_movement"`
}

// UnitDef is one authored unit template, materialized into a unit.Unit
// during Resolve.
type UnitDef struct {
	Name          string         `yaml:"name"`
	Class         string         `yaml:"class"`
	Team          string         `yaml:"team"` // "player" | "enemy" | "neutral"
	HPMax         int            `yaml:"hp_max"`
	Strength      int            `yaml:"strength"`
	Defense       int            `yaml:"defense"`
	RangeMin      int            `yaml:"range_min"`
	RangeMax      int            `yaml:"range_max"`
	MovementSpeed int            `yaml:"movement_speed"`
	MaxMovement   int            `yaml:"max_movement"`
	StatOverrides map[string]int `yaml:"stat_overrides"`
}

// ObjectDef is an authored non-unit scenario object (a hazard marker, a
// destructible, etc.), carried opaquely — the core interprets the type
// tag, not this package.
type ObjectDef struct {
	Name       string         `yaml:"name"`
	Type       string         `yaml:"type"`
	Properties map[string]any `yaml:"properties"`
}

// PlacementKind is the closed set of ways a placement resolves to a
// position (spec.md §6.3).
type PlacementKind string

const (
	// PlacementAt places directly at a fixed vector.
	PlacementAt PlacementKind = "at"
	// PlacementAtMarker places at a named marker's position.
	PlacementAtMarker PlacementKind = "at_marker"
	// PlacementAtRegion places within a named region per RegionPolicy.
	PlacementAtRegion PlacementKind = "at_region"
)

// RegionPolicy is the closed set of region placement policies (spec.md
// §6.3).
type RegionPolicy string

const (
	// PolicyRandomFreeTile picks one unoccupied tile from the region.
	PolicyRandomFreeTile RegionPolicy = "random_free_tile"
	// PolicySpreadEvenly gives each successive target in the region the
	// next tile in row-major order, one tile per target; the tiles are
	// not spaced apart and their occupancy is not checked.
	PolicySpreadEvenly RegionPolicy = "spread_evenly"
)

// Placement binds one unit_def/object (by name) to a position-resolution
// rule.
type Placement struct {
	TargetName   string        `yaml:"target_name"`
	Kind         PlacementKind `yaml:"kind"`
	At           geom.Vector2  `yaml:"at,omitempty"`
	Marker       string        `yaml:"marker,omitempty"`
	Region       string        `yaml:"region,omitempty"`
	RegionPolicy RegionPolicy  `yaml:"region_policy,omitempty"`
}

// PredicateDef is one authored objective predicate, mirroring
// objective.Kind's closed set by name so a host-side YAML file can name
// it without importing the objective package's Go constants directly.
type PredicateDef struct {
	Name       string       `yaml:"name"`
	Kind       string       `yaml:"kind"`
	UnitName   string       `yaml:"unit_name,omitempty"`
	Tile       geom.Vector2 `yaml:"tile,omitempty"`
	TargetTick geom.Tick    `yaml:"target_tick,omitempty"`
}

// ObjectivesDef is the victory/defeat predicate lists.
type ObjectivesDef struct {
	Victory []PredicateDef `yaml:"victory"`
	Defeat  []PredicateDef `yaml:"defeat"`
}

// SettingsDef carries battle-wide settings.
type SettingsDef struct {
	TurnLimit    int    `yaml:"turn_limit,omitempty"`
	StartingTeam string `yaml:"starting_team"`
	FogOfWar     bool   `yaml:"fog_of_war,omitempty"`
}

// TileOverride patches a single cell after layer composition.
type TileOverride struct {
	At     geom.Vector2 `yaml:"at"`
	TileID uint16       `yaml:"tile_id"`
}

// Plan is the Go struct form of spec.md §6.3's ScenarioPlan — the wire
// contract a host-side YAML/CSV loader decodes into. This package ships
// the contract and its resolver only; asset decoding is an explicit
// Non-goal.
type Plan struct {
	MapLayers  [][][]uint16          `yaml:"map_layers"` // [layer][y][x] = tile_id
	Tileset    map[uint16]TileDef    `yaml:"tileset"`
	UnitDefs   []UnitDef             `yaml:"unit_defs"`
	Objects    []ObjectDef           `yaml:"objects"`
	Markers    map[string]geom.Vector2 `yaml:"markers"`
	Regions    map[string]geom.Rect  `yaml:"regions"`
	Placements []Placement           `yaml:"placements"`
	Objectives ObjectivesDef         `yaml:"objectives"`
	Settings   SettingsDef           `yaml:"settings"`
	Overrides  []TileOverride        `yaml:"overrides"`
}

// Result bundles everything Resolve produces: the battle-ready
// GameState, and the objective list the host wires into an
// objective.Evaluator (kept separate from GameState since objectives are
// owned by the objective package, not the core aggregate).
type Result struct {
	State      *state.GameState
	Objectives []*objective.Objective
}

// Resolve builds a battle-ready GameState from a Plan: composes the map
// layers via the tileset, applies tile overrides, materializes unit_defs
// into unit.Unit values, and resolves every placement into a concrete
// position exactly once (spec.md §6.3). It returns a CodeScenarioLoad
// error for any malformed reference (unknown tileset id, unknown marker/
// region/target name, width/height mismatch).
func Resolve(plan Plan) (Result, error) {
	m, err := composeMap(plan)
	if err != nil {
		return Result{}, err
	}

	bus := events.NewBus()
	gs := state.New(m, bus)

	byName := make(map[string]*unit.Unit, len(plan.UnitDefs))
	for _, def := range plan.UnitDefs {
		u, err := buildUnit(def)
		if err != nil {
			return Result{}, err
		}
		byName[def.Name] = u
	}

	positions, err := resolvePlacements(plan, m, byName)
	if err != nil {
		return Result{}, err
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		u := byName[name]
		pos, ok := positions[name]
		if !ok {
			return Result{}, errs.Newf(errs.CodeScenarioLoad, "unit %q has no placement", name)
		}
		mv := u.Movement()
		mv.Position = pos
		u.SetMovement(mv)
		if err := gs.Roster.Add(u); err != nil {
			return Result{}, errs.Wrap(err, "placing unit "+name)
		}
	}

	if err := events.ScenarioLoadedTopic.On(bus).Publish(context.Background(), events.ScenarioLoadedEvent{UnitCount: len(byName)}); err != nil {
		return Result{}, errs.Wrap(err, "publishing scenario_loaded")
	}

	objectives, err := buildObjectives(plan, byName)
	if err != nil {
		return Result{}, err
	}

	return Result{State: gs, Objectives: objectives}, nil
}

func composeMap(plan Plan) (*grid.Map, error) {
	if len(plan.MapLayers) == 0 {
		return nil, errs.New(errs.CodeScenarioLoad, "plan has no map_layers")
	}
	h := len(plan.MapLayers[0])
	if h == 0 {
		return nil, errs.New(errs.CodeScenarioLoad, "map layer has zero height")
	}
	w := len(plan.MapLayers[0][0])

	layers := make([]*grid.Layer, 0, len(plan.MapLayers))
	for _, raw := range plan.MapLayers {
		if len(raw) != h {
			return nil, errs.New(errs.CodeScenarioLoad, "map layers have mismatched heights")
		}
		layer := grid.NewLayer(w, h)
		for y, row := range raw {
			if len(row) != w {
				return nil, errs.New(errs.CodeScenarioLoad, "map layer row has mismatched width")
			}
			for x, tileID := range row {
				if tileID == 0 {
					continue
				}
				def, ok := plan.Tileset[tileID]
				if !ok {
					return nil, errs.Newf(errs.CodeScenarioLoad, "unknown tileset id %d", tileID)
				}
				layer.Paint(geom.Vector2{X: x, Y: y}, grid.Tile{
					TerrainID:      tileID,
					MovementCost:   def.MovementCost,
					DefenseBonus:   def.DefenseBonus,
					AvoidBonus:     def.AvoidBonus,
					BlocksVision:   def.BlocksVision,
					BlocksMovement: def.BlocksMovement,
				})
			}
		}
		layers = append(layers, layer)
	}

	m, err := grid.Compose(layers...)
	if err != nil {
		return nil, errs.Wrap(err, "composing map layers")
	}

	for _, ov := range plan.Overrides {
		def, ok := plan.Tileset[ov.TileID]
		if !ok {
			return nil, errs.Newf(errs.CodeScenarioLoad, "unknown tileset id %d in overrides", ov.TileID)
		}
		if err := m.SetTile(ov.At, grid.Tile{
			TerrainID:      ov.TileID,
			MovementCost:   def.MovementCost,
			DefenseBonus:   def.DefenseBonus,
			AvoidBonus:     def.AvoidBonus,
			BlocksVision:   def.BlocksVision,
			BlocksMovement: def.BlocksMovement,
		}); err != nil {
			return nil, errs.Wrap(err, "applying tile override")
		}
	}

	return m, nil
}

func buildUnit(def UnitDef) (*unit.Unit, error) {
	team, err := parseTeam(def.Team)
	if err != nil {
		return nil, err
	}
	strength := def.Strength
	defense := def.Defense
	if v, ok := def.StatOverrides["strength"]; ok {
		strength = v
	}
	if v, ok := def.StatOverrides["defense"]; ok {
		defense = v
	}
	u := unit.New(
		unit.Actor{Name: def.Name, Team: team, Class: def.Class},
		unit.Health{HPMax: def.HPMax, HPCurrent: def.HPMax},
		unit.Movement{MaxMovement: def.MaxMovement, MovementPoints: def.MaxMovement, Speed: def.MovementSpeed},
		unit.Combat{Strength: strength, Defense: defense, RangeMin: def.RangeMin, RangeMax: def.RangeMax},
	)
	return u, nil
}

func parseTeam(s string) (unit.Team, error) {
	switch s {
	case "player":
		return unit.TeamPlayer, nil
	case "enemy":
		return unit.TeamEnemy, nil
	case "neutral":
		return unit.TeamNeutral, nil
	default:
		return 0, errs.Newf(errs.CodeScenarioLoad, "unknown team %q", s)
	}
}

// resolvePlacements resolves every Placement into a concrete position,
// keyed by target name. Region placements consume tiles in the region's
// row-major scan order so resolution stays deterministic without relying
// on a random source (an Open Question decision recorded in DESIGN.md).
func resolvePlacements(plan Plan, m *grid.Map, byName map[string]*unit.Unit) (map[string]geom.Vector2, error) {
	occupied := make(map[geom.Vector2]bool)
	out := make(map[string]geom.Vector2, len(plan.Placements))

	regionCursor := make(map[string]int)

	for _, p := range plan.Placements {
		if _, ok := byName[p.TargetName]; !ok {
			return nil, errs.Newf(errs.CodeScenarioLoad, "placement references unknown unit %q", p.TargetName)
		}

		var pos geom.Vector2
		switch p.Kind {
		case PlacementAt:
			pos = p.At
		case PlacementAtMarker:
			mpos, ok := plan.Markers[p.Marker]
			if !ok {
				return nil, errs.Newf(errs.CodeScenarioLoad, "placement references unknown marker %q", p.Marker)
			}
			pos = mpos
		case PlacementAtRegion:
			region, ok := plan.Regions[p.Region]
			if !ok {
				return nil, errs.Newf(errs.CodeScenarioLoad, "placement references unknown region %q", p.Region)
			}
			tiles := region.Tiles()
			switch p.RegionPolicy {
			case PolicySpreadEvenly:
				idx := regionCursor[p.Region]
				regionCursor[p.Region] = idx + 1
				if idx >= len(tiles) {
					return nil, errs.Newf(errs.CodeScenarioLoad, "region %q has no tile left to spread to", p.Region)
				}
				pos = tiles[idx]
			default: // PolicyRandomFreeTile and unset both resolve to "first free tile"
				found := false
				for _, t := range tiles {
					if !occupied[t] && m.InBounds(t) {
						pos = t
						found = true
						break
					}
				}
				if !found {
					return nil, errs.Newf(errs.CodeScenarioLoad, "region %q has no free tile", p.Region)
				}
			}
		default:
			return nil, errs.Newf(errs.CodeScenarioLoad, "unknown placement kind %q", p.Kind)
		}

		if !m.InBounds(pos) {
			return nil, errs.Newf(errs.CodeScenarioLoad, "placement for %q resolves out of bounds: %s", p.TargetName, pos)
		}
		if occupied[pos] {
			return nil, errs.Newf(errs.CodeScenarioLoad, "placement for %q collides with an earlier placement at %s", p.TargetName, pos)
		}
		occupied[pos] = true
		out[p.TargetName] = pos
	}

	return out, nil
}

func buildObjectives(plan Plan, byName map[string]*unit.Unit) ([]*objective.Objective, error) {
	var out []*objective.Objective
	for _, pd := range plan.Objectives.Victory {
		o, err := buildObjective(pd, objective.BucketVictory, byName)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	for _, pd := range plan.Objectives.Defeat {
		o, err := buildObjective(pd, objective.BucketDefeat, byName)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func buildObjective(pd PredicateDef, bucket objective.Bucket, byName map[string]*unit.Unit) (*objective.Objective, error) {
	kind, err := parseKind(pd.Kind)
	if err != nil {
		return nil, err
	}

	o := &objective.Objective{
		Name:       pd.Name,
		Kind:       kind,
		Bucket:     bucket,
		Tile:       pd.Tile,
		TargetTick: pd.TargetTick,
	}
	if pd.UnitName != "" {
		u, ok := byName[pd.UnitName]
		if !ok {
			return nil, errs.Newf(errs.CodeScenarioLoad, "objective %q references unknown unit %q", pd.Name, pd.UnitName)
		}
		o.UnitID = u.ID()
	}
	return o, nil
}

func parseKind(s string) (objective.Kind, error) {
	switch s {
	case string(objective.KindDefeatAllEnemies):
		return objective.KindDefeatAllEnemies, nil
	case string(objective.KindSurviveTurns):
		return objective.KindSurviveTurns, nil
	case string(objective.KindReachPosition):
		return objective.KindReachPosition, nil
	case string(objective.KindDefeatUnit):
		return objective.KindDefeatUnit, nil
	case string(objective.KindPositionCaptured):
		return objective.KindPositionCaptured, nil
	case string(objective.KindAllUnitsDefeated):
		return objective.KindAllUnitsDefeated, nil
	case string(objective.KindProtectUnit):
		return objective.KindProtectUnit, nil
	case string(objective.KindTurnLimit):
		return objective.KindTurnLimit, nil
	default:
		return "", errs.Newf(errs.CodeScenarioLoad, "unknown objective kind %q", s)
	}
}
