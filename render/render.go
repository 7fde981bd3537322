// Package render implements the pull-mode render-context snapshot: a
// pure function from the live simulation state to a flat, renderer-owned
// data structure. Rendering never subscribes to the event bus and never
// mutates GameState (spec.md §6.2).
package render

import (
	"sort"

	"github.com/pfassina/grimdark/combat"
	"github.com/pfassina/grimdark/geom"
	"github.com/pfassina/grimdark/manager"
	"github.com/pfassina/grimdark/state"
	"github.com/pfassina/grimdark/unit"
)

// Camera is the renderer's current viewport in tile coordinates.
type Camera struct {
	X, Y, W, H int
}

// TileView is one visible cell's renderer-facing terrain description.
type TileView struct {
	X, Y          int
	TerrainID     uint16
	OverlayFlags  uint32
}

// UnitView is one visible unit's renderer-facing summary. MoraleState and
// WoundCount are pointers so their absence (no Morale/WoundList
// component) is distinguishable from a zero value.
type UnitView struct {
	ID         string
	X, Y       int
	Team       unit.Team
	Class      string
	HPCurrent  int
	HPMax      int
	IsSelected bool
	MoraleState *string
	WoundCount  *int
}

// OverlayKind is the closed set of tile-highlight kinds a renderer draws.
type OverlayKind string

const (
	// OverlayMovementRange marks a tile reachable by the active unit.
	OverlayMovementRange OverlayKind = "movement_range"
	// OverlayAttackRange marks a tile in the active unit's attack range.
	OverlayAttackRange OverlayKind = "attack_range"
	// OverlayDangerZone marks a tile threatened by an enemy.
	OverlayDangerZone OverlayKind = "danger_zone"
	// OverlayCursor marks the player's current cursor tile.
	OverlayCursor OverlayKind = "cursor"
)

// Overlay is one highlighted tile with an optional owning team.
type Overlay struct {
	Kind OverlayKind
	X, Y int
	Team *unit.Team
}

// MenuItem is one selectable row in a Menu.
type MenuItem struct {
	Label     string
	Enabled   bool
	Shortcut  *string
}

// Menu is one renderer-facing menu panel.
type Menu struct {
	Title      string
	Items      []MenuItem
	SelectedIdx int
}

// Text is one free-floating label the renderer draws, anchored at a
// renderer-defined point and tagged with a style the renderer interprets
// (spec.md §6.2: "the renderer ... owns all visual decisions").
type Text struct {
	Anchor   string
	Text     string
	StyleTag string
}

// Visibility is the closed set of hidden-intent disclosure levels a
// timeline preview entry may carry (spec.md §9 Open Question, resolved
// in DESIGN.md).
type Visibility string

const (
	// VisibilityFull discloses the unit's name. BuildContext leaves
	// ActionIcon empty at every level.
	VisibilityFull Visibility = "full"
	// VisibilityPartial discloses only that a unit is due to act.
	VisibilityPartial Visibility = "partial"
	// VisibilityHidden discloses nothing about this entry.
	VisibilityHidden Visibility = "hidden"
)

// TimelinePreviewEntry is one upcoming activation slot as shown to the
// player.
type TimelinePreviewEntry struct {
	UnitName     string
	ActionIcon   string
	ReadyInTicks geom.Tick
	Visibility   Visibility
}

// Forecast is the optional attacker/defender damage preview shown while
// targeting.
type Forecast struct {
	Attacker string
	Defender string
	DamageMin int
	DamageMax int
	Counter  *combat.Forecast
}

// Context is the complete renderer-facing snapshot for one frame
// (spec.md §6.2's RenderContext).
type Context struct {
	Camera          Camera
	Tiles           []TileView
	Units           []UnitView
	Overlays        []Overlay
	Menus           []Menu
	Texts           []Text
	TimelinePreview []TimelinePreviewEntry
	Forecast        *Forecast
}

// Input bundles the GameState plus the transient UI managers a frame may
// need to fully populate overlays and the forecast panel. Selection and
// Combat are optional: a renderer between activations (no unit selected)
// passes a zero Input beyond State.
type Input struct {
	State     *state.GameState
	Selection *manager.SelectionManager
	Combat    *manager.CombatManager
	Camera    Camera
	ActiveUnitID unit.ID
	PreviewDepth int
}

// BuildContext snapshots Input into a Context. It is a pure read: nothing
// reachable from Input is mutated, and calling it twice against the same
// state yields byte-identical output (spec.md §8 property #8).
func BuildContext(in Input) Context {
	ctx := Context{
		Camera: in.Camera,
		Tiles:  buildTiles(in),
		Units:  buildUnits(in),
	}
	ctx.Overlays = buildOverlays(in)
	ctx.TimelinePreview = buildTimelinePreview(in)
	ctx.Forecast = buildForecast(in)
	return ctx
}

func buildTiles(in Input) []TileView {
	m := in.State.Map
	out := make([]TileView, 0, m.W*m.H)
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			tile, err := m.Tile(geom.Vector2{X: x, Y: y})
			if err != nil {
				continue
			}
			var flags uint32
			if tile.BlocksVision {
				flags |= 1
			}
			if tile.Impassable() {
				flags |= 2
			}
			out = append(out, TileView{X: x, Y: y, TerrainID: tile.TerrainID, OverlayFlags: flags})
		}
	}
	return out
}

func buildUnits(in Input) []UnitView {
	units := in.State.Roster.All()
	sort.Slice(units, func(i, j int) bool { return units[i].ID() < units[j].ID() })

	out := make([]UnitView, 0, len(units))
	for _, u := range units {
		actor := u.Actor()
		hp := u.Health()
		pos := u.Position()
		view := UnitView{
			ID:         string(u.ID()),
			X:          pos.X,
			Y:          pos.Y,
			Team:       actor.Team,
			Class:      actor.Class,
			HPCurrent:  hp.HPCurrent,
			HPMax:      hp.HPMax,
			IsSelected: u.ID() == in.ActiveUnitID,
		}
		if m, ok := u.Morale(); ok {
			s := string(m.State)
			view.MoraleState = &s
		}
		if w, ok := u.Wounds(); ok {
			n := len(w.Wounds)
			view.WoundCount = &n
		}
		out = append(out, view)
	}
	return out
}

func buildOverlays(in Input) []Overlay {
	var out []Overlay
	if in.Selection == nil {
		return out
	}
	for tile := range in.Selection.Reachable() {
		out = append(out, Overlay{Kind: OverlayMovementRange, X: tile.X, Y: tile.Y})
	}
	cursor := in.Selection.Cursor()
	out = append(out, Overlay{Kind: OverlayCursor, X: cursor.X, Y: cursor.Y})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

func buildTimelinePreview(in Input) []TimelinePreviewEntry {
	depth := in.PreviewDepth
	if depth <= 0 {
		depth = 5
	}
	entries := in.State.Timeline.Preview(depth)
	out := make([]TimelinePreviewEntry, 0, len(entries))
	for _, e := range entries {
		u, ok := in.State.Roster.Get(e.UnitID)
		if !ok {
			continue
		}
		name := u.Actor().Name
		visibility := VisibilityFull
		if u.Actor().Team == unit.TeamEnemy {
			visibility = VisibilityPartial
			name = ""
		}
		out = append(out, TimelinePreviewEntry{
			UnitName:     name,
			ReadyInTicks: e.ReadyTick - in.State.Now(),
			Visibility:   visibility,
		})
	}
	return out
}

func buildForecast(in Input) *Forecast {
	if in.Combat == nil || in.Selection == nil {
		return nil
	}
	actor, ok := in.State.Roster.Get(in.ActiveUnitID)
	if !ok {
		return nil
	}
	target := in.Combat.Current()
	if target == nil {
		return nil
	}
	f, ok := in.Combat.Forecast(actor, combat.MultiplierStandard, true)
	if !ok {
		return nil
	}
	var counter *combat.Forecast
	if f.CounterForecast != nil {
		counter = f.CounterForecast
	}
	return &Forecast{
		Attacker:  string(actor.ID()),
		Defender:  string(target.ID()),
		DamageMin: f.DamageMin,
		DamageMax: f.DamageMax,
		Counter:   counter,
	}
}
