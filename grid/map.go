// Package grid provides the rectangular tile map substrate: terrain
// properties, movement cost, and the layered-authoring composition spec.md
// §3.2 describes (ground + walls + features collapsed into one effective
// tile per cell before runtime).
package grid

import (
	"github.com/pfassina/grimdark/errs"
	"github.com/pfassina/grimdark/geom"
)

// Tile describes one cell's terrain properties.
type Tile struct {
	TerrainID      uint16
	MovementCost   int // 0 means impassable (infinite cost)
	DefenseBonus   int
	AvoidBonus     int // 0..100
	BlocksVision   bool
	BlocksMovement bool
}

// Impassable reports whether the tile cannot be entered by ground
// movement, either because its movement cost is the zero/infinite
// sentinel or because it's explicitly flagged as blocking.
func (t Tile) Impassable() bool {
	return t.MovementCost <= 0 || t.BlocksMovement
}

// Map is a rectangular W×H grid of effective tiles, addressed in row-major
// order. Every coordinate in use must satisfy 0 ≤ x < W ∧ 0 ≤ y < H
// (spec.md §3.2 invariant).
type Map struct {
	W, H  int
	tiles []Tile
}

// NewMap creates a W×H map filled with the given default tile.
func NewMap(w, h int, fill Tile) *Map {
	tiles := make([]Tile, w*h)
	for i := range tiles {
		tiles[i] = fill
	}
	return &Map{W: w, H: h, tiles: tiles}
}

// InBounds reports whether pos falls within the map.
func (m *Map) InBounds(pos geom.Vector2) bool {
	return pos.X >= 0 && pos.X < m.W && pos.Y >= 0 && pos.Y < m.H
}

// Tile returns the effective tile at pos, or an InvariantViolation error if
// pos is out of bounds.
func (m *Map) Tile(pos geom.Vector2) (Tile, error) {
	if !m.InBounds(pos) {
		return Tile{}, errs.New(errs.CodeInvariantViolation, "position out of map bounds",
			errs.WithMeta("x", pos.X), errs.WithMeta("y", pos.Y))
	}
	return m.tiles[pos.Y*m.W+pos.X], nil
}

// SetTile overwrites the tile at pos. Returns an InvariantViolation error
// if pos is out of bounds.
func (m *Map) SetTile(pos geom.Vector2, tile Tile) error {
	if !m.InBounds(pos) {
		return errs.New(errs.CodeInvariantViolation, "position out of map bounds",
			errs.WithMeta("x", pos.X), errs.WithMeta("y", pos.Y))
	}
	m.tiles[pos.Y*m.W+pos.X] = tile
	return nil
}

// Layer is one authored stratum of a map — ground, walls, or features —
// addressed the same way as Map. A zero-value TerrainID in a layer means
// "no contribution at this cell"; only non-zero cells override lower
// layers (spec.md §3.2's "higher layers override lower non-zero values").
type Layer struct {
	W, H  int
	tiles []Tile
}

// NewLayer creates a blank W×H authoring layer.
func NewLayer(w, h int) *Layer {
	return &Layer{W: w, H: h, tiles: make([]Tile, w*h)}
}

// Paint sets a cell's contribution on this layer.
func (l *Layer) Paint(pos geom.Vector2, tile Tile) {
	if pos.X < 0 || pos.X >= l.W || pos.Y < 0 || pos.Y >= l.H {
		return
	}
	l.tiles[pos.Y*l.W+pos.X] = tile
}

// Compose collapses ordered layers (lowest first) into a single effective
// Map, the way the scenario loader composes ground+walls+features before
// runtime (spec.md §3.2).
func Compose(layers ...*Layer) (*Map, error) {
	if len(layers) == 0 {
		return nil, errs.New(errs.CodeScenarioLoad, "compose requires at least one layer")
	}
	w, h := layers[0].W, layers[0].H
	for _, l := range layers {
		if l.W != w || l.H != h {
			return nil, errs.New(errs.CodeScenarioLoad, "layer dimensions mismatch")
		}
	}

	out := NewMap(w, h, Tile{})
	for _, l := range layers {
		for i, t := range l.tiles {
			if t.TerrainID == 0 {
				continue
			}
			out.tiles[i] = t
		}
	}
	return out, nil
}
