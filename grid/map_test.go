package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfassina/grimdark/geom"
	"github.com/pfassina/grimdark/grid"
)

func TestMapBoundsAndTile(t *testing.T) {
	m := grid.NewMap(5, 5, grid.Tile{TerrainID: 1, MovementCost: 1})

	assert.True(t, m.InBounds(geom.Vector2{X: 4, Y: 4}))
	assert.False(t, m.InBounds(geom.Vector2{X: 5, Y: 0}))
	assert.False(t, m.InBounds(geom.Vector2{X: -1, Y: 0}))

	_, err := m.Tile(geom.Vector2{X: 10, Y: 10})
	assert.Error(t, err)

	tile, err := m.Tile(geom.Vector2{X: 1, Y: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, tile.MovementCost)
}

func TestTileImpassable(t *testing.T) {
	assert.True(t, grid.Tile{MovementCost: 0}.Impassable())
	assert.True(t, grid.Tile{MovementCost: 1, BlocksMovement: true}.Impassable())
	assert.False(t, grid.Tile{MovementCost: 1}.Impassable())
}

func TestComposeLayersOverrideNonZero(t *testing.T) {
	ground := grid.NewLayer(3, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			ground.Paint(geom.Vector2{X: x, Y: y}, grid.Tile{TerrainID: 1, MovementCost: 1})
		}
	}

	walls := grid.NewLayer(3, 3)
	walls.Paint(geom.Vector2{X: 1, Y: 1}, grid.Tile{TerrainID: 2, MovementCost: 0, BlocksMovement: true})

	m, err := grid.Compose(ground, walls)
	require.NoError(t, err)

	wallTile, err := m.Tile(geom.Vector2{X: 1, Y: 1})
	require.NoError(t, err)
	assert.True(t, wallTile.Impassable())

	groundTile, err := m.Tile(geom.Vector2{X: 0, Y: 0})
	require.NoError(t, err)
	assert.False(t, groundTile.Impassable())
}

func TestComposeRejectsMismatchedDimensions(t *testing.T) {
	a := grid.NewLayer(3, 3)
	b := grid.NewLayer(4, 4)
	_, err := grid.Compose(a, b)
	assert.Error(t, err)
}

func TestComposeRequiresLayers(t *testing.T) {
	_, err := grid.Compose()
	assert.Error(t, err)
}
