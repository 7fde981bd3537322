package geom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pfassina/grimdark/geom"
)

func TestVector2Arithmetic(t *testing.T) {
	a := geom.Vector2{X: 1, Y: 2}
	b := geom.Vector2{X: 3, Y: -1}

	assert.Equal(t, geom.Vector2{X: 4, Y: 1}, a.Add(b))
	assert.False(t, a.Equals(b))
	assert.True(t, a.Equals(geom.Vector2{X: 1, Y: 2}))
}

func TestDistances(t *testing.T) {
	a := geom.Vector2{X: 0, Y: 0}
	b := geom.Vector2{X: 3, Y: 4}

	assert.Equal(t, 7, a.ManhattanDistance(b))
	assert.Equal(t, 4, a.ChebyshevDistance(b))
}

func TestWeightValid(t *testing.T) {
	assert.True(t, geom.Weight(60).Valid())
	assert.True(t, geom.Weight(1000).Valid())
	assert.False(t, geom.Weight(0).Valid())
	assert.False(t, geom.Weight(1001).Valid())
}
