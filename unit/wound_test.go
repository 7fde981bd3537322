package unit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfassina/grimdark/dice"
	"github.com/pfassina/grimdark/unit"
)

func TestWoundFactoryDeterministicBodyPart(t *testing.T) {
	roller := dice.NewDeterministicRoller(dice.Seed("atk", "def", 1, 1))
	f := unit.NewWoundFactory(roller)

	w, err := f.Create(15, 20)
	require.NoError(t, err)
	assert.Contains(t, []string{"torso", "arm", "leg", "head"}, w.BodyPart)

	again, err := unit.NewWoundFactory(dice.NewDeterministicRoller(dice.Seed("atk", "def", 1, 1))).Create(15, 20)
	require.NoError(t, err)
	assert.Equal(t, w.BodyPart, again.BodyPart)
}

func TestWoundFactorySeverityByRatio(t *testing.T) {
	roller := dice.NewDeterministicRoller(1)
	f := unit.NewWoundFactory(roller)

	minor, err := f.Create(1, 20)
	require.NoError(t, err)
	assert.Equal(t, unit.SeverityMinor, minor.Severity)

	mortal, err := f.Create(15, 20)
	require.NoError(t, err)
	assert.Equal(t, unit.SeverityMortal, mortal.Severity)
	assert.True(t, mortal.Permanent)
}
