package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pfassina/grimdark/dice"
	mock_dice "github.com/pfassina/grimdark/dice/mock"
)

func TestDeterministicRollerBounds(t *testing.T) {
	r := dice.NewDeterministicRoller(42)
	for i := 0; i < 100; i++ {
		v, err := r.Roll(6)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 6)
	}
}

func TestDeterministicRollerReproducible(t *testing.T) {
	seed := dice.Seed("attacker-1", "defender-2", 500, 17)

	a := dice.NewDeterministicRoller(seed)
	b := dice.NewDeterministicRoller(seed)

	rollsA, err := a.RollN(5, 20)
	require.NoError(t, err)
	rollsB, err := b.RollN(5, 20)
	require.NoError(t, err)

	assert.Equal(t, rollsA, rollsB)
}

func TestDeterministicRollerRejectsBadSize(t *testing.T) {
	r := dice.NewDeterministicRoller(1)
	_, err := r.Roll(0)
	assert.Error(t, err)
}

func TestMockRollerSatisfiesInterface(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRoller := mock_dice.NewMockRoller(ctrl)
	mockRoller.EXPECT().RollN(2, 6).Return([]int{3, 5}, nil)

	var roller dice.Roller = mockRoller
	rolls, err := roller.RollN(2, 6)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 5}, rolls)
}
