package manager_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfassina/grimdark/events"
	"github.com/pfassina/grimdark/geom"
	"github.com/pfassina/grimdark/manager"
	"github.com/pfassina/grimdark/unit"
)

func TestMoraleManagerRoutesAlliesOnDefeat(t *testing.T) {
	gs := newTestState(t)
	dying := addUnit(t, gs, geom.Vector2{X: 0, Y: 0}, unit.TeamPlayer)
	ally := addUnit(t, gs, geom.Vector2{X: 1, Y: 1}, unit.TeamPlayer)

	manager.NewMoraleManager(gs)

	var routed bool
	events.UnitRoutedTopic.On(gs.Bus).Subscribe(0, func(_ context.Context, evt events.UnitRoutedEvent) error {
		if evt.UnitID == string(ally.ID()) {
			routed = true
		}
		return nil
	})

	for i := 0; i < 10; i++ {
		require.NoError(t, events.UnitDefeatedTopic.On(gs.Bus).Publish(context.Background(), events.UnitDefeatedEvent{UnitID: string(dying.ID())}))
	}

	m, ok := ally.Morale()
	require.True(t, ok)
	assert.Equal(t, 0, m.Value)
	assert.Equal(t, unit.MoraleRouted, m.State)
	assert.True(t, routed)
}

func TestMoraleManagerDamagePenaltyShakesUnit(t *testing.T) {
	gs := newTestState(t)
	victim := addUnit(t, gs, geom.Vector2{X: 0, Y: 0}, unit.TeamPlayer)
	manager.NewMoraleManager(gs)

	require.NoError(t, events.UnitTookDamageTopic.On(gs.Bus).Publish(context.Background(), events.UnitTookDamageEvent{
		UnitID: string(victim.ID()),
		Amount: 300,
	}))

	m, ok := victim.Morale()
	require.True(t, ok)
	assert.NotEqual(t, unit.MoraleNormal, m.State)
}
