package timeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfassina/grimdark/errs"
	"github.com/pfassina/grimdark/geom"
	"github.com/pfassina/grimdark/timeline"
	"github.com/pfassina/grimdark/unit"
)

func alwaysAlive(unit.ID) bool { return true }

func TestScheduleOrdersByTickThenSeq(t *testing.T) {
	s := timeline.NewScheduler(alwaysAlive)
	s.Schedule("b", 10)
	s.Schedule("a", 5)
	s.Schedule("c", 5)

	e, err := s.Pop()
	require.NoError(t, err)
	assert.Equal(t, unit.ID("a"), e.UnitID)

	e, err = s.Pop()
	require.NoError(t, err)
	assert.Equal(t, unit.ID("c"), e.UnitID)

	e, err = s.Pop()
	require.NoError(t, err)
	assert.Equal(t, unit.ID("b"), e.UnitID)
}

func TestPopOnEmptyReturnsError(t *testing.T) {
	s := timeline.NewScheduler(alwaysAlive)
	_, err := s.Pop()
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.CodeEmptyTimeline))
}

func TestRescheduleCancelsPriorEntry(t *testing.T) {
	s := timeline.NewScheduler(alwaysAlive)
	s.Schedule("a", 1)
	s.Reschedule("a", 20)
	s.Schedule("b", 5)

	e, err := s.Pop()
	require.NoError(t, err)
	assert.Equal(t, unit.ID("b"), e.UnitID)

	e, err = s.Pop()
	require.NoError(t, err)
	assert.Equal(t, unit.ID("a"), e.UnitID)
	assert.Equal(t, geom.Tick(20), e.ReadyTick)

	assert.True(t, s.Empty())
}

func TestCancelTombstonesEntry(t *testing.T) {
	s := timeline.NewScheduler(alwaysAlive)
	s.Schedule("a", 1)
	s.Schedule("b", 2)
	s.Cancel("a")

	e, err := s.Pop()
	require.NoError(t, err)
	assert.Equal(t, unit.ID("b"), e.UnitID)
	assert.True(t, s.Empty())
}

func TestPopSkipsDeadUnits(t *testing.T) {
	dead := map[unit.ID]bool{"a": true}
	s := timeline.NewScheduler(func(id unit.ID) bool { return !dead[id] })
	s.Schedule("a", 1)
	s.Schedule("b", 2)

	e, err := s.Pop()
	require.NoError(t, err)
	assert.Equal(t, unit.ID("b"), e.UnitID)
}

func TestPreviewDoesNotMutate(t *testing.T) {
	s := timeline.NewScheduler(alwaysAlive)
	s.Schedule("a", 1)
	s.Schedule("b", 2)
	s.Schedule("c", 3)

	preview := s.Preview(2)
	require.Len(t, preview, 2)
	assert.Equal(t, unit.ID("a"), preview[0].UnitID)
	assert.Equal(t, unit.ID("b"), preview[1].UnitID)

	assert.Equal(t, 3, s.Len())
	e, err := s.Pop()
	require.NoError(t, err)
	assert.Equal(t, unit.ID("a"), e.UnitID)
}
