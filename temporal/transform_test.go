package temporal_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobilitydb/meos-go/basetype"
	"github.com/mobilitydb/meos-go/spantime"
	"github.com/mobilitydb/meos-go/temporal"
)

func linearSeq(t *testing.T) *temporal.Temporal {
	instants := []temporal.Inst{
		inst(t, "2001-01-01T00:00:00", 0.0),
		inst(t, "2001-01-01T02:00:00", 10.0),
	}
	s, err := temporal.MakeSequence(basetype.Float8, instants, true, true, temporal.Linear, false)
	require.NoError(t, err)
	return s
}

func TestValueAtInstantMatchExact(t *testing.T) {
	i, err := temporal.MakeInstant(basetype.Int4, int32(7), at(t, "2001-01-01T00:00:00"))
	require.NoError(t, err)
	v, ok, err := i.ValueAt(at(t, "2001-01-01T00:00:00"), true, spantime.DefaultTime)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int32(7), v)

	_, ok, err = i.ValueAt(at(t, "2001-01-01T01:00:00"), true, spantime.DefaultTime)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValueAtStepReturnsLowerEndpoint(t *testing.T) {
	s := seq(t)
	v, ok, err := s.ValueAt(at(t, "2001-01-01T00:30:00"), true, spantime.DefaultTime)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int32(1), v)
}

func TestValueAtLinearInterpolates(t *testing.T) {
	s := linearSeq(t)
	v, ok, err := s.ValueAt(at(t, "2001-01-01T01:00:00"), true, spantime.DefaultTime)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 5.0, v)
}

func TestValueAtOutsideBoundsNoMatch(t *testing.T) {
	s := seq(t)
	_, ok, err := s.ValueAt(at(t, "2001-01-01T10:00:00"), true, spantime.DefaultTime)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestShiftTimePreservesValuesMovesTimestamps(t *testing.T) {
	s := seq(t)
	shifted, err := s.ShiftTime(time.Hour, spantime.DefaultTime)
	require.NoError(t, err)
	assert.True(t, shifted.StartTime().Equal(s.StartTime().Add(time.Hour)))
	assert.Equal(t, s.MinValue(), shifted.MinValue())
}

func TestScaleTimeRescalesDuration(t *testing.T) {
	s := seq(t)
	scaled, err := s.ScaleTime(time.Hour, spantime.DefaultTime)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, scaled.Duration())
}

func TestShiftValueRequiresNumeric(t *testing.T) {
	instants := []temporal.Inst{
		inst(t, "2001-01-01T00:00:00", "a"),
		inst(t, "2001-01-01T01:00:00", "b"),
	}
	s, err := temporal.MakeSequence(basetype.Text, instants, true, true, temporal.DiscreteInterp, false)
	require.NoError(t, err)
	_, err = s.ShiftValue(int32(1), spantime.DefaultTime)
	assert.Error(t, err)
}

func TestShiftValueAddsDelta(t *testing.T) {
	s := seq(t)
	shifted, err := s.ShiftValue(int32(10), spantime.DefaultTime)
	require.NoError(t, err)
	assert.Equal(t, int32(11), shifted.MinValue())
	assert.Equal(t, int32(13), shifted.MaxValue())
}
