package temporal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobilitydb/meos-go/basetype"
	"github.com/mobilitydb/meos-go/temporal"
)

func TestInstantBBoxIsNumeric(t *testing.T) {
	i, err := temporal.MakeInstant(basetype.Int4, int32(5), at(t, "2001-01-01T00:00:00"))
	require.NoError(t, err)
	bbox := i.BBox()
	require.NotNil(t, bbox)
	assert.Equal(t, temporal.Numeric, bbox.Kind)
	assert.Equal(t, int32(5), bbox.ValueSpan.Lower)
}

func TestSequenceBBoxExpandsAcrossInstants(t *testing.T) {
	s := seq(t)
	bbox := s.BBox()
	require.NotNil(t, bbox)
	assert.Equal(t, int32(1), bbox.ValueSpan.Lower)
	assert.Equal(t, int32(3), bbox.ValueSpan.Upper)
}

func TestBBoxPeriodReflectsTimeExtent(t *testing.T) {
	s := seq(t)
	bbox := s.BBox()
	period := bbox.Period()
	require.NotNil(t, period)
	assert.Equal(t, s.StartTime(), period.Lower)
	assert.Equal(t, s.EndTime(), period.Upper)
}
