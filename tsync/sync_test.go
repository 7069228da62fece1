package tsync_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobilitydb/meos-go/basetype"
	"github.com/mobilitydb/meos-go/spantime"
	"github.com/mobilitydb/meos-go/temporal"
	"github.com/mobilitydb/meos-go/tsync"
)

func parseTime(t *testing.T, s string) time.Time {
	tm, err := time.Parse("2006-01-02T15:04:05", s)
	require.NoError(t, err)
	return tm
}

func makeSeq(t *testing.T, interp temporal.Interp, pairs ...interface{}) *temporal.Temporal {
	require.Equal(t, 0, len(pairs)%2)
	instants := make([]temporal.Inst, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		instants = append(instants, temporal.Inst{Value: pairs[i], T: parseTime(t, pairs[i+1].(string))})
	}
	s, err := temporal.MakeSequence(basetype.Float8, instants, true, true, interp, false)
	require.NoError(t, err)
	return s
}

func TestSynchronizeProducesSharedTimeDomain(t *testing.T) {
	a := makeSeq(t, temporal.Linear,
		0.0, "2001-01-01T00:00:00",
		10.0, "2001-01-01T02:00:00")
	b := makeSeq(t, temporal.Linear,
		5.0, "2001-01-01T01:00:00",
		5.0, "2001-01-01T03:00:00")

	ra, rb, err := tsync.Synchronize(a, b, false, spantime.DefaultTime)
	require.NoError(t, err)
	require.NotNil(t, ra)
	require.NotNil(t, rb)
	assert.Equal(t, ra.N(), rb.N())
	assert.True(t, ra.StartTime().Equal(rb.StartTime()))
	assert.True(t, ra.EndTime().Equal(rb.EndTime()))
}

func TestSynchronizeNoOverlapReturnsNil(t *testing.T) {
	a := makeSeq(t, temporal.Linear, 0.0, "2001-01-01T00:00:00", 1.0, "2001-01-01T01:00:00")
	b := makeSeq(t, temporal.Linear, 0.0, "2002-01-01T00:00:00", 1.0, "2002-01-01T01:00:00")

	ra, rb, err := tsync.Synchronize(a, b, false, spantime.DefaultTime)
	require.NoError(t, err)
	assert.Nil(t, ra)
	assert.Nil(t, rb)
}

func TestSynchronizeInsertsCrossings(t *testing.T) {
	a := makeSeq(t, temporal.Linear, 0.0, "2001-01-01T00:00:00", 10.0, "2001-01-01T02:00:00")
	b := makeSeq(t, temporal.Linear, 10.0, "2001-01-01T00:00:00", 0.0, "2001-01-01T02:00:00")

	ra, rb, err := tsync.Synchronize(a, b, true, spantime.DefaultTime)
	require.NoError(t, err)
	require.NotNil(t, ra)
	assert.True(t, ra.N() >= 3, "the two crossing lines should gain a synchronized midpoint instant")
	assert.Equal(t, ra.N(), rb.N())
}

func TestIntersectOnTimeOnlySharedInstants(t *testing.T) {
	a := makeSeq(t, temporal.Step,
		0.0, "2001-01-01T00:00:00",
		1.0, "2001-01-01T01:00:00",
		2.0, "2001-01-01T02:00:00")
	b := makeSeq(t, temporal.Step,
		9.0, "2001-01-01T00:30:00",
		8.0, "2001-01-01T01:00:00")

	ra, rb, err := tsync.IntersectOnTime(a, b, spantime.DefaultTime)
	require.NoError(t, err)
	require.NotNil(t, ra)
	assert.Equal(t, 1, ra.N(), "only the shared 01:00 timestamp should survive")
	assert.Equal(t, ra.N(), rb.N())
}

func TestSegmentValueAtTimeClampsToEndpoints(t *testing.T) {
	reg := basetype.Default()
	vt, err := reg.Lookup(basetype.Float8)
	require.NoError(t, err)
	a := temporal.Inst{Value: 0.0, T: parseTime(t, "2001-01-01T00:00:00")}
	b := temporal.Inst{Value: 10.0, T: parseTime(t, "2001-01-01T02:00:00")}

	before, err := tsync.SegmentValueAtTime(vt, a, b, temporal.Linear, parseTime(t, "2000-01-01T00:00:00"), spantime.DefaultTime)
	require.NoError(t, err)
	assert.Equal(t, 0.0, before)

	mid, err := tsync.SegmentValueAtTime(vt, a, b, temporal.Linear, parseTime(t, "2001-01-01T01:00:00"), spantime.DefaultTime)
	require.NoError(t, err)
	assert.Equal(t, 5.0, mid)
}
