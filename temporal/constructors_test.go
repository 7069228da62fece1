package temporal_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobilitydb/meos-go/basetype"
	"github.com/mobilitydb/meos-go/temporal"
)

func at(t *testing.T, s string) time.Time {
	tm, err := time.Parse("2006-01-02T15:04:05", s)
	require.NoError(t, err)
	return tm
}

func inst(t *testing.T, ts string, v basetype.Value) temporal.Inst {
	return temporal.Inst{Value: v, T: at(t, ts)}
}

func TestMakeInstant(t *testing.T) {
	tv, err := temporal.MakeInstant(basetype.Int4, int32(5), at(t, "2001-01-01T00:00:00"))
	require.NoError(t, err)
	assert.Equal(t, temporal.Instant, tv.Subtype)
	assert.Equal(t, 1, tv.N())
}

func TestMakeSequenceDiscrete(t *testing.T) {
	instants := []temporal.Inst{
		inst(t, "2001-01-01T00:00:00", int32(1)),
		inst(t, "2001-01-01T01:00:00", int32(2)),
		inst(t, "2001-01-01T02:00:00", int32(3)),
	}
	seq, err := temporal.MakeSequence(basetype.Int4, instants, true, true, temporal.DiscreteInterp, true)
	require.NoError(t, err)
	assert.Equal(t, temporal.DiscreteSeq, seq.Subtype)
	assert.Equal(t, 3, seq.N())
}

func TestMakeSequenceRejectsNonIncreasingTimestamps(t *testing.T) {
	instants := []temporal.Inst{
		inst(t, "2001-01-01T01:00:00", int32(1)),
		inst(t, "2001-01-01T00:00:00", int32(2)),
	}
	_, err := temporal.MakeSequence(basetype.Int4, instants, true, true, temporal.Step, true)
	assert.Error(t, err)
}

func TestMakeSequenceStepNormalizesRedundantInstant(t *testing.T) {
	instants := []temporal.Inst{
		inst(t, "2001-01-01T00:00:00", int32(1)),
		inst(t, "2001-01-01T01:00:00", int32(1)),
		inst(t, "2001-01-01T02:00:00", int32(2)),
	}
	seq, err := temporal.MakeSequence(basetype.Int4, instants, true, true, temporal.Step, true)
	require.NoError(t, err)
	assert.Equal(t, 2, seq.N(), "the middle instant repeats the step value and should be dropped")
}

func TestMakeSequenceLinearDropsCollinearInstant(t *testing.T) {
	instants := []temporal.Inst{
		inst(t, "2001-01-01T00:00:00", 0.0),
		inst(t, "2001-01-01T01:00:00", 1.0),
		inst(t, "2001-01-01T02:00:00", 2.0),
	}
	seq, err := temporal.MakeSequence(basetype.Float8, instants, true, true, temporal.Linear, true)
	require.NoError(t, err)
	assert.Equal(t, 2, seq.N(), "a linearly-interpolated midpoint is redundant")
}

func TestMakeSequenceLinearRequiresContinuousBaseType(t *testing.T) {
	instants := []temporal.Inst{
		inst(t, "2001-01-01T00:00:00", "a"),
		inst(t, "2001-01-01T01:00:00", "b"),
	}
	_, err := temporal.MakeSequence(basetype.Text, instants, true, true, temporal.Linear, true)
	assert.Error(t, err)
}

func TestMakeSequenceSetJoinsTouchingSequences(t *testing.T) {
	seqA, err := temporal.MakeSequence(basetype.Int4, []temporal.Inst{
		inst(t, "2001-01-01T00:00:00", int32(1)),
		inst(t, "2001-01-01T01:00:00", int32(2)),
	}, true, true, temporal.Step, true)
	require.NoError(t, err)
	seqB, err := temporal.MakeSequence(basetype.Int4, []temporal.Inst{
		inst(t, "2001-01-01T01:00:00", int32(2)),
		inst(t, "2001-01-01T02:00:00", int32(3)),
	}, false, true, temporal.Step, true)
	require.NoError(t, err)

	set, err := temporal.MakeSequenceSet([]*temporal.Temporal{seqA, seqB}, true)
	require.NoError(t, err)
	assert.Equal(t, temporal.SeqSet, set.Subtype)
	assert.Equal(t, 1, set.SequenceN(), "touching sequences with matching boundary values should join into one")
}

func TestMakeSequenceSetWithGapsCutsOnInterval(t *testing.T) {
	instants := []temporal.Inst{
		inst(t, "2001-01-01T00:00:00", int32(1)),
		inst(t, "2001-01-01T00:10:00", int32(2)),
		inst(t, "2001-01-01T05:00:00", int32(3)),
	}
	maxInterval := time.Hour
	set, err := temporal.MakeSequenceSetWithGaps(basetype.Int4, instants, temporal.Step, &maxInterval, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, set.SequenceN())
}
