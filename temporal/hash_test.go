package temporal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobilitydb/meos-go/basetype"
	"github.com/mobilitydb/meos-go/temporal"
)

func TestHashIsStableForEqualValues(t *testing.T) {
	a, err := temporal.MakeInstant(basetype.Int4, int32(5), at(t, "2001-01-01T00:00:00"))
	require.NoError(t, err)
	b, err := temporal.MakeInstant(basetype.Int4, int32(5), at(t, "2001-01-01T00:00:00"))
	require.NoError(t, err)
	assert.Equal(t, a.Hash(), b.Hash())
}

func TestHashDiffersForDifferentValues(t *testing.T) {
	a, err := temporal.MakeInstant(basetype.Int4, int32(5), at(t, "2001-01-01T00:00:00"))
	require.NoError(t, err)
	b, err := temporal.MakeInstant(basetype.Int4, int32(6), at(t, "2001-01-01T00:00:00"))
	require.NoError(t, err)
	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestHashDiffersAcrossSubtypes(t *testing.T) {
	i, err := temporal.MakeInstant(basetype.Int4, int32(5), at(t, "2001-01-01T00:00:00"))
	require.NoError(t, err)
	s, err := temporal.MakeSequence(basetype.Int4, []temporal.Inst{
		inst(t, "2001-01-01T00:00:00", int32(5)),
	}, true, true, temporal.DiscreteInterp, false)
	require.NoError(t, err)
	assert.NotEqual(t, i.Hash(), s.Hash())
}
