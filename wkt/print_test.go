package wkt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobilitydb/meos-go/basetype"
	"github.com/mobilitydb/meos-go/wkt"
)

func TestPrintInstantRoundTrip(t *testing.T) {
	const lit = "5@2001-01-01T00:00:00"
	tv, err := wkt.Parse(lit, basetype.Int4, nil, nil)
	require.NoError(t, err)
	s, err := wkt.Print(tv, nil)
	require.NoError(t, err)

	back, err := wkt.Parse(s, basetype.Int4, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, tv.Hash(), back.Hash())
}

func TestPrintContinuousSequenceRoundTrip(t *testing.T) {
	const lit = "[1@2001-01-01T00:00:00,2@2001-01-01T01:00:00)"
	tv, err := wkt.Parse(lit, basetype.Float8, nil, nil)
	require.NoError(t, err)
	s, err := wkt.Print(tv, nil)
	require.NoError(t, err)

	back, err := wkt.Parse(s, basetype.Float8, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, tv.Hash(), back.Hash())
	lowerInc, upperInc := back.Bounds()
	assert.True(t, lowerInc)
	assert.False(t, upperInc)
}

func TestPrintSequenceSetRoundTrip(t *testing.T) {
	const lit = "{[1@2001-01-01T00:00:00,2@2001-01-01T01:00:00],[3@2001-01-01T02:00:00,4@2001-01-01T03:00:00]}"
	tv, err := wkt.Parse(lit, basetype.Int4, nil, nil)
	require.NoError(t, err)
	s, err := wkt.Print(tv, nil)
	require.NoError(t, err)

	back, err := wkt.Parse(s, basetype.Int4, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, back.SequenceN())
}

func TestPrintEmitsSRIDPrefixWhenNonZero(t *testing.T) {
	tv, err := wkt.Parse("SRID=4326;POINT(1 2)@2001-01-01T00:00:00", basetype.Geom2D, nil, nil)
	require.NoError(t, err)
	s, err := wkt.Print(tv, nil)
	require.NoError(t, err)
	assert.Contains(t, s, "SRID=4326;")
}

func TestPrintEmitsStepInterpPrefix(t *testing.T) {
	tv, err := wkt.Parse("Interp=Step;[1@2001-01-01T00:00:00,2@2001-01-01T01:00:00]", basetype.Int4, nil, nil)
	require.NoError(t, err)
	s, err := wkt.Print(tv, nil)
	require.NoError(t, err)
	assert.Contains(t, s, "Interp=Step;")
}
