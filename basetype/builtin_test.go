package basetype_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobilitydb/meos-go/basetype"
	"github.com/mobilitydb/meos-go/geo"
)

func TestBoolParsePrintRoundTrip(t *testing.T) {
	vt, err := basetype.Default().Lookup(basetype.Bool)
	require.NoError(t, err)
	v, err := vt.ParseText("true")
	require.NoError(t, err)
	assert.Equal(t, true, v)
	assert.Equal(t, "true", vt.PrintText(v))

	_, err = vt.ParseText("nope")
	assert.Error(t, err)
}

func TestInt4ParsePrintRoundTrip(t *testing.T) {
	vt, err := basetype.Default().Lookup(basetype.Int4)
	require.NoError(t, err)
	v, err := vt.ParseText("-42")
	require.NoError(t, err)
	assert.Equal(t, int32(-42), v)
	assert.Equal(t, "-42", vt.PrintText(v))
}

func TestFloat8ParsePrintRoundTrip(t *testing.T) {
	vt, err := basetype.Default().Lookup(basetype.Float8)
	require.NoError(t, err)
	v, err := vt.ParseText("3.5")
	require.NoError(t, err)
	assert.Equal(t, 3.5, v)
}

func TestTextParsePrintRoundTrip(t *testing.T) {
	vt, err := basetype.Default().Lookup(basetype.Text)
	require.NoError(t, err)
	v, err := vt.ParseText(`"hello \"world\""`)
	require.NoError(t, err)
	assert.Equal(t, `hello "world"`, v)
	assert.Equal(t, `"hello \"world\""`, vt.PrintText(v))
}

func TestGeom2DParsePrintRoundTrip(t *testing.T) {
	vt, err := basetype.Default().Lookup(basetype.Geom2D)
	require.NoError(t, err)
	v, err := vt.ParseText("POINT(1 2)")
	require.NoError(t, err)
	p := v.(geo.Point)
	assert.Equal(t, 1.0, p.X)
	assert.Equal(t, 2.0, p.Y)
	assert.False(t, p.HasZ)
	assert.Equal(t, "POINT(1 2)", vt.PrintText(v))
}

func TestGeom3DParsePrintRoundTrip(t *testing.T) {
	vt, err := basetype.Default().Lookup(basetype.Geom3D)
	require.NoError(t, err)
	v, err := vt.ParseText("POINT Z(1 2 3)")
	require.NoError(t, err)
	p := v.(geo.Point)
	assert.True(t, p.HasZ)
	assert.Equal(t, 3.0, p.Z)
	assert.Equal(t, "POINT Z(1 2 3)", vt.PrintText(v))
}

func TestGeoEqUsesCoordinatesAndSRID(t *testing.T) {
	vt, err := basetype.Default().Lookup(basetype.Geom2D)
	require.NoError(t, err)
	a := geo.Point{X: 1, Y: 2}
	b := geo.Point{X: 1, Y: 2, SRID: 4326}
	assert.False(t, vt.Eq(a, b))
}
