package stbox_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobilitydb/meos-go/stbox"
)

func mustBox(t *testing.T, hasX, hasZ, hasT, geodetic bool, srid int32,
	xmin, xmax, ymin, ymax, zmin, zmax float64, tmin, tmax time.Time) *stbox.STBox {
	b, err := stbox.New(hasX, hasZ, hasT, geodetic, srid, xmin, xmax, ymin, ymax, zmin, zmax, tmin, tmax)
	require.NoError(t, err)
	return b
}

func TestNewRejectsGeodeticWithoutX(t *testing.T) {
	_, err := stbox.New(false, false, true, true, 0, 0, 0, 0, 0, 0, 0, time.Time{}, time.Time{})
	assert.Error(t, err)
}

func TestNewRejectsNoDimensions(t *testing.T) {
	_, err := stbox.New(false, false, false, false, 0, 0, 0, 0, 0, 0, 0, time.Time{}, time.Time{})
	assert.Error(t, err)
}

func TestNewSwapsInvertedBounds(t *testing.T) {
	b := mustBox(t, true, false, false, false, 0, 10, 1, 20, 5, 0, 0, time.Time{}, time.Time{})
	assert.Equal(t, 1.0, b.XMin)
	assert.Equal(t, 10.0, b.XMax)
	assert.Equal(t, 5.0, b.YMin)
	assert.Equal(t, 20.0, b.YMax)
}

func TestExpandUnionsDimensions(t *testing.T) {
	now := time.Now()
	a := mustBox(t, true, false, false, false, 0, 0, 5, 0, 5, 0, 0, time.Time{}, time.Time{})
	b := mustBox(t, false, false, true, false, 0, 0, 0, 0, 0, 0, 0, now, now.Add(time.Hour))
	e, err := a.Expand(b)
	require.NoError(t, err)
	assert.True(t, e.HasX)
	assert.True(t, e.HasT)
	assert.True(t, e.TMax.Equal(now.Add(time.Hour)))
}

func TestExpandRejectsSridMismatch(t *testing.T) {
	a := mustBox(t, true, false, false, false, 4326, 0, 5, 0, 5, 0, 0, time.Time{}, time.Time{})
	b := mustBox(t, true, false, false, false, 3857, 0, 5, 0, 5, 0, 0, time.Time{}, time.Time{})
	_, err := a.Expand(b)
	assert.Error(t, err)
}

func TestIntersectDisjointReturnsEmpty(t *testing.T) {
	a := mustBox(t, true, false, false, false, 0, 0, 5, 0, 5, 0, 0, time.Time{}, time.Time{})
	b := mustBox(t, true, false, false, false, 0, 10, 20, 10, 20, 0, 0, time.Time{}, time.Time{})
	inter, err := a.Intersect(b)
	require.NoError(t, err)
	assert.True(t, inter.IsEmpty())
}

func TestIntersectOverlapping(t *testing.T) {
	a := mustBox(t, true, false, false, false, 0, 0, 10, 0, 10, 0, 0, time.Time{}, time.Time{})
	b := mustBox(t, true, false, false, false, 0, 5, 15, 5, 15, 0, 0, time.Time{}, time.Time{})
	inter, err := a.Intersect(b)
	require.NoError(t, err)
	assert.False(t, inter.IsEmpty())
	assert.Equal(t, 5.0, inter.XMin)
	assert.Equal(t, 10.0, inter.XMax)
}

func TestContains(t *testing.T) {
	outer := mustBox(t, true, false, false, false, 0, 0, 10, 0, 10, 0, 0, time.Time{}, time.Time{})
	inner := mustBox(t, true, false, false, false, 0, 2, 8, 2, 8, 0, 0, time.Time{}, time.Time{})
	ok, err := outer.Contains(inner)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = inner.Contains(outer)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestContainedIsReverseOfContains(t *testing.T) {
	outer := mustBox(t, true, false, false, false, 0, 0, 10, 0, 10, 0, 0, time.Time{}, time.Time{})
	inner := mustBox(t, true, false, false, false, 0, 2, 8, 2, 8, 0, 0, time.Time{}, time.Time{})
	ok, err := inner.Contained(outer)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOverlapsNoCommonDimensionErrors(t *testing.T) {
	now := time.Now()
	xonly := mustBox(t, true, false, false, false, 0, 0, 10, 0, 10, 0, 0, time.Time{}, time.Time{})
	tonly := mustBox(t, false, false, true, false, 0, 0, 0, 0, 0, 0, 0, now, now.Add(time.Hour))
	_, err := xonly.Overlaps(tonly)
	assert.Error(t, err)
}

func TestAdjacent(t *testing.T) {
	// Space-only touch: boxes share only an X/Y edge, no time dimension.
	a := mustBox(t, true, false, false, false, 0, 0, 10, 0, 10, 0, 0, time.Time{}, time.Time{})
	b := mustBox(t, true, false, false, false, 0, 10, 20, 0, 10, 0, 0, time.Time{}, time.Time{})
	ok, err := a.Adjacent(b)
	require.NoError(t, err)
	assert.True(t, ok)

	// Time-only touch: boxes share only a single instant, no space dimension.
	t1 := time.Now()
	t2 := t1.Add(time.Hour)
	t3 := t2.Add(time.Hour)
	c := mustBox(t, false, false, true, false, 0, 0, 0, 0, 0, 0, 0, t1, t2)
	d := mustBox(t, false, false, true, false, 0, 0, 0, 0, 0, 0, 0, t2, t3)
	ok, err = c.Adjacent(d)
	require.NoError(t, err)
	assert.True(t, ok)

	// Mixed: full spatial overlap (non-degenerate X/Y), touching at a single
	// instant in time. Adjacent purely on the T dimension degenerating, even
	// though the intersection's X/Y span is not degenerate.
	e := mustBox(t, true, false, true, false, 0, 0, 10, 0, 10, 0, 0, t1, t2)
	f := mustBox(t, true, false, true, false, 0, 0, 10, 0, 10, 0, 0, t2, t3)
	ok, err = e.Adjacent(f)
	require.NoError(t, err)
	assert.True(t, ok)

	// Sanity: boxes that truly overlap (not just touch) are not adjacent.
	g := mustBox(t, true, false, false, false, 0, 0, 10, 0, 10, 0, 0, time.Time{}, time.Time{})
	h := mustBox(t, true, false, false, false, 0, 5, 15, 0, 10, 0, 0, time.Time{}, time.Time{})
	ok, err = g.Adjacent(h)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSame(t *testing.T) {
	a := mustBox(t, true, false, false, false, 0, 0, 10, 0, 10, 0, 0, time.Time{}, time.Time{})
	b := mustBox(t, true, false, false, false, 0, 0, 10, 0, 10, 0, 0, time.Time{}, time.Time{})
	c := mustBox(t, true, false, false, false, 0, 0, 11, 0, 10, 0, 0, time.Time{}, time.Time{})
	ok, err := a.Same(b)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = a.Same(c)
	require.NoError(t, err)
	assert.False(t, ok)
}
