package spantime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobilitydb/meos-go/spantime"
)

func TestNewRejectsInvertedBounds(t *testing.T) {
	_, err := spantime.New(int32(5), int32(1), true, true, spantime.IntCmp)
	assert.Error(t, err)
}

func TestNewRejectsEmptyExclusiveSpan(t *testing.T) {
	_, err := spantime.New(int32(3), int32(3), true, false, spantime.IntCmp)
	assert.Error(t, err)
}

func TestNewAllowsDegenerateInclusiveSpan(t *testing.T) {
	s, err := spantime.New(int32(3), int32(3), true, true, spantime.IntCmp)
	require.NoError(t, err)
	assert.True(t, s.Contains(int32(3)))
}

func TestSpanContainsRespectsInclusivity(t *testing.T) {
	s, err := spantime.New(int32(1), int32(10), true, false, spantime.IntCmp)
	require.NoError(t, err)
	assert.True(t, s.Contains(int32(1)))
	assert.True(t, s.Contains(int32(5)))
	assert.False(t, s.Contains(int32(10)))
	assert.False(t, s.Contains(int32(0)))
}

func TestSpanOverlaps(t *testing.T) {
	a, _ := spantime.New(int32(1), int32(5), true, true, spantime.IntCmp)
	b, _ := spantime.New(int32(5), int32(10), false, true, spantime.IntCmp)
	c, _ := spantime.New(int32(5), int32(10), true, true, spantime.IntCmp)

	assert.False(t, a.Overlaps(b), "touching at 5 with one side exclusive should not overlap")
	assert.True(t, a.Overlaps(c), "touching at 5 with both sides inclusive should overlap")
}

func TestSpanAdjacent(t *testing.T) {
	a, _ := spantime.New(int32(1), int32(5), true, true, spantime.IntCmp)
	b, _ := spantime.New(int32(5), int32(10), false, true, spantime.IntCmp)
	assert.True(t, a.Adjacent(b))

	c, _ := spantime.New(int32(6), int32(10), true, true, spantime.IntCmp)
	assert.False(t, a.Adjacent(c))
}

func TestSpanUnionRejectsDisjointNonAdjacent(t *testing.T) {
	a, _ := spantime.New(int32(1), int32(5), true, true, spantime.IntCmp)
	b, _ := spantime.New(int32(10), int32(15), true, true, spantime.IntCmp)
	_, err := a.Union(b)
	assert.Error(t, err)
}

func TestSpanUnionMergesOverlapping(t *testing.T) {
	a, _ := spantime.New(int32(1), int32(5), true, true, spantime.IntCmp)
	b, _ := spantime.New(int32(3), int32(10), true, true, spantime.IntCmp)
	u, err := a.Union(b)
	require.NoError(t, err)
	assert.Equal(t, int32(1), u.Lower)
	assert.Equal(t, int32(10), u.Upper)
}

func TestSpanExpandIgnoresContiguity(t *testing.T) {
	a, _ := spantime.New(int32(1), int32(5), true, true, spantime.IntCmp)
	b, _ := spantime.New(int32(100), int32(200), true, true, spantime.IntCmp)
	e := a.Expand(b)
	assert.Equal(t, int32(1), e.Lower)
	assert.Equal(t, int32(200), e.Upper)
}

func TestSpanCmpBoundsOrdersByLowerThenInclusivity(t *testing.T) {
	a, _ := spantime.New(int32(1), int32(5), true, true, spantime.IntCmp)
	b, _ := spantime.New(int32(1), int32(5), false, true, spantime.IntCmp)
	assert.True(t, a.CmpBounds(b) < 0, "inclusive lower sorts before exclusive lower at same value")
}
