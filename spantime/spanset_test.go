package spantime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobilitydb/meos-go/spantime"
)

func span(t *testing.T, lower, upper int32, lowerInc, upperInc bool) *spantime.Span {
	s, err := spantime.New(lower, upper, lowerInc, upperInc, spantime.IntCmp)
	require.NoError(t, err)
	return s
}

func TestNewSpanSetRejectsEmpty(t *testing.T) {
	_, err := spantime.NewSpanSet(nil)
	assert.Error(t, err)
}

func TestNewSpanSetMergesOverlappingAndAdjacent(t *testing.T) {
	spans := []*spantime.Span{
		span(t, 10, 20, true, true),
		span(t, 1, 5, true, true),
		span(t, 20, 25, false, true),
		span(t, 100, 200, true, true),
	}
	ss, err := spantime.NewSpanSet(spans)
	require.NoError(t, err)
	require.Len(t, ss.Spans, 3)
	assert.Equal(t, int32(1), ss.Spans[0].Lower)
	assert.Equal(t, int32(5), ss.Spans[0].Upper)
	assert.Equal(t, int32(10), ss.Spans[1].Lower)
	assert.Equal(t, int32(25), ss.Spans[1].Upper)
	assert.Equal(t, int32(100), ss.Spans[2].Lower)
	assert.Equal(t, int32(200), ss.Spans[2].Upper)
}

func TestSpanSetContains(t *testing.T) {
	ss, err := spantime.NewSpanSet([]*spantime.Span{span(t, 1, 5, true, true), span(t, 10, 20, true, true)})
	require.NoError(t, err)
	assert.True(t, ss.Contains(int32(3)))
	assert.True(t, ss.Contains(int32(15)))
	assert.False(t, ss.Contains(int32(7)))
}

func TestSpanSetOverlaps(t *testing.T) {
	a, _ := spantime.NewSpanSet([]*spantime.Span{span(t, 1, 5, true, true)})
	b, _ := spantime.NewSpanSet([]*spantime.Span{span(t, 4, 10, true, true)})
	c, _ := spantime.NewSpanSet([]*spantime.Span{span(t, 100, 200, true, true)})
	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(c))
}

func TestSpanSetSpanIsBoundingSpan(t *testing.T) {
	ss, err := spantime.NewSpanSet([]*spantime.Span{span(t, 1, 5, true, true), span(t, 100, 200, true, true)})
	require.NoError(t, err)
	bounding := ss.Span()
	assert.Equal(t, int32(1), bounding.Lower)
	assert.Equal(t, int32(200), bounding.Upper)
}

func TestUnionMergesTwoSpanSets(t *testing.T) {
	a, _ := spantime.NewSpanSet([]*spantime.Span{span(t, 1, 5, true, true)})
	b, _ := spantime.NewSpanSet([]*spantime.Span{span(t, 5, 10, false, true)})
	u, err := spantime.Union(a, b)
	require.NoError(t, err)
	require.Len(t, u.Spans, 1)
	assert.Equal(t, int32(1), u.Spans[0].Lower)
	assert.Equal(t, int32(10), u.Spans[0].Upper)
}
