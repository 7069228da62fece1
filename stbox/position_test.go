package stbox_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeftRightPredicates(t *testing.T) {
	a := mustBox(t, true, false, false, false, 0, 0, 5, 0, 5, 0, 0, time.Time{}, time.Time{})
	b := mustBox(t, true, false, false, false, 0, 10, 15, 0, 5, 0, 0, time.Time{}, time.Time{})

	left, err := a.Left(b)
	require.NoError(t, err)
	assert.True(t, left)

	right, err := b.Right(a)
	require.NoError(t, err)
	assert.True(t, right)

	over, err := a.OverLeft(b)
	require.NoError(t, err)
	assert.True(t, over)
}

func TestAboveBelowPredicates(t *testing.T) {
	low := mustBox(t, true, false, false, false, 0, 0, 5, 0, 5, 0, 0, time.Time{}, time.Time{})
	high := mustBox(t, true, false, false, false, 0, 0, 5, 10, 15, 0, 0, time.Time{}, time.Time{})

	below, err := low.Below(high)
	require.NoError(t, err)
	assert.True(t, below)

	above, err := high.Above(low)
	require.NoError(t, err)
	assert.True(t, above)
}

func TestFrontBackPredicatesRequireZ(t *testing.T) {
	a := mustBox(t, true, false, false, false, 0, 0, 5, 0, 5, 0, 0, time.Time{}, time.Time{})
	b := mustBox(t, true, false, false, false, 0, 0, 5, 0, 5, 0, 0, time.Time{}, time.Time{})
	_, err := a.Front(b)
	assert.Error(t, err, "boxes without Z should refuse Front")

	az := mustBox(t, true, true, false, false, 0, 0, 5, 0, 5, 0, 5, time.Time{}, time.Time{})
	bz := mustBox(t, true, true, false, false, 0, 0, 5, 0, 5, 10, 15, time.Time{}, time.Time{})
	front, err := az.Front(bz)
	require.NoError(t, err)
	assert.True(t, front)
}

func TestBeforeAfterPredicatesRequireT(t *testing.T) {
	now := time.Now()
	early := mustBox(t, false, false, true, false, 0, 0, 0, 0, 0, 0, 0, now, now.Add(time.Hour))
	late := mustBox(t, false, false, true, false, 0, 0, 0, 0, 0, 0, 0, now.Add(2*time.Hour), now.Add(3*time.Hour))

	before, err := early.Before(late)
	require.NoError(t, err)
	assert.True(t, before)

	after, err := late.After(early)
	require.NoError(t, err)
	assert.True(t, after)

	overBefore, err := early.OverBefore(late)
	require.NoError(t, err)
	assert.True(t, overBefore)
}

func TestPositionPredicatesRejectSridMismatch(t *testing.T) {
	a := mustBox(t, true, false, false, false, 4326, 0, 5, 0, 5, 0, 0, time.Time{}, time.Time{})
	b := mustBox(t, true, false, false, false, 3857, 10, 15, 0, 5, 0, 0, time.Time{}, time.Time{})
	_, err := a.Left(b)
	assert.Error(t, err)
}
