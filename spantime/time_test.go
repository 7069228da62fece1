package spantime_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobilitydb/meos-go/spantime"
)

func TestDefaultTimeParseTimestampLayouts(t *testing.T) {
	vt := spantime.DefaultTime
	for _, s := range []string{
		"2001-02-03 04:05:06",
		"2001-02-03T04:05:06",
		"2001-02-03",
		"2001-02-03 04:05:06.789",
	} {
		_, err := vt.ParseTimestamp(s)
		assert.NoError(t, err, "layout for %q should parse", s)
	}
	_, err := vt.ParseTimestamp("not a timestamp")
	assert.Error(t, err)
}

func TestDefaultTimeCmpTimestamp(t *testing.T) {
	vt := spantime.DefaultTime
	a, err := vt.ParseTimestamp("2001-01-01")
	require.NoError(t, err)
	b, err := vt.ParseTimestamp("2002-01-01")
	require.NoError(t, err)
	assert.Equal(t, -1, vt.CmpTimestamp(a, b))
	assert.Equal(t, 1, vt.CmpTimestamp(b, a))
	assert.Equal(t, 0, vt.CmpTimestamp(a, a))
}

func TestDefaultTimePlusInterval(t *testing.T) {
	vt := spantime.DefaultTime
	a, err := vt.ParseTimestamp("2001-01-01")
	require.NoError(t, err)
	got := vt.PlusInterval(a, 24*time.Hour)
	want, err := vt.ParseTimestamp("2001-01-02")
	require.NoError(t, err)
	assert.True(t, got.Equal(want))
}

func TestDefaultTimeIntervalArithmetic(t *testing.T) {
	vt := spantime.DefaultTime
	assert.Equal(t, -1, vt.CmpInterval(time.Second, 2*time.Second))
	assert.Equal(t, 3*time.Second, vt.AddInterval(time.Second, 2*time.Second))
	assert.Equal(t, 2*time.Second, vt.MulIntervalDouble(time.Second, 2.0))
}
