// Package spantime provides the time primitives of the engine (C2): a
// half-open Span over an ordered base type, a disjoint/non-adjacent
// SpanSet, and the narrow TimeVTable interface through which calendar
// arithmetic on timestamps is delegated to an embedder
package spantime

import "time"

// TimeVTable is the narrow interface an embedder supplies for calendar
// arithmetic on timestamps. The core never parses or formats timestamps
// itself beyond calling through this interface, so that leap-second and
// calendar policy stay outside the temporal-value engine.
type TimeVTable interface {
	ParseTimestamp(s string) (time.Time, error)
	PrintTimestamp(t time.Time) string
	CmpTimestamp(a, b time.Time) int
	PlusInterval(t time.Time, d time.Duration) time.Time
	CmpInterval(a, b time.Duration) int
	AddInterval(a, b time.Duration) time.Duration
	MulIntervalDouble(d time.Duration, f float64) time.Duration
}

// DefaultTime is the stdlib-backed TimeVTable implementation. It is the one
// used throughout this module unless a host supplies its own (e.g. one with
// a different timestamp text format).
var DefaultTime TimeVTable = defaultTime{}

type defaultTime struct{}

func (defaultTime) ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{
		"2006-01-02 15:04:05.999999999Z07:00",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02T15:04:05.999999999Z07:00",
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &parseTimestampError{s}
}

type parseTimestampError struct{ s string }

func (e *parseTimestampError) Error() string { return "spantime: cannot parse timestamp " + e.s }

func (defaultTime) PrintTimestamp(t time.Time) string {
	return t.Format("2006-01-02T15:04:05.999999999")
}

func (defaultTime) CmpTimestamp(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

func (defaultTime) PlusInterval(t time.Time, d time.Duration) time.Time { return t.Add(d) }

func (defaultTime) CmpInterval(a, b time.Duration) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (defaultTime) AddInterval(a, b time.Duration) time.Duration { return a + b }

func (defaultTime) MulIntervalDouble(d time.Duration, f float64) time.Duration {
	return time.Duration(float64(d) * f)
}
