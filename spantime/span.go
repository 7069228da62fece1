package spantime

import (
	"time"

	"github.com/mobilitydb/meos-go/merr"
)

// CmpFunc orders two span endpoint values, returning <0, 0, >0 as a < b,
// a == b, a > b. A Span is deliberately kept independent of the base-type
// registry (package basetype sits above spantime, not below it); callers
// supply the comparator that matches their base type.
type CmpFunc func(a, b interface{}) int

// IntCmp orders int32 endpoint values.
func IntCmp(a, b interface{}) int {
	x, y := a.(int32), b.(int32)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

// FloatCmp orders float64 endpoint values.
func FloatCmp(a, b interface{}) int {
	x, y := a.(float64), b.(float64)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

// TimestampCmp builds a CmpFunc over time.Time values using tv.
func TimestampCmp(tv TimeVTable) CmpFunc {
	return func(a, b interface{}) int { return tv.CmpTimestamp(a.(time.Time), b.(time.Time)) }
}

// Span is a half-open interval (lower, upper] / [lower, upper) / [lower,
// upper] / (lower, upper) over an ordered base type. Empty
// spans are disallowed by construction; lower == upper requires both bounds
// inclusive.
type Span struct {
	Lower, Upper       interface{}
	LowerInc, UpperInc bool
	cmp                CmpFunc
}

// New validates and builds a Span. Equal bounds require both inclusive,
// matching the canonical-form rule for a degenerate single-value span.
func New(lower, upper interface{}, lowerInc, upperInc bool, cmp CmpFunc) (*Span, error) {
	const op = "spantime.New"
	c := cmp(lower, upper)
	if c > 0 {
		return nil, merr.New(op, merr.InvalidArgValue, "lower bound greater than upper bound")
	}
	if c == 0 && !(lowerInc && upperInc) {
		return nil, merr.New(op, merr.InvalidArgValue, "empty span: equal bounds must both be inclusive")
	}
	return &Span{Lower: lower, Upper: upper, LowerInc: lowerInc, UpperInc: upperInc, cmp: cmp}, nil
}

// Cmp exposes the comparator the Span was built with, so that callers
// composing multiple spans (e.g. SpanSet) can reuse it without re-deriving
// it from a base type.
func (s *Span) Cmp() CmpFunc { return s.cmp }

// Contains reports whether point lies within the span, respecting bound
// inclusivity.
func (s *Span) Contains(point interface{}) bool {
	cl := s.cmp(point, s.Lower)
	if cl < 0 || (cl == 0 && !s.LowerInc) {
		return false
	}
	cu := s.cmp(point, s.Upper)
	if cu > 0 || (cu == 0 && !s.UpperInc) {
		return false
	}
	return true
}

// Overlaps reports whether s and o share at least one point.
func (s *Span) Overlaps(o *Span) bool {
	cl := s.cmp(s.Lower, o.Upper)
	if cl > 0 || (cl == 0 && !(s.LowerInc && o.UpperInc)) {
		return false
	}
	cu := s.cmp(o.Lower, s.Upper)
	if cu > 0 || (cu == 0 && !(o.LowerInc && s.UpperInc)) {
		return false
	}
	return true
}

// Adjacent reports whether s and o touch at exactly one bound without
// overlapping: one's upper equals the other's lower, and exactly one side
// is inclusive there.
func (s *Span) Adjacent(o *Span) bool {
	if s.cmp(s.Upper, o.Lower) == 0 && s.UpperInc != o.LowerInc {
		return true
	}
	if s.cmp(o.Upper, s.Lower) == 0 && o.UpperInc != s.LowerInc {
		return true
	}
	return false
}

// Union merges s and o into a single span. It fails with
// merr.ResultNotContiguous if the two neither overlap nor touch.
func (s *Span) Union(o *Span) (*Span, error) {
	const op = "Span.Union"
	if !s.Overlaps(o) && !s.Adjacent(o) {
		return nil, merr.New(op, merr.ResultNotContiguous, "spans are neither overlapping nor adjacent")
	}
	lower, lowerInc := s.Lower, s.LowerInc
	if c := s.cmp(o.Lower, s.Lower); c < 0 || (c == 0 && o.LowerInc && !s.LowerInc) {
		lower, lowerInc = o.Lower, o.LowerInc
	}
	upper, upperInc := s.Upper, s.UpperInc
	if c := s.cmp(o.Upper, s.Upper); c > 0 || (c == 0 && o.UpperInc && !s.UpperInc) {
		upper, upperInc = o.Upper, o.UpperInc
	}
	return &Span{Lower: lower, Upper: upper, LowerInc: lowerInc, UpperInc: upperInc, cmp: s.cmp}, nil
}

// Expand returns the component-wise bounding span of s and o: the min of
// the lowers and the max of the uppers, regardless of whether s and o
// overlap or touch. This is the bbox-style operation used by C4's bounding
// box maintenance, distinct from Union's contiguity requirement.
func (s *Span) Expand(o *Span) *Span {
	lower, lowerInc := s.Lower, s.LowerInc
	if c := s.cmp(o.Lower, s.Lower); c < 0 || (c == 0 && o.LowerInc && !s.LowerInc) {
		lower, lowerInc = o.Lower, o.LowerInc
	}
	upper, upperInc := s.Upper, s.UpperInc
	if c := s.cmp(o.Upper, s.Upper); c > 0 || (c == 0 && o.UpperInc && !s.UpperInc) {
		upper, upperInc = o.Upper, o.UpperInc
	}
	return &Span{Lower: lower, Upper: upper, LowerInc: lowerInc, UpperInc: upperInc, cmp: s.cmp}
}

// CmpBounds orders spans lexicographically by (lower, !lowerInc, upper,
// upperInc), matching the ordering MEOS uses to sort arrays of spans.
func (s *Span) CmpBounds(o *Span) int {
	if c := s.cmp(s.Lower, o.Lower); c != 0 {
		return c
	}
	if s.LowerInc != o.LowerInc {
		if s.LowerInc {
			return -1
		}
		return 1
	}
	if c := s.cmp(s.Upper, o.Upper); c != 0 {
		return c
	}
	if s.UpperInc != o.UpperInc {
		if s.UpperInc {
			return 1
		}
		return -1
	}
	return 0
}

// Duration returns Upper-Lower for a timestamp span (Lower/Upper are
// time.Time). It panics if the span is not over timestamps; callers should
// only call this on spans known to wrap time.Time.
func (s *Span) Duration() time.Duration {
	return s.Upper.(time.Time).Sub(s.Lower.(time.Time))
}
