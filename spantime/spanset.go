package spantime

import (
	"sort"

	"github.com/mobilitydb/meos-go/merr"
)

// SpanSet stores an ordered, disjoint, non-adjacent list of spans. Every
// constructor and mutator preserves that invariant by merging overlapping
// or touching input spans
type SpanSet struct {
	Spans []*Span
}

// NewSpanSet sorts and merges spans into a normalized SpanSet.
func NewSpanSet(spans []*Span) (*SpanSet, error) {
	const op = "spantime.NewSpanSet"
	if len(spans) == 0 {
		return nil, merr.New(op, merr.InvalidArgValue, "empty span list")
	}
	sorted := make([]*Span, len(spans))
	copy(sorted, spans)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].CmpBounds(sorted[j]) < 0 })

	merged := []*Span{sorted[0]}
	for _, s := range sorted[1:] {
		last := merged[len(merged)-1]
		if last.Overlaps(s) || last.Adjacent(s) {
			u, err := last.Union(s)
			if err != nil {
				return nil, merr.Wrap(op, merr.InternalTypeError, err, "unexpected non-contiguous union while merging sorted spans")
			}
			merged[len(merged)-1] = u
			continue
		}
		merged = append(merged, s)
	}
	return &SpanSet{Spans: merged}, nil
}

// Contains reports whether point lies within any member span.
func (ss *SpanSet) Contains(point interface{}) bool {
	for _, s := range ss.Spans {
		if s.Contains(point) {
			return true
		}
	}
	return false
}

// Overlaps reports whether any span of ss overlaps any span of other.
func (ss *SpanSet) Overlaps(other *SpanSet) bool {
	for _, a := range ss.Spans {
		for _, b := range other.Spans {
			if a.Overlaps(b) {
				return true
			}
		}
	}
	return false
}

// Span returns the single bounding span covering every member span
// (component-wise min/max, per Span.Expand).
func (ss *SpanSet) Span() *Span {
	result := ss.Spans[0]
	for _, s := range ss.Spans[1:] {
		result = result.Expand(s)
	}
	return result
}

// Union merges two SpanSets into one normalized SpanSet.
func Union(a, b *SpanSet) (*SpanSet, error) {
	all := make([]*Span, 0, len(a.Spans)+len(b.Spans))
	all = append(all, a.Spans...)
	all = append(all, b.Spans...)
	return NewSpanSet(all)
}
