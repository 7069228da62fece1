// Package tsync implements synchronization, time intersection, and
// per-segment crossing detection (C8): zipping two temporal values onto a
// shared time domain
package tsync

import (
	"sort"
	"time"

	"github.com/mobilitydb/meos-go/basetype"
	"github.com/mobilitydb/meos-go/merr"
	"github.com/mobilitydb/meos-go/spantime"
	"github.com/mobilitydb/meos-go/temporal"
)

// Synchronize zips a and b onto their shared time domain
// It returns two temporals with identical time domains covering
// time(a) ∩ time(b), each carrying an instant at every timestamp either
// side originally holds within that overlap, plus — when withCrossings is
// set and either side is linearly interpolated — an extra synchronized
// pair wherever the two value curves cross between samples. Returns
// (nil, nil, nil) if the two periods do not overlap.
func Synchronize(a, b *temporal.Temporal, withCrossings bool, tv spantime.TimeVTable, options ...temporal.Option) (*temporal.Temporal, *temporal.Temporal, error) {
	return synchronize(a, b, withCrossings, true, tv, options...)
}

// IntersectOnTime zips a and b like Synchronize, but never fills in a
// synthetic sample on the side that is "behind" — only timestamps present
// on both sides survive. Used by the discrete/continuous cross product.
func IntersectOnTime(a, b *temporal.Temporal, tv spantime.TimeVTable, options ...temporal.Option) (*temporal.Temporal, *temporal.Temporal, error) {
	return synchronize(a, b, false, false, tv, options...)
}

func synchronize(a, b *temporal.Temporal, withCrossings, fill bool, tv spantime.TimeVTable, options ...temporal.Option) (*temporal.Temporal, *temporal.Temporal, error) {
	const op = "tsync.Synchronize"
	if tv == nil {
		tv = spantime.DefaultTime
	}
	lo, loInc, hi, hiInc, ok := overlapPeriod(a, b, tv)
	if !ok {
		return nil, nil, nil
	}

	ts := mergeTimestamps(a, b, lo, hi, tv)
	if !fill {
		ts = onlyShared(a, b, ts, tv)
	}
	if len(ts) == 0 {
		return nil, nil, nil
	}

	var instA, instB []temporal.Inst
	for _, t := range ts {
		va, okA, errA := a.ValueAt(t, false, tv)
		vb, okB, errB := b.ValueAt(t, false, tv)
		if errA != nil {
			return nil, nil, errA
		}
		if errB != nil {
			return nil, nil, errB
		}
		if !okA || !okB {
			// At least one side cannot produce a value here (typically a
			// Discrete source sampled off its own instants); this timestamp
			// contributes nothing to either output.
			continue
		}
		instA = append(instA, temporal.Inst{Value: va, T: t})
		instB = append(instB, temporal.Inst{Value: vb, T: t})
	}
	if len(instA) == 0 {
		return nil, nil, nil
	}

	if withCrossings && (a.Interp() == temporal.Linear || b.Interp() == temporal.Linear) && a.BaseType == b.BaseType {
		var err error
		instA, instB, err = insertCrossings(a, b, instA, instB, tv)
		if err != nil {
			return nil, nil, err
		}
	}

	ra, err := buildResult(a.BaseType, instA, loInc, hiInc, a.Interp(), options...)
	if err != nil {
		return nil, nil, err
	}
	rb, err := buildResult(b.BaseType, instB, loInc, hiInc, b.Interp(), options...)
	if err != nil {
		return nil, nil, err
	}
	return ra, rb, nil
}

// onlyShared filters candidates down to timestamps that are an original
// instant of both a and b, per IntersectOnTime's "no filling on the shorter
// side" rule — only timestamps present on both sides survive.
func onlyShared(a, b *temporal.Temporal, candidates []time.Time, tv spantime.TimeVTable) []time.Time {
	out := candidates[:0]
	for _, t := range candidates {
		if hasOwnInstant(a, t, tv) && hasOwnInstant(b, t, tv) {
			out = append(out, t)
		}
	}
	return out
}

func hasOwnInstant(t *temporal.Temporal, at time.Time, tv spantime.TimeVTable) bool {
	for i := 0; i < t.N(); i++ {
		inst, err := t.InstantAt(i)
		if err != nil {
			continue
		}
		if tv.CmpTimestamp(inst.T, at) == 0 {
			return true
		}
	}
	return false
}

func buildResult(bt basetype.Type, instants []temporal.Inst, lowerInc, upperInc bool, interp temporal.Interp, options ...temporal.Option) (*temporal.Temporal, error) {
	if len(instants) == 1 {
		return temporal.MakeInstant(bt, instants[0].Value, instants[0].T, options...)
	}
	return temporal.MakeSequence(bt, instants, lowerInc, upperInc, interp, false, options...)
}

// overlapPeriod intersects a's and b's bounding periods step
// 1. ok is false if they do not overlap at all.
func overlapPeriod(a, b *temporal.Temporal, tv spantime.TimeVTable) (lo time.Time, loInc bool, hi time.Time, hiInc bool, ok bool) {
	aStart, aEnd := a.StartTime(), a.EndTime()
	bStart, bEnd := b.StartTime(), b.EndTime()
	aLower, aUpper := a.Bounds()
	bLower, bUpper := b.Bounds()

	switch c := tv.CmpTimestamp(aStart, bStart); {
	case c > 0:
		lo, loInc = aStart, aLower
	case c < 0:
		lo, loInc = bStart, bLower
	default:
		lo, loInc = aStart, aLower && bLower
	}
	switch c := tv.CmpTimestamp(aEnd, bEnd); {
	case c < 0:
		hi, hiInc = aEnd, aUpper
	case c > 0:
		hi, hiInc = bEnd, bUpper
	default:
		hi, hiInc = aEnd, aUpper && bUpper
	}

	switch c := tv.CmpTimestamp(lo, hi); {
	case c > 0:
		return time.Time{}, false, time.Time{}, false, false
	case c == 0:
		return lo, loInc, hi, hiInc, loInc && hiInc
	default:
		return lo, loInc, hi, hiInc, true
	}
}

// mergeTimestamps returns the sorted, deduplicated union of a's and b's
// instant timestamps that fall within [lo, hi]: each
// side's own instant timestamps drive the cursor advance, and value_at on
// the other side fills in the synthetic sample (computed later, by the
// caller, via Temporal.ValueAt).
func mergeTimestamps(a, b *temporal.Temporal, lo, hi time.Time, tv spantime.TimeVTable) []time.Time {
	var all []time.Time
	collect := func(t *temporal.Temporal) {
		for i := 0; i < t.N(); i++ {
			inst, err := t.InstantAt(i)
			if err != nil {
				continue
			}
			if tv.CmpTimestamp(inst.T, lo) >= 0 && tv.CmpTimestamp(inst.T, hi) <= 0 {
				all = append(all, inst.T)
			}
		}
	}
	collect(a)
	collect(b)
	sort.Slice(all, func(i, j int) bool { return tv.CmpTimestamp(all[i], all[j]) < 0 })
	out := all[:0]
	for i, t := range all {
		if i == 0 || tv.CmpTimestamp(out[len(out)-1], t) != 0 {
			out = append(out, t)
		}
	}
	return out
}

// insertCrossings inserts a synthetic crossing instant between every
// consecutive kept pair: test whether the segment a traces and the segment b traces
// over that same time interval meet strictly between the two endpoints;
// if so, emit an extra synchronized pair at the crossing time before the
// later pair.
func insertCrossings(a, b *temporal.Temporal, instA, instB []temporal.Inst, tv spantime.TimeVTable) ([]temporal.Inst, []temporal.Inst, error) {
	const op = "tsync.insertCrossings"
	vt, err := a.Registry().Lookup(a.BaseType)
	if err != nil {
		return nil, nil, err
	}
	outA := make([]temporal.Inst, 0, len(instA))
	outB := make([]temporal.Inst, 0, len(instB))
	outA = append(outA, instA[0])
	outB = append(outB, instB[0])
	for i := 1; i < len(instA); i++ {
		prevA, curA := instA[i-1], instA[i]
		prevB, curB := instB[i-1], instB[i]
		if ratio, ok := segmentSegmentIntersection(vt, prevA.Value, curA.Value, prevB.Value, curB.Value); ok {
			delta := curA.T.Sub(prevA.T)
			star := tv.PlusInterval(prevA.T, tv.MulIntervalDouble(delta, ratio))
			if tv.CmpTimestamp(star, prevA.T) > 0 && tv.CmpTimestamp(star, curA.T) < 0 {
				va, okA, errA := a.ValueAt(star, false, tv)
				vb, okB, errB := b.ValueAt(star, false, tv)
				if errA == nil && errB == nil && okA && okB {
					outA = append(outA, temporal.Inst{Value: va, T: star})
					outB = append(outB, temporal.Inst{Value: vb, T: star})
				}
			}
		}
		outA = append(outA, curA)
		outB = append(outB, curB)
	}
	if len(outA) != len(outB) {
		return nil, nil, merr.New(op, merr.InternalTypeError, "crossing insertion desynchronized the two sides")
	}
	return outA, outB, nil
}

// segmentSegmentIntersection reports the ratio (along the shared time
// parameterization) at which the segment a1->a2 and the segment b1->b2
// cross, if they do. Geo base types delegate to the kernel's own spatial
// segment intersection, whose ratio lies in [0,1]; the two numeric span
// kinds solve the 1-D line-crossing equation directly and report only
// ratios strictly inside (0,1).
func segmentSegmentIntersection(vt basetype.VTable, a1, a2, b1, b2 basetype.Value) (float64, bool) {
	if vt.Geo != nil {
		return vt.Geo.SegmentSegmentIntersection(a1, a2, b1, b2)
	}
	x1, ok1 := toFloat64(vt, a1)
	x2, ok2 := toFloat64(vt, a2)
	y1, ok3 := toFloat64(vt, b1)
	y2, ok4 := toFloat64(vt, b2)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return 0, false
	}
	denom := (x2 - x1) - (y2 - y1)
	if denom == 0 {
		return 0, false
	}
	r := (y1 - x1) / denom
	if r <= 0 || r >= 1 {
		return 0, false
	}
	return r, true
}

func toFloat64(vt basetype.VTable, v basetype.Value) (float64, bool) {
	switch vt.SpanType {
	case basetype.IntSpan:
		n, ok := v.(int32)
		return float64(n), ok
	case basetype.FloatSpan:
		f, ok := v.(float64)
		return f, ok
	default:
		return 0, false
	}
}

// SegmentValueAtTime is the canonical per-segment evaluation routine:
// constant segments and out-of-interior t short-circuit to the endpoint;
// otherwise it dispatches to the base type's interpolation.
func SegmentValueAtTime(vt basetype.VTable, a, b temporal.Inst, interp temporal.Interp, t time.Time, tv spantime.TimeVTable) (basetype.Value, error) {
	const op = "tsync.SegmentValueAtTime"
	if tv.CmpTimestamp(t, a.T) <= 0 {
		return a.Value, nil
	}
	if tv.CmpTimestamp(t, b.T) >= 0 {
		return b.Value, nil
	}
	if vt.Eq(a.Value, b.Value) || interp != temporal.Linear {
		return a.Value, nil
	}
	total := b.T.Sub(a.T)
	if total == 0 {
		return a.Value, nil
	}
	ratio := float64(t.Sub(a.T)) / float64(total)
	if vt.Geo != nil {
		return vt.Geo.Interpolate(a.Value, b.Value, ratio), nil
	}
	switch vt.SpanType {
	case basetype.IntSpan:
		x, y := a.Value.(int32), b.Value.(int32)
		return x + int32(float64(y-x)*ratio), nil
	case basetype.FloatSpan:
		x, y := a.Value.(float64), b.Value.(float64)
		return x + (y-x)*ratio, nil
	default:
		return nil, merr.New(op, merr.InvalidArgType, "base type has no interpolation")
	}
}
