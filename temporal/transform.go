package temporal

import (
	"sort"
	"time"

	"github.com/mobilitydb/meos-go/basetype"
	"github.com/mobilitydb/meos-go/merr"
	"github.com/mobilitydb/meos-go/spantime"
)

// ValueAt evaluates t at timestamp at: an instant matches
// only an equal timestamp; a discrete sequence requires an exact match; a
// continuous sequence locates the enclosing segment and interpolates (step
// returns the lower endpoint, linear interpolates via the base type); a
// sequence set recurses into the enclosing child. strict=false permits
// returning the value at an excluded sequence bound.
func (t *Temporal) ValueAt(at time.Time, strict bool, tv spantime.TimeVTable) (basetype.Value, bool, error) {
	switch t.Subtype {
	case Instant:
		if tv.CmpTimestamp(t.inst.T, at) == 0 {
			return t.inst.Value, true, nil
		}
		return nil, false, nil
	case DiscreteSeq:
		i, ok := locateExact(t.instants, at, tv)
		if !ok {
			return nil, false, nil
		}
		return t.instants[i].Value, true, nil
	case ContSeq:
		return t.valueAtContSeq(at, strict, tv)
	case SeqSet:
		idx, ok := t.locateSequence(at, tv)
		if !ok {
			return nil, false, nil
		}
		return t.sequences[idx].ValueAt(at, strict, tv)
	default:
		return nil, false, merr.New("Temporal.ValueAt", merr.InternalTypeError, "unknown subtype %d", t.Subtype)
	}
}

func (t *Temporal) valueAtContSeq(at time.Time, strict bool, tv spantime.TimeVTable) (basetype.Value, bool, error) {
	n := len(t.instants)
	first, last := t.instants[0], t.instants[n-1]
	if tv.CmpTimestamp(at, first.T) < 0 || tv.CmpTimestamp(at, last.T) > 0 {
		return nil, false, nil
	}
	if tv.CmpTimestamp(at, first.T) == 0 {
		if !t.lowerInc && strict {
			return nil, false, nil
		}
		return first.Value, true, nil
	}
	if tv.CmpTimestamp(at, last.T) == 0 {
		if !t.upperInc && strict {
			return nil, false, nil
		}
		return last.Value, true, nil
	}
	i := sort.Search(n, func(k int) bool { return tv.CmpTimestamp(t.instants[k].T, at) > 0 }) - 1
	a, b := t.instants[i], t.instants[i+1]
	if t.Flags.Interp == Step {
		return a.Value, true, nil
	}
	vt := t.vt()
	total := b.T.Sub(a.T)
	ratio := float64(at.Sub(a.T)) / float64(total)
	return interpolateValue(vt, a.Value, b.Value, ratio), true, nil
}

func (t *Temporal) locateSequence(at time.Time, tv spantime.TimeVTable) (int, bool) {
	idx := sort.Search(len(t.sequences), func(k int) bool {
		s := t.sequences[k]
		return tv.CmpTimestamp(s.instants[len(s.instants)-1].T, at) >= 0
	})
	if idx >= len(t.sequences) {
		return 0, false
	}
	if tv.CmpTimestamp(at, t.sequences[idx].instants[0].T) < 0 {
		return 0, false
	}
	return idx, true
}

// interpolateValue implements the base-type interpolation dispatch: geo
// values delegate to the geo kernel through GeoOps; numeric values
// interpolate arithmetically.
func interpolateValue(vt basetype.VTable, a, b basetype.Value, ratio float64) basetype.Value {
	if vt.Geo != nil {
		return vt.Geo.Interpolate(a, b, ratio)
	}
	switch vt.SpanType {
	case basetype.IntSpan:
		av, bv := a.(int32), b.(int32)
		return int32(float64(av) + (float64(bv)-float64(av))*ratio)
	case basetype.FloatSpan:
		av, bv := a.(float64), b.(float64)
		return av + (bv-av)*ratio
	default:
		return a
	}
}

// mapInstants rebuilds t with every instant replaced by f, recomputing the
// bounding box at every level. f may fail (e.g. a value-affine transform
// outside the base type's domain).
func (t *Temporal) mapInstants(op string, f func(Inst) (Inst, error), tv spantime.TimeVTable) (*Temporal, error) {
	vt := t.vt()
	switch t.Subtype {
	case Instant:
		inst, err := f(t.inst)
		if err != nil {
			return nil, err
		}
		bbox, err := instantBBox(vt, inst.Value, inst.T, t.SRID, tv)
		if err != nil {
			return nil, err
		}
		out := *t
		out.inst, out.bbox = inst, bbox
		return &out, nil
	case DiscreteSeq, ContSeq:
		instants := make([]Inst, len(t.instants))
		for i, inst := range t.instants {
			ni, err := f(inst)
			if err != nil {
				return nil, err
			}
			instants[i] = ni
		}
		bbox, err := boundingBoxOf(instants, vt, t.SRID, tv)
		if err != nil {
			return nil, err
		}
		out := *t
		out.instants, out.bbox = instants, bbox
		return &out, nil
	case SeqSet:
		seqs := make([]*Temporal, len(t.sequences))
		boxes := make([]*BBox, len(t.sequences))
		for i, s := range t.sequences {
			ns, err := s.mapInstants(op, f, tv)
			if err != nil {
				return nil, err
			}
			seqs[i] = ns
			boxes[i] = ns.bbox
		}
		bbox, err := foldBBoxes(boxes)
		if err != nil {
			return nil, err
		}
		out := *t
		out.sequences, out.bbox = seqs, bbox
		return &out, nil
	default:
		return nil, merr.New(op, merr.InternalTypeError, "unknown subtype %d", t.Subtype)
	}
}

// ShiftTime shifts every instant's timestamp by delta, preserving the
// value domain.
func (t *Temporal) ShiftTime(delta time.Duration, tv spantime.TimeVTable) (*Temporal, error) {
	return t.mapInstants("Temporal.ShiftTime", func(inst Inst) (Inst, error) {
		return Inst{Value: inst.Value, T: inst.T.Add(delta)}, nil
	}, tv)
}

// ScaleTime rescales t's time domain uniformly so its total duration
// becomes newDuration, keeping the start time fixed.
func (t *Temporal) ScaleTime(newDuration time.Duration, tv spantime.TimeVTable) (*Temporal, error) {
	const op = "Temporal.ScaleTime"
	if newDuration <= 0 {
		return nil, merr.New(op, merr.InvalidArgValue, "scale duration must be positive")
	}
	start := t.StartTime()
	oldDuration := t.EndTime().Sub(start)
	if oldDuration == 0 {
		return t.mapInstants(op, func(inst Inst) (Inst, error) { return inst, nil }, tv)
	}
	factor := float64(newDuration) / float64(oldDuration)
	return t.mapInstants(op, func(inst Inst) (Inst, error) {
		offset := time.Duration(float64(inst.T.Sub(start)) * factor)
		return Inst{Value: inst.Value, T: start.Add(offset)}, nil
	}, tv)
}

func requireNumeric(op string, vt basetype.VTable) error {
	if vt.SpanType != basetype.IntSpan && vt.SpanType != basetype.FloatSpan {
		return merr.New(op, merr.InvalidArgType, "value transform requires a numeric base type")
	}
	return nil
}

// ShiftValue adds delta to every value t carries. It requires a numeric
// base type.
func (t *Temporal) ShiftValue(delta basetype.Value, tv spantime.TimeVTable) (*Temporal, error) {
	const op = "Temporal.ShiftValue"
	vt := t.vt()
	if err := requireNumeric(op, vt); err != nil {
		return nil, err
	}
	return t.mapInstants(op, func(inst Inst) (Inst, error) {
		nv, err := vt.Add(inst.Value, delta)
		if err != nil {
			return Inst{}, err
		}
		return Inst{Value: nv, T: inst.T}, nil
	}, tv)
}

func scaleNumeric(vt basetype.VTable, v, origin basetype.Value, factor float64) basetype.Value {
	switch vt.SpanType {
	case basetype.IntSpan:
		ov, vv := origin.(int32), v.(int32)
		return int32(float64(ov) + float64(vv-ov)*factor)
	case basetype.FloatSpan:
		ov, vv := origin.(float64), v.(float64)
		return ov + (vv-ov)*factor
	default:
		return v
	}
}

// ScaleValue rescales t's value range uniformly so its width becomes
// newWidth, keeping the minimum value fixed. It requires a numeric base
// type.
func (t *Temporal) ScaleValue(newWidth basetype.Value, tv spantime.TimeVTable) (*Temporal, error) {
	const op = "Temporal.ScaleValue"
	vt := t.vt()
	if err := requireNumeric(op, vt); err != nil {
		return nil, err
	}
	minV, maxV := t.MinValue(), t.MaxValue()
	var oldWidth, newWidthF float64
	switch vt.SpanType {
	case basetype.IntSpan:
		oldWidth = float64(maxV.(int32) - minV.(int32))
		newWidthF = float64(newWidth.(int32))
	case basetype.FloatSpan:
		oldWidth = maxV.(float64) - minV.(float64)
		newWidthF = newWidth.(float64)
	}
	if oldWidth == 0 {
		return t.mapInstants(op, func(inst Inst) (Inst, error) { return inst, nil }, tv)
	}
	factor := newWidthF / oldWidth
	return t.mapInstants(op, func(inst Inst) (Inst, error) {
		return Inst{Value: scaleNumeric(vt, inst.Value, minV, factor), T: inst.T}, nil
	}, tv)
}

// ShiftScaleValue composes ScaleValue followed by ShiftValue.
func (t *Temporal) ShiftScaleValue(delta, newWidth basetype.Value, tv spantime.TimeVTable) (*Temporal, error) {
	scaled, err := t.ScaleValue(newWidth, tv)
	if err != nil {
		return nil, err
	}
	return scaled.ShiftValue(delta, tv)
}

// SetInterpolation converts t to newInterp, handling the three possible
// directions of conversion (discrete/step/linear) between each other.
func (t *Temporal) SetInterpolation(newInterp Interp, tv spantime.TimeVTable) (*Temporal, error) {
	const op = "Temporal.SetInterpolation"
	vt := t.vt()
	switch newInterp {
	case DiscreteInterp:
		return t.toDiscrete(op)
	case Step:
		return t.toStep(op, vt, tv)
	case Linear:
		return t.toLinear(op, vt, tv)
	default:
		return nil, merr.New(op, merr.InvalidArgValue, "unknown interpolation %d", newInterp)
	}
}

func (t *Temporal) toDiscrete(op string) (*Temporal, error) {
	switch t.Subtype {
	case Instant:
		return MakeSequence(t.BaseType, []Inst{t.inst}, true, true, DiscreteInterp, false, WithRegistry(t.reg))
	case SeqSet:
		instants := make([]Inst, 0, len(t.sequences))
		for _, s := range t.sequences {
			if len(s.instants) != 1 {
				return nil, merr.New(op, merr.InvalidArgType, "to_discrete requires a sequence set of singletons")
			}
			instants = append(instants, s.instants[0])
		}
		return MakeSequence(t.BaseType, instants, true, true, DiscreteInterp, false, WithRegistry(t.reg))
	default:
		return nil, merr.New(op, merr.InvalidArgType, "to_discrete requires an instant or a sequence set of singletons")
	}
}

func validateStepCandidate(op string, s *Temporal, vt basetype.VTable) error {
	if len(s.instants) > 2 {
		return merr.New(op, merr.InvalidArgValue, "to_step requires sequences of at most 2 instants")
	}
	if len(s.instants) == 2 && !vt.Eq(s.instants[0].Value, s.instants[1].Value) {
		return merr.New(op, merr.InvalidArgValue, "to_step requires equal endpoints")
	}
	return nil
}

func (t *Temporal) toStep(op string, vt basetype.VTable, tv spantime.TimeVTable) (*Temporal, error) {
	switch t.Subtype {
	case ContSeq:
		if err := validateStepCandidate(op, t, vt); err != nil {
			return nil, err
		}
		return MakeSequence(t.BaseType, t.instants, t.lowerInc, t.upperInc, Step, false, WithRegistry(t.reg), WithTimeVTable(tv))
	case SeqSet:
		seqs := make([]*Temporal, len(t.sequences))
		for i, s := range t.sequences {
			if err := validateStepCandidate(op, s, vt); err != nil {
				return nil, err
			}
			ns, err := MakeSequence(s.BaseType, s.instants, s.lowerInc, s.upperInc, Step, false, WithRegistry(s.reg), WithTimeVTable(tv))
			if err != nil {
				return nil, err
			}
			seqs[i] = ns
		}
		return MakeSequenceSet(seqs, false, WithRegistry(t.reg))
	default:
		return nil, merr.New(op, merr.InvalidArgType, "to_step requires a continuous sequence or sequence set")
	}
}

func (t *Temporal) toLinear(op string, vt basetype.VTable, tv spantime.TimeVTable) (*Temporal, error) {
	switch t.Subtype {
	case ContSeq:
		if t.Flags.Interp != Step {
			return nil, merr.New(op, merr.InvalidArgType, "to_linear requires a step sequence")
		}
		return explodeStep(t, vt, tv)
	case SeqSet:
		var segs []*Temporal
		for _, s := range t.sequences {
			if s.Flags.Interp != Step {
				return nil, merr.New(op, merr.InvalidArgType, "to_linear requires a step sequence set")
			}
			exploded, err := explodeStep(s, vt, tv)
			if err != nil {
				return nil, err
			}
			if exploded.Subtype == SeqSet {
				segs = append(segs, exploded.sequences...)
			} else {
				segs = append(segs, exploded)
			}
		}
		return MakeSequenceSet(segs, true, WithRegistry(t.reg), WithTimeVTable(tv))
	default:
		return nil, merr.New(op, merr.InvalidArgType, "to_linear requires a continuous sequence or sequence set")
	}
}

// explodeStep turns a step sequence into a set of flat linear sequences
// with equal endpoints, one per step level, plus a trailing singleton if
// the original upper bound was inclusive
func explodeStep(s *Temporal, vt basetype.VTable, tv spantime.TimeVTable) (*Temporal, error) {
	n := len(s.instants)
	if n < 2 {
		return MakeSequence(s.BaseType, s.instants, true, true, Linear, false, WithRegistry(s.reg), WithTimeVTable(tv))
	}
	var segs []*Temporal
	for i := 0; i < n-1; i++ {
		a, b := s.instants[i], s.instants[i+1]
		lowerInc := true
		if i == 0 {
			lowerInc = s.lowerInc
		}
		flat := []Inst{a, {Value: a.Value, T: b.T}}
		seg, err := MakeSequence(s.BaseType, flat, lowerInc, false, Linear, false, WithRegistry(s.reg), WithTimeVTable(tv))
		if err != nil {
			return nil, err
		}
		segs = append(segs, seg)
	}
	if s.upperInc {
		last := s.instants[n-1]
		seg, err := MakeSequence(s.BaseType, []Inst{last}, true, true, Linear, false, WithRegistry(s.reg), WithTimeVTable(tv))
		if err != nil {
			return nil, err
		}
		segs = append(segs, seg)
	}
	return MakeSequenceSet(segs, true, WithRegistry(s.reg), WithTimeVTable(tv))
}
