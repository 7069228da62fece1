package temporal

import (
	"sort"
	"time"

	"github.com/mobilitydb/meos-go/basetype"
	"github.com/mobilitydb/meos-go/merr"
	"github.com/mobilitydb/meos-go/spantime"
)

// N returns the number of instants t carries: 1 for an Instant, len(instants)
// for a (discrete or continuous) sequence, and the sum across children for a
// sequence set.
func (t *Temporal) N() int {
	switch t.Subtype {
	case Instant:
		return 1
	case DiscreteSeq, ContSeq:
		return len(t.instants)
	case SeqSet:
		n := 0
		for _, s := range t.sequences {
			n += len(s.instants)
		}
		return n
	default:
		return 0
	}
}

// InstantAt returns the i-th instant across t's flattened instant sequence.
func (t *Temporal) InstantAt(i int) (Inst, error) {
	const op = "Temporal.InstantAt"
	switch t.Subtype {
	case Instant:
		if i != 0 {
			return Inst{}, merr.New(op, merr.InvalidArgValue, "index %d out of range", i)
		}
		return t.inst, nil
	case DiscreteSeq, ContSeq:
		if i < 0 || i >= len(t.instants) {
			return Inst{}, merr.New(op, merr.InvalidArgValue, "index %d out of range", i)
		}
		return t.instants[i], nil
	case SeqSet:
		for _, s := range t.sequences {
			if i < len(s.instants) {
				return s.instants[i], nil
			}
			i -= len(s.instants)
		}
		return Inst{}, merr.New(op, merr.InvalidArgValue, "index out of range")
	default:
		return Inst{}, merr.New(op, merr.InternalTypeError, "unknown subtype %d", t.Subtype)
	}
}

// Bounds reports t's lower/upper inclusivity. Instants and discrete
// sequences are always "[.]"; sequence sets report their first/last child's
// bounds, matching the source's lower_inc/upper_inc accessors.
func (t *Temporal) Bounds() (lowerInc, upperInc bool) {
	switch t.Subtype {
	case Instant, DiscreteSeq:
		return true, true
	case ContSeq:
		return t.lowerInc, t.upperInc
	case SeqSet:
		if len(t.sequences) == 0 {
			return true, true
		}
		first, last := t.sequences[0], t.sequences[len(t.sequences)-1]
		return first.lowerInc, last.upperInc
	default:
		return true, true
	}
}

// SequenceN returns the number of child sequences a sequence set carries, or
// 0 for any other subtype.
func (t *Temporal) SequenceN() int {
	if t.Subtype != SeqSet {
		return 0
	}
	return len(t.sequences)
}

// SequenceAt returns the i-th child sequence of a sequence set.
func (t *Temporal) SequenceAt(i int) (*Temporal, error) {
	const op = "Temporal.SequenceAt"
	if t.Subtype != SeqSet {
		return nil, merr.New(op, merr.InvalidArgType, "not a sequence set")
	}
	if i < 0 || i >= len(t.sequences) {
		return nil, merr.New(op, merr.InvalidArgValue, "index %d out of range", i)
	}
	return t.sequences[i], nil
}

// StartInstant and EndInstant return t's first/last instant in time order,
// descending into children as needed.
func (t *Temporal) StartInstant() Inst {
	switch t.Subtype {
	case Instant:
		return t.inst
	case DiscreteSeq, ContSeq:
		return t.instants[0]
	case SeqSet:
		return t.sequences[0].StartInstant()
	default:
		return Inst{}
	}
}

func (t *Temporal) EndInstant() Inst {
	switch t.Subtype {
	case Instant:
		return t.inst
	case DiscreteSeq, ContSeq:
		return t.instants[len(t.instants)-1]
	case SeqSet:
		return t.sequences[len(t.sequences)-1].EndInstant()
	default:
		return Inst{}
	}
}

// StartTime and EndTime project StartInstant/EndInstant onto their
// timestamp.
func (t *Temporal) StartTime() time.Time { return t.StartInstant().T }
func (t *Temporal) EndTime() time.Time   { return t.EndInstant().T }

// Duration returns the span between t's first and last instant. It is zero
// for an Instant or a single-instant sequence.
func (t *Temporal) Duration() time.Duration {
	return t.EndTime().Sub(t.StartTime())
}

// Time returns t's temporal extent as a SpanSet: a single contiguous span
// for a continuous sequence, one point-span per instant for a discrete
// sequence or instant, and the union across children for a sequence set.
func (t *Temporal) Time(tv spantime.TimeVTable) (*spantime.SpanSet, error) {
	cmp := spantime.TimestampCmp(tv)
	switch t.Subtype {
	case Instant:
		sp, err := spantime.New(t.inst.T, t.inst.T, true, true, cmp)
		if err != nil {
			return nil, err
		}
		return spantime.NewSpanSet([]*spantime.Span{sp})
	case DiscreteSeq:
		spans := make([]*spantime.Span, len(t.instants))
		for i, inst := range t.instants {
			sp, err := spantime.New(inst.T, inst.T, true, true, cmp)
			if err != nil {
				return nil, err
			}
			spans[i] = sp
		}
		return spantime.NewSpanSet(spans)
	case ContSeq:
		sp, err := spantime.New(t.StartTime(), t.EndTime(), t.lowerInc, t.upperInc, cmp)
		if err != nil {
			return nil, err
		}
		return spantime.NewSpanSet([]*spantime.Span{sp})
	case SeqSet:
		var spans []*spantime.Span
		for _, s := range t.sequences {
			sp, err := spantime.New(s.StartTime(), s.EndTime(), s.lowerInc, s.upperInc, cmp)
			if err != nil {
				return nil, err
			}
			spans = append(spans, sp)
		}
		return spantime.NewSpanSet(spans)
	default:
		return nil, merr.New("Temporal.Time", merr.InternalTypeError, "unknown subtype %d", t.Subtype)
	}
}

// eachInstant invokes f on every instant t carries, in time order.
func (t *Temporal) eachInstant(f func(Inst)) {
	switch t.Subtype {
	case Instant:
		f(t.inst)
	case DiscreteSeq, ContSeq:
		for _, inst := range t.instants {
			f(inst)
		}
	case SeqSet:
		for _, s := range t.sequences {
			s.eachInstant(f)
		}
	}
}

// Values returns the sorted, deduplicated set of base-type values t ever
// takes.
func (t *Temporal) Values() []basetype.Value {
	vt := t.vt()
	var vals []basetype.Value
	t.eachInstant(func(inst Inst) { vals = append(vals, inst.Value) })
	sort.Slice(vals, func(i, j int) bool { return vt.Cmp(vals[i], vals[j]) < 0 })
	out := vals[:0]
	for i, v := range vals {
		if i == 0 || !vt.Eq(out[len(out)-1], v) {
			out = append(out, v)
		}
	}
	return out
}

// ValueSpans returns t's distinct values as a SpanSet of point-spans over
// the base type's numeric span type. It requires a numeric base type.
func (t *Temporal) ValueSpans() (*spantime.SpanSet, error) {
	const op = "Temporal.ValueSpans"
	vt := t.vt()
	cmp := spanCmp(vt)
	if cmp == nil {
		return nil, merr.New(op, merr.InvalidArgType, "value_spans requires a numeric base type")
	}
	values := t.Values()
	spans := make([]*spantime.Span, len(values))
	for i, v := range values {
		sp, err := spantime.New(v, v, true, true, cmp)
		if err != nil {
			return nil, err
		}
		spans[i] = sp
	}
	return spantime.NewSpanSet(spans)
}

// MinValue and MaxValue return the least/greatest value t ever takes, per
// the base type's total order.
func (t *Temporal) MinValue() basetype.Value {
	values := t.Values()
	return values[0]
}

func (t *Temporal) MaxValue() basetype.Value {
	values := t.Values()
	return values[len(values)-1]
}

// TimestampN returns the timestamp of t's i-th instant, indexed the same way
// as InstantAt.
func (t *Temporal) TimestampN(i int) (time.Time, error) {
	inst, err := t.InstantAt(i)
	if err != nil {
		return time.Time{}, err
	}
	return inst.T, nil
}

// locateExact binary-searches instants (strictly increasing by T) for an
// exact timestamp match.
func locateExact(instants []Inst, at time.Time, tv spantime.TimeVTable) (int, bool) {
	i := sort.Search(len(instants), func(k int) bool { return tv.CmpTimestamp(instants[k].T, at) >= 0 })
	if i < len(instants) && tv.CmpTimestamp(instants[i].T, at) == 0 {
		return i, true
	}
	return 0, false
}
