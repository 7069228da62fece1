package temporal

import (
	"time"

	"github.com/mobilitydb/meos-go/basetype"
	"github.com/mobilitydb/meos-go/geo"
	"github.com/mobilitydb/meos-go/merr"
	"github.com/mobilitydb/meos-go/spantime"
)

type buildOpts struct {
	reg *basetype.Registry
	tv  spantime.TimeVTable
}

// Option configures a constructor call. The zero value of buildOpts (no
// options given) uses the process-wide default registry and the stdlib-
// backed default time vtable, following the functional-options idiom.
type Option func(*buildOpts)

// WithRegistry overrides the base-type registry a constructor validates
// against.
func WithRegistry(r *basetype.Registry) Option { return func(o *buildOpts) { o.reg = r } }

// WithTimeVTable overrides the calendar-arithmetic interface a constructor
// delegates to.
func WithTimeVTable(tv spantime.TimeVTable) Option { return func(o *buildOpts) { o.tv = tv } }

func makeOpts(options ...Option) buildOpts {
	o := buildOpts{reg: basetype.Default(), tv: spantime.DefaultTime}
	for _, opt := range options {
		opt(&o)
	}
	return o
}

// MakeInstant builds an Instant temporal value.
func MakeInstant(bt basetype.Type, v basetype.Value, t time.Time, options ...Option) (*Temporal, error) {
	const op = "temporal.MakeInstant"
	o := makeOpts(options...)
	vt, err := o.reg.Lookup(bt)
	if err != nil {
		return nil, err
	}
	var srid int32
	if vt.Geo != nil {
		srid = vt.Geo.SRID(v)
	}
	bbox, err := instantBBox(vt, v, t, srid, o.tv)
	if err != nil {
		return nil, merr.Wrap(op, merr.InvalidArgValue, err, "computing bounding box")
	}
	return &Temporal{
		Subtype:  Instant,
		BaseType: bt,
		SRID:     srid,
		Flags:    flagsFor(vt, v, DiscreteInterp),
		inst:     Inst{Value: v, T: t},
		bbox:     bbox,
		reg:      o.reg,
	}, nil
}

func flagsFor(vt basetype.VTable, sample basetype.Value, interp Interp) Flags {
	f := Flags{
		HasT:       true,
		ByValue:    vt.ByValue,
		Continuous: vt.Continuous,
		Interp:     interp,
	}
	if vt.Geo != nil {
		f.HasX = true
		f.HasZ = vt.Geo.HasZ(sample)
		f.Geodetic = vt.Geo.Geodetic(sample)
	}
	return f
}

// validateInstants checks the common preconditions shared by every
// multi-instant constructor: non-empty, strictly
// increasing timestamps (equal only in mergeMode and only when the values
// also agree), and consistent SRID/dimensionality for spatial types. It
// returns the resolved SRID (0 if the base type is non-spatial or no
// instant carries one).
func validateInstants(op string, instants []Inst, vt basetype.VTable, mergeMode bool, tv spantime.TimeVTable) (int32, error) {
	if len(instants) == 0 {
		return 0, merr.New(op, merr.InvalidArgValue, "empty instant list")
	}
	var srid int32
	var hasZ bool
	zSet := false
	for i, inst := range instants {
		if vt.Geo != nil {
			p := inst.Value.(geo.Point)
			if p.SRID != 0 {
				if srid == 0 {
					srid = p.SRID
				} else if srid != p.SRID {
					return 0, merr.New(op, merr.SridMismatch, "instant %d SRID %d conflicts with %d", i, p.SRID, srid)
				}
			}
			if !zSet {
				hasZ, zSet = vt.Geo.HasZ(inst.Value), true
			} else if vt.Geo.HasZ(inst.Value) != hasZ {
				return 0, merr.New(op, merr.DimensionMismatch, "instant %d dimensionality differs from the rest", i)
			}
		}
		if i == 0 {
			continue
		}
		c := tv.CmpTimestamp(instants[i-1].T, inst.T)
		if c > 0 {
			return 0, merr.New(op, merr.InvalidArgValue, "non-increasing timestamp at instant %d", i)
		}
		if c == 0 {
			if !mergeMode {
				return 0, merr.New(op, merr.InvalidArgValue, "duplicate timestamp at instant %d", i)
			}
			if !vt.Eq(instants[i-1].Value, inst.Value) {
				return 0, merr.New(op, merr.InvalidArgValue, "duplicate timestamp at instant %d with differing values", i)
			}
		}
	}
	return srid, nil
}

// shouldDrop reports whether cur, the middle of the triple (prev, cur,
// next), is redundant: step sequences drop an instant
// equal to the previous one; linear sequences drop an instant that makes
// three equal values, or one that is collinear in time with its neighbors.
func shouldDrop(prev, cur, next Inst, vt basetype.VTable, interp Interp) bool {
	switch interp {
	case Step:
		return vt.Eq(prev.Value, cur.Value)
	case Linear:
		if vt.Eq(prev.Value, cur.Value) && vt.Eq(cur.Value, next.Value) {
			return true
		}
		if vt.Continuous {
			total := next.T.Sub(prev.T)
			if total == 0 {
				return false
			}
			ratio := float64(cur.T.Sub(prev.T)) / float64(total)
			return vt.Collinear(prev.Value, cur.Value, next.Value, ratio)
		}
		return false
	default:
		return false
	}
}

// normalizeInstants compacts a run of instants in a single forward pass,
// mirroring tinstarr_normalize's one-pass array compaction rather than
// repeatedly rescanning triples.
func normalizeInstants(instants []Inst, vt basetype.VTable, interp Interp) []Inst {
	n := len(instants)
	if n < 3 || interp == DiscreteInterp {
		out := make([]Inst, n)
		copy(out, instants)
		return out
	}
	out := make([]Inst, 0, n)
	out = append(out, instants[0])
	for i := 1; i < n-1; i++ {
		prev := out[len(out)-1]
		if shouldDrop(prev, instants[i], instants[i+1], vt, interp) {
			continue
		}
		out = append(out, instants[i])
	}
	out = append(out, instants[n-1])
	return out
}

// MakeSequence validates and builds a discrete or continuous sequence.
// interp == DiscreteInterp produces a DiscreteSeq (bounds implicitly
// "[.]"); otherwise a ContSeq with the given bounds.
func MakeSequence(bt basetype.Type, instants []Inst, lowerInc, upperInc bool, interp Interp, normalize bool, options ...Option) (*Temporal, error) {
	const op = "temporal.MakeSequence"
	o := makeOpts(options...)
	vt, err := o.reg.Lookup(bt)
	if err != nil {
		return nil, err
	}
	if interp == Linear && !vt.Continuous {
		return nil, merr.New(op, merr.InvalidArgType, "linear interpolation requires a continuous base type")
	}
	srid, err := validateInstants(op, instants, vt, false, o.tv)
	if err != nil {
		return nil, err
	}

	subtype := ContSeq
	if interp == DiscreteInterp {
		subtype = DiscreteSeq
		lowerInc, upperInc = true, true
	} else {
		if len(instants) == 1 && !(lowerInc && upperInc) {
			return nil, merr.New(op, merr.InvalidArgValue, "singleton sequence must have both bounds inclusive")
		}
		if interp == Step && !upperInc && len(instants) > 1 {
			last, prev := instants[len(instants)-1], instants[len(instants)-2]
			if !vt.Eq(prev.Value, last.Value) {
				return nil, merr.New(op, merr.InvalidArgValue, "step sequence with exclusive upper bound requires the last two values to be equal")
			}
		}
	}

	work := instants
	if normalize && subtype == ContSeq {
		work = normalizeInstants(instants, vt, interp)
	} else {
		work = append([]Inst(nil), instants...)
	}

	bbox, err := boundingBoxOf(work, vt, srid, o.tv)
	if err != nil {
		return nil, err
	}

	return &Temporal{
		Subtype:  subtype,
		BaseType: bt,
		SRID:     srid,
		Flags:    flagsFor(vt, work[0].Value, interp),
		instants: work,
		lowerInc: lowerInc,
		upperInc: upperInc,
		bbox:     bbox,
		reg:      o.reg,
	}, nil
}

func boundingBoxOf(instants []Inst, vt basetype.VTable, srid int32, tv spantime.TimeVTable) (*BBox, error) {
	boxes := make([]*BBox, len(instants))
	for i, inst := range instants {
		b, err := instantBBox(vt, inst.Value, inst.T, srid, tv)
		if err != nil {
			return nil, err
		}
		boxes[i] = b
	}
	return foldBBoxes(boxes)
}

// tryJoin attempts to merge sequence a's trailing instants with sequence
// b's leading instants at a shared touching timestamp, implementing the
// four sequence-set join rules. It returns nil if a and b cannot be
// joined (they don't touch in time).
func tryJoin(aInstants []Inst, aUpperInc bool, bInstants []Inst, vt basetype.VTable, interp Interp, tv spantime.TimeVTable) []Inst {
	aLast := aInstants[len(aInstants)-1]
	bFirst := bInstants[0]
	if tv.CmpTimestamp(aLast.T, bFirst.T) != 0 {
		return nil
	}

	// Rule: step with an excluded trailing instant is always redundant —
	// the covered value up to the boundary is already the prior instant's.
	if interp == Step && !aUpperInc {
		merged := append(append([]Inst{}, aInstants[:len(aInstants)-1]...), bInstants...)
		return merged
	}

	if !vt.Eq(aLast.Value, bFirst.Value) {
		return nil
	}

	// Matching boundary value: collapse the duplicate endpoint, keeping
	// one copy (b's).
	merged := append(append([]Inst{}, aInstants...), bInstants[1:]...)

	// If the collapsed boundary point is itself now redundant (collinear,
	// or a step run continuing at the same value), drop it too.
	idx := len(aInstants) - 1
	if idx >= 1 && idx+1 < len(merged) {
		if shouldDrop(merged[idx-1], merged[idx], merged[idx+1], vt, interp) {
			merged = append(merged[:idx], merged[idx+1:]...)
		}
	}
	return merged
}

type seqAcc struct {
	instants           []Inst
	lowerInc, upperInc bool
}

func joinSequences(seqs []*Temporal, vt basetype.VTable, interp Interp, tv spantime.TimeVTable) []seqAcc {
	cur := seqAcc{instants: append([]Inst{}, seqs[0].instants...), lowerInc: seqs[0].lowerInc, upperInc: seqs[0].upperInc}
	var out []seqAcc
	for i := 1; i < len(seqs); i++ {
		next := seqs[i]
		if merged := tryJoin(cur.instants, cur.upperInc, next.instants, vt, interp, tv); merged != nil {
			cur.instants = merged
			cur.upperInc = next.upperInc
			continue
		}
		out = append(out, cur)
		cur = seqAcc{instants: append([]Inst{}, next.instants...), lowerInc: next.lowerInc, upperInc: next.upperInc}
	}
	out = append(out, cur)
	return out
}

// MakeSequenceSet validates and builds a sequence set from already-built
// continuous sequences sharing the same base type, interpolation and
// spatial frame
func MakeSequenceSet(sequences []*Temporal, normalize bool, options ...Option) (*Temporal, error) {
	const op = "temporal.MakeSequenceSet"
	o := makeOpts(options...)
	if len(sequences) == 0 {
		return nil, merr.New(op, merr.InvalidArgValue, "empty sequence list")
	}
	bt := sequences[0].BaseType
	interp := sequences[0].Flags.Interp
	for i, s := range sequences {
		if s.Subtype != ContSeq {
			return nil, merr.New(op, merr.InvalidArgType, "sequence %d is not a continuous sequence", i)
		}
		if s.BaseType != bt {
			return nil, merr.New(op, merr.InvalidArgType, "sequence %d has a different base type", i)
		}
		if s.Flags.Interp != interp {
			return nil, merr.New(op, merr.InvalidArgType, "sequence %d has a different interpolation", i)
		}
		if i+1 < len(sequences) {
			b := sequences[i+1]
			aEnd, bStart := s.instants[len(s.instants)-1], b.instants[0]
			c := o.tv.CmpTimestamp(aEnd.T, bStart.T)
			if c > 0 {
				return nil, merr.New(op, merr.InvalidArgValue, "sequence %d starts before sequence %d ends", i+1, i)
			}
			if c == 0 && s.upperInc && b.lowerInc {
				return nil, merr.New(op, merr.InvalidArgValue, "sequences %d and %d share an inclusive boundary instant", i, i+1)
			}
		}
	}
	vt, err := o.reg.Lookup(bt)
	if err != nil {
		return nil, err
	}

	accs := []seqAcc{{instants: sequences[0].instants, lowerInc: sequences[0].lowerInc, upperInc: sequences[0].upperInc}}
	if normalize && len(sequences) > 1 {
		accs = joinSequences(sequences, vt, interp, o.tv)
	} else {
		accs = make([]seqAcc, len(sequences))
		for i, s := range sequences {
			accs[i] = seqAcc{instants: s.instants, lowerInc: s.lowerInc, upperInc: s.upperInc}
		}
	}

	srid := int32(0)
	for _, s := range sequences {
		if s.SRID != 0 {
			srid = s.SRID
			break
		}
	}

	work := make([]*Temporal, len(accs))
	boxes := make([]*BBox, len(accs))
	flags := flagsFor(vt, accs[0].instants[0].Value, interp)
	for i, a := range accs {
		bbox, err := boundingBoxOf(a.instants, vt, srid, o.tv)
		if err != nil {
			return nil, err
		}
		work[i] = &Temporal{
			Subtype: ContSeq, BaseType: bt, SRID: srid, Flags: flags,
			instants: a.instants, lowerInc: a.lowerInc, upperInc: a.upperInc,
			bbox: bbox, reg: o.reg,
		}
		boxes[i] = bbox
	}
	bbox, err := foldBBoxes(boxes)
	if err != nil {
		return nil, err
	}

	return &Temporal{
		Subtype: SeqSet, BaseType: bt, SRID: srid, Flags: flags,
		sequences: work, bbox: bbox, reg: o.reg,
	}, nil
}

// MakeSequenceSetWithGaps builds a sequence set by cutting a flat instant
// array whenever the gap to the next instant exceeds maxInterval in time or
// maxDistance in value (per the base type's Distance)
func MakeSequenceSetWithGaps(bt basetype.Type, instants []Inst, interp Interp, maxInterval *time.Duration, maxDistance *float64, options ...Option) (*Temporal, error) {
	const op = "temporal.MakeSequenceSetWithGaps"
	o := makeOpts(options...)
	vt, err := o.reg.Lookup(bt)
	if err != nil {
		return nil, err
	}
	if _, err := validateInstants(op, instants, vt, false, o.tv); err != nil {
		return nil, err
	}

	var groups [][]Inst
	cur := []Inst{instants[0]}
	for i := 1; i < len(instants); i++ {
		cut := false
		if maxInterval != nil && instants[i].T.Sub(instants[i-1].T) > *maxInterval {
			cut = true
		}
		if !cut && maxDistance != nil && vt.Distance != nil {
			d, err := vt.Distance(instants[i-1].Value, instants[i].Value)
			if err != nil {
				return nil, merr.Wrap(op, merr.InvalidArgValue, err, "computing distance between instants %d and %d", i-1, i)
			}
			if d > *maxDistance {
				cut = true
			}
		}
		if cut {
			groups = append(groups, cur)
			cur = []Inst{instants[i]}
		} else {
			cur = append(cur, instants[i])
		}
	}
	groups = append(groups, cur)

	seqs := make([]*Temporal, len(groups))
	for i, g := range groups {
		s, err := MakeSequence(bt, g, true, true, interp, true, options...)
		if err != nil {
			return nil, err
		}
		seqs[i] = s
	}
	return MakeSequenceSet(seqs, true, options...)
}
