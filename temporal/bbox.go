package temporal

import (
	"time"

	"github.com/mobilitydb/meos-go/basetype"
	"github.com/mobilitydb/meos-go/geo"
	"github.com/mobilitydb/meos-go/merr"
	"github.com/mobilitydb/meos-go/spantime"
	"github.com/mobilitydb/meos-go/stbox"
)

// BBoxKind selects which of BBox's fields are meaningful:
// "a scalar span for numeric base types, an STBox for spatial base types,
// a time span otherwise."
type BBoxKind uint8

const (
	TimeOnly BBoxKind = iota
	Numeric
	Spatial
)

// BBox is the typed bounding box every Temporal carries inline, coupled
// to the value it describes. For Numeric it bundles a value-span and
// a time-span, mirroring MEOS's Tbox; for Spatial the STBox already
// contains its own time range when HasT is set.
type BBox struct {
	Kind      BBoxKind
	ValueSpan *spantime.Span // Numeric only
	TimeSpan  *spantime.Span // Numeric, TimeOnly
	STBox     *stbox.STBox   // Spatial only
}

func timeCmp(tv spantime.TimeVTable) spantime.CmpFunc { return spantime.TimestampCmp(tv) }

// instantBBox computes the single-instant bounding box for value v at
// timestamp t, dispatching on the base type's registered flavour.
func instantBBox(vt basetype.VTable, v basetype.Value, t time.Time, srid int32, tv spantime.TimeVTable) (*BBox, error) {
	ts, err := spantime.New(t, t, true, true, timeCmp(tv))
	if err != nil {
		return nil, err
	}
	if vt.Geo != nil {
		p := v.(geo.Point)
		b, err := stbox.New(true, vt.Geo.HasZ(v), true, vt.Geo.Geodetic(v), srid,
			p.X, p.X, p.Y, p.Y, p.Z, p.Z, t, t)
		if err != nil {
			return nil, err
		}
		return &BBox{Kind: Spatial, STBox: b}, nil
	}
	switch vt.SpanType {
	case basetype.IntSpan, basetype.FloatSpan:
		vs, err := spantime.New(v, v, true, true, spanCmp(vt))
		if err != nil {
			return nil, err
		}
		return &BBox{Kind: Numeric, ValueSpan: vs, TimeSpan: ts}, nil
	default:
		return &BBox{Kind: TimeOnly, TimeSpan: ts}, nil
	}
}

func spanCmp(vt basetype.VTable) spantime.CmpFunc {
	switch vt.SpanType {
	case basetype.IntSpan:
		return spantime.IntCmp
	case basetype.FloatSpan:
		return spantime.FloatCmp
	default:
		return nil
	}
}

// Expand folds another BBox into b, returning the component-wise bounding
// result. Both must share the same Kind.
func (b *BBox) Expand(o *BBox) (*BBox, error) {
	const op = "BBox.Expand"
	if b.Kind != o.Kind {
		return nil, merr.New(op, merr.InternalTypeError, "mismatched bbox kinds %d vs %d", b.Kind, o.Kind)
	}
	switch b.Kind {
	case Spatial:
		box, err := b.STBox.Expand(o.STBox)
		if err != nil {
			return nil, err
		}
		return &BBox{Kind: Spatial, STBox: box}, nil
	case Numeric:
		return &BBox{Kind: Numeric, ValueSpan: b.ValueSpan.Expand(o.ValueSpan), TimeSpan: b.TimeSpan.Expand(o.TimeSpan)}, nil
	default:
		return &BBox{Kind: TimeOnly, TimeSpan: b.TimeSpan.Expand(o.TimeSpan)}, nil
	}
}

// foldBBoxes computes the bounding box of a non-empty slice of BBoxes by
// repeated Expand: a sequence's box always equals the fold of its
// instants' boxes, and a sequence set's box the fold of its sequences'.
func foldBBoxes(boxes []*BBox) (*BBox, error) {
	result := boxes[0]
	for _, b := range boxes[1:] {
		var err error
		result, err = result.Expand(b)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Period returns the bbox's time extent as a Span over time.Time,
// regardless of Kind.
func (b *BBox) Period() *spantime.Span {
	if b.Kind == Spatial {
		if !b.STBox.HasT {
			return nil
		}
		sp, _ := spantime.New(b.STBox.TMin, b.STBox.TMax, true, true, func(a, c interface{}) int {
			at, ct := a.(time.Time), c.(time.Time)
			switch {
			case at.Before(ct):
				return -1
			case at.After(ct):
				return 1
			default:
				return 0
			}
		})
		return sp
	}
	return b.TimeSpan
}
