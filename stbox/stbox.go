// Package stbox implements the spatiotemporal bounding box (C3): an
// optionally-spatial, optionally-temporal, optionally-geodetic box with an
// SRID, used to index and prune temporal values without touching their
// inner instants.
package stbox

import (
	"time"

	"github.com/mobilitydb/meos-go/merr"
)

// STBox is (flags, srid, xmin, xmax, ymin, ymax, zmin, zmax, tmin, tmax)
// HasX toggles the spatial coordinates; HasZ, Geodetic, HasT
// are independent of HasX and of each other, except that HasZ/Geodetic are
// meaningless without HasX.
type STBox struct {
	HasX, HasZ, HasT, Geodetic bool
	SRID                       int32
	XMin, XMax                 float64
	YMin, YMax                 float64
	ZMin, ZMax                 float64
	TMin, TMax                 time.Time
}

// New validates and normalizes an STBox: min/max are swapped into order per
// dimension, and geodetic-without-spatial is rejected.
func New(hasX, hasZ, hasT, geodetic bool, srid int32,
	xmin, xmax, ymin, ymax, zmin, zmax float64, tmin, tmax time.Time) (*STBox, error) {
	const op = "stbox.New"
	if !hasX && (hasZ || geodetic) {
		return nil, merr.New(op, merr.InvalidArgValue, "HasZ/Geodetic require HasX")
	}
	if !hasX && !hasT {
		return nil, merr.New(op, merr.InvalidArgValue, "box must have at least one dimension")
	}
	b := &STBox{HasX: hasX, HasZ: hasZ, HasT: hasT, Geodetic: geodetic, SRID: srid}
	if hasX {
		if xmin > xmax {
			xmin, xmax = xmax, xmin
		}
		if ymin > ymax {
			ymin, ymax = ymax, ymin
		}
		b.XMin, b.XMax, b.YMin, b.YMax = xmin, xmax, ymin, ymax
		if hasZ {
			if zmin > zmax {
				zmin, zmax = zmax, zmin
			}
			b.ZMin, b.ZMax = zmin, zmax
		}
	}
	if hasT {
		if tmin.After(tmax) {
			tmin, tmax = tmax, tmin
		}
		b.TMin, b.TMax = tmin, tmax
	}
	return b, nil
}

// IsEmpty reports whether b carries no dimension at all. Intersect returns
// such a box when two operands share no common ground.
func (b *STBox) IsEmpty() bool { return !b.HasX && !b.HasT }

// sridsCompatible reports whether two boxes can be compared/combined: their
// SRIDs must agree whenever both are declared (nonzero), and their geodetic
// flags must match whenever both have spatial dimensions.
func sridsCompatible(a, b *STBox) bool {
	if a.SRID != 0 && b.SRID != 0 && a.SRID != b.SRID {
		return false
	}
	if a.HasX && b.HasX && a.Geodetic != b.Geodetic {
		return false
	}
	return true
}

// Expand returns the component-wise min/max of a and b over their shared
// dimensions, folding in any dimension only one side carries.
func (a *STBox) Expand(b *STBox) (*STBox, error) {
	const op = "STBox.Expand"
	if !sridsCompatible(a, b) {
		if a.SRID != b.SRID {
			return nil, merr.New(op, merr.SridMismatch, "SRID %d vs %d", a.SRID, b.SRID)
		}
		return nil, merr.New(op, merr.DimensionMismatch, "geodetic flags differ")
	}
	out := &STBox{SRID: a.SRID}
	if a.SRID == 0 {
		out.SRID = b.SRID
	}
	if a.HasX || b.HasX {
		out.HasX = true
		out.Geodetic = a.Geodetic || b.Geodetic
		out.XMin, out.XMax, out.YMin, out.YMax = combineXY(a, b)
		if a.HasZ || b.HasZ {
			out.HasZ = true
			out.ZMin, out.ZMax = combineZ(a, b)
		}
	}
	if a.HasT || b.HasT {
		out.HasT = true
		out.TMin, out.TMax = combineT(a, b)
	}
	return out, nil
}

func combineXY(a, b *STBox) (xmin, xmax, ymin, ymax float64) {
	switch {
	case a.HasX && b.HasX:
		return minf(a.XMin, b.XMin), maxf(a.XMax, b.XMax), minf(a.YMin, b.YMin), maxf(a.YMax, b.YMax)
	case a.HasX:
		return a.XMin, a.XMax, a.YMin, a.YMax
	default:
		return b.XMin, b.XMax, b.YMin, b.YMax
	}
}

func combineZ(a, b *STBox) (zmin, zmax float64) {
	switch {
	case a.HasZ && b.HasZ:
		return minf(a.ZMin, b.ZMin), maxf(a.ZMax, b.ZMax)
	case a.HasZ:
		return a.ZMin, a.ZMax
	default:
		return b.ZMin, b.ZMax
	}
}

func combineT(a, b *STBox) (tmin, tmax time.Time) {
	switch {
	case a.HasT && b.HasT:
		tmin = a.TMin
		if b.TMin.Before(tmin) {
			tmin = b.TMin
		}
		tmax = a.TMax
		if b.TMax.After(tmax) {
			tmax = b.TMax
		}
		return
	case a.HasT:
		return a.TMin, a.TMax
	default:
		return b.TMin, b.TMax
	}
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// commonDims reports which dimension families a and b both carry.
func commonDims(a, b *STBox) (x, t bool) {
	return a.HasX && b.HasX, a.HasT && b.HasT
}

// Intersect fails closed: it returns an empty STBox (not an error) unless
// SRIDs and geodetic flags agree, in which case it returns a box whose
// dimension set is the intersection of a's and b's
func (a *STBox) Intersect(b *STBox) (*STBox, error) {
	if !sridsCompatible(a, b) {
		return &STBox{}, nil
	}
	out := &STBox{SRID: a.SRID}
	if out.SRID == 0 {
		out.SRID = b.SRID
	}
	hasX, hasT := commonDims(a, b)
	if hasX {
		xmin, xmax := maxf(a.XMin, b.XMin), minf(a.XMax, b.XMax)
		ymin, ymax := maxf(a.YMin, b.YMin), minf(a.YMax, b.YMax)
		if xmin > xmax || ymin > ymax {
			return &STBox{}, nil
		}
		out.HasX, out.XMin, out.XMax, out.YMin, out.YMax = true, xmin, xmax, ymin, ymax
		out.Geodetic = a.Geodetic
		if a.HasZ && b.HasZ {
			zmin, zmax := maxf(a.ZMin, b.ZMin), minf(a.ZMax, b.ZMax)
			if zmin > zmax {
				return &STBox{}, nil
			}
			out.HasZ, out.ZMin, out.ZMax = true, zmin, zmax
		}
	}
	if hasT {
		tmin := a.TMin
		if b.TMin.After(tmin) {
			tmin = b.TMin
		}
		tmax := a.TMax
		if b.TMax.Before(tmax) {
			tmax = b.TMax
		}
		if tmin.After(tmax) {
			return &STBox{}, nil
		}
		out.HasT, out.TMin, out.TMax = true, tmin, tmax
	}
	if !hasX && !hasT {
		return &STBox{}, nil
	}
	return out, nil
}

// Contains reports whether b lies entirely within a on every dimension they
// share. It requires at least one common dimension and refuses mixed
// geodetic/non-geodetic boxes.
func (a *STBox) Contains(b *STBox) (bool, error) {
	const op = "STBox.Contains"
	hasX, hasT := commonDims(a, b)
	if !hasX && !hasT {
		return false, merr.New(op, merr.DimensionMismatch, "no common dimension")
	}
	if !sridsCompatible(a, b) {
		return false, merr.New(op, merr.DimensionMismatch, "geodetic flags differ")
	}
	if hasX {
		if b.XMin < a.XMin || b.XMax > a.XMax || b.YMin < a.YMin || b.YMax > a.YMax {
			return false, nil
		}
		if a.HasZ && b.HasZ && (b.ZMin < a.ZMin || b.ZMax > a.ZMax) {
			return false, nil
		}
	}
	if hasT {
		if b.TMin.Before(a.TMin) || b.TMax.After(a.TMax) {
			return false, nil
		}
	}
	return true, nil
}

// Contained reports whether a lies entirely within b (the reverse of Contains).
func (a *STBox) Contained(b *STBox) (bool, error) { return b.Contains(a) }

// Overlaps reports whether a and b share any point on every common
// dimension.
func (a *STBox) Overlaps(b *STBox) (bool, error) {
	const op = "STBox.Overlaps"
	hasX, hasT := commonDims(a, b)
	if !hasX && !hasT {
		return false, merr.New(op, merr.DimensionMismatch, "no common dimension")
	}
	if !sridsCompatible(a, b) {
		return false, merr.New(op, merr.DimensionMismatch, "geodetic flags differ")
	}
	if hasX {
		if a.XMax < b.XMin || b.XMax < a.XMin || a.YMax < b.YMin || b.YMax < a.YMin {
			return false, nil
		}
		if a.HasZ && b.HasZ && (a.ZMax < b.ZMin || b.ZMax < a.ZMin) {
			return false, nil
		}
	}
	if hasT {
		if a.TMax.Before(b.TMin) || b.TMax.Before(a.TMin) {
			return false, nil
		}
	}
	return true, nil
}

// Same reports whether a and b have identical extents on every common
// dimension.
func (a *STBox) Same(b *STBox) (bool, error) {
	const op = "STBox.Same"
	hasX, hasT := commonDims(a, b)
	if !hasX && !hasT {
		return false, merr.New(op, merr.DimensionMismatch, "no common dimension")
	}
	if !sridsCompatible(a, b) {
		return false, merr.New(op, merr.DimensionMismatch, "geodetic flags differ")
	}
	if hasX && (a.XMin != b.XMin || a.XMax != b.XMax || a.YMin != b.YMin || a.YMax != b.YMax) {
		return false, nil
	}
	if hasX && a.HasZ && b.HasZ && (a.ZMin != b.ZMin || a.ZMax != b.ZMax) {
		return false, nil
	}
	if hasT && (!a.TMin.Equal(b.TMin) || !a.TMax.Equal(b.TMax)) {
		return false, nil
	}
	return true, nil
}

// Adjacent reports whether a and b intersect in a lower-dimensional set
// than either operand (they touch at a boundary without truly overlapping).
// Following adjacent_stbox_stbox_internal, this holds whenever the
// intersection degenerates along any one dimension the two boxes share:
// an X/Y/Z coordinate collapsing to a single point, or T collapsing to a
// single instant, each independently suffices, regardless of whether the
// other dimensions are non-degenerate.
func (a *STBox) Adjacent(b *STBox) (bool, error) {
	const op = "STBox.Adjacent"
	if !sridsCompatible(a, b) {
		return false, merr.New(op, merr.DimensionMismatch, "SRIDs or geodetic flags differ")
	}
	inter, err := a.Intersect(b)
	if err != nil {
		return false, merr.Wrap(op, merr.DimensionMismatch, err, "intersect failed")
	}
	if inter.IsEmpty() {
		return false, nil
	}
	if inter.HasX && (inter.XMin == inter.XMax || inter.YMin == inter.YMax || (inter.HasZ && inter.ZMin == inter.ZMax)) {
		return true, nil
	}
	if inter.HasT && inter.TMin.Equal(inter.TMax) {
		return true, nil
	}
	return false, nil
}
