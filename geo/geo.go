// Package geo defines the narrow geo-kernel interface through which the
// temporal-value engine reaches point construction, reprojection and
// collinearity-on-a-sphere tests. Geometry kernels themselves are
// out of scope; this package only declares the contract and ships a
// planar Euclidean implementation suitable for tests and for embedders
// that do not need a geodetic engine.
package geo

import "math"

// Epsilon is the module-level tolerance used for collinearity tests and
// fraction clamping, matching the 1e-5 absolute tolerance the reference
// implementation uses.
const Epsilon = 1e-5

// Point is a 2D or 3D geometric/geographic point, the only geo base-type
// value shape this engine supports.
type Point struct {
	X, Y, Z  float64
	HasZ     bool
	Geodetic bool
	SRID     int32
	Empty    bool
}

// Kernel is the geo-kernel interface an embedder supplies. The default
// implementation (Euclidean) treats geodetic points as if embedded in a
// plane; a production embedder backing real geographic points would supply
// a great-circle-aware Kernel instead. This engine preserves whatever
// SRID/geodetic handling the kernel itself reports, rather than guessing.
type Kernel interface {
	SRID(p Point) int32
	IsPoint(p Point) bool
	IsEmpty(p Point) bool
	HasZ(p Point) bool
	Geodetic(p Point) bool
	Interpolate(a, b Point, ratio float64) Point
	Collinear(a, b, c Point, ratio float64) bool
	// SegmentIntersectsValue reports whether v lies on the segment a->b
	// (parameterized by ratio in [0,1]), returning the ratio if so.
	SegmentIntersectsValue(a, b, v Point) (ratio float64, ok bool)
	// SegmentSegmentIntersection returns the ratio in [0,1] at which
	// segment a1->b1 and segment a2->b2 meet, if they do within their
	// shared parameterization.
	SegmentSegmentIntersection(a1, b1, a2, b2 Point) (ratio float64, ok bool)
	Transform(p Point, targetSRID int32) (Point, error)
}

// Euclidean is the default Kernel: planar linear interpolation and planar
// segment intersection, regardless of the Geodetic flag.
var Euclidean Kernel = euclidean{}

type euclidean struct{}

func (euclidean) SRID(p Point) int32    { return p.SRID }
func (euclidean) IsPoint(Point) bool    { return true }
func (euclidean) IsEmpty(p Point) bool  { return p.Empty }
func (euclidean) HasZ(p Point) bool     { return p.HasZ }
func (euclidean) Geodetic(p Point) bool { return p.Geodetic }

func (euclidean) Interpolate(a, b Point, ratio float64) Point {
	out := Point{
		X:        a.X + (b.X-a.X)*ratio,
		Y:        a.Y + (b.Y-a.Y)*ratio,
		HasZ:     a.HasZ,
		Geodetic: a.Geodetic,
		SRID:     a.SRID,
	}
	if a.HasZ {
		out.Z = a.Z + (b.Z-a.Z)*ratio
	}
	return out
}

func (euclidean) Collinear(a, b, c Point, ratio float64) bool {
	expect := Euclidean.Interpolate(a, c, ratio)
	dx := b.X - expect.X
	dy := b.Y - expect.Y
	dz := 0.0
	if b.HasZ {
		dz = b.Z - expect.Z
	}
	return math.Sqrt(dx*dx+dy*dy+dz*dz) <= Epsilon
}

func (euclidean) SegmentIntersectsValue(a, b, v Point) (float64, bool) {
	dx, dy, dz := b.X-a.X, b.Y-a.Y, 0.0
	if a.HasZ {
		dz = b.Z - a.Z
	}
	lenSq := dx*dx + dy*dy + dz*dz
	if lenSq < Epsilon*Epsilon {
		// Degenerate (point) segment: only matches if v equals a.
		if math.Hypot(v.X-a.X, v.Y-a.Y) <= Epsilon {
			return 0, true
		}
		return 0, false
	}
	vx, vy, vz := v.X-a.X, v.Y-a.Y, 0.0
	if a.HasZ {
		vz = v.Z - a.Z
	}
	ratio := (vx*dx + vy*dy + vz*dz) / lenSq
	if ratio < -Epsilon || ratio > 1+Epsilon {
		return 0, false
	}
	proj := Euclidean.Interpolate(a, b, ratio)
	if math.Hypot(v.X-proj.X, v.Y-proj.Y) > Epsilon {
		return 0, false
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return ratio, true
}

// SegmentSegmentIntersection solves the planar line-segment intersection
// for two segments each parameterized over [0,1], returning the ratio along
// the FIRST segment at which they meet.
func (euclidean) SegmentSegmentIntersection(a1, b1, a2, b2 Point) (float64, bool) {
	r := Point{X: b1.X - a1.X, Y: b1.Y - a1.Y}
	s := Point{X: b2.X - a2.X, Y: b2.Y - a2.Y}
	denom := r.X*s.Y - r.Y*s.X
	if math.Abs(denom) < Epsilon {
		return 0, false
	}
	qp := Point{X: a2.X - a1.X, Y: a2.Y - a1.Y}
	t := (qp.X*s.Y - qp.Y*s.X) / denom
	u := (qp.X*r.Y - qp.Y*r.X) / denom
	if t < -Epsilon || t > 1+Epsilon || u < -Epsilon || u > 1+Epsilon {
		return 0, false
	}
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return t, true
}

func (euclidean) Transform(p Point, targetSRID int32) (Point, error) {
	out := p
	out.SRID = targetSRID
	return out, nil
}
