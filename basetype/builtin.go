package basetype

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	farm "github.com/dgryski/go-farm"
	"github.com/mobilitydb/meos-go/geo"
	"github.com/mobilitydb/meos-go/merr"
)

func registerBuiltins(r *Registry) {
	registerScalars(r)
	RegisterGeoTypesWithKernel(r, geo.Euclidean)
}

func registerScalars(r *Registry) {
	r.Register(Bool, VTable{
		Name: "bool", Size: 1, ByValue: true, Continuous: false, SpanType: NoSpan,
		Copy: func(v Value) Value { return v },
		Eq:   func(a, b Value) bool { return a.(bool) == b.(bool) },
		Cmp: func(a, b Value) int {
			x, y := a.(bool), b.(bool)
			if x == y {
				return 0
			}
			if !x && y {
				return -1
			}
			return 1
		},
		Hash: func(v Value) uint64 {
			if v.(bool) {
				return 1
			}
			return 0
		},
		ParseText: func(s string) (Value, error) {
			switch strings.ToLower(s) {
			case "true", "t":
				return true, nil
			case "false", "f":
				return false, nil
			default:
				return nil, merr.New("basetype.bool.ParseText", merr.TextInput, "not a bool literal: %q", s)
			}
		},
		PrintText: func(v Value) string {
			if v.(bool) {
				return "true"
			}
			return "false"
		},
	})

	r.Register(Int4, VTable{
		Name: "int4", Size: 4, ByValue: true, Continuous: false, SpanType: IntSpan,
		Copy: func(v Value) Value { return v },
		Eq:   func(a, b Value) bool { return a.(int32) == b.(int32) },
		Cmp: func(a, b Value) int {
			x, y := a.(int32), b.(int32)
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			default:
				return 0
			}
		},
		Hash: func(v Value) uint64 { return uint64(uint32(v.(int32))) },
		Add: func(a, b Value) (Value, error) { return a.(int32) + b.(int32), nil },
		Sub: func(a, b Value) (Value, error) { return a.(int32) - b.(int32), nil },
		Distance: func(a, b Value) (float64, error) {
			d := a.(int32) - b.(int32)
			if d < 0 {
				d = -d
			}
			return float64(d), nil
		},
		Collinear: func(Value, Value, Value, float64) bool { return false },
		ParseText: func(s string) (Value, error) {
			n, err := strconv.ParseInt(s, 10, 32)
			if err != nil {
				return nil, merr.Wrap("basetype.int4.ParseText", merr.TextInput, err, "not an int4 literal: %q", s)
			}
			return int32(n), nil
		},
		PrintText: func(v Value) string { return strconv.FormatInt(int64(v.(int32)), 10) },
	})

	r.Register(Float8, VTable{
		Name: "float8", Size: 8, ByValue: true, Continuous: true, SpanType: FloatSpan,
		Copy: func(v Value) Value { return v },
		Eq:   func(a, b Value) bool { return a.(float64) == b.(float64) },
		Cmp: func(a, b Value) int {
			x, y := a.(float64), b.(float64)
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			default:
				return 0
			}
		},
		Hash: func(v Value) uint64 { return math.Float64bits(v.(float64)) },
		Add:  func(a, b Value) (Value, error) { return a.(float64) + b.(float64), nil },
		Sub:  func(a, b Value) (Value, error) { return a.(float64) - b.(float64), nil },
		Distance: func(a, b Value) (float64, error) {
			return math.Abs(a.(float64) - b.(float64)), nil
		},
		Collinear: func(v1, v2, v3 Value, ratio float64) bool {
			x1, x2, x3 := v1.(float64), v2.(float64), v3.(float64)
			expect := x1 + (x3-x1)*ratio
			return math.Abs(x2-expect) <= geo.Epsilon
		},
		ParseText: func(s string) (Value, error) {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, merr.Wrap("basetype.float8.ParseText", merr.TextInput, err, "not a float8 literal: %q", s)
			}
			return f, nil
		},
		PrintText: func(v Value) string { return strconv.FormatFloat(v.(float64), 'g', -1, 64) },
	})

	r.Register(Text, VTable{
		Name: "text", Size: -1, ByValue: false, Continuous: false, SpanType: NoSpan,
		Copy: func(v Value) Value { return v },
		Eq:   func(a, b Value) bool { return a.(string) == b.(string) },
		Cmp: func(a, b Value) int {
			x, y := a.(string), b.(string)
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			default:
				return 0
			}
		},
		Hash:      func(v Value) uint64 { return farm.Hash64([]byte(v.(string))) },
		Collinear: func(Value, Value, Value, float64) bool { return false },
		ParseText: func(s string) (Value, error) {
			if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
				return nil, merr.New("basetype.text.ParseText", merr.TextInput, "text literal must be double-quoted: %q", s)
			}
			return strings.ReplaceAll(s[1:len(s)-1], `\"`, `"`), nil
		},
		PrintText: func(v Value) string {
			return `"` + strings.ReplaceAll(v.(string), `"`, `\"`) + `"`
		},
	})
}

// RegisterGeoTypesWithKernel registers the four geo base types
// (Geom2D/Geom3D/Geog2D/Geog3D) against k, the geo-kernel implementation to
// delegate to. Hosts with a real geodetic engine call this themselves
// against their own Registry instead of relying on Default()'s Euclidean
// kernel.
func RegisterGeoTypesWithKernel(r *Registry, k geo.Kernel) {
	mk := func(name string, hasZ, geodetic bool) VTable {
		return VTable{
			Name: name, Size: -1, ByValue: false, Continuous: true, SpanType: NoSpan,
			Copy: func(v Value) Value { return v },
			Eq: func(a, b Value) bool {
				pa, pb := a.(geo.Point), b.(geo.Point)
				return pa.X == pb.X && pa.Y == pb.Y && pa.Z == pb.Z && pa.SRID == pb.SRID
			},
			Cmp: func(a, b Value) int { return geoPointCmp(a.(geo.Point), b.(geo.Point)) },
			Hash: func(v Value) uint64 {
				p := v.(geo.Point)
				buf := make([]byte, 0, 28)
				buf = appendFloat64(buf, p.X)
				buf = appendFloat64(buf, p.Y)
				buf = appendFloat64(buf, p.Z)
				buf = appendFloat64(buf, float64(p.SRID))
				return farm.Hash64(buf)
			},
			Distance: func(a, b Value) (float64, error) {
				pa, pb := a.(geo.Point), b.(geo.Point)
				dx, dy, dz := pa.X-pb.X, pa.Y-pb.Y, 0.0
				if hasZ {
					dz = pa.Z - pb.Z
				}
				return math.Sqrt(dx*dx + dy*dy + dz*dz), nil
			},
			Collinear: func(v1, v2, v3 Value, ratio float64) bool {
				return k.Collinear(v1.(geo.Point), v2.(geo.Point), v3.(geo.Point), ratio)
			},
			ParseText: func(s string) (Value, error) {
				return parsePointText(s, hasZ, geodetic)
			},
			PrintText: func(v Value) string { return printPointText(v.(geo.Point)) },
			Geo: &GeoOps{
				SRID:     func(v Value) int32 { return k.SRID(v.(geo.Point)) },
				IsEmpty:  func(v Value) bool { return k.IsEmpty(v.(geo.Point)) },
				IsPoint:  func(v Value) bool { return k.IsPoint(v.(geo.Point)) },
				HasZ:     func(v Value) bool { return k.HasZ(v.(geo.Point)) },
				Geodetic: func(v Value) bool { return k.Geodetic(v.(geo.Point)) },
				Interpolate: func(a, b Value, ratio float64) Value {
					return k.Interpolate(a.(geo.Point), b.(geo.Point), ratio)
				},
				SegmentIntersectsValue: func(a, b, v Value) (float64, bool) {
					return k.SegmentIntersectsValue(a.(geo.Point), b.(geo.Point), v.(geo.Point))
				},
				SegmentSegmentIntersection: func(a1, b1, a2, b2 Value) (float64, bool) {
					return k.SegmentSegmentIntersection(a1.(geo.Point), b1.(geo.Point), a2.(geo.Point), b2.(geo.Point))
				},
			},
		}
	}
	r.Register(Geom2D, mk("geometry2D", false, false))
	r.Register(Geom3D, mk("geometry3D", true, false))
	r.Register(Geog2D, mk("geography2D", false, true))
	r.Register(Geog3D, mk("geography3D", true, true))
}

// parsePointText parses the "POINT(x y)" / "POINT Z(x y z)" form: a space-
// separated coordinate list, distinct from the WKT temporal grammar's
// comma-separated instant lists so a point can nest inside one unambiguously.
func parsePointText(s string, wantZ, geodetic bool) (Value, error) {
	const op = "basetype.geo.ParseText"
	trimmed := strings.TrimSpace(s)
	upper := strings.ToUpper(trimmed)
	if !strings.HasPrefix(upper, "POINT") {
		return nil, merr.New(op, merr.TextInput, "expected POINT literal: %q", s)
	}
	body := trimmed[len("POINT"):]
	body = strings.TrimSpace(body)
	hasZ := wantZ
	if strings.HasPrefix(strings.ToUpper(body), "Z") {
		hasZ = true
		body = strings.TrimSpace(body[1:])
	}
	open := strings.IndexByte(body, '(')
	closeIdx := strings.LastIndexByte(body, ')')
	if open < 0 || closeIdx < 0 || closeIdx < open {
		return nil, merr.New(op, merr.TextInput, "malformed POINT literal: %q", s)
	}
	fields := strings.Fields(body[open+1 : closeIdx])
	if (hasZ && len(fields) != 3) || (!hasZ && len(fields) != 2) {
		return nil, merr.New(op, merr.TextInput, "POINT literal has wrong coordinate count: %q", s)
	}
	coords := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, merr.Wrap(op, merr.TextInput, err, "parsing coordinate %q", f)
		}
		coords[i] = v
	}
	p := geo.Point{X: coords[0], Y: coords[1], HasZ: hasZ, Geodetic: geodetic}
	if hasZ {
		p.Z = coords[2]
	}
	return p, nil
}

func printPointText(p geo.Point) string {
	if p.HasZ {
		return fmt.Sprintf("POINT Z(%s %s %s)", trimFloat(p.X), trimFloat(p.Y), trimFloat(p.Z))
	}
	return fmt.Sprintf("POINT(%s %s)", trimFloat(p.X), trimFloat(p.Y))
}

func trimFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

func geoPointCmp(a, b geo.Point) int {
	switch {
	case a.X != b.X:
		if a.X < b.X {
			return -1
		}
		return 1
	case a.Y != b.Y:
		if a.Y < b.Y {
			return -1
		}
		return 1
	case a.Z != b.Z:
		if a.Z < b.Z {
			return -1
		}
		return 1
	default:
		return 0
	}
}

func appendFloat64(buf []byte, f float64) []byte {
	bits := math.Float64bits(f)
	return append(buf, byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24),
		byte(bits>>32), byte(bits>>40), byte(bits>>48), byte(bits>>56))
}
