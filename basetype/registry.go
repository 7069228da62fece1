// Package basetype implements the base-type registry (C1): the set of
// scalar/spatial value kinds a temporal value can carry, and the
// operations (copy, compare, hash, arithmetic, distance, collinearity,
// geo-flavour extensions) the rest of the engine needs from them without
// knowing their concrete Go representation.
package basetype

import (
	"sync"

	"github.com/mobilitydb/meos-go/merr"
)

// Type identifies a registered base type. The zero value is never valid;
// Register panics if asked to overwrite an existing Type to keep the
// registry consistent with "one registration per type".
type Type uint16

// The base types the framework recognizes at minimum. Hosts may
// Register additional ones (e.g. a 2D circular buffer) starting at
// FirstUserType.
const (
	Bool Type = iota + 1
	Int4
	Float8
	Text
	Geom2D
	Geom3D
	Geog2D
	Geog3D

	// FirstUserType is the first Type value available for host-registered
	// base types (a host-registered circular-buffer type and similar).
	FirstUserType Type = 256
)

// Value is an opaque base-type value. Concrete representations are Go's
// bool, int32, float64, string, or geo.Point, matching the registered
// Type's ByValue/by-reference classification.
type Value = interface{}

// SpanBaseKind names the comparator a numeric base type's associated span
// uses, letting callers build a spantime.Span without importing basetype
// into spantime (spantime sits below basetype in the dependency graph).
type SpanBaseKind int

const (
	// NoSpan means this base type has no associated span type (e.g. text,
	// geo points — geo types use STBox instead).
	NoSpan SpanBaseKind = iota
	IntSpan
	FloatSpan
	TimeSpan
)

// GeoOps holds the geo-flavour operations a geo base type exposes.
// Non-geo types leave this nil.
type GeoOps struct {
	SRID                       func(Value) int32
	IsEmpty                    func(Value) bool
	IsPoint                    func(Value) bool
	HasZ                       func(Value) bool
	Geodetic                   func(Value) bool
	Interpolate                func(a, b Value, ratio float64) Value
	SegmentIntersectsValue     func(a, b, v Value) (ratio float64, ok bool)
	SegmentSegmentIntersection func(a1, b1, a2, b2 Value) (ratio float64, ok bool)
}

// VTable is the set of operations the registry stores for a Type.
type VTable struct {
	Name       string
	Size       int // fixed byte size; -1 means variable (value carries its own header length)
	ByValue    bool
	Continuous bool
	SpanType   SpanBaseKind

	Copy     func(Value) Value
	Eq       func(a, b Value) bool
	Cmp      func(a, b Value) int
	Hash     func(Value) uint64
	Add      func(a, b Value) (Value, error)
	Sub      func(a, b Value) (Value, error)
	Distance func(a, b Value) (float64, error)

	// ParseText and PrintText are the base type's own textual
	// grammar, the "BaseValue" production of the WKT parser;
	// the temporal-value WKT grammar delegates to them, never parsing a
	// base value's syntax itself.
	ParseText func(s string) (Value, error)
	PrintText func(Value) string
	// Collinear reports whether v2, sampled at t2, lies on the line from
	// v1 (at t1) to v3 (at t3), within the type's tolerance. Non-continuous
	// types always answer false.
	Collinear func(v1, v2, v3 Value, ratio float64) bool

	Geo *GeoOps // non-nil only for geo-flavoured types
}

// Registry is a read-only-after-init table of VTables keyed by Type,
// shared process-wide state.
type Registry struct {
	mu     sync.RWMutex
	tables map[Type]VTable
}

// Register adds vt under t. It is the only way to extend the registry; it
// panics on an attempt to re-register an existing Type, since the registry
// is meant to be populated once at startup and read thereafter.
func (r *Registry) Register(t Type, vt VTable) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tables == nil {
		r.tables = make(map[Type]VTable)
	}
	if _, exists := r.tables[t]; exists {
		panic("basetype: duplicate registration for type " + vt.Name)
	}
	r.tables[t] = vt
}

// Lookup returns the VTable for t, or an *merr.Error of kind
// InternalTypeError if t was never registered.
func (r *Registry) Lookup(t Type) (VTable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	vt, ok := r.tables[t]
	if !ok {
		return VTable{}, merr.New("basetype.Lookup", merr.InternalTypeError, "unregistered base type %d", t)
	}
	return vt, nil
}

// MustLookup panics if t is unregistered. It exists for use in code paths
// that already validated t (e.g. after a successful parse), mirroring the
// source's assumption that the registry cannot fail for known types.
func (r *Registry) MustLookup(t Type) VTable {
	vt, err := r.Lookup(t)
	if err != nil {
		panic(err)
	}
	return vt
}

var (
	defaultOnce sync.Once
	defaultReg  Registry
)

// Default returns the process-wide registry, populating it with the
// builtin types on first use.
func Default() *Registry {
	defaultOnce.Do(func() { registerBuiltins(&defaultReg) })
	return &defaultReg
}
