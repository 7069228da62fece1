// Package temporal implements the tagged-union temporal value tree (C4),
// its constructors and normalizer (C5), and its accessors and transformers
// (C7): the core data model of the engine.
package temporal

import (
	"time"

	"github.com/mobilitydb/meos-go/basetype"
)

// Subtype is the C4 tagged-union discriminator. Operations branch on
// Subtype exactly once at the top and thereafter call subtype-specific
// routines; subtypes share nothing beyond this discriminator.
type Subtype uint8

const (
	Instant Subtype = iota
	DiscreteSeq
	ContSeq
	SeqSet
)

func (s Subtype) String() string {
	switch s {
	case Instant:
		return "Instant"
	case DiscreteSeq:
		return "DiscreteSeq"
	case ContSeq:
		return "ContSeq"
	case SeqSet:
		return "SeqSet"
	default:
		return "Unknown"
	}
}

// Interp is the interpolation mode, carried on every temporal value
// (discrete sequences are always Discrete; instants carry no interpolation
// of their own but are treated as Discrete for Flags purposes).
type Interp uint8

const (
	DiscreteInterp Interp = iota
	Step
	Linear
)

func (i Interp) String() string {
	switch i {
	case DiscreteInterp:
		return "Discrete"
	case Step:
		return "Step"
	case Linear:
		return "Linear"
	default:
		return "Unknown"
	}
}

// Flags mirrors the per-temporal flag set carried on every value.
type Flags struct {
	HasX       bool
	HasZ       bool
	HasT       bool
	ByValue    bool
	Geodetic   bool
	Continuous bool
	Interp     Interp
}

// Inst is a (value, timestamp) pair — the Instant subtype's sole payload,
// and the element type of every sequence's instant array.
type Inst struct {
	Value basetype.Value
	T     time.Time
}

// Temporal is the single Go type representing all four subtypes of the
// value sum type. Which fields are meaningful is determined entirely by
// Subtype; see the per-field comments.
type Temporal struct {
	Subtype  Subtype
	BaseType basetype.Type
	SRID     int32
	Flags    Flags

	// inst is populated only when Subtype == Instant.
	inst Inst

	// instants is populated only when Subtype == DiscreteSeq or ContSeq,
	// strictly increasing by T.
	instants []Inst
	// lowerInc/upperInc apply only to ContSeq (DiscreteSeq bounds are
	// implicitly "[.]").
	lowerInc, upperInc bool

	// sequences is populated only when Subtype == SeqSet; every element
	// has Subtype == ContSeq.
	sequences []*Temporal

	bbox *BBox

	reg *basetype.Registry
}

// Registry returns the base-type registry this value was built against.
func (t *Temporal) Registry() *basetype.Registry { return t.reg }

// Interp returns the temporal's interpolation tag.
func (t *Temporal) Interp() Interp { return t.Flags.Interp }

// BBox returns the value's bounding box, read-through: read-only
// callers never need to compute it.
func (t *Temporal) BBox() *BBox { return t.bbox }

// vt is a convenience accessor for this value's base-type VTable.
func (t *Temporal) vt() basetype.VTable { return t.reg.MustLookup(t.BaseType) }
