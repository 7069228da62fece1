// Package merr defines the error taxonomy shared by every package in this
// module. Core operations never panic and never log; they return a tagged
// *Error (or wrap one) so that callers and embedders can dispatch on Kind
// without parsing message text.
package merr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies the reason an operation failed.
type Kind int

const (
	// TextInput marks malformed WKT: wrong keyword, missing bracket/paren,
	// stray input after the end of a value.
	TextInput Kind = iota
	// InvalidArgType marks an operation invoked on the wrong temporal
	// subtype or base type.
	InvalidArgType
	// InvalidArgValue marks a value-level violation: non-increasing
	// timestamps, incompatible bounds, empty input, non-positive scale
	// duration, and similar.
	InvalidArgValue
	// SridMismatch marks two values (or a value and a geometry) that carry
	// differing, both-known SRIDs.
	SridMismatch
	// DimensionMismatch marks 2D mixed with 3D where an operation requires
	// equal dimensionality, or geodetic mixed with non-geodetic.
	DimensionMismatch
	// InternalTypeError marks a base-type registry lookup that should have
	// succeeded but did not; this indicates a bug in the calling code, not
	// bad input.
	InternalTypeError
	// ResultNotContiguous marks a union whose operands cannot be
	// represented by a single contiguous span/box.
	ResultNotContiguous
)

func (k Kind) String() string {
	switch k {
	case TextInput:
		return "TextInput"
	case InvalidArgType:
		return "InvalidArgType"
	case InvalidArgValue:
		return "InvalidArgValue"
	case SridMismatch:
		return "SridMismatch"
	case DimensionMismatch:
		return "DimensionMismatch"
	case InternalTypeError:
		return "InternalTypeError"
	case ResultNotContiguous:
		return "ResultNotContiguous"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned by every core operation that can
// fail. Op names the failing operation (e.g. "temporal.MakeSequence"); Kind
// classifies the failure per the taxonomy above.
type Error struct {
	Op   string
	Kind Kind
	Msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Op, e.Kind, e.Msg, e.err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Msg)
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As. Wrap
// stores the cause behind a pkg/errors stack wrapper; Unwrap looks through
// that wrapper and returns the cause itself.
func (e *Error) Unwrap() error {
	if c, ok := e.err.(interface{ Cause() error }); ok {
		return c.Cause()
	}
	return e.err
}

// Cause returns the same cause as Unwrap, for errors.Cause.
func (e *Error) Cause() error { return e.Unwrap() }

// New builds a new *Error with no wrapped cause.
func New(op string, kind Kind, format string, args ...interface{}) error {
	return &Error{Op: op, Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds a new *Error around an existing error, preserving it for
// errors.Is/errors.As/errors.Cause.
func Wrap(op string, kind Kind, cause error, format string, args ...interface{}) error {
	return &Error{Op: op, Kind: kind, Msg: fmt.Sprintf(format, args...), err: errors.WithStack(cause)}
}

// Is reports whether err is a *Error of the given Kind, walking the
// standard unwrap chain.
func Is(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind == kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
