// Copyright © 2026 duskforge
// Use is governed by a BSD-style license found in the LICENSE file.

// Package passert implements the uniform assertion kernel every codec in
// this module routes its invariant checks through: "assert <name> <op>
// <expected> got <actual> at <offset>", producing a structured error that
// carries all five operands so a CLI boundary can render exact failure
// provenance instead of a flat message.
package passert

import "fmt"

// Kind classifies where in the system an Error originated.
type Kind int

const (
	// Parse is a generic invariant violation while reading a container.
	Parse Kind = iota
	// Archive is a structural violation in the archive container
	// (footer/TOC). A subcategory of Parse.
	Archive
	// Texture is a violation in the image codec.
	Texture
	// Internal is a condition the codec considers impossible.
	Internal
)

func (k Kind) String() string {
	switch k {
	case Archive:
		return "archive"
	case Texture:
		return "texture"
	case Internal:
		return "internal"
	default:
		return "parse"
	}
}

// Error is the one error type every component in this module returns for
// an invariant violation. Offset is -1 when the violation has no byte
// location (Location is used instead).
type Error struct {
	Kind     Kind
	Name     string
	Op       string
	Expected any
	Actual   any
	Offset   int64
	Location string
}

func (e *Error) Error() string {
	where := fmt.Sprintf("at %d", e.Offset)
	if e.Offset < 0 {
		where = "at " + e.Location
	}
	return fmt.Sprintf("assert %s %s %v got %v %s", e.Name, e.Op, e.Expected, e.Actual, where)
}

func newErr(kind Kind, name, op string, expected, actual any, offset int64) *Error {
	return &Error{Kind: kind, Name: name, Op: op, Expected: expected, Actual: actual, Offset: offset}
}

// AsInternal returns an Internal-kind error for conditions the codec
// considers impossible (a missed assertion upstream, a dependency
// misuse), using a symbolic Location instead of a byte offset.
func AsInternal(name, op string, expected, actual any, location string) *Error {
	e := newErr(Internal, name, op, expected, actual, -1)
	e.Location = location
	return e
}

// Eq asserts actual == expected.
func Eq[T comparable](kind Kind, name string, expected, actual T, offset int64) error {
	if actual != expected {
		return newErr(kind, name, "==", expected, actual, offset)
	}
	return nil
}

// Ne asserts actual != forbidden.
func Ne[T comparable](kind Kind, name string, forbidden, actual T, offset int64) error {
	if actual == forbidden {
		return newErr(kind, name, "!=", forbidden, actual, offset)
	}
	return nil
}

// Lt asserts actual < bound.
func Lt[T int | int8 | int16 | int32 | int64 | uint | uint8 | uint16 | uint32 | uint64 | float32 | float64](kind Kind, name string, bound, actual T, offset int64) error {
	if !(actual < bound) {
		return newErr(kind, name, "<", bound, actual, offset)
	}
	return nil
}

// Le asserts actual <= bound.
func Le[T int | int8 | int16 | int32 | int64 | uint | uint8 | uint16 | uint32 | uint64 | float32 | float64](kind Kind, name string, bound, actual T, offset int64) error {
	if !(actual <= bound) {
		return newErr(kind, name, "<=", bound, actual, offset)
	}
	return nil
}

// Gt asserts actual > bound.
func Gt[T int | int8 | int16 | int32 | int64 | uint | uint8 | uint16 | uint32 | uint64 | float32 | float64](kind Kind, name string, bound, actual T, offset int64) error {
	if !(actual > bound) {
		return newErr(kind, name, ">", bound, actual, offset)
	}
	return nil
}

// Ge asserts actual >= bound.
func Ge[T int | int8 | int16 | int32 | int64 | uint | uint8 | uint16 | uint32 | uint64 | float32 | float64](kind Kind, name string, bound, actual T, offset int64) error {
	if !(actual >= bound) {
		return newErr(kind, name, ">=", bound, actual, offset)
	}
	return nil
}

// In asserts actual is a member of set.
func In[T comparable](kind Kind, name string, set []T, actual T, offset int64) error {
	for _, v := range set {
		if v == actual {
			return nil
		}
	}
	return newErr(kind, name, "in", set, actual, offset)
}

// Between asserts lo <= actual <= hi (both inclusive).
func Between[T int | int8 | int16 | int32 | int64 | uint | uint8 | uint16 | uint32 | uint64 | float32 | float64](kind Kind, name string, lo, hi, actual T, offset int64) error {
	if actual < lo || actual > hi {
		return newErr(kind, name, "between", [2]T{lo, hi}, actual, offset)
	}
	return nil
}

// AllZero asserts every byte in buf is zero.
func AllZero(kind Kind, name string, buf []byte, offset int64) error {
	for _, b := range buf {
		if b != 0 {
			return newErr(kind, name, "zero", byte(0), buf, offset)
		}
	}
	return nil
}

// Ascii asserts every byte in buf is either zero or printable ASCII
// (0x20-0x7e), matching the archive/mechlib/gamez name-field rule.
func Ascii(kind Kind, name string, buf []byte, offset int64) error {
	for _, b := range buf {
		if b != 0 && (b < 0x20 || b > 0x7e) {
			return newErr(kind, name, "ascii", "printable or NUL", b, offset)
		}
	}
	return nil
}

// Flags asserts every bit set in actual also appears in the enumerated
// mask of valid flags.
func Flags(kind Kind, name string, validMask uint32, actual uint32, offset int64) error {
	if actual&^validMask != 0 {
		return newErr(kind, name, "flags", validMask, actual, offset)
	}
	return nil
}
