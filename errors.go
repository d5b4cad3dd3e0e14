package swayabi

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions.
var (
	// ErrRecursiveType indicates type decomposition exceeded the recursion
	// bound, i.e. a cyclic type definition reached the layout engine.
	ErrRecursiveType = errors.New("swayabi: recursive type definition detected")

	// ErrZeroSizedType indicates an addressable composite reduced to zero
	// size without being the unit type.
	ErrZeroSizedType = errors.New("swayabi: zero-sized non-unit type")

	// ErrTruncatedInput indicates a decode buffer is shorter than the
	// declared type requires.
	ErrTruncatedInput = errors.New("swayabi: truncated input buffer")

	// ErrInvalidBool indicates a boolean word decoded to neither 0 nor 1.
	ErrInvalidBool = errors.New("swayabi: invalid boolean word")

	// ErrUnknownVariantTag indicates an enum tag exceeds the declared
	// variant count.
	ErrUnknownVariantTag = errors.New("swayabi: unknown enum variant tag")

	// ErrSelectorMismatch indicates call data carries a selector for a
	// different function than the one being decoded.
	ErrSelectorMismatch = errors.New("swayabi: function selector mismatch")

	// ErrArgumentCount indicates a call was given the wrong number of
	// arguments for its declared inputs.
	ErrArgumentCount = errors.New("swayabi: wrong number of arguments")

	// ErrSlotNotWritten indicates a storage read addressed a slot that was
	// never written. Distinct from a decode error: the caller may treat it
	// as an explicit absence.
	ErrSlotNotWritten = errors.New("swayabi: storage slot not written")
)

// errUnknownKind flags a type descriptor whose kind is outside the closed
// grammar. The constructors cannot produce one; hitting this means an
// in-package bug.
var errUnknownKind = errors.New("swayabi: unknown type kind")

// LayoutError wraps failures during layout computation with the type that
// triggered them.
type LayoutError struct {
	Type *Type
	Err  error
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("swayabi: layout of %s: %v", e.Type, e.Err)
}

func (e *LayoutError) Unwrap() error {
	return e.Err
}

// DecodeError wraps decode failures with the type being decoded and the byte
// offset at which decoding failed.
type DecodeError struct {
	Type   *Type
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("swayabi: decoding %s at offset %d: %v", e.Type, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// TypeMismatchError indicates a value's type doesn't match the expected type.
type TypeMismatchError struct {
	Expected string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("swayabi: type mismatch: expected %s, got %s", e.Expected, e.Got)
}

// ArgumentError indicates an issue with a function call argument.
type ArgumentError struct {
	Function string
	Index    int
	Err      error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("swayabi: argument %d for function %q: %v", e.Index, e.Function, e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// FunctionNotFoundError indicates the ABI doesn't declare the requested
// function.
type FunctionNotFoundError struct {
	Name string
}

func (e *FunctionNotFoundError) Error() string {
	return fmt.Sprintf("swayabi: function %q not found in ABI", e.Name)
}

// SyntaxError indicates a type string or value literal could not be parsed.
type SyntaxError struct {
	Input string
	Msg   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("swayabi: cannot parse %q: %s", e.Input, e.Msg)
}
