package swayabi

import (
	"bytes"
	"crypto/sha256"
)

// Call buffer constants.
const (
	// SelectorSize is the hash-prefix length identifying the called
	// function.
	SelectorSize = 4

	// SelectorWordSize is the size of the first word of an encoded call
	// buffer. The selector occupies its trailing four bytes.
	SelectorWordSize = WordSize
)

// Selector returns the 4-byte function selector: the first four bytes of
// sha256 over the function's signature string. It depends only on the
// function name and the ordered parameter shapes, never on argument values.
func Selector(fn *Function) [SelectorSize]byte {
	return SelectorOf(fn.Signature())
}

// SelectorOf returns the 4-byte selector for a raw signature string.
func SelectorOf(signature string) [SelectorSize]byte {
	sum := sha256.Sum256([]byte(signature))
	var sel [SelectorSize]byte
	copy(sel[:], sum[:SelectorSize])
	return sel
}

// SelectorWord returns the first word of an encoded call buffer.
// Format: [zero:4][selector:4]
func SelectorWord(sel [SelectorSize]byte) [SelectorWordSize]byte {
	var word [SelectorWordSize]byte
	copy(word[SelectorWordSize-SelectorSize:], sel[:])
	return word
}

// EncodeFunctionCall serializes a call to fn into a flat buffer: the
// selector word followed by the arguments encoded in declaration order.
// Arguments must match the declared input types exactly.
func EncodeFunctionCall(fn *Function, args ...Value) ([]byte, error) {
	if err := checkArguments(fn, args); err != nil {
		return nil, err
	}

	word := SelectorWord(Selector(fn))
	out := append([]byte(nil), word[:]...)

	encoded, err := EncodeParams(args...)
	if err != nil {
		return nil, err
	}
	return append(out, encoded...), nil
}

// DecodeFunctionCall verifies the selector word of a call buffer against fn
// and decodes the declared inputs. Fails with ErrSelectorMismatch when the
// buffer targets a different function.
func DecodeFunctionCall(fn *Function, data []byte) ([]Value, error) {
	if len(data) < SelectorWordSize {
		return nil, &DecodeError{Type: TypeUnit, Offset: 0, Err: ErrTruncatedInput}
	}
	word := SelectorWord(Selector(fn))
	if !bytes.Equal(data[:SelectorWordSize], word[:]) {
		return nil, ErrSelectorMismatch
	}
	return DecodeParams(fn.InputTypes(), data[SelectorWordSize:])
}

// DecodeFunctionResult decodes a returned byte buffer into the function's
// declared output values.
func DecodeFunctionResult(fn *Function, data []byte) ([]Value, error) {
	return DecodeParams(fn.OutputTypes(), data)
}

// checkArguments validates argument count and types against the declared
// inputs.
func checkArguments(fn *Function, args []Value) error {
	if len(args) != len(fn.Inputs) {
		return &ArgumentError{
			Function: fn.Name,
			Index:    len(args),
			Err:      ErrArgumentCount,
		}
	}
	for i, arg := range args {
		if !arg.Type().Equal(fn.Inputs[i].Type) {
			return &ArgumentError{
				Function: fn.Name,
				Index:    i,
				Err: &TypeMismatchError{
					Expected: fn.Inputs[i].Type.String(),
					Got:      arg.Type().String(),
				},
			}
		}
	}
	return nil
}
