package swayabi

import (
	"encoding/binary"
)

// Encode serializes a value into its ABI byte representation. The resulting
// length is always a multiple of WordSize and equals the value type's
// SizeInBytes. The input is never mutated; the returned buffer is freshly
// allocated and owned by the caller.
func Encode(v Value) ([]byte, error) {
	layout, err := LayoutOf(v.Type())
	if err != nil {
		return nil, err
	}
	return appendValue(make([]byte, 0, layout.SizeInBytes()), v)
}

// MustEncode is like Encode but panics on error. Use only with values of
// types known to be well-formed.
func MustEncode(v Value) []byte {
	out, err := Encode(v)
	if err != nil {
		panic(err)
	}
	return out
}

// EncodeParams serializes a sequence of values in order, as in an ABI call
// buffer without the selector word.
func EncodeParams(values ...Value) ([]byte, error) {
	var out []byte
	for _, v := range values {
		enc, err := Encode(v)
		if err != nil {
			return nil, err
		}
		out = append(out, enc...)
	}
	return out, nil
}

// appendValue appends the encoding of v to buf.
func appendValue(buf []byte, v Value) ([]byte, error) {
	switch val := v.(type) {
	case UnitValue:
		// The unit type occupies no bytes.
		return buf, nil

	case *BoolValue:
		var word uint64
		if val.Bool() {
			word = 1
		}
		return appendWord(buf, word), nil

	case *UintValue:
		return appendWord(buf, val.Uint64()), nil

	case *U256Value:
		b32 := val.v.Bytes32()
		return append(buf, b32[:]...), nil

	case *B256Value:
		h := val.Hash()
		return append(buf, h[:]...), nil

	case *StringValue:
		buf = append(buf, val.Text()...)
		return appendZeros(buf, wordAlign(len(val.Text()))-len(val.Text())), nil

	case *ArrayValue:
		return appendAll(buf, val.Elems())

	case *TupleValue:
		return appendAll(buf, val.Elems())

	case *StructValue:
		return appendAll(buf, val.Fields())

	case *EnumValue:
		layout, err := LayoutOf(val.Type())
		if err != nil {
			return nil, err
		}
		buf = appendWord(buf, val.Tag())
		payload, err := appendValue(nil, val.Payload())
		if err != nil {
			return nil, err
		}
		// The active payload is left-aligned in the payload region;
		// trailing bytes are zero-filled so every variant encodes to the
		// same total width.
		buf = append(buf, payload...)
		return appendZeros(buf, layout.PayloadWidth()-len(payload)), nil

	default:
		return nil, &TypeMismatchError{Expected: "encodable value", Got: v.Type().String()}
	}
}

func appendAll(buf []byte, values []Value) ([]byte, error) {
	var err error
	for _, v := range values {
		buf, err = appendValue(buf, v)
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}

// appendWord appends one big-endian, right-aligned 8-byte word.
func appendWord(buf []byte, v uint64) []byte {
	var word [WordSize]byte
	binary.BigEndian.PutUint64(word[:], v)
	return append(buf, word[:]...)
}

func appendZeros(buf []byte, n int) []byte {
	return append(buf, make([]byte, n)...)
}
