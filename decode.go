package swayabi

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Decode deserializes a value of the given type from the front of data.
// Trailing bytes beyond the type's size are ignored. A buffer shorter than
// the type requires yields ErrTruncatedInput; nothing is ever silently
// zero-filled. The returned value shares no memory with data.
func Decode(t *Type, data []byte) (Value, error) {
	d := &decoder{data: data}
	return d.value(t)
}

// DecodeParams deserializes a sequence of typed values laid out
// back-to-back, as in an ABI call buffer without the selector word.
func DecodeParams(types []*Type, data []byte) ([]Value, error) {
	d := &decoder{data: data}
	values := make([]Value, len(types))
	for i, t := range types {
		v, err := d.value(t)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// decoder consumes a flat byte buffer front-to-back.
type decoder struct {
	data []byte
	off  int
}

func (d *decoder) value(t *Type) (Value, error) {
	switch t.Kind() {
	case KindUnit:
		return Unit(), nil

	case KindBool:
		word, err := d.word(t)
		if err != nil {
			return nil, err
		}
		switch word {
		case 0:
			return Bool(false), nil
		case 1:
			return Bool(true), nil
		default:
			return nil, &DecodeError{Type: t, Offset: d.off - WordSize, Err: ErrInvalidBool}
		}

	case KindU8, KindU16, KindU32, KindU64:
		word, err := d.word(t)
		if err != nil {
			return nil, err
		}
		return &UintValue{typ: t, v: word & uintMask(t.Kind())}, nil

	case KindU256:
		b, err := d.take(SlotSize, t)
		if err != nil {
			return nil, err
		}
		var n uint256.Int
		n.SetBytes32(b)
		return &U256Value{v: n}, nil

	case KindB256:
		b, err := d.take(SlotSize, t)
		if err != nil {
			return nil, err
		}
		return B256(common.BytesToHash(b)), nil

	case KindString:
		b, err := d.take(wordAlign(t.Len()), t)
		if err != nil {
			return nil, err
		}
		return &StringValue{typ: t, s: string(b[:t.Len()])}, nil

	case KindArray:
		elems := make([]Value, t.Len())
		for i := range elems {
			e, err := d.value(t.Elem())
			if err != nil {
				return nil, err
			}
			elems[i] = e
		}
		return &ArrayValue{typ: t, elems: elems}, nil

	case KindTuple:
		elems, err := d.members(t)
		if err != nil {
			return nil, err
		}
		return &TupleValue{typ: t, elems: elems}, nil

	case KindStruct:
		fields, err := d.members(t)
		if err != nil {
			return nil, err
		}
		return &StructValue{typ: t, fields: fields}, nil

	case KindEnum:
		return d.enum(t)

	default:
		return nil, &DecodeError{Type: t, Offset: d.off, Err: errUnknownKind}
	}
}

func (d *decoder) members(t *Type) ([]Value, error) {
	values := make([]Value, len(t.Components()))
	for i, c := range t.Components() {
		v, err := d.value(c.Type)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func (d *decoder) enum(t *Type) (Value, error) {
	layout, err := LayoutOf(t)
	if err != nil {
		return nil, err
	}
	tag, err := d.word(t)
	if err != nil {
		return nil, err
	}
	variants := layout.Variants()
	if tag >= uint64(len(variants)) {
		return nil, &DecodeError{Type: t, Offset: d.off - WordSize, Err: ErrUnknownVariantTag}
	}
	// The whole payload region must be present even when the active
	// variant's payload is narrower.
	region, err := d.take(layout.PayloadWidth(), t)
	if err != nil {
		return nil, err
	}
	payload, err := Decode(variants[tag].Layout.Type(), region)
	if err != nil {
		return nil, err
	}
	return &EnumValue{typ: t, tag: tag, payload: payload}, nil
}

// word consumes one big-endian 8-byte word.
func (d *decoder) word(t *Type) (uint64, error) {
	b, err := d.take(WordSize, t)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// take consumes exactly n bytes, failing with ErrTruncatedInput when fewer
// remain.
func (d *decoder) take(n int, t *Type) ([]byte, error) {
	if d.off+n > len(d.data) {
		return nil, &DecodeError{Type: t, Offset: d.off, Err: ErrTruncatedInput}
	}
	b := d.data[d.off : d.off+n]
	d.off += n
	return b, nil
}

// uintMask returns the mask for a scalar's logical width. High pad bytes of
// the word are not significant for integers narrower than 64 bits.
func uintMask(k Kind) uint64 {
	switch k {
	case KindU8:
		return 0xff
	case KindU16:
		return 0xffff
	case KindU32:
		return 0xffffffff
	default:
		return ^uint64(0)
	}
}
