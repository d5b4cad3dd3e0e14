package swayabi

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Value represents any encodable Sway value. This is a sealed interface -
// only types within this package can implement it. Values form a strict
// tree: no cycles are possible.
type Value interface {
	// isValue is unexported to seal the interface.
	isValue()

	// Type returns the declared type of this value.
	Type() *Type

	// String renders the value as a literal accepted by ParseValue.
	String() string
}

// UnitValue is the single value of the unit type.
type UnitValue struct{}

func (UnitValue) isValue() {}

// Type returns the unit type.
func (UnitValue) Type() *Type { return TypeUnit }

func (UnitValue) String() string { return "()" }

// Unit returns the unit value.
func Unit() UnitValue { return UnitValue{} }

// BoolValue is a boolean value.
type BoolValue struct {
	v bool
}

func (*BoolValue) isValue() {}

// Type returns the bool type.
func (*BoolValue) Type() *Type { return TypeBool }

// Bool creates a boolean value.
func Bool(v bool) *BoolValue { return &BoolValue{v: v} }

// Bool returns the wrapped boolean.
func (b *BoolValue) Bool() bool { return b.v }

func (b *BoolValue) String() string {
	if b.v {
		return "true"
	}
	return "false"
}

// UintValue is an unsigned integer of logical width 8, 16, 32, or 64 bits.
// The width is carried by the type; the stored representation is uniform.
type UintValue struct {
	typ *Type
	v   uint64
}

func (*UintValue) isValue() {}

// Type returns the integer's declared type (u8, u16, u32, or u64).
func (u *UintValue) Type() *Type { return u.typ }

// Uint64 returns the wrapped integer.
func (u *UintValue) Uint64() uint64 { return u.v }

func (u *UintValue) String() string { return fmt.Sprintf("%d", u.v) }

// U8 creates a u8 value.
func U8(v uint8) *UintValue { return &UintValue{typ: TypeU8, v: uint64(v)} }

// U16 creates a u16 value.
func U16(v uint16) *UintValue { return &UintValue{typ: TypeU16, v: uint64(v)} }

// U32 creates a u32 value.
func U32(v uint32) *UintValue { return &UintValue{typ: TypeU32, v: uint64(v)} }

// U64 creates a u64 value.
func U64(v uint64) *UintValue { return &UintValue{typ: TypeU64, v: v} }

// U256Value is a 256-bit unsigned integer value.
type U256Value struct {
	v uint256.Int
}

func (*U256Value) isValue() {}

// Type returns the u256 type.
func (*U256Value) Type() *Type { return TypeU256 }

// U256 creates a u256 value. The input is copied.
func U256(v *uint256.Int) *U256Value {
	out := &U256Value{}
	out.v.Set(v)
	return out
}

// U256FromUint64 creates a u256 value from a machine word.
func U256FromUint64(v uint64) *U256Value {
	out := &U256Value{}
	out.v.SetUint64(v)
	return out
}

// Uint256 returns a copy of the wrapped integer.
func (u *U256Value) Uint256() *uint256.Int {
	return new(uint256.Int).Set(&u.v)
}

func (u *U256Value) String() string { return u.v.Dec() }

// B256Value is a 256-bit hash/byte value.
type B256Value struct {
	h common.Hash
}

func (*B256Value) isValue() {}

// Type returns the b256 type.
func (*B256Value) Type() *Type { return TypeB256 }

// B256 creates a b256 value from a 32-byte hash.
func B256(h common.Hash) *B256Value { return &B256Value{h: h} }

// Hash returns the wrapped 32 bytes.
func (b *B256Value) Hash() common.Hash { return b.h }

func (b *B256Value) String() string { return b.h.Hex() }

// StringValue is a fixed-length string value of type str[n]. The content
// always occupies exactly n bytes.
type StringValue struct {
	typ *Type
	s   string
}

func (*StringValue) isValue() {}

// Type returns the str[n] type.
func (s *StringValue) Type() *Type { return s.typ }

// Text returns the string content.
func (s *StringValue) Text() string { return s.s }

func (s *StringValue) String() string { return fmt.Sprintf("%q", s.s) }

// Str creates a str[n] value where n is the byte length of s.
func Str(s string) *StringValue {
	return &StringValue{typ: StringType(len(s)), s: s}
}

// NewString creates a value of the given str[n] type. The content must be
// exactly n bytes.
func NewString(typ *Type, s string) (*StringValue, error) {
	if typ.Kind() != KindString {
		return nil, &TypeMismatchError{Expected: "str[n]", Got: typ.String()}
	}
	if len(s) != typ.Len() {
		return nil, &TypeMismatchError{
			Expected: typ.String(),
			Got:      fmt.Sprintf("str[%d]", len(s)),
		}
	}
	return &StringValue{typ: typ, s: s}, nil
}

// ArrayValue is a fixed-length array value.
type ArrayValue struct {
	typ   *Type
	elems []Value
}

func (*ArrayValue) isValue() {}

// Type returns the array type.
func (a *ArrayValue) Type() *Type { return a.typ }

// Elems returns the element values in order. The returned slice must not be
// mutated.
func (a *ArrayValue) Elems() []Value { return a.elems }

func (a *ArrayValue) String() string { return "[" + joinValues(a.elems) + "]" }

// NewArray creates an array value of the given array type. Every element
// must match the element type, and the count must match the declared length.
func NewArray(typ *Type, elems ...Value) (*ArrayValue, error) {
	if typ.Kind() != KindArray {
		return nil, &TypeMismatchError{Expected: "array", Got: typ.String()}
	}
	if len(elems) != typ.Len() {
		return nil, &TypeMismatchError{
			Expected: typ.String(),
			Got:      fmt.Sprintf("%s[%d]", typ.Elem(), len(elems)),
		}
	}
	for _, e := range elems {
		if !e.Type().Equal(typ.Elem()) {
			return nil, &TypeMismatchError{Expected: typ.Elem().String(), Got: e.Type().String()}
		}
	}
	return &ArrayValue{typ: typ, elems: append([]Value(nil), elems...)}, nil
}

// MustArray is like NewArray but panics on error.
func MustArray(typ *Type, elems ...Value) *ArrayValue {
	a, err := NewArray(typ, elems...)
	if err != nil {
		panic(err)
	}
	return a
}

// TupleValue is an anonymous ordered product value.
type TupleValue struct {
	typ   *Type
	elems []Value
}

func (*TupleValue) isValue() {}

// Type returns the tuple type.
func (t *TupleValue) Type() *Type { return t.typ }

// Elems returns the element values in order. The returned slice must not be
// mutated.
func (t *TupleValue) Elems() []Value { return t.elems }

func (t *TupleValue) String() string { return "(" + joinValues(t.elems) + ")" }

// Tuple creates a tuple value; its type is derived from the element types.
func Tuple(elems ...Value) *TupleValue {
	types := make([]*Type, len(elems))
	for i, e := range elems {
		types[i] = e.Type()
	}
	return &TupleValue{typ: TupleType(types...), elems: append([]Value(nil), elems...)}
}

// StructValue is a named product value with ordered fields.
type StructValue struct {
	typ    *Type
	fields []Value
}

func (*StructValue) isValue() {}

// Type returns the struct type.
func (s *StructValue) Type() *Type { return s.typ }

// Fields returns the field values in declaration order. The returned slice
// must not be mutated.
func (s *StructValue) Fields() []Value { return s.fields }

// Field returns the value of the named field.
func (s *StructValue) Field(name string) (Value, bool) {
	for i, c := range s.typ.Components() {
		if c.Name == name {
			return s.fields[i], true
		}
	}
	return nil, false
}

func (s *StructValue) String() string { return "(" + joinValues(s.fields) + ")" }

// NewStruct creates a struct value of the given struct type. Field values
// are positional, in declaration order, and must match the field types.
func NewStruct(typ *Type, fields ...Value) (*StructValue, error) {
	if typ.Kind() != KindStruct {
		return nil, &TypeMismatchError{Expected: "struct", Got: typ.String()}
	}
	decl := typ.Components()
	if len(fields) != len(decl) {
		return nil, &TypeMismatchError{
			Expected: fmt.Sprintf("%d fields for %s", len(decl), typ),
			Got:      fmt.Sprintf("%d fields", len(fields)),
		}
	}
	for i, f := range fields {
		if !f.Type().Equal(decl[i].Type) {
			return nil, &TypeMismatchError{Expected: decl[i].Type.String(), Got: f.Type().String()}
		}
	}
	return &StructValue{typ: typ, fields: append([]Value(nil), fields...)}, nil
}

// MustStruct is like NewStruct but panics on error.
func MustStruct(typ *Type, fields ...Value) *StructValue {
	s, err := NewStruct(typ, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// EnumValue is one active variant of an enum type, carrying its payload.
type EnumValue struct {
	typ     *Type
	tag     uint64
	payload Value
}

func (*EnumValue) isValue() {}

// Type returns the enum type.
func (e *EnumValue) Type() *Type { return e.typ }

// Tag returns the zero-based variant tag.
func (e *EnumValue) Tag() uint64 { return e.tag }

// VariantName returns the declared name of the active variant.
func (e *EnumValue) VariantName() string { return e.typ.Variants()[e.tag].Name }

// Payload returns the active variant's payload value.
func (e *EnumValue) Payload() Value { return e.payload }

func (e *EnumValue) String() string {
	if e.payload.Type().IsUnit() {
		return e.VariantName()
	}
	return e.VariantName() + "(" + e.payload.String() + ")"
}

// NewEnum creates an enum value by variant tag. A nil payload stands for the
// unit payload.
func NewEnum(typ *Type, tag uint64, payload Value) (*EnumValue, error) {
	if typ.Kind() != KindEnum {
		return nil, &TypeMismatchError{Expected: "enum", Got: typ.String()}
	}
	variants := typ.Variants()
	if tag >= uint64(len(variants)) {
		return nil, &DecodeError{Type: typ, Err: ErrUnknownVariantTag}
	}
	if payload == nil {
		payload = Unit()
	}
	if !payload.Type().Equal(variants[tag].Type) {
		return nil, &TypeMismatchError{
			Expected: variants[tag].Type.String(),
			Got:      payload.Type().String(),
		}
	}
	return &EnumValue{typ: typ, tag: tag, payload: payload}, nil
}

// NewEnumVariant creates an enum value by variant name.
func NewEnumVariant(typ *Type, name string, payload Value) (*EnumValue, error) {
	if typ.Kind() != KindEnum {
		return nil, &TypeMismatchError{Expected: "enum", Got: typ.String()}
	}
	tag, _, ok := typ.VariantByName(name)
	if !ok {
		return nil, &SyntaxError{Input: name, Msg: "no such variant in " + typ.String()}
	}
	return NewEnum(typ, tag, payload)
}

// MustEnumVariant is like NewEnumVariant but panics on error.
func MustEnumVariant(typ *Type, name string, payload Value) *EnumValue {
	e, err := NewEnumVariant(typ, name, payload)
	if err != nil {
		panic(err)
	}
	return e
}

// Equal reports deep structural equality of two values, including their
// declared types.
func Equal(a, b Value) bool {
	if !a.Type().Equal(b.Type()) {
		return false
	}
	switch av := a.(type) {
	case UnitValue:
		return true
	case *BoolValue:
		bv, ok := b.(*BoolValue)
		return ok && av.v == bv.v
	case *UintValue:
		bv, ok := b.(*UintValue)
		return ok && av.v == bv.v
	case *U256Value:
		bv, ok := b.(*U256Value)
		return ok && av.v.Eq(&bv.v)
	case *B256Value:
		bv, ok := b.(*B256Value)
		return ok && av.h == bv.h
	case *StringValue:
		bv, ok := b.(*StringValue)
		return ok && av.s == bv.s
	case *ArrayValue:
		bv, ok := b.(*ArrayValue)
		return ok && valuesEqual(av.elems, bv.elems)
	case *TupleValue:
		bv, ok := b.(*TupleValue)
		return ok && valuesEqual(av.elems, bv.elems)
	case *StructValue:
		bv, ok := b.(*StructValue)
		return ok && valuesEqual(av.fields, bv.fields)
	case *EnumValue:
		bv, ok := b.(*EnumValue)
		return ok && av.tag == bv.tag && Equal(av.payload, bv.payload)
	default:
		return false
	}
}

func valuesEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func joinValues(vs []Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}
