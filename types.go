package swayabi

import (
	"fmt"
	"strings"
)

// Kind identifies one case of the closed Sway type grammar.
type Kind uint8

const (
	// KindUnit is the zero-sized unit type ().
	KindUnit Kind = iota

	// KindBool is the boolean type.
	KindBool

	// KindU8 through KindU64 are the word-encoded unsigned integers.
	KindU8
	KindU16
	KindU32
	KindU64

	// KindU256 is the 256-bit unsigned integer.
	KindU256

	// KindB256 is the 256-bit hash/byte type.
	KindB256

	// KindString is a fixed-length string str[n].
	KindString

	// KindArray is a fixed-length array [T; n].
	KindArray

	// KindTuple is an anonymous ordered product type.
	KindTuple

	// KindStruct is a named product type with ordered named fields.
	KindStruct

	// KindEnum is a named sum type with ordered variants.
	KindEnum
)

// Component is one member of a composite type: a tuple element (empty name),
// a struct field, or an enum variant.
type Component struct {
	Name string
	Type *Type
}

// Type describes one encodable Sway type. Types are immutable after
// construction and safe to share across concurrent callers.
type Type struct {
	kind     Kind
	length   int         // byte length for str[n], element count for arrays
	elem     *Type       // array element type
	name     string      // struct/enum declaration name
	fields   []Component // tuple elements or struct fields, declaration order
	variants []Component // enum variants, declaration order
}

// Primitive type singletons. All values of a primitive type share one Type.
var (
	TypeUnit = &Type{kind: KindUnit}
	TypeBool = &Type{kind: KindBool}
	TypeU8   = &Type{kind: KindU8}
	TypeU16  = &Type{kind: KindU16}
	TypeU32  = &Type{kind: KindU32}
	TypeU64  = &Type{kind: KindU64}
	TypeU256 = &Type{kind: KindU256}
	TypeB256 = &Type{kind: KindB256}
)

// StringType returns the fixed-length string type str[n]. str[0] is
// zero-sized and is rejected by LayoutOf like any other empty composite.
func StringType(n int) *Type {
	return &Type{kind: KindString, length: n}
}

// ArrayType returns the fixed-length array type [elem; n].
func ArrayType(elem *Type, n int) *Type {
	return &Type{kind: KindArray, elem: elem, length: n}
}

// TupleType returns the tuple type over the given element types.
// The empty tuple is the unit type.
func TupleType(elems ...*Type) *Type {
	if len(elems) == 0 {
		return TypeUnit
	}
	fields := make([]Component, len(elems))
	for i, e := range elems {
		fields[i] = Component{Type: e}
	}
	return &Type{kind: KindTuple, fields: fields}
}

// StructType returns a named struct type. Field order is declaration order
// and is semantically load-bearing: it determines encoding order and byte
// offsets.
func StructType(name string, fields ...Component) *Type {
	return &Type{kind: KindStruct, name: name, fields: append([]Component(nil), fields...)}
}

// EnumType returns a named enum type. Variant tags are assigned in
// declaration order starting at 0. A variant with a nil type carries the
// unit payload.
func EnumType(name string, variants ...Component) *Type {
	vs := make([]Component, len(variants))
	for i, v := range variants {
		if v.Type == nil {
			v.Type = TypeUnit
		}
		vs[i] = v
	}
	return &Type{kind: KindEnum, name: name, variants: vs}
}

// Kind returns the type's kind.
func (t *Type) Kind() Kind {
	return t.kind
}

// Len returns the byte length of a str[n] type or the element count of an
// array type; zero for every other kind.
func (t *Type) Len() int {
	return t.length
}

// Elem returns the element type of an array, or nil.
func (t *Type) Elem() *Type {
	return t.elem
}

// Name returns the declared name of a struct or enum type.
func (t *Type) Name() string {
	return t.name
}

// Components returns the tuple elements or struct fields in declaration
// order. The returned slice must not be mutated.
func (t *Type) Components() []Component {
	return t.fields
}

// Variants returns the enum variants in declaration (tag) order. The
// returned slice must not be mutated.
func (t *Type) Variants() []Component {
	return t.variants
}

// VariantByName returns the tag and declaration of the named enum variant.
func (t *Type) VariantByName(name string) (uint64, Component, bool) {
	for i, v := range t.variants {
		if v.Name == name {
			return uint64(i), v, true
		}
	}
	return 0, Component{}, false
}

// String returns the canonical type string in the ABI grammar: "bool",
// "u64", "str[5]", "u32[4]", "(u64,bool)". Structs and enums render by
// declared name.
func (t *Type) String() string {
	switch t.kind {
	case KindUnit:
		return "()"
	case KindBool:
		return "bool"
	case KindU8:
		return "u8"
	case KindU16:
		return "u16"
	case KindU32:
		return "u32"
	case KindU64:
		return "u64"
	case KindU256:
		return "u256"
	case KindB256:
		return "b256"
	case KindString:
		return fmt.Sprintf("str[%d]", t.length)
	case KindArray:
		return fmt.Sprintf("%s[%d]", t.elem, t.length)
	case KindTuple:
		return "(" + joinComponents(t.fields, (*Type).String) + ")"
	case KindStruct:
		return "struct " + t.name
	case KindEnum:
		return "enum " + t.name
	default:
		return fmt.Sprintf("<invalid kind %d>", t.kind)
	}
}

// Signature returns the structural signature used for selector hashing.
// Unlike String, structs and enums expand to their component signatures
// ("s(u64,bool)", "e(u64,())") so the selector depends only on the shape,
// and arrays use the "a[T;n]" form.
func (t *Type) Signature() string {
	switch t.kind {
	case KindString:
		return fmt.Sprintf("str[%d]", t.length)
	case KindArray:
		return fmt.Sprintf("a[%s;%d]", t.elem.Signature(), t.length)
	case KindTuple:
		return "(" + joinComponents(t.fields, (*Type).Signature) + ")"
	case KindStruct:
		return "s(" + joinComponents(t.fields, (*Type).Signature) + ")"
	case KindEnum:
		return "e(" + joinComponents(t.variants, (*Type).Signature) + ")"
	default:
		return t.String()
	}
}

// Equal reports whether two types are structurally identical, including
// struct/enum names and member names.
func (t *Type) Equal(other *Type) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil || t.kind != other.kind {
		return false
	}
	switch t.kind {
	case KindString:
		return t.length == other.length
	case KindArray:
		return t.length == other.length && t.elem.Equal(other.elem)
	case KindTuple:
		return componentsEqual(t.fields, other.fields)
	case KindStruct:
		return t.name == other.name && componentsEqual(t.fields, other.fields)
	case KindEnum:
		return t.name == other.name && componentsEqual(t.variants, other.variants)
	default:
		// Primitive kinds carry no parameters.
		return true
	}
}

// IsUnit reports whether the type is the unit type.
func (t *Type) IsUnit() bool {
	return t.kind == KindUnit
}

func componentsEqual(a, b []Component) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || !a[i].Type.Equal(b[i].Type) {
			return false
		}
	}
	return true
}

func joinComponents(cs []Component, render func(*Type) string) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = render(c.Type)
	}
	return strings.Join(parts, ",")
}
