package swayabi

// Layout constants.
const (
	// WordSize is the ABI alignment unit in bytes. Every scalar encodes to
	// exactly one word.
	WordSize = 8

	// SlotSize is the width of one storage slot in bytes.
	SlotSize = 32

	// EnumTagWidth is the width of the enum discriminant word in bytes.
	EnumTagWidth = 8

	// maxLayoutDepth bounds type recursion. Well-typed input is a finite
	// tree; hitting the bound means a cyclic definition slipped past the
	// type checker.
	maxLayoutDepth = 128
)

// TypeLayout describes the physical shape of a type: its packed byte size,
// the number of 32-byte storage slots it occupies, and the offsets of its
// members. Layouts are immutable once computed and safe to share read-only
// across concurrent callers.
type TypeLayout struct {
	typ          *Type
	sizeInBytes  int
	slotCount    int
	isReference  bool
	fields       []FieldLayout   // tuple/struct members
	elem         *TypeLayout     // array element layout
	variants     []VariantLayout // enum variants
	payloadWidth int             // enum payload region width
}

// FieldLayout is one named or positional member of a composite layout.
type FieldLayout struct {
	// Name is the struct field name; empty for tuple elements.
	Name string

	// Index is the zero-based declaration position.
	Index int

	// ByteOffset is the offset from the start of the composite's packed
	// byte representation. Offsets are monotonically non-decreasing in
	// declaration order.
	ByteOffset int

	// Layout is the member's own layout.
	Layout *TypeLayout
}

// VariantLayout is one enum variant and its payload layout.
type VariantLayout struct {
	Name   string
	Tag    uint64
	Layout *TypeLayout
}

// Type returns the type this layout describes.
func (l *TypeLayout) Type() *Type {
	return l.typ
}

// SizeInBytes returns the total packed size used for ABI encoding.
func (l *TypeLayout) SizeInBytes() int {
	return l.sizeInBytes
}

// SlotCount returns the number of 32-byte storage slots the value occupies
// when stored persistently.
func (l *TypeLayout) SlotCount() int {
	return l.slotCount
}

// IsReferenceType reports whether values of this type are wider than one
// machine word or otherwise complex: structs, enums, arrays, strings, b256,
// and u256. Scalars and the unit type are value types.
func (l *TypeLayout) IsReferenceType() bool {
	return l.isReference
}

// Fields returns the member layouts of a tuple or struct, in declaration
// order. The returned slice must not be mutated.
func (l *TypeLayout) Fields() []FieldLayout {
	return l.fields
}

// FieldByName returns the layout of the named struct field.
func (l *TypeLayout) FieldByName(name string) (FieldLayout, bool) {
	for _, f := range l.fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldLayout{}, false
}

// Elem returns the element layout of an array, or nil.
func (l *TypeLayout) Elem() *TypeLayout {
	return l.elem
}

// Variants returns the variant layouts of an enum, in tag order. The
// returned slice must not be mutated.
func (l *TypeLayout) Variants() []VariantLayout {
	return l.variants
}

// PayloadWidth returns the width of an enum's payload region: the maximum
// packed size over all variant payloads.
func (l *TypeLayout) PayloadWidth() int {
	return l.payloadWidth
}

// LayoutOf computes the layout of a type. The computation is a pure function
// of the type tree; callers may cache the result per distinct type.
func LayoutOf(t *Type) (*TypeLayout, error) {
	return layoutOf(t, 0)
}

// MustLayoutOf is like LayoutOf but panics on error. Use only with types
// known to be well-formed.
func MustLayoutOf(t *Type) *TypeLayout {
	l, err := LayoutOf(t)
	if err != nil {
		panic(err)
	}
	return l
}

func layoutOf(t *Type, depth int) (*TypeLayout, error) {
	if depth > maxLayoutDepth {
		return nil, &LayoutError{Type: t, Err: ErrRecursiveType}
	}

	switch t.kind {
	case KindUnit:
		return &TypeLayout{typ: t}, nil

	case KindBool, KindU8, KindU16, KindU32, KindU64:
		return &TypeLayout{
			typ:         t,
			sizeInBytes: WordSize,
			slotCount:   1,
		}, nil

	case KindU256, KindB256:
		return &TypeLayout{
			typ:         t,
			sizeInBytes: SlotSize,
			slotCount:   1,
			isReference: true,
		}, nil

	case KindString:
		if t.length == 0 {
			return nil, &LayoutError{Type: t, Err: ErrZeroSizedType}
		}
		size := wordAlign(t.length)
		return &TypeLayout{
			typ:         t,
			sizeInBytes: size,
			slotCount:   slotsFor(size),
			isReference: true,
		}, nil

	case KindArray:
		elem, err := layoutOf(t.elem, depth+1)
		if err != nil {
			return nil, err
		}
		size := t.length * elem.sizeInBytes
		if size == 0 {
			return nil, &LayoutError{Type: t, Err: ErrZeroSizedType}
		}
		return &TypeLayout{
			typ:         t,
			sizeInBytes: size,
			slotCount:   slotsFor(size),
			isReference: true,
			elem:        elem,
		}, nil

	case KindTuple, KindStruct:
		fields := make([]FieldLayout, len(t.fields))
		offset := 0
		for i, c := range t.fields {
			fl, err := layoutOf(c.Type, depth+1)
			if err != nil {
				return nil, err
			}
			fields[i] = FieldLayout{
				Name:       c.Name,
				Index:      i,
				ByteOffset: offset,
				Layout:     fl,
			}
			offset += fl.sizeInBytes
		}
		if offset == 0 {
			return nil, &LayoutError{Type: t, Err: ErrZeroSizedType}
		}
		return &TypeLayout{
			typ:         t,
			sizeInBytes: offset,
			slotCount:   slotsFor(offset),
			isReference: true,
			fields:      fields,
		}, nil

	case KindEnum:
		variants := make([]VariantLayout, len(t.variants))
		payloadWidth := 0
		for i, v := range t.variants {
			vl, err := layoutOf(v.Type, depth+1)
			if err != nil {
				return nil, err
			}
			variants[i] = VariantLayout{Name: v.Name, Tag: uint64(i), Layout: vl}
			if vl.sizeInBytes > payloadWidth {
				payloadWidth = vl.sizeInBytes
			}
		}
		size := EnumTagWidth + payloadWidth
		return &TypeLayout{
			typ:          t,
			sizeInBytes:  size,
			slotCount:    slotsFor(size),
			isReference:  true,
			variants:     variants,
			payloadWidth: payloadWidth,
		}, nil

	default:
		return nil, &LayoutError{Type: t, Err: errUnknownKind}
	}
}

// wordAlign rounds n up to the next multiple of WordSize.
func wordAlign(n int) int {
	return (n + WordSize - 1) / WordSize * WordSize
}

// slotsFor returns the number of 32-byte slots needed for size bytes.
func slotsFor(size int) int {
	return (size + SlotSize - 1) / SlotSize
}
