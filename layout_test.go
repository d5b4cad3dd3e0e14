package swayabi

import (
	"errors"
	"testing"
)

func TestLayoutSizes(t *testing.T) {
	tests := []struct {
		name      string
		typ       *Type
		size      int
		slots     int
		reference bool
	}{
		{"unit", TypeUnit, 0, 0, false},
		{"bool", TypeBool, 8, 1, false},
		{"u8", TypeU8, 8, 1, false},
		{"u16", TypeU16, 8, 1, false},
		{"u32", TypeU32, 8, 1, false},
		{"u64", TypeU64, 8, 1, false},
		{"u256", TypeU256, 32, 1, true},
		{"b256", TypeB256, 32, 1, true},
		{"str[5] pads to word", StringType(5), 8, 1, true},
		{"str[8] exact", StringType(8), 8, 1, true},
		{"str[33] spills slots", StringType(33), 40, 2, true},
		{"u64 array", ArrayType(TypeU64, 4), 32, 1, true},
		{"b256 array", ArrayType(TypeB256, 3), 96, 3, true},
		{"pair tuple", TupleType(TypeU64, TypeBool), 16, 1, true},
		{
			"struct of scalars",
			StructType("S",
				Component{Name: "a", Type: TypeU64},
				Component{Name: "b", Type: TypeU32},
				Component{Name: "c", Type: TypeBool},
			),
			24, 1, true,
		},
		{
			"struct spanning slots",
			StructType("Wide",
				Component{Name: "id", Type: TypeB256},
				Component{Name: "amount", Type: TypeU64},
			),
			40, 2, true,
		},
		{
			"enum payload width is max variant",
			EnumType("E",
				Component{Name: "A", Type: TypeU64},
				Component{Name: "B", Type: TypeB256},
				Component{Name: "C"},
			),
			40, 2, true,
		},
		{
			"enum of unit variants",
			EnumType("Flag", Component{Name: "On"}, Component{Name: "Off"}),
			8, 1, true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, err := LayoutOf(tt.typ)
			if err != nil {
				t.Fatalf("LayoutOf(%s): %v", tt.typ, err)
			}
			if layout.SizeInBytes() != tt.size {
				t.Errorf("size: expected %d, got %d", tt.size, layout.SizeInBytes())
			}
			if layout.SlotCount() != tt.slots {
				t.Errorf("slots: expected %d, got %d", tt.slots, layout.SlotCount())
			}
			if layout.IsReferenceType() != tt.reference {
				t.Errorf("reference: expected %v, got %v", tt.reference, layout.IsReferenceType())
			}
			if layout.SlotCount() != slotsFor(layout.SizeInBytes()) {
				t.Errorf("slot count %d inconsistent with size %d",
					layout.SlotCount(), layout.SizeInBytes())
			}
		})
	}
}

func TestLayoutFieldOffsets(t *testing.T) {
	inner := StructType("A", Component{Name: "a", Type: TypeU64})
	outer := StructType("B",
		Component{Name: "a", Type: inner},
		Component{Name: "x", Type: TupleType(TypeU64, TypeU64)},
	)

	layout, err := LayoutOf(outer)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("fields laid out in declaration order", func(t *testing.T) {
		fields := layout.Fields()
		if len(fields) != 2 {
			t.Fatalf("expected 2 fields, got %d", len(fields))
		}
		if fields[0].ByteOffset != 0 {
			t.Errorf("field a: expected offset 0, got %d", fields[0].ByteOffset)
		}
		// x starts directly after A: no padding between fields.
		if fields[1].ByteOffset != 8 {
			t.Errorf("field x: expected offset 8, got %d", fields[1].ByteOffset)
		}
	})

	t.Run("nested tuple element offsets", func(t *testing.T) {
		x, ok := layout.FieldByName("x")
		if !ok {
			t.Fatal("field x not found")
		}
		elems := x.Layout.Fields()
		if elems[0].ByteOffset != 0 || elems[1].ByteOffset != 8 {
			t.Errorf("tuple offsets: expected 0 and 8, got %d and %d",
				elems[0].ByteOffset, elems[1].ByteOffset)
		}
	})

	t.Run("offsets are monotonically non-decreasing", func(t *testing.T) {
		prev := -1
		for _, f := range layout.Fields() {
			if f.ByteOffset < prev {
				t.Errorf("offset %d after %d", f.ByteOffset, prev)
			}
			prev = f.ByteOffset
		}
	})
}

func TestLayoutRecursiveTypeDetected(t *testing.T) {
	node := StructType("Node", Component{Name: "next", Type: TypeU64})
	// Patch the field to point back at the struct, simulating a cyclic
	// definition that escaped type checking.
	node.fields[0].Type = node

	_, err := LayoutOf(node)
	if !errors.Is(err, ErrRecursiveType) {
		t.Errorf("expected ErrRecursiveType, got %v", err)
	}

	var layoutErr *LayoutError
	if !errors.As(err, &layoutErr) {
		t.Errorf("expected *LayoutError, got %T", err)
	}
}

func TestLayoutZeroSizedComposites(t *testing.T) {
	tests := []struct {
		name string
		typ  *Type
	}{
		{"struct with no fields", StructType("Empty")},
		{"struct of units", StructType("Units", Component{Name: "u", Type: TypeUnit})},
		{"array of units", ArrayType(TypeUnit, 3)},
		{"zero-length array", ArrayType(TypeU64, 0)},
		{"zero-length string", StringType(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LayoutOf(tt.typ); !errors.Is(err, ErrZeroSizedType) {
				t.Errorf("expected ErrZeroSizedType, got %v", err)
			}
		})
	}
}

func TestLayoutRejectsUnknownKind(t *testing.T) {
	bad := &Type{kind: Kind(200)}
	if _, err := LayoutOf(bad); !errors.Is(err, errUnknownKind) {
		t.Errorf("expected errUnknownKind, got %v", err)
	}
}

func TestLayoutEnumVariants(t *testing.T) {
	e := EnumType("Planet",
		Component{Name: "Earth", Type: TypeU64},
		Component{Name: "Mars"},
	)
	layout, err := LayoutOf(e)
	if err != nil {
		t.Fatal(err)
	}
	if layout.PayloadWidth() != 8 {
		t.Errorf("payload width: expected 8, got %d", layout.PayloadWidth())
	}
	variants := layout.Variants()
	if len(variants) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(variants))
	}
	if variants[0].Tag != 0 || variants[1].Tag != 1 {
		t.Errorf("tags: expected 0 and 1, got %d and %d", variants[0].Tag, variants[1].Tag)
	}
	if variants[1].Layout.SizeInBytes() != 0 {
		t.Errorf("unit variant payload size: expected 0, got %d", variants[1].Layout.SizeInBytes())
	}
}

func TestLayoutDoesNotDependOnConstruction(t *testing.T) {
	// Two structurally identical array types computed independently must
	// produce identical layouts.
	a := ArrayType(TypeU32, 3)
	b := ArrayType(TypeU32, 3)

	la := MustLayoutOf(a)
	lb := MustLayoutOf(b)

	if la.SizeInBytes() != lb.SizeInBytes() || la.SlotCount() != lb.SlotCount() {
		t.Errorf("layouts differ: %d/%d vs %d/%d",
			la.SizeInBytes(), la.SlotCount(), lb.SizeInBytes(), lb.SlotCount())
	}
}
