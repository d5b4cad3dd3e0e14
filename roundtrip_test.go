package swayabi

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTrips encodes, checks alignment and declared size, decodes, and
// compares.
func roundTrips(t *testing.T, v Value) bool {
	t.Helper()
	encoded, err := Encode(v)
	require.NoError(t, err)
	assert.Zero(t, len(encoded)%WordSize, "encoding not word-aligned")

	layout := MustLayoutOf(v.Type())
	assert.Equal(t, layout.SizeInBytes(), len(encoded))

	decoded, err := Decode(v.Type(), encoded)
	require.NoError(t, err)
	return Equal(v, decoded)
}

func TestRoundTripScalarProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("bool round trips", prop.ForAll(
		func(v bool) bool {
			return roundTrips(t, Bool(v))
		},
		gen.Bool(),
	))

	properties.Property("u8 round trips", prop.ForAll(
		func(v uint8) bool {
			return roundTrips(t, U8(v))
		},
		gen.UInt8(),
	))

	properties.Property("u16 round trips", prop.ForAll(
		func(v uint16) bool {
			return roundTrips(t, U16(v))
		},
		gen.UInt16(),
	))

	properties.Property("u32 round trips", prop.ForAll(
		func(v uint32) bool {
			return roundTrips(t, U32(v))
		},
		gen.UInt32(),
	))

	properties.Property("u64 round trips", prop.ForAll(
		func(v uint64) bool {
			return roundTrips(t, U64(v))
		},
		gen.UInt64(),
	))

	properties.TestingRun(t)
}

func TestRoundTripWideValueProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("u256 round trips", prop.ForAll(
		func(hi, lo uint64) bool {
			n := new(uint256.Int).SetUint64(hi)
			n.Lsh(n, 64)
			n.Or(n, new(uint256.Int).SetUint64(lo))
			return roundTrips(t, U256(n))
		},
		gen.UInt64(),
		gen.UInt64(),
	))

	properties.Property("b256 round trips", prop.ForAll(
		func(seed uint64) bool {
			var h common.Hash
			for i := 0; i < common.HashLength; i++ {
				seed = seed*6364136223846793005 + 1442695040888963407
				h[i] = byte(seed >> 56)
			}
			return roundTrips(t, B256(h))
		},
		gen.UInt64(),
	))

	properties.Property("strings of any content round trip", prop.ForAll(
		func(s string) bool {
			return roundTrips(t, Str(s))
		},
		gen.AnyString().SuchThat(func(s string) bool { return s != "" }),
	))

	properties.TestingRun(t)
}

func TestRoundTripCompositeProperties(t *testing.T) {
	point := StructType("Point",
		Component{Name: "x", Type: TypeU64},
		Component{Name: "y", Type: TypeU64},
	)
	shape := EnumType("Shape",
		Component{Name: "Circle", Type: TypeU64},
		Component{Name: "Rect", Type: point},
		Component{Name: "Empty"},
	)

	properties := gopter.NewProperties(nil)

	properties.Property("structs round trip", prop.ForAll(
		func(x, y uint64) bool {
			return roundTrips(t, MustStruct(point, U64(x), U64(y)))
		},
		gen.UInt64(),
		gen.UInt64(),
	))

	properties.Property("arrays round trip", prop.ForAll(
		func(a, b, c uint32) bool {
			arr := MustArray(ArrayType(TypeU32, 3), U32(a), U32(b), U32(c))
			return roundTrips(t, arr)
		},
		gen.UInt32(),
		gen.UInt32(),
		gen.UInt32(),
	))

	properties.Property("every enum variant round trips at constant width", prop.ForAll(
		func(tag uint8, payload uint64) bool {
			var v *EnumValue
			switch tag % 3 {
			case 0:
				v = MustEnumVariant(shape, "Circle", U64(payload))
			case 1:
				v = MustEnumVariant(shape, "Rect", MustStruct(point, U64(payload), U64(payload+1)))
			default:
				v = MustEnumVariant(shape, "Empty", nil)
			}
			encoded := MustEncode(v)
			if len(encoded) != EnumTagWidth+MustLayoutOf(shape).PayloadWidth() {
				return false
			}
			return roundTrips(t, v)
		},
		gen.UInt8(),
		gen.UInt64(),
	))

	properties.Property("nested aggregates round trip", prop.ForAll(
		func(x uint64, flag bool, s string) bool {
			v := Tuple(
				MustStruct(point, U64(x), U64(x^0xff)),
				Bool(flag),
				Str(s),
			)
			return roundTrips(t, v)
		},
		gen.UInt64(),
		gen.Bool(),
		gen.AnyString().SuchThat(func(s string) bool { return s != "" }),
	))

	properties.TestingRun(t)
}

func TestStorageKeyDeterminismProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("field keys are deterministic and name-sensitive", prop.ForAll(
		func(a, b string) bool {
			if FieldKey(a) != FieldKey(a) {
				return false
			}
			if a != b && FieldKey(a) == FieldKey(b) {
				return false
			}
			return true
		},
		gen.Identifier(),
		gen.Identifier(),
	))

	properties.Property("map entry keys are index-sensitive", prop.ForAll(
		func(name string, i, j uint64) bool {
			base := FieldKey(name)
			if VectorElementKey(base, i) != VectorElementKey(base, i) {
				return false
			}
			if i != j && VectorElementKey(base, i) == VectorElementKey(base, j) {
				return false
			}
			return true
		},
		gen.Identifier(),
		gen.UInt64(),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}
