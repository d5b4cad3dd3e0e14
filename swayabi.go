// Package swayabi implements the Sway value layout and encoding rules used by
// Fuel-style smart contracts: deterministic storage-slot key derivation, the
// physical layout of composite values, and ABI call data encoding/decoding.
//
// The package covers four concerns:
//   - Type grammar: a closed description of Sway's encodable types (bool,
//     unsigned integers, b256, fixed strings, arrays, tuples, structs, enums)
//   - Layout engine: size, slot count, and per-field byte offsets for any type
//   - ABI codec: word-aligned big-endian encoding and decoding of typed values,
//     including selector-prefixed function call buffers
//   - Storage keys: sha256-derived 32-byte slot keys for declared storage
//     fields, map entries, and vector elements
//
// # Basic Usage
//
// Build types, wrap Go values, and encode:
//
//	point := swayabi.StructType("Point",
//	    swayabi.Component{Name: "x", Type: swayabi.TypeU64},
//	    swayabi.Component{Name: "y", Type: swayabi.TypeU64},
//	)
//
//	value := swayabi.MustStruct(point, swayabi.U64(3), swayabi.U64(4))
//
//	encoded, err := swayabi.Encode(value)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	decoded, err := swayabi.Decode(point, encoded)
//
// Function calls are encoded against an ABI description:
//
//	contractABI := swayabi.MustParseABI(abiJSON)
//	fn, _ := contractABI.Function("transfer")
//	calldata, err := swayabi.EncodeFunctionCall(fn, swayabi.U64(100))
//
// # Encoding Rules
//
// Every scalar (bool, u8..u64) occupies one big-endian, right-aligned 8-byte
// word. u256 and b256 occupy 32 bytes. Fixed strings are zero-padded to the
// next word boundary. Composites concatenate their members in declaration
// order with no reordering and no implicit padding. Enums are encoded at a
// constant width: an 8-byte tag word followed by a payload region sized for
// the largest variant.
//
// # Storage Keys
//
// A declared storage field lives at sha256("storage.<name>") unless the
// declaration pins an explicit key. Map entries and vector elements derive
// their keys by hashing the parent key together with the encoded lookup key
// or index, so nested container fields never occupy byte offsets inside
// their parent's slots. Values wider than one 32-byte slot spill into
// sequential offset keys.
//
// All operations are pure functions over immutable inputs: encoding copies
// into a fresh buffer, decoding builds fresh values, and computed layouts are
// safe to share across concurrent readers.
package swayabi
