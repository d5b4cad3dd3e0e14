package swayabi

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Storage path constants.
const (
	// storageDomain prefixes every derived top-level field path.
	storageDomain = "storage"

	// namespaceSeparator joins the domain to a namespace path.
	namespaceSeparator = "::"
)

// FieldKey derives the 32-byte slot key of a top-level named storage field:
// sha256("storage.<name>").
func FieldKey(name string) common.Hash {
	return sha256.Sum256([]byte(storageDomain + "." + name))
}

// NamespacedFieldKey derives the slot key of a storage field nested in
// namespaces: sha256("storage::<ns>.<...>.<name>") with the namespace path
// dot-joined.
func NamespacedFieldKey(namespaces []string, name string) common.Hash {
	if len(namespaces) == 0 {
		return FieldKey(name)
	}
	path := storageDomain + namespaceSeparator + strings.Join(namespaces, ".") + "." + name
	return sha256.Sum256([]byte(path))
}

// MapEntryKey derives the slot key of one map entry from the map's own base
// key and the ABI encoding of the lookup key:
// sha256(base_key || encoded_key). Nested maps compose by using an entry
// key as the next base key.
func MapEntryKey(base common.Hash, encodedKey []byte) common.Hash {
	h := sha256.New()
	h.Write(base[:])
	h.Write(encodedKey)
	var key common.Hash
	h.Sum(key[:0])
	return key
}

// MapEntryKeyOf is MapEntryKey over the ABI encoding of a typed lookup key.
func MapEntryKeyOf(base common.Hash, key Value) (common.Hash, error) {
	encoded, err := Encode(key)
	if err != nil {
		return common.Hash{}, err
	}
	return MapEntryKey(base, encoded), nil
}

// VectorElementKey derives the slot key of one vector element from the
// vector's base key and the element index. The vector's length counter
// lives at the base key itself.
func VectorElementKey(base common.Hash, index uint64) common.Hash {
	var idx [WordSize]byte
	binary.BigEndian.PutUint64(idx[:], index)
	return MapEntryKey(base, idx[:])
}

// SlotKeyAtOffset returns the key of the i-th slot of a multi-slot value:
// the base key plus the offset as a big-endian 256-bit addition. Slot 0 is
// the base key itself.
func SlotKeyAtOffset(base common.Hash, offset uint64) common.Hash {
	if offset == 0 {
		return base
	}
	out := base
	carry := offset
	for i := common.HashLength - 1; i >= 0 && carry > 0; i-- {
		sum := uint64(out[i]) + (carry & 0xff)
		out[i] = byte(sum)
		carry = carry>>8 + sum>>8
	}
	return out
}

// StorageField declares one top-level storage variable: a name, optional
// enclosing namespaces, and an optional pinned key that bypasses hashing.
type StorageField struct {
	Name       string
	Namespaces []string

	// Key, when non-nil, is used verbatim as the field's slot key instead
	// of the derived hash.
	Key *common.Hash
}

// SlotKey returns the field's 32-byte slot key.
func (f StorageField) SlotKey() common.Hash {
	if f.Key != nil {
		return *f.Key
	}
	return NamespacedFieldKey(f.Namespaces, f.Name)
}

// SlotStore is an in-memory store of 32-byte storage slots addressed by
// derived keys. It plays the role of the persistent backend during tests
// and tooling; all key derivation stays in the pure functions above.
type SlotStore struct {
	slots map[common.Hash][SlotSize]byte
}

// NewSlotStore creates an empty slot store.
func NewSlotStore() *SlotStore {
	return &SlotStore{slots: make(map[common.Hash][SlotSize]byte)}
}

// Write stores one 32-byte slot.
func (s *SlotStore) Write(key common.Hash, word [SlotSize]byte) {
	s.slots[key] = word
}

// Read loads one 32-byte slot. The second result is false when the slot was
// never written.
func (s *SlotStore) Read(key common.Hash) ([SlotSize]byte, bool) {
	word, ok := s.slots[key]
	return word, ok
}

// Len returns the number of written slots.
func (s *SlotStore) Len() int {
	return len(s.slots)
}

// WriteValue encodes a value and writes it starting at the given key, one
// slot per 32-byte chunk at sequential offset keys. The final chunk is
// zero-padded to the slot width. Returns the number of slots written; a
// top-level value always occupies at least one slot.
func (s *SlotStore) WriteValue(key common.Hash, v Value) (int, error) {
	encoded, err := Encode(v)
	if err != nil {
		return 0, err
	}
	slots := slotsFor(len(encoded))
	if slots == 0 {
		// One-slot-per-declared-field policy: even a unit field owns its
		// slot.
		slots = 1
	}
	for i := 0; i < slots; i++ {
		var word [SlotSize]byte
		copy(word[:], encoded[min(i*SlotSize, len(encoded)):])
		s.Write(SlotKeyAtOffset(key, uint64(i)), word)
	}
	return slots, nil
}

// ReadValue reads a value of the given type starting at the given key.
// Fails with ErrSlotNotWritten when the first slot is absent, and with
// ErrTruncatedInput when a continuation slot of a multi-slot value is
// absent.
func (s *SlotStore) ReadValue(key common.Hash, t *Type) (Value, error) {
	layout, err := LayoutOf(t)
	if err != nil {
		return nil, err
	}
	slots := layout.SlotCount()
	if slots == 0 {
		slots = 1
	}
	buf := make([]byte, 0, slots*SlotSize)
	for i := 0; i < slots; i++ {
		word, ok := s.Read(SlotKeyAtOffset(key, uint64(i)))
		if !ok {
			if i == 0 {
				return nil, ErrSlotNotWritten
			}
			return nil, &DecodeError{Type: t, Offset: i * SlotSize, Err: ErrTruncatedInput}
		}
		buf = append(buf, word[:]...)
	}
	return Decode(t, buf)
}

// TryReadValue is ReadValue with explicit absence: a never-written field
// yields (nil, false, nil) rather than an error. Decode failures and
// partially written values still report their error.
func (s *SlotStore) TryReadValue(key common.Hash, t *Type) (Value, bool, error) {
	v, err := s.ReadValue(key, t)
	if errors.Is(err, ErrSlotNotWritten) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// StorageMap is a typed view over map entries rooted at a base key, in the
// manner of a contract-side StorageMap<K, V>.
type StorageMap struct {
	store     *SlotStore
	base      common.Hash
	keyType   *Type
	valueType *Type
}

// NewStorageMap creates a map view rooted at the given base key.
func NewStorageMap(store *SlotStore, base common.Hash, keyType, valueType *Type) *StorageMap {
	return &StorageMap{store: store, base: base, keyType: keyType, valueType: valueType}
}

// Insert writes the value stored under key.
func (m *StorageMap) Insert(key, value Value) error {
	if err := m.checkKey(key); err != nil {
		return err
	}
	if !value.Type().Equal(m.valueType) {
		return &TypeMismatchError{Expected: m.valueType.String(), Got: value.Type().String()}
	}
	slot, err := MapEntryKeyOf(m.base, key)
	if err != nil {
		return err
	}
	_, err = m.store.WriteValue(slot, value)
	return err
}

// Get reads the value stored under key, failing with ErrSlotNotWritten for
// an absent entry.
func (m *StorageMap) Get(key Value) (Value, error) {
	if err := m.checkKey(key); err != nil {
		return nil, err
	}
	slot, err := MapEntryKeyOf(m.base, key)
	if err != nil {
		return nil, err
	}
	return m.store.ReadValue(slot, m.valueType)
}

// TryGet reads the value stored under key with explicit absence.
func (m *StorageMap) TryGet(key Value) (Value, bool, error) {
	v, err := m.Get(key)
	if errors.Is(err, ErrSlotNotWritten) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (m *StorageMap) checkKey(key Value) error {
	if !key.Type().Equal(m.keyType) {
		return &TypeMismatchError{Expected: m.keyType.String(), Got: key.Type().String()}
	}
	return nil
}

// StorageVector is a typed view over vector elements rooted at a base key,
// in the manner of a contract-side StorageVec<T>. The length counter lives
// at the base key; element i lives at sha256(base || u64be(i)).
type StorageVector struct {
	store    *SlotStore
	base     common.Hash
	elemType *Type
}

// NewStorageVector creates a vector view rooted at the given base key.
func NewStorageVector(store *SlotStore, base common.Hash, elemType *Type) *StorageVector {
	return &StorageVector{store: store, base: base, elemType: elemType}
}

// Len returns the stored element count; a vector that was never pushed to
// has length zero.
func (v *StorageVector) Len() (uint64, error) {
	length, ok, err := v.store.TryReadValue(v.base, TypeU64)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return length.(*UintValue).Uint64(), nil
}

// Push appends a value and bumps the length counter.
func (v *StorageVector) Push(value Value) error {
	if !value.Type().Equal(v.elemType) {
		return &TypeMismatchError{Expected: v.elemType.String(), Got: value.Type().String()}
	}
	length, err := v.Len()
	if err != nil {
		return err
	}
	if _, err := v.store.WriteValue(VectorElementKey(v.base, length), value); err != nil {
		return err
	}
	_, err = v.store.WriteValue(v.base, U64(length+1))
	return err
}

// Get reads the element at index, failing with ErrSlotNotWritten for an
// index at or beyond the length.
func (v *StorageVector) Get(index uint64) (Value, error) {
	length, err := v.Len()
	if err != nil {
		return nil, err
	}
	if index >= length {
		return nil, ErrSlotNotWritten
	}
	return v.store.ReadValue(VectorElementKey(v.base, index), v.elemType)
}
