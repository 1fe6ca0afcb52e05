// Copyright 2026 The lnk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lnk

import (
	"encoding/binary"
	"fmt"
)

// propertyStoreVersionSignature is MS-PROPSTORE's "1SPS" version
// signature, 0x53505331 read little-endian.
const propertyStoreVersionSignature = 0x53505331

// stringNamePropertySetFormatID is the well-known CLSID that marks a
// SerializedPropertyStore as using string names rather than integer
// IDs. Per the REDESIGN FLAG, this must be a full 16-byte comparison:
// the original implementation this spec was distilled from compared
// only a duplicated fragment of the final field and so never actually
// matched most real stores.
var stringNamePropertySetFormatID = UUID{
	0x05, 0xd5, 0xcd, 0xd5,
	0x9c, 0x2e,
	0x1b, 0x10,
	0x93, 0x97,
	0x08, 0x00, 0x2b, 0x2c, 0xf9, 0xae,
}

// NameType discriminates whether a SerializedPropertyStore's values
// are keyed by string name or by 32-bit integer ID.
type NameType int

const (
	IntegerName NameType = iota
	StringName
)

func (n NameType) String() string {
	if n == StringName {
		return "StringName"
	}
	return "IntegerName"
}

// SerializedPropertyValue is one name/id + PROPVARIANT pair within a
// SerializedPropertyStore.
type SerializedPropertyValue struct {
	NameType NameType
	Name     string // populated when NameType == StringName
	ID       uint32 // populated when NameType == IntegerName
	Variant  PropVariant
}

// SerializedPropertyStore is a self-describing bag of typed
// name/value pairs (MS-PROPSTORE).
type SerializedPropertyStore struct {
	Size     uint32
	Version  uint32
	FormatID UUID
	NameType NameType
	Values   []SerializedPropertyValue
}

// decodePropertyStores decodes a terminated sequence of
// SerializedPropertyStore structures starting at r's current position,
// bounded by end. A storage-size of 0 terminates the sequence.
func decodePropertyStores(r *reader, end int) ([]SerializedPropertyStore, error) {
	var stores []SerializedPropertyStore
	for r.Pos() < end {
		sizePos := r.Pos()
		size, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		if size == 0 {
			break
		}
		storeEnd := sizePos + int(size)
		if storeEnd > end {
			return nil, fmt.Errorf("%w: SerializedPropertyStore at %d overruns its host region", ErrTruncatedRegion, sizePos)
		}

		store, err := decodePropertyStoreBody(r, size, storeEnd)
		if err != nil {
			return nil, err
		}
		if err := r.Seek(storeEnd); err != nil {
			return nil, err
		}
		stores = append(stores, store)
	}
	return stores, nil
}

func decodePropertyStoreBody(r *reader, size uint32, storeEnd int) (SerializedPropertyStore, error) {
	version, err := r.ReadUint32()
	if err != nil {
		return SerializedPropertyStore{}, err
	}
	if version != propertyStoreVersionSignature {
		return SerializedPropertyStore{}, fmt.Errorf("%w: version 0x%08X, want 0x%08X", ErrInvalidPropertyStore, version, propertyStoreVersionSignature)
	}

	formatID, err := decodeUUID(r)
	if err != nil {
		return SerializedPropertyStore{}, err
	}

	nameType := IntegerName
	if formatID == stringNamePropertySetFormatID {
		nameType = StringName
	}

	var values []SerializedPropertyValue
	for r.Pos() < storeEnd {
		valueStart := r.Pos()
		valueSize, err := r.ReadUint32()
		if err != nil {
			return SerializedPropertyStore{}, err
		}
		if valueSize == 0 {
			break
		}
		valueEnd := valueStart + int(valueSize)
		if valueEnd > storeEnd {
			return SerializedPropertyStore{}, fmt.Errorf("%w: SerializedPropertyValue at %d overruns its store", ErrTruncatedRegion, valueStart)
		}

		value, err := decodePropertyValue(r, nameType, valueEnd)
		if err != nil {
			return SerializedPropertyStore{}, err
		}
		if err := r.Seek(valueEnd); err != nil {
			return SerializedPropertyStore{}, err
		}
		values = append(values, value)
	}

	return SerializedPropertyStore{
		Size:     size,
		Version:  version,
		FormatID: formatID,
		NameType: nameType,
		Values:   values,
	}, nil
}

func decodePropertyValue(r *reader, nameType NameType, valueEnd int) (SerializedPropertyValue, error) {
	var v SerializedPropertyValue
	v.NameType = nameType

	if nameType == StringName {
		nameSize, err := r.ReadUint32()
		if err != nil {
			return v, err
		}
		if _, err := r.ReadUint8(); err != nil { // reserved
			return v, err
		}
		name, err := r.ReadCountedUTF16LE(int(nameSize) / 2)
		if err != nil {
			return v, err
		}
		v.Name = name
	} else {
		id, err := r.ReadUint32()
		if err != nil {
			return v, err
		}
		if _, err := r.ReadUint8(); err != nil { // reserved
			return v, err
		}
		v.ID = id
	}

	variant, err := decodePropVariant(r, valueEnd)
	if err != nil {
		return v, err
	}
	v.Variant = variant
	return v, nil
}

// LocatedPropertyStore is a SerializedPropertyStore discovered by
// FindPropertyStores, tagged with its absolute offset within the
// caller's coordinate space.
type LocatedPropertyStore struct {
	// Offset is P-4+base: base plus the position of the store's own
	// storage-size field, where P is the position of the 1SPS
	// signature that was matched.
	Offset int
	Store  SerializedPropertyStore
}

// FindPropertyStores scans data for the MS-PROPSTORE "1SPS" version
// signature and attempts to decode a SerializedPropertyStore at each
// occurrence, rewinding 4 bytes to the store's storage-size field.
// This is how embedded property stores inside ItemID payloads (which
// have no framing of their own) are located. base is added to every
// returned offset so callers scanning a sub-slice can report absolute
// file positions.
func FindPropertyStores(data []byte, base int) []LocatedPropertyStore {
	var found []LocatedPropertyStore
	i := 0
	for i+4 <= len(data) {
		sig := binary.LittleEndian.Uint32(data[i:])
		if sig != propertyStoreVersionSignature {
			i++
			continue
		}
		storeStart := i - 4
		if storeStart < 0 {
			i++
			continue
		}

		r := newReader(data[storeStart:])
		size, err := r.ReadUint32()
		if err != nil || size == 0 {
			i++
			continue
		}
		storeEnd := storeStart + int(size)
		if storeEnd > len(data) {
			i++
			continue
		}

		store, err := decodePropertyStoreBody(r, size, storeEnd)
		if err != nil {
			i++
			continue
		}

		found = append(found, LocatedPropertyStore{
			Offset: base + storeStart,
			Store:  store,
		})
		i = storeEnd
	}
	return found
}
