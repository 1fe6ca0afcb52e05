// Copyright 2026 The lnk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lnk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildStringNamePropertyStore assembles a single SerializedPropertyStore
// using the well-known string-name FormatID, with one VT_UI4 value keyed
// by a UTF-16LE name.
func buildStringNamePropertyStore(name string, value uint32) []byte {
	nameUTF16 := make([]byte, 0, len(name)*2)
	for _, r := range name {
		nameUTF16 = append(nameUTF16, byte(r), 0)
	}

	var val []byte
	val = append(val, le32(0)...) // placeholder for valueSize, patched below
	val = append(val, le32(uint32(len(nameUTF16)))...)
	val = append(val, 0x00) // reserved
	val = append(val, nameUTF16...)
	val = append(val, le16(uint16(VTUI4))...)
	val = append(val, le16(0)...) // padding
	val = append(val, le32(value)...)
	putLE32(val, 0, uint32(len(val)))

	var store []byte
	store = append(store, le32(0)...) // placeholder for store Size
	store = append(store, le32(propertyStoreVersionSignature)...)
	store = append(store, stringNamePropertySetFormatID[:]...)
	store = append(store, val...)
	store = append(store, le32(0)...) // terminating zero valueSize
	putLE32(store, 0, uint32(len(store)))

	return store
}

func putLE32(b []byte, off int, v uint32) {
	b[off] = byte(v)
	b[off+1] = byte(v >> 8)
	b[off+2] = byte(v >> 16)
	b[off+3] = byte(v >> 24)
}

func TestDecodePropertyStoresStringName(t *testing.T) {
	data := buildStringNamePropertyStore("Title", 42)
	r := newReader(data)

	stores, err := decodePropertyStores(r, len(data))
	require.NoError(t, err)
	require.Len(t, stores, 1)

	store := stores[0]
	assert.Equal(t, StringName, store.NameType)
	assert.Equal(t, stringNamePropertySetFormatID, store.FormatID)
	require.Len(t, store.Values, 1)
	assert.Equal(t, "Title", store.Values[0].Name)
	assert.Equal(t, uint32(42), store.Values[0].Variant.Value)
}

func TestDecodePropertyStoresRejectsBadSignature(t *testing.T) {
	data := buildStringNamePropertyStore("X", 1)
	// Corrupt the version signature (right after the 4-byte store size).
	data[4] = 0x00
	data[5] = 0x00
	r := newReader(data)

	_, err := decodePropertyStores(r, len(data))
	assert.ErrorIs(t, err, ErrInvalidPropertyStore)
}

func TestFindPropertyStoresLocatesEmbeddedStore(t *testing.T) {
	store := buildStringNamePropertyStore("Author", 7)
	data := append([]byte{0xDE, 0xAD, 0xBE, 0xEF}, store...)

	found := FindPropertyStores(data, 100)
	require.Len(t, found, 1)
	assert.Equal(t, 104, found[0].Offset)
	assert.Equal(t, "Author", found[0].Store.Values[0].Name)
}
