// Copyright 2026 The lnk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lnk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeIDListTwoItemsAndTerminator(t *testing.T) {
	item1 := []byte{0x01, 0x02}
	item2 := []byte{0xAA, 0xBB, 0xCC}

	var items []byte
	items = append(items, le16(uint16(2+len(item1)))...)
	items = append(items, item1...)
	items = append(items, le16(uint16(2+len(item2)))...)
	items = append(items, item2...)
	items = append(items, le16(0)...) // terminator

	data := append(le16(uint16(len(items))), items...)
	// Trailing bytes after the declared region must be ignored.
	data = append(data, 0xFF, 0xFF)

	r := newReader(data)
	idl, n, err := decodeIDList(r)
	require.NoError(t, err)
	assert.Equal(t, 2+len(items), n)
	require.Len(t, idl.Items, 2)
	assert.Equal(t, item1, idl.Items[0].Data)
	assert.Equal(t, item2, idl.Items[1].Data)
	assert.Equal(t, len(data)-2, r.Pos())
}

func TestDecodeIDListAdvancesByDeclaredSizePastTerminator(t *testing.T) {
	// The item loop stops early, at the zero-length terminator formed by
	// the first two padding bytes, before the declared region ends; the
	// caller must still advance by 2+Size.
	item := []byte{0x01}
	itemBytes := append(le16(uint16(2+len(item))), item...)
	padding := []byte{0x00, 0x00, 0x00, 0x00} // terminator, then two bytes never walked
	region := append(append([]byte{}, itemBytes...), padding...)

	data := append(le16(uint16(len(region))), region...)
	r := newReader(data)

	idl, n, err := decodeIDList(r)
	require.NoError(t, err)
	assert.Equal(t, 2+len(region), n)
	assert.Equal(t, len(data), r.Pos())
	require.Len(t, idl.Items, 1)
}

func TestDecodeIDListRejectsTruncatedRegion(t *testing.T) {
	data := le16(100) // declares 100 bytes but none follow
	r := newReader(data)
	_, _, err := decodeIDList(r)
	assert.ErrorIs(t, err, ErrTruncatedRegion)
}

func TestDecodeIDListEmpty(t *testing.T) {
	data := le16(0)
	r := newReader(data)
	idl, n, err := decodeIDList(r)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Empty(t, idl.Items)
}
