// Copyright 2026 The lnk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lnk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderFixedWidthReads(t *testing.T) {
	data := []byte{
		0x01,
		0x02, 0x00,
		0x03, 0x00, 0x00, 0x00,
		0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
	r := newReader(data)

	u8, err := r.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x01), u8)

	u16, err := r.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x02), u16)

	u32, err := r.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x03), u32)

	u64, err := r.ReadUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x04), u64)

	assert.Equal(t, len(data), r.Pos())
	assert.Equal(t, 0, r.Remaining())
}

func TestReaderNeedFailsPastEnd(t *testing.T) {
	r := newReader([]byte{0x01, 0x02})
	_, err := r.ReadUint32()
	assert.ErrorIs(t, err, ErrTruncatedRegion)
}

func TestReaderSeekBounds(t *testing.T) {
	r := newReader([]byte{0x01, 0x02, 0x03})
	require.NoError(t, r.Seek(2))
	assert.Equal(t, 2, r.Pos())

	err := r.Seek(10)
	assert.ErrorIs(t, err, ErrTruncatedRegion)

	err = r.Seek(-1)
	assert.Error(t, err)
}

func TestReadFixedCodePageTruncatesAtNul(t *testing.T) {
	data := append([]byte("hi"), 0x00, 0x00, 0x00)
	r := newReader(data)
	s, err := r.ReadFixedCodePage(5)
	require.NoError(t, err)
	assert.Equal(t, "hi", s)
}

func TestReadFixedUTF16LETruncatesAtNul(t *testing.T) {
	// "ab" followed by a NUL code unit.
	data := []byte{'a', 0x00, 'b', 0x00, 0x00, 0x00}
	r := newReader(data)
	s, err := r.ReadFixedUTF16LE(3)
	require.NoError(t, err)
	assert.Equal(t, "ab", s)
}

func TestReadCountedStringsAreAuthoritative(t *testing.T) {
	data := []byte{'a', 0x00, 'b', 0x00}
	r := newReader(data)
	s, err := r.ReadCountedCodePage(4)
	require.NoError(t, err)
	assert.Equal(t, "a\x00b\x00", s)
}

func TestReadNulTerminatedCodePage(t *testing.T) {
	data := []byte("hello\x00trailing")
	r := newReader(data)
	s, n, err := r.ReadNulTerminatedCodePage(20)
	require.NoError(t, err)
	assert.Equal(t, "hello", s)
	assert.Equal(t, 6, n)
}

func TestReadNulTerminatedUTF16LE(t *testing.T) {
	data := []byte{'h', 0x00, 'i', 0x00, 0x00, 0x00, 'x', 0x00}
	r := newReader(data)
	s, n, err := r.ReadNulTerminatedUTF16LE(10)
	require.NoError(t, err)
	assert.Equal(t, "hi", s)
	assert.Equal(t, 6, n)
}
