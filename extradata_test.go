// Copyright 2026 The lnk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lnk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildSpecialFolderBlock assembles one well-formed SpecialFolderDataBlock
// (size 16, signature 0xA0000005).
func buildSpecialFolderBlock(folderID, offset uint32) []byte {
	b := append([]byte{}, le32(16)...)
	b = append(b, le32(uint32(SigSpecialFolder))...)
	b = append(b, le32(folderID)...)
	b = append(b, le32(offset)...)
	return b
}

func TestDecodeExtraDataSingleBlock(t *testing.T) {
	data := append(buildSpecialFolderBlock(0x05, 0x10), le32(0)...) // terminator
	r := newReader(data)

	ed, err := decodeExtraData(r, len(data))
	require.NoError(t, err)
	require.Len(t, ed.Blocks, 1)
	require.NotNil(t, ed.Blocks[0].SpecialFolder)
	assert.Equal(t, uint32(0x05), ed.Blocks[0].SpecialFolder.SpecialFolderID)
	assert.True(t, ed.Present.Has(HasSpecialFolder))
}

func TestDecodeExtraDataRejectsOversizedBlock(t *testing.T) {
	data := append([]byte{}, le32(MaxExtraDataBlockSize+1)...)
	data = append(data, le32(uint32(SigSpecialFolder))...)
	r := newReader(data)

	_, err := decodeExtraData(r, len(data))
	assert.ErrorIs(t, err, ErrOversizedBlock)
}

func TestDecodeExtraDataUnknownSignatureKeptRaw(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03, 0x04}
	block := append([]byte{}, le32(uint32(8+len(payload)))...)
	block = append(block, le32(0xCAFEBABE)...)
	block = append(block, payload...)
	data := append(block, le32(0)...)
	r := newReader(data)

	ed, err := decodeExtraData(r, len(data))
	require.NoError(t, err)
	require.Len(t, ed.Blocks, 1)
	assert.Equal(t, payload, ed.Blocks[0].Unknown)
}

func TestDecodeExtraDataEmptySequence(t *testing.T) {
	data := le32(0)
	r := newReader(data)
	ed, err := decodeExtraData(r, len(data))
	require.NoError(t, err)
	assert.Empty(t, ed.Blocks)
}
