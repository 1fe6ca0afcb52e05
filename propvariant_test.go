// Copyright 2026 The lnk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lnk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func le16(v uint16) []byte { return []byte{byte(v), byte(v >> 8)} }
func le32(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func TestDecodePropVariantUI4(t *testing.T) {
	data := append(le16(uint16(VTUI4)), le16(0)...) // type + padding
	data = append(data, le32(0xDEADBEEF)...)
	r := newReader(data)

	pv, err := decodePropVariant(r, len(data))
	require.NoError(t, err)
	assert.Equal(t, VTUI4, pv.Type)
	assert.Equal(t, uint32(0xDEADBEEF), pv.Value)
	assert.False(t, pv.IsVector)
	assert.False(t, pv.IsArray)
	assert.Nil(t, pv.Unsupported)
}

func TestDecodePropVariantBool(t *testing.T) {
	data := append(le16(uint16(VTBool)), le16(0)...)
	data = append(data, le16(0xFFFF)...)
	r := newReader(data)

	pv, err := decodePropVariant(r, len(data))
	require.NoError(t, err)
	assert.Equal(t, true, pv.Value)
}

func TestDecodePropVariantLPWSTR(t *testing.T) {
	value := []byte{'h', 0x00, 'i', 0x00}
	data := append(le16(uint16(VTLPWSTR)), le16(0)...)
	data = append(data, le32(2)...) // count in code units
	data = append(data, value...)
	r := newReader(data)

	pv, err := decodePropVariant(r, len(data))
	require.NoError(t, err)
	assert.Equal(t, "hi", pv.Value)
}

func TestDecodePropVariantVector(t *testing.T) {
	rawType := uint16(VTUI4) | VTVector
	data := append(le16(rawType), le16(0)...)
	data = append(data, le32(2)...) // vector count
	data = append(data, le32(1)...)
	data = append(data, le32(2)...)
	r := newReader(data)

	pv, err := decodePropVariant(r, len(data))
	require.NoError(t, err)
	assert.True(t, pv.IsVector)
	require.Len(t, pv.Vector, 2)
	assert.Equal(t, uint32(1), pv.Vector[0])
	assert.Equal(t, uint32(2), pv.Vector[1])
}

func TestDecodePropVariantUnsupportedTypeIsNonFatal(t *testing.T) {
	// 0x0009 (VT_DISPATCH) is not in the decoded subset.
	data := append(le16(0x0009), le16(0)...)
	data = append(data, []byte{0xAA, 0xBB, 0xCC}...)
	r := newReader(data)

	pv, err := decodePropVariant(r, len(data))
	require.NoError(t, err)
	require.NotNil(t, pv.Unsupported)
	assert.Equal(t, uint16(0x0009), pv.Unsupported.RawType)
	assert.Equal(t, []byte{0xAA, 0xBB, 0xCC}, pv.Unsupported.Raw)
}

func TestVTVectorAndArrayAreBitwiseDistinct(t *testing.T) {
	// A type with both modifier bits set must be detected as both,
	// never conflated by a boolean-OR test.
	rawType := uint16(VTUI4) | VTVector | VTArray
	base := VarType(rawType & vtTypeMask)
	assert.Equal(t, VTUI4, base)
	assert.True(t, rawType&VTVector != 0)
	assert.True(t, rawType&VTArray != 0)
}
