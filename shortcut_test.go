// Copyright 2026 The lnk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lnk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildMinimalShortcut assembles a complete, minimal .lnk byte stream:
// a header with only Name set, no LinkTargetIDList, no LinkInfo, and a
// terminated (empty) ExtraData sequence.
func buildMinimalShortcut(name string) []byte {
	header := buildHeaderBytes(uint32(FlagHasName|FlagIsUnicode), 0)

	var nameUnits []byte
	for _, r := range name {
		nameUnits = append(nameUnits, byte(r), 0)
	}
	stringData := append(le16(uint16(len([]rune(name)))), nameUnits...)

	data := append(append([]byte{}, header...), stringData...)
	data = append(data, le32(0)...) // ExtraData terminator
	return data
}

func TestNewBytesDecodesMinimalShortcut(t *testing.T) {
	data := buildMinimalShortcut("hi")

	s, err := NewBytes(data, nil)
	require.NoError(t, err)
	assert.Nil(t, s.LinkTargetID)
	assert.Nil(t, s.LinkInfo)
	assert.True(t, s.StringData.Name.Present)
	assert.Equal(t, "hi", s.StringData.Name.Value)
	assert.Empty(t, s.ExtraData.Blocks)
	assert.Empty(t, s.Anomalies)
}

func TestNewBytesFlagsNoTargetInformation(t *testing.T) {
	header := buildHeaderBytes(0, 0) // no LinkInfo, no Name, no RelativePath
	data := append(append([]byte{}, header...), le32(0)...)

	s, err := NewBytes(data, nil)
	require.NoError(t, err)
	assert.Contains(t, s.Anomalies, AnoNoTargetInformation)
}

func TestNewBytesRejectsNonShortcut(t *testing.T) {
	_, err := NewBytes(make([]byte, 4), nil)
	assert.Error(t, err)
}

func TestNewBytesSkipExtraData(t *testing.T) {
	data := buildMinimalShortcut("x")
	// Append a well-formed SpecialFolder block that SkipExtraData must
	// cause the decoder to ignore entirely.
	data = append(data[:len(data)-4], buildSpecialFolderBlock(3, 0)...)
	data = append(data, le32(0)...)

	s, err := NewBytes(data, &Options{SkipExtraData: true})
	require.NoError(t, err)
	assert.Empty(t, s.ExtraData.Blocks)
}

func TestNewBytesSurfacesPropertyStoreValues(t *testing.T) {
	store := buildStringNamePropertyStore("Author", 7)
	block := append([]byte{}, le32(uint32(8+len(store)))...)
	block = append(block, le32(uint32(SigPropertyStore))...)
	block = append(block, store...)

	data := buildMinimalShortcut("x")
	data = append(data[:len(data)-4], block...)
	data = append(data, le32(0)...)

	s, err := NewBytes(data, nil)
	require.NoError(t, err)
	require.Len(t, s.ExtraData.Blocks, 1)
	require.NotNil(t, s.ExtraData.Blocks[0].PropertyStore)
	require.Len(t, s.ExtraData.Blocks[0].PropertyStore.Stores, 1)
	assert.Equal(t, "Author", s.ExtraData.Blocks[0].PropertyStore.Stores[0].Values[0].Name)
	assert.True(t, s.ExtraData.Present.Has(HasPropertyStore))
}
