// Copyright 2026 The lnk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lnk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeStringDataUnicodeNameAndArguments(t *testing.T) {
	name := []byte{'h', 0, 'i', 0}
	args := []byte{'-', 0, 'x', 0}

	var data []byte
	data = append(data, le16(2)...) // Name count
	data = append(data, name...)
	data = append(data, le16(2)...) // Arguments count
	data = append(data, args...)

	flags := FlagHasName | FlagHasArguments | FlagIsUnicode
	r := newReader(data)
	sd, n, err := decodeStringData(r, flags)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.True(t, sd.Name.Present)
	assert.Equal(t, "hi", sd.Name.Value)
	assert.False(t, sd.RelativePath.Present)
	assert.True(t, sd.Arguments.Present)
	assert.Equal(t, "-x", sd.Arguments.Value)
}

func TestDecodeStringDataCodePageIconLocation(t *testing.T) {
	icon := []byte("C:\\x.ico")
	data := append(le16(uint16(len(icon))), icon...)

	r := newReader(data)
	sd, _, err := decodeStringData(r, FlagHasIconLocation)
	require.NoError(t, err)
	assert.Equal(t, "C:\\x.ico", sd.IconLocation.Value)
}

func TestDecodeStringDataEntryCapsRetainedValueButKeepsCount(t *testing.T) {
	count := maxStringDataUnits + 10
	payload := make([]byte, count)
	for i := range payload {
		payload[i] = 'a'
	}
	data := append(le16(uint16(count)), payload...)

	r := newReader(data)
	entry, err := decodeStringDataEntry(r, false)
	require.NoError(t, err)
	assert.Equal(t, count, entry.Count)
	assert.Len(t, entry.Value, maxStringDataUnits)
	assert.Equal(t, len(data), r.Pos())
}

func TestDecodeStringDataSkipsAbsentEntries(t *testing.T) {
	r := newReader(nil)
	sd, n, err := decodeStringData(r, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, StringData{}, sd)
}
