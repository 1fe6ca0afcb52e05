// Copyright 2026 The lnk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lnk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAcceptsWellFormedHeader(t *testing.T) {
	data := buildHeaderBytes(0, 0)
	res := Validate(data)
	assert.True(t, res.Valid)
	assert.NoError(t, res.Err)
}

func TestValidateRejectsTooShort(t *testing.T) {
	res := Validate(make([]byte, 10))
	assert.False(t, res.Valid)
	assert.Equal(t, "TooShort", res.Reason)
	assert.ErrorIs(t, res.Err, ErrNotAShortcut)
}

func TestValidateRejectsBadHeaderSize(t *testing.T) {
	data := buildHeaderBytes(0, 0)
	data[0] = 0x01
	res := Validate(data)
	assert.False(t, res.Valid)
	assert.Equal(t, "HeaderSize", res.Reason)
}

func TestValidateRejectsBadClassID(t *testing.T) {
	data := buildHeaderBytes(0, 0)
	data[4] = 0xFF
	res := Validate(data)
	assert.False(t, res.Valid)
	assert.Equal(t, "ClassID", res.Reason)
}

func TestValidateRejectsNonZeroReserved(t *testing.T) {
	data := buildHeaderBytes(0, 0)
	data[66] = 0xFF // Reserved1, right after HotKey
	res := Validate(data)
	assert.False(t, res.Valid)
	assert.Equal(t, "Reserved1", res.Reason)
}
