// Copyright 2026 The lnk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lnk

import "errors"

// Sentinel errors returned by the decoder. They are always wrapped
// with offset/kind context via fmt.Errorf("%w: ...", ...), so callers
// should match them with errors.Is rather than direct comparison.
var (
	// ErrNotAShortcut is returned when the input fails the header
	// validation checks that identify it as a MS-SHLLINK shortcut.
	ErrNotAShortcut = errors.New("not a shortcut file")

	// ErrTruncatedRegion is returned when a bounded read runs past the
	// end of its region or the end of the file.
	ErrTruncatedRegion = errors.New("truncated region")

	// ErrInvalidOffset is returned when a declared offset points
	// outside its enclosing region.
	ErrInvalidOffset = errors.New("invalid offset")

	// ErrInvalidPropertyStore is returned when a serialized property
	// store's version signature does not match MS-PROPSTORE's 1SPS.
	ErrInvalidPropertyStore = errors.New("invalid property store")

	// ErrOversizedBlock is returned when an ExtraData block declares a
	// size larger than MaxExtraDataBlockSize.
	ErrOversizedBlock = errors.New("oversized extra data block")
)
