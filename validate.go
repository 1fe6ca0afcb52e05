// Copyright 2026 The lnk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lnk

import "fmt"

// ValidationResult is the discriminated result of Validate.
type ValidationResult struct {
	Valid bool
	// Reason names the first failing check when Valid is false: one of
	// "TooShort", "HeaderSize", "ClassID", "Reserved1",
	// "Reserved2", or "Reserved3".
	Reason string
	// Err carries the same failure as a wrapped ErrNotAShortcut, for
	// callers that want a Go error.
	Err error
}

// Validate applies the magic-number, CLSID, and reserved-field checks
// from MS-SHLLINK's ShellLinkHeader to decide whether data is a
// shortcut, without decoding the rest of the file.
func Validate(data []byte) ValidationResult {
	if len(data) < HeaderSize {
		err := fmt.Errorf("%w: stream is %d bytes, shorter than the %d-byte header", ErrNotAShortcut, len(data), HeaderSize)
		return ValidationResult{Valid: false, Reason: "TooShort", Err: err}
	}

	r := newReader(data[:HeaderSize])

	size, _ := r.ReadUint32()
	if size != HeaderSize {
		err := fmt.Errorf("%w: HeaderSize field is 0x%X, want 0x%X", ErrNotAShortcut, size, HeaderSize)
		return ValidationResult{Valid: false, Reason: "HeaderSize", Err: err}
	}

	classID, _ := decodeUUID(r)
	if classID != shortcutCLSID {
		err := fmt.Errorf("%w: ClassID %s does not match the shortcut CLSID", ErrNotAShortcut, classID)
		return ValidationResult{Valid: false, Reason: "ClassID", Err: err}
	}

	// Skip LinkFlags, FileAttributes, and the three FILETIME fields:
	// none of them participate in the shortcut-ness decision.
	_ = mustSeekForward(r, 4+4+8+8+8)

	_, _ = r.ReadUint32() // TargetSize
	_, _ = r.ReadInt32()  // IconIndex
	_, _ = r.ReadUint32() // ShowCommand
	_, _ = r.ReadUint16() // HotKey

	reserved1, _ := r.ReadUint16()
	if reserved1 != 0 {
		err := fmt.Errorf("%w: Reserved1 is 0x%X, want 0", ErrNotAShortcut, reserved1)
		return ValidationResult{Valid: false, Reason: "Reserved1", Err: err}
	}
	reserved2, _ := r.ReadUint32()
	if reserved2 != 0 {
		err := fmt.Errorf("%w: Reserved2 is 0x%X, want 0", ErrNotAShortcut, reserved2)
		return ValidationResult{Valid: false, Reason: "Reserved2", Err: err}
	}
	reserved3, _ := r.ReadUint32()
	if reserved3 != 0 {
		err := fmt.Errorf("%w: Reserved3 is 0x%X, want 0", ErrNotAShortcut, reserved3)
		return ValidationResult{Valid: false, Reason: "Reserved3", Err: err}
	}

	return ValidationResult{Valid: true}
}

func mustSeekForward(r *reader, n int) error {
	return r.Seek(r.Pos() + n)
}
