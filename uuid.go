// Copyright 2026 The lnk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lnk

import (
	"encoding/binary"
	"fmt"
	"time"
)

// uuidEpoch is 1582-10-15 00:00:00 UTC, the start of the Gregorian
// calendar and the epoch UUID v1 timestamps are counted from.
var uuidEpoch = time.Date(1582, time.October, 15, 0, 0, 0, 0, time.UTC)

// fileTimeEpoch is 1601-01-01 00:00:00 UTC, the FILETIME epoch.
var fileTimeEpoch = time.Date(1601, time.January, 1, 0, 0, 0, 0, time.UTC)

// uuidToFileTimeOffsetTicks is the number of 100-ns ticks between the
// UUID epoch and the FILETIME epoch, used to re-anchor a UUID v1
// timestamp onto the FILETIME epoch before formatting it.
var uuidToFileTimeOffsetTicks = fileTimeEpoch.Sub(uuidEpoch).Nanoseconds() / 100

// UUIDVariant classifies the top bits of a UUID's clock-seq-and-reserved
// byte per RFC 4122 / MS-DTYP.
type UUIDVariant int

const (
	VariantNCS UUIDVariant = iota
	VariantRFC4122
	VariantMicrosoft
	VariantReserved
)

func (v UUIDVariant) String() string {
	switch v {
	case VariantNCS:
		return "NCS"
	case VariantRFC4122:
		return "ITU/RFC4122"
	case VariantMicrosoft:
		return "Microsoft"
	default:
		return "reserved"
	}
}

// UUID is a 16-byte MS-DTYP GUID: the first three fields are
// little-endian, the final 8 bytes are big-endian.
type UUID [16]byte

// String renders the standard "{XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX}"
// mixed-endian GUID representation.
func (u UUID) String() string {
	return fmt.Sprintf("{%08X-%04X-%04X-%02X%02X-%02X%02X%02X%02X%02X%02X}",
		binary.LittleEndian.Uint32(u[0:4]),
		binary.LittleEndian.Uint16(u[4:6]),
		binary.LittleEndian.Uint16(u[6:8]),
		u[8], u[9], u[10], u[11], u[12], u[13], u[14], u[15])
}

// IsZero reports whether every byte of the UUID is zero.
func (u UUID) IsZero() bool {
	for _, b := range u {
		if b != 0 {
			return false
		}
	}
	return true
}

// Version returns the UUID version, the high nibble of the third
// field. Only 1..5 are recognized by RFC 4122; anything else is
// reported verbatim via VersionName.
func (u UUID) Version() int {
	return int(u[7] >> 4)
}

// VersionName renders the version as "v1".."v5", or "unknown N".
func (u UUID) VersionName() string {
	v := u.Version()
	if v >= 1 && v <= 5 {
		return fmt.Sprintf("v%d", v)
	}
	return fmt.Sprintf("unknown %d", v)
}

// Variant classifies the top bits of byte 8.
func (u UUID) Variant() UUIDVariant {
	b := u[8]
	switch {
	case b&0x80 == 0x00:
		return VariantNCS
	case b&0xC0 == 0x80:
		return VariantRFC4122
	case b&0xE0 == 0xC0:
		return VariantMicrosoft
	default:
		return VariantReserved
	}
}

// ClockSequence returns the 14-bit clock sequence. Only meaningful for
// version-1 UUIDs; ok is false otherwise.
func (u UUID) ClockSequence() (value uint16, ok bool) {
	if u.Version() != 1 {
		return 0, false
	}
	return (uint16(u[8]&0x3F) << 8) | uint16(u[9]), true
}

// Time returns the derived timestamp for a version-1 UUID, re-anchored
// from the UUID epoch (1582-10-15) onto the FILETIME epoch
// (1601-01-01) and decoded through DecodeFileTime. Only meaningful for
// version-1 UUIDs; ok is false otherwise.
func (u UUID) Time() (value FileTime, ok bool) {
	if u.Version() != 1 {
		return FileTime{}, false
	}
	timeLow := uint64(binary.LittleEndian.Uint32(u[0:4]))
	timeMid := uint64(binary.LittleEndian.Uint16(u[4:6]))
	timeHiAndVersion := binary.LittleEndian.Uint16(u[6:8])
	timeHi := uint64(timeHiAndVersion & 0x0FFF)
	ticks := int64(timeHi<<48 | timeMid<<32 | timeLow)
	return DecodeFileTime(ticks - uuidToFileTimeOffsetTicks), true
}

// Node returns the final 6 bytes as a colon-separated hex MAC address.
// Only meaningful for version-1 UUIDs; ok is false otherwise.
func (u UUID) Node() (value string, ok bool) {
	if u.Version() != 1 {
		return "", false
	}
	n := u[10:16]
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", n[0], n[1], n[2], n[3], n[4], n[5]), true
}

// decodeUUID reads a 16-byte mixed-endian GUID from the reader.
func decodeUUID(r *reader) (UUID, error) {
	b, err := r.ReadBytes(16)
	if err != nil {
		return UUID{}, err
	}
	var u UUID
	copy(u[:], b)
	return u, nil
}
