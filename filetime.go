// Copyright 2026 The lnk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lnk

import (
	"fmt"
	"time"
)

// unixEpochOffsetSeconds is the number of seconds between the FILETIME
// epoch (1601-01-01 UTC) and the Unix epoch (1970-01-01 UTC).
const unixEpochOffsetSeconds = 11644473600

// maxFileTimeTicks is the largest 100-ns tick count decoded as a valid
// FILETIME, corresponding to 9999-12-31 23:59:59.9999999 UTC; larger
// counts are reported as unrepresentable.
const maxFileTimeTicks = 2650467743999999999

// FileTimeKind discriminates the three outcomes of decoding a FILETIME
// value per MS-SHLLINK/MS-DTYP.
type FileTimeKind int

const (
	// FileTimeUnset marks a FILETIME of 0.
	FileTimeUnset FileTimeKind = iota
	// FileTimeUnrepresentable marks a tick count outside the
	// documented valid FILETIME range (including negative values).
	FileTimeUnrepresentable
	// FileTimeValid marks a tick count that converted cleanly.
	FileTimeValid
)

// FileTime is a decoded 64-bit 100-ns-since-1601 timestamp.
type FileTime struct {
	Kind FileTimeKind
	// Ticks is the raw 100-ns tick count as read from the stream.
	Ticks int64
	// Time is populated only when Kind == FileTimeValid.
	Time time.Time
	// SubSecondTicks is the 100-ns remainder within the final second,
	// populated only when Kind == FileTimeValid.
	SubSecondTicks int64
}

// DecodeFileTime converts a raw 64-bit 100-ns tick count into a FileTime.
func DecodeFileTime(ticks int64) FileTime {
	if ticks == 0 {
		return FileTime{Kind: FileTimeUnset}
	}
	if ticks < 0 || ticks > maxFileTimeTicks {
		return FileTime{Kind: FileTimeUnrepresentable, Ticks: ticks}
	}
	seconds := ticks / 10_000_000
	remainder := ticks % 10_000_000
	unixSeconds := seconds - unixEpochOffsetSeconds
	t := time.Unix(unixSeconds, remainder*100).UTC()
	return FileTime{
		Kind:           FileTimeValid,
		Ticks:          ticks,
		Time:           t,
		SubSecondTicks: remainder,
	}
}

// String renders the short form: "YYYY-MM-DD HH:MM:SS (UTC)", or the
// sentinel text for the unset/unrepresentable outcomes.
func (f FileTime) String() string {
	switch f.Kind {
	case FileTimeUnset:
		return "unset"
	case FileTimeUnrepresentable:
		return "unrepresentable"
	default:
		return f.Time.Format("2006-01-02 15:04:05") + " (UTC)"
	}
}

// LongString renders the long form with 100-ns sub-second precision:
// "YYYY-MM-DD HH:MM:SS.fffffff (UTC)".
func (f FileTime) LongString() string {
	switch f.Kind {
	case FileTimeUnset:
		return "unset"
	case FileTimeUnrepresentable:
		return "unrepresentable"
	default:
		return fmt.Sprintf("%s.%07d (UTC)", f.Time.Format("2006-01-02 15:04:05"), f.SubSecondTicks)
	}
}
