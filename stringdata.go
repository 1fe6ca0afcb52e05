// Copyright 2026 The lnk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lnk

import "fmt"

// maxStringDataUnits bounds how many code units of a StringData entry
// are retained in Value; Count always reflects the full declared
// length regardless of this cap.
const maxStringDataUnits = 300

// StringEntry is one of StringData's up-to-five counted strings.
type StringEntry struct {
	Present bool
	// Count is the authoritative code-unit count read from the stream.
	Count int
	// Value holds up to maxStringDataUnits code units of the decoded
	// string.
	Value string
}

// StringData is the decoded, flag-selected sequence of counted strings
// following LinkInfo (or LinkTargetIDList, if LinkInfo is absent).
type StringData struct {
	Name         StringEntry
	RelativePath StringEntry
	WorkingDir   StringEntry
	Arguments    StringEntry
	IconLocation StringEntry
}

// decodeStringData reads up to five flag-selected counted strings. It
// returns the total number of bytes consumed.
func decodeStringData(r *reader, flags HeaderFlags) (StringData, int, error) {
	start := r.Pos()
	var sd StringData

	entries := []struct {
		flagIndex int
		dest      *StringEntry
	}{
		{0, &sd.Name},
		{1, &sd.RelativePath},
		{2, &sd.WorkingDir},
		{3, &sd.Arguments},
		{4, &sd.IconLocation},
	}

	for _, e := range entries {
		if !flags.Has(stringDataFlag(e.flagIndex)) {
			continue
		}
		entry, err := decodeStringDataEntry(r, flags.Has(FlagIsUnicode))
		if err != nil {
			return StringData{}, 0, fmt.Errorf("StringData entry %d: %w", e.flagIndex, err)
		}
		*e.dest = entry
	}

	return sd, r.Pos() - start, nil
}

func decodeStringDataEntry(r *reader, isUnicode bool) (StringEntry, error) {
	count, err := r.ReadUint16()
	if err != nil {
		return StringEntry{}, err
	}

	n := int(count)
	capped := n
	if capped > maxStringDataUnits {
		capped = maxStringDataUnits
	}

	var value string
	if isUnicode {
		value, err = r.ReadCountedUTF16LE(capped)
	} else {
		value, err = r.ReadCountedCodePage(capped)
	}
	if err != nil {
		return StringEntry{}, err
	}

	// Skip whatever lies beyond the retained cap, keeping Count
	// authoritative without materializing the rest of the string.
	if n > capped {
		skipBytes := n - capped
		if isUnicode {
			skipBytes *= 2
		}
		if _, err := r.ReadBytes(skipBytes); err != nil {
			return StringEntry{}, err
		}
	}

	return StringEntry{Present: true, Count: n, Value: value}, nil
}
