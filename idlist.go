// Copyright 2026 The lnk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lnk

import "fmt"

// ItemID is one opaque shell-namespace item payload from a
// LinkTargetIDList. Data excludes the 2-byte length prefix.
type ItemID struct {
	// Size is the item's declared length, including its own 2-byte
	// length field.
	Size uint16
	// Data is an owned copy of the item's payload bytes.
	Data []byte
}

// IDList is the decoded LinkTargetIDList region.
type IDList struct {
	// Size is the declared total byte size of the list, excluding its
	// own 2-byte length field.
	Size  uint16
	Items []ItemID
}

// decodeIDList parses the optional LinkTargetIDList region starting at
// r's current position. It returns the number of bytes the region
// occupies in the stream (2 + Size), which the caller uses to advance
// past the region regardless of how much of it the item loop itself
// consumed.
func decodeIDList(r *reader) (IDList, int, error) {
	start := r.Pos()

	size, err := r.ReadUint16()
	if err != nil {
		return IDList{}, 0, err
	}

	regionEnd := start + 2 + int(size)
	if regionEnd > r.Len() {
		return IDList{}, 0, fmt.Errorf("%w: LinkTargetIDList declares %d bytes past end of file", ErrTruncatedRegion, size)
	}

	var items []ItemID
	for r.Pos() < regionEnd {
		itemStart := r.Pos()
		itemSize, err := r.ReadUint16()
		if err != nil {
			return IDList{}, 0, err
		}
		if itemSize == 0 {
			break
		}
		if itemStart+int(itemSize) > regionEnd {
			return IDList{}, 0, fmt.Errorf("%w: ItemID at %d overruns LinkTargetIDList", ErrTruncatedRegion, itemStart)
		}
		payload, err := r.ReadBytes(int(itemSize) - 2)
		if err != nil {
			return IDList{}, 0, err
		}
		items = append(items, ItemID{Size: itemSize, Data: payload})
	}

	if err := r.Seek(regionEnd); err != nil {
		return IDList{}, 0, err
	}

	return IDList{Size: size, Items: items}, regionEnd - start, nil
}
