// Copyright 2026 The lnk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lnk

import "fmt"

// ExtraDataSignature identifies an ExtraData block's payload shape.
type ExtraDataSignature uint32

const (
	SigEnvironmentVariable  ExtraDataSignature = 0xA0000001
	SigConsole              ExtraDataSignature = 0xA0000002
	SigTracker              ExtraDataSignature = 0xA0000003
	SigConsoleFE            ExtraDataSignature = 0xA0000004
	SigSpecialFolder        ExtraDataSignature = 0xA0000005
	SigDarwin               ExtraDataSignature = 0xA0000006
	SigIconEnvironment      ExtraDataSignature = 0xA0000007
	SigShim                 ExtraDataSignature = 0xA0000008
	SigPropertyStore        ExtraDataSignature = 0xA0000009
	SigVistaAndAboveIDList  ExtraDataSignature = 0xA000000A
	SigKnownFolder          ExtraDataSignature = 0xA000000B
)

var extraDataSignatureNames = map[ExtraDataSignature]string{
	SigEnvironmentVariable: "EnvironmentVariableDataBlock",
	SigConsole:             "ConsoleDataBlock",
	SigTracker:             "TrackerDataBlock",
	SigConsoleFE:           "ConsoleFEDataBlock",
	SigSpecialFolder:       "SpecialFolderDataBlock",
	SigDarwin:              "DarwinDataBlock",
	SigIconEnvironment:     "IconEnvironmentDataBlock",
	SigShim:                "ShimDataBlock",
	SigPropertyStore:       "PropertyStoreDataBlock",
	SigVistaAndAboveIDList: "VistaAndAboveIDListDataBlock",
	SigKnownFolder:         "KnownFolderDataBlock",
}

func (s ExtraDataSignature) String() string {
	if name, ok := extraDataSignatureNames[s]; ok {
		return name
	}
	return fmt.Sprintf("unknown signature 0x%08X", uint32(s))
}

// StringPairBlock is the shared 260-byte-code-page + 520-byte-UTF16LE
// shape of the EnvironmentVariable, Darwin, and IconEnvironment blocks.
type StringPairBlock struct {
	Ansi    string
	Unicode string
}

func decodeStringPairBlock(r *reader) (StringPairBlock, error) {
	ansi, err := r.ReadFixedCodePage(260)
	if err != nil {
		return StringPairBlock{}, err
	}
	unicode, err := r.ReadFixedUTF16LE(260)
	if err != nil {
		return StringPairBlock{}, err
	}
	return StringPairBlock{Ansi: ansi, Unicode: unicode}, nil
}

// ConsoleDataBlock carries console window properties (0xA0000002).
type ConsoleDataBlock struct {
	FillAttributes         uint16
	PopupFillAttributes    uint16
	ScreenBufferSizeX      int16
	ScreenBufferSizeY      int16
	WindowSizeX            int16
	WindowSizeY            int16
	WindowOriginX          int16
	WindowOriginY          int16
	FontSize               uint32
	FontFamily             uint32
	FontWeight             uint32
	FaceName               string
	CursorSize             uint32
	FullScreen             bool
	QuickEdit              bool
	InsertMode             bool
	AutoPosition           bool
	HistoryBufferSize      uint32
	NumberOfHistoryBuffers uint32
	HistoryNoDup           bool
	ColorTable             [16]uint32
}

func decodeConsoleDataBlock(r *reader) (ConsoleDataBlock, error) {
	var c ConsoleDataBlock
	var err error
	read16 := func(dst *int16) {
		if err != nil {
			return
		}
		*dst, err = r.ReadInt16()
	}
	readU16 := func(dst *uint16) {
		if err != nil {
			return
		}
		*dst, err = r.ReadUint16()
	}
	readU32 := func(dst *uint32) {
		if err != nil {
			return
		}
		*dst, err = r.ReadUint32()
	}
	readBool32 := func(dst *bool) {
		if err != nil {
			return
		}
		var v uint32
		v, err = r.ReadUint32()
		*dst = v != 0
	}

	readU16(&c.FillAttributes)
	readU16(&c.PopupFillAttributes)
	read16(&c.ScreenBufferSizeX)
	read16(&c.ScreenBufferSizeY)
	read16(&c.WindowSizeX)
	read16(&c.WindowSizeY)
	read16(&c.WindowOriginX)
	read16(&c.WindowOriginY)
	if err != nil {
		return c, err
	}
	if _, err = r.ReadUint32(); err != nil { // Unused1
		return c, err
	}
	if _, err = r.ReadUint32(); err != nil { // Unused2
		return c, err
	}
	readU32(&c.FontSize)
	readU32(&c.FontFamily)
	readU32(&c.FontWeight)
	if err != nil {
		return c, err
	}
	c.FaceName, err = r.ReadFixedUTF16LE(32)
	if err != nil {
		return c, err
	}
	readU32(&c.CursorSize)
	readBool32(&c.FullScreen)
	readBool32(&c.QuickEdit)
	readBool32(&c.InsertMode)
	readBool32(&c.AutoPosition)
	readU32(&c.HistoryBufferSize)
	readU32(&c.NumberOfHistoryBuffers)
	readBool32(&c.HistoryNoDup)
	if err != nil {
		return c, err
	}
	for i := range c.ColorTable {
		c.ColorTable[i], err = r.ReadUint32()
		if err != nil {
			return c, err
		}
	}
	return c, nil
}

// TrackerDataBlock carries Distributed Link Tracking identifiers
// (0xA0000003).
type TrackerDataBlock struct {
	Version     uint32
	MachineID   string
	Droid1      UUID
	Droid2      UUID
	DroidBirth1 UUID
	DroidBirth2 UUID
}

func decodeTrackerDataBlock(r *reader) (TrackerDataBlock, error) {
	var t TrackerDataBlock
	if _, err := r.ReadUint32(); err != nil { // inner Length
		return t, err
	}
	version, err := r.ReadUint32()
	if err != nil {
		return t, err
	}
	t.Version = version
	machineID, err := r.ReadFixedCodePage(16)
	if err != nil {
		return t, err
	}
	t.MachineID = machineID
	if t.Droid1, err = decodeUUID(r); err != nil {
		return t, err
	}
	if t.Droid2, err = decodeUUID(r); err != nil {
		return t, err
	}
	if t.DroidBirth1, err = decodeUUID(r); err != nil {
		return t, err
	}
	if t.DroidBirth2, err = decodeUUID(r); err != nil {
		return t, err
	}
	return t, nil
}

// SpecialFolderDataBlock identifies a special folder target (0xA0000005).
type SpecialFolderDataBlock struct {
	SpecialFolderID uint32
	Offset          uint32
}

func decodeSpecialFolderDataBlock(r *reader) (SpecialFolderDataBlock, error) {
	id, err := r.ReadUint32()
	if err != nil {
		return SpecialFolderDataBlock{}, err
	}
	offset, err := r.ReadUint32()
	if err != nil {
		return SpecialFolderDataBlock{}, err
	}
	return SpecialFolderDataBlock{SpecialFolderID: id, Offset: offset}, nil
}

// ShimDataBlock names a compatibility shim layer applied to the target
// (0xA0000008).
type ShimDataBlock struct {
	LayerName string
}

func decodeShimDataBlock(r *reader) (ShimDataBlock, error) {
	name, _, err := r.ReadNulTerminatedUTF16LE(r.Remaining() / 2)
	if err != nil {
		return ShimDataBlock{}, err
	}
	return ShimDataBlock{LayerName: name}, nil
}

// PropertyStoreDataBlock wraps an embedded MS-PROPSTORE sequence
// (0xA0000009).
type PropertyStoreDataBlock struct {
	Stores []SerializedPropertyStore
}

func decodePropertyStoreDataBlock(r *reader, blockEnd int) (PropertyStoreDataBlock, error) {
	stores, err := decodePropertyStores(r, blockEnd)
	if err != nil {
		return PropertyStoreDataBlock{}, err
	}
	return PropertyStoreDataBlock{Stores: stores}, nil
}

// VistaAndAboveIDListDataBlock is an alternative IDList representation
// used from Windows Vista onward (0xA000000A).
type VistaAndAboveIDListDataBlock struct {
	Items []ItemID
}

func decodeVistaAndAboveIDListDataBlock(r *reader) (VistaAndAboveIDListDataBlock, error) {
	var items []ItemID
	for r.Remaining() >= 2 {
		itemStart := r.Pos()
		size, err := r.ReadUint16()
		if err != nil {
			return VistaAndAboveIDListDataBlock{}, err
		}
		if size == 0 {
			break
		}
		if itemStart+int(size) > r.Len() {
			return VistaAndAboveIDListDataBlock{}, fmt.Errorf("%w: Vista IDList item at %d overruns block", ErrTruncatedRegion, itemStart)
		}
		payload, err := r.ReadBytes(int(size) - 2)
		if err != nil {
			return VistaAndAboveIDListDataBlock{}, err
		}
		items = append(items, ItemID{Size: size, Data: payload})
	}
	return VistaAndAboveIDListDataBlock{Items: items}, nil
}

// KnownFolderDataBlock identifies a known-folder target by CLSID
// (0xA000000B).
type KnownFolderDataBlock struct {
	KnownFolderID UUID
	Offset        uint32
}

func decodeKnownFolderDataBlock(r *reader) (KnownFolderDataBlock, error) {
	id, err := decodeUUID(r)
	if err != nil {
		return KnownFolderDataBlock{}, err
	}
	offset, err := r.ReadUint32()
	if err != nil {
		return KnownFolderDataBlock{}, err
	}
	return KnownFolderDataBlock{KnownFolderID: id, Offset: offset}, nil
}
