// Copyright 2026 The lnk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lnk

import "fmt"

// HeaderSize is the fixed, mandatory size of a ShellLinkHeader.
const HeaderSize = 0x4C

// shortcutCLSID is the fixed CLSID every ShellLinkHeader must carry.
var shortcutCLSID = UUID{
	0x01, 0x14, 0x02, 0x00,
	0x00, 0x00,
	0x00, 0x00,
	0xC0, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x46,
}

// HeaderFlags is the 27-bit LinkFlags bit-set from ShellLinkHeader.
type HeaderFlags uint32

const (
	FlagHasLinkTargetIDList HeaderFlags = 1 << iota
	FlagHasLinkInfo
	FlagHasName
	FlagHasRelativePath
	FlagHasWorkingDir
	FlagHasArguments
	FlagHasIconLocation
	FlagIsUnicode
	FlagForceNoLinkInfo
	FlagHasExpString
	FlagRunInSeparateProcess
	flagUnused1
	FlagHasDarwinID
	FlagRunAsUser
	FlagHasExpIcon
	FlagNoPidlAlias
	flagUnused2
	FlagRunWithShimLayer
	FlagForceNoLinkTrack
	FlagEnableTargetMetadata
	FlagDisableLinkPathTracking
	FlagDisableKnownFolderTracking
	FlagDisableKnownFolderAlias
	FlagAllowLinkToLink
	FlagUnaliasOnSave
	FlagPreferEnvironmentPath
	FlagKeepLocalIDListForUNCTarget
)

var headerFlagNames = []struct {
	bit  HeaderFlags
	name string
}{
	{FlagHasLinkTargetIDList, "HasLinkTargetIDList"},
	{FlagHasLinkInfo, "HasLinkInfo"},
	{FlagHasName, "HasName"},
	{FlagHasRelativePath, "HasRelativePath"},
	{FlagHasWorkingDir, "HasWorkingDir"},
	{FlagHasArguments, "HasArguments"},
	{FlagHasIconLocation, "HasIconLocation"},
	{FlagIsUnicode, "IsUnicode"},
	{FlagForceNoLinkInfo, "ForceNoLinkInfo"},
	{FlagHasExpString, "HasExpString"},
	{FlagRunInSeparateProcess, "RunInSeparateProcess"},
	{FlagHasDarwinID, "HasDarwinID"},
	{FlagRunAsUser, "RunAsUser"},
	{FlagHasExpIcon, "HasExpIcon"},
	{FlagNoPidlAlias, "NoPidlAlias"},
	{FlagRunWithShimLayer, "RunWithShimLayer"},
	{FlagForceNoLinkTrack, "ForceNoLinkTrack"},
	{FlagEnableTargetMetadata, "EnableTargetMetadata"},
	{FlagDisableLinkPathTracking, "DisableLinkPathTracking"},
	{FlagDisableKnownFolderTracking, "DisableKnownFolderTracking"},
	{FlagDisableKnownFolderAlias, "DisableKnownFolderAlias"},
	{FlagAllowLinkToLink, "AllowLinkToLink"},
	{FlagUnaliasOnSave, "UnaliasOnSave"},
	{FlagPreferEnvironmentPath, "PreferEnvironmentPath"},
	{FlagKeepLocalIDListForUNCTarget, "KeepLocalIDListForUNCTarget"},
}

// Has reports whether every bit in mask is set.
func (f HeaderFlags) Has(mask HeaderFlags) bool { return f&mask == mask }

// Names returns the set flag names in bit order, for rendering.
func (f HeaderFlags) Names() []string {
	var names []string
	for _, e := range headerFlagNames {
		if f.Has(e.bit) {
			names = append(names, e.name)
		}
	}
	return names
}

func (f HeaderFlags) String() string {
	return fmt.Sprintf("0x%08X %v", uint32(f), f.Names())
}

// stringDataFlag returns the HasXxx flag bit for StringData entry i,
// where i is 0 (Name) through 4 (IconLocation), per spec.md's "bit
// (2+i)" rule.
func stringDataFlag(i int) HeaderFlags {
	return 1 << uint(2+i)
}

// FileAttributes is the 15-bit (two reserved) FileAttributesFlags
// bit-set from ShellLinkHeader.
type FileAttributes uint32

const (
	AttrReadonly FileAttributes = 1 << iota
	AttrHidden
	AttrSystem
	attrReserved1
	AttrDirectory
	AttrArchive
	attrReserved2
	AttrNormal
	AttrTemporary
	AttrSparseFile
	AttrReparsePoint
	AttrCompressed
	AttrOffline
	AttrNotContentIndexed
	AttrEncrypted
)

var attributeNames = []struct {
	bit  FileAttributes
	name string
}{
	{AttrReadonly, "READONLY"},
	{AttrHidden, "HIDDEN"},
	{AttrSystem, "SYSTEM"},
	{AttrDirectory, "DIRECTORY"},
	{AttrArchive, "ARCHIVE"},
	{AttrNormal, "NORMAL"},
	{AttrTemporary, "TEMPORARY"},
	{AttrSparseFile, "SPARSE_FILE"},
	{AttrReparsePoint, "REPARSE_POINT"},
	{AttrCompressed, "COMPRESSED"},
	{AttrOffline, "OFFLINE"},
	{AttrNotContentIndexed, "NOT_CONTENT_INDEXED"},
	{AttrEncrypted, "ENCRYPTED"},
}

func (a FileAttributes) Has(mask FileAttributes) bool { return a&mask == mask }

func (a FileAttributes) Names() []string {
	var names []string
	for _, e := range attributeNames {
		if a.Has(e.bit) {
			names = append(names, e.name)
		}
	}
	return names
}

func (a FileAttributes) String() string {
	return fmt.Sprintf("0x%08X %v", uint32(a), a.Names())
}

// ShowState enumerates the ShowCommand field's defined values.
type ShowState uint32

const (
	ShowNormal      ShowState = 1
	ShowMaximized   ShowState = 3
	ShowMinNoActive ShowState = 7
)

func (s ShowState) String() string {
	switch s {
	case ShowNormal:
		return "Normal"
	case ShowMaximized:
		return "Maximized"
	case ShowMinNoActive:
		return "MinNoActive"
	default:
		return fmt.Sprintf("unknown 0x%X", uint32(s))
	}
}

// HotKeyModifiers is the high byte of the HotKey field.
type HotKeyModifiers uint8

const (
	HotKeyShift HotKeyModifiers = 1 << iota
	HotKeyCtrl
	HotKeyAlt
)

func (m HotKeyModifiers) String() string {
	var names []string
	if m&HotKeyShift != 0 {
		names = append(names, "Shift")
	}
	if m&HotKeyCtrl != 0 {
		names = append(names, "Ctrl")
	}
	if m&HotKeyAlt != 0 {
		names = append(names, "Alt")
	}
	return fmt.Sprintf("%v", names)
}

// HotKey is the decoded low-key/high-modifier pair from the header.
type HotKey struct {
	Raw       uint16
	Key       string
	Modifiers HotKeyModifiers
}

func decodeHotKeyLow(b byte) string {
	switch {
	case b >= 0x30 && b <= 0x39:
		return string(rune('0' + (b - 0x30)))
	case b >= 0x41 && b <= 0x5A:
		return string(rune('A' + (b - 0x41)))
	case b >= 0x70 && b <= 0x87:
		return fmt.Sprintf("F%d", int(b-0x70)+1)
	case b == 0x90:
		return "NumLock"
	case b == 0x91:
		return "ScrollLock"
	default:
		return fmt.Sprintf("unknown 0x%02X", b)
	}
}

func decodeHotKey(raw uint16) HotKey {
	return HotKey{
		Raw:       raw,
		Key:       decodeHotKeyLow(byte(raw & 0xFF)),
		Modifiers: HotKeyModifiers(raw >> 8),
	}
}

// Header is the decoded, validated 76-byte ShellLinkHeader.
type Header struct {
	Size         uint32
	ClassID      UUID
	Flags        HeaderFlags
	Attributes   FileAttributes
	CreationTime FileTime
	AccessTime   FileTime
	WriteTime    FileTime
	TargetSize   uint32
	IconIndex    int32
	ShowCommand  ShowState
	HotKey       HotKey
	Reserved1    uint16
	Reserved2    uint32
	Reserved3    uint32
}

// decodeHeader parses and validates the fixed 76-byte ShellLinkHeader
// at the start of r. It performs the same checks as Validate, so a
// successful decode implies the stream identified itself as a
// shortcut.
func decodeHeader(r *reader) (Header, error) {
	if r.Pos() != 0 {
		return Header{}, fmt.Errorf("decodeHeader: must run at offset 0, at %d", r.Pos())
	}

	size, err := r.ReadUint32()
	if err != nil {
		return Header{}, err
	}
	if size != HeaderSize {
		return Header{}, fmt.Errorf("%w: HeaderSize field is 0x%X, want 0x%X", ErrNotAShortcut, size, HeaderSize)
	}

	classID, err := decodeUUID(r)
	if err != nil {
		return Header{}, err
	}
	if classID != shortcutCLSID {
		return Header{}, fmt.Errorf("%w: ClassID %s does not match the shortcut CLSID", ErrNotAShortcut, classID)
	}

	flags, err := r.ReadUint32()
	if err != nil {
		return Header{}, err
	}
	attrs, err := r.ReadUint32()
	if err != nil {
		return Header{}, err
	}
	creation, err := r.ReadInt64()
	if err != nil {
		return Header{}, err
	}
	access, err := r.ReadInt64()
	if err != nil {
		return Header{}, err
	}
	write, err := r.ReadInt64()
	if err != nil {
		return Header{}, err
	}
	targetSize, err := r.ReadUint32()
	if err != nil {
		return Header{}, err
	}
	iconIndex, err := r.ReadInt32()
	if err != nil {
		return Header{}, err
	}
	showCommand, err := r.ReadUint32()
	if err != nil {
		return Header{}, err
	}
	hotKey, err := r.ReadUint16()
	if err != nil {
		return Header{}, err
	}
	reserved1, err := r.ReadUint16()
	if err != nil {
		return Header{}, err
	}
	reserved2, err := r.ReadUint32()
	if err != nil {
		return Header{}, err
	}
	reserved3, err := r.ReadUint32()
	if err != nil {
		return Header{}, err
	}
	if reserved1 != 0 || reserved2 != 0 || reserved3 != 0 {
		return Header{}, fmt.Errorf("%w: a reserved header field is non-zero", ErrNotAShortcut)
	}

	return Header{
		Size:         size,
		ClassID:      classID,
		Flags:        HeaderFlags(flags),
		Attributes:   FileAttributes(attrs),
		CreationTime: DecodeFileTime(creation),
		AccessTime:   DecodeFileTime(access),
		WriteTime:    DecodeFileTime(write),
		TargetSize:   targetSize,
		IconIndex:    iconIndex,
		ShowCommand:  ShowState(showCommand),
		HotKey:       decodeHotKey(hotKey),
		Reserved1:    reserved1,
		Reserved2:    reserved2,
		Reserved3:    reserved3,
	}, nil
}
