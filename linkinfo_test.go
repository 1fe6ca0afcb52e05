// Copyright 2026 The lnk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lnk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// codePageZ returns a NUL-terminated ASCII encoding of s.
func codePageZ(s string) []byte { return append([]byte(s), 0x00) }

// utf16Z returns a NUL-code-unit-terminated UTF-16LE encoding of s.
func utf16Z(s string) []byte {
	b := make([]byte, 0, len(s)*2+2)
	for _, r := range s {
		b = append(b, byte(r), 0)
	}
	return append(b, 0, 0)
}

// buildCNRRegion builds a CommonNetworkRelativeLink region whose two
// optional Unicode-name offsets are anchored to the CNR region's own
// start, exercising the REDESIGN FLAG fix directly: a naive
// implementation anchoring them to the outer LinkInfo's offsets would
// read garbage from this layout.
func buildCNRRegion(netName, deviceName string) []byte {
	const headerLen = 28 // 5 uint32 + 2 optional unicode-offset uint32
	netNameOffset := uint32(headerLen)
	netNameBytes := codePageZ(netName)
	deviceNameOffset := netNameOffset + uint32(len(netNameBytes))
	deviceNameBytes := codePageZ(deviceName)
	netNameUOffset := deviceNameOffset + uint32(len(deviceNameBytes))
	netNameUBytes := utf16Z(netName)
	deviceNameUOffset := netNameUOffset + uint32(len(netNameUBytes))
	deviceNameUBytes := utf16Z(deviceName)

	total := int(deviceNameUOffset) + len(deviceNameUBytes)
	region := make([]byte, total)
	putLE32(region, 4, uint32(CNRValidDevice|CNRValidNetType))
	putLE32(region, 8, netNameOffset)
	putLE32(region, 12, deviceNameOffset)
	putLE32(region, 16, uint32(WNNCNetLanMan))
	putLE32(region, 20, netNameUOffset)
	putLE32(region, 24, deviceNameUOffset)
	copy(region[netNameOffset:], netNameBytes)
	copy(region[deviceNameOffset:], deviceNameBytes)
	copy(region[netNameUOffset:], netNameUBytes)
	copy(region[deviceNameUOffset:], deviceNameUBytes)
	putLE32(region, 0, uint32(total))
	return region
}

func TestDecodeCommonNetworkRelativeLinkAnchorsUnicodeToCNRStart(t *testing.T) {
	cnrRegion := buildCNRRegion("server", "Z:")

	// Embed the CNR region inside an outer LinkInfo-shaped buffer whose
	// own offsets, if mistakenly reused to anchor the CNR's Unicode
	// strings, point at unrelated bytes.
	const cnrOffsetInLinkInfo = 100
	region := make([]byte, cnrOffsetInLinkInfo)
	region = append(region, cnrRegion...)

	cnr, err := decodeCommonNetworkRelativeLink(region, cnrOffsetInLinkInfo)
	require.NoError(t, err)

	assert.Equal(t, "server", cnr.NetName)
	assert.Equal(t, "Z:", cnr.DeviceName)
	assert.True(t, cnr.HasUnicodeNames)
	assert.Equal(t, "server", cnr.NetNameUnicode)
	assert.Equal(t, "Z:", cnr.DeviceNameUnicode)
	assert.Equal(t, WNNCNetLanMan, cnr.NetworkProviderType)
}

func TestDecodeLinkInfoVolumeAndCNR(t *testing.T) {
	cnrRegion := buildCNRRegion("fileserver", "")

	const headerSize = 0x1C // Size + HeaderSize + Flags + 4 offsets, no Unicode offsets
	volumeIDOffset := uint32(headerSize)
	volumeRegion := make([]byte, 16)
	putLE32(volumeRegion, 0, 16)
	putLE32(volumeRegion, 4, uint32(DriveFixed))
	putLE32(volumeRegion, 8, 0xAABBCCDD)
	putLE32(volumeRegion, 12, 16) // label offset within VolumeID
	volumeRegion = append(volumeRegion, codePageZ("SYSTEM")...)

	localBasePathOffset := volumeIDOffset + uint32(len(volumeRegion))
	localBasePathBytes := codePageZ(`C:\tools\app.exe`)

	cnrOffset := localBasePathOffset + uint32(len(localBasePathBytes))
	commonPathSuffixOffset := cnrOffset + uint32(len(cnrRegion))
	commonPathSuffixBytes := codePageZ("")

	total := int(commonPathSuffixOffset) + len(commonPathSuffixBytes)
	region := make([]byte, total)
	putLE32(region, 4, headerSize)
	putLE32(region, 8, uint32(LinkInfoVolumeIDAndLocalBasePath|LinkInfoCommonNetworkRelativeLinkAndPathSuffix))
	putLE32(region, 12, volumeIDOffset)
	putLE32(region, 16, localBasePathOffset)
	putLE32(region, 20, cnrOffset)
	putLE32(region, 24, commonPathSuffixOffset)
	copy(region[volumeIDOffset:], volumeRegion)
	copy(region[localBasePathOffset:], localBasePathBytes)
	copy(region[cnrOffset:], cnrRegion)
	copy(region[commonPathSuffixOffset:], commonPathSuffixBytes)
	putLE32(region, 0, uint32(total))

	r := newReader(region)

	info, n, err := decodeLinkInfo(r)
	require.NoError(t, err)
	assert.Equal(t, len(region), n)
	require.NotNil(t, info.VolumeID)
	assert.Equal(t, DriveFixed, info.VolumeID.DriveType)
	assert.Equal(t, "SYSTEM", info.VolumeID.Label)
	assert.Equal(t, `C:\tools\app.exe`, info.LocalBasePath)
	require.NotNil(t, info.CommonNetworkRelativeLink)
	assert.Equal(t, "fileserver", info.CommonNetworkRelativeLink.NetName)
}

// TestDecodeLinkInfoResyncsCursorOnInvalidInnerOffset builds a LinkInfo
// region whose own declared Size is trustworthy but whose VolumeIDOffset
// points outside the region. decodeLinkInfo must still leave the shared
// reader positioned at the end of the declared region, so a caller that
// treats the error as a non-fatal anomaly doesn't go on to misparse the
// bytes that follow as something else.
func TestDecodeLinkInfoResyncsCursorOnInvalidInnerOffset(t *testing.T) {
	const headerSize = 0x1C
	const total = 40

	region := make([]byte, total)
	putLE32(region, 4, headerSize)
	putLE32(region, 8, uint32(LinkInfoVolumeIDAndLocalBasePath))
	putLE32(region, 12, uint32(total+100)) // VolumeIDOffset: deliberately outside the region
	putLE32(region, 16, headerSize)
	putLE32(region, 0, uint32(total))

	trailer := []byte{0xAA, 0xBB, 0xCC, 0xDD}
	data := append(region, trailer...)

	r := newReader(data)
	_, _, err := decodeLinkInfo(r)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidOffset)
	assert.Equal(t, total, r.Pos())
}

// TestDecodeLinkInfoResyncsCursorOnOversizedDeclaration covers the
// unrecoverable case where LinkInfo's own Size overruns the file: no
// region boundary can be trusted, so the cursor is left at end-of-file
// rather than parked mid-field.
func TestDecodeLinkInfoResyncsCursorOnOversizedDeclaration(t *testing.T) {
	data := make([]byte, 8)
	putLE32(data, 0, 1000)

	r := newReader(data)
	_, _, err := decodeLinkInfo(r)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTruncatedRegion)
	assert.Equal(t, len(data), r.Pos())
}
