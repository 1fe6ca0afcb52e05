// Copyright 2026 The lnk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lnk

import "fmt"

// linkInfoHeaderSizeUnicodeThreshold is the minimum LinkInfoHeaderSize
// at or above which the two optional Unicode offset fields are present.
const linkInfoHeaderSizeUnicodeThreshold = 0x24

// DriveType enumerates VolumeID's DriveType field.
type DriveType uint32

const (
	DriveUnknown DriveType = iota
	DriveNoRootDir
	DriveRemovable
	DriveFixed
	DriveRemote
	DriveCDRom
	DriveRAMDisk
)

func (d DriveType) String() string {
	switch d {
	case DriveUnknown:
		return "Unknown"
	case DriveNoRootDir:
		return "NoRootDir"
	case DriveRemovable:
		return "Removable"
	case DriveFixed:
		return "Fixed"
	case DriveRemote:
		return "Remote"
	case DriveCDRom:
		return "CDRom"
	case DriveRAMDisk:
		return "RAMDisk"
	default:
		return fmt.Sprintf("unknown %d", uint32(d))
	}
}

// VolumeID is LinkInfo's optional volume descriptor.
type VolumeID struct {
	Size               uint32
	DriveType          DriveType
	DriveSerialNumber  uint32
	VolumeLabelOffset  uint32
	VolumeLabelOffsetU uint32 // 0 when not present
	Label              string
	LabelIsUnicode     bool
}

// CNRLinkFlags is CommonNetworkRelativeLink's Flags field.
type CNRLinkFlags uint32

const (
	CNRValidDevice CNRLinkFlags = 1 << iota
	CNRValidNetType
)

func (f CNRLinkFlags) Has(mask CNRLinkFlags) bool { return f&mask == mask }

// NetworkProviderType is CommonNetworkRelativeLink's WNNC provider
// code, meaningful only when CNRValidNetType is set.
type NetworkProviderType uint32

const (
	WNNCNetMSNet       NetworkProviderType = 0x00010000
	WNNCNetLanMan      NetworkProviderType = 0x00020000
	WNNCNetNetware     NetworkProviderType = 0x00030000
	WNNCNetVines       NetworkProviderType = 0x00040000
	WNNCNet10Net       NetworkProviderType = 0x00050000
	WNNCNetLocus       NetworkProviderType = 0x00060000
	WNNCNetSunPCNFS    NetworkProviderType = 0x00070000
	WNNCNetLanStep     NetworkProviderType = 0x00080000
	WNNCNetNineTiles   NetworkProviderType = 0x00090000
	WNNCNetLanTastic   NetworkProviderType = 0x000A0000
	WNNCNetAS400       NetworkProviderType = 0x000B0000
	WNNCNetFTPNFS      NetworkProviderType = 0x000C0000
	WNNCNetPathWorks   NetworkProviderType = 0x000D0000
	WNNCNetLifeNet     NetworkProviderType = 0x000E0000
	WNNCNetPowerLan    NetworkProviderType = 0x000F0000
	WNNCNetBWNFS       NetworkProviderType = 0x00100000
	WNNCNetCogent      NetworkProviderType = 0x00110000
	WNNCNetFarallon    NetworkProviderType = 0x00120000
	WNNCNetAppleTalk   NetworkProviderType = 0x00130000
	WNNCNetIntergraph  NetworkProviderType = 0x00140000
	WNNCNetSymfonet    NetworkProviderType = 0x00150000
	WNNCNetClearCase   NetworkProviderType = 0x00160000
	WNNCNetFrontier    NetworkProviderType = 0x00170000
	WNNCNetBMC         NetworkProviderType = 0x00180000
	WNNCNetDCE         NetworkProviderType = 0x00190000
	WNNCNetAVID        NetworkProviderType = 0x001A0000
	WNNCNetDocuspace   NetworkProviderType = 0x001B0000
	WNNCNetMangosoft   NetworkProviderType = 0x001C0000
	WNNCNetSernet      NetworkProviderType = 0x001D0000
	WNNCNetRiverFront1 NetworkProviderType = 0x001E0000
	WNNCNetRiverFront2 NetworkProviderType = 0x001F0000
	WNNCNetDecorb      NetworkProviderType = 0x00200000
	WNNCNetProtstor    NetworkProviderType = 0x00210000
	WNNCNetFjRedir     NetworkProviderType = 0x00220000
	WNNCNetDistinct    NetworkProviderType = 0x00230000
	WNNCNetTwins       NetworkProviderType = 0x00240000
	WNNCNetRdr2Sample  NetworkProviderType = 0x00250000
	WNNCNetCSC         NetworkProviderType = 0x00260000
	WNNCNet3In1        NetworkProviderType = 0x00270000
	WNNCNetExtendNet   NetworkProviderType = 0x00290000
	WNNCNetStac        NetworkProviderType = 0x002A0000
	WNNCNetFoxBAT      NetworkProviderType = 0x002B0000
	WNNCNetYahoo       NetworkProviderType = 0x002C0000
	WNNCNetExifs       NetworkProviderType = 0x002D0000
	WNNCNetDAV         NetworkProviderType = 0x002E0000
	WNNCNetKnoware     NetworkProviderType = 0x002F0000
)

var networkProviderNames = map[NetworkProviderType]string{
	WNNCNetMSNet:       "MSNET",
	WNNCNetLanMan:      "LANMAN",
	WNNCNetNetware:     "NETWARE",
	WNNCNetVines:       "VINES",
	WNNCNet10Net:       "10NET",
	WNNCNetLocus:       "LOCUS",
	WNNCNetSunPCNFS:    "SUN_PC_NFS",
	WNNCNetLanStep:     "LANSTEP",
	WNNCNetNineTiles:   "NINE_TILES",
	WNNCNetLanTastic:   "LANTASTIC",
	WNNCNetAS400:       "AS400",
	WNNCNetFTPNFS:      "FTP_NFS",
	WNNCNetPathWorks:   "PATHWORKS",
	WNNCNetLifeNet:     "LIFENET",
	WNNCNetPowerLan:    "POWERLAN",
	WNNCNetBWNFS:       "BWNFS",
	WNNCNetCogent:      "COGENT",
	WNNCNetFarallon:    "FARALLON",
	WNNCNetAppleTalk:   "APPLETALK",
	WNNCNetIntergraph:  "INTERGRAPH",
	WNNCNetSymfonet:    "SYMFONET",
	WNNCNetClearCase:   "CLEARCASE",
	WNNCNetFrontier:    "FRONTIER",
	WNNCNetBMC:         "BMC",
	WNNCNetDCE:         "DCE",
	WNNCNetAVID:        "AVID",
	WNNCNetDocuspace:   "DOCUSPACE",
	WNNCNetMangosoft:   "MANGOSOFT",
	WNNCNetSernet:      "SERNET",
	WNNCNetRiverFront1: "RIVERFRONT1",
	WNNCNetRiverFront2: "RIVERFRONT2",
	WNNCNetDecorb:      "DECORB",
	WNNCNetProtstor:    "PROTSTOR",
	WNNCNetFjRedir:     "FJ_REDIR",
	WNNCNetDistinct:    "DISTINCT",
	WNNCNetTwins:       "TWINS",
	WNNCNetRdr2Sample:  "RDR2SAMPLE",
	WNNCNetCSC:         "CSC",
	WNNCNet3In1:        "3IN1",
	WNNCNetExtendNet:   "EXTENDNET",
	WNNCNetStac:        "STAC",
	WNNCNetFoxBAT:      "FOXBAT",
	WNNCNetYahoo:       "YAHOO",
	WNNCNetExifs:       "EXIFS",
	WNNCNetDAV:         "DAV",
	WNNCNetKnoware:     "KNOWARE",
}

func (t NetworkProviderType) String() string {
	if name, ok := networkProviderNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown 0x%08X", uint32(t))
}

// CommonNetworkRelativeLink is LinkInfo's optional UNC descriptor.
type CommonNetworkRelativeLink struct {
	Size                  uint32
	Flags                 CNRLinkFlags
	NetworkProviderType   NetworkProviderType
	NetName               string
	DeviceName            string
	NetNameUnicode        string
	DeviceNameUnicode     string
	HasUnicodeNames       bool
}

// LinkInfoFlags is LinkInfo's Flags field.
type LinkInfoFlags uint32

const (
	LinkInfoVolumeIDAndLocalBasePath LinkInfoFlags = 1 << iota
	LinkInfoCommonNetworkRelativeLinkAndPathSuffix
)

func (f LinkInfoFlags) Has(mask LinkInfoFlags) bool { return f&mask == mask }

// LinkInfo is the decoded, self-sized LinkInfo region.
type LinkInfo struct {
	Size       uint32
	HeaderSize uint32
	Flags      LinkInfoFlags

	VolumeIDOffset                 uint32
	LocalBasePathOffset             uint32
	CommonNetworkRelativeLinkOffset uint32
	CommonPathSuffixOffset          uint32
	LocalBasePathOffsetUnicode      uint32
	CommonPathSuffixOffsetUnicode   uint32

	VolumeID                  *VolumeID
	CommonNetworkRelativeLink *CommonNetworkRelativeLink

	LocalBasePath               string
	CommonPathSuffix            string
	LocalBasePathUnicode        string
	CommonPathSuffixUnicode     string
}

// decodeLinkInfo parses the optional LinkInfo region starting at r's
// current position. It returns the number of bytes the region
// occupies in the stream, equal to the declared Size field.
func decodeLinkInfo(r *reader) (LinkInfo, int, error) {
	start := r.Pos()

	size, err := r.ReadUint32()
	if err != nil {
		// The size field itself couldn't be read, so no LinkInfo region
		// boundary is known at all. Leave the cursor at the file end
		// rather than mid-field, so a caller that treats this as a
		// non-fatal anomaly doesn't go on to misread whatever bytes
		// happen to follow as StringData/ExtraData.
		r.Seek(r.Len())
		return LinkInfo{}, 0, err
	}
	if start+int(size) > r.Len() {
		r.Seek(r.Len())
		return LinkInfo{}, 0, fmt.Errorf("%w: LinkInfo declares %d bytes past end of file", ErrTruncatedRegion, size)
	}

	// From here on, size is known to fit within the file. Advance the
	// shared cursor past the whole declared region now, so that a
	// sub-field failure below (an invalid inner offset, say) still
	// leaves the caller positioned at the next region rather than
	// somewhere in the middle of this one.
	if err := r.Seek(start + int(size)); err != nil {
		return LinkInfo{}, 0, err
	}

	region := r.data[start : start+int(size)]
	lr := newReader(region)
	if _, err := lr.ReadUint32(); err != nil { // re-consume Size within the local view
		return LinkInfo{}, 0, err
	}

	headerSize, err := lr.ReadUint32()
	if err != nil {
		return LinkInfo{}, 0, err
	}
	flags, err := lr.ReadUint32()
	if err != nil {
		return LinkInfo{}, 0, err
	}
	volumeIDOffset, err := lr.ReadUint32()
	if err != nil {
		return LinkInfo{}, 0, err
	}
	localBasePathOffset, err := lr.ReadUint32()
	if err != nil {
		return LinkInfo{}, 0, err
	}
	cnrOffset, err := lr.ReadUint32()
	if err != nil {
		return LinkInfo{}, 0, err
	}
	commonPathSuffixOffset, err := lr.ReadUint32()
	if err != nil {
		return LinkInfo{}, 0, err
	}

	var localBasePathOffsetU, commonPathSuffixOffsetU uint32
	hasUnicodeOffsets := headerSize >= linkInfoHeaderSizeUnicodeThreshold
	if hasUnicodeOffsets {
		localBasePathOffsetU, err = lr.ReadUint32()
		if err != nil {
			return LinkInfo{}, 0, err
		}
		commonPathSuffixOffsetU, err = lr.ReadUint32()
		if err != nil {
			return LinkInfo{}, 0, err
		}
	}

	info := LinkInfo{
		Size:                            size,
		HeaderSize:                      headerSize,
		Flags:                           LinkInfoFlags(flags),
		VolumeIDOffset:                  volumeIDOffset,
		LocalBasePathOffset:             localBasePathOffset,
		CommonNetworkRelativeLinkOffset: cnrOffset,
		CommonPathSuffixOffset:          commonPathSuffixOffset,
		LocalBasePathOffsetUnicode:      localBasePathOffsetU,
		CommonPathSuffixOffsetUnicode:   commonPathSuffixOffsetU,
	}

	if info.Flags.Has(LinkInfoVolumeIDAndLocalBasePath) {
		if volumeIDOffset == 0 || int(volumeIDOffset) >= len(region) {
			return LinkInfo{}, 0, fmt.Errorf("%w: VolumeIDOffset %d outside LinkInfo", ErrInvalidOffset, volumeIDOffset)
		}
		vol, err := decodeVolumeID(region, int(volumeIDOffset), hasUnicodeOffsets)
		if err != nil {
			return LinkInfo{}, 0, err
		}
		info.VolumeID = &vol

		if localBasePathOffset == 0 || int(localBasePathOffset) >= len(region) {
			return LinkInfo{}, 0, fmt.Errorf("%w: LocalBasePathOffset %d outside LinkInfo", ErrInvalidOffset, localBasePathOffset)
		}
		s, _, err := readCodePageAt(region, int(localBasePathOffset))
		if err != nil {
			return LinkInfo{}, 0, err
		}
		info.LocalBasePath = s

		if hasUnicodeOffsets && localBasePathOffsetU != 0 {
			if int(localBasePathOffsetU) >= len(region) {
				return LinkInfo{}, 0, fmt.Errorf("%w: LocalBasePathOffsetUnicode %d outside LinkInfo", ErrInvalidOffset, localBasePathOffsetU)
			}
			s, _, err := readUTF16LEAt(region, int(localBasePathOffsetU))
			if err != nil {
				return LinkInfo{}, 0, err
			}
			info.LocalBasePathUnicode = s
		}
	}

	if info.Flags.Has(LinkInfoCommonNetworkRelativeLinkAndPathSuffix) {
		if cnrOffset == 0 || int(cnrOffset) >= len(region) {
			return LinkInfo{}, 0, fmt.Errorf("%w: CommonNetworkRelativeLinkOffset %d outside LinkInfo", ErrInvalidOffset, cnrOffset)
		}
		cnr, err := decodeCommonNetworkRelativeLink(region, int(cnrOffset))
		if err != nil {
			return LinkInfo{}, 0, err
		}
		info.CommonNetworkRelativeLink = &cnr
	}

	if commonPathSuffixOffset != 0 {
		if int(commonPathSuffixOffset) >= len(region) {
			return LinkInfo{}, 0, fmt.Errorf("%w: CommonPathSuffixOffset %d outside LinkInfo", ErrInvalidOffset, commonPathSuffixOffset)
		}
		s, _, err := readCodePageAt(region, int(commonPathSuffixOffset))
		if err != nil {
			return LinkInfo{}, 0, err
		}
		info.CommonPathSuffix = s
	}
	if hasUnicodeOffsets && commonPathSuffixOffsetU != 0 {
		if int(commonPathSuffixOffsetU) >= len(region) {
			return LinkInfo{}, 0, fmt.Errorf("%w: CommonPathSuffixOffsetUnicode %d outside LinkInfo", ErrInvalidOffset, commonPathSuffixOffsetU)
		}
		s, _, err := readUTF16LEAt(region, int(commonPathSuffixOffsetU))
		if err != nil {
			return LinkInfo{}, 0, err
		}
		info.CommonPathSuffixUnicode = s
	}

	return info, int(size), nil
}

// decodeVolumeID decodes the VolumeID sub-structure located at
// region[offset:]. Whether the label is code-page or UTF-16LE is
// selected by the enclosing LinkInfo header-size magnitude, per
// MS-SHLLINK, not by VolumeID's own size.
func decodeVolumeID(region []byte, offset int, hasUnicodeOffsets bool) (VolumeID, error) {
	vr := newReader(region[offset:])
	size, err := vr.ReadUint32()
	if err != nil {
		return VolumeID{}, err
	}
	driveType, err := vr.ReadUint32()
	if err != nil {
		return VolumeID{}, err
	}
	serial, err := vr.ReadUint32()
	if err != nil {
		return VolumeID{}, err
	}
	labelOffset, err := vr.ReadUint32()
	if err != nil {
		return VolumeID{}, err
	}

	vol := VolumeID{
		Size:              size,
		DriveType:         DriveType(driveType),
		DriveSerialNumber: serial,
		VolumeLabelOffset: labelOffset,
	}

	var labelOffsetU uint32
	if hasUnicodeOffsets {
		labelOffsetU, err = vr.ReadUint32()
		if err != nil {
			return VolumeID{}, err
		}
		vol.VolumeLabelOffsetU = labelOffsetU
	}

	useUnicode := hasUnicodeOffsets && labelOffsetU != 0
	if useUnicode {
		s, _, err := readUTF16LEAt(region[offset:], int(labelOffsetU))
		if err != nil {
			return VolumeID{}, err
		}
		vol.Label = s
		vol.LabelIsUnicode = true
	} else {
		s, _, err := readCodePageAt(region[offset:], int(labelOffset))
		if err != nil {
			return VolumeID{}, err
		}
		vol.Label = s
		vol.LabelIsUnicode = false
	}

	return vol, nil
}

// decodeCommonNetworkRelativeLink decodes the CommonNetworkRelativeLink
// sub-structure located at region[offset:]. Per the REDESIGN FLAG, all
// offsets within it — including the Unicode ones — are anchored
// consistently to the CNR region's own start.
func decodeCommonNetworkRelativeLink(region []byte, offset int) (CommonNetworkRelativeLink, error) {
	cnrRegion := region[offset:]
	cr := newReader(cnrRegion)

	size, err := cr.ReadUint32()
	if err != nil {
		return CommonNetworkRelativeLink{}, err
	}
	flags, err := cr.ReadUint32()
	if err != nil {
		return CommonNetworkRelativeLink{}, err
	}
	netNameOffset, err := cr.ReadUint32()
	if err != nil {
		return CommonNetworkRelativeLink{}, err
	}
	deviceNameOffset, err := cr.ReadUint32()
	if err != nil {
		return CommonNetworkRelativeLink{}, err
	}
	providerType, err := cr.ReadUint32()
	if err != nil {
		return CommonNetworkRelativeLink{}, err
	}

	cnr := CommonNetworkRelativeLink{
		Size:  size,
		Flags: CNRLinkFlags(flags),
	}
	if cnr.Flags.Has(CNRValidNetType) {
		cnr.NetworkProviderType = NetworkProviderType(providerType)
	}

	hasUnicode := netNameOffset > 0x14
	var netNameOffsetU, deviceNameOffsetU uint32
	if hasUnicode {
		netNameOffsetU, err = cr.ReadUint32()
		if err != nil {
			return CommonNetworkRelativeLink{}, err
		}
		deviceNameOffsetU, err = cr.ReadUint32()
		if err != nil {
			return CommonNetworkRelativeLink{}, err
		}
	}

	if netNameOffset != 0 {
		s, _, err := readCodePageAt(cnrRegion, int(netNameOffset))
		if err != nil {
			return CommonNetworkRelativeLink{}, err
		}
		cnr.NetName = s
	}
	if cnr.Flags.Has(CNRValidDevice) && deviceNameOffset != 0 {
		s, _, err := readCodePageAt(cnrRegion, int(deviceNameOffset))
		if err != nil {
			return CommonNetworkRelativeLink{}, err
		}
		cnr.DeviceName = s
	}
	if hasUnicode {
		cnr.HasUnicodeNames = true
		if netNameOffsetU != 0 {
			s, _, err := readUTF16LEAt(cnrRegion, int(netNameOffsetU))
			if err != nil {
				return CommonNetworkRelativeLink{}, err
			}
			cnr.NetNameUnicode = s
		}
		if cnr.Flags.Has(CNRValidDevice) && deviceNameOffsetU != 0 {
			s, _, err := readUTF16LEAt(cnrRegion, int(deviceNameOffsetU))
			if err != nil {
				return CommonNetworkRelativeLink{}, err
			}
			cnr.DeviceNameUnicode = s
		}
	}

	return cnr, nil
}

// readCodePageAt reads a NUL-terminated code-page string from
// region[offset:], bounded by the end of region.
func readCodePageAt(region []byte, offset int) (string, int, error) {
	if offset < 0 || offset > len(region) {
		return "", 0, fmt.Errorf("%w: offset %d outside %d-byte region", ErrInvalidOffset, offset, len(region))
	}
	sr := newReader(region[offset:])
	return sr.ReadNulTerminatedCodePage(len(region) - offset)
}

// readUTF16LEAt reads a NUL-code-unit-terminated UTF-16LE string from
// region[offset:], bounded by the end of region.
func readUTF16LEAt(region []byte, offset int) (string, int, error) {
	if offset < 0 || offset > len(region) {
		return "", 0, fmt.Errorf("%w: offset %d outside %d-byte region", ErrInvalidOffset, offset, len(region))
	}
	sr := newReader(region[offset:])
	return sr.ReadNulTerminatedUTF16LE((len(region) - offset) / 2)
}
