// Copyright 2026 The lnk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render formats a decoded shortcut for human and tabular
// consumption.
package render

import (
	"fmt"
	"io"
	"strings"

	lnk "github.com/forensic-go/lnk"
)

// Text writes a hierarchical, human-readable report of a decoded
// shortcut to w, sectioned by MS-SHLLINK section number.
//
// short omits offsets, sizes, reserved fields, raw flag bit-sets, and
// UUID version/variant details, per spec.md's -s flag. includeEmbeddedProps
// additionally scans every LinkTargetIDList item for an embedded
// MS-PROPSTORE property store and reports any found (spec.md's -i
// flag); it has no effect when short is set, since -i is documented as
// only meaningful for the full report.
func Text(w io.Writer, s *lnk.ShortcutFile, short bool, includeEmbeddedProps bool) {
	var b strings.Builder

	fmt.Fprintf(&b, "2.1 ShellLinkHeader\n")
	fmt.Fprintf(&b, "  ClassID:        %s\n", s.Header.ClassID)
	if short {
		fmt.Fprintf(&b, "  Flags:          %s\n", strings.Join(s.Header.Flags.Names(), "|"))
		fmt.Fprintf(&b, "  Attributes:     %s\n", strings.Join(s.Header.Attributes.Names(), "|"))
	} else {
		fmt.Fprintf(&b, "  Flags:          %s\n", s.Header.Flags)
		fmt.Fprintf(&b, "  Attributes:     %s\n", s.Header.Attributes)
	}
	fmt.Fprintf(&b, "  CreationTime:   %s\n", s.Header.CreationTime)
	fmt.Fprintf(&b, "  AccessTime:     %s\n", s.Header.AccessTime)
	fmt.Fprintf(&b, "  WriteTime:      %s\n", s.Header.WriteTime)
	if !short {
		fmt.Fprintf(&b, "  TargetSize:     %d\n", s.Header.TargetSize)
	}
	fmt.Fprintf(&b, "  IconIndex:      %d\n", s.Header.IconIndex)
	fmt.Fprintf(&b, "  ShowCommand:    %s\n", s.Header.ShowCommand)
	if s.Header.HotKey.Raw != 0 {
		fmt.Fprintf(&b, "  HotKey:         %s+%s\n", s.Header.HotKey.Modifiers, s.Header.HotKey.Key)
	}

	if s.LinkTargetID != nil {
		fmt.Fprintf(&b, "2.2 LinkTargetIDList\n")
		fmt.Fprintf(&b, "  Items:          %d\n", len(s.LinkTargetID.Items))
		if includeEmbeddedProps && !short {
			renderEmbeddedPropertyStores(&b, s.LinkTargetID.Items)
		}
	}

	if s.LinkInfo != nil {
		li := s.LinkInfo
		fmt.Fprintf(&b, "2.3 LinkInfo\n")
		if li.VolumeID != nil {
			if short {
				fmt.Fprintf(&b, "    VolumeID:     DriveType=%s Label=%q\n",
					li.VolumeID.DriveType, li.VolumeID.Label)
			} else {
				fmt.Fprintf(&b, "    VolumeID:     DriveType=%s Serial=0x%08X Label=%q\n",
					li.VolumeID.DriveType, li.VolumeID.DriveSerialNumber, li.VolumeID.Label)
			}
		}
		if li.LocalBasePath != "" {
			fmt.Fprintf(&b, "    LocalBasePath:   %s\n", li.LocalBasePath)
		}
		if li.LocalBasePathUnicode != "" {
			fmt.Fprintf(&b, "    LocalBasePathU:  %s\n", li.LocalBasePathUnicode)
		}
		if li.CommonNetworkRelativeLink != nil {
			cnr := li.CommonNetworkRelativeLink
			fmt.Fprintf(&b, "    CommonNetworkRelativeLink: NetName=%q DeviceName=%q Provider=%s\n",
				cnr.NetName, cnr.DeviceName, cnr.NetworkProviderType)
		}
		if li.CommonPathSuffix != "" {
			fmt.Fprintf(&b, "    CommonPathSuffix: %s\n", li.CommonPathSuffix)
		}
	}

	fmt.Fprintf(&b, "2.4 StringData\n")
	renderStringEntry(&b, "Name", s.StringData.Name)
	renderStringEntry(&b, "RelativePath", s.StringData.RelativePath)
	renderStringEntry(&b, "WorkingDir", s.StringData.WorkingDir)
	renderStringEntry(&b, "Arguments", s.StringData.Arguments)
	renderStringEntry(&b, "IconLocation", s.StringData.IconLocation)

	for _, block := range s.ExtraData.Blocks {
		if short {
			fmt.Fprintf(&b, "2.5 ExtraData: %s\n", block.Signature)
		} else {
			fmt.Fprintf(&b, "2.5 ExtraData: %s (%d bytes)\n", block.Signature, block.Size)
		}
		if block.PropertyStore != nil {
			renderPropertyStores(&b, block.PropertyStore.Stores)
		}
	}

	if len(s.Anomalies) > 0 {
		fmt.Fprintf(&b, "Anomalies:\n")
		for _, a := range s.Anomalies {
			fmt.Fprintf(&b, "  - %s\n", a)
		}
	}

	io.WriteString(w, b.String())
}

func renderPropertyStores(b *strings.Builder, stores []lnk.SerializedPropertyStore) {
	for _, store := range stores {
		fmt.Fprintf(b, "    PropertyStore %s: %d value(s)\n", store.FormatID, len(store.Values))
		for _, v := range store.Values {
			key := fmt.Sprintf("%d", v.ID)
			if v.NameType == lnk.StringName {
				key = v.Name
			}
			fmt.Fprintf(b, "      %s (%s) = %v\n", key, v.Variant.Type, v.Variant.Value)
		}
	}
}

// renderEmbeddedPropertyStores scans every ItemID's raw payload for an
// MS-PROPSTORE "1SPS" signature and reports any property stores found,
// backing the -i flag's documented scope (embedded stores in ItemID
// payloads, as opposed to top-level PropertyStoreDataBlocks).
func renderEmbeddedPropertyStores(b *strings.Builder, items []lnk.ItemID) {
	for i, item := range items {
		found := lnk.FindPropertyStores(item.Data, 0)
		if len(found) == 0 {
			continue
		}
		fmt.Fprintf(b, "    ItemID[%d] embedded property stores:\n", i)
		for _, lps := range found {
			fmt.Fprintf(b, "      @%d %s: %d value(s)\n", lps.Offset, lps.Store.FormatID, len(lps.Store.Values))
			for _, v := range lps.Store.Values {
				key := fmt.Sprintf("%d", v.ID)
				if v.NameType == lnk.StringName {
					key = v.Name
				}
				fmt.Fprintf(b, "        %s (%s) = %v\n", key, v.Variant.Type, v.Variant.Value)
			}
		}
	}
}

func renderStringEntry(b *strings.Builder, label string, e lnk.StringEntry) {
	if !e.Present {
		return
	}
	fmt.Fprintf(b, "  %s:%s%s\n", label, strings.Repeat(" ", max(1, 15-len(label))), e.Value)
}
