// Copyright 2026 The lnk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lnk

// Anomalies are non-fatal findings recorded while decoding a shortcut:
// they do not stop the Windows shell from resolving the link, but they
// are forensically interesting on their own.
var (
	// AnoLinkInfoMalformed is reported when the optional LinkInfo
	// structure cannot be decoded; the rest of the shortcut is still
	// returned.
	AnoLinkInfoMalformed = "LinkInfo structure is malformed"

	// AnoExtraDataTruncated is reported when the ExtraData sequence
	// cannot be decoded to its end: a block declares a size that
	// overruns the file or exceeds MaxExtraDataBlockSize, or its body
	// is malformed.
	AnoExtraDataTruncated = "ExtraData sequence truncated by an oversized or malformed block"

	// AnoUnsupportedVariant is reported when a PROPVARIANT's base type
	// falls outside the decoded subset; its raw bytes are kept.
	AnoUnsupportedVariant = "PROPVARIANT base type is not decoded, raw bytes retained"

	// AnoNoTargetInformation is reported when neither LinkInfo nor any
	// StringData.Name/RelativePath entry identifies a target.
	AnoNoTargetInformation = "shortcut carries no LinkInfo and no target-identifying StringData entry"
)

// stringInAnomalies reports whether anomaly already appears in the
// given slice, so repeated findings of the same kind are not recorded
// twice.
func stringInAnomalies(anomaly string, anomalies []string) bool {
	for _, a := range anomalies {
		if a == anomaly {
			return true
		}
	}
	return false
}
