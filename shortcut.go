// Copyright 2026 The lnk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lnk decodes the Microsoft Shell Link Binary File Format
// (MS-SHLLINK), the on-disk layout of Windows .lnk shortcut files, for
// forensic inspection. Decoding never trusts declared sizes at face
// value: every region is bounds-checked against the file and, where the
// format allows it, against its own declared extent, and malformed but
// non-fatal regions are recorded as anomalies rather than aborting the
// decode.
package lnk

import (
	"fmt"
	"os"

	mmap "github.com/edsrzf/mmap-go"
	"github.com/sirupsen/logrus"
)

// Options controls how a ShortcutFile is decoded.
type Options struct {
	// SkipExtraData disables ExtraData decoding entirely.
	SkipExtraData bool

	// Logger receives structured decode diagnostics. Defaults to a
	// logrus.New() logger at Warn level when nil.
	Logger *logrus.Logger
}

func (o *Options) logger() *logrus.Logger {
	if o != nil && o.Logger != nil {
		return o.Logger
	}
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	return l
}

// ShortcutFile is a fully decoded .lnk shortcut.
type ShortcutFile struct {
	Header       Header
	LinkTargetID *IDList
	LinkInfo     *LinkInfo
	StringData   StringData
	ExtraData    ExtraData

	// Anomalies accumulates non-fatal observations made while decoding:
	// malformed-but-recoverable regions, unsupported PROPVARIANT types,
	// and similar findings that are forensically interesting without
	// being fatal.
	Anomalies []string

	data   []byte
	region mmap.MMap
	f      *os.File
	opts   *Options
	logger *logrus.Logger
}

// Close releases the underlying memory-mapped file, if one was opened
// with New. It is a no-op for shortcuts decoded with NewBytes.
func (s *ShortcutFile) Close() error {
	if s.region != nil {
		_ = s.region.Unmap()
	}
	if s.f != nil {
		return s.f.Close()
	}
	return nil
}

// New opens and decodes the shortcut at name, memory-mapping the file
// rather than reading it into a heap buffer.
func New(name string, opts *Options) (*ShortcutFile, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	s, err := decode(data, opts)
	if err != nil {
		_ = data.Unmap()
		f.Close()
		return nil, err
	}
	s.region = data
	s.f = f
	return s, nil
}

// NewBytes decodes a shortcut already held in memory.
func NewBytes(data []byte, opts *Options) (*ShortcutFile, error) {
	return decode(data, opts)
}

func decode(data []byte, opts *Options) (*ShortcutFile, error) {
	logger := opts.logger()

	s := &ShortcutFile{
		data:   data,
		opts:   opts,
		logger: logger,
	}

	r := newReader(data)

	header, err := decodeHeader(r)
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	s.Header = header
	if err := r.Seek(HeaderSize); err != nil {
		return nil, err
	}

	if header.Flags.Has(FlagHasLinkTargetIDList) {
		idList, _, err := decodeIDList(r)
		if err != nil {
			return nil, fmt.Errorf("LinkTargetIDList: %w", err)
		}
		s.LinkTargetID = &idList
	}

	if header.Flags.Has(FlagHasLinkInfo) && !header.Flags.Has(FlagForceNoLinkInfo) {
		linkInfo, _, err := decodeLinkInfo(r)
		if err != nil {
			s.addAnomaly(fmt.Sprintf("%s: %v", AnoLinkInfoMalformed, err))
		} else {
			s.LinkInfo = &linkInfo
		}
	}

	stringData, _, err := decodeStringData(r, header.Flags)
	if err != nil {
		return nil, fmt.Errorf("StringData: %w", err)
	}
	s.StringData = stringData

	if opts == nil || !opts.SkipExtraData {
		extraData, err := decodeExtraData(r, r.Len())
		s.ExtraData = extraData
		if err != nil {
			s.addAnomaly(fmt.Sprintf("%s: %v", AnoExtraDataTruncated, err))
		}
	}

	if s.LinkInfo == nil && !s.StringData.Name.Present && !s.StringData.RelativePath.Present {
		s.addAnomaly(AnoNoTargetInformation)
	}

	if hasUnsupportedVariant(s.ExtraData) {
		s.addAnomaly(AnoUnsupportedVariant)
	}

	logger.WithFields(logrus.Fields{
		"size":    len(data),
		"flags":   header.Flags,
		"anomaly": len(s.Anomalies),
	}).Debug("decoded shortcut")

	return s, nil
}

// hasUnsupportedVariant reports whether any PropertyStoreDataBlock in
// ed carries a value whose PROPVARIANT type fell outside the decoded
// subset.
func hasUnsupportedVariant(ed ExtraData) bool {
	for _, b := range ed.Blocks {
		if b.PropertyStore == nil {
			continue
		}
		for _, store := range b.PropertyStore.Stores {
			for _, v := range store.Values {
				if v.Variant.Unsupported != nil {
					return true
				}
			}
		}
	}
	return false
}

func (s *ShortcutFile) addAnomaly(anomaly string) {
	if stringInAnomalies(anomaly, s.Anomalies) {
		return
	}
	s.Anomalies = append(s.Anomalies, anomaly)
	s.logger.Warn(anomaly)
}
