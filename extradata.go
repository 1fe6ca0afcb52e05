// Copyright 2026 The lnk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lnk

import "fmt"

// MaxExtraDataBlockSize caps a single ExtraDataBlock's declared size.
// Blocks claiming more than this are rejected with ErrOversizedBlock
// rather than trusted at face value, since a forged BlockSize is one of
// the simplest ways to turn a parser into an unbounded allocator.
const MaxExtraDataBlockSize = 4096

// minExtraDataBlockSize is the smallest legal BlockSize: the 4-byte
// size field plus the 4-byte signature field.
const minExtraDataBlockSize = 8

// ExtraDataBlock is one decoded block from the ExtraData sequence. At
// most one of the typed fields is non-nil, selected by Signature.
type ExtraDataBlock struct {
	Signature ExtraDataSignature
	Size      uint32

	EnvironmentVariable *StringPairBlock
	Console             *ConsoleDataBlock
	Tracker             *TrackerDataBlock
	ConsoleFE           *ConsoleFEDataBlock
	SpecialFolder       *SpecialFolderDataBlock
	Darwin              *StringPairBlock
	IconEnvironment     *StringPairBlock
	Shim                *ShimDataBlock
	PropertyStore       *PropertyStoreDataBlock
	VistaAndAboveIDList *VistaAndAboveIDListDataBlock
	KnownFolder         *KnownFolderDataBlock

	// Unknown carries the raw payload of a block whose signature is not
	// one of the eleven MS-SHLLINK-defined types.
	Unknown []byte
}

// ConsoleFEDataBlock carries the console's code page (0xA0000004).
type ConsoleFEDataBlock struct {
	CodePage uint32
}

func decodeConsoleFEDataBlock(r *reader) (ConsoleFEDataBlock, error) {
	cp, err := r.ReadUint32()
	if err != nil {
		return ConsoleFEDataBlock{}, err
	}
	return ConsoleFEDataBlock{CodePage: cp}, nil
}

// ExtraDataBlockSet records which ExtraData block signatures were
// observed while decoding a shortcut.
type ExtraDataBlockSet uint16

const (
	HasEnvironmentVariable ExtraDataBlockSet = 1 << iota
	HasConsole
	HasTracker
	HasConsoleFE
	HasSpecialFolder
	HasDarwin
	HasIconEnvironment
	HasShim
	HasPropertyStore
	HasVistaAndAboveIDList
	HasKnownFolder
)

func (s ExtraDataBlockSet) Has(bit ExtraDataBlockSet) bool { return s&bit != 0 }

// ExtraData is the decoded, terminator-bounded sequence of optional
// blocks that follows StringData.
type ExtraData struct {
	Blocks  []ExtraDataBlock
	Present ExtraDataBlockSet
}

// decodeExtraData reads ExtraDataBlocks until a terminal block (one
// whose declared size is below the minimum, conventionally 0) or until
// fileEnd is reached.
func decodeExtraData(r *reader, fileEnd int) (ExtraData, error) {
	var ed ExtraData

	for r.Pos() < fileEnd {
		blockStart := r.Pos()
		if fileEnd-blockStart < 4 {
			break
		}

		size, err := r.ReadUint32()
		if err != nil {
			return ExtraData{}, err
		}
		if size < minExtraDataBlockSize {
			// Terminal block: rewind past the size field we just
			// consumed so callers see a clean end-of-region position.
			if err := r.Seek(blockStart + 4); err != nil {
				return ExtraData{}, err
			}
			break
		}
		if size > MaxExtraDataBlockSize {
			return ExtraData{}, fmt.Errorf("%w: ExtraDataBlock at %d declares %d bytes", ErrOversizedBlock, blockStart, size)
		}

		blockEnd := blockStart + int(size)
		if blockEnd > fileEnd {
			return ExtraData{}, fmt.Errorf("%w: ExtraDataBlock at %d overruns file", ErrTruncatedRegion, blockStart)
		}

		rawSig, err := r.ReadUint32()
		if err != nil {
			return ExtraData{}, err
		}
		sig := ExtraDataSignature(rawSig)

		block, err := decodeExtraDataBlockBody(r, sig, size, blockEnd)
		if err != nil {
			return ExtraData{}, fmt.Errorf("%s at %d: %w", sig, blockStart, err)
		}

		if err := r.Seek(blockEnd); err != nil {
			return ExtraData{}, err
		}

		ed.Blocks = append(ed.Blocks, block)
	}

	ed.markPresent()
	return ed, nil
}

func decodeExtraDataBlockBody(r *reader, sig ExtraDataSignature, size uint32, blockEnd int) (ExtraDataBlock, error) {
	block := ExtraDataBlock{Signature: sig, Size: size}

	switch sig {
	case SigEnvironmentVariable:
		b, err := decodeStringPairBlock(r)
		if err != nil {
			return block, err
		}
		block.EnvironmentVariable = &b

	case SigConsole:
		b, err := decodeConsoleDataBlock(r)
		if err != nil {
			return block, err
		}
		block.Console = &b

	case SigTracker:
		b, err := decodeTrackerDataBlock(r)
		if err != nil {
			return block, err
		}
		block.Tracker = &b

	case SigConsoleFE:
		b, err := decodeConsoleFEDataBlock(r)
		if err != nil {
			return block, err
		}
		block.ConsoleFE = &b

	case SigSpecialFolder:
		b, err := decodeSpecialFolderDataBlock(r)
		if err != nil {
			return block, err
		}
		block.SpecialFolder = &b

	case SigDarwin:
		b, err := decodeStringPairBlock(r)
		if err != nil {
			return block, err
		}
		block.Darwin = &b

	case SigIconEnvironment:
		b, err := decodeStringPairBlock(r)
		if err != nil {
			return block, err
		}
		block.IconEnvironment = &b

	case SigShim:
		b, err := decodeShimDataBlock(r)
		if err != nil {
			return block, err
		}
		block.Shim = &b

	case SigPropertyStore:
		b, err := decodePropertyStoreDataBlock(r, blockEnd)
		if err != nil {
			return block, err
		}
		block.PropertyStore = &b

	case SigVistaAndAboveIDList:
		b, err := decodeVistaAndAboveIDListDataBlock(r)
		if err != nil {
			return block, err
		}
		block.VistaAndAboveIDList = &b

	case SigKnownFolder:
		b, err := decodeKnownFolderDataBlock(r)
		if err != nil {
			return block, err
		}
		block.KnownFolder = &b

	default:
		raw, err := r.ReadBytes(blockEnd - r.Pos())
		if err != nil {
			return block, err
		}
		block.Unknown = raw
	}

	return block, nil
}

// markPresent records which signatures were observed across a decoded
// ExtraData sequence.
func (ed *ExtraData) markPresent() {
	for _, b := range ed.Blocks {
		switch b.Signature {
		case SigEnvironmentVariable:
			ed.Present |= HasEnvironmentVariable
		case SigConsole:
			ed.Present |= HasConsole
		case SigTracker:
			ed.Present |= HasTracker
		case SigConsoleFE:
			ed.Present |= HasConsoleFE
		case SigSpecialFolder:
			ed.Present |= HasSpecialFolder
		case SigDarwin:
			ed.Present |= HasDarwin
		case SigIconEnvironment:
			ed.Present |= HasIconEnvironment
		case SigShim:
			ed.Present |= HasShim
		case SigPropertyStore:
			ed.Present |= HasPropertyStore
		case SigVistaAndAboveIDList:
			ed.Present |= HasVistaAndAboveIDList
		case SigKnownFolder:
			ed.Present |= HasKnownFolder
		}
	}
}
