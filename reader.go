// Copyright 2026 The lnk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lnk

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

// utf16LEDecoder is shared by every UTF-16LE read in the package.
var utf16LEDecoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()

// reader is a bounds-checked little-endian cursor over a borrowed byte
// slice. It never allocates on the read path beyond what materializing
// a string or copying a payload requires.
type reader struct {
	data []byte
	pos  int
}

func newReader(data []byte) *reader {
	return &reader{data: data}
}

// Pos returns the current absolute offset into the underlying slice.
func (r *reader) Pos() int { return r.pos }

// Len returns the length of the underlying slice.
func (r *reader) Len() int { return len(r.data) }

// Remaining returns the number of unread bytes.
func (r *reader) Remaining() int { return len(r.data) - r.pos }

// Seek repositions the cursor to an absolute offset. It fails if the
// offset is outside the slice.
func (r *reader) Seek(pos int) error {
	if pos < 0 || pos > len(r.data) {
		return fmt.Errorf("%w: seek to %d (length %d)", ErrTruncatedRegion, pos, len(r.data))
	}
	r.pos = pos
	return nil
}

func (r *reader) need(n int) error {
	if n < 0 || r.pos+n > len(r.data) {
		return fmt.Errorf("%w: need %d bytes at offset %d (length %d)", ErrTruncatedRegion, n, r.pos, len(r.data))
	}
	return nil
}

// ReadBytes copies n raw bytes and advances the cursor.
func (r *reader) ReadBytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, r.data[r.pos:r.pos+n])
	r.pos += n
	return out, nil
}

// PeekBytes returns a borrowed view of the next n bytes without
// advancing the cursor. Callers must not retain it past the life of
// the decode call that produced it.
func (r *reader) PeekBytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	return r.data[r.pos : r.pos+n], nil
}

func (r *reader) ReadUint8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.data[r.pos]
	r.pos++
	return v, nil
}

func (r *reader) ReadUint16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

func (r *reader) ReadUint32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

func (r *reader) ReadUint64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	return v, nil
}

func (r *reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadFixedCodePage reads exactly n bytes and returns them as a string
// truncated at the first NUL byte, for fixed-width code-page fields
// such as the ExtraData 260-byte ANSI target buffers.
func (r *reader) ReadFixedCodePage(n int) (string, error) {
	b, err := r.ReadBytes(n)
	if err != nil {
		return "", err
	}
	return codePageString(b), nil
}

// ReadFixedUTF16LE reads exactly units*2 bytes and returns them decoded
// as UTF-16LE, truncated at the first 0x0000 code unit.
func (r *reader) ReadFixedUTF16LE(units int) (string, error) {
	b, err := r.ReadBytes(units * 2)
	if err != nil {
		return "", err
	}
	return utf16LEString(b), nil
}

// ReadCountedCodePage reads exactly count bytes verbatim as a
// code-page string. Unlike ReadFixedCodePage, the count is authoritative
// and no NUL truncation is applied (StringData semantics).
func (r *reader) ReadCountedCodePage(count int) (string, error) {
	b, err := r.ReadBytes(count)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadCountedUTF16LE reads exactly count UTF-16LE code units verbatim.
// The count is authoritative; no NUL truncation is applied.
func (r *reader) ReadCountedUTF16LE(count int) (string, error) {
	b, err := r.ReadBytes(count * 2)
	if err != nil {
		return "", err
	}
	s, err := utf16LEDecoder.String(string(b))
	if err != nil {
		return utf16LEString(b), nil
	}
	return s, nil
}

// ReadNulTerminatedCodePage reads a NUL-terminated code-page string
// bounded by maxLen bytes, returning the string and the number of
// bytes consumed (including the terminating NUL when present).
func (r *reader) ReadNulTerminatedCodePage(maxLen int) (string, int, error) {
	if maxLen < 0 {
		maxLen = 0
	}
	if r.pos+maxLen > len(r.data) {
		maxLen = len(r.data) - r.pos
	}
	if maxLen < 0 {
		return "", 0, fmt.Errorf("%w: offset %d beyond end of data", ErrTruncatedRegion, r.pos)
	}
	window := r.data[r.pos : r.pos+maxLen]
	end := len(window)
	for i, b := range window {
		if b == 0 {
			end = i
			break
		}
	}
	consumed := end
	if end < len(window) {
		consumed = end + 1
	}
	r.pos += consumed
	return string(window[:end]), consumed, nil
}

// ReadNulTerminatedUTF16LE reads a NUL-code-unit-terminated UTF-16LE
// string bounded by maxUnits code units.
func (r *reader) ReadNulTerminatedUTF16LE(maxUnits int) (string, int, error) {
	start := r.pos
	units := 0
	for units < maxUnits {
		if r.pos+2 > len(r.data) {
			break
		}
		u := binary.LittleEndian.Uint16(r.data[r.pos:])
		r.pos += 2
		units++
		if u == 0 {
			break
		}
	}
	return utf16LEString(r.data[start:r.pos]), r.pos - start, nil
}

// codePageString decodes a single-byte code-page buffer, truncating at
// the first NUL. The forensic target of this decoder rarely carries
// anything outside ASCII in these fields, so the bytes are copied into
// the string unchanged rather than pulled through a code-page table;
// bytes above 0x7F are kept as raw bytes, not converted to runes.
func codePageString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// utf16LEString decodes a UTF-16LE buffer, truncating at the first
// 0x0000 code unit.
func utf16LEString(b []byte) string {
	n := len(b) / 2
	for i := 0; i < n; i++ {
		if b[2*i] == 0 && b[2*i+1] == 0 {
			b = b[:2*i]
			break
		}
	}
	s, err := utf16LEDecoder.String(string(b))
	if err != nil {
		// Fall back to a naive decode rather than dropping the field;
		// malformed code units are forensically interesting on their own.
		units := make([]rune, 0, len(b)/2)
		for i := 0; i+1 < len(b); i += 2 {
			units = append(units, rune(binary.LittleEndian.Uint16(b[i:])))
		}
		return string(units)
	}
	return s
}
