// Copyright 2026 The lnk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lnk

import (
	"fmt"
	"math"
	"math/big"
)

// VarType is the base MS-OLEPS property type, with the VT_VECTOR and
// VT_ARRAY modifier bits masked off.
type VarType uint16

const (
	VTEmpty            VarType = 0
	VTNull             VarType = 1
	VTI2               VarType = 2
	VTI4               VarType = 3
	VTR4               VarType = 4
	VTR8               VarType = 5
	VTCY               VarType = 6
	VTDate             VarType = 7
	VTBSTR             VarType = 8
	VTError            VarType = 10
	VTBool             VarType = 11
	VTDecimal          VarType = 14
	VTI1               VarType = 16
	VTUI1              VarType = 17
	VTUI2              VarType = 18
	VTUI4              VarType = 19
	VTI8               VarType = 20
	VTUI8              VarType = 21
	VTInt              VarType = 22
	VTUInt             VarType = 23
	VTLPSTR            VarType = 30
	VTLPWSTR           VarType = 31
	VTFileTime         VarType = 64
	VTBlob             VarType = 65
	VTStream           VarType = 66
	VTStorage          VarType = 67
	VTStreamedObject   VarType = 68
	VTStoredObject     VarType = 69
	VTBlobObject       VarType = 70
	VTCF               VarType = 71
	VTCLSID            VarType = 72
	VTVersionedStream  VarType = 73
)

// VTVector and VTArray are the modifier bits layered on top of the
// 16-bit property-type code.
const (
	VTVector uint16 = 0x1000
	VTArray  uint16 = 0x2000
	vtTypeMask      = 0x0FFF
)

var varTypeNames = map[VarType]string{
	VTEmpty: "VT_EMPTY", VTNull: "VT_NULL", VTI2: "VT_I2", VTI4: "VT_I4",
	VTR4: "VT_R4", VTR8: "VT_R8", VTCY: "VT_CY", VTDate: "VT_DATE",
	VTBSTR: "VT_BSTR", VTError: "VT_ERROR", VTBool: "VT_BOOL",
	VTDecimal: "VT_DECIMAL", VTI1: "VT_I1", VTUI1: "VT_UI1", VTUI2: "VT_UI2",
	VTUI4: "VT_UI4", VTI8: "VT_I8", VTUI8: "VT_UI8", VTInt: "VT_INT",
	VTUInt: "VT_UINT", VTLPSTR: "VT_LPSTR", VTLPWSTR: "VT_LPWSTR",
	VTFileTime: "VT_FILETIME", VTBlob: "VT_BLOB", VTStream: "VT_STREAM",
	VTStorage: "VT_STORAGE", VTStreamedObject: "VT_STREAMED_OBJECT",
	VTStoredObject: "VT_STORED_OBJECT", VTBlobObject: "VT_BLOB_OBJECT",
	VTCF: "VT_CF", VTCLSID: "VT_CLSID", VTVersionedStream: "VT_VERSIONED_STREAM",
}

func (t VarType) String() string {
	if name, ok := varTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("VT_UNKNOWN(0x%04X)", uint16(t))
}

// Decimal is the decoded MS-OLEPS DECIMAL payload.
type Decimal struct {
	Scale uint8
	Sign  uint8
	Hi32  uint32
	Lo64  uint64
}

// String renders the decimal value as a base-10 string.
func (d Decimal) String() string {
	mantissa := new(big.Int).Lsh(big.NewInt(int64(d.Hi32)), 64)
	mantissa.Or(mantissa, new(big.Int).SetUint64(d.Lo64))
	if d.Sign != 0 {
		mantissa.Neg(mantissa)
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(d.Scale)), nil)
	r := new(big.Rat).SetFrac(mantissa, scale)
	return r.FloatString(int(d.Scale))
}

// ArrayDimension is one bound of a VT_ARRAY's dimension metadata.
type ArrayDimension struct {
	Size        uint32
	LowerBound  int32
}

// UnsupportedVariant captures a PROPVARIANT whose base type falls
// outside the decoded subset. It never aborts the enclosing decode.
type UnsupportedVariant struct {
	RawType uint16
	Raw     []byte
}

// PropVariant is a decoded MS-OLEPS PROPVARIANT value.
type PropVariant struct {
	Type     VarType
	IsVector bool
	IsArray  bool

	// Value holds the single decoded payload when IsVector and IsArray
	// are both false. Its concrete Go type depends on Type: string,
	// int8/16/32/64, uint8/16/32/64, float32/64, bool, UUID, FileTime,
	// Decimal, or []byte.
	Value any

	// Vector holds each decoded element when IsVector is true.
	Vector []any

	// ArrayDimensions and Array hold the dimension metadata and
	// flattened elements when IsArray is true.
	ArrayDimensions []ArrayDimension
	Array           []any

	// Unsupported is set when Type falls outside the decoded subset.
	// Type, IsVector and IsArray still describe the raw type code; the
	// value fields (Value, Vector, ArrayDimensions, Array) are left zero.
	Unsupported *UnsupportedVariant
}

// decodePropVariant reads a property-type/padding pair followed by its
// payload. end bounds the payload for unsupported types, whose shape
// is unknown: the caller is expected to have already validated that
// end does not exceed the stream.
func decodePropVariant(r *reader, end int) (PropVariant, error) {
	rawType, err := r.ReadUint16()
	if err != nil {
		return PropVariant{}, err
	}
	if _, err := r.ReadUint16(); err != nil { // padding
		return PropVariant{}, err
	}

	base := VarType(rawType & vtTypeMask)
	isVector := rawType&VTVector != 0
	isArray := rawType&VTArray != 0

	if !isSupportedVarType(base) {
		raw, err := r.ReadBytes(end - r.Pos())
		if err != nil {
			return PropVariant{}, err
		}
		return PropVariant{
			Type:     base,
			IsVector: isVector,
			IsArray:  isArray,
			Unsupported: &UnsupportedVariant{
				RawType: rawType,
				Raw:     raw,
			},
		}, nil
	}

	switch {
	case isArray:
		dims, elems, err := decodeVarArray(r, base)
		if err != nil {
			return PropVariant{}, err
		}
		return PropVariant{Type: base, IsArray: true, ArrayDimensions: dims, Array: elems}, nil
	case isVector:
		count, err := r.ReadUint32()
		if err != nil {
			return PropVariant{}, err
		}
		elems := make([]any, 0, count)
		for i := uint32(0); i < count; i++ {
			v, err := decodeVarScalar(r, base)
			if err != nil {
				return PropVariant{}, err
			}
			elems = append(elems, v)
		}
		return PropVariant{Type: base, IsVector: true, Vector: elems}, nil
	default:
		v, err := decodeVarScalar(r, base)
		if err != nil {
			return PropVariant{}, err
		}
		return PropVariant{Type: base, Value: v}, nil
	}
}

func decodeVarArray(r *reader, base VarType) ([]ArrayDimension, []any, error) {
	cDims, err := r.ReadUint16()
	if err != nil {
		return nil, nil, err
	}
	if _, err := r.ReadUint16(); err != nil { // fFeatures, unused here
		return nil, nil, err
	}
	if _, err := r.ReadUint32(); err != nil { // cbElements
		return nil, nil, err
	}

	dims := make([]ArrayDimension, cDims)
	total := uint64(1)
	for i := range dims {
		size, err := r.ReadUint32()
		if err != nil {
			return nil, nil, err
		}
		lbound, err := r.ReadInt32()
		if err != nil {
			return nil, nil, err
		}
		dims[i] = ArrayDimension{Size: size, LowerBound: lbound}
		total *= uint64(size)
	}

	elems := make([]any, 0, total)
	for i := uint64(0); i < total; i++ {
		v, err := decodeVarScalar(r, base)
		if err != nil {
			return nil, nil, err
		}
		elems = append(elems, v)
	}
	return dims, elems, nil
}

func isSupportedVarType(t VarType) bool {
	_, ok := varTypeNames[t]
	return ok || t == VTEmpty || t == VTNull
}

// decodeVarScalar decodes a single fixed- or variable-size payload for
// base, per the MS-OLEPS payload table.
func decodeVarScalar(r *reader, base VarType) (any, error) {
	switch base {
	case VTEmpty, VTNull:
		return nil, nil

	case VTI1:
		v, err := r.ReadUint8()
		return int8(v), err
	case VTUI1:
		return r.ReadUint8()

	case VTI2:
		v, err := r.ReadInt16()
		if err != nil {
			return nil, err
		}
		if _, err := r.ReadUint16(); err != nil { // 2-byte pad
			return nil, err
		}
		return v, nil
	case VTUI2:
		v, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		if _, err := r.ReadUint16(); err != nil { // 2-byte pad
			return nil, err
		}
		return v, nil

	case VTBool:
		v, err := r.ReadUint16()
		return v == 0xFFFF, err

	case VTI4, VTInt:
		return r.ReadInt32()
	case VTUI4, VTUInt, VTError:
		return r.ReadUint32()
	case VTR4:
		v, err := r.ReadUint32()
		return math.Float32frombits(v), err

	case VTI8:
		return r.ReadInt64()
	case VTUI8, VTCY:
		return r.ReadUint64()
	case VTR8:
		v, err := r.ReadUint64()
		return math.Float64frombits(v), err
	case VTDate:
		v, err := r.ReadUint64()
		return math.Float64frombits(v), err
	case VTFileTime:
		v, err := r.ReadInt64()
		if err != nil {
			return nil, err
		}
		return DecodeFileTime(v), nil

	case VTCLSID:
		return decodeUUID(r)

	case VTDecimal:
		if _, err := r.ReadUint16(); err != nil { // wReserved
			return nil, err
		}
		scale, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}
		sign, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}
		hi32, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		lo64, err := r.ReadUint64()
		if err != nil {
			return nil, err
		}
		return Decimal{Scale: scale, Sign: sign, Hi32: hi32, Lo64: lo64}, nil

	case VTLPWSTR:
		count, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		return r.ReadCountedUTF16LE(int(count))

	case VTBSTR, VTLPSTR, VTStream, VTStorage, VTStreamedObject, VTStoredObject:
		length, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		b, err := r.ReadBytes(int(length))
		if err != nil {
			return nil, err
		}
		if len(b) >= 2 && b[len(b)-1] == 0 && b[len(b)-2] == 0 {
			return utf16LEString(b), nil
		}
		return codePageString(b), nil

	case VTBlob, VTCF, VTBlobObject:
		length, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		return r.ReadBytes(int(length))

	case VTVersionedStream:
		clsid, err := decodeUUID(r)
		if err != nil {
			return nil, err
		}
		length, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		stream, err := r.ReadBytes(int(length))
		if err != nil {
			return nil, err
		}
		return VersionedStream{VersionCLSID: clsid, Stream: stream}, nil

	default:
		return nil, fmt.Errorf("decodeVarScalar: unhandled supported type %s", base)
	}
}

// VersionedStream is the decoded VT_VERSIONED_STREAM payload.
type VersionedStream struct {
	VersionCLSID UUID
	Stream       []byte
}
