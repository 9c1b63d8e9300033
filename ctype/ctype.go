// Copyright (c) 2026 The Cmini Contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Package ctype models the C type system: scalar, pointer, array,
// function and struct types, plus the usual-arithmetic-conversion and
// integer-promotion rules the IL generator needs at every operator.
package ctype

import "fmt"

type Kind int

const (
	KVoid Kind = iota
	KInt
	KPointer
	KArray
	KFunction
	KStruct
)

func (k Kind) String() string {
	switch k {
	case KVoid:
		return "void"
	case KInt:
		return "int"
	case KPointer:
		return "pointer"
	case KArray:
		return "array"
	case KFunction:
		return "function"
	case KStruct:
		return "struct"
	}
	return "?"
}

// StructMember is one field of a KStruct type, with its byte offset
// already resolved by the declaration that defined the struct.
type StructMember struct {
	Name   string
	Type   *CType
	Offset int
}

// CType is the tagged union described by the data model: every scalar,
// pointer, array, function and struct type a translation unit can name
// is one value of this struct, never a bare enum tag.
type CType struct {
	Kind     Kind
	Size     int8 // 1, 2, 4 or 8 for KInt; 8 for KPointer
	Signed   bool // KInt only
	Bool     bool // KInt marker: this is _Bool (affects Set's normalization)
	Elem     *CType
	ArrayLen *uint64 // KArray; nil means incomplete ("T[]")
	Params   []*CType
	Ret      *CType
	HasProto bool // KFunction: declared with a parameter list, not K&R-style
	Tag      string
	Members  []StructMember
	Complete bool // KStruct: has a member list yet
	Const    bool
}

var (
	Void   = &CType{Kind: KVoid}
	Bool8  = &CType{Kind: KInt, Size: 1, Signed: false, Bool: true}
	Int8   = &CType{Kind: KInt, Size: 1, Signed: true}
	UInt8  = &CType{Kind: KInt, Size: 1, Signed: false}
	Int16  = &CType{Kind: KInt, Size: 2, Signed: true}
	UInt16 = &CType{Kind: KInt, Size: 2, Signed: false}
	Int32  = &CType{Kind: KInt, Size: 4, Signed: true}
	UInt32 = &CType{Kind: KInt, Size: 4, Signed: false}
	Int64  = &CType{Kind: KInt, Size: 8, Signed: true}
	UInt64 = &CType{Kind: KInt, Size: 8, Signed: false}
)

func NewPointer(elem *CType) *CType {
	return &CType{Kind: KPointer, Size: 8, Elem: elem}
}

func NewArray(elem *CType, length *uint64) *CType {
	return &CType{Kind: KArray, Size: 8, Elem: elem, ArrayLen: length}
}

func NewFunction(ret *CType, params []*CType, hasProto bool) *CType {
	return &CType{Kind: KFunction, Ret: ret, Params: params, HasProto: hasProto}
}

func NewStruct(tag string) *CType {
	return &CType{Kind: KStruct, Tag: tag}
}

// MakeConst returns a copy of t with the top-level const qualifier set.
// Pointee constness ("pointer to const") lives on Elem and is set by
// qualifying the pointee type before calling NewPointer.
func (t *CType) MakeConst() *CType {
	clone := *t
	clone.Const = true
	return &clone
}

func (t *CType) IsVoid() bool     { return t.Kind == KVoid }
func (t *CType) IsIntegral() bool { return t.Kind == KInt }
func (t *CType) IsPointer() bool  { return t.Kind == KPointer }
func (t *CType) IsArray() bool    { return t.Kind == KArray }
func (t *CType) IsFunction() bool { return t.Kind == KFunction }
func (t *CType) IsStruct() bool   { return t.Kind == KStruct }

func (t *CType) IsArith() bool  { return t.Kind == KInt }
func (t *CType) IsScalar() bool { return t.Kind == KInt || t.Kind == KPointer }
func (t *CType) IsObject() bool { return t.Kind != KFunction && t.Kind != KVoid }

func (t *CType) IsComplete() bool {
	switch t.Kind {
	case KVoid:
		return false
	case KArray:
		return t.ArrayLen != nil
	case KStruct:
		return t.Complete
	default:
		return true
	}
}

// SizeOf returns the storage size in bytes; an incomplete array (one
// with no length) reports 0 (callers that need to tell that case apart
// must check IsComplete).
func (t *CType) SizeOf() int {
	switch t.Kind {
	case KInt:
		return int(t.Size)
	case KPointer:
		return 8
	case KArray:
		n := uint64(0)
		if t.ArrayLen != nil {
			n = *t.ArrayLen
		}
		return t.Elem.SizeOf() * int(n)
	case KStruct:
		size := 0
		for _, m := range t.Members {
			end := m.Offset + m.Type.SizeOf()
			if end > size {
				size = end
			}
		}
		return Align(size, t.Alignment())
	default:
		return 0
	}
}

func (t *CType) Alignment() int {
	switch t.Kind {
	case KInt:
		return int(t.Size)
	case KPointer:
		return 8
	case KArray:
		return t.Elem.Alignment()
	case KStruct:
		max := 1
		for _, m := range t.Members {
			if a := m.Type.Alignment(); a > max {
				max = a
			}
		}
		return max
	default:
		return 1
	}
}

func Align(n, to int) int {
	if to <= 1 {
		return n
	}
	return (n + to - 1) &^ (to - 1)
}

// Compatible implements the loose compatibility check the generator
// uses for assignment, comparison and call-argument checking: same
// kind, same signedness for integral types, recursively-compatible
// pointees/returns/params.
func (t *CType) Compatible(other *CType) bool {
	if t == nil || other == nil {
		return false
	}
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KVoid:
		return true
	case KInt:
		return t.Size == other.Size && t.Signed == other.Signed
	case KPointer:
		if t.Elem.IsVoid() || other.Elem.IsVoid() {
			return true
		}
		return t.Elem.Compatible(other.Elem)
	case KArray:
		return t.Elem.Compatible(other.Elem)
	case KFunction:
		if !t.Ret.Compatible(other.Ret) {
			return false
		}
		if len(t.Params) != len(other.Params) {
			return false
		}
		for i := range t.Params {
			if !t.Params[i].Compatible(other.Params[i]) {
				return false
			}
		}
		return true
	case KStruct:
		return t.Tag == other.Tag
	}
	return false
}

func (t *CType) String() string {
	switch t.Kind {
	case KVoid:
		return "void"
	case KInt:
		sign := "signed"
		if !t.Signed {
			sign = "unsigned"
		}
		if t.Bool {
			return "_Bool"
		}
		return fmt.Sprintf("%s int%d", sign, t.Size*8)
	case KPointer:
		return t.Elem.String() + "*"
	case KArray:
		if t.ArrayLen != nil {
			return fmt.Sprintf("%s[%d]", t.Elem.String(), *t.ArrayLen)
		}
		return t.Elem.String() + "[]"
	case KFunction:
		return fmt.Sprintf("%s(...)", t.Ret.String())
	case KStruct:
		return "struct " + t.Tag
	}
	return "?"
}

// Promote implements integer promotion: every integer type with rank
// below int32 (including _Bool) promotes to Int32; everything else is
// unchanged. Pointers and Int64/UInt64 are left alone.
func Promote(t *CType) *CType {
	if t.Kind != KInt {
		return t
	}
	if t.Size < Int32.Size {
		return Int32
	}
	return t
}

// UsualArithmeticConversion implements the table in the usual
// arithmetic conversions: both operands promote, then the wider type
// wins; on a tie, the unsigned type wins. Repeated application is a
// no-op (arith_conv(t,t) settles at max(t, int32 signed)), and the
// result is independent of argument order.
func UsualArithmeticConversion(a, b *CType) *CType {
	pa, pb := Promote(a), Promote(b)
	if pa.Size > pb.Size {
		return pa
	}
	if pb.Size > pa.Size {
		return pb
	}
	if !pa.Signed {
		return pa
	}
	if !pb.Signed {
		return pb
	}
	return pa
}
