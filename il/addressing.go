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
package il

import "fmt"

// AddrOf computes &Val. Val must therefore live at a fixed memory
// location for the whole function, which is why it appears in
// References: the home-spot pass pins Val to memory before the
// allocator ever considers giving it a register.
type AddrOf struct {
	Base
	Dst, Val *Value
}

func NewAddrOf(dst, val *Value) Command { return &AddrOf{Dst: dst, Val: val} }

func (c *AddrOf) Outputs() []*Value { return []*Value{c.Dst} }
func (c *AddrOf) References() map[*Value][]*Value {
	return map[*Value][]*Value{c.Dst: {c.Val}}
}
func (c *AddrOf) String() string { return fmt.Sprintf("%s = &%s", ref(c.Dst), ref(c.Val)) }
func (c *AddrOf) Lower(spots SpotMap, sink AsmSink) {
	home := spots[c.Val].(MemSpot)
	sink.Lea(spots[c.Dst], home)
}

// ReadAt loads *Ptr into Dst; SetAt stores Src into *Ptr. Both read
// or write through a dynamic pointer value rather than a statically
// known memory location, so they cannot be scheduled against a
// pinned home spot the way Relative forms can. They report Ptr through
// IndirRead/IndirWrite; liveness tracks only Ptr itself, as an
// ordinary input, and does not model the pointed-to storage.
type ReadAt struct {
	Base
	Dst, Ptr *Value
	Size     int
}

func NewReadAt(dst, ptr *Value, size int) Command { return &ReadAt{Dst: dst, Ptr: ptr, Size: size} }
func (c *ReadAt) Inputs() []*Value                { return []*Value{c.Ptr} }
func (c *ReadAt) Outputs() []*Value               { return []*Value{c.Dst} }
func (c *ReadAt) IndirRead() []*Value              { return []*Value{c.Ptr} }
func (c *ReadAt) String() string                   { return fmt.Sprintf("%s = *%s", ref(c.Dst), ref(c.Ptr)) }
func (c *ReadAt) Lower(spots SpotMap, sink AsmSink) {
	ptr, dst := spots[c.Ptr], spots[c.Dst]
	sink.Mov(c.Size, MemSpot{Base: mustReg(ptr), Offset: 0}, dst)
}

type SetAt struct {
	Base
	Ptr, Src *Value
	Size     int
}

func NewSetAt(ptr, src *Value, size int) Command { return &SetAt{Ptr: ptr, Src: src, Size: size} }
func (c *SetAt) Inputs() []*Value                { return []*Value{c.Ptr, c.Src} }
func (c *SetAt) IndirWrite() []*Value            { return []*Value{c.Ptr} }
func (c *SetAt) String() string                  { return fmt.Sprintf("*%s = %s", ref(c.Ptr), ref(c.Src)) }
func (c *SetAt) Lower(spots SpotMap, sink AsmSink) {
	ptr, src := spots[c.Ptr], spots[c.Src]
	sink.Mov(c.Size, src, MemSpot{Base: mustReg(ptr), Offset: 0})
}

// ReadRel/SetRel/AddrRel address a statically-known offset from Base
// (a struct member, an array element at a constant index, or a
// by-value composite move). When Size exceeds 8 bytes they lower as a
// sequence of chunked moves, largest chunk first, matching the
// maximal-chunk composite mover.
type ReadRel struct {
	Base
	Dst, BaseVal *Value
	Offset       int64
	Size         int
}

func NewReadRel(dst, base *Value, offset int64, size int) Command {
	return &ReadRel{Dst: dst, BaseVal: base, Offset: offset, Size: size}
}
func (c *ReadRel) Inputs() []*Value  { return []*Value{c.BaseVal} }
func (c *ReadRel) Outputs() []*Value { return []*Value{c.Dst} }
func (c *ReadRel) String() string {
	return fmt.Sprintf("%s = %s[%d]", ref(c.Dst), ref(c.BaseVal), c.Offset)
}
func (c *ReadRel) Lower(spots SpotMap, sink AsmSink) {
	base := spots[c.BaseVal].(MemSpot)
	src := MemSpot{Base: base.Base, Offset: base.Offset + c.Offset}
	lowerChunkedMov(sink, src, spots[c.Dst], c.Size, true)
}

type SetRel struct {
	Base
	BaseVal, Src *Value
	Offset       int64
	Size         int
}

func NewSetRel(base, src *Value, offset int64, size int) Command {
	return &SetRel{BaseVal: base, Src: src, Offset: offset, Size: size}
}
func (c *SetRel) Inputs() []*Value { return []*Value{c.BaseVal, c.Src} }
func (c *SetRel) String() string {
	return fmt.Sprintf("%s[%d] = %s", ref(c.BaseVal), c.Offset, ref(c.Src))
}
func (c *SetRel) Lower(spots SpotMap, sink AsmSink) {
	base := spots[c.BaseVal].(MemSpot)
	dst := MemSpot{Base: base.Base, Offset: base.Offset + c.Offset}
	lowerChunkedMov(sink, spots[c.Src], dst, c.Size, false)
}

type AddrRel struct {
	Base
	Dst, BaseVal *Value
	Offset       int64
}

func NewAddrRel(dst, base *Value, offset int64) Command { return &AddrRel{Dst: dst, BaseVal: base, Offset: offset} }
func (c *AddrRel) Inputs() []*Value                     { return []*Value{c.BaseVal} }
func (c *AddrRel) Outputs() []*Value                    { return []*Value{c.Dst} }
func (c *AddrRel) String() string {
	return fmt.Sprintf("%s = &%s[%d]", ref(c.Dst), ref(c.BaseVal), c.Offset)
}
func (c *AddrRel) Lower(spots SpotMap, sink AsmSink) {
	base := spots[c.BaseVal].(MemSpot)
	src := MemSpot{Base: base.Base, Offset: base.Offset + c.Offset}
	sink.Lea(spots[c.Dst], src)
}

func mustReg(s Spot) interface{} {
	if r, ok := s.(RegSpot); ok {
		return r
	}
	panic("pointer value not resident in a register at lowering time")
}

// lowerChunkedMov copies Size bytes between a memory operand and a
// Spot (the other side is always either a register-resident scalar,
// for Size<=8, or itself memory, for a composite by-value move) using
// the largest chunk (8,4,2,1 bytes) that does not exceed the bytes
// still to copy, the maximal-chunk strategy.
func lowerChunkedMov(sink AsmSink, src interface{}, dst interface{}, size int, memToReg bool) {
	if size <= 8 {
		s, _ := src.(Spot)
		d, _ := dst.(Spot)
		sink.Mov(size, s, d)
		return
	}
	srcMem := src.(MemSpot)
	dstMem := dst.(MemSpot)
	remaining := int64(size)
	off := int64(0)
	for remaining > 0 {
		chunk := int64(1)
		for _, c := range []int64{8, 4, 2, 1} {
			if remaining >= c {
				chunk = c
				break
			}
		}
		s := MemSpot{Base: srcMem.Base, Offset: srcMem.Offset + off}
		d := MemSpot{Base: dstMem.Base, Offset: dstMem.Offset + off}
		sink.Mov(int(chunk), s, d)
		off += chunk
		remaining -= chunk
	}
}
