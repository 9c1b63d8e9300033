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

// binOp is shared shape for Add/Sub/Mul: dst = a <op> b, all same size.
type binOp struct {
	Base
	Op       string // "add", "sub", "imul"
	Dst, A, B *Value
	Size     int
}

func NewAdd(dst, a, b *Value, size int) Command { return &binOp{Op: "add", Dst: dst, A: a, B: b, Size: size} }
func NewSub(dst, a, b *Value, size int) Command { return &binOp{Op: "sub", Dst: dst, A: a, B: b, Size: size} }
func NewMul(dst, a, b *Value, size int) Command { return &binOp{Op: "imul", Dst: dst, A: a, B: b, Size: size} }

// NewAnd/NewOr/NewXor share binOp's dst=a;dst op=b shape exactly --
// the bitwise instructions take the same two-operand form as add/sub
// on x86, so no separate command type earns its keep here.
func NewAnd(dst, a, b *Value, size int) Command { return &binOp{Op: "and", Dst: dst, A: a, B: b, Size: size} }
func NewOr(dst, a, b *Value, size int) Command  { return &binOp{Op: "or", Dst: dst, A: a, B: b, Size: size} }
func NewXor(dst, a, b *Value, size int) Command { return &binOp{Op: "xor", Dst: dst, A: a, B: b, Size: size} }

func (c *binOp) Inputs() []*Value  { return []*Value{c.A, c.B} }
func (c *binOp) Outputs() []*Value { return []*Value{c.Dst} }
func (c *binOp) RelSpotPref() map[*Value][]*Value {
	return map[*Value][]*Value{c.Dst: {c.A}}
}
func (c *binOp) String() string { return fmt.Sprintf("%s = %s %s %s", ref(c.Dst), ref(c.A), c.Op, ref(c.B)) }

func (c *binOp) Lower(spots SpotMap, sink AsmSink) {
	dst, a, b := spots[c.Dst], spots[c.A], spots[c.B]
	if dst != a {
		sink.Mov(c.Size, a, dst)
	}
	sink.Binary(c.Op, c.Size, b, dst)
}

// Div/Mod share the x86 idiv instruction: RDX:RAX / divisor -> quotient
// in RAX, remainder in RDX. Both operands must therefore sit exactly
// where idiv expects them; the allocator is steered there by the
// absolute preferences below, and RDX is always clobbered (idiv
// requires it zero/sign-extended from RAX via Cqto before the divide).
type divOp struct {
	Base
	Mod      bool
	Dst, A, B *Value
	Size     int
	Signed   bool
}

func NewDiv(dst, a, b *Value, size int, signed bool) Command {
	return &divOp{Dst: dst, A: a, B: b, Size: size, Signed: signed}
}
func NewMod(dst, a, b *Value, size int, signed bool) Command {
	return &divOp{Mod: true, Dst: dst, A: a, B: b, Size: size, Signed: signed}
}

func (c *divOp) Inputs() []*Value  { return []*Value{c.A, c.B} }
func (c *divOp) Outputs() []*Value { return []*Value{c.Dst} }
func (c *divOp) Clobber() []Spot   { return []Spot{RegSpot{RAX}, RegSpot{RDX}} }
func (c *divOp) AbsSpotPref() map[*Value][]Spot {
	result := c.Dst
	if c.Mod {
		return map[*Value][]Spot{c.A: {RegSpot{RAX}}, result: {RegSpot{RDX}}}
	}
	return map[*Value][]Spot{c.A: {RegSpot{RAX}}, result: {RegSpot{RAX}}}
}
func (c *divOp) String() string {
	op := "div"
	if c.Mod {
		op = "mod"
	}
	return fmt.Sprintf("%s = %s %s %s", ref(c.Dst), ref(c.A), op, ref(c.B))
}

func (c *divOp) Lower(spots SpotMap, sink AsmSink) {
	a, b, dst := spots[c.A], spots[c.B], spots[c.Dst]
	if a != (RegSpot{RAX}) {
		sink.Mov(c.Size, a, RegSpot{RAX})
	}
	sink.Cqto(c.Size)
	divisor := b
	if _, isLit := b.(LiteralSpot); isLit {
		// idiv cannot take an immediate operand; applyBinOp stages a
		// literal divisor into a non-literal Value before emitting
		// Div/Mod, so b is never a LiteralSpot here.
		divisor = b
	}
	sink.IDiv(c.Size, divisor)
	want := RegSpot{RAX}
	if c.Mod {
		want = RegSpot{RDX}
	}
	if dst != want {
		sink.Mov(c.Size, want, dst)
	}
}

// unaryOp is shared shape for Neg/Not: dst = <op> a.
type unaryOp struct {
	Base
	Op       string
	Dst, A   *Value
	Size     int
}

func NewNeg(dst, a *Value, size int) Command { return &unaryOp{Op: "neg", Dst: dst, A: a, Size: size} }
func NewNot(dst, a *Value, size int) Command { return &unaryOp{Op: "not", Dst: dst, A: a, Size: size} }

func (c *unaryOp) Inputs() []*Value  { return []*Value{c.A} }
func (c *unaryOp) Outputs() []*Value { return []*Value{c.Dst} }
func (c *unaryOp) RelSpotPref() map[*Value][]*Value {
	return map[*Value][]*Value{c.Dst: {c.A}}
}
func (c *unaryOp) String() string { return fmt.Sprintf("%s = %s %s", ref(c.Dst), c.Op, ref(c.A)) }

func (c *unaryOp) Lower(spots SpotMap, sink AsmSink) {
	dst, a := spots[c.Dst], spots[c.A]
	if dst != a {
		sink.Mov(c.Size, a, dst)
	}
	sink.Unary(c.Op, c.Size, dst)
}

// shiftOp models << and >>: the shift count must be in CL (the 8-bit
// alias of RCX) on x86, so RCX is absolute-preferred and clobbered the
// way RAX and RDX are for idiv.
type shiftOp struct {
	Base
	Left       bool
	Dst, A, N  *Value
	Size       int
	Arithmetic bool // true for signed (sar), false for unsigned (shr)
}

func NewLShift(dst, a, n *Value, size int) Command {
	return &shiftOp{Left: true, Dst: dst, A: a, N: n, Size: size}
}
func NewRShift(dst, a, n *Value, size int, arith bool) Command {
	return &shiftOp{Dst: dst, A: a, N: n, Size: size, Arithmetic: arith}
}

func (c *shiftOp) Inputs() []*Value  { return []*Value{c.A, c.N} }
func (c *shiftOp) Outputs() []*Value { return []*Value{c.Dst} }
func (c *shiftOp) Clobber() []Spot   { return []Spot{RegSpot{RCX}} }
func (c *shiftOp) AbsSpotPref() map[*Value][]Spot {
	return map[*Value][]Spot{c.N: {RegSpot{RCX}}}
}
func (c *shiftOp) RelSpotPref() map[*Value][]*Value {
	return map[*Value][]*Value{c.Dst: {c.A}}
}
func (c *shiftOp) String() string {
	op := ">>"
	if c.Left {
		op = "<<"
	}
	return fmt.Sprintf("%s = %s %s %s", ref(c.Dst), ref(c.A), op, ref(c.N))
}

func (c *shiftOp) Lower(spots SpotMap, sink AsmSink) {
	dst, a, n := spots[c.Dst], spots[c.A], spots[c.N]
	if dst != a {
		sink.Mov(c.Size, a, dst)
	}
	if n != (RegSpot{RCX}) {
		sink.Mov(8, n, RegSpot{RCX})
	}
	op := "shl"
	if !c.Left {
		if c.Arithmetic {
			op = "sar"
		} else {
			op = "shr"
		}
	}
	sink.Binary(op, c.Size, RegSpot{RCX}, dst)
}

func ref(v *Value) string {
	if v == nil {
		return "_"
	}
	if v.Literal != nil {
		return fmt.Sprintf("$%d", *v.Literal)
	}
	return fmt.Sprintf("v%d", v.ID())
}
