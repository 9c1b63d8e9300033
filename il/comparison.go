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

// cmpOp lowers to a zeroing mov + cmp + setCC, producing a 0/1 result
// across Dst's low 32 bits. Dst is written before the cmp reads A and
// B, which is why it relative-conflicts with both inputs.
type cmpOp struct {
	Base
	CC        string // "e","ne","l","g","le","ge" (signed) or "b","a","be","ae" (unsigned)
	Dst, A, B *Value
	Size      int
}

func newCmp(cc string, dst, a, b *Value, size int) Command {
	return &cmpOp{CC: cc, Dst: dst, A: a, B: b, Size: size}
}

func NewEqualCmp(dst, a, b *Value, size int) Command    { return newCmp("e", dst, a, b, size) }
func NewNotEqualCmp(dst, a, b *Value, size int) Command { return newCmp("ne", dst, a, b, size) }
func NewLessCmp(dst, a, b *Value, size int, signed bool) Command {
	if signed {
		return newCmp("l", dst, a, b, size)
	}
	return newCmp("b", dst, a, b, size)
}
func NewGreaterCmp(dst, a, b *Value, size int, signed bool) Command {
	if signed {
		return newCmp("g", dst, a, b, size)
	}
	return newCmp("a", dst, a, b, size)
}
func NewLessOrEqCmp(dst, a, b *Value, size int, signed bool) Command {
	if signed {
		return newCmp("le", dst, a, b, size)
	}
	return newCmp("be", dst, a, b, size)
}
func NewGreaterOrEqCmp(dst, a, b *Value, size int, signed bool) Command {
	if signed {
		return newCmp("ge", dst, a, b, size)
	}
	return newCmp("ae", dst, a, b, size)
}

func (c *cmpOp) Inputs() []*Value  { return []*Value{c.A, c.B} }
func (c *cmpOp) Outputs() []*Value { return []*Value{c.Dst} }
func (c *cmpOp) RelSpotConf() map[*Value][]*Value {
	return map[*Value][]*Value{c.Dst: {c.A, c.B}}
}
func (c *cmpOp) String() string { return fmt.Sprintf("%s = %s cmp.%s %s", ref(c.Dst), ref(c.A), c.CC, ref(c.B)) }

func (c *cmpOp) Lower(spots SpotMap, sink AsmSink) {
	a, b, dst := spots[c.A], spots[c.B], spots[c.Dst]
	sink.Mov(4, LiteralSpot{0}, dst)
	sink.Cmp(c.Size, b, a)
	sink.SetCC(c.CC, dst)
}
