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

// Set converts Src into Dst's type: widen (possibly sign-extending),
// narrow (truncate) or normalize to 0/1 when Dst is _Bool. This is the
// only command that may change a value's size or signedness; every
// other arithmetic/comparison command requires same-size operands.
type Set struct {
	Base
	Dst, Src       *Value
	DstSize, SrcSize int
	SignExtend     bool // widen with sign extension rather than zero extension
	Bool           bool // normalize any nonzero Src to 1
}

func NewSet(dst, src *Value, dstSize, srcSize int, signExtend, boolNorm bool) Command {
	return &Set{Dst: dst, Src: src, DstSize: dstSize, SrcSize: srcSize, SignExtend: signExtend, Bool: boolNorm}
}

func (c *Set) Inputs() []*Value  { return []*Value{c.Src} }
func (c *Set) Outputs() []*Value { return []*Value{c.Dst} }
func (c *Set) RelSpotPref() map[*Value][]*Value {
	if c.DstSize == c.SrcSize && !c.Bool {
		return map[*Value][]*Value{c.Dst: {c.Src}}
	}
	return nil
}
func (c *Set) String() string { return fmt.Sprintf("%s = set %s", ref(c.Dst), ref(c.Src)) }

func (c *Set) Lower(spots SpotMap, sink AsmSink) {
	src, dst := spots[c.Src], spots[c.Dst]
	if c.Bool {
		sink.Cmp(c.SrcSize, LiteralSpot{0}, src)
		sink.SetCC("ne", dst)
		return
	}
	if c.DstSize <= c.SrcSize {
		if dst != src {
			sink.Mov(c.DstSize, src, dst)
		}
		return
	}
	sink.MovExtend(c.DstSize, c.SrcSize, src, dst, c.SignExtend)
}
