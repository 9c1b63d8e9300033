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

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cmini/ctype"
)

func TestBinOpLowerSkipsRedundantMov(t *testing.T) {
	var c valueCounter
	dst := c.NewValue(ctype.Int32)
	b := c.NewValue(ctype.Int32)

	spots := SpotMap{dst: RegSpot{RAX}, b: RegSpot{RCX}}
	sink := &recordingSink{}
	NewAdd(dst, dst, b, 4).Lower(spots, sink)
	require.Equal(t, []string{"binary:add"}, sink.ops, "dst already in a,no extra mov should be emitted")
}

func TestBinOpLowerMovesWhenDstDiffersFromA(t *testing.T) {
	var c valueCounter
	dst := c.NewValue(ctype.Int32)
	a := c.NewValue(ctype.Int32)
	b := c.NewValue(ctype.Int32)

	spots := SpotMap{dst: RegSpot{RAX}, a: RegSpot{RCX}, b: RegSpot{RDX}}
	sink := &recordingSink{}
	NewAdd(dst, a, b, 4).Lower(spots, sink)
	require.Equal(t, []string{"mov", "binary:add"}, sink.ops)
}

func TestBitwiseOpsShareBinOpShape(t *testing.T) {
	var c valueCounter
	dst := c.NewValue(ctype.Int32)
	b := c.NewValue(ctype.Int32)
	spots := SpotMap{dst: RegSpot{RAX}, b: RegSpot{RCX}}

	cases := []struct {
		cmd  Command
		want string
	}{
		{NewAnd(dst, dst, b, 4), "and"},
		{NewOr(dst, dst, b, 4), "or"},
		{NewXor(dst, dst, b, 4), "xor"},
	}
	for _, c := range cases {
		sink := &recordingSink{}
		c.cmd.Lower(spots, sink)
		require.Equal(t, []string{"binary:" + c.want}, sink.ops)
	}
}

func TestDivOpPrefersRaxAndRdx(t *testing.T) {
	var c valueCounter
	dst := c.NewValue(ctype.Int32)
	a := c.NewValue(ctype.Int32)
	b := c.NewValue(ctype.Int32)

	div := NewDiv(dst, a, b, 4, true)
	prefs := div.AbsSpotPref()
	require.Equal(t, []Spot{RegSpot{RAX}}, prefs[a])
	require.Equal(t, []Spot{RegSpot{RAX}}, prefs[dst])

	mod := NewMod(dst, a, b, 4, true)
	prefs = mod.AbsSpotPref()
	require.Equal(t, []Spot{RegSpot{RDX}}, prefs[dst])
}

// recordingSink implements AsmSink by recording which operations were
// invoked rather than formatting assembly text, so a Command.Lower
// test can assert on exactly which instructions it chose to emit
// without depending on a particular textual syntax.
type recordingSink struct {
	ops []string
}

func (s *recordingSink) Mov(size int, src, dst Spot) { s.ops = append(s.ops, "mov") }
func (s *recordingSink) MovExtend(dstSize, srcSize int, src, dst Spot, signExtend bool) {
	s.ops = append(s.ops, "movextend")
}
func (s *recordingSink) Lea(dst Spot, src MemSpot) { s.ops = append(s.ops, "lea") }
func (s *recordingSink) Binary(op string, size int, src, dst Spot) {
	s.ops = append(s.ops, "binary:"+op)
}
func (s *recordingSink) Unary(op string, size int, dst Spot) { s.ops = append(s.ops, "unary:"+op) }
func (s *recordingSink) Cmp(size int, a, b Spot)              { s.ops = append(s.ops, "cmp") }
func (s *recordingSink) SetCC(cc string, dst Spot)            { s.ops = append(s.ops, "setcc:"+cc) }
func (s *recordingSink) Jmp(label string)                     { s.ops = append(s.ops, "jmp") }
func (s *recordingSink) JmpCC(cc string, label string)        { s.ops = append(s.ops, "jmpcc:"+cc) }
func (s *recordingSink) Label(name string)                    { s.ops = append(s.ops, "label") }
func (s *recordingSink) Call(target string)                   { s.ops = append(s.ops, "call") }
func (s *recordingSink) Push(sp Spot)                         { s.ops = append(s.ops, "push") }
func (s *recordingSink) Pop(sp Spot)                           { s.ops = append(s.ops, "pop") }
func (s *recordingSink) Ret()                                  { s.ops = append(s.ops, "ret") }
func (s *recordingSink) Cqto(size int)                         { s.ops = append(s.ops, "cqto") }
func (s *recordingSink) IDiv(size int, divisor Spot)           { s.ops = append(s.ops, "idiv") }
func (s *recordingSink) Comment(text string)                  {}
