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
package regalloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cmini/ctype"
	"cmini/il"
)

func sizeOf(v *il.Value) int {
	if v.CType == nil {
		return 8
	}
	return v.CType.SizeOf()
}

func TestComputeHomeSpotsPinsAddressTaken(t *testing.T) {
	prog := il.NewProgram()
	x := prog.NewValue(ctype.Int32)
	ptr := prog.NewValue(ctype.NewPointer(ctype.Int32))

	fn := &il.Function{Commands: []il.Command{
		il.NewAddrOf(ptr, x),
		il.NewReturn(nil, 0),
	}}

	home, frameSize := ComputeHomeSpots(fn, sizeOf)
	spot, pinned := home[x]
	require.True(t, pinned, "&x must force x to a fixed memory home")
	require.Equal(t, il.RegSpot{Name: il.RBP}, spot.Base)
	require.Greater(t, frameSize, int64(0))
	require.Zero(t, frameSize%16, "frame size must be 16-byte aligned")

	_, ptrPinned := home[ptr]
	require.False(t, ptrPinned, "the pointer itself is an ordinary scalar and stays free")
}

func TestComputeHomeSpotsPinsOversizedValues(t *testing.T) {
	prog := il.NewProgram()
	st := ctype.NewStruct("point3")
	st.Members = []ctype.StructMember{
		{Name: "x", Type: ctype.Int32, Offset: 0},
		{Name: "y", Type: ctype.Int32, Offset: 4},
		{Name: "z", Type: ctype.Int32, Offset: 8},
	}
	st.Complete = true
	v := prog.NewValue(st)
	fn := &il.Function{Commands: []il.Command{
		il.NewReadRel(prog.NewValue(ctype.Int32), v, 0, 4),
	}}

	home, _ := ComputeHomeSpots(fn, sizeOf)
	_, pinned := home[v]
	require.True(t, pinned, "a struct-sized value cannot fit a scalar register and must be homed")
}

func TestComputeHomeSpotsLeavesOrdinaryScalarsFree(t *testing.T) {
	prog := il.NewProgram()
	a := prog.NewValue(ctype.Int32)
	b := prog.NewValue(ctype.Int32)
	fn := &il.Function{Commands: []il.Command{
		il.NewAdd(a, a, b, 4),
		il.NewReturn(a, 4),
	}}

	home, _ := ComputeHomeSpots(fn, sizeOf)
	require.Empty(t, home, "neither value's address is taken nor is either oversized")
}

func TestComputeHomeSpotsIsIdempotentPerValue(t *testing.T) {
	prog := il.NewProgram()
	x := prog.NewValue(ctype.Int32)
	ptr1 := prog.NewValue(ctype.NewPointer(ctype.Int32))
	ptr2 := prog.NewValue(ctype.NewPointer(ctype.Int32))
	fn := &il.Function{Commands: []il.Command{
		il.NewAddrOf(ptr1, x),
		il.NewAddrOf(ptr2, x),
		il.NewReturn(nil, 0),
	}}

	home, _ := ComputeHomeSpots(fn, sizeOf)
	require.Len(t, home, 1, "x must get exactly one home slot even though two AddrOf commands reference it")
}
