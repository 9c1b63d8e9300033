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
	"cmini/il"
	"cmini/utils"
)

// HomeMap pins a value to a permanent stack slot -- required whenever
// the value's address is taken (References) or its size can't fit any
// register (structs, oversized arrays).
type HomeMap map[*il.Value]il.MemSpot

// ComputeHomeSpots walks every command of fn, pinning to a frame slot
// any value that is the target of a References edge (its address is
// taken somewhere in the function) or whose CType does not fit a
// scalar register width. It returns the frame-size contribution in
// bytes, 16-byte aligned, matching the System V stack-alignment rule
// at a call boundary.
func ComputeHomeSpots(fn *il.Function, sizeOf func(*il.Value) int) (HomeMap, int64) {
	home := HomeMap{}
	var offset int64

	pin := func(v *il.Value) {
		if _, already := home[v]; already {
			return
		}
		size := int64(sizeOf(v))
		if size < 8 {
			size = 8
		}
		offset += size
		home[v] = il.NewMemSpot(il.RegSpot{Name: il.RBP}, -offset)
	}

	for _, c := range fn.Commands {
		for _, refs := range c.References() {
			for _, v := range refs {
				pin(v)
			}
		}
	}
	for _, c := range fn.Commands {
		for _, v := range c.Outputs() {
			if needsHomeBySize(sizeOf(v)) {
				pin(v)
			}
		}
		for _, v := range c.Inputs() {
			if !v.IsLiteral() && needsHomeBySize(sizeOf(v)) {
				pin(v)
			}
		}
	}
	return home, int64(utils.Align16(int(offset)))
}

func needsHomeBySize(size int) bool {
	switch size {
	case 1, 2, 4, 8:
		return false
	default:
		return true
	}
}
