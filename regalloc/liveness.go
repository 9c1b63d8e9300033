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

// Package regalloc implements liveness/interference analysis,
// home-spot pre-allocation and the iterated George-Appel
// graph-coloring register allocator.
package regalloc

import "cmini/il"

// Liveness holds, for every command index in a function, the set of
// values live immediately after that command executes.
type Liveness struct {
	LiveOut []map[*il.Value]bool
}

// successors returns the indices of commands that may execute right
// after cmds[i]: the textual successor (unless i is a Return or an
// unconditional Jump) plus every labeled target it can branch to.
func successors(cmds []il.Command, i int) []int {
	labelIndex := map[string]int{}
	for j, c := range cmds {
		if name := c.LabelName(); name != "" {
			labelIndex[name] = j
		}
	}
	var succs []int
	if _, isJump := cmds[i].(*il.Jump); !isJump {
		if _, isRet := cmds[i].(*il.Return); !isRet {
			if i+1 < len(cmds) {
				succs = append(succs, i+1)
			}
		}
	}
	for _, t := range cmds[i].Targets() {
		if j, ok := labelIndex[t]; ok {
			succs = append(succs, j)
		}
	}
	return succs
}

// ComputeLiveness runs the backward dataflow fixed point described by
// live_in = (live_out \ outputs) u inputs, with live_out at a command
// defined as the union of live_in over its successors. Indirect reads
// count as ordinary inputs for liveness purposes (the pointed-to value
// itself isn't tracked, but the pointer operand must stay live).
func ComputeLiveness(cmds []il.Command) *Liveness {
	n := len(cmds)
	liveIn := make([]map[*il.Value]bool, n)
	liveOut := make([]map[*il.Value]bool, n)
	for i := range cmds {
		liveIn[i] = map[*il.Value]bool{}
		liveOut[i] = map[*il.Value]bool{}
	}

	changed := true
	for changed {
		changed = false
		for i := n - 1; i >= 0; i-- {
			newOut := map[*il.Value]bool{}
			for _, s := range successors(cmds, i) {
				for v := range liveIn[s] {
					newOut[v] = true
				}
			}
			newIn := map[*il.Value]bool{}
			for v := range newOut {
				newIn[v] = true
			}
			for _, out := range cmds[i].Outputs() {
				delete(newIn, out)
			}
			for _, in := range cmds[i].Inputs() {
				if in.IsLiteral() {
					continue
				}
				newIn[in] = true
			}
			if !setEqual(newIn, liveIn[i]) {
				liveIn[i] = newIn
				changed = true
			}
			if !setEqual(newOut, liveOut[i]) {
				liveOut[i] = newOut
				changed = true
			}
		}
	}
	return &Liveness{LiveOut: liveOut}
}

func setEqual(a, b map[*il.Value]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for v := range a {
		if !b[v] {
			return false
		}
	}
	return true
}

// VerifyLiveness re-runs the fixed point on the same command list and
// checks it reproduces an identical LiveOut set at every index,
// exercising the monotonicity property: liveness is a function of the
// command list alone, not of iteration order.
func VerifyLiveness(cmds []il.Command, l *Liveness) bool {
	again := ComputeLiveness(cmds)
	if len(again.LiveOut) != len(l.LiveOut) {
		return false
	}
	for i := range l.LiveOut {
		if !setEqual(l.LiveOut[i], again.LiveOut[i]) {
			return false
		}
	}
	return true
}

// Interferes reports whether a and b are ever simultaneously live with
// at least one of them being written at that point -- the standard
// "live at a definition" interference rule, consulted while building
// the conflict graph.
func Interferes(cmds []il.Command, l *Liveness, a, b *il.Value) bool {
	if a == b {
		return false
	}
	for i, c := range cmds {
		for _, out := range c.Outputs() {
			if out == a && l.LiveOut[i][b] {
				return true
			}
			if out == b && l.LiveOut[i][a] {
				return true
			}
		}
	}
	return false
}
