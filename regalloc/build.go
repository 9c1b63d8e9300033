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

import "cmini/il"

// BuildGraph constructs the conflict/preference graph for fn: one
// node per free (non-homed) value plus the fixed pseudo-nodes for
// every allocatable register, conflict edges from interference
// (liveness) and from each command's relative/absolute conflict
// contracts, and preference edges from each command's relative/
// absolute preference contracts.
func BuildGraph(fn *il.Function, liveness *Liveness, home HomeMap) *NodeGraph {
	g := NewNodeGraph()

	isFree := func(v *il.Value) bool {
		if v == nil || v.IsLiteral() {
			return false
		}
		_, homed := home[v]
		return !homed
	}

	var free []*il.Value
	seen := map[*il.Value]bool{}
	record := func(v *il.Value) {
		if isFree(v) && !seen[v] {
			seen[v] = true
			free = append(free, v)
		}
	}
	for _, c := range fn.Commands {
		for _, v := range c.Inputs() {
			record(v)
		}
		for _, v := range c.Outputs() {
			record(v)
		}
	}
	for _, p := range fn.Params {
		record(p)
	}
	for _, v := range free {
		g.NodeFor(v)
	}

	// interference conflicts
	for i := 0; i < len(free); i++ {
		for j := i + 1; j < len(free); j++ {
			if Interferes(fn.Commands, liveness, free[i], free[j]) {
				g.AddConflict(g.NodeFor(free[i]), g.NodeFor(free[j]))
			}
		}
	}

	for i, c := range fn.Commands {
		for _, clob := range c.Clobber() {
			r, ok := clob.(il.RegSpot)
			if !ok {
				continue
			}
			regNode := g.NodeForReg(r.Name)
			for v := range liveness.LiveOut[i] {
				if isFree(v) {
					g.AddConflict(regNode, g.NodeFor(v))
				}
			}
		}
		for v, others := range c.RelSpotConf() {
			if !isFree(v) {
				continue
			}
			for _, o := range others {
				if isFree(o) {
					g.AddConflict(g.NodeFor(v), g.NodeFor(o))
				}
			}
		}
		for v, regs := range c.AbsSpotConf() {
			if !isFree(v) {
				continue
			}
			for _, s := range regs {
				if r, ok := s.(il.RegSpot); ok {
					g.AddConflict(g.NodeFor(v), g.NodeForReg(r.Name))
				}
			}
		}
		for v, others := range c.RelSpotPref() {
			if !isFree(v) {
				continue
			}
			for _, o := range others {
				if isFree(o) {
					g.AddPref(g.NodeFor(v), g.NodeFor(o))
				}
			}
		}
		for v, regs := range c.AbsSpotPref() {
			if !isFree(v) {
				continue
			}
			for _, s := range regs {
				if r, ok := s.(il.RegSpot); ok {
					g.AddPref(g.NodeFor(v), g.NodeForReg(r.Name))
				}
			}
		}
	}
	return g
}
