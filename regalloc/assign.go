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

// Stats mirrors shivyc's reg-alloc performance counters, surfaced by
// the --z-reg-alloc-perf CLI flag.
type Stats struct {
	TotalValues      int
	RegisterResident int
	TotalPrefs       int
	MatchedPrefs     int
}

// Allocate runs the full simplify/coalesce/freeze/spill iteration on
// fn and returns the final value->Spot assignment. Values pinned to a
// HomeMap entry are assigned their home memory spot directly and never
// enter the graph; literal values are assigned a LiteralSpot; every
// other free value is colored with one of the AllocatableRegs or,
// failing that, a fresh 8-byte stack slot at the next RBP-negative
// offset below the home-spot frame region.
func Allocate(fn *il.Function, liveness *Liveness, home HomeMap, frameSize int64) (il.SpotMap, *Stats, error) {
	g := BuildGraph(fn, liveness, home)
	original := g.Copy()

	// record preferences before coalescing destroys the edges, for stats
	totalPrefs := 0
	for _, id := range original.AllNonPseudo() {
		totalPrefs += len(original.Prefs(id))
	}

	stack, spilled, err := reduceToStack(g)
	if err != nil {
		return nil, nil, err
	}
	spillSet := map[nodeID]bool{}
	for _, id := range spilled {
		spillSet[id] = true
	}

	colorOf := map[nodeID]il.Spot{}
	for id, reg := range original.regOf {
		colorOf[id] = il.RegSpot{Name: reg}
	}

	nextSlot := frameSize
	// color in reverse simplify order: last pushed, first colored
	for i := len(stack) - 1; i >= 0; i-- {
		id := stack[i]
		used := map[il.RegName]bool{}
		for _, n := range original.Conflicts(id) {
			if c, ok := colorOf[n]; ok {
				if r, isReg := c.(il.RegSpot); isReg {
					used[r.Name] = true
				}
			}
		}
		// preferred register, if free
		assigned := false
		if !spillSet[id] {
			for _, p := range original.Prefs(id) {
				if c, ok := colorOf[p]; ok {
					if r, isReg := c.(il.RegSpot); isReg && !used[r.Name] {
						colorOf[id] = r
						assigned = true
						break
					}
				}
			}
		}
		if !assigned && !spillSet[id] {
			for _, r := range il.AllocatableRegs {
				if !used[r] {
					colorOf[id] = il.RegSpot{Name: r}
					assigned = true
					break
				}
			}
		}
		if !assigned {
			nextSlot += 8
			colorOf[id] = il.NewMemSpot(il.RegSpot{Name: il.RBP}, -nextSlot)
		}
	}

	spots := il.SpotMap{}
	for v, slot := range home {
		spots[v] = slot
	}
	matched := 0
	resident := 0
	total := 0
	for v, id := range original.values {
		total++
		if c, ok := colorOf[id]; ok {
			spots[v] = c
			if _, isReg := c.(il.RegSpot); isReg {
				resident++
			}
		}
	}
	for _, c := range fn.Commands {
		for _, v := range c.Inputs() {
			if v != nil && v.IsLiteral() {
				spots[v] = il.LiteralSpot{Value: *v.Literal}
			}
		}
	}
	for _, id := range original.AllNonPseudo() {
		color, ok := colorOf[id]
		if !ok {
			continue
		}
		reg, isReg := color.(il.RegSpot)
		if !isReg {
			continue
		}
		for _, p := range original.Prefs(id) {
			if c, ok := colorOf[p]; ok {
				if r, isR := c.(il.RegSpot); isR && r.Name == reg.Name {
					matched++
				}
			}
		}
	}

	stats := &Stats{TotalValues: total + len(home), RegisterResident: resident, TotalPrefs: totalPrefs, MatchedPrefs: matched / 2}
	return spots, stats, nil
}
