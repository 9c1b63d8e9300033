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

// coalesce.go implements the simplify/coalesce/freeze trio of the
// iterated George-Appel allocator: repeatedly remove low-degree nodes
// (simplify), merge preference-connected nodes the George heuristic
// judges safe (coalesce), and when neither applies, drop a node's
// preference edges to unstick the process (freeze) before resorting
// to a spill.
package regalloc

import "github.com/samber/lo"

const numColors = 9 // len(il.AllocatableRegs); see spot.go

// simplifyOnce removes one non-pseudo node of degree < K with no
// remaining preference edges, pushing it onto the stack. Returns false
// if no such node exists.
func simplifyOnce(g *NodeGraph, stack *[]nodeID) bool {
	for _, id := range g.AllNonPseudo() {
		if g.Degree(id) < numColors && len(g.Prefs(id)) == 0 {
			*stack = append(*stack, id)
			g.Pop(id)
			return true
		}
	}
	return false
}

func simplifyAll(g *NodeGraph, stack *[]nodeID) {
	for simplifyOnce(g, stack) {
	}
}

// georgeSafe implements George's coalescing test: merging `from` into
// `into` is safe if every neighbor of `from` either already conflicts
// with `into` or has degree < K (so it will simplify away regardless).
func georgeSafe(g *NodeGraph, into, from nodeID) bool {
	intoConflicts := g.conflict[into]
	for _, n := range g.Conflicts(from) {
		if intoConflicts[n] {
			continue
		}
		if g.Degree(n) < numColors {
			continue
		}
		return false
	}
	return true
}

// coalesceOnce finds one preference edge safe to merge (preferring to
// fold a free value into a pseudo/register node, which is what lets a
// Call argument or LoadArg land directly in its ABI register with no
// extra move) and performs it. Returns false if none remain.
func coalesceOnce(g *NodeGraph) bool {
	for _, a := range lo.Keys(g.pref) {
		for _, b := range g.Prefs(a) {
			if g.conflict[a][b] {
				continue
			}
			if g.IsPseudo(a) && !g.IsPseudo(b) {
				if georgeSafe(g, a, b) {
					g.Merge(a, b)
					return true
				}
			} else if g.IsPseudo(b) && !g.IsPseudo(a) {
				if georgeSafe(g, b, a) {
					g.Merge(b, a)
					return true
				}
			} else if !g.IsPseudo(a) && !g.IsPseudo(b) {
				// Briggs test: the merged node's degree (counting only
				// neighbors of degree >= K) must itself be < K.
				if briggsSafe(g, a, b) {
					g.Merge(a, b)
					return true
				}
			}
		}
	}
	return false
}

func briggsSafe(g *NodeGraph, a, b nodeID) bool {
	high := 0
	seen := map[nodeID]bool{}
	count := func(id nodeID) {
		for _, n := range g.Conflicts(id) {
			if n == a || n == b || seen[n] {
				continue
			}
			seen[n] = true
			if g.Degree(n) >= numColors {
				high++
			}
		}
	}
	count(a)
	count(b)
	return high < numColors
}

func coalesceAll(g *NodeGraph) {
	for coalesceOnce(g) {
	}
}

// freezeOnce drops every preference edge of the lowest-degree
// non-pseudo node that still has one, letting simplify make progress
// again. Returns false if no node has any preference edges left.
func freezeOnce(g *NodeGraph) bool {
	best := nodeID(-1)
	bestDeg := -1
	for _, id := range g.AllNonPseudo() {
		if len(g.Prefs(id)) == 0 {
			continue
		}
		if best == -1 || g.Degree(id) < bestDeg {
			best, bestDeg = id, g.Degree(id)
		}
	}
	if best == -1 {
		return false
	}
	for _, b := range g.Prefs(best) {
		g.RemovePref(best, b)
	}
	return true
}
