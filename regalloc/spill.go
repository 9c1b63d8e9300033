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

import "errors"

// ErrSpillRequired is the error Allocate passes on if reduceToStack
// fails. reduceToStack never produces it: every node it cannot
// simplify, coalesce or freeze is taken as a spill candidate, and
// Allocate gives each spilled node a stack slot.
var ErrSpillRequired = errors.New("register allocation failed: spill required")

// reduceToStack runs simplify/coalesce/freeze/spill to a fixed point,
// returning the simplify order (values to color, highest-pushed
// first popped last i.e. reverse of push order is the correct color
// order) and the nodes taken as spill candidates; its error result is
// always nil.
func reduceToStack(g *NodeGraph) ([]nodeID, []nodeID, error) {
	var stack []nodeID
	var spilled []nodeID

	for {
		simplifyAll(g, &stack)
		if coalesceOnce(g) {
			continue
		}
		if len(g.AllNonPseudo()) == 0 {
			break
		}
		if freezeOnce(g) {
			continue
		}
		// Nothing simplifies, nothing coalesces, nothing to freeze:
		// pick the remaining node with the highest conflict degree as
		// the spill candidate and push it onto the stack; Allocate
		// gives every spilled node a fresh stack slot, never a
		// register.
		candidates := g.AllNonPseudo()
		if len(candidates) == 0 {
			break
		}
		best := candidates[0]
		for _, id := range candidates[1:] {
			if g.Degree(id) > g.Degree(best) {
				best = id
			}
		}
		spilled = append(spilled, best)
		stack = append(stack, best)
		g.Pop(best)
	}
	return stack, spilled, nil
}
