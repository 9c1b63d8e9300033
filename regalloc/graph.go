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

// graph.go builds the conflict/preference graph the George-Appel
// allocator iterates over. Nodes are either free il.Value temporaries
// or pseudo-nodes standing in for a physical register; pseudo-nodes
// mutually conflict with each other (a register cannot be two
// registers at once) but never get simplified or spilled.
package regalloc

import (
	"sort"

	"cmini/il"

	"github.com/samber/lo"
)

type nodeID int

type NodeGraph struct {
	values   map[*il.Value]nodeID
	byID     map[nodeID]*il.Value // nil for pseudo (register) nodes
	regOf    map[nodeID]il.RegName
	conflict map[nodeID]map[nodeID]bool
	pref     map[nodeID]map[nodeID]bool
	next     nodeID
}

func NewNodeGraph() *NodeGraph {
	g := &NodeGraph{
		values:   map[*il.Value]nodeID{},
		byID:     map[nodeID]*il.Value{},
		regOf:    map[nodeID]il.RegName{},
		conflict: map[nodeID]map[nodeID]bool{},
		pref:     map[nodeID]map[nodeID]bool{},
	}
	for _, r := range il.AllocatableRegs {
		id := g.newNode(nil)
		g.regOf[id] = r
	}
	// every pair of distinct pseudo (register) nodes conflicts
	for a := nodeID(1); a <= nodeID(len(il.AllocatableRegs)); a++ {
		for b := a + 1; b <= nodeID(len(il.AllocatableRegs)); b++ {
			g.addConflict(a, b)
		}
	}
	return g
}

func (g *NodeGraph) newNode(v *il.Value) nodeID {
	g.next++
	id := g.next
	g.byID[id] = v
	g.conflict[id] = map[nodeID]bool{}
	g.pref[id] = map[nodeID]bool{}
	if v != nil {
		g.values[v] = id
	}
	return id
}

func (g *NodeGraph) NodeFor(v *il.Value) nodeID {
	if id, ok := g.values[v]; ok {
		return id
	}
	return g.newNode(v)
}

func (g *NodeGraph) NodeForReg(r il.RegName) nodeID {
	for id, reg := range g.regOf {
		if reg == r {
			return id
		}
	}
	panic("register has no pseudo-node")
}

func (g *NodeGraph) IsPseudo(id nodeID) bool { return g.byID[id] == nil }

func (g *NodeGraph) addConflict(a, b nodeID) {
	if a == b {
		return
	}
	g.conflict[a][b] = true
	g.conflict[b][a] = true
}

func (g *NodeGraph) AddConflict(a, b nodeID) { g.addConflict(a, b) }

func (g *NodeGraph) AddPref(a, b nodeID) {
	if a == b {
		return
	}
	g.pref[a][b] = true
	g.pref[b][a] = true
}

func (g *NodeGraph) RemovePref(a, b nodeID) {
	delete(g.pref[a], b)
	delete(g.pref[b], a)
}

func (g *NodeGraph) Conflicts(id nodeID) []nodeID { return sortedKeys(g.conflict[id]) }
func (g *NodeGraph) Prefs(id nodeID) []nodeID     { return sortedKeys(g.pref[id]) }

func (g *NodeGraph) Degree(id nodeID) int { return len(g.conflict[id]) }

func (g *NodeGraph) AllNonPseudo() []nodeID {
	var ids []nodeID
	for id, v := range g.byID {
		if v != nil {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Pop removes id from the graph entirely (used by simplify/spill):
// every edge touching it is dropped, but the node itself (and its
// value/reg identity) is retained in byID/regOf for later lookups.
func (g *NodeGraph) Pop(id nodeID) {
	for other := range g.conflict[id] {
		delete(g.conflict[other], id)
	}
	for other := range g.pref[id] {
		delete(g.pref[other], id)
	}
	g.conflict[id] = map[nodeID]bool{}
	g.pref[id] = map[nodeID]bool{}
}

// Merge folds `from` into `into` (Briggs-George coalescing): every
// conflict/preference edge `from` had is redirected onto `into`, and
// `from` is then popped.
func (g *NodeGraph) Merge(into, from nodeID) {
	for other := range g.conflict[from] {
		if other != into {
			g.addConflict(into, other)
		}
	}
	for other := range g.pref[from] {
		if other != into {
			g.AddPref(into, other)
		}
	}
	g.Pop(from)
}

// Copy returns a structural clone so the spill-and-restart loop can
// roll back to this exact graph state cheaply (map copies, no shared
// mutable nested structure).
func (g *NodeGraph) Copy() *NodeGraph {
	clone := &NodeGraph{
		values: map[*il.Value]nodeID{}, byID: map[nodeID]*il.Value{}, regOf: map[nodeID]il.RegName{},
		conflict: map[nodeID]map[nodeID]bool{}, pref: map[nodeID]map[nodeID]bool{}, next: g.next,
	}
	for k, v := range g.values {
		clone.values[k] = v
	}
	for k, v := range g.byID {
		clone.byID[k] = v
	}
	for k, v := range g.regOf {
		clone.regOf[k] = v
	}
	for id, set := range g.conflict {
		clone.conflict[id] = map[nodeID]bool{}
		for o := range set {
			clone.conflict[id][o] = true
		}
	}
	for id, set := range g.pref {
		clone.pref[id] = map[nodeID]bool{}
		for o := range set {
			clone.pref[id][o] = true
		}
	}
	return clone
}

func sortedKeys(m map[nodeID]bool) []nodeID {
	ids := lo.Keys(m)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
