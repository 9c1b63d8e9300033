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
package ilgen

import (
	"cmini/ctype"
	"cmini/il"
)

// LValue hides the three different ways this compiler addresses
// storage behind one Load/Store/Addr contract: a plain virtual
// register for an un-addressed scalar local, a label- or frame-
// relative offset for a global or a struct member/array element with
// a statically known base, and an indirect pointer for anything
// reached through *p or p->field. Assignment, compound assignment and
// ++/-- all go through an LValue so they share one path; the rvalue
// form of unary `*` emits its ReadAt directly.
type LValue interface {
	CType() *ctype.CType
	Load(g *Generator) *il.Value
	Store(g *Generator, v *il.Value)
	// Addr returns a pointer Value to this storage; only valid for
	// addressable lvalues (everything but DirectLValue: genUnary's `&`
	// case emits an AddrOf for a DirectLValue itself, so Addr is never
	// called on one).
	Addr(g *Generator) *il.Value
}

// DirectLValue is an unaddressed scalar local or parameter: the
// variable's whole lifetime is one persistent *il.Value that every
// assignment writes into directly, so the register allocator's
// interference graph -- not a stack slot -- is what gives it storage.
type DirectLValue struct {
	Val *il.Value
}

func (l DirectLValue) CType() *ctype.CType { return l.Val.CType }
func (l DirectLValue) Load(g *Generator) *il.Value { return l.Val }
func (l DirectLValue) Store(g *Generator, v *il.Value) {
	g.emitSet(l.Val, v, l.Val.CType)
}
func (l DirectLValue) Addr(g *Generator) *il.Value {
	panic("ilgen: Addr called on a DirectLValue; genUnary's & case must emit AddrOf for it instead")
}

// RelativeLValue is storage at a statically known offset from a base
// Value whose Spot is guaranteed to be a MemSpot: a global (base's
// home spot is preseeded to a label), a struct or array local (pinned
// to an RBP-relative home spot by genLocalVar's AddrOf), or a struct
// member/array element computed relative to either.
type RelativeLValue struct {
	Base   *il.Value
	Offset int64
	Typ    *ctype.CType
}

func (l RelativeLValue) CType() *ctype.CType { return l.Typ }
func (l RelativeLValue) Load(g *Generator) *il.Value {
	dst := g.prog.NewValue(l.Typ)
	g.emit(il.NewReadRel(dst, l.Base, l.Offset, l.Typ.SizeOf()))
	return dst
}
func (l RelativeLValue) Store(g *Generator, v *il.Value) {
	coerced := g.coerce(v, l.Typ)
	g.emit(il.NewSetRel(l.Base, coerced, l.Offset, l.Typ.SizeOf()))
}
func (l RelativeLValue) Addr(g *Generator) *il.Value {
	dst := g.prog.NewValue(ctype.NewPointer(l.Typ))
	g.emit(il.NewAddrRel(dst, l.Base, l.Offset))
	return dst
}

// IndirectLValue is storage reached through a runtime pointer Value:
// *p, p->field (after adding the member offset to p), or a[i] with a
// non-constant i (after adding i*elemSize to a's decayed pointer).
type IndirectLValue struct {
	Ptr *il.Value
	Typ *ctype.CType
}

func (l IndirectLValue) CType() *ctype.CType { return l.Typ }
func (l IndirectLValue) Load(g *Generator) *il.Value {
	dst := g.prog.NewValue(l.Typ)
	g.emit(il.NewReadAt(dst, l.Ptr, l.Typ.SizeOf()))
	return dst
}
func (l IndirectLValue) Store(g *Generator, v *il.Value) {
	coerced := g.coerce(v, l.Typ)
	g.emit(il.NewSetAt(l.Ptr, coerced, l.Typ.SizeOf()))
}
func (l IndirectLValue) Addr(g *Generator) *il.Value { return l.Ptr }
