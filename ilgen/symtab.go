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

// Package ilgen walks a parsed translation unit and emits an il.Program:
// one symbol table scope per block, one il.Value per evaluated
// expression, and one or more il.Command per statement.
package ilgen

import (
	"cmini/ctype"
	"cmini/il"
)

// symbolKind distinguishes what a name in scope refers to; the
// generator needs this to decide how to read it (a Value already
// resident in a register/stack slot vs. a function label vs. a
// typedef name the parser itself consults).
type symbolKind int

const (
	symVar symbolKind = iota
	symFunc
	symTypedef
)

type symbol struct {
	kind     symbolKind
	typ      *ctype.CType
	lvSpot   *il.Value // symVar: the storage Value (virtual register or memory-homed)
	global   bool      // symVar: storage always lives at a label, never a virtual register
	funcSig  *ctype.CType
}

// scope is one block's declarations; scopes nest via parent so inner
// declarations shadow outer ones exactly like C block scope.
type scope struct {
	parent *scope
	names  map[string]*symbol
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, names: map[string]*symbol{}}
}

func (s *scope) lookup(name string) (*symbol, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if sym, ok := sc.names[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// SymbolTable tracks nested block scope plus the file-scope typedef
// names. The parser does not consult it: it keeps its own table of
// typedef names while parsing.
type SymbolTable struct {
	top      *scope
	typedefs map[string]*ctype.CType
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{top: newScope(nil), typedefs: map[string]*ctype.CType{}}
}

func (t *SymbolTable) Push() { t.top = newScope(t.top) }
func (t *SymbolTable) Pop()  { t.top = t.top.parent }

func (t *SymbolTable) DeclareVar(name string, ct *ctype.CType, storage *il.Value, global bool) {
	t.top.names[name] = &symbol{kind: symVar, typ: ct, lvSpot: storage, global: global}
}

func (t *SymbolTable) DeclareFunc(name string, sig *ctype.CType) {
	t.top.names[name] = &symbol{kind: symFunc, typ: sig, funcSig: sig}
}

func (t *SymbolTable) DeclareTypedef(name string, ct *ctype.CType) {
	t.typedefs[name] = ct
	t.top.names[name] = &symbol{kind: symTypedef, typ: ct}
}

func (t *SymbolTable) Lookup(name string) (*symbol, bool) { return t.top.lookup(name) }

// IsTypedefName reports whether name was declared with DeclareTypedef.
// Its signature fits ast.Parser's optional external typedef lookup,
// but the driver does not install it there.
func (t *SymbolTable) IsTypedefName(name string) bool {
	_, ok := t.typedefs[name]
	return ok
}
