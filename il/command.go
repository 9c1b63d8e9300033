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
package il

import "cmini/ctype"

// SpotMap is the final value->location assignment the register
// allocator produces; Lower methods consult it to render operands.
type SpotMap map[*Value]Spot

// AsmSink is the narrow textual-emission surface every Command.Lower
// writes through. Two concrete implementations exist (AT&T and Intel
// operand order/mnemonics); Command authors never format assembly text
// themselves so a command lowers identically under either syntax.
type AsmSink interface {
	Mov(size int, src, dst Spot)
	MovExtend(dstSize, srcSize int, src, dst Spot, signExtend bool)
	Lea(dst Spot, src MemSpot)
	Binary(op string, size int, src, dst Spot)
	Unary(op string, size int, dst Spot)
	// Cmp sets the flags from b - a (AT&T "cmp a, b" operand order).
	Cmp(size int, a, b Spot)
	SetCC(cc string, dst Spot)
	Jmp(label string)
	JmpCC(cc string, label string)
	Label(name string)
	Call(target string)
	Push(s Spot)
	Pop(s Spot)
	Ret()
	Cqto(size int)
	IDiv(size int, divisor Spot)
	Comment(text string)
}

// Command is the closed IL instruction taxonomy. Every concrete
// command type implements this directly; the contracts it exposes
// (Inputs/Outputs/Clobber/the four preference-and-conflict maps/
// References) are exactly what the liveness pass and the register
// allocator consume; IndirRead/IndirWrite are reported by ReadAt/SetAt
// but neither pass consults them. Lower is the only place
// that knows how to turn a command into text once every Value has a
// Spot.
type Command interface {
	Inputs() []*Value
	Outputs() []*Value
	Clobber() []Spot

	RelSpotPref() map[*Value][]*Value
	AbsSpotPref() map[*Value][]Spot
	RelSpotConf() map[*Value][]*Value
	AbsSpotConf() map[*Value][]Spot

	// References lists, for each output value that is itself an
	// address-of-another-value relationship (AddrOf), the
	// values whose home spot must be pinned to memory.
	References() map[*Value][]*Value

	IndirRead() []*Value
	IndirWrite() []*Value

	LabelName() string
	Targets() []string

	Lower(spots SpotMap, sink AsmSink)

	String() string
}

// Base gives every concrete Command the empty-by-default
// implementation of every contract method; commands embed it and
// override only what applies to them, the way the teacher's own LIR
// instruction struct leaves most fields zero for most opcodes.
type Base struct{}

func (Base) Inputs() []*Value                         { return nil }
func (Base) Outputs() []*Value                        { return nil }
func (Base) Clobber() []Spot                          { return nil }
func (Base) RelSpotPref() map[*Value][]*Value         { return nil }
func (Base) AbsSpotPref() map[*Value][]Spot            { return nil }
func (Base) RelSpotConf() map[*Value][]*Value         { return nil }
func (Base) AbsSpotConf() map[*Value][]Spot            { return nil }
func (Base) References() map[*Value][]*Value          { return nil }
func (Base) IndirRead() []*Value                      { return nil }
func (Base) IndirWrite() []*Value                     { return nil }
func (Base) LabelName() string                        { return "" }
func (Base) Targets() []string                        { return nil }

// Function is the IL form of one translated C function: an ordered
// command list plus the parameter values feeding its prologue.
type Function struct {
	Name     string
	Params   []*Value
	RetType  *ctype.CType
	Commands []Command
}

// Symbol describes one global: a function or object with a storage
// class, linkage and definition state, mirroring the symbol table the
// generator maintains while walking declarations.
type Symbol struct {
	Name     string
	Static   bool // static linkage (file scope, not exported)
	Defined  bool // has a body/initializer in this translation unit
	Init     *Value
	SizeBytes int
}

// Program is the whole-translation-unit IL: every function plus the
// global tables the emitter needs (literals, string literals, extern
// symbols, and a declaration-order function list since map iteration
// order is not stable).
type Program struct {
	Functions     map[string]*Function
	FunctionOrder []string
	Literals      map[*Value]string
	StringLits    map[*Value][]byte
	Externs       map[string]*Symbol
	Statics       []*Symbol

	counter valueCounter
}

func NewProgram() *Program {
	return &Program{
		Functions:  map[string]*Function{},
		Literals:   map[*Value]string{},
		StringLits: map[*Value][]byte{},
		Externs:    map[string]*Symbol{},
	}
}

// NewValue and NewLiteral hand out fresh Values scoped to this
// Program's own counter; ilgen never constructs a Value directly.
func (p *Program) NewValue(t *ctype.CType) *Value        { return p.counter.NewValue(t) }
func (p *Program) NewLiteral(t *ctype.CType, v int64) *Value { return p.counter.NewLiteral(t, v) }

func (p *Program) AddFunction(fn *Function) {
	if _, exists := p.Functions[fn.Name]; !exists {
		p.FunctionOrder = append(p.FunctionOrder, fn.Name)
	}
	p.Functions[fn.Name] = fn
}
