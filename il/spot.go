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

// Package il defines the typed intermediate language: Spots (storage
// locations), Values (typed temporaries), the closed Command taxonomy
// and the per-function/per-program containers. It is the boundary
// between the AST->IL generator and the register allocator/emitter.
package il

import "fmt"

// RegName enumerates the general-purpose integer registers a Spot can
// name, at register width (not at a particular byte size: Render picks
// the size-specific name, mirroring the teacher's Register.Cast).
type RegName int

const (
	RAX RegName = iota
	RBX
	RCX
	RDX
	RSI
	RDI
	RBP
	RSP
	R8
	R9
	R10
	R11
	R12
	R13
	R14
	R15
)

var regNames8 = map[RegName][4]string{
	RAX: {"al", "ax", "eax", "rax"},
	RBX: {"bl", "bx", "ebx", "rbx"},
	RCX: {"cl", "cx", "ecx", "rcx"},
	RDX: {"dl", "dx", "edx", "rdx"},
	RSI: {"sil", "si", "esi", "rsi"},
	RDI: {"dil", "di", "edi", "rdi"},
	RBP: {"bpl", "bp", "ebp", "rbp"},
	RSP: {"spl", "sp", "esp", "rsp"},
	R8:  {"r8b", "r8w", "r8d", "r8"},
	R9:  {"r9b", "r9w", "r9d", "r9"},
	R10: {"r10b", "r10w", "r10d", "r10"},
	R11: {"r11b", "r11w", "r11d", "r11"},
	R12: {"r12b", "r12w", "r12d", "r12"},
	R13: {"r13b", "r13w", "r13d", "r13"},
	R14: {"r14b", "r14w", "r14d", "r14"},
	R15: {"r15b", "r15w", "r15d", "r15"},
}

func sizeIdx(size int) int {
	switch size {
	case 1:
		return 0
	case 2:
		return 1
	case 4:
		return 2
	case 8:
		return 3
	default:
		return 3
	}
}

// RegSpot is a physical-register storage location.
type RegSpot struct{ Name RegName }

// MemSpot is a memory location: either frame-relative (Base == RBP, a
// local/spill slot) or named (Base is a symbol name, a global/static).
// Array subscripting is lowered to explicit pointer arithmetic by ilgen
// rather than a scaled-index addressing mode, so MemSpot only ever
// needs a constant displacement.
type MemSpot struct {
	Base   interface{} // RegSpot or string
	Offset int64
}

// LiteralSpot is an immediate value; it never has an address.
type LiteralSpot struct{ Value int64 }

type Spot interface {
	Render(size int) string
	isSpot()
}

func (RegSpot) isSpot()     {}
func (MemSpot) isSpot()     {}
func (LiteralSpot) isSpot() {}

func (r RegSpot) Render(size int) string {
	names, ok := regNames8[r.Name]
	if !ok {
		return "???"
	}
	return "%" + names[sizeIdx(size)]
}

func NewMemSpot(base interface{}, offset int64) MemSpot {
	return MemSpot{Base: base, Offset: offset}
}

func (m MemSpot) Render(size int) string {
	base := ""
	switch b := m.Base.(type) {
	case RegSpot:
		base = b.Render(8)
	case string:
		base = b
	}
	disp := ""
	if _, isReg := m.Base.(RegSpot); isReg {
		if m.Offset != 0 {
			disp = fmt.Sprintf("%d", m.Offset)
		}
	} else {
		if m.Offset != 0 {
			base = fmt.Sprintf("%s+%d", base, m.Offset)
		}
	}
	if disp == "" {
		return fmt.Sprintf("(%s)", base)
	}
	return fmt.Sprintf("%s(%s)", disp, base)
}

func (l LiteralSpot) Render(size int) string {
	return fmt.Sprintf("$%d", l.Value)
}

// AllocatableRegs lists the caller-saved general-purpose registers the
// allocator is allowed to hand out. RBX/R12-R15 are callee-saved in
// the System V ABI and would need save/restore prologue code this
// compiler does not emit, so they are excluded (this is the same set
// the teacher's CallerSaveRegs(LIRTypeQWord) names).
var AllocatableRegs = []RegName{RAX, RCX, RDX, RSI, RDI, R8, R9, R10, R11}
