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
package asmgen

import (
	"fmt"
	"strings"

	"cmini/il"
)

// Writer assembles a complete .s file: the syntax-mode header, a .data
// section for initialized globals, a .bss section (.comm) for
// uninitialized ones, and a .text section holding every function body
// in turn, each bracketed by the push-rbp/mov-rbp,rsp/sub-rsp prologue
// and the matching epilogue on every Return.
type Writer struct {
	Intel bool

	comms   []string // .comm name, size
	data    []string // name: .quad value  (or similar)
	rodata  []string // string literal labels
	funcBuf strings.Builder
}

func NewWriter(intel bool) *Writer {
	return &Writer{Intel: intel}
}

func (w *Writer) newSink() il.AsmSink {
	if w.Intel {
		return NewIntelSink()
	}
	return NewAttSink()
}

// DeclareCommon adds a .comm entry for an uninitialized global/static
// of the given size in bytes; the size is emitted unchanged and the
// symbol's alignment is always 8.
func (w *Writer) DeclareCommon(name string, size int) {
	w.comms = append(w.comms, fmt.Sprintf(".comm %s,%d,8", name, size))
}

// DeclareData adds an initialized .data entry.
func (w *Writer) DeclareData(name string, value int64) {
	w.data = append(w.data, fmt.Sprintf("%s:\n\t.quad %d", name, value))
}

// DeclareString adds a NUL-terminated string literal to .rodata under
// the given label.
func (w *Writer) DeclareString(label string, bytes []byte) {
	var sb strings.Builder
	for _, b := range bytes {
		fmt.Fprintf(&sb, "\\%03o", b)
	}
	w.rodata = append(w.rodata, fmt.Sprintf("%s:\n\t.string \"%s\"", label, sb.String()))
}

// EmitFunction lowers every command of fn using the finalized spot
// assignment, wrapping the body in the standard prologue/epilogue.
// frameSize is the already-16-byte-aligned total stack allocation
// (home spots plus spilled registers).
func (w *Writer) EmitFunction(fn *il.Function, spots il.SpotMap, frameSize int64) {
	sink := w.newSink()
	fmt.Fprintf(&w.funcBuf, "\t.globl %s\n%s:\n", fn.Name, fn.Name)
	sink.Push(il.RegSpot{Name: il.RBP})
	sink.Mov(8, il.RegSpot{Name: il.RSP}, il.RegSpot{Name: il.RBP})
	if frameSize > 0 {
		sink.Binary("sub", 8, il.LiteralSpot{Value: frameSize}, il.RegSpot{Name: il.RSP})
	}
	for i, p := range fn.Params {
		il.NewLoadArg(p, i, paramSize(p)).Lower(spots, sink)
	}
	for _, cmd := range fn.Commands {
		if ret, ok := cmd.(*il.Return); ok {
			lowerReturnEpilogue(ret, spots, sink, frameSize)
			continue
		}
		cmd.Lower(spots, sink)
	}
	w.funcBuf.WriteString(textOf(sink))
}

func lowerReturnEpilogue(ret *il.Return, spots il.SpotMap, sink il.AsmSink, frameSize int64) {
	if ret.Val != nil {
		retSpot := spots[ret.Val]
		if retSpot != (il.RegSpot{Name: il.RAX}) {
			sink.Mov(8, retSpot, il.RegSpot{Name: il.RAX})
		}
	}
	if frameSize > 0 {
		sink.Mov(8, il.RegSpot{Name: il.RBP}, il.RegSpot{Name: il.RSP})
	}
	sink.Pop(il.RegSpot{Name: il.RBP})
	sink.Ret()
}

func paramSize(v *il.Value) int {
	if v.CType == nil {
		return 8
	}
	return v.CType.SizeOf()
}

func textOf(sink il.AsmSink) string {
	switch s := sink.(type) {
	case *AttSink:
		return s.String()
	case *IntelSink:
		return s.String()
	default:
		return ""
	}
}

// FullCode assembles the complete assembly text: syntax directive,
// .bss/.data/.rodata, then .text with every function body, in that
// order (matching shivyc's ASMCode.full_code section ordering).
func (w *Writer) FullCode() string {
	var sb strings.Builder
	if w.Intel {
		sb.WriteString(".intel_syntax noprefix\n")
	} else {
		sb.WriteString(".att_syntax noprefix\n")
	}
	if len(w.comms) > 0 {
		sb.WriteString("\t.bss\n")
		for _, c := range w.comms {
			sb.WriteString("\t" + c + "\n")
		}
	}
	if len(w.data) > 0 {
		sb.WriteString("\t.data\n")
		for _, d := range w.data {
			sb.WriteString(d + "\n")
		}
	}
	if len(w.rodata) > 0 {
		sb.WriteString("\t.section .rodata\n")
		for _, r := range w.rodata {
			sb.WriteString(r + "\n")
		}
	}
	sb.WriteString("\t.text\n")
	sb.WriteString(w.funcBuf.String())
	if w.Intel {
		sb.WriteString(".att_syntax noprefix\n")
	}
	return sb.String()
}
