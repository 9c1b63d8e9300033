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

// Package asmgen turns a colored il.Function into textual x86-64
// assembly and assembles a complete .s file. Two AsmSink
// implementations (AT&T and Intel operand order/mnemonics) let the
// same Command.Lower methods emit either dialect.
package asmgen

import (
	"fmt"
	"strings"

	"cmini/il"
)

// AttSink emits GNU `as` AT&T syntax: `op src, dst`, registers
// prefixed with %, immediates with $.
type AttSink struct {
	buf strings.Builder
}

func NewAttSink() *AttSink { return &AttSink{} }
func (s *AttSink) String() string { return s.buf.String() }

func (s *AttSink) line(format string, args ...interface{}) {
	fmt.Fprintf(&s.buf, "\t"+format+"\n", args...)
}

func (s *AttSink) Mov(size int, src, dst il.Spot) {
	if src == dst {
		return
	}
	s.line("mov %s, %s", src.Render(size), dst.Render(size))
}
func (s *AttSink) MovExtend(dstSize, srcSize int, src, dst il.Spot, signExtend bool) {
	op := "movz"
	if signExtend {
		op = "movs"
	}
	suffix := map[int]string{1: "b", 2: "w", 4: "l", 8: "q"}
	s.line("%s%s%s %s, %s", op, suffix[srcSize], suffix[dstSize], src.Render(srcSize), dst.Render(dstSize))
}
func (s *AttSink) Lea(dst il.Spot, src il.MemSpot) {
	s.line("lea %s, %s", src.Render(8), dst.Render(8))
}
func (s *AttSink) Binary(op string, size int, src, dst il.Spot) {
	s.line("%s %s, %s", op, src.Render(size), dst.Render(size))
}
func (s *AttSink) Unary(op string, size int, dst il.Spot) {
	s.line("%s %s", op, dst.Render(size))
}
func (s *AttSink) Cmp(size int, a, b il.Spot) {
	s.line("cmp %s, %s", a.Render(size), b.Render(size))
}
func (s *AttSink) SetCC(cc string, dst il.Spot) {
	s.line("set%s %s", cc, dst.Render(1))
}
func (s *AttSink) Jmp(label string)         { s.line("jmp %s", label) }
func (s *AttSink) JmpCC(cc, label string)   { s.line("j%s %s", cc, label) }
func (s *AttSink) Label(name string)        { fmt.Fprintf(&s.buf, "%s:\n", name) }
func (s *AttSink) Call(target string)       { s.line("call %s", target) }
func (s *AttSink) Push(sp il.Spot)          { s.line("push %s", sp.Render(8)) }
func (s *AttSink) Pop(sp il.Spot)           { s.line("pop %s", sp.Render(8)) }
func (s *AttSink) Ret()                     { s.line("ret") }
func (s *AttSink) Cqto(size int) {
	switch size {
	case 8:
		s.line("cqto")
	default:
		s.line("cltd")
	}
}
func (s *AttSink) IDiv(size int, divisor il.Spot) { s.line("idiv %s", divisor.Render(size)) }
func (s *AttSink) Comment(text string)            { fmt.Fprintf(&s.buf, "\t# %s\n", text) }

// IntelSink emits `.intel_syntax noprefix`-style text: `op dst, src`,
// no register/immediate sigils, memory operands rendered `[base+off]`.
type IntelSink struct {
	buf strings.Builder
}

func NewIntelSink() *IntelSink { return &IntelSink{} }
func (s *IntelSink) String() string { return s.buf.String() }

func (s *IntelSink) line(format string, args ...interface{}) {
	fmt.Fprintf(&s.buf, "\t"+format+"\n", args...)
}

func stripSigil(r string) string {
	if open := strings.Index(r, "("); open >= 0 && strings.HasSuffix(r, ")") {
		disp := r[:open]
		base := strings.TrimPrefix(r[open+1:len(r)-1], "%")
		switch {
		case disp == "":
			return "[" + base + "]"
		case strings.HasPrefix(disp, "-"):
			return "[" + base + disp + "]"
		default:
			return "[" + base + "+" + disp + "]"
		}
	}
	r = strings.TrimPrefix(r, "%")
	r = strings.TrimPrefix(r, "$")
	return r
}

func (s *IntelSink) Mov(size int, src, dst il.Spot) {
	if src == dst {
		return
	}
	s.line("mov %s, %s", stripSigil(dst.Render(size)), stripSigil(src.Render(size)))
}
func (s *IntelSink) MovExtend(dstSize, srcSize int, src, dst il.Spot, signExtend bool) {
	op := "movzx"
	if signExtend {
		op = "movsx"
	}
	s.line("%s %s, %s", op, stripSigil(dst.Render(dstSize)), stripSigil(src.Render(srcSize)))
}
func (s *IntelSink) Lea(dst il.Spot, src il.MemSpot) {
	s.line("lea %s, %s", stripSigil(dst.Render(8)), stripSigil(src.Render(8)))
}
func (s *IntelSink) Binary(op string, size int, src, dst il.Spot) {
	s.line("%s %s, %s", op, stripSigil(dst.Render(size)), stripSigil(src.Render(size)))
}
func (s *IntelSink) Unary(op string, size int, dst il.Spot) {
	s.line("%s %s", op, stripSigil(dst.Render(size)))
}
func (s *IntelSink) Cmp(size int, a, b il.Spot) {
	s.line("cmp %s, %s", stripSigil(b.Render(size)), stripSigil(a.Render(size)))
}
func (s *IntelSink) SetCC(cc string, dst il.Spot) {
	s.line("set%s %s", cc, stripSigil(dst.Render(1)))
}
func (s *IntelSink) Jmp(label string)       { s.line("jmp %s", label) }
func (s *IntelSink) JmpCC(cc, label string) { s.line("j%s %s", cc, label) }
func (s *IntelSink) Label(name string)      { fmt.Fprintf(&s.buf, "%s:\n", name) }
func (s *IntelSink) Call(target string)     { s.line("call %s", target) }
func (s *IntelSink) Push(sp il.Spot)        { s.line("push %s", stripSigil(sp.Render(8))) }
func (s *IntelSink) Pop(sp il.Spot)         { s.line("pop %s", stripSigil(sp.Render(8))) }
func (s *IntelSink) Ret()                   { s.line("ret") }
func (s *IntelSink) Cqto(size int) {
	switch size {
	case 8:
		s.line("cqo")
	default:
		s.line("cdq")
	}
}
func (s *IntelSink) IDiv(size int, divisor il.Spot) { s.line("idiv %s", stripSigil(divisor.Render(size))) }
func (s *IntelSink) Comment(text string)            { fmt.Fprintf(&s.buf, "\t; %s\n", text) }
