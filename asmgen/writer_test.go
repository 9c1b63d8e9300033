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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"cmini/il"
)

func TestFullCodeSectionOrdering(t *testing.T) {
	w := NewWriter(true)
	w.DeclareCommon("g_counter", 4)
	w.DeclareData("g_total", 42)
	w.DeclareString(".LC0", []byte("hi"))

	code := w.FullCode()
	bss := strings.Index(code, ".bss")
	data := strings.Index(code, ".data")
	rodata := strings.Index(code, ".rodata")
	text := strings.Index(code, ".text")
	require.True(t, bss < data && data < rodata && rodata < text, "sections must appear in .bss/.data/.rodata/.text order")
	require.Contains(t, code, ".comm g_counter,4,8")
	require.Contains(t, code, "g_total:")
	require.Contains(t, code, ".LC0:")
}

func TestFullCodeIntelHeaderAndTrailer(t *testing.T) {
	w := NewWriter(true)
	code := w.FullCode()
	require.True(t, strings.HasPrefix(code, ".intel_syntax noprefix\n"))
	require.True(t, strings.HasSuffix(code, ".att_syntax noprefix\n"), "Intel output must restore AT&T mode so gcc's own asm snippets downstream are unaffected")
}

func TestFullCodeAttHasNoTrailer(t *testing.T) {
	w := NewWriter(false)
	code := w.FullCode()
	require.True(t, strings.HasPrefix(code, ".att_syntax noprefix\n"))
	require.Equal(t, 1, strings.Count(code, ".att_syntax noprefix\n"), "AT&T output only declares the directive once")
}

func TestEmitFunctionWritesPrologueAndEpilogue(t *testing.T) {
	w := NewWriter(false)
	param := &il.Value{}
	fn := &il.Function{
		Name:     "identity",
		Params:   []*il.Value{param},
		Commands: []il.Command{il.NewReturn(nil, 0)},
	}
	spots := il.SpotMap{param: il.RegSpot{Name: il.RDI}}
	w.EmitFunction(fn, spots, 0)

	code := w.FullCode()
	require.Contains(t, code, "identity:")
	require.Contains(t, code, "push")
	require.Contains(t, code, "pop")
	require.Contains(t, code, "ret")
}

func TestEmitFunctionAdjustsStackForNonZeroFrame(t *testing.T) {
	w := NewWriter(false)
	fn := &il.Function{
		Name:     "withlocals",
		Commands: []il.Command{il.NewReturn(nil, 0)},
	}
	w.EmitFunction(fn, il.SpotMap{}, 32)

	code := w.FullCode()
	require.Contains(t, code, "sub")
	require.Contains(t, code, "mov %rbp, %rsp")
}

func TestEmitFunctionSkipsReturnMovWhenAlreadyInRax(t *testing.T) {
	w := NewWriter(false)
	v := &il.Value{}
	fn := &il.Function{
		Name:     "already_rax",
		Commands: []il.Command{il.NewReturn(v, 4)},
	}
	spots := il.SpotMap{v: il.RegSpot{Name: il.RAX}}
	w.EmitFunction(fn, spots, 0)

	code := w.FullCode()
	require.NotContains(t, code, "mov %rax, %rax")
}
