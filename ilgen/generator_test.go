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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"cmini/ast"
	"cmini/cerr"
	"cmini/il"
)

// generate lexes and parses src directly (skipping the preprocessor,
// which operates on files rather than strings) and runs the generator
// over the result, returning both the program and the diagnostics
// collected along the way.
func generate(t *testing.T, src string) (*il.Program, *cerr.Collector) {
	t.Helper()
	diags := cerr.NewCollector()
	lexer := ast.NewLexer("test.c", strings.NewReader(src), diags)
	parser := ast.NewParser(lexer, diags)
	tu := parser.ParseTranslationUnit()
	require.False(t, diags.HasErrors(), "source must parse cleanly")

	gen := NewGenerator(diags)
	prog := gen.Generate(tu)
	return prog, diags
}

func TestGenerateSimpleFunctionReturnsValue(t *testing.T) {
	prog, diags := generate(t, "int add(int a, int b) { return a + b; }")
	require.False(t, diags.HasErrors())
	fn, ok := prog.Functions["add"]
	require.True(t, ok, "add must be registered as a function")
	require.Len(t, fn.Params, 2)

	var sawReturn bool
	for _, cmd := range fn.Commands {
		if _, ok := cmd.(*il.Return); ok {
			sawReturn = true
		}
	}
	require.True(t, sawReturn, "every path generates an explicit return")
}

func TestGenerateVoidFunctionGetsImplicitReturn(t *testing.T) {
	prog, _ := generate(t, "void noop(void) { }")
	fn := prog.Functions["noop"]
	require.NotEmpty(t, fn.Commands)
	ret, ok := fn.Commands[len(fn.Commands)-1].(*il.Return)
	require.True(t, ok, "a falling-off-the-end function body gets a synthesized bare return")
	require.Nil(t, ret.Val)
}

func TestGenerateGlobalVariableGetsLabelSeed(t *testing.T) {
	prog, _ := generate(t, "int g_counter = 7;")
	require.Len(t, prog.Statics, 1)
	sym := prog.Statics[0]
	require.Equal(t, "g_counter", sym.Name)
	require.NotNil(t, sym.Init)

	gen := NewGenerator(cerr.NewCollector())
	gen.genGlobalVar(&ast.VarDecl{Name: "g_other", Type: sym.Init.CType})
	seeds := gen.Seeds()
	require.Len(t, seeds, 1)
	for _, spot := range seeds {
		require.Equal(t, "g_other", spot.Base)
	}
}

func TestGenerateWhileLoopEmitsLabelsAndJumps(t *testing.T) {
	prog, _ := generate(t, `
		int count(int n) {
			int i = 0;
			while (i < n) {
				i = i + 1;
			}
			return i;
		}
	`)
	fn := prog.Functions["count"]

	var labels, jumps int
	for _, cmd := range fn.Commands {
		switch cmd.(type) {
		case *il.Label:
			labels++
		case *il.Jump:
			jumps++
		}
	}
	require.GreaterOrEqual(t, labels, 2, "a while loop needs at least its top and end labels")
	require.GreaterOrEqual(t, jumps, 1, "the loop body must jump back to the top")
}

func TestGenerateFoldsTwoLiteralArithmeticIntoALiteral(t *testing.T) {
	prog, diags := generate(t, "int k(void) { return 2 + 3 * 4; }")
	require.False(t, diags.HasErrors())
	fn := prog.Functions["k"]

	var sawArith bool
	for _, cmd := range fn.Commands {
		switch cmd.(type) {
		case *il.Return, *il.Label, *il.Jump:
		default:
			sawArith = true
		}
	}
	require.False(t, sawArith, "a two-literal arithmetic expression must fold at compile time, not emit an arithmetic command")

	ret, ok := fn.Commands[len(fn.Commands)-1].(*il.Return)
	require.True(t, ok)
	require.NotNil(t, ret.Val)
	require.NotNil(t, ret.Val.Literal)
	require.Equal(t, int64(14), *ret.Val.Literal)
}

func TestGeneratePointerComparedAgainstLiteralZeroIsValid(t *testing.T) {
	prog, diags := generate(t, "int isNull(int *p) { return p == 0; }")
	require.False(t, diags.HasErrors(), "comparing a pointer to a null-pointer-constant literal must not be a type error")
	fn := prog.Functions["isNull"]
	require.NotEmpty(t, fn.Commands)
}

func TestGeneratePointerComparedAgainstNonNullIntegerIsATypeError(t *testing.T) {
	_, diags := generate(t, "int bad(int *p) { return p == 5; }")
	require.True(t, diags.HasErrors(), "comparing a pointer to a non-null integer literal must be reported")
}

func TestGenerateBreakAndContinueTargetEnclosingLoop(t *testing.T) {
	prog, diags := generate(t, `
		int firstEven(int n) {
			int i = 0;
			while (i < n) {
				if (i == 0) {
					i = i + 1;
					continue;
				}
				break;
			}
			return i;
		}
	`)
	require.False(t, diags.HasErrors())
	require.Contains(t, prog.Functions, "firstEven")
}
