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
package ast

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"cmini/cerr"
)

func TestParseBareStructTagReusesEarlierDefinition(t *testing.T) {
	tu, diags := parse(t, `
		struct point { int x; int y; };
		struct point origin;
	`)
	require.False(t, diags.HasErrors())
	require.Len(t, tu.Decls, 1)

	origin, ok := tu.Decls[0].(*VarDecl)
	require.True(t, ok)
	require.True(t, origin.Type.Complete, "a later bare tag reference must resolve to the earlier completed definition")
	require.Len(t, origin.Type.Members, 2)
}

func parse(t *testing.T, src string) (*TranslationUnit, *cerr.Collector) {
	t.Helper()
	diags := cerr.NewCollector()
	lexer := NewLexer("test.c", strings.NewReader(src), diags)
	p := NewParser(lexer, diags)
	return p.ParseTranslationUnit(), diags
}

func TestParseFunctionDeclWithBody(t *testing.T) {
	tu, diags := parse(t, "int add(int a, int b) { return a + b; }")
	require.False(t, diags.HasErrors())
	require.Len(t, tu.Decls, 1)

	fn, ok := tu.Decls[0].(*FuncDecl)
	require.True(t, ok)
	require.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	require.NotNil(t, fn.Body)
}

func TestParseFunctionPrototypeHasNoBody(t *testing.T) {
	tu, diags := parse(t, "int add(int a, int b);")
	require.False(t, diags.HasErrors())
	fn := tu.Decls[0].(*FuncDecl)
	require.True(t, fn.HasProto)
	require.Nil(t, fn.Body)
}

func TestParseGlobalVarDeclWithInitializer(t *testing.T) {
	tu, diags := parse(t, "int g_total = 42;")
	require.False(t, diags.HasErrors())
	v, ok := tu.Decls[0].(*VarDecl)
	require.True(t, ok)
	require.Equal(t, "g_total", v.Name)
	require.NotNil(t, v.Init)
}

func TestParseTypedefMakesNameUsableAsAType(t *testing.T) {
	tu, diags := parse(t, "typedef int myint; myint x;")
	require.False(t, diags.HasErrors())
	require.Len(t, tu.Decls, 2)
	_, isTypedef := tu.Decls[0].(*TypedefDecl)
	require.True(t, isTypedef)
	v, ok := tu.Decls[1].(*VarDecl)
	require.True(t, ok)
	require.Equal(t, "x", v.Name)
}

func TestParseRecoversAfterUnrecognizedTopLevelToken(t *testing.T) {
	tu, diags := parse(t, "; int ok;")
	require.True(t, diags.HasErrors(), "the stray token must be reported")
	var names []string
	for _, d := range tu.Decls {
		if v, ok := d.(*VarDecl); ok {
			names = append(names, v.Name)
		}
	}
	require.Contains(t, names, "ok", "parsing must continue past the bad token instead of aborting the whole file")
}

func TestParseIfWhileForStatements(t *testing.T) {
	tu, diags := parse(t, `
		int f(int n) {
			if (n > 0) {
				return 1;
			} else {
				return 0;
			}
			for (int i = 0; i < n; i = i + 1) {
				n = n - 1;
			}
			while (n > 0) {
				n = n - 1;
			}
			return n;
		}
	`)
	require.False(t, diags.HasErrors())
	fn := tu.Decls[0].(*FuncDecl)
	require.NotNil(t, fn.Body)
	require.NotEmpty(t, fn.Body.Stmts)
}
