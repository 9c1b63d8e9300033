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
package cerr

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollectorHasErrorsIgnoresWarnings(t *testing.T) {
	c := NewCollector()
	require.False(t, c.HasErrors())

	c.Warn(Type, nil, "implicit conversion")
	require.False(t, c.HasErrors(), "a warning alone must not fail the compilation")

	c.Add(Parse, nil, "unexpected token")
	require.True(t, c.HasErrors())
}

func TestDiagnosticPrintWithRangeIncludesIndicator(t *testing.T) {
	c := NewCollector()
	c.Add(Type, &Range{File: "a.c", StartLine: 3, StartCol: 5, EndCol: 8, SourceLine: "  int x = y + 1;"}, "undeclared identifier %q", "y")

	var buf bytes.Buffer
	c.Print(&buf)
	out := buf.String()
	require.Contains(t, out, "a.c:3:5: error: undeclared identifier \"y\"")
	require.Contains(t, out, "  int x = y + 1;")
	require.Contains(t, out, "\n    ---\n")
}

func TestDiagnosticPrintWithoutRangeUsesDriverForm(t *testing.T) {
	c := NewCollector()
	c.Add(Link, nil, "undefined reference to %q", "missing_fn")

	var buf bytes.Buffer
	c.Print(&buf)
	require.Equal(t, "cmini: error: undefined reference to \"missing_fn\"\n", buf.String())
}

func TestPrintSortsByPositionAndDriverDiagnosticsFirst(t *testing.T) {
	c := NewCollector()
	c.Add(Parse, &Range{File: "b.c", StartLine: 10, StartCol: 1}, "second")
	c.Add(Link, nil, "driver-level")
	c.Add(Parse, &Range{File: "a.c", StartLine: 1, StartCol: 1}, "first")

	var buf bytes.Buffer
	c.Print(&buf)
	out := buf.String()

	driverIdx := bytes.Index(buf.Bytes(), []byte("driver-level"))
	firstIdx := bytes.Index(buf.Bytes(), []byte("a.c"))
	secondIdx := bytes.Index(buf.Bytes(), []byte("b.c"))
	require.True(t, driverIdx < firstIdx && firstIdx < secondIdx, "driver diagnostics sort first, then by file and line: got %q", out)
}

func TestKindStringNames(t *testing.T) {
	require.Equal(t, "lex error", Lex.String())
	require.Equal(t, "parse error", Parse.String())
	require.Equal(t, "type error", Type.String())
	require.Equal(t, "unsupported", Unsupported.String())
	require.Equal(t, "link error", Link.String())
}
