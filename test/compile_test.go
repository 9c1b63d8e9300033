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

// Package test drives the whole pipeline -- preprocessing through
// linking -- from a C source string and runs the resulting executable,
// the end-to-end counterpart to the per-package unit tests that check
// one pipeline stage in isolation.
package test

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"

	"cmini/compile"
	"cmini/utils"
)

func requireGCC(t *testing.T) {
	t.Helper()
	if !utils.CommandExists("gcc") {
		t.Skip("gcc not found on PATH, skipping end-to-end compile test")
	}
}

// runExpectExit compiles src and runs it, asserting its exit code.
func runExpectExit(t *testing.T, src string, want int) {
	t.Helper()
	requireGCC(t)

	ctx := compile.NewCompilerContext()
	exe, err := compile.CompileText(ctx, src)
	require.NoError(t, err)

	cmd := exec.Command(exe)
	runErr := cmd.Run()
	got := 0
	if exitErr, ok := runErr.(*exec.ExitError); ok {
		got = exitErr.ExitCode()
	} else {
		require.NoError(t, runErr)
	}
	require.Equal(t, want, got)
}

func TestArithmeticReturnValue(t *testing.T) {
	runExpectExit(t, `
		int main(void) {
			return 2 + 3 * 4;
		}
	`, 14)
}

func TestIfElseSelectsBranch(t *testing.T) {
	runExpectExit(t, `
		int choose(int n) {
			if (n > 0) {
				return 1;
			} else {
				return 0;
			}
		}
		int main(void) {
			return choose(5);
		}
	`, 1)
}

func TestWhileLoopAccumulates(t *testing.T) {
	runExpectExit(t, `
		int sum(int n) {
			int total = 0;
			int i = 0;
			while (i < n) {
				total = total + i;
				i = i + 1;
			}
			return total;
		}
		int main(void) {
			return sum(5);
		}
	`, 10)
}

func TestFunctionCallAndRecursion(t *testing.T) {
	runExpectExit(t, `
		int fact(int n) {
			if (n <= 1) {
				return 1;
			}
			return n * fact(n - 1);
		}
		int main(void) {
			return fact(5);
		}
	`, 120)
}

func TestPointerAssignmentThroughAddressOf(t *testing.T) {
	runExpectExit(t, `
		int main(void) {
			int x;
			int *p = &x;
			*p = 9;
			return x;
		}
	`, 9)
}

func TestGlobalVariableMutation(t *testing.T) {
	runExpectExit(t, `
		int counter = 0;
		void bump(void) {
			counter = counter + 1;
		}
		int main(void) {
			bump();
			bump();
			bump();
			return counter;
		}
	`, 3)
}

func TestCompileFilesRejectsUnknownExtension(t *testing.T) {
	ctx := compile.NewCompilerContext()
	err := compile.CompileFiles(ctx, []string{"not_a_real_source.xyz"}, "out")
	require.Error(t, err)
	require.True(t, ctx.Diags.HasErrors())
}
