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
package regalloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cmini/ctype"
	"cmini/il"
)

func TestComputeLivenessStraightLine(t *testing.T) {
	prog := il.NewProgram()
	a := prog.NewValue(ctype.Int32)
	b := prog.NewValue(ctype.Int32)
	c := prog.NewValue(ctype.Int32)

	cmds := []il.Command{
		il.NewAdd(a, a, b, 4), // a = a + b
		il.NewAdd(c, a, a, 4), // c = a + a, a still needed here
		il.NewReturn(c, 4),
	}
	liveness := ComputeLiveness(cmds)

	require.True(t, liveness.LiveOut[0][a], "a must stay live across its own redefinition for the next add")
	require.False(t, liveness.LiveOut[1][a], "a is dead once c has been computed from it")
	require.True(t, liveness.LiveOut[1][c], "c must reach the return")
	require.Empty(t, liveness.LiveOut[2], "nothing is live after return")
}

func TestVerifyLivenessIsStable(t *testing.T) {
	prog := il.NewProgram()
	a := prog.NewValue(ctype.Int32)
	cmds := []il.Command{
		il.NewAdd(a, a, a, 4),
		il.NewReturn(a, 4),
	}
	l := ComputeLiveness(cmds)
	require.True(t, VerifyLiveness(cmds, l))
}

func TestInterferesRequiresSimultaneousLiveness(t *testing.T) {
	prog := il.NewProgram()
	a := prog.NewValue(ctype.Int32)
	b := prog.NewValue(ctype.Int32)
	cmds := []il.Command{
		il.NewAdd(a, a, a, 4),
		il.NewReturn(a, 4),
	}
	l := ComputeLiveness(cmds)
	require.False(t, Interferes(cmds, l, a, b), "b never appears in this program")
	require.False(t, Interferes(cmds, l, a, a), "a value never interferes with itself")
}
