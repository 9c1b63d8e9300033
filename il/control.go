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

import "fmt"

type Label struct {
	Base
	Name string
}

func NewLabel(name string) Command    { return &Label{Name: name} }
func (c *Label) LabelName() string    { return c.Name }
func (c *Label) String() string       { return c.Name + ":" }
func (c *Label) Lower(_ SpotMap, sink AsmSink) { sink.Label(c.Name) }

type Jump struct {
	Base
	Target string
}

func NewJump(target string) Command      { return &Jump{Target: target} }
func (c *Jump) Targets() []string        { return []string{c.Target} }
func (c *Jump) String() string           { return "jump " + c.Target }
func (c *Jump) Lower(_ SpotMap, sink AsmSink) { sink.Jmp(c.Target) }

// condJump is shared shape for JumpZero/JumpNotZero.
type condJump struct {
	Base
	Zero   bool
	Cond   *Value
	Target string
	Size   int
}

func NewJumpZero(cond *Value, target string, size int) Command {
	return &condJump{Zero: true, Cond: cond, Target: target, Size: size}
}
func NewJumpNotZero(cond *Value, target string, size int) Command {
	return &condJump{Cond: cond, Target: target, Size: size}
}

func (c *condJump) Inputs() []*Value { return []*Value{c.Cond} }
func (c *condJump) Targets() []string { return []string{c.Target} }
func (c *condJump) String() string {
	if c.Zero {
		return fmt.Sprintf("jz %s, %s", ref(c.Cond), c.Target)
	}
	return fmt.Sprintf("jnz %s, %s", ref(c.Cond), c.Target)
}
func (c *condJump) Lower(spots SpotMap, sink AsmSink) {
	sink.Cmp(c.Size, LiteralSpot{0}, spots[c.Cond])
	if c.Zero {
		sink.JmpCC("e", c.Target)
	} else {
		sink.JmpCC("ne", c.Target)
	}
}

// Return ends the function; Val is nil for void functions. The
// allocator absolute-prefers Val into RAX (the System V integer
// return register); when Val ends up elsewhere, the lowering moves it
// into RAX.
type Return struct {
	Base
	Val  *Value
	Size int
}

func NewReturn(val *Value, size int) Command { return &Return{Val: val, Size: size} }
func (c *Return) Inputs() []*Value {
	if c.Val == nil {
		return nil
	}
	return []*Value{c.Val}
}
func (c *Return) AbsSpotPref() map[*Value][]Spot {
	if c.Val == nil {
		return nil
	}
	return map[*Value][]Spot{c.Val: {RegSpot{RAX}}}
}
func (c *Return) String() string {
	if c.Val == nil {
		return "return"
	}
	return "return " + ref(c.Val)
}
func (c *Return) Lower(spots SpotMap, sink AsmSink) {
	if c.Val != nil {
		if spots[c.Val] != (RegSpot{RAX}) {
			sink.Mov(c.Size, spots[c.Val], RegSpot{RAX})
		}
	}
	sink.Ret()
}

// Call implements the System V AMD64 integer argument-register
// convention: up to six integer/pointer arguments in
// RDI,RSI,RDX,RCX,R8,R9, result in RAX. The generator reports a call
// with more than six arguments as an Unsupported diagnostic instead of
// constructing a Call for it.
type Call struct {
	Base
	Dst    *Value // nil if the callee returns void
	Target string
	Args   []*Value
	Size   int // Dst's size, if any
}

var sysvArgRegs = []RegName{RDI, RSI, RDX, RCX, R8, R9}

func NewCall(dst *Value, target string, args []*Value, size int) Command {
	return &Call{Dst: dst, Target: target, Args: args, Size: size}
}

func (c *Call) Inputs() []*Value { return c.Args }
func (c *Call) Outputs() []*Value {
	if c.Dst == nil {
		return nil
	}
	return []*Value{c.Dst}
}
func (c *Call) Clobber() []Spot {
	clobbered := make([]Spot, 0, len(AllocatableRegs))
	for _, r := range AllocatableRegs {
		clobbered = append(clobbered, RegSpot{r})
	}
	return clobbered
}
func (c *Call) AbsSpotPref() map[*Value][]Spot {
	prefs := map[*Value][]Spot{}
	for i, a := range c.Args {
		if i < len(sysvArgRegs) {
			prefs[a] = []Spot{RegSpot{sysvArgRegs[i]}}
		}
	}
	if c.Dst != nil {
		prefs[c.Dst] = []Spot{RegSpot{RAX}}
	}
	return prefs
}
func (c *Call) String() string {
	if c.Dst == nil {
		return fmt.Sprintf("call %s", c.Target)
	}
	return fmt.Sprintf("%s = call %s", ref(c.Dst), c.Target)
}
func (c *Call) Lower(spots SpotMap, sink AsmSink) {
	for i, a := range c.Args {
		if i >= len(sysvArgRegs) {
			break
		}
		want := RegSpot{sysvArgRegs[i]}
		if spots[a] != want {
			sink.Mov(8, spots[a], want)
		}
	}
	sink.Call(c.Target)
	if c.Dst != nil && spots[c.Dst] != (RegSpot{RAX}) {
		sink.Mov(c.Size, RegSpot{RAX}, spots[c.Dst])
	}
}

// LoadArg materializes the Nth incoming parameter into Dst; the
// generator emits one per parameter at function entry. Lowering is a
// no-op when the allocator happened to assign Dst the same register
// the ABI already placed the argument in.
type LoadArg struct {
	Base
	Dst   *Value
	Index int
	Size  int
}

func NewLoadArg(dst *Value, index, size int) Command { return &LoadArg{Dst: dst, Index: index, Size: size} }
func (c *LoadArg) Outputs() []*Value                 { return []*Value{c.Dst} }
func (c *LoadArg) AbsSpotPref() map[*Value][]Spot {
	if c.Index < len(sysvArgRegs) {
		return map[*Value][]Spot{c.Dst: {RegSpot{sysvArgRegs[c.Index]}}}
	}
	return nil
}
func (c *LoadArg) String() string { return fmt.Sprintf("%s = arg[%d]", ref(c.Dst), c.Index) }
func (c *LoadArg) Lower(spots SpotMap, sink AsmSink) {
	if c.Index >= len(sysvArgRegs) {
		return
	}
	src := RegSpot{sysvArgRegs[c.Index]}
	dst := spots[c.Dst]
	if dst != src {
		sink.Mov(c.Size, src, dst)
	}
}
