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
	"cmini/ast"
	"cmini/cerr"
	"cmini/ctype"
	"cmini/il"
)

// genExpr translates e and returns the Value holding its result
// together with the CType the generator used to compute it (which is
// e's static type, not necessarily the type of the Value returned by
// an inner call -- callers needing the lvalue itself use genLValue).
func (g *Generator) genExpr(e ast.Expr) (*il.Value, *ctype.CType) {
	switch x := e.(type) {
	case *ast.IntLit:
		v := g.prog.NewLiteral(x.Type, x.Value)
		if x.Value == 0 {
			v.NullPtrConst = true
		}
		return v, x.Type

	case *ast.StrLit:
		return g.genStrLit(x), ctype.NewPointer(ctype.Int8)

	case *ast.Ident, *ast.IndexExpr:
		lv := g.genLValue(e)
		return lv.Load(g), lv.CType()

	case *ast.MemberExpr:
		lv := g.genLValue(e)
		return lv.Load(g), lv.CType()

	case *ast.UnaryExpr:
		return g.genUnary(x)

	case *ast.IncDecExpr:
		return g.genIncDec(x)

	case *ast.BinaryExpr:
		return g.genBinary(x)

	case *ast.AssignExpr:
		return g.genAssign(x)

	case *ast.CallExpr:
		return g.genCall(x)

	case *ast.CastExpr:
		v, _ := g.genExpr(x.X)
		return g.coerce(v, x.Type), x.Type

	case *ast.SizeofExpr:
		var sz uint64
		if x.TypeArg != nil {
			sz = uint64(x.TypeArg.SizeOf())
		} else {
			_, t := g.genExprTypeOnly(x.ValueArg)
			sz = uint64(t.SizeOf())
		}
		return g.prog.NewLiteral(ctype.UInt64, int64(sz)), ctype.UInt64

	case *ast.TernaryExpr:
		return g.genTernary(x)

	default:
		g.error(e.Pos(), "unsupported expression")
		return g.prog.NewLiteral(ctype.Int32, 0), ctype.Int32
	}
}

// genExprTypeOnly evaluates e purely to learn its static type, for
// sizeof(expr): the subexpression is never evaluated at runtime, so
// the walk emits into a scratch function that is then discarded, and
// no command of it reaches the function being generated.
func (g *Generator) genExprTypeOnly(e ast.Expr) (*il.Value, *ctype.CType) {
	saved := g.fn
	g.fn = &il.Function{}
	defer func() { g.fn = saved }()
	return g.genExpr(e)
}

func (g *Generator) genStrLit(x *ast.StrLit) *il.Value {
	storage := g.prog.NewValue(ctype.NewArray(ctype.Int8, nil))
	label := g.newLabel("str")
	g.seeds[storage] = il.NewMemSpot(label, 0)
	withNul := append(append([]byte{}, x.Value...), 0)
	g.prog.StringLits[storage] = withNul

	ptr := g.prog.NewValue(ctype.NewPointer(ctype.Int8))
	g.emit(il.NewAddrRel(ptr, storage, 0))
	return ptr
}

// genLValue resolves e to an LValue without loading it, for use on
// the left of an assignment, as the operand of &, or as ++/--'s
// target.
func (g *Generator) genLValue(e ast.Expr) LValue {
	switch x := e.(type) {
	case *ast.Ident:
		sym, ok := g.sym.Lookup(x.Name)
		if !ok || sym.kind != symVar {
			g.error(e.Pos(), "undeclared identifier %q", x.Name)
			return DirectLValue{Val: g.prog.NewValue(ctype.Int32)}
		}
		if sym.global || sym.typ.IsStruct() || sym.typ.IsArray() {
			return RelativeLValue{Base: sym.lvSpot, Offset: 0, Typ: sym.typ}
		}
		return DirectLValue{Val: sym.lvSpot}

	case *ast.UnaryExpr:
		if x.Op == "*" {
			ptr, pt := g.genExpr(x.X)
			return IndirectLValue{Ptr: ptr, Typ: pt.Elem}
		}

	case *ast.IndexExpr:
		return g.genIndexLValue(x)

	case *ast.MemberExpr:
		return g.genMemberLValue(x)
	}
	g.error(e.Pos(), "expression is not assignable")
	return DirectLValue{Val: g.prog.NewValue(ctype.Int32)}
}

func (g *Generator) genIndexLValue(x *ast.IndexExpr) LValue {
	base := g.genLValue(x.X)
	elemType := base.CType().Elem
	if lit, ok := x.Index.(*ast.IntLit); ok {
		if rel, ok := base.(RelativeLValue); ok {
			return RelativeLValue{Base: rel.Base, Offset: rel.Offset + lit.Value*int64(elemType.SizeOf()), Typ: elemType}
		}
	}
	ptr := g.decayToPointer(x.X, base)
	idx, _ := g.genExpr(x.Index)
	addr := g.addPointerOffset(ptr, idx, elemType.SizeOf())
	return IndirectLValue{Ptr: addr, Typ: elemType}
}

// decayToPointer turns an array lvalue into a pointer Value (its
// address), or simply loads a pointer-typed expression.
func (g *Generator) decayToPointer(e ast.Expr, base LValue) *il.Value {
	if base.CType().IsArray() {
		return base.Addr(g)
	}
	v, _ := g.genExpr(e)
	return v
}

func (g *Generator) genMemberLValue(x *ast.MemberExpr) LValue {
	var structType *ctype.CType
	var base LValue
	if x.Arrow {
		ptr, pt := g.genExpr(x.X)
		structType = pt.Elem
		base = IndirectLValue{Ptr: ptr, Typ: structType}
	} else {
		base = g.genLValue(x.X)
		structType = base.CType()
	}
	member, offset := findMember(structType, x.Member)
	if member == nil {
		g.error(x.Pos(), "no member %q on %s", x.Member, structType.String())
		return DirectLValue{Val: g.prog.NewValue(ctype.Int32)}
	}
	switch b := base.(type) {
	case RelativeLValue:
		return RelativeLValue{Base: b.Base, Offset: b.Offset + int64(offset), Typ: member}
	case IndirectLValue:
		addr := g.addPointerOffset(b.Ptr, g.prog.NewLiteral(ctype.Int64, int64(offset)), 1)
		return IndirectLValue{Ptr: addr, Typ: member}
	}
	addr := base.Addr(g)
	return IndirectLValue{Ptr: g.addPointerOffset(addr, g.prog.NewLiteral(ctype.Int64, int64(offset)), 1), Typ: member}
}

func findMember(t *ctype.CType, name string) (*ctype.CType, int) {
	for _, m := range t.Members {
		if m.Name == name {
			return m.Type, m.Offset
		}
	}
	return nil, 0
}

// addPointerOffset computes ptr + idx*scale as a fresh pointer Value.
func (g *Generator) addPointerOffset(ptr *il.Value, idx *il.Value, scale int) *il.Value {
	scaled := idx
	if scale != 1 {
		scaled = g.prog.NewValue(ctype.Int64)
		g.emit(il.NewMul(scaled, g.coerce(idx, ctype.Int64), g.prog.NewLiteral(ctype.Int64, int64(scale)), 8))
	} else {
		scaled = g.coerce(idx, ctype.Int64)
	}
	dst := g.prog.NewValue(ptr.CType)
	g.emit(il.NewAdd(dst, g.coerce(ptr, ctype.Int64), scaled, 8))
	return dst
}

func (g *Generator) genUnary(x *ast.UnaryExpr) (*il.Value, *ctype.CType) {
	switch x.Op {
	case "&":
		lv := g.genLValue(x.X)
		if d, ok := lv.(DirectLValue); ok {
			// taking the address forces this virtual register into
			// memory: ComputeHomeSpots pins any value named by a
			// References edge, so an AddrOf here is what turns d.Val
			// from a register candidate into a permanent frame slot.
			ptr := g.prog.NewValue(ctype.NewPointer(d.Val.CType))
			g.emit(il.NewAddrOf(ptr, d.Val))
			return ptr, ctype.NewPointer(d.Val.CType)
		}
		return lv.Addr(g), ctype.NewPointer(lv.CType())
	case "*":
		ptr, pt := g.genExpr(x.X)
		elem := pt.Elem
		dst := g.prog.NewValue(elem)
		g.emit(il.NewReadAt(dst, ptr, elem.SizeOf()))
		return dst, elem
	case "-":
		v, t := g.genExpr(x.X)
		t = ctype.Promote(t)
		v = g.coerce(v, t)
		dst := g.prog.NewValue(t)
		g.emit(il.NewNeg(dst, v, t.SizeOf()))
		return dst, t
	case "!":
		v, t := g.genExpr(x.X)
		zero := g.prog.NewLiteral(t, 0)
		dst := g.prog.NewValue(ctype.Int32)
		g.emit(il.NewEqualCmp(dst, v, zero, t.SizeOf()))
		wide := g.prog.NewValue(ctype.Int32)
		g.emitSet(wide, dst, ctype.Int32)
		return wide, ctype.Int32
	case "~":
		v, t := g.genExpr(x.X)
		t = ctype.Promote(t)
		v = g.coerce(v, t)
		dst := g.prog.NewValue(t)
		g.emit(il.NewNot(dst, v, t.SizeOf()))
		return dst, t
	}
	g.error(x.Pos(), "unsupported unary operator %q", x.Op)
	return g.prog.NewLiteral(ctype.Int32, 0), ctype.Int32
}

func (g *Generator) genIncDec(x *ast.IncDecExpr) (*il.Value, *ctype.CType) {
	lv := g.genLValue(x.X)
	t := lv.CType()
	old := lv.Load(g)
	step := 1
	if t.IsPointer() {
		step = t.Elem.SizeOf()
	}
	fresh := g.prog.NewValue(t)
	one := g.prog.NewLiteral(ctype.Int64, int64(step))
	if x.Op == "++" {
		g.emit(il.NewAdd(fresh, old, one, t.SizeOf()))
	} else {
		g.emit(il.NewSub(fresh, old, one, t.SizeOf()))
	}
	lv.Store(g, fresh)
	if x.Postfix {
		return old, t
	}
	return fresh, t
}

func (g *Generator) genAssign(x *ast.AssignExpr) (*il.Value, *ctype.CType) {
	lv := g.genLValue(x.Target)
	t := lv.CType()
	if x.Op == "=" {
		v, _ := g.genExpr(x.Value)
		coerced := g.coerce(v, t)
		lv.Store(g, coerced)
		return coerced, t
	}
	op := x.Op[:len(x.Op)-1] // "+=" -> "+"
	old := lv.Load(g)
	rhs, _ := g.genExpr(x.Value)
	result := g.applyBinOp(x.Pos(), op, old, t, rhs, rhsTypeOf(rhs))
	coerced := g.coerce(result, t)
	lv.Store(g, coerced)
	return coerced, t
}

func rhsTypeOf(v *il.Value) *ctype.CType {
	if v.CType != nil {
		return v.CType
	}
	return ctype.Int32
}

func (g *Generator) genBinary(x *ast.BinaryExpr) (*il.Value, *ctype.CType) {
	switch x.Op {
	case "&&", "||":
		return g.genLogical(x)
	}
	a, ta := g.genExpr(x.X)
	b, tb := g.genExpr(x.Y)
	return g.applyBinOp(x.Pos(), x.Op, a, ta, b, tb), g.binResultType(x.Op, ta, tb)
}

func (g *Generator) binResultType(op string, ta, tb *ctype.CType) *ctype.CType {
	switch op {
	case "==", "!=", "<", ">", "<=", ">=":
		return ctype.Int32
	}
	if ta.IsPointer() {
		return ta
	}
	if tb.IsPointer() {
		return tb
	}
	return ctype.UsualArithmeticConversion(ta, tb)
}

// applyBinOp implements the usual arithmetic conversions before
// emitting the IL command, with pointer arithmetic (ptr+int, ptr-int,
// ptr-ptr) handled before arithmetic conversion applies since C
// exempts it from the integer UAC table entirely.
func (g *Generator) applyBinOp(pos cerr.Range, op string, a *il.Value, ta *ctype.CType, b *il.Value, tb *ctype.CType) *il.Value {
	if ta.IsPointer() && !tb.IsPointer() && (op == "+" || op == "-") {
		return g.addPointerOffset(a, g.negateForPtrSub(op, b), ta.Elem.SizeOf())
	}
	if tb.IsPointer() && op == "+" {
		return g.addPointerOffset(b, a, tb.Elem.SizeOf())
	}
	if ta.IsPointer() && tb.IsPointer() && op == "-" {
		diff := g.prog.NewValue(ctype.Int64)
		g.emit(il.NewSub(diff, g.coerce(a, ctype.Int64), g.coerce(b, ctype.Int64), 8))
		scale := g.prog.NewValue(ctype.Int64)
		g.emitSet(scale, g.prog.NewLiteral(ctype.Int64, int64(ta.Elem.SizeOf())), ctype.Int64)
		result := g.prog.NewValue(ctype.Int64)
		g.emit(il.NewDiv(result, diff, scale, 8, true))
		return result
	}
	if (op == "==" || op == "!=") && (ta.IsPointer() || tb.IsPointer()) {
		return g.applyPointerEquality(pos, op, a, ta, b, tb)
	}

	rt := ctype.UsualArithmeticConversion(ta, tb)
	size := rt.SizeOf()

	if a.Literal != nil && b.Literal != nil {
		la := shiftIntoRange(*a.Literal, rt)
		lb := shiftIntoRange(*b.Literal, rt)
		if folded, ok := foldConst(op, la, lb, rt); ok {
			resultType := rt
			if isComparisonOp(op) {
				resultType = ctype.Int32
			}
			return g.prog.NewLiteral(resultType, shiftIntoRange(folded, resultType))
		}
	}

	ca, cb := g.coerce(a, rt), g.coerce(b, rt)
	if (op == "/" || op == "%") && cb.Literal != nil {
		staged := g.prog.NewValue(rt)
		g.emitSet(staged, cb, rt)
		cb = staged
	}
	dst := g.prog.NewValue(rt)
	switch op {
	case "+":
		g.emit(il.NewAdd(dst, ca, cb, size))
		return dst
	case "-":
		g.emit(il.NewSub(dst, ca, cb, size))
		return dst
	case "*":
		g.emit(il.NewMul(dst, ca, cb, size))
		return dst
	case "/":
		g.emit(il.NewDiv(dst, ca, cb, size, rt.Signed))
		return dst
	case "%":
		g.emit(il.NewMod(dst, ca, cb, size, rt.Signed))
		return dst
	case "&":
		g.emit(il.NewAnd(dst, ca, cb, size))
		return dst
	case "|":
		g.emit(il.NewOr(dst, ca, cb, size))
		return dst
	case "^":
		g.emit(il.NewXor(dst, ca, cb, size))
		return dst
	case "<<":
		d := g.prog.NewValue(rt)
		g.emit(il.NewLShift(d, ca, g.coerce(b, ctype.Int32), size))
		return d
	case ">>":
		d := g.prog.NewValue(rt)
		g.emit(il.NewRShift(d, ca, g.coerce(b, ctype.Int32), size, rt.Signed))
		return d
	case "==":
		d := g.prog.NewValue(ctype.Int32)
		g.emit(il.NewEqualCmp(d, ca, cb, size))
		return widenBool(g, d)
	case "!=":
		d := g.prog.NewValue(ctype.Int32)
		g.emit(il.NewNotEqualCmp(d, ca, cb, size))
		return widenBool(g, d)
	case "<":
		d := g.prog.NewValue(ctype.Int32)
		g.emit(il.NewLessCmp(d, ca, cb, size, rt.Signed))
		return widenBool(g, d)
	case ">":
		d := g.prog.NewValue(ctype.Int32)
		g.emit(il.NewGreaterCmp(d, ca, cb, size, rt.Signed))
		return widenBool(g, d)
	case "<=":
		d := g.prog.NewValue(ctype.Int32)
		g.emit(il.NewLessOrEqCmp(d, ca, cb, size, rt.Signed))
		return widenBool(g, d)
	case ">=":
		d := g.prog.NewValue(ctype.Int32)
		g.emit(il.NewGreaterOrEqCmp(d, ca, cb, size, rt.Signed))
		return widenBool(g, d)
	}
	return dst
}

// applyPointerEquality implements the null-pointer-constant comparison
// rule: a pointer compared against a literal integer 0 is valid
// regardless of that literal's own static ctype, because its
// NullPtrConst flag -- not its type -- licenses the comparison;
// anything else compared against a pointer is a type mismatch.
// Grounded on shivyc's comparison_exprs.py _Equality._nonarith, which
// casts a null-constant operand to the other side's pointer type and
// otherwise reports "comparison between incomparable types".
func (g *Generator) applyPointerEquality(pos cerr.Range, op string, a *il.Value, ta *ctype.CType, b *il.Value, tb *ctype.CType) *il.Value {
	pt, other, otherT := ta, b, tb
	if !ta.IsPointer() {
		pt, other, otherT = tb, a, ta
	}
	if !otherT.IsPointer() && !other.NullPtrConst {
		g.error(pos, "comparison between pointer and non-null integer %q", otherT.String())
	}
	ca, cb := g.coerce(a, pt), g.coerce(b, pt)
	dst := g.prog.NewValue(ctype.Int32)
	if op == "==" {
		g.emit(il.NewEqualCmp(dst, ca, cb, pt.SizeOf()))
	} else {
		g.emit(il.NewNotEqualCmp(dst, ca, cb, pt.SizeOf()))
	}
	return widenBool(g, dst)
}

// shiftIntoRange wraps v into t's representable range, following
// shivyc's shift_into_range: a no-op for 64-bit types (Go's int64
// arithmetic is already two's-complement mod 2^64), and an explicit
// mask-then-sign-extend for narrower int sizes.
func shiftIntoRange(v int64, t *ctype.CType) int64 {
	size := t.SizeOf()
	if size >= 8 {
		return v
	}
	bits := uint(size * 8)
	mask := int64(1)<<bits - 1
	v &= mask
	if t.Signed {
		signBit := int64(1) << (bits - 1)
		if v&signBit != 0 {
			v -= int64(1) << bits
		}
	}
	return v
}

func isComparisonOp(op string) bool {
	switch op {
	case "==", "!=", "<", ">", "<=", ">=":
		return true
	}
	return false
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// foldConst evaluates op on two literal operands already shifted into
// rt's range, mirroring shivyc's _arith_const: the caller falls back
// to emitting a runtime Command when ok is false (division or modulus
// by a literal zero, or a shift count out of range for the width).
func foldConst(op string, a, b int64, rt *ctype.CType) (int64, bool) {
	switch op {
	case "+":
		return a + b, true
	case "-":
		return a - b, true
	case "*":
		return a * b, true
	case "/":
		if b == 0 {
			return 0, false
		}
		if rt.Signed {
			return a / b, true
		}
		return int64(uint64(a) / uint64(b)), true
	case "%":
		if b == 0 {
			return 0, false
		}
		if rt.Signed {
			return a % b, true
		}
		return int64(uint64(a) % uint64(b)), true
	case "&":
		return a & b, true
	case "|":
		return a | b, true
	case "^":
		return a ^ b, true
	case "<<":
		if b < 0 || b >= 64 {
			return 0, false
		}
		return a << uint(b), true
	case ">>":
		if b < 0 || b >= 64 {
			return 0, false
		}
		if rt.Signed {
			return a >> uint(b), true
		}
		return int64(uint64(a) >> uint(b)), true
	case "==":
		return boolInt(a == b), true
	case "!=":
		return boolInt(a != b), true
	case "<":
		if rt.Signed {
			return boolInt(a < b), true
		}
		return boolInt(uint64(a) < uint64(b)), true
	case ">":
		if rt.Signed {
			return boolInt(a > b), true
		}
		return boolInt(uint64(a) > uint64(b)), true
	case "<=":
		if rt.Signed {
			return boolInt(a <= b), true
		}
		return boolInt(uint64(a) <= uint64(b)), true
	case ">=":
		if rt.Signed {
			return boolInt(a >= b), true
		}
		return boolInt(uint64(a) >= uint64(b)), true
	}
	return 0, false
}

// widenBool is a no-op placeholder: cmpOp already writes a 0/1 value
// sized for Int32 in this generator's usage, so no extra Set is
// needed; kept as a named step so the comparison cases above read the
// same way regardless of whether widening is ever required later.
func widenBool(g *Generator, d *il.Value) *il.Value { return d }

// negateForPtrSub turns `ptr - idx` into `ptr + (-idx)`: a literal
// index negates at compile time, anything else gets an explicit Neg.
func (g *Generator) negateForPtrSub(op string, v *il.Value) *il.Value {
	if op != "-" {
		return v
	}
	if v.Literal != nil {
		return g.prog.NewLiteral(rhsTypeOf(v), -*v.Literal)
	}
	t := rhsTypeOf(v)
	dst := g.prog.NewValue(t)
	g.emit(il.NewNeg(dst, v, t.SizeOf()))
	return dst
}

func (g *Generator) genLogical(x *ast.BinaryExpr) (*il.Value, *ctype.CType) {
	result := g.prog.NewValue(ctype.Int32)
	shortCircuit := g.newLabel("sc")
	end := g.newLabel("scend")

	a, ta := g.genExpr(x.X)
	zero := g.prog.NewLiteral(ta, 0)
	cmpA := g.prog.NewValue(ctype.Int32)
	g.emit(il.NewNotEqualCmp(cmpA, a, zero, ta.SizeOf()))

	if x.Op == "&&" {
		g.emit(il.NewJumpZero(cmpA, shortCircuit, 4))
	} else {
		g.emit(il.NewJumpNotZero(cmpA, shortCircuit, 4))
	}

	b, tb := g.genExpr(x.Y)
	zeroB := g.prog.NewLiteral(tb, 0)
	cmpB := g.prog.NewValue(ctype.Int32)
	g.emit(il.NewNotEqualCmp(cmpB, b, zeroB, tb.SizeOf()))
	g.emitSet(result, cmpB, ctype.Int32)
	g.emit(il.NewJump(end))

	g.emit(il.NewLabel(shortCircuit))
	final := int64(0)
	if x.Op == "||" {
		final = 1
	}
	g.emitSet(result, g.prog.NewLiteral(ctype.Int32, final), ctype.Int32)

	g.emit(il.NewLabel(end))
	return result, ctype.Int32
}

func (g *Generator) genTernary(x *ast.TernaryExpr) (*il.Value, *ctype.CType) {
	cond, _ := g.genExpr(x.Cond)
	elseLabel := g.newLabel("telse")
	end := g.newLabel("tend")
	result := g.prog.NewValue(ctype.Int32)

	g.emit(il.NewJumpZero(cond, elseLabel, condSize(cond)))
	thenV, thenT := g.genExpr(x.Then)
	result = g.prog.NewValue(thenT)
	g.emitSet(result, thenV, thenT)
	g.emit(il.NewJump(end))

	g.emit(il.NewLabel(elseLabel))
	elseV, _ := g.genExpr(x.Else)
	g.emitSet(result, elseV, thenT)

	g.emit(il.NewLabel(end))
	return result, thenT
}

func (g *Generator) genCall(x *ast.CallExpr) (*il.Value, *ctype.CType) {
	ident, ok := x.Callee.(*ast.Ident)
	if !ok {
		g.error(x.Pos(), "indirect calls are not supported")
		return g.prog.NewLiteral(ctype.Int32, 0), ctype.Int32
	}
	sym, ok := g.sym.Lookup(ident.Name)
	if !ok || sym.kind != symFunc {
		g.error(x.Pos(), "call to undeclared function %q", ident.Name)
		return g.prog.NewLiteral(ctype.Int32, 0), ctype.Int32
	}
	if len(x.Args) > 6 {
		pos := x.Pos()
		g.diags.Add(cerr.Unsupported, &pos, "calls with more than six arguments are not supported")
		return g.prog.NewLiteral(ctype.Int32, 0), ctype.Int32
	}
	sig := sym.funcSig
	var args []*il.Value
	for i, a := range x.Args {
		v, t := g.genExpr(a)
		if i < len(sig.Params) {
			v = g.coerce(v, sig.Params[i])
		} else {
			v = g.coerce(v, ctype.Promote(t))
		}
		args = append(args, v)
	}
	retType := sig.Ret
	if retType.IsVoid() {
		g.emit(il.NewCall(nil, ident.Name, args, 0))
		return nil, ctype.Void
	}
	dst := g.prog.NewValue(retType)
	g.emit(il.NewCall(dst, ident.Name, args, retType.SizeOf()))
	return dst, retType
}
