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
	"fmt"

	"cmini/ast"
	"cmini/cerr"
	"cmini/ctype"
	"cmini/il"
)

// HomeSeed is the set of Value->Spot bindings the generator fixes
// ahead of time -- one per global variable and one per string literal
// -- which the driver merges into each function's HomeMap after
// ComputeHomeSpots has run, replacing any frame slot it assigned them.
type HomeSeed map[*il.Value]il.MemSpot

// Generator walks one preprocessed, parsed translation unit and
// produces an il.Program, dispatched by a type switch over ast nodes
// the way the teacher's GraphBuilder.build dispatches over its own
// toy-language AST -- kept as a type switch here, rather than a method
// per ast.Node, purely to avoid an ast<->ilgen import cycle.
type Generator struct {
	prog    *il.Program
	sym     *SymbolTable
	diags   *cerr.Collector
	fn      *il.Function
	labelN  int
	breakTo    []string
	continueTo []string
	seeds   HomeSeed
}

func NewGenerator(diags *cerr.Collector) *Generator {
	return &Generator{
		prog:  il.NewProgram(),
		sym:   NewSymbolTable(),
		diags: diags,
		seeds: HomeSeed{},
	}
}

// Seeds returns the label-based home spots for globals and string
// literals, for the driver to merge ahead of ComputeHomeSpots.
func (g *Generator) Seeds() HomeSeed { return g.seeds }

func (g *Generator) error(pos cerr.Range, format string, args ...interface{}) {
	g.diags.Add(cerr.Type, &pos, format, args...)
}

func (g *Generator) newLabel(tag string) string {
	g.labelN++
	return fmt.Sprintf(".L%s%d", tag, g.labelN)
}

func (g *Generator) emit(c il.Command) { g.fn.Commands = append(g.fn.Commands, c) }

// emitSet bridges a Value of one type into a Dst Value of another,
// inserting a Set only when sizes, signedness or _Bool normalization
// actually differ -- the common case (same type) is a direct register
// move the allocator will usually coalesce away entirely.
func (g *Generator) emitSet(dst *il.Value, src *il.Value, dstType *ctype.CType) {
	srcType := src.CType
	if srcType == dstType || (srcType != nil && dstType != nil && srcType.SizeOf() == dstType.SizeOf() &&
		srcType.IsIntegral() == dstType.IsIntegral() && !dstType.Bool && srcType.Signed == dstType.Signed) {
		g.emit(il.NewSet(dst, src, dstType.SizeOf(), srcType.SizeOf(), srcType.Signed, dstType.Bool))
		return
	}
	signExtend := srcType != nil && srcType.IsIntegral() && srcType.Signed
	g.emit(il.NewSet(dst, src, dstType.SizeOf(), srcSizeOf(src), signExtend, dstType.Bool))
}

func srcSizeOf(v *il.Value) int {
	if v.CType == nil {
		return 8
	}
	return v.CType.SizeOf()
}

// coerce materializes v as a fresh Value of type t when it isn't
// already, for use as the source operand of a Store.
func (g *Generator) coerce(v *il.Value, t *ctype.CType) *il.Value {
	if v.CType == t || (v.CType != nil && v.CType.SizeOf() == t.SizeOf() && v.CType.Signed == t.Signed && v.CType.IsIntegral() == t.IsIntegral()) {
		return v
	}
	dst := g.prog.NewValue(t)
	g.emitSet(dst, v, t)
	return dst
}

// Generate translates a whole translation unit: typedefs and struct
// tags are visible to every declaration that follows them (matching C
// scoping), so top-level declarations are processed strictly in
// source order in a single pass -- unlike a forward-referencing
// language, C requires this and the parser already relies on it
// through its own typedef-name table.
func (g *Generator) Generate(tu *ast.TranslationUnit) *il.Program {
	for _, d := range tu.Decls {
		g.genTopLevel(d)
	}
	return g.prog
}

func (g *Generator) genTopLevel(d ast.Decl) {
	switch dd := d.(type) {
	case *ast.TypedefDecl:
		g.sym.DeclareTypedef(dd.Name, dd.Type)
	case *ast.FuncDecl:
		g.genFuncDecl(dd)
	case *ast.VarDecl:
		g.genGlobalVar(dd)
	}
}

// genGlobalVar allocates a storage Value whose home spot is preseeded
// to a named label rather than an RBP offset, then records it in the
// symbol table as a RelativeLValue base so every function that
// references the global addresses it the same way a struct member
// would be addressed relative to its enclosing struct.
func (g *Generator) genGlobalVar(d *ast.VarDecl) {
	storage := g.prog.NewValue(d.Type)
	label := d.Name
	g.seeds[storage] = il.NewMemSpot(label, 0)
	g.sym.DeclareVar(d.Name, d.Type, storage, true)

	sym := &il.Symbol{Name: d.Name, Static: d.Storage == ast.StorageStatic, Defined: d.Init != nil, SizeBytes: d.Type.SizeOf()}
	if d.Storage == ast.StorageExtern && d.Init == nil {
		g.prog.Externs[d.Name] = sym
		return
	}
	if d.Init != nil {
		if lit, ok := d.Init.(*ast.IntLit); ok {
			sym.Init = g.prog.NewLiteral(d.Type, lit.Value)
		}
	}
	g.prog.Statics = append(g.prog.Statics, sym)
}

func (g *Generator) genFuncDecl(d *ast.FuncDecl) {
	sig := ctype.NewFunction(d.RetType, paramTypes(d.Params), d.HasProto)
	g.sym.DeclareFunc(d.Name, sig)
	if d.Body == nil {
		return
	}

	fn := &il.Function{Name: d.Name, RetType: d.RetType}
	g.fn = fn
	g.sym.Push()

	for i, p := range d.Params {
		pv := g.prog.NewValue(p.Type)
		fn.Params = append(fn.Params, pv)
		g.emit(il.NewLoadArg(pv, i, p.Type.SizeOf()))
		g.sym.DeclareVar(p.Name, p.Type, pv, false)
	}

	g.genStmt(d.Body)

	// every path must return; a fallthrough at the end of a void
	// function is a bare ret, matching the implicit-void-return rule.
	if len(fn.Commands) == 0 {
		g.emit(il.NewReturn(nil, 0))
	} else if _, ok := fn.Commands[len(fn.Commands)-1].(*il.Return); !ok {
		g.emit(il.NewReturn(nil, 0))
	}

	g.sym.Pop()
	g.prog.AddFunction(fn)
	g.fn = nil
}

func paramTypes(params []ast.Param) []*ctype.CType {
	out := make([]*ctype.CType, len(params))
	for i, p := range params {
		out[i] = p.Type
	}
	return out
}

// ---- statements ----

func (g *Generator) genStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.BlockStmt:
		g.sym.Push()
		for _, inner := range st.Stmts {
			g.genStmt(inner)
		}
		g.sym.Pop()
	case *ast.DeclStmt:
		g.genLocalVar(st.Decl)
	case *ast.ExprStmt:
		if st.X != nil {
			g.genExpr(st.X)
		}
	case *ast.IfStmt:
		g.genIf(st)
	case *ast.WhileStmt:
		g.genWhile(st)
	case *ast.ForStmt:
		g.genFor(st)
	case *ast.ReturnStmt:
		g.genReturn(st)
	case *ast.BreakStmt:
		g.emit(il.NewJump(g.breakTo[len(g.breakTo)-1]))
	case *ast.ContinueStmt:
		g.emit(il.NewJump(g.continueTo[len(g.continueTo)-1]))
	default:
		g.error(s.Pos(), "unsupported statement")
	}
}

// genLocalVar allocates the variable's persistent Value. It stays an
// unaddressed virtual register -- living only in the interference
// graph, never in memory -- unless it's a struct/array (pinned
// unconditionally by a throwaway AddrOf, since a composite's size
// might coincidentally equal 1/2/4/8 and dodge the size-based pin) or
// until some later `&name` expression forces it to memory itself.
func (g *Generator) genLocalVar(d *ast.VarDecl) {
	storage := g.prog.NewValue(d.Type)
	g.sym.DeclareVar(d.Name, d.Type, storage, false)

	if d.Storage == ast.StorageStatic {
		pos := d.Pos()
		g.diags.Add(cerr.Unsupported, &pos, "static local storage is not supported")
		return
	}

	if d.Type.IsStruct() || d.Type.IsArray() {
		junk := g.prog.NewValue(ctype.NewPointer(d.Type))
		g.emit(il.NewAddrOf(junk, storage))
	}

	if d.Init == nil {
		return
	}
	v, _ := g.genExpr(d.Init)
	g.emitSet(storage, v, d.Type)
}

func (g *Generator) genIf(st *ast.IfStmt) {
	cond, _ := g.genExpr(st.Cond)
	elseLabel := g.newLabel("else")
	endLabel := g.newLabel("endif")
	g.emit(il.NewJumpZero(cond, elseLabel, condSize(cond)))
	g.genStmt(st.Then)
	if st.Else != nil {
		g.emit(il.NewJump(endLabel))
		g.emit(il.NewLabel(elseLabel))
		g.genStmt(st.Else)
		g.emit(il.NewLabel(endLabel))
	} else {
		g.emit(il.NewLabel(elseLabel))
	}
}

func (g *Generator) genWhile(st *ast.WhileStmt) {
	top := g.newLabel("loop")
	end := g.newLabel("end")
	g.emit(il.NewLabel(top))
	cond, _ := g.genExpr(st.Cond)
	g.emit(il.NewJumpZero(cond, end, condSize(cond)))
	g.breakTo = append(g.breakTo, end)
	g.continueTo = append(g.continueTo, top)
	g.genStmt(st.Body)
	g.breakTo = g.breakTo[:len(g.breakTo)-1]
	g.continueTo = g.continueTo[:len(g.continueTo)-1]
	g.emit(il.NewJump(top))
	g.emit(il.NewLabel(end))
}

func (g *Generator) genFor(st *ast.ForStmt) {
	g.sym.Push()
	if st.Init != nil {
		g.genStmt(st.Init)
	}
	top := g.newLabel("loop")
	post := g.newLabel("post")
	end := g.newLabel("end")
	g.emit(il.NewLabel(top))
	if st.Cond != nil {
		cond, _ := g.genExpr(st.Cond)
		g.emit(il.NewJumpZero(cond, end, condSize(cond)))
	}
	g.breakTo = append(g.breakTo, end)
	g.continueTo = append(g.continueTo, post)
	g.genStmt(st.Body)
	g.breakTo = g.breakTo[:len(g.breakTo)-1]
	g.continueTo = g.continueTo[:len(g.continueTo)-1]
	g.emit(il.NewLabel(post))
	if st.Post != nil {
		g.genExpr(st.Post)
	}
	g.emit(il.NewJump(top))
	g.emit(il.NewLabel(end))
	g.sym.Pop()
}

func (g *Generator) genReturn(st *ast.ReturnStmt) {
	if st.Value == nil {
		g.emit(il.NewReturn(nil, 0))
		return
	}
	v, t := g.genExpr(st.Value)
	retType := g.fn.RetType
	if retType != nil && !retType.IsVoid() {
		v = g.coerce(v, retType)
		t = retType
	}
	g.emit(il.NewReturn(v, t.SizeOf()))
}

func condSize(v *il.Value) int {
	if v.CType == nil {
		return 4
	}
	return v.CType.SizeOf()
}
