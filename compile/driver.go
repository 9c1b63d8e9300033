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
package compile

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"cmini/asmgen"
	"cmini/ast"
	"cmini/cerr"
	"cmini/il"
	"cmini/ilgen"
	"cmini/regalloc"
	"cmini/utils"
)

func libNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// parseSource runs the preprocessor, lexer and parser over one .c file
// and returns its translation unit. Diagnostics accumulate in
// ctx.Diags rather than aborting the phase early, matching §7's "a
// single bad declaration doesn't hide the rest of the file's errors".
func parseSource(ctx *CompilerContext, path string) *ast.TranslationUnit {
	ctx.Log.WithField("file", path).Debug("preprocessing")
	text, err := ast.Preprocess(path, ctx.SysIncludeDir)
	if err != nil {
		ctx.Diags.Add(cerr.Lex, nil, "%s: %v", path, err)
		return nil
	}

	ctx.Log.WithField("file", path).Debug("lexing and parsing")
	lexer := ast.NewLexer(path, strings.NewReader(text), ctx.Diags)
	parser := ast.NewParser(lexer, ctx.Diags)
	return parser.ParseTranslationUnit()
}

// sizeOfValue is the sizing oracle ComputeHomeSpots needs; an untyped
// Value (a raw pointer-width temporary the generator never attaches a
// CType to) defaults to the machine word, matching ilgen's own
// srcSizeOf fallback for the same case.
func sizeOfValue(v *il.Value) int {
	if v.CType == nil {
		return 8
	}
	return v.CType.SizeOf()
}

// generateProgram runs the IL generator over tu and, for every
// function, liveness analysis, home-spot pre-allocation and the
// graph-coloring allocator, writing the finished assembly text into w.
// Global variables and string literals are pre-seeded by the generator
// at a label-based MemSpot (ilgen.Generator.Seeds) rather than an RBP
// offset; that seed set is merged into every function's HomeMap after
// ComputeHomeSpots runs so ReadRel/SetRel/AddrRel's type assertion to
// MemSpot always succeeds for them, overriding the plain RBP slot
// ComputeHomeSpots would otherwise have assigned a same-function
// reference to one of them by coincidence of size.
func generateProgram(ctx *CompilerContext, tu *ast.TranslationUnit, w *asmgen.Writer) {
	gen := ilgen.NewGenerator(ctx.Diags)
	prog := gen.Generate(tu)
	if ctx.Diags.HasErrors() {
		return
	}

	seeds := regalloc.HomeMap(gen.Seeds())
	for v, bytes := range prog.StringLits {
		label := seeds[v].Base.(string)
		w.DeclareString(label, bytes)
	}
	for _, sym := range prog.Statics {
		if sym.Init != nil {
			w.DeclareData(sym.Name, *sym.Init.Literal)
		} else {
			w.DeclareCommon(sym.Name, sym.SizeBytes)
		}
	}

	for _, name := range prog.FunctionOrder {
		fn := prog.Functions[name]
		ctx.Log.WithField("func", name).Debug("allocating registers")

		liveness := regalloc.ComputeLiveness(fn.Commands)
		home, frameSize := regalloc.ComputeHomeSpots(fn, sizeOfValue)
		for v, spot := range seeds {
			home[v] = spot
		}

		spots, stats, err := regalloc.Allocate(fn, liveness, home, frameSize)
		if err != nil {
			ctx.Diags.Add(cerr.Unsupported, nil, "%s: %v", name, err)
			continue
		}
		if ctx.RegAllocPerf {
			log.WithFields(log.Fields{
				"func":              name,
				"total_values":      stats.TotalValues,
				"register_resident": stats.RegisterResident,
				"total_prefs":       stats.TotalPrefs,
				"matched_prefs":     stats.MatchedPrefs,
			}).Info("register allocator stats")
		}
		frame := frameSize
		for _, s := range spots {
			if m, ok := s.(il.MemSpot); ok && m.Base == (il.RegSpot{Name: il.RBP}) && -m.Offset > frame {
				frame = -m.Offset
			}
		}
		w.EmitFunction(fn, spots, int64(utils.Align16(int(frame))))
	}
}

// compileOne lowers one .c file to a .o file inside wd, returning the
// object file's path.
func compileOne(ctx *CompilerContext, wd, path string) (string, error) {
	tu := parseSource(ctx, path)
	if ctx.Diags.HasErrors() {
		return "", errors.Errorf("%s: compilation failed", path)
	}

	w := asmgen.NewWriter(ctx.IntelSyntax)
	generateProgram(ctx, tu, w)
	if ctx.Diags.HasErrors() {
		return "", errors.Errorf("%s: compilation failed", path)
	}

	libName := libNameFromPath(path)
	asmPath := filepath.Join(wd, libName+".s")
	if err := ioutil.WriteFile(asmPath, []byte(w.FullCode()), 0644); err != nil {
		return "", errors.Wrapf(err, "writing %s", asmPath)
	}

	ctx.Log.WithField("file", asmPath).Debug("assembling")
	if _, err := utils.ExecuteCmd(wd, "gcc", "-g", "-c", libName+".s"); err != nil {
		ctx.Diags.Add(cerr.Link, nil, "%v", err)
		return "", err
	}
	return filepath.Join(wd, libName+".o"), nil
}

// linkObjects invokes the system linker (via gcc, so libc's startup
// files and dynamic loader come along for free) to produce the final
// ELF executable named target.
func linkObjects(ctx *CompilerContext, wd, target string, objs []string) error {
	args := []string{"gcc", "-g", "-o", target}
	args = append(args, objs...)
	ctx.Log.WithField("objects", objs).Debug("linking")
	if _, err := utils.ExecuteCmd(wd, args...); err != nil {
		ctx.Diags.Add(cerr.Link, nil, "%v", err)
		return err
	}
	return nil
}

// CompileFiles implements §6's CLI contract: files is one or more .c
// or .o inputs, .c files go through the full pipeline and .o files
// pass straight to the linker, and the result is a single ELF
// executable named outPath. Each phase boundary checks
// ctx.Diags.HasErrors() before the next phase runs, per §7.
func CompileFiles(ctx *CompilerContext, files []string, outPath string) error {
	wd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "getwd")
	}

	var objs []string
	for _, f := range files {
		switch filepath.Ext(f) {
		case ".o":
			objs = append(objs, f)
		case ".c":
			abs := f
			if !filepath.IsAbs(abs) {
				abs = filepath.Join(wd, f)
			}
			obj, err := compileOne(ctx, wd, abs)
			if err != nil {
				return err
			}
			objs = append(objs, obj)
		default:
			ctx.Diags.Add(cerr.Link, nil, "unrecognized input file %q", f)
			return errors.Errorf("unrecognized input file %q", f)
		}
	}
	if ctx.Diags.HasErrors() {
		return errors.New("compilation failed")
	}

	target := outPath
	if !filepath.IsAbs(target) {
		target = filepath.Join(wd, target)
	}
	return linkObjects(ctx, wd, target, objs)
}

// CompileText compiles a single in-memory source string, writing it to
// a temp file first -- used by tests that want to drive the whole
// pipeline from a string literal rather than a file on disk, the way
// the teacher's own CompileText helper did for its toy language.
func CompileText(ctx *CompilerContext, source string) (string, error) {
	tmpDir, err := ioutil.TempDir("", "cmini")
	if err != nil {
		return "", errors.Wrap(err, "creating temp dir")
	}
	srcPath := filepath.Join(tmpDir, "input.c")
	if err := ioutil.WriteFile(srcPath, []byte(source), 0644); err != nil {
		return "", errors.Wrap(err, "writing temp source")
	}
	out := filepath.Join(tmpDir, "out")
	if err := CompileFiles(ctx, []string{srcPath}, out); err != nil {
		return "", err
	}
	return out, nil
}
