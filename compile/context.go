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

// Package compile drives one invocation of the cmini pipeline end to
// end: preprocess, lex, parse, generate IL, allocate registers, emit
// assembly, then hand the result to the system assembler and linker.
package compile

import (
	"cmini/cerr"

	log "github.com/sirupsen/logrus"
)

// CompilerContext replaces the process-wide globals the teacher's
// compiler leans on (DebugPrintAst, DebugDumpSSA, and the implicit
// os.Exit-on-error style of syntaxError): every field a single
// compilation needs -- its diagnostics, its include search path, its
// chosen assembly syntax -- lives here instead, one instance per
// CompileFiles call, so nothing about one compilation leaks into the
// next even when the driver is reused (tests construct a fresh
// CompilerContext per case for exactly this reason).
type CompilerContext struct {
	Diags *cerr.Collector

	// SysIncludeDir is the directory angle-bracket #include searches,
	// set by -I.
	SysIncludeDir string

	// IntelSyntax selects the emitted assembly dialect; Intel is the
	// CLI default.
	IntelSyntax bool

	// RegAllocPerf, when set, makes CompileFiles log the allocator's
	// Stats for every function it compiles.
	RegAllocPerf bool

	// Log is the operational logger for phase-boundary tracing,
	// distinct from the diagnostic text Diags.Print writes to stderr.
	Log *log.Logger
}

// NewCompilerContext builds a context with a fresh Collector and a
// logger defaulted to Warn level, matching the driver's default
// verbosity before any -v flag is consulted.
func NewCompilerContext() *CompilerContext {
	logger := log.New()
	logger.SetLevel(log.WarnLevel)
	return &CompilerContext{
		Diags: cerr.NewCollector(),
		Log:   logger,
	}
}
