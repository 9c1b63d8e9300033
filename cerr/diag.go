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

// Package cerr holds the compiler's own diagnostic taxonomy and the
// per-compilation Collector that accumulates and prints them. This is
// distinct from Go error values returned by os/exec-backed driver code
// (see compile's linkObjects), which are wrapped with github.com/pkg/errors
// instead since they never carry a source Range.
package cerr

import (
	"fmt"
	"io"
	"sort"
)

type Kind int

const (
	Lex Kind = iota
	Parse
	Type
	Unsupported
	Link
)

func (k Kind) String() string {
	switch k {
	case Lex:
		return "lex error"
	case Parse:
		return "parse error"
	case Type:
		return "type error"
	case Unsupported:
		return "unsupported"
	case Link:
		return "link error"
	}
	return "error"
}

// Range locates a diagnostic in source text. It is produced by the
// lexer for every token and threaded through the parser and IL
// generator unchanged.
type Range struct {
	File       string
	StartLine  int32
	StartCol   int32
	EndLine    int32
	EndCol     int32
	SourceLine string
}

type Diagnostic struct {
	Kind    Kind
	Message string
	Range   *Range // nil for driver-level diagnostics with no source position
	Warning bool
}

func (d *Diagnostic) severity() string {
	if d.Warning {
		return "warning"
	}
	return "error"
}

func (d *Diagnostic) Print(w io.Writer) {
	if d.Range == nil {
		fmt.Fprintf(w, "cmini: %s: %s\n", d.severity(), d.Message)
		return
	}
	r := d.Range
	fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", r.File, r.StartLine, r.StartCol, d.severity(), d.Message)
	if r.SourceLine != "" {
		fmt.Fprintf(w, "%s\n", r.SourceLine)
		col := r.StartCol
		if col < 1 {
			col = 1
		}
		indicator := make([]byte, col-1, col+8)
		for i := range indicator {
			indicator[i] = ' '
		}
		width := int(r.EndCol - r.StartCol)
		if width < 1 {
			width = 1
		}
		mark := byte('-')
		if width == 1 {
			mark = '^'
		}
		for i := 0; i < width; i++ {
			indicator = append(indicator, mark)
		}
		fmt.Fprintf(w, "%s\n", indicator)
	}
}

// Collector accumulates diagnostics across a single compilation. It
// replaces the ambient global error state the pipeline would otherwise
// need by living as a field of CompilerContext, one per compilation.
type Collector struct {
	diags []*Diagnostic
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Add(kind Kind, rng *Range, format string, args ...interface{}) {
	c.diags = append(c.diags, &Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...), Range: rng})
}

func (c *Collector) Warn(kind Kind, rng *Range, format string, args ...interface{}) {
	c.diags = append(c.diags, &Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...), Range: rng, Warning: true})
}

func (c *Collector) HasErrors() bool {
	for _, d := range c.diags {
		if !d.Warning {
			return true
		}
	}
	return false
}

func (c *Collector) Diagnostics() []*Diagnostic { return c.diags }

// Print sorts diagnostics by source position (driver-level ones with
// no Range sort first) and writes them in the file:line:col form.
func (c *Collector) Print(w io.Writer) {
	sorted := make([]*Diagnostic, len(c.diags))
	copy(sorted, c.diags)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := sorted[i].Range, sorted[j].Range
		if ri == nil {
			return rj != nil
		}
		if rj == nil {
			return false
		}
		if ri.File != rj.File {
			return ri.File < rj.File
		}
		if ri.StartLine != rj.StartLine {
			return ri.StartLine < rj.StartLine
		}
		return ri.StartCol < rj.StartCol
	})
	for _, d := range sorted {
		d.Print(w)
	}
}
