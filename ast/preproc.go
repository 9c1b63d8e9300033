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
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// Preprocess handles the one directive this dialect supports:
// #include. "..." includes resolve relative to the including file;
// <...> includes resolve against sysIncludeDir. Recursive includes are
// expanded inline, depth-first, matching a textual-substitution
// preprocessor's behavior for this directive (no macros, no #ifdef).
func Preprocess(path string, sysIncludeDir string) (string, error) {
	return preprocessFile(path, sysIncludeDir, map[string]bool{})
}

func preprocessFile(path, sysIncludeDir string, seen map[string]bool) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if seen[abs] {
		return "", nil
	}
	seen[abs] = true

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var out strings.Builder
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	dir := filepath.Dir(path)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#include") {
			rest := strings.TrimSpace(trimmed[len("#include"):])
			var includePath string
			if strings.HasPrefix(rest, "\"") && strings.HasSuffix(rest, "\"") && len(rest) >= 2 {
				includePath = filepath.Join(dir, rest[1:len(rest)-1])
			} else if strings.HasPrefix(rest, "<") && strings.HasSuffix(rest, ">") && len(rest) >= 2 {
				includePath = filepath.Join(sysIncludeDir, rest[1:len(rest)-1])
			} else {
				out.WriteString(line)
				out.WriteByte('\n')
				continue
			}
			included, err := preprocessFile(includePath, sysIncludeDir, seen)
			if err != nil {
				return "", err
			}
			out.WriteString(included)
			continue
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}
	return out.String(), scanner.Err()
}
