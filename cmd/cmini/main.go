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
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"cmini/compile"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cmini",
		Short: "cmini compiles a conservative subset of C11 to x86-64",
	}
	root.AddCommand(compileCmd())
	return root
}

func compileCmd() *cobra.Command {
	var (
		regAllocPerf bool
		attSyntax    bool
		sysIncludeDir string
		output       string
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "compile [options] files...",
		Short: "compile one or more .c/.o files into an ELF executable",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := compile.NewCompilerContext()
			ctx.SysIncludeDir = sysIncludeDir
			ctx.IntelSyntax = !attSyntax
			ctx.RegAllocPerf = regAllocPerf
			if verbose {
				ctx.Log.SetLevel(log.DebugLevel)
			}

			err := compile.CompileFiles(ctx, args, output)
			ctx.Diags.Print(os.Stderr)
			if err != nil {
				if !ctx.Diags.HasErrors() {
					fmt.Fprintln(os.Stderr, err)
				}
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&regAllocPerf, "z-reg-alloc-perf", false, "print register allocator statistics")
	cmd.Flags().BoolVar(&attSyntax, "att", false, "emit AT&T syntax assembly instead of the Intel default")
	cmd.Flags().StringVarP(&sysIncludeDir, "sysroot", "I", "", "system header directory for <...> includes")
	cmd.Flags().StringVarP(&output, "output", "o", "out", "output executable path")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level phase tracing")

	return cmd
}
