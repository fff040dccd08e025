// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/miniquantum/go-mqa/pkg/util/source"
	"github.com/miniquantum/go-mqa/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected unsigned integer, or exits if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetStringArray gets an expected string array, or exits if an error arises.
func GetStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Configure log level from the verbose flag.
func configureLogging(cmd *cobra.Command) {
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
}

// Read a single source file, or exit if this is not possible.
func readSourceFile(filename string) *source.File {
	files, err := source.ReadFiles(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return &files[0]
}

// Determine the output filename for a given input file.  When no output is
// given, this is "compiled_" followed by the base name of the input.  The
// ".mqa" extension is added whenever the name has no extension.
func outputFilename(input string, output string) string {
	if output == "" {
		base := filepath.Base(input)
		output = "compiled_" + strings.TrimSuffix(base, filepath.Ext(base))
	}
	//
	if filepath.Ext(output) == "" {
		output += ".mqa"
	}
	//
	return output
}

// Print a diagnostic with appropriate highlighting.
func printDiagnostic(w io.Writer, srcfile *source.File, diag *source.Error, colour bool) {
	var (
		span   = diag.Span()
		line   = srcfile.FindFirstEnclosingLine(span)
		escape = termio.NewAnsiEscape().FgColour(termio.TERM_RED)
	)
	//
	if diag.Kind() == source.WARNING {
		escape = termio.NewAnsiEscape().FgColour(termio.TERM_YELLOW)
	}
	// Print error + line number
	name := termio.Highlight(srcfile.Filename(), termio.NewAnsiEscape().Bold(), colour)
	kind := termio.Highlight(diag.Kind().String(), escape, colour)
	fmt.Fprintf(w, "%s:%d: %s: %s\n", name, line.Number(), kind, diag.Message())
	// Print line
	fmt.Fprintln(w, line.String())
	// Print indent
	offset := max(0, span.Start()-line.Start())
	fmt.Fprint(w, indent(line.String(), offset))
	// Print highlight
	length := max(1, min(span.Length(), line.Length()-offset))
	fmt.Fprintln(w, termio.Highlight(strings.Repeat("^", length), escape, colour))
}

// Construct an indent matching the first n characters of a line, such that
// tabs are preserved.
func indent(line string, n int) string {
	var builder strings.Builder
	//
	for i, c := range []rune(line) {
		if i >= n {
			break
		} else if c == '\t' {
			builder.WriteRune('\t')
		} else {
			builder.WriteRune(' ')
		}
	}
	//
	return builder.String()
}
