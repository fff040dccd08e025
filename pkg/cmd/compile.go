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

	"github.com/miniquantum/go-mqa/pkg/mqa/binfile"
	"github.com/miniquantum/go-mqa/pkg/mqa/compiler"
	"github.com/miniquantum/go-mqa/pkg/util/termio"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] source_file",
	Short: "compile a source file into an executable.",
	Long: `Compile a given source file into an executable (".mqa") file which can be
	 loaded by the Mini Quantum CPU.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		configureLogging(cmd)
		//
		config := compiler.DefaultConfig()
		config.Optimise = GetUint(cmd, "opt") > 0
		config.MaxDepth = GetUint(cmd, "max-depth")
		config.Packages = append(config.Packages, GetStringArray(cmd, "package")...)
		output := outputFilename(args[0], GetString(cmd, "output"))
		colour := termio.IsTerminal(os.Stdout)
		// Compile source file
		srcfile := readSourceFile(args[0])
		program, err := compiler.Compile(srcfile, config)
		//
		if err != nil {
			printDiagnostic(os.Stdout, srcfile, err, colour)
			os.Exit(1)
		}
		//
		for i := range program.Warnings {
			printDiagnostic(os.Stdout, srcfile, &program.Warnings[i], colour)
		}
		//
		if GetFlag(cmd, "list") {
			printListing(os.Stdout, program.Instructions)
		}
		// Encode the executable
		binf, encErr := binfile.Assemble(program)
		if encErr != nil {
			fmt.Println(encErr)
			os.Exit(1)
		}
		//
		if GetFlag(cmd, "verbose") {
			binf.Report(os.Stdout)
		}
		//
		writeBinaryFile(binf, output)
	},
}

// Print the instruction listing, with indices aligned to the widest index.
func printListing(w io.Writer, code []compiler.Instruction) {
	width := len(fmt.Sprint(len(code)))
	//
	for i, insn := range code {
		fmt.Fprintf(w, "%*d | %s\n", width, i, insn.String())
	}
}

// Write a binary file to disk, or exit if this is not possible.
func writeBinaryFile(binf *binfile.BinaryFile, filename string) {
	bytes, err := binf.MarshalBinary()
	// Sanity check for errors
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	if err := os.WriteFile(filename, bytes, 0644); err != nil {
		fmt.Println(errors.Wrapf(err, "writing %s", filename))
		os.Exit(2)
	}
	//
	log.Debugf("wrote %d bytes to %s", len(bytes), filename)
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringP("output", "o", "", "specify output file.")
	compileCmd.Flags().BoolP("list", "l", false, "print the compiled instructions.")
	compileCmd.Flags().UintP("opt", "O", 1, "set optimisation level (0 disables).")
	compileCmd.Flags().Uint("max-depth", compiler.DefaultConfig().MaxDepth, "maximum nesting of macro and loop expansions.")
	compileCmd.Flags().StringArray("package", []string{}, "permit an additional extension package.")
}
