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
	"os"

	"github.com/miniquantum/go-mqa/pkg/mqa/binfile"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] binary_file",
	Short: "disassemble an executable file.",
	Long:  `Print the header, includes and instructions of a given executable (".mqa") file.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		configureLogging(cmd)
		//
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Println(errors.Wrapf(err, "reading binary file %s", args[0]))
			os.Exit(2)
		}
		//
		binf, err := binfile.Decode(data)
		if err != nil {
			fmt.Printf("%s: %s\n", args[0], err)
			os.Exit(1)
		}
		//
		binf.Report(os.Stdout)
		//
		for _, include := range binf.Includes {
			fmt.Printf("INCLUDE %s\n", include)
		}
		//
		lines := binfile.Disassemble(binf)
		width := len(fmt.Sprint(len(lines)))
		//
		for i, line := range lines {
			fmt.Printf("%*d | %04x | %s\n", width, i, binf.Code[i], line)
		}
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(inspectCmd)
}
