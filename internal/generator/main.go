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
package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strconv"
	"strings"

	"github.com/consensys/bavard"
)

const copyrightHolder = "Consensys Software Inc."

// Source of the instruction set table.
const instructionSetFile = "instruction_set.mqi"

//go:generate go run main.go
func main() {
	bgen := bavard.NewBatchGenerator(copyrightHolder, 2025, "go-mqa")
	//
	cfg, err := readInstructionSet(instructionSetFile)
	assertNoError(err, "reading \"%s\"", instructionSetFile)
	//
	assertNoError(bgen.Generate(cfg, "mqis", "templates",
		bavard.Entry{
			File:      "../../pkg/mqa/mqis/opcodes.go",
			Templates: []string{"opcodes.go.tmpl"},
		},
	), "for instruction set \"%s\"", instructionSetFile)
	// run gofmt on generated package
	runCmd("gofmt", "-w", "../../pkg/mqa/mqis/")
}

func runCmd(name string, arg ...string) {
	fmt.Println(name, strings.Join(arg, " "))
	cmd := exec.Command(name, arg...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	assertNoError(cmd.Run(), "")
}

type instruction struct {
	Mnemonic     string
	Opcode       uint8
	NonModifying bool
	Jump         bool
}

type instructionSet struct {
	Instructions []instruction
	Packages     []string
}

// Read the instruction set table, where each line is either blank, a comment
// (starting with ';'), an "op" declaration or a "package" declaration.
func readInstructionSet(filename string) (*instructionSet, error) {
	var (
		iset instructionSet
		num  = 0
	)
	//
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	//
	defer file.Close()
	//
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		num++
		//
		line, _, _ := strings.Cut(scanner.Text(), ";")
		fields := strings.Fields(line)
		//
		if len(fields) == 0 {
			continue
		} else if fields[0] == "package" && len(fields) == 2 {
			iset.Packages = append(iset.Packages, fields[1])
		} else if fields[0] == "op" && len(fields) >= 3 {
			insn, err := parseInstruction(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", num, err)
			} else if iset.has(insn) {
				return nil, fmt.Errorf("line %d: duplicate instruction %s", num, insn.Mnemonic)
			}
			//
			iset.Instructions = append(iset.Instructions, insn)
		} else {
			return nil, fmt.Errorf("line %d: malformed declaration", num)
		}
	}
	//
	return &iset, scanner.Err()
}

func parseInstruction(fields []string) (instruction, error) {
	var insn instruction
	//
	opcode, err := strconv.ParseUint(fields[0], 10, 7)
	if err != nil {
		return insn, fmt.Errorf("invalid opcode %s", fields[0])
	}
	//
	insn.Opcode = uint8(opcode)
	insn.Mnemonic = fields[1]
	//
	for _, attr := range fields[2:] {
		switch attr {
		case "nomod":
			insn.NonModifying = true
		case "jump":
			insn.Jump = true
		default:
			return insn, fmt.Errorf("unknown attribute %s", attr)
		}
	}
	//
	return insn, nil
}

func (p *instructionSet) has(insn instruction) bool {
	return slices.ContainsFunc(p.Instructions, func(i instruction) bool {
		return i.Mnemonic == insn.Mnemonic || i.Opcode == insn.Opcode
	})
}

func assertNoError(err error, contextAndArgs ...any) {
	if err != nil {
		msg := err.Error()

		if len(contextAndArgs) > 0 {
			allArgs := append(slices.Clone(contextAndArgs[1:]), err)
			msg = fmt.Sprintf(contextAndArgs[0].(string)+": %v", allArgs...)
		}

		fmt.Println(msg)
		os.Exit(1)
	}
}
