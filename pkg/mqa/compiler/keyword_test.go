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
package compiler

import (
	"testing"

	"github.com/miniquantum/go-mqa/pkg/util/assert"
	"github.com/miniquantum/go-mqa/pkg/util/source"
)

func Test_For_01(t *testing.T) {
	checkProgram(t, "FOR i IN 0..3 {\nLRA i\n}", "LRA 0", "LRA 1", "LRA 2")
}

func Test_For_02(t *testing.T) {
	// descending
	checkProgram(t, "FOR i IN 3..0 {\nLRA i\n}", "LRA 2", "LRA 1", "LRA 0")
}

func Test_For_03(t *testing.T) {
	checkProgram(t, "FOR c IN \"ab\" {\nLRA c\n}", "LRA 97", "LRA 98")
}

func Test_For_04(t *testing.T) {
	checkProgram(t, "FOR i IN 2 {\nSRA $i\n}", "SRA $0", "SRA $1")
}

func Test_For_05(t *testing.T) {
	checkProgram(t, "FOR i IN LEN \"abc\" { INC }", "INC", "INC", "INC")
}

func Test_For_06(t *testing.T) {
	checkProgram(t, "FOR i c IN ENUMERATE 'hi' {\nLRA c\nSRA $i\n}", "LRA 104", "SRA $0", "LRA 105", "SRA $1")
}

func Test_For_07(t *testing.T) {
	// each iteration has its own labels
	checkProgram(t, "FOR i IN 2 {\nl:\nJMP $l\n}", "JMP $0", "JMP $1")
}

func Test_For_08(t *testing.T) {
	// nested loops and macros
	var input = `
macro put(a, v) {
  LRA v
  SRA $a
}
FOR i IN 2 {
  FOR j IN 10..12 { put(j, i) }
}`
	//
	checkProgram(t, input, "LRA 0", "SRA $10", "SRA $11", "LRA 1", "SRA $10", "SRA $11")
}

func Test_For_09(t *testing.T) {
	checkProgram(t, "ASSIGN n 2\nFOR i IN 0..n { DEC }", "DEC", "DEC")
}

func Test_For_10(t *testing.T) {
	checkProgram(t, "FOR i IN 0 { DEC }")
}

func Test_For_Invalid_01(t *testing.T) {
	checkError(t, "FOR i IN x..3 { NOP }", source.VALUE_ERROR, 1, "invalid range x..3")
}

func Test_For_Invalid_02(t *testing.T) {
	checkError(t, "FOR i IN 0..100000 { NOP }", source.VALUE_ERROR, 1, "range exceeds 65536 iterations")
}

func Test_For_Invalid_03(t *testing.T) {
	checkError(t, "FOR i IN 3\n{ NOP }", source.SYNTAX_ERROR, 1, "expected \"{\" for body of FOR loop")
}

func Test_For_Invalid_04(t *testing.T) {
	checkError(t, "FOR i\nNOP", source.SYNTAX_ERROR, 1, "expected IN in FOR loop")
}

func Test_For_Invalid_07(t *testing.T) {
	checkError(t, "FOR i 3 { NOP }", source.SYNTAX_ERROR, 1, "invalid loop variable 3")
}

func Test_For_Invalid_05(t *testing.T) {
	checkError(t, "FOR i c IN 3 { NOP }", source.SYNTAX_ERROR, 1, "requires ENUMERATE")
}

func Test_For_Invalid_06(t *testing.T) {
	checkError(t, "FOR i IN -1 { NOP }", source.VALUE_ERROR, 1, "invalid range -1")
}

func Test_Assign_01(t *testing.T) {
	checkProgram(t, "ASSIGN x 5\nLRA x\nSRA $x", "LRA 5", "SRA $5")
}

func Test_Assign_02(t *testing.T) {
	checkProgram(t, "ASSIGN n LEN \"abcd\"\nLRA n", "LRA 4")
}

func Test_Assign_03(t *testing.T) {
	program := checkProgram(t, "ASSIGN x 1\nLRA x\nASSIGN x 2\nLRA x", "LRA 1", "LRA 2")
	//
	checkWarning(t, program, "constant x reassigned")
}

func Test_Assign_04(t *testing.T) {
	// constants are visible within macros
	checkProgram(t, "ASSIGN p 7\nmacro m() { SRA $p }\nm()", "SRA $7")
}

func Test_Assign_05(t *testing.T) {
	// constants assigned within a loop do not escape
	checkError(t, "FOR i IN 1 {\nASSIGN x 3\n}\nLRA x", source.VALUE_ERROR, 4, "invalid integer x")
}

func Test_Assign_06(t *testing.T) {
	// constants can name labels
	checkProgram(t, "top:\nASSIGN target $top\nNOP\nJMP target", "NOP", "JMP $0")
}

func Test_Assign_Invalid_01(t *testing.T) {
	checkError(t, "ASSIGN x 1 2", source.SYNTAX_ERROR, 1, "exactly one value")
}

func Test_Assign_Invalid_02(t *testing.T) {
	checkError(t, "ASSIGN 1x 2", source.SYNTAX_ERROR, 1, "invalid constant name")
}

func Test_Len_01(t *testing.T) {
	checkProgram(t, "LRA LEN \"hello\"", "LRA 5")
}

func Test_Len_02(t *testing.T) {
	// characters, not bytes
	checkProgram(t, "ASSIGN s \"héllo\"\nFOR i IN LEN s { INC }\nLRA LEN s",
		"INC", "INC", "INC", "INC", "INC", "LRA 5")
}

func Test_Len_Invalid_01(t *testing.T) {
	checkError(t, "LRA LEN hello", source.SYNTAX_ERROR, 1, "expected string")
}

func Test_Len_Invalid_02(t *testing.T) {
	checkError(t, "LRA LEN (x)", source.SYNTAX_ERROR, 1, "expected string after LEN")
}

func Test_Include_01(t *testing.T) {
	program := checkProgram(t, "INCLUDE terminal\nINCLUDE \"random\"\nINCLUDE terminal\nINCLUDE foo")
	//
	assert.Equal(t, []string{"terminal", "random", "foo"}, program.Includes)
	checkWarning(t, program, "package terminal already included")
	checkWarning(t, program, "unknown package foo")
	assert.Equal(t, 2, len(program.Warnings))
}

func Test_Include_Invalid_01(t *testing.T) {
	checkError(t, "INCLUDE", source.SYNTAX_ERROR, 1, "expects a package name")
}

func Test_WriteString_01(t *testing.T) {
	checkProgram(t, "__WRITE_STR__ $16 \"abca\"",
		"LRA 97", "SRA $16", "SRA $19", "LRA 98", "SRA $17", "LRA 99", "SRA $18")
}

func Test_WriteString_02(t *testing.T) {
	checkProgram(t, "ASSIGN buf 0x40\n__WRITE_STR__ $buf 'hi'", "LRA 104", "SRA $64", "LRA 105", "SRA $65")
}

func Test_WriteString_03(t *testing.T) {
	checkProgram(t, "__WRITE_STR__ $0 \"\"")
}

func Test_WriteString_Invalid_01(t *testing.T) {
	checkError(t, "__WRITE_STR__ 16 \"ab\"", source.SYNTAX_ERROR, 1, "expected pointer")
}

func Test_WriteString_Invalid_02(t *testing.T) {
	checkError(t, "__WRITE_STR__ $16", source.SYNTAX_ERROR, 1, "expects a pointer and a string")
}

func Test_Keyword_Invalid_01(t *testing.T) {
	checkError(t, "IN", source.SYNTAX_ERROR, 1, "unexpected IN")
}
