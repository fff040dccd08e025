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
package util

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/miniquantum/go-mqa/pkg/mqa/binfile"
	"github.com/miniquantum/go-mqa/pkg/mqa/compiler"
	"github.com/miniquantum/go-mqa/pkg/util/source"
)

// TestDir determines the (relative) location of the test directory.  That is
// where the source files (mqs) and their expectations are found.
const TestDir = "../../testdata"

// EXTENSION gives the extension of test source files.
const EXTENSION = "mqs"

// CheckValid checks that a given source file compiles to the instructions it
// expects, reporting exactly the warnings it expects.  The compiled program
// must also survive encoding and decoding.
func CheckValid(t *testing.T, test string) {
	// Enable testing each file in parallel
	t.Parallel()
	//
	srcfile, expected := readTestFile(t, test)
	//
	program, err := compiler.Compile(srcfile, compiler.DefaultConfig())
	//
	if err != nil {
		t.Fatalf("%s should have compiled, but: %s", srcfile.Filename(), err.Error())
	}
	//
	checkInstructions(t, srcfile, program.Instructions, expected[EXPECT])
	checkWarnings(t, srcfile, program.Warnings, expected[WARNING])
	checkBinaryFile(t, srcfile, program)
}

// CheckInvalid checks that a given source file fails to compile, with the
// error it expects.
func CheckInvalid(t *testing.T, test string) {
	// Enable testing each file in parallel
	t.Parallel()
	//
	srcfile, expected := readTestFile(t, test)
	//
	_, err := compiler.Compile(srcfile, compiler.DefaultConfig())
	//
	if err == nil {
		t.Fatalf("Error %s should not have compiled\n", srcfile.Filename())
	} else if len(expected[ERROR]) != 1 {
		t.Fatalf("Error %s should expect exactly one error\n", srcfile.Filename())
	} else if e := expected[ERROR][0]; !e.Matches(err) {
		t.Fatalf("Error %s\n unexpected error %s\n   expected error %s\n", srcfile.Filename(),
			errorToString(err), e.String())
	}
}

func checkInstructions(t *testing.T, srcfile *source.File, actual []compiler.Instruction,
	expected []Expectation) {
	var failed = len(actual) != len(expected)
	// Construct initial message
	msg := fmt.Sprintf("Error %s\n", srcfile.Filename())
	//
	for i := 0; i < max(len(actual), len(expected)); i++ {
		if i < len(actual) && i < len(expected) && actual[i].String() == expected[i].Text {
			continue
		}
		// Indicate error arose
		failed = true
		//
		if i < len(actual) {
			msg = fmt.Sprintf("%s %d: unexpected instruction %s\n", msg, i, actual[i].String())
		}
		//
		if i < len(expected) {
			msg = fmt.Sprintf("%s %d:   expected instruction %s\n", msg, i, expected[i].Text)
		}
	}
	//
	if failed {
		t.Fatal(msg)
	}
}

func checkWarnings(t *testing.T, srcfile *source.File, actual []source.Error, expected []Expectation) {
	var failed = len(actual) != len(expected)
	// Construct initial message
	msg := fmt.Sprintf("Error %s\n", srcfile.Filename())
	//
	for i := 0; i < max(len(actual), len(expected)); i++ {
		if i < len(actual) && i < len(expected) && expected[i].Matches(&actual[i]) {
			continue
		}
		// Indicate error arose
		failed = true
		//
		if i < len(actual) {
			msg = fmt.Sprintf("%s unexpected warning %s\n", msg, errorToString(&actual[i]))
		}
		//
		if i < len(expected) {
			msg = fmt.Sprintf("%s   expected warning %s\n", msg, expected[i].String())
		}
	}
	//
	if failed {
		t.Fatal(msg)
	}
}

// Check that the program survives a round trip through the binary format.
func checkBinaryFile(t *testing.T, srcfile *source.File, program compiler.Program) {
	bytes, err := binfile.Encode(program.Includes, program.Instructions)
	if err != nil {
		t.Fatalf("Error %s: %s", srcfile.Filename(), err.Error())
	}
	//
	decoded, err := binfile.Decode(bytes)
	if err != nil {
		t.Fatalf("Error %s: %s", srcfile.Filename(), err.Error())
	}
	//
	if strings.Join(decoded.Includes, ",") != strings.Join(program.Includes, ",") {
		t.Fatalf("Error %s: includes %v decoded as %v", srcfile.Filename(), program.Includes, decoded.Includes)
	}
	//
	if len(decoded.Code) != len(program.Instructions) {
		t.Fatalf("Error %s: %d instructions decoded as %d", srcfile.Filename(), len(program.Instructions),
			len(decoded.Code))
	}
	//
	for i, line := range binfile.Disassemble(decoded) {
		mnemonic := program.Instructions[i].Mnemonic
		//
		if strings.Fields(line)[0] != mnemonic {
			t.Fatalf("Error %s: instruction %d (%s) decoded as %s", srcfile.Filename(), i, mnemonic, line)
		}
	}
}

func readTestFile(t *testing.T, test string) (*source.File, map[string][]Expectation) {
	var filename = fmt.Sprintf("%s/%s.%s", TestDir, test, EXTENSION)
	// Read source file
	bytes, err := os.ReadFile(filename)
	// Check test file read ok
	if err != nil {
		t.Fatal(err)
	}
	// Package up as source file
	srcfile := source.NewSourceFile(filename, bytes)
	// Extract expectations
	expected, errs := extractExpectations(srcfile)
	//
	if len(errs) > 0 {
		// Report any errors encountered parsing the attributes themselves.
		t.Fatal(errors.Join(errs...))
	}
	//
	return srcfile, expected
}

// Convert a diagnostic into a useful human readable string.
func errorToString(err *source.Error) string {
	return fmt.Sprintf("%d:%s:%s", err.Line(), err.Kind(), err.Message())
}
