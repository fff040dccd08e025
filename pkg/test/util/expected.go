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
	"fmt"
	"strconv"
	"strings"

	"github.com/miniquantum/go-mqa/pkg/util/source"
)

// ERROR identifies an expected compilation error, written ";;error:LINE:KIND:MSG".
const ERROR = ";;error"

// WARNING identifies an expected warning, written ";;warning:LINE:MSG".
const WARNING = ";;warning"

// EXPECT identifies an expected instruction, written ";;expect:INSN".
const EXPECT = ";;expect"

// Expectation describes some outcome expected from compiling a test file.
type Expectation struct {
	// Attribute which gave rise to this expectation.
	Attribute string
	// Line on which an error or warning is reported.
	Line int
	// Kind of error expected.
	Kind string
	// Expected message fragment or instruction.
	Text string
}

func (p Expectation) String() string {
	switch p.Attribute {
	case EXPECT:
		return p.Text
	case WARNING:
		return fmt.Sprintf("%d:%s", p.Line, p.Text)
	default:
		return fmt.Sprintf("%d:%s:%s", p.Line, p.Kind, p.Text)
	}
}

// Matches checks whether a given diagnostic meets this expectation.
func (p Expectation) Matches(diag *source.Error) bool {
	if p.Line != diag.Line() || !strings.Contains(diag.Message(), p.Text) {
		return false
	}
	//
	return p.Attribute == WARNING || p.Kind == diag.Kind().String()
}

func extractError(lineno int, lines []source.Line, _ *source.File) (bool, Expectation, error) {
	contents := lines[lineno].String()
	//
	if !strings.HasPrefix(contents, ERROR+":") {
		return false, Expectation{}, nil
	}
	//
	splits := strings.SplitN(contents, ":", 4)
	//
	if len(splits) != 4 {
		return true, Expectation{}, fmt.Errorf("malformed expected error \"%s\", should be e.g. \";;error:X:kind:msg\"",
			contents)
	}
	//
	line, err := parseLine(splits[1])
	//
	return true, Expectation{ERROR, line, splits[2], splits[3]}, err
}

func extractWarning(lineno int, lines []source.Line, _ *source.File) (bool, Expectation, error) {
	contents := lines[lineno].String()
	//
	if !strings.HasPrefix(contents, WARNING+":") {
		return false, Expectation{}, nil
	}
	//
	splits := strings.SplitN(contents, ":", 3)
	//
	if len(splits) != 3 {
		return true, Expectation{}, fmt.Errorf("malformed expected warning \"%s\", should be e.g. \";;warning:X:msg\"",
			contents)
	}
	//
	line, err := parseLine(splits[1])
	//
	return true, Expectation{WARNING, line, source.WARNING.String(), splits[2]}, err
}

func extractExpect(lineno int, lines []source.Line, _ *source.File) (bool, Expectation, error) {
	contents := lines[lineno].String()
	//
	if !strings.HasPrefix(contents, EXPECT+":") {
		return false, Expectation{}, nil
	}
	//
	return true, Expectation{EXPECT, 0, "", strings.TrimPrefix(contents, EXPECT+":")}, nil
}

func parseLine(text string) (int, error) {
	line, err := strconv.Atoi(text)
	//
	if err != nil {
		return 0, fmt.Errorf("invalid line \"%s\" (%s)", text, err.Error())
	} else if line <= 0 {
		return 0, fmt.Errorf("invalid line \"%s\" (lines numbered from 1)", text)
	}
	//
	return line, nil
}

// Extract every expectation from the beginning of a source file, grouped by
// attribute.
func extractExpectations(srcfile *source.File) (map[string][]Expectation, []error) {
	var (
		grouped       = make(map[string][]Expectation)
		expected, err = ExtractAttributes(srcfile, extractError, extractWarning, extractExpect)
	)
	//
	for _, e := range expected {
		grouped[e.Attribute] = append(grouped[e.Attribute], e)
	}
	//
	return grouped, err
}
