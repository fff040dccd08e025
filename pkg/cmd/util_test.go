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
	"bytes"
	"strings"
	"testing"

	"github.com/miniquantum/go-mqa/pkg/mqa/compiler"
	"github.com/miniquantum/go-mqa/pkg/util/assert"
	"github.com/miniquantum/go-mqa/pkg/util/source"
)

func Test_OutputFilename_01(t *testing.T) {
	assert.Equal(t, "compiled_prog.mqa", outputFilename("dir/prog.mqs", ""))
}

func Test_OutputFilename_02(t *testing.T) {
	assert.Equal(t, "compiled_prog.mqa", outputFilename("prog", ""))
}

func Test_OutputFilename_03(t *testing.T) {
	assert.Equal(t, "out.mqa", outputFilename("prog.mqs", "out"))
}

func Test_OutputFilename_04(t *testing.T) {
	assert.Equal(t, "out.bin", outputFilename("prog.mqs", "out.bin"))
}

func Test_Listing_01(t *testing.T) {
	var buf bytes.Buffer
	//
	program, err := compiler.CompileString("start:\n"+strings.Repeat("NOP\n", 9)+"JMP $start", compiler.DefaultConfig())
	if err != nil {
		t.Fatal(err.Error())
	}
	//
	printListing(&buf, program.Instructions)
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	//
	assert.Equal(t, 10, len(lines))
	assert.Equal(t, " 0 | NOP", lines[0])
	assert.Equal(t, " 9 | JMP $0", lines[9])
}

func Test_Diagnostic_01(t *testing.T) {
	var (
		buf     bytes.Buffer
		srcfile = source.NewSourceFile("test.mqs", []byte("NOP\n\tLRA )\n"))
	)
	//
	_, err := compiler.Compile(srcfile, compiler.DefaultConfig())
	if err == nil {
		t.Fatal("expected error")
	}
	//
	printDiagnostic(&buf, srcfile, err, false)
	//
	assert.Equal(t, "test.mqs:2: syntax error: unexpected \")\"\n\tLRA )\n\t    ^\n", buf.String())
}
