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
package parser

import (
	"strings"
	"testing"

	"github.com/miniquantum/go-mqa/pkg/util/assert"
	"github.com/miniquantum/go-mqa/pkg/util/source"
)

func Test_Lex_01(t *testing.T) {
	checkLex(t, "", "\\n")
}

func Test_Lex_02(t *testing.T) {
	checkLex(t, "LRA 1", "LRA", "1", "\\n")
}

func Test_Lex_03(t *testing.T) {
	checkLex(t, "LRA 1 ; load one\nSRA $2", "LRA", "1", "\\n", "SRA", "$2", "\\n")
}

func Test_Lex_04(t *testing.T) {
	checkLex(t, "\n\n; only comments\n\nNOP\n\n", "NOP", "\\n")
}

func Test_Lex_05(t *testing.T) {
	checkLex(t, "foo(a,b)", "foo", "(", "a", "b", ")", "\\n")
}

func Test_Lex_06(t *testing.T) {
	checkLex(t, "x{[y]}", "x", "{", "[", "y", "]", "}", "\\n")
}

func Test_Lex_07(t *testing.T) {
	checkLex(t, "\tLRA\r\n", "LRA", "\\n")
}

func Test_Lex_Strings_01(t *testing.T) {
	checkLex(t, `LEN "a b;(c)"`, "LEN", `"a b;(c)"`, "\\n")
}

func Test_Lex_Strings_02(t *testing.T) {
	checkLex(t, `FOR c IN 'hi' {}`, "FOR", "c", "IN", `"hi"`, "{", "}", "\\n")
}

func Test_Lex_Strings_03(t *testing.T) {
	checkLex(t, `"a\"b"`, `"a\"b"`, "\\n")
}

func Test_Lex_Strings_04(t *testing.T) {
	checkLex(t, `'it\'s'`, `"it\'s"`, "\\n")
}

func Test_Lex_Strings_05(t *testing.T) {
	checkLex(t, `'say "hi"'`, `"say "hi""`, "\\n")
}

func Test_Lex_Invalid_01(t *testing.T) {
	checkLexError(t, "NOP\nLRA \"abc", 2)
}

func Test_Lex_Invalid_02(t *testing.T) {
	checkLexError(t, "LRA 'abc\nNOP 'x'", 1)
}

func Test_Lex_Lines(t *testing.T) {
	srcfile := source.NewSourceFile("test", []byte("A\n\nB ; c\n  C"))
	tokens, err := Lex(srcfile)
	//
	assert.True(t, err == nil)
	assert.Equal(t, 6, len(tokens))
	assert.Equal(t, 1, tokens[0].Line())
	assert.Equal(t, 3, tokens[2].Line())
	assert.Equal(t, 4, tokens[4].Line())
	assert.Equal(t, 4, tokens[5].Line())
	assert.Equal(t, "C", srcfile.Text(tokens[4].Span()))
}

// Stripping comments before lexing gives the same tokens as lexing directly.
func Test_Lex_RoundTrip(t *testing.T) {
	var inputs = []string{
		"NOP ; x\nLRA 1\n\n; y\nHALT",
		"; header\n\nJMP $start ;; go\n;;\n",
		"A B C ;\n\n\nD",
	}
	//
	for _, input := range inputs {
		var lines []string
		//
		for _, line := range strings.Split(input, "\n") {
			line, _, _ = strings.Cut(line, ";")
			lines = append(lines, line)
		}
		//
		stripped := strings.Join(lines, "\n")
		assert.Equal(t, lexTexts(t, input), lexTexts(t, stripped))
	}
}

func Test_Unquote(t *testing.T) {
	checkUnquote(t, `""`, "")
	checkUnquote(t, `"abc"`, "abc")
	checkUnquote(t, `"a\nb"`, "a\nb")
	checkUnquote(t, `"\t\\\""`, "\t\\\"")
	checkUnquote(t, `"\0"`, "\x00")
	checkUnquote(t, `"\q"`, `\q`)
	//
	_, err := Unquote("abc")
	assert.True(t, err != nil)
	assert.False(t, IsString(`"`))
}

// ==================================================================
// Framework
// ==================================================================

func checkLex(t *testing.T, input string, expected ...string) {
	assert.Equal(t, expected, lexTexts(t, input))
}

func lexTexts(t *testing.T, input string) []string {
	var texts []string
	//
	tokens, err := Lex(source.NewSourceFile("test", []byte(input)))
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	//
	for _, tok := range tokens {
		texts = append(texts, tok.String())
	}
	//
	return texts
}

func checkLexError(t *testing.T, input string, line int) {
	_, err := Lex(source.NewSourceFile("test", []byte(input)))
	//
	if err == nil {
		t.Fatalf("expected error for %q", input)
	}
	//
	assert.Equal(t, source.SYNTAX_ERROR, err.Kind())
	assert.Equal(t, line, err.Line())
	assert.Equal(t, "unterminated string", err.Message())
}

func checkUnquote(t *testing.T, input string, expected string) {
	actual, err := Unquote(input)
	//
	assert.NoError(t, err)
	assert.Equal(t, expected, actual)
}
