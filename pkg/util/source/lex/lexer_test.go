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
package lex

import (
	"slices"
	"testing"

	"github.com/miniquantum/go-mqa/pkg/util/assert"
	"github.com/miniquantum/go-mqa/pkg/util/source"
)

func TestLexer_00(t *testing.T) {
	checkLexer(t, "", 0, Token{END_OF, source.NewSpan(0, 0)})
}

func TestLexer_01(t *testing.T) {
	var tokens = []Token{
		{LBRACE, source.NewSpan(0, 1)},
		{RBRACE, source.NewSpan(1, 2)},
		{END_OF, source.NewSpan(2, 2)},
	}

	checkLexer(t, "()", 0, tokens...)
}

func TestLexer_02(t *testing.T) {
	var tokens = []Token{
		{WORD, source.NewSpan(0, 3)},
		{WSPACE, source.NewSpan(3, 4)},
		{WORD, source.NewSpan(4, 6)},
		{END_OF, source.NewSpan(6, 6)},
	}

	checkLexer(t, "LRA 10", 0, tokens...)
}

func TestLexer_03(t *testing.T) {
	var tokens = []Token{
		{WORD, source.NewSpan(0, 3)},
		{WSPACE, source.NewSpan(3, 6)},
		{WORD, source.NewSpan(6, 8)},
		{END_OF, source.NewSpan(8, 8)},
	}
	// Commas and tabs are separators
	checkLexer(t, "SRA,\t $1", 0, tokens...)
}

func TestLexer_04(t *testing.T) {
	var tokens = []Token{
		{WORD, source.NewSpan(0, 3)},
		{COMMENT, source.NewSpan(3, 8)},
		{NEWLINE, source.NewSpan(8, 9)},
		{WORD, source.NewSpan(9, 12)},
		{END_OF, source.NewSpan(12, 12)},
	}

	checkLexer(t, "NOP; (x)\nNOP", 0, tokens...)
}

func TestLexer_05(t *testing.T) {
	var tokens = []Token{
		{WORD, source.NewSpan(0, 1)},
		{LBRACE, source.NewSpan(1, 2)},
		{WORD, source.NewSpan(2, 3)},
		{RBRACE, source.NewSpan(3, 4)},
		{END_OF, source.NewSpan(4, 4)},
	}

	checkLexer(t, "m(a)", 0, tokens...)
}

func TestLexer_06(t *testing.T) {
	var tokens = []Token{
		{WORD, source.NewSpan(0, 3)},
		{WSPACE, source.NewSpan(3, 4)},
	}
	// No rule matches '{'
	checkLexer(t, "LRA {", 1, tokens...)
}

func TestLexer_Skip(t *testing.T) {
	items := []rune("LRA 1 ;c")
	lexer := NewLexer(items, rules...)
	tokens := lexer.Collect(WSPACE, COMMENT, END_OF)
	//
	assert.Equal(t, 2, len(tokens))
	assert.Equal(t, "LRA", tokens[0].Text(items))
	assert.Equal(t, "1", tokens[1].Text(items))
}

func TestLexer_Index(t *testing.T) {
	lexer := NewLexer([]rune("ab cd"), rules...)
	//
	assert.True(t, lexer.HasNext())
	assert.Equal(t, uint(0), lexer.Index())
	lexer.Next()
	assert.Equal(t, uint(2), lexer.Index())
	assert.Equal(t, uint(3), lexer.Remaining())
}

func TestScanner_OneOf(t *testing.T) {
	rule := Many(OneOf(' ', ','))
	assert.Equal(t, uint(3), rule([]rune(" , x")))
	assert.Equal(t, uint(0), rule([]rune("x ")))
}

func TestScanner_NoneOf(t *testing.T) {
	rule := Many(NoneOf(' ', '('))
	assert.Equal(t, uint(3), rule([]rune("abc(d")))
	assert.Equal(t, uint(0), rule([]rune(" abc")))
}

func TestScanner_Until(t *testing.T) {
	rule := And(Unit(';'), Until('\n'))
	assert.Equal(t, uint(3), rule([]rune("; x\ny")))
	assert.Equal(t, uint(0), rule([]rune("x;")))
}

// ==================================================================
// Framework
// ==================================================================

const END_OF uint = 0
const WSPACE uint = 1
const LBRACE uint = 2
const RBRACE uint = 3
const WORD uint = 4
const COMMENT uint = 5
const NEWLINE uint = 6

// Rule for describing separators
var whitespace Scanner[rune] = Many(OneOf(' ', '\t', ','))

// Rule for describing words
var word Scanner[rune] = Many(NoneOf(' ', '\t', ',', ';', '\n', '(', ')', '{', '}'))

// Rule for describing comments
var comment Scanner[rune] = And(Unit(';'), Until('\n'))

// lexing rules
var rules []LexRule[rune] = []LexRule[rune]{
	Rule(comment, COMMENT),
	Rule(Unit('\n'), NEWLINE),
	Rule(Unit('('), LBRACE),
	Rule(Unit(')'), RBRACE),
	Rule(whitespace, WSPACE),
	Rule(word, WORD),
	Rule(Eof[rune](), END_OF),
}

func checkLexer(t *testing.T, input string, remainder uint, expected ...Token) {
	items := []rune(input)
	// Construct text lexer
	lexer := NewLexer[rune](items, rules...)
	// Apply lexer
	tokens := lexer.Collect()
	// Keep scanning
	if !slices.Equal(tokens, expected) {
		t.Errorf("got %v, expected %v", tokens, expected)
	} else if lexer.Remaining() != remainder {
		n := len(items) - int(lexer.Remaining())
		t.Errorf("unmatched items: %v", items[n:])
	}
}
