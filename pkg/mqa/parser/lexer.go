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
	"github.com/miniquantum/go-mqa/pkg/util/source"
	"github.com/miniquantum/go-mqa/pkg/util/source/lex"
)

// END_OF signals "end of file"
const END_OF uint = 0

// WHITESPACE signals whitespace (including ',')
const WHITESPACE uint = 1

// COMMENT signals "; ... \n"
const COMMENT uint = 2

// NEWLINE signals the end of a statement
const NEWLINE uint = 3

// LBRACE signals "("
const LBRACE uint = 4

// RBRACE signals ")"
const RBRACE uint = 5

// LCURLY signals "{"
const LCURLY uint = 6

// RCURLY signals "}"
const RCURLY uint = 7

// LSQUARE signals "["
const LSQUARE uint = 8

// RSQUARE signals "]"
const RSQUARE uint = 9

// WORD signals any other run of characters, including quoted strings.
const WORD uint = 10

// Rule for describing whitespace.  Commas are purely separators.
var whitespace lex.Scanner[rune] = lex.Many(lex.OneOf(' ', '\t', '\r', ','))

// Comments start with ';' and continue until a newline or EOF.
var comment lex.Scanner[rune] = lex.And(lex.Unit(';'), lex.Until('\n'))

// Characters which terminate a word (outside of a string).
var delimiters = []rune{' ', '\t', '\r', ',', '\n', ';', '(', ')', '{', '}', '[', ']'}

// Rule for describing words.  A word may contain strings, within which
// delimiters are not special.
var word lex.Scanner[rune] = func(items []rune) uint {
	n, ok := walkWord(items, nil)
	//
	if !ok {
		// unterminated string
		return 0
	}
	//
	return n
}

// lexing rules
var rules []lex.LexRule[rune] = []lex.LexRule[rune]{
	lex.Rule(comment, COMMENT),
	lex.Rule(lex.Unit('\n'), NEWLINE),
	lex.Rule(whitespace, WHITESPACE),
	lex.Rule(lex.Unit('('), LBRACE),
	lex.Rule(lex.Unit(')'), RBRACE),
	lex.Rule(lex.Unit('{'), LCURLY),
	lex.Rule(lex.Unit('}'), RCURLY),
	lex.Rule(lex.Unit('['), LSQUARE),
	lex.Rule(lex.Unit(']'), RSQUARE),
	lex.Rule(word, WORD),
	lex.Rule(lex.Eof[rune](), END_OF),
}

// Lex a given source file into a flat sequence of tokens.  Whitespace and
// comments are dropped, consecutive newlines are collapsed into one and the
// sequence is always terminated by a newline.
func Lex(srcfile *source.File) ([]Token, *source.Error) {
	var (
		contents = srcfile.Contents()
		lexer    = lex.NewLexer(contents, rules...)
		// Lex as many tokens as possible
		lexemes = lexer.Collect(WHITESPACE, COMMENT, END_OF)
		tokens  []Token
		// Line tracking
		line, index = 1, 0
	)
	// Check whether anything was left (if so this is an error)
	if lexer.Remaining() != 0 {
		start, end := lexer.Index(), lexer.Index()+lexer.Remaining()
		// Strings cannot span lines, so highlight the remainder of the line only.
		span := source.NewSpan(int(start), int(end))
		enclosing := srcfile.FindFirstEnclosingLine(span)
		span = source.NewSpan(int(start), enclosing.Start()+enclosing.Length())
		//
		return nil, srcfile.SyntaxError(span, "unterminated string")
	}
	//
	for _, lexeme := range lexemes {
		// Advance line counter
		for ; index < lexeme.Span.Start(); index++ {
			if contents[index] == '\n' {
				line++
			}
		}
		//
		if lexeme.Kind == NEWLINE && (len(tokens) == 0 || tokens[len(tokens)-1].IsNewline()) {
			continue
		}
		//
		text := lexeme.Text(contents)
		if lexeme.Kind == WORD {
			text = normalise(contents[lexeme.Span.Start():lexeme.Span.End()])
		}
		//
		tokens = append(tokens, NewToken(lexeme.Kind, text, lexeme.Span, line))
	}
	// Implicit trailing newline
	if len(tokens) == 0 || !tokens[len(tokens)-1].IsNewline() {
		for ; index < len(contents); index++ {
			if contents[index] == '\n' {
				line++
			}
		}
		//
		end := source.NewSpan(len(contents), len(contents))
		tokens = append(tokens, NewToken(NEWLINE, "\n", end, line))
	}
	//
	return tokens, nil
}

// Walk the characters of a word, returning its length and whether or not every
// string it contains was terminated.  The visitor (when given) is invoked with
// the index of each string delimiter.
func walkWord(items []rune, visit func(int)) (uint, bool) {
	var quote rune
	//
	for i := 0; i < len(items); i++ {
		c := items[i]
		//
		switch {
		case quote != 0 && c == '\\' && i+1 < len(items) && items[i+1] != '\n':
			// skip escaped character
			i++
		case quote != 0 && c == '\n':
			return 0, false
		case quote != 0 && c == quote:
			quote = 0
			//
			if visit != nil {
				visit(i)
			}
		case quote != 0:
			// literal
		case c == '"' || c == '\'':
			if i > 0 && items[i-1] == '\\' {
				// escaped quote outside string is literal
				continue
			}
			//
			quote = c
			//
			if visit != nil {
				visit(i)
			}
		case isDelimiter(c):
			return uint(i), true
		}
	}
	//
	return uint(len(items)), quote == 0
}

// Normalise the delimiters of all strings within a word to '"'.
func normalise(items []rune) string {
	var text = make([]rune, len(items))
	//
	copy(text, items)
	//
	walkWord(items, func(i int) {
		text[i] = '"'
	})
	//
	return string(text)
}

func isDelimiter(c rune) bool {
	for _, d := range delimiters {
		if c == d {
			return true
		}
	}
	//
	return false
}
