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
	"fmt"
	"strings"

	"github.com/miniquantum/go-mqa/pkg/util/source"
)

// Node represents an element of a syntax tree.  Every node records the span of
// the source file from which it originated, along with the line number on which
// it started (for reporting).
type Node interface {
	// Span returns the span of the original source file covered by this node.
	Span() source.Span
	// Line returns the line (counting from 1) on which this node started.
	Line() int
}

// Token represents a single lexeme of the source file.  Tokens are immutable
// values and compare by text.
type Token struct {
	// Kind of this token (e.g. WORD or NEWLINE).
	Kind uint
	// Text of this token.  For words containing strings, the delimiting quotes
	// are always normalised to '"'.
	Text string
	span source.Span
	line int
}

// NewToken constructs a new token.
func NewToken(kind uint, text string, span source.Span, line int) Token {
	return Token{kind, text, span, line}
}

// Span implementation for Node interface.
func (t Token) Span() source.Span {
	return t.span
}

// Line implementation for Node interface.
func (t Token) Line() int {
	return t.line
}

// IsNewline checks whether this token terminates a statement.
func (t Token) IsNewline() bool {
	return t.Kind == NEWLINE
}

// WithText returns a copy of this token with its text replaced, but retaining
// its original position.
func (t Token) WithText(text string) Token {
	return Token{t.Kind, text, t.span, t.line}
}

// At returns a copy of this token repositioned to the given node.
func (t Token) At(node Node) Token {
	return Token{t.Kind, t.Text, node.Span(), node.Line()}
}

func (t Token) String() string {
	if t.Kind == NEWLINE {
		return "\\n"
	}
	//
	return t.Text
}

// IsString checks whether a given word is a quoted string literal.
func IsString(text string) bool {
	return len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"'
}

// Unquote strips the delimiters from a quoted string literal and decodes any
// escape sequences it contains.
func Unquote(text string) (string, error) {
	if !IsString(text) {
		return "", fmt.Errorf("expected string literal, found %s", text)
	}
	//
	var (
		builder strings.Builder
		runes   = []rune(text[1 : len(text)-1])
	)
	//
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		//
		if c == '\\' && i+1 < len(runes) {
			i++
			//
			switch runes[i] {
			case 'n':
				c = '\n'
			case 't':
				c = '\t'
			case 'r':
				c = '\r'
			case '0':
				c = 0
			case '\\', '"', '\'':
				c = runes[i]
			default:
				// unknown escapes are retained verbatim
				builder.WriteRune('\\')
				c = runes[i]
			}
		}
		//
		builder.WriteRune(c)
	}
	//
	return builder.String(), nil
}
