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

	"github.com/miniquantum/go-mqa/pkg/util/collection/stack"
	"github.com/miniquantum/go-mqa/pkg/util/source"
)

// Bracket identifies the kind of brackets enclosing a scope.
type Bracket uint8

// NONE is used for the outermost scope of a file.
const NONE Bracket = 0

// ROUND signals "( ... )"
const ROUND Bracket = 1

// CURLY signals "{ ... }"
const CURLY Bracket = 2

// SQUARE signals "[ ... ]"
const SQUARE Bracket = 3

// Open returns the opening character of this bracket kind.
func (b Bracket) Open() string {
	switch b {
	case ROUND:
		return "("
	case CURLY:
		return "{"
	case SQUARE:
		return "["
	default:
		return ""
	}
}

// Close returns the closing character of this bracket kind.
func (b Bracket) Close() string {
	switch b {
	case ROUND:
		return ")"
	case CURLY:
		return "}"
	case SQUARE:
		return "]"
	default:
		return ""
	}
}

// Scope represents a bracket-delimited sequence of nodes, which can themselves
// be scopes.
type Scope struct {
	Bracket Bracket
	Nodes   []Node
	span    source.Span
	line    int
}

// NewScope constructs a new scope at a given position.
func NewScope(bracket Bracket, nodes []Node, span source.Span, line int) *Scope {
	return &Scope{bracket, nodes, span, line}
}

// Span implementation for Node interface.
func (p *Scope) Span() source.Span {
	return p.span
}

// Line implementation for Node interface.
func (p *Scope) Line() int {
	return p.line
}

// Rewrite constructs a structural clone of this scope, where every token
// (including those of nested scopes) is mapped through a given function.  Nodes
// other than tokens and scopes are retained as is.  The original scope is left
// untouched.
func (p *Scope) Rewrite(fn func(Token) Node) *Scope {
	var nodes = make([]Node, len(p.Nodes))
	//
	for i, n := range p.Nodes {
		switch n := n.(type) {
		case Token:
			nodes[i] = fn(n)
		case *Scope:
			nodes[i] = n.Rewrite(fn)
		default:
			nodes[i] = n
		}
	}
	//
	return &Scope{p.Bracket, nodes, p.span, p.line}
}

// Tokens flattens this scope depth-first into the sequence of tokens it
// contains (i.e. dropping all brackets).
func (p *Scope) Tokens() []Token {
	var tokens []Token
	//
	for _, n := range p.Nodes {
		switch n := n.(type) {
		case Token:
			tokens = append(tokens, n)
		case *Scope:
			tokens = append(tokens, n.Tokens()...)
		}
	}
	//
	return tokens
}

// Depth returns the maximum nesting depth of scopes within this scope.
func (p *Scope) Depth() uint {
	var depth uint
	//
	for _, n := range p.Nodes {
		if s, ok := n.(*Scope); ok {
			depth = max(depth, 1+s.Depth())
		}
	}
	//
	return depth
}

func (p *Scope) String() string {
	var builder strings.Builder
	//
	builder.WriteString(p.Bracket.Open())
	//
	for i, n := range p.Nodes {
		if i != 0 {
			builder.WriteString(" ")
		}
		//
		builder.WriteString(fmt.Sprintf("%v", n))
	}
	//
	builder.WriteString(p.Bracket.Close())
	//
	return builder.String()
}

// Parse a given source file into a tree of scopes.
func Parse(srcfile *source.File) (*Scope, *source.Error) {
	tokens, err := Lex(srcfile)
	//
	if err != nil {
		return nil, err
	}
	//
	return BuildTree(tokens)
}

// BuildTree arranges a flat sequence of tokens into a tree of scopes, according
// to the brackets they contain.
func BuildTree(tokens []Token) (*Scope, *source.Error) {
	var (
		enclosing = stack.NewStack[*Scope]()
		root      = &Scope{NONE, nil, source.NewSpan(0, 0), 1}
		current   = root
	)
	//
	for _, tok := range tokens {
		switch tok.Kind {
		case LBRACE, LCURLY, LSQUARE:
			enclosing.Push(current)
			current = &Scope{bracketOf(tok.Kind), nil, tok.Span(), tok.Line()}
		case RBRACE, RCURLY, RSQUARE:
			parent, ok := enclosing.Pop()
			//
			if !ok {
				return nil, source.NewError(source.SYNTAX_ERROR, tok.Span(), tok.Line(),
					fmt.Sprintf("unexpected \"%s\"", tok.Text))
			} else if bracket := bracketOf(tok.Kind); current.Bracket != bracket {
				return nil, source.NewError(source.SYNTAX_ERROR, current.span, current.line,
					fmt.Sprintf("unmatched \"%s\" (found \"%s\")", current.Bracket.Open(), tok.Text))
			}
			// Close current scope
			current.span = current.span.Join(tok.Span())
			parent.Nodes = append(parent.Nodes, current)
			current = parent
		default:
			current.Nodes = append(current.Nodes, tok)
		}
		//
		root.span = root.span.Join(tok.Span())
	}
	//
	if !enclosing.IsEmpty() {
		return nil, source.NewError(source.SYNTAX_ERROR, current.span, current.line,
			fmt.Sprintf("unclosed \"%s\"", current.Bracket.Open()))
	}
	//
	return root, nil
}

func bracketOf(kind uint) Bracket {
	switch kind {
	case LBRACE, RBRACE:
		return ROUND
	case LCURLY, RCURLY:
		return CURLY
	case LSQUARE, RSQUARE:
		return SQUARE
	default:
		panic(fmt.Sprintf("unknown bracket kind %d", kind))
	}
}
