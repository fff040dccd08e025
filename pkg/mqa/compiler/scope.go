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
	"fmt"
	"maps"
	"strings"
	"unicode"

	"github.com/miniquantum/go-mqa/pkg/mqa/mqis"
	"github.com/miniquantum/go-mqa/pkg/mqa/parser"
	"github.com/miniquantum/go-mqa/pkg/util/source"
)

// MACRO is the keyword introducing a macro definition.
const MACRO = "macro"

// A processor is responsible for a single scope.  It first discovers the
// macros and labels defined in the scope, and then expands its statements.
// Macro and loop bodies are expanded by child processors.
type processor struct {
	unit *unit
	// Macros visible in this scope.
	macros MacroTable
	// Constants visible in this scope.
	defines bindings
	// Labels visible in this scope.
	labels *labelTable
	// Nesting depth of this scope.
	depth uint
}

func newProcessor(unit *unit) *processor {
	return &processor{unit, make(MacroTable), make(bindings), newLabelTable(nil), 0}
}

// Construct a processor for a scope nested within this one, with a given set of
// visible macros.  Constants are inherited, and labels of this scope remain
// visible.
func (p *processor) child(macros MacroTable, site parser.Node) (*processor, *source.Error) {
	if p.depth >= p.unit.config.MaxDepth {
		return nil, errorAt(source.RECURSION_ERROR, site, "maximum expansion depth (%d) exceeded",
			p.unit.config.MaxDepth)
	}
	//
	return &processor{p.unit, macros.Copy(), maps.Clone(p.defines), newLabelTable(p.labels), p.depth + 1}, nil
}

// Process a given scope producing a flat sequence of label definitions and raw
// instructions.
func (p *processor) process(scope *parser.Scope) ([]parser.Node, *source.Error) {
	nodes, err := p.discoverMacros(scope.Nodes)
	//
	if err != nil {
		return nil, err
	}
	//
	if nodes, err = p.discoverLabels(nodes); err != nil {
		return nil, err
	}
	//
	return p.expand(nodes)
}

// Discover the macros defined directly in a given scope, registering them and
// returning the remaining nodes.
func (p *processor) discoverMacros(nodes []parser.Node) ([]parser.Node, *source.Error) {
	var definitions []int
	//
	for i := 0; i < len(nodes); i++ {
		if tok, ok := nodes[i].(parser.Token); ok && tok.Text == MACRO {
			macro, err := p.parseMacro(tok, nodes[i+1:])
			//
			if err != nil {
				return nil, err
			} else if p.macros.Put(macro) {
				p.unit.warn(tok, "macro %s redefined", macro)
			}
			//
			if mqis.IsMnemonic(macro.Name) {
				p.unit.warn(tok, "macro %s is shadowed by instruction %s", macro, macro.Name)
			} else if isKeyword(macro.Name) {
				p.unit.warn(tok, "macro %s is shadowed by keyword %s", macro, macro.Name)
			}
			//
			definitions = append(definitions, i)
			i += 3
		}
	}
	//
	if len(definitions) == 0 {
		return nodes, nil
	}
	// Remove definitions
	var (
		remaining = make([]parser.Node, 0, len(nodes)-4*len(definitions))
		next      = 0
	)
	//
	for _, start := range definitions {
		remaining = append(remaining, nodes[next:start]...)
		next = start + 4
	}
	//
	return append(remaining, nodes[next:]...), nil
}

// Parse a macro definition "macro NAME (PARAMS) { BODY }", given the nodes
// following the keyword.
func (p *processor) parseMacro(keyword parser.Token, rest []parser.Node) (*Macro, *source.Error) {
	var (
		name   parser.Token
		args   *parser.Scope
		body   *parser.Scope
		ok     bool
		params []string
	)
	//
	if len(rest) > 0 {
		name, ok = rest[0].(parser.Token)
	}
	//
	if !ok || !isIdentifier(name.Text) {
		return nil, errorAt(source.SYNTAX_ERROR, keyword, "expected macro name")
	} else if args, ok = scopeAt(rest, 1, parser.ROUND); !ok {
		return nil, errorAt(source.SYNTAX_ERROR, name, "expected \"(\" after macro %s", name.Text)
	} else if body, ok = scopeAt(rest, 2, parser.CURLY); !ok {
		return nil, errorAt(source.SYNTAX_ERROR, name, "expected \"{\" for body of macro %s", name.Text)
	}
	//
	for _, n := range args.Nodes {
		param, ok := n.(parser.Token)
		//
		if ok && param.IsNewline() {
			continue
		} else if !ok || !isIdentifier(param.Text) {
			return nil, errorAt(source.SYNTAX_ERROR, n, "invalid parameter %v for macro %s", n, name.Text)
		}
		//
		for _, other := range params {
			if other == param.Text {
				return nil, errorAt(source.SYNTAX_ERROR, n, "duplicate parameter %s for macro %s", other, name.Text)
			}
		}
		//
		params = append(params, param.Text)
	}
	//
	macro := &Macro{name.Text, params, body, p.macros.Copy(), keyword.Line()}
	// Make macro visible within its own body
	macro.macros.Put(macro)
	//
	return macro, nil
}

// Discover the labels defined directly in a given scope, and resolve any
// references to labels visible from this scope.
func (p *processor) discoverLabels(nodes []parser.Node) ([]parser.Node, *source.Error) {
	var definitions = make(map[int]LabelDef)
	//
	for i, n := range nodes {
		if tok, ok := n.(parser.Token); ok && tok.Kind == parser.WORD && strings.HasSuffix(tok.Text, ":") {
			name := strings.TrimSuffix(tok.Text, ":")
			//
			if !isIdentifier(name) {
				return nil, errorAt(source.SYNTAX_ERROR, tok, "invalid label name \"%s\"", name)
			}
			//
			id := p.unit.arena.Alloc(name, tok.Line())
			//
			if p.labels.define(name, id) {
				p.unit.warn(tok, "label %s redefined", name)
			}
			//
			definitions[i] = LabelDef{id, name, tok.Span(), tok.Line()}
		}
	}
	// Apply definitions and resolve references
	var result = make([]parser.Node, len(nodes))
	//
	for i, n := range nodes {
		if def, ok := definitions[i]; ok {
			result[i] = def
		} else if tok, ok := n.(parser.Token); ok {
			result[i] = p.resolveLabel(tok)
		} else {
			result[i] = n
		}
	}
	//
	return result, nil
}

// Resolve a token of the form "$name" to a reference of a visible label.  Any
// other token (or an unknown label) is returned as is.
func (p *processor) resolveLabel(tok parser.Token) parser.Node {
	if name, ok := labelName(tok.Text); ok {
		if id, ok := p.labels.lookup(name); ok {
			return LabelRef{id, name, tok.Span(), tok.Line()}
		}
	}
	//
	return tok
}

// Extract the label name from a token of the form "$name", where name is not
// numeric.
func labelName(text string) (string, bool) {
	if name, ok := strings.CutPrefix(text, "$"); ok && isIdentifier(name) {
		return name, true
	}
	//
	return "", false
}

// Check whether a given string is a valid identifier (for labels, macros,
// parameters, etc).  An identifier cannot start with a digit, and consists of
// letters, digits, '_' and '.'.
func isIdentifier(text string) bool {
	if text == "" || unicode.IsDigit(rune(text[0])) || strings.Contains(text, "..") {
		return false
	}
	//
	for _, c := range text {
		if c != '_' && c != '.' && !unicode.IsLetter(c) && !unicode.IsDigit(c) {
			return false
		}
	}
	//
	return true
}

// Extract the scope at a given index, provided it has the expected bracket.
func scopeAt(nodes []parser.Node, index int, bracket parser.Bracket) (*parser.Scope, bool) {
	if index < len(nodes) {
		if scope, ok := nodes[index].(*parser.Scope); ok && scope.Bracket == bracket {
			return scope, true
		}
	}
	//
	return nil, false
}

func errorAt(kind source.ErrorKind, node parser.Node, format string, args ...any) *source.Error {
	return source.NewError(kind, node.Span(), node.Line(), fmt.Sprintf(format, args...))
}
