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
	"strconv"

	"github.com/miniquantum/go-mqa/pkg/mqa/mqis"
	"github.com/miniquantum/go-mqa/pkg/mqa/parser"
	"github.com/miniquantum/go-mqa/pkg/util/source"
)

// Cursor over the nodes of a scope being expanded.
type cursor struct {
	nodes []parser.Node
	index int
}

func (c *cursor) atEnd() bool {
	return c.index >= len(c.nodes)
}

// Lookahead returns the next node without consuming it, or nil at the end.
func (c *cursor) lookahead() parser.Node {
	if c.atEnd() {
		return nil
	}
	//
	return c.nodes[c.index]
}

func (c *cursor) next() parser.Node {
	n := c.nodes[c.index]
	c.index++
	//
	return n
}

// Consume all nodes up to the end of the current statement.  The terminating
// newline is consumed, but not returned.
func (c *cursor) restOfLine() []parser.Node {
	var line []parser.Node
	//
	for !c.atEnd() {
		n := c.next()
		//
		if tok, ok := n.(parser.Token); ok && tok.IsNewline() {
			break
		}
		//
		line = append(line, n)
	}
	//
	return line
}

// Expand the statements of a scope (whose macros and labels have already been
// discovered) into a flat sequence of label definitions and raw instructions.
func (p *processor) expand(nodes []parser.Node) ([]parser.Node, *source.Error) {
	var (
		items []parser.Node
		c     = &cursor{nodes, 0}
	)
	//
	for !c.atEnd() {
		expanded, err := p.expandStatement(c)
		//
		if err != nil {
			return nil, err
		}
		//
		items = append(items, expanded...)
	}
	//
	return items, nil
}

func (p *processor) expandStatement(c *cursor) ([]parser.Node, *source.Error) {
	switch n := c.next().(type) {
	case LabelDef:
		return []parser.Node{n}, nil
	case LabelRef:
		return nil, errorAt(source.SYNTAX_ERROR, n, "unexpected label reference %s", n)
	case *parser.Scope:
		return nil, errorAt(source.SYNTAX_ERROR, n, "unexpected \"%s\"", n.Bracket.Open())
	case parser.Token:
		if n.IsNewline() {
			return nil, nil
		}
		//
		head, ok := p.defines.apply(n).(parser.Token)
		//
		switch {
		case !ok:
			return nil, errorAt(source.SYNTAX_ERROR, n, "unexpected label reference %s", n)
		case isKeyword(head.Text):
			return p.expandKeyword(head, c)
		case mqis.IsMnemonic(head.Text):
			return p.expandInstruction(head, c)
		case p.macros.Has(head.Text):
			return p.expandMacro(head, c)
		case isRound(c.lookahead()):
			return nil, errorAt(source.NAME_ERROR, head, "undefined macro %s", head.Text)
		default:
			return nil, errorAt(source.NAME_ERROR, head, "undefined instruction or symbol %s", head.Text)
		}
	default:
		return nil, errorAt(source.INTERNAL_ERROR, n, "unknown node %v", n)
	}
}

// Expand an instruction, which has at most one operand.
func (p *processor) expandInstruction(mnemonic parser.Token, c *cursor) ([]parser.Node, *source.Error) {
	operands, err := p.operands(c.restOfLine())
	//
	if err != nil {
		return nil, err
	} else if err = p.unit.emit(mnemonic, 1); err != nil {
		return nil, err
	}
	//
	switch len(operands) {
	case 0:
		return []parser.Node{RawInstruction{mnemonic, nil}}, nil
	case 1:
		operand, err := p.checkOperand(operands[0])
		if err != nil {
			return nil, err
		}
		//
		return []parser.Node{RawInstruction{mnemonic, operand}}, nil
	default:
		return nil, errorAt(source.SYNTAX_ERROR, operands[1], "too many operands for %s", mnemonic.Text)
	}
}

// Process the operands of a statement, substituting constants and folding any
// uses of LEN.
func (p *processor) operands(line []parser.Node) ([]parser.Node, *source.Error) {
	var operands []parser.Node
	//
	for i := 0; i < len(line); i++ {
		switch n := line[i].(type) {
		case LabelRef:
			operands = append(operands, n)
		case LabelDef:
			return nil, errorAt(source.SYNTAX_ERROR, n, "unexpected label definition %s", n)
		case *parser.Scope:
			return nil, errorAt(source.SYNTAX_ERROR, n, "unexpected \"%s\" in operand", n.Bracket.Open())
		case parser.Token:
			operand := p.defines.apply(n)
			//
			if tok, ok := operand.(parser.Token); ok && tok.Text == LEN {
				if i+1 == len(line) {
					return nil, errorAt(source.SYNTAX_ERROR, tok, "expected string after LEN")
				}
				//
				n, err := p.length(tok, line[i+1])
				if err != nil {
					return nil, err
				}
				//
				operand = tok.WithText(strconv.Itoa(n))
				i++
			}
			//
			operands = append(operands, operand)
		}
	}
	//
	return operands, nil
}

// Check an operand is valid.  In particular, any remaining token of the form
// "$name" must refer to a visible label.
func (p *processor) checkOperand(operand parser.Node) (parser.Node, *source.Error) {
	tok, ok := operand.(parser.Token)
	//
	if !ok {
		return operand, nil
	} else if name, ok := labelName(tok.Text); ok {
		if id, ok := p.labels.lookup(name); ok {
			return LabelRef{id, name, tok.Span(), tok.Line()}, nil
		}
		//
		return nil, errorAt(source.NAME_ERROR, tok, "undefined label %s", name)
	} else if isKeyword(tok.Text) {
		return nil, errorAt(source.SYNTAX_ERROR, tok, "unexpected %s in operand", tok.Text)
	}
	//
	return tok, nil
}

// Expand a macro invocation "NAME(ARGS)".
func (p *processor) expandMacro(name parser.Token, c *cursor) ([]parser.Node, *source.Error) {
	args, ok := c.lookahead().(*parser.Scope)
	//
	if !ok || args.Bracket != parser.ROUND {
		return nil, errorAt(source.SYNTAX_ERROR, name, "expected \"(\" after macro %s", name.Text)
	}
	//
	c.next()
	//
	values, err := p.arguments(args)
	if err != nil {
		return nil, err
	}
	//
	macro := p.macros.Lookup(name.Text, len(values))
	if macro == nil {
		return nil, errorAt(source.TYPE_ERROR, name, "no overload of macro %s takes %d argument(s)",
			name.Text, len(values))
	}
	//
	child, err := p.child(macro.macros, name)
	if err != nil {
		return nil, err
	}
	// Bind parameters to arguments
	var params = make(bindings)
	//
	for i, param := range macro.Params {
		params[param] = values[i]
	}
	//
	return child.process(params.rewrite(macro.Body))
}

// Extract the arguments of a macro invocation.  Arguments must be individual
// tokens, and label references are resolved in the scope of the caller.
func (p *processor) arguments(args *parser.Scope) ([]parser.Node, *source.Error) {
	var values []parser.Node
	//
	for _, n := range args.Nodes {
		switch n := n.(type) {
		case LabelRef:
			values = append(values, n)
		case parser.Token:
			if n.IsNewline() {
				continue
			}
			//
			value, err := p.checkOperand(p.defines.apply(n))
			if err != nil {
				return nil, err
			}
			//
			values = append(values, value)
		default:
			return nil, errorAt(source.SYNTAX_ERROR, n, "macro arguments must be single tokens")
		}
	}
	//
	return values, nil
}

func isRound(node parser.Node) bool {
	scope, ok := node.(*parser.Scope)
	return ok && scope.Bracket == parser.ROUND
}
