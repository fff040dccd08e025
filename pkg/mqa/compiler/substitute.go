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
	"strings"

	"github.com/miniquantum/go-mqa/pkg/mqa/parser"
)

// Bindings map names to the nodes which replace them.  These arise from macro
// parameters, loop variables and constants.
type bindings map[string]parser.Node

// Apply these bindings to a given token.  A token is replaced when its text
// matches a bound name exactly.  A pointer "$name" is replaced by the pointer
// "$value" (or by a label reference, when bound to one).  When the value is
// itself a pointer, it is used as is.  Either side of a
// range "a..b" is also replaced.  Replacement nodes are positioned at the
// token being replaced.
func (p bindings) apply(tok parser.Token) parser.Node {
	if len(p) == 0 || tok.Kind != parser.WORD {
		return tok
	} else if value, ok := p[tok.Text]; ok {
		return reposition(value, tok)
	} else if name, ok := strings.CutPrefix(tok.Text, "$"); ok {
		switch value := p[name].(type) {
		case parser.Token:
			if strings.HasPrefix(value.Text, "$") {
				return tok.WithText(value.Text)
			}
			//
			return tok.WithText(fmt.Sprintf("$%s", value.Text))
		case LabelRef:
			return value.at(tok.Span(), tok.Line())
		}
	} else if lhs, rhs, ok := strings.Cut(tok.Text, ".."); ok {
		return tok.WithText(fmt.Sprintf("%s..%s", p.text(lhs), p.text(rhs)))
	}
	//
	return tok
}

// Substitute a name bound to a token by the token's text.
func (p bindings) text(name string) string {
	if value, ok := p[name].(parser.Token); ok {
		return value.Text
	}
	//
	return name
}

// Rewrite a given scope by applying these bindings throughout.
func (p bindings) rewrite(scope *parser.Scope) *parser.Scope {
	return scope.Rewrite(p.apply)
}

func reposition(node parser.Node, site parser.Node) parser.Node {
	switch n := node.(type) {
	case parser.Token:
		return n.At(site)
	case LabelRef:
		return n.at(site.Span(), site.Line())
	default:
		return node
	}
}
