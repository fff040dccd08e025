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

	"github.com/miniquantum/go-mqa/pkg/util/source"
)

// LabelID uniquely identifies a label within a compilation unit.  Labels with
// the same name defined in different scopes (or different expansions of the
// same macro) have distinct identifiers.
type LabelID uint

// LabelArena allocates the labels of a compilation unit.
type LabelArena struct {
	names []string
	lines []int
}

// Alloc allocates a fresh label with a given name, defined on a given line.
func (p *LabelArena) Alloc(name string, line int) LabelID {
	id := LabelID(len(p.names))
	p.names = append(p.names, name)
	p.lines = append(p.lines, line)
	//
	return id
}

// Name returns the name given to a label at its definition site.
func (p *LabelArena) Name(id LabelID) string {
	return p.names[id]
}

// Line returns the line on which a label was defined.
func (p *LabelArena) Line(id LabelID) int {
	return p.lines[id]
}

// Len returns the number of labels allocated so far.
func (p *LabelArena) Len() uint {
	return uint(len(p.names))
}

// LabelDef marks the position of a label definition (e.g. "loop:").
type LabelDef struct {
	ID   LabelID
	Name string
	span source.Span
	line int
}

// Span implementation for parser.Node interface.
func (p LabelDef) Span() source.Span {
	return p.span
}

// Line implementation for parser.Node interface.
func (p LabelDef) Line() int {
	return p.line
}

func (p LabelDef) String() string {
	return fmt.Sprintf("%s:", p.Name)
}

// LabelRef marks a reference to a label (e.g. "$loop").
type LabelRef struct {
	ID   LabelID
	Name string
	span source.Span
	line int
}

// Span implementation for parser.Node interface.
func (p LabelRef) Span() source.Span {
	return p.span
}

// Line implementation for parser.Node interface.
func (p LabelRef) Line() int {
	return p.line
}

func (p LabelRef) String() string {
	return fmt.Sprintf("$%s", p.Name)
}

// Reposition a reference at the site where it is used.
func (p LabelRef) at(span source.Span, line int) LabelRef {
	return LabelRef{p.ID, p.Name, span, line}
}

// Labels visible within a scope, which includes those of enclosing scopes.
type labelTable struct {
	parent *labelTable
	names  map[string]LabelID
}

func newLabelTable(parent *labelTable) *labelTable {
	return &labelTable{parent, make(map[string]LabelID)}
}

// Lookup a label by name, starting with this scope and working outwards.
func (p *labelTable) lookup(name string) (LabelID, bool) {
	for t := p; t != nil; t = t.parent {
		if id, ok := t.names[name]; ok {
			return id, true
		}
	}
	//
	return 0, false
}

// Define a label in this scope, returning true if it shadows an earlier
// definition in the same scope.
func (p *labelTable) define(name string, id LabelID) bool {
	_, exists := p.names[name]
	p.names[name] = id
	//
	return exists
}
