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

	"github.com/miniquantum/go-mqa/pkg/mqa/parser"
)

// Macro represents a user-defined macro.  Macros are overloaded on their
// arity, thus a macro is identified by its name and number of parameters.
type Macro struct {
	Name   string
	Params []string
	// Body is the template from which each expansion is cloned.  This is never
	// modified.
	Body *parser.Scope
	// Macros visible from within the body.  This is the table at the point of
	// definition, including the macro itself.
	macros MacroTable
	line   int
}

// Line returns the line on which this macro was defined.
func (p *Macro) Line() int {
	return p.line
}

func (p *Macro) String() string {
	return fmt.Sprintf("%s(%s)", p.Name, strings.Join(p.Params, ", "))
}

// MacroTable maps macro names, and then arities, to macros.
type MacroTable map[string]map[int]*Macro

// Copy this table.  Modifications made to the copy are not visible in this
// table (and vice versa).
func (p MacroTable) Copy() MacroTable {
	table := make(MacroTable, len(p))
	//
	for name, overloads := range p {
		table[name] = maps.Clone(overloads)
	}
	//
	return table
}

// Has checks whether any overload exists for a given name.
func (p MacroTable) Has(name string) bool {
	return len(p[name]) > 0
}

// Lookup the overload of a given name with a given arity, returning nil if no
// such overload exists.
func (p MacroTable) Lookup(name string, arity int) *Macro {
	return p[name][arity]
}

// Put a macro into this table, returning true if this replaced an existing
// overload.
func (p MacroTable) Put(macro *Macro) bool {
	overloads, ok := p[macro.Name]
	//
	if !ok {
		overloads = make(map[int]*Macro)
		p[macro.Name] = overloads
	}
	//
	_, exists := overloads[len(macro.Params)]
	overloads[len(macro.Params)] = macro
	//
	return exists
}
