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

	"github.com/miniquantum/go-mqa/pkg/mqa/parser"
	"github.com/miniquantum/go-mqa/pkg/util/source"
	log "github.com/sirupsen/logrus"
)

// Program is the result of compiling a source file.
type Program struct {
	// Instructions of the program, in order.
	Instructions []Instruction
	// Includes lists the extension packages requested by the program.
	Includes []string
	// Warnings arising during compilation.
	Warnings []source.Error
}

// State shared by all scopes of a compilation unit.
type unit struct {
	config   Config
	arena    LabelArena
	includes []string
	warnings []source.Error
	// Number of instructions emitted so far.
	emitted int
}

// Record the emission of some instructions, failing once they can no longer
// fit in ROM.  Page switches and the peephole pass come later, so this is a
// lower bound on the final size.
func (p *unit) emit(site parser.Node, n int) *source.Error {
	if p.emitted += n; p.emitted > MAX_INSTRUCTIONS {
		return errorAt(source.VALUE_ERROR, site, "program exceeds %d instructions", MAX_INSTRUCTIONS)
	}
	//
	return nil
}

func (p *unit) warn(node parser.Node, format string, args ...any) {
	warning := source.NewError(source.WARNING, node.Span(), node.Line(), fmt.Sprintf(format, args...))
	p.warnings = append(p.warnings, *warning)
	//
	log.Debug(warning.Error())
}

// Compile a given source file into a sequence of instructions, along with the
// extension packages it requests.  Compilation stops at the first error.
func Compile(srcfile *source.File, config Config) (Program, *source.Error) {
	var cu = &unit{config: config}
	//
	tree, err := parser.Parse(srcfile)
	if err != nil {
		return Program{}, err
	}
	//
	log.Debugf("parsed %s (depth %d)", srcfile.Filename(), tree.Depth())
	//
	items, err := newProcessor(cu).process(tree)
	if err != nil {
		return Program{}, err
	}
	//
	log.Debugf("expanded %d items (%d labels)", len(items), cu.arena.Len())
	//
	code, err := cu.resolve(items)
	if err != nil {
		return Program{}, err
	}
	//
	log.Debugf("resolved %d instructions (%d warnings)", len(code), len(cu.warnings))
	//
	return Program{code, cu.includes, cu.warnings}, nil
}

// CompileString compiles some source text.
func CompileString(text string, config Config) (Program, *source.Error) {
	return Compile(source.NewSourceFile("<input>", []byte(text)), config)
}
