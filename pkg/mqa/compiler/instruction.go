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
)

// RawInstruction is an instruction produced by expansion, whose operand (if
// any) has not yet been typed.  The operand is either a token or a label
// reference.
type RawInstruction struct {
	Mnemonic parser.Token
	Operand  parser.Node
}

// Span implementation for parser.Node interface.
func (p RawInstruction) Span() source.Span {
	if p.Operand != nil {
		return p.Mnemonic.Span().Join(p.Operand.Span())
	}
	//
	return p.Mnemonic.Span()
}

// Line implementation for parser.Node interface.
func (p RawInstruction) Line() int {
	return p.Mnemonic.Line()
}

func (p RawInstruction) String() string {
	if p.Operand == nil {
		return p.Mnemonic.Text
	}
	//
	return fmt.Sprintf("%s %v", p.Mnemonic.Text, p.Operand)
}

// ArgumentKind distinguishes the kinds of operand an instruction can have.
type ArgumentKind uint8

// NO_ARGUMENT indicates an instruction without an operand.
const NO_ARGUMENT ArgumentKind = 0

// INTEGER indicates an immediate operand.
const INTEGER ArgumentKind = 1

// POINTER indicates an address operand (e.g. "$10").
const POINTER ArgumentKind = 2

// LABEL indicates a reference to a label (e.g. "$loop").
const LABEL ArgumentKind = 3

// Argument is a typed operand.  Before resolution, a LABEL argument identifies
// its target via Label.  Afterwards, Value holds the absolute index of the
// target.
type Argument struct {
	Kind  ArgumentKind
	Value int64
	Label LabelID
}

// MemoryFlag determines whether the operand addresses memory.
func (p Argument) MemoryFlag() bool {
	return p.Kind == POINTER || p.Kind == LABEL
}

func (p Argument) String() string {
	switch p.Kind {
	case NO_ARGUMENT:
		return ""
	case POINTER, LABEL:
		return fmt.Sprintf("$%d", p.Value)
	default:
		return fmt.Sprintf("%d", p.Value)
	}
}

// Instruction is a fully typed instruction.
type Instruction struct {
	Mnemonic string
	Argument Argument
	// Line (counting from 1) of the statement from which this instruction
	// originated.
	Line int
	// Span of the statement from which this instruction originated.
	Span source.Span
	// Synthetic instructions were inserted by the resolver (i.e. page
	// switches) rather than written by the user.
	synthetic bool
}

// MemoryFlag determines whether the operand of this instruction addresses
// memory.
func (p Instruction) MemoryFlag() bool {
	return p.Argument.MemoryFlag()
}

// IsSynthetic determines whether this instruction was inserted by the
// compiler, rather than arising from the source file.
func (p Instruction) IsSynthetic() bool {
	return p.synthetic
}

func (p Instruction) String() string {
	if p.Argument.Kind == NO_ARGUMENT {
		return p.Mnemonic
	}
	//
	return fmt.Sprintf("%s %s", p.Mnemonic, p.Argument.String())
}
