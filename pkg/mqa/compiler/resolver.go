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
	"slices"
	"strings"

	"github.com/miniquantum/go-mqa/pkg/mqa/mqis"
	"github.com/miniquantum/go-mqa/pkg/mqa/parser"
	"github.com/miniquantum/go-mqa/pkg/util/source"
)

// MAX_INSTRUCTIONS is the capacity of ROM (256 pages of 256 instructions).
const MAX_INSTRUCTIONS = 65536

// MAX_PAGE is the largest page number for ROM and cache.
const MAX_PAGE = 255

// An element of the resolver's input, being either a label definition or an
// instruction.
type element struct {
	label *LabelDef
	insn  Instruction
}

// Resolve a flat sequence of label definitions and raw instructions into the
// final sequence of instructions.  This types every operand, removes redundant
// accumulator loads (when enabled), excises labels and inserts the page
// switches needed for every address to be reachable.
func (p *unit) resolve(items []parser.Node) ([]Instruction, *source.Error) {
	elements, err := p.typeArguments(items)
	//
	if err != nil {
		return nil, err
	}
	//
	if p.config.Optimise {
		elements = optimise(elements)
	}
	//
	code, labels, err := p.exciseLabels(elements)
	if err != nil {
		return nil, err
	}
	//
	if code, err = p.fixPages(code, labels); err != nil {
		return nil, err
	} else if len(code) > MAX_INSTRUCTIONS {
		return nil, insnError(source.VALUE_ERROR, code[MAX_INSTRUCTIONS], "program exceeds %d instructions",
			MAX_INSTRUCTIONS)
	}
	// Finalise arguments
	for i := range code {
		arg := &code[i].Argument
		//
		if arg.Kind == LABEL {
			arg.Value = int64(labels[arg.Label])
		} else {
			arg.Value &= 0xFF
		}
	}
	//
	return code, nil
}

// Type the operand of every raw instruction.
func (p *unit) typeArguments(items []parser.Node) ([]element, *source.Error) {
	var elements = make([]element, len(items))
	//
	for i, item := range items {
		switch item := item.(type) {
		case LabelDef:
			elements[i].label = &item
		case RawInstruction:
			insn, err := p.typeArgument(item)
			if err != nil {
				return nil, err
			}
			//
			elements[i].insn = insn
		default:
			return nil, errorAt(source.INTERNAL_ERROR, item, "unexpected item %v", item)
		}
	}
	//
	return elements, nil
}

func (p *unit) typeArgument(raw RawInstruction) (Instruction, *source.Error) {
	var insn = Instruction{Mnemonic: raw.Mnemonic.Text, Line: raw.Line(), Span: raw.Span()}
	//
	switch operand := raw.Operand.(type) {
	case nil:
		// no operand
	case LabelRef:
		insn.Argument = Argument{Kind: LABEL, Label: operand.ID}
	case parser.Token:
		text := operand.Text
		//
		if ptr, ok := strings.CutPrefix(text, "$"); ok {
			value, err := parseInteger(ptr)
			if err != nil {
				return insn, errorAt(source.VALUE_ERROR, operand, "invalid pointer %s", text)
			}
			//
			insn.Argument = Argument{Kind: POINTER, Value: value}
		} else if parser.IsString(text) {
			str, err := parser.Unquote(text)
			chars := []rune(str)
			//
			if err != nil || len(chars) != 1 {
				return insn, errorAt(source.VALUE_ERROR, operand, "expected single character, found %s", text)
			}
			//
			insn.Argument = Argument{Kind: INTEGER, Value: int64(chars[0])}
		} else {
			value, err := parseInteger(text)
			if err != nil {
				return insn, errorAt(source.VALUE_ERROR, operand, "invalid integer %s", text)
			}
			//
			insn.Argument = Argument{Kind: INTEGER, Value: value}
		}
	default:
		return insn, errorAt(source.INTERNAL_ERROR, operand, "unexpected operand %v", operand)
	}
	//
	if mqis.IsJump(insn.Mnemonic) && insn.Argument.Kind == INTEGER {
		p.warn(raw, "static jump target %d", insn.Argument.Value)
	}
	//
	return insn, nil
}

// Remove label definitions, determining the index of the instruction each
// identifies.
func (p *unit) exciseLabels(elements []element) ([]Instruction, map[LabelID]int, *source.Error) {
	var (
		code   []Instruction
		labels = make(map[LabelID]int)
	)
	//
	for _, e := range elements {
		if e.label != nil {
			labels[e.label.ID] = len(code)
		} else {
			code = append(code, e.insn)
		}
	}
	// Sanity check all references
	for _, insn := range code {
		if insn.Argument.Kind != LABEL {
			continue
		} else if _, ok := labels[insn.Argument.Label]; !ok {
			return nil, nil, insnError(source.NAME_ERROR, insn, "undefined label %s",
				p.arena.Name(insn.Argument.Label))
		}
	}
	//
	return code, labels, nil
}

// Insert page switches until every address operand falls within the currently
// selected page.  Since inserting a switch moves subsequent labels, this is
// repeated until nothing changes.
func (p *unit) fixPages(code []Instruction, labels map[LabelID]int) ([]Instruction, *source.Error) {
	return fixPagesWithin(code, labels, len(code)+2*(MAX_PAGE+1)+1)
}

// Fix pages using at most a given number of passes (beyond the first).
func fixPagesWithin(code []Instruction, labels map[LabelID]int, limit int) ([]Instruction, *source.Error) {
	var (
		changed = true
		err     *source.Error
	)
	//
	for pass := 0; changed; pass++ {
		if pass > limit {
			// Only reachable with a non-empty program
			return nil, insnError(source.INTERNAL_ERROR, code[0], "page fixup failed to converge")
		}
		//
		if code, changed, err = fixPagesOnce(code, labels); err != nil {
			return nil, err
		}
	}
	//
	return code, nil
}

// Make a single pass over the instructions, inserting (or updating) page
// switches as necessary.  Labels after any insertion point are moved
// immediately.
func fixPagesOnce(code []Instruction, labels map[LabelID]int) ([]Instruction, bool, *source.Error) {
	var (
		rom, cache int64
		changed    bool
	)
	//
	for i := 0; i < len(code); i++ {
		var (
			insn     = code[i]
			tracker  = &cache
			mnemonic = mqis.CCP
		)
		// User page switches
		switch insn.Mnemonic {
		case mqis.CRP:
			rom = selectedPage(insn.Argument)
			continue
		case mqis.CCP:
			cache = selectedPage(insn.Argument)
			continue
		}
		//
		addr, ok := address(insn, labels)
		//
		if !ok {
			continue
		} else if mqis.IsJump(insn.Mnemonic) {
			tracker, mnemonic = &rom, mqis.CRP
		}
		//
		page := addr >> 8
		//
		if addr < 0 || page > MAX_PAGE {
			return nil, false, insnError(source.VALUE_ERROR, insn, "address %d exceeds 64 KiB", addr)
		} else if page == *tracker {
			continue
		}
		//
		if i > 0 && code[i-1].synthetic && code[i-1].Mnemonic == mnemonic {
			// Update stale switch
			code[i-1].Argument.Value = page
		} else {
			code = slices.Insert(code, i, pageSwitch(mnemonic, page, insn))
			// Move subsequent labels
			for id, index := range labels {
				if index > i {
					labels[id] = index + 1
				}
			}
			//
			i++
		}
		//
		*tracker, changed = page, true
	}
	//
	return code, changed, nil
}

// Determine the page selected by a user-written page switch.  Pages selected
// dynamically are unknown.
func selectedPage(arg Argument) int64 {
	if arg.Kind == INTEGER || arg.Kind == NO_ARGUMENT {
		return arg.Value
	}
	//
	return -1
}

// Determine the address accessed by an instruction (if any).  Jumps access the
// ROM, whilst every other pointer accesses the cache.  Labels only give an
// address for jumps.
func address(insn Instruction, labels map[LabelID]int) (int64, bool) {
	switch {
	case insn.Argument.Kind == LABEL && mqis.IsJump(insn.Mnemonic):
		return int64(labels[insn.Argument.Label]), true
	case insn.Argument.Kind == POINTER:
		return insn.Argument.Value, true
	default:
		return 0, false
	}
}

func pageSwitch(mnemonic string, page int64, insn Instruction) Instruction {
	return Instruction{
		Mnemonic:  mnemonic,
		Argument:  Argument{Kind: INTEGER, Value: page},
		Line:      insn.Line,
		Span:      insn.Span,
		synthetic: true,
	}
}

func insnError(kind source.ErrorKind, insn Instruction, format string, args ...any) *source.Error {
	return source.NewError(kind, insn.Span, insn.Line, fmt.Sprintf(format, args...))
}
