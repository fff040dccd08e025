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
package binfile

import (
	"fmt"

	"github.com/miniquantum/go-mqa/pkg/mqa/compiler"
	"github.com/miniquantum/go-mqa/pkg/mqa/mqis"
	"github.com/miniquantum/go-mqa/pkg/util/source"
)

// Word is an encoded instruction.  Bit 15 holds the memory flag, bits 7..14
// hold the operand and bits 0..6 hold the opcode.
type Word uint16

// NewWord constructs an instruction word from its components.
func NewWord(flag bool, value uint8, opcode uint8) Word {
	var w = Word(value)<<7 | Word(opcode&0x7F)
	//
	if flag {
		w |= 1 << 15
	}
	//
	return w
}

// Flag returns the memory flag of this word.
func (w Word) Flag() bool {
	return w>>15 != 0
}

// Value returns the 8-bit operand of this word.
func (w Word) Value() uint8 {
	return uint8((w >> 7) & 0xFF)
}

// Opcode returns the 7-bit opcode of this word.
func (w Word) Opcode() uint8 {
	return uint8(w & 0x7F)
}

func (w Word) String() string {
	mnemonic, ok := mqis.Mnemonic(w.Opcode())
	//
	if !ok {
		mnemonic = fmt.Sprintf("??%d", w.Opcode())
	}
	//
	if w.Flag() {
		return fmt.Sprintf("%s $%d", mnemonic, w.Value())
	} else if w.Value() != 0 {
		return fmt.Sprintf("%s %d", mnemonic, w.Value())
	}
	//
	return mnemonic
}

// EncodeInstruction encodes a single resolved instruction.  Only the low byte
// of the operand is retained, since the page is selected separately.
func EncodeInstruction(insn compiler.Instruction) (Word, *source.Error) {
	opcode, ok := mqis.Opcode(insn.Mnemonic)
	//
	if !ok {
		msg := fmt.Sprintf("no opcode for %s", insn.Mnemonic)
		return 0, source.NewError(source.INTERNAL_ERROR, insn.Span, insn.Line, msg)
	}
	//
	return NewWord(insn.MemoryFlag(), uint8(insn.Argument.Value&0xFF), opcode), nil
}

// Assemble a compiled program into a binary file.
func Assemble(program compiler.Program) (*BinaryFile, error) {
	code := make([]uint16, len(program.Instructions))
	//
	for i, insn := range program.Instructions {
		word, err := EncodeInstruction(insn)
		if err != nil {
			return nil, err
		}
		//
		code[i] = uint16(word)
	}
	//
	return NewBinaryFile(program.Includes, code)
}

// Encode a sequence of resolved instructions, along with the extension
// packages they require, as the bytes of an executable file.
func Encode(includes []string, code []compiler.Instruction) ([]byte, error) {
	binf, err := Assemble(compiler.Program{Instructions: code, Includes: includes})
	//
	if err != nil {
		return nil, err
	}
	//
	return binf.MarshalBinary()
}

// Decode a sequence of bytes into a binary file.
func Decode(data []byte) (*BinaryFile, error) {
	var binf BinaryFile
	//
	if err := binf.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	//
	return &binf, nil
}

// Disassemble renders each instruction word of a binary file as a line of
// assembly.  Jump targets are shown relative to their page, since the page
// itself is selected by a separate instruction.
func Disassemble(binf *BinaryFile) []string {
	lines := make([]string, len(binf.Code))
	//
	for i, word := range binf.Code {
		lines[i] = Word(word).String()
	}
	//
	return lines
}
