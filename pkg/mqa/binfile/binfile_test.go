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
	"bytes"
	"strings"
	"testing"

	"github.com/miniquantum/go-mqa/pkg/mqa/compiler"
	"github.com/miniquantum/go-mqa/pkg/util/assert"
)

func Test_Word_01(t *testing.T) {
	w := NewWord(false, 0, 0)
	assert.Equal(t, 0, uint16(w))
	assert.Equal(t, "NOP", w.String())
}

func Test_Word_02(t *testing.T) {
	w := NewWord(true, 10, 1)
	//
	assert.Equal(t, (1<<15)|(10<<7)|1, uint16(w))
	assert.True(t, w.Flag())
	assert.Equal(t, 10, w.Value())
	assert.Equal(t, 1, w.Opcode())
	assert.Equal(t, "LRA $10", w.String())
}

func Test_Word_03(t *testing.T) {
	w := NewWord(false, 255, 0x7F)
	//
	assert.Equal(t, 0x7FFF, uint16(w))
	assert.False(t, w.Flag())
	assert.Equal(t, 255, w.Value())
}

func Test_Encode_01(t *testing.T) {
	checkEncoding(t, "NOP", "", 0x00, 0x00)
}

func Test_Encode_02(t *testing.T) {
	word := (1 << 15) | (10 << 7) | 1
	checkEncoding(t, "LRA $10", "", byte(word), byte(word>>8))
}

func Test_Encode_03(t *testing.T) {
	// jump targets keep only their offset within the page
	data := encode(t, strings.Repeat("NOP\n", 300)+"end:\nJMP $end")
	code := data[HEADER_SIZE:]
	// CRP 1 is inserted before the jump
	assert.Equal(t, 2*302, len(code))
	//
	binf, err := Decode(data)
	assert.NoError(t, err)
	//
	lines := Disassemble(binf)
	assert.Equal(t, "CRP 1", lines[300])
	assert.Equal(t, "JMP $44", lines[301])
}

func Test_Encode_04(t *testing.T) {
	data := encode(t, "INCLUDE terminal\nINCLUDE timer\nHALT")
	//
	assert.Equal(t, "1.1 ", string(data[0:4]))
	assert.Equal(t, []byte{15, 0}, data[4:6])
	assert.Equal(t, []byte{2, 0, 0, 0}, data[6:10])
	assert.Equal(t, "terminal\ntimer\n", string(data[10:25]))
	assert.Equal(t, 27, len(data))
}

func Test_Encode_05(t *testing.T) {
	_, err := Encode(nil, []compiler.Instruction{{Mnemonic: "BOGUS"}})
	assert.ErrorContains(t, err, "no opcode for BOGUS")
}

func Test_Encode_06(t *testing.T) {
	program, errs := compiler.CompileString("INCLUDE timer\nLRA 1", compiler.DefaultConfig())
	if errs != nil {
		t.Fatal(errs.Error())
	}
	//
	binf, err := Assemble(program)
	assert.NoError(t, err)
	//
	data, err := binf.MarshalBinary()
	assert.NoError(t, err)
	assert.Equal(t, int(binf.Size()), len(data))
	assert.Equal(t, []uint16{(1 << 7) | 1}, binf.Code)
}

func Test_NewBinaryFile_01(t *testing.T) {
	_, err := NewBinaryFile([]string{"términal"}, nil)
	assert.ErrorContains(t, err, "not ASCII")
}

func Test_NewBinaryFile_02(t *testing.T) {
	_, err := NewBinaryFile([]string{strings.Repeat("x", MAX_INCLUDE_SIZE)}, nil)
	assert.ErrorContains(t, err, "include section too large")
}

func Test_NewBinaryFile_03(t *testing.T) {
	binf, err := NewBinaryFile([]string{strings.Repeat("x", MAX_INCLUDE_SIZE-1)}, []uint16{1, 2})
	assert.NoError(t, err)
	assert.Equal(t, MAX_INCLUDE_SIZE, binf.Header.IncludeSize)
	assert.Equal(t, 4, binf.Header.AssemblySize)
	assert.Equal(t, HEADER_SIZE+MAX_INCLUDE_SIZE+4, binf.Size())
}

func Test_Decode_01(t *testing.T) {
	data := encode(t, "INCLUDE random\nLRA 3\nSRA $4")
	//
	binf, err := Decode(data)
	assert.NoError(t, err)
	assert.Equal(t, []string{"random"}, binf.Includes)
	assert.Equal(t, []string{"LRA 3", "SRA $4"}, Disassemble(binf))
}

func Test_Decode_02(t *testing.T) {
	_, err := Decode([]byte{'1', '.', '1'})
	assert.ErrorContains(t, err, "malformed binary file")
}

func Test_Decode_03(t *testing.T) {
	_, err := Decode([]byte{'0', '.', '9', ' ', 0, 0, 0, 0, 0, 0})
	assert.ErrorContains(t, err, "incompatible binary file")
}

func Test_Decode_04(t *testing.T) {
	// assembly section truncated
	_, err := Decode([]byte{'1', '.', '1', ' ', 0, 0, 4, 0, 0, 0, 0, 0})
	assert.ErrorContains(t, err, "malformed binary file")
}

func Test_Decode_05(t *testing.T) {
	_, err := Decode([]byte{'1', '.', '1', ' ', 3, 0, 0, 0, 0, 0, 'a', 'b', 'c'})
	assert.ErrorContains(t, err, "unterminated include")
}

func Test_Decode_06(t *testing.T) {
	binf, err := Decode([]byte{'1', '.', '1', ' ', 0, 0, 0, 0, 0, 0})
	assert.NoError(t, err)
	assert.Equal(t, 0, len(binf.Includes))
	assert.Equal(t, 0, len(binf.Code))
}

func Test_Report_01(t *testing.T) {
	var (
		buf   bytes.Buffer
		binf  = decode(t, "INCLUDE keyboard\nNOP\nNOP")
		lines []string
	)
	//
	binf.Report(&buf)
	lines = strings.Split(strings.TrimSpace(buf.String()), "\n")
	//
	assert.Equal(t, 6, len(lines))
	assert.Equal(t, "\tcpuVersion:          1.1", lines[1])
	assert.Equal(t, "\tincludeSectionSize:  9", lines[2])
	assert.Equal(t, "\tassemblySectionSize: 4", lines[3])
	assert.Equal(t, "Total size: 23 bytes", lines[5])
}

// ============================================================================
// Helpers
// ============================================================================

func checkEncoding(t *testing.T, input string, includes string, code ...byte) {
	data := encode(t, input)
	//
	assert.Equal(t, includes, string(data[HEADER_SIZE:HEADER_SIZE+len(includes)]))
	assert.Equal(t, code, data[HEADER_SIZE+len(includes):])
}

func decode(t *testing.T, input string) *BinaryFile {
	binf, err := Decode(encode(t, input))
	assert.NoError(t, err)
	//
	return binf
}

func encode(t *testing.T, input string) []byte {
	program, errs := compiler.CompileString(input, compiler.DefaultConfig())
	//
	if errs != nil {
		t.Fatal(errs.Error())
	}
	//
	data, err := Encode(program.Includes, program.Instructions)
	assert.NoError(t, err)
	//
	return data
}
