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
package mqis

import (
	"slices"
	"sort"
)

// VERSION identifies the CPU revision targeted by this instruction set, as
// written into the header of every binary file.
var VERSION = [4]byte{'1', '.', '1', ' '}

// Opcode returns the 7-bit opcode of a given mnemonic, and whether or not the
// mnemonic is known.
func Opcode(mnemonic string) (uint8, bool) {
	opcode, ok := opcodes[mnemonic]
	return opcode, ok
}

// IsMnemonic checks whether a given word names an instruction.
func IsMnemonic(word string) bool {
	_, ok := opcodes[word]
	return ok
}

// IsJump checks whether a given instruction addresses ROM (and hence is subject
// to ROM paging rather than cache paging).
func IsJump(mnemonic string) bool {
	return jumps[mnemonic]
}

// IsNonModifying checks whether a given instruction is guaranteed to leave the
// accumulator untouched.  Unknown mnemonics are assumed to modify it.
func IsNonModifying(mnemonic string) bool {
	return nonModifying[mnemonic]
}

// Mnemonic returns the mnemonic of a given opcode, and whether or not the
// opcode is assigned.
func Mnemonic(opcode uint8) (string, bool) {
	for m, o := range opcodes {
		if o == opcode {
			return m, true
		}
	}
	//
	return "", false
}

// Mnemonics returns every known mnemonic, ordered by opcode.
func Mnemonics() []string {
	names := make([]string, 0, len(opcodes))
	//
	for m := range opcodes {
		names = append(names, m)
	}
	//
	sort.Slice(names, func(i, j int) bool {
		return opcodes[names[i]] < opcodes[names[j]]
	})
	//
	return names
}

// Packages returns the extension packages known to the CPU.
func Packages() []string {
	return slices.Clone(packages)
}

// IsPackage checks whether a given name identifies a known extension package.
func IsPackage(name string) bool {
	return slices.Contains(packages, name)
}
