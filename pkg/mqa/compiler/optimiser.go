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

import "github.com/miniquantum/go-mqa/pkg/mqa/mqis"

// Remove any immediate load of the accumulator which is redundant, because the
// accumulator already holds that value.  The value held is forgotten at every
// label (since it may be reached from elsewhere), after a load which is not
// immediate and after any instruction which may modify the accumulator.
func optimise(elements []element) []element {
	var (
		result = make([]element, 0, len(elements))
		value  int64
		known  bool
	)
	//
	for _, e := range elements {
		insn := e.insn
		//
		switch {
		case e.label != nil:
			known = false
		case insn.Mnemonic == mqis.LRA && isImmediate(insn.Argument):
			v := insn.Argument.Value & 0xFF
			//
			if known && v == value {
				// redundant
				continue
			}
			//
			value, known = v, true
		case !mqis.IsNonModifying(insn.Mnemonic):
			known = false
		}
		//
		result = append(result, e)
	}
	//
	return result
}

func isImmediate(arg Argument) bool {
	return arg.Kind == INTEGER || arg.Kind == NO_ARGUMENT
}
