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
package test

import (
	"testing"

	"github.com/miniquantum/go-mqa/pkg/test/util"
)

func Test_Invalid_Label_01(t *testing.T) {
	util.CheckInvalid(t, "invalid/label_01")
}

func Test_Invalid_UndefinedLabel_01(t *testing.T) {
	util.CheckInvalid(t, "invalid/undefined_label_01")
}

func Test_Invalid_Operands_01(t *testing.T) {
	util.CheckInvalid(t, "invalid/operands_01")
}

func Test_Invalid_Integer_01(t *testing.T) {
	util.CheckInvalid(t, "invalid/integer_01")
}

// ===================================================================
// Syntax Tests
// ===================================================================

func Test_Invalid_String_01(t *testing.T) {
	util.CheckInvalid(t, "invalid/string_01")
}

func Test_Invalid_Unclosed_01(t *testing.T) {
	util.CheckInvalid(t, "invalid/unclosed_01")
}

// ===================================================================
// Macro Tests
// ===================================================================

func Test_Invalid_UndefinedMacro_01(t *testing.T) {
	util.CheckInvalid(t, "invalid/undefined_macro_01")
}

func Test_Invalid_Overload_01(t *testing.T) {
	util.CheckInvalid(t, "invalid/overload_01")
}

func Test_Invalid_Recursion_01(t *testing.T) {
	util.CheckInvalid(t, "invalid/recursion_01")
}

func Test_Invalid_Range_01(t *testing.T) {
	util.CheckInvalid(t, "invalid/range_01")
}
