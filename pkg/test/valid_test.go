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

func Test_Valid_Basic_01(t *testing.T) {
	util.CheckValid(t, "valid/basic_01")
}

func Test_Valid_Comments_01(t *testing.T) {
	util.CheckValid(t, "valid/comments_01")
}

func Test_Valid_Labels_01(t *testing.T) {
	util.CheckValid(t, "valid/labels_01")
}

// ===================================================================
// Macro Tests
// ===================================================================

func Test_Valid_Macro_01(t *testing.T) {
	util.CheckValid(t, "valid/macro_01")
}

func Test_Valid_Macro_02(t *testing.T) {
	util.CheckValid(t, "valid/macro_02")
}

// ===================================================================
// Keyword Tests
// ===================================================================

func Test_Valid_Loops_01(t *testing.T) {
	util.CheckValid(t, "valid/loops_01")
}

func Test_Valid_Loops_02(t *testing.T) {
	util.CheckValid(t, "valid/loops_02")
}

func Test_Valid_WriteStr_01(t *testing.T) {
	util.CheckValid(t, "valid/write_str_01")
}

func Test_Valid_Include_01(t *testing.T) {
	util.CheckValid(t, "valid/include_01")
}

func Test_Valid_Warnings_01(t *testing.T) {
	util.CheckValid(t, "valid/warnings_01")
}
