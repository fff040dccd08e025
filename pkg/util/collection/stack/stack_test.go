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
package stack

import (
	"testing"

	"github.com/miniquantum/go-mqa/pkg/util/assert"
)

func Test_Stack_01(t *testing.T) {
	s := NewStack[int]()
	//
	assert.True(t, s.IsEmpty())
	_, ok := s.Pop()
	assert.False(t, ok)
	_, ok = s.Top()
	assert.False(t, ok)
}

func Test_Stack_02(t *testing.T) {
	s := NewStack[string]()
	s.Push("a")
	s.Push("b")
	//
	assert.Equal(t, 2, s.Len())
	top, _ := s.Top()
	assert.Equal(t, "b", top)
	//
	item, ok := s.Pop()
	assert.True(t, ok)
	assert.Equal(t, "b", item)
	item, _ = s.Pop()
	assert.Equal(t, "a", item)
	assert.True(t, s.IsEmpty())
}
