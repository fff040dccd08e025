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

// Config determines the options for compiling a given source file.
type Config struct {
	// MaxDepth bounds the nesting of macro and loop expansions.  Exceeding it
	// is reported as a recursion error.
	MaxDepth uint
	// Optimise enables removal of redundant accumulator loads.
	Optimise bool
	// Packages lists the extension packages which may be included without
	// a warning.
	Packages []string
}

// DefaultConfig returns the default compilation options.
func DefaultConfig() Config {
	return Config{
		MaxDepth: 1000,
		Optimise: true,
		Packages: mqis.Packages(),
	}
}
