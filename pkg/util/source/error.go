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
package source

import "fmt"

// ErrorKind classifies a diagnostic reported against a source file.
type ErrorKind uint8

// SYNTAX_ERROR signals a malformed construct (e.g. wrong bracket kind).
const SYNTAX_ERROR ErrorKind = 0

// NAME_ERROR signals a reference to an undefined mnemonic, macro or label.
const NAME_ERROR ErrorKind = 1

// TYPE_ERROR signals a macro invoked with an arity that has no overload.
const TYPE_ERROR ErrorKind = 2

// VALUE_ERROR signals a malformed integer literal or range.
const VALUE_ERROR ErrorKind = 3

// RECURSION_ERROR signals that expansion nested deeper than permitted.
const RECURSION_ERROR ErrorKind = 4

// INTERNAL_ERROR signals a broken invariant of the toolchain itself.
const INTERNAL_ERROR ErrorKind = 5

// WARNING signals a non-fatal diagnostic.
const WARNING ErrorKind = 6

func (k ErrorKind) String() string {
	switch k {
	case SYNTAX_ERROR:
		return "syntax error"
	case NAME_ERROR:
		return "name error"
	case TYPE_ERROR:
		return "type error"
	case VALUE_ERROR:
		return "value error"
	case RECURSION_ERROR:
		return "recursion error"
	case INTERNAL_ERROR:
		return "internal error"
	case WARNING:
		return "warning"
	default:
		return "unknown error"
	}
}

// Error is a structured diagnostic which retains the span of the original
// text where it arose, along with the originating line and a message.
type Error struct {
	kind ErrorKind
	// Character span in the source file where the error arose.
	span Span
	// Line number (counting from 1), or 0 when not attributable to a line.
	line int
	// Error message being reported
	msg string
}

// NewError constructs a new diagnostic of a given kind.
func NewError(kind ErrorKind, span Span, line int, msg string) *Error {
	return &Error{kind, span, line, msg}
}

// Kind returns the classification of this diagnostic.
func (p *Error) Kind() ErrorKind {
	return p.kind
}

// Span returns the span of the original text on which this error is reported.
func (p *Error) Span() Span {
	return p.span
}

// Line returns the line on which this error is reported, or 0 if unknown.
func (p *Error) Line() int {
	return p.line
}

// Message returns the message to be reported.
func (p *Error) Message() string {
	return p.msg
}

// Error implements the error interface.
func (p *Error) Error() string {
	if p.line == 0 {
		return fmt.Sprintf("%s: %s", p.kind, p.msg)
	}
	//
	return fmt.Sprintf("line %d: %s: %s", p.line, p.kind, p.msg)
}
