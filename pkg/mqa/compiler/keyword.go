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
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/miniquantum/go-mqa/pkg/mqa/mqis"
	"github.com/miniquantum/go-mqa/pkg/mqa/parser"
	"github.com/miniquantum/go-mqa/pkg/util/source"
)

// FOR introduces a loop "FOR var IN range { body }".
const FOR = "FOR"

// IN separates loop variables from the range.
const IN = "IN"

// ASSIGN binds a constant "ASSIGN name value".
const ASSIGN = "ASSIGN"

// INCLUDE requests an extension package "INCLUDE name".
const INCLUDE = "INCLUDE"

// LEN gives the number of characters in a string "LEN "str"".
const LEN = "LEN"

// ENUMERATE iterates the (index, character) pairs of a string.
const ENUMERATE = "ENUMERATE"

// WRITE_STR stores a string in memory "__WRITE_STR__ $ptr "str"".
const WRITE_STR = "__WRITE_STR__"

// MAX_ITERATIONS bounds the number of iterations of a single loop.
const MAX_ITERATIONS = 65536

var keywords = []string{FOR, IN, ASSIGN, INCLUDE, LEN, ENUMERATE, WRITE_STR}

func isKeyword(word string) bool {
	return slices.Contains(keywords, word)
}

func (p *processor) expandKeyword(keyword parser.Token, c *cursor) ([]parser.Node, *source.Error) {
	switch keyword.Text {
	case FOR:
		return p.expandFor(keyword, c)
	case ASSIGN:
		return nil, p.expandAssign(keyword, c)
	case INCLUDE:
		return nil, p.expandInclude(keyword, c)
	case WRITE_STR:
		return p.expandWriteString(keyword, c)
	default:
		return nil, errorAt(source.SYNTAX_ERROR, keyword, "unexpected %s", keyword.Text)
	}
}

// Expand a loop "FOR v IN range { body }" or "FOR i c IN ENUMERATE "str" {
// body }".  The body is expanded once per iteration, with each variable bound
// to its value for that iteration.
func (p *processor) expandFor(keyword parser.Token, c *cursor) ([]parser.Node, *source.Error) {
	var (
		vars  []parser.Token
		rng   []parser.Token
		items []parser.Node
	)
	// Parse variables
	for {
		tok, ok := c.lookahead().(parser.Token)
		//
		if !ok || tok.IsNewline() {
			return nil, errorAt(source.SYNTAX_ERROR, keyword, "expected %s in %s loop", IN, FOR)
		}
		//
		c.next()
		//
		if tok.Text == IN {
			break
		} else if !isIdentifier(tok.Text) || isKeyword(tok.Text) {
			return nil, errorAt(source.SYNTAX_ERROR, tok, "invalid loop variable %s", tok.Text)
		}
		//
		vars = append(vars, tok)
	}
	//
	if len(vars) == 0 || len(vars) > 2 {
		return nil, errorAt(source.SYNTAX_ERROR, keyword, "%s loop requires one or two variables", FOR)
	}
	// Parse range
	for !c.atEnd() {
		n := c.lookahead()
		//
		if _, ok := n.(*parser.Scope); ok {
			break
		}
		//
		tok, ok := n.(parser.Token)
		//
		if ok && tok.IsNewline() {
			break
		} else if ok {
			tok, ok = p.defines.apply(tok).(parser.Token)
		}
		//
		if !ok {
			return nil, errorAt(source.SYNTAX_ERROR, n, "invalid range %v", n)
		}
		//
		rng = append(rng, tok)
		c.next()
	}
	// Parse body
	body, ok := c.lookahead().(*parser.Scope)
	//
	if !ok || body.Bracket != parser.CURLY {
		return nil, errorAt(source.SYNTAX_ERROR, keyword, "expected \"{\" for body of %s loop", FOR)
	}
	//
	c.next()
	//
	iterations, err := p.iterations(keyword, len(vars), rng)
	if err != nil {
		return nil, err
	}
	//
	for _, values := range iterations {
		var binds = make(bindings)
		//
		for i, v := range vars {
			binds[v.Text] = v.WithText(values[i])
		}
		//
		child, err := p.child(p.macros, keyword)
		if err != nil {
			return nil, err
		}
		//
		expanded, err := child.process(binds.rewrite(body))
		if err != nil {
			return nil, err
		}
		//
		items = append(items, expanded...)
	}
	//
	return items, nil
}

// Determine the values taken by the variables of a loop on each iteration.
func (p *processor) iterations(keyword parser.Token, nvars int, rng []parser.Token) ([][]string, *source.Error) {
	var values [][]string
	//
	if len(rng) == 0 {
		return nil, errorAt(source.SYNTAX_ERROR, keyword, "expected range for %s loop", FOR)
	} else if rng[0].Text == ENUMERATE {
		// Enumerate (index, character) pairs
		if nvars != 2 || len(rng) != 2 {
			return nil, errorAt(source.SYNTAX_ERROR, rng[0], "%s requires two variables and a string", ENUMERATE)
		}
		//
		str, err := unquote(rng[1])
		if err != nil {
			return nil, err
		}
		//
		for i, c := range []rune(str) {
			values = append(values, []string{strconv.Itoa(i), strconv.Itoa(int(c))})
		}
		//
		return values, checkIterations(rng[0], len(values))
	} else if nvars != 1 {
		return nil, errorAt(source.SYNTAX_ERROR, keyword, "%s loop over two variables requires %s", FOR, ENUMERATE)
	}
	//
	ints, err := p.rangeOf(rng)
	if err != nil {
		return nil, err
	}
	//
	for _, i := range ints {
		values = append(values, []string{strconv.FormatInt(i, 10)})
	}
	//
	return values, nil
}

// Determine the integer values of a range, which is either "a..b", a string,
// a non-negative integer "n" or "LEN "str"".
func (p *processor) rangeOf(rng []parser.Token) ([]int64, *source.Error) {
	var (
		head = rng[0]
		ints []int64
	)
	//
	switch {
	case len(rng) == 2 && head.Text == LEN:
		n, err := p.length(head, rng[1])
		if err != nil {
			return nil, err
		}
		//
		return ascending(head, 0, int64(n))
	case len(rng) != 1:
		return nil, errorAt(source.SYNTAX_ERROR, rng[1], "unexpected %s in range", rng[1].Text)
	case parser.IsString(head.Text):
		str, err := unquote(head)
		if err != nil {
			return nil, err
		}
		//
		for _, c := range str {
			ints = append(ints, int64(c))
		}
		//
		return ints, checkIterations(head, len(ints))
	case strings.Contains(head.Text, ".."):
		lhs, rhs, _ := strings.Cut(head.Text, "..")
		//
		start, err1 := parseInteger(lhs)
		end, err2 := parseInteger(rhs)
		//
		if err1 != nil || err2 != nil {
			return nil, errorAt(source.VALUE_ERROR, head, "invalid range %s", head.Text)
		} else if start <= end {
			return ascending(head, start, end)
		}
		// Descending ranges visit the same values in reverse.
		ints, err := ascending(head, end, start)
		slices.Reverse(ints)
		//
		return ints, err
	default:
		n, err := parseInteger(head.Text)
		//
		if err != nil || n < 0 {
			return nil, errorAt(source.VALUE_ERROR, head, "invalid range %s", head.Text)
		}
		//
		return ascending(head, 0, n)
	}
}

// Construct the range [start, end).
func ascending(site parser.Node, start int64, end int64) ([]int64, *source.Error) {
	if end-start > MAX_ITERATIONS || end-start < 0 {
		return nil, errorAt(source.VALUE_ERROR, site, "range exceeds %d iterations", MAX_ITERATIONS)
	}
	//
	ints := make([]int64, 0, end-start)
	//
	for i := start; i < end; i++ {
		ints = append(ints, i)
	}
	//
	return ints, nil
}

func checkIterations(site parser.Node, n int) *source.Error {
	if n > MAX_ITERATIONS {
		return errorAt(source.VALUE_ERROR, site, "range exceeds %d iterations", MAX_ITERATIONS)
	}
	//
	return nil
}

// Expand a constant definition "ASSIGN name value".
func (p *processor) expandAssign(keyword parser.Token, c *cursor) *source.Error {
	line := c.restOfLine()
	//
	if len(line) == 0 {
		return errorAt(source.SYNTAX_ERROR, keyword, "expected constant name")
	}
	//
	name, ok := line[0].(parser.Token)
	//
	if !ok || !isIdentifier(name.Text) || isKeyword(name.Text) {
		return errorAt(source.SYNTAX_ERROR, line[0], "invalid constant name %v", line[0])
	}
	//
	values, err := p.operands(line[1:])
	//
	if err != nil {
		return err
	} else if len(values) != 1 {
		return errorAt(source.SYNTAX_ERROR, keyword, "%s expects a name and exactly one value", ASSIGN)
	}
	//
	if _, exists := p.defines[name.Text]; exists {
		p.unit.warn(name, "constant %s reassigned", name.Text)
	}
	//
	p.defines[name.Text] = values[0]
	//
	return nil
}

// Expand a package request "INCLUDE name".
func (p *processor) expandInclude(keyword parser.Token, c *cursor) *source.Error {
	var (
		line = c.restOfLine()
		name string
	)
	//
	if len(line) != 1 {
		return errorAt(source.SYNTAX_ERROR, keyword, "%s expects a package name", INCLUDE)
	}
	//
	tok, ok := line[0].(parser.Token)
	if !ok {
		return errorAt(source.SYNTAX_ERROR, line[0], "invalid package name %v", line[0])
	}
	//
	if tok, ok = p.defines.apply(tok).(parser.Token); !ok {
		return errorAt(source.SYNTAX_ERROR, line[0], "invalid package name %v", line[0])
	}
	//
	name = tok.Text
	//
	if parser.IsString(name) {
		var err *source.Error
		//
		if name, err = unquote(tok); err != nil {
			return err
		}
	}
	//
	switch {
	case name == "":
		return errorAt(source.SYNTAX_ERROR, tok, "empty package name")
	case slices.Contains(p.unit.includes, name):
		p.unit.warn(tok, "package %s already included", name)
		return nil
	case !slices.Contains(p.unit.config.Packages, name):
		p.unit.warn(tok, "unknown package %s", name)
	}
	//
	p.unit.includes = append(p.unit.includes, name)
	//
	return nil
}

// Expand "__WRITE_STR__ $ptr "str"" into instructions which store each byte of
// a string at successive addresses.  Bytes are written in order of value, so
// that the accumulator is reloaded only when the value changes.
func (p *processor) expandWriteString(keyword parser.Token, c *cursor) ([]parser.Node, *source.Error) {
	var items []parser.Node
	//
	line, err := p.operands(c.restOfLine())
	//
	if err != nil {
		return nil, err
	} else if len(line) != 2 {
		return nil, errorAt(source.SYNTAX_ERROR, keyword, "%s expects a pointer and a string", WRITE_STR)
	}
	//
	ptr, ok1 := line[0].(parser.Token)
	str, ok2 := line[1].(parser.Token)
	//
	if !ok1 || !strings.HasPrefix(ptr.Text, "$") {
		return nil, errorAt(source.SYNTAX_ERROR, line[0], "expected pointer, found %v", line[0])
	} else if !ok2 {
		return nil, errorAt(source.SYNTAX_ERROR, line[1], "expected string, found %v", line[1])
	}
	//
	base, e := parseInteger(ptr.Text[1:])
	if e != nil {
		return nil, errorAt(source.VALUE_ERROR, ptr, "invalid pointer %s", ptr.Text)
	}
	//
	text, err := unquote(str)
	if err != nil {
		return nil, err
	}
	//
	bytes := []byte(text)
	order := make([]int, len(bytes))
	//
	for i := range order {
		order[i] = i
	}
	//
	slices.SortStableFunc(order, func(l, r int) int {
		return cmp.Compare(bytes[l], bytes[r])
	})
	//
	for i, index := range order {
		if i == 0 || bytes[index] != bytes[order[i-1]] {
			value := str.WithText(strconv.Itoa(int(bytes[index])))
			items = append(items, RawInstruction{keyword.WithText(mqis.LRA), value})
		}
		//
		addr := ptr.WithText(fmt.Sprintf("$%d", base+int64(index)))
		items = append(items, RawInstruction{keyword.WithText(mqis.SRA), addr})
	}
	//
	if err = p.unit.emit(keyword, len(items)); err != nil {
		return nil, err
	}
	//
	return items, nil
}

// Determine the number of characters in the string of "LEN "str"".
func (p *processor) length(keyword parser.Token, operand parser.Node) (int, *source.Error) {
	tok, ok := operand.(parser.Token)
	//
	if ok {
		tok, ok = p.defines.apply(tok).(parser.Token)
	}
	//
	if !ok {
		return 0, errorAt(source.SYNTAX_ERROR, operand, "expected string after %s", keyword.Text)
	}
	//
	str, err := unquote(tok)
	if err != nil {
		return 0, err
	}
	//
	return len([]rune(str)), nil
}

func unquote(tok parser.Token) (string, *source.Error) {
	if !parser.IsString(tok.Text) {
		return "", errorAt(source.SYNTAX_ERROR, tok, "expected string, found %s", tok.Text)
	}
	//
	str, err := parser.Unquote(tok.Text)
	if err != nil {
		return "", errorAt(source.SYNTAX_ERROR, tok, "%s", err.Error())
	}
	//
	return str, nil
}

func parseInteger(text string) (int64, error) {
	return strconv.ParseInt(text, 0, 64)
}
