// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package frontend

import (
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
)

// Guard is the condition of a guarded clause. Guards are never evaluated; the checker treats every guard as
// always true, and reports which verdicts rely on that.
type Guard struct {
	Source string
	// Identifiers referenced by the guard, in order of first reference.
	Identifiers []string
}

func (g *Guard) String() string { return g.Source }

// ParseGuard parses a guard expression and collects the identifiers it references.
func ParseGuard(source string) (*Guard, error) {
	tree, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	v := &identCollector{seen: make(map[string]bool)}
	ast.Walk(&tree.Node, v)
	return &Guard{Source: source, Identifiers: v.names}, nil
}

type identCollector struct {
	seen  map[string]bool
	names []string
}

func (v *identCollector) Visit(node *ast.Node) {
	if id, ok := (*node).(*ast.IdentifierNode); ok && !v.seen[id.Value] {
		v.seen[id.Value] = true
		v.names = append(v.names, id.Value)
	}
}
