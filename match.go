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

package matchcheck

import (
	"strconv"

	"github.com/wdamron/matchcheck/pattern"
)

// Clause is one case of a match construct.
type Clause struct {
	Vector pattern.Vector
	// Source line of the clause, or 0 if unknown.
	Line int
}

// Match is a multi-clause pattern-match construct, as produced by a front-end.
type Match struct {
	// Name labels the match in reports, e.g. the enclosing function.
	Name string
	Line int
	// Subjects names the simultaneously-matched subjects, one per column. Names only label witnesses.
	Subjects []string
	// Arity is the number of subjects. If zero, the number of subjects (or else the width of the first
	// clause) is used.
	Arity   int
	Clauses []Clause
}

// Width returns the number of subjects of m.
func (m *Match) Width() int {
	switch {
	case m.Arity > 0:
		return m.Arity
	case len(m.Subjects) > 0:
		return len(m.Subjects)
	case len(m.Clauses) > 0:
		return m.Clauses[0].Vector.Len()
	}
	return 0
}

// Matrix returns the clause vectors of m in source order.
func (m *Match) Matrix() pattern.Matrix {
	matrix := make(pattern.Matrix, len(m.Clauses))
	for i, c := range m.Clauses {
		matrix[i] = c.Vector
	}
	return matrix
}

// Label returns the name of m, or a description of its position.
func (m *Match) Label() string {
	if m.Name != "" {
		return m.Name
	}
	if m.Line > 0 {
		return "match at line " + strconv.Itoa(m.Line)
	}
	return "match"
}

// SubjectNames returns a name per subject, defaulting unnamed subjects to their column.
func (m *Match) SubjectNames() []string {
	names := make([]string, m.Width())
	for i := range names {
		if i < len(m.Subjects) && m.Subjects[i] != "" {
			names[i] = m.Subjects[i]
		} else {
			names[i] = "$" + strconv.Itoa(i)
		}
	}
	return names
}
