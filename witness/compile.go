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

package witness

import (
	"errors"
	"fmt"

	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
	"github.com/wdamron/matchcheck/pattern"
)

// ErrNoWitness is returned when no value tuple is accepted by the target and rejected by the prefix.
var ErrNoWitness = errors.New("no witness found")

// UnsupportedError is returned when a pattern has no condition encoding.
type UnsupportedError struct {
	Tag string
}

func (e *UnsupportedError) Error() string {
	return "condition for " + e.Tag + " is not implemented"
}

// ArityError is returned when a sequence pattern is compiled against a different number of subjects.
type ArityError struct {
	Elements int
	Vars     int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("sequence of %d elements compiled against %d subjects", e.Elements, e.Vars)
}

// CompileRow returns a literal which holds when the subjects vars are accepted by row.
//
// A row narrower than vars has a leading pattern which spans the surplus subjects.
func CompileRow(c *logic.C, row pattern.List, vars []*UnionVar) (z.Lit, error) {
	span := pattern.LeadingSpan(row.Len(), len(vars))
	if span == 0 {
		if row.Len() == 0 && len(vars) == 0 {
			return c.T, nil
		}
		return c.F, &ArityError{Elements: row.Len(), Vars: len(vars)}
	}
	first, err := Compile(c, row.First(), vars[:span])
	if err != nil {
		return c.F, err
	}
	conds := make([]z.Lit, 1, row.Len())
	conds[0] = first
	for i := 1; i < row.Len(); i++ {
		cond, err := Compile(c, row.Get(i), vars[span+i-1:span+i])
		if err != nil {
			return c.F, err
		}
		conds = append(conds, cond)
	}
	return c.Ands(conds...), nil
}

// Compile returns a literal which holds when p accepts the subjects vars. Every pattern other than
// a sequence (or an or-pattern of sequences) describes a single subject. A sequence describes the
// tuple of two or more spanned subjects; against a single subject it is a list value, which has no
// encoding.
func Compile(c *logic.C, p pattern.Pattern, vars []*UnionVar) (z.Lit, error) {
	switch p := p.(type) {
	case pattern.Empty:
		return c.F, nil

	case pattern.Wildcard, *pattern.Binding:
		return c.T, nil

	case *pattern.Literal:
		if len(vars) != 1 {
			// A scalar is never equal to a tuple.
			return c.F, nil
		}
		return vars[0].Eq(c, p.Value)

	case *pattern.Or:
		alts := make([]z.Lit, 0, p.Alternatives.Len())
		var err error
		p.Alternatives.Range(func(_ int, alt pattern.Pattern) bool {
			var cond z.Lit
			cond, err = Compile(c, alt, vars)
			alts = append(alts, cond)
			return err == nil
		})
		if err != nil {
			return c.F, err
		}
		return c.Ors(alts...), nil

	case *pattern.Sequence:
		if len(vars) == 1 {
			// A sequence matched against one subject is a list value, and subjects are scalars.
			return c.F, &UnsupportedError{Tag: p.Tag()}
		}
		n := p.Elements.Len()
		if n != len(vars) {
			return c.F, &ArityError{Elements: n, Vars: len(vars)}
		}
		elems := make([]z.Lit, n)
		for i := 0; i < n; i++ {
			cond, err := Compile(c, p.Elements.Get(i), vars[i:i+1])
			if err != nil {
				return c.F, err
			}
			elems[i] = cond
		}
		return c.Ands(elems...), nil
	}
	return c.F, &UnsupportedError{Tag: p.Tag()}
}
