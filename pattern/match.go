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

package pattern

import (
	"fmt"
)

// UnsupportedError is returned when a pattern cannot be evaluated against scalar values.
type UnsupportedError struct {
	Tag string
}

func (e *UnsupportedError) Error() string {
	return "cannot match " + e.Tag + " against scalar values"
}

// LeadingSpan returns the number of subjects covered by the first pattern of a row with rowLen
// patterns matched against width subjects. Every other pattern of the row covers one subject.
//
// A row is narrower than its match only when its first pattern is an or-pattern whose alternatives
// describe the whole subject tuple.
func LeadingSpan(rowLen, width int) int {
	if rowLen == 0 || rowLen > width {
		return 0
	}
	return width - rowLen + 1
}

// MatchRow reports whether row accepts the value tuple vs.
func MatchRow(row List, vs []Value) (bool, error) {
	span := LeadingSpan(row.Len(), len(vs))
	if span == 0 {
		return row.Len() == 0 && len(vs) == 0, nil
	}
	ok, err := match(row.First(), vs[:span])
	if err != nil || !ok {
		return false, err
	}
	for i := 1; i < row.Len(); i++ {
		ok, err := match(row.Get(i), vs[span+i-1:span+i])
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// Match reports whether p accepts the scalar v.
func Match(p Pattern, v Value) (bool, error) { return match(p, []Value{v}) }

func match(p Pattern, vs []Value) (bool, error) {
	switch p := p.(type) {
	case Empty:
		return false, nil

	case Wildcard, *Binding:
		return true, nil

	case *Literal:
		return len(vs) == 1 && vs[0].Equal(p.Value), nil

	case *Or:
		var err error
		matched := false
		p.Alternatives.Range(func(_ int, alt Pattern) bool {
			matched, err = match(alt, vs)
			return err == nil && !matched
		})
		return matched, err

	case *Sequence:
		if len(vs) == 1 {
			return false, &UnsupportedError{Tag: p.Tag()}
		}
		if p.Elements.Len() != len(vs) {
			return false, nil
		}
		for i := range vs {
			ok, err := match(p.Elements.Get(i), vs[i:i+1])
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil

	case WildcardSeq, *Mapping, *Constructor:
		return false, &UnsupportedError{Tag: p.Tag()}
	}
	return false, fmt.Errorf("unknown pattern type: %s", p.PatternName())
}
