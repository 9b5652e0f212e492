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
	"github.com/wdamron/matchcheck/pattern"
)

// Useful reports whether v matches at least one value which is matched by no row of m, recognizing only
// the default complete domains. All rows of m must have the same width as v.
func Useful(m []pattern.List, v pattern.List) bool {
	return urec(DefaultClassifiers, m, v)
}

// urec is the usefulness algorithm U, by recursive specialization of the first column.
func urec(classifiers []Classifier, m []pattern.List, v pattern.List) bool {
	if v.Len() == 0 {
		// An empty vector is useful only if no row has already matched the empty tuple.
		return len(m) == 0
	}

	first := v.First()
	switch pattern.Classify(first) {
	case pattern.ClassLiteral, pattern.ClassSequence:
		tag, arity := first.Tag(), pattern.Arity(first)
		sv, _ := specializeVector(tag, arity, v)
		return urec(classifiers, specialize(tag, arity, m), sv)

	case pattern.ClassWildcard:
		sig := CollectSignature(m)
		if isComplete(classifiers, sig) {
			for _, c := range sig.Constructors() {
				sv, ok := specializeVector(c.Tag, c.Arity, v)
				if ok && urec(classifiers, specialize(c.Tag, c.Arity, m), sv) {
					return true
				}
			}
			return false
		}
		return urec(classifiers, defaultMatrix(m), v.Rest())

	case pattern.ClassOr:
		rest, useful := v.Rest(), false
		first.(*pattern.Or).Alternatives.Range(func(_ int, alt pattern.Pattern) bool {
			useful = urec(classifiers, m, rest.Prepend(alt))
			return !useful
		})
		return useful
	}

	// Empty, wildcard-sequence, mapping and constructor patterns are never useful.
	return false
}

// widenRow expands a row which is narrower than width into rows of exactly width columns.
//
// Only a leading or-pattern may span several subjects: each alternative is extended into the spanned
// columns (sequence elements are spliced, wildcards are repeated). Alternatives which cannot describe
// the spanned tuple, and rows of any other width, produce no rows; such rows match nothing.
func widenRow(row pattern.List, width int) []pattern.List {
	n := row.Len()
	if n == width {
		return []pattern.List{row}
	}
	span := pattern.LeadingSpan(n, width)
	if span == 0 {
		return nil
	}
	first, rest := row.First(), row.Rest()
	switch p := first.(type) {
	case *pattern.Or:
		var out []pattern.List
		p.Alternatives.Range(func(_ int, alt pattern.Pattern) bool {
			out = append(out, widenRow(rest.Prepend(alt), width)...)
			return true
		})
		return out
	case *pattern.Sequence:
		if p.Elements.Len() == span {
			return []pattern.List{pattern.Extend(p, rest)}
		}
	case pattern.Wildcard, *pattern.Binding:
		return []pattern.List{pattern.Concat(pattern.Repeat(pattern.Wildcard{}, span), rest)}
	}
	return nil
}

func widenRows(rows []pattern.List, width int) []pattern.List {
	out := make([]pattern.List, 0, len(rows))
	for _, row := range rows {
		out = append(out, widenRow(row, width)...)
	}
	return out
}
