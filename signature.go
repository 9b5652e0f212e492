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

// Constructor is a constructor observed in a column, identified by its tag.
type Constructor struct {
	Tag   string
	Arity int
	// Literal is set for literal constructors.
	Literal *pattern.Value
}

// Signature is the set of constructors appearing in the first column of a matrix, in first-seen order.
type Signature struct {
	constructors []Constructor
	index        map[string]int
}

func (s *Signature) add(c Constructor) {
	if s.index == nil {
		s.index = make(map[string]int, 4)
	}
	if i, exists := s.index[c.Tag]; exists {
		s.constructors[i] = c
		return
	}
	s.index[c.Tag] = len(s.constructors)
	s.constructors = append(s.constructors, c)
}

func (s Signature) Len() int { return len(s.constructors) }

// Constructors returns the constructors of s in first-seen order.
func (s Signature) Constructors() []Constructor { return s.constructors }

func (s Signature) Has(tag string) bool {
	_, ok := s.index[tag]
	return ok
}

func (s Signature) HasLiteral(v pattern.Value) bool {
	return s.Has((&pattern.Literal{Value: v}).Tag())
}

// CollectSignature returns the signature of the first column of m. Literals contribute arity 0,
// sequences their length, or-patterns the union of their alternatives; other patterns contribute nothing.
func CollectSignature(m []pattern.List) Signature {
	var sig Signature
	for _, row := range m {
		if row.Len() == 0 {
			continue
		}
		collectConstructors(&sig, row.First())
	}
	return sig
}

func collectConstructors(sig *Signature, p pattern.Pattern) {
	switch p := p.(type) {
	case *pattern.Literal:
		v := p.Value
		sig.add(Constructor{Tag: p.Tag(), Literal: &v})
	case *pattern.Sequence:
		sig.add(Constructor{Tag: p.Tag(), Arity: p.Elements.Len()})
	case *pattern.Or:
		p.Alternatives.Range(func(_ int, alt pattern.Pattern) bool {
			collectConstructors(sig, alt)
			return true
		})
	}
}

// Classifier decides whether a set of constructors exhausts the domain it belongs to.
//
// A column whose signature is complete is split into one branch per constructor; otherwise the engine
// falls back to the default matrix. New closed domains (e.g. enumerations) are supported by adding a
// classifier; the specialization engine is unaffected.
type Classifier interface {
	Complete(sig Signature) bool
}

type ClassifierFunc func(sig Signature) bool

func (f ClassifierFunc) Complete(sig Signature) bool { return f(sig) }

// BoolDomain is complete for exactly {true, false}.
var BoolDomain Classifier = FiniteDomain(pattern.BoolValue(true), pattern.BoolValue(false))

// NoneDomain is complete for exactly {null}.
var NoneDomain Classifier = FiniteDomain(pattern.NoneValue())

// DefaultClassifiers recognize booleans and the absence-of-value singleton. Every other domain is
// treated as infinite.
var DefaultClassifiers = []Classifier{BoolDomain, NoneDomain}

// FiniteDomain returns a classifier which is complete for a signature consisting of exactly the given
// literal values.
func FiniteDomain(values ...pattern.Value) Classifier {
	return ClassifierFunc(func(sig Signature) bool {
		if sig.Len() != len(values) {
			return false
		}
		for _, v := range values {
			if !sig.HasLiteral(v) {
				return false
			}
		}
		return true
	})
}

func isComplete(classifiers []Classifier, sig Signature) bool {
	if sig.Len() == 0 {
		return false
	}
	for _, c := range classifiers {
		if c.Complete(sig) {
			return true
		}
	}
	return false
}

// Specialize the rows of m on the constructor (tag, arity). Rows which cannot match the constructor are dropped.
func specialize(tag string, arity int, m []pattern.List) []pattern.List {
	var out []pattern.List
	for _, row := range m {
		out = specializeRow(tag, arity, row, out)
	}
	return out
}

func specializeRow(tag string, arity int, row pattern.List, out []pattern.List) []pattern.List {
	if row.Len() == 0 {
		return out
	}
	first, rest := row.First(), row.Rest()
	switch {
	case first.Tag() == tag:
		return append(out, pattern.Concat(pattern.SubPatterns(first), rest))
	case pattern.IsWildcard(first):
		return append(out, pattern.Concat(pattern.Repeat(pattern.Wildcard{}, arity), rest))
	case pattern.IsOr(first):
		first.(*pattern.Or).Alternatives.Range(func(_ int, alt pattern.Pattern) bool {
			out = specializeRow(tag, arity, rest.Prepend(alt), out)
			return true
		})
	}
	return out
}

func specializeVector(tag string, arity int, v pattern.List) (pattern.List, bool) {
	first, rest := v.First(), v.Rest()
	switch {
	case first.Tag() == tag:
		return pattern.Concat(pattern.SubPatterns(first), rest), true
	case pattern.IsWildcard(first):
		return pattern.Concat(pattern.Repeat(pattern.Wildcard{}, arity), rest), true
	}
	return pattern.EmptyList, false
}

// The default matrix keeps the rows which match constructors absent from the signature: rows whose first
// column is a wildcard, or an or-pattern with a wildcard alternative. The first column is removed.
func defaultMatrix(m []pattern.List) []pattern.List {
	var out []pattern.List
	for _, row := range m {
		if row.Len() == 0 {
			continue
		}
		if catchesAll(row.First()) {
			out = append(out, row.Rest())
		}
	}
	return out
}

func catchesAll(p pattern.Pattern) bool {
	switch p := p.(type) {
	case pattern.Wildcard, *pattern.Binding:
		return true
	case *pattern.Or:
		found := false
		p.Alternatives.Range(func(_ int, alt pattern.Pattern) bool {
			found = catchesAll(alt)
			return !found
		})
		return found
	}
	return false
}
