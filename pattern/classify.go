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

// Class partitions patterns for specialization.
type Class uint8

const (
	ClassEmpty Class = iota
	// Wildcard or Binding
	ClassWildcard
	ClassWildcardSeq
	ClassLiteral
	ClassOr
	ClassSequence
	ClassMapping
	ClassConstructor
)

var classNames = [...]string{
	ClassEmpty:       "empty",
	ClassWildcard:    "wildcard",
	ClassWildcardSeq: "wildcard-sequence",
	ClassLiteral:     "literal",
	ClassOr:          "or",
	ClassSequence:    "sequence",
	ClassMapping:     "mapping",
	ClassConstructor: "constructor",
}

func (c Class) String() string { return classNames[c] }

// Classify returns the class of p. Every pattern belongs to exactly one class.
func Classify(p Pattern) Class {
	switch p.(type) {
	case Empty:
		return ClassEmpty
	case Wildcard, *Binding:
		return ClassWildcard
	case WildcardSeq:
		return ClassWildcardSeq
	case *Literal:
		return ClassLiteral
	case *Or:
		return ClassOr
	case *Sequence:
		return ClassSequence
	case *Mapping:
		return ClassMapping
	case *Constructor:
		return ClassConstructor
	}
	panic("unknown pattern type: " + p.PatternName())
}

func IsEmpty(p Pattern) bool       { return Classify(p) == ClassEmpty }
func IsWildcard(p Pattern) bool    { return Classify(p) == ClassWildcard }
func IsWildcardSeq(p Pattern) bool { return Classify(p) == ClassWildcardSeq }
func IsLiteral(p Pattern) bool     { return Classify(p) == ClassLiteral }
func IsOr(p Pattern) bool          { return Classify(p) == ClassOr }
func IsSequence(p Pattern) bool    { return Classify(p) == ClassSequence }
func IsMapping(p Pattern) bool     { return Classify(p) == ClassMapping }
func IsConstructor(p Pattern) bool { return Classify(p) == ClassConstructor }

// IsConstructed reports whether p takes part directly in constructor specialization (literals and sequences).
func IsConstructed(p Pattern) bool {
	switch Classify(p) {
	case ClassLiteral, ClassSequence:
		return true
	}
	return false
}

// Arity returns the number of sub-patterns p is replaced with when specialized on its own tag.
func Arity(p Pattern) int {
	if s, ok := p.(*Sequence); ok {
		return s.Elements.Len()
	}
	return 0
}

// SubPatterns returns the sub-patterns substituted for a constructed pattern during specialization.
func SubPatterns(p Pattern) List {
	if s, ok := p.(*Sequence); ok {
		return s.Elements
	}
	return EmptyList
}

// Extend prepends p to rest. A sequence is flattened, so that its elements occupy the leading columns;
// any other pattern is a single-column prefix.
func Extend(p Pattern, rest List) List {
	if s, ok := p.(*Sequence); ok {
		return Concat(s.Elements, rest)
	}
	return rest.Prepend(p)
}
