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

// Walk calls f for p and each of its sub-patterns, in pre-order.
func Walk(p Pattern, f func(Pattern)) {
	switch p := p.(type) {
	case Empty, Wildcard, WildcardSeq, *Binding, *Literal:
		f(p)

	case *Or:
		f(p)
		WalkList(p.Alternatives, f)

	case *Sequence:
		f(p)
		WalkList(p.Elements, f)

	case *Mapping:
		f(p)
		WalkList(p.Values, f)

	case *Constructor:
		f(p)
		WalkList(p.Positional, f)
		p.Keyword.Range(func(_ string, sub Pattern) bool {
			Walk(sub, f)
			return true
		})

	case nil:

	default:
		panic("unknown pattern type: " + p.PatternName())
	}
}

func WalkList(l List, f func(Pattern)) {
	l.Range(func(_ int, p Pattern) bool {
		Walk(p, f)
		return true
	})
}

// Literals returns the values of all literals within l, in walk order.
func Literals(l List) []Value {
	var vs []Value
	WalkList(l, func(p Pattern) {
		if lit, ok := p.(*Literal); ok {
			vs = append(vs, lit.Value)
		}
	})
	return vs
}
