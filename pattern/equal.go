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

// Equal reports whether a and b are structurally identical pattern trees, including captured names.
func Equal(a, b Pattern) bool {
	if CaptureName(a) != CaptureName(b) {
		return false
	}
	switch a := a.(type) {
	case Empty, Wildcard:
		return a == b

	case WildcardSeq:
		b, ok := b.(WildcardSeq)
		return ok && a.Name == b.Name

	case *Binding:
		b, ok := b.(*Binding)
		return ok && a.Name == b.Name

	case *Literal:
		b, ok := b.(*Literal)
		return ok && a.Value.Equal(b.Value)

	case *Or:
		b, ok := b.(*Or)
		return ok && EqualLists(a.Alternatives, b.Alternatives)

	case *Sequence:
		b, ok := b.(*Sequence)
		return ok && EqualLists(a.Elements, b.Elements)

	case *Mapping:
		b, ok := b.(*Mapping)
		if !ok || len(a.Keys) != len(b.Keys) {
			return false
		}
		for i := range a.Keys {
			if !a.Keys[i].Equal(b.Keys[i]) {
				return false
			}
		}
		return EqualLists(a.Values, b.Values)

	case *Constructor:
		b, ok := b.(*Constructor)
		if !ok || a.Name != b.Name || a.Keyword.Len() != b.Keyword.Len() || !EqualLists(a.Positional, b.Positional) {
			return false
		}
		equal := true
		a.Keyword.Range(func(name string, sub Pattern) bool {
			other, ok := b.Keyword.Get(name)
			equal = ok && Equal(sub, other)
			return equal
		})
		return equal
	}
	return false
}

// EqualLists reports whether a and b contain pairwise structurally identical patterns.
func EqualLists(a, b List) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if !Equal(a.Get(i), b.Get(i)) {
			return false
		}
	}
	return true
}
