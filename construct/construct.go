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

package construct

import (
	"github.com/wdamron/matchcheck/pattern"
)

// Patterns

// Wildcard pattern: `_`
func Wild() pattern.Pattern { return pattern.Wildcard{} }

// Empty pattern, which matches nothing
func Empty() pattern.Pattern { return pattern.Empty{} }

// Variable binding: `x`
func Bind(name string) *pattern.Binding { return &pattern.Binding{Name: name} }

// Variable-length remainder of a sequence: `*rest`
func Star(name string) pattern.Pattern { return pattern.WildcardSeq{Name: name} }

// Integer literal: `1`
func Int(i int64) *pattern.Literal { return &pattern.Literal{Value: pattern.IntValue(i)} }

// Boolean literal: `true`
func Bool(b bool) *pattern.Literal { return &pattern.Literal{Value: pattern.BoolValue(b)} }

// String literal: `"a"`
func Str(s string) *pattern.Literal { return &pattern.Literal{Value: pattern.StringValue(s)} }

// Absence-of-value literal: `null`
func None() *pattern.Literal { return &pattern.Literal{Value: pattern.NoneValue()} }

// Literal for an arbitrary scalar value
func Lit(v pattern.Value) *pattern.Literal { return &pattern.Literal{Value: v} }

// Capture of a sub-pattern: `p as name`
func As(p pattern.Pattern, name string) pattern.Pattern { return pattern.Capture(p, name) }

// Or-pattern: `a | b | c`
func Or(alternatives ...pattern.Pattern) *pattern.Or {
	return &pattern.Or{Alternatives: pattern.NewList(alternatives...)}
}

// Fixed-length sequence: `[a, b]`
func Seq(elements ...pattern.Pattern) *pattern.Sequence {
	return &pattern.Sequence{Elements: pattern.NewList(elements...)}
}

// Mapping with required keys: `{"a": x}`
func Map(keys []pattern.Value, values ...pattern.Pattern) *pattern.Mapping {
	return &pattern.Mapping{Keys: keys, Values: pattern.NewList(values...)}
}

// Class pattern with positional sub-patterns: `Point(x, y)`
func Class(name string, positional ...pattern.Pattern) *pattern.Constructor {
	return &pattern.Constructor{Name: name, Positional: pattern.NewList(positional...), Keyword: pattern.EmptyKeywordMap}
}

// Class pattern with positional and keyword sub-patterns: `Point(x, y=0)`
func ClassKw(name string, positional []pattern.Pattern, keyword map[string]pattern.Pattern) *pattern.Constructor {
	return &pattern.Constructor{Name: name, Positional: pattern.NewList(positional...), Keyword: pattern.NewKeywordMap(keyword)}
}

// Rows

// Unguarded row: `case a, b:`
func Row(ps ...pattern.Pattern) pattern.Vector { return pattern.NewVector(nil, ps...) }

// Guarded row: `case a, b if guard:`
func Guarded(guard interface{}, ps ...pattern.Pattern) pattern.Vector {
	return pattern.NewVector(guard, ps...)
}

// Row of n wildcards
func Wilds(n int) pattern.List { return pattern.Repeat(pattern.Wildcard{}, n) }
