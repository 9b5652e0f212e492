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
	"strconv"
	"strings"
)

// Pattern is the base interface for all patterns.
type Pattern interface {
	// Name of the syntax-type of the pattern.
	PatternName() string
	// Tag identifies the constructor a pattern specializes on. Two patterns specialize identically
	// if and only if their tags are equal.
	Tag() string
}

var (
	_ Pattern = Empty{}
	_ Pattern = Wildcard{}
	_ Pattern = WildcardSeq{}
	_ Pattern = (*Binding)(nil)
	_ Pattern = (*Literal)(nil)
	_ Pattern = (*Or)(nil)
	_ Pattern = (*Sequence)(nil)
	_ Pattern = (*Mapping)(nil)
	_ Pattern = (*Constructor)(nil)
)

// Matches nothing. Front-ends emit Empty for clauses which cannot match the subjects (e.g. a tuple
// pattern of the wrong width).
type Empty struct{}

// "Empty"
func (Empty) PatternName() string { return "Empty" }
func (Empty) Tag() string         { return "empty" }

// Matches anything without binding: `_`
type Wildcard struct{}

// "Wildcard"
func (Wildcard) PatternName() string { return "Wildcard" }
func (Wildcard) Tag() string         { return "_" }

// Matches the variable-length remainder of a sequence: `*rest`
type WildcardSeq struct {
	// Name is empty for `*_`.
	Name string
}

// "WildcardSeq"
func (WildcardSeq) PatternName() string { return "WildcardSeq" }
func (WildcardSeq) Tag() string         { return "*" }

// Matches anything, binding the subject to Name: `x`
//
// Bindings behave as wildcards for coverage.
type Binding struct {
	Name string
}

// "Binding"
func (p *Binding) PatternName() string { return "Binding" }
func (p *Binding) Tag() string         { return "_" }

// Matches exactly one scalar: `1`, `true`, `"a"`, `null`
type Literal struct {
	Value Value
	// As names the subject captured by `1 as n`, or is empty.
	As    string
}

// "Literal"
func (p *Literal) PatternName() string { return "Literal" }
func (p *Literal) Tag() string         { return "literal:" + p.Value.Key() }

// Matches if any alternative matches: `a | b`
type Or struct {
	Alternatives List
	As           string
}

// "Or"
func (p *Or) PatternName() string { return "Or" }
func (p *Or) Tag() string         { return "or" }

// Matches a fixed-length ordered collection: `[a, b]`
//
// The element count is part of the constructor's identity.
type Sequence struct {
	Elements List
	As       string
}

// "Sequence"
func (p *Sequence) PatternName() string { return "Sequence" }
func (p *Sequence) Tag() string         { return "sequence/" + strconv.Itoa(p.Elements.Len()) }

// Matches a fixed set of required keys, with a sub-pattern per key: `{"a": x, "b": 1}`
type Mapping struct {
	Keys   []Value
	Values List
	As     string
}

// "Mapping"
func (p *Mapping) PatternName() string { return "Mapping" }

func (p *Mapping) Tag() string {
	var sb strings.Builder
	sb.WriteString("mapping{")
	for i, k := range p.Keys {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(k.Key())
	}
	sb.WriteByte('}')
	return sb.String()
}

// Matches a named value deconstructed into positional and keyword sub-patterns: `Point(x, y=0)`
type Constructor struct {
	Name       string
	Positional List
	Keyword    KeywordMap
	As         string
}

// "Constructor"
func (p *Constructor) PatternName() string { return "Constructor" }

func (p *Constructor) Tag() string {
	var sb strings.Builder
	sb.WriteString("class:")
	sb.WriteString(p.Name)
	sb.WriteByte('/')
	sb.WriteString(strconv.Itoa(p.Positional.Len()))
	sb.WriteByte('{')
	for i, name := range p.Keyword.Names() {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(name)
	}
	sb.WriteByte('}')
	return sb.String()
}

// Capture returns p capturing its subject as name: `p as name`. A capture of a wildcard or binding
// is a binding of name. Captures never change which values a pattern matches.
func Capture(p Pattern, name string) Pattern {
	if name == "" || name == "_" {
		return p
	}
	switch p := p.(type) {
	case Wildcard, *Binding:
		return &Binding{Name: name}
	case *Literal:
		c := *p
		c.As = name
		return &c
	case *Or:
		c := *p
		c.As = name
		return &c
	case *Sequence:
		c := *p
		c.As = name
		return &c
	case *Mapping:
		c := *p
		c.As = name
		return &c
	case *Constructor:
		c := *p
		c.As = name
		return &c
	}
	return p
}

// CaptureName returns the name captured by p, or an empty string.
func CaptureName(p Pattern) string {
	switch p := p.(type) {
	case *Binding:
		return p.Name
	case *Literal:
		return p.As
	case *Or:
		return p.As
	case *Sequence:
		return p.As
	case *Mapping:
		return p.As
	case *Constructor:
		return p.As
	}
	return ""
}

// Vector is a row of patterns (one per subject) with the guard carried by its clause.
type Vector struct {
	Patterns List
	// Guard is an opaque token supplied by the front-end, or nil for unguarded clauses.
	// The guard is never evaluated.
	Guard interface{}
}

func NewVector(guard interface{}, ps ...Pattern) Vector {
	return Vector{Patterns: NewList(ps...), Guard: guard}
}

func (v Vector) Len() int      { return v.Patterns.Len() }
func (v Vector) Guarded() bool { return v.Guard != nil }

// Matrix is an ordered set of rows, one per clause. Earlier rows shadow later rows.
type Matrix []Vector

// Rows returns the pattern lists of m, without guards.
func (m Matrix) Rows() []List {
	rows := make([]List, len(m))
	for i, v := range m {
		rows[i] = v.Patterns
	}
	return rows
}
