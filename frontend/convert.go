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

package frontend

import (
	"fmt"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/wdamron/matchcheck/pattern"
)

// SyntaxError describes a pattern which cannot be converted.
type SyntaxError struct {
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	if e.Line == 0 {
		return e.Msg
	}
	return fmt.Sprintf("line %d:%d: %s", e.Line, e.Column, e.Msg)
}

func syntaxErrorf(node *yaml.Node, format string, args ...interface{}) error {
	return &SyntaxError{Line: node.Line, Column: node.Column, Msg: fmt.Sprintf(format, args...)}
}

// Pattern tags
const (
	TagOr    = "!or"
	TagStar  = "!star"
	TagAs    = "!as"
	TagClass = "!class"
)

// ConvertNode converts a YAML node into a pattern.
//
//	_                       wildcard
//	x                       binding
//	Color.RED               value pattern (a string literal of the dotted name)
//	1, true, null, "a"      literals
//	[p, q]                  sequence
//	{k: p}                  mapping with required keys
//	!or [p, q]              or-pattern
//	!star rest              remainder of a sequence: `*rest`
//	!as {pattern: p, name: n}
//	!class {name: N, args: [p], kwargs: {k: q}}
func ConvertNode(node *yaml.Node) (pattern.Pattern, error) {
	if node.Kind == yaml.AliasNode {
		return ConvertNode(node.Alias)
	}

	switch node.Tag {
	case TagOr:
		if node.Kind != yaml.SequenceNode || len(node.Content) == 0 {
			return nil, syntaxErrorf(node, "%s requires a non-empty sequence of alternatives", TagOr)
		}
		alts, err := convertList(node.Content)
		if err != nil {
			return nil, err
		}
		return &pattern.Or{Alternatives: alts}, nil

	case TagStar:
		if node.Kind != yaml.ScalarNode {
			return nil, syntaxErrorf(node, "%s requires a name", TagStar)
		}
		name := node.Value
		if name == "_" {
			name = ""
		}
		return pattern.WildcardSeq{Name: name}, nil

	case TagAs:
		return convertAs(node)

	case TagClass:
		return convertClass(node)
	}

	switch node.Kind {
	case yaml.ScalarNode:
		return convertScalar(node)

	case yaml.SequenceNode:
		elems, err := convertList(node.Content)
		if err != nil {
			return nil, err
		}
		return &pattern.Sequence{Elements: elems}, nil

	case yaml.MappingNode:
		return convertMapping(node)
	}
	return nil, syntaxErrorf(node, "unsupported pattern")
}

func convertList(nodes []*yaml.Node) (pattern.List, error) {
	b := pattern.NewListBuilder()
	for _, n := range nodes {
		p, err := ConvertNode(n)
		if err != nil {
			return pattern.EmptyList, err
		}
		b.Append(p)
	}
	return b.Build(), nil
}

func convertScalar(node *yaml.Node) (pattern.Pattern, error) {
	if node.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle|yaml.LiteralStyle|yaml.FoldedStyle) != 0 {
		return &pattern.Literal{Value: pattern.StringValue(node.Value)}, nil
	}
	if node.ShortTag() != "!!str" {
		v, err := convertValue(node)
		if err != nil {
			return nil, err
		}
		return &pattern.Literal{Value: v}, nil
	}

	switch name := node.Value; {
	case name == "_":
		return pattern.Wildcard{}, nil
	case isIdentifier(name):
		return &pattern.Binding{Name: name}, nil
	case isDottedName(name):
		return &pattern.Literal{Value: pattern.StringValue(name)}, nil
	}
	return nil, syntaxErrorf(node, "%q is neither a name nor a literal; quote string literals", node.Value)
}

func convertValue(node *yaml.Node) (pattern.Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return pattern.NoneValue(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return pattern.Value{}, syntaxErrorf(node, "%v", err)
		}
		return pattern.BoolValue(b), nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err != nil {
			return pattern.Value{}, syntaxErrorf(node, "%v", err)
		}
		return pattern.IntValue(i), nil
	case "!!str":
		return pattern.StringValue(node.Value), nil
	}
	return pattern.Value{}, syntaxErrorf(node, "unsupported literal %s (%s)", node.Value, node.ShortTag())
}

func convertMapping(node *yaml.Node) (pattern.Pattern, error) {
	n := len(node.Content) / 2
	keys := make([]pattern.Value, 0, n)
	values := pattern.NewListBuilder()
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nil, syntaxErrorf(k, "mapping keys must be literals")
		}
		key, err := convertValue(k)
		if err != nil {
			return nil, err
		}
		p, err := ConvertNode(v)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
		values.Append(p)
	}
	return &pattern.Mapping{Keys: keys, Values: values.Build()}, nil
}

// fields returns the values of a mapping node by key, rejecting keys outside allowed.
func fields(node *yaml.Node, allowed ...string) (map[string]*yaml.Node, error) {
	if node.Kind != yaml.MappingNode {
		return nil, syntaxErrorf(node, "%s requires a mapping", node.Tag)
	}
	out := make(map[string]*yaml.Node, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k := node.Content[i]
		known := false
		for _, a := range allowed {
			known = known || k.Value == a
		}
		if !known {
			return nil, syntaxErrorf(k, "unknown field %q for %s", k.Value, node.Tag)
		}
		out[k.Value] = node.Content[i+1]
	}
	return out, nil
}

// A capture `p as n` covers the same values as p; `!as {name: n}` is a binding.
func convertAs(node *yaml.Node) (pattern.Pattern, error) {
	fs, err := fields(node, "pattern", "name")
	if err != nil {
		return nil, err
	}
	var name string
	if n, ok := fs["name"]; ok {
		if n.Kind != yaml.ScalarNode || n.Value != "_" && !isIdentifier(n.Value) {
			return nil, syntaxErrorf(n, "%s requires an identifier name", TagAs)
		}
		name = n.Value
	}
	var p pattern.Pattern = pattern.Wildcard{}
	if sub, ok := fs["pattern"]; ok {
		if p, err = ConvertNode(sub); err != nil {
			return nil, err
		}
	}
	return pattern.Capture(p, name), nil
}

func convertClass(node *yaml.Node) (pattern.Pattern, error) {
	fs, err := fields(node, "name", "args", "kwargs")
	if err != nil {
		return nil, err
	}
	name, ok := fs["name"]
	if !ok || name.Kind != yaml.ScalarNode || !isDottedName(name.Value) && !isIdentifier(name.Value) {
		return nil, syntaxErrorf(node, "%s requires a class name", TagClass)
	}

	p := &pattern.Constructor{Name: name.Value, Positional: pattern.EmptyList, Keyword: pattern.EmptyKeywordMap}
	if args, ok := fs["args"]; ok {
		if args.Kind != yaml.SequenceNode {
			return nil, syntaxErrorf(args, "args must be a sequence")
		}
		if p.Positional, err = convertList(args.Content); err != nil {
			return nil, err
		}
	}
	if kwargs, ok := fs["kwargs"]; ok {
		if kwargs.Kind != yaml.MappingNode {
			return nil, syntaxErrorf(kwargs, "kwargs must be a mapping")
		}
		b := pattern.NewKeywordMapBuilder()
		for i := 0; i+1 < len(kwargs.Content); i += 2 {
			k := kwargs.Content[i]
			if !isIdentifier(k.Value) {
				return nil, syntaxErrorf(k, "keyword %q is not a name", k.Value)
			}
			sub, err := ConvertNode(kwargs.Content[i+1])
			if err != nil {
				return nil, err
			}
			b.Set(k.Value, sub)
		}
		p.Keyword = b.Build()
	}
	return p, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

func isDottedName(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return false
	}
	for _, part := range parts {
		if !isIdentifier(part) {
			return false
		}
	}
	return true
}

// Normalize returns the row for a clause pattern p of a match over width subjects.
//
// A multi-subject match is written with tuple patterns. A tuple of the right width contributes its
// elements, a wildcard or binding covers every subject, an or-pattern stays a single column spanning
// every subject, and anything else cannot match the subject tuple.
func Normalize(p pattern.Pattern, width int) pattern.List {
	if width == 1 {
		return pattern.SingletonList(p)
	}
	switch p := p.(type) {
	case *pattern.Sequence:
		if p.Elements.Len() == width {
			return p.Elements
		}
	case pattern.Wildcard, *pattern.Binding:
		return pattern.Repeat(pattern.Wildcard{}, width)
	case *pattern.Or:
		return pattern.SingletonList(p)
	}
	return pattern.Repeat(pattern.Empty{}, width)
}
