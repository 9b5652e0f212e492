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
	"github.com/benbjohnson/immutable"
)

var emptyMap = immutable.NewSortedMap(nil)

// EmptyKeywordMap contains no keyword patterns.
var EmptyKeywordMap = KeywordMap{emptyMap}

// KeywordMap contains immutable mappings from keyword names to patterns, iterated in name order.
type KeywordMap struct {
	m *immutable.SortedMap
}

func NewKeywordMap(m map[string]Pattern) KeywordMap {
	b := NewKeywordMapBuilder()
	for name, p := range m {
		b.Set(name, p)
	}
	return b.Build()
}

func (m KeywordMap) imm() *immutable.SortedMap {
	if m.m == nil {
		return emptyMap
	}
	return m.m
}

func (m KeywordMap) Len() int {
	if m.m == nil {
		return 0
	}
	return m.m.Len()
}

func (m KeywordMap) Get(name string) (Pattern, bool) {
	p, ok := m.imm().Get(name)
	if !ok {
		return nil, false
	}
	return p.(Pattern), true
}

func (m KeywordMap) Range(f func(string, Pattern) bool) {
	iter := m.imm().Iterator()
	for !iter.Done() {
		k, v := iter.Next()
		if !f(k.(string), v.(Pattern)) {
			return
		}
	}
}

// Names returns the keyword names of m in sorted order.
func (m KeywordMap) Names() []string {
	names := make([]string, 0, m.Len())
	m.Range(func(name string, _ Pattern) bool {
		names = append(names, name)
		return true
	})
	return names
}

func (m KeywordMap) Builder() KeywordMapBuilder {
	return KeywordMapBuilder{immutable.NewSortedMapBuilder(m.imm())}
}

type KeywordMapBuilder struct {
	b *immutable.SortedMapBuilder
}

func NewKeywordMapBuilder() KeywordMapBuilder {
	return KeywordMapBuilder{immutable.NewSortedMapBuilder(emptyMap)}
}

func (b KeywordMapBuilder) Len() int { return b.b.Len() }

func (b KeywordMapBuilder) Set(name string, p Pattern) KeywordMapBuilder {
	b.b.Set(name, p)
	return b
}

func (b KeywordMapBuilder) Delete(name string) KeywordMapBuilder {
	b.b.Delete(name)
	return b
}

func (b KeywordMapBuilder) Build() KeywordMap { return KeywordMap{b.b.Map()} }
