package pattern

import (
	"github.com/benbjohnson/immutable"
)

var emptyList = immutable.NewList()

// EmptyList contains no patterns.
var EmptyList = List{emptyList}

// List is an immutable list of patterns. Slicing and prepending share structure with the source list,
// so rows of a specialized matrix never copy the columns they keep.
type List struct {
	l *immutable.List
}

func NewList(ps ...Pattern) List {
	if len(ps) == 0 {
		return EmptyList
	}
	b := NewListBuilder()
	for _, p := range ps {
		b.Append(p)
	}
	return b.Build()
}

func SingletonList(p Pattern) List {
	return List{emptyList.Append(p)}
}

// Repeat returns a list containing n copies of p.
func Repeat(p Pattern, n int) List {
	b := NewListBuilder()
	for i := 0; i < n; i++ {
		b.Append(p)
	}
	return b.Build()
}

func (l List) imm() *immutable.List {
	if l.l == nil {
		return emptyList
	}
	return l.l
}

func (l List) Len() int {
	if l.l == nil {
		return 0
	}
	return l.l.Len()
}

func (l List) Get(i int) Pattern           { return l.l.Get(i).(Pattern) }
func (l List) Slice(start, end int) List   { return List{l.imm().Slice(start, end)} }
func (l List) Prepend(p Pattern) List      { return List{l.imm().Prepend(p)} }
func (l List) Append(p Pattern) List       { return List{l.imm().Append(p)} }
func (l List) Set(i int, p Pattern) List   { return List{l.imm().Set(i, p)} }
func (l List) First() Pattern              { return l.Get(0) }
func (l List) Rest() List                  { return l.Slice(1, l.Len()) }
func (l List) Empty() bool                 { return l.Len() == 0 }
func (l List) Head(n int) List             { return l.Slice(0, n) }
func (l List) Tail(n int) List             { return l.Slice(n, l.Len()) }
func (l List) Builder() ListBuilder        { return ListBuilder{immutable.NewListBuilder(l.imm())} }

func (l List) Range(f func(int, Pattern) bool) {
	iter := l.imm().Iterator()
	for !iter.Done() {
		i, v := iter.Next()
		if !f(i, v.(Pattern)) {
			return
		}
	}
}

// Patterns returns the patterns of l as a newly allocated slice.
func (l List) Patterns() []Pattern {
	ps := make([]Pattern, 0, l.Len())
	l.Range(func(_ int, p Pattern) bool {
		ps = append(ps, p)
		return true
	})
	return ps
}

// Concat returns the patterns of head followed by the patterns of rest. The result shares structure with rest.
func Concat(head, rest List) List {
	if head.Len() == 0 {
		return rest
	}
	imm := rest.imm()
	for i := head.Len() - 1; i >= 0; i-- {
		imm = imm.Prepend(head.Get(i))
	}
	return List{imm}
}

type ListBuilder struct {
	b *immutable.ListBuilder
}

func NewListBuilder() ListBuilder {
	return ListBuilder{immutable.NewListBuilder(emptyList)}
}

func (b ListBuilder) Len() int             { return b.b.Len() }
func (b ListBuilder) Append(p Pattern)     { b.b.Append(p) }
func (b ListBuilder) Set(i int, p Pattern) { b.b.Set(i, p) }
func (b ListBuilder) Build() List          { return List{b.b.List()} }
