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

package witness

import (
	"fmt"

	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
	"github.com/wdamron/matchcheck/pattern"
)

// UnionVar is a symbolic subject value of unknown runtime type: a one-hot type selector, and one
// concrete variable per payload type.
//
// Integer and string variables range over a finite candidate domain: every literal of that type
// mentioned by the query, the zero value, and one fresh value distinct from all mentioned literals.
// Patterns only compare subjects for equality with literals, so any unmentioned value is
// indistinguishable from the fresh one.
type UnionVar struct {
	Name    string
	kinds   [pattern.NumKinds]z.Lit
	boolean z.Lit
	ints    domain
	strs    domain
}

// domain is a one-hot encoding of a value drawn from a finite candidate set. The zero value is at index 0.
type domain struct {
	values []pattern.Value
	lits   []z.Lit
	index  map[string]int
}

func newDomain(c *logic.C, zero pattern.Value, mentioned []pattern.Value, fresh pattern.Value) domain {
	d := domain{index: make(map[string]int, len(mentioned)+2)}
	add := func(v pattern.Value) {
		if _, exists := d.index[v.Key()]; exists {
			return
		}
		d.index[v.Key()] = len(d.values)
		d.values = append(d.values, v)
		d.lits = append(d.lits, c.Lit())
	}
	add(zero)
	for _, v := range mentioned {
		add(v)
	}
	add(fresh)
	return d
}

func (d *domain) lit(v pattern.Value) (z.Lit, bool) {
	i, ok := d.index[v.Key()]
	if !ok {
		return z.LitNull, false
	}
	return d.lits[i], true
}

func (d *domain) decode(name string, m Model) pattern.Value {
	found := -1
	for i, lit := range d.lits {
		if !m.Value(lit) {
			continue
		}
		if found >= 0 {
			panic(fmt.Sprintf("witness: model selects several values for %s", name))
		}
		found = i
	}
	if found < 0 {
		panic(fmt.Sprintf("witness: model selects no value for %s", name))
	}
	return d.values[found]
}

// Is returns a literal which holds when u has kind k.
func (u *UnionVar) Is(k pattern.Kind) z.Lit { return u.kinds[k] }

// Eq returns a literal which holds when u has the kind of v and is equal to v.
func (u *UnionVar) Eq(c *logic.C, v pattern.Value) (z.Lit, error) {
	switch v.Kind {
	case pattern.Int:
		lit, ok := u.ints.lit(v)
		if !ok {
			return c.F, fmt.Errorf("value %s is outside the domain of %s", v, u.Name)
		}
		return c.And(u.kinds[pattern.Int], lit), nil
	case pattern.Bool:
		if v.Bool {
			return c.And(u.kinds[pattern.Bool], u.boolean), nil
		}
		return c.And(u.kinds[pattern.Bool], u.boolean.Not()), nil
	case pattern.String:
		lit, ok := u.strs.lit(v)
		if !ok {
			return c.F, fmt.Errorf("value %s is outside the domain of %s", v, u.Name)
		}
		return c.And(u.kinds[pattern.String], lit), nil
	case pattern.None:
		return u.kinds[pattern.None], nil
	}
	return c.F, fmt.Errorf("unsupported value kind %s", v.Kind)
}

// DefaultConstraints returns a literal which holds when exactly one kind is selected for u, and the
// concrete variables of every other kind hold their zero value.
func (u *UnionVar) DefaultConstraints(c *logic.C) z.Lit {
	return c.Ands(
		exactlyOne(c, u.kinds[:]),
		exactlyOne(c, u.ints.lits),
		exactlyOne(c, u.strs.lits),
		implies(c, u.kinds[pattern.Int].Not(), u.ints.lits[0]),
		implies(c, u.kinds[pattern.Bool].Not(), u.boolean.Not()),
		implies(c, u.kinds[pattern.String].Not(), u.strs.lits[0]),
	)
}

// Decode reads the value of u from a model of its default constraints.
//
// Decode panics if the model does not select exactly one kind; that cannot happen for a model which
// satisfies the default constraints.
func (u *UnionVar) Decode(m Model) pattern.Value {
	kind := -1
	for k, lit := range u.kinds {
		if !m.Value(lit) {
			continue
		}
		if kind >= 0 {
			panic(fmt.Sprintf("witness: model selects kinds %s and %s for %s", pattern.Kind(kind), pattern.Kind(k), u.Name))
		}
		kind = k
	}
	switch pattern.Kind(kind) {
	case pattern.Int:
		return u.ints.decode(u.Name, m)
	case pattern.Bool:
		return pattern.BoolValue(m.Value(u.boolean))
	case pattern.String:
		return u.strs.decode(u.Name, m)
	case pattern.None:
		return pattern.NoneValue()
	}
	panic(fmt.Sprintf("witness: model selects no kind for %s", u.Name))
}

func exactlyOne(c *logic.C, lits []z.Lit) z.Lit {
	atMostOne := make([]z.Lit, 0, len(lits)*(len(lits)-1)/2)
	for i := 0; i < len(lits); i++ {
		for j := i + 1; j < len(lits); j++ {
			atMostOne = append(atMostOne, c.Or(lits[i].Not(), lits[j].Not()))
		}
	}
	return c.And(c.Ors(lits...), c.Ands(atMostOne...))
}

func implies(c *logic.C, a, b z.Lit) z.Lit { return c.Or(a.Not(), b) }
