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
	"strconv"

	"github.com/go-air/gini/logic"
	"github.com/wdamron/matchcheck/pattern"
)

// varTracker allocates the union-variables of one query within a circuit, sharing candidate domains.
type varTracker struct {
	c     *logic.C
	ints  []pattern.Value
	strs  []pattern.Value
	vars  []*UnionVar
	block []UnionVar
}

func newVarTracker(c *logic.C, mentioned []pattern.Value) *varTracker {
	vt := &varTracker{c: c}
	seen := make(map[string]bool, len(mentioned))
	for _, v := range mentioned {
		if seen[v.Key()] {
			continue
		}
		seen[v.Key()] = true
		switch v.Kind {
		case pattern.Int:
			vt.ints = append(vt.ints, v)
		case pattern.String:
			vt.strs = append(vt.strs, v)
		}
	}
	return vt
}

func (vt *varTracker) List() []*UnionVar { return vt.vars }

func (vt *varTracker) New(name string) *UnionVar {
	if len(vt.block) == 0 {
		vt.block = make([]UnionVar, 8)
	}
	u := &vt.block[0]
	vt.block = vt.block[1:]
	u.Name = name
	for k := range u.kinds {
		u.kinds[k] = vt.c.Lit()
	}
	u.boolean = vt.c.Lit()
	u.ints = newDomain(vt.c, pattern.IntValue(0), vt.ints, freshInt(vt.ints))
	u.strs = newDomain(vt.c, pattern.StringValue(""), vt.strs, freshString(vt.strs))
	vt.vars = append(vt.vars, u)
	return u
}

func (vt *varTracker) NewList(names []string, count int) []*UnionVar {
	for i := 0; i < count; i++ {
		name := "v" + strconv.Itoa(i)
		if i < len(names) && names[i] != "" {
			name = names[i]
		}
		_ = vt.New(name)
	}
	return vt.vars[len(vt.vars)-count:]
}

// freshInt returns the least positive integer distinct from every mentioned integer.
func freshInt(mentioned []pattern.Value) pattern.Value {
	used := make(map[int64]bool, len(mentioned))
	for _, v := range mentioned {
		used[v.Int] = true
	}
	i := int64(1)
	for used[i] {
		i++
	}
	return pattern.IntValue(i)
}

// freshString returns a non-empty string distinct from every mentioned string.
func freshString(mentioned []pattern.Value) pattern.Value {
	used := make(map[string]bool, len(mentioned))
	for _, v := range mentioned {
		used[v.Str] = true
	}
	for i := 0; ; i++ {
		s := "s" + strconv.Itoa(i)
		if !used[s] {
			return pattern.StringValue(s)
		}
	}
}
