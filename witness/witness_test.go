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
	"context"
	"errors"
	"testing"

	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
	"github.com/google/go-cmp/cmp"

	. "github.com/wdamron/matchcheck/construct"
	"github.com/wdamron/matchcheck/pattern"
)

func row(ps ...pattern.Pattern) pattern.List { return pattern.NewList(ps...) }

func synthesize(t *testing.T, q Query) []pattern.Value {
	t.Helper()
	vs, err := New().Witness(context.Background(), q)
	if err != nil {
		t.Fatalf("witness: %v", err)
	}
	for i, r := range q.Prefix {
		if ok, err := pattern.MatchRow(r, vs); err != nil || ok {
			t.Fatalf("witness %s is accepted by row %d %s (%v)", pattern.ValuesString(q.Names, vs), i, pattern.RowString(r), err)
		}
	}
	if ok, err := pattern.MatchRow(q.Target, vs); err != nil || !ok {
		t.Fatalf("witness %s is rejected by %s (%v)", pattern.ValuesString(q.Names, vs), pattern.RowString(q.Target), err)
	}
	return vs
}

func TestWitnessLiterals(t *testing.T) {
	vs := synthesize(t, Query{
		Prefix: []pattern.List{row(Int(1)), row(Int(2))},
		Target: Wilds(1),
		Width:  1,
	})
	if vs[0].Kind != pattern.Int {
		t.Fatalf("expected an integer, found %s", vs[0])
	}

	vs = synthesize(t, Query{Prefix: []pattern.List{row(Int(5))}, Target: row(Or(Int(5), Str("x"))), Width: 1})
	if diff := cmp.Diff([]pattern.Value{pattern.StringValue("x")}, vs); diff != "" {
		t.Fatalf("witness (-expected +found):\n%s", diff)
	}

	// Every kind is excluded but one
	synthesize(t, Query{
		Prefix: []pattern.List{row(Int(1)), row(Bool(true)), row(None()), row(Str("a"))},
		Target: Wilds(1),
		Width:  1,
	})
	vs = synthesize(t, Query{
		Prefix: []pattern.List{row(Or(Bool(true), Bool(false))), row(None())},
		Target: Wilds(1),
		Width:  1,
	})
	if vs[0].Kind == pattern.Bool || vs[0].Kind == pattern.None {
		t.Fatalf("unexpected witness %s", vs[0])
	}
}

func TestWitnessTuples(t *testing.T) {
	q := Query{
		Prefix: []pattern.List{
			row(Int(1), Int(2)),
			row(Or(Seq(Int(2), Wild()), Seq(Wild(), Int(2)))),
		},
		Target: row(Wild(), Int(3)),
		Width:  2,
		Names:  []string{"x", "y"},
	}
	vs := synthesize(t, q)
	if vs[0].Equal(pattern.IntValue(2)) || !vs[1].Equal(pattern.IntValue(3)) {
		t.Fatalf("unexpected witness %s", pattern.ValuesString(q.Names, vs))
	}

	vs = synthesize(t, Query{Target: row(Seq(Bool(true), None())), Width: 2})
	if diff := cmp.Diff([]pattern.Value{pattern.BoolValue(true), pattern.NoneValue()}, vs); diff != "" {
		t.Fatalf("witness (-expected +found):\n%s", diff)
	}
}

func TestWitnessEmptyTuple(t *testing.T) {
	vs, err := New().Witness(context.Background(), Query{Target: pattern.EmptyList})
	if err != nil || len(vs) != 0 {
		t.Fatalf("expected an empty witness, found %v (%v)", vs, err)
	}
	_, err = New().Witness(context.Background(), Query{Prefix: []pattern.List{pattern.EmptyList}, Target: pattern.EmptyList})
	if !errors.Is(err, ErrNoWitness) {
		t.Fatalf("expected no witness, found %v", err)
	}
}

func TestNoWitness(t *testing.T) {
	cases := []Query{
		{Prefix: []pattern.List{Wilds(1)}, Target: Wilds(1), Width: 1},
		{Prefix: []pattern.List{row(Bool(true)), row(Bool(false))}, Target: row(Bool(true)), Width: 1},
		{Prefix: []pattern.List{row(Or(Int(1), Int(2)))}, Target: row(Int(2)), Width: 1},
		{Target: row(Empty()), Width: 1},
		{Prefix: []pattern.List{row(Wild())}, Target: row(Int(1), Int(2)), Width: 2},
	}
	for _, q := range cases {
		if _, err := New().Witness(context.Background(), q); !errors.Is(err, ErrNoWitness) {
			t.Fatalf("target %s: expected no witness, found %v", pattern.RowString(q.Target), err)
		}
	}
}

func TestCompileErrors(t *testing.T) {
	c := logic.NewC()
	vars := newVarTracker(c, nil).NewList(nil, 1)

	var unsupported *UnsupportedError
	for _, p := range []pattern.Pattern{Star("rest"), Class("Point"), Map(nil), Seq(Wild()), Seq(Int(1), Int(2))} {
		if _, err := Compile(c, p, vars); !errors.As(err, &unsupported) || unsupported.Tag != p.Tag() {
			t.Fatalf("%s: expected an unsupported pattern error, found %v", pattern.PatternString(p), err)
		}
	}

	var arity *ArityError
	pair := newVarTracker(c, nil).NewList(nil, 2)
	if _, err := Compile(c, Seq(Int(1), Int(2), Int(3)), pair); !errors.As(err, &arity) || arity.Elements != 3 || arity.Vars != 2 {
		t.Fatalf("expected an arity error, found %v", err)
	}
	if _, err := Compile(c, Seq(Int(1), Seq(Int(2))), pair); !errors.As(err, &unsupported) || unsupported.Tag != "sequence/1" {
		t.Fatalf("expected an unsupported pattern error for a nested sequence, found %v", err)
	}
	if _, err := CompileRow(c, Wilds(2), vars); !errors.As(err, &arity) {
		t.Fatalf("expected an arity error for a wide row, found %v", err)
	}

	_, err := New().Witness(context.Background(), Query{
		Prefix: []pattern.List{row(Class("Point", Wild()))},
		Target: Wilds(1),
		Width:  1,
	})
	if !errors.As(err, &unsupported) || unsupported.Tag != "class:Point/1{}" {
		t.Fatalf("expected an unsupported pattern error, found %v", err)
	}
}

func TestWitnessCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(WithSolver(GiniSolver{PollInterval: 1})).Witness(ctx, Query{Target: Wilds(1), Width: 1})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, found %v", err)
	}
}

type unknownSolver struct{ calls int }

func (s *unknownSolver) Solve(ctx context.Context, c *logic.C, roots, prefer []z.Lit) (Model, error) {
	s.calls++
	return nil, ErrUnknown
}

func TestWitnessSolver(t *testing.T) {
	s := &unknownSolver{}
	_, err := New(WithSolver(s)).Witness(context.Background(), Query{Target: Wilds(1), Width: 1})
	if !errors.Is(err, ErrUnknown) || s.calls != 1 {
		t.Fatalf("expected an unknown result from the custom solver, found %v", err)
	}

	// Preferences which cannot hold are dropped, both with and without a cancellable context
	cancellable, cancel := context.WithCancel(context.Background())
	defer cancel()
	for _, ctx := range []context.Context{context.Background(), cancellable} {
		c := logic.NewC()
		a, b := c.Lit(), c.Lit()
		roots := []z.Lit{c.Or(a, b), a.Not()}
		m, err := GiniSolver{}.Solve(ctx, c, roots, []z.Lit{b.Not()})
		if err != nil {
			t.Fatalf("expected a model without the preference, found %v", err)
		}
		if m.Value(a) || !m.Value(b) {
			t.Fatalf("model does not satisfy the roots")
		}
		m, err = GiniSolver{}.Solve(ctx, c, roots, []z.Lit{b})
		if err != nil || !m.Value(b) {
			t.Fatalf("expected a model with the preference, found %v", err)
		}
		if _, err := (GiniSolver{}).Solve(ctx, c, append(roots, b.Not()), []z.Lit{a}); !errors.Is(err, ErrUnsat) {
			t.Fatalf("expected unsatisfiable roots, found %v", err)
		}
	}
}

func TestWitnessPreferenceFallback(t *testing.T) {
	// The first column mentions only integers, but the target needs a string there
	vs := synthesize(t, Query{
		Prefix: []pattern.List{row(Int(1), Wild())},
		Target: row(Or(Seq(Str("a"), Wild()))),
		Width:  2,
		Names:  []string{"x", "y"},
	})
	if !vs[0].Equal(pattern.StringValue("a")) {
		t.Fatalf("unexpected witness %s", pattern.ValuesString([]string{"x", "y"}, vs))
	}
}

func TestPreferredKinds(t *testing.T) {
	c := logic.NewC()
	vars := newVarTracker(c, nil).NewList(nil, 2)
	q := Query{
		Prefix: []pattern.List{row(Int(1), Str("a")), row(Int(2), Bool(true)), row(Or(Seq(Int(3), Wild())))},
		Target: Wilds(2),
		Width:  2,
	}
	prefer := preferredKinds(q, vars)
	if diff := cmp.Diff([]z.Lit{vars[0].Is(pattern.Int)}, prefer); diff != "" {
		t.Fatalf("preferred kinds (-expected +found):\n%s", diff)
	}
}

func TestFreshValues(t *testing.T) {
	ints := []pattern.Value{pattern.IntValue(1), pattern.IntValue(2), pattern.IntValue(4), pattern.IntValue(-1)}
	if v := freshInt(ints); !v.Equal(pattern.IntValue(3)) {
		t.Fatalf("fresh integer: %s", v)
	}
	if v := freshInt(nil); !v.Equal(pattern.IntValue(1)) {
		t.Fatalf("fresh integer: %s", v)
	}
	strs := []pattern.Value{pattern.StringValue("s0"), pattern.StringValue("s2")}
	if v := freshString(strs); !v.Equal(pattern.StringValue("s1")) {
		t.Fatalf("fresh string: %s", v)
	}
}

func TestVarNames(t *testing.T) {
	c := logic.NewC()
	vt := newVarTracker(c, nil)
	vars := vt.NewList([]string{"x"}, 2)
	if vars[0].Name != "x" || vars[1].Name != "v1" {
		t.Fatalf("unexpected names %s, %s", vars[0].Name, vars[1].Name)
	}
	// Variables are allocated in blocks; later allocations must not disturb earlier ones.
	more := vt.NewList(nil, 10)
	if len(vt.List()) != 12 || vars[0].Name != "x" || more[9].Name != "v9" {
		t.Fatalf("unexpected variables after block allocation")
	}
}
