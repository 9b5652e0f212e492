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

package matchcheck_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	log "github.com/sirupsen/logrus"

	. "github.com/wdamron/matchcheck"
	. "github.com/wdamron/matchcheck/construct"
	"github.com/wdamron/matchcheck/pattern"
	"github.com/wdamron/matchcheck/witness"
)

func quietLogger() log.FieldLogger {
	logger := log.New()
	logger.Out = io.Discard
	return logger
}

func newMatch(subjects []string, vs ...pattern.Vector) *Match {
	m := &Match{Name: "test", Subjects: subjects}
	for i, v := range vs {
		m.Clauses = append(m.Clauses, Clause{Vector: v, Line: i + 1})
	}
	return m
}

func check(t *testing.T, m *Match, opts ...Option) *Report {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger()), WithVerify(true)}, opts...)
	r, err := NewChecker(opts...).Check(context.Background(), m)
	if err != nil {
		t.Fatalf("check %s: %v", m.Label(), err)
	}
	return r
}

func reachability(r *Report) []bool {
	reachable := make([]bool, len(r.Clauses))
	for i, c := range r.Clauses {
		reachable[i] = c.Reachable
	}
	return reachable
}

// checkWitness ensures vs is rejected by every clause before n (or every clause, if n < 0), and accepted
// by clause n.
func checkWitness(t *testing.T, m *Match, n int, vs []pattern.Value) {
	t.Helper()
	if len(vs) != m.Width() {
		t.Fatalf("witness %s has the wrong width", pattern.ValuesString(nil, vs))
	}
	end := n
	if n < 0 {
		end = len(m.Clauses)
	}
	for i := 0; i < end; i++ {
		row := m.Clauses[i].Vector.Patterns
		if ok, err := pattern.MatchRow(row, vs); err != nil || ok {
			t.Fatalf("witness %s is accepted by clause %d %s (%v)", pattern.ValuesString(nil, vs), i, pattern.RowString(row), err)
		}
	}
	if n >= 0 {
		row := m.Clauses[n].Vector.Patterns
		if ok, err := pattern.MatchRow(row, vs); err != nil || !ok {
			t.Fatalf("witness %s is rejected by clause %d %s (%v)", pattern.ValuesString(nil, vs), n, pattern.RowString(row), err)
		}
	}
}

func TestCheckPairs(t *testing.T) {
	m := newMatch([]string{"x", "y"},
		Row(Int(1), Int(2)),
		Row(Int(2), Int(3)),
		Row(Or(Seq(Int(2), Wild()), Seq(Wild(), Int(2)))),
		Row(Int(2), Int(4)),
		Row(Wild(), Int(3)),
		Row(Wild(), Int(4)),
	)
	r := check(t, m)

	expected := []bool{true, true, true, false, true, true}
	if diff := cmp.Diff(expected, reachability(r)); diff != "" {
		t.Fatalf("reachability (-expected +found):\n%s", diff)
	}
	for i, c := range r.Clauses {
		if !c.Reachable {
			if c.Witness != nil || c.GuardDependent {
				t.Fatalf("unreachable clause %d: %#+v", i, c)
			}
			continue
		}
		if c.WitnessErr != nil {
			t.Fatalf("clause %d: %v", i, c.WitnessErr)
		}
		checkWitness(t, m, i, c.Witness)
	}

	if r.Exhaustive || r.GuardDependent {
		t.Fatalf("expected a non-exhaustive match")
	}
	if r.WitnessErr != nil {
		t.Fatalf("exhaustiveness witness: %v", r.WitnessErr)
	}
	checkWitness(t, m, -1, r.Witness)
	for _, v := range r.Witness {
		if v.Kind != pattern.Int {
			t.Fatalf("expected an integer witness, found %s", pattern.ValuesString(m.SubjectNames(), r.Witness))
		}
	}
	if useless := r.Useless(); len(useless) != 1 || useless[0].Index != 3 || useless[0].Line != 4 || r.Clean() {
		t.Fatalf("unexpected useless clauses: %#+v", useless)
	}
}

func TestCheckSingleSubject(t *testing.T) {
	m := newMatch([]string{"x"},
		Row(Or(Int(0), Int(1), Int(2))),
		Row(Int(3)),
		Row(Int(2)),
		Row(Wild()),
	)
	r := check(t, m)
	if diff := cmp.Diff([]bool{true, true, false, true}, reachability(r)); diff != "" {
		t.Fatalf("reachability (-expected +found):\n%s", diff)
	}
	if !r.Exhaustive || r.Witness != nil || r.WitnessErr != nil {
		t.Fatalf("expected an exhaustive match without witness")
	}
	w := r.Clauses[3].Witness
	checkWitness(t, m, 3, w)
	if w[0].Kind != pattern.Int {
		t.Fatalf("expected an integer witness, found %s", w[0])
	}
}

func TestCheckIntegerWitness(t *testing.T) {
	m := newMatch([]string{"x"}, Row(Int(1)), Row(Int(2)))
	r := check(t, m)
	if r.Exhaustive {
		t.Fatalf("expected a non-exhaustive match")
	}
	if len(r.Witness) != 1 {
		t.Fatalf("missing witness: %v", r.WitnessErr)
	}
	v := r.Witness[0]
	if v.Kind != pattern.Int || v.Int == 1 || v.Int == 2 {
		t.Fatalf("unexpected witness %s", v)
	}
	if w := r.Clauses[1].Witness; len(w) != 1 || !w[0].Equal(pattern.IntValue(2)) {
		t.Fatalf("unexpected witness for the second clause: %v", w)
	}
}

func TestCheckBooleans(t *testing.T) {
	r := check(t, newMatch(nil, Row(Bool(true)), Row(Bool(false))))
	if !r.Exhaustive || !r.Clean() {
		t.Fatalf("expected exhaustive booleans")
	}

	r = check(t, newMatch(nil, Row(Bool(true))))
	if r.Exhaustive {
		t.Fatalf("expected a non-exhaustive match")
	}
	if diff := cmp.Diff([]pattern.Value{pattern.BoolValue(false)}, r.Witness); diff != "" {
		t.Fatalf("witness (-expected +found):\n%s", diff)
	}

	r = check(t, newMatch(nil, Row(Bool(true)), Row(Bool(false)), Row(Wild())))
	if r.Clauses[2].Reachable {
		t.Fatalf("expected the wildcard after both booleans to be unreachable")
	}
}

func TestCheckNone(t *testing.T) {
	r := check(t, newMatch(nil, Row(None()), Row(Wild())))
	if r.Clauses[1].Reachable || !r.Exhaustive {
		t.Fatalf("null is a complete signature")
	}

	m := newMatch(nil, Row(None()), Row(Int(0)))
	r = check(t, m)
	if r.Exhaustive {
		t.Fatalf("expected a non-exhaustive match")
	}
	checkWitness(t, m, -1, r.Witness)
}

func TestCheckSequences(t *testing.T) {
	m := newMatch(nil,
		Row(Seq(Int(1), Wild())),
		Row(Seq(Wild(), Wild(), Wild())),
		Row(Seq(Int(1), Int(2))),
		Row(Seq(Wild(), Wild())),
	)
	r := check(t, m, WithWitnesses(false))
	if diff := cmp.Diff([]bool{true, true, false, true}, reachability(r)); diff != "" {
		t.Fatalf("reachability (-expected +found):\n%s", diff)
	}
	for _, c := range r.Clauses {
		if c.Witness != nil || c.WitnessErr != nil {
			t.Fatalf("witnesses are disabled: %#+v", c)
		}
	}
	if r.Exhaustive {
		t.Fatalf("sequences never form a complete signature")
	}
}

func TestCheckGuards(t *testing.T) {
	m := newMatch([]string{"x"},
		Guarded("x > 0", Wild()),
		Row(Int(1)),
	)
	r := check(t, m)

	first, second := r.Clauses[0], r.Clauses[1]
	if !first.Reachable || !first.Guarded || first.GuardDependent {
		t.Fatalf("unexpected verdict for the guarded clause: %#+v", first)
	}
	if second.Reachable || !second.GuardDependent || second.Guarded {
		t.Fatalf("unexpected verdict for the clause after the guard: %#+v", second)
	}
	if diff := cmp.Diff([]pattern.Value{pattern.IntValue(1)}, second.Witness); diff != "" {
		t.Fatalf("witness (-expected +found):\n%s", diff)
	}

	if !r.Exhaustive || !r.GuardDependent {
		t.Fatalf("expected an exhaustive match which depends on its guard")
	}
	if len(r.Witness) != 1 || r.Witness[0].Equal(pattern.IntValue(1)) {
		t.Fatalf("unexpected exhaustiveness witness %v (%v)", r.Witness, r.WitnessErr)
	}

	// An unguarded wildcard settles both verdicts
	r = check(t, newMatch(nil, Guarded("g", Int(1)), Row(Wild()), Row(Int(1))))
	if r.Clauses[2].Reachable || r.Clauses[2].GuardDependent || !r.Exhaustive || r.GuardDependent {
		t.Fatalf("unexpected guard dependence: %#+v", r)
	}
}

func TestCheckWitnessErrors(t *testing.T) {
	// The second alternative is too long for the subjects and matches nothing
	m := newMatch([]string{"x", "y"}, Row(Or(Seq(Int(1), Int(2)), Seq(Int(1), Int(2), Int(3)))))
	r := check(t, m)
	var arity *witness.ArityError
	if !r.Clauses[0].Reachable || !errors.As(r.Clauses[0].WitnessErr, &arity) || arity.Elements != 3 || arity.Vars != 2 {
		t.Fatalf("expected an arity error, found %v", r.Clauses[0].WitnessErr)
	}

	m = newMatch([]string{"x"}, Row(Map([]pattern.Value{pattern.StringValue("k")}, Wild())))
	r = check(t, m)
	if r.Clauses[0].Reachable || r.Exhaustive {
		t.Fatalf("mappings are never useful and never cover anything")
	}
	var unsupported *witness.UnsupportedError
	if !errors.As(r.WitnessErr, &unsupported) || r.Witness != nil {
		t.Fatalf("expected an unsupported pattern error, found %v", r.WitnessErr)
	}
}

func TestCheckListValues(t *testing.T) {
	// A sequence against one subject matches a list, which no scalar witness can stand for
	var unsupported *witness.UnsupportedError
	r := check(t, newMatch([]string{"x"}, Row(Int(1)), Row(Seq(Wild()))))
	second := r.Clauses[1]
	if !second.Reachable || second.Witness != nil || !errors.As(second.WitnessErr, &unsupported) || unsupported.Tag != "sequence/1" {
		t.Fatalf("unexpected verdict for the list clause: %#+v", second)
	}
	if r.Exhaustive || r.Witness != nil || !errors.As(r.WitnessErr, &unsupported) {
		t.Fatalf("unexpected exhaustiveness: %#+v", r.Exhaustiveness)
	}

	r = check(t, newMatch([]string{"x"}, Row(Or(Int(1), Int(2))), Row(Seq(Int(2)))))
	if second := r.Clauses[1]; !second.Reachable || errors.Is(second.WitnessErr, witness.ErrNoWitness) || !errors.As(second.WitnessErr, &unsupported) {
		t.Fatalf("unexpected verdict for the list clause: %#+v", second)
	}
}

func TestCheckPreferredKindFallback(t *testing.T) {
	// The first column mentions only integers, but the second clause needs a string there
	m := newMatch([]string{"x", "y"}, Row(Int(1), Wild()), Row(Or(Seq(Str("a"), Wild()))))
	r := check(t, m)
	second := r.Clauses[1]
	if !second.Reachable || second.WitnessErr != nil {
		t.Fatalf("unexpected verdict for the second clause: %#+v", second)
	}
	if len(second.Witness) != 2 || !second.Witness[0].Equal(pattern.StringValue("a")) {
		t.Fatalf("unexpected witness %v", second.Witness)
	}
}

func TestCheckFiniteDomain(t *testing.T) {
	colors := FiniteDomain(pattern.StringValue("red"), pattern.StringValue("green"))
	m := newMatch(nil, Row(Str("red")), Row(Str("green")))

	if r := check(t, m, WithClassifiers(colors)); !r.Exhaustive {
		t.Fatalf("expected an exhaustive match over a closed domain")
	}

	r := check(t, m)
	if r.Exhaustive {
		t.Fatalf("strings are an open domain by default")
	}
	if len(r.Witness) != 1 || r.Witness[0].Kind != pattern.String {
		t.Fatalf("expected a string witness, found %v (%v)", r.Witness, r.WitnessErr)
	}
	checkWitness(t, m, -1, r.Witness)
}

func TestCheckNarrowOrRows(t *testing.T) {
	c := NewChecker(WithLogger(quietLogger()))
	prefix := []pattern.List{pattern.NewList(Or(Seq(Int(2), Wild()), Seq(Wild(), Int(2))))}
	if c.Useful(prefix, pattern.NewList(Int(2), Int(4)), 2) {
		t.Fatalf("(2, 4) is covered by (2, _)")
	}
	if c.Useful(prefix, pattern.NewList(Int(7), Int(2)), 2) {
		t.Fatalf("(7, 2) is covered by (_, 2)")
	}
	if !c.Useful(prefix, pattern.NewList(Int(7), Int(4)), 2) {
		t.Fatalf("(7, 4) is not covered")
	}
	// A leading wildcard spans every subject
	if c.Useful([]pattern.List{pattern.NewList(Wild())}, Wilds(3), 3) {
		t.Fatalf("a single wildcard covers every subject")
	}
	// Rows of the wrong width match nothing
	if !c.Useful([]pattern.List{Wilds(3)}, Wilds(2), 2) {
		t.Fatalf("a wider row covers nothing")
	}
}

func TestCheckParallel(t *testing.T) {
	m := newMatch([]string{"x", "y"})
	for i := int64(0); i < 16; i++ {
		m.Clauses = append(m.Clauses, Clause{Vector: Row(Int(i%5), Or(Int(i), Bool(i%2 == 0)))})
	}
	sequential := check(t, m)
	parallel := check(t, m, WithParallelism(4))
	if diff := cmp.Diff(reachability(sequential), reachability(parallel)); diff != "" {
		t.Fatalf("reachability (-sequential +parallel):\n%s", diff)
	}
	for i, c := range parallel.Clauses {
		if c.Index != i {
			t.Fatalf("clause %d reported at index %d", c.Index, i)
		}
		if c.Reachable {
			checkWitness(t, m, i, c.Witness)
		}
	}
}

func TestCheckCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := newMatch(nil, Row(Int(1)))
	_, err := NewChecker(WithLogger(quietLogger())).Check(ctx, m)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, found %v", err)
	}

	// Without witnesses, nothing blocks
	if _, err := NewChecker(WithLogger(quietLogger()), WithWitnesses(false)).Check(ctx, m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMatchDefaults(t *testing.T) {
	m := &Match{Clauses: []Clause{{Vector: Row(Wild(), Wild())}}}
	if m.Width() != 2 {
		t.Fatalf("width: %d", m.Width())
	}
	if diff := cmp.Diff([]string{"$0", "$1"}, m.SubjectNames()); diff != "" {
		t.Fatalf("subject names (-expected +found):\n%s", diff)
	}
	if m.Label() != "match" {
		t.Fatalf("label: %s", m.Label())
	}
	m.Line = 3
	if m.Label() != "match at line 3" {
		t.Fatalf("label: %s", m.Label())
	}
	m.Arity = 1
	if m.Width() != 1 {
		t.Fatalf("arity should override clause width")
	}
}
