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
	"fmt"

	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
	"github.com/wdamron/matchcheck/pattern"
)

// Query asks for a value tuple which is accepted by Target and rejected by every row of Prefix.
type Query struct {
	Prefix []pattern.List
	Target pattern.List
	// Width is the number of subjects. Rows narrower than Width have a leading pattern spanning several subjects.
	Width int
	// Names label the union-variables, one per subject. Missing names default to v0, v1, ...
	Names []string
}

// Synthesizer produces witnesses by compiling patterns into boolean constraints over union-variables
// and querying a solver.
//
// A synthesizer holds no per-query state and may be used concurrently if its solver may be.
type Synthesizer struct {
	solver Solver
}

type Option func(*Synthesizer)

// WithSolver replaces the default gini solver.
func WithSolver(s Solver) Option { return func(syn *Synthesizer) { syn.solver = s } }

func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{solver: GiniSolver{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Witness returns one value per subject, accepted by q.Target and rejected by every row of q.Prefix.
//
// Unsupported patterns and arity mismatches are reported as *UnsupportedError and *ArityError.
// ErrNoWitness is returned if the constraints are unsatisfiable.
func (s *Synthesizer) Witness(ctx context.Context, q Query) ([]pattern.Value, error) {
	c := logic.NewC()

	var mentioned []pattern.Value
	for _, row := range q.Prefix {
		mentioned = append(mentioned, pattern.Literals(row)...)
	}
	mentioned = append(mentioned, pattern.Literals(q.Target)...)

	vt := newVarTracker(c, mentioned)
	vars := vt.NewList(q.Names, q.Width)

	roots := make([]z.Lit, 0, len(vars)+len(q.Prefix)+1)
	for _, u := range vars {
		roots = append(roots, u.DefaultConstraints(c))
	}
	for i, row := range q.Prefix {
		cond, err := CompileRow(c, row, vars)
		if err != nil {
			return nil, fmt.Errorf("row %d %s: %w", i, pattern.RowString(row), err)
		}
		roots = append(roots, cond.Not())
	}
	target, err := CompileRow(c, q.Target, vars)
	if err != nil {
		return nil, fmt.Errorf("target %s: %w", pattern.RowString(q.Target), err)
	}
	roots = append(roots, target)

	model, err := s.solver.Solve(ctx, c, roots, preferredKinds(q, vars))
	if errors.Is(err, ErrUnsat) {
		return nil, ErrNoWitness
	}
	if err != nil {
		return nil, err
	}

	values := make([]pattern.Value, len(vars))
	for i, u := range vars {
		values[i] = u.Decode(model)
	}
	return values, nil
}

// preferredKinds selects, for each subject whose column mentions literals of exactly one kind, that kind.
// Without a preference the solver may satisfy `not 1 and not 2` with a string.
func preferredKinds(q Query, vars []*UnionVar) []z.Lit {
	kinds := make([]map[pattern.Kind]bool, len(vars))
	note := func(row pattern.List) {
		if row.Len() != len(vars) {
			return
		}
		for i := range vars {
			for _, v := range pattern.Literals(pattern.SingletonList(row.Get(i))) {
				if kinds[i] == nil {
					kinds[i] = make(map[pattern.Kind]bool, 2)
				}
				kinds[i][v.Kind] = true
			}
		}
	}
	for _, row := range q.Prefix {
		note(row)
	}
	note(q.Target)

	var prefer []z.Lit
	for i, ks := range kinds {
		if len(ks) != 1 {
			continue
		}
		for k := range ks {
			prefer = append(prefer, vars[i].Is(k))
		}
	}
	return prefer
}
