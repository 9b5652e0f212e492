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
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
)

// ErrUnsat is returned by a Solver when the asserted literals cannot all hold.
var ErrUnsat = errors.New("unsatisfiable")

// ErrUnknown is returned by a Solver which stopped without deciding satisfiability.
var ErrUnknown = errors.New("satisfiability unknown")

// Model is a satisfying assignment.
type Model interface {
	Value(m z.Lit) bool
}

// Solver decides the satisfiability of circuits.
//
// Solve returns a model of c in which every root holds. Where possible, every literal of prefer holds as
// well; a solver which cannot satisfy the preferences must still return a model of the roots.
// Solve must return promptly once ctx is done.
type Solver interface {
	Solve(ctx context.Context, c *logic.C, roots, prefer []z.Lit) (Model, error)
}

// GiniSolver solves circuits with a fresh gini instance per call.
type GiniSolver struct {
	// PollInterval is how often a solve running under a cancellable context checks for cancellation.
	// Zero means 10ms.
	PollInterval time.Duration
}

var _ Solver = GiniSolver{}

func (s GiniSolver) Solve(ctx context.Context, c *logic.C, roots, prefer []z.Lit) (Model, error) {
	if len(prefer) > 0 {
		g := newGini(c, roots)
		g.Assume(prefer...)
		res, err := s.solve(ctx, g)
		if err != nil {
			return nil, err
		}
		if res == 1 {
			return g, nil
		}
	}

	// A gini instance is not solved again after a failed solve under assumptions.
	g := newGini(c, roots)
	res, err := s.solve(ctx, g)
	if err != nil {
		return nil, err
	}
	switch res {
	case 1:
		return g, nil
	case -1:
		return nil, ErrUnsat
	}
	return nil, ErrUnknown
}

// newGini returns a gini instance holding the clauses of c, with every root asserted.
func newGini(c *logic.C, roots []z.Lit) *gini.Gini {
	g := gini.New()
	c.ToCnf(g)
	for _, root := range roots {
		g.Add(root)
		g.Add(0) // clause terminator
	}
	return g
}

func (s GiniSolver) solve(ctx context.Context, g *gini.Gini) (int, error) {
	if ctx.Done() == nil {
		return g.Solve(), nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	interval := s.PollInterval
	if interval <= 0 {
		interval = 10 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	solve := g.GoSolve()
	for {
		if res, done := solve.Test(); done {
			return res, nil
		}
		select {
		case <-ctx.Done():
			solve.Stop()
			return 0, ctx.Err()
		case <-ticker.C:
		}
	}
}
