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

package matchcheck

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/wdamron/matchcheck/pattern"
	"github.com/wdamron/matchcheck/witness"
)

// Checker decides reachability of clauses and exhaustiveness of matches, and synthesizes witnesses.
//
// A checker holds only configuration; it may be reused, and used concurrently.
type Checker struct {
	classifiers []Classifier
	synth       *witness.Synthesizer
	logger      log.FieldLogger
	parallelism int
	witnesses   bool
	verify      bool
}

type Option func(*Checker)

// WithClassifiers adds classifiers for closed domains, in addition to DefaultClassifiers.
func WithClassifiers(classifiers ...Classifier) Option {
	return func(c *Checker) {
		c.classifiers = append(append([]Classifier(nil), c.classifiers...), classifiers...)
	}
}

// WithSynthesizer replaces the default witness synthesizer.
func WithSynthesizer(s *witness.Synthesizer) Option { return func(c *Checker) { c.synth = s } }

// WithLogger replaces the standard logrus logger.
func WithLogger(l log.FieldLogger) Option { return func(c *Checker) { c.logger = l } }

// WithParallelism sets the number of clauses checked concurrently. Zero or less means GOMAXPROCS.
func WithParallelism(n int) Option {
	return func(c *Checker) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		c.parallelism = n
	}
}

// WithWitnesses enables or disables witness synthesis. Witnesses are enabled by default.
func WithWitnesses(enabled bool) Option { return func(c *Checker) { c.witnesses = enabled } }

// WithVerify enables re-verification of each witness against the rows it was synthesized for.
func WithVerify(enabled bool) Option { return func(c *Checker) { c.verify = enabled } }

// Create a new checker. By default only booleans and null are complete domains, witnesses are
// synthesized with gini, and clauses are checked sequentially.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		classifiers: DefaultClassifiers,
		synth:       witness.New(),
		logger:      log.StandardLogger(),
		parallelism: 1,
		witnesses:   true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Useful reports whether v is useful against the rows of prefix, for a match of width subjects.
// Rows narrower than width are widened (see Match); rows of any other width match nothing.
func (c *Checker) Useful(prefix []pattern.List, v pattern.List, width int) bool {
	return c.useful(widenRows(prefix, width), v, width)
}

func (c *Checker) useful(widened []pattern.List, v pattern.List, width int) bool {
	for _, wv := range widenRow(v, width) {
		if urec(c.classifiers, widened, wv) {
			return true
		}
	}
	return false
}

// Check returns the reachability of every clause of m, and the exhaustiveness of m.
//
// Witness failures are recorded per clause. An error is returned only if ctx is done.
func (c *Checker) Check(ctx context.Context, m *Match) (*Report, error) {
	p := c.prepare(m)
	clauses, err := c.checkClauses(ctx, p)
	if err != nil {
		return nil, err
	}
	ex, err := c.checkExhaustive(ctx, p)
	if err != nil {
		return nil, err
	}
	return &Report{Match: m, Clauses: clauses, Exhaustiveness: ex}, nil
}

// CheckUselessPatterns returns, for each clause i of m, whether clause i is useful against clauses [0, i).
func (c *Checker) CheckUselessPatterns(ctx context.Context, m *Match) ([]ClauseResult, error) {
	return c.checkClauses(ctx, c.prepare(m))
}

// CheckNonExhaustiveMatches returns whether a row of wildcards is useful against every clause of m.
func (c *Checker) CheckNonExhaustiveMatches(ctx context.Context, m *Match) (Exhaustiveness, error) {
	return c.checkExhaustive(ctx, c.prepare(m))
}

// prepared holds the rows of a match, widened once.
type prepared struct {
	match   *Match
	width   int
	names   []string
	rows    []pattern.List
	widened [][]pattern.List
	guarded []bool
}

func (c *Checker) prepare(m *Match) *prepared {
	p := &prepared{
		match:   m,
		width:   m.Width(),
		names:   m.SubjectNames(),
		rows:    make([]pattern.List, len(m.Clauses)),
		widened: make([][]pattern.List, len(m.Clauses)),
		guarded: make([]bool, len(m.Clauses)),
	}
	for i, v := range m.Matrix() {
		p.rows[i] = v.Patterns
		p.widened[i] = widenRow(v.Patterns, p.width)
		p.guarded[i] = v.Guarded()
	}
	return p
}

// Widened rows of the clauses before n, optionally without guarded clauses.
func (p *prepared) prefix(n int, unguarded bool) []pattern.List {
	var rows []pattern.List
	for i := 0; i < n; i++ {
		if unguarded && p.guarded[i] {
			continue
		}
		rows = append(rows, p.widened[i]...)
	}
	return rows
}

// Rows of the clauses before n as written, for witness synthesis.
func (p *prepared) rawPrefix(n int, unguarded bool) []pattern.List {
	rows := make([]pattern.List, 0, n)
	for i := 0; i < n; i++ {
		if unguarded && p.guarded[i] {
			continue
		}
		rows = append(rows, p.rows[i])
	}
	return rows
}

func (p *prepared) anyGuarded(n int) bool {
	for i := 0; i < n; i++ {
		if p.guarded[i] {
			return true
		}
	}
	return false
}

func (c *Checker) checkClauses(ctx context.Context, p *prepared) ([]ClauseResult, error) {
	results := make([]ClauseResult, len(p.rows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallelism)
	for i := range p.rows {
		i := i
		g.Go(func() error {
			r, err := c.checkClause(gctx, p, i)
			results[i] = r
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Checker) checkClause(ctx context.Context, p *prepared, i int) (ClauseResult, error) {
	clause := p.match.Clauses[i]
	logger := c.logger.WithFields(log.Fields{"match": p.match.Label(), "clause": i, "line": clause.Line})
	r := ClauseResult{Index: i, Line: clause.Line, Guarded: p.guarded[i]}

	row := p.rows[i]
	r.Reachable = c.useful(p.prefix(i, false), row, p.width)
	if !r.Reachable && p.anyGuarded(i) {
		r.GuardDependent = c.useful(p.prefix(i, true), row, p.width)
	}
	if !r.Reachable && !r.GuardDependent {
		logger.Debugf("clause %s is useless", pattern.RowString(row))
		return r, nil
	}
	if r.GuardDependent {
		logger.Debugf("clause %s is useless unless an earlier guard fails", pattern.RowString(row))
	} else {
		logger.Debugf("clause %s is reachable", pattern.RowString(row))
	}
	if !c.witnesses {
		return r, nil
	}

	r.Witness, r.WitnessErr = c.witness(ctx, p, p.rawPrefix(i, r.GuardDependent), row)
	if err := ctx.Err(); err != nil {
		return r, err
	}
	c.logWitnessErr(logger, r.WitnessErr)
	return r, nil
}

func (c *Checker) checkExhaustive(ctx context.Context, p *prepared) (Exhaustiveness, error) {
	n := len(p.rows)
	logger := c.logger.WithFields(log.Fields{"match": p.match.Label()})
	wildcards := pattern.Repeat(pattern.Wildcard{}, p.width)

	var e Exhaustiveness
	e.Exhaustive = !c.useful(p.prefix(n, false), wildcards, p.width)
	if e.Exhaustive && p.anyGuarded(n) {
		e.GuardDependent = c.useful(p.prefix(n, true), wildcards, p.width)
	}
	if e.Exhaustive && !e.GuardDependent {
		logger.Debug("match is exhaustive")
		return e, nil
	}
	logger.Debugf("match is non-exhaustive (guard dependent: %v)", e.GuardDependent)
	if !c.witnesses {
		return e, nil
	}

	e.Witness, e.WitnessErr = c.witness(ctx, p, p.rawPrefix(n, e.GuardDependent), wildcards)
	if err := ctx.Err(); err != nil {
		return e, err
	}
	c.logWitnessErr(logger, e.WitnessErr)
	return e, nil
}

func (c *Checker) witness(ctx context.Context, p *prepared, prefix []pattern.List, target pattern.List) ([]pattern.Value, error) {
	vs, err := c.synth.Witness(ctx, witness.Query{Prefix: prefix, Target: target, Width: p.width, Names: p.names})
	if err != nil {
		return nil, err
	}
	if c.verify {
		if err := verifyWitness(prefix, target, vs); err != nil {
			return nil, err
		}
	}
	return vs, nil
}

func (c *Checker) logWitnessErr(logger log.FieldLogger, err error) {
	var unsupported *witness.UnsupportedError
	var arity *witness.ArityError
	switch {
	case err == nil:
	case errors.As(err, &unsupported), errors.As(err, &arity):
		logger.WithError(err).Debug("witness skipped")
	default:
		// Usefulness and satisfiability agree over the modeled domain; disagreement is a bug.
		logger.WithError(err).Warn("no witness for a useful row")
	}
}

// verifyWitness checks that vs is rejected by every row of prefix and accepted by target.
func verifyWitness(prefix []pattern.List, target pattern.List, vs []pattern.Value) error {
	for i, row := range prefix {
		ok, err := pattern.MatchRow(row, vs)
		if err != nil {
			return err
		}
		if ok {
			return fmt.Errorf("%w: %s is accepted by row %d %s", ErrWitnessMismatch, pattern.ValuesString(nil, vs), i, pattern.RowString(row))
		}
	}
	ok, err := pattern.MatchRow(target, vs)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s is rejected by %s", ErrWitnessMismatch, pattern.ValuesString(nil, vs), pattern.RowString(target))
	}
	return nil
}
