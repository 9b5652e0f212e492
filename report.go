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
	"errors"

	"github.com/wdamron/matchcheck/pattern"
)

// ErrWitnessMismatch is reported when a synthesized witness fails re-verification against the rows it was
// synthesized for.
var ErrWitnessMismatch = errors.New("witness does not satisfy its query")

// ClauseResult is the redundancy verdict for one clause.
type ClauseResult struct {
	Index int
	Line  int
	// Reachable is false when every value the clause accepts is accepted by an earlier clause.
	Reachable bool
	// Guarded is set when the clause carries a guard. Guards are treated as always true.
	Guarded bool
	// GuardDependent is set on an unreachable clause which would be reachable if the guarded clauses
	// before it were ignored. The verdict is only sound if those guards always hold.
	GuardDependent bool
	// Witness is an input accepted by the clause and by no earlier clause. For a guard-dependent clause,
	// the earlier guarded clauses are ignored. Nil if unreachable or if no witness was produced.
	Witness []pattern.Value
	// WitnessErr explains a missing witness.
	WitnessErr error
}

// Exhaustiveness is the coverage verdict for a whole match.
type Exhaustiveness struct {
	Exhaustive bool
	// GuardDependent is set on an exhaustive match which would not be exhaustive without its guarded clauses.
	GuardDependent bool
	// Witness is an input accepted by no clause (by no unguarded clause, if guard-dependent).
	Witness    []pattern.Value
	WitnessErr error
}

// Report holds the verdicts for one match.
type Report struct {
	Match   *Match
	Clauses []ClauseResult
	Exhaustiveness
}

// Useless returns the results of unreachable clauses.
func (r *Report) Useless() []ClauseResult {
	var useless []ClauseResult
	for _, c := range r.Clauses {
		if !c.Reachable {
			useless = append(useless, c)
		}
	}
	return useless
}

// Clean reports whether every clause is reachable and the match is exhaustive.
func (r *Report) Clean() bool {
	return r.Exhaustive && len(r.Useless()) == 0
}
