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

// matchcheck decides, for a multi-clause pattern-match construct, whether each clause is reachable given
// the clauses before it, and whether the construct covers every input. Reachable clauses and
// non-exhaustive matches are illustrated with a synthesized witness: a concrete tuple of subject values.
//
// Reachability is decided with a variant of Maranget's usefulness algorithm over immutable pattern
// matrices. Witnesses are found independently, by encoding the patterns as boolean constraints over
// union-typed subject variables and handing them to a SAT solver (gini).
//
//
// Supported Features:
//
//   * Literal (integer, boolean, string, null), wildcard, binding, or- and sequence patterns
//   * Complete signatures for booleans and null, with pluggable classifiers for other closed domains
//   * Or-patterns spanning every subject of a multi-subject match: `case (2, _) | (_, 2)`
//   * Guard diagnostics: verdicts which only hold if a guard always succeeds are flagged
//   * Witness re-verification, cancellable solving and concurrent clause checks
//
// Mapping, class and star patterns are accepted but never specialize: a clause headed by one is
// reported unreachable, rows of them never cover a wildcard, and their witnesses are not implemented.
//
//
// Links:
//
// Warnings for pattern matching (Luc Maranget, 2007): http://moscova.inria.fr/~maranget/papers/warn/index.html
//
// gini SAT solver: https://github.com/go-air/gini
package matchcheck
