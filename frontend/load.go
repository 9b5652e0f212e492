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

// Package frontend loads match constructs from YAML documents.
//
// A document lists matches, each with its subjects and clauses:
//
//	matches:
//	  - name: classify
//	    subjects: [x, y]
//	    cases:
//	      - pattern: [0, 0]
//	      - pattern: !or [[1, _], [_, 1]]
//	      - pattern: [x, _]
//	        guard: x > 10
//	      - pattern: _
//
// A match with several subjects takes tuple patterns; see Normalize.
package frontend

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wdamron/matchcheck"
	"github.com/wdamron/matchcheck/pattern"
)

type document struct {
	Matches []yaml.Node `yaml:"matches"`
}

type matchDoc struct {
	Name     string    `yaml:"name"`
	Line     int       `yaml:"line"`
	Subjects []string  `yaml:"subjects"`
	Cases    []caseDoc `yaml:"cases"`
}

type caseDoc struct {
	Line    int       `yaml:"line"`
	Pattern yaml.Node `yaml:"pattern"`
	Guard   string    `yaml:"guard"`
}

// Load reads every match from the YAML documents of r, in order.
func Load(r io.Reader) ([]*matchcheck.Match, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var matches []*matchcheck.Match
	for {
		var doc document
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return matches, nil
		}
		if err != nil {
			return nil, err
		}
		for i := range doc.Matches {
			m, err := convertMatch(&doc.Matches[i])
			if err != nil {
				return nil, err
			}
			matches = append(matches, m)
		}
	}
}

// LoadFile reads every match from the file at path.
func LoadFile(path string) ([]*matchcheck.Match, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	matches, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return matches, nil
}

func convertMatch(node *yaml.Node) (*matchcheck.Match, error) {
	var doc matchDoc
	if err := node.Decode(&doc); err != nil {
		return nil, err
	}
	m := &matchcheck.Match{Name: doc.Name, Line: doc.Line, Subjects: doc.Subjects}
	if m.Line == 0 {
		m.Line = node.Line
	}
	if len(m.Subjects) == 0 {
		m.Subjects = []string{"subject"}
	}
	width := len(m.Subjects)

	m.Clauses = make([]matchcheck.Clause, 0, len(doc.Cases))
	for i := range doc.Cases {
		c := &doc.Cases[i]
		if c.Pattern.Kind == 0 {
			return nil, &SyntaxError{Line: m.Line, Msg: fmt.Sprintf("%s: case %d has no pattern", m.Label(), i)}
		}
		p, err := ConvertNode(&c.Pattern)
		if err != nil {
			return nil, err
		}
		var guard interface{}
		if c.Guard != "" {
			g, err := ParseGuard(c.Guard)
			if err != nil {
				return nil, &SyntaxError{Line: c.Pattern.Line, Column: c.Pattern.Column, Msg: fmt.Sprintf("guard %q: %v", c.Guard, err)}
			}
			guard = g
		}
		line := c.Line
		if line == 0 {
			line = c.Pattern.Line
		}
		m.Clauses = append(m.Clauses, matchcheck.Clause{
			Vector: pattern.Vector{Patterns: Normalize(p, width), Guard: guard},
			Line:   line,
		})
	}
	return m, nil
}
