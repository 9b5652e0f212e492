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

package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/wdamron/matchcheck"
	"github.com/wdamron/matchcheck/frontend"
	"github.com/wdamron/matchcheck/pattern"
)

// renderer writes reports as text, as they are added, or as a single YAML document on flush.
type renderer struct {
	w       io.Writer
	yaml    bool
	docs    []reportDoc
	errorC  *color.Color
	warnC   *color.Color
	detailC *color.Color
}

func newRenderer(w io.Writer, cfg checkConfig) (*renderer, error) {
	r := &renderer{
		w:       w,
		errorC:  color.New(color.FgRed, color.Bold),
		warnC:   color.New(color.FgYellow),
		detailC: color.New(color.Faint),
	}
	switch cfg.format {
	case "text":
	case "yaml":
		r.yaml = true
	default:
		return nil, fmt.Errorf("unknown output format %q", cfg.format)
	}

	var colored bool
	switch cfg.color {
	case "auto":
		f, ok := w.(*os.File)
		colored = ok && isatty.IsTerminal(f.Fd())
	case "always":
		colored = true
	case "never":
	default:
		return nil, fmt.Errorf("unknown color mode %q", cfg.color)
	}
	for _, c := range []*color.Color{r.errorC, r.warnC, r.detailC} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r, nil
}

func (r *renderer) add(file string, rep *matchcheck.Report) {
	if r.yaml {
		r.docs = append(r.docs, newReportDoc(file, rep))
		return
	}
	io.WriteString(r.w, r.text(file, rep))
}

func (r *renderer) flush() error {
	if !r.yaml {
		return nil
	}
	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if err := enc.Encode(struct {
		Reports []reportDoc `yaml:"reports"`
	}{r.docs}); err != nil {
		return err
	}
	return enc.Close()
}

// text renders one finding per line, prefixed by file, line and match label.
func (r *renderer) text(file string, rep *matchcheck.Report) string {
	var sb strings.Builder
	m := rep.Match
	names := m.SubjectNames()
	where := func(line int) string {
		if line == 0 {
			line = m.Line
		}
		return fmt.Sprintf("%s:%d: %s: ", file, line, m.Label())
	}
	detail := func(vs []pattern.Value, err error) string {
		switch {
		case vs != nil:
			return r.detailC.Sprintf(" (e.g. %s)", pattern.ValuesString(names, vs))
		case err != nil:
			return r.detailC.Sprintf(" (no witness: %v)", err)
		}
		return ""
	}

	for _, c := range rep.Clauses {
		switch {
		case c.GuardDependent:
			sb.WriteString(where(c.Line))
			guards, several := guardsBefore(m, c.Index)
			verb := "fails"
			if several {
				verb = "fail"
			}
			sb.WriteString(r.warnC.Sprintf("clause %d is unreachable unless %s %s", c.Index+1, guards, verb))
			sb.WriteString(detail(c.Witness, c.WitnessErr))
			sb.WriteByte('\n')
		case !c.Reachable:
			sb.WriteString(where(c.Line))
			sb.WriteString(r.errorC.Sprintf("clause %d is unreachable", c.Index+1))
			sb.WriteByte('\n')
		}
	}
	switch {
	case rep.GuardDependent:
		sb.WriteString(where(m.Line))
		guards, several := guardsBefore(m, len(m.Clauses))
		verb := "succeeds"
		if several {
			verb = "succeed"
		}
		sb.WriteString(r.warnC.Sprintf("match is exhaustive only if %s %s", guards, verb))
		sb.WriteString(detail(rep.Witness, rep.WitnessErr))
		sb.WriteByte('\n')
	case !rep.Exhaustive:
		sb.WriteString(where(m.Line))
		sb.WriteString(r.errorC.Sprint("match is not exhaustive"))
		sb.WriteString(detail(rep.Witness, rep.WitnessErr))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// guardsBefore describes the guards of the clauses before n, e.g. `the guard on clause 1 (uses x, limit)`,
// and reports whether there are several.
func guardsBefore(m *matchcheck.Match, n int) (string, bool) {
	var parts []string
	for i := 0; i < n && i < len(m.Clauses); i++ {
		guard := m.Clauses[i].Vector.Guard
		if guard == nil {
			continue
		}
		part := "clause " + strconv.Itoa(i+1)
		if ids := guardIdentifiers(guard); len(ids) > 0 {
			part += " (uses " + strings.Join(ids, ", ") + ")"
		}
		parts = append(parts, part)
	}
	switch len(parts) {
	case 0:
		return "an earlier guard", false
	case 1:
		return "the guard on " + parts[0], false
	}
	return "the guards on " + strings.Join(parts, ", "), true
}

func guardIdentifiers(guard interface{}) []string {
	if g, ok := guard.(*frontend.Guard); ok {
		return g.Identifiers
	}
	return nil
}

type reportDoc struct {
	File           string      `yaml:"file"`
	Match          string      `yaml:"match"`
	Line           int         `yaml:"line,omitempty"`
	Exhaustive     bool        `yaml:"exhaustive"`
	GuardDependent bool        `yaml:"guard_dependent,omitempty"`
	Witness        *yaml.Node  `yaml:"witness,omitempty"`
	WitnessError   string      `yaml:"witness_error,omitempty"`
	Clauses        []clauseDoc `yaml:"clauses"`
}

type clauseDoc struct {
	Index          int        `yaml:"index"`
	Line           int        `yaml:"line,omitempty"`
	Reachable      bool       `yaml:"reachable"`
	Guarded        bool       `yaml:"guarded,omitempty"`
	Guard          string     `yaml:"guard,omitempty"`
	GuardUses      []string   `yaml:"guard_uses,omitempty"`
	GuardDependent bool       `yaml:"guard_dependent,omitempty"`
	Witness        *yaml.Node `yaml:"witness,omitempty"`
	WitnessError   string     `yaml:"witness_error,omitempty"`
}

func newReportDoc(file string, rep *matchcheck.Report) reportDoc {
	names := rep.Match.SubjectNames()
	doc := reportDoc{
		File:           file,
		Match:          rep.Match.Label(),
		Line:           rep.Match.Line,
		Exhaustive:     rep.Exhaustive,
		GuardDependent: rep.GuardDependent,
		Witness:        witnessNode(names, rep.Witness),
		WitnessError:   errString(rep.WitnessErr),
		Clauses:        make([]clauseDoc, len(rep.Clauses)),
	}
	for i, c := range rep.Clauses {
		var guard interface{}
		if c.Index < len(rep.Match.Clauses) {
			guard = rep.Match.Clauses[c.Index].Vector.Guard
		}
		doc.Clauses[i] = clauseDoc{
			Index:          c.Index,
			Line:           c.Line,
			Reachable:      c.Reachable,
			Guarded:        c.Guarded,
			Guard:          guardSource(guard),
			GuardUses:      guardIdentifiers(guard),
			GuardDependent: c.GuardDependent,
			Witness:        witnessNode(names, c.Witness),
			WitnessError:   errString(c.WitnessErr),
		}
	}
	return doc
}

// witnessNode returns a mapping from subject names to witness values, in subject order.
func witnessNode(names []string, vs []pattern.Value) *yaml.Node {
	if vs == nil {
		return nil
	}
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i, v := range vs {
		name := fmt.Sprintf("$%d", i)
		if i < len(names) {
			name = names[i]
		}
		value := &yaml.Node{}
		if err := value.Encode(v.Interface()); err != nil {
			value = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.String()}
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}, value)
	}
	return node
}

func guardSource(guard interface{}) string {
	if guard == nil {
		return ""
	}
	return fmt.Sprint(guard)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
