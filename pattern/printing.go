package pattern

import (
	"strings"
)

// PatternString returns a string representation of a pattern.
func PatternString(p Pattern) string {
	var sb strings.Builder
	patternString(&sb, false, p)
	return sb.String()
}

// RowString returns a string representation of a row of patterns: `(1, _)`
func RowString(l List) string {
	var sb strings.Builder
	sb.WriteByte('(')
	listString(&sb, l)
	if l.Len() == 1 {
		sb.WriteByte(',')
	}
	sb.WriteByte(')')
	return sb.String()
}

// ValuesString returns a string representation of a value tuple, labelled with names where available: `x=1, y=0`
func ValuesString(names []string, vs []Value) string {
	var sb strings.Builder
	for i, v := range vs {
		if i > 0 {
			sb.WriteString(", ")
		}
		if i < len(names) && names[i] != "" {
			sb.WriteString(names[i])
			sb.WriteByte('=')
		}
		sb.WriteString(v.String())
	}
	return sb.String()
}

func listString(sb *strings.Builder, l List) {
	l.Range(func(i int, p Pattern) bool {
		if i > 0 {
			sb.WriteString(", ")
		}
		patternString(sb, false, p)
		return true
	})
}

func patternString(sb *strings.Builder, simple bool, p Pattern) {
	name := ""
	if _, ok := p.(*Binding); !ok {
		name = CaptureName(p)
	}
	if name == "" {
		patternBody(sb, simple, p)
		return
	}
	if simple {
		sb.WriteByte('(')
	}
	patternBody(sb, true, p)
	sb.WriteString(" as ")
	sb.WriteString(name)
	if simple {
		sb.WriteByte(')')
	}
}

func patternBody(sb *strings.Builder, simple bool, p Pattern) {
	switch p := p.(type) {
	case Empty:
		sb.WriteString("<empty>")

	case Wildcard:
		sb.WriteByte('_')

	case WildcardSeq:
		sb.WriteByte('*')
		if p.Name == "" {
			sb.WriteByte('_')
		} else {
			sb.WriteString(p.Name)
		}

	case *Binding:
		sb.WriteString(p.Name)

	case *Literal:
		sb.WriteString(p.Value.String())

	case *Or:
		if simple {
			sb.WriteByte('(')
		}
		p.Alternatives.Range(func(i int, alt Pattern) bool {
			if i > 0 {
				sb.WriteString(" | ")
			}
			patternString(sb, true, alt)
			return true
		})
		if simple {
			sb.WriteByte(')')
		}

	case *Sequence:
		sb.WriteByte('[')
		listString(sb, p.Elements)
		sb.WriteByte(']')

	case *Mapping:
		sb.WriteByte('{')
		for i, k := range p.Keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(k.String())
			sb.WriteString(": ")
			if i < p.Values.Len() {
				patternString(sb, false, p.Values.Get(i))
			}
		}
		sb.WriteByte('}')

	case *Constructor:
		sb.WriteString(p.Name)
		sb.WriteByte('(')
		listString(sb, p.Positional)
		n := p.Positional.Len()
		p.Keyword.Range(func(name string, sub Pattern) bool {
			if n > 0 {
				sb.WriteString(", ")
			}
			n++
			sb.WriteString(name)
			sb.WriteByte('=')
			patternString(sb, false, sub)
			return true
		})
		sb.WriteByte(')')

	default:
		panic("unknown pattern type: " + p.PatternName())
	}
}
