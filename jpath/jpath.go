// Package jpath implements a parser for the subset of JSONPath that selects a
// single value inside a JSON document.
package jpath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

/*
Grammar:

  expr = root steps
  root = "$"
 steps = step [steps]
  step = "." WORD
  step = "[" value "]"
 value = WORD
 value = "'" QTEXT "'"
 value = INDEX

  WORD = RE `\w+`
 QTEXT = { text, with \' and \\ escapes }
 INDEX = RE `-?\d+`

A negative INDEX counts backward from the end. The recursive descent (..),
wildcard (*), slice, union, script and filter forms of
https://www.ietf.org/archive/id/draft-goessner-dispatch-jsonpath-00.html
are recognized and rejected.
*/

// An Expr is a parsed JSONPath expression. An empty Expr denotes the root.
type Expr []Step

// Parse parses s as a JSONPath expression. Errors have concrete type
// *SyntaxError.
func Parse(s string) (Expr, error) {
	p := &parser{src: s}
	if !p.eat("$") {
		return nil, p.fail("missing root marker")
	}
	out := Expr{}
	for p.pos < len(p.src) {
		step, err := p.parseStep()
		if err != nil {
			return nil, err
		}
		out = append(out, step)
	}
	return out, nil
}

// String renders e in canonical form. Keys that are not words are quoted.
func (e Expr) String() string {
	var buf strings.Builder
	buf.WriteString("$")
	for _, s := range e {
		buf.WriteString(s.String())
	}
	return buf.String()
}

// Path returns the steps of e as path elements for a cursor: a string for
// each member step and an int for each index step.
func (e Expr) Path() []any {
	out := make([]any, len(e))
	for i, s := range e {
		if s.Op == Index {
			out[i] = s.Index
		} else {
			out[i] = s.Key
		}
	}
	return out
}

// An Op is a path operator.
type Op byte

const (
	Invalid Op = iota // invalid operator
	Member            // member lookup by key
	Index             // element lookup by offset
)

var opText = [...]string{
	Invalid: "invalid",
	Member:  "member",
	Index:   "index",
}

func (o Op) String() string {
	if int(o) < len(opText) {
		return opText[o]
	}
	return opText[Invalid]
}

// A Step is a single step of a JSONPath expression.
type Step struct {
	Op    Op
	Key   string // for Member
	Index int    // for Index
}

// String renders s as it would appear in a canonical expression.
func (s Step) String() string {
	switch s.Op {
	case Member:
		if s.Key != "" && wordRE.FindString(s.Key) == s.Key {
			return "." + s.Key
		}
		r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
		return "['" + r.Replace(s.Key) + "']"
	case Index:
		return "[" + strconv.Itoa(s.Index) + "]"
	default:
		return "[?]"
	}
}

// A SyntaxError reports a malformed expression.
type SyntaxError struct {
	Offset  int // byte offset in the expression
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid path at offset %d: %s", e.Offset, e.Message)
}

type parser struct {
	src string
	pos int
}

func (p *parser) rest() string { return p.src[p.pos:] }

// eat consumes tag if the remaining input begins with it.
func (p *parser) eat(tag string) bool {
	if strings.HasPrefix(p.rest(), tag) {
		p.pos += len(tag)
		return true
	}
	return false
}

func (p *parser) fail(msg string, args ...any) error {
	return &SyntaxError{Offset: p.pos, Message: fmt.Sprintf(msg, args...)}
}

func (p *parser) parseStep() (Step, error) {
	switch {
	case strings.HasPrefix(p.rest(), ".."):
		return Step{}, p.fail("recursive descent is not supported")
	case p.eat("."):
		if w := wordRE.FindString(p.rest()); w != "" {
			p.pos += len(w)
			return Step{Op: Member, Key: w}, nil
		} else if strings.HasPrefix(p.rest(), "*") {
			return Step{}, p.fail("wildcards are not supported")
		}
		return Step{}, p.fail("invalid member name")
	case p.eat("["):
		step, err := p.parseSubscript()
		if err != nil {
			return Step{}, err
		}
		if !p.eat("]") {
			return Step{}, p.fail("missing close bracket")
		}
		return step, nil
	}
	r, _ := utf8.DecodeRuneInString(p.rest())
	return Step{}, p.fail("invalid path step at %q", r)
}

func (p *parser) parseSubscript() (Step, error) {
	if m := indexRE.FindString(p.rest()); m != "" {
		n, err := strconv.Atoi(m)
		if err != nil {
			return Step{}, p.fail("index %s out of range", m)
		}
		p.pos += len(m)
		if strings.HasPrefix(p.rest(), ":") || strings.HasPrefix(p.rest(), ",") {
			return Step{}, p.fail("slices and unions are not supported")
		}
		return Step{Op: Index, Index: n}, nil
	}
	if p.eat("'") {
		key, err := p.parseQuoted()
		if err != nil {
			return Step{}, err
		}
		return Step{Op: Member, Key: key}, nil
	}
	if w := wordRE.FindString(p.rest()); w != "" {
		p.pos += len(w)
		return Step{Op: Member, Key: w}, nil
	}
	switch r := p.rest(); {
	case strings.HasPrefix(r, "*"):
		return Step{}, p.fail("wildcards are not supported")
	case strings.HasPrefix(r, "?("):
		return Step{}, p.fail("filters are not supported")
	case strings.HasPrefix(r, "("):
		return Step{}, p.fail("scripts are not supported")
	case strings.HasPrefix(r, ":"):
		return Step{}, p.fail("slices and unions are not supported")
	}
	return Step{}, p.fail("invalid subscript")
}

// parseQuoted consumes the remainder of a quoted name, whose opening quote
// has already been consumed, and returns its unescaped text.
func (p *parser) parseQuoted() (string, error) {
	var sb strings.Builder
	for p.pos < len(p.src) {
		switch c := p.src[p.pos]; c {
		case '\'':
			p.pos++
			return sb.String(), nil
		case '\\':
			if p.pos+1 < len(p.src) && (p.src[p.pos+1] == '\'' || p.src[p.pos+1] == '\\') {
				sb.WriteByte(p.src[p.pos+1])
				p.pos += 2
				continue
			}
			return "", p.fail("invalid escape in quoted name")
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
	return "", p.fail("unterminated quoted name")
}

var (
	wordRE  = regexp.MustCompile(`^\w+`)
	indexRE = regexp.MustCompile(`^-?\d+`)
)
