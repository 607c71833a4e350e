// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"io"

	"github.com/creachadair/jparse"

	"go4.org/mem"
)

// DefaultMaxDepth is the default limit on the nesting depth of arrays and
// objects accepted by a Parser.
const DefaultMaxDepth = 512

// Parse parses text as a single JSON value. In case of a lexical or syntax
// error, Parse returns a nil Value and an error of concrete type
// *jparse.Error.
func Parse(text string) (Value, error) { return NewParser(mem.S(text)).Parse() }

// ParseBytes parses data as a single JSON value. It behaves as Parse.
func ParseBytes(data []byte) (Value, error) { return NewParser(mem.B(data)).Parse() }

// ParseReader reads all of r and parses it as a single JSON value. An error
// reading r is returned as-is; other errors are as for Parse.
func ParseReader(r io.Reader) (Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseBytes(data)
}

// A Parser constructs a Value from JSON source text by recursive descent.
// A Parser parses a single value and should not be reused.
type Parser struct {
	lex      *jparse.Lexer
	maxDepth int
	depth    int
}

// NewParser constructs a Parser that consumes input from src.
func NewParser(src mem.RO) *Parser {
	return &Parser{lex: jparse.NewLexer(src), maxDepth: DefaultMaxDepth}
}

// SetMaxDepth sets the maximum nesting depth of arrays and objects that p
// will accept. If n <= 0, the limit is reset to DefaultMaxDepth.
func (p *Parser) SetMaxDepth(n int) {
	if n <= 0 {
		n = DefaultMaxDepth
	}
	p.maxDepth = n
}

// Parse parses the input as exactly one JSON value followed by the end of
// input. It returns either a complete Value or an error of concrete type
// *jparse.Error, never both.
func (p *Parser) Parse() (Value, error) {
	v, err := p.parse()
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (p *Parser) parse() (_ Value, err error) {
	defer p.recoverParseError(&err)

	v := p.parseValue(p.next())
	if pos, ok := p.lex.AtEnd(); !ok {
		p.fail(jparse.TrailingContent, pos, "unexpected content after value")
	}
	return v, nil
}

func (p *Parser) recoverParseError(errp *error) {
	if perr := recover(); perr != nil {
		if err, ok := perr.(*jparse.Error); ok {
			*errp = err
			return
		}
		panic(perr)
	}
}

// parseValue consumes a single value of any type beginning with tok.
func (p *Parser) parseValue(tok jparse.Token) Value {
	switch tok.Kind {
	case jparse.BraceOpen:
		return p.parseObject(tok)
	case jparse.BracketOpen:
		return p.parseArray(tok)
	case jparse.String:
		return String(tok.Text)
	case jparse.Number:
		return Number(tok.Num)
	case jparse.Boolean:
		return Bool(tok.Bool)
	case jparse.Null:
		return Null{}
	default:
		p.unexpected(tok, "value")
		panic("unreachable")
	}
}

// parseObject consumes the members of an object and its closing brace.
// Precondition: open.Kind == BraceOpen.
func (p *Parser) parseObject(open jparse.Token) Value {
	p.enter(open)
	defer p.leave()

	obj := Object{}
	tok := p.next()
	if tok.Kind == jparse.BraceClose {
		return obj // empty object
	}
	var index map[string]int
	for {
		// Parse a single member: "key": value
		if tok.Kind != jparse.String {
			p.unexpected(tok, "string key")
		}
		key := tok.Text
		if c := p.next(); c.Kind == jparse.EndOfInput {
			p.unexpected(c, `":"`)
		} else if c.Kind != jparse.Colon {
			p.fail(jparse.ExpectedColon, c.Pos, "expected %q after object key, got %v", ":", c)
		}
		val := p.parseValue(p.next())

		// Duplicate keys: the last value wins, at the position of the first.
		if i, ok := index[key]; ok {
			obj[i].Value = val
		} else {
			if index == nil {
				index = make(map[string]int)
			}
			index[key] = len(obj)
			obj = append(obj, &Member{Key: key, Value: val})
		}

		// Check whether we have more members (",") or are done ("}").
		sep := p.next()
		switch sep.Kind {
		case jparse.BraceClose:
			return obj
		case jparse.Comma:
		default:
			p.unexpected(sep, `"," or "}"`)
		}
		if tok = p.next(); tok.Kind == jparse.BraceClose {
			p.fail(jparse.TrailingComma, sep.Pos, "trailing comma before %q", "}")
		}
	}
}

// parseArray consumes the elements of an array and its closing bracket.
// Precondition: open.Kind == BracketOpen.
func (p *Parser) parseArray(open jparse.Token) Value {
	p.enter(open)
	defer p.leave()

	arr := Array{}
	tok := p.next()
	if tok.Kind == jparse.BracketClose {
		return arr // empty array
	}
	for {
		arr = append(arr, p.parseValue(tok))

		sep := p.next()
		switch sep.Kind {
		case jparse.BracketClose:
			return arr
		case jparse.Comma:
		default:
			p.unexpected(sep, `"," or "]"`)
		}
		if tok = p.next(); tok.Kind == jparse.BracketClose {
			p.fail(jparse.TrailingComma, sep.Pos, "trailing comma before %q", "]")
		}
	}
}

// next returns the next token from the lexer, or aborts the parse.
func (p *Parser) next() jparse.Token {
	tok, err := p.lex.Next()
	if err != nil {
		panic(err)
	}
	return tok
}

func (p *Parser) enter(open jparse.Token) {
	p.depth++
	if p.depth > p.maxDepth {
		p.fail(jparse.MaxDepthExceeded, open.Pos, "nesting depth exceeds %d", p.maxDepth)
	}
}

func (p *Parser) leave() { p.depth-- }

// unexpected aborts the parse because tok is not what the grammar allows.
// The label describes what was wanted instead.
func (p *Parser) unexpected(tok jparse.Token, label string) {
	if tok.Kind == jparse.EndOfInput {
		p.fail(jparse.UnexpectedEOF, tok.Pos, "unexpected end of input, want %s", label)
	}
	p.fail(jparse.UnexpectedToken, tok.Pos, "unexpected %v, want %s", tok, label)
}

func (p *Parser) fail(kind jparse.ErrorKind, pos jparse.Position, msg string, args ...any) {
	panic(jparse.Errorf(kind, pos, msg, args...))
}
