// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jparse

import (
	"bytes"
	"errors"
	"strconv"

	"github.com/creachadair/jparse/internal/escape"

	"go4.org/mem"
)

// A Lexer reads lexical tokens from an input text. Each call to Next
// returns the next token, or reports an error.
type Lexer struct {
	cur *Cursor
	buf bytes.Buffer // text of the current token
	pos Position     // start of the current token
	esc bool         // the current string token contains escapes
}

// NewLexer constructs a new lexer that consumes input from src.
func NewLexer(src mem.RO) *Lexer { return &Lexer{cur: NewCursor(src)} }

// Position reports the location of the next unconsumed input character.
func (lx *Lexer) Position() Position { return lx.cur.Position() }

// AtEnd discards whitespace and reports whether the input is exhausted.
// The position returned is the location of the next character.
func (lx *Lexer) AtEnd() (Position, bool) {
	lx.skipSpace()
	return lx.cur.Position(), lx.cur.AtEOF()
}

// Next returns the next token of the input, or reports an error.  At the end
// of the input Next returns a token of kind EndOfInput, and will continue to
// do so on subsequent calls. Errors have concrete type *Error.
func (lx *Lexer) Next() (Token, error) {
	lx.skipSpace()
	lx.buf.Reset()
	lx.esc = false
	lx.pos = lx.cur.Position()

	ch, ok := lx.cur.Peek()
	if !ok {
		return lx.token(EndOfInput), nil
	}

	// Handle punctuation.
	if k, ok := selfDelim(ch); ok {
		lx.cur.Advance()
		lx.buf.WriteRune(ch)
		return lx.token(k), nil
	}

	// Handle numbers.
	if isNumStart(ch) {
		return lx.scanNumber()
	}

	// Handle string values.
	if ch == '"' {
		return lx.scanString()
	}

	// Handle constants: true, false, null
	switch ch {
	case 't':
		return lx.scanName("true", Boolean)
	case 'f':
		return lx.scanName("false", Boolean)
	case 'n':
		return lx.scanName("null", Null)
	}
	if lx.cur.invalid() {
		return Token{}, lx.failf(UnexpectedCharacter, "invalid UTF-8 byte")
	}
	return Token{}, lx.failf(UnexpectedCharacter, "unexpected %q", ch)
}

func (lx *Lexer) skipSpace() {
	for {
		ch, ok := lx.cur.Peek()
		if !ok || !isSpace(ch) {
			return
		}
		lx.cur.Advance()
	}
}

// token constructs a token of kind k spanning from the start of the current
// token to the current cursor position.
func (lx *Lexer) token(k Kind) Token {
	return Token{Kind: k, Pos: lx.pos, End: lx.cur.Position().Offset, Text: lx.buf.String()}
}

func (lx *Lexer) scanString() (Token, error) {
	lx.cur.Advance() // the opening quote
	for {
		at := lx.cur.Position()
		if lx.cur.invalid() {
			return Token{}, lx.failf(InvalidStringChar, "invalid UTF-8 byte at offset %d", at.Offset)
		}
		ch, ok := lx.cur.Advance()
		if !ok {
			return Token{}, lx.failf(UnterminatedString, "unterminated string")
		} else if ch == '"' {
			break
		} else if ch < ' ' {
			return Token{}, lx.failf(InvalidStringChar, "unescaped control %q at offset %d", ch, at.Offset)
		}
		lx.buf.WriteRune(ch)
		if ch != '\\' {
			continue
		}

		// We are awaiting the completion of a \-escape.
		lx.esc = true
		ch, ok = lx.cur.Advance()
		if !ok {
			return Token{}, lx.failf(UnterminatedString, "unterminated string")
		}
		switch ch {
		case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
			lx.buf.WriteRune(ch)
		case 'u':
			lx.buf.WriteRune(ch)
			if err := lx.readHex4(); err != nil {
				return Token{}, err
			}
		default:
			return Token{}, lx.failf(InvalidEscape, "invalid %q after escape at offset %d", ch, at.Offset)
		}
	}

	tok := lx.token(String)
	if lx.esc {
		dec, err := escape.Unquote(mem.B(lx.buf.Bytes()))
		if err != nil {
			return Token{}, lx.failf(InvalidEscape, "%w", err)
		}
		tok.Text = string(dec)
	}
	return tok, nil
}

// readHex4 reads exactly 4 hexadecimal digits from the input.
func (lx *Lexer) readHex4() error {
	for range 4 {
		at := lx.cur.Position()
		ch, ok := lx.cur.Advance()
		if !ok {
			return lx.failf(UnterminatedString, "unterminated string")
		} else if !isHexDigit(ch) {
			return lx.failf(InvalidEscape, "invalid Unicode escape: not a hex digit %q at offset %d", ch, at.Offset)
		}
		lx.buf.WriteRune(ch)
	}
	return nil
}

func (lx *Lexer) scanNumber() (Token, error) {
	if ch, _ := lx.cur.Peek(); ch == '-' {
		lx.cur.Advance()
		lx.buf.WriteRune(ch)
	}

	// The integer part is either a single zero or a nonzero digit followed by
	// any number of digits.
	ch, ok := lx.cur.Peek()
	switch {
	case !ok || !isDigit(ch):
		return Token{}, lx.failf(InvalidNumber, "invalid number: %s", lx.wanted("digit"))
	case ch == '0':
		lx.cur.Advance()
		lx.buf.WriteRune(ch)
		if next, _ := lx.cur.Peek(); isDigit(next) {
			return Token{}, lx.failf(InvalidNumber, "invalid number: extra leading zeroes")
		}
	default:
		lx.readDigits()
	}

	// If a decimal point follows, consume a fractional part.
	if ch, _ := lx.cur.Peek(); ch == '.' {
		lx.cur.Advance()
		lx.buf.WriteRune(ch)
		if lx.readDigits() == 0 {
			return Token{}, lx.failf(InvalidNumber, "invalid number: no digits after decimal point")
		}
	}

	// If an exponent follows, consume it.
	if ch, _ := lx.cur.Peek(); ch == 'e' || ch == 'E' {
		lx.cur.Advance()
		lx.buf.WriteRune(ch)
		if sign, _ := lx.cur.Peek(); sign == '+' || sign == '-' {
			lx.cur.Advance()
			lx.buf.WriteRune(sign)
		}
		if lx.readDigits() == 0 {
			return Token{}, lx.failf(InvalidNumber, "invalid number: missing exponent digits")
		}
	}

	tok := lx.token(Number)
	v, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Token{}, lx.failf(InvalidNumber, "invalid number: %w", err)
	}
	tok.Num = v // on overflow, ParseFloat saturates to an infinity
	return tok, nil
}

// readDigits consumes decimal digits from the input, and reports the number
// of digits consumed.
func (lx *Lexer) readDigits() int {
	var nr int
	for {
		ch, ok := lx.cur.Peek()
		if !ok || !isDigit(ch) {
			return nr
		}
		lx.cur.Advance()
		lx.buf.WriteRune(ch)
		nr++
	}
}

// scanName consumes a run of lowercase letters and checks that they spell
// want exactly.
func (lx *Lexer) scanName(want string, kind Kind) (Token, error) {
	for {
		ch, ok := lx.cur.Peek()
		if !ok || !isNameRune(ch) {
			break
		}
		lx.cur.Advance()
		lx.buf.WriteRune(ch)
	}
	got := mem.B(lx.buf.Bytes())
	if !got.Equal(mem.S(want)) {
		i := 0
		for i < got.Len() && i < len(want) && got.At(i) == want[i] {
			i++
		}
		var what string
		if i < got.Len() {
			what = strconv.QuoteRune(rune(got.At(i)))
		} else {
			ch, ok := lx.cur.Peek()
			if !ok {
				what = "end of input"
			} else {
				what = strconv.QuoteRune(ch)
			}
		}
		return Token{}, lx.failf(UnknownLiteral, "unknown constant %q: unexpected %s at offset %d, want %q",
			got.StringCopy(), what, lx.pos.Offset+i, want)
	}
	tok := lx.token(kind)
	tok.Bool = want == "true"
	return tok, nil
}

// wanted describes the next input character for a diagnostic that expected
// label there.
func (lx *Lexer) wanted(label string) string {
	if ch, ok := lx.cur.Peek(); ok {
		return "got " + strconv.QuoteRune(ch) + ", want " + label
	}
	return "want " + label + ", got end of input"
}

func (lx *Lexer) failf(kind ErrorKind, msg string, args ...any) error {
	return Errorf(kind, lx.pos, msg, args...)
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNumStart(ch rune) bool { return ch == '-' || isDigit(ch) }
func isDigit(ch rune) bool    { return '0' <= ch && ch <= '9' }
func isNameRune(ch rune) bool { return ch >= 'a' && ch <= 'z' }

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
