// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jparse

import (
	"unicode/utf8"

	"go4.org/mem"
)

// A Cursor reads characters from an in-memory input and tracks the location
// of the next unconsumed character.
type Cursor struct {
	src  mem.RO
	pos  int // byte offset of the next character
	line int // 1-based
	col  int // characters consumed on the current line
}

// NewCursor constructs a cursor positioned at the start of src.
func NewCursor(src mem.RO) *Cursor { return &Cursor{src: src, line: 1} }

// Peek returns the next character of the input without consuming it.
// It reports false if the input is exhausted.
//
// An invalid UTF-8 byte is reported as utf8.RuneError.
func (c *Cursor) Peek() (rune, bool) {
	r, n := c.peekRune()
	return r, n > 0
}

// Advance consumes and returns the next character of the input.
// It reports false if the input is exhausted.
func (c *Cursor) Advance() (rune, bool) {
	r, n := c.peekRune()
	if n == 0 {
		return 0, false
	}
	c.pos += n
	if r == '\n' {
		c.line++
		c.col = 0
	} else {
		c.col++
	}
	return r, true
}

// Position reports the location of the next unconsumed character.
func (c *Cursor) Position() Position {
	return Position{Offset: c.pos, Line: c.line, Column: c.col}
}

// AtEOF reports whether the input is exhausted.
func (c *Cursor) AtEOF() bool { return c.pos >= c.src.Len() }

// peekRune decodes the next rune and its width in bytes. The width is 0 at
// the end of input. A width of 1 with utf8.RuneError marks an invalid byte.
func (c *Cursor) peekRune() (rune, int) {
	if c.AtEOF() {
		return 0, 0
	}
	if b := c.src.At(c.pos); b < utf8.RuneSelf {
		return rune(b), 1
	}
	return mem.DecodeRune(c.src.SliceFrom(c.pos))
}

// invalid reports whether the next character is an invalid UTF-8 encoding.
func (c *Cursor) invalid() bool {
	r, n := c.peekRune()
	return r == utf8.RuneError && n == 1
}
