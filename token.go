// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jparse

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the type of a lexical token in the JSON grammar.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid      Kind = iota // invalid token
	BraceOpen                // left brace "{"
	BraceClose               // right brace "}"
	BracketOpen              // left square bracket "["
	BracketClose             // right square bracket "]"
	Colon                    // colon ":"
	Comma                    // comma ","
	String                   // quoted string
	Number                   // number
	Boolean                  // constant: true or false
	Null                     // constant: null
	EndOfInput               // end of input

	// Do not modify the order of these constants without updating the
	// self-delimiting token check below.
)

var kindName = [...]string{
	Invalid:      "invalid token",
	BraceOpen:    `"{"`,
	BraceClose:   `"}"`,
	BracketOpen:  `"["`,
	BracketClose: `"]"`,
	Colon:        `":"`,
	Comma:        `","`,
	String:       "string",
	Number:       "number",
	Boolean:      "boolean",
	Null:         "null",
	EndOfInput:   "end of input",
}

func (k Kind) String() string {
	v := int(k)
	if v >= len(kindName) {
		return kindName[Invalid]
	}
	return kindName[v]
}

// A Token is a single classified lexical unit. Tokens are fully resolved:
// string escapes are decoded and numbers are converted.
type Token struct {
	Kind Kind
	Pos  Position // where the token starts
	End  int      // byte offset just past the end of the token

	// Text is the decoded text of a String token, and the source text of
	// every other kind except EndOfInput.
	Text string

	Num  float64 // the value of a Number token
	Bool bool    // the value of a Boolean token
}

// Span returns the location span of t.
func (t Token) Span() Span { return Span{Pos: t.Pos.Offset, End: t.End} }

// String renders a human-readable description of t for use in diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case String:
		return "string " + strconv.Quote(t.Text)
	case Number, Boolean, Null:
		return fmt.Sprintf("%v %s", t.Kind, t.Text)
	}
	return t.Kind.String()
}

var self = [...]Kind{BraceOpen, BraceClose, BracketOpen, BracketClose, Colon, Comma}

// selfDelim reports the kind of the self-delimiting token that begins with ch.
func selfDelim(ch rune) (Kind, bool) {
	i := strings.IndexRune("{}[]:,", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
