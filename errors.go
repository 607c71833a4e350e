// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jparse

import "fmt"

// ErrorKind classifies the errors reported by the lexer and the parser.
type ErrorKind byte

// Constants defining the valid ErrorKind values.
const (
	UnknownError ErrorKind = iota

	// Lexical errors.
	InvalidEscape       // invalid escape sequence in a string
	UnterminatedString  // input ended before the closing quote
	InvalidNumber       // malformed number
	UnknownLiteral      // a word other than true, false, or null
	UnexpectedCharacter // a character that cannot start a token
	InvalidStringChar   // unescaped control character or invalid UTF-8 in a string

	// Structural errors.
	UnexpectedToken  // a token not permitted by the grammar
	UnexpectedEOF    // input ended before the value was complete
	ExpectedColon    // an object key not followed by a colon
	TrailingComma    // a comma before a closing bracket or brace
	TrailingContent  // non-whitespace input after the top-level value
	MaxDepthExceeded // nesting deeper than the parser permits

	// Do not modify the order of these constants without updating the
	// family check in IsLex.
)

var kindStr = [...]string{
	UnknownError:        "unknown error",
	InvalidEscape:       "invalid escape",
	UnterminatedString:  "unterminated string",
	InvalidNumber:       "invalid number",
	UnknownLiteral:      "unknown literal",
	UnexpectedCharacter: "unexpected character",
	InvalidStringChar:   "invalid string character",
	UnexpectedToken:     "unexpected token",
	UnexpectedEOF:       "unexpected end of input",
	ExpectedColon:       "expected colon",
	TrailingComma:       "trailing comma",
	TrailingContent:     "trailing content",
	MaxDepthExceeded:    "maximum depth exceeded",
}

func (k ErrorKind) String() string {
	v := int(k)
	if v >= len(kindStr) {
		return kindStr[UnknownError]
	}
	return kindStr[v]
}

// IsLex reports whether k is a lexical (token-level) error kind.
func (k ErrorKind) IsLex() bool { return k >= InvalidEscape && k <= InvalidStringChar }

// IsParse reports whether k is a structural (grammar-level) error kind.
func (k ErrorKind) IsParse() bool { return k >= UnexpectedToken && k <= MaxDepthExceeded }

// ErrLex and ErrParse match errors of the corresponding family according to
// errors.Is. For example:
//
//	if errors.Is(err, jparse.ErrLex) {
//	   log.Print("Malformed token")
//	}
var (
	ErrLex   = familyError("lexical error")
	ErrParse = familyError("syntax error")
)

type familyError string

func (e familyError) Error() string { return string(e) }

// Error is the concrete type of errors reported by the lexer and parser.
type Error struct {
	Kind    ErrorKind
	Pos     Position // the start of the offending token
	Message string

	err error
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("at %s (offset %d): %s", e.Pos, e.Pos.Offset, e.Message)
}

// Unwrap supports error wrapping.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the family sentinel matching e.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrLex:
		return e.Kind.IsLex()
	case ErrParse:
		return e.Kind.IsParse()
	}
	return false
}

// Errorf constructs an *Error of the given kind at pos, with a message
// formatted from msg and args. If args contains an error wrapped by %w, the
// result unwraps to it.
func Errorf(kind ErrorKind, pos Position, msg string, args ...any) *Error {
	err := fmt.Errorf(msg, args...)
	return &Error{Kind: kind, Pos: pos, Message: err.Error(), err: unwrapOne(err)}
}

func unwrapOne(err error) error {
	if u, ok := err.(interface{ Unwrap() error }); ok {
		return u.Unwrap()
	}
	return nil
}
