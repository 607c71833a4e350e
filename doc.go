// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jparse implements the lexical layer of a strict JSON parser.
//
// # Cursors
//
// A Cursor reads the characters of an in-memory input and tracks the location
// of the next unconsumed character. Locations are reported as a Position,
// which gives the byte offset, the 1-based line number, and the 0-based column
// counted in characters:
//
//	c := jparse.NewCursor(mem.S(input))
//	for {
//	   ch, ok := c.Advance()
//	   if !ok {
//	      break // end of input
//	   }
//	   log.Printf("Read %q, now at %v", ch, c.Position())
//	}
//
// # Lexing
//
// A Lexer classifies the input into Tokens. Each call to Next returns the next
// token, skipping insignificant whitespace. Tokens are fully resolved: the
// Text of a String token has its escapes decoded, and the Num of a Number
// token holds its value as a float64.
//
//	lex := jparse.NewLexer(mem.S(input))
//	for {
//	   tok, err := lex.Next()
//	   if err != nil {
//	      log.Fatalf("Lexing failed: %v", err)
//	   } else if tok.Kind == jparse.EndOfInput {
//	      break
//	   }
//	   log.Printf("Token %v at %v", tok, tok.Pos)
//	}
//
// At the end of the input Next returns an EndOfInput token, and continues to
// do so on subsequent calls.
//
// # Errors
//
// Errors from the lexer and from the parser in package ast have concrete type
// *Error, which reports the ErrorKind and the Position where the offending
// token begins. Errors are grouped into two families, which can be matched
// with errors.Is:
//
//	if errors.Is(err, jparse.ErrLex) {
//	   // malformed token: bad escape, invalid number, etc.
//	} else if errors.Is(err, jparse.ErrParse) {
//	   // malformed structure: trailing comma, missing colon, etc.
//	}
//
// To parse a complete JSON value, see package ast.
package jparse
