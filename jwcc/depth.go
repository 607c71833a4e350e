// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jwcc

import (
	"bytes"
	"unicode/utf8"

	"github.com/creachadair/jparse"
)

// checkDepth scans data for array and object openers nested more than
// maxDepth deep, skipping string literals and comments. It reports a
// MaxDepthExceeded error at the first opener past the limit, or nil.
//
// The scan does not validate the input: unbalanced brackets and unterminated
// strings or comments are left for the standardizer to report.
func checkDepth(data []byte, maxDepth int) error {
	depth := 0
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '"':
			i = skipString(data, i+1)
		case '/':
			if i+1 < len(data) {
				switch data[i+1] {
				case '/':
					if j := bytes.IndexByte(data[i+2:], '\n'); j >= 0 {
						i += 2 + j
					} else {
						i = len(data)
					}
				case '*':
					if j := bytes.Index(data[i+2:], []byte("*/")); j >= 0 {
						i += 2 + j + 1
					} else {
						i = len(data)
					}
				}
			}
		case '[', '{':
			depth++
			if depth > maxDepth {
				return jparse.Errorf(jparse.MaxDepthExceeded, positionOf(data, i),
					"nesting depth exceeds %d", maxDepth)
			}
		case ']', '}':
			if depth > 0 {
				depth--
			}
		}
	}
	return nil
}

// skipString returns the offset of the closing quote of the string whose body
// begins at offset i, or len(data) if the string is unterminated.
func skipString(data []byte, i int) int {
	for i < len(data) {
		switch data[i] {
		case '\\':
			i += 2
			continue
		case '"':
			return i
		}
		i++
	}
	return len(data)
}

// positionOf returns the position of offset off in data, with the column
// counted in characters.
func positionOf(data []byte, off int) jparse.Position {
	start := bytes.LastIndexByte(data[:off], '\n') + 1
	return jparse.Position{
		Offset: off,
		Line:   bytes.Count(data[:start], []byte("\n")) + 1,
		Column: utf8.RuneCount(data[start:off]),
	}
}
