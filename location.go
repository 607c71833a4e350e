// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jparse

import "fmt"

// A Position describes a single location in source text.
type Position struct {
	Offset int // byte offset, 0-based
	Line   int // line number, 1-based
	Column int // character offset in line, 0-based
}

// String renders p as "line:column".
func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

// A Span describes a contiguous span of a source input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

// Len reports the length of s in bytes.
func (s Span) Len() int { return s.End - s.Pos }
