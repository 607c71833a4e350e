// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// A Formatter carries the settings for pretty-printing values.
// A zero value is ready for use with default settings.
type Formatter struct {
	// Indent is the text used for each level of indentation.
	// If empty, two spaces are used.
	Indent string

	// Compact, if true, renders values without any insignificant whitespace.
	Compact bool
}

func (f Formatter) indent() string {
	if f.Indent == "" {
		return "  "
	}
	return f.Indent
}

// Format renders a pretty-printed representation of v to w with default
// settings.
func Format(w io.Writer, v Value) error {
	var f Formatter
	return f.Format(w, v)
}

// FormatToString renders a pretty-printed representation of v to a string
// with default settings.
func FormatToString(v Value) string {
	var sb strings.Builder
	Format(&sb, v) // writing to a strings.Builder does not fail
	return sb.String()
}

// Format renders a representation of v to w using the settings from f. The
// output is terminated by a newline.
func (f Formatter) Format(w io.Writer, v Value) error {
	bw := bufio.NewWriter(w)
	if f.Compact {
		io.WriteString(bw, v.JSON())
	} else {
		f.formatValue(bw, v, "")
	}
	io.WriteString(bw, "\n")
	return bw.Flush()
}

// formatValue writes a representation of v to w indented by indent.
// The caller is responsible for any indentation before the first line.
func (f Formatter) formatValue(w io.Writer, v Value, indent string) {
	switch t := v.(type) {
	case Array:
		f.formatArray(w, t, indent)
	case Object:
		f.formatObject(w, t, indent)
	case Null, Bool, Number, String:
		io.WriteString(w, t.JSON())
	default:
		panic(fmt.Sprintf("unknown value type %T", v))
	}
}

func (f Formatter) formatArray(w io.Writer, a Array, indent string) {
	if f.isBoring(a) {
		io.WriteString(w, "[")
		for i, v := range a {
			if i > 0 {
				io.WriteString(w, ", ")
			}
			io.WriteString(w, v.JSON())
		}
		io.WriteString(w, "]")
		return
	}

	io.WriteString(w, "[\n")
	adent := indent + f.indent()
	for i, v := range a {
		io.WriteString(w, adent)
		f.formatValue(w, v, adent)
		if i < len(a)-1 {
			io.WriteString(w, ",")
		}
		io.WriteString(w, "\n")
	}
	fmt.Fprint(w, indent, "]")
}

func (f Formatter) formatObject(w io.Writer, o Object, indent string) {
	if len(o) == 0 {
		io.WriteString(w, "{}")
		return
	}

	io.WriteString(w, "{\n")
	mdent := indent + f.indent()
	for i, m := range o {
		fmt.Fprint(w, mdent, String(m.Key).JSON(), ": ")
		f.formatValue(w, m.Value, mdent)
		if i < len(o)-1 {
			io.WriteString(w, ",")
		}
		io.WriteString(w, "\n")
	}
	fmt.Fprint(w, indent, "}")
}

// maxBoringWidth is the widest an array can be and still be rendered on a
// single line.
const maxBoringWidth = 60

// isBoring reports whether a is "boring", meaning it is short and contains no
// nested arrays or objects, so that it can be rendered on a single line.
func (f Formatter) isBoring(a Array) bool {
	width := 0
	for _, v := range a {
		switch v.(type) {
		case Array, Object:
			return false
		}
		width += len(v.JSON()) + 2
		if width > maxBoringWidth {
			return false
		}
	}
	return true
}
