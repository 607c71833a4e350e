// Package diag renders parse errors for humans and maps them to process
// exit codes.
package diag

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/jparse"
	"github.com/creachadair/jparse/jwcc"
	"github.com/fatih/color"
)

// Exit codes reported by the command-line tool.
const (
	ExitOK     = 0 // success
	ExitLex    = 1 // malformed token
	ExitParse  = 2 // malformed structure
	ExitIO     = 3 // error reading input or writing output
	ExitConfig = 4 // invalid flags or configuration
)

// ExitCode returns the exit code for err. A nil error is ExitOK, lexical and
// structural errors map to ExitLex and ExitParse, and any other error is
// treated as an I/O failure.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, jparse.ErrLex):
		return ExitLex
	case errors.Is(err, jparse.ErrParse), errors.Is(err, jwcc.ErrSyntax):
		return ExitParse
	default:
		return ExitIO
	}
}

// A Printer renders diagnostics to a writer.
type Printer struct {
	w                   io.Writer
	bold, err, loc, hot *color.Color
}

// NewPrinter constructs a Printer that writes to w. If useColor is false,
// the output contains no terminal escape sequences.
func NewPrinter(w io.Writer, useColor bool) *Printer {
	p := &Printer{
		w:    w,
		bold: color.New(color.Bold),
		err:  color.New(color.FgRed, color.Bold),
		loc:  color.New(color.FgCyan),
		hot:  color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.bold, p.err, p.loc, p.hot} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Error renders err to the output, attributed to the input called name. If err
// is a *jparse.Error, the line of src containing the error is printed with a
// caret marking the column.
func (p *Printer) Error(name string, src []byte, err error) {
	var perr *jparse.Error
	if !errors.As(err, &perr) {
		p.err.Fprint(p.w, "error")
		fmt.Fprintf(p.w, ": %v\n", err)
		if name != "" {
			p.loc.Fprintf(p.w, "  --> %s\n", name)
		}
		return
	}
	p.err.Fprintf(p.w, "error[%s]", perr.Kind)
	fmt.Fprint(p.w, ": ")
	p.bold.Fprintln(p.w, perr.Message)
	p.loc.Fprintf(p.w, "  --> %s:%d:%d\n", name, perr.Pos.Line, perr.Pos.Column+1)

	line := SourceLine(src, perr.Pos)
	gutter := fmt.Sprintf("%d", perr.Pos.Line)
	pad := strings.Repeat(" ", len(gutter))
	p.loc.Fprintf(p.w, "%s |\n", pad)
	p.loc.Fprintf(p.w, "%s | ", gutter)
	fmt.Fprintln(p.w, line)
	p.loc.Fprintf(p.w, "%s | ", pad)
	p.hot.Fprintln(p.w, caretPad(line, perr.Pos.Column)+"^")
}

// Debugf writes a debug message to the output.
func (p *Printer) Debugf(msg string, args ...any) {
	p.loc.Fprint(p.w, "debug")
	fmt.Fprintf(p.w, ": %s\n", fmt.Sprintf(msg, args...))
}

// SourceLine returns the text of the line of src containing pos, without its
// line terminator.
func SourceLine(src []byte, pos jparse.Position) string {
	off := min(max(pos.Offset, 0), len(src))
	start := strings.LastIndexByte(string(src[:off]), '\n') + 1
	end := strings.IndexByte(string(src[off:]), '\n')
	if end < 0 {
		end = len(src)
	} else {
		end += off
	}
	return strings.TrimSuffix(string(src[start:end]), "\r")
}

// caretPad returns the whitespace that positions a caret under the character
// at column col of line, keeping tabs so the caret lines up.
func caretPad(line string, col int) string {
	var sb strings.Builder
	for i, r := range []rune(line) {
		if i >= col {
			break
		}
		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
