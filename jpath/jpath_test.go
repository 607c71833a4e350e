package jpath_test

import (
	"errors"
	"testing"

	"github.com/creachadair/jparse/ast"
	"github.com/creachadair/jparse/ast/cursor"
	"github.com/creachadair/jparse/jpath"
	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  jpath.Expr
		canon string
	}{
		{"$", jpath.Expr{}, "$"},
		{"$.store.book", jpath.Expr{
			{Op: jpath.Member, Key: "store"},
			{Op: jpath.Member, Key: "book"},
		}, "$.store.book"},
		{"$.list[-1].x", jpath.Expr{
			{Op: jpath.Member, Key: "list"},
			{Op: jpath.Index, Index: -1},
			{Op: jpath.Member, Key: "x"},
		}, "$.list[-1].x"},
		{"$[0][12]", jpath.Expr{
			{Op: jpath.Index, Index: 0},
			{Op: jpath.Index, Index: 12},
		}, "$[0][12]"},
		{"$['apple sauce'].pearPlum", jpath.Expr{
			{Op: jpath.Member, Key: "apple sauce"},
			{Op: jpath.Member, Key: "pearPlum"},
		}, "$['apple sauce'].pearPlum"},
		{"$['plain'][a]", jpath.Expr{
			{Op: jpath.Member, Key: "plain"},
			{Op: jpath.Member, Key: "a"},
		}, "$.plain.a"},
		{`$['it\'s']['back\\slash']['']`, jpath.Expr{
			{Op: jpath.Member, Key: "it's"},
			{Op: jpath.Member, Key: `back\slash`},
			{Op: jpath.Member, Key: ""},
		}, `$['it\'s']['back\\slash']['']`},
		{"$.0", jpath.Expr{{Op: jpath.Member, Key: "0"}}, "$.0"},
	}
	for _, tc := range tests {
		e, err := jpath.Parse(tc.input)
		if err != nil {
			t.Errorf("Parse %q: unexpected error: %v", tc.input, err)
			continue
		}
		if diff := cmp.Diff(tc.want, e); diff != "" {
			t.Errorf("Parse %q (-want, +got):\n%s", tc.input, diff)
		}
		if got := e.String(); got != tc.canon {
			t.Errorf("Parse %q: got string %q, want %q", tc.input, got, tc.canon)
		}

		// The canonical string parses to the same expression.
		if e2, err := jpath.Parse(e.String()); err != nil {
			t.Errorf("Parse %q: %v", e.String(), err)
		} else if diff := cmp.Diff(e, e2); diff != "" {
			t.Errorf("Reparse %q (-want, +got):\n%s", e.String(), diff)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input  string
		offset int
		msg    string
	}{
		{"", 0, "missing root marker"},
		{"store.book", 0, "missing root marker"},
		{"$store", 1, `invalid path step at 's'`},
		{"$.", 2, "invalid member name"},
		{"$.a.-b", 4, "invalid member name"},
		{"$..author", 1, "recursive descent is not supported"},
		{"$.store.*", 8, "wildcards are not supported"},
		{"$.book[*]", 7, "wildcards are not supported"},
		{"$.book[1:3]", 8, "slices and unions are not supported"},
		{"$.book[0,1]", 8, "slices and unions are not supported"},
		{"$.book[:2]", 7, "slices and unions are not supported"},
		{"$.book[?(@.isbn)]", 7, "filters are not supported"},
		{"$.book[(@.length-1)]", 7, "scripts are not supported"},
		{"$.book[1", 8, "missing close bracket"},
		{"$['open", 7, "unterminated quoted name"},
		{`$['bad\n']`, 6, "invalid escape in quoted name"},
		{"$[]", 2, "invalid subscript"},
		{"$[99999999999999999999]", 2, "index 99999999999999999999 out of range"},
	}
	for _, tc := range tests {
		e, err := jpath.Parse(tc.input)
		var serr *jpath.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Parse %q: got %v, %v; want *SyntaxError", tc.input, e, err)
			continue
		}
		if serr.Offset != tc.offset || serr.Message != tc.msg {
			t.Errorf("Parse %q: got offset %d %q, want offset %d %q",
				tc.input, serr.Offset, serr.Message, tc.offset, tc.msg)
		}
	}
}

func TestPath(t *testing.T) {
	v, err := ast.Parse(`{"list": [{"x": 1}, {"x": 2, "y z": [true, null]}]}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tests := []struct {
		expr string
		want ast.Value
	}{
		{"$", v},
		{"$.list[0].x", ast.Number(1)},
		{"$.list[-1].x", ast.Number(2)},
		{"$.list[1]['y z'][0]", ast.Bool(true)},
		{"$[0][-1]", ast.Object{ast.Field("x", 2), ast.Field("y z", ast.Array{ast.Bool(true), ast.Null{}})}},
	}
	for _, tc := range tests {
		e, err := jpath.Parse(tc.expr)
		if err != nil {
			t.Fatalf("Parse %q: %v", tc.expr, err)
		}
		c := cursor.New(v).Down(e.Path()...)
		if err := c.Err(); err != nil {
			t.Errorf("Down %q: unexpected error: %v", tc.expr, err)
			continue
		}
		if diff := cmp.Diff(tc.want, c.Value()); diff != "" {
			t.Errorf("Down %q (-want, +got):\n%s", tc.expr, diff)
		}
		if got, want := c.Location(), e.String(); got != want {
			t.Errorf("Location: got %q, want %q", got, want)
		}
	}
}
