// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"strings"
	"testing"

	"github.com/creachadair/jparse/ast"
	"github.com/google/go-cmp/cmp"
)

func TestFormat(t *testing.T) {
	const input = `{"a": [1, 2], "b": {}, "c": [{"x": null}], "d": "e\n"}`
	v, err := ast.Parse(input)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	tests := []struct {
		name string
		f    ast.Formatter
		want string
	}{
		{"Default", ast.Formatter{}, `{
  "a": [1, 2],
  "b": {},
  "c": [
    {
      "x": null
    }
  ],
  "d": "e\n"
}
`},
		{"Tabs", ast.Formatter{Indent: "\t"}, "{\n" +
			"\t\"a\": [1, 2],\n" +
			"\t\"b\": {},\n" +
			"\t\"c\": [\n" +
			"\t\t{\n" +
			"\t\t\t\"x\": null\n" +
			"\t\t}\n" +
			"\t],\n" +
			"\t\"d\": \"e\\n\"\n" +
			"}\n"},
		{"Compact", ast.Formatter{Compact: true},
			`{"a":[1,2],"b":{},"c":[{"x":null}],"d":"e\n"}` + "\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var sb strings.Builder
			if err := tc.f.Format(&sb, v); err != nil {
				t.Fatalf("Format: unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, sb.String()); diff != "" {
				t.Errorf("Format (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestFormatScalars(t *testing.T) {
	tests := []struct {
		input ast.Value
		want  string
	}{
		{ast.Null{}, "null\n"},
		{ast.Bool(true), "true\n"},
		{ast.Number(-1.5), "-1.5\n"},
		{ast.String("hi"), "\"hi\"\n"},
		{ast.Array{}, "[]\n"},
		{ast.Object{}, "{}\n"},
	}
	for _, test := range tests {
		if got := ast.FormatToString(test.input); got != test.want {
			t.Errorf("Format %v: got %q, want %q", test.input, got, test.want)
		}
	}
}

func TestFormatLongArray(t *testing.T) {
	var arr ast.Array
	for range 20 {
		arr = append(arr, ast.Number(1000))
	}
	got := ast.FormatToString(arr)
	if n := strings.Count(got, "\n"); n != len(arr)+2 {
		t.Errorf("Format: got %d lines, want %d:\n%s", n, len(arr)+2, got)
	}

	// The output must parse back to the same value.
	v, err := ast.Parse(got)
	if err != nil {
		t.Fatalf("Parse formatted output: %v", err)
	}
	if diff := cmp.Diff(arr, v); diff != "" {
		t.Errorf("Round trip (-want, +got):\n%s", diff)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	for _, input := range roundTripInputs {
		v, err := ast.Parse(input)
		if err != nil {
			t.Fatalf("Parse(%#q): %v", input, err)
		}
		for _, f := range []ast.Formatter{{}, {Compact: true}, {Indent: "\t"}} {
			var sb strings.Builder
			if err := f.Format(&sb, v); err != nil {
				t.Fatalf("Format: %v", err)
			}
			w, err := ast.Parse(sb.String())
			if err != nil {
				t.Errorf("Parse %+v output %#q: %v", f, sb.String(), err)
				continue
			}
			if diff := cmp.Diff(v, w); diff != "" {
				t.Errorf("Format %+v round trip of %#q (-want, +got):\n%s", f, input, diff)
			}
		}
	}
}
