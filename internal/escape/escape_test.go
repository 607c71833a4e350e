// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape_test

import (
	"testing"

	"github.com/creachadair/jparse/internal/escape"
	"go4.org/mem"
)

func TestAppendQuote(t *testing.T) {
	tests := []struct {
		prefix, input, want string
	}{
		{"", "", `""`},
		{"x=", "abc", `x="abc"`},
		{"", "\b\f\n\r\t", `"\b\f\n\r\t"`},
		{"", "\x00\x1f", `"\u0000\u001f"`},
		{"", `a\b"c`, `"a\\b\"c"`},
		{"", "\u2028\u2029", `"\u2028\u2029"`},
		{"", "\xc3(", `"\ufffd("`},
		{"", "\U0001f600 ok", "\"\U0001f600 ok\""},
	}
	for _, test := range tests {
		got := string(escape.AppendQuote([]byte(test.prefix), mem.S(test.input)))
		if got != test.want {
			t.Errorf("AppendQuote(%q, %q): got %#q, want %#q", test.prefix, test.input, got, test.want)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input, want string
		fail        bool
	}{
		{``, ``, false},
		{`no escapes`, `no escapes`, false},
		{`\"\\\/\b\f\n\r\t`, "\"\\/\b\f\n\r\t", false},
		{`é日`, "é日", false},
		{`😀`, "\U0001f600", false},
		{`\ud83d\ude00`, "\U0001f600", false},
		{`\ude00\ud83d`, "\ufffd\ufffd", false},
		{`\q`, "\ufffd", false},
		{`trailing\`, ``, true},
		{`\u12`, ``, true},
	}
	for _, test := range tests {
		got, err := escape.Unquote(mem.S(test.input))
		if test.fail {
			if err == nil {
				t.Errorf("Unquote(%#q): got %q, want error", test.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Unquote(%#q): unexpected error: %v", test.input, err)
		} else if string(got) != test.want {
			t.Errorf("Unquote(%#q): got %q, want %q", test.input, got, test.want)
		}
	}
}
