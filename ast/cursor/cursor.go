// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements navigation over a parsed JSON value.
package cursor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/creachadair/jparse/ast"
	"github.com/creachadair/jparse/jpath"
)

var (
	// ErrNotFound is reported (wrapped) when a key or index does not select
	// anything in the current value.
	ErrNotFound = errors.New("not found")

	// ErrKind is reported (wrapped) when a path element cannot be applied to
	// the kind of the current value.
	ErrKind = errors.New("wrong kind")
)

// Path follows path from v as Cursor.Down does, and returns the value it
// reaches as a T.
func Path[T ast.Value](v ast.Value, path ...any) (T, error) {
	var zero T
	c := New(v).Down(path...)
	if err := c.Err(); err != nil {
		return zero, err
	}
	if out, ok := c.Value().(T); ok {
		return out, nil
	}
	return zero, fmt.Errorf("at %s: %w: have %v", c.Location(), ErrKind, c.Value().Kind())
}

// A Cursor marks a location inside an ast.Value. The zero Cursor is not
// usable; construct one with New.
type Cursor struct {
	org   ast.Value
	steps []frame
	err   error
}

// frame records one move of the cursor: the path element applied and the
// value it reached.
type frame struct {
	elt any
	val ast.Value
}

// New returns a Cursor positioned at origin.
func New(origin ast.Value) *Cursor { return &Cursor{org: origin} }

// Origin returns the value c was constructed with.
func (c *Cursor) Origin() ast.Value { return c.org }

// AtOrigin reports whether c is positioned at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.steps) == 0 }

// Value returns the value at the current location.
func (c *Cursor) Value() ast.Value {
	if n := len(c.steps); n > 0 {
		return c.steps[n-1].val
	}
	return c.org
}

// Path returns the values visited from the origin to the current location,
// inclusive of both.
func (c *Cursor) Path() []ast.Value {
	out := make([]ast.Value, 0, len(c.steps)+1)
	out = append(out, c.org)
	for _, f := range c.steps {
		out = append(out, f.val)
	}
	return out
}

// Location renders the path from the origin to the current location as a
// JSONPath expression, for example "$.list[0].x" or "$['a b']". A function
// step is rendered as ".()".
func (c *Cursor) Location() string {
	var sb strings.Builder
	sb.WriteString("$")
	for _, f := range c.steps {
		switch t := f.elt.(type) {
		case string:
			sb.WriteString(jpath.Step{Op: jpath.Member, Key: t}.String())
		case int:
			sb.WriteString(jpath.Step{Op: jpath.Index, Index: t}.String())
		default:
			sb.WriteString(".()")
		}
	}
	return sb.String()
}

// Err returns the error from the last call to Down, or nil.
func (c *Cursor) Err() error { return c.err }

// Up moves c to the parent of the current location. At the origin it has no
// effect. It returns c.
func (c *Cursor) Up() *Cursor {
	if n := len(c.steps); n > 0 {
		c.steps = c.steps[:n-1]
	}
	return c
}

// Reset returns c to its origin and discards any error.
func (c *Cursor) Reset() { c.steps = c.steps[:0]; c.err = nil }

// Down moves c along path starting from the current location, and returns c.
// Each path element is one of:
//
//   - A string, which selects the value of the member with that key in an
//     object.
//   - An int, which selects an element of an array, or the value of the
//     member at that offset in an object. A negative index counts from the
//     end, so -1 is the last element.
//   - A func(ast.Value) (ast.Value, error), whose result becomes the next
//     value.
//
// If an element cannot be applied, c stops at the last value it reached and
// the failure is reported by Err.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil
	for _, elt := range path {
		next, err := lookup(c.Value(), elt)
		if err != nil {
			c.err = fmt.Errorf("at %s: %w", c.Location(), err)
			break
		}
		c.steps = append(c.steps, frame{elt: elt, val: next})
	}
	return c
}

// lookup applies one path element to v.
func lookup(v ast.Value, elt any) (ast.Value, error) {
	switch t := elt.(type) {
	case string:
		obj, ok := v.(ast.Object)
		if !ok {
			return nil, fmt.Errorf("%w: key %q applied to %v", ErrKind, t, v.Kind())
		} else if m := obj.Find(t); m != nil {
			return m.Value, nil
		}
		return nil, fmt.Errorf("key %q %w", t, ErrNotFound)

	case int:
		var n int
		switch e := v.(type) {
		case ast.Array:
			n = len(e)
		case ast.Object:
			n = len(e)
		default:
			return nil, fmt.Errorf("%w: index %d applied to %v", ErrKind, t, v.Kind())
		}
		i := t
		if i < 0 {
			i += n
		}
		if i < 0 || i >= n {
			return nil, fmt.Errorf("index %d %w (length %d)", t, ErrNotFound, n)
		}
		if a, ok := v.(ast.Array); ok {
			return a[i], nil
		}
		return v.(ast.Object)[i].Value, nil

	case func(ast.Value) (ast.Value, error):
		return t(v)

	default:
		return nil, fmt.Errorf("invalid path element of type %T", elt)
	}
}
