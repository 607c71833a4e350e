// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines a syntax tree for JSON values, and a parser that
// constructs syntax trees from JSON source.
package ast

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/creachadair/jparse/internal/escape"

	"go4.org/mem"
)

// A Value is an arbitrary JSON value. The concrete type of a Value is one of
// Null, Bool, Number, String, Array, or Object.
type Value interface {
	// Kind reports which JSON type the value has.
	Kind() Kind

	// JSON returns the compact JSON encoding of the value.
	JSON() string

	isValue()
}

// Kind identifies the type of a JSON value.
type Kind byte

// Constants defining the valid Kind values.
const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

var kindStr = [...]string{
	NullKind:   "null",
	BoolKind:   "bool",
	NumberKind: "number",
	StringKind: "string",
	ArrayKind:  "array",
	ObjectKind: "object",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return fmt.Sprintf("Kind(%d)", k)
	}
	return kindStr[k]
}

// Null represents the null constant.
type Null struct{}

func (Null) Kind() Kind     { return NullKind }
func (Null) JSON() string   { return "null" }
func (Null) String() string { return "null" }
func (Null) isValue()       {}

// A Bool is a Boolean constant, true or false.
type Bool bool

func (Bool) Kind() Kind { return BoolKind }
func (Bool) isValue()   {}

func (b Bool) JSON() string { return strconv.FormatBool(bool(b)) }

// A Number is a numeric value. Numbers are represented as IEEE 754 double
// precision values; integers larger in magnitude than 2^53 may lose precision
// and values outside the range of a float64 saturate to an infinity.
type Number float64

func (Number) Kind() Kind { return NumberKind }
func (Number) isValue()   {}

// JSON renders n in the shortest form that parses back to the same value.
// Exponent notation is used only for very large or very small magnitudes.
// Infinities are rendered as an out-of-range exponent, which parses back to
// the same infinity. NaN has no JSON encoding and is rendered as null.
func (n Number) JSON() string {
	v := float64(n)
	switch {
	case math.IsNaN(v):
		return "null"
	case math.IsInf(v, 1):
		return "1e999"
	case math.IsInf(v, -1):
		return "-1e999"
	}
	format := byte('f')
	if abs := math.Abs(v); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	buf := strconv.AppendFloat(nil, v, format, -1, 64)
	if format == 'e' {
		// Trim a leading zero from a two-digit exponent: e-07 becomes e-7.
		if n := len(buf); n >= 4 && buf[n-4] == 'e' && buf[n-3] == '-' && buf[n-2] == '0' {
			buf[n-2] = buf[n-1]
			buf = buf[:n-1]
		}
	}
	return string(buf)
}

// IsInt reports whether n is an integer value.
func (n Number) IsInt() bool {
	v := float64(n)
	return !math.IsInf(v, 0) && v == math.Trunc(v)
}

// A String is a string value. The text is stored decoded.
type String string

func (String) Kind() Kind { return StringKind }
func (String) isValue()   {}

func (s String) JSON() string { return string(escape.AppendQuote(nil, mem.S(string(s)))) }

// An Array is an ordered sequence of values.
type Array []Value

func (Array) Kind() Kind { return ArrayKind }
func (Array) isValue()   {}

// Len reports the number of elements in a.
func (a Array) Len() int { return len(a) }

func (a Array) JSON() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, v := range a {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(v.JSON())
	}
	sb.WriteString("]")
	return sb.String()
}

// An Object is an ordered collection of key-value members. Keys are unique in
// an object produced by the parser.
type Object []*Member

func (Object) Kind() Kind { return ObjectKind }
func (Object) isValue()   {}

// Len reports the number of members in o.
func (o Object) Len() int { return len(o) }

// Find returns the member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	for _, m := range o {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// Keys returns the keys of o in order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

// Set sets the value of key in o and returns the updated object. If o already
// has a member with that key, its value is replaced in place; otherwise a new
// member is appended.
func (o Object) Set(key string, v Value) Object {
	if m := o.Find(key); m != nil {
		m.Value = v
		return o
	}
	return append(o, &Member{Key: key, Value: v})
}

func (o Object) JSON() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, m := range o {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(m.JSON())
	}
	sb.WriteString("}")
	return sb.String()
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// JSON returns the encoding of m as it appears in an object.
func (m *Member) JSON() string { return String(m.Key).JSON() + ":" + m.Value.JSON() }

// Field constructs an object member with the given key and value.  The value
// must be a value convertible by ToValue.
func Field(key string, value any) *Member {
	return &Member{Key: key, Value: ToValue(value)}
}

// ToValue converts a Go value into an equivalent Value.  The concrete type of
// v must be one of:
//
//   - nil, which is converted to Null
//   - a bool, a string, or a built-in integer or floating-point type
//   - a Value, which is returned unmodified
//   - a []Value, which becomes an Array
//   - a []*Member, which becomes an Object
//
// Any other type causes ToValue to panic.
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null{}
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return Number(t)
	case int8:
		return Number(t)
	case int16:
		return Number(t)
	case int32:
		return Number(t)
	case int64:
		return Number(t)
	case uint:
		return Number(t)
	case uint8:
		return Number(t)
	case uint16:
		return Number(t)
	case uint32:
		return Number(t)
	case uint64:
		return Number(t)
	case float32:
		return Number(t)
	case float64:
		return Number(t)
	case []Value:
		return Array(t)
	case []*Member:
		return Object(t)
	default:
		panic(fmt.Sprintf("ast: unsupported value type %T", v))
	}
}

// ArrayOf constructs an Array from the given values, each of which must be
// convertible by ToValue.
func ArrayOf[T any](vs ...T) Array {
	out := make(Array, len(vs))
	for i, v := range vs {
		out[i] = ToValue(v)
	}
	return out
}
