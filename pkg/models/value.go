// Package models contains data structures for scraped college-basketball statistics
package models

import (
	"bytes"
	"math"
	"strconv"

	"github.com/bytedance/sonic"
)

// Kind identifies which variant a Value holds
type Kind uint8

const (
	// KindNull is the zero Kind, so the zero Value is Null
	KindNull Kind = iota
	KindInteger
	KindFloat
	KindText
)

// String returns the lowercase name of the kind
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	default:
		return "null"
	}
}

// Value is a typed scalar taken from a table cell: an integer, a float, a
// string or null. The zero Value is Null.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// Null returns the null Value
func Null() Value { return Value{} }

// Integer wraps an int64
func Integer(i int64) Value { return Value{kind: KindInteger, i: i} }

// Float wraps a float64
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Text wraps a string
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Kind reports which variant v holds
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is Null
func (v Value) IsNull() bool { return v.kind == KindNull }

// Int returns the integer held by v
func (v Value) Int() (int64, bool) {
	return v.i, v.kind == KindInteger
}

// Float returns the float held by v
func (v Value) Float() (float64, bool) {
	return v.f, v.kind == KindFloat
}

// Text returns the string held by v
func (v Value) Text() (string, bool) {
	return v.s, v.kind == KindText
}

// Any unwraps v into int64, float64, string or nil
func (v Value) Any() any {
	switch v.kind {
	case KindInteger:
		return v.i
	case KindFloat:
		return v.f
	case KindText:
		return v.s
	default:
		return nil
	}
}

// Equal reports whether v and o hold the same variant and payload
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInteger:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f || (math.IsNaN(v.f) && math.IsNaN(o.f))
	case KindText:
		return v.s == o.s
	default:
		return true
	}
}

// String formats v the way it is written to CSV: null becomes the empty string
func (v Value) String() string {
	switch v.kind {
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindText:
		return v.s
	default:
		return ""
	}
}

// MarshalJSON encodes v as a JSON number, string or null
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindInteger:
		return strconv.AppendInt(nil, v.i, 10), nil
	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return []byte("null"), nil
		}
		b := strconv.AppendFloat(nil, v.f, 'g', -1, 64)
		// keep integral floats distinct from integers, e.g. 62.0 not 62
		if !bytes.ContainsAny(b, ".e") {
			b = append(b, ".0"...)
		}
		return b, nil
	case KindText:
		return sonic.Marshal(v.s)
	default:
		return []byte("null"), nil
	}
}
