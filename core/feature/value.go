// Package feature defines the per-observation data unit that flows through a
// pipeline: a Record mapping feature names to values of a closed variant type.
//
// Records are plain Go maps so that iteration order is irrelevant, matching
// the one-observation-at-a-time processing model. Values are immutable; a
// stage that augments a record works on a clone rather than sharing entries.
package feature

import (
	"fmt"
	"strconv"
	"time"
)

// Kind discriminates the variant held by a Value.
type Kind int

const (
	// KindNumeric is a float64 feature value.
	KindNumeric Kind = iota
	// KindString is a categorical feature value.
	KindString
	// KindBool is a binary feature value.
	KindBool
	// KindTime is a temporal feature value.
	KindTime
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	default:
		return "unknown"
	}
}

// Value is a tagged variant holding one feature value. The zero Value is the
// numeric 0.
type Value struct {
	kind Kind
	num  float64
	str  string
	b    bool
	t    time.Time
}

// Num creates a numeric value.
func Num(v float64) Value {
	return Value{kind: KindNumeric, num: v}
}

// Str creates a categorical value.
func Str(s string) Value {
	return Value{kind: KindString, str: s}
}

// Bool creates a binary value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Time creates a temporal value.
func Time(t time.Time) Value {
	return Value{kind: KindTime, t: t}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind {
	return v.kind
}

// Float returns the numeric value and whether the variant is numeric.
// Binary values convert to 0/1 so indicator features work out of the box.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumeric:
		return v.num, true
	case KindBool:
		if v.b {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// Text returns the categorical value and whether the variant is a string.
func (v Value) Text() (string, bool) {
	return v.str, v.kind == KindString
}

// Moment returns the temporal value and whether the variant is a time.
func (v Value) Moment() (time.Time, bool) {
	return v.t, v.kind == KindTime
}

// Truth returns the binary value and whether the variant is a bool.
func (v Value) Truth() (bool, bool) {
	return v.b, v.kind == KindBool
}

// Equal reports whether two values hold the same variant and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNumeric:
		return v.num == other.num
	case KindString:
		return v.str == other.str
	case KindBool:
		return v.b == other.b
	case KindTime:
		return v.t.Equal(other.t)
	default:
		return false
	}
}

// String renders the value for display and for group-key construction.
// Numerics use the shortest representation that round-trips.
func (v Value) String() string {
	switch v.kind {
	case KindNumeric:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindString:
		return v.str
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindTime:
		return v.t.Format(time.RFC3339)
	default:
		return fmt.Sprintf("unknown(%d)", v.kind)
	}
}
