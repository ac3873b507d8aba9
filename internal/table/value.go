// Package table holds the in-memory tabular model shared by the loader,
// the cleaning rules, and every consumer of cleaned data.
//
// A Table is an ordered list of rows over an ordered list of column names.
// Raw tables (straight from a spreadsheet) carry null, string, and number
// cells. Cleaned tables additionally carry time and integer cells.
package table

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind enumerates the cell types a Value can hold.
type Kind uint8

const (
	// KindNull marks a missing cell.
	KindNull Kind = iota
	// KindString is a text cell.
	KindString
	// KindNumber is a floating-point cell.
	KindNumber
	// KindInt is an integer cell (durations in seconds).
	KindInt
	// KindTime is a timestamp or date cell.
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindInt:
		return "int"
	case KindTime:
		return "time"
	default:
		return "unknown"
	}
}

// Value is a single table cell. The zero Value is null.
type Value struct {
	kind Kind
	s    string
	f    float64
	i    int64
	t    time.Time
}

// Null returns a missing cell.
func Null() Value { return Value{} }

// String returns a text cell.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Number returns a floating-point cell.
func Number(f float64) Value { return Value{kind: KindNumber, f: f} }

// Int returns an integer cell.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Time returns a timestamp cell.
func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }

// Kind reports the cell type.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the cell is missing.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the string payload; empty for non-string cells.
func (v Value) Str() string { return v.s }

// Float returns the numeric payload as float64. Integer cells are widened;
// every other kind yields 0.
func (v Value) Float() float64 {
	switch v.kind {
	case KindNumber:
		return v.f
	case KindInt:
		return float64(v.i)
	default:
		return 0
	}
}

// Int64 returns the integer payload; number cells are truncated.
func (v Value) Int64() int64 {
	switch v.kind {
	case KindInt:
		return v.i
	case KindNumber:
		return int64(v.f)
	default:
		return 0
	}
}

// TimeVal returns the timestamp payload; the zero time for other kinds.
func (v Value) TimeVal() time.Time { return v.t }

// Text renders the cell the way a spreadsheet export would stringify it.
// Numbers print without exponent and without a trailing ".0", so a date
// read as the float 20230615 renders as "20230615". Null renders as "".
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindNumber:
		return formatFloat(v.f)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindTime:
		if v.t.Hour() == 0 && v.t.Minute() == 0 && v.t.Second() == 0 {
			return v.t.Format(time.DateOnly)
		}
		return v.t.Format(time.DateTime)
	default:
		return ""
	}
}

// Equal reports whether two cells hold the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.s == o.s
	case KindNumber:
		return v.f == o.f || (math.IsNaN(v.f) && math.IsNaN(o.f))
	case KindInt:
		return v.i == o.i
	case KindTime:
		return v.t.Equal(o.t)
	}
	return false
}

// Blank reports whether the cell counts as missing for retention checks:
// a null cell, a whitespace-only string, or the literal "nan" left behind
// by some exporters.
func (v Value) Blank() bool {
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		s := strings.TrimSpace(v.s)
		return s == "" || strings.EqualFold(s, "nan")
	case KindNumber:
		return math.IsNaN(v.f)
	}
	return false
}

// MarshalJSON renders null as null, numbers as numbers and everything else
// as its Text form.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindNumber:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return []byte("null"), nil
		}
		return []byte(strconv.FormatFloat(v.f, 'f', -1, 64)), nil
	case KindInt:
		return []byte(strconv.FormatInt(v.i, 10)), nil
	case KindTime:
		return []byte(strconv.Quote(v.t.Format(time.RFC3339))), nil
	default:
		return []byte(strconv.Quote(v.s)), nil
	}
}

func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return "nan"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e18 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
