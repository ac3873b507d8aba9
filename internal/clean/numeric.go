package clean

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"nathanbeddoewebdev/sapmon/internal/table"
)

// Numeric parses a locale-formatted number. It accepts accounting negatives
// written as "(X)", strips comma and whitespace group separators, and treats
// a lone comma as a decimal separator when it is not followed by exactly
// three digits ("123,4" is 123.4, "1,234" is 1234) or when it follows a
// lone zero ("0,123" is 0.123). Missing, unparseable,
// and non-finite input yields 0.
func Numeric(v table.Value) float64 {
	switch v.Kind() {
	case table.KindNumber, table.KindInt:
		return finite(v.Float())
	case table.KindString:
		return ParseNumber(v.Str())
	default:
		return 0
	}
}

// NumericColumn applies Numeric to every cell.
func NumericColumn(col []table.Value) []table.Value {
	return mapColumn(col, func(v table.Value) table.Value {
		return table.Number(Numeric(v))
	})
}

// ParseNumber is the string form of Numeric.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' {
		s = "-" + s[1:len(s)-1]
	}

	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	if isDecimalComma(s) {
		s = strings.Replace(s, ",", ".", 1)
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}

	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return finite(f)
}

// isDecimalComma reports whether the single comma in s is a decimal mark.
func isDecimalComma(s string) bool {
	if strings.Count(s, ",") != 1 || strings.Contains(s, ".") {
		return false
	}
	whole, frac, _ := strings.Cut(s, ",")
	digits := 0
	for i := 0; i < len(frac); i++ {
		if frac[i] < '0' || frac[i] > '9' {
			break
		}
		digits++
	}
	if digits == 0 {
		return false
	}
	// A group separator never follows a lone zero, so "0,123" is 0.123.
	if strings.TrimLeft(whole, "+-") == "0" {
		return true
	}
	return digits != 3
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
