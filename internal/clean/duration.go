package clean

import (
	"math"
	"strconv"
	"strings"

	"nathanbeddoewebdev/sapmon/internal/table"
)

// Duration converts "MM:SS" or bare seconds to whole seconds, truncating any
// fraction. Only string cells are accepted; anything else, a parse failure,
// or a shape with more than one ":" yields 0.
func Duration(v table.Value) int {
	if v.Kind() != table.KindString {
		return 0
	}
	return ParseDuration(v.Str())
}

// DurationColumn applies Duration to every cell.
func DurationColumn(col []table.Value) []table.Value {
	return mapColumn(col, func(v table.Value) table.Value {
		return table.Int(int64(Duration(v)))
	})
}

// ParseDuration is the string form of Duration.
func ParseDuration(s string) int {
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 2:
		minutes, ok := parseFloat(parts[0])
		if !ok {
			return 0
		}
		seconds, ok := parseFloat(parts[1])
		if !ok {
			return 0
		}
		return truncate(minutes*60 + seconds)
	case 1:
		secs, ok := parseFloat(parts[0])
		if !ok {
			return 0
		}
		return truncate(secs)
	default:
		return 0
	}
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// truncate drops the fraction of f, saturating at the int range. NaN and
// infinities yield 0.
func truncate(f float64) int {
	t := math.Trunc(f)
	switch {
	case math.IsNaN(t) || math.IsInf(t, 0):
		return 0
	case t >= math.MaxInt:
		return math.MaxInt
	case t <= math.MinInt:
		return math.MinInt
	}
	return int(t)
}
