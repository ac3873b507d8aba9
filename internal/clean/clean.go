// Package clean provides the stateless column transforms used by the
// per-source cleaning rules. Every transform is total: it returns a usable
// value for any input and never reports an error.
package clean

import (
	"strings"

	"nathanbeddoewebdev/sapmon/internal/table"
)

// stringify renders a raw cell the way a spreadsheet export would, trimmed.
// Missing cells become "nan", matching what exporters write for blanks, so
// every cleaner treats them the same way as the literal.
func stringify(v table.Value) string {
	if v.IsNull() {
		return "nan"
	}
	return strings.TrimSpace(v.Text())
}

// mapColumn applies fn to every cell and returns a new slice.
func mapColumn(col []table.Value, fn func(table.Value) table.Value) []table.Value {
	out := make([]table.Value, len(col))
	for i, v := range col {
		out[i] = fn(v)
	}
	return out
}
