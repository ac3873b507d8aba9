package clean

import (
	"strings"

	"nathanbeddoewebdev/sapmon/internal/table"
)

// Text sanitizes a free-text cell. Runs of characters outside printable
// ASCII (whitespace excepted) collapse to a single space. Empty, missing,
// and "nan" values (any case) become def, so the result is never empty as long as def
// is not.
func Text(v table.Value, def string) string {
	s := sanitize(stringify(v))
	if s == "" || strings.EqualFold(s, "nan") {
		return def
	}
	return s
}

// TextColumn applies Text to every cell.
func TextColumn(col []table.Value, def string) []table.Value {
	return mapColumn(col, func(v table.Value) table.Value {
		return table.String(Text(v, def))
	})
}

func sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inRun := false
	for _, r := range s {
		if (r >= 0x20 && r <= 0x7E) || isASCIISpace(r) {
			b.WriteRune(r)
			inRun = false
			continue
		}
		if !inRun {
			b.WriteByte(' ')
			inRun = true
		}
	}
	return strings.TrimSpace(b.String())
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
