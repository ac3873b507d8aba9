// Package normalize canonicalizes raw spreadsheet headers into stable
// column identifiers of the form [A-Za-z0-9_]+.
package normalize

import "strings"

// Header canonicalizes a raw column header:
//
//   - characters outside printable ASCII and standard whitespace are removed
//   - surrounding whitespace is trimmed
//   - each run of characters other than [A-Za-z0-9_] becomes one "_"
//   - runs of "_" collapse to one
//   - leading and trailing "_" are trimmed
//
// The result may be empty for headers with no alphanumeric content. Header
// is idempotent: Header(Header(h)) == Header(h).
func Header(raw string) string {
	var kept strings.Builder
	kept.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if isPrintable(c) || isSpace(c) {
			kept.WriteByte(c)
		}
	}

	trimmed := strings.TrimSpace(kept.String())

	var b strings.Builder
	b.Grow(len(trimmed))
	lastUnderscore := false
	for i := 0; i < len(trimmed); i++ {
		c := trimmed[i]
		if !isWord(c) {
			c = '_'
		}
		if c == '_' {
			if lastUnderscore {
				continue
			}
			lastUnderscore = true
		} else {
			lastUnderscore = false
		}
		b.WriteByte(c)
	}

	return strings.Trim(b.String(), "_")
}

// Headers canonicalizes a header row, keeping positions. Duplicate or empty
// results are returned as-is; table lookups resolve to the first match.
func Headers(raw []string) []string {
	out := make([]string, len(raw))
	for i, h := range raw {
		out[i] = Header(h)
	}
	return out
}

func isPrintable(c byte) bool { return c >= 0x20 && c <= 0x7E }

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isWord(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_'
}
