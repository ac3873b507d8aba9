package clean

import (
	"strings"
	"time"

	"nathanbeddoewebdev/sapmon/internal/table"
)

const (
	timestampLayout = "20060102150405"
	dateLayout      = "20060102"
)

// Timestamp combines a YYYYMMDD date cell with an HHMMSS time cell. The time
// is left-padded with zeros to six digits first, so "930" reads as 00:09:30.
// Combinations that do not parse report ok=false.
func Timestamp(date, clock table.Value) (ts time.Time, ok bool) {
	if date.IsNull() || clock.IsNull() {
		return time.Time{}, false
	}
	d := stringify(date)
	c := stringify(clock)
	if len(c) < 6 {
		c = strings.Repeat("0", 6-len(c)) + c
	}
	combined := d + c
	if len(combined) != len(timestampLayout) || !allDigits(combined) {
		return time.Time{}, false
	}
	t, err := time.Parse(timestampLayout, combined)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// TimestampColumn builds one timestamp per row; unparseable rows are null.
func TimestampColumn(dates, clocks []table.Value) []table.Value {
	out := make([]table.Value, len(dates))
	for i := range dates {
		var clock table.Value
		if i < len(clocks) {
			clock = clocks[i]
		}
		if t, ok := Timestamp(dates[i], clock); ok {
			out[i] = table.Time(t)
		}
	}
	return out
}

// Date parses a YYYYMMDD cell. The sentinel marks an intentionally unset
// date and, like any unparseable value, reports ok=false.
func Date(v table.Value, sentinel string) (time.Time, bool) {
	if v.IsNull() {
		return time.Time{}, false
	}
	s := stringify(v)
	if sentinel != "" && s == sentinel {
		return time.Time{}, false
	}
	if len(s) != len(dateLayout) || !allDigits(s) {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DateColumn applies Date to every cell; unset and unparseable rows are null.
func DateColumn(col []table.Value, sentinel string) []table.Value {
	return mapColumn(col, func(v table.Value) table.Value {
		if t, ok := Date(v, sentinel); ok {
			return table.Time(t)
		}
		return table.Null()
	})
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
