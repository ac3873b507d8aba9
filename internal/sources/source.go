// Package sources declares the eight monitoring exports and the cleaning
// rules that turn each raw export into its canonical table.
package sources

import (
	"errors"
	"fmt"
	"strings"
)

// Source identifies one monitoring export.
type Source string

const (
	// Memory is the per-dialog memory consumption export.
	Memory Source = "memory"
	// HitlistDB is the database hit-list of expensive dialog steps.
	HitlistDB Source = "hitlist_db"
	// Times is the statistics export bucketed by time of day.
	Times Source = "times"
	// TaskTimes is the statistics export broken down by task type.
	TaskTimes Source = "tasktimes"
	// UserTcode is the per-user transaction code statistics export.
	UserTcode Source = "usertcode"
	// Performance is the work-process performance snapshot.
	Performance Source = "performance"
	// SQLTraceSummary is the aggregated SQL trace.
	SQLTraceSummary Source = "sql_trace_summary"
	// Usr02 is the user master record export.
	Usr02 Source = "usr02"
)

// ErrUnknownSource is returned by ParseSource for keys outside the
// enumeration.
var ErrUnknownSource = errors.New("unknown source")

var all = []Source{Memory, HitlistDB, Times, TaskTimes, UserTcode, Performance, SQLTraceSummary, Usr02}

// All returns every source in display order.
func All() []Source {
	return append([]Source(nil), all...)
}

func (s Source) String() string { return string(s) }

// Valid reports whether s is one of the known sources.
func (s Source) Valid() bool {
	for _, v := range all {
		if v == s {
			return true
		}
	}
	return false
}

// Title returns a human-readable name for headings.
func (s Source) Title() string {
	switch s {
	case Memory:
		return "Memory"
	case HitlistDB:
		return "Hitlist DB"
	case Times:
		return "Times"
	case TaskTimes:
		return "Task Times"
	case UserTcode:
		return "User Transactions"
	case Performance:
		return "Work Processes"
	case SQLTraceSummary:
		return "SQL Trace Summary"
	case Usr02:
		return "User Accounts"
	default:
		return string(s)
	}
}

// ParseSource resolves a source key. Matching ignores case and surrounding
// whitespace, and accepts "-" in place of "_".
func ParseSource(key string) (Source, error) {
	k := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
	s := Source(k)
	if !s.Valid() {
		return "", fmt.Errorf("sources: %w: %q", ErrUnknownSource, key)
	}
	return s, nil
}

// Keys returns the source keys as strings, for flag help and completion.
func Keys() []string {
	out := make([]string, len(all))
	for i, s := range all {
		out[i] = string(s)
	}
	return out
}
