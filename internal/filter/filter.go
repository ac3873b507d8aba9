// Package filter selects row subsets of cleaned tables by equality on the
// shared dimension columns. Every function is pure: inputs are never
// modified and each call returns new tables.
package filter

import (
	"fmt"
	"sort"
	"strings"

	"nathanbeddoewebdev/sapmon/internal/table"
)

// Dimension is a column shared across sources that rows can be selected by.
type Dimension string

const (
	Account         Dimension = "ACCOUNT"
	Report          Dimension = "REPORT"
	TaskType        Dimension = "TASKTYPE"
	WorkProcessType Dimension = "WP_TYP"
)

// Dimensions returns every dimension in display order.
func Dimensions() []Dimension {
	return []Dimension{Account, Report, TaskType, WorkProcessType}
}

// Column returns the canonical column name the dimension reads.
func (d Dimension) Column() string { return string(d) }

// Label returns a human-readable name.
func (d Dimension) Label() string {
	switch d {
	case Account:
		return "Account"
	case Report:
		return "Report"
	case TaskType:
		return "Task type"
	case WorkProcessType:
		return "Work process type"
	default:
		return string(d)
	}
}

// ParseDimension resolves a dimension from its column name or label,
// ignoring case.
func ParseDimension(s string) (Dimension, error) {
	for _, d := range Dimensions() {
		if strings.EqualFold(s, string(d)) || strings.EqualFold(s, d.Label()) {
			return d, nil
		}
	}
	return "", fmt.Errorf("filter: unknown dimension %q", s)
}

// Selection maps each dimension to its selected values. A dimension with no
// values is unconstrained.
type Selection map[Dimension][]string

// IsEmpty reports whether no dimension is constrained.
func (s Selection) IsEmpty() bool {
	for _, vals := range s {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}

// Apply keeps the rows of t whose dim column holds one of values. An empty
// values list, or a table without the column, returns an unfiltered copy.
func Apply(t *table.Table, dim Dimension, values []string) *table.Table {
	if t == nil {
		return table.Empty()
	}
	i, ok := t.Index(dim.Column())
	if len(values) == 0 || !ok {
		return t.Clone()
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return t.Where(func(r int) bool {
		cell := t.Rows[r][i]
		if cell.IsNull() {
			return false
		}
		_, keep := set[cell.Text()]
		return keep
	})
}

// ApplySelection applies every constrained dimension of sel to t.
func ApplySelection(t *table.Table, sel Selection) *table.Table {
	out := t.Clone()
	for _, d := range Dimensions() {
		if vals := sel[d]; len(vals) > 0 {
			out = Apply(out, d, vals)
		}
	}
	return out
}

// ApplyAll applies sel to every table, keyed the same way as tables.
func ApplyAll[K comparable](tables map[K]*table.Table, sel Selection) map[K]*table.Table {
	out := make(map[K]*table.Table, len(tables))
	for k, t := range tables {
		out[k] = ApplySelection(t, sel)
	}
	return out
}

// Choices returns the sorted distinct values of dim present across tables.
func Choices[K comparable](tables map[K]*table.Table, dim Dimension) []string {
	seen := make(map[string]struct{})
	for _, t := range tables {
		for _, v := range t.Distinct(dim.Column()) {
			seen[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
