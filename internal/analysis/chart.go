package analysis

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/sapmon/internal/sources"
	"nathanbeddoewebdev/sapmon/internal/table"
)

// ChartKind says how a series is meant to be drawn.
type ChartKind string

const (
	ChartBar       ChartKind = "bar"
	ChartLine      ChartKind = "line"
	ChartPie       ChartKind = "pie"
	ChartHistogram ChartKind = "histogram"
)

// Chart is one titled series.
type Chart struct {
	Title  string    `json:"title"`
	Kind   ChartKind `json:"kind"`
	Unit   string    `json:"unit,omitempty"`
	Points []Point   `json:"points"`
	// Note explains why a chart has no data.
	Note string `json:"note,omitempty"`
}

// Empty reports whether the chart has nothing to draw: no points, or only
// zero values.
func (c Chart) Empty() bool {
	for _, p := range c.Points {
		if p.Value != 0 {
			return false
		}
	}
	return true
}

// Section groups the charts built from one source.
type Section struct {
	Source sources.Source `json:"source"`
	Title  string         `json:"title"`
	Charts []Chart        `json:"charts"`
}

// chart builds a Chart, attaching a note when the series is empty or the
// table lacks one of the required columns.
func chart(t *table.Table, title string, kind ChartKind, unit string, required []string, build func() []Point) Chart {
	c := Chart{Title: title, Kind: kind, Unit: unit}
	var missing []string
	for _, col := range required {
		if !t.Has(col) {
			missing = append(missing, col)
		}
	}
	switch {
	case len(missing) > 0:
		c.Note = fmt.Sprintf("missing columns: %s", strings.Join(missing, ", "))
	case t.IsEmpty():
		c.Note = "no rows"
	default:
		c.Points = build()
		if c.Empty() {
			c.Note = "no data after filtering"
		}
	}
	if c.Points == nil {
		c.Points = []Point{}
	}
	return c
}

// shorten truncates long labels such as SQL statements to max runes.
func shorten(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
