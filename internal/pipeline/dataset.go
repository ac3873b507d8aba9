package pipeline

import (
	"time"

	"nathanbeddoewebdev/sapmon/internal/filter"
	"nathanbeddoewebdev/sapmon/internal/sources"
	"nathanbeddoewebdev/sapmon/internal/table"
)

// Status describes how one source was obtained.
type Status struct {
	Source      sources.Source `json:"source"`
	Path        string         `json:"path"`
	Available   bool           `json:"available"`
	Cached      bool           `json:"cached"`
	Detail      string         `json:"detail,omitempty"`
	Fingerprint string         `json:"fingerprint,omitempty"`
	Report      sources.Report `json:"report"`
	Duration    time.Duration  `json:"duration"`
}

// Dataset is the set of cleaned tables from one load. Tables are shared
// with the cache and must be treated as read-only; every derived view is a
// new Dataset.
type Dataset struct {
	order  []sources.Source
	tables map[sources.Source]*table.Table
	status map[sources.Source]Status
}

func newDataset(order []sources.Source) *Dataset {
	return &Dataset{
		order:  order,
		tables: make(map[sources.Source]*table.Table, len(order)),
		status: make(map[sources.Source]Status, len(order)),
	}
}

// Sources returns the sources that were requested, in load order.
func (d *Dataset) Sources() []sources.Source {
	return append([]sources.Source(nil), d.order...)
}

// Table returns the cleaned table for src. Sources that were unavailable or
// not requested yield an empty table, never nil.
func (d *Dataset) Table(src sources.Source) *table.Table {
	if t, ok := d.tables[src]; ok && t != nil {
		return t
	}
	return table.Empty()
}

// Status returns the load status for src.
func (d *Dataset) Status(src sources.Source) (Status, bool) {
	s, ok := d.status[src]
	return s, ok
}

// Statuses returns every status in load order.
func (d *Dataset) Statuses() []Status {
	out := make([]Status, 0, len(d.order))
	for _, src := range d.order {
		out = append(out, d.status[src])
	}
	return out
}

// Unavailable returns the sources that could not be loaded.
func (d *Dataset) Unavailable() []sources.Source {
	var out []sources.Source
	for _, src := range d.order {
		if !d.status[src].Available {
			out = append(out, src)
		}
	}
	return out
}

// Tables returns the table map. Callers must not modify the tables.
func (d *Dataset) Tables() map[sources.Source]*table.Table {
	out := make(map[sources.Source]*table.Table, len(d.tables))
	for k, v := range d.tables {
		out[k] = v
	}
	return out
}

// Filtered returns a new dataset with sel applied to every table that has
// the selected dimension columns. d is not modified.
func (d *Dataset) Filtered(sel filter.Selection) *Dataset {
	out := newDataset(d.Sources())
	for k, v := range d.status {
		out.status[k] = v
	}
	out.tables = filter.ApplyAll(d.tables, sel)
	return out
}

// Choices returns the distinct values of dim across every table.
func (d *Dataset) Choices(dim filter.Dimension) []string {
	return filter.Choices(d.tables, dim)
}
