package sources

import (
	"nathanbeddoewebdev/sapmon/internal/clean"
	"nathanbeddoewebdev/sapmon/internal/normalize"
	"nathanbeddoewebdev/sapmon/internal/table"
)

// Report summarizes one cleaning run.
type Report struct {
	Source  Source `json:"source"`
	RowsIn  int    `json:"rows_in"`
	RowsOut int    `json:"rows_out"`

	// DroppedMissing counts rows removed for a missing mandatory value.
	DroppedMissing int `json:"dropped_missing"`
	// DroppedTimestamp counts rows removed for an unparseable timestamp.
	DroppedTimestamp int `json:"dropped_timestamp"`

	// MissingMandatory lists mandatory columns absent when they were due to
	// be checked. Rows are not checked against them.
	MissingMandatory []string `json:"missing_mandatory,omitempty"`
	// MissingColumns lists declared numeric and text columns that were
	// absent and therefore skipped.
	MissingColumns []string `json:"missing_columns,omitempty"`
}

// Dropped returns the total number of removed rows.
func (r Report) Dropped() int { return r.DroppedMissing + r.DroppedTimestamp }

// Clean applies the rule set of src to a raw table and returns the cleaned
// table. raw is not modified. An empty or nil raw table yields an empty
// table.
//
// Rows with a missing raw value in a present Mandatory column are removed
// before cleaning. MandatoryCleaned columns are checked once cleaning and
// derivation are done. Sources that require a timestamp then lose the rows
// whose date and time did not combine.
func Clean(src Source, raw *table.Table) (*table.Table, Report) {
	s := SchemaFor(src)
	rep := Report{Source: src, RowsIn: raw.Len()}
	if raw == nil || len(raw.Columns) == 0 {
		return table.Empty(), rep
	}

	t := table.New(normalize.Headers(raw.Columns), raw.Rows)

	before := t.Len()
	t = t.DropMissing(presentMandatory(t, s.Mandatory, &rep)...)
	rep.DroppedMissing = before - t.Len()

	for _, c := range s.Numeric {
		if !t.Has(c) {
			rep.MissingColumns = append(rep.MissingColumns, c)
			continue
		}
		t.SetColumn(c, clean.NumericColumn(t.Column(c)))
	}
	for _, tc := range s.Text {
		if !t.Has(tc.Name) {
			rep.MissingColumns = append(rep.MissingColumns, tc.Name)
			continue
		}
		t.SetColumn(tc.Name, clean.TextColumn(t.Column(tc.Name), tc.Default))
	}

	built := false
	if p := s.Timestamp; p != nil {
		if t.Has(p.Date) && t.Has(p.Time) {
			t.SetColumn(p.Target, clean.TimestampColumn(t.Column(p.Date), t.Column(p.Time)))
			built = true
		} else if s.RequireTimestamp {
			for _, c := range []string{p.Date, p.Time} {
				if !t.Has(c) {
					rep.MissingMandatory = append(rep.MissingMandatory, c)
				}
			}
		}
	}

	for _, d := range s.Derived {
		derive(t, d)
	}

	before = t.Len()
	t = t.DropMissing(presentMandatory(t, s.MandatoryCleaned, &rep)...)
	rep.DroppedMissing += before - t.Len()

	if built && s.RequireTimestamp {
		before = t.Len()
		t = t.DropMissing(s.Timestamp.Target)
		rep.DroppedTimestamp = before - t.Len()
	}

	rep.RowsOut = t.Len()
	return t, rep
}

// presentMandatory returns the columns of cols that t has and records the
// others in rep.
func presentMandatory(t *table.Table, cols []string, rep *Report) []string {
	var present []string
	for _, c := range cols {
		if t.Has(c) {
			present = append(present, c)
		} else {
			rep.MissingMandatory = append(rep.MissingMandatory, c)
		}
	}
	return present
}

func derive(t *table.Table, d Derivation) {
	if !t.Has(d.From) {
		if d.WhenAbsent == nil {
			return
		}
		vals := make([]table.Value, t.Len())
		for i := range vals {
			vals[i] = d.WhenAbsent()
		}
		t.SetColumn(d.Target, vals)
		return
	}
	src := t.Column(d.From)
	vals := make([]table.Value, len(src))
	for i, v := range src {
		vals[i] = d.Convert(v)
	}
	t.SetColumn(d.Target, vals)
}
