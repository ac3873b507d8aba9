package table

import "sort"

// Row is one record; cells line up with Table.Columns.
type Row []Value

// Table is an ordered sequence of rows keyed by an ordered column list.
//
// Column names may repeat (for example when two raw headers normalize to
// the same canonical name). Lookups by name always resolve to the first
// occurrence.
type Table struct {
	Columns []string
	Rows    []Row

	index   map[string]int
	indexed int
}

// New returns a table with the given columns and rows. Rows shorter than
// the column list are padded with nulls; longer rows are truncated.
func New(columns []string, rows []Row) *Table {
	t := &Table{Columns: append([]string(nil), columns...)}
	t.Rows = make([]Row, 0, len(rows))
	for _, r := range rows {
		t.Rows = append(t.Rows, fit(r, len(columns)))
	}
	t.reindex()
	return t
}

// Empty returns a table with no columns and no rows. It represents a
// source that could not be loaded.
func Empty() *Table {
	t := &Table{}
	t.reindex()
	return t
}

// Len returns the row count. A nil table has zero rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// IsEmpty reports whether the table has no rows.
func (t *Table) IsEmpty() bool { return t.Len() == 0 }

// Index returns the position of the first column with the given name.
// Tables built through this package are indexed eagerly, so concurrent
// readers never trigger a rebuild.
func (t *Table) Index(col string) (int, bool) {
	if t == nil {
		return 0, false
	}
	if t.index == nil || t.indexed != len(t.Columns) {
		t.reindex()
	}
	i, ok := t.index[col]
	return i, ok
}

// Has reports whether the column exists.
func (t *Table) Has(col string) bool {
	_, ok := t.Index(col)
	return ok
}

// Get returns the cell at row r in column col, or null if the column does
// not exist.
func (t *Table) Get(r int, col string) Value {
	i, ok := t.Index(col)
	if !ok || r < 0 || r >= len(t.Rows) {
		return Null()
	}
	return t.Rows[r][i]
}

// Column returns a copy of every cell in col, or nil if col is absent.
func (t *Table) Column(col string) []Value {
	i, ok := t.Index(col)
	if !ok {
		return nil
	}
	out := make([]Value, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = row[i]
	}
	return out
}

// SetColumn replaces col with vals, appending the column if it is new.
// vals must have one entry per row.
func (t *Table) SetColumn(col string, vals []Value) {
	i, ok := t.Index(col)
	if !ok {
		t.Columns = append(t.Columns, col)
		i = len(t.Columns) - 1
		t.index[col] = i
		t.indexed = len(t.Columns)
		for r := range t.Rows {
			t.Rows[r] = append(t.Rows[r], Null())
		}
	}
	for r := range t.Rows {
		if r < len(vals) {
			t.Rows[r][i] = vals[r]
		} else {
			t.Rows[r][i] = Null()
		}
	}
}

// Clone returns a deep copy of the row structure. Cells are values, so the
// copy shares nothing mutable with t.
func (t *Table) Clone() *Table {
	if t == nil {
		return Empty()
	}
	out := &Table{Columns: append([]string(nil), t.Columns...)}
	out.Rows = make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		out.Rows[i] = append(Row(nil), r...)
	}
	out.reindex()
	return out
}

// Where returns a new table holding the rows for which keep returns true.
// Relative row order is preserved and t is not modified.
func (t *Table) Where(keep func(r int) bool) *Table {
	if t == nil {
		return Empty()
	}
	out := &Table{Columns: append([]string(nil), t.Columns...)}
	out.Rows = make([]Row, 0, len(t.Rows))
	for i, r := range t.Rows {
		if keep(i) {
			out.Rows = append(out.Rows, append(Row(nil), r...))
		}
	}
	out.reindex()
	return out
}

// DropMissing returns a new table without the rows that hold a blank cell
// in any of cols. Columns that do not exist are ignored.
func (t *Table) DropMissing(cols ...string) *Table {
	idx := make([]int, 0, len(cols))
	for _, c := range cols {
		if i, ok := t.Index(c); ok {
			idx = append(idx, i)
		}
	}
	return t.Where(func(r int) bool {
		for _, i := range idx {
			if t.Rows[r][i].Blank() {
				return false
			}
		}
		return true
	})
}

// Distinct returns the sorted distinct non-null text values of col.
func (t *Table) Distinct(col string) []string {
	i, ok := t.Index(col)
	if !ok {
		return nil
	}
	seen := make(map[string]struct{})
	for _, r := range t.Rows {
		if r[i].IsNull() {
			continue
		}
		seen[r[i].Text()] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// DropColumn removes every column named col.
func (t *Table) DropColumn(col string) {
	keep := make([]int, 0, len(t.Columns))
	for i, c := range t.Columns {
		if c != col {
			keep = append(keep, i)
		}
	}
	if len(keep) == len(t.Columns) {
		return
	}
	cols := make([]string, len(keep))
	for j, i := range keep {
		cols[j] = t.Columns[i]
	}
	for r, row := range t.Rows {
		next := make(Row, len(keep))
		for j, i := range keep {
			next[j] = row[i]
		}
		t.Rows[r] = next
	}
	t.Columns = cols
	t.reindex()
}

// Rename replaces the column list with names, which must have the same
// length as the current list.
func (t *Table) Rename(names []string) {
	if len(names) != len(t.Columns) {
		return
	}
	t.Columns = append([]string(nil), names...)
	t.reindex()
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Columns))
	t.indexed = len(t.Columns)
	for i, c := range t.Columns {
		if _, dup := t.index[c]; !dup {
			t.index[c] = i
		}
	}
}

func fit(r Row, n int) Row {
	out := make(Row, n)
	copy(out, r)
	return out
}
