// Package dataset provides an in-memory tabular dataset with nullable cells.
//
// A Dataset is the working table of the preprocessing pipeline: an ordered
// set of named columns over a dense slice of rows. A cell holds nil when the
// value is null; stages replace string cells with typed values as they
// validate them.
package dataset

import "sort"

// Row is one record of the table. A nil (or absent) value means null.
type Row map[string]any

// IsNull reports whether a cell value is null.
func IsNull(v any) bool {
	return v == nil
}

// Dataset is a mutable table owned by a single pipeline run.
type Dataset struct {
	columns []string
	rows    []Row
}

// New creates an empty dataset with the given column order.
func New(columns []string) *Dataset {
	cols := make([]string, len(columns))
	copy(cols, columns)

	return &Dataset{columns: cols}
}

// FromRows creates a dataset from pre-built rows.
func FromRows(columns []string, rows []Row) *Dataset {
	d := New(columns)
	d.rows = rows

	return d
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// Columns returns a copy of the column order.
func (d *Dataset) Columns() []string {
	cols := make([]string, len(d.columns))
	copy(cols, d.columns)

	return cols
}

// HasColumn reports whether the named column exists.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.columns {
		if c == name {
			return true
		}
	}

	return false
}

// Rows returns the live row slice.
func (d *Dataset) Rows() []Row {
	return d.rows
}

// Append adds a row to the end of the table.
func (d *Dataset) Append(row Row) {
	d.rows = append(d.rows, row)
}

// NullCount returns the number of null cells in a column.
func (d *Dataset) NullCount(name string) int {
	count := 0

	for _, row := range d.rows {
		if IsNull(row[name]) {
			count++
		}
	}

	return count
}

// Apply replaces every cell of a column with fn(cell).
func (d *Dataset) Apply(name string, fn func(any) any) {
	for _, row := range d.rows {
		row[name] = fn(row[name])
	}
}

// Derive sets every cell of a column from its full row, creating the
// column if it does not exist yet.
func (d *Dataset) Derive(name string, fn func(Row) any) {
	if !d.HasColumn(name) {
		d.columns = append(d.columns, name)
	}

	for _, row := range d.rows {
		row[name] = fn(row)
	}
}

// EnsureColumn creates the column filled with the given value if it is
// absent. Existing columns are left untouched.
func (d *Dataset) EnsureColumn(name string, fill any) {
	if d.HasColumn(name) {
		return
	}

	d.columns = append(d.columns, name)

	for _, row := range d.rows {
		row[name] = fill
	}
}

// FillNulls replaces null cells of a column with the given value,
// creating the column fully filled when it is absent.
func (d *Dataset) FillNulls(name string, fill any) {
	if !d.HasColumn(name) {
		d.EnsureColumn(name, fill)

		return
	}

	for _, row := range d.rows {
		if IsNull(row[name]) {
			row[name] = fill
		}
	}
}

// Filter keeps only rows for which keep returns true and reports how many
// rows were removed. Row order is preserved.
func (d *Dataset) Filter(keep func(Row) bool) int {
	kept := d.rows[:0]

	for _, row := range d.rows {
		if keep(row) {
			kept = append(kept, row)
		}
	}

	removed := len(d.rows) - len(kept)
	d.rows = kept

	return removed
}

// Select reduces and reorders the table to exactly the given columns.
func (d *Dataset) Select(columns []string) {
	cols := make([]string, len(columns))
	copy(cols, columns)
	d.columns = cols
}

// SortStable orders rows by the given comparison, preserving the relative
// order of equal rows.
func (d *Dataset) SortStable(less func(a, b Row) bool) {
	sort.SliceStable(d.rows, func(i, j int) bool {
		return less(d.rows[i], d.rows[j])
	})
}
