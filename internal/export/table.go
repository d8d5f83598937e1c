package export

import "github.com/wp2csv/wp2csv/internal/catalog"

// Table is the combined export: a column union over rows of different datasets.
// Cells absent from a row are empty. NULL values are also written as empty cells.
type Table struct {
	columns []string
	index   map[string]int
	rows    []map[int]string
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// AddColumns registers columns in order, ignoring ones already known.
// Registering a dataset's columns up front keeps the header stable even when it returns no rows.
func (t *Table) AddColumns(names ...string) {
	for _, name := range names {
		if _, ok := t.index[name]; ok {
			continue
		}
		t.index[name] = len(t.columns)
		t.columns = append(t.columns, name)
	}
}

// Append adds rows, extending the header with any new columns in first-seen order.
func (t *Table) Append(rows ...catalog.Row) {
	for _, r := range rows {
		fields := r.Fields()
		cells := make(map[int]string, len(fields))
		for _, f := range fields {
			t.AddColumns(f.Name)
			if !f.Null {
				cells[t.index[f.Name]] = f.Value
			}
		}
		t.rows = append(t.rows, cells)
	}
}

// Columns returns the header.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Record returns row i padded to the full header width.
func (t *Table) Record(i int) []string {
	record := make([]string, len(t.columns))
	for col, v := range t.rows[i] {
		record[col] = v
	}
	return record
}
