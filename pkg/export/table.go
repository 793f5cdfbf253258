// Package export provides the in-memory report table and the repository
// pattern for writing reports as delimited text.
package export

import "fmt"

// Table is a materialized report: a header row plus data rows. Numeric
// cells are pre-formatted with "." as decimal separator; the table itself
// is format-agnostic.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NewTable creates an empty table with the given column order.
func NewTable(columns []string) *Table {
	return &Table{Columns: columns}
}

// Append adds a data row. The row length must match the header.
func (t *Table) Append(row []string) {
	t.Rows = append(t.Rows, row)
}

// Column returns the index of a column name.
func (t *Table) Column(name string) (int, error) {
	for i, c := range t.Columns {
		if c == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no such column: %q", name)
}
