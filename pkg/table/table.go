// Package table loads tabular spreadsheet data (CSV or XLSX) into an
// immutable in-memory [Table].
//
// The first row of the source file is treated as the header. Cell values are
// coerced into typed scalars: string, float64, bool, or nil for empty cells.
package table

import "errors"

// ErrLoad indicates that a spreadsheet file could not be read or parsed.
// All loader failures wrap this sentinel so callers can match the stage with
// [errors.Is].
var ErrLoad = errors.New("load table")

// Cell is a single typed spreadsheet value. It holds a string, float64,
// bool, or nil for an empty cell.
type Cell any

// Row maps column names to cell values. Columns absent from the source row
// are present with a nil value.
type Row map[string]Cell

// Table is an ordered collection of columns and rows, immutable once loaded.
type Table struct {
	Columns []string
	Rows    []Row
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return len(t.Columns)
}

// RowCount returns the number of data rows (excluding the header).
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// newTable builds a [Table] from a header row and raw string records,
// coercing each cell to a typed scalar.
func newTable(header []string, records [][]string) *Table {
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = CleanHeader(h)
	}

	rows := make([]Row, 0, len(records))
	for _, record := range records {
		row := make(Row, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = CoerceCell(record[i])
			} else {
				row[col] = nil
			}
		}

		rows = append(rows, row)
	}

	return &Table{Columns: columns, Rows: rows}
}
