package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/xuri/excelize/v2"
)

// Load reads the spreadsheet at path into a [Table]. The format is selected
// by file extension: .csv uses a CSV reader, .xlsx/.xlsm use an Excel
// reader. Unknown extensions fall back to CSV.
//
// All failures wrap [ErrLoad].
func Load(path string) (*Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: stat %q: %w", ErrLoad, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %q: path is a directory", ErrLoad, path)
	}

	var t *Table

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		t, err = loadXLSX(path)
	default:
		t, err = loadCSV(path)
	}

	if err != nil {
		return nil, err
	}

	slog.Debug("loaded spreadsheet",
		slog.String("path", path),
		slog.String("size", humanize.IBytes(uint64(info.Size()))), //nolint:gosec // G115: file sizes are non-negative.
		slog.Int("columns", t.ColumnCount()),
		slog.Int("rows", t.RowCount()),
	)

	return t, nil
}

// loadCSV reads a CSV file with the first record as the header.
func loadCSV(path string) (*Table, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is caller-provided by design.
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer f.Close() //nolint:errcheck // Read-only file.

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // Tolerate ragged rows; missing cells become nil.

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse csv %q: %w", ErrLoad, path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %q: file has no header row", ErrLoad, path)
	}

	return newTable(records[0], records[1:]), nil
}

// loadXLSX reads the first sheet of an Excel workbook with the first row as
// the header.
func loadXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook %q: %w", ErrLoad, path, err)
	}
	defer f.Close() //nolint:errcheck // Read-only workbook.

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: %q: workbook has no sheets", ErrLoad, path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %w", ErrLoad, sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %q: sheet %q has no header row", ErrLoad, path, sheets[0])
	}

	return newTable(rows[0], rows[1:]), nil
}

// LoadReader reads CSV data from r. It exists so callers can convert from
// stdin or other non-file sources.
func LoadReader(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse csv: %w", ErrLoad, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: input has no header row", ErrLoad)
	}

	return newTable(records[0], records[1:]), nil
}
