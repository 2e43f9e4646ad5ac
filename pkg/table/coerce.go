package table

// coerce.go turns raw string cells into typed scalars.
//
// Source files carry the messy reality of exported spreadsheets:
//   - Excel formula prefixes (="value")
//   - UTF-8 BOM on the first header cell
//   - Currency symbols and thousands separators in numbers
//   - Accounting-format negatives "(123.45)"

import (
	"regexp"
	"strconv"
	"strings"
)

// numericRegex validates that a string is a valid numeric format after
// cleanup. Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// CleanHeader normalizes a header cell: strips a UTF-8 BOM, Excel formula
// prefixes, surrounding quotes, and whitespace.
func CleanHeader(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")

	return CleanCell(s)
}

// CleanCell removes common spreadsheet export artifacts from a cell value:
// leading/trailing whitespace, Excel formula prefix (="..."), and
// surrounding quotes.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.Trim(s, `"'`)
}

// CoerceCell converts a raw string cell into a typed scalar [Cell]:
//
//   - empty (after cleanup) -> nil
//   - "true" / "false" (case-insensitive) -> bool
//   - numeric (including currency / accounting formats) -> float64
//   - anything else -> string, cleaned
//
// Booleans are checked before numerics so "1"/"0" stay numeric but
// "true"/"false" never do.
func CoerceCell(raw string) Cell {
	s := CleanCell(raw)
	if s == "" {
		return nil
	}

	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}

	if f, ok := parseNumeric(s); ok {
		return f
	}

	return s
}

// parseNumeric parses a numeric cell, tolerating currency symbols, thousands
// separators, and the accounting format "(123.45)" for negatives.
func parseNumeric(s string) (float64, bool) {
	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "") // Euro
	s = strings.ReplaceAll(s, "£", "") // Pound
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if isNegative {
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}

	return f, true
}
