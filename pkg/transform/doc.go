// Package transform builds the output JSON document from a loaded table and
// a rule set.
//
// It selects the applicable rule pattern from the table's column names,
// infers a kind tag for each cell, and emits one [Section] per table row
// with one [RowItem] per non-empty cell.
package transform
