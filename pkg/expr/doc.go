// Package expr provides CEL (Common Expression Language) functionality for
// evaluating pattern match expressions against spreadsheet column names.
//
// CEL expressions have access to variables:
//   - `columns` (list<string>): The column names, in sheet order
//   - `header` (string): All column names lowercased and joined with spaces
package expr
