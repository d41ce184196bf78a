// Package source defines the port for reading raw sheet tables from a
// spreadsheet backend. Adapters live in the subpackages: excel (local
// xlsx workbooks), google (Google Sheets), memory (test fixtures).
package source

import "context"

// Table is the raw contents of one sheet: the ordered column labels and
// the data rows as string cells. Cells carry the formatted value shown
// by the spreadsheet application; typing and label normalization happen
// in core.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Ref identifies one sheet of one workbook. Path is the workbook path
// (or, for the Google backend, the logical workbook name). An empty
// Sheet means the workbook's first sheet.
type Ref struct {
	Path  string
	Sheet string
}

// Key is the memoization key for load results of this ref.
func (r Ref) Key() string {
	return r.Path + "#" + r.Sheet
}

// RowSource reads sheet tables from a spreadsheet backend.
type RowSource interface {
	Read(ctx context.Context, ref Ref) (Table, error)
}
