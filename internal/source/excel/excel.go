// Package excel reads local xlsx workbooks through excelize.
package excel

import (
	"context"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/ProyectosAstillero/Operaciones/internal/core"
	"github.com/ProyectosAstillero/Operaciones/internal/source"
)

// Source is the default RowSource: one xlsx file per Ref.Path.
type Source struct{}

var _ source.RowSource = (*Source)(nil)

func New() *Source {
	return &Source{}
}

// Read opens the workbook at ref.Path and returns the named sheet (or
// the first sheet when ref.Sheet is empty) as a Table. The first row is
// taken as the header. An absent file yields core.MissingFileError.
func (s *Source) Read(_ context.Context, ref source.Ref) (source.Table, error) {
	if _, err := os.Stat(ref.Path); err != nil {
		if os.IsNotExist(err) {
			return source.Table{}, &core.MissingFileError{Path: ref.Path}
		}
		return source.Table{}, fmt.Errorf("stat %s: %w", ref.Path, err)
	}

	f, err := excelize.OpenFile(ref.Path)
	if err != nil {
		return source.Table{}, fmt.Errorf("abrir %s: %w", ref.Path, err)
	}
	defer f.Close()

	sheet := ref.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return source.Table{}, fmt.Errorf("leer hoja %q de %s: %w", sheet, ref.Path, err)
	}
	if len(rows) == 0 {
		return source.Table{}, nil
	}
	return source.Table{Columns: rows[0], Rows: rows[1:]}, nil
}
