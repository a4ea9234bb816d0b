package regrid

import (
	"context"
	"errors"
	"time"
)

var _ CellFormatter = new(ColumnTypeCellFormatter)

// ColumnTypeCellFormatter formats cells by the ColumnType
// of their column as reported by a view implementing ColumnTyper.
//
// Date columns are formatted with Date,
// all other columns with Types if there is an entry for the column type,
// else with Default.
// Views that don't implement ColumnTyper are formatted with Default.
type ColumnTypeCellFormatter struct {
	Date    CellFormatter
	Types   map[ColumnType]CellFormatter
	Default CellFormatter
}

// NewColumnTypeCellFormatter returns a ColumnTypeCellFormatter
// that formats date columns with dateLayout in loc
// and all other values like JavaScript's toString().
func NewColumnTypeCellFormatter(dateLayout string, loc *time.Location) *ColumnTypeCellFormatter {
	return &ColumnTypeCellFormatter{
		Date:    DateCellFormatter{Layout: dateLayout, Location: loc},
		Default: JSStringCellFormatter{},
	}
}

func (f *ColumnTypeCellFormatter) FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
	if err = ctx.Err(); err != nil {
		return "", false, err
	}
	colType := ColumnTypeUnknown
	if typer, ok := view.(ColumnTyper); ok {
		colType = typer.ColumnType(col)
	}
	if colType.IsDate() && f.Date != nil {
		return f.Date.FormatCell(ctx, view, row, col)
	}
	if typeFmt, ok := f.Types[colType]; ok {
		str, raw, err = typeFmt.FormatCell(ctx, view, row, col)
		if !errors.Is(err, errors.ErrUnsupported) {
			return str, raw, err
		}
	}
	if f.Default != nil {
		return f.Default.FormatCell(ctx, view, row, col)
	}
	return "", false, errors.ErrUnsupported
}
