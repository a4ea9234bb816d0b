package regrid

import "reflect"

var (
	_ ReflectCellView = new(AnyValuesView)
	_ ColumnTyper     = new(AnyValuesView)
)

// AnyValuesView holds rows of untyped cell values,
// for example scanned from a database/sql result.
// Types optionally holds the ColumnType of every column.
type AnyValuesView struct {
	Tit   string
	Cols  []string
	Types []ColumnType
	Rows  [][]any
}

// NewAnyValuesViewFrom copies all cells of source.
// Column types are copied if source implements ColumnTyper.
func NewAnyValuesViewFrom(source View) *AnyValuesView {
	view := &AnyValuesView{
		Tit:  source.Title(),
		Cols: source.Columns(),
		Rows: make([][]any, source.NumRows()),
	}
	if typer, ok := source.(ColumnTyper); ok {
		view.Types = make([]ColumnType, len(view.Cols))
		for col := range view.Types {
			view.Types[col] = typer.ColumnType(col)
		}
	}
	for row := range view.Rows {
		values := make([]any, len(view.Cols))
		for col := range values {
			values[col] = source.Cell(row, col)
		}
		view.Rows[row] = values
	}
	return view
}

func (view *AnyValuesView) Title() string     { return view.Tit }
func (view *AnyValuesView) Columns() []string { return view.Cols }
func (view *AnyValuesView) NumRows() int      { return len(view.Rows) }

func (view *AnyValuesView) Cell(row, col int) any {
	if row < 0 || row >= len(view.Rows) || col < 0 || col >= len(view.Rows[row]) {
		return nil
	}
	return view.Rows[row][col]
}

func (view *AnyValuesView) ReflectCell(row, col int) reflect.Value {
	return reflect.ValueOf(view.Cell(row, col))
}

// ColumnType returns Types[col] or ColumnTypeUnknown.
func (view *AnyValuesView) ColumnType(col int) ColumnType {
	if col < 0 || col >= len(view.Types) {
		return ColumnTypeUnknown
	}
	return view.Types[col]
}
