package regrid

import "reflect"

// View is a read-only, row oriented view of tabular data.
// Implementations adapt column oriented category data,
// shaped string rows or scanned database results
// so that formatters and writers can iterate them cell by cell.
type View interface {
	// Title of the view, may be empty.
	Title() string
	// Columns returns the column titles of the view.
	Columns() []string
	// NumRows returns the number of data rows (excluding any header).
	NumRows() int
	// Cell returns the value at row and col
	// or nil for out of bounds indices.
	Cell(row, col int) any
}

// ReflectCellView is a View that can also return
// cell values as reflect.Value without boxing them into an any.
type ReflectCellView interface {
	View

	// ReflectCell returns the reflect.Value of the cell
	// or an invalid reflect.Value for out of bounds indices.
	ReflectCell(row, col int) reflect.Value
}

// AsReflectCellView returns the passed view as ReflectCellView
// if it implements the interface or wraps it
// with reflect.ValueOf calls for its Cell method.
func AsReflectCellView(view View) ReflectCellView {
	if r, ok := view.(ReflectCellView); ok {
		return r
	}
	return reflectCellView{view}
}

type reflectCellView struct {
	View
}

func (v reflectCellView) ReflectCell(row, col int) reflect.Value {
	return reflect.ValueOf(v.Cell(row, col))
}
