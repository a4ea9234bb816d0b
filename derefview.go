package regrid

import "reflect"

// DerefView returns a ReflectCellView that dereferences
// the pointer cell values of source.
// It is used to format non-nil pointers
// with the formatters of their element types.
func DerefView(source View) ReflectCellView {
	return derefView{source: AsReflectCellView(source)}
}

type derefView struct {
	source ReflectCellView
}

func (v derefView) Title() string     { return v.source.Title() }
func (v derefView) Columns() []string { return v.source.Columns() }
func (v derefView) NumRows() int      { return v.source.NumRows() }

func (v derefView) Cell(row, col int) any {
	val := v.ReflectCell(row, col)
	if !val.IsValid() {
		return nil
	}
	return val.Interface()
}

func (v derefView) ReflectCell(row, col int) reflect.Value {
	val := v.source.ReflectCell(row, col)
	if val.Kind() != reflect.Pointer || val.IsNil() {
		return val
	}
	return val.Elem()
}
