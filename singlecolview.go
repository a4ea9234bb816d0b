package regrid

import "reflect"

// SingleCellView returns a View with a single column
// and a single row containing value.
// A reflect.Value passed as value is unwrapped by Cell
// and returned as is by ReflectCell.
func SingleCellView[T any](title, column string, value T) ReflectCellView {
	return &singleCellView[T]{
		title:          title,
		columns:        []string{column},
		value:          value,
		isReflectValue: reflect.TypeOf(value) == reflect.TypeOf(reflect.Value{}),
	}
}

type singleCellView[T any] struct {
	title          string
	columns        []string
	value          T
	isReflectValue bool
}

func (s *singleCellView[T]) Title() string     { return s.title }
func (s *singleCellView[T]) Columns() []string { return s.columns }
func (s *singleCellView[T]) NumRows() int      { return 1 }

func (s *singleCellView[T]) Cell(row, col int) any {
	if row != 0 || col != 0 {
		return nil
	}
	if !s.isReflectValue {
		return s.value
	}
	v := any(s.value).(reflect.Value)
	if !v.IsValid() {
		return nil
	}
	return v.Interface()
}

func (s *singleCellView[T]) ReflectCell(row, col int) reflect.Value {
	if row != 0 || col != 0 {
		return reflect.Value{}
	}
	if !s.isReflectValue {
		return reflect.ValueOf(s.value)
	}
	return any(s.value).(reflect.Value)
}
