package regrid

import "reflect"

var _ ReflectCellView = new(CategoriesView)

// CategoriesView is a View of column oriented categories
// where every category is a column and row i
// is made of the i-th value of every category.
//
// The number of rows is taken from the first category.
// Cells of shorter categories are returned as nil.
type CategoriesView struct {
	Tit        string
	Categories []Category
}

// NewCategoriesView returns a CategoriesView for categories
// without copying their values.
func NewCategoriesView(title string, categories []Category) *CategoriesView {
	return &CategoriesView{Tit: title, Categories: categories}
}

func (view *CategoriesView) Title() string { return view.Tit }

func (view *CategoriesView) Columns() []string { return CategoryDisplayNames(view.Categories) }

func (view *CategoriesView) NumRows() int { return NumCategoryRows(view.Categories) }

func (view *CategoriesView) Cell(row, col int) any {
	if col < 0 || col >= len(view.Categories) {
		return nil
	}
	values := view.Categories[col].Values
	if row < 0 || row >= len(values) {
		return nil
	}
	return values[row]
}

func (view *CategoriesView) ReflectCell(row, col int) reflect.Value {
	return reflect.ValueOf(view.Cell(row, col))
}

// ColumnType returns the ColumnType of the category at col
// or ColumnTypeUnknown for an invalid index.
func (view *CategoriesView) ColumnType(col int) ColumnType {
	if col < 0 || col >= len(view.Categories) {
		return ColumnTypeUnknown
	}
	return view.Categories[col].Source.ColumnType()
}

// ColumnTyper is implemented by views that know
// the ColumnType of their columns.
type ColumnTyper interface {
	ColumnType(col int) ColumnType
}

// CategoriesFromView reads all cells of a view into categories.
// The column types are taken from colTypes,
// or from the view if colTypes is nil and the view implements ColumnTyper.
// Columns without a known type get ColumnTypeUnknown.
func CategoriesFromView(view View, colTypes []ColumnType) []Category {
	var (
		columns    = view.Columns()
		numRows    = view.NumRows()
		categories = make([]Category, len(columns))
	)
	typer, _ := view.(ColumnTyper)
	for col, title := range columns {
		colType := ColumnTypeUnknown
		switch {
		case col < len(colTypes):
			colType = colTypes[col]
		case colTypes == nil && typer != nil:
			colType = typer.ColumnType(col)
		}
		values := make([]any, numRows)
		for row := range values {
			values[row] = view.Cell(row, col)
		}
		categories[col] = NewCategory(title, colType, values...)
	}
	return categories
}
