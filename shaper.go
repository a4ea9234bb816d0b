package regrid

import (
	"context"
	"time"
)

// RowObject is a shaped row mapping column keys to formatted values.
type RowObject map[string]string

// RowForm selects the shape of the rows returned for a grid.
type RowForm int

const (
	// RowFormObjects shapes rows as RowObject.
	RowFormObjects RowForm = iota
	// RowFormArrays shapes rows as []string in category order.
	RowFormArrays
)

func (f RowForm) String() string {
	if f == RowFormArrays {
		return "arrays"
	}
	return "objects"
}

// ParseRowForm parses "objects" or "arrays" (also "object", "array").
// Anything else returns RowFormObjects and false.
func ParseRowForm(s string) (RowForm, bool) {
	switch s {
	case "objects", "object":
		return RowFormObjects, true
	case "arrays", "array":
		return RowFormArrays, true
	}
	return RowFormObjects, false
}

// Shaper converts column oriented categories
// into row oriented, display formatted data.
//
// The zero value shapes with camel-cased keys,
// DefaultDateLayout and UTC.
type Shaper struct {
	// KeyNaming maps category display names to row object keys.
	KeyNaming KeyNaming
	// DateLayout is the time layout for dateTime columns,
	// empty means DefaultDateLayout.
	DateLayout string
	// Location is used to interpret date values without zone
	// and to render all dates. If nil, values without zone are UTC
	// and zoned values render in their own offset.
	Location *time.Location
	// Formatter overrides the column type based formatting if not nil.
	// Cells it returns errors.ErrUnsupported for
	// fall back to the column type based formatting.
	Formatter CellFormatter
}

// ColumnKeys returns the row object keys of the categories.
func (s *Shaper) ColumnKeys(categories []Category) []string {
	keys := make([]string, len(categories))
	for i := range categories {
		keys[i] = s.KeyNaming.Key(categories[i].Source.DisplayName)
	}
	return keys
}

func (s *Shaper) formatter() CellFormatter {
	typeFormatter := NewColumnTypeCellFormatter(s.DateLayout, s.Location)
	if s.Formatter == nil {
		return typeFormatter
	}
	return CellFormatterChain{s.Formatter, typeFormatter}
}

// ShapeArrays returns one []string per row
// with the formatted values of all categories in category order.
// The row count is the number of values of the first category.
// No categories or no rows result in an empty, non-nil slice.
func (s *Shaper) ShapeArrays(ctx context.Context, categories []Category) ([][]string, error) {
	view := NewCategoriesView("", categories)
	rows, err := FormatViewAsStrings(ctx, view, s.formatter(), false)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = [][]string{}
	}
	return rows, nil
}

// ShapeObjects returns one RowObject per row
// mapping the column keys of the categories
// to their formatted values.
//
// Keys are derived from the display name of each category
// using s.KeyNaming, values are formatted by the column type
// of the category unless s.Formatter handles the cell:
//   - dateTime values render with s.DateLayout in s.Location,
//     nil and values that are no date render as InvalidDateText
//   - nil values of other columns render as UndefinedText
//   - all other values render like JavaScript's String(value)
//
// The row count is the number of values of the first category,
// missing cells of shorter categories are formatted as nil.
// No categories or no rows result in an empty, non-nil slice.
// If two categories map to the same key,
// the value of the later category wins.
// An error is only returned if ctx is canceled
// or s.Formatter fails.
//
// Example:
//
//	categories := []Category{
//	    NewCategory("Name", ColumnTypeText, "Alice", "Bob"),
//	    NewCategory("Order Date", ColumnTypeDateTime, "2023-01-05", nil),
//	}
//	rows, err := new(Shaper).ShapeObjects(ctx, categories)
//	if err != nil {
//	    return err
//	}
//	// rows[0] = {"name": "Alice", "orderDate": "05/01/2023"}
//	// rows[1] = {"name": "Bob", "orderDate": "Invalid Date"}
func (s *Shaper) ShapeObjects(ctx context.Context, categories []Category) ([]RowObject, error) {
	arrays, err := s.ShapeArrays(ctx, categories)
	if err != nil {
		return nil, err
	}
	keys := s.ColumnKeys(categories)
	objects := make([]RowObject, len(arrays))
	for row, values := range arrays {
		obj := make(RowObject, len(keys))
		for col, key := range keys {
			obj[key] = values[col]
		}
		objects[row] = obj
	}
	return objects, nil
}

// ShapeObjects shapes categories with a zero value Shaper
// using camel-cased keys and day/month/year dates in UTC.
func ShapeObjects(ctx context.Context, categories []Category) ([]RowObject, error) {
	var s Shaper
	return s.ShapeObjects(ctx, categories)
}

// ShapeArrays shapes categories with a zero value Shaper
// using day/month/year dates in UTC.
func ShapeArrays(ctx context.Context, categories []Category) ([][]string, error) {
	var s Shaper
	return s.ShapeArrays(ctx, categories)
}
