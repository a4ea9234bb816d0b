package regrid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCategoriesView(t *testing.T) {
	view := NewCategoriesView("Sales", []Category{
		NewCategory("Region", ColumnTypeText, "North", "South", "East"),
		NewCategory("Total", ColumnTypeNumeric, 10.0, 20.0),
	})
	require.Equal(t, "Sales", view.Title())
	require.Equal(t, []string{"Region", "Total"}, view.Columns())
	require.Equal(t, 3, view.NumRows())
	require.Equal(t, "South", view.Cell(1, 0))
	require.Equal(t, 20.0, view.Cell(1, 1))
	require.Nil(t, view.Cell(2, 1), "shorter category")
	require.Nil(t, view.Cell(0, 2), "column out of bounds")
	require.Nil(t, view.Cell(-1, 0), "negative row")
	require.Equal(t, ColumnTypeNumeric, view.ColumnType(1))
	require.Equal(t, ColumnTypeUnknown, view.ColumnType(5))
	require.False(t, view.ReflectCell(2, 1).IsValid())

	empty := NewCategoriesView("", nil)
	require.Equal(t, 0, empty.NumRows())
	require.Empty(t, empty.Columns())
}

func TestCategoriesFromView(t *testing.T) {
	view := NewStringsView("", [][]string{
		{"Name", "Born"},
		{"Ada", "1815-12-10"},
		{"Alan"},
	})
	categories := CategoriesFromView(view, []ColumnType{ColumnTypeText})
	require.Equal(t, []Category{
		NewCategory("Name", ColumnTypeText, "Ada", "Alan"),
		NewCategory("Born", ColumnTypeUnknown, "1815-12-10", ""),
	}, categories)
}

func TestAnyValuesView_ColumnTypes(t *testing.T) {
	source := NewCategoriesView("Members", []Category{
		NewCategory("Name", ColumnTypeText, "Alice", "Bob"),
		NewCategory("Joined", ColumnTypeDateTime, "2023-01-05"),
	})
	view := NewAnyValuesViewFrom(source)
	require.Equal(t, "Members", view.Title())
	require.Equal(t, [][]any{{"Alice", "2023-01-05"}, {"Bob", nil}}, view.Rows)
	require.Equal(t, ColumnTypeDateTime, view.ColumnType(1))
	require.Equal(t, ColumnTypeUnknown, view.ColumnType(2))

	categories := CategoriesFromView(view, nil)
	require.Equal(t, ColumnTypeDateTime, categories[1].Source.ColumnType())
	require.Equal(t, []any{"2023-01-05", nil}, categories[1].Values)

	categories = CategoriesFromView(view, []ColumnType{})
	require.Equal(t, ColumnTypeUnknown, categories[1].Source.ColumnType(), "empty colTypes override the view")
}
