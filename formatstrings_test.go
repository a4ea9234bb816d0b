package regrid

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatViewAsStrings(t *testing.T) {
	tests := []struct {
		name         string
		view         View
		formatter    CellFormatter
		addHeaderRow bool
		want         [][]string
	}{
		{
			name: "no rows",
			view: NewStringsView("", nil, "A"),
			want: nil,
		},
		{
			name:         "header only",
			view:         NewStringsView("", nil, "Name", "Joined"),
			addHeaderRow: true,
			want:         [][]string{{"Name", "Joined"}},
		},
		{
			name: "short rows padded",
			view: NewStringsView("", [][]string{
				{"Alice", "05/01/2023"},
				{"Bob"},
			}, "Name", "Joined"),
			addHeaderRow: true,
			want: [][]string{
				{"Name", "Joined"},
				{"Alice", "05/01/2023"},
				{"Bob", ""},
			},
		},
		{
			name: "nil and pointer values",
			view: &AnyValuesView{
				Cols: []string{"A", "B"},
				Rows: [][]any{{nil, &[]int{5}[0]}},
			},
			want: [][]string{{"", "5"}},
		},
		{
			name: "column types",
			view: NewCategoriesView("", []Category{
				NewCategory("Day", ColumnTypeDateTime, "2023-12-31", nil),
				NewCategory("N", ColumnTypeNumeric, 1.5, nil),
			}),
			formatter:    NewColumnTypeCellFormatter("", nil),
			addHeaderRow: true,
			want: [][]string{
				{"Day", "N"},
				{"31/12/2023", "1.5"},
				{InvalidDateText, UndefinedText},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatViewAsStrings(context.Background(), tt.view, tt.formatter, tt.addHeaderRow)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFormatViewAsStrings_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	view := NewStringsView("", [][]string{{"x"}}, "A")
	_, err := FormatViewAsStrings(ctx, view, nil, false)
	require.ErrorIs(t, err, context.Canceled)
}

func TestStringColumnWidths(t *testing.T) {
	rows := [][]string{
		{"Name", "City"},
		{"Zoë", "東京都"},
		{"Bartholomew"},
	}
	require.Equal(t, []int{11, 6}, StringColumnWidths(rows, -1))
	require.Equal(t, []int{11}, StringColumnWidths(rows, 1))
	require.Nil(t, StringColumnWidths(nil, -1))
}
