package regrid

import (
	"context"

	"github.com/mattn/go-runewidth"
)

// FormatViewAsStrings returns the formatted cells of view
// as one []string per row.
//
// Cells formatter returns errors.ErrUnsupported for,
// or all cells if formatter is nil, are printed with fmt.Sprint
// and null-like values become empty strings.
// If addHeaderRow is true, then the first row holds
// the column titles passed through the same formatter.
// The result is nil for a view without rows and header.
func FormatViewAsStrings(ctx context.Context, view View, formatter CellFormatter, addHeaderRow bool) ([][]string, error) {
	formatter = TryFormattersOrSprint(formatter)
	numCols := len(view.Columns())

	var rows [][]string
	if addHeaderRow {
		header, err := formatRow(ctx, NewHeaderViewFrom(view), formatter, 0, numCols)
		if err != nil {
			return nil, err
		}
		rows = append(rows, header)
	}
	for row := range view.NumRows() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		strs, err := formatRow(ctx, view, formatter, row, numCols)
		if err != nil {
			return nil, err
		}
		rows = append(rows, strs)
	}
	return rows, nil
}

func formatRow(ctx context.Context, view View, formatter CellFormatter, row, numCols int) (strs []string, err error) {
	strs = make([]string, numCols)
	for col := range strs {
		strs[col], _, err = formatter.FormatCell(ctx, view, row, col)
		if err != nil {
			return nil, err
		}
	}
	return strs, nil
}

// StringColumnWidths returns the display widths of the columns
// of rows in terminal cells, counting East Asian wide runes as two.
// If numCols is negative, then the maximum row length is used.
func StringColumnWidths(rows [][]string, numCols int) []int {
	if numCols < 0 {
		for _, row := range rows {
			numCols = max(numCols, len(row))
		}
		if numCols <= 0 {
			return nil
		}
	}
	widths := make([]int, numCols)
	for _, row := range rows {
		for col, cell := range row[:min(len(row), numCols)] {
			widths[col] = max(widths[col], runewidth.StringWidth(cell))
		}
	}
	return widths
}
