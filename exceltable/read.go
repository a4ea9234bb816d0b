// Package exceltable reads Excel workbooks (.xlsx, .xlsm, .xltm, .xltx)
// as string views or as categories that can be shaped into grid rows.
//
// Empty rows and columns at the edges of a sheet are removed
// and the first remaining row is used as column titles.
//
// Pass rawCellStrings = true to get unformatted cell values,
// else the number format of every cell is applied.
package exceltable

import (
	"errors"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/domonda/go-regrid"
	"github.com/domonda/go-regrid/csvtable"
)

// ReadFirstSheet reads the first sheet of the workbook from reader.
func ReadFirstSheet(reader io.Reader, rawCellStrings bool) (sheetView *regrid.StringsView, err error) {
	f, e := excelize.OpenReader(reader)
	if e != nil {
		return nil, e
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return readSheet(f, "", rawCellStrings)
}

// Read reads all non-empty sheets of the workbook from reader.
// The title of every view is the sheet name.
func Read(reader io.Reader, rawCellStrings bool) (sheetViews []*regrid.StringsView, err error) {
	f, e := excelize.OpenReader(reader)
	if e != nil {
		return nil, e
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return readSheets(f, rawCellStrings)
}

// ReadLocalFile reads all non-empty sheets of a workbook file.
func ReadLocalFile(filename string, rawCellStrings bool) (sheetViews []*regrid.StringsView, err error) {
	f, e := excelize.OpenFile(filename)
	if e != nil {
		return nil, e
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return readSheets(f, rawCellStrings)
}

// ReadCategories reads the sheet with the passed name,
// or the first sheet if name is empty, and returns
// one category per column with inferred column types.
// See csvtable.CategoriesFromRows.
func ReadCategories(reader io.Reader, sheet string, rawCellStrings bool) (categories []regrid.Category, err error) {
	f, e := excelize.OpenReader(reader)
	if e != nil {
		return nil, e
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	view, err := readSheet(f, sheet, rawCellStrings)
	if err != nil {
		return nil, err
	}
	return csvtable.CategoriesFromRows(append([][]string{view.Cols}, view.Rows...))
}

func readSheets(f *excelize.File, rawCellStrings bool) ([]*regrid.StringsView, error) {
	var sheetViews []*regrid.StringsView
	for _, sheet := range f.GetSheetList() {
		view, err := readSheet(f, sheet, rawCellStrings)
		if err != nil {
			if errors.Is(err, ErrEmptySheet) {
				continue
			}
			return nil, err
		}
		sheetViews = append(sheetViews, view)
	}
	return sheetViews, nil
}

func readSheet(f *excelize.File, sheet string, rawCellStrings bool) (*regrid.StringsView, error) {
	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, ErrSheetNotExist{SheetName: "<FirstSheet>"}
		}
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, ErrSheetNotExist{SheetName: sheet}
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: rawCellStrings})
	if err != nil {
		return nil, err
	}
	rows = csvtable.RemoveEmptyRows(rows)
	rows, numCols := RemoveEmptyColumns(rows)
	if len(rows) == 0 || numCols == 0 {
		return nil, ErrEmptySheet
	}
	columns := rows[0]
	if len(columns) < numCols {
		columns = append(columns, make([]string, numCols-len(columns))...)
	}
	return regrid.NewStringsView(sheet, rows[1:], columns...), nil
}

// RemoveEmptyColumns removes columns where no row
// has a non-empty field from the left and right edge of rows.
// Rows may have different lengths, numCols is the
// length of the longest row after the removal.
func RemoveEmptyColumns(rows [][]string) (result [][]string, numCols int) {
	left, right := -1, -1
	for _, row := range rows {
		for col, field := range row {
			if field == "" {
				continue
			}
			if left == -1 || col < left {
				left = col
			}
			if col > right {
				right = col
			}
		}
	}
	if left == -1 {
		return rows, 0
	}
	result = make([][]string, len(rows))
	for i, row := range rows {
		end := min(len(row), right+1)
		if left < end {
			result[i] = row[left:end]
		} else {
			result[i] = []string{}
		}
	}
	return result, right + 1 - left
}
