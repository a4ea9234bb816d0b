package csvtable

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/domonda/go-regrid"
)

// ErrNoHeaderRow is returned when CSV data
// has no row to take the column names from.
var ErrNoHeaderRow = errors.New("CSV has no header row")

// ReadCategories parses CSV data detecting its format
// and returns one category per column of the first row.
// See CategoriesFromRows.
func ReadCategories(data []byte, config *FormatDetectionConfig) ([]regrid.Category, *Format, error) {
	rows, format, err := ParseDetectFormat(data, config)
	if err != nil {
		return nil, format, err
	}
	categories, err := CategoriesFromRows(rows)
	return categories, format, err
}

// CategoriesFromRows returns one category per field
// of the first non-empty row which holds the display names.
// The values of every category are the fields of all following
// non-empty rows, missing fields are empty strings.
// The type descriptor of every category is set to the
// column type returned by InferColumnType for its values.
func CategoriesFromRows(rows [][]string) ([]regrid.Category, error) {
	rows = RemoveEmptyRows(rows)
	if len(rows) == 0 {
		return nil, ErrNoHeaderRow
	}
	header, body := rows[0], rows[1:]
	categories := make([]regrid.Category, len(header))
	for col, name := range header {
		strs := make([]string, len(body))
		values := make([]any, len(body))
		for row := range body {
			if col < len(body[row]) {
				strs[row] = body[row][col]
			}
			values[row] = strs[row]
		}
		categories[col] = regrid.NewCategory(strings.TrimSpace(name), InferColumnType(strs), values...)
	}
	return categories, nil
}

// InferColumnType returns the most specific column type
// all non-empty values can be parsed as, in the order
// integer, numeric, bool, dateTime.
// ColumnTypeText is returned if no type matches
// or all values are empty.
func InferColumnType(values []string) regrid.ColumnType {
	candidates := []struct {
		typ   regrid.ColumnType
		parse func(string) bool
	}{
		{regrid.ColumnTypeInteger, func(s string) bool { _, err := strconv.ParseInt(s, 10, 64); return err == nil }},
		{regrid.ColumnTypeNumeric, func(s string) bool { _, err := strconv.ParseFloat(s, 64); return err == nil }},
		{regrid.ColumnTypeBool, func(s string) bool { _, err := strconv.ParseBool(s); return err == nil && !isDigits(s) }},
		{regrid.ColumnTypeDateTime, func(s string) bool { _, err := regrid.ParseDate(s, time.UTC); return err == nil }},
	}
	for _, c := range candidates {
		matched := false
		for _, v := range values {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			if !c.parse(v) {
				matched = false
				break
			}
			matched = true
		}
		if matched {
			return c.typ
		}
	}
	return regrid.ColumnTypeText
}

func isDigits(s string) bool {
	return strings.Trim(s, "0123456789") == ""
}

// RemoveEmptyRows returns rows without rows
// that have no fields or only empty fields.
func RemoveEmptyRows(rows [][]string) [][]string {
	result := make([][]string, 0, len(rows))
	for _, row := range rows {
		if !isEmptyRow(row) {
			result = append(result, row)
		}
	}
	return result
}

func isEmptyRow(row []string) bool {
	for _, field := range row {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
