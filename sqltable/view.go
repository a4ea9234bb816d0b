package sqltable

import (
	"context"
	"database/sql"
	"reflect"
	"slices"

	"github.com/domonda/go-regrid"
)

// ScanRowsAsView reads all rows into an AnyValuesView
// and closes rows.
func ScanRowsAsView(ctx context.Context, rows Rows) (*regrid.AnyValuesView, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	view := &regrid.AnyValuesView{Cols: columns}
	for rows.Next() {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		scannedValues := make([]any, len(columns))
		valueScanners := make([]any, len(columns))
		for i := range valueScanners {
			valueScanners[i] = valueScanner{&scannedValues[i]}
		}
		err = rows.Scan(valueScanners...)
		if err != nil {
			return view, err
		}
		view.Rows = append(view.Rows, scannedValues)
	}
	return view, rows.Err()
}

// ScanRowsAsCategories reads all rows as one category per column
// and closes rows.
//
// Column types are taken from the database type names,
// see ColumnTypeOfDatabaseType. If the driver reports nothing usable,
// the Go type of the first non-nil value of the column decides.
// Byte slices of non-binary columns are converted to strings.
func ScanRowsAsCategories(ctx context.Context, rows Rows) ([]regrid.Category, error) {
	sqlColTypes, err := rows.ColumnTypes()
	if err != nil {
		rows.Close()
		return nil, err
	}
	view, err := ScanRowsAsView(ctx, rows)
	if err != nil {
		return nil, err
	}

	colTypes := make([]regrid.ColumnType, len(view.Cols))
	view.Types = colTypes
	for col := range colTypes {
		if col < len(sqlColTypes) {
			colTypes[col] = ColumnTypeOfDatabaseType(sqlColTypes[col].DatabaseTypeName(), sqlColTypes[col].ScanType())
		}
		if colTypes[col] == regrid.ColumnTypeUnknown {
			colTypes[col] = columnTypeOfValues(view, col)
		}
		if colTypes[col] == regrid.ColumnTypeBinary {
			continue
		}
		for _, row := range view.Rows {
			if b, ok := row[col].([]byte); ok {
				row[col] = string(b)
			}
		}
	}
	return regrid.CategoriesFromView(view, nil), nil
}

// QueryCategories executes query with args and returns
// the result as categories, see ScanRowsAsCategories.
func QueryCategories(ctx context.Context, db Querier, query string, args ...any) ([]regrid.Category, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return ScanRowsAsCategories(ctx, rows)
}

func columnTypeOfValues(view *regrid.AnyValuesView, col int) regrid.ColumnType {
	for _, row := range view.Rows {
		if v := row[col]; v != nil {
			if _, ok := v.([]byte); ok {
				return regrid.ColumnTypeText
			}
			return columnTypeOfGoType(reflect.TypeOf(v))
		}
	}
	return regrid.ColumnTypeUnknown
}

var _ sql.Scanner = new(valueScanner)

type valueScanner struct {
	dest *any
}

// Scan implements the database/sql.Scanner interface.
func (s valueScanner) Scan(src any) error {
	if b, ok := src.([]byte); ok {
		// Copy bytes because they won't be valid after this method call
		src = slices.Clone(b)
	}
	*s.dest = src
	return nil
}
