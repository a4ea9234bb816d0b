package sqltable

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"

	"github.com/domonda/go-regrid"
)

var _ driver.Stmt = new(stmt)

// stmt is a SELECT query resolved against a view at prepare time.
type stmt struct {
	view regrid.View
}

// newStmt parses query and resolves its table
// and columns against views.
func newStmt(views map[string]regrid.View, query string) (*stmt, error) {
	queryColumns, table, err := parseQuery(query)
	if err != nil {
		return nil, err
	}
	view, ok := views[table]
	if !ok {
		for name, v := range views {
			if strings.EqualFold(name, table) {
				view, ok = v, true
				break
			}
		}
	}
	if !ok || view == nil {
		return nil, fmt.Errorf("table %q not found", table)
	}
	sourceColumns := view.Columns()
	if slices.Equal(queryColumns, []string{"*"}) || slices.Equal(queryColumns, sourceColumns) {
		return &stmt{view: view}, nil
	}
	mapping := make([]int, len(queryColumns))
	for i, column := range queryColumns {
		mapping[i] = columnIndex(sourceColumns, column)
		if mapping[i] == -1 {
			return nil, fmt.Errorf("column %q not found in table %q", column, table)
		}
	}
	return &stmt{view: &projectedView{source: view, columns: queryColumns, mapping: mapping}}, nil
}

// columnIndex returns the index of the exact column name,
// else of the first case-insensitive match or -1.
func columnIndex(columns []string, name string) int {
	if i := slices.Index(columns, name); i >= 0 {
		return i
	}
	return slices.IndexFunc(columns, func(c string) bool { return strings.EqualFold(c, name) })
}

func (s *stmt) Close() error {
	return nil
}

// NumInput returns zero because placeholders are not supported.
func (s *stmt) NumInput() int {
	return 0
}

func (s *stmt) Exec([]driver.Value) (driver.Result, error) {
	return nil, ErrReadOnly
}

func (s *stmt) Query(args []driver.Value) (driver.Rows, error) {
	if len(args) > 0 {
		return nil, errors.New("query placeholders are not supported")
	}
	return &driverRows{view: s.view}, nil
}

var (
	_ driver.Rows                           = new(driverRows)
	_ driver.RowsColumnTypeDatabaseTypeName = new(driverRows)
)

type driverRows struct {
	view     regrid.View
	rowIndex int
}

func (r *driverRows) Columns() []string {
	return r.view.Columns()
}

// ColumnTypeDatabaseTypeName implements driver.RowsColumnTypeDatabaseTypeName
// for views implementing regrid.ColumnTyper.
func (r *driverRows) ColumnTypeDatabaseTypeName(index int) string {
	if typer, ok := r.view.(regrid.ColumnTyper); ok {
		return DatabaseTypeName(typer.ColumnType(index))
	}
	return ""
}

func (r *driverRows) Close() error {
	r.rowIndex = -1
	return nil
}

func (r *driverRows) Next(dest []driver.Value) (err error) {
	if r.rowIndex < 0 || r.rowIndex >= r.view.NumRows() {
		return io.EOF
	}
	for col := range dest {
		dest[col], err = driver.DefaultParameterConverter.ConvertValue(r.view.Cell(r.rowIndex, col))
		if err != nil {
			return fmt.Errorf("column %q: %w", r.view.Columns()[col], err)
		}
	}
	r.rowIndex++
	return nil
}

// projectedView selects and reorders the columns of source.
type projectedView struct {
	source  regrid.View
	columns []string
	mapping []int
}

func (v *projectedView) Title() string     { return v.source.Title() }
func (v *projectedView) Columns() []string { return v.columns }
func (v *projectedView) NumRows() int      { return v.source.NumRows() }

func (v *projectedView) Cell(row, col int) any {
	if col < 0 || col >= len(v.mapping) {
		return nil
	}
	return v.source.Cell(row, v.mapping[col])
}

func (v *projectedView) ColumnType(col int) regrid.ColumnType {
	typer, ok := v.source.(regrid.ColumnTyper)
	if !ok || col < 0 || col >= len(v.mapping) {
		return regrid.ColumnTypeUnknown
	}
	return typer.ColumnType(v.mapping[col])
}

var queryRegexp = regexp.MustCompile(`^(?:SELECT|select)\s+(\*|(?:[a-zA-Z]\w*|"[^",]+")(?:\s*,\s*[a-zA-Z]\w*|\s*,\s*"[^",]+")*)\s+(?:FROM|from)\s+([a-zA-Z][\w.]*|"[^",]+")(?:\s*;)*$`)

func parseQuery(query string) (columns []string, table string, err error) {
	query = strings.TrimSpace(query)
	m := queryRegexp.FindStringSubmatch(query)
	if len(m) != 3 {
		return nil, "", fmt.Errorf("invalid query %q", query)
	}
	columns = strings.Split(m[1], ",")
	for i := range columns {
		columns[i] = unquote(strings.TrimSpace(columns[i]))
	}
	table = unquote(m[2])
	return columns, table, nil
}

func unquote(str string) string {
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		return str[1 : len(str)-1]
	}
	return str
}
