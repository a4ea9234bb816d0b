package sqltable

import (
	"context"
	"database/sql"
)

var (
	_ Rows    = &sql.Rows{}
	_ Querier = &sql.DB{}
	_ Querier = &sql.Tx{}
	_ Querier = &sql.Conn{}
)

// Rows is the subset of *sql.Rows methods
// needed to read a query result.
type Rows interface {
	Columns() ([]string, error)
	// ColumnTypes returns the database type information of the columns.
	// Drivers that don't report types return an empty DatabaseTypeName.
	ColumnTypes() ([]*sql.ColumnType, error)
	Scan(dest ...any) error
	Close() error
	Next() bool
	Err() error
}

// Querier is implemented by *sql.DB, *sql.Tx and *sql.Conn.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}
