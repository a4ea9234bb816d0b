// Package sqltable reads SQL query results as categories
// and provides a read-only database/sql driver
// that answers simple SELECT queries from in-memory views.
package sqltable

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"

	"github.com/domonda/go-regrid"
)

// ErrReadOnly is returned for statements and transactions
// that would modify a views database.
var ErrReadOnly = errors.New("views database is read-only")

// NewViewsDB returns a database where every view
// can be queried as table with its map key as name.
//
// Only queries of the form
//
//	SELECT * | col, "Col 2", … FROM table | "table" [;]
//
// without placeholders are supported.
// Unknown tables and columns are also looked up case-insensitive.
// The database types of the result columns are derived
// from views implementing regrid.ColumnTyper.
func NewViewsDB(views map[string]regrid.View) *sql.DB {
	return sql.OpenDB(viewsConn{views: views})
}

// NewViewDB returns a database with view as the only table.
func NewViewDB(table string, view regrid.View) *sql.DB {
	return NewViewsDB(map[string]regrid.View{table: view})
}

var (
	_ driver.Connector      = viewsConn{}
	_ driver.Conn           = viewsConn{}
	_ driver.QueryerContext = viewsConn{}
	_ driver.Pinger         = viewsConn{}
)

// viewsConn is driver, connector and connection at once
// because it holds no state besides the views.
type viewsConn struct {
	views map[string]regrid.View
}

func (c viewsConn) Connect(context.Context) (driver.Conn, error) { return c, nil }
func (c viewsConn) Driver() driver.Driver                        { return c }
func (c viewsConn) Open(string) (driver.Conn, error)             { return c, nil }
func (viewsConn) Ping(context.Context) error                     { return nil }
func (viewsConn) Close() error                                   { return nil }

func (c viewsConn) Prepare(query string) (driver.Stmt, error) {
	return newStmt(c.views, query)
}

func (c viewsConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(args) > 0 {
		return nil, errors.New("query placeholders are not supported")
	}
	s, err := newStmt(c.views, query)
	if err != nil {
		return nil, err
	}
	return s.Query(nil)
}

func (viewsConn) Begin() (driver.Tx, error) {
	return nil, ErrReadOnly
}
