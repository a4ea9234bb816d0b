package sqltable

import (
	"reflect"
	"strings"
	"time"

	"github.com/domonda/go-regrid"
)

var databaseTypeColumnTypes = map[string]regrid.ColumnType{
	"BOOL":    regrid.ColumnTypeBool,
	"BOOLEAN": regrid.ColumnTypeBool,

	"INT":       regrid.ColumnTypeInteger,
	"INT2":      regrid.ColumnTypeInteger,
	"INT4":      regrid.ColumnTypeInteger,
	"INT8":      regrid.ColumnTypeInteger,
	"INTEGER":   regrid.ColumnTypeInteger,
	"TINYINT":   regrid.ColumnTypeInteger,
	"SMALLINT":  regrid.ColumnTypeInteger,
	"MEDIUMINT": regrid.ColumnTypeInteger,
	"BIGINT":    regrid.ColumnTypeInteger,
	"SERIAL":    regrid.ColumnTypeInteger,
	"BIGSERIAL": regrid.ColumnTypeInteger,

	"NUMERIC":          regrid.ColumnTypeNumeric,
	"DECIMAL":          regrid.ColumnTypeNumeric,
	"REAL":             regrid.ColumnTypeNumeric,
	"FLOAT":            regrid.ColumnTypeNumeric,
	"FLOAT4":           regrid.ColumnTypeNumeric,
	"FLOAT8":           regrid.ColumnTypeNumeric,
	"DOUBLE":           regrid.ColumnTypeNumeric,
	"DOUBLE PRECISION": regrid.ColumnTypeNumeric,
	"MONEY":            regrid.ColumnTypeNumeric,

	"DATE":        regrid.ColumnTypeDateTime,
	"DATETIME":    regrid.ColumnTypeDateTime,
	"TIMESTAMP":   regrid.ColumnTypeDateTime,
	"TIMESTAMPTZ": regrid.ColumnTypeDateTime,

	"INTERVAL": regrid.ColumnTypeDuration,

	"TEXT":              regrid.ColumnTypeText,
	"CHAR":              regrid.ColumnTypeText,
	"BPCHAR":            regrid.ColumnTypeText,
	"VARCHAR":           regrid.ColumnTypeText,
	"NVARCHAR":          regrid.ColumnTypeText,
	"CHARACTER":         regrid.ColumnTypeText,
	"CHARACTER VARYING": regrid.ColumnTypeText,
	"CLOB":              regrid.ColumnTypeText,
	"NAME":              regrid.ColumnTypeText,
	"UUID":              regrid.ColumnTypeText,
	"JSON":              regrid.ColumnTypeText,
	"JSONB":             regrid.ColumnTypeText,
	"TIME":              regrid.ColumnTypeText,
	"TIMETZ":            regrid.ColumnTypeText,

	"BLOB":      regrid.ColumnTypeBinary,
	"BYTEA":     regrid.ColumnTypeBinary,
	"BINARY":    regrid.ColumnTypeBinary,
	"VARBINARY": regrid.ColumnTypeBinary,
}

// ColumnTypeOfDatabaseType returns the ColumnType for a database
// type name as reported by sql.ColumnType.DatabaseTypeName.
// Length or precision arguments like in "VARCHAR(255)" are ignored.
// Unknown type names fall back to the Go scanType,
// ColumnTypeUnknown is returned if that doesn't help either.
func ColumnTypeOfDatabaseType(databaseTypeName string, scanType reflect.Type) regrid.ColumnType {
	name := strings.ToUpper(strings.TrimSpace(databaseTypeName))
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = strings.TrimSpace(name[:i])
	}
	name = strings.TrimSuffix(name, " WITH TIME ZONE")
	name = strings.TrimSuffix(name, " WITHOUT TIME ZONE")
	name = strings.TrimSuffix(name, " UNSIGNED")
	if t, ok := databaseTypeColumnTypes[name]; ok {
		return t
	}
	return columnTypeOfGoType(scanType)
}

var typeOfTime = reflect.TypeFor[time.Time]()

func columnTypeOfGoType(t reflect.Type) regrid.ColumnType {
	if t == nil {
		return regrid.ColumnTypeUnknown
	}
	// sql.NullString and friends
	if t.Kind() == reflect.Struct && t.NumField() == 2 && t.Field(1).Name == "Valid" {
		t = t.Field(0).Type
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == typeOfTime {
		return regrid.ColumnTypeDateTime
	}
	switch t.Kind() {
	case reflect.Bool:
		return regrid.ColumnTypeBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return regrid.ColumnTypeInteger
	case reflect.Float32, reflect.Float64:
		return regrid.ColumnTypeNumeric
	case reflect.String:
		return regrid.ColumnTypeText
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return regrid.ColumnTypeBinary
		}
	}
	return regrid.ColumnTypeUnknown
}

// DatabaseTypeName returns the database type name
// reported for columns of a view with the passed ColumnType.
func DatabaseTypeName(t regrid.ColumnType) string {
	switch t {
	case regrid.ColumnTypeText:
		return "TEXT"
	case regrid.ColumnTypeNumeric:
		return "NUMERIC"
	case regrid.ColumnTypeInteger:
		return "INTEGER"
	case regrid.ColumnTypeBool:
		return "BOOLEAN"
	case regrid.ColumnTypeDateTime:
		return "TIMESTAMP"
	case regrid.ColumnTypeDuration:
		return "INTERVAL"
	case regrid.ColumnTypeBinary:
		return "BLOB"
	}
	return ""
}
