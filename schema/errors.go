// errors.go - Schema and query error kinds
package schema

import (
	"errors"
	"fmt"
)

var (
	ErrSchemaInconsistency = errors.New("schema inconsistency")
	ErrTableNotFound       = errors.New("table not found")
	ErrColumnNotFound      = errors.New("column not found")
	ErrDDLParse            = errors.New("cannot parse CREATE TABLE")
	ErrQueryParse          = errors.New("cannot parse query")
)

// NotFoundError reports an unknown table, or an unknown column of a known
// table when Column is set.
type NotFoundError struct {
	Table  string
	Column string
}

func (e *NotFoundError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("no such table: %s", e.Table)
	}
	return fmt.Sprintf("no such column: %s (table %s)", e.Column, e.Table)
}

func (e *NotFoundError) Unwrap() error {
	if e.Column == "" {
		return ErrTableNotFound
	}
	return ErrColumnNotFound
}

// Statement kinds carried by ParseError
const (
	KindCreateTable = "CREATE TABLE"
	KindSelect      = "SELECT"
)

// ParseError reports SQL text that could not be parsed.
type ParseError struct {
	Kind  string // KindCreateTable or KindSelect
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s %q: %v", e.Kind, e.Input, e.Err)
}

func (e *ParseError) Unwrap() []error {
	kind := ErrQueryParse
	if e.Kind == KindCreateTable {
		kind = ErrDDLParse
	}
	if e.Err == nil {
		return []error{kind}
	}
	return []error{kind, e.Err}
}

func ddlError(sql, format string, args ...interface{}) *ParseError {
	return &ParseError{Kind: KindCreateTable, Input: sql, Err: fmt.Errorf(format, args...)}
}

func queryError(sql, format string, args ...interface{}) *ParseError {
	return &ParseError{Kind: KindSelect, Input: sql, Err: fmt.Errorf(format, args...)}
}

// SchemaError reports a schema table row that contradicts itself or
// another row.
type SchemaError struct {
	Table  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema: table %s: %s", e.Table, e.Reason)
}

func (e *SchemaError) Unwrap() error { return ErrSchemaInconsistency }
