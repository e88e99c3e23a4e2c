// exports.go - Re-exports for main package API
package gosqlite

import (
	"github.com/wilhasse/go-sqlite/column"
	"github.com/wilhasse/go-sqlite/format"
	"github.com/wilhasse/go-sqlite/internal/config"
	"github.com/wilhasse/go-sqlite/page"
	"github.com/wilhasse/go-sqlite/record"
	"github.com/wilhasse/go-sqlite/scan"
	"github.com/wilhasse/go-sqlite/schema"
)

// Config is an alias for config.Config, re-exported for user convenience.
type Config = config.Config

// DefaultConfig returns the default session configuration.
func DefaultConfig() *Config { return config.DefaultConfig() }

// Re-export types
type (
	DatabaseHeader = page.DatabaseHeader
	Page           = page.Page
	PageType       = format.PageType
	Record         = record.Record
	Value          = column.Value
	TableDef       = schema.TableDef
	ColumnDef      = schema.ColumnDef
	Catalog        = schema.Catalog
	Query          = schema.Query
	Condition      = schema.Condition
	Rows           = scan.Rows

	IOError       = format.IOError
	PageTypeError = format.PageTypeError
	RecordError   = format.RecordError
	NotFoundError = schema.NotFoundError
	ParseError    = schema.ParseError
	SchemaError   = schema.SchemaError
)

// Error kinds, for use with errors.Is
var (
	ErrIO                      = format.ErrIO
	ErrNotDatabase             = format.ErrNotDatabase
	ErrInvalidPageSize         = format.ErrInvalidPageSize
	ErrUnsupportedTextEncoding = format.ErrUnsupportedTextEncoding
	ErrUnsupportedPageType     = format.ErrUnsupportedPageType
	ErrMalformedRecord         = format.ErrMalformedRecord
	ErrUnsupportedOverflow     = format.ErrUnsupportedOverflow
	ErrSchemaInconsistency     = schema.ErrSchemaInconsistency
	ErrTableNotFound           = schema.ErrTableNotFound
	ErrColumnNotFound          = schema.ErrColumnNotFound
	ErrDDLParse                = schema.ErrDDLParse
	ErrQueryParse              = schema.ErrQueryParse
)

// Re-export functions
var (
	ParseDatabaseHeader = page.ParseDatabaseHeader
	ParseSelect         = schema.ParseSelect
	ParseCreateTable    = schema.ParseCreateTable
	DecodeRecord        = record.Decode
)
