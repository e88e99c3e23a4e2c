// column.go - Column definition recovered from CREATE TABLE
package schema

import "strings"

// ColumnDef is one column of a table definition.
type ColumnDef struct {
	Name        string // unquoted
	Type        string // declared type, "" when omitted
	Constraints string // remaining column constraint text
	Ordinal     int    // position in the record (0-based)
	NotNull     bool
	PrimaryKey  bool // PRIMARY KEY column constraint, or listed in a table PRIMARY KEY
	RowIDAlias  bool // INTEGER PRIMARY KEY on a rowid table; stored as NULL

	pkDesc bool
}

// IsInteger reports whether the declared type is exactly INTEGER, the only
// type that makes a primary key an alias of the row id.
func (c *ColumnDef) IsInteger() bool {
	return strings.EqualFold(c.Type, "INTEGER")
}
