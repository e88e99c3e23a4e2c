// table_def.go - Table definition and schema catalog entry
package schema

import (
	"fmt"
)

// TableDef is a schema catalog entry: a table's root page and the columns
// recovered from its CREATE TABLE text.
type TableDef struct {
	Name         string
	RootPage     int // 1-based page number
	SQL          string
	Columns      []*ColumnDef // in declaration order
	PrimaryKey   []string     // column names in key order
	Temp         bool
	WithoutRowID bool
	Strict       bool

	columnMap  map[string]int
	rowIDAlias int
}

// NewTableDef creates a new table definition
func NewTableDef(name string) *TableDef {
	return &TableDef{
		Name:       name,
		columnMap:  make(map[string]int),
		rowIDAlias: -1,
	}
}

// AddColumn appends a column and assigns its ordinal.
func (td *TableDef) AddColumn(col *ColumnDef) error {
	if _, exists := td.columnMap[col.Name]; exists {
		return fmt.Errorf("duplicate column name: %s", col.Name)
	}
	col.Ordinal = len(td.Columns)
	td.Columns = append(td.Columns, col)
	td.columnMap[col.Name] = col.Ordinal
	if col.PrimaryKey {
		td.PrimaryKey = append(td.PrimaryKey, col.Name)
	}
	return nil
}

// SetPrimaryKey records a table-level PRIMARY KEY constraint.
func (td *TableDef) SetPrimaryKey(keys []string) error {
	if len(td.PrimaryKey) > 0 {
		return fmt.Errorf("table %s has more than one primary key", td.Name)
	}
	for _, key := range keys {
		i, ok := td.columnMap[key]
		if !ok {
			return fmt.Errorf("primary key column %s not found", key)
		}
		td.Columns[i].PrimaryKey = true
	}
	td.PrimaryKey = keys
	return nil
}

// resolveRowIDAlias marks the INTEGER PRIMARY KEY column, if any. Only a
// single-column key on a rowid table qualifies; a column constraint with
// DESC does not.
func (td *TableDef) resolveRowIDAlias() {
	td.rowIDAlias = -1
	if td.WithoutRowID || len(td.PrimaryKey) != 1 {
		return
	}
	col := td.Columns[td.columnMap[td.PrimaryKey[0]]]
	if col.IsInteger() && !col.pkDesc {
		col.RowIDAlias = true
		td.rowIDAlias = col.Ordinal
	}
}

// RowIDAlias returns the ordinal of the INTEGER PRIMARY KEY column, or -1.
func (td *TableDef) RowIDAlias() int { return td.rowIDAlias }

// ColumnIndex resolves a column name to its ordinal. Matching is exact and
// case-sensitive.
func (td *TableDef) ColumnIndex(name string) (int, error) {
	i, ok := td.columnMap[name]
	if !ok {
		return -1, &NotFoundError{Table: td.Name, Column: name}
	}
	return i, nil
}

// ColumnNames returns the column names in declaration order.
func (td *TableDef) ColumnNames() []string {
	names := make([]string, len(td.Columns))
	for i, c := range td.Columns {
		names[i] = c.Name
	}
	return names
}
