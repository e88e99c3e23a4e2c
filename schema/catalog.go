// catalog.go - Schema catalog built from the schema table on page 0
package schema

import (
	"fmt"
	"log/slog"

	"github.com/wilhasse/go-sqlite/column"
	"github.com/wilhasse/go-sqlite/internal/logging"
	"github.com/wilhasse/go-sqlite/page"
	"github.com/wilhasse/go-sqlite/record"
)

// Schema table columns, in record order
const (
	colObjectType = iota
	colObjectName
	colTableName
	colRootPage
	colSQL
)

// Catalog maps table names to their definitions. It is built once per
// session and is read-only afterwards.
type Catalog struct {
	tables []*TableDef // schema table cell order
	byName map[string]*TableDef
}

// NewCatalog creates a catalog from already resolved definitions.
func NewCatalog(defs ...*TableDef) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]*TableDef)}
	for _, def := range defs {
		if err := c.add(def); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) add(def *TableDef) error {
	if def.RootPage < 1 {
		return &SchemaError{Table: def.Name, Reason: fmt.Sprintf("invalid root page %d", def.RootPage)}
	}
	if _, dup := c.byName[def.Name]; dup {
		return &SchemaError{Table: def.Name, Reason: "defined more than once"}
	}
	c.tables = append(c.tables, def)
	c.byName[def.Name] = def
	return nil
}

// BuildCatalog decodes every cell of the schema page as a schema table row
// (type, name, tbl_name, rootpage, sql) and keeps the CREATE TABLE rows.
// Rows without SQL text, and indexes, views and triggers, are skipped.
func BuildCatalog(p *page.Page, logger *slog.Logger) (*Catalog, error) {
	log := logging.WithPage(logger, p.Index)
	c := &Catalog{byName: make(map[string]*TableDef)}

	it := record.NewIterator(p)
	for it.Next() {
		rec := it.Record()
		def, err := entryFromRecord(rec)
		if err != nil {
			return nil, err
		}
		if def == nil {
			log.Debug("schema object skipped",
				"type", rec.Value(colObjectType).String(), "name", rec.Value(colObjectName).String())
			continue
		}
		if err := c.add(def); err != nil {
			return nil, err
		}
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("schema page: %w", err)
	}

	log.Debug("catalog built", "tables", len(c.tables))
	return c, nil
}

// entryFromRecord returns nil, nil for rows that do not define a table.
func entryFromRecord(rec *record.Record) (*TableDef, error) {
	sql, ok := rec.Value(colSQL).(column.Text)
	if !ok || !IsCreateTable(string(sql)) {
		return nil, nil
	}

	tblName, ok := rec.Value(colTableName).(column.Text)
	if !ok {
		return nil, &SchemaError{Table: rec.Value(colObjectName).String(),
			Reason: fmt.Sprintf("tbl_name is %s, want TEXT", rec.Value(colTableName).Kind())}
	}
	root, ok := rec.Value(colRootPage).(column.Integer)
	if !ok {
		return nil, &SchemaError{Table: string(tblName),
			Reason: fmt.Sprintf("rootpage is %s, want INTEGER", rec.Value(colRootPage).Kind())}
	}

	def, err := ParseCreateTable(string(sql))
	if err != nil {
		return nil, err
	}
	if def.Name != string(tblName) {
		return nil, &SchemaError{Table: string(tblName),
			Reason: fmt.Sprintf("CREATE TABLE names %q", def.Name)}
	}
	def.RootPage = int(root)
	def.SQL = string(sql)
	return def, nil
}

// Lookup returns the definition of a table. Names match exactly.
func (c *Catalog) Lookup(name string) (*TableDef, error) {
	def, ok := c.byName[name]
	if !ok {
		return nil, &NotFoundError{Table: name}
	}
	return def, nil
}

// RootPage returns the 1-based root page number of a table.
func (c *Catalog) RootPage(name string) (int, error) {
	def, err := c.Lookup(name)
	if err != nil {
		return 0, err
	}
	return def.RootPage, nil
}

// Tables returns the definitions in schema table order.
func (c *Catalog) Tables() []*TableDef {
	return append([]*TableDef(nil), c.tables...)
}

// Names returns the table names in schema table order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.tables))
	for i, t := range c.tables {
		names[i] = t.Name
	}
	return names
}

func (c *Catalog) Len() int { return len(c.tables) }
