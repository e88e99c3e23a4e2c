// Package scan resolves tables through the schema catalog and projects
// columns from their single leaf root page.
package scan

import (
	"fmt"

	"github.com/wilhasse/go-sqlite/column"
	"github.com/wilhasse/go-sqlite/format"
	"github.com/wilhasse/go-sqlite/internal/config"
	"github.com/wilhasse/go-sqlite/internal/logging"
	"github.com/wilhasse/go-sqlite/page"
	"github.com/wilhasse/go-sqlite/record"
	"github.com/wilhasse/go-sqlite/schema"
)

// PageSource reads one page by its 0-based index. Every call reads from
// storage; nothing is cached.
type PageSource interface {
	ReadPage(index int) (*page.Page, error)
}

// Scanner projects table rows. It holds the session's catalog and never
// rebuilds it.
type Scanner struct {
	pages   PageSource
	catalog *schema.Catalog
	cfg     config.Config
}

func NewScanner(pages PageSource, catalog *schema.Catalog, cfg *config.Config) *Scanner {
	s := &Scanner{pages: pages, catalog: catalog}
	if cfg != nil {
		s.cfg = *cfg
	}
	s.cfg.FillDefaults()
	return s
}

// Select runs a parsed query. COUNT(*) queries yield a single row holding
// the count.
func (s *Scanner) Select(q *schema.Query) (*Rows, error) {
	if q.Count {
		n, err := s.Count(q.Table, q.Conditions)
		if err != nil {
			return nil, err
		}
		return singleRow("count(*)", column.Integer(n)), nil
	}
	columns := q.Columns
	if q.Star {
		def, err := s.catalog.Lookup(q.Table)
		if err != nil {
			return nil, err
		}
		columns = def.ColumnNames()
	}
	return s.Project(q.Table, columns, q.Conditions)
}

// Project resolves the table and columns and returns a lazy row sequence in
// cell order. Each value is taken from the requested column's position in
// the record, in request order.
func (s *Scanner) Project(table string, columns []string, conds []schema.Condition) (*Rows, error) {
	def, err := s.catalog.Lookup(table)
	if err != nil {
		return nil, err
	}
	idx := make([]int, len(columns))
	for i, name := range columns {
		if idx[i], err = def.ColumnIndex(name); err != nil {
			return nil, err
		}
	}
	if s.cfg.IgnoreConditions {
		conds = nil
	}
	condIdx := make([]int, len(conds))
	for i, c := range conds {
		if condIdx[i], err = def.ColumnIndex(c.Column); err != nil {
			return nil, err
		}
	}

	p, err := s.rootPage(def)
	if err != nil {
		return nil, err
	}
	log := logging.WithTable(s.cfg.Logger, def.Name)
	log.Debug("scan started", "root_page", def.RootPage, "cells", len(p.CellOffsets), "columns", columns)

	rowid := def.RowIDAlias()
	if s.cfg.RawIntegerPrimaryKey {
		rowid = -1
	}
	return &Rows{
		columns: append([]string(nil), columns...),
		idx:     idx,
		conds:   conds,
		condIdx: condIdx,
		rowid:   rowid,
		iter:    record.NewIterator(p),
		done: func(n int) {
			log.Debug("scan finished", "rows", n)
		},
	}, nil
}

// Count returns the number of rows satisfying conds. Without conditions it
// is the root page's cell count and no record is decoded.
func (s *Scanner) Count(table string, conds []schema.Condition) (int, error) {
	if s.cfg.IgnoreConditions || len(conds) == 0 {
		def, err := s.catalog.Lookup(table)
		if err != nil {
			return 0, err
		}
		p, err := s.rootPage(def)
		if err != nil {
			return 0, err
		}
		return len(p.CellOffsets), nil
	}
	rows, err := s.Project(table, nil, conds)
	if err != nil {
		return 0, err
	}
	n := 0
	for rows.Next() {
		n++
	}
	return n, rows.Err()
}

// rootPage reads a table's root page, which must be a leaf table page.
func (s *Scanner) rootPage(def *schema.TableDef) (*page.Page, error) {
	p, err := s.pages.ReadPage(def.RootPage - 1)
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", def.Name, err)
	}
	if p.Type != format.PageTypeLeafTable {
		return nil, fmt.Errorf("table %s: %w", def.Name, &format.PageTypeError{Page: p.Index, Type: p.Type})
	}
	return p, nil
}
