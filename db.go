// db.go - Read session over one database file
package gosqlite

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/wilhasse/go-sqlite/internal/config"
	"github.com/wilhasse/go-sqlite/internal/logging"
	"github.com/wilhasse/go-sqlite/page"
	"github.com/wilhasse/go-sqlite/scan"
	"github.com/wilhasse/go-sqlite/schema"
)

// DB is an open read session. The header and the schema catalog are read
// once at open and kept for the session; table pages are re-read on every
// query. A DB is not safe for concurrent use.
type DB struct {
	file    *os.File // nil when opened from a reader or decompressed
	pages   *PageReader
	header  page.DatabaseHeader
	catalog *schema.Catalog
	scanner *scan.Scanner
	cfg     config.Config
	log     *slog.Logger
}

// Open opens the database file at path. Files compressed with xz are
// decompressed into memory first.
func Open(path string, cfg *Config) (*DB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Page: -1, Err: err}
	}
	compressed, err := IsCompressed(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	if !compressed {
		db, err := OpenReader(f, cfg)
		if err != nil {
			f.Close()
			return nil, err
		}
		db.file = f
		return db, nil
	}

	defer f.Close()
	c := fillConfig(cfg)
	data, err := Decompress(f, c.MaxDecompressedSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logging.Or(c.Logger).Debug("decompressed database", "path", path, "size", data.Size())
	return OpenReader(data, &c)
}

// OpenReader starts a session over r, which must hold a raw database file.
func OpenReader(r io.ReaderAt, cfg *Config) (*DB, error) {
	c := fillConfig(cfg)
	log := logging.Or(c.Logger)

	hdr, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	log.Debug("header parsed", "page_size", hdr.PageSize, "encoding", hdr.TextEncoding.String(), "pages", hdr.PageCount)

	pages := NewPageReader(r, hdr, log)
	root, err := pages.ReadPage(0)
	if err != nil {
		return nil, err
	}
	catalog, err := schema.BuildCatalog(root, log)
	if err != nil {
		return nil, err
	}
	return &DB{
		pages:   pages,
		header:  hdr,
		catalog: catalog,
		scanner: scan.NewScanner(pages, catalog, &c),
		cfg:     c,
		log:     log,
	}, nil
}

func fillConfig(cfg *Config) config.Config {
	var c config.Config
	if cfg != nil {
		c = *cfg
	}
	c.FillDefaults()
	return c
}

// Close releases the file handle, if any.
func (db *DB) Close() error {
	if db.file == nil {
		return nil
	}
	err := db.file.Close()
	db.file = nil
	return err
}

func (db *DB) Header() page.DatabaseHeader { return db.header }

func (db *DB) Catalog() *schema.Catalog { return db.catalog }

// Tables returns the table names in schema order.
func (db *DB) Tables() []string { return db.catalog.Names() }

// Query parses and runs a SELECT statement.
func (db *DB) Query(sql string) (*scan.Rows, error) {
	q, err := schema.ParseSelect(sql)
	if err != nil {
		return nil, err
	}
	if len(q.Conditions) > 0 && db.cfg.IgnoreConditions {
		db.log.Debug("conditions ignored", "table", q.Table, "conditions", len(q.Conditions))
	}
	return db.scanner.Select(q)
}

// Project returns the named columns of every row of a table, in cell order.
func (db *DB) Project(table string, columns ...string) (*scan.Rows, error) {
	return db.scanner.Project(table, columns, nil)
}

// Count returns the number of rows in a table.
func (db *DB) Count(table string) (int, error) {
	return db.scanner.Count(table, nil)
}

// Page reads and decodes a page by its 1-based page number.
func (db *DB) Page(number int) (*page.Page, error) {
	if number < 1 {
		return nil, fmt.Errorf("page number %d: pages are numbered from 1", number)
	}
	return db.pages.ReadPage(number - 1)
}
