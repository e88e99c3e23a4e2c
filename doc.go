// Package gosqlite reads SQLite database files without the SQLite library.
//
// The library is organized into logical groups of functionality:
//
// Format:
//   - format: file constants, big-endian helpers, varints, error kinds
//
// Pages and Records:
//   - page: the 100-byte file header and leaf b-tree pages
//   - column: serial types and the typed values they decode to
//   - record: record headers and bodies, cell iteration
//
// Schema and Queries:
//   - schema: CREATE TABLE and SELECT parsing, the schema catalog
//   - scan: column projection over a table's root page
//
// I/O Operations:
//   - reader.go: positional page reader
//   - reader_compressed.go: xz-compressed database files
//   - db.go: read session (header and catalog loaded once)
//
// Only tables whose rows fit on a single leaf root page can be scanned;
// interior and overflow pages are reported as unsupported.
//
// Basic usage:
//
//	db, _ := gosqlite.Open("sample.db", nil)
//	defer db.Close()
//
//	rows, _ := db.Query("SELECT name, color FROM apples WHERE color = 'Red'")
//	for rows.Next() {
//	    fmt.Println(rows.Values())
//	}
package gosqlite
