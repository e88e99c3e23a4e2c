// Package testdb builds database files for tests: real ones written by a
// pure-Go SQLite engine, and hand-assembled images for corrupt and
// boundary cases.
package testdb

import (
	"database/sql"
	"encoding/binary"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
	_ "modernc.org/sqlite"

	"github.com/wilhasse/go-sqlite/format"
)

// Create executes stmts against a new database file and returns its path.
func Create(t testing.TB, stmts ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err, stmt)
	}
	require.NoError(t, db.Close())
	return path
}

// Write stores data in a new file and returns its path.
func Write(t testing.TB, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "image.db")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// Patch overwrites bytes of a file in place.
func Patch(t testing.TB, path string, off int64, data []byte) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	require.NoError(t, err)
	defer f.Close()
	_, err = f.WriteAt(data, off)
	require.NoError(t, err)
}

// Compress writes an xz-compressed copy of path and returns its path.
func Compress(t testing.TB, path string) string {
	t.Helper()
	in, err := os.Open(path)
	require.NoError(t, err)
	defer in.Close()

	outPath := path + ".xz"
	out, err := os.Create(outPath)
	require.NoError(t, err)
	defer out.Close()

	zw, err := xz.NewWriter(out)
	require.NoError(t, err)
	_, err = io.Copy(zw, in)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return outPath
}

// Record encodes values as a record: header length, serial types, body.
// Supported values are nil, int, int64, float64, string and []byte.
func Record(values ...interface{}) []byte {
	var types []int64
	var body []byte
	for _, v := range values {
		switch x := v.(type) {
		case nil:
			types = append(types, 0)
		case int:
			st, b := intValue(int64(x))
			types = append(types, st)
			body = append(body, b...)
		case int64:
			st, b := intValue(x)
			types = append(types, st)
			body = append(body, b...)
		case float64:
			types = append(types, 7)
			body = binary.BigEndian.AppendUint64(body, math.Float64bits(x))
		case string:
			types = append(types, int64(13+2*len(x)))
			body = append(body, x...)
		case []byte:
			types = append(types, int64(12+2*len(x)))
			body = append(body, x...)
		default:
			panic("testdb: unsupported value type")
		}
	}
	return RawRecord(types, body)
}

// RawRecord encodes a record from explicit serial types and body bytes.
func RawRecord(types []int64, body []byte) []byte {
	var hdr []byte
	for _, st := range types {
		hdr = format.AppendVarint(hdr, uint64(st))
	}
	hlen := len(hdr) + 1
	if format.VarintLen(uint64(hlen)) > 1 {
		hlen++
	}
	rec := format.AppendVarint(nil, uint64(hlen))
	rec = append(rec, hdr...)
	return append(rec, body...)
}

func intValue(v int64) (int64, []byte) {
	switch {
	case v == 0:
		return 8, nil
	case v == 1:
		return 9, nil
	case v >= math.MinInt8 && v <= math.MaxInt8:
		return 1, []byte{byte(v)}
	case v >= math.MinInt16 && v <= math.MaxInt16:
		return 2, binary.BigEndian.AppendUint16(nil, uint16(v))
	case v >= math.MinInt32 && v <= math.MaxInt32:
		return 4, binary.BigEndian.AppendUint32(nil, uint32(v))
	default:
		return 6, binary.BigEndian.AppendUint64(nil, uint64(v))
	}
}

// Cell frames a record as a table leaf cell.
func Cell(rowid int64, rec []byte) []byte {
	cell := format.AppendVarint(nil, uint64(len(rec)))
	cell = format.AppendVarint(cell, uint64(rowid))
	return append(cell, rec...)
}

// SchemaCell is a schema table row (type, name, tbl_name, rootpage, sql).
func SchemaCell(rowid int64, typ, name string, rootPage int, sql string) []byte {
	return Cell(rowid, Record(typ, name, name, rootPage, sql))
}

// Image assembles a database file page by page. Page 0 starts with the
// file header.
type Image struct {
	PageSize     int
	TextEncoding uint32
	pages        [][]byte
}

// NewImage creates an image whose page 0 is an empty leaf table page.
func NewImage(pageSize int) *Image {
	im := &Image{PageSize: pageSize, TextEncoding: uint32(format.EncodingUTF8)}
	im.AddPage(format.PageTypeLeafTable)
	return im
}

// AddPage appends a page holding cells and returns its 1-based page number.
func (im *Image) AddPage(typ format.PageType, cells ...[]byte) int {
	im.pages = append(im.pages, nil)
	im.SetPage(len(im.pages)-1, typ, cells...)
	return len(im.pages)
}

// SetPage replaces the page at a 0-based index. Cells are packed from the
// end of the page in order, so cell 0 has the highest offset.
func (im *Image) SetPage(index int, typ format.PageType, cells ...[]byte) {
	p := make([]byte, im.PageSize)
	hdrOff := 0
	if index == 0 {
		hdrOff = format.FileHeaderSize
	}
	hdrSize := format.LeafPageHeaderSize
	if !typ.IsLeaf() {
		hdrSize = format.InteriorPageHeaderSize
	}

	p[hdrOff] = byte(typ)
	binary.BigEndian.PutUint16(p[hdrOff+format.PageHeaderOffsetNumCells:], uint16(len(cells)))
	end := im.PageSize
	ptr := hdrOff + hdrSize
	for _, c := range cells {
		end -= len(c)
		copy(p[end:], c)
		binary.BigEndian.PutUint16(p[ptr:], uint16(end))
		ptr += format.CellPointerSize
	}
	binary.BigEndian.PutUint16(p[hdrOff+format.PageHeaderOffsetCellStart:], uint16(end%65536))
	im.pages[index] = p
}

// Bytes returns the file contents.
func (im *Image) Bytes() []byte {
	out := make([]byte, 0, len(im.pages)*im.PageSize)
	for _, p := range im.pages {
		out = append(out, p...)
	}
	hdr := out[:format.FileHeaderSize]
	copy(hdr, format.MagicString)
	if im.PageSize == format.MaxPageSize {
		binary.BigEndian.PutUint16(hdr[format.OffsetPageSize:], 1)
	} else {
		binary.BigEndian.PutUint16(hdr[format.OffsetPageSize:], uint16(im.PageSize))
	}
	hdr[format.OffsetWriteVersion] = 1
	hdr[format.OffsetReadVersion] = 1
	hdr[21], hdr[22], hdr[23] = 64, 32, 32
	binary.BigEndian.PutUint32(hdr[format.OffsetPageCount:], uint32(len(im.pages)))
	binary.BigEndian.PutUint32(hdr[format.OffsetSchemaFormat:], 4)
	binary.BigEndian.PutUint32(hdr[format.OffsetTextEncoding:], im.TextEncoding)
	return out
}
