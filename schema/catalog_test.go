package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wilhasse/go-sqlite/format"
	"github.com/wilhasse/go-sqlite/internal/logging"
	"github.com/wilhasse/go-sqlite/internal/testdb"
	"github.com/wilhasse/go-sqlite/page"
)

const pageSize = 1024

func schemaPage(t *testing.T, cells ...[]byte) *page.Page {
	t.Helper()
	im := testdb.NewImage(pageSize)
	im.SetPage(0, format.PageTypeLeafTable, cells...)
	data := im.Bytes()
	hdr, err := page.ParseDatabaseHeader(data)
	require.NoError(t, err)
	p, err := page.ParsePage(0, data[:pageSize], hdr)
	require.NoError(t, err)
	return p
}

func TestBuildCatalog(t *testing.T) {
	p := schemaPage(t,
		testdb.SchemaCell(1, "table", "apples", 2, "CREATE TABLE apples (id integer primary key, name text, color text)"),
		testdb.Cell(2, testdb.Record("index", "idx_color", "apples", 3, "CREATE INDEX idx_color ON apples (color)")),
		testdb.Cell(3, testdb.Record("index", "sqlite_autoindex_oranges_1", "oranges", 5, nil)),
		testdb.SchemaCell(4, "table", "oranges", 4, "CREATE TABLE oranges (name text unique, description text)"),
		testdb.Cell(5, testdb.Record("view", "v", "v", 0, "CREATE VIEW v AS SELECT name FROM apples")),
	)
	c, err := BuildCatalog(p, logging.Discard())
	require.NoError(t, err)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"apples", "oranges"}, c.Names())

	def, err := c.Lookup("oranges")
	require.NoError(t, err)
	assert.Equal(t, 4, def.RootPage)
	assert.Equal(t, []string{"name", "description"}, def.ColumnNames())
	assert.Equal(t, "CREATE TABLE oranges (name text unique, description text)", def.SQL)

	root, err := c.RootPage("apples")
	require.NoError(t, err)
	assert.Equal(t, 2, root)

	tables := c.Tables()
	tables[0] = nil
	assert.NotNil(t, c.Tables()[0])
}

func TestBuildCatalogEmpty(t *testing.T) {
	c, err := BuildCatalog(schemaPage(t), nil)
	require.NoError(t, err)
	assert.Zero(t, c.Len())
	assert.Empty(t, c.Names())
}

func TestCatalogLookupNotFound(t *testing.T) {
	c, err := BuildCatalog(schemaPage(t,
		testdb.SchemaCell(1, "table", "apples", 2, "CREATE TABLE apples (id)"),
	), nil)
	require.NoError(t, err)

	_, err = c.Lookup("Apples")
	assert.True(t, errors.Is(err, ErrTableNotFound))
	assert.EqualError(t, err, "no such table: Apples")

	_, err = c.RootPage("pears")
	assert.True(t, errors.Is(err, ErrTableNotFound))
}

func TestBuildCatalogQuotedName(t *testing.T) {
	c, err := BuildCatalog(schemaPage(t,
		testdb.SchemaCell(1, "table", "Fruit Basket", 2, `CREATE TABLE "Fruit Basket" (a)`),
	), nil)
	require.NoError(t, err)
	_, err = c.Lookup("Fruit Basket")
	assert.NoError(t, err)
}

func TestBuildCatalogErrors(t *testing.T) {
	tests := []struct {
		name string
		cell []byte
		want error
	}{
		{
			name: "name mismatch",
			cell: testdb.SchemaCell(1, "table", "apples", 2, "CREATE TABLE pears (a)"),
			want: ErrSchemaInconsistency,
		},
		{
			name: "name differs in case",
			cell: testdb.SchemaCell(1, "table", "apples", 2, "CREATE TABLE Apples (a)"),
			want: ErrSchemaInconsistency,
		},
		{
			name: "rootpage not integer",
			cell: testdb.Cell(1, testdb.Record("table", "apples", "apples", "two", "CREATE TABLE apples (a)")),
			want: ErrSchemaInconsistency,
		},
		{
			name: "tbl_name not text",
			cell: testdb.Cell(1, testdb.Record("table", "apples", 7, 2, "CREATE TABLE apples (a)")),
			want: ErrSchemaInconsistency,
		},
		{
			name: "rootpage zero",
			cell: testdb.SchemaCell(1, "table", "apples", 0, "CREATE TABLE apples (a)"),
			want: ErrSchemaInconsistency,
		},
		{
			name: "unparsable ddl",
			cell: testdb.SchemaCell(1, "table", "apples", 2, "CREATE TABLE apples (a"),
			want: ErrDDLParse,
		},
		{
			name: "malformed record",
			cell: testdb.Cell(1, testdb.RawRecord([]int64{10}, nil)),
			want: format.ErrMalformedRecord,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildCatalog(schemaPage(t, tt.cell), nil)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestBuildCatalogDuplicate(t *testing.T) {
	_, err := BuildCatalog(schemaPage(t,
		testdb.SchemaCell(1, "table", "apples", 2, "CREATE TABLE apples (a)"),
		testdb.SchemaCell(2, "table", "apples", 3, "CREATE TABLE apples (b)"),
	), nil)
	assert.True(t, errors.Is(err, ErrSchemaInconsistency))
}

func TestNewCatalog(t *testing.T) {
	def := NewTableDef("t")
	require.NoError(t, def.AddColumn(&ColumnDef{Name: "a"}))
	def.RootPage = 2

	c, err := NewCatalog(def)
	require.NoError(t, err)
	got, err := c.Lookup("t")
	require.NoError(t, err)
	assert.Same(t, def, got)

	_, err = NewCatalog(NewTableDef("bad"))
	assert.True(t, errors.Is(err, ErrSchemaInconsistency))
}

func TestColumnIndex(t *testing.T) {
	def, err := ParseCreateTable("CREATE TABLE apples (id integer primary key, name text, color text)")
	require.NoError(t, err)

	i, err := def.ColumnIndex("color")
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	_, err = def.ColumnIndex("Color")
	assert.True(t, errors.Is(err, ErrColumnNotFound))
	assert.EqualError(t, err, "no such column: Color (table apples)")
}
