package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCreateTable(t *testing.T) {
	tests := []struct {
		sql  string
		want bool
	}{
		{"CREATE TABLE apples (id integer)", true},
		{"create table apples(id)", true},
		{"CREATE TEMP TABLE t (a)", true},
		{"CREATE TEMPORARY TABLE t (a)", true},
		{"CREATE TABLE\n\t\"x\" (a)", true},
		{"CREATE INDEX idx ON apples (name)", false},
		{"CREATE UNIQUE INDEX idx ON apples (name)", false},
		{"CREATE VIEW v AS SELECT 1", false},
		{"CREATE VIRTUAL TABLE f USING fts5(body)", false},
		{"CREATE TRIGGER tr AFTER INSERT ON t BEGIN SELECT 1; END", false},
		{"", false},
		{"CREATE", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsCreateTable(tt.sql), tt.sql)
	}
}

func TestParseCreateTable(t *testing.T) {
	sql := `CREATE TABLE apples
(
	id integer primary key autoincrement,
	name text,
	color text
)`
	def, err := ParseCreateTable(sql)
	require.NoError(t, err)

	assert.Equal(t, "apples", def.Name)
	assert.Equal(t, []string{"id", "name", "color"}, def.ColumnNames())
	assert.Equal(t, "integer", def.Columns[0].Type)
	assert.Equal(t, "primary key autoincrement", def.Columns[0].Constraints)
	assert.True(t, def.Columns[0].PrimaryKey)
	assert.True(t, def.Columns[0].RowIDAlias)
	assert.Equal(t, 0, def.RowIDAlias())
	assert.Equal(t, []string{"id"}, def.PrimaryKey)
	assert.Equal(t, "text", def.Columns[2].Type)
	assert.Equal(t, 2, def.Columns[2].Ordinal)
}

func TestParseCreateTableTypes(t *testing.T) {
	def, err := ParseCreateTable(`CREATE TABLE t (
		a,
		b VARCHAR( 10 ) NOT NULL,
		c DECIMAL(10, 2) DEFAULT 0.0,
		d UNSIGNED BIG INT CHECK (d > 0 AND (d < 10)),
		e TEXT COLLATE NOCASE
	)`)
	require.NoError(t, err)

	types := make([]string, len(def.Columns))
	for i, c := range def.Columns {
		types[i] = c.Type
	}
	assert.Equal(t, []string{"", "VARCHAR(10)", "DECIMAL(10,2)", "UNSIGNED BIG INT", "TEXT"}, types)
	assert.True(t, def.Columns[1].NotNull)
	assert.Equal(t, "NOT NULL", def.Columns[1].Constraints)
	assert.Equal(t, "CHECK (d > 0 AND (d < 10))", def.Columns[3].Constraints)
	assert.Equal(t, -1, def.RowIDAlias())
}

func TestParseCreateTableQuoting(t *testing.T) {
	def, err := ParseCreateTable("CREATE TABLE IF NOT EXISTS main.\"Fruit Basket\" (`weight (g)` REAL, [best before] TEXT, \"say \"\"hi\"\"\" TEXT, 'x' INT)")
	require.NoError(t, err)
	assert.Equal(t, "Fruit Basket", def.Name)
	assert.Equal(t, []string{"weight (g)", "best before", `say "hi"`, "x"}, def.ColumnNames())
}

func TestParseCreateTableComments(t *testing.T) {
	def, err := ParseCreateTable(`CREATE TABLE t ( -- leading
		a INTEGER, /* block
		comment */ b TEXT
	);`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, def.ColumnNames())
}

func TestParseCreateTableTableConstraints(t *testing.T) {
	def, err := ParseCreateTable(`CREATE TABLE orders (
		id INTEGER,
		customer TEXT REFERENCES customers (id),
		total REAL,
		CONSTRAINT pk PRIMARY KEY (id),
		UNIQUE (customer, total),
		FOREIGN KEY (customer) REFERENCES customers (name) ON DELETE CASCADE,
		CHECK (total >= 0)
	)`)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "customer", "total"}, def.ColumnNames())
	assert.Equal(t, []string{"id"}, def.PrimaryKey)
	assert.True(t, def.Columns[0].PrimaryKey)
	assert.Equal(t, 0, def.RowIDAlias())
}

func TestParseCreateTableRowIDAlias(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want int
	}{
		{"column constraint", "CREATE TABLE t (a TEXT, id INTEGER PRIMARY KEY)", 1},
		{"lowercase", "create table t (id integer primary key)", 0},
		{"ascending", "CREATE TABLE t (id INTEGER PRIMARY KEY ASC)", 0},
		{"descending column constraint", "CREATE TABLE t (id INTEGER PRIMARY KEY DESC)", -1},
		{"table constraint desc", "CREATE TABLE t (id INTEGER, PRIMARY KEY (id DESC))", 0},
		{"int is not integer", "CREATE TABLE t (id INT PRIMARY KEY)", -1},
		{"composite", "CREATE TABLE t (a INTEGER, b INTEGER, PRIMARY KEY (a, b))", -1},
		{"without rowid", "CREATE TABLE t (id INTEGER PRIMARY KEY, v) WITHOUT ROWID", -1},
		{"no key", "CREATE TABLE t (id INTEGER)", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := ParseCreateTable(tt.sql)
			require.NoError(t, err)
			assert.Equal(t, tt.want, def.RowIDAlias())
		})
	}
}

func TestParseCreateTableOptions(t *testing.T) {
	def, err := ParseCreateTable("CREATE TEMP TABLE t (id INTEGER PRIMARY KEY, v ANY) STRICT, WITHOUT ROWID")
	require.NoError(t, err)
	assert.True(t, def.Temp)
	assert.True(t, def.Strict)
	assert.True(t, def.WithoutRowID)
}

func TestParseCreateTableErrors(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"not create", "SELECT * FROM t"},
		{"no columns", "CREATE TABLE t ()"},
		{"unbalanced", "CREATE TABLE t (a TEXT"},
		{"as select", "CREATE TABLE t AS SELECT 1"},
		{"duplicate column", "CREATE TABLE t (a, b, a)"},
		{"two primary keys", "CREATE TABLE t (a INTEGER PRIMARY KEY, b, PRIMARY KEY (b))"},
		{"unknown key column", "CREATE TABLE t (a, PRIMARY KEY (z))"},
		{"column name is a literal", "CREATE TABLE t (42 TEXT)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCreateTable(tt.sql)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDDLParse), "got %v", err)
			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.sql, pe.Input)
		})
	}
}

func TestUnquote(t *testing.T) {
	assert.Equal(t, "a", unquote(`"a"`))
	assert.Equal(t, `a"b`, unquote(`"a""b"`))
	assert.Equal(t, "a`b", unquote("`a``b`"))
	assert.Equal(t, "it's", unquote(`'it''s'`))
	assert.Equal(t, "a b", unquote("[a b]"))
	assert.Equal(t, "plain", unquote("plain"))
	assert.Equal(t, `"`, unquote(`"`))
}
