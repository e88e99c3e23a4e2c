package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gosqlite "github.com/wilhasse/go-sqlite"
	"github.com/wilhasse/go-sqlite/internal/testdb"
)

func sample(t *testing.T) string {
	t.Helper()
	return testdb.Create(t,
		"CREATE TABLE apples (id integer primary key, name text, color text)",
		"CREATE TABLE oranges (id integer primary key, name text, description text)",
		"INSERT INTO apples (name, color) VALUES ('Granny Smith', 'Light Green'), ('Fuji', 'Red'), ('Golden Delicious', 'Yellow')",
		"INSERT INTO oranges (name, description) VALUES ('Mandarin', NULL)",
	)
}

func runCLI(t *testing.T, cli CLI) (string, error) {
	t.Helper()
	if cli.Format == "" {
		cli.Format = "text"
	}
	cli.LogLevel, cli.LogFormat = "error", "text"
	var stdout, stderr bytes.Buffer
	err := run(&cli, &stdout, &stderr)
	return stdout.String(), err
}

func TestParseUnquotedSelect(t *testing.T) {
	path := sample(t)
	var cli CLI
	parser := newParser(&cli, kong.Exit(func(int) { t.Fatal("exit called") }))
	_, err := parser.Parse([]string{"-f", "json", path, "SELECT", "name", "FROM", "apples", "WHERE", "id", ">", "-5"})
	require.NoError(t, err)
	assert.Equal(t, "SELECT", cli.Command)
	assert.Equal(t, []string{"name", "FROM", "apples", "WHERE", "id", ">", "-5"}, cli.Args)
	assert.Equal(t, "json", cli.Format)

	cli.LogLevel = "error"
	var stdout, stderr bytes.Buffer
	require.NoError(t, run(&cli, &stdout, &stderr))
	assert.JSONEq(t, `{"columns": ["name"], "rows": [["Granny Smith"], ["Fuji"], ["Golden Delicious"]]}`, stdout.String())
}

func TestDBInfoSkipsIndexes(t *testing.T) {
	path := testdb.Create(t,
		"CREATE TABLE apples (id integer primary key, name text)",
		"CREATE INDEX idx_apples_name ON apples (name)",
		"CREATE VIEW red AS SELECT name FROM apples",
	)
	out, err := runCLI(t, CLI{Path: path, Command: ".dbinfo"})
	require.NoError(t, err)
	assert.Equal(t, "database page size: 4096\nnumber of tables: 1\n", out)
}

func TestDBInfo(t *testing.T) {
	out, err := runCLI(t, CLI{Path: sample(t), Command: ".dbinfo"})
	require.NoError(t, err)
	assert.Equal(t, "database page size: 4096\nnumber of tables: 2\n", out)

	out, err = runCLI(t, CLI{Path: sample(t), Command: ".dbinfo", Format: "json"})
	require.NoError(t, err)
	var info map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, float64(4096), info["page_size"])
	assert.Equal(t, float64(2), info["tables"])
	assert.Equal(t, "UTF-8", info["text_encoding"])
}

func TestTables(t *testing.T) {
	out, err := runCLI(t, CLI{Path: sample(t), Command: ".tables"})
	require.NoError(t, err)
	assert.Equal(t, "apples oranges\n", out)

	out, err = runCLI(t, CLI{Path: sample(t), Command: ".TABLES", Format: "json"})
	require.NoError(t, err)
	assert.JSONEq(t, `["apples", "oranges"]`, out)
}

func TestSchema(t *testing.T) {
	out, err := runCLI(t, CLI{Path: sample(t), Command: ".schema"})
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE apples (id integer primary key, name text, color text);\n"+
		"CREATE TABLE oranges (id integer primary key, name text, description text);\n", out)
}

func TestQuery(t *testing.T) {
	path := sample(t)

	out, err := runCLI(t, CLI{Path: path, Command: "SELECT name FROM apples"})
	require.NoError(t, err)
	assert.Equal(t, "Granny Smith\nFuji\nGolden Delicious\n", out)

	out, err = runCLI(t, CLI{Path: path, Command: "SELECT name, color FROM apples WHERE color = 'Yellow'"})
	require.NoError(t, err)
	assert.Equal(t, "Golden Delicious|Yellow\n", out)

	out, err = runCLI(t, CLI{Path: path, Command: "SELECT", Args: []string{"id,", "description", "FROM", "oranges"}})
	require.NoError(t, err)
	assert.Equal(t, "1|\n", out)

	out, err = runCLI(t, CLI{Path: path, Command: "SELECT COUNT(*) FROM apples"})
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)

	out, err = runCLI(t, CLI{Path: path, Command: "SELECT name FROM apples WHERE color = 'Red'", IgnoreConditions: true})
	require.NoError(t, err)
	assert.Equal(t, "Granny Smith\nFuji\nGolden Delicious\n", out)

	out, err = runCLI(t, CLI{Path: path, Command: "SELECT id FROM oranges", RawIntegerPrimaryKey: true})
	require.NoError(t, err)
	assert.Equal(t, "\n", out)
}

func TestQueryJSON(t *testing.T) {
	out, err := runCLI(t, CLI{Path: sample(t), Command: "SELECT id, name, description FROM oranges", Format: "json"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"columns": ["id", "name", "description"], "rows": [[1, "Mandarin", null]]}`, out)

	out, err = runCLI(t, CLI{Path: sample(t), Command: "SELECT name FROM apples WHERE id > 10", Format: "json"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"columns": ["name"], "rows": []}`, out)
}

func TestPage(t *testing.T) {
	out, err := runCLI(t, CLI{Path: sample(t), Command: ".page", Args: []string{"2"}})
	require.NoError(t, err)
	assert.Contains(t, out, "=== Page 2 ===")
	assert.Contains(t, out, "LEAF_TABLE")
	assert.Contains(t, out, "Cells:         3")
	assert.Contains(t, out, "BLAKE3:")
	assert.Contains(t, out, "TEXT(4)")

	out, err = runCLI(t, CLI{Path: sample(t), Command: ".page", Args: []string{"1"}, Format: "json"})
	require.NoError(t, err)
	var info map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, float64(1), info["page_number"])
	assert.Len(t, info["cells"], 2)
	assert.Len(t, info["blake3"], 64)
}

func TestErrors(t *testing.T) {
	path := sample(t)

	_, err := runCLI(t, CLI{Path: path, Command: ".page"})
	assert.Error(t, err)

	_, err = runCLI(t, CLI{Path: path, Command: ".page", Args: []string{"two"}})
	assert.Error(t, err)

	_, err = runCLI(t, CLI{Path: path, Command: ".indexes"})
	assert.EqualError(t, err, "unknown command .indexes")

	_, err = runCLI(t, CLI{Path: path, Command: "SELECT name FROM pears"})
	assert.True(t, errors.Is(err, gosqlite.ErrTableNotFound))

	_, err = runCLI(t, CLI{Path: path, Command: "SELECT taste FROM apples"})
	assert.True(t, errors.Is(err, gosqlite.ErrColumnNotFound))

	_, err = runCLI(t, CLI{Path: path, Command: "DROP TABLE apples"})
	assert.True(t, errors.Is(err, gosqlite.ErrQueryParse))
}
