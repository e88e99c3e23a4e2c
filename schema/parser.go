// parser.go - Parse CREATE TABLE statements to extract schema
package schema

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// createTableStmt is the participle grammar for the CREATE TABLE text kept in
// the schema table. Column and table constraints are captured as balanced
// token runs and classified afterwards.
//
//nolint:govet // participle grammar tags are not standard struct tags
type createTableStmt struct {
	Temp        bool         `"CREATE" @( "TEMP" | "TEMPORARY" )?`
	IfNotExists bool         `"TABLE" @( "IF" "NOT" "EXISTS" )?`
	Name        []string     `@( Ident | Quoted | String ) ( "." @( Ident | Quoted | String ) )?`
	Items       []*tableItem `"(" @@ ( "," @@ )* ")"`
	Options     []string     `( @Ident ","? )* ";"?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type tableItem struct {
	Parts []*itemToken `@@+`
}

//nolint:govet // participle grammar tags are not standard struct tags
type itemToken struct {
	Group  *tokenGroup `  @@`
	Word   string      `| @Ident`
	Quoted string      `| @( Quoted | String )`
	Other  string      `| @~( "(" | ")" | "," )`
}

//nolint:govet // participle grammar tags are not standard struct tags
type tokenGroup struct {
	Parts []*groupToken `"(" @@* ")"`
}

//nolint:govet // participle grammar tags are not standard struct tags
type groupToken struct {
	Group *tokenGroup `  @@`
	Text  string      `| @~( "(" | ")" )`
}

var ddlLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `--[^\n]*|/\*(?:[^*]|\*+[^*/])*\*+/`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Quoted", Pattern: "\"(?:[^\"]|\"\")*\"|`(?:[^`]|``)*`|\\[[^\\]]*\\]"},
	{Name: "String", Pattern: `'(?:[^']|'')*'`},
	{Name: "Number", Pattern: `0[xX][0-9a-fA-F]+|(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][-+]?\d+)?`},
	{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_$]*`},
	{Name: "Punct", Pattern: `\|\||<<|>>|<=|>=|==|!=|<>|[-+*/%<>=!|&~(),;.?:@$]`},
})

var ddlParser = participle.MustBuild[createTableStmt](
	participle.Lexer(ddlLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.CaseInsensitive("Ident"),
	participle.UseLookahead(4),
)

// Words that end a column's type name and start its constraints
var constraintWords = map[string]bool{
	"CONSTRAINT": true, "PRIMARY": true, "NOT": true, "NULL": true, "UNIQUE": true,
	"CHECK": true, "DEFAULT": true, "COLLATE": true, "REFERENCES": true,
	"GENERATED": true, "AS": true,
}

// Words that start a table constraint instead of a column definition
var tableConstraintWords = map[string]bool{
	"CONSTRAINT": true, "PRIMARY": true, "UNIQUE": true, "CHECK": true, "FOREIGN": true,
}

// IsCreateTable reports whether sql starts with CREATE [TEMP] TABLE. Index,
// view, trigger and virtual table definitions do not.
func IsCreateTable(sql string) bool {
	fields := strings.Fields(strings.ToUpper(sql))
	if len(fields) < 2 || fields[0] != "CREATE" {
		return false
	}
	if fields[1] == "TEMP" || fields[1] == "TEMPORARY" {
		fields = fields[1:]
	}
	return len(fields) >= 2 && (fields[1] == "TABLE" || strings.HasPrefix(fields[1], "TABLE("))
}

// ParseCreateTable parses a CREATE TABLE statement and returns its TableDef.
// RootPage and SQL are left for the caller to fill in.
func ParseCreateTable(sql string) (*TableDef, error) {
	stmt, err := ddlParser.ParseString("", sql)
	if err != nil {
		return nil, &ParseError{Kind: KindCreateTable, Input: sql, Err: err}
	}

	def := NewTableDef(unquote(stmt.Name[len(stmt.Name)-1]))
	def.Temp = stmt.Temp
	for i, opt := range stmt.Options {
		switch strings.ToUpper(opt) {
		case "WITHOUT":
			if i+1 < len(stmt.Options) && strings.EqualFold(stmt.Options[i+1], "ROWID") {
				def.WithoutRowID = true
			}
		case "STRICT":
			def.Strict = true
		}
	}

	var tableKey []string
	for _, item := range stmt.Items {
		parts := item.Parts
		if isTableConstraint(parts) {
			if keys := primaryKeyColumns(parts); keys != nil {
				tableKey = keys
			}
			continue
		}
		col, err := parseColumn(parts)
		if err != nil {
			return nil, &ParseError{Kind: KindCreateTable, Input: sql, Err: err}
		}
		if err := def.AddColumn(col); err != nil {
			return nil, &ParseError{Kind: KindCreateTable, Input: sql, Err: err}
		}
	}
	if len(def.Columns) == 0 {
		return nil, ddlError(sql, "table %s has no columns", def.Name)
	}
	if tableKey != nil {
		if err := def.SetPrimaryKey(tableKey); err != nil {
			return nil, &ParseError{Kind: KindCreateTable, Input: sql, Err: err}
		}
	}
	def.resolveRowIDAlias()
	return def, nil
}

func isTableConstraint(parts []*itemToken) bool {
	return parts[0].Word != "" && tableConstraintWords[strings.ToUpper(parts[0].Word)]
}

// primaryKeyColumns returns the column list of a PRIMARY KEY table
// constraint, or nil for any other constraint.
func primaryKeyColumns(parts []*itemToken) []string {
	for i := 0; i+2 < len(parts); i++ {
		if !isWord(parts[i], "PRIMARY") || !isWord(parts[i+1], "KEY") || parts[i+2].Group == nil {
			continue
		}
		var keys []string
		expectName := true
		for _, t := range parts[i+2].Group.Parts {
			switch {
			case t.Text == ",":
				expectName = true
			case expectName && t.Text != "":
				keys = append(keys, unquote(t.Text))
				expectName = false
			}
		}
		return keys
	}
	return nil
}

// parseColumn classifies a column definition: name, then type words (with
// an optional parenthesised size), then constraints.
func parseColumn(parts []*itemToken) (*ColumnDef, error) {
	first := parts[0]
	var name string
	switch {
	case first.Word != "":
		name = first.Word
	case first.Quoted != "":
		name = unquote(first.Quoted)
	default:
		return nil, fmt.Errorf("expected column name, got %q", render(parts[:1]))
	}
	col := &ColumnDef{Name: name}

	i := 1
	var typeWords []string
	for ; i < len(parts) && parts[i].Word != "" && !constraintWords[strings.ToUpper(parts[i].Word)]; i++ {
		typeWords = append(typeWords, parts[i].Word)
	}
	col.Type = strings.Join(typeWords, " ")
	if len(typeWords) > 0 && i < len(parts) && parts[i].Group != nil {
		col.Type += "(" + compact(parts[i].Group) + ")"
		i++
	}

	rest := parts[i:]
	col.Constraints = render(rest)
	for j := range rest {
		switch {
		case isWord(rest[j], "PRIMARY") && j+1 < len(rest) && isWord(rest[j+1], "KEY"):
			col.PrimaryKey = true
			col.pkDesc = j+2 < len(rest) && isWord(rest[j+2], "DESC")
		case isWord(rest[j], "NOT") && j+1 < len(rest) && isWord(rest[j+1], "NULL"):
			col.NotNull = true
		}
	}
	return col, nil
}

func isWord(t *itemToken, w string) bool {
	return t.Word != "" && strings.EqualFold(t.Word, w)
}

func render(parts []*itemToken) string {
	out := make([]string, 0, len(parts))
	for _, t := range parts {
		switch {
		case t.Group != nil:
			out = append(out, "("+renderGroup(t.Group)+")")
		case t.Word != "":
			out = append(out, t.Word)
		case t.Quoted != "":
			out = append(out, t.Quoted)
		default:
			out = append(out, t.Other)
		}
	}
	return strings.Join(out, " ")
}

func renderGroup(g *tokenGroup) string {
	out := make([]string, 0, len(g.Parts))
	for _, t := range g.Parts {
		if t.Group != nil {
			out = append(out, "("+renderGroup(t.Group)+")")
		} else {
			out = append(out, t.Text)
		}
	}
	return strings.Join(out, " ")
}

// compact renders type arguments without spaces: VARCHAR( 10 ) -> 10.
func compact(g *tokenGroup) string {
	var b strings.Builder
	for _, t := range g.Parts {
		if t.Group != nil {
			b.WriteString("(" + compact(t.Group) + ")")
		} else {
			b.WriteString(t.Text)
		}
	}
	return b.String()
}

// unquote strips SQL identifier or string quoting: "x", `x`, [x] and 'x'.
func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	switch q := s[0]; {
	case q == '"' && s[len(s)-1] == '"', q == '`' && s[len(s)-1] == '`', q == '\'' && s[len(s)-1] == '\'':
		inner := s[1 : len(s)-1]
		return strings.ReplaceAll(inner, string([]byte{q, q}), string(q))
	case q == '[' && s[len(s)-1] == ']':
		return s[1 : len(s)-1]
	}
	return s
}
