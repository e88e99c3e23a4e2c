// query.go - Parse SELECT statements into a table projection
package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/xwb1989/sqlparser"

	"github.com/wilhasse/go-sqlite/column"
)

// Query is a single-table SELECT: a projection plus AND-joined conditions.
type Query struct {
	Table      string
	Columns    []string // requested order; empty when Star or Count
	Star       bool     // SELECT *
	Count      bool     // SELECT COUNT(*)
	Conditions []Condition
}

// ParseSelect parses a SELECT statement. Only a single table, plain column
// names, * and COUNT(*) are accepted in the projection; WHERE may combine
// column-versus-literal comparisons and IS [NOT] NULL tests with AND.
//
// Identifiers may be quoted SQLite style ("x", [x]) or with backticks. A
// double-quoted word compared against a column is a text literal, the way
// SQLite falls back when no column has that name.
func ParseSelect(sql string) (*Query, error) {
	rewritten, dquoted := backtickIdentifiers(sql)
	stmt, err := sqlparser.Parse(rewritten)
	if err != nil {
		return nil, &ParseError{Kind: KindSelect, Input: sql, Err: err}
	}
	sel, ok := stmt.(*sqlparser.Select)
	if !ok {
		return nil, queryError(sql, "statement is not a SELECT")
	}
	if sel.GroupBy != nil || sel.Having != nil || sel.OrderBy != nil || sel.Limit != nil || sel.Distinct != "" {
		return nil, queryError(sql, "only projection and WHERE are supported")
	}

	q := &Query{}
	if q.Table, err = tableName(sel.From); err != nil {
		return nil, &ParseError{Kind: KindSelect, Input: sql, Err: err}
	}
	if err := q.projection(sel.SelectExprs); err != nil {
		return nil, &ParseError{Kind: KindSelect, Input: sql, Err: err}
	}
	if sel.Where != nil {
		if q.Conditions, err = conditions(sel.Where.Expr, dquoted, nil); err != nil {
			return nil, &ParseError{Kind: KindSelect, Input: sql, Err: err}
		}
	}
	return q, nil
}

// backtickIdentifiers rewrites "x" and [x] identifiers into the backtick
// quoting the MySQL-dialect parser reads, and returns the names that were
// double-quoted. Text it cannot tokenize is returned unchanged.
func backtickIdentifiers(sql string) (string, map[string]bool) {
	lex, err := ddlLexer.LexString("", sql)
	if err != nil {
		return sql, nil
	}
	tokens, err := lexer.ConsumeAll(lex)
	if err != nil {
		return sql, nil
	}
	quoted := ddlLexer.Symbols()["Quoted"]
	var b strings.Builder
	var dquoted map[string]bool
	for _, t := range tokens {
		if t.Type != quoted || t.Value[0] == '`' {
			b.WriteString(t.Value)
			continue
		}
		name := unquote(t.Value)
		if t.Value[0] == '"' {
			if dquoted == nil {
				dquoted = make(map[string]bool)
			}
			dquoted[name] = true
		}
		b.WriteString("`" + strings.ReplaceAll(name, "`", "``") + "`")
	}
	return b.String(), dquoted
}

func tableName(from sqlparser.TableExprs) (string, error) {
	if len(from) != 1 {
		return "", fmt.Errorf("expected exactly one table, got %d", len(from))
	}
	aliased, ok := from[0].(*sqlparser.AliasedTableExpr)
	if !ok {
		return "", fmt.Errorf("joins are not supported")
	}
	name, ok := aliased.Expr.(sqlparser.TableName)
	if !ok {
		return "", fmt.Errorf("subqueries are not supported")
	}
	return name.Name.String(), nil
}

func (q *Query) projection(exprs sqlparser.SelectExprs) error {
	for _, se := range exprs {
		switch e := se.(type) {
		case *sqlparser.StarExpr:
			if len(exprs) != 1 {
				return fmt.Errorf("* cannot be combined with other columns")
			}
			q.Star = true
		case *sqlparser.AliasedExpr:
			switch x := e.Expr.(type) {
			case *sqlparser.ColName:
				q.Columns = append(q.Columns, x.Name.String())
			case *sqlparser.FuncExpr:
				if !isCountStar(x) || len(exprs) != 1 {
					return fmt.Errorf("unsupported function %s", sqlparser.String(x))
				}
				q.Count = true
			default:
				return fmt.Errorf("unsupported select expression %s", sqlparser.String(x))
			}
		default:
			return fmt.Errorf("unsupported select expression %s", sqlparser.String(se))
		}
	}
	return nil
}

func isCountStar(f *sqlparser.FuncExpr) bool {
	if f.Name.Lowered() != "count" || f.Distinct || len(f.Exprs) != 1 {
		return false
	}
	_, ok := f.Exprs[0].(*sqlparser.StarExpr)
	return ok
}

// conditions flattens an AND tree into a condition list.
func conditions(expr sqlparser.Expr, dquoted map[string]bool, acc []Condition) ([]Condition, error) {
	switch e := expr.(type) {
	case *sqlparser.AndExpr:
		acc, err := conditions(e.Left, dquoted, acc)
		if err != nil {
			return nil, err
		}
		return conditions(e.Right, dquoted, acc)
	case *sqlparser.ParenExpr:
		return conditions(e.Expr, dquoted, acc)
	case *sqlparser.IsExpr:
		col, ok := e.Expr.(*sqlparser.ColName)
		if !ok {
			return nil, fmt.Errorf("IS must test a column: %s", sqlparser.String(e))
		}
		switch e.Operator {
		case sqlparser.IsNullStr:
			return append(acc, Condition{Column: col.Name.String(), Op: OpIsNull}), nil
		case sqlparser.IsNotNullStr:
			return append(acc, Condition{Column: col.Name.String(), Op: OpIsNotNull}), nil
		}
		return nil, fmt.Errorf("unsupported test %s", e.Operator)
	case *sqlparser.ComparisonExpr:
		return comparison(e, dquoted, acc)
	}
	return nil, fmt.Errorf("unsupported condition %s", sqlparser.String(expr))
}

func comparison(e *sqlparser.ComparisonExpr, dquoted map[string]bool, acc []Condition) ([]Condition, error) {
	op, ok := comparisonOps[e.Operator]
	if !ok {
		return nil, fmt.Errorf("unsupported operator %s", e.Operator)
	}
	col, lhs := e.Left.(*sqlparser.ColName)
	other := e.Right
	// "Red" = color: the unquoted side is the column
	if right, ok := e.Right.(*sqlparser.ColName); lhs && ok && isQuotedText(col, dquoted) && !isQuotedText(right, dquoted) {
		lhs = false
	}
	if !lhs {
		if col, ok = e.Right.(*sqlparser.ColName); !ok {
			return nil, fmt.Errorf("comparison needs a column: %s", sqlparser.String(e))
		}
		other = e.Left
		op = op.mirror()
	}
	if c, ok := other.(*sqlparser.ColName); ok && isQuotedText(c, dquoted) {
		return append(acc, Condition{Column: col.Name.String(), Op: op, Literal: column.Text(c.Name.String())}), nil
	}
	lit, err := literal(other)
	if err != nil {
		return nil, err
	}
	return append(acc, Condition{Column: col.Name.String(), Op: op, Literal: lit}), nil
}

// isQuotedText reports whether an unqualified column reference was written
// in double quotes and so may stand for a text literal.
func isQuotedText(c *sqlparser.ColName, dquoted map[string]bool) bool {
	return c.Qualifier.IsEmpty() && dquoted[c.Name.String()]
}

var comparisonOps = map[string]Op{
	sqlparser.EqualStr:        OpEq,
	sqlparser.NotEqualStr:     OpNe,
	sqlparser.LessThanStr:     OpLt,
	sqlparser.LessEqualStr:    OpLe,
	sqlparser.GreaterThanStr:  OpGt,
	sqlparser.GreaterEqualStr: OpGe,
}

func literal(expr sqlparser.Expr) (column.Value, error) {
	switch e := expr.(type) {
	case *sqlparser.SQLVal:
		return sqlValue(e, false)
	case *sqlparser.UnaryExpr:
		if v, ok := e.Expr.(*sqlparser.SQLVal); ok && e.Operator == sqlparser.UMinusStr && v.Type != sqlparser.StrVal {
			return sqlValue(v, true)
		}
	case *sqlparser.NullVal:
		return column.Null{}, nil
	}
	return nil, fmt.Errorf("expected a literal, got %s", sqlparser.String(expr))
}

func sqlValue(v *sqlparser.SQLVal, negate bool) (column.Value, error) {
	s := string(v.Val)
	if negate {
		s = "-" + strings.TrimPrefix(s, "+")
	}
	switch v.Type {
	case sqlparser.StrVal:
		return column.Text(s), nil
	case sqlparser.IntVal:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("integer literal %s: %v", s, err)
		}
		return column.Integer(n), nil
	case sqlparser.FloatVal:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("float literal %s: %v", s, err)
		}
		return column.Float(f), nil
	}
	return nil, fmt.Errorf("unsupported literal %s", sqlparser.String(v))
}
