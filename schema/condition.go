// condition.go - WHERE conditions and their evaluation against typed values
package schema

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/wilhasse/go-sqlite/column"
)

// Op is a comparison operator of a WHERE condition.
type Op string

const (
	OpEq        Op = "="
	OpNe        Op = "!="
	OpLt        Op = "<"
	OpLe        Op = "<="
	OpGt        Op = ">"
	OpGe        Op = ">="
	OpIsNull    Op = "IS NULL"
	OpIsNotNull Op = "IS NOT NULL"
)

// mirror returns the operator with its operands swapped: 5 < a is a > 5.
func (o Op) mirror() Op {
	switch o {
	case OpLt:
		return OpGt
	case OpLe:
		return OpGe
	case OpGt:
		return OpLt
	case OpGe:
		return OpLe
	default:
		return o
	}
}

// Condition compares one column against a literal. Conditions of a query
// are joined with AND.
type Condition struct {
	Column  string
	Op      Op
	Literal column.Value // nil for IS NULL and IS NOT NULL
}

func (c Condition) String() string {
	switch c.Op {
	case OpIsNull, OpIsNotNull:
		return fmt.Sprintf("%s %s", c.Column, c.Op)
	}
	if t, ok := c.Literal.(column.Text); ok {
		return fmt.Sprintf("%s %s '%s'", c.Column, c.Op, strings.ReplaceAll(string(t), "'", "''"))
	}
	return fmt.Sprintf("%s %s %s", c.Column, c.Op, c.Literal)
}

// Match reports whether a column value satisfies the condition. NULL on
// either side never satisfies a comparison.
func (c Condition) Match(v column.Value) bool {
	switch c.Op {
	case OpIsNull:
		return column.IsNull(v)
	case OpIsNotNull:
		return !column.IsNull(v)
	}
	if column.IsNull(v) || column.IsNull(c.Literal) {
		return false
	}
	cmp, ok := compare(v, c.Literal)
	if !ok {
		return false
	}
	switch c.Op {
	case OpEq:
		return cmp == 0
	case OpNe:
		return cmp != 0
	case OpLt:
		return cmp < 0
	case OpLe:
		return cmp <= 0
	case OpGt:
		return cmp > 0
	case OpGe:
		return cmp >= 0
	default:
		return false
	}
}

// compare orders a column value against a literal. Numbers compare
// numerically, a text literal counting as a number when it parses as one
// and the column value is numeric. Everything else compares byte-wise.
func compare(v, lit column.Value) (int, bool) {
	if _, ok := v.(column.Reserved); ok {
		return 0, false
	}
	if isNumeric(v) {
		if n, ok := numericLiteral(lit); ok {
			return compareNumbers(v, n), true
		}
	}
	return bytes.Compare(rawBytes(v), rawBytes(lit)), true
}

func isNumeric(v column.Value) bool {
	switch v.(type) {
	case column.Integer, column.Float:
		return true
	}
	return false
}

func numericLiteral(lit column.Value) (column.Value, bool) {
	switch l := lit.(type) {
	case column.Integer, column.Float:
		return l, true
	case column.Text:
		s := strings.TrimSpace(string(l))
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return column.Integer(i), true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return column.Float(f), true
		}
	}
	return nil, false
}

func compareNumbers(a, b column.Value) int {
	ai, aInt := a.(column.Integer)
	bi, bInt := b.(column.Integer)
	if aInt && bInt {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
		return 0
	}
	af, bf := toFloat(a), toFloat(b)
	switch {
	case af < bf:
		return -1
	case af > bf:
		return 1
	}
	return 0
}

func toFloat(v column.Value) float64 {
	switch n := v.(type) {
	case column.Integer:
		return float64(n)
	case column.Float:
		return float64(n)
	}
	return 0
}

func rawBytes(v column.Value) []byte {
	switch b := v.(type) {
	case column.Blob:
		return b
	case column.Text:
		return []byte(b)
	}
	return []byte(v.String())
}
