// rows.go - Lazy projected row sequence
package scan

import (
	"github.com/wilhasse/go-sqlite/column"
	"github.com/wilhasse/go-sqlite/record"
	"github.com/wilhasse/go-sqlite/schema"
)

// Rows is a single-pass sequence of projected rows. A malformed cell stops
// the sequence and is reported by Err; rows already returned stay valid.
//
//	rows, err := scanner.Project("apples", []string{"name", "color"}, nil)
//	for rows.Next() {
//		fmt.Println(rows.Values())
//	}
//	if err := rows.Err(); err != nil { ... }
type Rows struct {
	columns []string
	idx     []int
	conds   []schema.Condition
	condIdx []int
	rowid   int // ordinal of the INTEGER PRIMARY KEY column, or -1
	iter    *record.Iterator
	done    func(n int)

	cur    []column.Value
	curID  int64
	n      int
	err    error
	closed bool
}

// singleRow is a one-row, one-column result.
func singleRow(name string, v column.Value) *Rows {
	return &Rows{columns: []string{name}, cur: []column.Value{v}, rowid: -1}
}

// Next advances to the next row that satisfies every condition.
func (r *Rows) Next() bool {
	if r.closed {
		return false
	}
	if r.iter == nil {
		// singleRow: the value is already in place
		r.closed = true
		r.n = 1
		return true
	}
	for r.iter.Next() {
		rec := r.iter.Record()
		value := func(i int) column.Value {
			if i == r.rowid {
				return column.Integer(rec.RowID)
			}
			return rec.Value(i)
		}
		if !r.match(value) {
			continue
		}
		r.cur = make([]column.Value, len(r.idx))
		for i, ci := range r.idx {
			r.cur[i] = value(ci)
		}
		r.curID = rec.RowID
		r.n++
		return true
	}
	r.err = r.iter.Err()
	r.finish()
	return false
}

func (r *Rows) match(value func(int) column.Value) bool {
	for i, c := range r.conds {
		if !c.Match(value(r.condIdx[i])) {
			return false
		}
	}
	return true
}

func (r *Rows) finish() {
	r.cur = nil
	if !r.closed && r.done != nil {
		r.done(r.n)
	}
	r.closed = true
}

// Values returns the current row's values in requested column order.
func (r *Rows) Values() []column.Value { return r.cur }

// RowID returns the row id of the current row.
func (r *Rows) RowID() int64 { return r.curID }

// Columns returns the projected column names.
func (r *Rows) Columns() []string { return r.columns }

func (r *Rows) Err() error { return r.err }

// Collect drains the sequence into memory.
func (r *Rows) Collect() ([][]column.Value, error) {
	var out [][]column.Value
	for r.Next() {
		out = append(out, r.Values())
	}
	return out, r.Err()
}
