// iterator.go - Record iteration over a page's cells
package record

import (
	"github.com/wilhasse/go-sqlite/page"
)

// Iterator decodes the cells of one leaf table page lazily, in cell pointer
// order. It is single pass; restart by creating a new Iterator.
type Iterator struct {
	page *page.Page
	next int
	cur  *Record
	err  error
}

func NewIterator(p *page.Page) *Iterator {
	return &Iterator{page: p}
}

// Next decodes the next cell. It returns false at the end of the page or
// on the first malformed cell; check Err afterwards.
func (it *Iterator) Next() bool {
	if it.err != nil || it.next >= len(it.page.CellOffsets) {
		it.cur = nil
		return false
	}
	rec, err := DecodeCell(it.page, it.next)
	if err != nil {
		it.err = err
		it.cur = nil
		return false
	}
	it.cur = rec
	it.next++
	return true
}

// Record returns the record decoded by the last successful Next.
func (it *Iterator) Record() *Record { return it.cur }

// Cell returns the cell index of the current record.
func (it *Iterator) Cell() int { return it.next - 1 }

func (it *Iterator) Err() error { return it.err }

// Walk decodes up to max cells of the page (all when max <= 0).
func Walk(p *page.Page, max int) ([]*Record, error) {
	var out []*Record
	it := NewIterator(p)
	for it.Next() {
		out = append(out, it.Record())
		if max > 0 && len(out) == max {
			break
		}
	}
	return out, it.Err()
}
